// Package glob provides glob pattern matching and workspace path expansion.
//
// Patterns use doublestar syntax: *, ?, [class], {alt,ernatives} and ** for
// any number of path segments. Paths are always matched with forward slashes.
package glob

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/jpl-au/llmfs/internal/validate"
	"github.com/jpl-au/llmfs/internal/workspace"
)

// Match reports whether name matches pattern. A pattern with no slash is
// also tried against the base name, so "*.log" matches "logs/app.log".
// Returns validate.ErrInvalidArgument if the pattern is malformed.
func Match(pattern, name string) (bool, error) {
	pattern = filepath.ToSlash(pattern)
	name = filepath.ToSlash(name)

	if !doublestar.ValidatePattern(pattern) {
		return false, fmt.Errorf("%w: malformed glob %q", validate.ErrInvalidArgument, pattern)
	}
	if doublestar.MatchUnvalidated(pattern, name) {
		return true, nil
	}
	if strings.Contains(pattern, "/") {
		return false, nil
	}
	return doublestar.MatchUnvalidated(pattern, path.Base(name)), nil
}

// MatchAny reports whether name matches any of patterns.
func MatchAny(patterns []string, name string) (bool, error) {
	for _, p := range patterns {
		ok, err := Match(p, name)
		if err != nil || ok {
			return ok, err
		}
	}
	return false, nil
}

// Options configures a workspace glob.
type Options struct {
	Pattern string // Glob pattern relative to Path (required)
	Path    string // Directory to expand from, relative to the workspace (default: root)
}

// Run expands opts.Pattern under the guarded directory. Results include
// files and directories, are relative to the workspace root and sorted
// lexically. Symlinks are reported but never traversed.
func Run(ctx context.Context, g *workspace.Guard, opts Options) ([]string, error) {
	if err := validate.Required("pattern", opts.Pattern); err != nil {
		return nil, err
	}
	pattern := filepath.ToSlash(opts.Pattern)
	if path.IsAbs(pattern) || filepath.IsAbs(opts.Pattern) {
		return nil, fmt.Errorf("%w: glob pattern must be relative: %s", validate.ErrInvalidArgument, opts.Pattern)
	}
	if slices.Contains(strings.Split(pattern, "/"), "..") {
		return nil, fmt.Errorf("%w: %s", workspace.ErrAccessDenied, opts.Pattern)
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("%w: malformed glob %q", validate.ErrInvalidArgument, opts.Pattern)
	}

	base, err := g.Dir(opts.Path)
	if err != nil {
		return nil, err
	}

	matches := []string{}
	err = doublestar.GlobWalk(os.DirFS(base), pattern, func(p string, _ fs.DirEntry) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		matches = append(matches, g.Rel(filepath.Join(base, filepath.FromSlash(p))))
		return nil
	}, doublestar.WithNoFollow())
	if err != nil {
		return nil, fmt.Errorf("glob %q: %w", opts.Pattern, err)
	}

	slices.Sort(matches)
	return matches, nil
}
