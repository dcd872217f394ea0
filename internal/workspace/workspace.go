// Package workspace confines every filesystem operation to a single root
// directory. Callers are untrusted (paths come from an LLM), so every path
// argument passes through a Guard before any file is opened, listed, written
// or handed to a subprocess as its working directory.
//
// Two checks run in order:
//  1. Lexical: the cleaned absolute path must be the root or a descendant.
//  2. Symlinks: the longest existing prefix of the path is resolved and must
//     still land inside the (resolved) root. Links that escape are rejected.
//
// Relative paths are interpreted against the workspace root, never against
// the process working directory.
package workspace

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

var (
	ErrAccessDenied  = errors.New("access denied: path is outside the workspace")
	ErrNotFound      = errors.New("not found")
	ErrNotADirectory = errors.New("not a directory")
	ErrIsADirectory  = errors.New("is a directory")
)

// maxLinkDepth bounds symlink chains, matching the usual ELOOP limit.
const maxLinkDepth = 40

// Guard validates paths against a fixed workspace root.
// A Guard is immutable and safe for concurrent use.
type Guard struct {
	root string // absolute, cleaned
	real string // root with symlinks resolved
}

// New creates a Guard for root. An empty root means the process working
// directory; only the CLI layer should rely on that.
func New(root string) (*Guard, error) {
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("workspace root: %w", err)
		}
		root = wd
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("workspace root %s: %w", root, err)
	}
	fi, err := os.Stat(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("workspace root %s: %w", abs, ErrNotFound)
		}
		return nil, fmt.Errorf("workspace root %s: %w", abs, err)
	}
	if !fi.IsDir() {
		return nil, fmt.Errorf("workspace root %s: %w", abs, ErrNotADirectory)
	}
	real, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, fmt.Errorf("workspace root %s: %w", abs, err)
	}
	return &Guard{root: abs, real: real}, nil
}

// Root returns the absolute workspace root.
func (g *Guard) Root() string { return g.root }

// Resolve returns the absolute form of p after both containment checks.
// The returned path is lexical (symlinks are not substituted) so that
// results reported back to callers keep the names they asked for.
func (g *Guard) Resolve(p string) (string, error) {
	abs := p
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(g.root, abs)
	}
	abs = filepath.Clean(abs)

	if !Admit(abs, g.root) {
		return "", fmt.Errorf("%w: %s", ErrAccessDenied, p)
	}

	real, err := resolveExisting(abs, 0)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", p, err)
	}
	if !Admit(real, g.real) {
		return "", fmt.Errorf("%w: %s resolves to %s", ErrAccessDenied, p, real)
	}
	return abs, nil
}

// Dir resolves p and requires it to be an existing directory.
// An empty p is the workspace root.
func (g *Guard) Dir(p string) (string, error) {
	if p == "" {
		p = g.root
	}
	abs, err := g.Resolve(p)
	if err != nil {
		return "", err
	}
	fi, err := os.Stat(abs)
	if err != nil {
		return "", classify(p, err)
	}
	if !fi.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrNotADirectory, p)
	}
	return abs, nil
}

// File resolves p and requires it to be an existing non-directory.
func (g *Guard) File(p string) (string, error) {
	abs, err := g.Resolve(p)
	if err != nil {
		return "", err
	}
	fi, err := os.Stat(abs)
	if err != nil {
		return "", classify(p, err)
	}
	if fi.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrIsADirectory, p)
	}
	return abs, nil
}

// Rel returns abs relative to the root using forward slashes.
// Paths outside the root are returned unchanged.
func (g *Guard) Rel(abs string) string {
	rel, err := filepath.Rel(g.root, abs)
	if err != nil || !Admit(abs, g.root) {
		return abs
	}
	return filepath.ToSlash(rel)
}

func classify(p string, err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %s", ErrNotFound, p)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%w: %s: %w", ErrAccessDenied, p, err)
	default:
		return fmt.Errorf("%s: %w", p, err)
	}
}

// resolveExisting resolves symlinks in the longest existing prefix of p and
// re-attaches the remaining (not yet existing) components. Dangling links
// are followed by hand so a write through one cannot land outside the root.
func resolveExisting(p string, depth int) (string, error) {
	if depth > maxLinkDepth {
		return "", fmt.Errorf("%w: too many levels of symbolic links", ErrAccessDenied)
	}
	var rest []string
	cur := p
	for {
		real, err := filepath.EvalSymlinks(cur)
		if err == nil {
			return filepath.Join(append([]string{real}, rest...)...), nil
		}
		if fi, lerr := os.Lstat(cur); lerr == nil && fi.Mode()&fs.ModeSymlink != 0 {
			target, rerr := os.Readlink(cur)
			if rerr != nil {
				return "", rerr
			}
			if !filepath.IsAbs(target) {
				target = filepath.Join(filepath.Dir(cur), target)
			}
			real, err := resolveExisting(target, depth+1)
			if err != nil {
				return "", err
			}
			return filepath.Join(append([]string{real}, rest...)...), nil
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			return p, nil
		}
		rest = append([]string{filepath.Base(cur)}, rest...)
		cur = parent
	}
}
