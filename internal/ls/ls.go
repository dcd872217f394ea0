// Package ls lists workspace directories.
//
// A plain listing returns the immediate children of one directory, the
// shape the list_directory tool needs. Tree mode walks recursively (without
// following symlinks) for the CLI's --tree view. Ignore patterns are glob
// patterns matched against both the entry name and its workspace-relative
// path, so "node_modules" and "src/**/*.gen.go" both work.
package ls

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jpl-au/llmfs/internal/format"
	"github.com/jpl-au/llmfs/internal/glob"
	"github.com/jpl-au/llmfs/internal/workspace"
)

// SortField specifies how to sort results.
// Time sorting lets an LLM answer "what changed recently?" without reading
// every file.
type SortField string

const (
	SortNone SortField = ""
	SortName SortField = "name"
	SortTime SortField = "time" // newest first by default
	SortSize SortField = "size" // largest first by default
)

// Options configures a list operation.
type Options struct {
	Path    string    // Directory relative to the workspace (default: root)
	Ignore  []string  // Glob patterns to exclude
	Hidden  bool      // Include dot entries
	Tree    bool      // Recursive tree view
	Depth   int       // Maximum tree depth (0 = unlimited)
	Long    bool      // Long format with type, size and time
	Sort    SortField // Sort field (name, time, size)
	Reverse bool      // Reverse sort order
}

// Result contains the outcome of a list operation.
type Result struct {
	Path    string         `json:"path"`
	Entries []format.Entry `json:"entries"`
}

// Names returns the entry names in result order.
func (r Result) Names() []string {
	names := make([]string, len(r.Entries))
	for i, e := range r.Entries {
		names[i] = e.Name
	}
	return names
}

// Run lists the directory and writes formatted output to w (if non-nil).
func Run(ctx context.Context, w io.Writer, g *workspace.Guard, opts Options) (Result, error) {
	dir, err := g.Dir(opts.Path)
	if err != nil {
		return Result{}, err
	}

	var entries []format.Entry
	if opts.Tree {
		entries, err = walk(ctx, g, dir, opts)
	} else {
		entries, err = read(g, dir, opts)
	}
	if err != nil {
		return Result{}, err
	}
	sortEntries(entries, opts)

	result := Result{Path: g.Rel(dir), Entries: entries}
	if w == nil {
		return result, nil
	}
	switch {
	case opts.Tree:
		err = format.Tree(w, relativeTo(result.Path, entries))
	case opts.Long:
		err = format.Long(w, entries)
	default:
		err = format.List(w, entries)
	}
	return result, err
}

func read(g *workspace.Guard, dir string, opts Options) ([]format.Entry, error) {
	des, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", g.Rel(dir), err)
	}
	entries := make([]format.Entry, 0, len(des))
	for _, de := range des {
		abs := filepath.Join(dir, de.Name())
		skip, err := excluded(g, abs, de.Name(), opts)
		if err != nil {
			return nil, err
		}
		if skip {
			continue
		}
		e, err := entry(g, abs, de)
		if err != nil {
			continue // removed between ReadDir and Info
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func walk(ctx context.Context, g *workspace.Guard, dir string, opts Options) ([]format.Entry, error) {
	var entries []format.Entry
	err := filepath.WalkDir(dir, func(p string, de fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrPermission) {
				return nil
			}
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if p == dir {
			return nil
		}
		skip, err := excluded(g, p, de.Name(), opts)
		if err != nil {
			return err
		}
		if skip {
			if de.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if opts.Depth > 0 {
			rel, _ := filepath.Rel(dir, p)
			if depth := strings.Count(filepath.ToSlash(rel), "/") + 1; depth > opts.Depth {
				if de.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
		}
		e, err := entry(g, p, de)
		if err != nil {
			return nil
		}
		entries = append(entries, e)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", g.Rel(dir), err)
	}
	return entries, nil
}

func excluded(g *workspace.Guard, abs, name string, opts Options) (bool, error) {
	if !opts.Hidden && strings.HasPrefix(name, ".") {
		return true, nil
	}
	if len(opts.Ignore) == 0 {
		return false, nil
	}
	if ok, err := glob.MatchAny(opts.Ignore, name); err != nil || ok {
		return ok, err
	}
	return glob.MatchAny(opts.Ignore, g.Rel(abs))
}

func entry(g *workspace.Guard, abs string, de fs.DirEntry) (format.Entry, error) {
	info, err := de.Info()
	if err != nil {
		return format.Entry{}, err
	}
	return format.Entry{
		Name:    de.Name(),
		Path:    g.Rel(abs),
		IsDir:   de.IsDir(),
		Symlink: de.Type()&fs.ModeSymlink != 0,
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}, nil
}

// Sort results. Name sorting is alphabetical. Time and size sorting put the
// most interesting entries (newest, largest) first; ties fall back to name so
// ordering is consistent across runs. Without a sort field, entries keep the
// lexical order os.ReadDir and WalkDir already provide.
func sortEntries(entries []format.Entry, opts Options) {
	less := func(a, b format.Entry) bool { return a.Path < b.Path }
	switch opts.Sort {
	case SortTime:
		less = func(a, b format.Entry) bool {
			if a.ModTime.Equal(b.ModTime) {
				return a.Path < b.Path
			}
			return a.ModTime.After(b.ModTime)
		}
	case SortSize:
		less = func(a, b format.Entry) bool {
			if a.Size == b.Size {
				return a.Path < b.Path
			}
			return a.Size > b.Size
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if opts.Reverse {
			return less(entries[j], entries[i])
		}
		return less(entries[i], entries[j])
	})
}

// relativeTo strips base from entry paths so the tree is rooted at the
// listed directory.
func relativeTo(base string, entries []format.Entry) []format.Entry {
	if base == "." || base == "" {
		return entries
	}
	out := make([]format.Entry, len(entries))
	for i, e := range entries {
		e.Path = strings.TrimPrefix(e.Path, base+"/")
		out[i] = e
	}
	return out
}
