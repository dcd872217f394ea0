// Package write creates or overwrites workspace files.
//
// Parent directories are created as needed. Because the guard resolves the
// longest existing prefix of the target before anything is created, a
// symlinked parent that escapes the workspace is rejected up front.
package write

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/jpl-au/llmfs/internal/validate"
	"github.com/jpl-au/llmfs/internal/workspace"
)

// Options configures a write.
type Options struct {
	MaxContent int64 // Maximum content size in bytes (0 = unlimited)
	NoCreate   bool  // Fail instead of creating a missing file
}

// Result describes a completed write.
type Result struct {
	Path    string `json:"file_path"`
	Bytes   int    `json:"bytes"`
	Created bool   `json:"created"`
}

// Run writes content to path and reports the outcome to w.
func Run(ctx context.Context, w io.Writer, g *workspace.Guard, path, content string, opts Options) (Result, error) {
	if err := validate.Path(path, 0); err != nil {
		return Result{}, err
	}
	if err := validate.Content(content, opts.MaxContent); err != nil {
		return Result{}, err
	}

	abs, err := g.Resolve(path)
	if err != nil {
		return Result{}, err
	}
	if abs == g.Root() {
		return Result{}, fmt.Errorf("%w: %s", workspace.ErrIsADirectory, path)
	}

	perm := os.FileMode(0o644)
	created := false
	fi, err := os.Stat(abs)
	switch {
	case err == nil && fi.IsDir():
		return Result{}, fmt.Errorf("%w: %s", workspace.ErrIsADirectory, path)
	case err == nil:
		perm = fi.Mode().Perm()
	case errors.Is(err, fs.ErrNotExist):
		if opts.NoCreate {
			return Result{}, fmt.Errorf("%w: %s", workspace.ErrNotFound, path)
		}
		created = true
	default:
		return Result{}, fmt.Errorf("stat %s: %w", path, err)
	}

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return Result{}, fmt.Errorf("create parent of %s: %w", path, err)
	}
	if err := os.WriteFile(abs, []byte(content), perm); err != nil {
		return Result{}, fmt.Errorf("write %s: %w", path, err)
	}

	r := Result{Path: g.Rel(abs), Bytes: len(content), Created: created}
	if w != nil {
		verb := "Wrote"
		if created {
			verb = "Created"
		}
		fmt.Fprintf(w, "%s %s (%d bytes)\n", verb, r.Path, r.Bytes)
	}
	return r, nil
}
