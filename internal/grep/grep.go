// Package grep provides workspace content search backed by ripgrep.
//
// Run validates the search directory against the workspace, obtains an rg
// binary from the provisioner, executes the query and renders a Report.
// Rendering (format.go) is deterministic and independent of rg so it can be
// tested without a binary.
package grep

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/jpl-au/llmfs/internal/ripgrep"
	"github.com/jpl-au/llmfs/internal/validate"
	"github.com/jpl-au/llmfs/internal/workspace"
)

// Resolver yields a runnable rg. *ripgrep.Provisioner satisfies it.
type Resolver interface {
	Resolve(ctx context.Context) (ripgrep.Binary, error)
}

// Options configures a grep operation.
type Options struct {
	Pattern string // Regular expression (required)
	Path    string // Directory to search, relative to the workspace (default: root)
	Include string // Glob filter on file names, e.g. "*.ts" or "*.{ts,tsx}"

	// Limit caps the rendered matches; reaching it marks the report truncated.
	Limit int

	// Timeout bounds the rg run (0 = no deadline beyond ctx).
	Timeout time.Duration
}

// Run searches the workspace and writes the rendered report to w.
// Match paths in the report are relative to the workspace root.
func Run(ctx context.Context, w io.Writer, g *workspace.Guard, r Resolver, opts Options) (Report, error) {
	if err := validate.Required("pattern", opts.Pattern); err != nil {
		return Report{}, err
	}
	if opts.Limit <= 0 {
		opts.Limit = DefaultLimit
	}

	dir, err := g.Dir(opts.Path)
	if err != nil {
		return Report{}, err
	}

	bin, err := r.Resolve(ctx)
	if err != nil {
		return Report{}, err
	}

	matches, err := ripgrep.Search(ctx, bin, ripgrep.Query{
		Pattern:  opts.Pattern,
		Dir:      dir,
		Include:  opts.Include,
		MaxCount: opts.Limit,
		Timeout:  opts.Timeout,
	})
	if err != nil {
		return Report{}, fmt.Errorf("grep %q in %s: %w", opts.Pattern, g.Rel(dir), err)
	}

	for i := range matches {
		matches[i].Path = g.Rel(filepath.Join(dir, filepath.FromSlash(matches[i].Path)))
	}

	report := Format(opts.Pattern, matches, opts.Limit)
	if w != nil {
		fmt.Fprintln(w, report.Output)
	}
	return report, nil
}
