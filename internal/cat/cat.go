// Package cat provides workspace file reading with line window support.
//
// Offset and Limit let an LLM read just the relevant window of a large file
// (e.g. 50 lines around a grep hit) without consuming context on the whole
// thing. Output is numbered by default so the caller can cite line numbers
// back to grep or replace.
package cat

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jpl-au/llmfs/internal/validate"
	"github.com/jpl-au/llmfs/internal/workspace"
)

// DefaultLimit is the number of lines returned when no limit is given.
const DefaultLimit = 2000

// minLineNumWidth is the minimum column width for line numbers.
const minLineNumWidth = 6

// Options configures a read.
type Options struct {
	Offset int  // First line to return, 0-based
	Limit  int  // Maximum lines to return (0 = DefaultLimit)
	Raw    bool // Omit line numbers

	// MaxLineLength is the maximum line length for scanning (0 = default 10MB).
	// Needed for files with very long lines (minified JS, large JSON).
	MaxLineLength int
}

// Result describes what was read.
type Result struct {
	Path      string `json:"file_path"`
	Content   string `json:"content"`
	Start     int    `json:"start_line"` // 1-based line number of the first returned line
	Lines     int    `json:"lines"`      // number of lines returned
	Total     int    `json:"total_lines"`
	Truncated bool   `json:"truncated"` // more lines exist after the window
}

// Run reads a window of path and writes it to w (if non-nil).
func Run(ctx context.Context, w io.Writer, g *workspace.Guard, path string, opts Options) (Result, error) {
	if err := validate.Path(path, 0); err != nil {
		return Result{}, err
	}
	if opts.Offset < 0 {
		return Result{}, fmt.Errorf("%w: offset must be >= 0, got %d", validate.ErrInvalidArgument, opts.Offset)
	}
	if opts.Limit < 0 {
		return Result{}, fmt.Errorf("%w: limit must be >= 0, got %d", validate.ErrInvalidArgument, opts.Limit)
	}
	if opts.Limit == 0 {
		opts.Limit = DefaultLimit
	}

	abs, err := g.File(path)
	if err != nil {
		return Result{}, err
	}
	f, err := os.Open(abs)
	if err != nil {
		return Result{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	maxLine := opts.MaxLineLength
	if maxLine <= 0 {
		maxLine = 10 * 1024 * 1024 // 10MB default
	}

	// Use bufio.Scanner to avoid holding the whole file. Lines before the
	// window are skipped without being copied.
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, min(64*1024, maxLine)), maxLine)

	var b strings.Builder
	res := Result{Path: g.Rel(abs), Start: opts.Offset + 1}
	lineNum := 0
	for scanner.Scan() {
		if lineNum%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return Result{}, err
			}
		}
		lineNum++
		if lineNum <= opts.Offset {
			continue
		}
		if res.Lines >= opts.Limit {
			res.Truncated = true
			continue // keep counting for Total
		}
		if res.Lines > 0 {
			b.WriteByte('\n')
		}
		if opts.Raw {
			b.WriteString(scanner.Text())
		} else {
			fmt.Fprintf(&b, "%*d\t%s", minLineNumWidth, lineNum, scanner.Text())
		}
		res.Lines++
	}
	if err := scanner.Err(); err != nil {
		return Result{}, fmt.Errorf("reading %s: %w", path, err)
	}

	res.Total = lineNum
	res.Content = b.String()
	if w != nil && res.Lines > 0 {
		fmt.Fprintln(w, res.Content)
	}
	return res, nil
}

// File is one entry of a multi-file read.
type File struct {
	Path    string `json:"file_path"`
	Content string `json:"content"`
}

// RunMany reads each path in full. The first failure aborts the batch and
// names the offending path.
func RunMany(ctx context.Context, g *workspace.Guard, paths []string, maxSize int64) ([]File, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: at least one path is required", validate.ErrInvalidArgument)
	}
	files := make([]File, 0, len(paths))
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := validate.Path(p, 0); err != nil {
			return nil, err
		}
		abs, err := g.File(p)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", p, err)
		}
		if maxSize > 0 {
			if fi, err := os.Stat(abs); err == nil && fi.Size() > maxSize {
				return nil, fmt.Errorf("read %s: %w", p, validate.ErrContentTooLarge)
			}
		}
		data, err := os.ReadFile(abs)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", p, err)
		}
		files = append(files, File{Path: p, Content: string(data)})
	}
	return files, nil
}
