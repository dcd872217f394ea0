// Package edit provides in-place text replacement for workspace files.
//
// Two edit forms are supported: search/replace of an exact string (the
// "replace" tool) and replacement of a line range (the CLI --lines flag).
// Both write the file back atomically and return a diff of the change.
package edit

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jpl-au/llmfs/internal/diff"
	"github.com/jpl-au/llmfs/internal/validate"
	"github.com/jpl-au/llmfs/internal/workspace"
)

var (
	// ErrTextNotFound is returned when search text is not in the file.
	ErrTextNotFound = errors.New("text not found")
	// ErrNotUnique is returned when search text occurs more than once and
	// ReplaceAll was not requested.
	ErrNotUnique = errors.New("text is not unique")
	// ErrInvalidLineRange is returned when a line range is malformed.
	ErrInvalidLineRange = errors.New("invalid line range")
)

// Options configures a search/replace edit operation.
type Options struct {
	Old        string // Text to find (required, exact match)
	New        string // Text to replace with
	ReplaceAll bool   // Replace every occurrence instead of requiring a unique one
	DryRun     bool   // Compute the result without writing
}

// LineRangeOptions configures a line-range edit operation.
type LineRangeOptions struct {
	Start  int // Start line (1-indexed)
	End    int // End line (inclusive)
	DryRun bool
}

// Result contains the outcome of an edit operation.
type Result struct {
	Path         string `json:"file_path"`
	Replacements int    `json:"replacements"`
	Diff         string `json:"diff,omitempty"`
}

// Run performs a search/replace on path and writes a summary to w.
func Run(ctx context.Context, w io.Writer, g *workspace.Guard, path string, opts Options) (Result, error) {
	if err := validate.Path(path, 0); err != nil {
		return Result{}, err
	}
	if opts.Old == "" {
		return Result{}, fmt.Errorf("%w: old text is required", validate.ErrInvalidArgument)
	}
	return Apply(ctx, w, g, path, opts.DryRun, func(content string) (string, int, error) {
		return Replace(content, opts.Old, opts.New, opts.ReplaceAll)
	})
}

// RunLineRange replaces lines Start..End of path with replacement.
func RunLineRange(ctx context.Context, w io.Writer, g *workspace.Guard, path, replacement string, opts LineRangeOptions) (Result, error) {
	if err := validate.Path(path, 0); err != nil {
		return Result{}, err
	}
	return Apply(ctx, w, g, path, opts.DryRun, func(content string) (string, int, error) {
		out, err := ReplaceLines(content, opts.Start, opts.End, replacement)
		return out, 1, err
	})
}

// Apply reads path, transforms its content with fn (which returns the new
// content and a replacement count) and writes the result back atomically
// unless dryRun is set. The returned Result carries the diff either way.
func Apply(ctx context.Context, w io.Writer, g *workspace.Guard, path string, dryRun bool, fn func(string) (string, int, error)) (Result, error) {
	abs, err := g.File(path)
	if err != nil {
		return Result{}, err
	}
	fi, err := os.Stat(abs)
	if err != nil {
		return Result{}, fmt.Errorf("stat %s: %w", path, err)
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return Result{}, fmt.Errorf("read %s: %w", path, err)
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	updated, n, err := fn(string(data))
	if err != nil {
		return Result{}, fmt.Errorf("edit %s: %w", path, err)
	}

	rel := g.Rel(abs)
	r := Result{
		Path:         rel,
		Replacements: n,
		Diff:         diff.Compute(string(data), updated, rel, rel).Diff,
	}
	if dryRun {
		if w != nil {
			fmt.Fprintf(w, "Would edit %s (%d replacement(s))\n", rel, n)
		}
		return r, nil
	}

	if err := writeAtomic(abs, []byte(updated), fi.Mode().Perm()); err != nil {
		return Result{}, fmt.Errorf("write %s: %w", path, err)
	}
	if w != nil {
		fmt.Fprintf(w, "Edited %s (%d replacement(s))\n", rel, n)
	}
	return r, nil
}

// writeAtomic replaces path via a temp file in the same directory.
func writeAtomic(path string, data []byte, perm os.FileMode) error {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer os.Remove(tmp)
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp, perm); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// Replace substitutes old with newStr in content and returns the number of
// replacements made. Without all, old must occur exactly once.
func Replace(content, old, newStr string, all bool) (string, int, error) {
	n := strings.Count(content, old)
	switch {
	case n == 0:
		return "", 0, fmt.Errorf("%w: %q", ErrTextNotFound, old)
	case n > 1 && !all:
		return "", 0, fmt.Errorf("%w: %q occurs %d times; add surrounding context or replace all", ErrNotUnique, old, n)
	}
	if all {
		return strings.ReplaceAll(content, old, newStr), n, nil
	}
	return strings.Replace(content, old, newStr, 1), 1, nil
}

// ReplaceLines replaces a range of lines with new content.
// Lines are 1-indexed (first line is 1, not 0).
// The range is inclusive: start:end replaces lines start through end.
//
// Boundary behaviour:
//   - start == 0: treated as 1 (start of file)
//   - start > file length: returns error
//   - end == 0: treated as file length (end of file)
//   - end < start (when both > 0): returns error
//   - end > file length: silently clamped to file length
func ReplaceLines(content string, start, end int, replacement string) (string, error) {
	lines := strings.Split(content, "\n")

	// Handle 0 values (unspecified in open-ended ranges)
	if start == 0 {
		start = 1
	}
	if end == 0 {
		end = len(lines)
	}

	if start < 1 {
		return "", fmt.Errorf("start line must be >= 1, got %d", start)
	}
	if end < start {
		return "", fmt.Errorf("end line %d cannot be less than start line %d", end, start)
	}
	if start > len(lines) {
		return "", fmt.Errorf("start line %d exceeds file length %d", start, len(lines))
	}
	if end > len(lines) {
		end = len(lines)
	}

	// Build new content: lines before + replacement + lines after
	var result []string
	result = append(result, lines[:start-1]...)

	// Add replacement (trimming trailing newline if present)
	replacement = strings.TrimSuffix(replacement, "\n")
	if replacement != "" {
		result = append(result, strings.Split(replacement, "\n")...)
	}

	result = append(result, lines[end:]...)

	return strings.Join(result, "\n"), nil
}

// ParseLineRange parses a line range string like "5:10", "5:", or ":10".
// Returns start and end line numbers (1-indexed), where 0 means unspecified.
// Matches cat's parseLineRange behaviour for consistency.
func ParseLineRange(s string) (start, end int, err error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: %q (expected start:end)", ErrInvalidLineRange, s)
	}

	if parts[0] == "" && parts[1] == "" {
		return 0, 0, fmt.Errorf("%w: %q (at least start or end line required)", ErrInvalidLineRange, s)
	}

	if parts[0] != "" {
		start, err = strconv.Atoi(parts[0])
		if err != nil {
			return 0, 0, fmt.Errorf("%w: invalid start line %q", ErrInvalidLineRange, parts[0])
		}
		if start < 1 {
			return 0, 0, fmt.Errorf("%w: start line must be >= 1, got %d", ErrInvalidLineRange, start)
		}
	}

	if parts[1] != "" {
		end, err = strconv.Atoi(parts[1])
		if err != nil {
			return 0, 0, fmt.Errorf("%w: invalid end line %q", ErrInvalidLineRange, parts[1])
		}
		if end < 1 {
			return 0, 0, fmt.Errorf("%w: end line must be >= 1, got %d", ErrInvalidLineRange, end)
		}
	}

	if start > 0 && end > 0 && start > end {
		return 0, 0, fmt.Errorf("%w: start line %d is greater than end line %d", ErrInvalidLineRange, start, end)
	}

	return start, end, nil
}
