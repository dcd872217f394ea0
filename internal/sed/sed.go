// Package sed provides sed-style text substitution for workspace files.
//
// Supports the familiar s/old/new/ syntax with an optional 'g' flag for
// global replacement. Alternate delimiters (s|old|new|) work too. Matching
// is literal, not regex. Unlike edit.Run, a non-global substitution changes
// the first occurrence without requiring it to be unique.
package sed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jpl-au/llmfs/internal/edit"
	"github.com/jpl-au/llmfs/internal/validate"
	"github.com/jpl-au/llmfs/internal/workspace"
)

var (
	// ErrInvalidExpr is returned when a sed expression is malformed.
	ErrInvalidExpr = errors.New("invalid sed expression")
	// ErrUnsupportedCommand is returned for non-substitution commands.
	ErrUnsupportedCommand = errors.New("only substitution (s) commands are supported")
)

// Options configures a sed operation.
type Options struct {
	DryRun bool // Compute the diff without writing
}

// Expr represents a parsed sed expression.
type Expr struct {
	Old    string
	New    string
	Global bool // 'g' flag - replace all occurrences
}

// Run applies a substitution expression to a workspace file.
func Run(ctx context.Context, w io.Writer, g *workspace.Guard, path, expr string, opts Options) (edit.Result, error) {
	if err := validate.Path(path, 0); err != nil {
		return edit.Result{}, err
	}
	parsed, err := ParseExpr(expr)
	if err != nil {
		return edit.Result{}, fmt.Errorf("%w: %w", validate.ErrInvalidArgument, err)
	}
	if parsed.Old == "" {
		return edit.Result{}, fmt.Errorf("%w: %w: empty search text", validate.ErrInvalidArgument, ErrInvalidExpr)
	}
	return edit.Apply(ctx, w, g, path, opts.DryRun, parsed.apply)
}

func (e Expr) apply(content string) (string, int, error) {
	n := strings.Count(content, e.Old)
	if n == 0 {
		return "", 0, fmt.Errorf("%w: %q", edit.ErrTextNotFound, e.Old)
	}
	if e.Global {
		return strings.ReplaceAll(content, e.Old, e.New), n, nil
	}
	return strings.Replace(content, e.Old, e.New, 1), 1, nil
}

// ParseExpr parses a sed substitution expression like s/old/new/ or s|old|new|g.
func ParseExpr(expr string) (Expr, error) {
	if len(expr) < 4 {
		return Expr{}, ErrInvalidExpr
	}
	if expr[0] != 's' {
		return Expr{}, ErrUnsupportedCommand
	}

	delim := expr[1]
	parts := splitByDelim(expr[2:], delim)
	if len(parts) < 2 {
		return Expr{}, fmt.Errorf("%w: expected s%cold%cnew%c", ErrInvalidExpr, delim, delim, delim)
	}

	result := Expr{Old: parts[0], New: parts[1]}
	if len(parts) >= 3 && strings.Contains(parts[2], "g") {
		result.Global = true
	}
	return result, nil
}

// splitByDelim splits a string by delimiter, respecting escaped delimiters.
func splitByDelim(s string, delim byte) []string {
	var parts []string
	var current strings.Builder
	escaped := false

	for i := 0; i < len(s); i++ {
		c := s[i]
		if escaped {
			current.WriteByte(c)
			escaped = false
			continue
		}
		if c == '\\' {
			escaped = true
			continue
		}
		if c == delim {
			parts = append(parts, current.String())
			current.Reset()
			continue
		}
		current.WriteByte(c)
	}

	if current.Len() > 0 {
		parts = append(parts, current.String())
	}
	return parts
}
