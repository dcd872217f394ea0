// Package scan searches file contents in-process with Go regular expressions.
//
// Unlike grep, which shells out to ripgrep, scan needs no external binary:
// it expands an include glob over the workspace and tests each line of each
// matched file. It is slower on large trees but always available.
//
// Per-file failures (directories, unreadable files, lines longer than the
// scanner limit) are skipped so one bad file never fails a broad scan.
package scan

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"regexp"

	"github.com/jpl-au/llmfs/internal/glob"
	"github.com/jpl-au/llmfs/internal/validate"
	"github.com/jpl-au/llmfs/internal/workspace"
)

// DefaultInclude selects every file under the search directory.
const DefaultInclude = "**/*"

// DefaultMaxLineLength bounds a single scanned line (10MB).
const DefaultMaxLineLength = 10 * 1024 * 1024

// Options configures a content scan.
type Options struct {
	Pattern    string // Regular expression (required)
	Path       string // Directory to scan, relative to the workspace (default: root)
	Include    string // Glob selecting files (default: DefaultInclude)
	IgnoreCase bool   // Case-insensitive matching

	// MaxLineLength is the maximum line length for scanning (0 = default 10MB).
	// Needed for files with very long lines (minified JS, large JSON).
	MaxLineLength int

	// MaxMatches stops the scan after this many matches (0 = unlimited).
	MaxMatches int
}

// Match is one matching line.
type Match struct {
	Path       string `json:"file_path"`
	LineNumber int    `json:"line_number"`
	Line       string `json:"line"`
}

// Run scans the workspace and returns matches ordered by path then line.
func Run(ctx context.Context, g *workspace.Guard, opts Options) ([]Match, error) {
	if err := validate.Required("pattern", opts.Pattern); err != nil {
		return nil, err
	}
	flags := ""
	if opts.IgnoreCase {
		flags = "(?i)"
	}
	re, err := regexp.Compile(flags + opts.Pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid regex: %w", validate.ErrInvalidArgument, err)
	}
	include := opts.Include
	if include == "" {
		include = DefaultInclude
	}

	files, err := glob.Run(ctx, g, glob.Options{Pattern: include, Path: opts.Path})
	if err != nil {
		return nil, err
	}

	matches := []Match{}
	for _, rel := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		abs, err := g.File(rel)
		if err != nil {
			continue
		}
		found, err := scanFile(re, abs, rel, opts.MaxLineLength)
		if err != nil {
			continue
		}
		matches = append(matches, found...)
		if opts.MaxMatches > 0 && len(matches) >= opts.MaxMatches {
			return matches[:opts.MaxMatches], nil
		}
	}
	return matches, nil
}

func scanFile(re *regexp.Regexp, abs, rel string, maxLineLength int) ([]Match, error) {
	f, err := os.Open(abs)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return matchLines(re, f, rel, maxLineLength)
}

// matchLines finds all lines in r matching re.
// Uses bufio.Scanner so only one line is held in memory at a time.
func matchLines(re *regexp.Regexp, r io.Reader, path string, maxLineLength int) ([]Match, error) {
	var matches []Match
	if maxLineLength <= 0 {
		maxLineLength = DefaultMaxLineLength
	}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, min(64*1024, maxLineLength)), maxLineLength)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if re.MatchString(line) {
			matches = append(matches, Match{Path: path, LineNumber: lineNum, Line: line})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return matches, nil
}
