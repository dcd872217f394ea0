// format.go renders search matches as a human-readable report.
//
// Design: ordering is purely lexical by path (byte order) with a stable sort,
// so matches within a file stay in the order rg reported them. Truncation is
// decided on the full result before slicing: hitting the limit exactly also
// counts as truncated, because rg's per-file cap means more may exist.

package grep

import (
	"fmt"
	"slices"
	"strings"

	"github.com/jpl-au/llmfs/internal/ripgrep"
)

// DefaultLimit is the maximum number of matches rendered in a report.
const DefaultLimit = 100

// NoMatches is the report body when nothing matched.
const NoMatches = "No matches found"

const truncatedNotice = "(Results are truncated. Consider using a more specific path or pattern.)"

// Report is a rendered search result.
type Report struct {
	Title     string          `json:"title"`
	Matches   int             `json:"matches"`
	Truncated bool            `json:"truncated"`
	Output    string          `json:"output"`
	Hits      []ripgrep.Match `json:"hits,omitempty"`
}

// Format sorts, truncates and renders matches. The input slice is not modified.
func Format(title string, matches []ripgrep.Match, limit int) Report {
	if len(matches) == 0 {
		return Report{Title: title, Output: NoMatches}
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	sorted := slices.Clone(matches)
	slices.SortStableFunc(sorted, func(a, b ripgrep.Match) int {
		return strings.Compare(a.Path, b.Path)
	})

	truncated := len(sorted) >= limit
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}

	lines := []string{fmt.Sprintf("Found %d matches", len(sorted))}
	current := ""
	for i, m := range sorted {
		if i == 0 || m.Path != current {
			if i > 0 {
				lines = append(lines, "")
			}
			current = m.Path
			lines = append(lines, m.Path+":")
		}
		lines = append(lines, fmt.Sprintf("  Line %d: %s", m.LineNumber, m.Line))
	}
	if truncated {
		lines = append(lines, "", truncatedNotice)
	}

	return Report{
		Title:     title,
		Matches:   len(sorted),
		Truncated: truncated,
		Output:    strings.Join(lines, "\n"),
		Hits:      sorted,
	}
}
