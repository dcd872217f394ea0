// Package duration parses human-readable ages such as "7d" or "4w".
//
// Used by "llmfs log" for --since and "llmfs log prune" for --older-than,
// where Go's time.Duration syntax (hours at most) is awkward. Plain Go
// durations ("90m", "12h") are accepted too.
package duration

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/jpl-au/llmfs/internal/validate"
)

const day = 24 * time.Hour

var pattern = regexp.MustCompile(`^(\d+)([dwm])$`)

// Parse parses Nd (days), Nw (weeks), Nm (months of 30 days), or any
// string accepted by time.ParseDuration. The result must be positive.
func Parse(s string) (time.Duration, error) {
	if m := pattern.FindStringSubmatch(s); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil || n <= 0 {
			return 0, fmt.Errorf("%w: duration %q must be positive", validate.ErrInvalidArgument, s)
		}
		switch m[2] {
		case "d":
			return time.Duration(n) * day, nil
		case "w":
			return time.Duration(n) * 7 * day, nil
		default:
			return time.Duration(n) * 30 * day, nil
		}
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%w: invalid duration %q (use 7d, 4w, 3m or 12h)", validate.ErrInvalidArgument, s)
	}
	return d, nil
}

// Ago returns the instant d before now, parsed from s.
func Ago(s string, now time.Time) (time.Time, error) {
	d, err := Parse(s)
	if err != nil {
		return time.Time{}, err
	}
	return now.Add(-d), nil
}
