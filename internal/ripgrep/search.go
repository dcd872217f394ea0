// search.go runs rg as a subprocess and decodes its JSON Lines output.
//
// Design: rg is always invoked with --json so output parsing never depends on
// filenames or line content (colons, newlines, unicode). Only "match"
// records are kept; begin/end/context/summary records and any line that
// fails to decode are skipped. Stdout and stderr are drained concurrently so
// a chatty stderr can never block the child while we read stdout.
//
// Exit status follows grep convention: 0 = matches, 1 = no matches (not an
// error), anything else = failure.

package ripgrep

import (
	"bufio"
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/jpl-au/llmfs/internal/validate"
	"golang.org/x/sync/errgroup"
)

var (
	ErrSearchFailed = errors.New("search failed")
	ErrTimeout      = errors.New("search timed out")
)

// maxStderr caps how much diagnostic output is kept for error messages.
const maxStderr = 64 << 10

// Query describes one rg invocation.
type Query struct {
	Pattern  string        // regular expression, required
	Dir      string        // absolute directory rg runs in, required
	Include  string        // optional glob filter, e.g. "*.ts"
	MaxCount int           // per-file match cap passed as --max-count (0 = none)
	Timeout  time.Duration // optional deadline for the whole run
}

// Submatch is one matched span within a line.
type Submatch struct {
	Text  string `json:"text"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// Match is one matching line. Path is relative to Query.Dir with forward
// slashes; Line has surrounding whitespace trimmed.
type Match struct {
	Path       string     `json:"file_path"`
	LineNumber int        `json:"line_number"`
	Line       string     `json:"line"`
	Submatches []Submatch `json:"submatches,omitempty"`
}

// Args builds the rg argument list for q. The pattern is always last and
// follows "--" so a leading dash is never parsed as a flag.
func Args(q Query) []string {
	args := []string{"--json", "--hidden"}
	if q.Include != "" {
		args = append(args, "--glob", q.Include)
	}
	args = append(args, "--glob", "!.git/*")
	if q.MaxCount > 0 {
		args = append(args, "--max-count", fmt.Sprint(q.MaxCount))
	}
	return append(args, "--", q.Pattern)
}

// Search runs bin with q and returns the decoded matches in discovery order.
// No matches yields an empty slice and a nil error.
func Search(ctx context.Context, bin Binary, q Query) ([]Match, error) {
	if err := validate.Required("pattern", q.Pattern); err != nil {
		return nil, err
	}
	if q.Dir == "" {
		return nil, fmt.Errorf("%w: search directory is required", validate.ErrInvalidArgument)
	}
	if q.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, q.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, bin.Path, Args(q)...)
	cmd.Dir = q.Dir
	cmd.WaitDelay = time.Second

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSearchFailed, err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSearchFailed, err)
	}
	if err := cmd.Start(); err != nil {
		if cerr := contextErr(ctx, q.Pattern); cerr != nil {
			return nil, cerr
		}
		return nil, fmt.Errorf("%w: start %s: %w", ErrSearchFailed, bin.Path, err)
	}

	var (
		matches []Match
		errBuf  bytes.Buffer
	)
	var g errgroup.Group
	g.Go(func() error {
		var err error
		matches, err = decode(stdout)
		return err
	})
	g.Go(func() error {
		_, err := io.Copy(&errBuf, io.LimitReader(stderr, maxStderr))
		_, _ = io.Copy(io.Discard, stderr)
		return err
	})
	drainErr := g.Wait()
	waitErr := cmd.Wait()

	if err := contextErr(ctx, q.Pattern); err != nil {
		return nil, err
	}

	if waitErr != nil {
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) && exitErr.ExitCode() == 1 {
			return []Match{}, nil
		}
		msg := strings.TrimSpace(errBuf.String())
		if msg == "" {
			msg = waitErr.Error()
		}
		return nil, fmt.Errorf("%w: %s", ErrSearchFailed, msg)
	}
	if drainErr != nil {
		return nil, fmt.Errorf("%w: read output: %w", ErrSearchFailed, drainErr)
	}
	if matches == nil {
		matches = []Match{}
	}
	return matches, nil
}

// contextErr maps a finished context to ErrTimeout on deadline, or returns
// its cancellation error as is. Nil while ctx is live.
func contextErr(ctx context.Context, pattern string) error {
	err := ctx.Err()
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %q", ErrTimeout, pattern)
	}
	return err
}

// record is the subset of an rg --json line we consume.
type record struct {
	Type string `json:"type"`
	Data struct {
		Path       arbitrary `json:"path"`
		Lines      arbitrary `json:"lines"`
		LineNumber int       `json:"line_number"`
		Submatches []struct {
			Match arbitrary `json:"match"`
			Start int       `json:"start"`
			End   int       `json:"end"`
		} `json:"submatches"`
	} `json:"data"`
}

// arbitrary is rg's encoding of possibly non-UTF-8 data: either "text" or
// base64 "bytes".
type arbitrary struct {
	Text  *string `json:"text"`
	Bytes string  `json:"bytes"`
}

func (a arbitrary) String() string {
	if a.Text != nil {
		return *a.Text
	}
	if b, err := base64.StdEncoding.DecodeString(a.Bytes); err == nil {
		return string(b)
	}
	return ""
}

func decode(r io.Reader) ([]Match, error) {
	var matches []Match
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadBytes('\n')
		if len(bytes.TrimSpace(line)) > 0 {
			if m, ok := parseMatch(line); ok {
				matches = append(matches, m)
			}
		}
		if err == io.EOF {
			return matches, nil
		}
		if err != nil {
			return matches, err
		}
	}
}

func parseMatch(line []byte) (Match, bool) {
	var rec record
	if err := json.Unmarshal(line, &rec); err != nil || rec.Type != "match" {
		return Match{}, false
	}
	path := filepath.ToSlash(rec.Data.Path.String())
	if path == "" {
		return Match{}, false
	}
	raw := rec.Data.Lines.String()
	text := strings.TrimSpace(raw)
	lead := len(raw) - len(strings.TrimLeftFunc(raw, unicode.IsSpace))

	m := Match{
		Path:       strings.TrimPrefix(path, "./"),
		LineNumber: rec.Data.LineNumber,
		Line:       text,
	}
	for _, sm := range rec.Data.Submatches {
		start := clamp(sm.Start-lead, 0, len(text))
		end := clamp(sm.End-lead, start, len(text))
		m.Submatches = append(m.Submatches, Submatch{Text: sm.Match.String(), Start: start, End: end})
	}
	return m, true
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
