// log_query.go reads and prunes the audit trail for "llmfs log".

package log

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrNotOpen is returned by queries when the audit log could not be opened.
var ErrNotOpen = errors.New("audit log not open")

// Filter selects audit records. Zero fields match everything.
type Filter struct {
	Since     time.Time
	Source    string // exact source, or a prefix ending in ":" ("mcp:")
	Workspace bool   // only the workspace set by SetWorkspace
	Failed    bool   // only failed operations
	Limit     int    // newest first; 0 = no limit
}

// Record is a stored audit entry.
type Record struct {
	ID       int64         `json:"id"`
	Start    time.Time     `json:"start"`
	Duration time.Duration `json:"duration"`
	Source   string        `json:"source"`
	Author   string        `json:"author,omitempty"`
	Action   string        `json:"action"`
	Path     string        `json:"path,omitempty"`
	Success  bool          `json:"success"`
	Error    string        `json:"error,omitempty"`
	Detail   string        `json:"detail,omitempty"`
}

func current() (*Logger, error) {
	mu.Lock()
	defer mu.Unlock()
	if global == nil {
		return nil, ErrNotOpen
	}
	return global, nil
}

// Query returns matching records, newest first.
func Query(ctx context.Context, f Filter) ([]Record, error) {
	l, err := current()
	if err != nil {
		return nil, err
	}

	where, args := f.clauses(l.workspace)
	q := `SELECT id, start, duration_ms, source, author, action, path, success, error, detail FROM log`
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY start DESC, id DESC"
	if f.Limit > 0 {
		q += fmt.Sprintf(" LIMIT %d", f.Limit)
	}

	rows, err := l.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query audit log: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var (
			r                            Record
			start, ms                    int64
			success                      int
			author, path, errMsg, detail sql.NullString
		)
		if err := rows.Scan(&r.ID, &start, &ms, &r.Source, &author, &r.Action, &path, &success, &errMsg, &detail); err != nil {
			return nil, fmt.Errorf("scan audit log: %w", err)
		}
		r.Start = time.Unix(start, 0)
		r.Duration = time.Duration(ms) * time.Millisecond
		r.Author = author.String
		r.Path = path.String
		r.Success = success == 1
		r.Error = errMsg.String
		r.Detail = detail.String
		records = append(records, r)
	}
	return records, rows.Err()
}

// Prune deletes records older than before and returns how many were (or,
// with dryRun, would be) removed.
func Prune(ctx context.Context, before time.Time, dryRun bool) (int64, error) {
	l, err := current()
	if err != nil {
		return 0, err
	}
	if dryRun {
		var n int64
		err := l.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM log WHERE start < ?`, before.Unix()).Scan(&n)
		if err != nil {
			return 0, fmt.Errorf("count audit log: %w", err)
		}
		return n, nil
	}
	res, err := l.db.ExecContext(ctx, `DELETE FROM log WHERE start < ?`, before.Unix())
	if err != nil {
		return 0, fmt.Errorf("prune audit log: %w", err)
	}
	return res.RowsAffected()
}

func (f Filter) clauses(workspace string) ([]string, []any) {
	var where []string
	var args []any
	if !f.Since.IsZero() {
		where = append(where, "start >= ?")
		args = append(args, f.Since.Unix())
	}
	switch {
	case strings.HasSuffix(f.Source, ":"):
		where = append(where, "source LIKE ?")
		args = append(args, f.Source+"%")
	case f.Source != "":
		where = append(where, "source = ?")
		args = append(args, f.Source)
	}
	if f.Workspace {
		where = append(where, "workspace = ?")
		args = append(args, workspace)
	}
	if f.Failed {
		where = append(where, "success = 0")
	}
	return where, args
}
