// Package log provides the audit trail for llmfs tool invocations.
// Entries are stored in ~/.llmfs/log/llmfs-log.db and record every CLI
// command and MCP tool call, across workspaces.
//
// # Fluent API
//
//	log.Event("mcp:read_file", "read").
//		Author(author).
//		Path(p).
//		Detail("lines", r.Lines).
//		Write(err)
//
// The source is "{extension}:{command}" for CLI commands (e.g. "fs:write",
// "search:grep") or "mcp:{tool}" for MCP tools (e.g. "mcp:replace").
//
// Design: logging is best effort. A failed audit insert is reported on
// stderr and never fails the operation being recorded.
package log

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

var (
	global *Logger
	mu     sync.Mutex
)

// Entry is one audited operation.
type Entry struct {
	Source string // "fs:read", "mcp:glob"
	Author string
	Action string // read, write, edit, list, search, exec, fetch
	Path   string // workspace path or URL the operation targeted

	Start    time.Time
	Duration time.Duration

	Success bool
	Error   string
	Detail  map[string]any
}

// Builder constructs a log entry. Create with [Event], chain setters,
// finish with [Builder.Write].
type Builder struct {
	entry Entry
}

// Event starts an entry for an operation and stamps its start time.
func Event(source, action string) *Builder {
	return &Builder{
		entry: Entry{
			Source: source,
			Action: action,
			Start:  time.Now(),
		},
	}
}

// Author sets who performed the operation. MCP tools use "mcp".
func (b *Builder) Author(author string) *Builder {
	b.entry.Author = author
	return b
}

// Path sets the file, directory or URL the operation targeted.
func (b *Builder) Path(path string) *Builder {
	b.entry.Path = path
	return b
}

// Detail adds operation-specific data: patterns, counts, exit codes.
func (b *Builder) Detail(key string, value any) *Builder {
	if b.entry.Detail == nil {
		b.entry.Detail = make(map[string]any)
	}
	b.entry.Detail[key] = value
	return b
}

// Write records the entry, deriving success from err.
func (b *Builder) Write(err error) {
	b.entry.Duration = time.Since(b.entry.Start)
	b.entry.Success = err == nil
	if err != nil {
		b.entry.Error = err.Error()
	}
	Log(b.entry)
}

// Open initialises the global logger. Safe to call multiple times.
// Callers may ignore the error; logging is then a no-op.
func Open() error {
	mu.Lock()
	defer mu.Unlock()

	if global != nil {
		return nil
	}

	p := dbPath()
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return err
	}

	db, err := sql.Open("sqlite", p)
	if err != nil {
		return err
	}

	if err := migrate(db); err != nil {
		db.Close()
		return err
	}

	global = &Logger{db: db}
	return nil
}

// SetWorkspace sets the workspace identifier for subsequent entries.
// root should be the absolute workspace root; only its hash is stored.
func SetWorkspace(root string) {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.workspace = hash(root)
	}
}

// Log writes an entry. A no-op when the logger is not open.
func Log(e Entry) {
	mu.Lock()
	l := global
	mu.Unlock()

	if l == nil {
		return
	}
	l.log(e)
}

// Close closes the global logger.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.db.Close()
		global = nil
	}
}
