// Package log provides centralised audit logging for vgrep operations.
// Logs are stored in ~/.vgrep/log/vgrep-log.db and track search commands
// and MCP tool invocations across workspaces.
//
// # Fluent API
//
// Use the fluent builder API to construct and write log entries:
//
//	log.Event("search:grep", "search").
//		Path(path).
//		Detail("pattern", pattern).
//		Detail("matches", n).
//		Write(err)
//
// The source parameter follows the format "{group}:{command}" for CLI
// commands or "mcp:{tool}" for MCP tools. Examples: "search:grep",
// "store:put", "mcp:grep".
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

// Entry represents a single log entry.
type Entry struct {
	Source string // e.g., "search:grep", "mcp:grep"
	Action string // verb: search, read, write, list, serve
	Path   string // input: path or prefix targeted, if any

	// Timing
	Start int64 // unix timestamp when Event() called
	End   int64 // unix timestamp when Write() called

	Success bool           // whether the operation succeeded
	Error   string         // error message if failed
	Detail  map[string]any // operation-specific data (pattern, counts)
}

// Builder constructs a log entry using a fluent API.
// Create with [Event], chain methods to set fields, then call
// [Builder.Write] to record the entry.
type Builder struct {
	entry Entry
}

// Event creates a new log entry builder for an operation.
func Event(source, action string) *Builder {
	return &Builder{
		entry: Entry{
			Source: source,
			Action: action,
			Start:  time.Now().Unix(),
		},
	}
}

// Path sets the path or prefix this operation targets.
func (b *Builder) Path(path string) *Builder {
	b.entry.Path = path
	return b
}

// Detail adds a key-value pair to the entry's detail map. Can be called
// multiple times.
func (b *Builder) Detail(key string, value any) *Builder {
	if b.entry.Detail == nil {
		b.entry.Detail = make(map[string]any)
	}
	b.entry.Detail[key] = value
	return b
}

// Write records the entry, deriving success/failure from err.
func (b *Builder) Write(err error) {
	b.entry.End = time.Now().Unix()
	b.entry.Success = err == nil
	if err != nil {
		b.entry.Error = err.Error()
	}
	Log(b.entry)
}

// Open initialises the global logger. Safe to call multiple times.
// Errors are returned but callers may choose to ignore them
// (best-effort logging).
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

// SetWorkspace sets the workspace identifier for subsequent log entries.
// The dir should be the absolute path to the workspace root.
func SetWorkspace(dir string) {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.workspace = hash(dir)
	}
}

// Log writes an entry. Safe to call if the logger is not initialised
// (no-op).
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
