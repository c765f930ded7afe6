// log_storage.go implements SQLite-based persistent audit logging.
//
// Separated from log.go to isolate database concerns. log.go provides the
// fluent API for building entries; this file handles persistence. The
// workspace field stores a hash of the directory path so logs can be
// aggregated per workspace without recording the path itself.
//
// Errors during logging are best-effort: a failed log write must never
// break the search operation it describes.

package log

import (
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/crypto/blake2b"
	_ "modernc.org/sqlite"
)

// Logger writes audit log entries to a SQLite database.
type Logger struct {
	db        *sql.DB
	workspace string
}

func (l *Logger) log(e Entry) {
	var detail *string
	if len(e.Detail) > 0 {
		if b, err := json.Marshal(e.Detail); err == nil {
			s := string(b)
			detail = &s
		}
	}

	success := 0
	if e.Success {
		success = 1
	}

	_, err := l.db.Exec(`
		INSERT INTO log (start, end, workspace, source, action, path, success, error, detail)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.Start, e.End, l.workspace, e.Source, e.Action,
		nilIfEmpty(e.Path), success, nilIfEmpty(e.Error), detail,
	)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "vgrep: audit log write failed: %v\n", err)
	}
}

// dbPathFunc is the function that returns the database path.
// Tests can override this to use a temp directory.
var dbPathFunc = defaultDBPath

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		// Fall back to the current directory if home cannot be
		// determined, so logging still works in containers.
		return filepath.Join(".vgrep", "log", "vgrep-log.db")
	}
	return filepath.Join(home, ".vgrep", "log", "vgrep-log.db")
}

func dbPath() string {
	return dbPathFunc()
}

// DBPath returns the path to the log database.
func DBPath() string {
	return dbPath()
}

// hash creates a workspace identifier from the directory path, enabling
// cross-workspace log queries while preserving privacy.
func hash(s string) string {
	h, err := blake2b.New(8, nil) // 64-bit = 16 hex chars
	if err != nil {
		// Should never happen with nil key, but don't silently ignore
		panic("blake2b.New failed: " + err.Error())
	}
	h.Write([]byte(s))
	return hex.EncodeToString(h.Sum(nil))
}

// migrate creates the log table if it doesn't exist. Safe for concurrent
// access.
func migrate(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS log (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			start     INTEGER NOT NULL,
			end       INTEGER NOT NULL,
			workspace TEXT NOT NULL,
			source    TEXT NOT NULL,
			action    TEXT NOT NULL,
			path      TEXT,
			success   INTEGER NOT NULL,
			error     TEXT,
			detail    TEXT
		);
		CREATE INDEX IF NOT EXISTS idx_log_start ON log(start);
		CREATE INDEX IF NOT EXISTS idx_log_workspace ON log(workspace);
		CREATE INDEX IF NOT EXISTS idx_log_source ON log(source);
	`)
	return err
}

// nilIfEmpty returns nil for empty strings, reducing NULL checks in
// queries.
func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
