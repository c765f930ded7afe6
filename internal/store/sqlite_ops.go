// sqlite_ops.go provides SQLite connection management and low-level
// helpers.
//
// Separated to isolate SQLite-specific concerns (pragmas, driver
// registration, key generation) from the substrate operations. This is
// the only file that imports the driver.

package store

import (
	"crypto/rand"
	"database/sql"
	"encoding/base32"
	"fmt"
	"strings"

	"github.com/jpl-au/vgrep/internal/path"

	// Register sqlite driver
	_ "modernc.org/sqlite"
)

// SQLiteStore implements the substrate over a single SQLite database in
// WAL mode, so a serve process can read while a put writes.
type SQLiteStore struct {
	db *sql.DB
}

// Open opens the database file at path and configures it. The caller
// should defer Close on the returned store.
func Open(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}

	// WAL allows concurrent readers during writes; the busy timeout
	// covers short lock contention between a CLI call and a server.
	for _, pragma := range []string{
		`PRAGMA journal_mode=WAL`,
		`PRAGMA busy_timeout=5000`,
		`PRAGMA synchronous=NORMAL`,
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: %w", pragma, err)
		}
	}

	return &SQLiteStore{db: db}, nil
}

// Init creates tables and indexes if they don't exist. Safe to call
// repeatedly; the schema uses IF NOT EXISTS throughout.
func (s *SQLiteStore) Init() error {
	return execSchema(s.db)
}

// Close releases the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// genKey returns a random 8-character base32 document key. Keys give
// documents a stable identity that survives path rewrites.
func genKey() (string, error) {
	var b [5]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", fmt.Errorf("generate key: %w", err)
	}
	return strings.ToLower(base32.StdEncoding.EncodeToString(b[:])), nil
}

// validPath rejects paths the store never accepts, mapping the shared
// validation error onto the store's own sentinel.
func validPath(p string) error {
	if err := path.Validate(p); err != nil {
		return ErrInvalidPath
	}
	return nil
}
