// Package store is the SQLite-backed reference substrate. It persists
// documents in a single database file and implements the three-operation
// remote.Backend contract (read, list, grep) that vgrep mounts consume,
// plus the thin write-side passthrough used to populate a store.
//
// The substrate is deliberately opaque to callers: paths in and out of
// this package are native store paths, and the grep operation reports
// whole-line hits only. How matching happens inside (row scans with the
// standard regexp engine) is an implementation detail a future backend is
// free to change.
package store

import (
	"errors"
	"time"
)

var (
	// ErrNotFound indicates the requested document does not exist.
	ErrNotFound = errors.New("document not found")
	// ErrInvalidPath rejects empty or traversal-bearing document paths.
	ErrInvalidPath = errors.New("invalid document path")
)

// Document is one stored document.
type Document struct {
	ID        int64  // Database primary key (internal)
	Key       string // Unique 8-char identifier
	Path      string // Native store path (e.g. "docs/readme")
	Content   string // Full document content
	CreatedAt int64  // Unix timestamp of creation
	UpdatedAt int64  // Unix timestamp of the last write
}

// Age returns how long ago the document was last written.
func (d *Document) Age() time.Duration {
	return time.Since(time.Unix(d.UpdatedAt, 0))
}
