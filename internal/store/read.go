// read.go implements the substrate's read and list operations.
//
// Separated from write.go to isolate read-only query logic. These are two
// of the three operations a mount consumes; grep lives in search.go.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jpl-au/vgrep/internal/remote"
)

// Compile-time check that the store satisfies the substrate contract a
// mount consumes. A missing or mis-signed operation fails the build here
// rather than at mount time.
var _ remote.Backend = (*SQLiteStore)(nil)

// Read returns the content of the document at path.
func (s *SQLiteStore) Read(ctx context.Context, path string) (string, error) {
	if err := validPath(path); err != nil {
		return "", err
	}
	var content string
	err := s.db.QueryRowContext(ctx,
		`SELECT content FROM documents WHERE path = ?`, path).Scan(&content)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return content, nil
}

// List returns the immediate children of path, sorted by name. A child
// that is both a document and a subtree appears twice, once per role, so
// walkers see both. Listing a path with no descendants returns an empty
// slice, not an error.
func (s *SQLiteStore) List(ctx context.Context, path string) ([]remote.Entry, error) {
	if err := validPath(path); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT path FROM documents WHERE path LIKE ? ORDER BY path`, path+"/%")
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", path, err)
	}
	defer rows.Close()

	files := map[string]bool{}
	dirs := map[string]bool{}
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("list %s: %w", path, err)
		}
		rest := p[len(path)+1:]
		if i := strings.IndexByte(rest, '/'); i >= 0 {
			dirs[rest[:i]] = true
		} else {
			files[rest] = true
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list %s: %w", path, err)
	}

	var entries []remote.Entry
	for name := range files {
		entries = append(entries, remote.Entry{Name: name, Dir: false})
	}
	for name := range dirs {
		entries = append(entries, remote.Entry{Name: name, Dir: true})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Name != entries[j].Name {
			return entries[i].Name < entries[j].Name
		}
		return !entries[i].Dir
	})
	return entries, nil
}

// Meta returns the full document row at path, content included; the
// CLI uses it for sizes in long listings.
func (s *SQLiteStore) Meta(ctx context.Context, path string) (*Document, error) {
	if err := validPath(path); err != nil {
		return nil, err
	}
	var d Document
	err := s.db.QueryRowContext(ctx,
		`SELECT id, key, path, content, created_at, updated_at FROM documents WHERE path = ?`,
		path).Scan(&d.ID, &d.Key, &d.Path, &d.Content, &d.CreatedAt, &d.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("meta %s: %w", path, err)
	}
	return &d, nil
}
