// write.go implements the thin write-side passthrough.
//
// Mounted search never writes; these operations exist so stores can be
// populated and pruned through the same binary (put/rm passthrough) and
// by tests.

package store

import (
	"context"
	"fmt"
	"time"
)

// Put creates or replaces the document at path. New documents receive a
// generated key; existing documents keep theirs.
func (s *SQLiteStore) Put(ctx context.Context, path, content string) error {
	if err := validPath(path); err != nil {
		return err
	}
	key, err := genKey()
	if err != nil {
		return err
	}
	now := time.Now().Unix()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO documents (key, path, content, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET content = excluded.content, updated_at = excluded.updated_at`,
		key, path, content, now, now)
	if err != nil {
		return fmt.Errorf("put %s: %w", path, err)
	}
	return nil
}

// Delete removes the document at path. Returns ErrNotFound when no such
// document exists.
func (s *SQLiteStore) Delete(ctx context.Context, path string) error {
	if err := validPath(path); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE path = ?`, path)
	if err != nil {
		return fmt.Errorf("delete %s: %w", path, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete %s: %w", path, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
