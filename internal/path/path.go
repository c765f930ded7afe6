// Package path provides workspace and store path normalisation and
// validation.
//
// Every path argument a user types passes through Clean before mount
// classification, and every store-native path passes through Validate
// before storage or retrieval. Traversal components are rejected so a
// path can never escape a mount or the store.
//
// Normalisation rules:
//   - Paths use forward slashes
//   - No leading or trailing slashes
//   - No "." or ".." components
package path

import (
	"errors"
	"path/filepath"
	"strings"
)

// ErrInvalid indicates the provided path is invalid.
var ErrInvalid = errors.New("invalid path")

// Clean normalises a user-supplied workspace path for mount
// classification: forward slashes, no leading or trailing slash,
// relative to the workspace root.
func Clean(p string) string {
	// Backslashes are explicit because filepath.ToSlash won't convert
	// them on Unix, and Windows-style paths do appear in shared configs.
	p = strings.ReplaceAll(p, "\\", "/")
	p = filepath.ToSlash(filepath.Clean(p))
	p = strings.TrimPrefix(p, "/")
	return strings.TrimSuffix(p, "/")
}

// Validate rejects paths a store never accepts: empty, absolute,
// slash-terminated, or containing "." or ".." components.
func Validate(p string) error {
	if p == "" || strings.HasPrefix(p, "/") || strings.HasSuffix(p, "/") {
		return ErrInvalid
	}
	for _, seg := range strings.Split(p, "/") {
		if seg == "" || seg == "." || seg == ".." {
			return ErrInvalid
		}
	}
	return nil
}
