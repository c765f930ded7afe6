// search.go implements the substrate's grep operation.
//
// Separated from read.go because grep has different semantics: it takes a
// bare regex pattern, walks every document under a subtree, and reports
// whole-line hits only. No flags cross this boundary; callers that need
// case folding, inversion or sub-line spans evaluate on their own side.

package store

import (
	"bufio"
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/jpl-au/vgrep/internal/remote"
)

// maxScanLine bounds line length during row scans; documents with longer
// lines (minified blobs) fail the scan for that row only.
const maxScanLine = 10 * 1024 * 1024

// Grep searches the document at path and every document under it for the
// pattern, returning whole-line matches ordered by path then line number.
// The order is stable across calls so downstream aggregation stays
// deterministic.
func (s *SQLiteStore) Grep(ctx context.Context, pattern, path string) ([]remote.Match, error) {
	if err := validPath(path); err != nil {
		return nil, err
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT path, content FROM documents WHERE path = ? OR path LIKE ? ORDER BY path`,
		path, path+"/%")
	if err != nil {
		return nil, fmt.Errorf("grep %s: %w", path, err)
	}
	defer rows.Close()

	var matches []remote.Match
	for rows.Next() {
		var docPath, content string
		if err := rows.Scan(&docPath, &content); err != nil {
			return nil, fmt.Errorf("grep %s: %w", path, err)
		}
		hits, err := scanLines(re, docPath, content)
		if err != nil {
			return nil, fmt.Errorf("scanning %s: %w", docPath, err)
		}
		matches = append(matches, hits...)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("grep %s: %w", path, err)
	}
	return matches, nil
}

// scanLines finds all matching lines in one document. bufio.Scanner
// avoids materialising a line slice for documents that mostly won't
// match.
func scanLines(re *regexp.Regexp, path, content string) ([]remote.Match, error) {
	var hits []remote.Match
	scanner := bufio.NewScanner(strings.NewReader(content))
	scanner.Buffer(make([]byte, 64*1024), maxScanLine)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if re.MatchString(text) {
			hits = append(hits, remote.Match{Path: path, Line: line, Text: text})
		}
	}
	if err := scanner.Err(); err != nil {
		return hits, err
	}
	return hits, nil
}
