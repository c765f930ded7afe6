// Package format provides output formatting utilities for CLI display.
//
// Centralises presentation concerns (sizes, column alignment) so command
// implementations focus on the operation itself.
package format

import (
	"fmt"
	"io"

	"github.com/jpl-au/vgrep/internal/mount"
)

// Size formats a byte count as human-readable (e.g., "1.2K", "3.4M").
func Size(bytes int64) string {
	const (
		_        = iota
		KB int64 = 1 << (10 * iota)
		MB
		GB
	)
	switch {
	case bytes >= GB:
		return fmt.Sprintf("%.1fG", float64(bytes)/float64(GB))
	case bytes >= MB:
		return fmt.Sprintf("%.1fM", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.1fK", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%d", bytes)
	}
}

// Mounts renders the mount table, one point per line, prefix column
// padded so the native roots align.
func Mounts(w io.Writer, points []*mount.Point) {
	width := 0
	for _, p := range points {
		if len(p.Prefix) > width {
			width = len(p.Prefix)
		}
	}
	for _, p := range points {
		fmt.Fprintf(w, "%-*s -> %s\n", width, p.Prefix, p.Root)
	}
}
