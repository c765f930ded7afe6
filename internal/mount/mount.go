// Package mount maintains the table mapping workspace path prefixes to
// storage substrates.
//
// Classification happens once per invocation, before any matching begins:
// each resolved file argument either falls under a mount point (and is
// remote-eligible) or it does not (and is local). The table also owns path
// translation in both directions, because the substrate's native paths are
// not the workspace's paths. The workspace root of a mount always maps to
// the substrate's own root path, never to the empty string.
package mount

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jpl-au/vgrep/internal/remote"
)

// ErrInvalidPrefix indicates a mount declaration with an unusable prefix.
var ErrInvalidPrefix = errors.New("invalid mount prefix")

// Point binds one workspace subtree to a substrate.
type Point struct {
	Prefix  string         // Workspace prefix, e.g. "docs"
	Root    string         // Substrate-native root path, never empty
	Backend remote.Backend // The substrate behind this subtree
}

// Native translates a mount-relative path to the substrate's native form.
// The mount root translates to the substrate root itself.
func (p *Point) Native(rel string) string {
	if rel == "" {
		return p.Root
	}
	return p.Root + "/" + rel
}

// FromNative translates a substrate-native path back to a workspace path.
// Paths outside the mount's native root are reported as not ours; a
// substrate should never return them, but a buggy one must not corrupt
// workspace output.
func (p *Point) FromNative(native string) (string, bool) {
	if native == p.Root {
		return p.Prefix, true
	}
	if rest, ok := strings.CutPrefix(native, p.Root+"/"); ok {
		return p.Prefix + "/" + rest, true
	}
	return "", false
}

// Table is an ordered set of mount points.
type Table struct {
	points []*Point
}

// NewTable validates and assembles mount points. A point with no explicit
// native root uses its own prefix as the root. Prefixes must be clean
// relative paths with no traversal components.
func NewTable(points ...*Point) (*Table, error) {
	t := &Table{}
	for _, p := range points {
		prefix, err := normalise(p.Prefix)
		if err != nil {
			return nil, fmt.Errorf("mount %q: %w", p.Prefix, err)
		}
		p.Prefix = prefix
		if p.Root == "" {
			p.Root = prefix
		}
		t.points = append(t.points, p)
	}
	return t, nil
}

// Points returns the mount points in declaration order.
func (t *Table) Points() []*Point {
	return t.points
}

// Find classifies a resolved workspace path. When the path falls under a
// mount it returns the point and the mount-relative remainder ("" for the
// mount root itself). The longest matching prefix wins so nested mounts
// behave predictably.
func (t *Table) Find(path string) (*Point, string, bool) {
	var best *Point
	bestRel := ""
	for _, p := range t.points {
		if path == p.Prefix {
			if best == nil || len(p.Prefix) > len(best.Prefix) {
				best, bestRel = p, ""
			}
			continue
		}
		if rest, ok := strings.CutPrefix(path, p.Prefix+"/"); ok {
			if best == nil || len(p.Prefix) > len(best.Prefix) {
				best, bestRel = p, rest
			}
		}
	}
	if best == nil {
		return nil, "", false
	}
	return best, bestRel, true
}

// Close closes every backend, returning the first error encountered.
func (t *Table) Close() error {
	var first error
	for _, p := range t.points {
		if p.Backend == nil {
			continue
		}
		if err := p.Backend.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// normalise cleans a mount prefix: forward slashes, no leading or
// trailing slash, no traversal components.
func normalise(prefix string) (string, error) {
	if prefix == "" {
		return "", ErrInvalidPrefix
	}
	prefix = filepath.ToSlash(filepath.Clean(prefix))
	prefix = strings.TrimPrefix(prefix, "/")
	prefix = strings.TrimSuffix(prefix, "/")
	if prefix == "" || prefix == "." || strings.Contains(prefix, "..") {
		return "", ErrInvalidPrefix
	}
	return prefix, nil
}
