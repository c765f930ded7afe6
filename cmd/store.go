/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// store.go holds the shared plumbing for the store passthrough commands
// (put, cat, ls, rm): workspace-path classification and access to the
// writable store behind a mount.

package cmd

import (
	"fmt"

	"github.com/jpl-au/vgrep/internal/mount"
	"github.com/jpl-au/vgrep/internal/path"
	"github.com/jpl-au/vgrep/internal/store"
)

// findMount classifies a workspace path argument against the mount
// table, returning the owning point and the substrate-native path.
func findMount(arg string) (*mount.Point, string, error) {
	p, rel, ok := table.Find(path.Clean(arg))
	if !ok {
		return nil, "", fmt.Errorf("%s: not under a mount (see 'vgrep mounts')", arg)
	}
	return p, p.Native(rel), nil
}

// writableStore unwraps the concrete store behind a mount point. The
// search substrate contract is read-only; writes need the real store.
func writableStore(p *mount.Point) (*store.SQLiteStore, error) {
	s, ok := p.Backend.(*store.SQLiteStore)
	if !ok {
		return nil, fmt.Errorf("mount %q is not writable", p.Prefix)
	}
	return s, nil
}
