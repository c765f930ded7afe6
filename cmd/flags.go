/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// flags.go holds shared CLI state and accessors.
//
// Separated from root.go to isolate process-wide plumbing (writers, exit
// code, mount table construction) from command wiring. Commands read
// shared state through accessors rather than touching the variables, so
// tests can substitute writers without reaching into cobra internals.

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/jpl-au/vgrep/internal/config"
	"github.com/jpl-au/vgrep/internal/mount"
	"github.com/jpl-au/vgrep/internal/store"
)

// out and errOut are the output writers for commands. Tests can replace
// them to capture output.
var (
	out    io.Writer = os.Stdout
	errOut io.Writer = os.Stderr
)

// exitCode is the process exit code requested by the executed command.
// Search commands use the grep convention (0/1/2); everything else
// leaves it at zero and relies on cobra's error path.
var exitCode int

// table is the mount table for this invocation, built by initMounts.
var table *mount.Table

// Out returns the stdout writer.
func Out() io.Writer { return out }

// ErrOut returns the stderr writer.
func ErrOut() io.Writer { return errOut }

// SetOut sets the output writers (for testing).
func SetOut(stdout, stderr io.Writer) {
	out = stdout
	errOut = stderr
}

// setExit records the exit code for Execute to apply. The highest code
// wins when several commands run in one process (tests).
func setExit(code int) {
	if code > exitCode {
		exitCode = code
	}
}

// initMounts loads configuration and opens every declared store. A
// missing config yields an empty table: every path is then local. A
// declared store that cannot be opened is a configuration error, not a
// search result.
func initMounts() error {
	if table != nil {
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	var points []*mount.Point
	for _, m := range cfg.Mounts {
		if _, err := os.Stat(m.Store); err != nil {
			return fmt.Errorf("mount %q: store %s not found (run 'vgrep init' or fix %s)", m.Prefix, m.Store, config.LocalPath())
		}
		st, err := store.Open(m.Store)
		if err != nil {
			return fmt.Errorf("mount %q: %w", m.Prefix, err)
		}
		points = append(points, &mount.Point{Prefix: m.Prefix, Root: m.Root, Backend: st})
	}

	table, err = mount.NewTable(points...)
	return err
}
