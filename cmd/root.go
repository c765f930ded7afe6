/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// root.go defines the root command and CLI execution entry point.
//
// Design: PersistentPreRunE builds the mount table lazily - only commands
// that search or read stores trigger config loading and database opens.
// This lets bootstrap commands (init, guide) work before any config
// exists. The noMountCommands map controls which commands skip it.

package cmd

import (
	"fmt"
	"os"

	"github.com/jpl-au/vgrep/internal/log"
	"github.com/jpl-au/vgrep/internal/mount"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "vgrep",
	Short: "Unified grep over mounted document stores and the local filesystem",
	Long: `A text-search command for workspaces where some subtrees live in a
document store and the rest is the plain filesystem. Searching looks the
same either way: classic grep flags, identical output, identical exit
codes.`,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if noMountCommands[cmd.Name()] {
			return nil
		}
		return initMounts()
	},
}

// noMountCommands lists commands that must work without a mount table:
// bootstrap, documentation, shell completion, and serve (which builds
// its own table so it can report config problems over the protocol).
var noMountCommands = map[string]bool{
	"init":       true,
	"guide":      true,
	"serve":      true,
	"version":    true,
	"help":       true,
	"completion": true,
}

// Execute runs the root command and handles process lifecycle: audit log
// setup, mount teardown, and the search exit-code convention (0 matches,
// 1 no matches, 2 error).
func Execute() {
	// Initialise audit logger (warn if it fails, but continue)
	if err := log.Open(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: audit log unavailable: %v\n", err)
	}
	defer log.Close()

	if wd, err := os.Getwd(); err == nil {
		log.SetWorkspace(wd)
	}

	err := rootCmd.Execute()

	if table != nil {
		if closeErr := table.Close(); closeErr != nil {
			fmt.Fprintf(os.Stderr, "warning: closing mounts: %v\n", closeErr)
		}
	}

	log.Close()
	if err != nil {
		os.Exit(2)
	}
	if exitCode != 0 {
		os.Exit(exitCode)
	}
}

// RootCmd returns the root command for testing.
func RootCmd() *cobra.Command {
	return rootCmd
}

// mountTable returns the table built by initMounts, which may be empty
// when no config exists.
func mountTable() *mount.Table {
	return table
}
