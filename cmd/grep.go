/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// grep.go wires the unified search pipeline into the CLI.
//
// Flag parsing is disabled on the cobra command: grep's argv grammar
// (combined short clusters, -e/-m with inline or separate values, "--"
// making the next token a pattern unconditionally) cannot be expressed
// with pflag, so the raw arguments go straight to the search package's
// own parser.

package cmd

import (
	"context"
	"errors"
	"os"

	"github.com/jpl-au/vgrep/internal/grep"
	"github.com/jpl-au/vgrep/internal/log"
	"github.com/jpl-au/vgrep/internal/vfs"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var grepCmd = &cobra.Command{
	Use:   "grep [OPTIONS] PATTERN [FILE...]",
	Short: "Search files and mounted stores for a pattern",
	Long: `Search for PATTERN in each FILE, printing matching lines. Paths under
a mount prefix are searched through the store's grep operation; all other
paths are scanned locally. Output and exit codes follow classic grep:
0 when matches were found, 1 when none were, 2 on error.

With no FILE and piped input, reads standard input.`,
	DisableFlagParsing: true,
	Run: func(cmd *cobra.Command, args []string) {
		runGrep(cmd.Context(), args)
	},
}

// errSearchFailed marks a failed search in the audit log; the user-facing
// message has already gone to stderr by the time this is recorded.
var errSearchFailed = errors.New("search failed")

func init() {
	rootCmd.AddCommand(grepCmd)
}

func runGrep(ctx context.Context, args []string) {
	if ctx == nil {
		ctx = context.Background()
	}
	env := grep.Env{
		FS:     vfs.OS{},
		Mounts: mountTable(),
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		env.Stdin = os.Stdin
	}

	code := grep.Run(ctx, out, errOut, env, args)

	ev := log.Event("search:grep", "search").Detail("args", len(args)).Detail("exit", code)
	if code == grep.ExitError {
		ev.Write(errSearchFailed)
	} else {
		ev.Write(nil)
	}
	setExit(code)
}
