/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

package cmd

import (
	"github.com/jpl-au/vgrep/internal/log"
	"github.com/jpl-au/vgrep/internal/rgrep"
	"github.com/spf13/cobra"
)

var rgrepCmd = &cobra.Command{
	Use:   "rgrep [-n] PATTERN [PATH]",
	Short: "Search mounted stores directly, no local fallback",
	Long: `Forward PATTERN straight to the mounted store's grep operation and
print its hits as path:line (path:number:line with -n). With no PATH,
every mount is searched in declaration order. Exit codes: 0 matches,
1 no matches, 2 error.`,
	DisableFlagParsing: true,
	Run: func(cmd *cobra.Command, args []string) {
		code := rgrep.Run(cmd.Context(), out, errOut, mountTable(), args)

		ev := log.Event("search:rgrep", "search").Detail("exit", code)
		if code == rgrep.ExitError {
			ev.Write(errSearchFailed)
		} else {
			ev.Write(nil)
		}
		setExit(code)
	},
}

func init() {
	rootCmd.AddCommand(rgrepCmd)
}
