/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

package cmd

import (
	"fmt"

	"github.com/jpl-au/vgrep/internal/version"
	"github.com/spf13/cobra"
)

var versionShort bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show build version information",
	Run: func(_ *cobra.Command, _ []string) {
		if versionShort {
			fmt.Fprintln(out, version.Short())
			return
		}
		fmt.Fprint(out, version.Get().String())
	},
}

func init() {
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "print only the version tag")
	rootCmd.AddCommand(versionCmd)
}
