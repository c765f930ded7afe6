/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

package cmd

import (
	"fmt"

	"github.com/jpl-au/vgrep/internal/format"
	"github.com/spf13/cobra"
)

var mountsCmd = &cobra.Command{
	Use:   "mounts",
	Short: "Show the configured mount table",
	Run: func(_ *cobra.Command, _ []string) {
		points := table.Points()
		if len(points) == 0 {
			fmt.Fprintln(out, "no mounts configured (run 'vgrep init')")
			return
		}
		format.Mounts(out, points)
	},
}

func init() {
	rootCmd.AddCommand(mountsCmd)
}
