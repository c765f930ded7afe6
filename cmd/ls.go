/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

package cmd

import (
	"fmt"

	"github.com/jpl-au/vgrep/internal/format"
	"github.com/jpl-au/vgrep/internal/log"
	"github.com/spf13/cobra"
)

var lsLong bool

var lsCmd = &cobra.Command{
	Use:   "ls PATH",
	Short: "List the children of a mounted store path",
	Long: `List the immediate children of the workspace PATH through the store's
list operation. Directories are suffixed with a slash. With -l, document
sizes are shown.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		err := runLs(cmd, args[0])
		log.Event("store:ls", "list").Path(args[0]).Write(err)
		return err
	},
}

func init() {
	lsCmd.Flags().BoolVarP(&lsLong, "long", "l", false, "show document sizes")
	rootCmd.AddCommand(lsCmd)
}

func runLs(cmd *cobra.Command, arg string) error {
	point, native, err := findMount(arg)
	if err != nil {
		return err
	}
	entries, err := point.Backend.List(cmd.Context(), native)
	if err != nil {
		return fmt.Errorf("%s: %w", arg, err)
	}

	for _, e := range entries {
		switch {
		case e.Dir:
			fmt.Fprintf(out, "%s/\n", e.Name)
		case lsLong:
			var size int64
			if s, err := writableStore(point); err == nil {
				if d, err := s.Meta(cmd.Context(), native+"/"+e.Name); err == nil {
					size = int64(len(d.Content))
				}
			}
			fmt.Fprintf(out, "%8s  %s\n", format.Size(size), e.Name)
		default:
			fmt.Fprintln(out, e.Name)
		}
	}
	return nil
}
