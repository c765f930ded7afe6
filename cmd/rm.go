/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

package cmd

import (
	"fmt"

	"github.com/jpl-au/vgrep/internal/log"
	"github.com/spf13/cobra"
)

var rmCmd = &cobra.Command{
	Use:   "rm PATH",
	Short: "Remove a document from a mounted store",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		err := runRm(cmd, args[0])
		log.Event("store:rm", "write").Path(args[0]).Write(err)
		return err
	},
}

func init() {
	rootCmd.AddCommand(rmCmd)
}

func runRm(cmd *cobra.Command, arg string) error {
	point, native, err := findMount(arg)
	if err != nil {
		return err
	}
	s, err := writableStore(point)
	if err != nil {
		return err
	}
	if err := s.Delete(cmd.Context(), native); err != nil {
		return fmt.Errorf("%s: %w", arg, err)
	}
	fmt.Fprintf(out, "removed %s\n", arg)
	return nil
}
