/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

package cmd

import (
	"fmt"
	"strings"

	"github.com/jpl-au/vgrep/internal/log"
	"github.com/spf13/cobra"
)

var catCmd = &cobra.Command{
	Use:   "cat PATH",
	Short: "Print a document from a mounted store",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		err := runCat(cmd, args[0])
		log.Event("store:cat", "read").Path(args[0]).Write(err)
		return err
	},
}

func init() {
	rootCmd.AddCommand(catCmd)
}

func runCat(cmd *cobra.Command, arg string) error {
	point, native, err := findMount(arg)
	if err != nil {
		return err
	}
	content, err := point.Backend.Read(cmd.Context(), native)
	if err != nil {
		return fmt.Errorf("%s: %w", arg, err)
	}
	fmt.Fprint(out, content)
	if !strings.HasSuffix(content, "\n") {
		fmt.Fprintln(out)
	}
	return nil
}
