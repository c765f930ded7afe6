/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/jpl-au/vgrep/internal/log"
	"github.com/spf13/cobra"
)

var putCmd = &cobra.Command{
	Use:   "put PATH [FILE]",
	Short: "Write a document into a mounted store",
	Long: `Store the content of FILE (or standard input when omitted) at the
workspace PATH, which must fall under a configured mount. Creates or
replaces the document.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		err := runPut(cmd, args)
		log.Event("store:put", "write").Path(args[0]).Write(err)
		return err
	},
}

func init() {
	rootCmd.AddCommand(putCmd)
}

func runPut(cmd *cobra.Command, args []string) error {
	point, native, err := findMount(args[0])
	if err != nil {
		return err
	}
	s, err := writableStore(point)
	if err != nil {
		return err
	}

	var content []byte
	if len(args) == 2 {
		content, err = os.ReadFile(args[1])
	} else {
		content, err = io.ReadAll(cmd.InOrStdin())
	}
	if err != nil {
		return fmt.Errorf("reading content: %w", err)
	}

	if err := s.Put(cmd.Context(), native, string(content)); err != nil {
		return err
	}
	fmt.Fprintf(out, "put %s (%d bytes)\n", args[0], len(content))
	return nil
}
