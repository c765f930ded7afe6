/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

package cmd

import (
	"github.com/jpl-au/vgrep/internal/log"
	"github.com/jpl-au/vgrep/internal/mcp"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server over stdio",
	Long: `Start a Model Context Protocol server on stdin/stdout, exposing the
grep and rgrep operations as tools and mounted documents as resources.
Intended to be launched by an MCP client, not interactively.`,
	RunE: func(_ *cobra.Command, _ []string) error {
		err := mcp.Serve()
		log.Event("mcp:serve", "serve").Write(err)
		return err
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
