/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jpl-au/vgrep/internal/config"
	"github.com/jpl-au/vgrep/internal/log"
	"github.com/jpl-au/vgrep/internal/store"
	"github.com/spf13/cobra"
)

var initPrefix string

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a workspace config and an empty store",
	Long: `Create .vgrep/ in the current directory with a local config declaring
one mount, and initialise its store database. Safe to re-run: an
existing store is left alone and the mount is only added once.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		err := runInit(initPrefix)
		log.Event("store:init", "write").Path(initPrefix).Write(err)
		return err
	},
}

func init() {
	initCmd.Flags().StringVar(&initPrefix, "prefix", "docs", "workspace prefix for the default mount")
	rootCmd.AddCommand(initCmd)
}

func runInit(prefix string) error {
	if err := os.MkdirAll(".vgrep", 0755); err != nil {
		return fmt.Errorf("creating .vgrep: %w", err)
	}

	dbPath := filepath.Join(".vgrep", prefix+".db")
	s, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer s.Close()
	if err := s.Init(); err != nil {
		return err
	}

	cfg, err := config.LoadScope(config.ScopeLocal)
	if err != nil {
		return err
	}
	for _, m := range cfg.Mounts {
		if m.Prefix == prefix {
			fmt.Fprintf(out, "mount %q already configured\n", prefix)
			return nil
		}
	}
	cfg.Mounts = append(cfg.Mounts, config.Mount{Prefix: prefix, Store: dbPath})
	if err := cfg.SaveScope(config.ScopeLocal); err != nil {
		return err
	}

	fmt.Fprintf(out, "initialised %s, mounted at %q\n", dbPath, prefix)
	return nil
}
