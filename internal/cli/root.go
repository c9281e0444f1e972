// Package cli wires the subcommands of the han-cihui binary.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jannes/han-cihui/internal/config"
	"github.com/jannes/han-cihui/internal/db"
	"github.com/jannes/han-cihui/internal/tui"
)

var rootCmd = &cobra.Command{
	Use:           "han-cihui",
	Short:         "Manage Chinese vocabulary knowledge against real books",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()
		return tui.Run(store)
	},
}

// Execute runs the root command, which opens the TUI when no subcommand is
// given.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// openStore opens the application database, creating the data directory on
// first use.
func openStore() (*db.Store, error) {
	if err := config.EnsureDataDir(); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return db.Open(config.DBPath())
}
