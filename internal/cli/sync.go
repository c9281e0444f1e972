package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jannes/han-cihui/internal/anki"
	"github.com/jannes/han-cihui/internal/config"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync vocabulary from the Anki collection",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		updated, removed, err := anki.SyncToStore(store, config.AnkiDBPath(), config.AnkiNoteFields())
		if err != nil {
			return err
		}
		fmt.Printf("synced %d words, removed %d stale words\n", updated, removed)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)
}
