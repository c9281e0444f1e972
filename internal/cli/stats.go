package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jannes/han-cihui/internal/anki"
	"github.com/jannes/han-cihui/internal/config"
)

var statsAnki bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show vocabulary statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if statsAnki {
			return printAnkiStats()
		}
		return printVocabStats()
	},
}

func init() {
	statsCmd.Flags().BoolVar(&statsAnki, "anki", false, "show note counts from the Anki collection instead")
	rootCmd.AddCommand(statsCmd)
}

func printVocabStats() error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	info, err := store.VocabStats()
	if err != nil {
		return err
	}
	for _, line := range info.WordsDescription() {
		fmt.Println(line)
	}
	for _, line := range info.CharsDescription() {
		fmt.Println(line)
	}
	return nil
}

func printAnkiStats() error {
	collection, err := anki.OpenCollection(config.AnkiDBPath())
	if err != nil {
		return err
	}
	defer collection.Close()

	notes, err := collection.Notes(config.AnkiNoteFields())
	if err != nil {
		return err
	}

	var active, suspendedKnown, suspendedUnknown int
	for _, note := range notes {
		switch note.Status {
		case anki.StatusActive:
			active++
		case anki.StatusSuspendedKnown:
			suspendedKnown++
		case anki.StatusSuspendedUnknown:
			suspendedUnknown++
		}
	}
	fmt.Printf("notes active: %d\n", active)
	fmt.Printf("notes suspended known: %d\n", suspendedKnown)
	fmt.Printf("notes suspended unknown: %d\n", suspendedUnknown)
	return nil
}
