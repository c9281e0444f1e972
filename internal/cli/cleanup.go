package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jannes/han-cihui/internal/db"
	"github.com/jannes/han-cihui/internal/extraction"
)

var cleanupConfirm bool

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Split stored words containing non-hanzi into clean entries",
	Long: `Cleanup finds stored words that contain characters other than hanzi,
usually from Anki fields carrying several variants in one field. Each such
entry is replaced by its hanzi-only parts, keeping the original status.
Without --confirm only the planned changes are printed.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()
		return cleanupWords(store, cleanupConfirm)
	},
}

func init() {
	cleanupCmd.Flags().BoolVar(&cleanupConfirm, "confirm", false, "apply the changes instead of printing them")
	rootCmd.AddCommand(cleanupCmd)
}

func cleanupWords(store *db.Store, confirm bool) error {
	vocab, err := store.SelectAllWords()
	if err != nil {
		return err
	}

	var dirty []string
	replacements := make(map[db.VocabStatus][]string)
	for word, status := range vocab {
		parts := extraction.SplitHanzi(word)
		if len(parts) == 1 && parts[0] == word {
			continue
		}
		dirty = append(dirty, word)
		for _, part := range parts {
			if _, exists := vocab[part]; !exists {
				replacements[status] = append(replacements[status], part)
			}
		}
		if !confirm {
			fmt.Printf("%s -> %v\n", word, parts)
		}
	}

	if len(dirty) == 0 {
		fmt.Println("nothing to clean up")
		return nil
	}
	if !confirm {
		fmt.Printf("%d words would be replaced, rerun with --confirm to apply\n", len(dirty))
		return nil
	}

	if err := store.DeleteWords(dirty); err != nil {
		return err
	}
	for status, words := range replacements {
		if err := store.AddExternalWords(words, status); err != nil {
			return err
		}
	}
	fmt.Printf("replaced %d words\n", len(dirty))
	return nil
}
