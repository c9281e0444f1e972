package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print all known words, one per line",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		known, err := store.SelectKnownWords()
		if err != nil {
			return err
		}
		words := make([]string, 0, len(known))
		for word := range known {
			words = append(words, word)
		}
		sort.Strings(words)
		for _, word := range words {
			fmt.Println(word)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
