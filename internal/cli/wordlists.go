package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jannes/han-cihui/internal/db"
	"github.com/jannes/han-cihui/internal/wordlist"
)

var wordlistsCmd = &cobra.Command{
	Use:   "wordlists",
	Short: "List saved word lists",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		metas, err := store.SelectWordListMetadata()
		if err != nil {
			return err
		}
		if len(metas) == 0 {
			fmt.Println("no saved word lists")
			return nil
		}
		for _, meta := range metas {
			fmt.Printf("%d\t%s (%s)\t%s\tmin-occ %d\n",
				meta.ID,
				meta.BookName,
				meta.AuthorName,
				meta.CreateTime.Format("2006-01-02"),
				meta.Query.MinOccurrenceWords)
		}
		return nil
	},
}

var wordlistsExportOut string

var wordlistsExportCmd = &cobra.Command{
	Use:   "export <id>",
	Short: "Write a saved word list as JSON to stdout or a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, list, err := openWordList(args[0])
		if err != nil {
			return err
		}
		defer store.Close()

		if wordlistsExportOut != "" {
			return writeWordListFile(wordlistsExportOut, *list)
		}
		return wordlist.WriteJSON(os.Stdout, *list)
	},
}

var wordlistsTagCmd = &cobra.Command{
	Use:   "tag <id> <category> <word>...",
	Short: "Tag words of a saved list as learn, not-learn or ignore",
	Args:  cobra.MinimumNArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		category, err := wordlist.ParseCategory(args[1])
		if err != nil {
			return err
		}

		store, list, err := openWordList(args[0])
		if err != nil {
			return err
		}
		defer store.Close()

		for _, word := range args[2:] {
			if !list.TagWord(word, category) {
				return fmt.Errorf("word %q is not in list %d", word, list.Metadata.ID)
			}
		}
		if err := store.UpdateWordListChapters(list.Metadata.ID, list.Chapters); err != nil {
			return err
		}
		fmt.Printf("tagged %d words as %s\n", len(args[2:]), category)
		return nil
	},
}

var wordlistsWordsCmd = &cobra.Command{
	Use:   "words <id> <category>",
	Short: "Print the words of a saved list tagged with a category",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		category, err := wordlist.ParseCategory(args[1])
		if err != nil {
			return err
		}

		store, list, err := openWordList(args[0])
		if err != nil {
			return err
		}
		defer store.Close()

		for _, word := range list.WordsByCategory(category) {
			fmt.Println(word)
		}
		return nil
	},
}

var wordlistsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a saved word list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseListID(args[0])
		if err != nil {
			return err
		}
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.DeleteWordList(id); err != nil {
			return err
		}
		fmt.Printf("deleted word list %d\n", id)
		return nil
	},
}

func init() {
	wordlistsExportCmd.Flags().StringVar(&wordlistsExportOut, "out", "", "write to this file instead of stdout")
	wordlistsCmd.AddCommand(wordlistsExportCmd)
	wordlistsCmd.AddCommand(wordlistsTagCmd)
	wordlistsCmd.AddCommand(wordlistsWordsCmd)
	wordlistsCmd.AddCommand(wordlistsDeleteCmd)
	rootCmd.AddCommand(wordlistsCmd)
}

func parseListID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid word list id %q", arg)
	}
	return id, nil
}

// openWordList opens the store and loads the list with the given id,
// closing the store again on failure.
func openWordList(arg string) (*db.Store, *wordlist.WordList, error) {
	id, err := parseListID(arg)
	if err != nil {
		return nil, nil, err
	}
	store, err := openStore()
	if err != nil {
		return nil, nil, err
	}
	list, err := store.SelectWordList(id)
	if err != nil {
		store.Close()
		return nil, nil, err
	}
	if list == nil {
		store.Close()
		return nil, nil, fmt.Errorf("no word list with id %d", id)
	}
	return store, list, nil
}
