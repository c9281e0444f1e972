package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jannes/han-cihui/internal/analysis"
	"github.com/jannes/han-cihui/internal/ebook"
	"github.com/jannes/han-cihui/internal/extraction"
	"github.com/jannes/han-cihui/internal/segmentation"
	"github.com/jannes/han-cihui/internal/wordlist"
)

var (
	analyzeDictOnly bool
	analyzeMinOcc   uint64
	analyzeSaveJSON string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <epub>",
	Short: "Analyze an epub against the known vocabulary",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		book, err := ebook.OpenBook(args[0])
		if err != nil {
			return err
		}

		mode := segmentation.ModeDefault
		if analyzeDictOnly {
			mode = segmentation.ModeDictionaryOnly
		}
		tok, err := segmentation.NewGseTokenizer(mode)
		if err != nil {
			return err
		}
		seg := segmentation.SegmentBook(tok, book)
		res := extraction.Extract(seg)

		knownWords, err := store.SelectKnownWords()
		if err != nil {
			return err
		}
		known := analysis.KnownWordsAndChars(knownWords)

		all := analysis.Analyze(res, analysis.QueryAll, known, tok)
		query := analysis.Query{MinOccurrenceWords: analyzeMinOcc}
		selected := analysis.Analyze(res, query, known, tok)

		fmt.Printf("extracted %d words, %d characters\n\n", res.WordCount, res.CharacterCount)
		fmt.Println(analysis.InfoTable(all, "all words"))
		fmt.Printf("\nwith min. occurrence %d:\n\n", analyzeMinOcc)
		fmt.Println(analysis.InfoTable(selected, "selected"))
		fmt.Println(analysis.ComprehensionTable(all, selected))

		if analyzeSaveJSON != "" {
			unknown := analysis.UnknownItems(res, query, known)
			list := wordlist.Construct(book.Title, book.Author, seg, query, unknown)
			if err := writeWordListFile(analyzeSaveJSON, list); err != nil {
				return err
			}
			fmt.Printf("wrote word list to %s\n", analyzeSaveJSON)
		}
		return nil
	},
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeDictOnly, "dict-only", false, "segment without the HMM model for out-of-dictionary words")
	analyzeCmd.Flags().Uint64Var(&analyzeMinOcc, "min-occ", 3, "minimum occurrence for a word to be selected")
	analyzeCmd.Flags().StringVar(&analyzeSaveJSON, "save-json", "", "write the unknown words per chapter to this file")
	rootCmd.AddCommand(analyzeCmd)
}

func writeWordListFile(path string, list wordlist.WordList) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create word list file: %w", err)
	}
	defer f.Close()
	return wordlist.WriteJSON(f, list)
}
