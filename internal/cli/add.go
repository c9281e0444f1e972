package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jannes/han-cihui/internal/db"
	"github.com/jannes/han-cihui/internal/extraction"
)

var addCmd = &cobra.Command{
	Use:   "add <file>",
	Short: "Add known vocabulary from a file with one word per line",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return addExternal(args[0], db.StatusExternalKnown)
	},
}

var addIgnoreCmd = &cobra.Command{
	Use:   "add-ignore <file>",
	Short: "Add vocabulary to be ignored from a file with one word per line",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return addExternal(args[0], db.StatusExternalIgnored)
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(addIgnoreCmd)
}

func addExternal(filename string, status db.VocabStatus) error {
	words, err := readWordFile(filename)
	if err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.AddExternalWords(words, status); err != nil {
		return err
	}
	fmt.Printf("added %d words\n", len(words))
	return nil
}

// readWordFile reads one word per line, skipping blank lines and lines
// without any hanzi.
func readWordFile(filename string) ([]string, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open word file: %w", err)
	}
	defer f.Close()

	var words []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word == "" || !extraction.ContainsHanzi(word) {
			continue
		}
		words = append(words, word)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read word file: %w", err)
	}
	return words, nil
}
