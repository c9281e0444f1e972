package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jannes/han-cihui/internal/segmentation"
)

var segmentDictOnly bool

var segmentCmd = &cobra.Command{
	Use:   "segment <json-file>",
	Short: "Segment a book given as JSON and print the result as JSON",
	Long: `Segment reads a book as JSON with fields title, author and chapters
(each chapter with title and content), tokenizes every text field and
prints the token sequences as JSON to stdout. Pass - to read from stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := readInput(args[0])
		if err != nil {
			return err
		}
		mode := segmentation.ModeDefault
		if segmentDictOnly {
			mode = segmentation.ModeDictionaryOnly
		}
		return segmentation.SegmentDump(os.Stdout, raw, mode)
	},
}

func init() {
	segmentCmd.Flags().BoolVar(&segmentDictOnly, "dict-only", false, "segment without the HMM model for out-of-dictionary words")
	rootCmd.AddCommand(segmentCmd)
}

func readInput(filename string) ([]byte, error) {
	if filename == "-" {
		raw, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return raw, nil
	}
	raw, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read book file: %w", err)
	}
	return raw, nil
}
