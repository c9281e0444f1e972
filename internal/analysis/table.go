package analysis

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var headerStyle = lipgloss.NewStyle().Bold(true)

// InfoTable renders an Info as a bordered terminal table. Word rows carry
// the dictionary-entry share in parentheses.
func InfoTable(info Info, title string) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Headers(title, "all (dict)", "unknown (dict)").
		Row("total words",
			withDict(info.TotalWords, info.TotalDictWords),
			withDict(info.UnknownTotalWords, info.UnknownTotalDictWords)).
		Row("unique words",
			withDict(info.UniqueWords, info.UniqueDictWords),
			withDict(info.UnknownUniqueWords, info.UnknownUniqueDictWords)).
		Row("total chars", fmt.Sprint(info.TotalChars), fmt.Sprint(info.UnknownTotalChars)).
		Row("unique chars", fmt.Sprint(info.UniqueChars), fmt.Sprint(info.UnknownUniqueChars))
	return t.Render()
}

func withDict(all, dict uint64) string {
	return fmt.Sprintf("%d (%d)", all, dict)
}

// ComprehensionTable renders word/char comprehension before and after
// learning the words selected by the current query.
func ComprehensionTable(all, selected Info) string {
	wordAfter := 1.0
	if all.TotalWords > 0 {
		wordAfter = 1 - float64(all.UnknownTotalWords-selected.UnknownTotalWords)/float64(all.TotalWords)
	}
	charAfter := 1.0
	if all.TotalChars > 0 {
		charAfter = 1 - float64(all.UnknownTotalChars-selected.UnknownTotalChars)/float64(all.TotalChars)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Headers("comprehension", "now", "after learning").
		Row("words", formatFraction(all.WordComprehension()), formatFraction(wordAfter)).
		Row("chars", formatFraction(all.CharComprehension()), formatFraction(charAfter))
	return t.Render()
}

func formatFraction(f float64) string {
	return fmt.Sprintf("%.3f", f)
}
