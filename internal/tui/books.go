package tui

import (
	"fmt"
	"sort"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/jannes/han-cihui/internal/analysis"
	"github.com/jannes/han-cihui/internal/db"
	"github.com/jannes/han-cihui/internal/extraction"
)

type bookRow struct {
	title    string
	author   string
	chapters int
	wordComp float64
	charComp float64
}

type booksLoadedMsg struct {
	rows []bookRow
	err  error
}

type bookDeletedMsg struct {
	title string
	err   error
}

type booksModel struct {
	store      *db.Store
	rows       []bookRow
	cursor     int
	sortByComp bool
	status     string
	err        error
}

func newBooksModel(store *db.Store) booksModel {
	return booksModel{store: store}
}

func (m booksModel) load() tea.Cmd {
	store := m.store
	return func() tea.Msg {
		books, err := store.SelectAllBooks()
		if err != nil {
			return booksLoadedMsg{err: err}
		}
		knownWords, err := store.SelectKnownWords()
		if err != nil {
			return booksLoadedMsg{err: err}
		}
		known := analysis.KnownWordsAndChars(knownWords)

		rows := make([]bookRow, 0, len(books))
		for _, book := range books {
			res := extraction.Extract(book.Segmentation)
			info := analysis.Analyze(res, analysis.QueryAll, known, nil)
			rows = append(rows, bookRow{
				title:    book.Title,
				author:   book.Author,
				chapters: len(book.Segmentation.Chapters),
				wordComp: info.WordComprehension(),
				charComp: info.CharComprehension(),
			})
		}
		return booksLoadedMsg{rows: rows}
	}
}

func (m booksModel) deleteSelected() tea.Cmd {
	if m.cursor >= len(m.rows) {
		return nil
	}
	store := m.store
	row := m.rows[m.cursor]
	return func() tea.Msg {
		err := store.DeleteBook(row.title, row.author)
		return bookDeletedMsg{title: row.title, err: err}
	}
}

func (m booksModel) update(msg tea.Msg) (booksModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.rows)-1 {
				m.cursor++
			}
		case "d":
			return m, m.deleteSelected()
		case "r":
			return m, m.load()
		case "o":
			m.sortByComp = !m.sortByComp
			m.sortRows()
		}

	case booksLoadedMsg:
		m.rows = msg.rows
		m.err = msg.err
		m.sortRows()
		if m.cursor >= len(m.rows) {
			m.cursor = 0
		}
		return m, nil

	case bookDeletedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.status = fmt.Sprintf("deleted %s", msg.title)
		return m, m.load()
	}
	return m, nil
}

// sortRows orders by title, or by ascending word comprehension so the
// hardest books come first.
func (m *booksModel) sortRows() {
	sort.Slice(m.rows, func(i, j int) bool {
		if m.sortByComp {
			return m.rows[i].wordComp < m.rows[j].wordComp
		}
		return m.rows[i].title < m.rows[j].title
	})
}

func (m booksModel) view() (body, help string) {
	if m.err != nil {
		return errorStyle.Render(m.err.Error()), "r: refresh"
	}
	if len(m.rows) == 0 {
		return "no books imported yet, import one from the Analysis tab", "r: refresh"
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Bold(true)
			}
			style := lipgloss.NewStyle().Padding(0, 1)
			if row == m.cursor {
				style = style.Bold(true).Reverse(true)
			}
			return style
		}).
		Headers("title", "author", "chapters", "word compr.", "char compr.")
	for _, row := range m.rows {
		t.Row(
			row.title,
			row.author,
			fmt.Sprint(row.chapters),
			fmt.Sprintf("%.3f", row.wordComp),
			fmt.Sprintf("%.3f", row.charComp),
		)
	}

	body = t.Render()
	if m.status != "" {
		body += "\n" + statusStyle.Render(m.status)
	}
	return body, "up/down: select  d: delete  o: sort  r: refresh"
}
