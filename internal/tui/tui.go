// Package tui is the interactive terminal frontend: vocabulary stats and
// Anki sync, imported books, and on-the-fly book analysis.
package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jannes/han-cihui/internal/db"
)

type tab int

const (
	tabInfo tab = iota
	tabBooks
	tabAnalysis
)

var tabNames = []string{"Info", "Books", "Analysis"}

var (
	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Underline(true).
			Padding(0, 2)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#888888")).
				Padding(0, 2)

	headingStyle = lipgloss.NewStyle().
			Bold(true).
			MarginBottom(1)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00AA00"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5555"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			Italic(true)
)

type model struct {
	active   tab
	info     infoModel
	books    booksModel
	analysis analysisModel
	width    int
	height   int
}

// Run starts the TUI on the given store and blocks until the user quits.
func Run(store *db.Store) error {
	p := tea.NewProgram(newModel(store), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func newModel(store *db.Store) model {
	return model{
		info:     newInfoModel(store),
		books:    newBooksModel(store),
		analysis: newAnalysisModel(store),
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.info.load(), m.books.load(), textinput.Blink)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "q":
			// The analysis tab needs plain keys for its path input.
			if m.active != tabAnalysis || !m.analysis.typing() {
				return m, tea.Quit
			}

		case "tab":
			m.active = (m.active + 1) % tab(len(tabNames))
			return m, nil

		case "shift+tab":
			m.active = (m.active + tab(len(tabNames)) - 1) % tab(len(tabNames))
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	if _, isKey := msg.(tea.KeyMsg); isKey {
		var cmd tea.Cmd
		switch m.active {
		case tabInfo:
			m.info, cmd = m.info.update(msg)
		case tabBooks:
			m.books, cmd = m.books.update(msg)
		case tabAnalysis:
			m.analysis, cmd = m.analysis.update(msg)
		}
		return m, cmd
	}

	// Results of background work can arrive while another tab is shown.
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.info, cmd = m.info.update(msg)
	cmds = append(cmds, cmd)
	m.books, cmd = m.books.update(msg)
	cmds = append(cmds, cmd)
	m.analysis, cmd = m.analysis.update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m model) View() string {
	bar := ""
	for i, name := range tabNames {
		style := inactiveTabStyle
		if tab(i) == m.active {
			style = activeTabStyle
		}
		bar += style.Render(name)
	}

	var body, help string
	switch m.active {
	case tabInfo:
		body, help = m.info.view()
	case tabBooks:
		body, help = m.books.view()
	case tabAnalysis:
		body, help = m.analysis.view()
	}

	return bar + "\n\n" + body + "\n\n" +
		helpStyle.Render(help+"  TAB: switch tab  q: quit")
}
