package tui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jannes/han-cihui/internal/analysis"
	"github.com/jannes/han-cihui/internal/db"
	"github.com/jannes/han-cihui/internal/ebook"
	"github.com/jannes/han-cihui/internal/extraction"
	"github.com/jannes/han-cihui/internal/segmentation"
	"github.com/jannes/han-cihui/internal/wordlist"
)

type analysisState int

const (
	stateInput analysisState = iota
	stateRunning
	stateDone
)

type analyzeDoneMsg struct {
	book  *segmentation.Book
	seg   *segmentation.BookSegmentation
	res   *extraction.Result
	known map[string]bool
	dict  analysis.Dictionary
	err   error
}

type actionDoneMsg struct {
	status string
	err    error
}

type analysisModel struct {
	store    *db.Store
	input    textinput.Model
	spinner  spinner.Model
	state    analysisState
	dictOnly bool
	minOcc   uint64

	book     *segmentation.Book
	seg      *segmentation.BookSegmentation
	res      *extraction.Result
	known    map[string]bool
	dict     analysis.Dictionary
	all      analysis.Info
	selected analysis.Info

	status string
	err    error
}

func newAnalysisModel(store *db.Store) analysisModel {
	input := textinput.New()
	input.Placeholder = "path to epub"
	input.Focus()

	s := spinner.New()
	s.Spinner = spinner.Points

	return analysisModel{
		store:   store,
		input:   input,
		spinner: s,
		minOcc:  3,
	}
}

// typing reports whether plain keys should go to the path input instead of
// being treated as shortcuts.
func (m analysisModel) typing() bool {
	return m.state == stateInput && m.input.Focused()
}

func (m analysisModel) run() tea.Cmd {
	store := m.store
	path := strings.TrimSpace(m.input.Value())
	mode := segmentation.ModeDefault
	if m.dictOnly {
		mode = segmentation.ModeDictionaryOnly
	}
	return func() tea.Msg {
		book, err := ebook.OpenBook(path)
		if err != nil {
			return analyzeDoneMsg{err: err}
		}
		tok, err := segmentation.NewGseTokenizer(mode)
		if err != nil {
			return analyzeDoneMsg{err: err}
		}
		seg := segmentation.SegmentBook(tok, book)
		res := extraction.Extract(seg)

		knownWords, err := store.SelectKnownWords()
		if err != nil {
			return analyzeDoneMsg{err: err}
		}
		known := analysis.KnownWordsAndChars(knownWords)
		return analyzeDoneMsg{book: book, seg: seg, res: res, known: known, dict: tok}
	}
}

func (m analysisModel) importBook() tea.Cmd {
	store := m.store
	book, seg := m.book, m.seg
	return func() tea.Msg {
		if err := store.InsertBook(book.Title, book.Author, seg); err != nil {
			return actionDoneMsg{err: err}
		}
		return actionDoneMsg{status: fmt.Sprintf("imported %s", book.Title)}
	}
}

func (m analysisModel) saveWordList() tea.Cmd {
	store := m.store
	list := m.buildWordList()
	return func() tea.Msg {
		if err := store.InsertWordList(list); err != nil {
			return actionDoneMsg{err: err}
		}
		return actionDoneMsg{status: fmt.Sprintf("saved word list for %s", list.Metadata.BookName)}
	}
}

func (m analysisModel) exportJSON() tea.Cmd {
	list := m.buildWordList()
	path := fmt.Sprintf("%s-words.json", list.Metadata.BookName)
	return func() tea.Msg {
		f, err := os.Create(path)
		if err != nil {
			return actionDoneMsg{err: err}
		}
		defer f.Close()
		if err := wordlist.WriteJSON(f, list); err != nil {
			return actionDoneMsg{err: err}
		}
		return actionDoneMsg{status: fmt.Sprintf("wrote %s", path)}
	}
}

func (m analysisModel) buildWordList() wordlist.WordList {
	query := analysis.Query{MinOccurrenceWords: m.minOcc}
	unknown := analysis.UnknownItems(m.res, query, m.known)
	return wordlist.Construct(m.book.Title, m.book.Author, m.seg, query, unknown)
}

func (m analysisModel) recompute() analysisModel {
	query := analysis.Query{MinOccurrenceWords: m.minOcc}
	m.all = analysis.Analyze(m.res, analysis.QueryAll, m.known, m.dict)
	m.selected = analysis.Analyze(m.res, query, m.known, m.dict)
	return m
}

func (m analysisModel) update(msg tea.Msg) (analysisModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.state {
		case stateInput:
			switch msg.String() {
			case "enter":
				if strings.TrimSpace(m.input.Value()) == "" {
					return m, nil
				}
				m.state = stateRunning
				m.err = nil
				m.status = ""
				return m, tea.Batch(m.spinner.Tick, m.run())
			case "ctrl+d":
				m.dictOnly = !m.dictOnly
				return m, nil
			}
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd

		case stateDone:
			switch msg.String() {
			case "+", "=":
				m.minOcc++
				return m.recompute(), nil
			case "-":
				if m.minOcc > 1 {
					m.minOcc--
				}
				return m.recompute(), nil
			case "i":
				return m, m.importBook()
			case "s":
				return m, m.saveWordList()
			case "e":
				return m, m.exportJSON()
			case "n":
				m.state = stateInput
				m.input.SetValue("")
				m.input.Focus()
				m.status = ""
				m.err = nil
				return m, textinput.Blink
			}
		}

	case analyzeDoneMsg:
		if m.state != stateRunning {
			return m, nil
		}
		if msg.err != nil {
			m.state = stateInput
			m.err = msg.err
			return m, textinput.Blink
		}
		m.state = stateDone
		m.input.Blur()
		m.book = msg.book
		m.seg = msg.seg
		m.res = msg.res
		m.known = msg.known
		m.dict = msg.dict
		return m.recompute(), nil

	case actionDoneMsg:
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.status = msg.status
			m.err = nil
		}
		return m, nil

	case spinner.TickMsg:
		if m.state != stateRunning {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m analysisModel) view() (body, help string) {
	switch m.state {
	case stateInput:
		mode := "default"
		if m.dictOnly {
			mode = "dictionary only"
		}
		body = headingStyle.Render("Analyze a book") + "\n" +
			m.input.View() + "\n" +
			fmt.Sprintf("segmentation mode: %s", mode)
		if m.err != nil {
			body += "\n" + errorStyle.Render(m.err.Error())
		}
		return body, "enter: analyze  ctrl+d: toggle mode"

	case stateRunning:
		return m.spinner.View() + " analyzing " + m.input.Value(), ""

	default:
		var sb strings.Builder
		sb.WriteString(headingStyle.Render(fmt.Sprintf("%s by %s", m.book.Title, m.book.Author)))
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("extracted %d words, %d characters\n", m.res.WordCount, m.res.CharacterCount))
		sb.WriteString(analysis.InfoTable(m.all, "all words"))
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("min. occurrence %d:\n", m.minOcc))
		sb.WriteString(analysis.InfoTable(m.selected, "selected"))
		sb.WriteString("\n")
		sb.WriteString(analysis.ComprehensionTable(m.all, m.selected))
		if m.err != nil {
			sb.WriteString("\n" + errorStyle.Render(m.err.Error()))
		} else if m.status != "" {
			sb.WriteString("\n" + statusStyle.Render(m.status))
		}
		return sb.String(), "+/-: min occurrence  i: import  s: save list  e: export json  n: new"
	}
}
