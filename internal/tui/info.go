package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jannes/han-cihui/internal/anki"
	"github.com/jannes/han-cihui/internal/config"
	"github.com/jannes/han-cihui/internal/db"
)

type infoLoadedMsg struct {
	info db.VocabInfo
	err  error
}

type syncDoneMsg struct {
	updated int
	removed int
	err     error
}

type infoModel struct {
	store   *db.Store
	info    db.VocabInfo
	spinner spinner.Model
	syncing bool
	status  string
	err     error
}

func newInfoModel(store *db.Store) infoModel {
	s := spinner.New()
	s.Spinner = spinner.Points
	return infoModel{store: store, spinner: s}
}

func (m infoModel) load() tea.Cmd {
	store := m.store
	return func() tea.Msg {
		info, err := store.VocabStats()
		return infoLoadedMsg{info: info, err: err}
	}
}

func (m infoModel) sync() tea.Cmd {
	store := m.store
	return func() tea.Msg {
		updated, removed, err := anki.SyncToStore(store, config.AnkiDBPath(), config.AnkiNoteFields())
		return syncDoneMsg{updated: updated, removed: removed, err: err}
	}
}

func (m infoModel) update(msg tea.Msg) (infoModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "s":
			if m.syncing {
				return m, nil
			}
			m.syncing = true
			m.status = ""
			m.err = nil
			return m, tea.Batch(m.spinner.Tick, m.sync())

		case "r":
			return m, m.load()
		}

	case infoLoadedMsg:
		m.info = msg.info
		m.err = msg.err
		return m, nil

	case syncDoneMsg:
		m.syncing = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.status = fmt.Sprintf("synced %d words, removed %d stale words", msg.updated, msg.removed)
		return m, m.load()

	case spinner.TickMsg:
		if !m.syncing {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m infoModel) view() (body, help string) {
	var sb strings.Builder
	sb.WriteString(headingStyle.Render("Vocabulary"))
	sb.WriteString("\n")
	for _, line := range m.info.WordsDescription() {
		sb.WriteString(line + "\n")
	}
	for _, line := range m.info.CharsDescription() {
		sb.WriteString(line + "\n")
	}

	switch {
	case m.syncing:
		sb.WriteString("\n" + m.spinner.View() + " syncing from Anki")
	case m.err != nil:
		sb.WriteString("\n" + errorStyle.Render(m.err.Error()))
	case m.status != "":
		sb.WriteString("\n" + statusStyle.Render(m.status))
	}

	return sb.String(), "s: sync from Anki  r: refresh"
}
