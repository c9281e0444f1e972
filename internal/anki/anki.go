// Package anki reads vocabulary notes from an Anki collection database.
// The collection is only ever opened read-only; all writes go to the
// application's own store.
package anki

import (
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/jannes/han-cihui/internal/db"
	"github.com/jannes/han-cihui/internal/extraction"
)

// Anki separates note fields with the unit separator character.
const fieldSeparator = "\x1f"

// Card flag colors used to mark suspended cards.
const (
	flagSuspendedKnown   = 3 // green
	flagSuspendedUnknown = 0 // no flag
)

// NoteStatus classifies a note by its first card's scheduling state.
type NoteStatus int

const (
	// StatusActive: the card is in some review queue.
	StatusActive NoteStatus = iota
	// StatusSuspendedKnown: suspended and flagged green, meaning known.
	StatusSuspendedKnown
	// StatusSuspendedUnknown: suspended without a flag, not yet known.
	StatusSuspendedUnknown
)

// Note is one vocabulary note: the configured field's raw value and the
// note's status.
type Note struct {
	Field  string
	Status NoteStatus
}

// Collection is an open Anki collection database.
type Collection struct {
	db *sql.DB
}

// OpenCollection opens the collection at path read-only.
func OpenCollection(path string) (*Collection, error) {
	conn, err := sql.Open("sqlite", fmt.Sprintf("file:%s?mode=ro", path))
	if err != nil {
		return nil, fmt.Errorf("open anki collection %s: %w", path, err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("open anki collection %s: %w", path, err)
	}
	return &Collection{db: conn}, nil
}

// Close closes the collection.
func (c *Collection) Close() error {
	return c.db.Close()
}

type notetypeField struct {
	notetypeID int64
	fieldOrder int
}

// Notes returns the configured field of every note whose notetype/field
// pair appears in noteFields, classified by card status.
func (c *Collection) Notes(noteFields map[string]string) ([]Note, error) {
	fields, err := c.matchingFields(noteFields)
	if err != nil {
		return nil, err
	}

	var notes []Note
	for _, nf := range fields {
		for _, q := range []struct {
			status NoteStatus
			query  string
			args   []any
		}{
			{StatusActive,
				`SELECT notes.flds FROM notes JOIN cards ON notes.id = cards.nid
				 WHERE notes.mid = ? AND cards.queue != -1 AND cards.ord = 0`,
				[]any{nf.notetypeID}},
			{StatusSuspendedKnown,
				`SELECT notes.flds FROM notes JOIN cards ON notes.id = cards.nid
				 WHERE notes.mid = ? AND cards.queue = -1 AND cards.flags = ? AND cards.ord = 0`,
				[]any{nf.notetypeID, flagSuspendedKnown}},
			{StatusSuspendedUnknown,
				`SELECT notes.flds FROM notes JOIN cards ON notes.id = cards.nid
				 WHERE notes.mid = ? AND cards.queue = -1 AND cards.flags = ? AND cards.ord = 0`,
				[]any{nf.notetypeID, flagSuspendedUnknown}},
		} {
			selected, err := c.selectNotes(q.query, q.args, nf.fieldOrder, q.status)
			if err != nil {
				return nil, err
			}
			notes = append(notes, selected...)
		}
	}
	return notes, nil
}

func (c *Collection) selectNotes(query string, args []any, fieldOrder int, status NoteStatus) ([]Note, error) {
	rows, err := c.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("select notes: %w", err)
	}
	defer rows.Close()

	var notes []Note
	for rows.Next() {
		var flds string
		if err := rows.Scan(&flds); err != nil {
			return nil, err
		}
		notes = append(notes, Note{Field: FieldAt(flds, fieldOrder), Status: status})
	}
	return notes, rows.Err()
}

// matchingFields resolves the configured notetype/field name pairs to
// notetype ids and field positions.
func (c *Collection) matchingFields(noteFields map[string]string) ([]notetypeField, error) {
	rows, err := c.db.Query(
		`SELECT notetypes.id, notetypes.name, FIELDS.name, FIELDS.ord
		 FROM notetypes JOIN FIELDS ON notetypes.id = FIELDS.ntid`)
	if err != nil {
		return nil, fmt.Errorf("select notetypes: %w", err)
	}
	defer rows.Close()

	var fields []notetypeField
	for rows.Next() {
		var id int64
		var notetypeName, fieldName string
		var ord int
		if err := rows.Scan(&id, &notetypeName, &fieldName, &ord); err != nil {
			return nil, err
		}
		if wanted, ok := noteFields[notetypeName]; ok && wanted == fieldName {
			fields = append(fields, notetypeField{notetypeID: id, fieldOrder: ord})
		}
	}
	return fields, rows.Err()
}

// FieldAt extracts the field at the given position from a raw Anki fields
// string.
func FieldAt(fields string, index int) string {
	split := strings.Split(fields, fieldSeparator)
	if index < 0 || index >= len(split) {
		return ""
	}
	return split[index]
}

// FieldToWords splits a field value into words on every non-hanzi
// character, dropping empty runs. Fields often carry several variants
// separated by slashes, spaces or Chinese commas.
func FieldToWords(field string) []string {
	return extraction.SplitHanzi(field)
}

// SyncToStore replaces all Anki-derived vocabulary in the store with the
// current state of the collection at path. Words added from word files keep
// their external status; Anki words no longer in the collection are removed.
func SyncToStore(store *db.Store, path string, noteFields map[string]string) (updated, removed int, err error) {
	collection, err := OpenCollection(path)
	if err != nil {
		return 0, 0, err
	}
	defer collection.Close()

	notes, err := collection.Notes(noteFields)
	if err != nil {
		return 0, 0, err
	}
	vocab := VocabFromNotes(notes)

	current, err := store.SelectAllWords()
	if err != nil {
		return 0, 0, err
	}
	var stale []string
	for word, status := range current {
		fromAnki := status == db.StatusActive ||
			status == db.StatusSuspendedKnown ||
			status == db.StatusSuspendedUnknown
		if _, ok := vocab[word]; fromAnki && !ok {
			stale = append(stale, word)
		}
	}

	if err := store.DeleteWords(stale); err != nil {
		return 0, 0, err
	}
	if err := store.InsertOverwriteWords(vocab); err != nil {
		return 0, 0, err
	}
	return len(vocab), len(stale), nil
}

// VocabFromNotes flattens notes into per-word statuses for the store.
// When the same word appears with several statuses, active wins over
// suspended-known, which wins over suspended-unknown.
func VocabFromNotes(notes []Note) map[string]db.VocabStatus {
	rank := func(s db.VocabStatus) int {
		switch s {
		case db.StatusActive:
			return 2
		case db.StatusSuspendedKnown:
			return 1
		default:
			return 0
		}
	}

	vocab := make(map[string]db.VocabStatus)
	for _, note := range notes {
		var status db.VocabStatus
		switch note.Status {
		case StatusActive:
			status = db.StatusActive
		case StatusSuspendedKnown:
			status = db.StatusSuspendedKnown
		case StatusSuspendedUnknown:
			status = db.StatusSuspendedUnknown
		}
		for _, word := range FieldToWords(note.Field) {
			if existing, ok := vocab[word]; !ok || rank(status) > rank(existing) {
				vocab[word] = status
			}
		}
	}
	return vocab
}
