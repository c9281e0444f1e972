package db

import (
	"fmt"

	"github.com/jannes/han-cihui/internal/extraction"
)

// VocabStatus records how a word entered the vocabulary and whether the
// user knows it. The integer values are part of the on-disk format.
type VocabStatus int64

const (
	// StatusActive: the word is on an active Anki card.
	StatusActive VocabStatus = 0
	// StatusSuspendedKnown: suspended in Anki, flagged as known.
	StatusSuspendedKnown VocabStatus = 1
	// StatusSuspendedUnknown: suspended in Anki, not yet known.
	StatusSuspendedUnknown VocabStatus = 2
	// StatusExternalKnown: imported from a word file as known.
	StatusExternalKnown VocabStatus = 3
	// StatusExternalIgnored: imported from a word file to be ignored.
	StatusExternalIgnored VocabStatus = 4
)

// VocabInfo is the headline vocabulary statistic shown in the TUI.
type VocabInfo struct {
	WordsKnown    int
	WordsActive   int
	WordsInactive int
	CharsKnown    int
	CharsActive   int
	CharsInactive int
}

// WordsDescription lists the word counts as display lines.
func (v VocabInfo) WordsDescription() []string {
	return []string{
		fmt.Sprintf("words total known: %d", v.WordsKnown),
		fmt.Sprintf("words active: %d", v.WordsActive),
		fmt.Sprintf("words inactive: %d", v.WordsInactive),
	}
}

// CharsDescription lists the char counts as display lines.
func (v VocabInfo) CharsDescription() []string {
	return []string{
		fmt.Sprintf("chars total known: %d", v.CharsKnown),
		fmt.Sprintf("chars active: %d", v.CharsActive),
		fmt.Sprintf("chars inactive: %d", v.CharsInactive),
	}
}

// AddExternalWords inserts words with the given external status, leaving
// words that already have a status untouched.
func (s *Store) AddExternalWords(words []string, status VocabStatus) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(
		`INSERT OR IGNORE INTO words (word, status, last_changed) VALUES (?, ?, strftime('%s','now'))`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, word := range words {
		if _, err := stmt.Exec(word, int64(status)); err != nil {
			return fmt.Errorf("insert word %q: %w", word, err)
		}
	}
	return tx.Commit()
}

// InsertOverwriteWords upserts every word with its status.
func (s *Store) InsertOverwriteWords(vocab map[string]VocabStatus) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(
		`REPLACE INTO words (word, status, last_changed) VALUES (?, ?, strftime('%s','now'))`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for word, status := range vocab {
		if _, err := stmt.Exec(word, int64(status)); err != nil {
			return fmt.Errorf("overwrite word %q: %w", word, err)
		}
	}
	return tx.Commit()
}

// DeleteWords removes the given words.
func (s *Store) DeleteWords(words []string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`DELETE FROM words WHERE word = ?`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, word := range words {
		if _, err := stmt.Exec(word); err != nil {
			return fmt.Errorf("delete word %q: %w", word, err)
		}
	}
	return tx.Commit()
}

// SelectAllWords returns every word with its status.
func (s *Store) SelectAllWords() (map[string]VocabStatus, error) {
	rows, err := s.db.Query(`SELECT word, status FROM words`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	vocab := make(map[string]VocabStatus)
	for rows.Next() {
		var word string
		var status int64
		if err := rows.Scan(&word, &status); err != nil {
			return nil, err
		}
		vocab[word] = VocabStatus(status)
	}
	return vocab, rows.Err()
}

// SelectKnownWords returns every word the user counts as known, which is
// everything except suspended-unknown entries.
func (s *Store) SelectKnownWords() (map[string]bool, error) {
	rows, err := s.db.Query(`SELECT word FROM words WHERE status != ?`, int64(StatusSuspendedUnknown))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	known := make(map[string]bool)
	for rows.Next() {
		var word string
		if err := rows.Scan(&word); err != nil {
			return nil, err
		}
		known[word] = true
	}
	return known, rows.Err()
}

// VocabStats aggregates word and character counts by status. A character
// counts into the strongest bucket any containing word belongs to:
// active > known-other > inactive.
func (s *Store) VocabStats() (VocabInfo, error) {
	vocab, err := s.SelectAllWords()
	if err != nil {
		return VocabInfo{}, err
	}

	var wordsActive, wordsKnownOther, wordsInactive int
	charsActive := make(map[string]bool)
	charsKnownOther := make(map[string]bool)
	charsInactive := make(map[string]bool)

	for word, status := range vocab {
		var chars map[string]bool
		switch status {
		case StatusActive:
			wordsActive++
			chars = charsActive
		case StatusSuspendedUnknown:
			wordsInactive++
			chars = charsInactive
		default:
			wordsKnownOther++
			chars = charsKnownOther
		}
		for _, h := range extraction.WordToHanzi(word) {
			chars[h] = true
		}
	}

	for h := range charsActive {
		delete(charsKnownOther, h)
		delete(charsInactive, h)
	}
	for h := range charsKnownOther {
		delete(charsInactive, h)
	}

	return VocabInfo{
		WordsKnown:    wordsActive + wordsKnownOther,
		WordsActive:   wordsActive,
		WordsInactive: wordsInactive,
		CharsKnown:    len(charsActive) + len(charsKnownOther),
		CharsActive:   len(charsActive),
		CharsInactive: len(charsInactive),
	}, nil
}
