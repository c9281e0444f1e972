package db

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jannes/han-cihui/internal/wordlist"
)

// InsertWordList stores a word list, its chapters serialized as JSON.
func (s *Store) InsertWordList(list wordlist.WordList) error {
	raw, err := json.Marshal(list.Chapters)
	if err != nil {
		return fmt.Errorf("serialize word list: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT INTO word_lists
		 (book_name, author_name, create_time, min_occurrence_words, min_occurrence_chars, word_list_json)
		 VALUES (?, ?, strftime('%s','now'), ?, ?, ?)`,
		list.Metadata.BookName,
		list.Metadata.AuthorName,
		list.Metadata.Query.MinOccurrenceWords,
		list.Metadata.Query.MinOccurrenceUnknownChars,
		string(raw))
	if err != nil {
		return fmt.Errorf("insert word list for %q: %w", list.Metadata.BookName, err)
	}
	return nil
}

// SelectWordListMetadata returns the metadata of every stored word list.
func (s *Store) SelectWordListMetadata() ([]wordlist.Metadata, error) {
	rows, err := s.db.Query(
		`SELECT id, book_name, author_name, create_time, min_occurrence_words, min_occurrence_chars
		 FROM word_lists`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var metas []wordlist.Metadata
	for rows.Next() {
		var meta wordlist.Metadata
		var createUnix int64
		if err := rows.Scan(
			&meta.ID,
			&meta.BookName,
			&meta.AuthorName,
			&createUnix,
			&meta.Query.MinOccurrenceWords,
			&meta.Query.MinOccurrenceUnknownChars,
		); err != nil {
			return nil, err
		}
		meta.CreateTime = time.Unix(createUnix, 0)
		metas = append(metas, meta)
	}
	return metas, rows.Err()
}

// SelectWordListChapters returns the chapters of the word list with the
// given id, or nil if no such list exists.
func (s *Store) SelectWordListChapters(id int64) ([]wordlist.ChapterWords, error) {
	var raw string
	err := s.db.QueryRow(`SELECT word_list_json FROM word_lists WHERE id = ?`, id).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var chapters []wordlist.ChapterWords
	if err := json.Unmarshal([]byte(raw), &chapters); err != nil {
		return nil, fmt.Errorf("deserialize word list %d: %w", id, err)
	}
	return chapters, nil
}

// SelectWordList returns the full word list with the given id, or nil if no
// such list exists.
func (s *Store) SelectWordList(id int64) (*wordlist.WordList, error) {
	var list wordlist.WordList
	var createUnix int64
	var raw string
	err := s.db.QueryRow(
		`SELECT id, book_name, author_name, create_time, min_occurrence_words, min_occurrence_chars, word_list_json
		 FROM word_lists WHERE id = ?`, id).Scan(
		&list.Metadata.ID,
		&list.Metadata.BookName,
		&list.Metadata.AuthorName,
		&createUnix,
		&list.Metadata.Query.MinOccurrenceWords,
		&list.Metadata.Query.MinOccurrenceUnknownChars,
		&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	list.Metadata.CreateTime = time.Unix(createUnix, 0)
	if err := json.Unmarshal([]byte(raw), &list.Chapters); err != nil {
		return nil, fmt.Errorf("deserialize word list %d: %w", id, err)
	}
	return &list, nil
}

// UpdateWordListChapters overwrites the chapters (and with them the word
// tags) of a stored word list.
func (s *Store) UpdateWordListChapters(id int64, chapters []wordlist.ChapterWords) error {
	raw, err := json.Marshal(chapters)
	if err != nil {
		return fmt.Errorf("serialize word list: %w", err)
	}
	res, err := s.db.Exec(`UPDATE word_lists SET word_list_json = ? WHERE id = ?`, string(raw), id)
	if err != nil {
		return fmt.Errorf("update word list %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("no word list with id %d", id)
	}
	return nil
}

// DeleteWordList removes the word list with the given id.
func (s *Store) DeleteWordList(id int64) error {
	_, err := s.db.Exec(`DELETE FROM word_lists WHERE id = ?`, id)
	return err
}
