// Package db is the sqlite-backed store for vocabulary, imported books and
// word lists.
package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS words (
	word TEXT PRIMARY KEY,
	status INTEGER NOT NULL,
	last_changed INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS books (
	book_name TEXT NOT NULL,
	author_name TEXT NOT NULL,
	book_json TEXT NOT NULL,
	PRIMARY KEY (book_name, author_name)
);
CREATE TABLE IF NOT EXISTS word_lists (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	book_name TEXT NOT NULL,
	author_name TEXT NOT NULL,
	create_time INTEGER NOT NULL,
	min_occurrence_words INTEGER NOT NULL,
	min_occurrence_chars INTEGER NOT NULL,
	word_list_json TEXT NOT NULL
);`

// Store wraps the application database. Safe for use from a single
// goroutine; the TUI funnels all access through its update loop.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the database at path and applies the
// schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
