package db

import (
	"encoding/json"
	"fmt"

	"github.com/jannes/han-cihui/internal/segmentation"
)

// StoredBook is an imported book: its identity plus the segmentation JSON
// kept in the books table.
type StoredBook struct {
	Title        string
	Author       string
	Segmentation *segmentation.BookSegmentation
}

// InsertBook stores a segmented book under (title, author).
func (s *Store) InsertBook(title, author string, seg *segmentation.BookSegmentation) error {
	raw, err := json.Marshal(seg)
	if err != nil {
		return fmt.Errorf("serialize segmented book: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT INTO books (book_name, author_name, book_json) VALUES (?, ?, ?)`,
		title, author, string(raw))
	if err != nil {
		return fmt.Errorf("insert book %q: %w", title, err)
	}
	return nil
}

// SelectAllBooks returns every imported book.
func (s *Store) SelectAllBooks() ([]StoredBook, error) {
	rows, err := s.db.Query(`SELECT book_name, author_name, book_json FROM books`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var books []StoredBook
	for rows.Next() {
		var book StoredBook
		var raw string
		if err := rows.Scan(&book.Title, &book.Author, &raw); err != nil {
			return nil, err
		}
		book.Segmentation = &segmentation.BookSegmentation{}
		if err := json.Unmarshal([]byte(raw), book.Segmentation); err != nil {
			return nil, fmt.Errorf("deserialize book %q: %w", book.Title, err)
		}
		books = append(books, book)
	}
	return books, rows.Err()
}

// DeleteBook removes the book stored under (title, author).
func (s *Store) DeleteBook(title, author string) error {
	_, err := s.db.Exec(
		`DELETE FROM books WHERE book_name = ? AND author_name = ?`, title, author)
	return err
}
