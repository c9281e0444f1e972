// Package wordlist groups the unknown words of a book by chapter, ready for
// tagging and export.
package wordlist

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/jannes/han-cihui/internal/analysis"
	"github.com/jannes/han-cihui/internal/extraction"
	"github.com/jannes/han-cihui/internal/segmentation"
)

// Category is a user-assigned tag on a word list entry.
type Category string

const (
	CategoryLearn    Category = "learn"
	CategoryNotLearn Category = "not-learn"
	CategoryIgnore   Category = "ignore"
)

// ParseCategory maps a user-supplied name to a Category.
func ParseCategory(s string) (Category, error) {
	switch Category(s) {
	case CategoryLearn, CategoryNotLearn, CategoryIgnore:
		return Category(s), nil
	}
	return "", fmt.Errorf("unknown category %q (want learn, not-learn or ignore)", s)
}

// TaggedWord is a word with an optional category; empty means untagged.
type TaggedWord struct {
	Word     string   `json:"word"`
	Category Category `json:"category,omitempty"`
}

// ChapterWords holds the tagged words of one chapter.
type ChapterWords struct {
	Chapter string       `json:"chapter"`
	Words   []TaggedWord `json:"words"`
}

// Metadata identifies a stored word list. ID is -1 until persisted.
type Metadata struct {
	ID         int64
	BookName   string
	AuthorName string
	CreateTime time.Time
	Query      analysis.Query
}

// WordList is per-chapter unknown vocabulary for one book.
type WordList struct {
	Metadata Metadata
	Chapters []ChapterWords
}

// Construct builds a word list from a segmented book and the unknown items
// selected by a query. Chapter order follows the book; within a chapter
// items keep their given order (descending frequency).
func Construct(title, author string, seg *segmentation.BookSegmentation, q analysis.Query, unknown []*extraction.Item) WordList {
	byChapter := make(map[string][]TaggedWord)
	for _, item := range unknown {
		byChapter[item.FirstLocation] = append(byChapter[item.FirstLocation], TaggedWord{Word: item.Word})
	}

	chapters := make([]ChapterWords, 0, len(seg.Chapters))
	for _, chapter := range seg.Chapters {
		chapters = append(chapters, ChapterWords{
			Chapter: chapter.Title,
			Words:   byChapter[chapter.Title],
		})
	}

	return WordList{
		Metadata: Metadata{
			ID:         -1,
			BookName:   title,
			AuthorName: author,
			CreateTime: time.Now(),
			Query:      q,
		},
		Chapters: chapters,
	}
}

// WriteJSON writes the per-chapter words as pretty-printed JSON with
// non-ASCII characters unescaped.
func WriteJSON(w io.Writer, list WordList) error {
	out := struct {
		Title      string         `json:"title"`
		Author     string         `json:"author"`
		Vocabulary []ChapterWords `json:"vocabulary"`
	}{
		Title:      list.Metadata.BookName,
		Author:     list.Metadata.AuthorName,
		Vocabulary: list.Chapters,
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode word list: %w", err)
	}
	return nil
}

// TagWord sets the category on every occurrence of word across chapters
// and reports whether the word was found.
func (l *WordList) TagWord(word string, category Category) bool {
	found := false
	for i := range l.Chapters {
		for j := range l.Chapters[i].Words {
			if l.Chapters[i].Words[j].Word == word {
				l.Chapters[i].Words[j].Category = category
				found = true
			}
		}
	}
	return found
}

// WordsByCategory returns all words across chapters tagged with the given
// category.
func (l WordList) WordsByCategory(category Category) []string {
	var words []string
	for _, chapter := range l.Chapters {
		for _, tagged := range chapter.Words {
			if tagged.Category == category {
				words = append(words, tagged.Word)
			}
		}
	}
	return words
}
