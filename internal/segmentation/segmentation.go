// Package segmentation turns a book represented as JSON into per-field token
// sequences using a Chinese word-segmentation engine.
package segmentation

import (
	"encoding/json"
	"fmt"
	"io"
)

// Book is the input structure: a title, an author and ordered chapters.
type Book struct {
	Title    string    `json:"title"`
	Author   string    `json:"author"`
	Chapters []Chapter `json:"chapters"`
}

// Chapter is a single unit of book text.
type Chapter struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// BookSegmentation pairs each textual unit of a book with its token sequence.
// Cut holds the title tokens followed by the author tokens.
type BookSegmentation struct {
	Cut      []string              `json:"cut"`
	Chapters []ChapterSegmentation `json:"chapters"`
}

// ChapterSegmentation holds the original chapter title verbatim and the
// tokens of the chapter title followed by the tokens of its content.
type ChapterSegmentation struct {
	Title string   `json:"title"`
	Cut   []string `json:"cut"`
}

// Tokenizer splits a run of text into an ordered sequence of word tokens.
// Implementations are opaque pre-trained engines; no configuration of the
// underlying dictionary or model is exposed here.
type Tokenizer interface {
	Tokenize(text string) []string
}

// Segment parses raw as a Book and tokenizes every text field with a freshly
// constructed engine. Nothing is shared across calls.
func Segment(raw []byte, mode Mode) (*BookSegmentation, error) {
	tok, err := NewGseTokenizer(mode)
	if err != nil {
		return nil, &SegmentationError{Err: err}
	}
	return SegmentWith(tok, raw)
}

// SegmentWith is Segment with a caller-supplied engine.
//
// The book-level cut is tokenize(title) followed by tokenize(author); each
// chapter's cut is tokenize(chapter title) followed by tokenize(content),
// with the chapter's original title echoed unchanged. Chapter order matches
// the input.
func SegmentWith(tok Tokenizer, raw []byte) (*BookSegmentation, error) {
	book, err := ParseBook(raw)
	if err != nil {
		return nil, err
	}
	return SegmentBook(tok, book), nil
}

// SegmentBook tokenizes an already parsed Book.
func SegmentBook(tok Tokenizer, book *Book) *BookSegmentation {
	out := &BookSegmentation{
		Cut:      concatCuts(tok.Tokenize(book.Title), tok.Tokenize(book.Author)),
		Chapters: make([]ChapterSegmentation, 0, len(book.Chapters)),
	}
	for _, chapter := range book.Chapters {
		out.Chapters = append(out.Chapters, ChapterSegmentation{
			Title: chapter.Title,
			Cut:   concatCuts(tok.Tokenize(chapter.Title), tok.Tokenize(chapter.Content)),
		})
	}
	return out
}

// SegmentDump segments raw and writes the result to w as UTF-8 JSON with
// non-ASCII characters rendered literally. On error nothing is written.
func SegmentDump(w io.Writer, raw []byte, mode Mode) error {
	seg, err := Segment(raw, mode)
	if err != nil {
		return err
	}
	return Dump(w, seg)
}

// Dump writes a BookSegmentation to w as UTF-8 JSON, non-ASCII unescaped.
func Dump(w io.Writer, seg *BookSegmentation) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(seg); err != nil {
		return &SerializationError{Err: err}
	}
	return nil
}

// ParseBook parses raw as a Book, requiring title, author, chapters and
// per-chapter title/content to be present and correctly typed.
func ParseBook(raw []byte) (*Book, error) {
	var probe struct {
		Title    *string `json:"title"`
		Author   *string `json:"author"`
		Chapters *[]struct {
			Title   *string `json:"title"`
			Content *string `json:"content"`
		} `json:"chapters"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, &ParseError{Reason: "invalid JSON", Err: err}
	}
	switch {
	case probe.Title == nil:
		return nil, &ParseError{Reason: "missing field: title"}
	case probe.Author == nil:
		return nil, &ParseError{Reason: "missing field: author"}
	case probe.Chapters == nil:
		return nil, &ParseError{Reason: "missing field: chapters"}
	}

	book := &Book{
		Title:    *probe.Title,
		Author:   *probe.Author,
		Chapters: make([]Chapter, 0, len(*probe.Chapters)),
	}
	for i, chapter := range *probe.Chapters {
		if chapter.Title == nil {
			return nil, &ParseError{Reason: chapterFieldMissing(i, "title")}
		}
		if chapter.Content == nil {
			return nil, &ParseError{Reason: chapterFieldMissing(i, "content")}
		}
		book.Chapters = append(book.Chapters, Chapter{
			Title:   *chapter.Title,
			Content: *chapter.Content,
		})
	}
	return book, nil
}

func chapterFieldMissing(index int, field string) string {
	return fmt.Sprintf("chapter %d: missing field: %s", index, field)
}

func concatCuts(a, b []string) []string {
	out := make([]string, 0, len(a)+len(b))
	out = append(out, a...)
	out = append(out, b...)
	return out
}
