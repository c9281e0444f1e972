package segmentation

import (
	"bytes"
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"
)

// fieldsTokenizer splits on whitespace, standing in for the real engine.
type fieldsTokenizer struct{}

func (fieldsTokenizer) Tokenize(text string) []string {
	return strings.Fields(text)
}

func TestGseTokenizerInDictionary(t *testing.T) {
	tok, err := NewGseTokenizer(ModeDefault)
	if err != nil {
		t.Fatalf("NewGseTokenizer: %v", err)
	}

	if !tok.InDictionary("你好") {
		t.Error("你好 missing from the loaded dictionary")
	}
	if tok.InDictionary("qqqq") {
		t.Error("qqqq reported as a dictionary entry")
	}
}

func TestSegmentWith(t *testing.T) {
	raw := []byte(`{"title":"T","author":"A","chapters":[{"title":"C1","content":"hello world"}]}`)

	seg, err := SegmentWith(fieldsTokenizer{}, raw)
	if err != nil {
		t.Fatalf("SegmentWith: %v", err)
	}

	if want := []string{"T", "A"}; !reflect.DeepEqual(seg.Cut, want) {
		t.Errorf("book cut = %v, want %v", seg.Cut, want)
	}
	if len(seg.Chapters) != 1 {
		t.Fatalf("got %d chapters, want 1", len(seg.Chapters))
	}
	if seg.Chapters[0].Title != "C1" {
		t.Errorf("chapter title = %q, want %q", seg.Chapters[0].Title, "C1")
	}
	if want := []string{"C1", "hello", "world"}; !reflect.DeepEqual(seg.Chapters[0].Cut, want) {
		t.Errorf("chapter cut = %v, want %v", seg.Chapters[0].Cut, want)
	}
}

func TestSegmentWithChapterOrder(t *testing.T) {
	book := Book{
		Title:  "title words",
		Author: "author words",
		Chapters: []Chapter{
			{Title: "one", Content: "first chapter"},
			{Title: "two", Content: "second chapter"},
			{Title: "three", Content: "third chapter"},
		},
	}
	raw, err := json.Marshal(book)
	if err != nil {
		t.Fatalf("marshal input: %v", err)
	}

	seg, err := SegmentWith(fieldsTokenizer{}, raw)
	if err != nil {
		t.Fatalf("SegmentWith: %v", err)
	}

	if len(seg.Chapters) != len(book.Chapters) {
		t.Fatalf("got %d chapters, want %d", len(seg.Chapters), len(book.Chapters))
	}
	for i, chapter := range seg.Chapters {
		if chapter.Title != book.Chapters[i].Title {
			t.Errorf("chapter %d title = %q, want %q", i, chapter.Title, book.Chapters[i].Title)
		}
	}
	// Title tokens precede content tokens within one cut.
	if want := []string{"two", "second", "chapter"}; !reflect.DeepEqual(seg.Chapters[1].Cut, want) {
		t.Errorf("chapter 1 cut = %v, want %v", seg.Chapters[1].Cut, want)
	}
}

func TestSegmentWithEmptyChapters(t *testing.T) {
	raw := []byte(`{"title":"T","author":"A","chapters":[]}`)

	seg, err := SegmentWith(fieldsTokenizer{}, raw)
	if err != nil {
		t.Fatalf("SegmentWith: %v", err)
	}
	if len(seg.Chapters) != 0 {
		t.Fatalf("got %d chapters, want 0", len(seg.Chapters))
	}

	var buf bytes.Buffer
	if err := Dump(&buf, seg); err != nil {
		t.Fatalf("Dump: %v", err)
	}
	if !strings.Contains(buf.String(), `"chapters":[]`) {
		t.Errorf("output %q does not contain empty chapters array", buf.String())
	}
}

func TestSegmentWithParseErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"invalid json", `{"title":`},
		{"missing title", `{"author":"A","chapters":[]}`},
		{"missing author", `{"title":"T","chapters":[]}`},
		{"missing chapters", `{"title":"T","author":"A"}`},
		{"chapters wrong type", `{"title":"T","author":"A","chapters":"no"}`},
		{"chapter missing title", `{"title":"T","author":"A","chapters":[{"content":"c"}]}`},
		{"chapter missing content", `{"title":"T","author":"A","chapters":[{"title":"c"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SegmentWith(fieldsTokenizer{}, []byte(tt.raw))
			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Errorf("got %v, want ParseError", err)
			}
		})
	}
}

func TestDumpNothingWrittenOnError(t *testing.T) {
	raw := []byte(`{"title":"T","author":"A"}`)

	var buf bytes.Buffer
	seg, err := SegmentWith(fieldsTokenizer{}, raw)
	if err == nil {
		Dump(&buf, seg)
	}
	if buf.Len() != 0 {
		t.Errorf("output written despite parse error: %q", buf.String())
	}
}

func TestDumpLiteralNonASCII(t *testing.T) {
	seg := &BookSegmentation{
		Cut: []string{"欢乐", "英雄"},
		Chapters: []ChapterSegmentation{
			{Title: "第一章", Cut: []string{"第一", "章"}},
		},
	}

	var buf bytes.Buffer
	if err := Dump(&buf, seg); err != nil {
		t.Fatalf("Dump: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "欢乐") || !strings.Contains(out, "第一章") {
		t.Errorf("non-ASCII escaped in output: %q", out)
	}
	if strings.Contains(out, `\u`) {
		t.Errorf("output contains unicode escapes: %q", out)
	}
}

func TestSegmentationRoundTrip(t *testing.T) {
	raw := []byte(`{"title":"T","author":"A","chapters":[{"title":"C1","content":"hello world"},{"title":"C2","content":""}]}`)

	seg, err := SegmentWith(fieldsTokenizer{}, raw)
	if err != nil {
		t.Fatalf("SegmentWith: %v", err)
	}

	var buf bytes.Buffer
	if err := Dump(&buf, seg); err != nil {
		t.Fatalf("Dump: %v", err)
	}

	var reparsed BookSegmentation
	if err := json.Unmarshal(buf.Bytes(), &reparsed); err != nil {
		t.Fatalf("unmarshal output: %v", err)
	}
	if !reflect.DeepEqual(&reparsed, seg) {
		t.Errorf("round-trip mismatch:\ngot  %+v\nwant %+v", &reparsed, seg)
	}

	var buf2 bytes.Buffer
	if err := Dump(&buf2, &reparsed); err != nil {
		t.Fatalf("Dump: %v", err)
	}
	if buf.String() != buf2.String() {
		t.Errorf("serialization not idempotent:\nfirst  %q\nsecond %q", buf.String(), buf2.String())
	}
}
