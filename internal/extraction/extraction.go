// Package extraction derives per-word vocabulary information from a
// segmented book.
package extraction

import (
	"regexp"
	"strings"

	"github.com/jannes/han-cihui/internal/segmentation"
)

var hanRe = regexp.MustCompile(`\p{Han}`)

// ContainsHanzi reports whether s contains at least one Han character.
func ContainsHanzi(s string) bool {
	return hanRe.MatchString(s)
}

// WordToHanzi splits a word into its Han characters, dropping everything
// else (latin letters, digits, punctuation).
func WordToHanzi(word string) []string {
	var hanzi []string
	for _, r := range word {
		c := string(r)
		if hanRe.MatchString(c) {
			hanzi = append(hanzi, c)
		}
	}
	return hanzi
}

// SplitHanzi splits s into maximal runs of Han characters, dropping
// everything in between.
func SplitHanzi(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !hanRe.MatchString(string(r))
	})
}

// Item is a single extracted word with its total frequency and the numbered
// title of the chapter it first occurred in.
type Item struct {
	Word          string
	Frequency     uint64
	FirstLocation string
}

// Result holds the vocabulary of one book. Only words containing at least
// one Han character are counted.
type Result struct {
	WordCount      uint64
	CharacterCount uint64
	Items          map[string]*Item
	CharFreq       map[string]uint64
}

// Extract walks a segmented book in reading order and accumulates word
// frequencies, first locations and character frequencies.
//
// The book-level cut (title + author tokens) is attributed to the first
// chapter, matching how locations are shown to the user.
func Extract(seg *segmentation.BookSegmentation) *Result {
	res := &Result{
		Items:    make(map[string]*Item),
		CharFreq: make(map[string]uint64),
	}

	bookLocation := ""
	if len(seg.Chapters) > 0 {
		bookLocation = seg.Chapters[0].Title
	}
	res.addWords(seg.Cut, bookLocation)
	for _, chapter := range seg.Chapters {
		res.addWords(chapter.Cut, chapter.Title)
	}
	return res
}

func (r *Result) addWords(words []string, location string) {
	for _, word := range words {
		hanzi := WordToHanzi(word)
		if len(hanzi) == 0 {
			continue
		}
		item, ok := r.Items[word]
		if !ok {
			item = &Item{Word: word, FirstLocation: location}
			r.Items[word] = item
		}
		item.Frequency++
		r.WordCount++
		r.CharacterCount += uint64(len(hanzi))
		for _, h := range hanzi {
			r.CharFreq[h]++
		}
	}
}
