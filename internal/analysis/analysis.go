// Package analysis answers "how much of this book do I understand" queries
// over an extraction result and a known-word set.
package analysis

import (
	"sort"

	"github.com/jannes/han-cihui/internal/extraction"
)

// Query selects which extracted words count towards an analysis. A word is
// included when its frequency is at least MinOccurrenceWords, or when
// MinOccurrenceUnknownChars is non-zero and the word contains an unknown
// character occurring at least that often in the whole book.
type Query struct {
	MinOccurrenceWords        uint64
	MinOccurrenceUnknownChars uint64
}

// QueryAll includes every extracted word.
var QueryAll = Query{MinOccurrenceWords: 1}

// Dictionary reports whether a word is an entry of the reference
// dictionary. The segmentation engine's loaded dictionary serves as the
// production implementation.
type Dictionary interface {
	InDictionary(word string) bool
}

// Info summarizes the vocabulary selected by a query, split into totals and
// the unknown share of each. The dict fields narrow the word counts to
// proper dictionary entries, separating real vocabulary from names and
// segmentation artifacts.
type Info struct {
	TotalWords         uint64
	UniqueWords        uint64
	TotalChars         uint64
	UniqueChars        uint64
	UnknownTotalWords  uint64
	UnknownUniqueWords uint64
	UnknownTotalChars  uint64
	UnknownUniqueChars uint64

	TotalDictWords         uint64
	UniqueDictWords        uint64
	UnknownTotalDictWords  uint64
	UnknownUniqueDictWords uint64
}

// WordComprehension is the fraction of total word occurrences that are known.
func (i Info) WordComprehension() float64 {
	if i.TotalWords == 0 {
		return 1
	}
	return 1 - float64(i.UnknownTotalWords)/float64(i.TotalWords)
}

// CharComprehension is the fraction of total char occurrences that are known.
func (i Info) CharComprehension() float64 {
	if i.TotalChars == 0 {
		return 1
	}
	return 1 - float64(i.UnknownTotalChars)/float64(i.TotalChars)
}

// Analyze computes Info for the words selected by q. A word is unknown when
// it is not in knownWords; a character is unknown when no known word
// contains it. A nil dict leaves the dict counts at zero.
func Analyze(res *extraction.Result, q Query, knownWords map[string]bool, dict Dictionary) Info {
	knownChars := knownCharSet(knownWords)
	items := SelectItems(res, q, knownWords)

	var info Info
	charFreq := make(map[string]uint64)
	for _, item := range items {
		info.TotalWords += item.Frequency
		info.UniqueWords++
		unknown := !knownWords[item.Word]
		if unknown {
			info.UnknownTotalWords += item.Frequency
			info.UnknownUniqueWords++
		}
		if dict != nil && dict.InDictionary(item.Word) {
			info.TotalDictWords += item.Frequency
			info.UniqueDictWords++
			if unknown {
				info.UnknownTotalDictWords += item.Frequency
				info.UnknownUniqueDictWords++
			}
		}
		for _, h := range extraction.WordToHanzi(item.Word) {
			charFreq[h] += item.Frequency
		}
	}
	for char, freq := range charFreq {
		info.TotalChars += freq
		info.UniqueChars++
		if !knownChars[char] {
			info.UnknownTotalChars += freq
			info.UnknownUniqueChars++
		}
	}
	return info
}

// SelectItems returns the extracted items matched by q, sorted by descending
// frequency and then by word for a stable order.
func SelectItems(res *extraction.Result, q Query, knownWords map[string]bool) []*extraction.Item {
	knownChars := knownCharSet(knownWords)

	var items []*extraction.Item
	for _, item := range res.Items {
		if item.Frequency >= q.MinOccurrenceWords {
			items = append(items, item)
			continue
		}
		if q.MinOccurrenceUnknownChars == 0 {
			continue
		}
		for _, h := range extraction.WordToHanzi(item.Word) {
			if !knownChars[h] && res.CharFreq[h] >= q.MinOccurrenceUnknownChars {
				items = append(items, item)
				break
			}
		}
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Frequency != items[j].Frequency {
			return items[i].Frequency > items[j].Frequency
		}
		return items[i].Word < items[j].Word
	})
	return items
}

// UnknownItems is SelectItems narrowed to words not in knownWords.
func UnknownItems(res *extraction.Result, q Query, knownWords map[string]bool) []*extraction.Item {
	var unknown []*extraction.Item
	for _, item := range SelectItems(res, q, knownWords) {
		if !knownWords[item.Word] {
			unknown = append(unknown, item)
		}
	}
	return unknown
}

// KnownWordsAndChars extends a known-word set with every single character
// those words contain, for treating known chars as known words.
func KnownWordsAndChars(knownWords map[string]bool) map[string]bool {
	out := make(map[string]bool, len(knownWords))
	for word := range knownWords {
		out[word] = true
		for _, h := range extraction.WordToHanzi(word) {
			out[h] = true
		}
	}
	return out
}

func knownCharSet(knownWords map[string]bool) map[string]bool {
	chars := make(map[string]bool)
	for word := range knownWords {
		for _, h := range extraction.WordToHanzi(word) {
			chars[h] = true
		}
	}
	return chars
}
