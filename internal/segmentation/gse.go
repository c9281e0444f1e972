package segmentation

import (
	"github.com/go-ego/gse"
)

// Mode selects how the engine handles text not covered by its dictionary.
type Mode int

const (
	// ModeDefault segments with the dictionary plus the HMM model for
	// out-of-vocabulary words.
	ModeDefault Mode = iota
	// ModeDictionaryOnly segments with dictionary matches alone.
	ModeDictionaryOnly
)

// GseTokenizer is a Tokenizer backed by the gse segmenter and its embedded
// Chinese dictionary.
type GseTokenizer struct {
	seg gse.Segmenter
	hmm bool
}

// NewGseTokenizer constructs a tokenizer with a freshly loaded dictionary.
// Loading is the only operation that can fail; tokenization itself does not
// error.
func NewGseTokenizer(mode Mode) (*GseTokenizer, error) {
	var t GseTokenizer
	if err := t.seg.LoadDict(); err != nil {
		return nil, err
	}
	t.hmm = mode == ModeDefault
	return &t, nil
}

// Tokenize splits text into word tokens in engine output order.
func (t *GseTokenizer) Tokenize(text string) []string {
	return t.seg.Cut(text, t.hmm)
}

// InDictionary reports whether word is an entry of the loaded dictionary.
func (t *GseTokenizer) InDictionary(word string) bool {
	_, _, ok := t.seg.Find(word)
	return ok
}
