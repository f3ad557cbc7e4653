package textsim

import (
	"github.com/blevesearch/segment"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Tokens holds the words of a text in their original form alongside the
// case-folded terms used for comparison. Words[i] and Terms[i] describe the same word.
type Tokens struct {
	Words []string
	Terms []string
}

// Len returns the number of word tokens.
func (t Tokens) Len() int {
	return len(t.Terms)
}

// Segment splits text into words using Unicode word-boundary rules and folds
// each word to lower case. Whitespace and punctuation segments are dropped.
func Segment(text string) Tokens {
	if text == "" {
		return Tokens{Words: []string{}, Terms: []string{}}
	}

	// cases.Caser keeps state between calls and is not safe for concurrent use.
	caser := cases.Lower(language.Und)

	toks := Tokens{
		Words: make([]string, 0, len(text)/6+1),
		Terms: make([]string, 0, len(text)/6+1),
	}
	segmenter := segment.NewWordSegmenterDirect([]byte(text))
	for segmenter.Segment() {
		if segmenter.Type() == segment.None {
			continue
		}
		word := string(segmenter.Bytes())
		toks.Words = append(toks.Words, word)
		toks.Terms = append(toks.Terms, caser.String(word))
	}
	// A segmenter error only truncates the token stream; tokenization never fails.
	return toks
}

// Tokenize returns the case-folded word tokens of text.
func Tokenize(text string) []string {
	return Segment(text).Terms
}
