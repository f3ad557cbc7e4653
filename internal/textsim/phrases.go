package textsim

import "strings"

const (
	// DefaultNGramSize is the number of consecutive words in a compared phrase.
	DefaultNGramSize = 5
	// DefaultPhraseLimit caps the number of phrases reported per comparison.
	DefaultPhraseLimit = 10
)

// PhraseMatcher finds verbatim word n-grams shared by two texts.
// Words are compared case-insensitively; reported phrases keep the
// submission's original casing.
type PhraseMatcher struct {
	// Size is the n-gram length in words. Values below 1 use DefaultNGramSize.
	Size int
	// Limit is the maximum number of phrases returned. Values below 1 use DefaultPhraseLimit.
	Limit int
}

// NewPhraseMatcher creates a PhraseMatcher with the default window and limit.
func NewPhraseMatcher() PhraseMatcher {
	return PhraseMatcher{Size: DefaultNGramSize, Limit: DefaultPhraseLimit}
}

func (m PhraseMatcher) size() int {
	if m.Size < 1 {
		return DefaultNGramSize
	}
	return m.Size
}

func (m PhraseMatcher) limit() int {
	if m.Limit < 1 {
		return DefaultPhraseLimit
	}
	return m.Limit
}

// Match returns the submission n-grams that also occur anywhere in the comparison,
// in submission order. A submission n-gram that repeats is reported at each position.
// Returns an empty slice when either side has fewer words than the window.
func (m PhraseMatcher) Match(submission, comparison Tokens) []string {
	n := m.size()
	limit := m.limit()
	if submission.Len() < n || comparison.Len() < n {
		return []string{}
	}

	grams := make(map[string]struct{}, comparison.Len()-n+1)
	for i := 0; i+n <= comparison.Len(); i++ {
		grams[ngramKey(comparison.Terms[i:i+n])] = struct{}{}
	}

	phrases := make([]string, 0, limit)
	for i := 0; i+n <= submission.Len() && len(phrases) < limit; i++ {
		if _, ok := grams[ngramKey(submission.Terms[i:i+n])]; !ok {
			continue
		}
		phrases = append(phrases, strings.Join(submission.Words[i:i+n], " "))
	}
	return phrases
}

// MatchText segments both texts and returns their shared phrases.
func (m PhraseMatcher) MatchText(submission, comparison string) []string {
	return m.Match(Segment(submission), Segment(comparison))
}

// ngramKey joins folded terms into a lookup key. Word segments never contain
// spaces, so a single space cannot make two different n-grams collide.
func ngramKey(terms []string) string {
	return strings.Join(terms, " ")
}
