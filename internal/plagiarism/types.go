package plagiarism

import (
	"runtime"
	"time"

	"plagiarism-service/internal/textsim"
)

const (
	// DefaultSignificanceThreshold is the similarity percentage a comparison must
	// exceed to be reported.
	DefaultSignificanceThreshold = 10.0
	// DefaultPlagiarismThreshold is the overall similarity percentage that must be
	// exceeded for a submission to be flagged.
	DefaultPlagiarismThreshold = 70.0
)

// Comparison is one text to compare a submission against.
type Comparison struct {
	ID   string
	Text string
}

// Request is the input to a single analysis.
type Request struct {
	SubmissionID string
	Text         string
	Comparisons  []Comparison
}

// Match is the result for one comparison that passed the significance filter.
type Match struct {
	MatchedID            string
	SimilarityPercentage float64
	// MatchedPhrases lists shared phrases in submission order; never nil.
	MatchedPhrases []string
}

// Result is the outcome of an analysis.
type Result struct {
	SubmissionID    string
	SimilarityScore float64
	IsPlagiarized   bool
	// Matches keeps the order in which comparisons were supplied; never nil.
	Matches        []Match
	ProcessingTime time.Duration
}

// Options tunes the scoring policy. Zero or negative fields fall back to defaults.
type Options struct {
	SignificanceThreshold float64
	PlagiarismThreshold   float64
	NGramSize             int
	MaxPhrases            int
	Workers               int
}

// DefaultOptions returns the standard scoring policy.
func DefaultOptions() Options {
	return Options{
		SignificanceThreshold: DefaultSignificanceThreshold,
		PlagiarismThreshold:   DefaultPlagiarismThreshold,
		NGramSize:             textsim.DefaultNGramSize,
		MaxPhrases:            textsim.DefaultPhraseLimit,
		Workers:               runtime.NumCPU(),
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.SignificanceThreshold <= 0 {
		o.SignificanceThreshold = def.SignificanceThreshold
	}
	if o.PlagiarismThreshold <= 0 {
		o.PlagiarismThreshold = def.PlagiarismThreshold
	}
	if o.NGramSize <= 0 {
		o.NGramSize = def.NGramSize
	}
	if o.MaxPhrases <= 0 {
		o.MaxPhrases = def.MaxPhrases
	}
	if o.Workers <= 0 {
		o.Workers = def.Workers
	}
	return o
}
