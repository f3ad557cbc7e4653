package plagiarism

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// vocabulary has 25 distinct single-word terms.
var vocabulary = []string{
	"amber", "birch", "cedar", "delta", "ember",
	"fjord", "grove", "heron", "inlet", "jasper",
	"kelp", "lilac", "maple", "north", "otter",
	"pearl", "quartz", "raven", "slate", "thorn",
	"umber", "violet", "willow", "xenon", "yarrow",
}

func TestAnalyze_NoComparisons(t *testing.T) {
	a := NewAnalyzer(DefaultOptions())

	for _, comps := range [][]Comparison{nil, {}} {
		res := a.Analyze(context.Background(), Request{
			SubmissionID: "sub-1",
			Text:         "some submitted text",
			Comparisons:  comps,
		})

		assert.Equal(t, "sub-1", res.SubmissionID)
		assert.Equal(t, 0.0, res.SimilarityScore)
		assert.False(t, res.IsPlagiarized)
		require.NotNil(t, res.Matches)
		assert.Empty(t, res.Matches)
		assert.GreaterOrEqual(t, int64(res.ProcessingTime), int64(0))
	}
}

func TestAnalyze_IdenticalText(t *testing.T) {
	text := "the quick brown fox jumps over the lazy dog"
	a := NewAnalyzer(DefaultOptions())

	res := a.Analyze(context.Background(), Request{
		SubmissionID: "sub-1",
		Text:         text,
		Comparisons:  []Comparison{{ID: "doc-1", Text: text}},
	})

	require.Len(t, res.Matches, 1)
	assert.InDelta(t, 100.0, res.SimilarityScore, 1e-9)
	assert.True(t, res.IsPlagiarized)
	assert.Equal(t, "doc-1", res.Matches[0].MatchedID)
	assert.InDelta(t, 100.0, res.Matches[0].SimilarityPercentage, 1e-9)
	require.NotEmpty(t, res.Matches[0].MatchedPhrases)
	assert.Equal(t, "the quick brown fox jumps", res.Matches[0].MatchedPhrases[0])
}

func TestAnalyze_BelowSignificanceDropped(t *testing.T) {
	a := NewAnalyzer(DefaultOptions())

	res := a.Analyze(context.Background(), Request{
		SubmissionID: "sub-1",
		Text:         "hello world",
		Comparisons:  []Comparison{{ID: "doc-1", Text: "goodbye moon"}},
	})

	assert.Equal(t, 0.0, res.SimilarityScore)
	assert.False(t, res.IsPlagiarized)
	require.NotNil(t, res.Matches)
	assert.Empty(t, res.Matches)
}

func TestAnalyze_MixedScoresKeepInputOrder(t *testing.T) {
	submissionText := strings.Join(vocabulary, " ")
	// 16 of 25 terms: cos = sqrt(16/25) = 0.8
	high := strings.Join(vocabulary[:16], " ")
	// One shared term counted 3 times plus 7 unshared terms:
	// cos = 3 / (sqrt(25) * sqrt(3*3 + 7)) = 3 / 20 = 0.15
	low := strings.Repeat(vocabulary[24]+" ", 3) + "agate basalt chalk dune flint gneiss marl"

	a := NewAnalyzer(Options{Workers: 4})
	res := a.Analyze(context.Background(), Request{
		SubmissionID: "sub-1",
		Text:         submissionText,
		Comparisons: []Comparison{
			{ID: "low", Text: low},
			{ID: "none", Text: "nothing in common"},
			{ID: "high", Text: high},
		},
	})

	require.Len(t, res.Matches, 2)
	assert.Equal(t, "low", res.Matches[0].MatchedID)
	assert.InDelta(t, 15.0, res.Matches[0].SimilarityPercentage, 1e-9)
	assert.Equal(t, "high", res.Matches[1].MatchedID)
	assert.InDelta(t, 80.0, res.Matches[1].SimilarityPercentage, 1e-9)
	assert.InDelta(t, 80.0, res.SimilarityScore, 1e-9)
	assert.True(t, res.IsPlagiarized)
}

func TestAnalyze_ThresholdBoundaries(t *testing.T) {
	terms := make([]string, 100)
	for i := range terms {
		terms[i] = fmt.Sprintf("term%03d", i)
	}
	submissionText := strings.Join(terms, " ")
	a := NewAnalyzer(DefaultOptions())

	t.Run("exactly significance threshold is dropped", func(t *testing.T) {
		// 1 of 100 terms: cos = sqrt(1/100) = 0.1
		res := a.Analyze(context.Background(), Request{
			SubmissionID: "sub-1",
			Text:         submissionText,
			Comparisons:  []Comparison{{ID: "doc-1", Text: terms[0]}},
		})

		assert.Empty(t, res.Matches)
		assert.Equal(t, 0.0, res.SimilarityScore)
		assert.False(t, res.IsPlagiarized)
	})

	t.Run("exactly plagiarism threshold is not flagged", func(t *testing.T) {
		// 49 of 100 terms: cos = sqrt(49/100) = 0.7
		res := a.Analyze(context.Background(), Request{
			SubmissionID: "sub-1",
			Text:         submissionText,
			Comparisons:  []Comparison{{ID: "doc-1", Text: strings.Join(terms[:49], " ")}},
		})

		require.Len(t, res.Matches, 1)
		assert.InDelta(t, 70.0, res.SimilarityScore, 1e-9)
		assert.False(t, res.IsPlagiarized)
	})
}

func TestAnalyze_BelowPlagiarismThreshold(t *testing.T) {
	submissionText := strings.Join(vocabulary, " ")
	// 9 of 25 terms: cos = 0.6
	partial := strings.Join(vocabulary[:9], " ")

	res := NewAnalyzer(DefaultOptions()).Analyze(context.Background(), Request{
		SubmissionID: "sub-1",
		Text:         submissionText,
		Comparisons:  []Comparison{{ID: "doc-1", Text: partial}},
	})

	require.Len(t, res.Matches, 1)
	assert.InDelta(t, 60.0, res.SimilarityScore, 1e-9)
	assert.False(t, res.IsPlagiarized)
	assert.Equal(t, []string{
		"amber birch cedar delta ember",
		"birch cedar delta ember fjord",
		"cedar delta ember fjord grove",
		"delta ember fjord grove heron",
		"ember fjord grove heron inlet",
	}, res.Matches[0].MatchedPhrases)
}

func TestAnalyze_EmptySubmissionText(t *testing.T) {
	res := NewAnalyzer(DefaultOptions()).Analyze(context.Background(), Request{
		SubmissionID: "sub-1",
		Text:         "",
		Comparisons:  []Comparison{{ID: "doc-1", Text: "anything at all"}},
	})

	assert.Equal(t, 0.0, res.SimilarityScore)
	assert.False(t, res.IsPlagiarized)
	assert.Empty(t, res.Matches)
}

func TestAnalyze_OrderStableAcrossWorkerCounts(t *testing.T) {
	submissionText := strings.Join(vocabulary, " ")
	comps := make([]Comparison, 0, 50)
	for i := 0; i < 50; i++ {
		n := i%len(vocabulary) + 1
		comps = append(comps, Comparison{
			ID:   fmt.Sprintf("doc-%02d", i),
			Text: strings.Join(vocabulary[:n], " "),
		})
	}

	sequential := NewAnalyzer(Options{Workers: 1}).Analyze(context.Background(), Request{Text: submissionText, Comparisons: comps})
	parallel := NewAnalyzer(Options{Workers: 8}).Analyze(context.Background(), Request{Text: submissionText, Comparisons: comps})

	require.Equal(t, len(sequential.Matches), len(parallel.Matches))
	for i := range sequential.Matches {
		assert.Equal(t, sequential.Matches[i].MatchedID, parallel.Matches[i].MatchedID)
		assert.Equal(t, sequential.Matches[i].SimilarityPercentage, parallel.Matches[i].SimilarityPercentage)
		assert.Equal(t, sequential.Matches[i].MatchedPhrases, parallel.Matches[i].MatchedPhrases)
	}
	for i := 1; i < len(parallel.Matches); i++ {
		assert.Less(t, parallel.Matches[i-1].MatchedID, parallel.Matches[i].MatchedID)
	}
	assert.Equal(t, sequential.SimilarityScore, parallel.SimilarityScore)
	assert.Equal(t, sequential.IsPlagiarized, parallel.IsPlagiarized)
}

func TestAnalyze_CustomThresholds(t *testing.T) {
	submissionText := strings.Join(vocabulary, " ")
	partial := strings.Join(vocabulary[:9], " ") // 60%

	a := NewAnalyzer(Options{SignificanceThreshold: 65, PlagiarismThreshold: 50})
	res := a.Analyze(context.Background(), Request{
		Text:        submissionText,
		Comparisons: []Comparison{{ID: "doc-1", Text: partial}},
	})

	assert.Empty(t, res.Matches)
	assert.Equal(t, 0.0, res.SimilarityScore)
	assert.False(t, res.IsPlagiarized)
}

func TestNewAnalyzer_AppliesDefaults(t *testing.T) {
	opts := NewAnalyzer(Options{}).Options()

	assert.Equal(t, DefaultSignificanceThreshold, opts.SignificanceThreshold)
	assert.Equal(t, DefaultPlagiarismThreshold, opts.PlagiarismThreshold)
	assert.Equal(t, 5, opts.NGramSize)
	assert.Equal(t, 10, opts.MaxPhrases)
	assert.Positive(t, opts.Workers)
}
