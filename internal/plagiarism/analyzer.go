package plagiarism

import (
	"context"
	"sync"
	"time"

	"plagiarism-service/internal/contextutil"
	"plagiarism-service/internal/textsim"
)

// Analyzer scores a submission against comparison texts and classifies it.
// It holds no per-request state and is safe for concurrent use.
type Analyzer struct {
	opts    Options
	matcher textsim.PhraseMatcher
}

// NewAnalyzer creates an Analyzer with the given options.
func NewAnalyzer(opts Options) *Analyzer {
	opts = opts.withDefaults()
	return &Analyzer{
		opts: opts,
		matcher: textsim.PhraseMatcher{
			Size:  opts.NGramSize,
			Limit: opts.MaxPhrases,
		},
	}
}

// Options returns the effective options after defaults were applied.
func (a *Analyzer) Options() Options {
	return a.opts
}

// submission is the per-request view of the submitted text, shared read-only
// by all comparison workers.
type submission struct {
	tokens textsim.Tokens
	vector *textsim.TermVector
}

// Analyze compares req.Text with every comparison and derives the verdict.
// Comparisons run concurrently; the returned matches keep input order.
// The context only carries the request logger; analysis is not cancellable.
func (a *Analyzer) Analyze(ctx context.Context, req Request) Result {
	start := time.Now()
	logger := contextutil.LoggerFromContext(ctx)

	if len(req.Comparisons) == 0 {
		logger.DebugContext(ctx, "no comparison texts, skipping analysis", "submission_id", req.SubmissionID)
		return Result{
			SubmissionID:   req.SubmissionID,
			Matches:        []Match{},
			ProcessingTime: time.Since(start),
		}
	}

	tokens := textsim.Segment(req.Text)
	sub := submission{
		tokens: tokens,
		vector: textsim.Vectorize(tokens.Terms),
	}

	candidates := a.scoreAll(sub, req.Comparisons)

	matches := make([]Match, 0, len(candidates))
	var best float64
	for _, c := range candidates {
		if c.SimilarityPercentage <= a.opts.SignificanceThreshold {
			continue
		}
		matches = append(matches, c)
		if c.SimilarityPercentage > best {
			best = c.SimilarityPercentage
		}
	}

	res := Result{
		SubmissionID:    req.SubmissionID,
		SimilarityScore: best,
		IsPlagiarized:   best > a.opts.PlagiarismThreshold,
		Matches:         matches,
		ProcessingTime:  time.Since(start),
	}

	logger.InfoContext(ctx, "analysis complete",
		"submission_id", req.SubmissionID,
		"comparisons", len(req.Comparisons),
		"matches", len(matches),
		"similarity", best,
		"plagiarized", res.IsPlagiarized,
		"elapsed_ms", res.ProcessingTime.Milliseconds(),
	)
	return res
}

// scoreAll computes one candidate per comparison. Work is spread over at most
// opts.Workers goroutines; each candidate is written to its own index so the
// result order matches the input order.
func (a *Analyzer) scoreAll(sub submission, comparisons []Comparison) []Match {
	candidates := make([]Match, len(comparisons))

	workers := a.opts.Workers
	if workers > len(comparisons) {
		workers = len(comparisons)
	}
	if workers <= 1 {
		for i, c := range comparisons {
			candidates[i] = a.score(sub, c)
		}
		return candidates
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				candidates[i] = a.score(sub, comparisons[i])
			}
		}()
	}
	for i := range comparisons {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return candidates
}

// score builds the candidate match for a single comparison.
func (a *Analyzer) score(sub submission, c Comparison) Match {
	tokens := textsim.Segment(c.Text)
	vector := textsim.Vectorize(tokens.Terms)
	return Match{
		MatchedID:            c.ID,
		SimilarityPercentage: textsim.CosineSimilarity(sub.vector, vector) * 100,
		MatchedPhrases:       a.matcher.Match(sub.tokens, tokens),
	}
}
