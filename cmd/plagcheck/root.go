package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"plagiarism-service/internal/contextutil"
	"plagiarism-service/internal/corpus"
	"plagiarism-service/internal/extract"
	"plagiarism-service/internal/plagiarism"
	"plagiarism-service/internal/service"
)

// errPlagiarized is returned with --fail-on-plagiarism when the verdict is positive.
var errPlagiarized = errors.New("submission flagged as plagiarized")

type checkOptions struct {
	dir              string
	format           string
	submissionID     string
	jsonOutput       bool
	failOnPlagiarism bool
	verbose          bool
	analyzer         plagiarism.Options
}

func newRootCommand() *cobra.Command {
	opts := checkOptions{analyzer: plagiarism.DefaultOptions()}

	cmd := &cobra.Command{
		Use:           "plagcheck <submission-file>",
		Short:         "Score a file against a directory of comparison texts",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args[0], opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.dir, "dir", "d", "", "Directory of comparison files (required)")
	flags.StringVarP(&opts.format, "format", "f", "", "Input format: text or markdown (default: from the submission file extension)")
	flags.StringVar(&opts.submissionID, "id", "", "Submission ID to report (default: file name)")
	flags.BoolVar(&opts.jsonOutput, "json", false, "Print the result as JSON")
	flags.BoolVar(&opts.failOnPlagiarism, "fail-on-plagiarism", false, "Exit with status 2 when the submission is flagged")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Log analysis details to stderr")
	flags.Float64Var(&opts.analyzer.SignificanceThreshold, "significance", opts.analyzer.SignificanceThreshold, "Minimum similarity percentage for a match to be reported")
	flags.Float64Var(&opts.analyzer.PlagiarismThreshold, "threshold", opts.analyzer.PlagiarismThreshold, "Similarity percentage above which the submission is flagged")
	flags.IntVar(&opts.analyzer.NGramSize, "ngram", opts.analyzer.NGramSize, "Words per matched phrase")
	flags.IntVar(&opts.analyzer.MaxPhrases, "max-phrases", opts.analyzer.MaxPhrases, "Maximum phrases reported per match")
	flags.IntVar(&opts.analyzer.Workers, "workers", opts.analyzer.Workers, "Comparisons scored in parallel")
	_ = cmd.MarkFlagRequired("dir")

	return cmd
}

func runCheck(cmd *cobra.Command, submissionPath string, opts checkOptions) error {
	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	ctx := contextutil.WithLogger(cmd.Context(), logger)

	format := opts.format
	if format == "" {
		format = formatForPath(submissionPath)
	}
	if !extract.Supported(format) {
		return fmt.Errorf("unsupported format %q", format)
	}

	content, err := os.ReadFile(submissionPath)
	if err != nil {
		return fmt.Errorf("failed to read submission: %w", err)
	}

	docs, err := corpus.Load(ctx, opts.dir, corpus.Extensions(format), submissionPath)
	if err != nil {
		return err
	}
	logger.DebugContext(ctx, "comparison corpus loaded", "dir", opts.dir, "documents", len(docs))

	submissionID := opts.submissionID
	if submissionID == "" {
		submissionID = filepath.Base(submissionPath)
	}

	compare := make([]service.ComparisonText, 0, len(docs))
	for _, doc := range docs {
		compare = append(compare, service.ComparisonText{ID: doc.ID, Text: doc.Text})
	}

	svc := service.NewAnalysisService(plagiarism.NewAnalyzer(opts.analyzer), nil, extract.New())
	resp, err := svc.Analyze(ctx, service.AnalyzeRequest{
		SubmissionID: submissionID,
		Text:         string(content),
		CompareWith:  compare,
		Format:       format,
	})
	if err != nil {
		return err
	}

	if opts.jsonOutput {
		if err := writeJSON(cmd, toCheckResult(resp, len(docs))); err != nil {
			return err
		}
	} else {
		fmt.Fprint(cmd.OutOrStdout(), renderResult(resp, len(docs)))
	}

	if opts.failOnPlagiarism && resp.IsPlagiarized {
		return errPlagiarized
	}
	return nil
}

func formatForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return extract.FormatMarkdown
	default:
		return extract.FormatText
	}
}

type checkMatch struct {
	MatchedID            string   `json:"matched_id"`
	SimilarityPercentage float64  `json:"similarity_percentage"`
	MatchedPhrases       []string `json:"matched_phrases"`
}

type checkResult struct {
	SubmissionID     string       `json:"submission_id"`
	Compared         int          `json:"compared"`
	SimilarityScore  float64      `json:"similarity_score"`
	IsPlagiarized    bool         `json:"is_plagiarized"`
	Matches          []checkMatch `json:"matches"`
	ProcessingTimeMs int64        `json:"processing_time_ms"`
}

func toCheckResult(resp service.AnalyzeResponse, compared int) checkResult {
	out := checkResult{
		SubmissionID:     resp.SubmissionID,
		Compared:         compared,
		SimilarityScore:  resp.SimilarityScore,
		IsPlagiarized:    resp.IsPlagiarized,
		Matches:          make([]checkMatch, 0, len(resp.Matches)),
		ProcessingTimeMs: resp.ProcessingTime.Milliseconds(),
	}
	for _, m := range resp.Matches {
		phrases := m.MatchedPhrases
		if phrases == nil {
			phrases = []string{}
		}
		out.Matches = append(out.Matches, checkMatch{
			MatchedID:            m.MatchedID,
			SimilarityPercentage: m.SimilarityPercentage,
			MatchedPhrases:       phrases,
		})
	}
	return out
}

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
