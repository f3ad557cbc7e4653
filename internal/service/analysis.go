package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_analyzer.go -package=mocks plagiarism-service/internal/service Analyzer
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_analysis_service.go -package=mocks -mock_names=AnalysisService=MockAnalysisService plagiarism-service/internal/service AnalysisService

import (
	"context"
	"errors"
	"fmt"
	"time"

	"plagiarism-service/internal/contextutil"
	"plagiarism-service/internal/extract"
	"plagiarism-service/internal/plagiarism"
	"plagiarism-service/internal/storage"
)

// Analyzer scores a submission against comparison texts.
// This interface is defined from the service layer's perspective (consumer-first).
type Analyzer interface {
	Analyze(ctx context.Context, req plagiarism.Request) plagiarism.Result
}

// ComparisonText is one text to compare against.
type ComparisonText struct {
	ID   string
	Text string
}

// AnalyzeRequest represents an analysis request in the domain layer.
type AnalyzeRequest struct {
	SubmissionID string
	Text         string
	CompareWith  []ComparisonText
	// Format is "text" (default) or "markdown"; it applies to every text in the request.
	Format string
}

// MatchResult is one comparison that passed the significance filter.
type MatchResult struct {
	MatchedID            string
	SimilarityPercentage float64
	MatchedPhrases       []string
}

// AnalyzeResponse represents the outcome of an analysis in the domain layer.
type AnalyzeResponse struct {
	SubmissionID    string
	SimilarityScore float64
	IsPlagiarized   bool
	Matches         []MatchResult
	ProcessingTime  time.Duration
	// ReportID is empty when persistence is disabled or storing the report failed.
	ReportID string
}

// Report is a stored analysis outcome.
type Report struct {
	ID              string
	SubmissionID    string
	SimilarityScore float64
	IsPlagiarized   bool
	Matches         []MatchResult
	ProcessingTime  time.Duration
	CreatedAt       time.Time
}

// AnalysisService provides plagiarism analysis and report lookup.
type AnalysisService interface {
	// Analyze scores the submission and persists a report when a store is configured.
	Analyze(ctx context.Context, req AnalyzeRequest) (AnalyzeResponse, error)
	// GetReport returns a stored report by ID.
	GetReport(ctx context.Context, id string) (Report, error)
	// ListReports returns stored reports for a submission, newest first.
	ListReports(ctx context.Context, submissionID string) ([]Report, error)
}

// analysisService implements AnalysisService.
type analysisService struct {
	analyzer  Analyzer
	reports   storage.ReportStore
	extractor *extract.Extractor
}

// NewAnalysisService creates a new AnalysisService. reports may be nil, which
// disables persistence.
func NewAnalysisService(analyzer Analyzer, reports storage.ReportStore, extractor *extract.Extractor) AnalysisService {
	if extractor == nil {
		extractor = extract.New()
	}
	return &analysisService{
		analyzer:  analyzer,
		reports:   reports,
		extractor: extractor,
	}
}

// Analyze validates the request, extracts plain text and runs the analyzer.
func (s *analysisService) Analyze(ctx context.Context, req AnalyzeRequest) (AnalyzeResponse, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if !extract.Supported(req.Format) {
		logger.WarnContext(ctx, "unsupported format in analysis request", "format", req.Format)
		return AnalyzeResponse{}, &ValidationError{
			Field:   "format",
			Message: fmt.Sprintf("unsupported format %q", req.Format),
		}
	}

	text, err := s.extractor.PlainText(req.Format, req.Text)
	if err != nil {
		return AnalyzeResponse{}, WrapError(err, "failed to extract submission text")
	}

	comparisons := make([]plagiarism.Comparison, 0, len(req.CompareWith))
	for _, c := range req.CompareWith {
		compText, err := s.extractor.PlainText(req.Format, c.Text)
		if err != nil {
			return AnalyzeResponse{}, WrapError(err, fmt.Sprintf("failed to extract comparison %s", c.ID))
		}
		comparisons = append(comparisons, plagiarism.Comparison{ID: c.ID, Text: compText})
	}

	result := s.analyzer.Analyze(ctx, plagiarism.Request{
		SubmissionID: req.SubmissionID,
		Text:         text,
		Comparisons:  comparisons,
	})

	resp := AnalyzeResponse{
		SubmissionID:    result.SubmissionID,
		SimilarityScore: result.SimilarityScore,
		IsPlagiarized:   result.IsPlagiarized,
		Matches:         make([]MatchResult, 0, len(result.Matches)),
		ProcessingTime:  result.ProcessingTime,
	}
	for _, m := range result.Matches {
		resp.Matches = append(resp.Matches, MatchResult{
			MatchedID:            m.MatchedID,
			SimilarityPercentage: m.SimilarityPercentage,
			MatchedPhrases:       m.MatchedPhrases,
		})
	}

	if s.reports != nil {
		report := &storage.Report{
			SubmissionID:     resp.SubmissionID,
			AnalysisType:     storage.AnalysisTypePlagiarism,
			SimilarityScore:  resp.SimilarityScore,
			IsPlagiarized:    resp.IsPlagiarized,
			Matches:          toReportMatches(resp.Matches),
			ProcessingTimeMs: resp.ProcessingTime.Milliseconds(),
		}
		// The analysis result is delivered even if it cannot be recorded.
		if err := s.reports.Create(ctx, report); err != nil {
			logger.ErrorContext(ctx, "failed to store analysis report", "submission_id", resp.SubmissionID, "error", err)
		} else {
			resp.ReportID = report.ID
			logger.DebugContext(ctx, "analysis report stored", "report_id", report.ID)
		}
	}

	return resp, nil
}

// GetReport returns a stored report by ID.
func (s *analysisService) GetReport(ctx context.Context, id string) (Report, error) {
	if s.reports == nil {
		return Report{}, ErrReportsDisabled
	}
	if id == "" {
		return Report{}, &ValidationError{Field: "id", Message: "cannot be empty"}
	}

	rec, err := s.reports.GetByID(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return Report{}, WrapError(ErrNotFound, fmt.Sprintf("report %s", id))
	}
	if err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to load report", "report_id", id, "error", err)
		return Report{}, WrapError(err, "failed to load report")
	}

	return fromStoredReport(rec), nil
}

// ListReports returns stored reports for a submission, newest first.
func (s *analysisService) ListReports(ctx context.Context, submissionID string) ([]Report, error) {
	if s.reports == nil {
		return nil, ErrReportsDisabled
	}
	if submissionID == "" {
		return nil, &ValidationError{Field: "submission_id", Message: "cannot be empty"}
	}

	recs, err := s.reports.ListBySubmission(ctx, submissionID)
	if err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to list reports", "submission_id", submissionID, "error", err)
		return nil, WrapError(err, "failed to list reports")
	}

	reports := make([]Report, 0, len(recs))
	for i := range recs {
		reports = append(reports, fromStoredReport(&recs[i]))
	}
	return reports, nil
}

func toReportMatches(matches []MatchResult) []storage.ReportMatch {
	out := make([]storage.ReportMatch, 0, len(matches))
	for _, m := range matches {
		out = append(out, storage.ReportMatch{
			MatchedID:            m.MatchedID,
			SimilarityPercentage: m.SimilarityPercentage,
			MatchedPhrases:       m.MatchedPhrases,
		})
	}
	return out
}

func fromStoredReport(rec *storage.Report) Report {
	matches := make([]MatchResult, 0, len(rec.Matches))
	for _, m := range rec.Matches {
		phrases := m.MatchedPhrases
		if phrases == nil {
			phrases = []string{}
		}
		matches = append(matches, MatchResult{
			MatchedID:            m.MatchedID,
			SimilarityPercentage: m.SimilarityPercentage,
			MatchedPhrases:       phrases,
		})
	}
	return Report{
		ID:              rec.ID,
		SubmissionID:    rec.SubmissionID,
		SimilarityScore: rec.SimilarityScore,
		IsPlagiarized:   rec.IsPlagiarized,
		Matches:         matches,
		ProcessingTime:  time.Duration(rec.ProcessingTimeMs) * time.Millisecond,
		CreatedAt:       rec.CreatedAt,
	}
}
