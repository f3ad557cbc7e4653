package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"plagiarism-service/internal/contextutil"
	"plagiarism-service/internal/service"
)

// ReportHandler serves stored analysis reports.
type ReportHandler struct {
	analysisService service.AnalysisService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(analysisService service.AnalysisService) *ReportHandler {
	return &ReportHandler{analysisService: analysisService}
}

// ReportResponse represents a stored analysis report.
//
// swagger:model ReportResponse
type ReportResponse struct {
	ID               string          `json:"id"`
	SubmissionID     string          `json:"submission_id"`
	SimilarityScore  float64         `json:"similarity_score"`
	IsPlagiarized    bool            `json:"is_plagiarized"`
	Matches          []MatchResponse `json:"matches"`
	ProcessingTimeMs int64           `json:"processing_time_ms"`
	CreatedAt        string          `json:"created_at"`
}

// ReportListResponse wraps the reports of one submission.
//
// swagger:model ReportListResponse
type ReportListResponse struct {
	SubmissionID string           `json:"submission_id"`
	Reports      []ReportResponse `json:"reports"`
}

// GetReport handles GET /api/v1/reports/{id}.
func (h *ReportHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	report, err := h.analysisService.GetReport(ctx, id)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to load report")
		return
	}

	contextutil.LoggerFromContext(ctx).DebugContext(ctx, "report served", "report_id", id)
	writeJSON(w, ctx, http.StatusOK, toReportResponse(report))
}

// ListReports handles GET /api/v1/submissions/{submissionID}/reports.
func (h *ReportHandler) ListReports(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	submissionID := chi.URLParam(r, "submissionID")

	reports, err := h.analysisService.ListReports(ctx, submissionID)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to list reports")
		return
	}

	resp := ReportListResponse{
		SubmissionID: submissionID,
		Reports:      make([]ReportResponse, 0, len(reports)),
	}
	for _, report := range reports {
		resp.Reports = append(resp.Reports, toReportResponse(report))
	}
	writeJSON(w, ctx, http.StatusOK, resp)
}

func toReportResponse(r service.Report) ReportResponse {
	return ReportResponse{
		ID:               r.ID,
		SubmissionID:     r.SubmissionID,
		SimilarityScore:  r.SimilarityScore,
		IsPlagiarized:    r.IsPlagiarized,
		Matches:          toMatchResponses(r.Matches),
		ProcessingTimeMs: r.ProcessingTime.Milliseconds(),
		CreatedAt:        r.CreatedAt.UTC().Format(time.RFC3339),
	}
}
