package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"plagiarism-service/internal/contextutil"
	"plagiarism-service/internal/service"
)

// DefaultMaxBodyBytes caps the size of an analysis request body.
const DefaultMaxBodyBytes int64 = 10 << 20

// AnalyzeHandler handles HTTP requests for plagiarism analysis.
type AnalyzeHandler struct {
	analysisService service.AnalysisService
	maxBodyBytes    int64
}

// NewAnalyzeHandler creates a new AnalyzeHandler. A non-positive maxBodyBytes
// uses DefaultMaxBodyBytes.
func NewAnalyzeHandler(analysisService service.AnalysisService, maxBodyBytes int64) *AnalyzeHandler {
	if maxBodyBytes <= 0 {
		maxBodyBytes = DefaultMaxBodyBytes
	}
	return &AnalyzeHandler{
		analysisService: analysisService,
		maxBodyBytes:    maxBodyBytes,
	}
}

// CompareText is one comparison text in an analysis request.
// Fields are pointers so that a missing field can be told apart from an empty one.
//
// swagger:model CompareText
type CompareText struct {
	ID   *string `json:"id"`
	Text *string `json:"text"`
}

// AnalyzeRequest represents the HTTP request payload for plagiarism analysis.
//
// swagger:model AnalyzeRequest
type AnalyzeRequest struct {
	// Opaque identifier of the submission (required)
	SubmissionID *string `json:"submission_id"`

	// Submitted text (required, may be empty)
	Text *string `json:"text"`

	// Texts to compare against
	CompareWith []CompareText `json:"compare_with,omitempty"`

	// Input format of all texts: "text" (default) or "markdown"
	Format string `json:"format,omitempty"`
}

// MatchResponse is one comparison that passed the significance filter.
//
// swagger:model MatchResponse
type MatchResponse struct {
	MatchedID            string   `json:"matched_id"`
	SimilarityPercentage float64  `json:"similarity_percentage"`
	MatchedPhrases       []string `json:"matched_phrases"`
}

// AnalyzeResponse represents the HTTP response payload for plagiarism analysis.
//
// swagger:model AnalyzeResponse
type AnalyzeResponse struct {
	SubmissionID string `json:"submission_id"`

	// Highest similarity percentage among reported matches, 0 when none
	SimilarityScore float64 `json:"similarity_score"`

	// True when the similarity score exceeds the plagiarism threshold
	IsPlagiarized bool `json:"is_plagiarized"`

	// Matches in the order the comparison texts were supplied
	Matches []MatchResponse `json:"matches"`

	ProcessingTimeMs int64 `json:"processing_time_ms"`

	// ID of the stored report, absent when persistence is disabled
	ReportID string `json:"report_id,omitempty"`
}

// ServeHTTP handles HTTP requests for plagiarism analysis.
//
// swagger:route POST /analyze analyzePlagiarism
//
// # Analyze a submission for plagiarism
//
// Scores the submitted text against each comparison text and returns the
// significant matches with their overlapping phrases.
//
// ---
// consumes:
// - application/json
// produces:
// - application/json
// responses:
//
//	'200':
//	  description: Analysis result
//	  schema:
//	    "$ref": "#/definitions/AnalyzeResponse"
//	'400':
//	  description: Malformed body or missing required field
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
//	'413':
//	  description: Request body too large
//	  schema:
//	    "$ref": "#/definitions/ErrorResponse"
func (h *AnalyzeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)

	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			logger.WarnContext(ctx, "request body too large", "limit", maxErr.Limit)
			writeError(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return
		}
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	svcReq, msg := toServiceRequest(req)
	if msg != "" {
		logger.WarnContext(ctx, "incomplete analysis request", "reason", msg)
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	logger.InfoContext(ctx, "analyzing submission", "submission_id", svcReq.SubmissionID, "comparisons", len(svcReq.CompareWith))

	svcResp, err := h.analysisService.Analyze(ctx, svcReq)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to analyze submission")
		return
	}

	resp := AnalyzeResponse{
		SubmissionID:     svcResp.SubmissionID,
		SimilarityScore:  svcResp.SimilarityScore,
		IsPlagiarized:    svcResp.IsPlagiarized,
		Matches:          toMatchResponses(svcResp.Matches),
		ProcessingTimeMs: svcResp.ProcessingTime.Milliseconds(),
		ReportID:         svcResp.ReportID,
	}

	writeJSON(w, ctx, http.StatusOK, resp)
}

// toServiceRequest checks required fields and converts the payload.
// It returns a client-facing message when a field is missing.
func toServiceRequest(req AnalyzeRequest) (service.AnalyzeRequest, string) {
	if req.SubmissionID == nil {
		return service.AnalyzeRequest{}, "submission_id is required"
	}
	if req.Text == nil {
		return service.AnalyzeRequest{}, "text is required"
	}

	compare := make([]service.ComparisonText, 0, len(req.CompareWith))
	for i, c := range req.CompareWith {
		if c.ID == nil {
			return service.AnalyzeRequest{}, fmt.Sprintf("compare_with[%d].id is required", i)
		}
		if c.Text == nil {
			return service.AnalyzeRequest{}, fmt.Sprintf("compare_with[%d].text is required", i)
		}
		compare = append(compare, service.ComparisonText{ID: *c.ID, Text: *c.Text})
	}

	return service.AnalyzeRequest{
		SubmissionID: *req.SubmissionID,
		Text:         *req.Text,
		CompareWith:  compare,
		Format:       req.Format,
	}, ""
}

func toMatchResponses(matches []service.MatchResult) []MatchResponse {
	out := make([]MatchResponse, 0, len(matches))
	for _, m := range matches {
		phrases := m.MatchedPhrases
		if phrases == nil {
			phrases = []string{}
		}
		out = append(out, MatchResponse{
			MatchedID:            m.MatchedID,
			SimilarityPercentage: m.SimilarityPercentage,
			MatchedPhrases:       phrases,
		})
	}
	return out
}
