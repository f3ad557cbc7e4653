package storage

import "time"

// AnalysisTypePlagiarism tags reports produced by the plagiarism analyzer.
const AnalysisTypePlagiarism = "plagiarism"

// Report is a stored analysis outcome. Reports are an audit trail only and
// are never fed back into scoring.
type Report struct {
	ID               string // UUID
	SubmissionID     string
	AnalysisType     string
	SimilarityScore  float64
	IsPlagiarized    bool
	Matches          []ReportMatch // serialized into the details column
	ProcessingTimeMs int64
	CreatedAt        time.Time
}

// ReportMatch is one retained comparison inside a report.
type ReportMatch struct {
	MatchedID            string   `json:"matched_id"`
	SimilarityPercentage float64  `json:"similarity_percentage"`
	MatchedPhrases       []string `json:"matched_phrases"`
}

// reportDetails is the JSON document stored in analysis_results.details.
type reportDetails struct {
	Matches []ReportMatch `json:"matches"`
}
