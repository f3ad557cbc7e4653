package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_report_store.go -package=mocks plagiarism-service/internal/storage ReportStore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when a record is not found.
	ErrNotFound = errors.New("record not found")
)

// ReportStore defines the interface for analysis report storage operations.
type ReportStore interface {
	// Create stores a report. An empty ID is replaced with a new UUID and a zero
	// CreatedAt with the current time; both are written back into report.
	Create(ctx context.Context, report *Report) error
	// GetByID returns the report with the given ID, or ErrNotFound.
	GetByID(ctx context.Context, id string) (*Report, error)
	// ListBySubmission returns all reports for a submission, newest first.
	ListBySubmission(ctx context.Context, submissionID string) ([]Report, error)
	// Ping verifies the underlying database is reachable.
	Ping(ctx context.Context) error
}

// ReportRepo provides methods for analysis report operations.
// It implements the ReportStore interface.
type ReportRepo struct {
	db *sql.DB
}

// NewReportRepo creates a new ReportRepo.
func NewReportRepo(db *sql.DB) *ReportRepo {
	return &ReportRepo{db: db}
}

// Create inserts a new report.
func (r *ReportRepo) Create(ctx context.Context, report *Report) error {
	if report.ID == "" {
		report.ID = uuid.New().String()
	}
	if report.AnalysisType == "" {
		report.AnalysisType = AnalysisTypePlagiarism
	}
	if report.CreatedAt.IsZero() {
		report.CreatedAt = time.Now().UTC()
	}

	matches := report.Matches
	if matches == nil {
		matches = []ReportMatch{}
	}
	details, err := json.Marshal(reportDetails{Matches: matches})
	if err != nil {
		return fmt.Errorf("failed to encode report details: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO analysis_results
		 (id, submission_id, analysis_type, similarity_score, is_plagiarized, details, processing_time_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		report.ID, report.SubmissionID, report.AnalysisType, report.SimilarityScore,
		report.IsPlagiarized, string(details), report.ProcessingTimeMs, report.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert report: %w", err)
	}

	return nil
}

// GetByID gets a report by its ID.
// Returns nil and ErrNotFound if not found.
func (r *ReportRepo) GetByID(ctx context.Context, id string) (*Report, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, submission_id, analysis_type, similarity_score, is_plagiarized, details, processing_time_ms, created_at
		 FROM analysis_results WHERE id = ?`,
		id,
	)

	report, err := scanReport(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query report: %w", err)
	}
	return report, nil
}

// ListBySubmission lists all reports for a submission, newest first.
func (r *ReportRepo) ListBySubmission(ctx context.Context, submissionID string) ([]Report, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, submission_id, analysis_type, similarity_score, is_plagiarized, details, processing_time_ms, created_at
		 FROM analysis_results WHERE submission_id = ?
		 ORDER BY created_at DESC, rowid DESC`,
		submissionID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query reports: %w", err)
	}
	defer rows.Close()

	reports := []Report{}
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}
		reports = append(reports, *report)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reports: %w", err)
	}

	return reports, nil
}

// Ping verifies the database connection.
func (r *ReportRepo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanReport(s rowScanner) (*Report, error) {
	var report Report
	var details string
	err := s.Scan(
		&report.ID, &report.SubmissionID, &report.AnalysisType, &report.SimilarityScore,
		&report.IsPlagiarized, &details, &report.ProcessingTimeMs, &report.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	var d reportDetails
	if err := json.Unmarshal([]byte(details), &d); err != nil {
		return nil, fmt.Errorf("failed to decode report details: %w", err)
	}
	report.Matches = d.Matches
	if report.Matches == nil {
		report.Matches = []ReportMatch{}
	}

	return &report, nil
}
