package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"plagiarism-service/internal/handlers"
	"plagiarism-service/internal/service"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	AnalysisService service.AnalysisService
	// ReportStore is pinged by the health check; nil when persistence is disabled.
	ReportStore handlers.Pinger
	// MaxBodyBytes caps POST /analyze bodies; non-positive uses the handler default.
	MaxBodyBytes int64
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(LoggerMiddleware)
	r.Use(RequestLogger)
	r.Use(CORS)

	analyzeHandler := handlers.NewAnalyzeHandler(deps.AnalysisService, deps.MaxBodyBytes)
	healthHandler := handlers.NewHealthHandler(deps.ReportStore)
	reportHandler := handlers.NewReportHandler(deps.AnalysisService)

	r.Method(http.MethodPost, "/analyze", analyzeHandler)
	r.Method(http.MethodGet, "/health", healthHandler)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/reports/{id}", reportHandler.GetReport)
		r.Get("/submissions/{submissionID}/reports", reportHandler.ListReports)
	})

	return r
}
