package handlers

import (
	"context"
	"net/http"
	"time"

	"plagiarism-service/internal/contextutil"
)

// ServiceName identifies this service in health responses.
const ServiceName = "plagiarism-service"

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles HTTP requests for health checks.
type HealthHandler struct {
	reportStore        Pinger
	healthCheckTimeout time.Duration
}

// NewHealthHandler creates a new HealthHandler. reportStore may be nil when
// report persistence is disabled.
func NewHealthHandler(reportStore Pinger) *HealthHandler {
	return &HealthHandler{
		reportStore:        reportStore,
		healthCheckTimeout: 5 * time.Second,
	}
}

// HealthResponse represents the health check response.
//
// swagger:model HealthResponse
type HealthResponse struct {
	// Overall health status: "healthy" or "unhealthy"
	Status string `json:"status"`

	// Service name
	Service string `json:"service"`

	// Timestamp of the health check
	Timestamp string `json:"timestamp"`

	// Individual check results
	Checks map[string]string `json:"checks"`

	// List of issues (only present if status is unhealthy)
	Issues []string `json:"issues,omitempty"`
}

// ServeHTTP handles HTTP requests for health checks.
//
// Returns 200 OK if healthy, 503 Service Unavailable if the report store is unreachable.
//
// swagger:route GET /health healthCheck
//
// # Health check endpoint
//
// ---
// produces:
// - application/json
// responses:
//
//	'200':
//	  description: Service is healthy
//	  schema:
//	    "$ref": "#/definitions/HealthResponse"
//	'503':
//	  description: Service is unhealthy
//	  schema:
//	    "$ref": "#/definitions/HealthResponse"
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodGet {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	checks := map[string]string{
		"analyzer": "ok",
	}
	var issues []string

	if h.reportStore == nil {
		checks["report_store"] = "disabled"
	} else {
		checkCtx, cancel := context.WithTimeout(ctx, h.healthCheckTimeout)
		defer cancel()

		if err := h.reportStore.Ping(checkCtx); err != nil {
			logger.WarnContext(ctx, "report store health check failed", "error", err)
			checks["report_store"] = "error"
			issues = append(issues, "report_store_unavailable")
		} else {
			checks["report_store"] = "ok"
		}
	}

	status := "healthy"
	httpStatus := http.StatusOK
	if len(issues) > 0 {
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, ctx, httpStatus, HealthResponse{
		Status:    status,
		Service:   ServiceName,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Issues:    issues,
	})
}
