package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"plagiarism-service/internal/config"
	"plagiarism-service/internal/extract"
	"plagiarism-service/internal/handlers"
	"plagiarism-service/internal/http"
	"plagiarism-service/internal/plagiarism"
	"plagiarism-service/internal/service"
	"plagiarism-service/internal/storage"
)

//go:generate swagger generate spec -o swagger.json

// General API information
//
// This API scores a submitted text against a set of comparison texts and reports
// overlapping phrases and a plagiarism verdict.
//
// swagger:meta
//
// ---
// swagger: '2.0'
// info:
//   title: Plagiarism Service API
//   description: |
//     Similarity scoring for submitted texts. Each comparison text is scored with
//     term-frequency cosine similarity and shared five-word phrases are reported.
//   version: 1.0.0
// schemes:
//   - http
//   - https
// consumes:
//   - application/json
// produces:
//   - application/json

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	// Report persistence is optional; the interfaces stay untyped nil when it is off.
	var (
		reportStore storage.ReportStore
		pinger      handlers.Pinger
	)
	if cfg.ReportsEnabled() {
		db, err := storage.New(cfg.DBPath)
		if err != nil {
			log.Fatalf("Failed to open database: %v", err)
		}
		defer func() {
			_ = db.Close()
		}()

		if err := storage.Migrate(db); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
		slog.Info("Database initialized", "path", cfg.DBPath)

		repo := storage.NewReportRepo(db)
		reportStore = repo
		pinger = repo
	} else {
		slog.Info("Report persistence disabled")
	}

	analyzer := plagiarism.NewAnalyzer(plagiarism.Options{
		SignificanceThreshold: cfg.SignificanceThreshold,
		PlagiarismThreshold:   cfg.PlagiarismThreshold,
		NGramSize:             cfg.NGramSize,
		MaxPhrases:            cfg.MaxPhrases,
		Workers:               cfg.AnalyzerWorkers,
	})
	slog.Info("Analyzer initialized",
		"significance_threshold", cfg.SignificanceThreshold,
		"plagiarism_threshold", cfg.PlagiarismThreshold,
		"ngram_size", cfg.NGramSize,
		"max_phrases", cfg.MaxPhrases,
		"workers", cfg.AnalyzerWorkers,
	)

	analysisService := service.NewAnalysisService(analyzer, reportStore, extract.New())

	// Create router with dependencies
	router := http.NewRouter(&http.Deps{
		AnalysisService: analysisService,
		ReportStore:     pinger,
		MaxBodyBytes:    cfg.MaxBodyBytes,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start API server
	addr := ":" + cfg.APIPort
	server := &nethttp.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		slog.Info("Shutting down API server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("Graceful shutdown failed", "error", err)
		}
	}()

	slog.Info("Starting API server", "addr", addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
		log.Fatalf("API server failed to start: %v", err)
	}
	slog.Info("API server stopped")
}
