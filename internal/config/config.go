package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	APIPort   string
	LogLevel  slog.Level
	LogFormat string

	// DBPath is the SQLite report database. Empty disables report persistence.
	DBPath string

	SignificanceThreshold float64
	PlagiarismThreshold   float64
	NGramSize             int
	MaxPhrases            int
	AnalyzerWorkers       int

	MaxBodyBytes int64
}

// ReportsEnabled reports whether analysis reports are persisted.
func (c *Config) ReportsEnabled() bool {
	return c.DBPath != ""
}

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and validates ranges.
// If a .env file exists in the current directory or project root, it will be loaded automatically.
// Environment variables already set take precedence over .env file values.
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	// Check current directory first, then walk up to find project root
	_ = godotenv.Load() // Try current directory

	wd, err := os.Getwd()
	if err == nil {
		dir := wd
		for i := 0; i < 5; i++ { // Limit search depth
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break // Reached filesystem root
			}
			dir = parent
		}
	}

	cfg := &Config{
		APIPort:   getEnv("API_PORT", "8002"),
		LogFormat: strings.ToLower(getEnv("LOG_FORMAT", "text")),
		DBPath:    "./data/plagiarism.db",
	}

	// DB_PATH set to an empty string turns persistence off, so presence matters here.
	if v, ok := os.LookupEnv("DB_PATH"); ok {
		cfg.DBPath = strings.TrimSpace(v)
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error: %w", err)
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("LOG_FORMAT must be text or json, got %q", cfg.LogFormat)
	}

	if cfg.SignificanceThreshold, err = getEnvFloat("SIGNIFICANCE_THRESHOLD", 10); err != nil {
		return nil, err
	}
	if cfg.PlagiarismThreshold, err = getEnvFloat("PLAGIARISM_THRESHOLD", 70); err != nil {
		return nil, err
	}
	if cfg.NGramSize, err = getEnvInt("NGRAM_SIZE", 5); err != nil {
		return nil, err
	}
	if cfg.MaxPhrases, err = getEnvInt("MAX_PHRASES", 10); err != nil {
		return nil, err
	}
	if cfg.AnalyzerWorkers, err = getEnvInt("ANALYZER_WORKERS", runtime.NumCPU()); err != nil {
		return nil, err
	}
	maxBody, err := getEnvInt("MAX_BODY_BYTES", 10<<20)
	if err != nil {
		return nil, err
	}
	cfg.MaxBodyBytes = int64(maxBody)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	// Create the data directory for the report database
	if cfg.ReportsEnabled() {
		dataDir := filepath.Dir(cfg.DBPath)
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.SignificanceThreshold <= 0 || c.SignificanceThreshold > 100 {
		return fmt.Errorf("SIGNIFICANCE_THRESHOLD must be greater than 0 and at most 100, got %v", c.SignificanceThreshold)
	}
	if c.PlagiarismThreshold <= 0 || c.PlagiarismThreshold > 100 {
		return fmt.Errorf("PLAGIARISM_THRESHOLD must be greater than 0 and at most 100, got %v", c.PlagiarismThreshold)
	}
	if c.NGramSize <= 0 {
		return fmt.Errorf("NGRAM_SIZE must be greater than 0")
	}
	if c.MaxPhrases <= 0 {
		return fmt.Errorf("MAX_PHRASES must be greater than 0")
	}
	if c.AnalyzerWorkers <= 0 {
		return fmt.Errorf("ANALYZER_WORKERS must be greater than 0")
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("MAX_BODY_BYTES must be greater than 0")
	}
	return nil
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := getEnv(key, "")
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid integer: %w", key, err)
	}
	return n, nil
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	value := getEnv(key, "")
	if value == "" {
		return defaultValue, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid number: %w", key, err)
	}
	return f, nil
}
