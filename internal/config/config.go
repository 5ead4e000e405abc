// Package config defines service configuration and its loading.
package config

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/okian/fairway/internal/domain/timeline"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// QueueSize bounds the in-memory submission queue.
	QueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of profile workers.
	WorkerCount int `koanf:"worker_count"`

	// DedupeSize sets the size of the submission id cache.
	DedupeSize int `koanf:"dedupe_size"`

	// MaxLeaderboardLimit caps GET /leaderboard?limit.
	MaxLeaderboardLimit int `koanf:"max_leaderboard_limit"`

	// MaxBatchSize caps the number of profiles in POST /profiles/batch.
	MaxBatchSize int `koanf:"max_batch_size"`

	// BatchConcurrency bounds the goroutines scoring one batch.
	BatchConcurrency int `koanf:"batch_concurrency"`

	// DBPath is the SQLite history file. Empty disables history.
	DBPath string `koanf:"db_path"`

	HistoryRetention       time.Duration `koanf:"history_retention"`
	PruneInterval          time.Duration `koanf:"prune_interval"`
	MetricsRefreshInterval time.Duration `koanf:"metrics_refresh_interval"`

	// BenchmarksFile optionally replaces the built-in benchmark set with a YAML file.
	BenchmarksFile string `koanf:"benchmarks_file"`

	// CORSAllowedOrigins lists allowed origins. Empty allows any origin.
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins"`

	TimelineWindowDays int `koanf:"timeline_window_days"`
	TimelineStepDays   int `koanf:"timeline_step_days"`

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:               "info",
		LogFormat:              "text",
		Addr:                   ":9080",
		QueueSize:              10_000,
		WorkerCount:            runtime.NumCPU() * 2,
		DedupeSize:             50_000,
		MaxLeaderboardLimit:    100,
		MaxBatchSize:           500,
		BatchConcurrency:       runtime.NumCPU(),
		DBPath:                 "fairway.db",
		HistoryRetention:       90 * 24 * time.Hour,
		PruneInterval:          time.Hour,
		MetricsRefreshInterval: 15 * time.Second,
		TimelineWindowDays:     90,
		TimelineStepDays:       60,
		ShutdownTimeout:        10 * time.Second,
	}
}

// Validate reports the first invalid field, wrapped in ErrInvalidConfig.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.QueueSize < 1:
		return fmt.Errorf("%w: queue_size must be positive, got %d", ErrInvalidConfig, c.QueueSize)
	case c.WorkerCount < 1:
		return fmt.Errorf("%w: worker_count must be positive, got %d", ErrInvalidConfig, c.WorkerCount)
	case c.DedupeSize < 1:
		return fmt.Errorf("%w: dedupe_size must be positive, got %d", ErrInvalidConfig, c.DedupeSize)
	case c.MaxLeaderboardLimit < 1:
		return fmt.Errorf("%w: max_leaderboard_limit must be positive, got %d", ErrInvalidConfig, c.MaxLeaderboardLimit)
	case c.MaxBatchSize < 1:
		return fmt.Errorf("%w: max_batch_size must be positive, got %d", ErrInvalidConfig, c.MaxBatchSize)
	case c.BatchConcurrency < 1:
		return fmt.Errorf("%w: batch_concurrency must be positive, got %d", ErrInvalidConfig, c.BatchConcurrency)
	case c.TimelineWindowDays < timeline.MinWindowDays || c.TimelineStepDays < timeline.MinStepDays:
		return fmt.Errorf("%w: timeline window and step must be at least %d and %d days, got %d and %d",
			ErrInvalidConfig, timeline.MinWindowDays, timeline.MinStepDays, c.TimelineWindowDays, c.TimelineStepDays)
	case c.ShutdownTimeout <= 0:
		return fmt.Errorf("%w: shutdown_timeout must be positive", ErrInvalidConfig)
	}
	if c.DBPath != "" {
		if c.HistoryRetention <= 0 || c.PruneInterval <= 0 {
			return fmt.Errorf("%w: history_retention and prune_interval must be positive", ErrInvalidConfig)
		}
	}
	if c.MetricsRefreshInterval <= 0 {
		return fmt.Errorf("%w: metrics_refresh_interval must be positive", ErrInvalidConfig)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log_format must be text or json, got %q", ErrInvalidConfig, c.LogFormat)
	}
	return nil
}

// HistoryEnabled reports whether snapshots are persisted.
func (c *Config) HistoryEnabled() bool {
	return c.DBPath != ""
}
