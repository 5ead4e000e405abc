package loadgen

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/okian/fairway/pkg/logger"
)

// File permission constants.
const (
	logFilePermission = 0o600
)

// SetupLogging configures logging to stdout and, when logFile is set, to that file too.
// The returned closer releases the file.
func SetupLogging(logFile string, verbose bool) (io.Closer, error) {
	var (
		out    io.Writer = os.Stdout
		closer io.Closer = nopCloser{}
	)
	if logFile != "" {
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
		if err != nil {
			return nil, fmt.Errorf("failed to create log file: %w", err)
		}
		out = io.MultiWriter(os.Stdout, file)
		closer = file
	}

	if err := logger.InitWith(logger.Options{Format: logger.FormatText, Output: out}); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	if verbose {
		_ = logger.SetLevelString("debug")
	}
	if logFile != "" {
		logger.Get().Info(context.Background(), "logging to file", logger.String("logFile", logFile))
	}
	return closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// ShowHelp prints usage information for the load generator.
func ShowHelp() {
	os.Stdout.WriteString(`Fairway Load Generator
======================

Submits synthetic golfer profiles to a running fairway service, replays a share of
them to exercise deduplication, then checks the leaderboard against per-player ranks.

Usage:
  go run ./cmd/loadgen [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:9080")
  -players int
        Number of distinct players to submit (default 5000)
  -replays float
        Fraction of submissions sent twice (default 0.05)
  -top int
        Number of top entries to fetch from leaderboard (default 50)
  -workers int
        Number of concurrent workers (default CPU cores * 2)
  -seed uint
        Seed for metric generation (default 1)
  -timeout duration
        HTTP request timeout (default 30s)
  -drain duration
        Maximum wait for the queue to drain (default 2m)
  -output string
        Write generated submissions to this JSON file
  -log string
        Also write logs to this file
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  go run ./cmd/loadgen -players 20000 -workers 32
  go run ./cmd/loadgen -seed 7 -output runs/seed7.json
`)
}
