package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/okian/fairway/internal/loadgen"
)

// Default configuration constants.
const (
	defaultPlayers   = 5000
	defaultReplays   = 0.05
	defaultTopN      = 50
	defaultWorkers   = 2 // multiplier for runtime.NumCPU()
	defaultTimeout   = 30 * time.Second
	defaultDrainWait = 2 * time.Minute
	defaultRunLimit  = 10 * time.Minute
)

func main() {
	var (
		baseURL    = flag.String("url", "http://localhost:9080", "Base URL of the service")
		players    = flag.Int("players", defaultPlayers, "Number of distinct players to submit")
		replayFrac = flag.Float64("replays", defaultReplays, "Fraction of submissions sent twice")
		topN       = flag.Int("top", defaultTopN, "Number of top entries to fetch from leaderboard")
		workers    = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		seed       = flag.Uint64("seed", 1, "Seed for metric generation")
		timeout    = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		drainWait  = flag.Duration("drain", defaultDrainWait, "Maximum wait for the queue to drain")
		outputFile = flag.String("output", "", "Write generated submissions to this JSON file")
		logFile    = flag.String("log", "", "Also write logs to this file")
		verbose    = flag.Bool("verbose", false, "Enable verbose logging")
		help       = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		loadgen.ShowHelp()
		return
	}

	closer, err := loadgen.SetupLogging(*logFile, *verbose)
	if err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = closer.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, defaultRunLimit)
	defer cancel()

	config := &loadgen.Config{
		BaseURL:    *baseURL,
		Players:    *players,
		Replays:    *replayFrac,
		TopN:       *topN,
		Workers:    max(*workers, 1),
		Seed:       *seed,
		Timeout:    *timeout,
		DrainWait:  *drainWait,
		OutputFile: *outputFile,
		Verbose:    *verbose,
	}

	if _, err := loadgen.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Load run failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
