package loadgen

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/okian/fairway/pkg/logger"
)

// File permission constants.
const (
	directoryPermission = 0o750
	filePermission      = 0o600
)

// Run executes the complete load run and returns its statistics.
func Run(ctx context.Context, config *Config) (*Stats, error) {
	stats := &Stats{StartTime: time.Now()}
	log := logger.Get()

	log.Info(ctx, "starting fairway load run",
		logger.String("baseURL", config.BaseURL),
		logger.Int("players", config.Players),
		logger.Int("workers", config.Workers),
		logger.Duration("timeout", config.Timeout),
		logger.Int("topN", config.TopN),
		logger.Any("seed", config.Seed),
	)

	client := newHTTPClient(config.Timeout)

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, client, config); err != nil {
		return stats, fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Generate submissions
	subs, err := generateSubmissions(ctx, config, stats)
	if err != nil {
		return stats, fmt.Errorf("generation failed: %w", err)
	}

	// Step 3: Submit concurrently, then replay a share to exercise dedupe
	if err := submitAll(ctx, config, client, subs, stats); err != nil {
		return stats, err
	}
	if again := replays(subs, config.Replays, config.Seed); len(again) > 0 {
		if err := submitAll(ctx, config, client, again, stats); err != nil {
			return stats, err
		}
	}

	// Step 4: Wait for the queue to drain
	if err := waitForDrain(ctx, client, config); err != nil {
		log.Warn(ctx, "queue did not drain", logger.Error(err))
	}

	// Step 5: Retrieve rankings concurrently
	rankings, err := retrieveRankings(ctx, config, client, subs, stats)
	if err != nil {
		return stats, err
	}

	// Step 6: Get leaderboard
	leaderboard, err := getLeaderboard(ctx, config, client, stats)
	if err != nil {
		return stats, fmt.Errorf("leaderboard retrieval failed: %w", err)
	}

	// Step 7: Verify results
	if err := verifyResults(ctx, rankings, leaderboard, stats); err != nil {
		return stats, fmt.Errorf("result verification failed: %w", err)
	}

	// Step 8: Save submissions to file
	if config.OutputFile != "" {
		if err := saveSubmissions(ctx, config.OutputFile, subs); err != nil {
			log.Warn(ctx, "failed to save submissions", logger.Error(err))
		}
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(ctx, stats)

	log.Info(ctx, "load run completed successfully")
	return stats, nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, client *HTTPClient, config *Config) error {
	resp, err := client.Get(ctx, config.BaseURL+"/healthz")
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	_, _ = readResponseBody(resp)

	// Any 200 is healthy; the body is Prometheus metrics
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: health check returned %d", errUnexpectedStatus, resp.StatusCode)
	}
	return nil
}

// waitForDrain polls /stats until the queue is empty and the player count has
// stopped moving between two polls.
func waitForDrain(ctx context.Context, client *HTTPClient, config *Config) error {
	ctx, cancel := context.WithTimeout(ctx, config.DrainWait)
	defer cancel()

	ticker := time.NewTicker(DrainPollInterval)
	defer ticker.Stop()

	lastPlayers := -1
	for {
		var stats struct {
			QueueLength  int `json:"queueLength"`
			TotalPlayers int `json:"totalPlayers"`
		}
		if err := client.getJSON(ctx, config.BaseURL+"/stats", &stats); err == nil {
			if stats.QueueLength == 0 && stats.TotalPlayers == lastPlayers {
				return nil
			}
			lastPlayers = stats.TotalPlayers
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("waiting for queue drain: %w", ctx.Err())
		case <-ticker.C:
		}
	}
}

// saveSubmissions writes the generated submissions as a JSON array.
func saveSubmissions(ctx context.Context, filename string, subs []Submission) error {
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(subs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode submissions: %w", err)
	}
	if err := os.WriteFile(filename, data, filePermission); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	logger.Get().Info(ctx, "submissions saved to file", logger.String("filename", filename))
	return nil
}

// displayFinalStats logs the final run statistics.
func displayFinalStats(ctx context.Context, stats *Stats) {
	var acceptRate, perSecond float64
	if stats.Submitted > 0 {
		acceptRate = float64(stats.Accepted) / float64(stats.Submitted) * PercentageMultiplier
	}
	if stats.Duration > 0 {
		perSecond = float64(stats.Submitted) / stats.Duration.Seconds()
	}

	logger.Get().Info(ctx, "final statistics",
		logger.Int("generated", stats.Generated),
		logger.Int("submitted", stats.Submitted),
		logger.Int("accepted", stats.Accepted),
		logger.Int("duplicate", stats.Duplicate),
		logger.Int("throttled", stats.Throttled),
		logger.Int("failed", stats.Failed),
		logger.Int("rankingsRetrieved", stats.RankingsRetrieved),
		logger.Int("leaderboardEntries", stats.LeaderboardEntries),
		logger.Duration("duration", stats.Duration),
		logger.Float64("acceptRate", acceptRate),
		logger.Float64("submissionsPerSecond", perSecond),
	)
}
