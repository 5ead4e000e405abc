package loadgen

import (
	"context"
	"fmt"
	"net/url"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/okian/fairway/pkg/logger"
)

// retrieveRankings fetches the leaderboard entry of every player concurrently.
// Players the service has not ranked are skipped.
func retrieveRankings(ctx context.Context, config *Config, client *HTTPClient, subs []Submission, stats *Stats) ([]Entry, error) {
	logger.Get().Info(ctx, "retrieving rankings", logger.Int("players", len(subs)))

	rankings := make([]Entry, len(subs))
	var failed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(config.Workers)
	for i, sub := range subs {
		g.Go(func() error {
			var e Entry
			err := client.getJSON(gctx, config.BaseURL+"/players/"+url.PathEscape(sub.PlayerID), &e)
			if err != nil {
				failed.Add(1)
				if config.Verbose {
					logger.Get().Warn(gctx, "failed to get rank",
						logger.String("player_id", sub.PlayerID),
						logger.Error(err),
					)
				}
				return gctx.Err()
			}
			rankings[i] = e
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("ranking retrieval interrupted: %w", err)
	}

	valid := make([]Entry, 0, len(rankings))
	for _, e := range rankings {
		if e.PlayerID != "" {
			valid = append(valid, e)
		}
	}
	stats.RankingsRetrieved = len(valid)

	logger.Get().Info(ctx, "ranking retrieval completed",
		logger.Int("retrieved", len(valid)),
		logger.Int64("failed", failed.Load()),
	)
	return valid, nil
}

// getLeaderboard retrieves the top N leaderboard entries.
func getLeaderboard(ctx context.Context, config *Config, client *HTTPClient, stats *Stats) ([]Entry, error) {
	var leaderboard []Entry
	if err := client.getJSON(ctx, fmt.Sprintf("%s/leaderboard?limit=%d", config.BaseURL, config.TopN), &leaderboard); err != nil {
		return nil, err
	}
	stats.LeaderboardEntries = len(leaderboard)
	logger.Get().Info(ctx, "retrieved leaderboard", logger.Int("entries", len(leaderboard)))
	return leaderboard, nil
}
