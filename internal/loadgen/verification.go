package loadgen

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/okian/fairway/pkg/logger"
)

// ErrInconsistent reports a leaderboard that disagrees with the per-player ranks.
var ErrInconsistent = errors.New("leaderboard inconsistent")

// verifyResults checks the leaderboard against the per-player rankings.
func verifyResults(ctx context.Context, rankings, leaderboard []Entry, stats *Stats) error {
	if len(rankings) == 0 {
		return fmt.Errorf("%w: no rankings to verify", ErrInconsistent)
	}

	sorted := make([]Entry, len(rankings))
	copy(sorted, rankings)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Overall > sorted[j].Overall })

	if err := verifyLeaderboardConsistency(sorted, leaderboard); err != nil {
		return err
	}

	stats.Archetypes = countArchetypes(rankings)
	logger.Get().Info(ctx, "leaderboard consistency verified",
		logger.Int("ranked", len(rankings)),
		logger.Float64("topScore", sorted[0].Overall),
		logger.Float64("averageScore", averageScore(sorted)),
		logger.Any("archetypes", stats.Archetypes),
	)
	return nil
}

// verifyLeaderboardConsistency checks ordering, rank numbering and that no ranked
// player scores above the leaderboard head.
func verifyLeaderboardConsistency(sortedRankings, leaderboard []Entry) error {
	if len(leaderboard) == 0 {
		return fmt.Errorf("%w: empty leaderboard", ErrInconsistent)
	}

	// Players from earlier runs may outrank this run's best.
	if top := leaderboard[0]; top.Overall < sortedRankings[0].Overall {
		return fmt.Errorf("%w: top leaderboard score %.3f is below best ranked score %.3f",
			ErrInconsistent, top.Overall, sortedRankings[0].Overall)
	}
	if leaderboard[0].Rank != 1 {
		return fmt.Errorf("%w: leaderboard starts at rank %d", ErrInconsistent, leaderboard[0].Rank)
	}

	for i := 1; i < len(leaderboard); i++ {
		prev, cur := leaderboard[i-1], leaderboard[i]
		if cur.Overall > prev.Overall {
			return fmt.Errorf("%w: entry %d scores higher than entry %d", ErrInconsistent, i, i-1)
		}
		if cur.Rank < prev.Rank || (cur.Overall == prev.Overall && cur.Rank != prev.Rank) {
			return fmt.Errorf("%w: entry %d has rank %d after rank %d", ErrInconsistent, i, cur.Rank, prev.Rank)
		}
	}
	return nil
}

func countArchetypes(entries []Entry) map[string]int {
	out := make(map[string]int)
	for _, e := range entries {
		out[e.ArchetypeID]++
	}
	return out
}

func averageScore(entries []Entry) float64 {
	if len(entries) == 0 {
		return 0
	}
	sum := 0.0
	for _, e := range entries {
		sum += e.Overall
	}
	return sum / float64(len(entries))
}
