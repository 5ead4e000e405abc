package loadgen

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/google/uuid"

	"github.com/okian/fairway/pkg/logger"
)

// Metric keys sent in generated profiles.
const (
	metricRoundsCount    = "rounds_count"
	metricShotsCount     = "shots_count"
	metricCarryDriver    = "carry_driver_m"
	metricDriverShots    = "driver_shots_count"
	metricLateralDriver  = "lateral_std_driver_m"
	metricCarry7Iron     = "carry_7iron_m"
	metric7IronShots     = "7iron_shots_count"
	metricScoreMean      = "score_mean"
	metricScoreStdDev    = "score_std_dev"
	metricPuttsPerRound  = "putts_per_round"
	metricFairwayHit     = "fairway_hit_pct"
	metricGIR            = "gir_pct"
	metricThreePutt      = "three_putt_pct"
	metricScrambling     = "scrambling_pct"
	metricBallSpeedDrive = "ball_speed_driver_kmh"
)

// Handicap range of generated players.
const (
	minHandicap = 0.0
	maxHandicap = 36.0
)

// generateSubmissions creates one submission per player. The same seed always yields
// the same metrics; submission and player ids are random uuids.
func generateSubmissions(ctx context.Context, config *Config, stats *Stats) ([]Submission, error) {
	logger.Get().Info(ctx, "generating submissions", logger.Int("players", config.Players))

	rng := rand.New(rand.NewPCG(config.Seed, config.Seed^0x9e3779b97f4a7c15))
	subs := make([]Submission, config.Players)
	for i := range subs {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("context cancelled during generation: %w", err)
		}
		subs[i] = generateSingleSubmission(rng, uuid.NewString(), uuid.NewString())
	}

	stats.Generated = len(subs)
	logger.Get().Info(ctx, "generated submissions successfully", logger.Int("count", len(subs)))
	return subs, nil
}

// generateSingleSubmission draws a handicap and derives metrics that roughly track it,
// with per-player noise so strengths and gaps vary.
func generateSingleSubmission(rng *rand.Rand, submissionID, playerID string) Submission {
	hcp := round1(minHandicap + rng.Float64()*(maxHandicap-minHandicap))
	// skill runs from 1 (scratch) to 0 (36 handicap)
	skill := 1 - hcp/maxHandicap
	noise := func(spread float64) float64 { return rng.NormFloat64() * spread }

	rounds := float64(3 + rng.IntN(25))
	driverShots := float64(rng.IntN(60))
	ironShots := float64(rng.IntN(40))

	m := map[string]float64{
		metricRoundsCount:   rounds,
		metricShotsCount:    driverShots + ironShots,
		metricScoreMean:     round1(72 + (1-skill)*38 + noise(2)),
		metricScoreStdDev:   round1(clamp(2.5+(1-skill)*4+noise(0.8), 1, 12)),
		metricPuttsPerRound: round1(clamp(29+(1-skill)*7+noise(1.2), 24, 42)),
		metricFairwayHit:    round1(clamp(35+skill*30+noise(8), 5, 95)),
		metricGIR:           round1(clamp(8+skill*55+noise(6), 0, 90)),
		metricThreePutt:     round1(clamp(2+(1-skill)*14+noise(2), 0, 40)),
		metricScrambling:    round1(clamp(15+skill*45+noise(7), 0, 90)),
	}
	if driverShots > 0 {
		m[metricDriverShots] = driverShots
		m[metricCarryDriver] = round1(clamp(150+skill*95+noise(12), 90, 320))
		m[metricBallSpeedDrive] = round1(clamp(190+skill*85+noise(10), 120, 320))
		m[metricLateralDriver] = round1(clamp(30-skill*18+noise(4), 3, 60))
	}
	if ironShots > 0 {
		m[metric7IronShots] = ironShots
		m[metricCarry7Iron] = round1(clamp(105+skill*60+noise(8), 60, 200))
	}

	return Submission{
		SubmissionID: submissionID,
		PlayerID:     playerID,
		Handicap:     hcp,
		Metrics:      m,
	}
}

// replays picks the submissions that are sent a second time.
func replays(subs []Submission, fraction float64, seed uint64) []Submission {
	if fraction <= 0 || len(subs) == 0 {
		return nil
	}
	n := int(math.Round(float64(len(subs)) * math.Min(fraction, 1)))
	rng := rand.New(rand.NewPCG(seed, seed+1))
	out := make([]Submission, 0, n)
	for _, idx := range rng.Perm(len(subs))[:n] {
		out = append(out, subs[idx])
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
