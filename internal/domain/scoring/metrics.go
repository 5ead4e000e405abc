package scoring

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Recognized metric keys. Any subset may be present; absent keys mean no data.
const (
	MetricRoundsCount = "rounds_count"
	MetricShotsCount  = "shots_count"

	MetricCarryDriver       = "carry_driver_m"
	MetricBallSpeedDriver   = "ball_speed_driver_kmh"
	MetricClubSpeedDriver   = "club_speed_driver_kmh"
	MetricLateralStdDriver  = "lateral_std_driver_m"
	MetricFaceToPathDriver  = "face_to_path_driver_deg"
	MetricSmashFactorDriver = "smash_factor_driver"
	MetricDriverShots       = "driver_shots_count"
	MetricCarryCVDriver     = "carry_cv_driver_pct"

	MetricCarry7Iron       = "carry_7iron_m"
	MetricBallSpeed7Iron   = "ball_speed_7iron_kmh"
	MetricClubSpeed7Iron   = "club_speed_7iron_kmh"
	MetricLateralStd7Iron  = "lateral_std_7iron_m"
	MetricSmashFactor7Iron = "smash_factor_7iron"
	Metric7IronShots       = "7iron_shots_count"

	MetricCarryPW      = "carry_pw_m"
	MetricLateralStdPW = "lateral_std_pw_m"
	MetricPWShots      = "pw_shots_count"

	MetricScoreMean     = "score_mean"
	MetricScoreStdDev   = "score_std_dev"
	MetricFairwayHit    = "fairway_hit_pct"
	MetricGIR           = "gir_pct"
	MetricPuttsPerRound = "putts_per_round"
	MetricThreePutt     = "three_putt_pct"
	MetricScrambling    = "scrambling_pct"

	MetricSGOffTheTee   = "sg_ott"
	MetricSGApproach    = "sg_approach"
	MetricSGAroundGreen = "sg_arg"
	MetricSGPutting     = "sg_putt"

	MetricBounceBack     = "bounce_back_rate_pct"
	MetricFrontBackDelta = "f9_vs_b9_delta"
	MetricPar3Relative   = "par3_vs_par_relative"
	MetricExplosionHoles = "explosion_hole_pct"
)

// MaxCount bounds every *_count metric. Larger counts are rejected by Validate and
// clamped by Count.
const MaxCount = 1_000_000

const countSuffix = "_count"

// Default observation counts assumed when a count metric is missing.
const (
	defaultDriverShots = 10
	default7IronShots  = 8
	defaultPWShots     = 10
	defaultRounds      = 10
)

// Metrics is a sparse map of raw golf metrics keyed by the Metric* names.
type Metrics map[string]float64

// Get returns the metric value and whether it is present.
func (m Metrics) Get(key string) (float64, bool) {
	v, ok := m[key]
	return v, ok
}

// Count returns a count metric truncated to int and clamped to [0, MaxCount], or def
// when absent.
func (m Metrics) Count(key string, def int) int {
	v, ok := m[key]
	if !ok {
		return def
	}
	switch {
	case math.IsNaN(v) || v <= 0:
		return 0
	case v >= MaxCount:
		return MaxCount
	}
	return int(v)
}

// Validate rejects NaN and infinite values, and counts that are negative, fractional or
// above MaxCount. Keys are checked in sorted order so the reported key is stable.
func (m Metrics) Validate() error {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v := m[k]
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%s=%v: %w", k, v, ErrInvalidMetric)
		}
		if strings.HasSuffix(k, countSuffix) && (v < 0 || v > MaxCount || v != math.Trunc(v)) {
			return fmt.Errorf("%s=%v: count must be a whole number in [0, %d]: %w", k, v, MaxCount, ErrInvalidMetric)
		}
	}
	return nil
}
