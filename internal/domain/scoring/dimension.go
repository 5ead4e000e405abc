package scoring

import (
	"fmt"
)

// Zone is the qualitative band a dimension score falls into.
type Zone string

// Zones from best to worst.
const (
	ZoneElite      Zone = "elite"
	ZoneStrong     Zone = "strong"
	ZoneDeveloping Zone = "developing"
	ZoneFocusArea  Zone = "focus_area"
)

// Confidence describes how much data backs a dimension score.
type Confidence string

// Confidence levels from most to least data.
const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
	ConfidenceNone   Confidence = "none"
)

// Zone and confidence thresholds.
const (
	eliteZoneMin      = 8.5
	strongZoneMin     = 6.5
	developingZoneMin = 4.0

	highConfidencePoints   = 20
	mediumConfidencePoints = 8
	lowConfidencePoints    = 1
)

// Score and percentile bounds.
const (
	MinScore      = 0.0
	MaxScore      = 10.0
	MinPercentile = 0.0
	MaxPercentile = 100.0

	NeutralScore      = 5.0
	NeutralPercentile = 50.0
)

// Dimension names one scored facet of play.
type Dimension string

// The eight scored dimensions.
const (
	LongGame    Dimension = "long_game"
	MidGame     Dimension = "mid_game"
	ShortGame   Dimension = "short_game"
	Putting     Dimension = "putting"
	Consistency Dimension = "consistency"
	Mental      Dimension = "mental"
	Power       Dimension = "power"
	Accuracy    Dimension = "accuracy"
)

// Overall is the key of the overall score in ScoresAsMap.
const Overall = "overall"

// Dimensions lists every dimension in canonical order. Ties in rankings keep this order.
var Dimensions = [...]Dimension{LongGame, MidGame, ShortGame, Putting, Consistency, Mental, Power, Accuracy}

// ParseDimension returns the Dimension named s.
func ParseDimension(s string) (Dimension, error) {
	for _, d := range Dimensions {
		if string(d) == s {
			return d, nil
		}
	}
	return "", fmt.Errorf("%q: %w", s, ErrUnknownDimension)
}

// DimensionScore is one scored facet of play with its audit trail.
type DimensionScore struct {
	Score         float64    `json:"score"`
	Percentile    float64    `json:"percentile"`
	Zone          Zone       `json:"zone"`
	Confidence    Confidence `json:"confidence"`
	DataPoints    int        `json:"data_points"`
	BenchmarkUsed string     `json:"benchmark_used"`
	Notes         []string   `json:"notes"`
}

// NewDimensionScore validates score and percentile ranges and builds a DimensionScore.
func NewDimensionScore(score, percentile float64, zone Zone, confidence Confidence, dataPoints int, benchmark string, notes []string) (DimensionScore, error) {
	// The negated form also rejects NaN.
	if !(score >= MinScore && score <= MaxScore) {
		return DimensionScore{}, fmt.Errorf("score %v: %w", score, ErrScoreOutOfRange)
	}
	if !(percentile >= MinPercentile && percentile <= MaxPercentile) {
		return DimensionScore{}, fmt.Errorf("percentile %v: %w", percentile, ErrPercentileOutOfRange)
	}
	if notes == nil {
		notes = []string{}
	}
	return DimensionScore{
		Score:         score,
		Percentile:    percentile,
		Zone:          zone,
		Confidence:    confidence,
		DataPoints:    dataPoints,
		BenchmarkUsed: benchmark,
		Notes:         notes,
	}, nil
}

// MustDimensionScore is like NewDimensionScore but panics on invalid ranges.
// The engine uses it because a range violation there is a bug in the math.
func MustDimensionScore(score, percentile float64, zone Zone, confidence Confidence, dataPoints int, benchmark string, notes []string) DimensionScore {
	ds, err := NewDimensionScore(score, percentile, zone, confidence, dataPoints, benchmark, notes)
	if err != nil {
		panic(fmt.Sprintf("scoring: %v", err))
	}
	return ds
}

// NoDataBenchmark labels a dimension scored without any data.
const NoDataBenchmark = "N/A — Sin datos"

// emptyDimension is the neutral score used when a dimension has no input data.
func emptyDimension(d Dimension) DimensionScore {
	return MustDimensionScore(NeutralScore, NeutralPercentile, ZoneDeveloping, ConfidenceNone, 0, NoDataBenchmark,
		[]string{fmt.Sprintf("Dimensión '%s' sin datos disponibles. Score neutral asignado.", d)})
}

// ZoneFor maps a 0-10 score to its zone.
func ZoneFor(score float64) Zone {
	switch {
	case score >= eliteZoneMin:
		return ZoneElite
	case score >= strongZoneMin:
		return ZoneStrong
	case score >= developingZoneMin:
		return ZoneDeveloping
	default:
		return ZoneFocusArea
	}
}

// ConfidenceFor maps an observation count to a confidence level.
func ConfidenceFor(dataPoints int) Confidence {
	switch {
	case dataPoints >= highConfidencePoints:
		return ConfidenceHigh
	case dataPoints >= mediumConfidencePoints:
		return ConfidenceMedium
	case dataPoints >= lowConfidencePoints:
		return ConfidenceLow
	default:
		return ConfidenceNone
	}
}

// AtLeastMedium reports whether c is HIGH or MEDIUM.
func (c Confidence) AtLeastMedium() bool {
	return c == ConfidenceHigh || c == ConfidenceMedium
}
