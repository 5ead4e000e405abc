package scoring

import (
	"fmt"
	"sort"
)

// Aggregate weights.
var (
	overallWeights = map[Dimension]float64{
		LongGame: 0.15, MidGame: 0.15, ShortGame: 0.15, Putting: 0.15,
		Consistency: 0.12, Mental: 0.10, Power: 0.10, Accuracy: 0.08,
	}
	teeToGreenWeights = map[Dimension]float64{
		LongGame: 0.30, MidGame: 0.30, ShortGame: 0.25, Accuracy: 0.15,
	}
	scoringGameWeights = map[Dimension]float64{
		Putting: 0.40, Mental: 0.35, Consistency: 0.25,
	}
)

// Result is one player's full scoring snapshot. It is built once per scoring call
// and never mutated afterwards.
type Result struct {
	PlayerID  string  `json:"player_id"`
	PlayerHCP float64 `json:"player_hcp"`

	LongGame    DimensionScore `json:"long_game"`
	MidGame     DimensionScore `json:"mid_game"`
	ShortGame   DimensionScore `json:"short_game"`
	Putting     DimensionScore `json:"putting"`
	Consistency DimensionScore `json:"consistency"`
	Mental      DimensionScore `json:"mental"`
	Power       DimensionScore `json:"power"`
	Accuracy    DimensionScore `json:"accuracy"`

	OverallScore float64 `json:"overall_score"`
	TeeToGreen   float64 `json:"tee_to_green"`
	ScoringGame  float64 `json:"scoring_game"`

	RoundsAnalyzed   int     `json:"rounds_analyzed"`
	ShotsAnalyzed    int     `json:"shots_analyzed"`
	DataCompleteness float64 `json:"data_completeness"`
	BenchmarkVersion string  `json:"benchmark_version"`
}

// DimensionValue pairs a dimension with its score.
type DimensionValue struct {
	Dimension Dimension `json:"dimension"`
	Score     float64   `json:"score"`
}

// Dimension returns the score of d.
func (r *Result) Dimension(d Dimension) (DimensionScore, error) {
	switch d {
	case LongGame:
		return r.LongGame, nil
	case MidGame:
		return r.MidGame, nil
	case ShortGame:
		return r.ShortGame, nil
	case Putting:
		return r.Putting, nil
	case Consistency:
		return r.Consistency, nil
	case Mental:
		return r.Mental, nil
	case Power:
		return r.Power, nil
	case Accuracy:
		return r.Accuracy, nil
	default:
		return DimensionScore{}, fmt.Errorf("%q: %w", d, ErrUnknownDimension)
	}
}

func (r *Result) set(d Dimension, ds DimensionScore) {
	switch d {
	case LongGame:
		r.LongGame = ds
	case MidGame:
		r.MidGame = ds
	case ShortGame:
		r.ShortGame = ds
	case Putting:
		r.Putting = ds
	case Consistency:
		r.Consistency = ds
	case Mental:
		r.Mental = ds
	case Power:
		r.Power = ds
	case Accuracy:
		r.Accuracy = ds
	}
}

// mustDimension is Dimension for the canonical dimensions.
func (r *Result) mustDimension(d Dimension) DimensionScore {
	ds, _ := r.Dimension(d)
	return ds
}

// ScoresAsMap returns every dimension score plus the overall score under "overall".
func (r *Result) ScoresAsMap() map[string]float64 {
	out := make(map[string]float64, len(Dimensions)+1)
	for _, d := range Dimensions {
		out[string(d)] = r.mustDimension(d).Score
	}
	out[Overall] = r.OverallScore
	return out
}

// DimensionsByScore ranks the eight dimensions from highest to lowest score.
// Ties keep canonical dimension order.
func (r *Result) DimensionsByScore() []DimensionValue {
	out := make([]DimensionValue, 0, len(Dimensions))
	for _, d := range Dimensions {
		out = append(out, DimensionValue{Dimension: d, Score: r.mustDimension(d).Score})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

// TopStrength returns the highest-scoring dimension.
func (r *Result) TopStrength() DimensionValue {
	return r.DimensionsByScore()[0]
}

// TopGap returns the lowest-scoring dimension.
func (r *Result) TopGap() DimensionValue {
	ranked := r.DimensionsByScore()
	return ranked[len(ranked)-1]
}

// aggregate fills the weighted aggregates and data completeness.
func (r *Result) aggregate() {
	r.OverallScore = Round(r.weighted(overallWeights), 2)
	r.TeeToGreen = Round(r.weighted(teeToGreenWeights), 2)
	r.ScoringGame = Round(r.weighted(scoringGameWeights), 2)

	confident := 0
	for _, d := range Dimensions {
		if r.mustDimension(d).Confidence.AtLeastMedium() {
			confident++
		}
	}
	r.DataCompleteness = Round(float64(confident)/float64(len(Dimensions)), 2)
}

func (r *Result) weighted(weights map[Dimension]float64) float64 {
	var sum, total float64
	// Canonical order keeps the floating-point sum reproducible.
	for _, d := range Dimensions {
		w, ok := weights[d]
		if !ok {
			continue
		}
		sum += r.mustDimension(d).Score * w
		total += w
	}
	if total == 0 {
		return NeutralScore
	}
	return sum / total
}

// ResultFromScores builds a Result from bare dimension scores, for callers that already
// hold a score vector and only need classification. Missing dimensions are neutral.
// Percentiles are derived by inverting the percentile curve; confidence is NONE.
// An "overall" key is ignored and recomputed from the dimensions.
func ResultFromScores(playerID string, hcp float64, scores map[string]float64) (Result, error) {
	r := Result{PlayerID: playerID, PlayerHCP: hcp, BenchmarkVersion: "N/A"}
	for key := range scores {
		if key == Overall {
			continue
		}
		if _, err := ParseDimension(key); err != nil {
			return Result{}, err
		}
	}
	for _, d := range Dimensions {
		s, ok := scores[string(d)]
		if !ok {
			r.set(d, emptyDimension(d))
			continue
		}
		ds, err := NewDimensionScore(s, Round(ScoreToPercentile(s), 1), ZoneFor(s), ConfidenceNone, 0, "N/A", nil)
		if err != nil {
			return Result{}, fmt.Errorf("%s: %w", d, err)
		}
		r.set(d, ds)
	}
	r.aggregate()
	return r, nil
}
