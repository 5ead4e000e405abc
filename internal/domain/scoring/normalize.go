package scoring

import "math"

const (
	// percentileAtHCP is where a metric exactly at the player's handicap benchmark lands.
	percentileAtHCP = 50.0
	// percentileSpan is the distance from the handicap benchmark to the scratch benchmark.
	percentileSpan = 45.0
	// minBenchmarkRange guards against dividing by a degenerate benchmark span.
	minBenchmarkRange = 0.001

	goodPercentileMin  = 50.0
	elitePercentileMin = 85.0
)

// MetricToPercentile places a raw metric on a 0-100 scale where 50 is the player's
// handicap benchmark and 95 is the scratch benchmark. Metrics where lower is better
// are negated together with both benchmarks before the same linear map is applied.
func MetricToPercentile(value, atHCP, atScratch float64, higherIsBetter bool) float64 {
	if !higherIsBetter {
		value, atHCP, atScratch = -value, -atHCP, -atScratch
	}
	span := atScratch - atHCP
	if math.Abs(span) < minBenchmarkRange {
		return percentileAtHCP
	}
	raw := percentileAtHCP + (value-atHCP)/span*percentileSpan
	return clamp(raw, MinPercentile, MaxPercentile)
}

// StrokesGainedPercentile rescales a strokes-gained value against the handicap
// benchmark, with tour level (0.0) at the 95th percentile.
func StrokesGainedPercentile(sg, atHCP float64) float64 {
	const tour = 0.0
	span := tour - atHCP
	if math.Abs(span) <= minBenchmarkRange {
		return percentileAtHCP
	}
	return clamp(percentileAtHCP+(sg-atHCP)/span*percentileSpan, MinPercentile, MaxPercentile)
}

// PercentileToScore maps a percentile to a 0-10 score with a compressed top end:
// 0-50 maps linearly to 0-5, 50-85 to 5-8.5 and 85-100 to 8.5-10.
func PercentileToScore(p float64) float64 {
	switch {
	case p <= MinPercentile:
		return MinScore
	case p >= MaxPercentile:
		return MaxScore
	case p >= elitePercentileMin:
		return 8.5 + (p-elitePercentileMin)/15*1.5
	case p >= goodPercentileMin:
		return 5.0 + (p-goodPercentileMin)/35*3.5
	default:
		return p / 10
	}
}

// ScoreToPercentile inverts PercentileToScore.
func ScoreToPercentile(score float64) float64 {
	switch {
	case score <= MinScore:
		return MinPercentile
	case score >= MaxScore:
		return MaxPercentile
	case score >= 8.5:
		return elitePercentileMin + (score-8.5)/1.5*15
	case score >= 5.0:
		return goodPercentileMin + (score-5.0)/3.5*35
	default:
		return score * 10
	}
}

// weightedPercentile is one sub-metric contribution to a dimension.
type weightedPercentile struct {
	percentile float64
	weight     float64
}

// weightedMean averages the contributions; absent sub-metrics are simply not in the slice,
// so the remaining weights renormalize through the denominator.
func weightedMean(parts []weightedPercentile) float64 {
	var sum, total float64
	for _, p := range parts {
		sum += p.percentile * p.weight
		total += p.weight
	}
	if total == 0 {
		return percentileAtHCP
	}
	return sum / total
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// Round rounds x half away from zero to the given number of decimals.
func Round(x float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(x*p) / p
}
