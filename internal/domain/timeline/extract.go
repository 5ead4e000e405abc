package timeline

import (
	"math"
	"sort"

	"github.com/okian/fairway/internal/domain/scoring"
)

// minLaterals is the fewest lateral readings a club needs before its spread is reported.
const minLaterals = 3

// holesPerRound is used to turn greens hit into a percentage.
const holesPerRound = 18

// ExtractOptions tunes metric extraction.
type ExtractOptions struct {
	// RobustLateral reports the 75th percentile of absolute lateral misses instead of
	// the standard deviation, so one wild shot does not dominate the spread.
	RobustLateral bool
}

type clubSamples struct {
	carry, ballSpeed, clubSpeed, lateral, faceToPath []float64
}

func (c *clubSamples) add(s Shot) {
	appendIf(&c.carry, s.Carry)
	appendIf(&c.ballSpeed, s.BallSpeed)
	appendIf(&c.clubSpeed, s.ClubSpeed)
	appendIf(&c.lateral, s.Lateral)
	appendIf(&c.faceToPath, s.FaceToPath)
}

func appendIf(dst *[]float64, v *float64) {
	if v != nil && !math.IsNaN(*v) && !math.IsInf(*v, 0) {
		*dst = append(*dst, *v)
	}
}

// ExtractMetrics derives scoring metrics from raw shots and rounds. Metrics without
// enough underlying data are left out so the scorer treats them as missing.
func ExtractMetrics(shots []Shot, rounds []Round, opts ExtractOptions) scoring.Metrics {
	m := scoring.Metrics{
		scoring.MetricRoundsCount: float64(len(rounds)),
		scoring.MetricShotsCount:  float64(len(shots)),
	}

	clubs := map[Club]*clubSamples{ClubDriver: {}, Club7Iron: {}, ClubPW: {}}
	for _, s := range shots {
		if c, ok := clubs[ParseClub(s.Club)]; ok {
			c.add(s)
		}
	}

	dr := clubs[ClubDriver]
	if len(dr.carry) > 0 {
		m[scoring.MetricCarryDriver] = mean(dr.carry)
		m[scoring.MetricDriverShots] = float64(len(dr.carry))
	}
	setMean(m, scoring.MetricBallSpeedDriver, dr.ballSpeed)
	setMean(m, scoring.MetricClubSpeedDriver, dr.clubSpeed)
	setMean(m, scoring.MetricFaceToPathDriver, absAll(dr.faceToPath))
	setLateral(m, scoring.MetricLateralStdDriver, dr.lateral, opts)

	ir7 := clubs[Club7Iron]
	if len(ir7.carry) > 0 {
		m[scoring.MetricCarry7Iron] = mean(ir7.carry)
		m[scoring.Metric7IronShots] = float64(len(ir7.carry))
	}
	setMean(m, scoring.MetricBallSpeed7Iron, ir7.ballSpeed)
	setMean(m, scoring.MetricClubSpeed7Iron, ir7.clubSpeed)
	setLateral(m, scoring.MetricLateralStd7Iron, ir7.lateral, opts)

	pw := clubs[ClubPW]
	if len(pw.carry) > 0 {
		m[scoring.MetricCarryPW] = mean(pw.carry)
		m[scoring.MetricPWShots] = float64(len(pw.carry))
	}
	setLateral(m, scoring.MetricLateralStdPW, pw.lateral, opts)

	extractRounds(m, rounds)
	return m
}

func extractRounds(m scoring.Metrics, rounds []Round) {
	var scores, putts []float64
	var fwHit, fwPossible, gir, girRounds int
	for _, r := range rounds {
		scores = append(scores, r.Score)
		appendIf(&putts, r.Putts)
		if r.FairwaysHit != nil && r.FairwaysPossible != nil && *r.FairwaysPossible > 0 {
			fwHit += *r.FairwaysHit
			fwPossible += *r.FairwaysPossible
		}
		if r.GIR != nil {
			gir += *r.GIR
			girRounds++
		}
	}

	switch {
	case len(scores) >= 2:
		m[scoring.MetricScoreMean] = mean(scores)
		m[scoring.MetricScoreStdDev] = stdDev(scores)
	case len(scores) == 1:
		m[scoring.MetricScoreMean] = scores[0]
	}
	setMean(m, scoring.MetricPuttsPerRound, putts)
	if fwPossible > 0 {
		m[scoring.MetricFairwayHit] = scoring.Round(100*float64(fwHit)/float64(fwPossible), 1)
	}
	if girRounds > 0 {
		m[scoring.MetricGIR] = scoring.Round(100*float64(gir)/float64(girRounds*holesPerRound), 1)
	}
}

func setMean(m scoring.Metrics, key string, xs []float64) {
	if len(xs) > 0 {
		m[key] = mean(xs)
	}
}

func setLateral(m scoring.Metrics, key string, laterals []float64, opts ExtractOptions) {
	if len(laterals) < minLaterals {
		return
	}
	if opts.RobustLateral {
		m[key], _ = DispersionP75(laterals)
		return
	}
	m[key] = stdDev(laterals)
}

// DispersionP75 returns the 75th percentile of absolute lateral misses, rounded to
// 0.1 m. It reports false for an empty input.
func DispersionP75(points []float64) (float64, bool) {
	if len(points) == 0 {
		return 0, false
	}
	xs := absAll(points)
	sort.Float64s(xs)
	return scoring.Round(xs[int(float64(len(xs))*0.75)], 1), true
}

func absAll(xs []float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = math.Abs(x)
	}
	return out
}

func mean(xs []float64) float64 {
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// stdDev is the sample standard deviation. Callers pass at least two values.
func stdDev(xs []float64) float64 {
	mu := mean(xs)
	var ss float64
	for _, x := range xs {
		ss += (x - mu) * (x - mu)
	}
	return math.Sqrt(ss / float64(len(xs)-1))
}
