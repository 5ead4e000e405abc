package scoring

import (
	"fmt"
	"math"
)

// Sub-metric weights per dimension. Weights inside one dimension sum to 1.0.
const (
	wLongCarry     = 0.40
	wLongSGOTT     = 0.35
	wLongBallSpeed = 0.15
	wLongFairway   = 0.10

	wMidSGApproach = 0.45
	wMidCarry      = 0.35
	wMidSmash      = 0.20

	wShortSGARG       = 0.45
	wShortLateral     = 0.30
	wShortScrambling  = 0.25
	wPuttSG           = 0.50
	wPuttPerRound     = 0.30
	wPuttThreePutt    = 0.20
	wConsScoreStd     = 0.40
	wConsScoreIndex   = 0.30
	wConsCarryCV      = 0.30
	wMentalBounceBack = 0.35
	wMentalDelta      = 0.25
	wMentalPar3       = 0.20
	wMentalExplosion  = 0.20

	wPowerClubSpeed  = 0.50
	wPowerBallSpeed  = 0.30
	wPowerClubSpeed7 = 0.20

	wAccLateral    = 0.35
	wAccFaceToPath = 0.25
	wAccGIR        = 0.25
	wAccLateral7   = 0.15
)

const (
	// fallbackScoreCV is used when the mean score is not positive.
	fallbackScoreCV = 20.0
	// mentalMediumPoints is the observation count at which the proxy-based mental
	// dimension reaches its MEDIUM ceiling.
	mentalMediumPoints = 10
)

// builder accumulates the sub-metric contributions of one dimension.
type builder struct {
	dim        Dimension
	parts      []weightedPercentile
	notes      []string
	dataPoints int
}

func (b *builder) add(percentile, weight float64, note string) {
	b.parts = append(b.parts, weightedPercentile{percentile: percentile, weight: weight})
	b.notes = append(b.notes, note)
}

func (b *builder) build(confidence Confidence, label string) DimensionScore {
	if len(b.parts) == 0 {
		return emptyDimension(b.dim)
	}
	pct := weightedMean(b.parts)
	score := PercentileToScore(pct)
	return MustDimensionScore(Round(score, 2), Round(pct, 1), ZoneFor(score), confidence, b.dataPoints, label, b.notes)
}

// confidenceOrDefault applies the fallback used by dimensions whose strongest inputs carry
// no observation count: with no counted data they are treated as ten observations.
func confidenceOrDefault(points int) Confidence {
	if points > 0 {
		return ConfidenceFor(points)
	}
	return ConfidenceFor(defaultRounds)
}

func (e *Engine) label(hcp float64) string {
	return fmt.Sprintf("Fairway HCP%.0f Benchmark %s", hcp, e.bench.Version)
}

// longGame blends driver carry, strokes gained off the tee, driver ball speed and fairways hit.
func (e *Engine) longGame(hcp float64, m Metrics) DimensionScore {
	b := &builder{dim: LongGame}
	if carry, ok := m.Get(MetricCarryDriver); ok {
		b.dataPoints += m.Count(MetricDriverShots, defaultDriverShots)
		bm, scratch := e.bench.expected(TableDriver, "carry", hcp)
		b.add(MetricToPercentile(carry, bm, scratch, true), wLongCarry,
			fmt.Sprintf("Driver carry: %.0fm (benchmark HCP%.0f: %.0fm, diff %+.0fm)", carry, hcp, bm, carry-bm))
	}
	if sg, ok := m.Get(MetricSGOffTheTee); ok {
		bm, _ := e.bench.expected(TableStrokesGained, "sg_ott", hcp)
		b.add(StrokesGainedPercentile(sg, bm), wLongSGOTT,
			fmt.Sprintf("SG off the tee: %+.2f (benchmark HCP%.0f: %+.2f)", sg, hcp, bm))
	}
	if bs, ok := m.Get(MetricBallSpeedDriver); ok {
		bm, scratch := e.bench.expected(TableDriver, "ball_speed", hcp)
		b.add(MetricToPercentile(bs, bm, scratch, true), wLongBallSpeed,
			fmt.Sprintf("Driver ball speed: %.0f km/h (benchmark: %.0f km/h)", bs, bm))
	}
	if fir, ok := m.Get(MetricFairwayHit); ok {
		bm, scratch := e.bench.expected(TableFairway, "fairway_hit_pct", hcp)
		b.add(MetricToPercentile(fir, bm, scratch, true), wLongFairway,
			fmt.Sprintf("Fairways hit: %.0f%% (benchmark: %.0f%%)", fir, bm))
	}
	return b.build(ConfidenceFor(b.dataPoints), e.label(hcp))
}

// midGame blends strokes gained approach, 7-iron carry and 7-iron smash factor.
func (e *Engine) midGame(hcp float64, m Metrics) DimensionScore {
	b := &builder{dim: MidGame}
	if sg, ok := m.Get(MetricSGApproach); ok {
		bm, _ := e.bench.expected(TableStrokesGained, "sg_app", hcp)
		b.add(StrokesGainedPercentile(sg, bm), wMidSGApproach,
			fmt.Sprintf("SG approach: %+.2f (benchmark HCP%.0f: %+.2f)", sg, hcp, bm))
	}
	if carry, ok := m.Get(MetricCarry7Iron); ok {
		b.dataPoints += m.Count(Metric7IronShots, default7IronShots)
		bm, scratch := e.bench.expected(TableIron7, "carry", hcp)
		b.add(MetricToPercentile(carry, bm, scratch, true), wMidCarry,
			fmt.Sprintf("7-iron carry: %.0fm (benchmark: %.0fm, %+.0fm)", carry, bm, carry-bm))
	}
	if sf, ok := m.Get(MetricSmashFactor7Iron); ok {
		bm, scratch := e.bench.expected(TableIronSmash, "smash_factor", hcp)
		b.add(MetricToPercentile(sf, bm, scratch, true), wMidSmash,
			fmt.Sprintf("7-iron smash factor: %.3f (benchmark: %.3f)", sf, bm))
	}
	return b.build(confidenceOrDefault(b.dataPoints), e.label(hcp))
}

// shortGame blends strokes gained around the green, wedge dispersion and scrambling.
func (e *Engine) shortGame(hcp float64, m Metrics) DimensionScore {
	b := &builder{dim: ShortGame}
	if sg, ok := m.Get(MetricSGAroundGreen); ok {
		bm, _ := e.bench.expected(TableStrokesGained, "sg_arg", hcp)
		b.add(StrokesGainedPercentile(sg, bm), wShortSGARG,
			fmt.Sprintf("SG around the green: %+.2f (benchmark: %+.2f)", sg, bm))
	}
	if disp, ok := m.Get(MetricLateralStdPW); ok {
		b.dataPoints += m.Count(MetricPWShots, defaultPWShots)
		bm, scratch := e.bench.expected(TablePW, "lateral_std", hcp)
		b.add(MetricToPercentile(disp, bm, scratch, false), wShortLateral,
			fmt.Sprintf("PW dispersion: %.1fm (benchmark: %.1fm, %+.1fm)", disp, bm, disp-bm))
	}
	if scr, ok := m.Get(MetricScrambling); ok {
		bm, scratch := e.bench.expected(TableScrambling, "scrambling_pct", hcp)
		b.add(MetricToPercentile(scr, bm, scratch, true), wShortScrambling,
			fmt.Sprintf("Scrambling: %.0f%% (benchmark: %.0f%%)", scr, bm))
	}
	return b.build(confidenceOrDefault(b.dataPoints), e.label(hcp))
}

// putting blends strokes gained putting, putts per round and three-putt rate.
func (e *Engine) putting(hcp float64, m Metrics) DimensionScore {
	b := &builder{dim: Putting}
	if sg, ok := m.Get(MetricSGPutting); ok {
		bm, _ := e.bench.expected(TableStrokesGained, "sg_putt", hcp)
		b.add(StrokesGainedPercentile(sg, bm), wPuttSG,
			fmt.Sprintf("SG putting: %+.2f (benchmark HCP%.0f: %+.2f)", sg, hcp, bm))
	}
	if ppr, ok := m.Get(MetricPuttsPerRound); ok {
		b.dataPoints += m.Count(MetricRoundsCount, defaultRounds)
		bm, scratch := e.bench.expected(TablePutting, "putts_per_round", hcp)
		b.add(MetricToPercentile(ppr, bm, scratch, false), wPuttPerRound,
			fmt.Sprintf("Putts per round: %.1f (benchmark: %.1f, %+.1f)", ppr, bm, ppr-bm))
	}
	if tp, ok := m.Get(MetricThreePutt); ok {
		bm, scratch := e.bench.expected(TablePutting, "three_putt_pct", hcp)
		b.add(MetricToPercentile(tp, bm, scratch, false), wPuttThreePutt,
			fmt.Sprintf("Three-putt rate: %.0f%% (benchmark: %.0f%%)", tp, bm))
	}
	return b.build(confidenceOrDefault(b.dataPoints), e.label(hcp))
}

// consistency measures round-to-round repeatability. The score coefficient of variation
// feeds both the spread and the consistency-index contributions.
func (e *Engine) consistency(hcp float64, m Metrics) DimensionScore {
	b := &builder{dim: Consistency}
	std, hasStd := m.Get(MetricScoreStdDev)
	mean, hasMean := m.Get(MetricScoreMean)
	if hasStd && hasMean {
		b.dataPoints += m.Count(MetricRoundsCount, defaultRounds)
		cv := fallbackScoreCV
		if mean > 0 {
			cv = std / mean * 100
		}
		bm, scratch := e.bench.expected(TableConsistency, "score_cv", hcp)
		pct := MetricToPercentile(cv, bm, scratch, false)
		b.add(pct, wConsScoreStd, fmt.Sprintf("Score spread: std=%.1f, CV=%.1f%% (benchmark: %.1f%%)", std, cv, bm))
		b.parts = append(b.parts, weightedPercentile{percentile: pct, weight: wConsScoreIndex})
	}
	if ccv, ok := m.Get(MetricCarryCVDriver); ok {
		bm, scratch := e.bench.expected(TableConsistency, "carry_cv_driver", hcp)
		b.add(MetricToPercentile(ccv, bm, scratch, false), wConsCarryCV,
			fmt.Sprintf("Driver carry CV: %.1f%% (benchmark: %.1f%%)", ccv, bm))
	}
	return b.build(ConfidenceFor(b.dataPoints), e.label(hcp))
}

// mental scores indirect proxies of course management. Confidence never exceeds MEDIUM.
func (e *Engine) mental(hcp float64, m Metrics) DimensionScore {
	b := &builder{dim: Mental}
	if bbr, ok := m.Get(MetricBounceBack); ok {
		b.dataPoints += m.Count(MetricRoundsCount, defaultRounds)
		bm, scratch := e.bench.expected(TableMental, "bounce_back", hcp)
		b.add(MetricToPercentile(bbr, bm, scratch, true), wMentalBounceBack,
			fmt.Sprintf("Bounce-back rate: %.0f%% (benchmark: %.0f%%)", bbr, bm))
	}
	if raw, ok := m.Get(MetricFrontBackDelta); ok {
		delta := math.Abs(raw)
		bm, scratch := e.bench.expected(TableMental, "f9_b9_delta", hcp)
		b.add(MetricToPercentile(delta, bm, scratch, false), wMentalDelta,
			fmt.Sprintf("Front/back nine delta: %.1f strokes (benchmark: %.1f)", delta, bm))
	}
	if p3, ok := m.Get(MetricPar3Relative); ok {
		bm, scratch := e.bench.expected(TableMental, "par3_relative", hcp)
		b.add(MetricToPercentile(p3, bm, scratch, false), wMentalPar3,
			fmt.Sprintf("Par 3 over par: %+.2f (benchmark: %+.2f)", p3, bm))
	}
	if expl, ok := m.Get(MetricExplosionHoles); ok {
		bm, scratch := e.bench.expected(TableMental, "explosion_hole", hcp)
		b.add(MetricToPercentile(expl, bm, scratch, false), wMentalExplosion,
			fmt.Sprintf("Explosion holes (+3): %.0f%% (benchmark: %.0f%%)", expl, bm))
	}
	confidence := ConfidenceLow
	if b.dataPoints >= mentalMediumPoints {
		confidence = ConfidenceMedium
	}
	return b.build(confidence, e.label(hcp)+" (proxies)")
}

// power measures raw speed potential rather than on-course outcome.
func (e *Engine) power(hcp float64, m Metrics) DimensionScore {
	b := &builder{dim: Power}
	if cs, ok := m.Get(MetricClubSpeedDriver); ok {
		b.dataPoints += m.Count(MetricDriverShots, defaultDriverShots)
		bm, scratch := e.bench.expected(TableClubSpeed, "club_speed_driver", hcp)
		b.add(MetricToPercentile(cs, bm, scratch, true), wPowerClubSpeed,
			fmt.Sprintf("Driver club speed: %.0f km/h (benchmark: %.0f km/h, %+.0f)", cs, bm, cs-bm))
	}
	if bs, ok := m.Get(MetricBallSpeedDriver); ok {
		bm, scratch := e.bench.expected(TableDriver, "ball_speed", hcp)
		b.add(MetricToPercentile(bs, bm, scratch, true), wPowerBallSpeed,
			fmt.Sprintf("Driver ball speed: %.0f km/h (benchmark: %.0f km/h)", bs, bm))
	}
	if cs7, ok := m.Get(MetricClubSpeed7Iron); ok {
		bm, scratch := e.bench.expected(TableClubSpeed7, "club_speed_7iron", hcp)
		b.add(MetricToPercentile(cs7, bm, scratch, true), wPowerClubSpeed7,
			fmt.Sprintf("7-iron club speed: %.0f km/h (benchmark: %.0f km/h)", cs7, bm))
	}
	return b.build(ConfidenceFor(b.dataPoints), e.label(hcp))
}

// accuracy measures where shots finish, independent of distance.
func (e *Engine) accuracy(hcp float64, m Metrics) DimensionScore {
	b := &builder{dim: Accuracy}
	if lat, ok := m.Get(MetricLateralStdDriver); ok {
		b.dataPoints += m.Count(MetricDriverShots, defaultDriverShots)
		bm, scratch := e.bench.expected(TableDriver, "lateral_std", hcp)
		b.add(MetricToPercentile(lat, bm, scratch, false), wAccLateral,
			fmt.Sprintf("Driver dispersion: %.1fm (benchmark: %.1fm, %+.1fm)", lat, bm, lat-bm))
	}
	if raw, ok := m.Get(MetricFaceToPathDriver); ok {
		ftp := math.Abs(raw)
		bm, scratch := e.bench.expected(TableAccuracy, "face_to_path", hcp)
		direction := "hook"
		if raw > 0 {
			direction = "slice"
		}
		b.add(MetricToPercentile(ftp, bm, scratch, false), wAccFaceToPath,
			fmt.Sprintf("|Face-to-path|: %.1f° (%s, benchmark: %.1f°)", ftp, direction, bm))
	}
	if gir, ok := m.Get(MetricGIR); ok {
		bm, scratch := e.bench.expected(TableAccuracy, "gir_pct", hcp)
		b.add(MetricToPercentile(gir, bm, scratch, true), wAccGIR,
			fmt.Sprintf("GIR: %.0f%% (benchmark: %.0f%%, %+.0fpp)", gir, bm, gir-bm))
	}
	if lat7, ok := m.Get(MetricLateralStd7Iron); ok {
		bm, scratch := e.bench.expected(TableIron7, "lateral_std", hcp)
		b.add(MetricToPercentile(lat7, bm, scratch, false), wAccLateral7,
			fmt.Sprintf("7-iron dispersion: %.1fm (benchmark: %.1fm)", lat7, bm))
	}
	return b.build(ConfidenceFor(b.dataPoints), e.label(hcp))
}
