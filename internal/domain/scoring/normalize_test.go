package scoring_test

import (
	"testing"

	"github.com/okian/fairway/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

func TestPercentileToScore(t *testing.T) {
	Convey("Given the percentile to score curve", t, func() {
		Convey("Then the breakpoints are exact", func() {
			So(scoring.PercentileToScore(0), ShouldEqual, 0.0)
			So(scoring.PercentileToScore(50), ShouldEqual, 5.0)
			So(scoring.PercentileToScore(85), ShouldEqual, 8.5)
			So(scoring.PercentileToScore(100), ShouldEqual, 10.0)
		})

		Convey("Then the lower segment is linear", func() {
			So(scoring.PercentileToScore(25), ShouldEqual, 2.5)
		})

		Convey("Then the middle segment follows the 3.5 over 35 slope", func() {
			So(scoring.PercentileToScore(67.5), ShouldAlmostEqual, 6.75, 1e-9)
		})

		Convey("Then the top segment is compressed", func() {
			So(scoring.PercentileToScore(92.5), ShouldAlmostEqual, 9.25, 1e-9)
		})

		Convey("Then values outside the scale clamp", func() {
			So(scoring.PercentileToScore(-5), ShouldEqual, 0.0)
			So(scoring.PercentileToScore(140), ShouldEqual, 10.0)
		})

		Convey("Then ScoreToPercentile inverts it", func() {
			for _, p := range []float64{0, 12, 50, 63, 85, 97, 100} {
				So(scoring.ScoreToPercentile(scoring.PercentileToScore(p)), ShouldAlmostEqual, p, 1e-9)
			}
		})
	})
}

func TestMetricToPercentile(t *testing.T) {
	Convey("Given a higher-is-better metric", t, func() {
		Convey("When the value equals the handicap benchmark", func() {
			So(scoring.MetricToPercentile(198, 198, 257, true), ShouldEqual, 50.0)
		})

		Convey("When the value equals the scratch benchmark", func() {
			So(scoring.MetricToPercentile(257, 198, 257, true), ShouldAlmostEqual, 95.0, 1e-9)
		})

		Convey("When the value is far below the benchmark it clamps at zero", func() {
			So(scoring.MetricToPercentile(50, 198, 257, true), ShouldEqual, 0.0)
		})

		Convey("When the value is far above scratch it clamps at 100", func() {
			So(scoring.MetricToPercentile(400, 198, 257, true), ShouldEqual, 100.0)
		})
	})

	Convey("Given a lower-is-better metric", t, func() {
		Convey("When dispersion equals scratch", func() {
			So(scoring.MetricToPercentile(5.5, 13.0, 5.5, false), ShouldAlmostEqual, 95.0, 1e-9)
		})

		Convey("When dispersion is worse than the handicap benchmark", func() {
			So(scoring.MetricToPercentile(16.0, 13.0, 5.5, false), ShouldBeLessThan, 50.0)
		})
	})

	Convey("Given a degenerate benchmark span", t, func() {
		So(scoring.MetricToPercentile(10, 1.37, 1.37, true), ShouldEqual, 50.0)
	})
}

func TestStrokesGainedPercentile(t *testing.T) {
	Convey("Given a strokes gained value", t, func() {
		Convey("When it matches the handicap benchmark", func() {
			So(scoring.StrokesGainedPercentile(-1.5, -1.5), ShouldEqual, 50.0)
		})

		Convey("When it matches tour level", func() {
			So(scoring.StrokesGainedPercentile(0, -1.5), ShouldAlmostEqual, 95.0, 1e-9)
		})

		Convey("When the benchmark is tour level itself", func() {
			So(scoring.StrokesGainedPercentile(0.7, 0), ShouldEqual, 50.0)
		})

		Convey("Then it agrees with the generic mapping against scratch zero", func() {
			So(scoring.StrokesGainedPercentile(-0.9, -2.3), ShouldAlmostEqual,
				scoring.MetricToPercentile(-0.9, -2.3, 0, true), 1e-12)
		})
	})
}

func TestZoneAndConfidence(t *testing.T) {
	Convey("Given zone thresholds", t, func() {
		So(scoring.ZoneFor(8.5), ShouldEqual, scoring.ZoneElite)
		So(scoring.ZoneFor(8.49), ShouldEqual, scoring.ZoneStrong)
		So(scoring.ZoneFor(6.5), ShouldEqual, scoring.ZoneStrong)
		So(scoring.ZoneFor(4.0), ShouldEqual, scoring.ZoneDeveloping)
		So(scoring.ZoneFor(3.99), ShouldEqual, scoring.ZoneFocusArea)
	})

	Convey("Given confidence thresholds", t, func() {
		So(scoring.ConfidenceFor(20), ShouldEqual, scoring.ConfidenceHigh)
		So(scoring.ConfidenceFor(19), ShouldEqual, scoring.ConfidenceMedium)
		So(scoring.ConfidenceFor(8), ShouldEqual, scoring.ConfidenceMedium)
		So(scoring.ConfidenceFor(7), ShouldEqual, scoring.ConfidenceLow)
		So(scoring.ConfidenceFor(1), ShouldEqual, scoring.ConfidenceLow)
		So(scoring.ConfidenceFor(0), ShouldEqual, scoring.ConfidenceNone)
	})
}

func TestRound(t *testing.T) {
	Convey("Given values to round", t, func() {
		So(scoring.Round(8.3571, 2), ShouldEqual, 8.36)
		So(scoring.Round(64.44, 1), ShouldEqual, 64.4)
		So(scoring.Round(-1.005, 0), ShouldEqual, -1.0)
	})
}
