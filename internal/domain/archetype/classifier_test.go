package archetype_test

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/okian/fairway/internal/domain/archetype"
	"github.com/okian/fairway/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

// flat returns a score vector with every dimension at v, overridden by extra.
func flat(v float64, extra map[scoring.Dimension]float64) map[string]float64 {
	out := make(map[string]float64, len(scoring.Dimensions))
	for _, d := range scoring.Dimensions {
		out[string(d)] = v
	}
	for d, s := range extra {
		out[string(d)] = s
	}
	return out
}

func mustResult(t *testing.T, hcp float64, scores map[string]float64) scoring.Result {
	t.Helper()
	r, err := scoring.ResultFromScores("p1", hcp, scores)
	if err != nil {
		t.Fatalf("ResultFromScores: %v", err)
	}
	return r
}

func TestClassifyRules(t *testing.T) {
	c := archetype.NewClassifier()

	Convey("Given score patterns that trigger specific rules", t, func() {
		cases := []struct {
			name   string
			hcp    float64
			scores map[string]float64
			want   archetype.ID
		}{
			{"elite power with an accuracy gap", 15, flat(5, map[scoring.Dimension]float64{scoring.Power: 8, scoring.Accuracy: 4}), archetype.A1},
			{"elite power and long game", 10, flat(5, map[scoring.Dimension]float64{scoring.Power: 8, scoring.LongGame: 8}), archetype.A2},
			{"elite power alone", 10, flat(5, map[scoring.Dimension]float64{scoring.Power: 8}), archetype.A3},
			{"elite short game and putting", 18, flat(5, map[scoring.Dimension]float64{scoring.ShortGame: 8, scoring.Putting: 8}), archetype.B3},
			{"elite short game with a power gap", 18, flat(5, map[scoring.Dimension]float64{scoring.ShortGame: 8, scoring.Power: 4}), archetype.B1},
			{"elite putting", 18, flat(5, map[scoring.Dimension]float64{scoring.Putting: 8}), archetype.B2},
			{"elite mental and consistency with putting", 12, flat(5, map[scoring.Dimension]float64{scoring.Mental: 8, scoring.Consistency: 8, scoring.Putting: 7}), archetype.C2},
			{"elite mental", 12, flat(5, map[scoring.Dimension]float64{scoring.Mental: 8}), archetype.C1},
			{"elite consistency without gaps", 12, flat(6, map[scoring.Dimension]float64{scoring.Consistency: 8}), archetype.C3},
			{"balanced mid handicap", 20, flat(5, nil), archetype.C3},
			{"balanced high handicap", 30, flat(5, nil), archetype.D1},
			{"everything weak", 25, flat(3, nil), archetype.D1},
			{"power ahead of results", 25, flat(4, map[scoring.Dimension]float64{scoring.Power: 7}), archetype.D2},
		}
		for _, tc := range cases {
			Convey("When classifying "+tc.name, func() {
				got := c.Classify(mustResult(t, tc.hcp, tc.scores))

				Convey("Then the expected archetype is assigned", func() {
					So(got.Archetype.ID, ShouldEqual, tc.want)
					So(got.Rule, ShouldNotBeEmpty)
				})
			})
		}
	})

	// Each vector only just misses every rule above the one it targets.
	Convey("Given vectors aimed at one rule each", t, func() {
		cases := []struct {
			rule   string
			hcp    float64
			scores map[string]float64
			want   archetype.ID
		}{
			{"long game elite", 15, flat(5, map[scoring.Dimension]float64{scoring.LongGame: 8}), archetype.A2},
			{"short game elite", 18, flat(5, map[scoring.Dimension]float64{scoring.ShortGame: 8}), archetype.B3},
			{"short game and putting strong without approach gaps", 18,
				flat(5, map[scoring.Dimension]float64{scoring.ShortGame: 7, scoring.Putting: 7}), archetype.B3},
			{"mental and consistency elite", 12,
				flat(5, map[scoring.Dimension]float64{scoring.Mental: 8, scoring.Consistency: 8}), archetype.C1},
			{"consistency elite", 12,
				flat(5, map[scoring.Dimension]float64{scoring.Consistency: 8, scoring.Accuracy: 4}), archetype.C1},
			{"several elite dimensions", 12, flat(5, map[scoring.Dimension]float64{
				scoring.MidGame: 8, scoring.Accuracy: 8, scoring.Mental: 7, scoring.Consistency: 7,
			}), archetype.D3},
			{"high overall without critical gaps", 12,
				flat(7.2, map[scoring.Dimension]float64{scoring.ShortGame: 6}), archetype.D3},
			{"power with gaps", 24,
				flat(5, map[scoring.Dimension]float64{scoring.Power: 5.5, scoring.Accuracy: 4, scoring.MidGame: 4}), archetype.D2},
			{"fallback", 24, flat(5, nil), archetype.D1},
		}
		for _, tc := range cases {
			Convey("When classifying for rule "+tc.rule, func() {
				got := c.Classify(mustResult(t, tc.hcp, tc.scores))

				Convey("Then that rule decides", func() {
					So(got.Rule, ShouldEqual, tc.rule)
					So(got.Archetype.ID, ShouldEqual, tc.want)
				})
			})
		}
	})
}

func TestClassifyDemoPlayer(t *testing.T) {
	c := archetype.NewClassifier()

	Convey("Given the demo player's score vector", t, func() {
		r := mustResult(t, 23.2, map[string]float64{
			"long_game": 6.19, "mid_game": 6.80, "short_game": 8.36, "putting": 6.88,
			"consistency": 7.66, "mental": 5.85, "power": 6.98, "accuracy": 6.43,
		})

		Convey("When classified", func() {
			got := c.Classify(r)

			Convey("Then the player is an all-round short-game artist", func() {
				So(got.Archetype.ID, ShouldEqual, archetype.B3)
				So(got.Rule, ShouldEqual, "short game elite")
			})

			Convey("Then strength and gap come from the score vector", func() {
				So(got.PrimaryStrengthDim, ShouldEqual, scoring.ShortGame)
				So(got.PrimaryStrengthVal, ShouldEqual, 8.36)
				So(got.PrimaryGapDim, ShouldEqual, scoring.Mental)
				So(got.PrimaryGapVal, ShouldEqual, 5.85)
			})

			Convey("Then the insight is built from the real numbers", func() {
				So(got.InsightES, ShouldStartWith, "Eres 'El Artista Completo'")
				So(got.InsightES, ShouldContainSubstring, "juego corto muy por encima de tu HCP (8.4/10)")
				So(got.InsightES, ShouldContainSubstring, "juego mental es un área con recorrido de mejora (5.8/10)")
				So(got.InsightES, ShouldContainSubstring, "concentra el mayor ROI de mejora en tu caso específico.")
				So(got.InsightES, ShouldContainSubstring, "Con HCP 23.2")
			})

			Convey("Then the similar archetypes are ordered by overlap then id", func() {
				So(got.SimilarArchetypes, ShouldHaveLength, 2)
				So(got.SimilarArchetypes[0].ID, ShouldEqual, archetype.B1)
				So(got.SimilarArchetypes[1].ID, ShouldEqual, archetype.B2)
				So(got.SimilarArchetypes[0].Similarity, ShouldEqual, 0.5)
			})

			Convey("Then the evolution target is the complete amateur", func() {
				So(got.EvolutionTarget, ShouldNotBeNil)
				So(got.EvolutionTarget.ID, ShouldEqual, archetype.D3)
			})

			Convey("Then classifying again yields the same result", func() {
				So(c.Classify(r), ShouldResemble, got)
			})
		})
	})
}

func TestFitScore(t *testing.T) {
	Convey("Given the A1 archetype", t, func() {
		a1, err := archetype.Lookup(archetype.A1)
		So(err, ShouldBeNil)

		Convey("When the player matches it partially", func() {
			scores := map[scoring.Dimension]float64{
				scoring.Power: 8, scoring.Accuracy: 4, scoring.Consistency: 5, scoring.Mental: 5,
			}

			Convey("Then strength and gap points are normalized", func() {
				So(archetype.FitScore(a1, scores), ShouldAlmostEqual, 1.8/2.5, 1e-9)
			})
		})

		Convey("When the player matches it perfectly", func() {
			scores := map[scoring.Dimension]float64{
				scoring.Power: 9, scoring.Accuracy: 3, scoring.Consistency: 3, scoring.Mental: 3,
			}

			Convey("Then the fit is one", func() {
				So(archetype.FitScore(a1, scores), ShouldEqual, 1.0)
			})
		})
	})

	Convey("Given an archetype with no defining dimensions", t, func() {
		Convey("Then the fit defaults to 0.75", func() {
			So(archetype.FitScore(archetype.Archetype{ID: "X1"}, map[scoring.Dimension]float64{}), ShouldEqual, 0.75)
		})
	})
}

func TestClassifyRandomProfiles(t *testing.T) {
	c := archetype.NewClassifier()
	rng := rand.New(rand.NewSource(11))
	valid := map[archetype.ID]bool{}
	for _, id := range archetype.IDs() {
		valid[id] = true
	}

	Convey("Given a thousand random score vectors", t, func() {
		for i := 0; i < 1000; i++ {
			scores := make(map[string]float64, len(scoring.Dimensions))
			for _, d := range scoring.Dimensions {
				scores[string(d)] = scoring.Round(rng.Float64()*10, 2)
			}
			hcp := scoring.Round(rng.Float64()*59-5, 1)
			got := c.Classify(mustResult(t, hcp, scores))

			So(valid[got.Archetype.ID], ShouldBeTrue)
			So(got.FitScore, ShouldBeBetweenOrEqual, 0, 1)
			So(len(got.SimilarArchetypes), ShouldBeLessThanOrEqualTo, 2)
			So(strings.Contains(got.InsightES, got.Archetype.Name), ShouldBeTrue)
		}
	})
}
