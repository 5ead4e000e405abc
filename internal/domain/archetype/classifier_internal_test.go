package archetype

import (
	"testing"

	"github.com/okian/fairway/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

func TestTaxonomyConsistency(t *testing.T) {
	Convey("Given the built-in taxonomy", t, func() {
		Convey("Then there are twelve archetypes in four families", func() {
			So(IDs(), ShouldHaveLength, 12)
			families := map[string]int{}
			for _, id := range IDs() {
				families[id.Family()]++
			}
			So(families, ShouldResemble, map[string]int{"A": 3, "B": 3, "C": 3, "D": 3})
		})

		Convey("Then every evolution edge points to a known archetype", func() {
			for _, a := range All() {
				for _, id := range append(append([]ID{}, a.CanEvolveTo...), a.EvolvedFrom...) {
					_, err := Lookup(id)
					So(err, ShouldBeNil)
				}
			}
		})
	})
}

func TestSimilarArchetypes(t *testing.T) {
	Convey("Given the power-first archetype", t, func() {
		sim := similarTo(mustLookup(A1))

		Convey("Then identical strength sets rank first in id order", func() {
			So(sim, ShouldHaveLength, 2)
			So(sim[0].ID, ShouldEqual, A3)
			So(sim[1].ID, ShouldEqual, D2)
			So(sim[0].Similarity, ShouldEqual, 1.0)
		})
	})

	Convey("Given two empty strength sets", t, func() {
		Convey("Then the similarity is zero rather than undefined", func() {
			So(jaccard(nil, nil), ShouldEqual, 0)
		})
	})
}

func TestEvolutionTarget(t *testing.T) {
	Convey("Given the solid amateur", t, func() {
		c3 := mustLookup(C3)
		scores := map[scoring.Dimension]float64{}
		for _, d := range scoring.Dimensions {
			scores[d] = 5
		}

		Convey("When every target is reachable", func() {
			Convey("Then the first listed target is chosen", func() {
				So(evolutionTarget(c3, scores).ID, ShouldEqual, B3)
			})
		})

		Convey("When the short game is too weak for B3", func() {
			scores[scoring.ShortGame] = 3

			Convey("Then the next reachable target is chosen", func() {
				So(evolutionTarget(c3, scores).ID, ShouldEqual, C2)
			})
		})

		Convey("When nothing is reachable", func() {
			for d := range scores {
				scores[d] = 1
			}

			Convey("Then the first listed target is the fallback", func() {
				So(evolutionTarget(c3, scores).ID, ShouldEqual, B3)
			})
		})
	})

	Convey("Given the top archetype", t, func() {
		Convey("Then there is nowhere to evolve", func() {
			So(evolutionTarget(mustLookup(D3), nil), ShouldBeNil)
		})
	})
}

func TestInsightQualifiers(t *testing.T) {
	Convey("Given strength and gap values", t, func() {
		So(strengthQualifier(9), ShouldEqual, "de élite absoluta")
		So(strengthQualifier(7.2), ShouldEqual, "muy por encima de tu HCP")
		So(strengthQualifier(6), ShouldEqual, "sólido para tu nivel")
		So(gapQualifier(3), ShouldEqual, "claramente por debajo de tu potencial")
		So(gapQualifier(4.5), ShouldEqual, "el área con más margen de mejora")
		So(gapQualifier(5.5), ShouldEqual, "un área con recorrido de mejora")
	})
}
