package timeline

import (
	"sort"

	"github.com/okian/fairway/internal/domain/scoring"
)

// handicapCurve interpolates a handicap for any date from dated observations.
type handicapCurve struct {
	points   []HandicapPoint
	fallback float64
}

func newHandicapCurve(points []HandicapPoint, fallback float64) handicapCurve {
	sorted := append([]HandicapPoint(nil), points...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date.Time) })
	return handicapCurve{points: sorted, fallback: fallback}
}

// at returns the handicap on d: linear between neighbours, clamped to the ends,
// rounded to one decimal. With no history the fallback is returned.
func (c handicapCurve) at(d Date) float64 {
	n := len(c.points)
	switch {
	case n == 0:
		return c.fallback
	case !d.After(c.points[0].Date.Time):
		return scoring.Round(c.points[0].Handicap, 1)
	case !d.Before(c.points[n-1].Date.Time):
		return scoring.Round(c.points[n-1].Handicap, 1)
	}
	i := sort.Search(n, func(i int) bool { return !c.points[i].Date.Before(d.Time) })
	lo, hi := c.points[i-1], c.points[i]
	span := lo.Date.DaysUntil(hi.Date)
	if span == 0 {
		return scoring.Round(hi.Handicap, 1)
	}
	ratio := float64(lo.Date.DaysUntil(d)) / float64(span)
	return scoring.Round(lo.Handicap+ratio*(hi.Handicap-lo.Handicap), 1)
}
