package archetype

import (
	"fmt"

	"github.com/okian/fairway/internal/domain/scoring"
)

var dimensionNamesES = map[scoring.Dimension]string{
	scoring.LongGame:    "juego largo",
	scoring.MidGame:     "hierros medios",
	scoring.ShortGame:   "juego corto",
	scoring.Putting:     "putting",
	scoring.Consistency: "consistencia",
	scoring.Mental:      "juego mental",
	scoring.Power:       "potencia",
	scoring.Accuracy:    "precisión",
}

func nameES(d scoring.Dimension) string {
	if n, ok := dimensionNamesES[d]; ok {
		return n
	}
	return string(d)
}

func strengthQualifier(v float64) string {
	switch {
	case v >= 8.5:
		return "de élite absoluta"
	case v >= 7.0:
		return "muy por encima de tu HCP"
	default:
		return "sólido para tu nivel"
	}
}

func gapQualifier(v float64) string {
	switch {
	case v <= CriticalThreshold:
		return "claramente por debajo de tu potencial"
	case v <= GapThreshold:
		return "el área con más margen de mejora"
	default:
		return "un área con recorrido de mejora"
	}
}

// insight renders the personalized paragraph from the player's actual scores.
// It is deterministic: the same inputs always produce the same text.
func insight(a Archetype, hcp float64, strength, gap scoring.DimensionValue) string {
	s, g := nameES(strength.Dimension), nameES(gap.Dimension)
	return fmt.Sprintf(
		"Eres '%s' con un %s %s (%.1f/10) que define tu identidad en el campo. "+
			"Tu %s es %s (%.1f/10) y concentra el mayor ROI de mejora en tu caso específico. "+
			"Con HCP %.1f, el camino más directo hacia tu siguiente nivel es trabajar el %s "+
			"mientras consolidas tu ventaja en %s.",
		a.Name, s, strengthQualifier(strength.Score), strength.Score,
		g, gapQualifier(gap.Score), gap.Score,
		hcp, g, s,
	)
}
