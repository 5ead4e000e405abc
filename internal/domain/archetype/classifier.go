package archetype

import (
	"sort"

	"github.com/okian/fairway/internal/domain/scoring"
)

// Fit-score point values.
const (
	fitEliteMin      = 8.5
	fitDevelopingMin = 5.0
	fitDefaultScore  = 0.75

	// evolutionReachable is the score every defining strength of an evolution target
	// must already reach.
	evolutionReachable = 4.0

	maxSimilar = 2
)

// Similar is a related archetype and its similarity to the assigned one.
type Similar struct {
	ID         ID      `json:"id"`
	Name       string  `json:"name"`
	Similarity float64 `json:"similarity"`
}

// Target is an archetype the player can grow into.
type Target struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
}

// Result is the classification of one scoring result.
type Result struct {
	Archetype          Archetype         `json:"archetype"`
	FitScore           float64           `json:"fit_score"`
	PrimaryStrengthDim scoring.Dimension `json:"primary_strength_dim"`
	PrimaryStrengthVal float64           `json:"primary_strength_val"`
	PrimaryGapDim      scoring.Dimension `json:"primary_gap_dim"`
	PrimaryGapVal      float64           `json:"primary_gap_val"`
	SimilarArchetypes  []Similar         `json:"similar_archetypes"`
	EvolutionTarget    *Target           `json:"evolution_target"`
	InsightES          string            `json:"personalized_insight_es"`
	// Rule names the cascade rule that matched, for audit.
	Rule string `json:"rule"`
}

// Classifier assigns archetypes. It holds no state and is safe for concurrent use.
type Classifier struct{}

// NewClassifier creates a classifier over the built-in taxonomy.
func NewClassifier() *Classifier {
	return &Classifier{}
}

// Classify maps a scoring result to exactly one archetype. It always succeeds.
func (c *Classifier) Classify(r scoring.Result) Result {
	p := newProfile(&r)
	id, ruleName := decide(p)
	arch := mustLookup(id)

	strength := r.TopStrength()
	gap := r.TopGap()

	return Result{
		Archetype:          arch,
		FitScore:           scoring.Round(FitScore(arch, p.scores), 2),
		PrimaryStrengthDim: strength.Dimension,
		PrimaryStrengthVal: scoring.Round(strength.Score, 2),
		PrimaryGapDim:      gap.Dimension,
		PrimaryGapVal:      scoring.Round(gap.Score, 2),
		SimilarArchetypes:  similarTo(arch),
		EvolutionTarget:    evolutionTarget(arch, p.scores),
		InsightES:          insight(arch, r.PlayerHCP, strength, gap),
		Rule:               ruleName,
	}
}

// FitScore measures how well scores match an archetype's defining strengths and gaps,
// normalized to [0,1]. An archetype that defines neither scores 0.75.
func FitScore(a Archetype, scores map[scoring.Dimension]float64) float64 {
	var points, maxPoints float64
	for _, d := range a.DefiningStrengths {
		s, ok := scores[d]
		if !ok {
			continue
		}
		maxPoints++
		switch {
		case s >= fitEliteMin:
			points++
		case s >= StrongThreshold:
			points += 0.7
		case s >= fitDevelopingMin:
			points += 0.4
		}
	}
	for _, d := range a.DefiningGaps {
		s, ok := scores[d]
		if !ok {
			continue
		}
		maxPoints += 0.5
		switch {
		case s <= GapThreshold:
			points += 0.5
		case s <= StrongThreshold:
			points += 0.3
		}
	}
	if maxPoints == 0 {
		return fitDefaultScore
	}
	return points / maxPoints
}

// similarTo ranks archetypes related to a through the evolution graph or its family by
// Jaccard overlap of defining strengths. Ties keep id order.
func similarTo(a Archetype) []Similar {
	out := []Similar{}
	for _, cand := range All() {
		if cand.ID == a.ID || !related(a, cand) {
			continue
		}
		out = append(out, Similar{
			ID:         cand.ID,
			Name:       cand.Name,
			Similarity: scoring.Round(jaccard(a.DefiningStrengths, cand.DefiningStrengths), 2),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Similarity > out[j].Similarity })
	if len(out) > maxSimilar {
		out = out[:maxSimilar]
	}
	return out
}

func related(a, cand Archetype) bool {
	return containsID(a.CanEvolveTo, cand.ID) || containsID(a.EvolvedFrom, cand.ID) ||
		a.ID.Family() == cand.ID.Family()
}

func containsID(ids []ID, id ID) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}

// jaccard is |a∩b| / |a∪b|, with an empty union treated as one to avoid dividing by zero.
func jaccard(a, b []scoring.Dimension) float64 {
	set := make(map[scoring.Dimension]int, len(a)+len(b))
	for _, d := range a {
		set[d] |= 1
	}
	for _, d := range b {
		set[d] |= 2
	}
	inter := 0
	for _, v := range set {
		if v == 3 {
			inter++
		}
	}
	union := len(set)
	if union == 0 {
		union = 1
	}
	return float64(inter) / float64(union)
}

// evolutionTarget picks the first evolution whose defining strengths are all reachable,
// else the first listed. Archetypes with nowhere to go return nil.
func evolutionTarget(a Archetype, scores map[scoring.Dimension]float64) *Target {
	if len(a.CanEvolveTo) == 0 {
		return nil
	}
	for _, id := range a.CanEvolveTo {
		t := mustLookup(id)
		if reachable(t, scores) {
			return &Target{ID: t.ID, Name: t.Name}
		}
	}
	first := mustLookup(a.CanEvolveTo[0])
	return &Target{ID: first.ID, Name: first.Name}
}

func reachable(t Archetype, scores map[scoring.Dimension]float64) bool {
	for _, d := range t.DefiningStrengths {
		if scores[d] < evolutionReachable {
			return false
		}
	}
	return true
}
