package archetype

import "github.com/okian/fairway/internal/domain/scoring"

// Classification thresholds over 0-10 dimension scores.
const (
	EliteThreshold    = 7.5
	StrongThreshold   = 6.5
	GapThreshold      = 4.5
	CriticalThreshold = 3.5
)

// profile is the classified view of one score vector the rules read from.
// Critical dimensions are also gaps.
type profile struct {
	scores   map[scoring.Dimension]float64
	overall  float64
	hcp      float64
	elite    map[scoring.Dimension]bool
	strong   map[scoring.Dimension]bool
	gap      map[scoring.Dimension]bool
	critical map[scoring.Dimension]bool
}

func newProfile(r *scoring.Result) profile {
	p := profile{
		scores:   make(map[scoring.Dimension]float64, len(scoring.Dimensions)),
		overall:  r.OverallScore,
		hcp:      r.PlayerHCP,
		elite:    map[scoring.Dimension]bool{},
		strong:   map[scoring.Dimension]bool{},
		gap:      map[scoring.Dimension]bool{},
		critical: map[scoring.Dimension]bool{},
	}
	for _, d := range scoring.Dimensions {
		ds, _ := r.Dimension(d)
		s := ds.Score
		p.scores[d] = s
		switch {
		case s >= EliteThreshold:
			p.elite[d] = true
		case s >= StrongThreshold:
			p.strong[d] = true
		}
		if s <= GapThreshold {
			p.gap[d] = true
		}
		if s <= CriticalThreshold {
			p.critical[d] = true
		}
	}
	return p
}

// rule maps a score pattern to an archetype. Rules are evaluated in order and the
// first match wins, so reordering changes classifications.
type rule struct {
	name  string
	match func(p profile) bool
	id    ID
}

// rules is the full decision cascade. D1 is the unconditional fallback after it.
var rules = []rule{
	// Power and long game dominant.
	{"power elite, direction or consistency gap", func(p profile) bool {
		return p.elite[scoring.Power] && (p.gap[scoring.Accuracy] || p.gap[scoring.Consistency])
	}, A1},
	{"power elite with long game elite or mid game strong", func(p profile) bool {
		return p.elite[scoring.Power] && (p.elite[scoring.LongGame] || p.strong[scoring.MidGame])
	}, A2},
	{"power elite", func(p profile) bool { return p.elite[scoring.Power] }, A3},
	{"long game elite", func(p profile) bool { return p.elite[scoring.LongGame] }, A2},

	// Short game and putting dominant.
	{"short game and putting elite", func(p profile) bool {
		return p.elite[scoring.ShortGame] && p.elite[scoring.Putting]
	}, B3},
	{"short game elite, long game or power gap", func(p profile) bool {
		return p.elite[scoring.ShortGame] && (p.gap[scoring.LongGame] || p.gap[scoring.Power])
	}, B1},
	{"short game elite", func(p profile) bool { return p.elite[scoring.ShortGame] }, B3},
	{"putting elite", func(p profile) bool { return p.elite[scoring.Putting] }, B2},
	{"short game and putting strong without approach gaps", func(p profile) bool {
		return p.strong[scoring.ShortGame] && p.strong[scoring.Putting] &&
			!p.gap[scoring.LongGame] && !p.gap[scoring.MidGame]
	}, B3},

	// Consistency and mental dominant.
	{"mental and consistency elite with putting", func(p profile) bool {
		return p.elite[scoring.Mental] && p.elite[scoring.Consistency] &&
			(p.strong[scoring.Putting] || p.elite[scoring.Putting])
	}, C2},
	{"mental and consistency elite", func(p profile) bool {
		return p.elite[scoring.Mental] && p.elite[scoring.Consistency]
	}, C1},
	{"mental elite", func(p profile) bool { return p.elite[scoring.Mental] }, C1},
	{"consistency elite without gaps", func(p profile) bool {
		return p.elite[scoring.Consistency] && len(p.gap) == 0 && len(p.critical) == 0
	}, C3},
	{"consistency elite", func(p profile) bool { return p.elite[scoring.Consistency] }, C1},

	// Developing and mixed profiles.
	{"several elite dimensions", func(p profile) bool {
		return len(p.elite) >= 3 || (len(p.elite) >= 2 && len(p.strong) >= 2)
	}, D3},
	{"high overall without critical gaps", func(p profile) bool {
		return p.overall >= 7.0 && len(p.critical) == 0
	}, D3},
	{"power ahead of results", func(p profile) bool {
		return p.scores[scoring.Power] >= 6.0 && p.overall < 5.0
	}, D2},
	{"balanced mid handicap", func(p profile) bool {
		return p.hcp <= 20 && len(p.critical) == 0 && p.overall >= 5.0
	}, C3},
	{"many gaps or high handicap", func(p profile) bool {
		return len(p.gap) >= 3 || p.hcp >= 28
	}, D1},
	{"power with gaps", func(p profile) bool {
		return p.scores[scoring.Power] >= 5.5 && len(p.gap) >= 2
	}, D2},
}

// fallbackID is assigned when no rule matches.
const fallbackID = D1

// decide walks the cascade and returns the first matching archetype and rule name.
func decide(p profile) (ID, string) {
	for _, r := range rules {
		if r.match(p) {
			return r.id, r.name
		}
	}
	return fallbackID, "fallback"
}
