// Package timeline turns dated shots and rounds into a sequence of scored,
// classified periods that show how a player's identity changes over time.
package timeline

import (
	"context"
	"fmt"
	"slices"
	"sort"

	"github.com/okian/fairway/internal/domain/archetype"
	"github.com/okian/fairway/internal/domain/scoring"
)

// Default window geometry, in days.
const (
	DefaultWindowDays = 90
	DefaultStepDays   = 60
)

var monthsES = [...]string{"Ene", "Feb", "Mar", "Abr", "May", "Jun", "Jul", "Ago", "Sep", "Oct", "Nov", "Dic"}

// Option applies a configuration option to the Builder.
type Option func(*Builder)

// WithWindow sets the default window size and step used when a request leaves them zero.
func WithWindow(days, step int) Option {
	return func(b *Builder) {
		if days > 0 {
			b.window = days
		}
		if step > 0 {
			b.step = step
		}
	}
}

// WithExtractOptions sets how metrics are extracted from each window.
func WithExtractOptions(o ExtractOptions) Option {
	return func(b *Builder) {
		b.extract = o
	}
}

// Request is a player's raw history.
type Request struct {
	PlayerID        string          `json:"player_id"`
	Handicap        float64         `json:"handicap"`
	Shots           []Shot          `json:"shots"`
	Rounds          []Round         `json:"rounds"`
	HandicapHistory []HandicapPoint `json:"handicap_history"`
	WindowDays      int             `json:"window_days,omitempty"`
	StepDays        int             `json:"step_days,omitempty"`
}

// Period is the identity of a player over one window.
type Period struct {
	Label           string             `json:"period_label"`
	Center          Date               `json:"date_center"`
	Start           Date               `json:"date_start"`
	End             Date               `json:"date_end"`
	ShotsCount      int                `json:"shots_count"`
	RoundsCount     int                `json:"rounds_count"`
	HandicapEst     float64            `json:"hcp_estimated"`
	ArchetypeID     archetype.ID       `json:"archetype_id"`
	ArchetypeName   string             `json:"archetype_name"`
	ArchetypeFamily string             `json:"archetype_family"`
	OverallScore    float64            `json:"overall_score"`
	Dimensions      map[string]float64 `json:"dimensions"`
	TopStrength     scoring.Dimension  `json:"top_strength"`
	TopGap          scoring.Dimension  `json:"top_gap"`
	Confidence      scoring.Confidence `json:"confidence"`
	IsCurrent       bool               `json:"is_current"`
}

// Builder scores and classifies each window of a player's history.
type Builder struct {
	scorer     scoring.Scorer
	classifier *archetype.Classifier
	window     int
	step       int
	extract    ExtractOptions
}

// NewBuilder creates a timeline builder.
func NewBuilder(scorer scoring.Scorer, classifier *archetype.Classifier, opts ...Option) *Builder {
	b := &Builder{
		scorer:     scorer,
		classifier: classifier,
		window:     DefaultWindowDays,
		step:       DefaultStepDays,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build returns one period per window that holds any data, oldest first. The last
// period is marked current. A request without shots or rounds yields no periods.
func (b *Builder) Build(ctx context.Context, req Request) ([]Period, error) {
	size, step := b.window, b.step
	if req.WindowDays != 0 {
		size = req.WindowDays
	}
	if req.StepDays != 0 {
		step = req.StepDays
	}

	first, last, ok := dateRange(req.Shots, req.Rounds)
	if !ok {
		return []Period{}, nil
	}
	windows, err := Windows(first, last, size, step)
	if err != nil {
		return nil, err
	}
	hcp := newHandicapCurve(req.HandicapHistory, req.Handicap)
	shotsByDate, roundsByDate := sortedByDate(req.Shots, req.Rounds)

	periods := []Period{}
	for _, w := range windows {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("context cancelled: %w", err)
		}
		shots, rounds := inWindow(w, shotsByDate, roundsByDate)
		conf := periodConfidence(len(shots), len(rounds))
		if conf == scoring.ConfidenceNone {
			continue
		}
		p, err := b.period(ctx, req.PlayerID, w, w.Start.AddDays(size/2), hcp, shots, rounds)
		if err != nil {
			return nil, err
		}
		p.Confidence = conf
		periods = append(periods, p)
	}
	if len(periods) > 0 {
		periods[len(periods)-1].IsCurrent = true
	}
	return periods, nil
}

func (b *Builder) period(ctx context.Context, playerID string, w Window, center Date, hcp handicapCurve, shots []Shot, rounds []Round) (Period, error) {
	est := hcp.at(center)
	res, err := b.scorer.Score(ctx, scoring.Input{
		PlayerID: playerID,
		Handicap: est,
		Metrics:  ExtractMetrics(shots, rounds, b.extract),
	})
	if err != nil {
		return Period{}, fmt.Errorf("period %s: %w", w.Start, err)
	}
	id := b.classifier.Classify(res)

	dims := res.ScoresAsMap()
	delete(dims, scoring.Overall)

	return Period{
		Label:           fmt.Sprintf("%s %d", monthsES[center.Month()-1], center.Year()),
		Center:          center,
		Start:           w.Start,
		End:             w.End,
		ShotsCount:      len(shots),
		RoundsCount:     len(rounds),
		HandicapEst:     est,
		ArchetypeID:     id.Archetype.ID,
		ArchetypeName:   id.Archetype.Name,
		ArchetypeFamily: id.Archetype.ID.Family(),
		OverallScore:    res.OverallScore,
		Dimensions:      dims,
		TopStrength:     res.TopStrength().Dimension,
		TopGap:          res.TopGap().Dimension,
	}, nil
}

func dateRange(shots []Shot, rounds []Round) (first, last Date, ok bool) {
	visit := func(d Date) {
		if !ok || d.Before(first.Time) {
			first = d
		}
		if !ok || d.After(last.Time) {
			last = d
		}
		ok = true
	}
	for _, s := range shots {
		visit(s.Date)
	}
	for _, r := range rounds {
		visit(r.Date)
	}
	return first, last, ok
}

// sortedByDate returns date-ordered copies so each window is a contiguous slice.
func sortedByDate(shots []Shot, rounds []Round) ([]Shot, []Round) {
	ss := slices.Clone(shots)
	slices.SortStableFunc(ss, func(a, b Shot) int { return a.Date.Compare(b.Date.Time) })
	rs := slices.Clone(rounds)
	slices.SortStableFunc(rs, func(a, b Round) int { return a.Date.Compare(b.Date.Time) })
	return ss, rs
}

// inWindow slices the date-ordered shots and rounds falling in w.
func inWindow(w Window, shots []Shot, rounds []Round) ([]Shot, []Round) {
	from := sort.Search(len(shots), func(i int) bool { return !shots[i].Date.Before(w.Start.Time) })
	to := sort.Search(len(shots), func(i int) bool { return !shots[i].Date.Before(w.End.Time) })
	rFrom := sort.Search(len(rounds), func(i int) bool { return !rounds[i].Date.Before(w.Start.Time) })
	rTo := sort.Search(len(rounds), func(i int) bool { return !rounds[i].Date.Before(w.End.Time) })
	return shots[from:to], rounds[rFrom:rTo]
}
