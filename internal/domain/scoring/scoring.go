// Package scoring turns raw golf metrics into eight normalized 0-10 dimension scores
// and three aggregates, using handicap-indexed benchmark tables.
//
// Scoring is deterministic: the same handicap, metrics and benchmark set always
// produce the same Result.
package scoring

import (
	"context"
	"fmt"
	"math"
)

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithBenchmarks replaces the built-in benchmark tables. The set must pass Validate;
// LoadBenchmarks and DefaultBenchmarks both return validated sets. Nil is ignored.
func WithBenchmarks(set *BenchmarkSet) Option {
	return func(e *Engine) {
		if set != nil {
			e.bench = set.Clone()
		}
	}
}

// Input carries everything needed to score one player.
type Input struct {
	PlayerID string
	Handicap float64
	Metrics  Metrics
}

// Scorer computes a scoring Result from an input.
type Scorer interface {
	// Score computes a result, honoring ctx for cancellation.
	Score(ctx context.Context, in Input) (Result, error)
}

// Engine implements Scorer over a benchmark set. It holds no mutable state and is
// safe for concurrent use.
type Engine struct {
	bench *BenchmarkSet
}

// NewEngine creates an engine with the default benchmark tables unless overridden.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{bench: DefaultBenchmarks()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// BenchmarkVersion reports the version label of the tables in use.
func (e *Engine) BenchmarkVersion() string {
	return e.bench.Version
}

// Benchmarks returns a copy of the tables in use.
func (e *Engine) Benchmarks() *BenchmarkSet {
	return e.bench.Clone()
}

// Score validates the input and computes the player's Result.
// Missing metrics are never an error; NaN or infinite values are.
func (e *Engine) Score(ctx context.Context, in Input) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, fmt.Errorf("context cancelled: %w", err)
	}
	if math.IsNaN(in.Handicap) || math.IsInf(in.Handicap, 0) {
		return Result{}, fmt.Errorf("handicap %v: %w", in.Handicap, ErrInvalidHandicap)
	}
	if err := in.Metrics.Validate(); err != nil {
		return Result{}, err
	}
	return e.Compute(in.PlayerID, in.Handicap, in.Metrics), nil
}

// Compute scores already validated input. It panics if a computed score leaves its
// range, which can only happen with NaN or infinite input.
func (e *Engine) Compute(playerID string, hcp float64, m Metrics) Result {
	r := Result{
		PlayerID:         playerID,
		PlayerHCP:        hcp,
		LongGame:         e.longGame(hcp, m),
		MidGame:          e.midGame(hcp, m),
		ShortGame:        e.shortGame(hcp, m),
		Putting:          e.putting(hcp, m),
		Consistency:      e.consistency(hcp, m),
		Mental:           e.mental(hcp, m),
		Power:            e.power(hcp, m),
		Accuracy:         e.accuracy(hcp, m),
		RoundsAnalyzed:   m.Count(MetricRoundsCount, 0),
		ShotsAnalyzed:    m.Count(MetricShotsCount, 0),
		BenchmarkVersion: e.bench.Version,
	}
	r.aggregate()
	return r
}
