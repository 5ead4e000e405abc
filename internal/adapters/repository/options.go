package repository

import (
	"math/rand/v2"
	"time"
)

// Option applies a configuration option to the TreapStore.
type Option func(*TreapStore)

// WithClock sets the time source used to stamp entries.
func WithClock(now func() time.Time) Option {
	return func(s *TreapStore) {
		if now != nil {
			s.now = now
		}
	}
}

// WithSeed makes node priorities reproducible.
func WithSeed(seed uint64) Option {
	return func(s *TreapStore) {
		s.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}
