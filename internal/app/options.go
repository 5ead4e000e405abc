package service

import (
	"time"

	"github.com/okian/fairway/internal/adapters/storage"
	"github.com/okian/fairway/internal/domain/scoring"
	"github.com/okian/fairway/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of worker goroutines.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the maximum size of the submission queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize sets the size of the submission id cache.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithBatch sets the largest accepted batch and how many of its profiles are scored at once.
func WithBatch(maxSize, concurrency int) Option {
	return func(s *Service) {
		if maxSize > 0 {
			s.maxBatchSize = maxSize
		}
		if concurrency > 0 {
			s.batchConcurrency = concurrency
		}
	}
}

// WithBenchmarks replaces the built-in benchmark tables.
func WithBenchmarks(set *scoring.BenchmarkSet) Option {
	return func(s *Service) {
		if set != nil {
			s.benchmarks = set
		}
	}
}

// WithTimelineWindow sets the default timeline window and step, in days.
func WithTimelineWindow(days, step int) Option {
	return func(s *Service) {
		if days > 0 {
			s.windowDays = days
		}
		if step > 0 {
			s.stepDays = step
		}
	}
}

// WithHistory enables snapshot persistence. The service closes the store on Stop.
func WithHistory(h storage.History, retention time.Duration) Option {
	return func(s *Service) {
		if h != nil {
			s.history = h
			s.retention = retention
		}
	}
}

// WithIntervals sets how often history is pruned and gauges are refreshed.
func WithIntervals(prune, refresh time.Duration) Option {
	return func(s *Service) {
		if prune > 0 {
			s.pruneInterval = prune
		}
		if refresh > 0 {
			s.refreshInterval = refresh
		}
	}
}

// WithClock overrides the time source used to stamp profiles.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}
