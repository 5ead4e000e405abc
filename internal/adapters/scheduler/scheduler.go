// Package scheduler runs periodic maintenance jobs on a gocron scheduler.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/okian/fairway/pkg/logger"
	"github.com/okian/fairway/pkg/metrics"
)

// Job outcomes recorded in metrics.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// Job is a named task repeated at a fixed interval.
type Job struct {
	Name     string
	Interval time.Duration
	// Immediate runs the task once right after Start.
	Immediate bool
	Task      func(ctx context.Context) error
}

// Scheduler wraps a gocron scheduler with a cancelable context shared by all jobs.
type Scheduler struct {
	s      gocron.Scheduler
	logger logger.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	started bool
	stopped bool
	names   []string
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithLogger sets the scheduler logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Scheduler) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a stopped scheduler.
func New(opts ...Option) (*Scheduler, error) {
	gs, err := gocron.NewScheduler(gocron.WithLocation(time.UTC))
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := &Scheduler{
		s:      gs,
		logger: logger.Get(),
		ctx:    ctx,
		cancel: cancel,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.Named("scheduler")
	return s, nil
}

// Add registers a job. Jobs must be added before Start.
func (s *Scheduler) Add(job Job) error {
	if job.Name == "" || job.Task == nil || job.Interval <= 0 {
		return fmt.Errorf("%w: %q", ErrInvalidJob, job.Name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return ErrStarted
	}

	opts := []gocron.JobOption{
		gocron.WithName(job.Name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	}
	if job.Immediate {
		opts = append(opts, gocron.WithStartAt(gocron.WithStartImmediately()))
	}

	_, err := s.s.NewJob(
		gocron.DurationJob(job.Interval),
		gocron.NewTask(s.run, job),
		opts...,
	)
	if err != nil {
		return fmt.Errorf("failed to create %s job: %w", job.Name, err)
	}
	s.names = append(s.names, job.Name)
	return nil
}

// Jobs returns the registered job names in registration order.
func (s *Scheduler) Jobs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.names...)
}

func (s *Scheduler) run(job Job) {
	if s.ctx.Err() != nil {
		return
	}
	start := time.Now()
	if err := job.Task(s.ctx); err != nil {
		metrics.RecordSchedulerRun(job.Name, OutcomeError)
		metrics.RecordErrorByComponent("scheduler", job.Name)
		s.logger.Error(s.ctx, "scheduled job failed", logger.String("job", job.Name), logger.Error(err))
		return
	}
	metrics.RecordSchedulerRun(job.Name, OutcomeSuccess)
	s.logger.Debug(s.ctx, "scheduled job finished",
		logger.String("job", job.Name),
		logger.Duration("took", time.Since(start)),
	)
}

// Start begins running jobs.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started || s.stopped {
		return
	}
	s.started = true
	s.s.Start()
	s.logger.Info(s.ctx, "scheduler started", logger.Int("jobs", len(s.names)))
}

// Stop cancels running tasks and shuts the scheduler down. It is safe to call more than once.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return nil
	}
	s.stopped = true
	s.cancel()
	if err := s.s.Shutdown(); err != nil {
		return fmt.Errorf("failed to stop scheduler: %w", err)
	}
	return nil
}
