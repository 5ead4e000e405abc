// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/okian/fairway/internal/adapters/mq/queue"
	"github.com/okian/fairway/internal/adapters/mq/worker"
	"github.com/okian/fairway/internal/adapters/repository"
	"github.com/okian/fairway/internal/adapters/scheduler"
	"github.com/okian/fairway/internal/adapters/storage"
	"github.com/okian/fairway/internal/domain/archetype"
	"github.com/okian/fairway/internal/domain/dedupe"
	"github.com/okian/fairway/internal/domain/model"
	"github.com/okian/fairway/internal/domain/scoring"
	"github.com/okian/fairway/internal/domain/timeline"
	"github.com/okian/fairway/internal/domain/types"
	"github.com/okian/fairway/pkg/logger"
	"github.com/okian/fairway/pkg/metrics"
)

// Scheduled job names.
const (
	JobHistoryPrune   = "history_prune"
	JobMetricsRefresh = "metrics_refresh"
)

// SubmitOutcome tells the caller what happened to an async submission.
type SubmitOutcome string

// Submission outcomes.
const (
	SubmitAccepted  SubmitOutcome = "accepted"
	SubmitDuplicate SubmitOutcome = "duplicate"
)

// BatchItem is the result for one profile of a batch, at the same index as its input.
type BatchItem struct {
	Profile *model.Profile
	Err     error
}

// Service implements the API dependencies for the scoring service.
type Service struct {
	mu sync.RWMutex

	// Core components
	engine      *scoring.Engine
	classifier  *archetype.Classifier
	timelines   *timeline.Builder
	leaderboard repository.Store
	deduper     dedupe.Deduper
	history     storage.History

	// Created on Start
	queue     queue.Queue
	pool      *worker.Pool
	scheduler *scheduler.Scheduler

	// Configuration
	workerCount      int
	queueSize        int
	dedupeSize       int
	maxBatchSize     int
	batchConcurrency int
	windowDays       int
	stepDays         int
	benchmarks       *scoring.BenchmarkSet
	retention        time.Duration
	pruneInterval    time.Duration
	refreshInterval  time.Duration
	now              func() time.Time

	// State
	started   bool
	startedAt time.Time
	// historyUsers counts calls holding the history store; Stop closes it once they finish.
	historyUsers sync.WaitGroup

	// Logging
	logger logger.Logger
}

// New constructs a new Service. Scoring, classification and leaderboard reads work
// immediately; async submissions need Start.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount:      runtime.NumCPU() * 2,
		queueSize:        10_000,
		dedupeSize:       dedupe.DefaultMaxSize,
		maxBatchSize:     500,
		batchConcurrency: runtime.NumCPU(),
		windowDays:       timeline.DefaultWindowDays,
		stepDays:         timeline.DefaultStepDays,
		retention:        90 * 24 * time.Hour,
		pruneInterval:    time.Hour,
		refreshInterval:  15 * time.Second,
		now:              time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	s.logger = s.logger.Named("service")

	var engineOpts []scoring.Option
	if s.benchmarks != nil {
		engineOpts = append(engineOpts, scoring.WithBenchmarks(s.benchmarks))
	}
	s.engine = scoring.NewEngine(engineOpts...)
	s.classifier = archetype.NewClassifier()
	s.timelines = timeline.NewBuilder(s.engine, s.classifier, timeline.WithWindow(s.windowDays, s.stepDays))
	s.leaderboard = repository.NewTreapStore(repository.WithClock(s.now))
	s.deduper = dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(s.dedupeSize))
	return s
}

// Start creates the queue, starts the worker pool and the maintenance scheduler.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	s.logger.Info(ctx, "starting scoring service...")

	sched, err := scheduler.New(scheduler.WithLogger(s.logger))
	if err != nil {
		return fmt.Errorf("failed to start service: %w", err)
	}
	if err := s.registerJobs(sched); err != nil {
		_ = sched.Stop()
		return fmt.Errorf("failed to start service: %w", err)
	}

	s.queue = queue.NewInMemoryQueue(queue.WithCapacity(s.queueSize))
	s.pool = worker.NewPool(s.workerCount, s.queue, s, worker.WithPoolLogger(s.logger))
	// Workers outlive the request context that started them; Stop drains them.
	s.pool.Start(context.WithoutCancel(ctx))
	s.scheduler = sched
	s.scheduler.Start()

	s.started = true
	s.startedAt = s.now()
	s.logger.Info(ctx, "scoring service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("dedupeSize", s.dedupeSize),
		logger.String("benchmarks", s.engine.BenchmarkVersion()),
		logger.Bool("history", s.history != nil),
	)
	return nil
}

func (s *Service) registerJobs(sched *scheduler.Scheduler) error {
	if err := sched.Add(scheduler.Job{
		Name:      JobMetricsRefresh,
		Interval:  s.refreshInterval,
		Immediate: true,
		Task:      s.refreshGauges,
	}); err != nil {
		return err
	}
	if s.history == nil {
		return nil
	}
	return sched.Add(scheduler.Job{
		Name:     JobHistoryPrune,
		Interval: s.pruneInterval,
		Task:     s.PruneHistory,
	})
}

// Stop drains queued submissions, stops background jobs and closes the history store.
func (s *Service) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return s.closeHistory(ctx)
	}
	// Workers read shared state while draining, so the lock is released during shutdown.
	pool, sched := s.pool, s.scheduler
	s.started = false
	s.mu.Unlock()

	s.logger.Info(ctx, "stopping scoring service...")

	var errs []error
	if err := pool.Shutdown(ctx); err != nil {
		errs = append(errs, err)
	}
	if err := sched.Stop(); err != nil {
		errs = append(errs, err)
	}

	if err := s.closeHistory(ctx); err != nil {
		errs = append(errs, err)
	}

	s.logger.Info(ctx, "scoring service stopped")
	return errors.Join(errs...)
}

// closeHistory detaches the store so no new call can acquire it, then closes it once
// in-flight calls release it. If ctx ends first the store is closed in the background.
func (s *Service) closeHistory(ctx context.Context) error {
	s.mu.Lock()
	h := s.history
	s.history = nil
	s.mu.Unlock()
	if h == nil {
		return nil
	}

	closed := make(chan error, 1)
	go func() {
		s.historyUsers.Wait()
		closed <- h.Close()
	}()
	select {
	case err := <-closed:
		return err
	case <-ctx.Done():
		return fmt.Errorf("history still in use: %w", ctx.Err())
	}
}

// acquireHistory returns the history store and its release func, or nil when history
// is disabled or being closed.
func (s *Service) acquireHistory() (storage.History, func()) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.history == nil {
		return nil, func() {}
	}
	s.historyUsers.Add(1)
	return s.history, s.historyUsers.Done
}

// Score computes the scoring profile of a player.
func (s *Service) Score(ctx context.Context, in scoring.Input) (scoring.Result, error) {
	start := time.Now()
	res, err := s.engine.Score(ctx, in)
	if err != nil {
		metrics.RecordScoringError()
		return scoring.Result{}, err
	}
	metrics.RecordProfileScored(float64(time.Since(start).Microseconds()) / 1000)
	return res, nil
}

// Classify assigns an archetype to a bare dimension score vector.
func (s *Service) Classify(_ context.Context, playerID string, hcp float64, scores map[string]float64) (archetype.Result, error) {
	res, err := scoring.ResultFromScores(playerID, hcp, scores)
	if err != nil {
		return archetype.Result{}, err
	}
	id := s.classifier.Classify(res)
	metrics.RecordClassification(string(id.Archetype.ID))
	return id, nil
}

// Profile scores and classifies a player, updates the leaderboard and records the
// snapshot in history when enabled. A failed history write is logged, not returned.
func (s *Service) Profile(ctx context.Context, in scoring.Input) (model.Profile, error) {
	res, err := s.Score(ctx, in)
	if err != nil {
		return model.Profile{}, err
	}
	identity := s.classifier.Classify(res)
	metrics.RecordClassification(string(identity.Archetype.ID))

	p := model.Profile{Scoring: res, Identity: identity, CreatedAt: s.now().UTC()}

	if in.PlayerID != "" {
		if _, err := s.leaderboard.Upsert(ctx, p.Score()); err != nil {
			return model.Profile{}, fmt.Errorf("leaderboard update failed: %w", err)
		}
		s.saveSnapshot(ctx, &p)
	}
	return p, nil
}

func (s *Service) saveSnapshot(ctx context.Context, p *model.Profile) {
	h, release := s.acquireHistory()
	defer release()
	if h == nil {
		return
	}

	payload, err := json.Marshal(p)
	if err != nil {
		metrics.RecordHistoryError()
		s.logger.Error(ctx, "failed to encode snapshot", logger.Error(err))
		return
	}
	_, err = h.Save(ctx, storage.Snapshot{
		PlayerID:         p.Scoring.PlayerID,
		Handicap:         p.Scoring.PlayerHCP,
		OverallScore:     p.Scoring.OverallScore,
		ArchetypeID:      string(p.Identity.Archetype.ID),
		FitScore:         p.Identity.FitScore,
		DataCompleteness: p.Scoring.DataCompleteness,
		Payload:          payload,
		CreatedAt:        p.CreatedAt,
	})
	if err != nil {
		s.logger.Error(ctx, "failed to save snapshot",
			logger.String("player_id", p.Scoring.PlayerID),
			logger.Error(err),
		)
	}
}

// Process implements worker.Processor for queued submissions.
func (s *Service) Process(ctx context.Context, job model.ProfileJob) error { //nolint:gocritic // hugeParam: jobs are passed by value for channel semantics
	if err := job.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSubmission, err)
	}
	_, err := s.Profile(ctx, job.Input())
	return err
}

// Submit queues a profile for asynchronous processing. A submission id that was seen
// recently is reported as a duplicate and not queued again. When the queue is full the
// id is forgotten so the client can retry.
func (s *Service) Submit(ctx context.Context, job model.ProfileJob) (SubmitOutcome, error) { //nolint:gocritic // hugeParam: jobs are passed by value for channel semantics
	if err := job.Validate(); err != nil {
		metrics.RecordSubmission(metrics.SubmissionInvalid)
		return "", fmt.Errorf("%w: %w", ErrInvalidSubmission, err)
	}

	s.mu.RLock()
	q, started := s.queue, s.started
	s.mu.RUnlock()
	if !started {
		return "", ErrNotStarted
	}

	if s.deduper.SeenAndRecord(ctx, job.SubmissionID) {
		metrics.RecordSubmission(metrics.SubmissionDuplicate)
		s.logger.Debug(ctx, "duplicate submission", logger.String("submission_id", job.SubmissionID))
		return SubmitDuplicate, nil
	}

	if job.ReceivedAt.IsZero() {
		job.ReceivedAt = s.now().UTC()
	}
	if err := q.Enqueue(ctx, job); err != nil {
		s.deduper.Unrecord(ctx, job.SubmissionID)
		metrics.RecordSubmission(metrics.SubmissionRejected)
		switch {
		case errors.Is(err, queue.ErrQueueFull):
			return "", fmt.Errorf("%w: %w", ErrBackpressure, err)
		case errors.Is(err, queue.ErrQueueClosed):
			return "", fmt.Errorf("%w: %w", ErrShuttingDown, err)
		}
		return "", err
	}
	metrics.RecordSubmission(metrics.SubmissionAccepted)
	return SubmitAccepted, nil
}

// ScoreBatch profiles every input concurrently. Results keep input order; a failing
// item carries its error without failing the batch.
func (s *Service) ScoreBatch(ctx context.Context, inputs []scoring.Input) ([]BatchItem, error) {
	switch {
	case len(inputs) == 0:
		return nil, ErrEmptyBatch
	case len(inputs) > s.maxBatchSize:
		return nil, fmt.Errorf("%w: %d > %d", ErrBatchTooLarge, len(inputs), s.maxBatchSize)
	}
	metrics.RecordBatchSize(len(inputs))

	items := make([]BatchItem, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.batchConcurrency)
	for i := range inputs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			p, err := s.Profile(gctx, inputs[i])
			if err != nil {
				items[i].Err = err
				return nil
			}
			items[i].Profile = &p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("batch cancelled: %w", err)
	}
	return items, nil
}

// Timeline builds the identity timeline of a player's dated history.
func (s *Service) Timeline(ctx context.Context, req timeline.Request) ([]timeline.Period, error) { //nolint:gocritic // hugeParam: request is decoded by value
	periods, err := s.timelines.Build(ctx, req)
	if err != nil {
		return nil, err
	}
	metrics.RecordTimelinePeriods(len(periods))
	return periods, nil
}

// TopN returns the top N leaderboard entries.
func (s *Service) TopN(ctx context.Context, n int) ([]types.Entry, error) {
	entries, err := s.leaderboard.TopN(ctx, n)
	if err != nil {
		return nil, err
	}

	apiEntries := make([]types.Entry, len(entries))
	for i, e := range entries {
		apiEntries[i] = toAPIEntry(e)
	}
	return apiEntries, nil
}

// Rank returns the leaderboard entry of a player.
func (s *Service) Rank(ctx context.Context, playerID string) (types.Entry, error) {
	e, err := s.leaderboard.Rank(ctx, playerID)
	if err != nil {
		return types.Entry{}, err
	}
	return toAPIEntry(e), nil
}

func toAPIEntry(e repository.Entry) types.Entry { //nolint:gocritic // hugeParam: small conversion
	return types.Entry{
		Rank:        e.Rank,
		PlayerID:    e.PlayerID,
		Overall:     e.Overall,
		Handicap:    e.Handicap,
		ArchetypeID: e.ArchetypeID,
	}
}

// History returns a player's stored snapshots, newest first.
func (s *Service) History(ctx context.Context, playerID string, limit int) ([]storage.Snapshot, error) {
	h, release := s.acquireHistory()
	defer release()
	if h == nil {
		return nil, ErrHistoryDisabled
	}
	return h.ListByPlayer(ctx, playerID, limit)
}

// PruneHistory deletes snapshots older than the retention period.
func (s *Service) PruneHistory(ctx context.Context) error {
	h, release := s.acquireHistory()
	defer release()
	if h == nil {
		return ErrHistoryDisabled
	}
	_, err := h.Prune(ctx, s.now().Add(-s.retention))
	return err
}

// Archetypes returns the taxonomy, filtered by a fuzzy query when one is given.
func (s *Service) Archetypes(query string) []archetype.Archetype {
	return archetype.Search(query)
}

// Archetype returns one archetype by id.
func (s *Service) Archetype(id string) (archetype.Archetype, error) {
	return archetype.Lookup(archetype.ID(id))
}

// refreshGauges updates gauges that are not maintained on the hot path.
func (s *Service) refreshGauges(ctx context.Context) error {
	metrics.RefreshSystemMetrics()
	metrics.UpdateLeaderboardSize(s.leaderboard.Count(ctx))

	s.mu.RLock()
	q := s.queue
	s.mu.RUnlock()
	h, release := s.acquireHistory()
	defer release()
	if q != nil {
		metrics.UpdateQueueSize(q.Len())
		metrics.UpdateQueueUtilization(float64(q.Len()) / float64(q.Cap()))
	}
	if h != nil {
		n, err := h.Count(ctx)
		if err != nil {
			return err
		}
		metrics.UpdateHistoryRows(n)
	}
	return nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":          s.started,
		"workerCount":      s.workerCount,
		"queueSize":        s.queueSize,
		"dedupeSize":       s.dedupeSize,
		"dedupeEntries":    s.deduper.Size(),
		"totalPlayers":     s.leaderboard.Count(ctx),
		"benchmarkVersion": s.engine.BenchmarkVersion(),
		"archetypes":       len(archetype.IDs()),
		"historyEnabled":   s.history != nil,
	}

	if s.started {
		stats["queueLength"] = s.queue.Len()
		stats["uptimeSeconds"] = int64(s.now().Sub(s.startedAt).Seconds())
		stats["scheduledJobs"] = s.scheduler.Jobs()
	}
	if s.history != nil {
		if n, err := s.history.Count(ctx); err == nil {
			stats["historyRows"] = n
		}
	}
	return stats
}
