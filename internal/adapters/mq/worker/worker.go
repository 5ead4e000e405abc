package worker

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/fairway/internal/domain/model"
	"github.com/okian/fairway/pkg/logger"
	"github.com/okian/fairway/pkg/metrics"
)

const defaultWorkerMultiplier = 2 // multiplier for runtime.NumCPU()

// Processor handles a single profile job: scoring, classification and persistence.
type Processor interface {
	Process(ctx context.Context, job model.ProfileJob) error
}

// Source is the receive side of the job queue.
type Source interface {
	Dequeue() <-chan model.ProfileJob
}

// InMemoryWorker pulls jobs from a Source until it is closed or the context ends.
type InMemoryWorker struct {
	source    Source
	processor Processor
	name      string
	logger    logger.Logger
	active    *atomic.Int64
	done      chan struct{}
}

// NewInMemoryWorker creates a worker with configuration options.
func NewInMemoryWorker(source Source, processor Processor, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		source:    source,
		processor: processor,
		name:      "worker",
		logger:    logger.Get(),
		active:    &atomic.Int64{},
		done:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.logger = w.logger.Named(w.name)
	return w
}

// Run processes jobs until the source channel is closed and drained, or ctx is canceled.
func (w *InMemoryWorker) Run(ctx context.Context) {
	defer close(w.done)

	jobs := w.source.Dequeue()
	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-jobs:
			if !ok {
				return
			}
			metrics.RecordQueueDequeue()
			if err := w.process(ctx, job); err != nil {
				w.logger.Error(ctx, "error processing job",
					logger.String("submission_id", job.SubmissionID),
					logger.Error(err),
				)
			}
		}
	}
}

// Done is closed when Run returns.
func (w *InMemoryWorker) Done() <-chan struct{} {
	return w.done
}

func (w *InMemoryWorker) process(ctx context.Context, job model.ProfileJob) error { //nolint:gocritic // hugeParam: jobs are passed by value for channel semantics
	metrics.UpdateWorkerActiveCount(int(w.active.Add(1)))
	start := time.Now()
	defer func() {
		metrics.UpdateWorkerActiveCount(int(w.active.Add(-1)))
		metrics.RecordWorkerProcessingLatency(float64(time.Since(start).Milliseconds()))
	}()

	if err := w.processor.Process(ctx, job); err != nil {
		metrics.RecordWorkerError()
		metrics.RecordErrorByComponent("worker", "process_error")
		return fmt.Errorf("process %s: %w", job.SubmissionID, err)
	}
	return nil
}

// Pool manages multiple workers sharing one source.
type Pool struct {
	workers []*InMemoryWorker
	source  Source
	logger  logger.Logger

	cancel  context.CancelFunc
	wg      sync.WaitGroup
	started atomic.Bool
}

// NewPool creates a new worker pool. A non-positive count defaults to twice the CPU count.
func NewPool(workerCount int, source Source, processor Processor, opts ...PoolOption) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU() * defaultWorkerMultiplier
	}

	p := &Pool{
		workers: make([]*InMemoryWorker, workerCount),
		source:  source,
		logger:  logger.Get(),
	}
	for _, opt := range opts {
		opt(p)
	}

	active := &atomic.Int64{}
	for i := 0; i < workerCount; i++ {
		p.workers[i] = NewInMemoryWorker(source, processor,
			WithName("worker-"+strconv.Itoa(i)),
			WithLogger(p.logger),
		)
		p.workers[i].active = active
	}
	p.logger = p.logger.Named("worker-pool")

	metrics.UpdateWorkerCount(workerCount)
	metrics.UpdateWorkerActiveCount(0)
	return p
}

// Size returns the number of workers.
func (p *Pool) Size() int {
	return len(p.workers)
}

// Start launches every worker. Calling Start twice is a no-op.
func (p *Pool) Start(ctx context.Context) {
	if !p.started.CompareAndSwap(false, true) {
		return
	}
	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	for _, w := range p.workers {
		p.wg.Add(1)
		go func(w *InMemoryWorker) {
			defer p.wg.Done()
			w.Run(runCtx)
		}(w)
	}
	p.logger.Info(ctx, "worker pool started", logger.Int("workers", len(p.workers)))
}

// Shutdown closes the source when it supports it, lets workers drain the backlog and
// waits for them. If ctx ends first the workers are canceled and the context error returned.
func (p *Pool) Shutdown(ctx context.Context) error {
	if !p.started.Load() {
		return nil
	}
	if closer, ok := p.source.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			p.logger.Error(ctx, "error closing queue", logger.Error(err))
		}
	}

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.cancel()
		p.logger.Info(ctx, "worker pool stopped")
		return nil
	case <-ctx.Done():
		p.cancel()
		<-done
		p.logger.Warn(ctx, "worker pool shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}
