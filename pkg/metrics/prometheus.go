// Package metrics provides Prometheus metrics for the fairway service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every Prometheus collector of the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      prometheus.Labels
	registry         prometheus.Registerer

	// Scoring and classification
	profilesScored  prometheus.Counter
	scoringLatency  prometheus.Histogram
	scoringErrors   prometheus.Counter
	classifications *prometheus.CounterVec
	timelinePeriods prometheus.Counter
	batchSize       prometheus.Histogram

	// Submissions
	submissions *prometheus.CounterVec

	// Leaderboard
	leaderboardUpdates       prometheus.Counter
	leaderboardSize          prometheus.Gauge
	leaderboardUpdateLatency prometheus.Histogram
	leaderboardQueryLatency  prometheus.Histogram

	// Queue
	queueSize          prometheus.Gauge
	queueCapacity      prometheus.Gauge
	queueUtilization   prometheus.Gauge
	queueEnqueued      prometheus.Counter
	queueDequeued      prometheus.Counter
	queueEnqueueErrors prometheus.Counter

	// Workers
	workerCount             prometheus.Gauge
	workerActive            prometheus.Gauge
	workerProcessingLatency prometheus.Histogram
	workerErrors            prometheus.Counter

	// History store
	historyWrites prometheus.Counter
	historyErrors prometheus.Counter
	historyPruned prometheus.Counter
	historyRows   prometheus.Gauge

	// Scheduler
	schedulerRuns *prometheus.CounterVec

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Errors
	errorsByComponent *prometheus.CounterVec
	errorsByType      *prometheus.CounterVec
	errorsByEndpoint  *prometheus.CounterVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "fairway",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) counter(name, help string) prometheus.Counter {
	return promauto.With(m.registry).NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
	})
}

func (m *Manager) counterVec(name, help string, labels ...string) *prometheus.CounterVec {
	return promauto.With(m.registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
	}, labels)
}

func (m *Manager) gauge(name, help string) prometheus.Gauge {
	return promauto.With(m.registry).NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
	})
}

func (m *Manager) histogram(name, help string, buckets []float64) prometheus.Histogram {
	return promauto.With(m.registry).NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
		Buckets: buckets,
	})
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one place to declare every collector
	m.profilesScored = m.counter("profiles_scored_total", "Total number of scoring runs")
	m.scoringLatency = m.histogram("scoring_latency_milliseconds", "Scoring plus classification latency in milliseconds", m.histogramBuckets)
	m.scoringErrors = m.counter("scoring_errors_total", "Total number of rejected scoring inputs")
	m.classifications = m.counterVec("classifications_total", "Classifications by assigned archetype", "archetype")
	m.timelinePeriods = m.counter("timeline_periods_total", "Total number of timeline periods built")
	m.batchSize = m.histogram("batch_size", "Number of profiles per batch request", []float64{1, 5, 10, 25, 50, 100, 250, 500})

	m.submissions = m.counterVec("submissions_total", "Asynchronous profile submissions by outcome", "outcome")

	m.leaderboardUpdates = m.counter("leaderboard_updates_total", "Total number of leaderboard upserts")
	m.leaderboardSize = m.gauge("leaderboard_players", "Number of players on the leaderboard")
	m.leaderboardUpdateLatency = m.histogram("leaderboard_update_latency_milliseconds", "Leaderboard upsert latency in milliseconds", m.histogramBuckets)
	m.leaderboardQueryLatency = m.histogram("leaderboard_query_latency_milliseconds", "Leaderboard read latency in milliseconds", m.histogramBuckets)

	m.queueSize = m.gauge("queue_size", "Jobs waiting in the profile queue")
	m.queueCapacity = m.gauge("queue_capacity", "Capacity of the profile queue")
	m.queueUtilization = m.gauge("queue_utilization_ratio", "Queue fill ratio between 0 and 1")
	m.queueEnqueued = m.counter("queue_enqueued_total", "Total number of jobs enqueued")
	m.queueDequeued = m.counter("queue_dequeued_total", "Total number of jobs dequeued")
	m.queueEnqueueErrors = m.counter("queue_enqueue_errors_total", "Total number of jobs rejected by a full or closed queue")

	m.workerCount = m.gauge("worker_count", "Configured number of workers")
	m.workerActive = m.gauge("worker_active", "Workers currently processing a job")
	m.workerProcessingLatency = m.histogram("worker_processing_latency_milliseconds", "Per-job processing latency in milliseconds", m.histogramBuckets)
	m.workerErrors = m.counter("worker_errors_total", "Total number of jobs that failed processing")

	m.historyWrites = m.counter("history_writes_total", "Total number of snapshots persisted")
	m.historyErrors = m.counter("history_errors_total", "Total number of failed history operations")
	m.historyPruned = m.counter("history_pruned_total", "Total number of snapshots removed by retention")
	m.historyRows = m.gauge("history_rows", "Snapshots currently stored")

	m.schedulerRuns = m.counterVec("scheduler_runs_total", "Background job runs by job and outcome", "job", "outcome")

	m.httpRequests = m.counterVec("http_requests_total", "HTTP requests by endpoint, method and status", "endpoint", "method", "status_code")
	m.httpRequestDuration = promauto.With(m.registry).NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "http_request_duration_milliseconds",
		Help:        "HTTP request duration in milliseconds",
		ConstLabels: m.constLabels,
		Buckets:     m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})

	m.errorsByComponent = m.counterVec("errors_by_component_total", "Errors by component", "component", "error_type")
	m.errorsByType = m.counterVec("errors_by_type_total", "Errors by type and severity", "error_type", "severity")
	m.errorsByEndpoint = m.counterVec("errors_by_endpoint_total", "Errors by endpoint", "endpoint", "method", "error_type")

	m.systemMemoryUsage = m.gauge("system_memory_usage_bytes", "Heap bytes allocated")
	m.systemGoroutineCount = m.gauge("system_goroutine_count", "Number of goroutines")
	m.systemGCPauseTime = m.histogram("system_gc_pause_time_milliseconds", "Average GC pause time in milliseconds",
		[]float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000})
}

// RecordProfileScored counts one scoring run and its latency.
func RecordProfileScored(latencyMs float64) {
	globalManager.profilesScored.Inc()
	globalManager.scoringLatency.Observe(latencyMs)
}

// RecordScoringError counts an input the engine rejected.
func RecordScoringError() {
	globalManager.scoringErrors.Inc()
}

// RecordClassification counts an assignment of the given archetype.
func RecordClassification(archetypeID string) {
	globalManager.classifications.WithLabelValues(archetypeID).Inc()
}

// RecordTimelinePeriods counts built timeline periods.
func RecordTimelinePeriods(n int) {
	globalManager.timelinePeriods.Add(float64(n))
}

// RecordBatchSize observes the size of a batch request.
func RecordBatchSize(n int) {
	globalManager.batchSize.Observe(float64(n))
}

// Submission outcomes.
const (
	SubmissionAccepted  = "accepted"
	SubmissionDuplicate = "duplicate"
	SubmissionRejected  = "rejected"
	SubmissionInvalid   = "invalid"
)

// RecordSubmission counts a submission by outcome.
func RecordSubmission(outcome string) {
	globalManager.submissions.WithLabelValues(outcome).Inc()
}

// RecordLeaderboardUpdate counts an upsert and its latency.
func RecordLeaderboardUpdate(latencyMs float64) {
	globalManager.leaderboardUpdates.Inc()
	globalManager.leaderboardUpdateLatency.Observe(latencyMs)
}

// RecordLeaderboardQuery observes a leaderboard read.
func RecordLeaderboardQuery(latencyMs float64) {
	globalManager.leaderboardQueryLatency.Observe(latencyMs)
}

// UpdateLeaderboardSize sets the number of ranked players.
func UpdateLeaderboardSize(count int) {
	globalManager.leaderboardSize.Set(float64(count))
}

// UpdateQueueSize sets the queue backlog.
func UpdateQueueSize(size int) {
	globalManager.queueSize.Set(float64(size))
}

// UpdateQueueCapacity sets the queue capacity.
func UpdateQueueCapacity(capacity int) {
	globalManager.queueCapacity.Set(float64(capacity))
}

// UpdateQueueUtilization sets the queue fill ratio.
func UpdateQueueUtilization(utilization float64) {
	globalManager.queueUtilization.Set(utilization)
}

// RecordQueueEnqueue counts an accepted job.
func RecordQueueEnqueue() {
	globalManager.queueEnqueued.Inc()
}

// RecordQueueDequeue counts a job handed to a worker.
func RecordQueueDequeue() {
	globalManager.queueDequeued.Inc()
}

// RecordQueueEnqueueError counts a job the queue refused.
func RecordQueueEnqueueError() {
	globalManager.queueEnqueueErrors.Inc()
}

// UpdateWorkerCount sets the configured worker count.
func UpdateWorkerCount(count int) {
	globalManager.workerCount.Set(float64(count))
}

// UpdateWorkerActiveCount sets the number of busy workers.
func UpdateWorkerActiveCount(count int) {
	globalManager.workerActive.Set(float64(count))
}

// RecordWorkerProcessingLatency observes one job's processing time.
func RecordWorkerProcessingLatency(latencyMs float64) {
	globalManager.workerProcessingLatency.Observe(latencyMs)
}

// RecordWorkerError counts a failed job.
func RecordWorkerError() {
	globalManager.workerErrors.Inc()
}

// RecordHistoryWrite counts a persisted snapshot.
func RecordHistoryWrite() {
	globalManager.historyWrites.Inc()
}

// RecordHistoryError counts a failed history operation.
func RecordHistoryError() {
	globalManager.historyErrors.Inc()
}

// RecordHistoryPruned counts snapshots removed by retention.
func RecordHistoryPruned(n int64) {
	globalManager.historyPruned.Add(float64(n))
}

// UpdateHistoryRows sets the number of stored snapshots.
func UpdateHistoryRows(n int64) {
	globalManager.historyRows.Set(float64(n))
}

// RecordSchedulerRun counts a background job run.
func RecordSchedulerRun(job, outcome string) {
	globalManager.schedulerRuns.WithLabelValues(job, outcome).Inc()
}

// RecordHTTPRequest counts an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration observes an HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByComponent counts an error raised by a component.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorsByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordErrorByType counts an error by type and severity.
func RecordErrorByType(errorType, severity string) {
	globalManager.errorsByType.WithLabelValues(errorType, severity).Inc()
}

// RecordErrorByEndpoint counts an error returned by an endpoint.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorsByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// UpdateSystemMemoryUsage sets heap bytes in use.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the goroutine count.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime observes the average GC pause.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the registry the global manager registers on.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
