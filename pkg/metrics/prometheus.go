// Package metrics provides Prometheus metrics for the prospect
// evaluation engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the engine.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Evaluation pipeline
	evaluationsComputed prometheus.Counter
	evaluationDuration  prometheus.Histogram
	evaluationFailures  prometheus.Counter

	// Evaluation cache
	cacheHits      prometheus.Counter
	cacheMisses    prometheus.Counter
	cacheEvictions prometheus.Counter
	cacheSize      prometheus.Gauge

	// Batch evaluator
	batchesProcessed prometheus.Counter
	batchDuration    prometheus.Histogram

	// Refresh passes
	refreshPasses    prometheus.Counter
	refreshDiscarded prometheus.Counter
	boardSize        prometheus.Gauge

	// Trends
	trendsComputed    prometheus.Counter
	snapshotsCaptured prometheus.Counter

	// HTTP surface
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "prospectrank",
		subsystem:        "engine",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.evaluationsComputed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "evaluations_computed_total",
		Help:      "Total number of evaluations computed by the scoring engine (cache misses)",
	})

	m.evaluationDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "evaluation_duration_milliseconds",
		Help:      "Histogram of single-prospect evaluation duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.evaluationFailures = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "evaluation_failures_total",
		Help:      "Total number of per-prospect evaluation failures isolated inside batches",
	})

	m.cacheHits = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "cache_hits_total",
		Help:      "Total number of evaluation cache hits",
	})

	m.cacheMisses = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "cache_misses_total",
		Help:      "Total number of evaluation cache misses",
	})

	m.cacheEvictions = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "cache_evictions_total",
		Help:      "Total number of LRU evictions from the evaluation cache",
	})

	m.cacheSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "cache_size",
		Help:      "Current number of cached evaluations",
	})

	m.batchesProcessed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "batches_processed_total",
		Help:      "Total number of evaluation batches completed",
	})

	m.batchDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "batch_duration_milliseconds",
		Help:      "Histogram of batch evaluation duration in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.refreshPasses = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "refresh_passes_total",
		Help:      "Total number of board refresh passes started",
	})

	m.refreshDiscarded = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "refresh_discarded_total",
		Help:      "Total number of refresh passes discarded for finishing with a stale generation",
	})

	m.boardSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "board_size",
		Help:      "Number of prospects on the current board",
	})

	m.trendsComputed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "trends_computed_total",
		Help:      "Total number of snapshot-pair trend computations",
	})

	m.snapshotsCaptured = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshots_captured_total",
		Help:      "Total number of stat snapshots persisted to history",
	})

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint, method and status",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)
}

// GetRegistry returns the custom Prometheus registry used by the global
// manager, so the HTTP layer can expose it.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// Package-level helpers recording on the global manager.

func RecordEvaluationComputed()           { globalManager.evaluationsComputed.Inc() }
func RecordEvaluationDuration(ms float64) { globalManager.evaluationDuration.Observe(ms) }
func RecordEvaluationFailure()            { globalManager.evaluationFailures.Inc() }

func RecordCacheHit()       { globalManager.cacheHits.Inc() }
func RecordCacheMiss()      { globalManager.cacheMisses.Inc() }
func RecordCacheEviction()  { globalManager.cacheEvictions.Inc() }
func UpdateCacheSize(n int) { globalManager.cacheSize.Set(float64(n)) }

func RecordBatchProcessed()          { globalManager.batchesProcessed.Inc() }
func RecordBatchDuration(ms float64) { globalManager.batchDuration.Observe(ms) }

func RecordRefreshPass()      { globalManager.refreshPasses.Inc() }
func RecordRefreshDiscarded() { globalManager.refreshDiscarded.Inc() }
func UpdateBoardSize(n int)   { globalManager.boardSize.Set(float64(n)) }

func RecordTrendComputed()    { globalManager.trendsComputed.Inc() }
func RecordSnapshotCaptured() { globalManager.snapshotsCaptured.Inc() }

// RecordHTTPRequest records a completed HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request latency.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, ms float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(ms)
}
