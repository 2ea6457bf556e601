// Package metrics provides Prometheus metrics for the dugout player service.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every Prometheus collector exported by the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Upstream dataset
	upstreamFetches       *prometheus.CounterVec
	upstreamFetchDuration prometheus.Histogram
	upstreamCache         *prometheus.CounterVec
	upstreamPlayers       prometheus.Gauge

	// Overrides
	overrideWrites *prometheus.CounterVec
	overrideErrors *prometheus.CounterVec

	// Scouting reports
	descriptionRequests *prometheus.CounterVec
	generationDuration  prometheus.Histogram

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorsByEndpoint    *prometheus.CounterVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

var runtimeOnce sync.Once //nolint:gochecknoglobals // guards RegisterRuntimeCollectors

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "dugout",
		subsystem:        "players",
		histogramBuckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000},
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every collector
	auto := promauto.With(m.registry)

	m.upstreamFetches = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "upstream_fetches_total",
		Help:      "Upstream dataset fetches by result (ok, error)",
	}, []string{"result"})

	m.upstreamFetchDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "upstream_fetch_duration_milliseconds",
		Help:      "Upstream dataset fetch latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.upstreamCache = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "upstream_cache_lookups_total",
		Help:      "Upstream cache lookups by result (hit, miss)",
	}, []string{"result"})

	m.upstreamPlayers = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "upstream_players",
		Help:      "Number of players in the last successful upstream fetch",
	})

	m.overrideWrites = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "override_writes_total",
		Help:      "Override upserts by storage driver",
	}, []string{"driver"})

	m.overrideErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "override_errors_total",
		Help:      "Override store failures by driver and operation",
	}, []string{"driver", "op"})

	m.descriptionRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "description_requests_total",
		Help:      "Scouting report requests by outcome (cached, generated, error)",
	}, []string{"outcome"})

	m.generationDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "generation_duration_milliseconds",
		Help:      "Text generation latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests by endpoint and method",
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "HTTP request duration in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})

	m.errorsByEndpoint = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_errors_total",
		Help:      "HTTP error responses by endpoint, method and error type",
	}, []string{"endpoint", "method", "error_type"})
}

// RecordUpstreamFetch records one upstream fetch and its latency.
func RecordUpstreamFetch(ok bool, latencyMs float64) {
	result := "ok"
	if !ok {
		result = "error"
	}
	globalManager.upstreamFetches.WithLabelValues(result).Inc()
	globalManager.upstreamFetchDuration.Observe(latencyMs)
}

// RecordCacheHit records a lookup served from the upstream cache.
func RecordCacheHit() {
	globalManager.upstreamCache.WithLabelValues("hit").Inc()
}

// RecordCacheMiss records a lookup that required a fetch.
func RecordCacheMiss() {
	globalManager.upstreamCache.WithLabelValues("miss").Inc()
}

// UpdateUpstreamPlayers sets the size of the cached dataset.
func UpdateUpstreamPlayers(count int) {
	globalManager.upstreamPlayers.Set(float64(count))
}

// RecordOverrideWrite records a successful override upsert.
func RecordOverrideWrite(driver string) {
	globalManager.overrideWrites.WithLabelValues(driver).Inc()
}

// RecordOverrideError records a failed store operation.
func RecordOverrideError(driver, op string) {
	globalManager.overrideErrors.WithLabelValues(driver, op).Inc()
}

// RecordDescription records a scouting report request outcome.
func RecordDescription(outcome string) {
	globalManager.descriptionRequests.WithLabelValues(outcome).Inc()
}

// RecordGenerationLatency records how long the generator took.
func RecordGenerationLatency(latencyMs float64) {
	globalManager.generationDuration.Observe(latencyMs)
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByEndpoint records an HTTP error response.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorsByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// Init rebuilds the package-level manager on a fresh registry using opts.
// It is meant for process startup, before any handler serves GetRegistry,
// and is not safe to call concurrently with the recorders.
func Init(opts ...Option) {
	registry := prometheus.NewRegistry()
	customRegistry = registry
	globalManager = NewManager(append(opts, WithPrometheusRegistry(registry))...)
	runtimeOnce = sync.Once{}
}

// GetRegistry returns the registry backing the package-level recorders.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// RegisterRuntimeCollectors adds the Go runtime and process collectors to
// the custom registry. Safe to call more than once.
func RegisterRuntimeCollectors() {
	runtimeOnce.Do(func() {
		customRegistry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	})
}
