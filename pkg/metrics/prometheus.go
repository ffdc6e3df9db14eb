// Package metrics provides Prometheus metrics for the gridlens plant service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	registry         prometheus.Registerer

	// Dataset lifecycle metrics
	loadsTotal    prometheus.Counter
	loadFailures  prometheus.Counter
	loadDuration  prometheus.Histogram
	datasetRows   prometheus.Gauge
	rowsDropped   *prometheus.CounterVec
	lastLoadUnix  prometheus.Gauge

	// Query metrics
	queriesTotal *prometheus.CounterVec

	// HTTP performance metrics
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
		namespace:        "gridlens",
		subsystem:        "plants",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()
	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.loadsTotal = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "dataset_loads_total",
		Help:      "Total number of successful dataset loads",
	})

	m.loadFailures = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "dataset_load_failures_total",
		Help:      "Total number of failed dataset loads",
	})

	m.loadDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "dataset_load_duration_seconds",
		Help:      "Histogram of dataset load duration in seconds",
		Buckets:   m.histogramBuckets,
	})

	m.datasetRows = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "dataset_rows",
		Help:      "Number of plant records in the current dataset",
	})

	m.rowsDropped = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rows_dropped_total",
		Help:      "Rows dropped during cleaning, by reason",
	}, []string{"reason"})

	m.lastLoadUnix = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "dataset_last_load_timestamp_seconds",
		Help:      "Unix timestamp of the last successful dataset load",
	})

	m.queriesTotal = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queries_total",
		Help:      "Queries answered, by operation and outcome",
	}, []string{"operation", "outcome"})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "HTTP requests, by endpoint, method, and status",
	}, []string{"endpoint", "method", "status"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_seconds",
		Help:      "Histogram of HTTP request duration in seconds",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method"})
}

// GetRegistry returns the registry backing the global manager's metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// RecordLoad records a successful dataset load.
func RecordLoad(d time.Duration) {
	if !globalManager.enabled {
		return
	}
	globalManager.loadsTotal.Inc()
	globalManager.loadDuration.Observe(d.Seconds())
	globalManager.lastLoadUnix.SetToCurrentTime()
}

// RecordLoadFailure records a failed dataset load.
func RecordLoadFailure() {
	if !globalManager.enabled {
		return
	}
	globalManager.loadFailures.Inc()
}

// UpdateDatasetRows sets the current dataset size.
func UpdateDatasetRows(n int) {
	if !globalManager.enabled {
		return
	}
	globalManager.datasetRows.Set(float64(n))
}

// RecordRowsDropped adds dropped-row counts for a cleaning reason.
func RecordRowsDropped(reason string, n int) {
	if !globalManager.enabled || n <= 0 {
		return
	}
	globalManager.rowsDropped.WithLabelValues(reason).Add(float64(n))
}

// RecordQuery records one answered query by operation and outcome.
func RecordQuery(operation, outcome string) {
	if !globalManager.enabled {
		return
	}
	globalManager.queriesTotal.WithLabelValues(operation, outcome).Inc()
}

// RecordHTTPRequest records one completed HTTP request.
func RecordHTTPRequest(endpoint, method, status string) {
	if !globalManager.enabled {
		return
	}
	globalManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
}

// RecordHTTPRequestDuration records the duration of one HTTP request.
func RecordHTTPRequestDuration(endpoint, method string, d time.Duration) {
	if !globalManager.enabled {
		return
	}
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method).Observe(d.Seconds())
}
