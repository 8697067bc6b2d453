// Package metrics provides Prometheus metrics for the concurso voting service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Ballot lifecycle
	ballotsAccepted prometheus.Counter
	ballotsRejected *prometheus.CounterVec // by rejection reason
	malformedRows   prometheus.Counter     // data-quality: skipped ballot rows

	// Store health
	storeLatency *prometheus.HistogramVec // by operation (rows/append)
	storeErrors  prometheus.Counter

	// Aggregation
	leaderboardRebuilds prometheus.Counter

	// Totals (gauges refreshed on reads)
	totalBallots prometheus.Gauge
	totalTeams   prometheus.Gauge

	// HTTP surface
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "concurso",
		subsystem:        "votacion",
		histogramBuckets: prometheus.DefBuckets,
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

	m.ballotsAccepted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "ballots_accepted_total",
		Help:      "Total number of ballots validated, scored, and appended",
	})

	m.ballotsRejected = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "ballots_rejected_total",
		Help:      "Total number of rejected ballots by reason",
	}, []string{"reason"})

	m.malformedRows = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "malformed_rows_total",
		Help:      "Total number of ballot rows skipped because they could not be decoded",
	})

	m.storeLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_latency_milliseconds",
		Help:      "Histogram of tabular store call latency in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"operation"})

	m.storeErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_errors_total",
		Help:      "Total number of failed tabular store calls",
	})

	m.leaderboardRebuilds = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "leaderboard_rebuilds_total",
		Help:      "Total number of full leaderboard recomputations",
	})

	m.totalBallots = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "ballots_total",
		Help:      "Number of well-formed ballots in the repository at last read",
	})

	m.totalTeams = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "teams_total",
		Help:      "Number of registered teams at last read",
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests by endpoint, method, and status",
	}, []string{"endpoint", "method", "status"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "Histogram of HTTP request duration in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status"})
}

// Package-level helpers against the global manager.

// RecordBallotAccepted increments the accepted-ballot counter.
func RecordBallotAccepted() {
	globalManager.ballotsAccepted.Inc()
}

// RecordBallotRejected increments the rejection counter for a reason
// (validation, not_found, unauthorized, duplicate, unavailable).
func RecordBallotRejected(reason string) {
	globalManager.ballotsRejected.WithLabelValues(reason).Inc()
}

// RecordMalformedRow counts a ballot row skipped during decoding.
func RecordMalformedRow() {
	globalManager.malformedRows.Inc()
}

// RecordStoreLatency records one tabular store call duration.
func RecordStoreLatency(operation string, latencyMs float64) {
	globalManager.storeLatency.WithLabelValues(operation).Observe(latencyMs)
}

// RecordStoreError counts a failed tabular store call.
func RecordStoreError() {
	globalManager.storeErrors.Inc()
}

// RecordLeaderboardRebuild counts a full aggregation pass.
func RecordLeaderboardRebuild() {
	globalManager.leaderboardRebuilds.Inc()
}

// UpdateTotalBallots sets the ballots gauge.
func UpdateTotalBallots(count int) {
	globalManager.totalBallots.Set(float64(count))
}

// UpdateTotalTeams sets the teams gauge.
func UpdateTotalTeams(count int) {
	globalManager.totalTeams.Set(float64(count))
}

// RecordHTTPRequest counts one HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records one HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// GetRegistry exposes the custom registry for the metrics endpoint.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
