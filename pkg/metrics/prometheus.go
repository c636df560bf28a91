// Package metrics provides Prometheus metrics for the salesdash gateway.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultRefreshInterval = 10 * time.Second
)

// Manager manages all Prometheus metrics for the salesdash service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	customLabels     map[string]string
	metricPrefix     string
	registry         prometheus.Registerer

	// Connection Lifecycle Metrics - the invariant the whole gateway hangs
	// on: opened must equal closed once traffic drains.
	connectionsOpened prometheus.Counter
	connectionsClosed prometheus.Counter
	connectionsActive prometheus.Gauge

	// Warehouse Query Metrics
	queryLatency *prometheus.HistogramVec
	queryErrors  *prometheus.CounterVec

	// Provisioning Metrics
	provisionErrors *prometheus.CounterVec

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Enhanced Error Metrics - Detailed error tracking
	errorRateByEndpoint *prometheus.CounterVec
	errorRateByType     *prometheus.CounterVec
	errorLatency        *prometheus.HistogramVec

	// System Performance Metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
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
		namespace:        "salesdash",
		subsystem:        "gateway",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
		customLabels:     make(map[string]string),
		metricPrefix:     "",
		registry:         prometheus.DefaultRegisterer,
	}

	// Apply all options
	for _, opt := range opts {
		opt(m)
	}

	// Initialize metrics
	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	// Ensure metrics are registered on the configured registry (custom by default)
	auto := promauto.With(m.registry)

	// Connection Lifecycle Metrics
	m.connectionsOpened = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "connections_opened_total",
		Help:      "Total number of warehouse sessions opened",
	})

	m.connectionsClosed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "connections_closed_total",
		Help:      "Total number of warehouse sessions closed",
	})

	m.connectionsActive = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "connections_active",
		Help:      "Warehouse sessions currently open (one per in-flight request)",
	})

	// Warehouse Query Metrics
	m.queryLatency = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "query_latency_milliseconds",
			Help:      "Warehouse statement latency in milliseconds by statement",
			Buckets:   m.histogramBuckets,
		},
		[]string{"statement"},
	)

	m.queryErrors = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "query_errors_total",
			Help:      "Total number of failed warehouse statements by statement",
		},
		[]string{"statement"},
	)

	// Provisioning Metrics
	m.provisionErrors = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "provision_errors_total",
			Help:      "Total number of connection provisioning failures by kind",
		},
		[]string{"kind"},
	)

	// HTTP Performance Metrics - User experience indicators
	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint and method",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds (user experience)",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	// Enhanced Error Metrics - Detailed error tracking
	m.errorRateByEndpoint = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "errors_by_endpoint_total",
			Help:      "Total number of errors by endpoint, method and type",
		},
		[]string{"endpoint", "method", "error_type"},
	)

	m.errorRateByType = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "errors_by_type_total",
			Help:      "Total number of errors by type and severity",
		},
		[]string{"error_type", "severity"},
	)

	m.errorLatency = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "error_latency_milliseconds",
			Help:      "Latency of failed operations in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"component", "error_type"},
	)

	// System Performance Metrics
	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_memory_bytes",
		Help:      "Current allocated heap memory in bytes",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_goroutines",
		Help:      "Current number of goroutines",
	})

	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_gc_pause_milliseconds",
		Help:      "Average GC pause time in milliseconds",
		Buckets:   m.histogramBuckets,
	})
}

// GetRegistry returns the custom Prometheus registry used by the global
// manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// Manager-level recording methods.

// RecordConnectionOpened counts one opened warehouse session.
func (m *Manager) RecordConnectionOpened() {
	if !m.enabled {
		return
	}
	m.connectionsOpened.Inc()
	m.connectionsActive.Inc()
}

// RecordConnectionClosed counts one closed warehouse session.
func (m *Manager) RecordConnectionClosed() {
	if !m.enabled {
		return
	}
	m.connectionsClosed.Inc()
	m.connectionsActive.Dec()
}

// RecordQueryLatency records the latency of one successful statement.
func (m *Manager) RecordQueryLatency(statement string, ms float64) {
	if !m.enabled {
		return
	}
	m.queryLatency.WithLabelValues(statement).Observe(ms)
}

// RecordQueryError counts one failed statement.
func (m *Manager) RecordQueryError(statement string) {
	if !m.enabled {
		return
	}
	m.queryErrors.WithLabelValues(statement).Inc()
}

// RecordProvisionError counts one provisioning failure.
func (m *Manager) RecordProvisionError(kind string) {
	if !m.enabled {
		return
	}
	m.provisionErrors.WithLabelValues(kind).Inc()
}

// RecordHTTPRequest counts one HTTP request.
func (m *Manager) RecordHTTPRequest(endpoint, method, statusCode string) {
	if !m.enabled {
		return
	}
	m.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records one HTTP request duration.
func (m *Manager) RecordHTTPRequestDuration(endpoint, method, statusCode string, ms float64) {
	if !m.enabled {
		return
	}
	m.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(ms)
}

// RecordErrorByEndpoint counts one error by endpoint.
func (m *Manager) RecordErrorByEndpoint(endpoint, method, errorType string) {
	if !m.enabled {
		return
	}
	m.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordErrorByType counts one error by type and severity.
func (m *Manager) RecordErrorByType(errorType, severity string) {
	if !m.enabled {
		return
	}
	m.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// RecordErrorLatency records the latency of one failed operation.
func (m *Manager) RecordErrorLatency(component, errorType string, ms float64) {
	if !m.enabled {
		return
	}
	m.errorLatency.WithLabelValues(component, errorType).Observe(ms)
}

// UpdateSystemMemoryUsage sets the current heap allocation gauge.
func (m *Manager) UpdateSystemMemoryUsage(bytes uint64) {
	if !m.enabled {
		return
	}
	m.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the goroutine gauge.
func (m *Manager) UpdateSystemGoroutineCount(count int) {
	if !m.enabled {
		return
	}
	m.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records an average GC pause observation.
func (m *Manager) RecordSystemGCPauseTime(ms float64) {
	if !m.enabled {
		return
	}
	m.systemGCPauseTime.Observe(ms)
}

// Package-level helpers forwarding to the global manager.

// RecordConnectionOpened counts one opened warehouse session.
func RecordConnectionOpened() { globalManager.RecordConnectionOpened() }

// RecordConnectionClosed counts one closed warehouse session.
func RecordConnectionClosed() { globalManager.RecordConnectionClosed() }

// RecordQueryLatency records the latency of one successful statement.
func RecordQueryLatency(statement string, ms float64) {
	globalManager.RecordQueryLatency(statement, ms)
}

// RecordQueryError counts one failed statement.
func RecordQueryError(statement string) { globalManager.RecordQueryError(statement) }

// RecordProvisionError counts one provisioning failure.
func RecordProvisionError(kind string) { globalManager.RecordProvisionError(kind) }

// RecordHTTPRequest counts one HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.RecordHTTPRequest(endpoint, method, statusCode)
}

// RecordHTTPRequestDuration records one HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, ms float64) {
	globalManager.RecordHTTPRequestDuration(endpoint, method, statusCode, ms)
}

// RecordErrorByEndpoint counts one error by endpoint.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.RecordErrorByEndpoint(endpoint, method, errorType)
}

// RecordErrorByType counts one error by type and severity.
func RecordErrorByType(errorType, severity string) {
	globalManager.RecordErrorByType(errorType, severity)
}

// RecordErrorLatency records the latency of one failed operation.
func RecordErrorLatency(component, errorType string, ms float64) {
	globalManager.RecordErrorLatency(component, errorType, ms)
}

// UpdateSystemMemoryUsage sets the current heap allocation gauge.
func UpdateSystemMemoryUsage(bytes uint64) { globalManager.UpdateSystemMemoryUsage(bytes) }

// UpdateSystemGoroutineCount sets the goroutine gauge.
func UpdateSystemGoroutineCount(count int) { globalManager.UpdateSystemGoroutineCount(count) }

// RecordSystemGCPauseTime records an average GC pause observation.
func RecordSystemGCPauseTime(ms float64) { globalManager.RecordSystemGCPauseTime(ms) }
