// Package metrics provides Prometheus metrics for the retirement projection service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// horizonBuckets covers projection horizons in years.
var horizonBuckets = []float64{1, 5, 10, 15, 20, 25, 30, 35, 40, 50, 60, 80} //nolint:gochecknoglobals // bucket layout

// Manager manages all Prometheus metrics for the projection service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	constLabels      map[string]string
	registry         prometheus.Registerer

	// Projection Metrics
	projectionsComputed prometheus.Counter
	validationErrors    prometheus.Counter
	projectionDuration  prometheus.Histogram
	projectionHorizon   prometheus.Histogram
	lastFinalTotal      prometheus.Gauge

	// Form Metrics
	fieldUpdates       *prometheus.CounterVec
	contributionClamps prometheus.Counter
	formSubmissions    prometheus.Counter
	formErrors         *prometheus.CounterVec

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error Metrics
	errorRateByType     *prometheus.CounterVec
	errorRateByEndpoint *prometheus.CounterVec

	// System Performance Metrics
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

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "nestegg",
		subsystem:        "projection",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		constLabels:      make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// Enabled reports whether recording is active.
func (m *Manager) Enabled() bool {
	return m.enabled
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) histogramOpts(name, help string, buckets []float64) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		Buckets:     buckets,
		ConstLabels: m.constLabels,
	}
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.projectionsComputed = auto.NewCounter(m.counterOpts(
		"projections_computed_total", "Total number of projections computed"))
	m.validationErrors = auto.NewCounter(m.counterOpts(
		"validation_errors_total", "Total number of inputs rejected because retirement age does not exceed age"))
	m.projectionDuration = auto.NewHistogram(m.histogramOpts(
		"duration_milliseconds", "Histogram of projection computation time in milliseconds", m.histogramBuckets))
	m.projectionHorizon = auto.NewHistogram(m.histogramOpts(
		"horizon_years", "Histogram of projection horizons in years", horizonBuckets))
	m.lastFinalTotal = auto.NewGauge(m.gaugeOpts(
		"last_final_total", "Headline total of the most recent projection"))

	m.fieldUpdates = auto.NewCounterVec(m.counterOpts(
		"form_field_updates_total", "Total number of form field updates by field"), []string{"field"})
	m.contributionClamps = auto.NewCounter(m.counterOpts(
		"contribution_clamps_total", "Total number of contribution edits clamped to the yearly ceiling"))
	m.formSubmissions = auto.NewCounter(m.counterOpts(
		"form_submissions_total", "Total number of form submissions"))
	m.formErrors = auto.NewCounterVec(m.counterOpts(
		"form_errors_total", "Total number of rejected form edits by reason"), []string{"reason"})

	m.httpRequests = auto.NewCounterVec(m.counterOpts(
		"http_requests_total", "Total number of HTTP requests by endpoint and method"),
		[]string{"endpoint", "method", "status_code"})
	m.httpRequestDuration = auto.NewHistogramVec(m.histogramOpts(
		"http_request_duration_milliseconds", "HTTP request duration in milliseconds", m.histogramBuckets),
		[]string{"endpoint", "method", "status_code"})

	m.errorRateByType = auto.NewCounterVec(m.counterOpts(
		"errors_by_type_total", "Total number of errors by type"), []string{"error_type", "severity"})
	m.errorRateByEndpoint = auto.NewCounterVec(m.counterOpts(
		"errors_by_endpoint_total", "Total number of errors by endpoint"), []string{"endpoint", "method", "error_type"})

	m.systemMemoryUsage = auto.NewGauge(m.gaugeOpts(
		"system_memory_usage_bytes", "System memory usage in bytes"))
	m.systemGoroutineCount = auto.NewGauge(m.gaugeOpts(
		"system_goroutine_count", "Number of goroutines"))
	m.systemGCPauseTime = auto.NewHistogram(m.histogramOpts(
		"system_gc_pause_time_milliseconds", "GC pause time in milliseconds",
		[]float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000}))
}

// Manager recorders.

// RecordProjection records a successful projection.
func (m *Manager) RecordProjection(horizonYears int, finalTotal int64, durationMs float64) {
	if !m.enabled {
		return
	}
	m.projectionsComputed.Inc()
	m.projectionHorizon.Observe(float64(horizonYears))
	m.projectionDuration.Observe(durationMs)
	m.lastFinalTotal.Set(float64(finalTotal))
}

// RecordValidationError records a rejected projection input.
func (m *Manager) RecordValidationError() {
	if !m.enabled {
		return
	}
	m.validationErrors.Inc()
}

// RecordFieldUpdate records a form edit and whether it was clamped.
func (m *Manager) RecordFieldUpdate(field string, clamped bool) {
	if !m.enabled {
		return
	}
	m.fieldUpdates.WithLabelValues(field).Inc()
	if clamped {
		m.contributionClamps.Inc()
	}
}

// RecordFormSubmission records an explicit form submission.
func (m *Manager) RecordFormSubmission() {
	if !m.enabled {
		return
	}
	m.formSubmissions.Inc()
}

// RecordFormError records a rejected form edit.
func (m *Manager) RecordFormError(reason string) {
	if !m.enabled {
		return
	}
	m.formErrors.WithLabelValues(reason).Inc()
}

// RecordHTTPRequest records request count and duration.
func (m *Manager) RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	if !m.enabled {
		return
	}
	m.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	m.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordError records an error with type, severity and endpoint labels.
func (m *Manager) RecordError(endpoint, method, errorType, severity string) {
	if !m.enabled {
		return
	}
	m.errorRateByType.WithLabelValues(errorType, severity).Inc()
	m.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordSystem records memory, goroutine and GC pause readings.
func (m *Manager) RecordSystem(memBytes uint64, goroutines int, gcPauseMs float64) {
	if !m.enabled {
		return
	}
	m.systemMemoryUsage.Set(float64(memBytes))
	m.systemGoroutineCount.Set(float64(goroutines))
	if gcPauseMs > 0 {
		m.systemGCPauseTime.Observe(gcPauseMs)
	}
}

// Package-level recorders on the global manager.

// RecordProjection records a successful projection.
func RecordProjection(horizonYears int, finalTotal int64, durationMs float64) {
	globalManager.RecordProjection(horizonYears, finalTotal, durationMs)
}

// RecordValidationError records a rejected projection input.
func RecordValidationError() {
	globalManager.RecordValidationError()
}

// RecordFieldUpdate records a form edit and whether it was clamped.
func RecordFieldUpdate(field string, clamped bool) {
	globalManager.RecordFieldUpdate(field, clamped)
}

// RecordFormSubmission records an explicit form submission.
func RecordFormSubmission() {
	globalManager.RecordFormSubmission()
}

// RecordFormError records a rejected form edit.
func RecordFormError(reason string) {
	globalManager.RecordFormError(reason)
}

// RecordHTTPRequest records request count and duration.
func RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	globalManager.RecordHTTPRequest(endpoint, method, statusCode, durationMs)
}

// RecordError records an error with type, severity and endpoint labels.
func RecordError(endpoint, method, errorType, severity string) {
	globalManager.RecordError(endpoint, method, errorType, severity)
}

// RecordSystem records memory, goroutine and GC pause readings.
func RecordSystem(memBytes uint64, goroutines int, gcPauseMs float64) {
	globalManager.RecordSystem(memBytes, goroutines, gcPauseMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
