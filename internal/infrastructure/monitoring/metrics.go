// Package monitoring provides Prometheus metrics collection
package monitoring

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// MetricsCollector handles Prometheus metrics collection. Metrics register
// on a collector-owned registry so tests can build as many collectors as
// they need without duplicate-registration panics.
type MetricsCollector struct {
	logger   *zap.Logger
	registry *prometheus.Registry

	// HTTP metrics
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Business metrics
	generationRunsTotal *prometheus.CounterVec
	generationDuration  prometheus.Histogram
	aiRequestsTotal     *prometheus.CounterVec
	aiRequestDuration   *prometheus.HistogramVec
	pantryWritesTotal   *prometheus.CounterVec
	usageAppliedTotal   prometheus.Counter
	usageMissingTotal   prometheus.Counter

	// System metrics
	dbConnectionsActive prometheus.Gauge
	dbConnectionsIdle   prometheus.Gauge
}

// NewMetricsCollector creates a new metrics collector
func NewMetricsCollector(logger *zap.Logger) *MetricsCollector {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &MetricsCollector{
		logger:   logger,
		registry: registry,

		httpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		httpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status_code"},
		),

		generationRunsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "generation_runs_total",
				Help: "Total number of recipe generation runs",
			},
			[]string{"status"},
		),
		generationDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "generation_duration_seconds",
				Help:    "End to end recipe generation duration in seconds",
				Buckets: []float64{1, 5, 10, 20, 40, 60, 90, 120, 180},
			},
		),
		aiRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ai_requests_total",
				Help: "Total number of AI requests",
			},
			[]string{"model", "status"},
		),
		aiRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ai_request_duration_seconds",
				Help:    "AI request duration in seconds",
				Buckets: []float64{0.5, 1, 2, 5, 10, 30, 60, 120},
			},
			[]string{"model"},
		),
		pantryWritesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pantry_writes_total",
				Help: "Total number of pantry write operations",
			},
			[]string{"operation"},
		),
		usageAppliedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "usage_items_applied_total",
				Help: "Total number of pantry deductions applied from recipes",
			},
		),
		usageMissingTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "usage_items_missing_total",
				Help: "Total number of recipe usage items with no pantry match",
			},
		),

		dbConnectionsActive: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "db_connections_active",
				Help: "Number of active database connections",
			},
		),
		dbConnectionsIdle: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "db_connections_idle",
				Help: "Number of idle database connections",
			},
		),
	}
}

// HTTPMiddleware records request counts and durations per chi route pattern
func (m *MetricsCollector) HTTPMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		// The route pattern is only known after routing, so read it here.
		path := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			path = rctx.RoutePattern()
		}
		statusCode := strconv.Itoa(ww.Status())

		m.httpRequestsTotal.WithLabelValues(r.Method, path, statusCode).Inc()
		m.httpRequestDuration.WithLabelValues(r.Method, path, statusCode).
			Observe(time.Since(start).Seconds())
	})
}

// GenerationRun records one recipe generation run
func (m *MetricsCollector) GenerationRun(status string, duration time.Duration) {
	m.generationRunsTotal.WithLabelValues(status).Inc()
	m.generationDuration.Observe(duration.Seconds())
}

// AIRequest records one model call
func (m *MetricsCollector) AIRequest(model, status string, duration time.Duration) {
	m.aiRequestsTotal.WithLabelValues(model, status).Inc()
	m.aiRequestDuration.WithLabelValues(model).Observe(duration.Seconds())
}

// PantryWrite records one pantry write operation
func (m *MetricsCollector) PantryWrite(operation string) {
	m.pantryWritesTotal.WithLabelValues(operation).Inc()
}

// UsageApplied records the outcome of one apply-usage pass
func (m *MetricsCollector) UsageApplied(updated, missing int) {
	m.usageAppliedTotal.Add(float64(updated))
	m.usageMissingTotal.Add(float64(missing))
}

// UpdateDBConnections updates the connection pool gauges
func (m *MetricsCollector) UpdateDBConnections(active, idle int) {
	m.dbConnectionsActive.Set(float64(active))
	m.dbConnectionsIdle.Set(float64(idle))
}

// Handler returns the Prometheus metrics HTTP handler
func (m *MetricsCollector) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
