package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRegistry holds all Prometheus metrics for the ground-check service
type MetricsRegistry struct {
	// HTTP Metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight *prometheus.GaugeVec

	// Database Metrics
	DBQueriesTotal  *prometheus.CounterVec
	DBQueryDuration *prometheus.HistogramVec

	// Business Metrics
	GroundCheckOpsTotal *prometheus.CounterVec
	ReadingsStoredTotal prometheus.Counter
	RateLimitedTotal    prometheus.Counter
}

// NewMetricsRegistry initializes all metrics on reg. Pass
// prometheus.DefaultRegisterer in production and a fresh
// prometheus.NewRegistry() in tests.
func NewMetricsRegistry(reg prometheus.Registerer) *MetricsRegistry {
	factory := promauto.With(reg)

	return &MetricsRegistry{
		// HTTP Metrics
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "groundcheck_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "groundcheck_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "groundcheck_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"method"},
		),

		// Database Metrics
		DBQueriesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "groundcheck_db_queries_total",
				Help: "Total database operations by operation type and result",
			},
			[]string{"query_type", "result"},
		),
		DBQueryDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "groundcheck_db_query_duration_seconds",
				Help:    "Database operation execution time in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"query_type"},
		),

		// Business Metrics
		GroundCheckOpsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "groundcheck_operations_total",
				Help: "Ground check create/edit/delete operations by result",
			},
			[]string{"operation", "result"},
		),
		ReadingsStoredTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "groundcheck_readings_stored_total",
				Help: "Total non-empty transmitter readings written",
			},
		),
		RateLimitedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "groundcheck_rate_limited_total",
				Help: "Requests rejected by the rate limiter",
			},
		),
	}
}

// ObserveDB records one database operation.
func (m *MetricsRegistry) ObserveDB(queryType string, start time.Time, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.DBQueriesTotal.WithLabelValues(queryType, result).Inc()
	m.DBQueryDuration.WithLabelValues(queryType).Observe(time.Since(start).Seconds())
}

// ObserveOperation records the outcome of a ground check mutation.
func (m *MetricsRegistry) ObserveOperation(operation string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.GroundCheckOpsTotal.WithLabelValues(operation, result).Inc()
}
