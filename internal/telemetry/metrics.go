package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// APIRequestsTotal counts HTTP requests by method, endpoint, and status.
	APIRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "aircheck_api_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "endpoint", "status"})

	// APIRequestDuration observes HTTP request latency.
	APIRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "aircheck_api_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "endpoint", "status"})

	// APIActiveConnections tracks in-flight HTTP requests.
	APIActiveConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "aircheck_api_active_connections",
		Help: "Number of in-flight HTTP requests",
	})

	// ReportsGenerated counts reconciled playlist reports by time slot.
	ReportsGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "aircheck_reports_generated_total",
		Help: "Total number of playlist comparison reports generated",
	}, []string{"time_slot"})

	// AssignmentWrites counts successful day-assignment replacements.
	AssignmentWrites = promauto.NewCounter(prometheus.CounterOpts{
		Name: "aircheck_assignment_writes_total",
		Help: "Total number of successful day assignment replacements",
	})
)
