// Package metrics provides Prometheus metrics for the configuration engine
// and its HTTP surface.
package metrics

import (
	"time"

	"github.com/avforge/configurator/pkg/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for EngineRunsTotal.
const (
	OutcomeOK           = "ok"
	OutcomePrecondition = "precondition"
	OutcomeError        = "error"
)

var (
	// Engine metrics
	EngineRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "avforge_engine_runs_total",
			Help: "Total number of engine operations by outcome",
		},
		[]string{"operation", "outcome"},
	)

	EngineDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "avforge_engine_duration_seconds",
			Help:    "Time taken by engine operations",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		},
		[]string{"operation"},
	)

	FeedbackItemsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "avforge_feedback_items_total",
			Help: "Feedback items produced by validation and pricing",
		},
		[]string{"category"},
	)

	ValueEngineeringChangesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "avforge_value_engineering_changes_total",
			Help: "Changes proposed by the value-engineering optimizer",
		},
		[]string{"kind"},
	)

	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "avforge_http_requests_total",
			Help: "Total HTTP requests by route and status class",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "avforge_http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

// RecordRun records one engine operation.
func RecordRun(operation, outcome string, duration time.Duration) {
	EngineRunsTotal.WithLabelValues(operation, outcome).Inc()
	EngineDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordFeedback counts items per category.
func RecordFeedback(items []models.FeedbackItem) {
	for _, it := range items {
		FeedbackItemsTotal.WithLabelValues(string(it.Category)).Inc()
	}
}

// RecordChange counts one optimizer change of the given kind.
func RecordChange(kind string) {
	ValueEngineeringChangesTotal.WithLabelValues(kind).Inc()
}

// RecordRequest records an HTTP request. status is collapsed to its class ("2xx").
func RecordRequest(method, route string, status int, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, route, statusClass(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func statusClass(code int) string {
	switch {
	case code >= 500:
		return "5xx"
	case code >= 400:
		return "4xx"
	case code >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}

// Timer is a helper for measuring duration
type Timer struct {
	start time.Time
}

// NewTimer creates a new timer
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// Duration returns the elapsed time since the timer was created
func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}
