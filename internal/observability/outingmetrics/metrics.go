// Package outingmetrics defines the metrics surface of the outing module with
// prometheus and no-op implementations.
package outingmetrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// OutingMetrics records service operation and handler outcomes.
type OutingMetrics interface {
	RecordOperationAttempt(ctx context.Context, operation string)
	RecordOperationSuccess(ctx context.Context, operation string)
	RecordOperationFailure(ctx context.Context, operation string)
	RecordOperationDuration(ctx context.Context, operation string, duration time.Duration)
	RecordHandlerAttempt(handler string)
	RecordHandlerSuccess(handler string)
	RecordHandlerFailure(handler string)
	RecordHandlerDuration(handler string, seconds float64)
	RecordLeaderboardBuild(ctx context.Context, format string, entries int)
}

type prometheusMetrics struct {
	operationAttempts  *prometheus.CounterVec
	operationSuccesses *prometheus.CounterVec
	operationFailures  *prometheus.CounterVec
	operationDuration  *prometheus.HistogramVec
	handlerAttempts    *prometheus.CounterVec
	handlerSuccesses   *prometheus.CounterVec
	handlerFailures    *prometheus.CounterVec
	handlerDuration    *prometheus.HistogramVec
	leaderboardEntries *prometheus.HistogramVec
}

// NewPrometheusMetrics registers the outing module collectors on the shared
// registry.
func NewPrometheusMetrics(registry prometheus.Registerer) OutingMetrics {
	m := &prometheusMetrics{
		operationAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "outing_operation_attempts_total",
			Help: "Service operation attempts by operation name.",
		}, []string{"operation"}),
		operationSuccesses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "outing_operation_successes_total",
			Help: "Service operation successes by operation name.",
		}, []string{"operation"}),
		operationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "outing_operation_failures_total",
			Help: "Service operation failures by operation name.",
		}, []string{"operation"}),
		operationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "outing_operation_duration_seconds",
			Help:    "Service operation duration by operation name.",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
		handlerAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "outing_handler_attempts_total",
			Help: "Event handler attempts by handler name.",
		}, []string{"handler"}),
		handlerSuccesses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "outing_handler_successes_total",
			Help: "Event handler successes by handler name.",
		}, []string{"handler"}),
		handlerFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "outing_handler_failures_total",
			Help: "Event handler failures by handler name.",
		}, []string{"handler"}),
		handlerDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "outing_handler_duration_seconds",
			Help:    "Event handler duration by handler name.",
			Buckets: prometheus.DefBuckets,
		}, []string{"handler"}),
		leaderboardEntries: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "outing_leaderboard_entries",
			Help:    "Entries per built leaderboard by scoring format.",
			Buckets: []float64{0, 4, 8, 16, 32, 64, 128},
		}, []string{"format"}),
	}

	registry.MustRegister(
		m.operationAttempts, m.operationSuccesses, m.operationFailures, m.operationDuration,
		m.handlerAttempts, m.handlerSuccesses, m.handlerFailures, m.handlerDuration,
		m.leaderboardEntries,
	)
	return m
}

func (m *prometheusMetrics) RecordOperationAttempt(_ context.Context, operation string) {
	m.operationAttempts.WithLabelValues(operation).Inc()
}

func (m *prometheusMetrics) RecordOperationSuccess(_ context.Context, operation string) {
	m.operationSuccesses.WithLabelValues(operation).Inc()
}

func (m *prometheusMetrics) RecordOperationFailure(_ context.Context, operation string) {
	m.operationFailures.WithLabelValues(operation).Inc()
}

func (m *prometheusMetrics) RecordOperationDuration(_ context.Context, operation string, duration time.Duration) {
	m.operationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

func (m *prometheusMetrics) RecordHandlerAttempt(handler string) {
	m.handlerAttempts.WithLabelValues(handler).Inc()
}

func (m *prometheusMetrics) RecordHandlerSuccess(handler string) {
	m.handlerSuccesses.WithLabelValues(handler).Inc()
}

func (m *prometheusMetrics) RecordHandlerFailure(handler string) {
	m.handlerFailures.WithLabelValues(handler).Inc()
}

func (m *prometheusMetrics) RecordHandlerDuration(handler string, seconds float64) {
	m.handlerDuration.WithLabelValues(handler).Observe(seconds)
}

func (m *prometheusMetrics) RecordLeaderboardBuild(_ context.Context, format string, entries int) {
	m.leaderboardEntries.WithLabelValues(format).Observe(float64(entries))
}

// NoOpMetrics satisfies OutingMetrics for tests.
type NoOpMetrics struct{}

func (NoOpMetrics) RecordOperationAttempt(context.Context, string)                {}
func (NoOpMetrics) RecordOperationSuccess(context.Context, string)                {}
func (NoOpMetrics) RecordOperationFailure(context.Context, string)                {}
func (NoOpMetrics) RecordOperationDuration(context.Context, string, time.Duration) {}
func (NoOpMetrics) RecordHandlerAttempt(string)                                   {}
func (NoOpMetrics) RecordHandlerSuccess(string)                                   {}
func (NoOpMetrics) RecordHandlerFailure(string)                                   {}
func (NoOpMetrics) RecordHandlerDuration(string, float64)                         {}
func (NoOpMetrics) RecordLeaderboardBuild(context.Context, string, int)           {}
