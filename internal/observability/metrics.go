package observability

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ServiceMetrics records per-operation counters and durations for an
// application service. Services receive the interface so tests can pass a noop.
type ServiceMetrics interface {
	RecordOperationAttempt(ctx context.Context, operation, service string)
	RecordOperationSuccess(ctx context.Context, operation, service string)
	RecordOperationFailure(ctx context.Context, operation, service string)
	RecordOperationDuration(ctx context.Context, operation, service string, duration time.Duration)
}

type prometheusServiceMetrics struct {
	attempts  *prometheus.CounterVec
	successes *prometheus.CounterVec
	failures  *prometheus.CounterVec
	durations *prometheus.HistogramVec
}

// NewServiceMetrics registers the operation metric vectors on the registry.
func NewServiceMetrics(registry *prometheus.Registry) ServiceMetrics {
	labels := []string{"operation", "service"}

	m := &prometheusServiceMetrics{
		attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "reefscout_operation_attempts_total",
			Help: "Service operations started.",
		}, labels),
		successes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "reefscout_operation_successes_total",
			Help: "Service operations completed without error.",
		}, labels),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "reefscout_operation_failures_total",
			Help: "Service operations that returned an error.",
		}, labels),
		durations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "reefscout_operation_duration_seconds",
			Help:    "Service operation latency.",
			Buckets: prometheus.DefBuckets,
		}, labels),
	}

	registry.MustRegister(m.attempts, m.successes, m.failures, m.durations)
	return m
}

func (m *prometheusServiceMetrics) RecordOperationAttempt(_ context.Context, operation, service string) {
	m.attempts.WithLabelValues(operation, service).Inc()
}

func (m *prometheusServiceMetrics) RecordOperationSuccess(_ context.Context, operation, service string) {
	m.successes.WithLabelValues(operation, service).Inc()
}

func (m *prometheusServiceMetrics) RecordOperationFailure(_ context.Context, operation, service string) {
	m.failures.WithLabelValues(operation, service).Inc()
}

func (m *prometheusServiceMetrics) RecordOperationDuration(_ context.Context, operation, service string, duration time.Duration) {
	m.durations.WithLabelValues(operation, service).Observe(duration.Seconds())
}

type noopMetrics struct{}

// NewNoopMetrics returns metrics that record nothing. Used in tests.
func NewNoopMetrics() ServiceMetrics { return noopMetrics{} }

func (noopMetrics) RecordOperationAttempt(context.Context, string, string)                 {}
func (noopMetrics) RecordOperationSuccess(context.Context, string, string)                 {}
func (noopMetrics) RecordOperationFailure(context.Context, string, string)                 {}
func (noopMetrics) RecordOperationDuration(context.Context, string, string, time.Duration) {}
