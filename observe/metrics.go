package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics records probe activity.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: implementations must not panic.
type Metrics interface {
	// RecordAttempt records a single probe attempt with its duration and outcome.
	RecordAttempt(ctx context.Context, meta ProbeMeta, duration time.Duration, err error)

	// RecordTransition records a confirmed state transition emitted by a watcher.
	RecordTransition(ctx context.Context, meta ProbeMeta, status string)
}

// metricsImpl is the concrete implementation of Metrics.
type metricsImpl struct {
	meter           metric.Meter
	attemptCount    metric.Int64Counter
	failureCount    metric.Int64Counter
	transitionCount metric.Int64Counter
	durationHist    metric.Float64Histogram
}

// newMetrics creates a new Metrics instance with the given meter.
func newMetrics(meter metric.Meter) (*metricsImpl, error) {
	attemptCount, err := meter.Int64Counter(
		"probe.attempts",
		metric.WithDescription("Total number of probe attempts"),
		metric.WithUnit("{attempt}"),
	)
	if err != nil {
		return nil, err
	}

	failureCount, err := meter.Int64Counter(
		"probe.failures",
		metric.WithDescription("Total number of failed probe attempts"),
		metric.WithUnit("{attempt}"),
	)
	if err != nil {
		return nil, err
	}

	transitionCount, err := meter.Int64Counter(
		"probe.transitions",
		metric.WithDescription("Total number of confirmed probe state transitions"),
		metric.WithUnit("{transition}"),
	)
	if err != nil {
		return nil, err
	}

	durationHist, err := meter.Float64Histogram(
		"probe.attempt.duration_ms",
		metric.WithDescription("Probe attempt duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &metricsImpl{
		meter:           meter,
		attemptCount:    attemptCount,
		failureCount:    failureCount,
		transitionCount: transitionCount,
		durationHist:    durationHist,
	}, nil
}

func (m *metricsImpl) attrs(meta ProbeMeta) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("probe.target", meta.Target),
		attribute.String("probe.kind", meta.Kind),
		attribute.String("probe.method", meta.Method),
	}
}

// RecordAttempt records metrics for a single probe attempt.
func (m *metricsImpl) RecordAttempt(ctx context.Context, meta ProbeMeta, duration time.Duration, err error) {
	opt := metric.WithAttributes(m.attrs(meta)...)

	m.attemptCount.Add(ctx, 1, opt)
	if err != nil {
		m.failureCount.Add(ctx, 1, opt)
	}
	m.durationHist.Record(ctx, float64(duration.Milliseconds()), opt)
}

// RecordTransition records a confirmed Success/Failure transition.
func (m *metricsImpl) RecordTransition(ctx context.Context, meta ProbeMeta, status string) {
	attrs := append(m.attrs(meta), attribute.String("probe.status", status))
	m.transitionCount.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// noopMetrics is a metrics implementation that does nothing.
type noopMetrics struct{}

func (m *noopMetrics) RecordAttempt(ctx context.Context, meta ProbeMeta, duration time.Duration, err error) {
}

func (m *noopMetrics) RecordTransition(ctx context.Context, meta ProbeMeta, status string) {}
