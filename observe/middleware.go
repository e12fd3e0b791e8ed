package observe

import (
	"context"
	"time"
)

// AttemptFunc is the signature for a single probe attempt.
type AttemptFunc func(ctx context.Context) error

// Middleware wraps probe attempts with observability (tracing, metrics, logging).
//
// Contract:
//   - Concurrency: Attempt is safe for concurrent use.
//   - Context: propagates context through tracing spans.
//   - Errors: errors from the wrapped attempt are recorded and propagated unchanged.
type Middleware struct {
	tracer  Tracer
	metrics Metrics
	logger  Logger
}

// NewMiddleware creates a new Middleware with the given observability components.
func NewMiddleware(tracer Tracer, metrics Metrics, logger Logger) *Middleware {
	return &Middleware{
		tracer:  tracer,
		metrics: metrics,
		logger:  logger,
	}
}

// Attempt runs one probe attempt under a span, recording metrics and logging
// the outcome. The attempt's error drives the caller's debounce machine and is
// returned unchanged.
func (m *Middleware) Attempt(ctx context.Context, meta ProbeMeta, fn AttemptFunc) error {
	ctx, span := m.tracer.StartAttempt(ctx, meta)

	start := time.Now()
	err := fn(ctx)
	duration := time.Since(start)

	m.tracer.EndAttempt(span, err)
	m.metrics.RecordAttempt(ctx, meta, duration, err)

	logger := m.logger.WithProbe(meta)
	fields := []Field{
		{Key: "duration_ms", Value: float64(duration.Milliseconds())},
	}

	if err != nil {
		fields = append(fields, Field{Key: "error", Value: err.Error()})
		logger.Warn(ctx, "probe attempt failed", fields...)
	} else {
		logger.Debug(ctx, "probe attempt ok", fields...)
	}

	return err
}

// Transition records a confirmed Success/Failure transition for a probe.
func (m *Middleware) Transition(ctx context.Context, meta ProbeMeta, status string) {
	m.metrics.RecordTransition(ctx, meta, status)
	m.logger.WithProbe(meta).Info(ctx, "probe transition", Field{Key: "status", Value: status})
}

// MiddlewareFromObserver creates a Middleware from an Observer.
// This is a convenience function for common use cases.
func MiddlewareFromObserver(obs Observer) (*Middleware, error) {
	if obs == nil {
		return nil, ErrNilObserver
	}

	tracer := newTracer(obs.Tracer())

	metrics, err := newMetrics(obs.Meter())
	if err != nil {
		return nil, err
	}

	return NewMiddleware(tracer, metrics, obs.Logger()), nil
}

// NoopMiddleware returns a Middleware that records nothing.
func NoopMiddleware() *Middleware {
	return NewMiddleware(newNoopTracer(), &noopMetrics{}, &noopLogger{})
}
