package observe

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

// ProbeMeta identifies one probe for telemetry purposes.
type ProbeMeta struct {
	Target string // Monitored target name (required)
	Kind   string // Probe kind: startup, liveness or readiness
	Method string // Probe method: exec or http_get
	Detail string // Human-readable method detail (command or URL), log/trace only
}

// SpanName returns the deterministic span name for an attempt of this probe.
// Format: probe.<kind>
func (m ProbeMeta) SpanName() string {
	if m.Kind == "" {
		return "probe"
	}
	return "probe." + m.Kind
}

// Tracer wraps OpenTelemetry tracing with probe-attempt span management.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: EndAttempt must be best-effort and must not panic.
type Tracer interface {
	// StartAttempt starts a new span for a single probe attempt.
	StartAttempt(ctx context.Context, meta ProbeMeta) (context.Context, trace.Span)

	// EndAttempt ends the span, recording any error.
	EndAttempt(span trace.Span, err error)
}

// tracerImpl is the concrete implementation of Tracer.
type tracerImpl struct {
	tracer trace.Tracer
}

// newTracer creates a new Tracer wrapping the given OpenTelemetry tracer.
func newTracer(t trace.Tracer) Tracer {
	return &tracerImpl{tracer: t}
}

// StartAttempt starts a new span with probe metadata as attributes.
func (t *tracerImpl) StartAttempt(ctx context.Context, meta ProbeMeta) (context.Context, trace.Span) {
	attrs := []attribute.KeyValue{
		attribute.String("probe.target", meta.Target),
		attribute.String("probe.kind", meta.Kind),
		attribute.String("probe.method", meta.Method),
	}
	if meta.Detail != "" {
		attrs = append(attrs, attribute.String("probe.detail", meta.Detail))
	}

	ctx, span := t.tracer.Start(ctx, meta.SpanName(),
		trace.WithAttributes(attrs...),
		trace.WithSpanKind(trace.SpanKindInternal),
	)

	return ctx, span
}

// EndAttempt ends the span and records the error status if present.
func (t *tracerImpl) EndAttempt(span trace.Span, err error) {
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		span.RecordError(err)
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// noopTracer is a tracer that does nothing.
type noopTracer struct {
	noop trace.Tracer
}

// newNoopTracer creates a no-op tracer.
func newNoopTracer() Tracer {
	return &noopTracer{
		noop: tracenoop.NewTracerProvider().Tracer("noop"),
	}
}

func (t *noopTracer) StartAttempt(ctx context.Context, meta ProbeMeta) (context.Context, trace.Span) {
	return t.noop.Start(ctx, meta.SpanName())
}

func (t *noopTracer) EndAttempt(span trace.Span, err error) {
	span.End()
}
