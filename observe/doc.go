// Package observe provides structured logging, tracing and metrics for the
// probe sidecar.
//
// Every probe attempt runs under an OpenTelemetry span and feeds attempt and
// transition counters; outcomes are logged through a level-filtered JSON
// logger. The Observer bundles the three primitives and owns provider
// shutdown.
//
// # Basic Usage
//
//	obs, err := observe.NewObserver(ctx, observe.Config{
//	    ServiceName: "probewatch",
//	    Tracing:     observe.TracingConfig{Enabled: true, Exporter: "stdout", SamplePct: 1.0},
//	    Metrics:     observe.MetricsConfig{Enabled: true, Exporter: "prometheus"},
//	    Logging:     observe.LoggingConfig{Enabled: true, Level: "info"},
//	})
//	if err != nil {
//	    // fatal at process startup
//	}
//	defer obs.Shutdown(ctx)
//
// # Instrumenting Attempts
//
// Middleware wraps a single attempt with span, metrics and log output:
//
//	mw, _ := observe.MiddlewareFromObserver(obs)
//	err := mw.Attempt(ctx, meta, func(ctx context.Context) error {
//	    return doProbe(ctx)
//	})
//
// Use Noop() and NoopMiddleware() in tests.
package observe
