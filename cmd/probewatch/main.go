// Command probewatch is a health-probe sidecar. It polls a fleet of targets
// with exec and http_get probes, debounces the raw outcomes through the
// configured thresholds, and serves the aggregate results over HTTP:
// /live answers 200 or 500, /ready answers 200 or 503, /targets reports the
// per-target breakdown.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/jonwraymond/probewatch/config"
	"github.com/jonwraymond/probewatch/health"
	"github.com/jonwraymond/probewatch/monitor"
	"github.com/jonwraymond/probewatch/observe"
	"github.com/jonwraymond/probewatch/probe"
	"github.com/jonwraymond/probewatch/transport"
)

// version is stamped by the release build via -ldflags.
var version = "dev"

// targetFlags collects repeated --target values.
type targetFlags []string

func (t *targetFlags) String() string { return fmt.Sprint(*t) }

func (t *targetFlags) Set(v string) error {
	*t = append(*t, v)
	return nil
}

func main() {
	var (
		targets         targetFlags
		bind            = flag.String("bind", ":8080", "address for the health endpoints")
		configPath      = flag.String("config", "", "YAML file with target definitions")
		logLevel        = flag.String("log-level", "info", "debug|info|warn|error")
		traceExporter   = flag.String("trace-exporter", "", "otlp|stdout|none (empty disables tracing)")
		traceSamplePct  = flag.Float64("trace-sample", 1.0, "trace sampling ratio, 0.0-1.0")
		metricsExporter = flag.String("metrics-exporter", "", "otlp|prometheus|stdout|none (empty disables metrics)")
		caFile          = flag.String("ca-file", "", "extra PEM CA bundle for https probes")
		insecure        = flag.Bool("insecure-skip-verify", false, "skip server certificate verification on https probes")
	)
	flag.Var(&targets, "target", "single-target JSON definition (repeatable)")
	flag.Parse()

	file, err := loadFile(*configPath, targets)
	if err != nil {
		fatal(err)
	}
	file.Normalize()
	if err := file.Validate(); err != nil {
		fatal(err)
	}
	fleet, err := file.Build()
	if err != nil {
		fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	obs, err := observe.NewObserver(ctx, observe.Config{
		ServiceName: "probewatch",
		Version:     version,
		Tracing: observe.TracingConfig{
			Enabled:   *traceExporter != "",
			Exporter:  *traceExporter,
			SamplePct: *traceSamplePct,
		},
		Metrics: observe.MetricsConfig{
			Enabled:  *metricsExporter != "",
			Exporter: *metricsExporter,
		},
		Logging: observe.LoggingConfig{
			Enabled: true,
			Level:   *logLevel,
		},
	})
	if err != nil {
		fatal(err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := obs.Shutdown(shutdownCtx); err != nil {
			fmt.Fprintln(os.Stderr, "probewatch: telemetry shutdown:", err)
		}
	}()
	logger := obs.Logger()

	client, err := transport.NewClient(transport.Config{
		CAFile:             *caFile,
		InsecureSkipVerify: *insecure,
	})
	if err != nil {
		fatal(err)
	}
	executor, err := probe.NewExecutor(probe.ExecutorConfig{
		Client:   client,
		Observer: obs,
	})
	if err != nil {
		fatal(err)
	}
	set, err := monitor.NewSet(monitor.Config{
		Targets:   fleet,
		Attempter: executor,
		Observer:  obs,
	})
	if err != nil {
		fatal(err)
	}

	mux := http.NewServeMux()
	health.RegisterHandlers(mux, set)
	if *metricsExporter == "prometheus" {
		mux.Handle("/metrics", promhttp.Handler())
	}
	server := &http.Server{
		Addr:              *bind,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info(ctx, "probewatch starting",
		observe.Field{Key: "bind", Value: *bind},
		observe.Field{Key: "targets", Value: len(fleet)},
		observe.Field{Key: "version", Value: version},
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return set.Run(ctx)
	})
	g.Go(func() error {
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error(context.Background(), "probewatch exiting", observe.Field{Key: "error", Value: err.Error()})
		os.Exit(1)
	}
	logger.Info(context.Background(), "probewatch stopped")
}

// loadFile merges the YAML file (when given) with any --target JSON values.
func loadFile(path string, targets targetFlags) (*config.File, error) {
	file := &config.File{}
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		file = loaded
	}
	for _, raw := range targets {
		spec, err := config.ParseTarget(raw)
		if err != nil {
			return nil, err
		}
		file.Targets = append(file.Targets, spec)
	}
	return file, nil
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "probewatch:", err)
	os.Exit(1)
}
