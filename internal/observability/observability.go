// Package observability wires the logger, tracer, and metrics endpoint used
// by every module.
package observability

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// Config carries the observability settings from the app config.
type Config struct {
	ServiceName    string
	Environment    string
	MetricsAddress string
}

// Observability bundles the logger, tracer, and prometheus registry handed to
// modules at wiring time.
type Observability struct {
	Logger   *slog.Logger
	Tracer   trace.Tracer
	Registry *prometheus.Registry

	metricsServer *http.Server
}

// Init builds the shared observability stack. The tracer comes from the
// globally configured otel provider, so deployments without a collector get
// no-op spans for free.
func Init(cfg Config) *Observability {
	level := slog.LevelInfo
	if cfg.Environment == "development" {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})).
		With(slog.String("service", cfg.ServiceName), slog.String("env", cfg.Environment))

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Observability{
		Logger:   logger,
		Tracer:   otel.Tracer(cfg.ServiceName),
		Registry: registry,
	}
}

// ServeMetrics exposes the registry on /metrics at the configured address.
// An empty address disables the endpoint.
func (o *Observability) ServeMetrics(addr string) {
	if addr == "" {
		return
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(o.Registry, promhttp.HandlerOpts{}))

	o.metricsServer = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := o.metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			o.Logger.Error("metrics server stopped", slog.Any("error", err))
		}
	}()
}

// Shutdown stops the metrics endpoint if it was started.
func (o *Observability) Shutdown(ctx context.Context) error {
	if o.metricsServer == nil {
		return nil
	}
	return o.metricsServer.Shutdown(ctx)
}
