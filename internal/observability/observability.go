// Package observability wires the logger, the prometheus registry, and the
// standalone metrics listener. Everything here is injected; nothing is a
// package-level mutable global.
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

	"github.com/Panther-Scouting/reef-scout/app/shared/attr"
)

// Observability bundles the logger, metrics, and tracer handed to modules.
type Observability struct {
	Logger   *slog.Logger
	Registry *prometheus.Registry
	Metrics  ServiceMetrics
	Tracer   trace.Tracer

	metricsServer *http.Server
}

// New builds the observability stack for the given environment. Development
// gets a human-readable text handler, everything else structured JSON.
func New(environment string) *Observability {
	var handler slog.Handler
	if environment == "development" {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	} else {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	logger := slog.New(handler).With(attr.String("service", "reef-scout"))

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Observability{
		Logger:   logger,
		Registry: registry,
		Metrics:  NewServiceMetrics(registry),
		Tracer:   otel.Tracer("reef-scout"),
	}
}

// StartMetricsServer serves /metrics on its own address. A blank address
// disables the listener.
func (o *Observability) StartMetricsServer(ctx context.Context, address string) {
	if address == "" {
		return
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(o.Registry, promhttp.HandlerOpts{}))

	o.metricsServer = &http.Server{
		Addr:              address,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		o.Logger.InfoContext(ctx, "Metrics server listening", attr.String("address", address))
		if err := o.metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			o.Logger.ErrorContext(ctx, "Metrics server failed", attr.Error(err))
		}
	}()
}

// Shutdown stops the metrics listener if one was started.
func (o *Observability) Shutdown(ctx context.Context) error {
	if o.metricsServer == nil {
		return nil
	}
	return o.metricsServer.Shutdown(ctx)
}
