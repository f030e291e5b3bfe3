// Package telemetry wires OpenTelemetry tracing and metrics for the todo
// service. When disabled every instrument is a no-op.
package telemetry

import (
	"context"
	"errors"
	"fmt"

	"github.com/phrazzld/todo-api/internal/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"
)

const (
	// ScopeName is the instrumentation scope for traces and metrics.
	ScopeName = "github.com/phrazzld/todo-api"

	// DefaultServiceName is reported when no service name is configured.
	DefaultServiceName = "todo-api"
)

// Provider bundles the tracer and meter used by the HTTP layer.
type Provider struct {
	Tracer   trace.Tracer
	Meter    metric.Meter
	shutdown func(context.Context) error
}

// Init builds a Provider from the telemetry configuration.
// The returned Provider must be shut down on exit.
func Init(ctx context.Context, cfg config.TelemetryConfig) (*Provider, error) {
	if !cfg.Enabled {
		return NewNoopProvider(), nil
	}

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = DefaultServiceName
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceName(serviceName)),
	)
	if err != nil {
		return nil, fmt.Errorf("create resource: %w", err)
	}

	exporter, err := newSpanExporter(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)

	mp := sdkmetric.NewMeterProvider(sdkmetric.WithResource(res))

	return &Provider{
		Tracer: tp.Tracer(ScopeName),
		Meter:  mp.Meter(ScopeName),
		shutdown: func(ctx context.Context) error {
			return errors.Join(tp.Shutdown(ctx), mp.Shutdown(ctx))
		},
	}, nil
}

// NewNoopProvider returns a Provider whose tracer and meter discard everything.
func NewNoopProvider() *Provider {
	return &Provider{
		Tracer:   nooptrace.NewTracerProvider().Tracer(ScopeName),
		Meter:    noop.NewMeterProvider().Meter(ScopeName),
		shutdown: func(context.Context) error { return nil },
	}
}

// Shutdown flushes pending spans and stops the providers.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p == nil || p.shutdown == nil {
		return nil
	}
	return p.shutdown(ctx)
}

func newSpanExporter(ctx context.Context, cfg config.TelemetryConfig) (sdktrace.SpanExporter, error) {
	switch cfg.Exporter {
	case "none", "":
		return discardExporter{}, nil
	case "stdout":
		return stdouttrace.New()
	case "otlp-http":
		endpoint := cfg.Endpoint
		if endpoint == "" {
			endpoint = "localhost:4318"
		}
		return otlptracehttp.New(ctx,
			otlptracehttp.WithEndpoint(endpoint),
			otlptracehttp.WithInsecure(),
		)
	default:
		return nil, fmt.Errorf("unknown exporter: %s (supported: none, stdout, otlp-http)", cfg.Exporter)
	}
}

// discardExporter drops every span.
type discardExporter struct{}

func (discardExporter) ExportSpans(context.Context, []sdktrace.ReadOnlySpan) error { return nil }
func (discardExporter) Shutdown(context.Context) error                            { return nil }
