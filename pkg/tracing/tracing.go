package tracing

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.39.0"
)

// Config holds tracer provider configuration.
type Config struct {
	// ServiceName is recorded as service.name on every exported span.
	ServiceName string

	// Mode selects the exporter transport.
	Mode Mode

	// OTLPGRPCEndpoint is the collector endpoint for ModeOTLPGRPC
	// (host:port, no scheme).
	OTLPGRPCEndpoint string

	// OTLPHTTPEndpoint is the collector endpoint for ModeOTLPHTTP
	// (host:port, no scheme).
	OTLPHTTPEndpoint string
}

// Provider owns the installed tracer provider and its exporter.
type Provider struct {
	tp   *sdktrace.TracerProvider
	mode Mode
}

// Setup builds the exporter selected by cfg.Mode, installs a global tracer
// provider around it, and sets the W3C trace context propagator. It must be
// called once at process start, before the HTTP server begins serving.
func Setup(ctx context.Context, cfg Config) (*Provider, error) {
	exp, err := newExporter(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create %s exporter: %w", cfg.Mode, err)
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(cfg.ServiceName),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("build resource: %w", err)
	}

	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	}
	if exp != nil {
		opts = append(opts, sdktrace.WithBatcher(exp))
	}
	tp := sdktrace.NewTracerProvider(opts...)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return &Provider{tp: tp, mode: cfg.Mode}, nil
}

// Mode returns the exporter mode the provider was built with.
func (p *Provider) Mode() Mode {
	return p.mode
}

// Shutdown flushes pending spans and releases exporter resources.
func (p *Provider) Shutdown(ctx context.Context) error {
	return p.tp.Shutdown(ctx)
}
