// Package tracing wires the OpenTelemetry SDK into tracewire.
//
// It installs a global tracer provider with a batch span processor, a
// resource carrying the configured service name, and the W3C Trace Context
// propagator. Span creation, batching and export are entirely the SDK's job;
// this package only selects and constructs the exporter and exposes small
// helpers for header-based context propagation.
//
// Exporter selection is an enumerated mode, so adding a transport is a
// closed extension point:
//
//   - ModeOTLPGRPC (default): OTLP over gRPC to a collector (port 4317)
//   - ModeOTLPHTTP: OTLP over HTTP to a collector (port 4318)
//   - ModeStdout: pretty-printed spans on stdout, for local debugging
//   - ModeNone: no exporter; propagation still works
//
// Usage:
//
//	provider, err := tracing.Setup(ctx, tracing.Config{
//	    ServiceName: "app-a",
//	    Mode:        tracing.ModeOTLPGRPC,
//	    OTLPGRPCEndpoint: "jaeger-collector:4317",
//	})
//	defer provider.Shutdown(ctx)
//
// Context propagation:
//
//	// Inject the active trace context into outgoing headers.
//	tracing.Inject(ctx, req.Header)
//
//	// Extract trace context from incoming headers.
//	ctx = tracing.Extract(ctx, r.Header)
package tracing
