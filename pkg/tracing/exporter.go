package tracing

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Mode selects the exporter transport used to ship spans to a collector.
type Mode string

// Exporter modes.
const (
	// ModeOTLPGRPC exports spans over OTLP gRPC (collector port 4317).
	ModeOTLPGRPC Mode = "otlp-grpc"
	// ModeOTLPHTTP exports spans over OTLP HTTP (collector port 4318).
	ModeOTLPHTTP Mode = "otlp-http"
	// ModeStdout pretty-prints spans to stdout.
	ModeStdout Mode = "stdout"
	// ModeNone installs a provider without an exporter.
	ModeNone Mode = "none"
)

// ParseMode parses an exporter mode string.
// An empty string selects the default, ModeOTLPGRPC.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "":
		return ModeOTLPGRPC, nil
	case ModeOTLPGRPC, ModeOTLPHTTP, ModeStdout, ModeNone:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("unknown exporter mode %q (valid: otlp-grpc, otlp-http, stdout, none)", s)
	}
}

// Modes returns all valid exporter modes.
func Modes() []Mode {
	return []Mode{ModeOTLPGRPC, ModeOTLPHTTP, ModeStdout, ModeNone}
}

// newExporter constructs the span exporter matching the configured mode.
// ModeNone returns a nil exporter; the caller installs a provider without a
// span processor in that case.
func newExporter(ctx context.Context, cfg Config) (sdktrace.SpanExporter, error) {
	switch cfg.Mode {
	case ModeOTLPGRPC:
		return otlptracegrpc.New(ctx,
			otlptracegrpc.WithEndpoint(cfg.OTLPGRPCEndpoint),
			otlptracegrpc.WithInsecure(),
		)
	case ModeOTLPHTTP:
		return otlptracehttp.New(ctx,
			otlptracehttp.WithEndpoint(cfg.OTLPHTTPEndpoint),
			otlptracehttp.WithInsecure(),
		)
	case ModeStdout:
		return stdouttrace.New(stdouttrace.WithPrettyPrint())
	case ModeNone:
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown exporter mode %q", cfg.Mode)
	}
}
