package tracing

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		input   string
		want    Mode
		wantErr bool
	}{
		{"", ModeOTLPGRPC, false},
		{"otlp-grpc", ModeOTLPGRPC, false},
		{"otlp-http", ModeOTLPHTTP, false},
		{"stdout", ModeStdout, false},
		{"none", ModeNone, false},
		{"thrift-agent", "", true},
		{"grpc", "", true},
		{"OTLP-GRPC", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMode(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewExporter(t *testing.T) {
	ctx := context.Background()

	t.Run("stdout builds an exporter", func(t *testing.T) {
		exp, err := newExporter(ctx, Config{Mode: ModeStdout})
		require.NoError(t, err)
		assert.NotNil(t, exp)
	})

	t.Run("none builds no exporter", func(t *testing.T) {
		exp, err := newExporter(ctx, Config{Mode: ModeNone})
		require.NoError(t, err)
		assert.Nil(t, exp)
	})

	// The OTLP constructors do not dial until the first export, so building
	// them against an unreachable endpoint must succeed.
	t.Run("otlp-grpc constructs lazily", func(t *testing.T) {
		exp, err := newExporter(ctx, Config{Mode: ModeOTLPGRPC, OTLPGRPCEndpoint: "localhost:1"})
		require.NoError(t, err)
		require.NotNil(t, exp)
		_ = exp.Shutdown(ctx)
	})

	t.Run("otlp-http constructs lazily", func(t *testing.T) {
		exp, err := newExporter(ctx, Config{Mode: ModeOTLPHTTP, OTLPHTTPEndpoint: "localhost:1"})
		require.NoError(t, err)
		require.NotNil(t, exp)
		_ = exp.Shutdown(ctx)
	})

	t.Run("unknown mode errors", func(t *testing.T) {
		_, err := newExporter(ctx, Config{Mode: Mode("thrift-collector")})
		assert.Error(t, err)
	})
}

func TestSetupAndPropagation(t *testing.T) {
	ctx := context.Background()

	provider, err := Setup(ctx, Config{ServiceName: "test-app", Mode: ModeNone})
	require.NoError(t, err)
	defer func() { _ = provider.Shutdown(ctx) }()

	assert.Equal(t, ModeNone, provider.Mode())

	t.Run("inject and extract round-trip", func(t *testing.T) {
		spanCtx, span := otel.Tracer("test").Start(ctx, "op")
		defer span.End()

		headers := make(http.Header)
		Inject(spanCtx, headers)

		require.NotEmpty(t, headers.Get("Traceparent"), "traceparent header should be injected")

		extracted := Extract(context.Background(), headers)
		remote := trace.SpanContextFromContext(extracted)
		assert.True(t, remote.IsValid())
		assert.Equal(t, span.SpanContext().TraceID(), remote.TraceID())
		assert.Equal(t, span.SpanContext().SpanID(), remote.SpanID())
	})

	t.Run("inject without active trace is a no-op", func(t *testing.T) {
		headers := make(http.Header)
		Inject(context.Background(), headers)
		assert.Empty(t, headers)
	})

	t.Run("extract without headers returns context unchanged", func(t *testing.T) {
		extracted := Extract(context.Background(), make(http.Header))
		assert.False(t, trace.SpanContextFromContext(extracted).IsValid())
	})
}
