package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"go.opentelemetry.io/otel/trace"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
	}{
		{"debug", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"warning", LevelWarn},
		{"error", LevelError},

		{"DEBUG", LevelDebug},
		{"ERROR", LevelError},
		{"dEbUg", LevelDebug},

		// Empty string defaults to Info
		{"", LevelInfo},

		// Unrecognized defaults to Info
		{"trace", LevelInfo},
		{"fatal", LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := ParseLevel(tt.input)
			if result != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	if ParseFormat("json") != FormatJSON {
		t.Error("json should parse to FormatJSON")
	}
	if ParseFormat("JSON") != FormatJSON {
		t.Error("JSON should parse to FormatJSON")
	}
	if ParseFormat("text") != FormatText {
		t.Error("text should parse to FormatText")
	}
	if ParseFormat("bogus") != FormatText {
		t.Error("unknown format should default to FormatText")
	}
}

func TestNew(t *testing.T) {
	t.Run("json format produces json lines", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(Config{Level: LevelInfo, Format: FormatJSON, Output: &buf})

		logger.Info("hello", "port", 8000)

		if !strings.Contains(buf.String(), `"msg":"hello"`) {
			t.Errorf("expected JSON output, got %q", buf.String())
		}
	})

	t.Run("level filters lower records", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(Config{Level: LevelError, Format: FormatText, Output: &buf})

		logger.Info("dropped")
		logger.Error("kept")

		out := buf.String()
		if strings.Contains(out, "dropped") {
			t.Error("info record should be filtered at error level")
		}
		if !strings.Contains(out, "kept") {
			t.Error("error record should be emitted")
		}
	})
}

func TestCorrelationHandler(t *testing.T) {
	newSpanContext := func(t *testing.T) trace.SpanContext {
		t.Helper()
		traceID, err := trace.TraceIDFromHex("0af7651916cd43dd8448eb211c80319c")
		if err != nil {
			t.Fatal(err)
		}
		spanID, err := trace.SpanIDFromHex("b7ad6b7169203331")
		if err != nil {
			t.Fatal(err)
		}
		return trace.NewSpanContext(trace.SpanContextConfig{
			TraceID:    traceID,
			SpanID:     spanID,
			TraceFlags: trace.FlagsSampled,
		})
	}

	t.Run("adds trace ids from context", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(Config{Level: LevelInfo, Format: FormatJSON, Output: &buf, Correlate: true})

		ctx := trace.ContextWithSpanContext(context.Background(), newSpanContext(t))
		logger.InfoContext(ctx, "traced")

		out := buf.String()
		if !strings.Contains(out, "0af7651916cd43dd8448eb211c80319c") {
			t.Errorf("expected trace_id in output, got %q", out)
		}
		if !strings.Contains(out, "b7ad6b7169203331") {
			t.Errorf("expected span_id in output, got %q", out)
		}
	})

	t.Run("no trace context passes through", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(Config{Level: LevelInfo, Format: FormatJSON, Output: &buf, Correlate: true})

		logger.Info("untraced")

		if strings.Contains(buf.String(), "trace_id") {
			t.Error("trace_id should not appear without an active span")
		}
	})

	t.Run("WithAttrs preserves correlation", func(t *testing.T) {
		var buf bytes.Buffer
		base := NewCorrelationHandler(slog.NewJSONHandler(&buf, nil))
		logger := slog.New(base).With("component", "server")

		ctx := trace.ContextWithSpanContext(context.Background(), newSpanContext(t))
		logger.InfoContext(ctx, "traced")

		out := buf.String()
		if !strings.Contains(out, `"component":"server"`) {
			t.Errorf("expected component attr, got %q", out)
		}
		if !strings.Contains(out, "trace_id") {
			t.Errorf("expected trace_id after WithAttrs, got %q", out)
		}
	})
}
