// Package logging provides structured logging configuration for tracewire.
//
// This package wraps log/slog to provide consistent logging across all
// components. It supports configurable log levels and output formats, and a
// handler wrapper that decorates every record with the trace and span IDs of
// the request that produced it, so log lines can be correlated with spans in
// the tracing backend.
//
// # Usage
//
// Create a logger with desired configuration:
//
//	logger := logging.New(logging.Config{
//	    Level:  logging.LevelInfo,
//	    Format: logging.FormatText,
//	})
//
//	logger.Info("server started", "port", 8000)
//	logger.ErrorContext(ctx, "chain failed", "error", err)
//
// Context-carrying variants (InfoContext, ErrorContext, ...) pick up
// trace_id/span_id automatically when an active span is in the context.
//
// # Integration
//
// Components should accept a *slog.Logger in their constructor or via a
// functional option. If no logger is provided, use logging.Nop().
package logging
