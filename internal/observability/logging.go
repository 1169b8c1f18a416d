// Package observability carries per-run logging context (render id, stage,
// watch cycle) through context.Context.
package observability

import (
	"context"
	"log/slog"

	"git.home.luguber.info/inful/notesite/internal/logfields"
)

// LogContext holds structured logging context information.
type LogContext struct {
	RenderID string
	Stage    string
	Cycle    int // watch cycle, 0 outside watch mode
}

type logContextKeyType string

const logContextKey logContextKeyType = "log-context"

// WithRenderID adds a render ID to the context.
func WithRenderID(ctx context.Context, renderID string) context.Context {
	lc := extractLogContext(ctx)
	lc.RenderID = renderID
	return context.WithValue(ctx, logContextKey, lc)
}

// WithStage adds a stage name to the context.
func WithStage(ctx context.Context, stage string) context.Context {
	lc := extractLogContext(ctx)
	lc.Stage = stage
	return context.WithValue(ctx, logContextKey, lc)
}

// WithCycle adds a watch cycle number to the context.
func WithCycle(ctx context.Context, cycle int) context.Context {
	lc := extractLogContext(ctx)
	lc.Cycle = cycle
	return context.WithValue(ctx, logContextKey, lc)
}

// GetContext returns the structured log context from the provided context.
func GetContext(ctx context.Context) LogContext {
	return extractLogContext(ctx)
}

func extractLogContext(ctx context.Context) LogContext {
	if lc, ok := ctx.Value(logContextKey).(LogContext); ok {
		return lc
	}
	return LogContext{}
}

func getLogAttrs(ctx context.Context) []slog.Attr {
	lc := extractLogContext(ctx)
	attrs := []slog.Attr{}
	if lc.RenderID != "" {
		attrs = append(attrs, logfields.RenderID(lc.RenderID))
	}
	if lc.Stage != "" {
		attrs = append(attrs, slog.String("stage", lc.Stage))
	}
	if lc.Cycle != 0 {
		attrs = append(attrs, slog.Int("cycle", lc.Cycle))
	}
	return attrs
}

// InfoContext logs an info message with context information.
func InfoContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	slog.LogAttrs(ctx, slog.LevelInfo, msg, append(getLogAttrs(ctx), attrs...)...)
}

// WarnContext logs a warning message with context information.
func WarnContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	slog.LogAttrs(ctx, slog.LevelWarn, msg, append(getLogAttrs(ctx), attrs...)...)
}

// ErrorContext logs an error message with context information.
func ErrorContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	slog.LogAttrs(ctx, slog.LevelError, msg, append(getLogAttrs(ctx), attrs...)...)
}

// DebugContext logs a debug message with context information.
func DebugContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	slog.LogAttrs(ctx, slog.LevelDebug, msg, append(getLogAttrs(ctx), attrs...)...)
}
