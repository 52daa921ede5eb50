// Package logging builds the service's slog loggers and carries them through
// contexts.
//
// The HTTP middleware stores a request-scoped logger with WithLogger; the
// event processor does the same per consumed event. Code below them reads it
// back with FromContext and narrows it with With:
//
//	ctx = logging.With(ctx, slog.String("process_id", pid))
//	logging.FromContext(ctx).ErrorContext(ctx, "failed to save workflow",
//	    slog.String("operation", "WorkflowService.Handle"),
//	    slog.Any("error", err),
//	)
//
// Error logs name the operation, the workflow or entity ids involved, and
// the full error chain.
package logging

import (
	"context"
	"io"
	"log/slog"
	"strings"
)

// Output formats accepted by New.
const (
	FormatJSON = "json"
	FormatText = "text"
)

type contextKey struct{}

// New returns a logger writing to w at level ("debug", "info", "warn" or
// "error", case-insensitive; anything else means info) in format (FormatText,
// otherwise JSON). Debug loggers include the source location. Every record
// passes through the credential redaction of redactAttr.
func New(level, format string, w io.Writer) *slog.Logger {
	lvl := parseLevel(level)
	opts := &slog.HandlerOptions{
		Level:       lvl,
		AddSource:   lvl <= slog.LevelDebug,
		ReplaceAttr: redactAttr(),
	}

	if strings.EqualFold(format, FormatText) {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// WithLogger stores logger in ctx.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, logger)
}

// FromContext returns the logger stored in ctx, or slog.Default.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(contextKey{}).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return slog.Default()
}

// With stores a child of the context logger carrying attrs.
func With(ctx context.Context, attrs ...slog.Attr) context.Context {
	if len(attrs) == 0 {
		return ctx
	}
	args := make([]any, len(attrs))
	for i, a := range attrs {
		args[i] = a
	}
	return WithLogger(ctx, FromContext(ctx).With(args...))
}

func parseLevel(level string) slog.Level {
	var lvl slog.Level
	switch l := strings.ToLower(strings.TrimSpace(level)); l {
	case "debug", "info", "warn", "error":
		if err := lvl.UnmarshalText([]byte(l)); err == nil {
			return lvl
		}
	}
	return slog.LevelInfo
}
