package middleware

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/jsamuelsen11/taskflow/internal/platform/logging"
)

// Logging stores a request-scoped logger carrying the request and
// correlation ids, and logs one record when the request starts and one when
// it completes. The completion record names the route pattern and, for
// workflow routes, the process id. Headers are logged at debug level with
// credentials masked.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ctx := logging.WithLogger(r.Context(), logger)
			ctx = logging.With(ctx,
				slog.String("request_id", RequestIDFromContext(ctx)),
				slog.String("correlation_id", CorrelationIDFromContext(ctx)),
			)
			log := logging.FromContext(ctx)

			log.InfoContext(ctx, "request started",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
			)
			if log.Enabled(ctx, slog.LevelDebug) {
				log.DebugContext(ctx, "request headers", headerAttrs(r.Header)...)
			}

			rec := recordStatus(w)
			next.ServeHTTP(rec, r.WithContext(ctx))

			attrs := []any{
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", rec.status),
				slog.Int64("bytes", rec.bytes),
				slog.Duration("duration", time.Since(start)),
			}
			rt := resolvedRoute(ctx)
			if rt.pattern != "" {
				attrs = append(attrs, slog.String("route", rt.pattern))
			}
			if rt.processID != "" {
				attrs = append(attrs, slog.String("process_id", rt.processID))
			}

			level := slog.LevelInfo
			if rec.status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			log.Log(ctx, level, "request completed", attrs...)
		})
	}
}

// headerAttrs renders headers as attributes, masking the values of
// logging.SensitiveHeaders.
func headerAttrs(h http.Header) []any {
	attrs := make([]any, 0, len(h))
	for name, values := range h {
		value := strings.Join(values, ",")
		if logging.SensitiveHeaders[strings.ToLower(name)] {
			value = "[REDACTED]"
		}
		attrs = append(attrs, slog.String(name, value))
	}
	return attrs
}
