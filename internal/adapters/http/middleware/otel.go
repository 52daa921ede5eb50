package middleware

import (
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen11/taskflow/internal/platform/telemetry"
)

const tracerName = "github.com/jsamuelsen11/taskflow/internal/adapters/http"

// OpenTelemetry continues the caller's W3C trace in a server span and
// records the request duration and count. The span starts as "HTTP METHOD"
// and is renamed after the matched route once served, so span names never
// carry ids. A nil metrics skips recording.
func OpenTelemetry(metrics *telemetry.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))
			ctx, span := otel.Tracer(tracerName).Start(ctx, "HTTP "+r.Method,
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(
					attribute.String("http.method", r.Method),
					attribute.String("http.target", r.URL.Path),
				),
			)
			defer span.End()

			rec := recordStatus(w)
			next.ServeHTTP(rec, r.WithContext(ctx))

			rt := resolvedRoute(ctx)
			if rt.pattern != "" {
				span.SetName("HTTP " + r.Method + " " + rt.pattern)
				span.SetAttributes(attribute.String("http.route", rt.pattern))
			}
			if rt.processID != "" {
				span.SetAttributes(attribute.String("workflow.process_id", rt.processID))
			}
			span.SetAttributes(attribute.Int("http.status_code", rec.status))
			if rec.status >= http.StatusInternalServerError {
				span.SetStatus(codes.Error, http.StatusText(rec.status))
			}

			if metrics == nil {
				return
			}
			result := "success"
			if rec.status >= http.StatusBadRequest {
				result = "error"
			}
			set := metric.WithAttributes(
				telemetry.AttrHTTPMethod.String(r.Method),
				telemetry.AttrHTTPStatus.Int(rec.status),
				telemetry.AttrResult.String(result),
			)
			metrics.ServerRequestDuration.Record(ctx, time.Since(start).Seconds(), set)
			metrics.ServerRequestTotal.Add(ctx, 1, set)
		})
	}
}
