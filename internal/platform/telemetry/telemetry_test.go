package telemetry_test

import (
	"context"
	"strings"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/jsamuelsen11/taskflow/internal/platform/telemetry"
)

// Init* replace the global providers, so these tests do not run in parallel.

func TestInitTracer(t *testing.T) {
	tests := []struct {
		name     string
		exporter string
		endpoint string
		wantErr  string
	}{
		{name: "stdout", exporter: telemetry.ExporterStdout},
		{name: "otlp over http", exporter: telemetry.ExporterOTLP, endpoint: "http://localhost:4318"},
		{name: "otlp without endpoint", exporter: telemetry.ExporterOTLP, wantErr: "requires an endpoint"},
		{name: "unknown exporter", exporter: "jaeger", wantErr: `unsupported exporter "jaeger"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			tp, err := telemetry.InitTracer(ctx, "taskflow-test", tt.exporter, tt.endpoint)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("InitTracer() error = %v, want %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("InitTracer() error = %v", err)
			}
			// No collector runs under test, so the OTLP flush may fail.
			t.Cleanup(func() { _ = tp.Shutdown(ctx) })

			if otel.GetTracerProvider() != tp {
				t.Error("global TracerProvider was not replaced")
			}
		})
	}
}

func TestInitTracer_PropagatesTraceContextAndBaggage(t *testing.T) {
	ctx := context.Background()
	tp, err := telemetry.InitTracer(ctx, "taskflow-test", telemetry.ExporterStdout, "")
	if err != nil {
		t.Fatalf("InitTracer() error = %v", err)
	}
	t.Cleanup(func() { _ = tp.Shutdown(ctx) })

	fields := strings.Join(otel.GetTextMapPropagator().Fields(), ",")
	for _, want := range []string{"traceparent", "baggage"} {
		if !strings.Contains(fields, want) {
			t.Errorf("propagator fields = %q, missing %q", fields, want)
		}
	}
}

func TestInitMeter(t *testing.T) {
	tests := []struct {
		name     string
		exporter string
		endpoint string
		wantErr  bool
	}{
		{name: "stdout", exporter: telemetry.ExporterStdout},
		{name: "otlp over https", exporter: telemetry.ExporterOTLP, endpoint: "https://collector.internal:4318"},
		{name: "otlp without endpoint", exporter: telemetry.ExporterOTLP, wantErr: true},
		{name: "unknown exporter", exporter: "prometheus", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			mp, err := telemetry.InitMeter(ctx, "taskflow-test", tt.exporter, tt.endpoint)
			if (err != nil) != tt.wantErr {
				t.Fatalf("InitMeter() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			t.Cleanup(func() { _ = mp.Shutdown(ctx) })

			if otel.GetMeterProvider() != mp {
				t.Error("global MeterProvider was not replaced")
			}
		})
	}
}

func TestNewMetrics_RecordsWorkflowAndEventInstruments(t *testing.T) {
	t.Parallel()

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	m, err := telemetry.NewMetrics(mp, "taskflow")
	if err != nil {
		t.Fatalf("NewMetrics() error = %v", err)
	}

	ctx := context.Background()
	m.WorkflowCommands.Add(ctx, 1, metric.WithAttributes(
		telemetry.AttrCommand.String("CreateTask"),
		telemetry.AttrResult.String("accepted"),
	))
	m.WorkflowCommands.Add(ctx, 1, metric.WithAttributes(
		telemetry.AttrCommand.String("CreateTask"),
		telemetry.AttrResult.String("accepted"),
	))
	m.EventDeliveries.Add(ctx, 1, metric.WithAttributes(
		telemetry.AttrEventKind.String("TaskCreated"),
		telemetry.AttrTarget.String("task-view"),
		telemetry.AttrResult.String("applied"),
	))
	m.EventProcessingDuration.Record(ctx, 0.012)
	m.ClientRequestTotal.Add(ctx, 1, metric.WithAttributes(telemetry.AttrPeerService.String("entity-api")))

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		t.Fatalf("Collect() error = %v", err)
	}
	got := map[string]metricdata.Aggregation{}
	for _, sm := range rm.ScopeMetrics {
		if sm.Scope.Name != "taskflow" {
			t.Errorf("scope = %q, want taskflow", sm.Scope.Name)
		}
		for _, md := range sm.Metrics {
			got[md.Name] = md.Data
		}
	}

	commands, ok := got["workflow.commands"].(metricdata.Sum[int64])
	if !ok || len(commands.DataPoints) != 1 {
		t.Fatalf("workflow.commands = %#v, want one data point", got["workflow.commands"])
	}
	if v := commands.DataPoints[0].Value; v != 2 {
		t.Errorf("workflow.commands = %d, want 2", v)
	}
	if v, _ := commands.DataPoints[0].Attributes.Value(telemetry.AttrCommand); v.AsString() != "CreateTask" {
		t.Errorf("command attribute = %v", v)
	}

	deliveries, ok := got["events.deliveries"].(metricdata.Sum[int64])
	if !ok || len(deliveries.DataPoints) != 1 {
		t.Fatalf("events.deliveries = %#v", got["events.deliveries"])
	}
	if v, _ := deliveries.DataPoints[0].Attributes.Value(telemetry.AttrTarget); v.AsString() != "task-view" {
		t.Errorf("target attribute = %v, want task-view", v)
	}

	processing, ok := got["events.processing.duration"].(metricdata.Histogram[float64])
	if !ok || len(processing.DataPoints) != 1 || processing.DataPoints[0].Count != 1 {
		t.Errorf("events.processing.duration = %#v, want one observation", got["events.processing.duration"])
	}
	if _, ok := got["http.client.request.total"]; !ok {
		t.Error("http.client.request.total was not collected")
	}
}

func TestNewMetrics_Noop(t *testing.T) {
	t.Parallel()

	m, err := telemetry.NewMetrics(noop.NewMeterProvider(), "taskflow")
	if err != nil {
		t.Fatalf("NewMetrics(noop) error = %v", err)
	}

	ctx := context.Background()
	m.ServerRequestTotal.Add(ctx, 1)
	m.ServerRequestDuration.Record(ctx, 0.1)
	m.WorkflowCommands.Add(ctx, 1)
	m.EventDeliveries.Add(ctx, 1)
	m.EventProcessingDuration.Record(ctx, 0.1)
}
