package handlers_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/jsamuelsen11/taskflow/internal/adapters/http/handlers"
	"github.com/jsamuelsen11/taskflow/internal/ports"
	"github.com/jsamuelsen11/taskflow/mocks"
)

type readiness struct {
	Status       string `json:"status"`
	Dependencies map[string]struct {
		Status      string  `json:"status"`
		Criticality string  `json:"criticality"`
		LatencyMS   float64 `json:"latency_ms"`
		Error       string  `json:"error"`
	} `json:"dependencies"`
}

func TestLiveness(t *testing.T) {
	t.Parallel()

	h := handlers.NewHealthHandler(mocks.NewMockHealthRegistry(t))
	rec := httptest.NewRecorder()
	h.Liveness(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	requireStatus(t, rec, http.StatusOK)
	if got := decodeJSON[map[string]string](t, rec); got["status"] != "alive" {
		t.Errorf("status = %q, want alive", got["status"])
	}
}

func TestReadiness(t *testing.T) {
	t.Parallel()

	up := func(c ports.Criticality) ports.CheckResult {
		return ports.CheckResult{Criticality: c, Latency: 1500 * time.Microsecond}
	}
	down := func(c ports.Criticality, msg string) ports.CheckResult {
		return ports.CheckResult{Criticality: c, Err: errors.New(msg)}
	}

	tests := []struct {
		name       string
		results    map[string]ports.CheckResult
		wantCode   int
		wantStatus string
	}{
		{
			name:       "no dependencies",
			results:    map[string]ports.CheckResult{},
			wantCode:   http.StatusOK,
			wantStatus: "ready",
		},
		{
			name: "all up",
			results: map[string]ports.CheckResult{
				"redis":       up(ports.Critical),
				"event-queue": up(ports.Critical),
				"entity-api":  up(ports.Degradable),
			},
			wantCode:   http.StatusOK,
			wantStatus: "ready",
		},
		{
			name: "entity service breaker open",
			results: map[string]ports.CheckResult{
				"redis":      up(ports.Critical),
				"entity-api": down(ports.Degradable, "entity-api: failing (circuit breaker open)"),
			},
			wantCode:   http.StatusOK,
			wantStatus: "degraded",
		},
		{
			name: "state backend down",
			results: map[string]ports.CheckResult{
				"redis":      down(ports.Critical, "connection refused"),
				"entity-api": down(ports.Degradable, "entity-api: failing (circuit breaker open)"),
			},
			wantCode:   http.StatusServiceUnavailable,
			wantStatus: "not_ready",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			registry := mocks.NewMockHealthRegistry(t)
			registry.EXPECT().CheckAll(mock.Anything).Return(tt.results)

			rec := httptest.NewRecorder()
			handlers.NewHealthHandler(registry).Readiness(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

			requireStatus(t, rec, tt.wantCode)
			got := decodeJSON[readiness](t, rec)
			if got.Status != tt.wantStatus {
				t.Errorf("status = %q, want %q", got.Status, tt.wantStatus)
			}
			if len(got.Dependencies) != len(tt.results) {
				t.Fatalf("dependencies = %d, want %d", len(got.Dependencies), len(tt.results))
			}
			for name, res := range tt.results {
				dep := got.Dependencies[name]
				if dep.Criticality != res.Criticality.String() {
					t.Errorf("%s criticality = %q", name, dep.Criticality)
				}
				if res.Err != nil && (dep.Status != "down" || dep.Error != res.Err.Error()) {
					t.Errorf("%s = %+v, want down with %q", name, dep, res.Err)
				}
				if res.Err == nil && dep.Status != "up" {
					t.Errorf("%s status = %q, want up", name, dep.Status)
				}
			}
		})
	}
}

func TestReadiness_ReportsLatency(t *testing.T) {
	t.Parallel()

	registry := mocks.NewMockHealthRegistry(t)
	registry.EXPECT().CheckAll(mock.Anything).Return(map[string]ports.CheckResult{
		"redis": {Criticality: ports.Critical, Latency: 2500 * time.Microsecond},
	})

	rec := httptest.NewRecorder()
	handlers.NewHealthHandler(registry).Readiness(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

	if got := decodeJSON[readiness](t, rec).Dependencies["redis"].LatencyMS; got != 2.5 {
		t.Errorf("latency_ms = %v, want 2.5", got)
	}
}
