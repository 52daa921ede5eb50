package handlers

import (
	"net/http"

	"github.com/jsamuelsen11/taskflow/internal/ports"
)

// Readiness states. A degraded service still takes traffic: only the
// entity service is failing and dispatches fail fast behind its breaker.
const (
	stateReady    = "ready"
	stateDegraded = "degraded"
	stateNotReady = "not_ready"
)

type dependencyStatus struct {
	Status      string  `json:"status"`
	Criticality string  `json:"criticality"`
	LatencyMS   float64 `json:"latency_ms"`
	Error       string  `json:"error,omitempty"`
}

type readinessResponse struct {
	Status       string                      `json:"status"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}

// HealthHandler serves the liveness and readiness endpoints.
type HealthHandler struct {
	registry ports.HealthRegistry
}

// NewHealthHandler returns a HealthHandler reporting registry's checks.
func NewHealthHandler(registry ports.HealthRegistry) *HealthHandler {
	return &HealthHandler{registry: registry}
}

// Liveness handles GET /health/live. The process answering is enough.
func (h *HealthHandler) Liveness(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "alive"})
}

// Readiness handles GET /health/ready: 503 when a critical dependency
// (state backend, event queue) fails, otherwise 200 with "ready" or
// "degraded".
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	resp := readinessResponse{Status: stateReady, Dependencies: map[string]dependencyStatus{}}

	for name, res := range h.registry.CheckAll(r.Context()) {
		dep := dependencyStatus{
			Status:      "up",
			Criticality: res.Criticality.String(),
			LatencyMS:   float64(res.Latency.Microseconds()) / 1000,
		}
		if res.Err != nil {
			dep.Status = "down"
			dep.Error = res.Err.Error()
			switch {
			case res.Criticality == ports.Critical:
				resp.Status = stateNotReady
			case resp.Status == stateReady:
				resp.Status = stateDegraded
			}
		}
		resp.Dependencies[name] = dep
	}

	code := http.StatusOK
	if resp.Status == stateNotReady {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, resp)
}
