package handlers

import (
	"net/http"

	"github.com/jsamuelsen11/taskflow/internal/adapters/http/dto"
	"github.com/jsamuelsen11/taskflow/internal/ports"
)

// ViewHandler serves the read model snapshots.
type ViewHandler struct {
	views ports.ViewService
}

// NewViewHandler creates a new ViewHandler with the given query port.
func NewViewHandler(views ports.ViewService) *ViewHandler {
	return &ViewHandler{views: views}
}

// AllTasks handles GET /api/v1/views/tasks.
func (h *ViewHandler) AllTasks(w http.ResponseWriter, r *http.Request) {
	snap, err := h.views.AllTasks(r.Context())
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.ToViewResponse(snap))
}

// DeletedTasks handles GET /api/v1/views/tasks/deleted.
func (h *ViewHandler) DeletedTasks(w http.ResponseWriter, r *http.Request) {
	snap, err := h.views.DeletedTasks(r.Context())
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.ToViewResponse(snap))
}

// Task handles GET /api/v1/views/tasks/{taskId}.
func (h *ViewHandler) Task(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "taskId")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	snap, err := h.views.Task(r.Context(), id)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.ToViewResponse(snap))
}

// LabelTasks handles GET /api/v1/views/labels/{labelId}.
func (h *ViewHandler) LabelTasks(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "labelId")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	snap, err := h.views.LabelTasks(r.Context(), id)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.ToViewResponse(snap))
}
