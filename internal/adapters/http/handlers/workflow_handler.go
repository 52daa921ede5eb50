package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/jsamuelsen11/taskflow/internal/adapters/http/dto"
	"github.com/jsamuelsen11/taskflow/internal/domain/command"
	"github.com/jsamuelsen11/taskflow/internal/ports"
)

const processIDParam = "processId"

// WorkflowHandler handles HTTP requests driving task creation workflows.
type WorkflowHandler struct {
	service ports.WorkflowService
	newID   func() string
}

// NewWorkflowHandler creates a new WorkflowHandler with the given service
// port. Ids the caller leaves out are generated as random UUIDs.
func NewWorkflowHandler(service ports.WorkflowService) *WorkflowHandler {
	return &WorkflowHandler{service: service, newID: uuid.NewString}
}

// StartWorkflow handles POST /api/v1/workflows.
func (h *WorkflowHandler) StartWorkflow(w http.ResponseWriter, r *http.Request) {
	var req dto.StartWorkflowRequest
	if !decodeOptional(w, r, &req) {
		return
	}

	state, err := h.service.Handle(r.Context(), req.ToCommand(h.newID))
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	w.Header().Set("Location", "/api/v1/workflows/"+state.ProcessID)
	writeJSON(w, http.StatusCreated, dto.ToWorkflowResponse(state))
}

// GetWorkflow handles GET /api/v1/workflows/{processId}.
func (h *WorkflowHandler) GetWorkflow(w http.ResponseWriter, r *http.Request) {
	pid, err := pathID(r, processIDParam)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	state, err := h.service.Get(r.Context(), pid)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToWorkflowResponse(state))
}

// UpdateDetails handles PATCH /api/v1/workflows/{processId}/details.
func (h *WorkflowHandler) UpdateDetails(w http.ResponseWriter, r *http.Request) {
	pid, err := pathID(r, processIDParam)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	var req dto.UpdateDetailsRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	h.handle(w, r, req.ToCommand(pid))
}

// AddLabels handles POST /api/v1/workflows/{processId}/labels.
func (h *WorkflowHandler) AddLabels(w http.ResponseWriter, r *http.Request) {
	pid, err := pathID(r, processIDParam)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	var req dto.AddLabelsRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	h.handle(w, r, req.ToCommand(pid))
}

// SkipLabels handles POST /api/v1/workflows/{processId}/labels/skip.
func (h *WorkflowHandler) SkipLabels(w http.ResponseWriter, r *http.Request) {
	h.handleProcess(w, r, func(pid string) command.Driving {
		return command.SkipLabels{ProcessID: pid}
	})
}

// CompleteWorkflow handles POST /api/v1/workflows/{processId}/complete.
func (h *WorkflowHandler) CompleteWorkflow(w http.ResponseWriter, r *http.Request) {
	h.handleProcess(w, r, func(pid string) command.Driving {
		return command.CompleteCreation{ProcessID: pid}
	})
}

// CancelWorkflow handles POST /api/v1/workflows/{processId}/cancel.
func (h *WorkflowHandler) CancelWorkflow(w http.ResponseWriter, r *http.Request) {
	h.handleProcess(w, r, func(pid string) command.Driving {
		return command.CancelCreation{ProcessID: pid}
	})
}

// handleProcess runs a body-less command built from the process path id.
func (h *WorkflowHandler) handleProcess(w http.ResponseWriter, r *http.Request, build func(string) command.Driving) {
	pid, err := pathID(r, processIDParam)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}
	h.handle(w, r, build(pid))
}

func (h *WorkflowHandler) handle(w http.ResponseWriter, r *http.Request, cmd command.Driving) {
	state, err := h.service.Handle(r.Context(), cmd)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToWorkflowResponse(state))
}
