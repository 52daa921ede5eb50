package handlers

import (
	"net/http"

	"github.com/jsamuelsen11/taskflow/internal/adapters/http/dto"
	"github.com/jsamuelsen11/taskflow/internal/ports"
)

// CommandHandler accepts downstream commands addressed to task and label
// entities. It is the receiving end of the remote command dispatcher.
type CommandHandler struct {
	dispatcher ports.CommandDispatcher
}

// NewCommandHandler creates a new CommandHandler delivering to dispatcher.
func NewCommandHandler(dispatcher ports.CommandDispatcher) *CommandHandler {
	return &CommandHandler{dispatcher: dispatcher}
}

// SubmitCommand handles POST /api/v1/commands. The command is applied
// before the response is written; 202 reports that the entity accepted it.
func (h *CommandHandler) SubmitCommand(w http.ResponseWriter, r *http.Request) {
	var req dto.CommandRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	cmd, err := req.ToDownstream()
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	if err := h.dispatcher.Dispatch(r.Context(), cmd, req.Metadata); err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusAccepted, dto.ToCommandAcceptedResponse(cmd, req.Metadata))
}
