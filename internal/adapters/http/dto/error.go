package dto

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/bytedance/sonic"

	"github.com/jsamuelsen11/taskflow/internal/app"
	"github.com/jsamuelsen11/taskflow/internal/domain"
)

// Problem types. Rejections and refused dispatches get their own type so
// clients can tell "the workflow said no" from "an entity said no".
const (
	ProblemGeneric         = "about:blank"
	ProblemStageRejected   = "/problems/workflow-rejected"
	ProblemDispatchRefused = "/problems/dispatch-refused"
)

// ErrorResponse is an RFC 9457 problem document. The workflow members are
// set only for rejections and refused dispatches.
type ErrorResponse struct {
	Type     string        `json:"type"`
	Title    string        `json:"title"`
	Status   int           `json:"status"`
	Detail   string        `json:"detail,omitempty"`
	Instance string        `json:"instance,omitempty"`
	Errors   []ErrorDetail `json:"errors,omitempty"`

	ProcessID  string `json:"process_id,omitempty"`
	Stage      string `json:"stage,omitempty"`
	Command    string `json:"command,omitempty"`
	FailedStep int    `json:"failed_step,omitempty"`
	TotalSteps int    `json:"total_steps,omitempty"`
}

// ErrorDetail is one invalid field.
type ErrorDetail struct {
	Location string `json:"location"`
	Message  string `json:"message"`
}

// NewErrorResponse builds the problem document for err. Server-side failures
// keep their cause out of the response.
func NewErrorResponse(r *http.Request, err error) ErrorResponse {
	status := statusFor(err)
	resp := ErrorResponse{
		Type:     ProblemGeneric,
		Title:    http.StatusText(status),
		Status:   status,
		Detail:   err.Error(),
		Instance: r.RequestURI,
	}
	if status >= http.StatusInternalServerError {
		resp.Detail = maskedDetail(status)
	}

	var (
		verr *domain.ValidationError
		rerr *domain.RejectionError
		derr *app.DispatchError
	)
	if errors.As(err, &verr) {
		resp.Errors = fieldDetails(verr.Fields)
	}
	if errors.As(err, &rerr) {
		resp.Type = ProblemStageRejected
		resp.ProcessID = rerr.ProcessID
		resp.Stage = rerr.Stage
		resp.Command = rerr.Command
	}
	if errors.As(err, &derr) {
		resp.Type = ProblemDispatchRefused
		resp.Command = derr.Kind.String()
		resp.FailedStep = derr.Step
		resp.TotalSteps = derr.Total
	}
	return resp
}

// WriteErrorResponse writes the problem document for err.
func WriteErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	resp := NewErrorResponse(r, err)

	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(resp.Status)
	if encErr := sonic.ConfigDefault.NewEncoder(w).Encode(resp); encErr != nil {
		slog.ErrorContext(r.Context(), "failed to encode problem document",
			slog.String("instance", resp.Instance),
			slog.Any("error", encErr),
		)
	}
}

// statusFor maps an error to its HTTP status. Caller mistakes win over
// everything, including a rejection whose reason is one; any other
// rejection conflicts with the workflow's stage. A refused dispatch maps by
// the entity error it wraps.
func statusFor(err error) int {
	var rerr *domain.RejectionError
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.As(err, &rerr):
		return http.StatusConflict
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrUnavailable):
		return http.StatusBadGateway
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func maskedDetail(status int) string {
	switch status {
	case http.StatusBadGateway:
		return "the entity service is unavailable"
	case http.StatusGatewayTimeout:
		return "the request did not finish in time"
	default:
		return "an internal error occurred"
	}
}

// fieldDetails lists invalid fields sorted by location. Fields already
// naming a location ("path.processId") keep it; the rest are body fields.
func fieldDetails(fields map[string]string) []ErrorDetail {
	details := make([]ErrorDetail, 0, len(fields))
	for field, msg := range fields {
		loc := field
		if !strings.HasPrefix(field, "path.") && !strings.HasPrefix(field, "query.") {
			loc = "body." + field
		}
		details = append(details, ErrorDetail{Location: loc, Message: msg})
	}
	slices.SortFunc(details, func(a, b ErrorDetail) int {
		return strings.Compare(a.Location, b.Location)
	})
	return details
}
