package handlers_test

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/jsamuelsen11/taskflow/internal/adapters/http/dto"
	"github.com/jsamuelsen11/taskflow/internal/adapters/http/handlers"
	"github.com/jsamuelsen11/taskflow/internal/app"
	"github.com/jsamuelsen11/taskflow/internal/domain"
	"github.com/jsamuelsen11/taskflow/internal/domain/command"
	"github.com/jsamuelsen11/taskflow/internal/domain/task"
	"github.com/jsamuelsen11/taskflow/internal/domain/workflow"
	"github.com/jsamuelsen11/taskflow/mocks"
)

func newWorkflowHandler(t *testing.T) (*handlers.WorkflowHandler, *mocks.MockWorkflowService) {
	t.Helper()
	svc := mocks.NewMockWorkflowService(t)
	return handlers.NewWorkflowHandler(svc), svc
}

func processRequest(method, path string, body *bytes.Buffer) *http.Request {
	var req *http.Request
	if body == nil {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, body)
	}
	return withChiParams(req, map[string]string{"processId": "p-1"})
}

// --- StartWorkflow ---

func TestStartWorkflow_WithIDs(t *testing.T) {
	t.Parallel()
	h, svc := newWorkflowHandler(t)

	svc.EXPECT().
		Handle(mock.Anything, command.StartCreation{ProcessID: "p-1", SubjectID: "t-1"}).
		Return(validState(workflow.StageDefining), nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/workflows",
		jsonBody(t, dto.StartWorkflowRequest{ProcessID: "p-1", TaskID: "t-1"}))
	h.StartWorkflow(rec, req)

	requireStatus(t, rec, http.StatusCreated)
	if loc := rec.Header().Get("Location"); loc != "/api/v1/workflows/p-1" {
		t.Errorf("Location = %q, want %q", loc, "/api/v1/workflows/p-1")
	}
	resp := decodeJSON[dto.WorkflowResponse](t, rec)
	if resp.Stage != "DEFINING" {
		t.Errorf("Stage = %q, want %q", resp.Stage, "DEFINING")
	}
}

func TestStartWorkflow_GeneratesIDs(t *testing.T) {
	t.Parallel()
	h, svc := newWorkflowHandler(t)

	var got command.StartCreation
	svc.EXPECT().
		Handle(mock.Anything, mock.AnythingOfType("command.StartCreation")).
		Run(func(_ context.Context, cmd command.Driving) {
			got = cmd.(command.StartCreation)
		}).
		Return(validState(workflow.StageDefining), nil)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/workflows", nil)
	h.StartWorkflow(rec, req)

	requireStatus(t, rec, http.StatusCreated)
	if got.ProcessID == "" || got.SubjectID == "" {
		t.Fatalf("generated ids = (%q, %q), want both set", got.ProcessID, got.SubjectID)
	}
	if got.ProcessID == got.SubjectID {
		t.Errorf("process and task ids both %q, want distinct", got.ProcessID)
	}
}

func TestStartWorkflow_InvalidJSON(t *testing.T) {
	t.Parallel()
	h, _ := newWorkflowHandler(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/workflows", bytes.NewBufferString("{bad"))
	h.StartWorkflow(rec, req)

	requireStatus(t, rec, http.StatusBadRequest)
}

func TestStartWorkflow_AlreadyStarted(t *testing.T) {
	t.Parallel()
	h, svc := newWorkflowHandler(t)

	svc.EXPECT().Handle(mock.Anything, mock.Anything).
		Return(nil, domain.Reject("p-1", "start-creation", "DEFINING", domain.ErrAlreadyStarted))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/workflows",
		jsonBody(t, dto.StartWorkflowRequest{ProcessID: "p-1"}))
	h.StartWorkflow(rec, req)

	requireStatus(t, rec, http.StatusConflict)
}

// --- GetWorkflow ---

func TestGetWorkflow_Success(t *testing.T) {
	t.Parallel()
	h, svc := newWorkflowHandler(t)

	svc.EXPECT().Get(mock.Anything, "p-1").Return(validState(workflow.StageLabeling), nil)

	rec := httptest.NewRecorder()
	h.GetWorkflow(rec, processRequest(http.MethodGet, "/api/v1/workflows/p-1", nil))

	requireStatus(t, rec, http.StatusOK)
	resp := decodeJSON[dto.WorkflowResponse](t, rec)
	if resp.ProcessID != "p-1" || resp.Stage != "LABELING" {
		t.Errorf("resp = %+v, want p-1 in LABELING", resp)
	}
}

func TestGetWorkflow_NotFound(t *testing.T) {
	t.Parallel()
	h, svc := newWorkflowHandler(t)

	svc.EXPECT().Get(mock.Anything, "p-1").
		Return(nil, fmt.Errorf("workflow p-1: %w", domain.ErrNotFound))

	rec := httptest.NewRecorder()
	h.GetWorkflow(rec, processRequest(http.MethodGet, "/api/v1/workflows/p-1", nil))

	requireStatus(t, rec, http.StatusNotFound)
	if ct := rec.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Errorf("Content-Type = %q, want problem+json", ct)
	}
}

func TestGetWorkflow_MissingID(t *testing.T) {
	t.Parallel()
	h, _ := newWorkflowHandler(t)

	rec := httptest.NewRecorder()
	req := withChiParams(httptest.NewRequest(http.MethodGet, "/api/v1/workflows/", nil),
		map[string]string{"processId": " "})
	h.GetWorkflow(rec, req)

	requireStatus(t, rec, http.StatusBadRequest)
}

// --- UpdateDetails ---

func TestUpdateDetails_Success(t *testing.T) {
	t.Parallel()
	h, svc := newWorkflowHandler(t)

	desc := "write the quarterly report"
	prio := task.PriorityHigh
	svc.EXPECT().
		Handle(mock.Anything, command.UpdateDetails{ProcessID: "p-1", Description: &desc, Priority: &prio}).
		Return(validState(workflow.StageDefining), nil)

	rec := httptest.NewRecorder()
	body := jsonBody(t, map[string]string{"description": desc, "priority": "high"})
	h.UpdateDetails(rec, processRequest(http.MethodPatch, "/api/v1/workflows/p-1/details", body))

	requireStatus(t, rec, http.StatusOK)
}

func TestUpdateDetails_InvalidPriority(t *testing.T) {
	t.Parallel()
	h, _ := newWorkflowHandler(t)

	rec := httptest.NewRecorder()
	body := jsonBody(t, map[string]string{"priority": "urgent"})
	h.UpdateDetails(rec, processRequest(http.MethodPatch, "/api/v1/workflows/p-1/details", body))

	requireStatus(t, rec, http.StatusBadRequest)
	resp := decodeJSON[dto.ErrorResponse](t, rec)
	if len(resp.Errors) != 1 || resp.Errors[0].Location != "body.priority" {
		t.Errorf("Errors = %+v, want body.priority", resp.Errors)
	}
}

func TestUpdateDetails_EmptyChangeIsBadRequest(t *testing.T) {
	t.Parallel()
	h, svc := newWorkflowHandler(t)

	svc.EXPECT().Handle(mock.Anything, mock.Anything).
		Return(nil, domain.Reject("p-1", "update-details", "DEFINING", domain.ErrEmptyChange))

	rec := httptest.NewRecorder()
	h.UpdateDetails(rec, processRequest(http.MethodPatch, "/api/v1/workflows/p-1/details", jsonBody(t, map[string]string{})))

	requireStatus(t, rec, http.StatusBadRequest)
}

// --- AddLabels ---

func TestAddLabels_Success(t *testing.T) {
	t.Parallel()
	h, svc := newWorkflowHandler(t)

	svc.EXPECT().
		Handle(mock.Anything, command.AddLabels{
			ProcessID:        "p-1",
			ExistingLabelIDs: []string{"l-1"},
			NewLabels:        []command.NewLabel{{Title: "home", Color: "green"}},
		}).
		Return(validState(workflow.StageLabeling), nil)

	rec := httptest.NewRecorder()
	body := jsonBody(t, dto.AddLabelsRequest{
		ExistingLabelIDs: []string{"l-1"},
		NewLabels:        []dto.NewLabelRequest{{Title: "home", Color: "green"}},
	})
	h.AddLabels(rec, processRequest(http.MethodPost, "/api/v1/workflows/p-1/labels", body))

	requireStatus(t, rec, http.StatusOK)
}

func TestAddLabels_DispatchFailureUsesEntityStatus(t *testing.T) {
	t.Parallel()
	h, svc := newWorkflowHandler(t)

	svc.EXPECT().Handle(mock.Anything, mock.Anything).
		Return(nil, &app.DispatchError{
			Step: 1, Total: 1, Kind: command.KindAssignLabel,
			Err: fmt.Errorf("label l-9: %w", domain.ErrNotFound),
		})

	rec := httptest.NewRecorder()
	body := jsonBody(t, dto.AddLabelsRequest{ExistingLabelIDs: []string{"l-9"}})
	h.AddLabels(rec, processRequest(http.MethodPost, "/api/v1/workflows/p-1/labels", body))

	requireStatus(t, rec, http.StatusNotFound)
}

// --- body-less transitions ---

func TestBodylessTransitions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		path    string
		cmd     command.Driving
		handler func(*handlers.WorkflowHandler) http.HandlerFunc
	}{
		{
			name:    "skip labels",
			path:    "/api/v1/workflows/p-1/labels/skip",
			cmd:     command.SkipLabels{ProcessID: "p-1"},
			handler: func(h *handlers.WorkflowHandler) http.HandlerFunc { return h.SkipLabels },
		},
		{
			name:    "complete",
			path:    "/api/v1/workflows/p-1/complete",
			cmd:     command.CompleteCreation{ProcessID: "p-1"},
			handler: func(h *handlers.WorkflowHandler) http.HandlerFunc { return h.CompleteWorkflow },
		},
		{
			name:    "cancel",
			path:    "/api/v1/workflows/p-1/cancel",
			cmd:     command.CancelCreation{ProcessID: "p-1"},
			handler: func(h *handlers.WorkflowHandler) http.HandlerFunc { return h.CancelWorkflow },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h, svc := newWorkflowHandler(t)

			svc.EXPECT().Handle(mock.Anything, tt.cmd).Return(validState(workflow.StageCompleted), nil)

			rec := httptest.NewRecorder()
			tt.handler(h)(rec, processRequest(http.MethodPost, tt.path, nil))

			requireStatus(t, rec, http.StatusOK)
		})
	}
}

func TestCompleteWorkflow_DescriptionMissing(t *testing.T) {
	t.Parallel()
	h, svc := newWorkflowHandler(t)

	svc.EXPECT().Handle(mock.Anything, command.CompleteCreation{ProcessID: "p-1"}).
		Return(nil, domain.Reject("p-1", "complete-creation", "LABELING", domain.ErrDescriptionMissing))

	rec := httptest.NewRecorder()
	h.CompleteWorkflow(rec, processRequest(http.MethodPost, "/api/v1/workflows/p-1/complete", nil))

	requireStatus(t, rec, http.StatusConflict)
	resp := decodeJSON[dto.ErrorResponse](t, rec)
	if resp.Instance != "/api/v1/workflows/p-1/complete" {
		t.Errorf("Instance = %q", resp.Instance)
	}
}
