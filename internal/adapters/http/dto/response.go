// Package dto provides HTTP request/response data transfer objects and
// RFC 9457 Problem Details error responses for the inbound HTTP adapter layer.
package dto

import (
	"time"

	"github.com/jsamuelsen11/taskflow/internal/domain/command"
	"github.com/jsamuelsen11/taskflow/internal/domain/workflow"
	"github.com/jsamuelsen11/taskflow/internal/projection"
)

// WorkflowResponse represents the state of a task creation workflow in HTTP
// responses.
type WorkflowResponse struct {
	ProcessID      string `json:"process_id"`
	TaskID         string `json:"task_id"`
	Stage          string `json:"stage"`
	DescriptionSet bool   `json:"description_set"`
	Archived       bool   `json:"archived"`
	DraftCreated   bool   `json:"draft_created"`
	Finalized      bool   `json:"finalized"`
	TaskDeleted    bool   `json:"task_deleted"`
	Version        uint64 `json:"version"`
	StartedAt      string `json:"started_at"`
	UpdatedAt      string `json:"updated_at"`
}

// ToWorkflowResponse converts a workflow state to an HTTP response DTO.
func ToWorkflowResponse(s *workflow.State) WorkflowResponse {
	return WorkflowResponse{
		ProcessID:      s.ProcessID,
		TaskID:         s.SubjectID,
		Stage:          s.Stage.String(),
		DescriptionSet: s.DescriptionSet,
		Archived:       s.Archived,
		DraftCreated:   s.DraftCreated,
		Finalized:      s.Finalized,
		TaskDeleted:    s.SubjectDeleted,
		Version:        s.Version,
		StartedAt:      s.StartedAt.Format(time.RFC3339),
		UpdatedAt:      s.UpdatedAt.Format(time.RFC3339),
	}
}

// ItemResponse represents one row of a view.
type ItemResponse struct {
	TaskID      string `json:"task_id"`
	Description string `json:"description,omitempty"`
	Priority    string `json:"priority,omitempty"`
	DueDate     string `json:"due_date,omitempty"`
	Completed   bool   `json:"completed"`
	Status      string `json:"status,omitempty"`
	LabelID     string `json:"label_id,omitempty"`
	LabelTitle  string `json:"label_title,omitempty"`
	LabelColor  string `json:"label_color,omitempty"`
}

// ViewResponse represents a view snapshot in HTTP responses.
type ViewResponse struct {
	View      string         `json:"view"`
	ID        string         `json:"id"`
	Version   uint64         `json:"version"`
	Items     []ItemResponse `json:"items"`
	Count     int            `json:"count"`
	UpdatedAt string         `json:"updated_at,omitempty"`
}

// ToViewResponse converts a snapshot to an HTTP response DTO. A snapshot
// nothing was folded into has no update time.
func ToViewResponse(s projection.Snapshot) ViewResponse {
	items := make([]ItemResponse, len(s.Items))
	for i, it := range s.Items {
		items[i] = ItemResponse{
			TaskID:      it.SubjectID,
			Description: it.Description,
			Priority:    it.Priority.String(),
			Completed:   it.Completed,
			Status:      string(it.Status),
			LabelID:     it.LabelID,
			LabelTitle:  it.LabelTitle,
			LabelColor:  string(it.LabelColor),
		}
		if it.DueDate != nil {
			items[i].DueDate = it.DueDate.Format(time.RFC3339)
		}
	}

	resp := ViewResponse{
		View:    s.View,
		ID:      s.ID,
		Version: s.Version,
		Items:   items,
		Count:   len(items),
	}
	if !s.UpdatedAt.IsZero() {
		resp.UpdatedAt = s.UpdatedAt.Format(time.RFC3339)
	}
	return resp
}

// CommandAcceptedResponse acknowledges a downstream command accepted by its
// entity.
type CommandAcceptedResponse struct {
	Kind       string `json:"kind"`
	EntityType string `json:"entity_type"`
	EntityID   string `json:"entity_id"`
	ProcessID  string `json:"process_id,omitempty"`
}

// ToCommandAcceptedResponse describes cmd as accepted.
func ToCommandAcceptedResponse(cmd command.Downstream, meta command.Metadata) CommandAcceptedResponse {
	typ, id := cmd.Target()
	return CommandAcceptedResponse{
		Kind:       cmd.Kind().String(),
		EntityType: string(typ),
		EntityID:   id,
		ProcessID:  meta.ProcessID,
	}
}
