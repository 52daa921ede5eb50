package dto_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/jsamuelsen11/taskflow/internal/adapters/http/dto"
	"github.com/jsamuelsen11/taskflow/internal/domain/command"
	"github.com/jsamuelsen11/taskflow/internal/domain/label"
	"github.com/jsamuelsen11/taskflow/internal/domain/task"
	"github.com/jsamuelsen11/taskflow/internal/domain/workflow"
	"github.com/jsamuelsen11/taskflow/internal/projection"
)

var testTime = time.Date(2026, 2, 12, 15, 4, 5, 0, time.UTC)

func TestToWorkflowResponse(t *testing.T) {
	t.Parallel()

	s := &workflow.State{
		ProcessID:      "p-1",
		SubjectID:      "t-1",
		Stage:          workflow.StageLabeling,
		DescriptionSet: true,
		DraftCreated:   true,
		Version:        4,
		StartedAt:      testTime,
		UpdatedAt:      testTime.Add(time.Minute),
	}

	got := dto.ToWorkflowResponse(s)

	if got.ProcessID != "p-1" || got.TaskID != "t-1" {
		t.Errorf("ids = (%q, %q), want (p-1, t-1)", got.ProcessID, got.TaskID)
	}
	if got.Stage != "LABELING" {
		t.Errorf("Stage = %q, want %q", got.Stage, "LABELING")
	}
	if !got.DescriptionSet || !got.DraftCreated || got.Finalized {
		t.Errorf("markers = %+v, want description and draft set only", got)
	}
	if got.Version != 4 {
		t.Errorf("Version = %d, want 4", got.Version)
	}
	if got.StartedAt != "2026-02-12T15:04:05Z" {
		t.Errorf("StartedAt = %q, want %q", got.StartedAt, "2026-02-12T15:04:05Z")
	}
	if got.UpdatedAt != "2026-02-12T15:05:05Z" {
		t.Errorf("UpdatedAt = %q, want %q", got.UpdatedAt, "2026-02-12T15:05:05Z")
	}
}

func TestToViewResponse(t *testing.T) {
	t.Parallel()

	due := testTime.Add(48 * time.Hour)
	s := projection.Snapshot{
		View:    projection.LabelTasks,
		ID:      "l-1",
		Version: 3,
		Items: []projection.Item{
			{
				SubjectID:   "t-1",
				Description: "write report",
				Priority:    task.PriorityHigh,
				DueDate:     &due,
				LabelID:     "l-1",
				LabelTitle:  "work",
				LabelColor:  label.ColorBlue,
			},
			{SubjectID: "t-2", Completed: true},
		},
		UpdatedAt: testTime,
	}

	got := dto.ToViewResponse(s)

	if got.Count != 2 || len(got.Items) != 2 {
		t.Fatalf("Count = %d, len(Items) = %d, want 2", got.Count, len(got.Items))
	}
	first := got.Items[0]
	if first.TaskID != "t-1" || first.Priority != "high" || first.LabelColor != "blue" {
		t.Errorf("Items[0] = %+v", first)
	}
	if first.DueDate != "2026-02-14T15:04:05Z" {
		t.Errorf("DueDate = %q, want %q", first.DueDate, "2026-02-14T15:04:05Z")
	}
	if !got.Items[1].Completed || got.Items[1].DueDate != "" {
		t.Errorf("Items[1] = %+v", got.Items[1])
	}
	if got.UpdatedAt != "2026-02-12T15:04:05Z" {
		t.Errorf("UpdatedAt = %q", got.UpdatedAt)
	}
}

func TestToViewResponse_EmptySnapshot(t *testing.T) {
	t.Parallel()

	got := dto.ToViewResponse(projection.Empty(projection.AllTasks, projection.AllTasksID))

	if got.Version != 0 || got.Count != 0 {
		t.Errorf("Version = %d, Count = %d, want 0, 0", got.Version, got.Count)
	}
	if got.UpdatedAt != "" {
		t.Errorf("UpdatedAt = %q, want empty", got.UpdatedAt)
	}

	// Items must encode as [] rather than null.
	b, err := json.Marshal(got)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	var raw map[string]any
	if err := json.Unmarshal(b, &raw); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if _, ok := raw["items"].([]any); !ok {
		t.Errorf("items = %v, want empty array", raw["items"])
	}
}

func TestToCommandAcceptedResponse(t *testing.T) {
	t.Parallel()

	got := dto.ToCommandAcceptedResponse(
		command.AssignLabel{TaskID: "t-1", LabelID: "l-1"},
		command.Metadata{ProcessID: "p-1"},
	)

	want := dto.CommandAcceptedResponse{
		Kind:       "assign-label",
		EntityType: "task",
		EntityID:   "t-1",
		ProcessID:  "p-1",
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}
