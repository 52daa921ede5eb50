package event

import (
	"time"

	"github.com/jsamuelsen11/taskflow/internal/domain/label"
	"github.com/jsamuelsen11/taskflow/internal/domain/task"
)

// DraftCreated records that a task entity came into existence as a draft.
type DraftCreated struct {
	TaskID string `json:"task_id"`
}

// DescriptionUpdated replaces the task description.
type DescriptionUpdated struct {
	TaskID      string `json:"task_id"`
	Description string `json:"description"`
}

// PriorityUpdated replaces the task priority.
type PriorityUpdated struct {
	TaskID   string        `json:"task_id"`
	Priority task.Priority `json:"priority"`
}

// DueDateUpdated replaces the task due date. A nil DueDate clears it.
type DueDateUpdated struct {
	TaskID  string     `json:"task_id"`
	DueDate *time.Time `json:"due_date,omitempty"`
}

// DraftFinalized marks the task as no longer a draft.
type DraftFinalized struct {
	TaskID string `json:"task_id"`
}

type TaskCompleted struct {
	TaskID string `json:"task_id"`
}

type TaskReopened struct {
	TaskID string `json:"task_id"`
}

// TaskDeleted moves the task out of the positive views. It carries the
// task as it was at deletion so the deleted view can be folded without
// consulting the entity.
type TaskDeleted struct {
	Task task.Snapshot `json:"task"`
}

// TaskRestored is the inverse of TaskDeleted.
type TaskRestored struct {
	Task task.Snapshot `json:"task"`
}

type LabelAssigned struct {
	TaskID  string `json:"task_id"`
	LabelID string `json:"label_id"`
}

type LabelRemoved struct {
	TaskID  string `json:"task_id"`
	LabelID string `json:"label_id"`
}

// LabelCreated records a new label with its initial title and color.
type LabelCreated struct {
	LabelID string      `json:"label_id"`
	Title   string      `json:"title"`
	Color   label.Color `json:"color"`
}

// LabelDetailsUpdated carries only the fields that changed.
type LabelDetailsUpdated struct {
	LabelID string       `json:"label_id"`
	Title   *string      `json:"title,omitempty"`
	Color   *label.Color `json:"color,omitempty"`
}

// CreationStarted is emitted by the task creation workflow on start.
type CreationStarted struct {
	ProcessID string `json:"process_id"`
	SubjectID string `json:"subject_id"`
}

// LabelsSkipped marks that the caller chose not to label the task.
type LabelsSkipped struct {
	ProcessID string `json:"process_id"`
	SubjectID string `json:"subject_id"`
}

type CreationCompleted struct {
	ProcessID string `json:"process_id"`
	SubjectID string `json:"subject_id"`
}

type CreationCanceled struct {
	ProcessID string `json:"process_id"`
	SubjectID string `json:"subject_id"`
}

func (DraftCreated) Kind() Kind        { return KindDraftCreated }
func (DescriptionUpdated) Kind() Kind  { return KindDescriptionUpdated }
func (PriorityUpdated) Kind() Kind     { return KindPriorityUpdated }
func (DueDateUpdated) Kind() Kind      { return KindDueDateUpdated }
func (DraftFinalized) Kind() Kind      { return KindDraftFinalized }
func (TaskCompleted) Kind() Kind       { return KindTaskCompleted }
func (TaskReopened) Kind() Kind        { return KindTaskReopened }
func (TaskDeleted) Kind() Kind         { return KindTaskDeleted }
func (TaskRestored) Kind() Kind        { return KindTaskRestored }
func (LabelAssigned) Kind() Kind       { return KindLabelAssigned }
func (LabelRemoved) Kind() Kind        { return KindLabelRemoved }
func (LabelCreated) Kind() Kind        { return KindLabelCreated }
func (LabelDetailsUpdated) Kind() Kind { return KindLabelDetailsUpdated }
func (CreationStarted) Kind() Kind     { return KindCreationStarted }
func (LabelsSkipped) Kind() Kind       { return KindLabelsSkipped }
func (CreationCompleted) Kind() Kind   { return KindCreationCompleted }
func (CreationCanceled) Kind() Kind    { return KindCreationCanceled }
