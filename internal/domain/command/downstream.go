package command

import (
	"fmt"
	"strings"
	"time"

	"github.com/jsamuelsen11/taskflow/internal/domain"
	"github.com/jsamuelsen11/taskflow/internal/domain/label"
	"github.com/jsamuelsen11/taskflow/internal/domain/task"
)

type CreateDraft struct {
	TaskID string `json:"task_id"`
}

type UpdateDescription struct {
	TaskID      string `json:"task_id"`
	Description string `json:"description"`
}

type UpdatePriority struct {
	TaskID   string        `json:"task_id"`
	Priority task.Priority `json:"priority"`
}

// UpdateDueDate sets the due date; a nil DueDate clears it.
type UpdateDueDate struct {
	TaskID  string     `json:"task_id"`
	DueDate *time.Time `json:"due_date,omitempty"`
}

type FinalizeDraft struct {
	TaskID string `json:"task_id"`
}

type CompleteTask struct {
	TaskID string `json:"task_id"`
}

type ReopenTask struct {
	TaskID string `json:"task_id"`
}

type DeleteTask struct {
	TaskID string `json:"task_id"`
}

type RestoreTask struct {
	TaskID string `json:"task_id"`
}

type AssignLabel struct {
	TaskID  string `json:"task_id"`
	LabelID string `json:"label_id"`
}

type UnassignLabel struct {
	TaskID  string `json:"task_id"`
	LabelID string `json:"label_id"`
}

// CreateLabel creates a label with the default title and color.
type CreateLabel struct {
	LabelID string `json:"label_id"`
}

// UpdateLabelDetails changes the provided label fields only.
type UpdateLabelDetails struct {
	LabelID string       `json:"label_id"`
	Title   *string      `json:"title,omitempty"`
	Color   *label.Color `json:"color,omitempty"`
}

func (CreateDraft) Kind() Kind        { return KindCreateDraft }
func (UpdateDescription) Kind() Kind  { return KindUpdateDescription }
func (UpdatePriority) Kind() Kind     { return KindUpdatePriority }
func (UpdateDueDate) Kind() Kind      { return KindUpdateDueDate }
func (FinalizeDraft) Kind() Kind      { return KindFinalizeDraft }
func (CompleteTask) Kind() Kind       { return KindCompleteTask }
func (ReopenTask) Kind() Kind         { return KindReopenTask }
func (DeleteTask) Kind() Kind         { return KindDeleteTask }
func (RestoreTask) Kind() Kind        { return KindRestoreTask }
func (AssignLabel) Kind() Kind        { return KindAssignLabel }
func (UnassignLabel) Kind() Kind      { return KindUnassignLabel }
func (CreateLabel) Kind() Kind        { return KindCreateLabel }
func (UpdateLabelDetails) Kind() Kind { return KindUpdateLabelDetails }

func (c CreateDraft) Target() (EntityType, string)        { return EntityTask, c.TaskID }
func (c UpdateDescription) Target() (EntityType, string)  { return EntityTask, c.TaskID }
func (c UpdatePriority) Target() (EntityType, string)     { return EntityTask, c.TaskID }
func (c UpdateDueDate) Target() (EntityType, string)      { return EntityTask, c.TaskID }
func (c FinalizeDraft) Target() (EntityType, string)      { return EntityTask, c.TaskID }
func (c CompleteTask) Target() (EntityType, string)       { return EntityTask, c.TaskID }
func (c ReopenTask) Target() (EntityType, string)         { return EntityTask, c.TaskID }
func (c DeleteTask) Target() (EntityType, string)         { return EntityTask, c.TaskID }
func (c RestoreTask) Target() (EntityType, string)        { return EntityTask, c.TaskID }
func (c AssignLabel) Target() (EntityType, string)        { return EntityTask, c.TaskID }
func (c UnassignLabel) Target() (EntityType, string)      { return EntityTask, c.TaskID }
func (c CreateLabel) Target() (EntityType, string)        { return EntityLabel, c.LabelID }
func (c UpdateLabelDetails) Target() (EntityType, string) { return EntityLabel, c.LabelID }

func (c CreateDraft) Validate() error   { return validateTask(c.TaskID) }
func (c FinalizeDraft) Validate() error { return validateTask(c.TaskID) }
func (c CompleteTask) Validate() error  { return validateTask(c.TaskID) }
func (c ReopenTask) Validate() error    { return validateTask(c.TaskID) }
func (c DeleteTask) Validate() error    { return validateTask(c.TaskID) }
func (c RestoreTask) Validate() error   { return validateTask(c.TaskID) }
func (c UpdateDueDate) Validate() error { return validateTask(c.TaskID) }
func (c CreateLabel) Validate() error   { return validateLabel(c.LabelID) }

func (c UpdateDescription) Validate() error {
	fields := make(map[string]string)
	requireID(fields, "task_id", c.TaskID)
	if strings.TrimSpace(c.Description) == "" {
		fields["description"] = domain.MsgMustNotEmpty
	}
	return validationResult(fields)
}

func (c UpdatePriority) Validate() error {
	fields := make(map[string]string)
	requireID(fields, "task_id", c.TaskID)
	if !c.Priority.IsValid() {
		fields["priority"] = fmt.Sprintf("invalid: %q", c.Priority)
	}
	return validationResult(fields)
}

func (c AssignLabel) Validate() error   { return validatePair(c.TaskID, c.LabelID) }
func (c UnassignLabel) Validate() error { return validatePair(c.TaskID, c.LabelID) }

func (c UpdateLabelDetails) Validate() error {
	fields := make(map[string]string)
	requireID(fields, "label_id", c.LabelID)
	if c.Title == nil && c.Color == nil {
		fields["body"] = "at least one of title, color is required"
	}
	if c.Color != nil && !c.Color.IsValid() {
		fields["color"] = fmt.Sprintf("invalid: %q", *c.Color)
	}
	return validationResult(fields)
}

func validateTask(id string) error {
	fields := make(map[string]string)
	requireID(fields, "task_id", id)
	return validationResult(fields)
}

func validateLabel(id string) error {
	fields := make(map[string]string)
	requireID(fields, "label_id", id)
	return validationResult(fields)
}

func validatePair(taskID, labelID string) error {
	fields := make(map[string]string)
	requireID(fields, "task_id", taskID)
	requireID(fields, "label_id", labelID)
	return validationResult(fields)
}
