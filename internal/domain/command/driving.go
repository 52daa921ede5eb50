package command

import (
	"fmt"
	"strings"
	"time"

	"github.com/jsamuelsen11/taskflow/internal/domain"
	"github.com/jsamuelsen11/taskflow/internal/domain/label"
	"github.com/jsamuelsen11/taskflow/internal/domain/task"
)

// StartCreation opens a task creation workflow for SubjectID.
type StartCreation struct {
	ProcessID string `json:"process_id"`
	SubjectID string `json:"subject_id"`
}

// UpdateDetails changes any subset of the subject's detail fields. A nil
// field is left untouched downstream; it never resets the field.
type UpdateDetails struct {
	ProcessID   string         `json:"process_id"`
	Description *string        `json:"description,omitempty"`
	Priority    *task.Priority `json:"priority,omitempty"`
	DueDate     *time.Time     `json:"due_date,omitempty"`
}

// NewLabel describes a label to create and assign during the workflow.
type NewLabel struct {
	Title string      `json:"title"`
	Color label.Color `json:"color,omitempty"`
}

// AddLabels assigns existing labels and creates new ones for the subject.
type AddLabels struct {
	ProcessID        string     `json:"process_id"`
	ExistingLabelIDs []string   `json:"existing_label_ids,omitempty"`
	NewLabels        []NewLabel `json:"new_labels,omitempty"`
}

type SkipLabels struct {
	ProcessID string `json:"process_id"`
}

type CompleteCreation struct {
	ProcessID string `json:"process_id"`
}

type CancelCreation struct {
	ProcessID string `json:"process_id"`
}

func (StartCreation) Kind() Kind    { return KindStartCreation }
func (UpdateDetails) Kind() Kind    { return KindUpdateDetails }
func (AddLabels) Kind() Kind        { return KindAddLabels }
func (SkipLabels) Kind() Kind       { return KindSkipLabels }
func (CompleteCreation) Kind() Kind { return KindCompleteCreation }
func (CancelCreation) Kind() Kind   { return KindCancelCreation }

func (c StartCreation) Process() string    { return c.ProcessID }
func (c UpdateDetails) Process() string    { return c.ProcessID }
func (c AddLabels) Process() string        { return c.ProcessID }
func (c SkipLabels) Process() string       { return c.ProcessID }
func (c CompleteCreation) Process() string { return c.ProcessID }
func (c CancelCreation) Process() string   { return c.ProcessID }

// Validate checks that the identities are present.
func (c StartCreation) Validate() error {
	fields := make(map[string]string)
	requireID(fields, "process_id", c.ProcessID)
	requireID(fields, "subject_id", c.SubjectID)
	return validationResult(fields)
}

// Validate checks the shape of the provided fields. Whether any field was
// provided at all is decided by the workflow.
func (c UpdateDetails) Validate() error {
	fields := make(map[string]string)
	requireID(fields, "process_id", c.ProcessID)
	if c.Priority != nil && !c.Priority.IsValid() {
		fields["priority"] = fmt.Sprintf("invalid: %q", *c.Priority)
	}
	return validationResult(fields)
}

// Validate checks label ids and colors. Whether any label was requested at
// all is decided by the workflow.
func (c AddLabels) Validate() error {
	fields := make(map[string]string)
	requireID(fields, "process_id", c.ProcessID)
	for i, id := range c.ExistingLabelIDs {
		if strings.TrimSpace(id) == "" {
			fields[fmt.Sprintf("existing_label_ids[%d]", i)] = domain.MsgMustNotEmpty
		}
	}
	for i, nl := range c.NewLabels {
		if nl.Color != "" && !nl.Color.IsValid() {
			fields[fmt.Sprintf("new_labels[%d].color", i)] = fmt.Sprintf("invalid: %q", nl.Color)
		}
	}
	return validationResult(fields)
}

func (c SkipLabels) Validate() error       { return validateProcess(c.ProcessID) }
func (c CompleteCreation) Validate() error { return validateProcess(c.ProcessID) }
func (c CancelCreation) Validate() error   { return validateProcess(c.ProcessID) }

func validateProcess(id string) error {
	fields := make(map[string]string)
	requireID(fields, "process_id", id)
	return validationResult(fields)
}

func requireID(fields map[string]string, name, value string) {
	if strings.TrimSpace(value) == "" {
		fields[name] = domain.MsgRequired
	}
}

func validationResult(fields map[string]string) error {
	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}
