package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/bytedance/sonic"

	"github.com/jsamuelsen11/taskflow/internal/domain"
	"github.com/jsamuelsen11/taskflow/internal/domain/command"
	"github.com/jsamuelsen11/taskflow/internal/domain/label"
	"github.com/jsamuelsen11/taskflow/internal/domain/task"
)

// StartWorkflowRequest represents the JSON body for starting a task creation
// workflow. Both ids are optional; absent ids are generated by the handler.
type StartWorkflowRequest struct {
	ProcessID string `json:"process_id,omitempty"`
	TaskID    string `json:"task_id,omitempty"`
}

// Validate rejects ids made only of whitespace.
// Returns a *domain.ValidationError if any checks fail.
func (r *StartWorkflowRequest) Validate() error {
	fields := make(map[string]string)

	if r.ProcessID != "" && strings.TrimSpace(r.ProcessID) == "" {
		fields["process_id"] = domain.MsgMustNotEmpty
	}
	if r.TaskID != "" && strings.TrimSpace(r.TaskID) == "" {
		fields["task_id"] = domain.MsgMustNotEmpty
	}

	return validationResult(fields)
}

// ToCommand builds the StartCreation command. newID fills in absent ids.
func (r *StartWorkflowRequest) ToCommand(newID func() string) command.StartCreation {
	cmd := command.StartCreation{ProcessID: r.ProcessID, SubjectID: r.TaskID}
	if cmd.ProcessID == "" {
		cmd.ProcessID = newID()
	}
	if cmd.SubjectID == "" {
		cmd.SubjectID = newID()
	}
	return cmd
}

// UpdateDetailsRequest represents the JSON body for changing the details of
// the task being created. All fields are optional; nil means "do not change
// this field".
type UpdateDetailsRequest struct {
	Description *string    `json:"description,omitempty"`
	Priority    *string    `json:"priority,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

// Validate checks that any provided fields have valid values.
// Returns a *domain.ValidationError if any checks fail.
func (r *UpdateDetailsRequest) Validate() error {
	fields := make(map[string]string)

	if r.Priority != nil && !task.Priority(*r.Priority).IsValid() {
		fields["priority"] = fmt.Sprintf("invalid: %q", *r.Priority)
	}

	return validationResult(fields)
}

// ToCommand builds the UpdateDetails command for processID.
func (r *UpdateDetailsRequest) ToCommand(processID string) command.UpdateDetails {
	cmd := command.UpdateDetails{
		ProcessID:   processID,
		Description: r.Description,
		DueDate:     r.DueDate,
	}
	if r.Priority != nil {
		p := task.Priority(*r.Priority)
		cmd.Priority = &p
	}
	return cmd
}

// NewLabelRequest describes a label to create during the workflow.
type NewLabelRequest struct {
	Title string `json:"title"`
	Color string `json:"color,omitempty"`
}

// AddLabelsRequest represents the JSON body for assigning labels to the task
// being created.
type AddLabelsRequest struct {
	ExistingLabelIDs []string          `json:"existing_label_ids,omitempty"`
	NewLabels        []NewLabelRequest `json:"new_labels,omitempty"`
}

// Validate checks every listed label. An empty request is left to the
// workflow, which rejects it.
func (r *AddLabelsRequest) Validate() error {
	fields := make(map[string]string)

	for i, id := range r.ExistingLabelIDs {
		if strings.TrimSpace(id) == "" {
			fields[fmt.Sprintf("existing_label_ids[%d]", i)] = domain.MsgMustNotEmpty
		}
	}
	for i, nl := range r.NewLabels {
		if strings.TrimSpace(nl.Title) == "" {
			fields[fmt.Sprintf("new_labels[%d].title", i)] = domain.MsgRequired
		}
		if nl.Color != "" && !label.Color(nl.Color).IsValid() {
			fields[fmt.Sprintf("new_labels[%d].color", i)] = fmt.Sprintf("invalid: %q", nl.Color)
		}
	}

	return validationResult(fields)
}

// ToCommand builds the AddLabels command for processID.
func (r *AddLabelsRequest) ToCommand(processID string) command.AddLabels {
	cmd := command.AddLabels{
		ProcessID:        processID,
		ExistingLabelIDs: r.ExistingLabelIDs,
	}
	for _, nl := range r.NewLabels {
		cmd.NewLabels = append(cmd.NewLabels, command.NewLabel{
			Title: nl.Title,
			Color: label.Color(nl.Color),
		})
	}
	return cmd
}

// CommandRequest is the transport envelope of a downstream command
// submitted to the entities.
type CommandRequest struct {
	Kind     string                 `json:"kind"`
	Metadata command.Metadata       `json:"metadata"`
	Data     sonic.NoCopyRawMessage `json:"data,omitempty"`
}

// Validate checks that a kind was given. The body is validated when the
// command is decoded.
func (r *CommandRequest) Validate() error {
	fields := make(map[string]string)

	if strings.TrimSpace(r.Kind) == "" {
		fields["kind"] = domain.MsgRequired
	}

	return validationResult(fields)
}

// ToDownstream decodes the envelope into a downstream command. Driving
// commands are refused; they go through the workflow routes.
func (r *CommandRequest) ToDownstream() (command.Downstream, error) {
	cmd, err := command.Decode(command.Kind(r.Kind), r.Data)
	if err != nil {
		return nil, err
	}
	ds, ok := cmd.(command.Downstream)
	if !ok {
		return nil, &domain.ValidationError{
			Fields: map[string]string{"kind": fmt.Sprintf("%q is not an entity command", r.Kind)},
		}
	}
	return ds, nil
}

func validationResult(fields map[string]string) error {
	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}
