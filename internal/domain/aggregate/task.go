// Package aggregate implements the task and label consistency boundaries.
// An aggregate validates a downstream command against its current state and
// returns the events describing the transition; Apply folds those events
// back into the state. Handle never mutates the receiver.
package aggregate

import (
	"fmt"
	"slices"
	"time"

	"github.com/jsamuelsen11/taskflow/internal/domain"
	"github.com/jsamuelsen11/taskflow/internal/domain/command"
	"github.com/jsamuelsen11/taskflow/internal/domain/event"
	"github.com/jsamuelsen11/taskflow/internal/domain/task"
)

// Task is the state of one task entity. Version is the sequence number of
// the last applied event; zero means the task does not exist yet.
type Task struct {
	ID          string        `json:"id"`
	Description string        `json:"description,omitempty"`
	Priority    task.Priority `json:"priority,omitempty"`
	DueDate     *time.Time    `json:"due_date,omitempty"`
	Completed   bool          `json:"completed"`
	Status      task.Status   `json:"status,omitempty"`
	Deleted     bool          `json:"deleted"`
	LabelIDs    []string      `json:"label_ids,omitempty"`
	Version     uint64        `json:"version"`
}

// NewTask returns the empty state for id.
func NewTask(id string) *Task {
	return &Task{ID: id}
}

// Exists reports whether the task has been created.
func (t *Task) Exists() bool {
	return t.Version > 0
}

// Snapshot returns a copy of the task as carried by deletion events.
func (t *Task) Snapshot() task.Snapshot {
	return task.Snapshot{
		ID:          t.ID,
		Description: t.Description,
		Priority:    t.Priority,
		DueDate:     t.DueDate,
		Completed:   t.Completed,
		Status:      t.Status,
		LabelIDs:    t.LabelIDs,
	}.Clone()
}

// Handle decides the events for cmd. A command that would not change the
// task returns no events and no error.
func (t *Task) Handle(cmd command.Downstream) ([]event.Payload, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	if c, ok := cmd.(command.CreateDraft); ok {
		if t.Exists() {
			return nil, fmt.Errorf("task %s already exists: %w", c.TaskID, domain.ErrConflict)
		}
		return []event.Payload{event.DraftCreated{TaskID: c.TaskID}}, nil
	}

	if !t.Exists() {
		return nil, fmt.Errorf("task %s: %w", t.ID, domain.ErrNotFound)
	}

	if _, ok := cmd.(command.RestoreTask); ok {
		if !t.Deleted {
			return nil, nil
		}
		return []event.Payload{event.TaskRestored{Task: t.Snapshot()}}, nil
	}

	if t.Deleted {
		return nil, fmt.Errorf("task %s is deleted: %w", t.ID, domain.ErrConflict)
	}

	return t.handleLive(cmd)
}

func (t *Task) handleLive(cmd command.Downstream) ([]event.Payload, error) {
	switch c := cmd.(type) {
	case command.UpdateDescription:
		if c.Description == t.Description {
			return nil, nil
		}
		return one(event.DescriptionUpdated{TaskID: t.ID, Description: c.Description}), nil

	case command.UpdatePriority:
		if c.Priority == t.Priority {
			return nil, nil
		}
		return one(event.PriorityUpdated{TaskID: t.ID, Priority: c.Priority}), nil

	case command.UpdateDueDate:
		if sameDate(c.DueDate, t.DueDate) {
			return nil, nil
		}
		return one(event.DueDateUpdated{TaskID: t.ID, DueDate: c.DueDate}), nil

	case command.FinalizeDraft:
		if t.Status == task.StatusFinalized {
			return nil, nil
		}
		return one(event.DraftFinalized{TaskID: t.ID}), nil

	case command.CompleteTask:
		if t.Completed {
			return nil, nil
		}
		return one(event.TaskCompleted{TaskID: t.ID}), nil

	case command.ReopenTask:
		if !t.Completed {
			return nil, nil
		}
		return one(event.TaskReopened{TaskID: t.ID}), nil

	case command.DeleteTask:
		return one(event.TaskDeleted{Task: t.Snapshot()}), nil

	case command.AssignLabel:
		if slices.Contains(t.LabelIDs, c.LabelID) {
			return nil, nil
		}
		return one(event.LabelAssigned{TaskID: t.ID, LabelID: c.LabelID}), nil

	case command.UnassignLabel:
		if !slices.Contains(t.LabelIDs, c.LabelID) {
			return nil, nil
		}
		return one(event.LabelRemoved{TaskID: t.ID, LabelID: c.LabelID}), nil

	default:
		return nil, fmt.Errorf("task does not handle %s: %w", cmd.Kind(), domain.ErrValidation)
	}
}

// Apply folds one event into the state and advances Version.
func (t *Task) Apply(p event.Payload) {
	switch e := p.(type) {
	case event.DraftCreated:
		t.Status = task.StatusDraft
		t.Priority = task.PriorityNone
	case event.DescriptionUpdated:
		t.Description = e.Description
	case event.PriorityUpdated:
		t.Priority = e.Priority
	case event.DueDateUpdated:
		t.DueDate = e.DueDate
	case event.DraftFinalized:
		t.Status = task.StatusFinalized
	case event.TaskCompleted:
		t.Completed = true
	case event.TaskReopened:
		t.Completed = false
	case event.TaskDeleted:
		t.Deleted = true
	case event.TaskRestored:
		t.Deleted = false
	case event.LabelAssigned:
		t.LabelIDs = append(slices.Clone(t.LabelIDs), e.LabelID)
	case event.LabelRemoved:
		t.LabelIDs = slices.DeleteFunc(slices.Clone(t.LabelIDs), func(id string) bool { return id == e.LabelID })
	}
	t.Version++
}

func one(p event.Payload) []event.Payload {
	return []event.Payload{p}
}

func sameDate(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}
