// Package command defines the closed set of commands accepted by the system.
//
// Driving commands address a task creation workflow by process id and are
// handled by the workflow coordinator. Downstream commands address a single
// task or label entity; the coordinator emits them and the command
// dispatcher delivers them to the owning entity.
package command

import (
	"slices"
)

// Kind names a command type on the wire.
type Kind string

// Driving commands.
const (
	KindStartCreation    Kind = "start-creation"
	KindUpdateDetails    Kind = "update-details"
	KindAddLabels        Kind = "add-labels"
	KindSkipLabels       Kind = "skip-labels"
	KindCompleteCreation Kind = "complete-creation"
	KindCancelCreation   Kind = "cancel-creation"
)

// Task commands.
const (
	KindCreateDraft       Kind = "create-draft"
	KindUpdateDescription Kind = "update-description"
	KindUpdatePriority    Kind = "update-priority"
	KindUpdateDueDate     Kind = "update-due-date"
	KindFinalizeDraft     Kind = "finalize-draft"
	KindCompleteTask      Kind = "complete-task"
	KindReopenTask        Kind = "reopen-task"
	KindDeleteTask        Kind = "delete-task"
	KindRestoreTask       Kind = "restore-task"
	KindAssignLabel       Kind = "assign-label"
	KindUnassignLabel     Kind = "unassign-label"
)

// Label commands.
const (
	KindCreateLabel        Kind = "create-label"
	KindUpdateLabelDetails Kind = "update-label-details"
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	return string(k)
}

// Kinds returns every registered command kind in lexical order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, len(decoders))
	for k := range decoders {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)
	return kinds
}

// Command is implemented by every command body.
type Command interface {
	Kind() Kind
	Validate() error
}

// Driving is a command addressed to a task creation workflow.
type Driving interface {
	Command
	Process() string
}

// EntityType names the aggregate type a downstream command targets.
type EntityType string

const (
	EntityTask  EntityType = "task"
	EntityLabel EntityType = "label"
)

// Downstream is a command addressed to a single task or label entity.
type Downstream interface {
	Command
	Target() (EntityType, string)
}

// Metadata travels beside a dispatched downstream command and is copied
// onto every event the command causes.
type Metadata struct {
	ProcessID string `json:"process_id,omitempty"`
}
