// Package event defines the closed set of domain events, the envelope they
// travel in, and the enrichment data attached to them before routing.
//
// Every payload type implements Payload and is registered in the decoder
// table in codec.go; Kinds returns exactly the registered set.
package event

import (
	"slices"
	"time"
)

// Kind names an event type on the wire and in routing tables.
type Kind string

// Task events. The envelope's EntityID is the task id.
const (
	KindDraftCreated       Kind = "draft-created"
	KindDescriptionUpdated Kind = "description-updated"
	KindPriorityUpdated    Kind = "priority-updated"
	KindDueDateUpdated     Kind = "due-date-updated"
	KindDraftFinalized     Kind = "draft-finalized"
	KindTaskCompleted      Kind = "task-completed"
	KindTaskReopened       Kind = "task-reopened"
	KindTaskDeleted        Kind = "task-deleted"
	KindTaskRestored       Kind = "task-restored"
	KindLabelAssigned      Kind = "label-assigned"
	KindLabelRemoved       Kind = "label-removed"
)

// Label events. The envelope's EntityID is the label id.
const (
	KindLabelCreated        Kind = "label-created"
	KindLabelDetailsUpdated Kind = "label-details-updated"
)

// Workflow events. The envelope's EntityID is the process id.
const (
	KindCreationStarted   Kind = "creation-started"
	KindLabelsSkipped     Kind = "labels-skipped"
	KindCreationCompleted Kind = "creation-completed"
	KindCreationCanceled  Kind = "creation-canceled"
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	return string(k)
}

// EntitySequenced reports whether k is emitted by a task or label entity.
// Such events carry a Sequence that strictly increases per EntityID.
// Workflow events share the workflow version across one transition.
func (k Kind) EntitySequenced() bool {
	switch k {
	case KindCreationStarted, KindLabelsSkipped, KindCreationCompleted, KindCreationCanceled:
		return false
	default:
		return k.IsValid()
	}
}

// IsValid reports whether k is a registered event kind.
func (k Kind) IsValid() bool {
	_, ok := decoders[k]
	return ok
}

// Kinds returns every registered event kind in lexical order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, len(decoders))
	for k := range decoders {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)
	return kinds
}

// Payload is implemented by every event body.
type Payload interface {
	Kind() Kind
}

// Envelope carries one event together with its delivery metadata.
//
// ProcessID is set when the event was caused by a command the task creation
// workflow dispatched; it is empty for events caused by direct callers.
// Sequence is the per-entity position assigned by the owning entity.
type Envelope struct {
	ID         string
	Kind       Kind
	EntityID   string
	ProcessID  string
	Sequence   uint64
	OccurredAt time.Time
	Payload    Payload
}
