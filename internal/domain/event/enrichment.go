package event

import (
	"slices"

	"github.com/jsamuelsen11/taskflow/internal/domain/label"
	"github.com/jsamuelsen11/taskflow/internal/domain/task"
)

// Enrichment is the auxiliary data a correlation supplier attaches to an
// event before it is routed. It is always passed explicitly next to the
// envelope; a nil *Enrichment means the supplier attached nothing.
type Enrichment struct {
	// LabelIDs are the labels whose views are affected by a task event:
	// the task's labels before and after the event.
	LabelIDs []string `json:"label_ids,omitempty"`

	// Labels holds the display data of every label in LabelIDs as known
	// when the event was enriched.
	Labels map[string]label.Info `json:"labels,omitempty"`

	// ProcessIDs are the in-flight creation workflows whose subject is the
	// event's task.
	ProcessIDs []string `json:"process_ids,omitempty"`

	// Subject is the task a task event concerns, as known before the event.
	// Nil for label and workflow events and for tasks never seen.
	Subject *task.Snapshot `json:"subject,omitempty"`
}

// Label returns the display data attached for id.
func (e *Enrichment) Label(id string) (label.Info, bool) {
	if e == nil {
		return label.Info{}, false
	}
	info, ok := e.Labels[id]
	return info, ok
}

// HasLabel reports whether id is among the affected labels.
func (e *Enrichment) HasLabel(id string) bool {
	return e != nil && slices.Contains(e.LabelIDs, id)
}
