// Package task holds the value types describing a task: its status, priority
// and the snapshot carried by deletion and restoration events.
package task

import (
	"slices"
	"time"
)

// Snapshot is a point-in-time copy of a task. It travels inside the
// task-deleted and task-restored events so that read models can move the
// task between views without consulting the entity.
type Snapshot struct {
	ID          string     `json:"id"`
	Description string     `json:"description,omitempty"`
	Priority    Priority   `json:"priority,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Completed   bool       `json:"completed"`
	Status      Status     `json:"status"`
	LabelIDs    []string   `json:"label_ids,omitempty"`
}

// Clone returns a deep copy of the snapshot.
func (s Snapshot) Clone() Snapshot {
	out := s
	if s.DueDate != nil {
		d := *s.DueDate
		out.DueDate = &d
	}
	out.LabelIDs = slices.Clone(s.LabelIDs)
	return out
}
