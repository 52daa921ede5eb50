// Package projection implements the read models folded from domain events.
//
// Each Projection pairs a routing table with a pure fold. The fold never
// performs I/O: the prior snapshot, the event and its enrichment are all it
// sees. Folding is idempotent, and every item operation is an upsert, an
// in-place replacement or a removal keyed by subject id.
//
// Duplicates are recognised two ways. A task or label event is skipped when
// its Sequence is not above the highest one the snapshot folded for that
// entity (Positions), however long ago that was; a stale deletion
// redelivered after a restore therefore stays skipped. The flip side is
// that an entity event redelivered after a later event of the same entity
// was folded is dropped as stale. Workflow events carry no per-entity order
// and are recognised by id within the last appliedWindow events (Applied);
// one redelivered after that many newer events is folded again.
package projection

import (
	"maps"
	"slices"
	"time"

	"github.com/jsamuelsen11/taskflow/internal/domain/event"
	"github.com/jsamuelsen11/taskflow/internal/domain/label"
	"github.com/jsamuelsen11/taskflow/internal/domain/task"
)

// appliedWindow bounds the number of event ids remembered per snapshot.
const appliedWindow = 256

// Item is one row of a view.
type Item struct {
	SubjectID   string        `json:"subject_id"`
	Description string        `json:"description,omitempty"`
	Priority    task.Priority `json:"priority,omitempty"`
	DueDate     *time.Time    `json:"due_date,omitempty"`
	Completed   bool          `json:"completed"`
	Status      task.Status   `json:"status,omitempty"`

	// Label fields are set in label views only.
	LabelID    string      `json:"label_id,omitempty"`
	LabelTitle string      `json:"label_title,omitempty"`
	LabelColor label.Color `json:"label_color,omitempty"`
}

// itemFromTask builds the row for a task snapshot.
func itemFromTask(t task.Snapshot) Item {
	item := Item{
		SubjectID:   t.ID,
		Description: t.Description,
		Priority:    t.Priority,
		Completed:   t.Completed,
		Status:      t.Status,
	}
	if t.DueDate != nil {
		due := *t.DueDate
		item.DueDate = &due
	}
	return item
}

// Snapshot is the versioned state of one view instance.
type Snapshot struct {
	View    string   `json:"view"`
	ID      string   `json:"id"`
	Version uint64   `json:"version"`
	Items   []Item   `json:"items"`
	Applied []string `json:"applied,omitempty"`
	// Positions is the highest Sequence folded per entity.
	Positions map[string]uint64 `json:"positions,omitempty"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// Empty returns the snapshot of a view instance nothing was folded into yet.
func Empty(view, id string) Snapshot {
	return Snapshot{View: view, ID: id, Items: []Item{}}
}

// Find returns the item for subjectID.
func (s Snapshot) Find(subjectID string) (Item, bool) {
	i := s.index(subjectID)
	if i < 0 {
		return Item{}, false
	}
	return s.Items[i], true
}

// Seen reports whether env, or a later event of the same entity, was
// already folded.
func (s Snapshot) Seen(env event.Envelope) bool {
	if sequenced(env) {
		return env.Sequence <= s.Positions[env.EntityID]
	}
	return env.ID != "" && slices.Contains(s.Applied, env.ID)
}

func sequenced(env event.Envelope) bool {
	return env.Sequence > 0 && env.EntityID != "" && env.Kind.EntitySequenced()
}

func (s Snapshot) index(subjectID string) int {
	return slices.IndexFunc(s.Items, func(it Item) bool { return it.SubjectID == subjectID })
}

func (s Snapshot) clone() Snapshot {
	out := s
	out.Items = slices.Clone(s.Items)
	if out.Items == nil {
		out.Items = []Item{}
	}
	out.Applied = slices.Clone(s.Applied)
	out.Positions = maps.Clone(s.Positions)
	return out
}

// insert appends item unless the subject already has one.
func (s *Snapshot) insert(item Item) {
	if s.index(item.SubjectID) < 0 {
		s.Items = append(s.Items, item)
	}
}

// upsert replaces the subject's item in place or appends it.
func (s *Snapshot) upsert(item Item) {
	if i := s.index(item.SubjectID); i >= 0 {
		s.Items[i] = item
		return
	}
	s.Items = append(s.Items, item)
}

// update applies fn to the subject's item. A missing item is left missing.
func (s *Snapshot) update(subjectID string, fn func(*Item)) {
	if i := s.index(subjectID); i >= 0 {
		fn(&s.Items[i])
	}
}

func (s *Snapshot) remove(subjectID string) {
	s.Items = slices.DeleteFunc(s.Items, func(it Item) bool { return it.SubjectID == subjectID })
}

func (s *Snapshot) remember(env event.Envelope) {
	if sequenced(env) {
		if s.Positions == nil {
			s.Positions = make(map[string]uint64)
		}
		s.Positions[env.EntityID] = env.Sequence
		return
	}
	if env.ID == "" {
		return
	}
	s.Applied = append(s.Applied, env.ID)
	if over := len(s.Applied) - appliedWindow; over > 0 {
		s.Applied = slices.Delete(s.Applied, 0, over)
	}
}
