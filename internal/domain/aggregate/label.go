package aggregate

import (
	"fmt"

	"github.com/jsamuelsen11/taskflow/internal/domain"
	"github.com/jsamuelsen11/taskflow/internal/domain/command"
	"github.com/jsamuelsen11/taskflow/internal/domain/event"
	"github.com/jsamuelsen11/taskflow/internal/domain/label"
)

// Label is the state of one label entity.
type Label struct {
	ID      string      `json:"id"`
	Title   string      `json:"title"`
	Color   label.Color `json:"color"`
	Version uint64      `json:"version"`
}

// NewLabel returns the empty state for id.
func NewLabel(id string) *Label {
	return &Label{ID: id}
}

// Exists reports whether the label has been created.
func (l *Label) Exists() bool {
	return l.Version > 0
}

// Info returns the label's display data.
func (l *Label) Info() label.Info {
	return label.Info{ID: l.ID, Title: l.Title, Color: l.Color}
}

// Handle decides the events for cmd.
func (l *Label) Handle(cmd command.Downstream) ([]event.Payload, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	switch c := cmd.(type) {
	case command.CreateLabel:
		if l.Exists() {
			return nil, fmt.Errorf("label %s already exists: %w", c.LabelID, domain.ErrConflict)
		}
		return one(event.LabelCreated{LabelID: c.LabelID, Title: label.DefaultTitle, Color: label.DefaultColor}), nil

	case command.UpdateLabelDetails:
		if !l.Exists() {
			return nil, fmt.Errorf("label %s: %w", c.LabelID, domain.ErrNotFound)
		}
		changed := event.LabelDetailsUpdated{LabelID: l.ID}
		if c.Title != nil && *c.Title != l.Title {
			changed.Title = c.Title
		}
		if c.Color != nil && *c.Color != l.Color {
			changed.Color = c.Color
		}
		if changed.Title == nil && changed.Color == nil {
			return nil, nil
		}
		return one(changed), nil

	default:
		return nil, fmt.Errorf("label does not handle %s: %w", cmd.Kind(), domain.ErrValidation)
	}
}

// Apply folds one event into the state and advances Version.
func (l *Label) Apply(p event.Payload) {
	switch e := p.(type) {
	case event.LabelCreated:
		l.Title = e.Title
		l.Color = e.Color
	case event.LabelDetailsUpdated:
		if e.Title != nil {
			l.Title = *e.Title
		}
		if e.Color != nil {
			l.Color = *e.Color
		}
	}
	l.Version++
}
