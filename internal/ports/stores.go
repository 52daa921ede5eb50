package ports

import (
	"context"

	"github.com/jsamuelsen11/taskflow/internal/domain/aggregate"
	"github.com/jsamuelsen11/taskflow/internal/domain/workflow"
	"github.com/jsamuelsen11/taskflow/internal/projection"
)

// WorkflowStore persists workflow state. Callers serialize access per
// process id; stores need not detect concurrent writers.
type WorkflowStore interface {
	// Load returns nil and no error when the workflow does not exist.
	Load(ctx context.Context, processID string) (*workflow.State, error)
	Save(ctx context.Context, state workflow.State) error
}

// ViewStore persists read model snapshots.
type ViewStore interface {
	// Load returns the zero Snapshot when the view instance does not exist.
	Load(ctx context.Context, view, id string) (projection.Snapshot, error)
	Save(ctx context.Context, snap projection.Snapshot) error
}

// TaskStore persists task entities.
type TaskStore interface {
	// Load returns nil and no error when the task does not exist.
	Load(ctx context.Context, id string) (*aggregate.Task, error)
	Save(ctx context.Context, t *aggregate.Task) error
}

// LabelStore persists label entities.
type LabelStore interface {
	// Load returns nil and no error when the label does not exist.
	Load(ctx context.Context, id string) (*aggregate.Label, error)
	Save(ctx context.Context, l *aggregate.Label) error
}
