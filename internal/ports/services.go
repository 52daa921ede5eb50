package ports

import (
	"context"

	"github.com/jsamuelsen11/taskflow/internal/domain/command"
	"github.com/jsamuelsen11/taskflow/internal/domain/workflow"
	"github.com/jsamuelsen11/taskflow/internal/projection"
)

// WorkflowService defines the service port for the task creation workflow.
// Implemented by the application layer; called by inbound adapters (handlers).
type WorkflowService interface {
	// Handle applies a driving command and returns the committed state.
	// Returns a *domain.RejectionError when the workflow refuses the command,
	// domain.ErrNotFound for an unknown process, and a *app.DispatchError
	// when a downstream entity refuses one of the emitted commands. In the
	// last case the workflow's own transition is already committed.
	Handle(ctx context.Context, cmd command.Driving) (*workflow.State, error)

	// Get returns the current state of a workflow.
	// Returns domain.ErrNotFound if the workflow does not exist.
	Get(ctx context.Context, processID string) (*workflow.State, error)
}

// ViewService defines the query port for read models. Views never folded
// yet are returned as empty snapshots at version zero.
type ViewService interface {
	AllTasks(ctx context.Context) (projection.Snapshot, error)
	DeletedTasks(ctx context.Context) (projection.Snapshot, error)
	Task(ctx context.Context, taskID string) (projection.Snapshot, error)
	LabelTasks(ctx context.Context, labelID string) (projection.Snapshot, error)
}

// CommandDispatcher delivers a downstream command to the entity that owns
// it. Implemented in-process by the application layer and remotely by the
// entity API client.
type CommandDispatcher interface {
	// Dispatch returns once the entity has accepted or refused cmd.
	// meta is copied onto every event the command causes.
	Dispatch(ctx context.Context, cmd command.Downstream, meta command.Metadata) error
}
