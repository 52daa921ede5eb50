package workflow

import (
	"github.com/jsamuelsen11/taskflow/internal/domain/event"
	"github.com/jsamuelsen11/taskflow/internal/routing"
)

// Target is the routing target name of the coordinator.
const Target = "task-creation"

// Routes returns the coordinator's routing table. Events caused by the
// coordinator's own commands carry its process id and are routed directly;
// anything else reaches the workflows the correlation supplier knows to be
// in flight for the task.
func Routes() routing.Table {
	return routing.Table{
		Target: Target,
		Subscribes: []event.Kind{
			event.KindDraftCreated,
			event.KindDraftFinalized,
			event.KindTaskDeleted,
		},
		Rules: map[event.Kind]routing.Rule{
			event.KindDraftCreated:   routing.ByProcess(),
			event.KindDraftFinalized: routing.ByProcess(),
		},
		Default: routing.ByProcesses(),
	}
}

// Observe folds a routed entity event into the workflow's progress markers.
// It reports whether the state changed; observing the same event again never
// changes it. Deleting the subject of a workflow that is still in progress
// cancels the workflow.
func Observe(s State, env event.Envelope) (State, bool) {
	next := s
	switch p := env.Payload.(type) {
	case event.DraftCreated:
		if p.TaskID == s.SubjectID {
			next.DraftCreated = true
		}
	case event.DraftFinalized:
		if p.TaskID == s.SubjectID {
			next.Finalized = true
		}
	case event.TaskDeleted:
		if p.Task.ID == s.SubjectID && !s.Stage.IsTerminal() {
			next.Stage = StageCanceled
			next.Archived = true
			next.SubjectDeleted = true
		}
	}

	if next == s {
		return s, false
	}
	next.Version++
	if !env.OccurredAt.IsZero() {
		next.UpdatedAt = env.OccurredAt
	}
	return next, true
}
