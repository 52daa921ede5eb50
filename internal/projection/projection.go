package projection

import (
	"github.com/jsamuelsen11/taskflow/internal/domain/event"
	"github.com/jsamuelsen11/taskflow/internal/routing"
)

// View names.
const (
	AllTasks     = "all-tasks"
	TaskDetails  = "task-details"
	DeletedTasks = "deleted-tasks"
	LabelTasks   = "label-tasks"
)

// Well-known identities of the singleton views.
const (
	AllTasksID     = "all-tasks"
	DeletedTasksID = "deleted-tasks"
)

// foldFunc changes the body of next for one event. next is a private copy.
type foldFunc func(next *Snapshot, env event.Envelope, aux *event.Enrichment)

// Projection is one read model: where events go and how they fold.
type Projection struct {
	table routing.Table
	fold  foldFunc
}

// Name returns the view name, which is also its routing target.
func (p Projection) Name() string {
	return p.table.Target
}

// Table returns the routing table of the view.
func (p Projection) Table() routing.Table {
	return p.table
}

// Fold applies env to the view instance id. prior may be the zero Snapshot
// for an instance that does not exist yet. Folding an event that prior has
// already absorbed returns prior unchanged.
func (p Projection) Fold(id string, prior Snapshot, env event.Envelope, aux *event.Enrichment) Snapshot {
	if prior.View == "" {
		prior = Empty(p.Name(), id)
	}
	if prior.Seen(env) {
		return prior
	}

	next := prior.clone()
	p.fold(&next, env, aux)
	next.remember(env)
	next.Version++
	if !env.OccurredAt.IsZero() {
		next.UpdatedAt = env.OccurredAt
	}
	return next
}

// All returns every read model in registration order.
func All() []Projection {
	return []Projection{
		allTasks(),
		taskDetails(),
		deletedTasks(),
		labelTasks(),
	}
}

// ByName indexes projections by view name.
func ByName(ps []Projection) map[string]Projection {
	out := make(map[string]Projection, len(ps))
	for _, p := range ps {
		out[p.Name()] = p
	}
	return out
}
