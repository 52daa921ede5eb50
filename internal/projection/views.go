package projection

import (
	"github.com/jsamuelsen11/taskflow/internal/domain/event"
	"github.com/jsamuelsen11/taskflow/internal/domain/task"
	"github.com/jsamuelsen11/taskflow/internal/routing"
)

// taskKinds are the task lifecycle events every task view absorbs.
var taskKinds = []event.Kind{
	event.KindDraftCreated,
	event.KindDescriptionUpdated,
	event.KindPriorityUpdated,
	event.KindDueDateUpdated,
	event.KindDraftFinalized,
	event.KindTaskCompleted,
	event.KindTaskReopened,
	event.KindTaskDeleted,
	event.KindTaskRestored,
}

func allTasks() Projection {
	return Projection{
		table: routing.Table{
			Target:     AllTasks,
			Subscribes: taskKinds,
			Default:    routing.Static(AllTasksID),
		},
		fold: foldTask,
	}
}

func taskDetails() Projection {
	return Projection{
		table: routing.Table{
			Target:     TaskDetails,
			Subscribes: taskKinds,
			Default:    routing.ByEntity(),
		},
		fold: foldTask,
	}
}

// foldTask maintains the positive task views.
func foldTask(s *Snapshot, env event.Envelope, _ *event.Enrichment) {
	switch p := env.Payload.(type) {
	case event.DraftCreated:
		s.insert(Item{SubjectID: p.TaskID, Priority: task.PriorityNone, Status: task.StatusDraft})
	case event.TaskDeleted:
		s.remove(p.Task.ID)
	case event.TaskRestored:
		s.upsert(itemFromTask(p.Task))
	default:
		updateFields(s, env)
	}
}

// updateFields applies a field update event to an existing item.
func updateFields(s *Snapshot, env event.Envelope) {
	switch p := env.Payload.(type) {
	case event.DescriptionUpdated:
		s.update(p.TaskID, func(it *Item) { it.Description = p.Description })
	case event.PriorityUpdated:
		s.update(p.TaskID, func(it *Item) { it.Priority = p.Priority })
	case event.DueDateUpdated:
		s.update(p.TaskID, func(it *Item) {
			it.DueDate = nil
			if p.DueDate != nil {
				due := *p.DueDate
				it.DueDate = &due
			}
		})
	case event.DraftFinalized:
		s.update(p.TaskID, func(it *Item) { it.Status = task.StatusFinalized })
	case event.TaskCompleted:
		s.update(p.TaskID, func(it *Item) { it.Completed = true })
	case event.TaskReopened:
		s.update(p.TaskID, func(it *Item) { it.Completed = false })
	}
}

func deletedTasks() Projection {
	return Projection{
		table: routing.Table{
			Target:     DeletedTasks,
			Subscribes: []event.Kind{event.KindTaskDeleted, event.KindTaskRestored},
			Default:    routing.Static(DeletedTasksID),
		},
		fold: func(s *Snapshot, env event.Envelope, _ *event.Enrichment) {
			switch p := env.Payload.(type) {
			case event.TaskDeleted:
				s.upsert(itemFromTask(p.Task))
			case event.TaskRestored:
				s.remove(p.Task.ID)
			}
		},
	}
}

// labelTasks lists the tasks carrying one label. An assignment names its
// label on the payload; every other task event reaches the views of the
// labels the task carried before or after it, as attached by the
// correlation supplier.
func labelTasks() Projection {
	byAssigned := routing.Direct(func(env event.Envelope) string {
		if p, ok := env.Payload.(event.LabelAssigned); ok {
			return p.LabelID
		}
		return ""
	})

	subscribes := append([]event.Kind{
		event.KindLabelAssigned,
		event.KindLabelRemoved,
		event.KindLabelDetailsUpdated,
	}, taskKinds[1:]...)

	return Projection{
		table: routing.Table{
			Target:     LabelTasks,
			Subscribes: subscribes,
			Rules: map[event.Kind]routing.Rule{
				event.KindLabelAssigned:       byAssigned,
				event.KindLabelDetailsUpdated: routing.ByEntity(),
			},
			Default: routing.ByLabels(),
		},
		fold: foldLabel,
	}
}

func foldLabel(s *Snapshot, env event.Envelope, aux *event.Enrichment) {
	switch p := env.Payload.(type) {
	case event.LabelAssigned:
		if p.LabelID != s.ID {
			return
		}
		item := Item{SubjectID: p.TaskID, Status: task.StatusDraft}
		if aux != nil && aux.Subject != nil && aux.Subject.ID == p.TaskID {
			item = itemFromTask(*aux.Subject)
		}
		stampLabel(&item, s.ID, aux)
		s.upsert(item)

	case event.LabelRemoved:
		if p.LabelID == s.ID {
			s.remove(p.TaskID)
		}

	case event.LabelDetailsUpdated:
		for i := range s.Items {
			if p.Title != nil {
				s.Items[i].LabelTitle = *p.Title
			}
			if p.Color != nil {
				s.Items[i].LabelColor = *p.Color
			}
		}

	case event.TaskDeleted:
		s.remove(p.Task.ID)

	case event.TaskRestored:
		item := itemFromTask(p.Task)
		stampLabel(&item, s.ID, aux)
		s.upsert(item)

	default:
		updateFields(s, env)
	}
}

// stampLabel copies the label's display data as currently known.
func stampLabel(item *Item, labelID string, aux *event.Enrichment) {
	item.LabelID = labelID
	if info, ok := aux.Label(labelID); ok {
		item.LabelTitle = info.Title
		item.LabelColor = info.Color
	}
}
