package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jsamuelsen11/taskflow/internal/app/keyed"
	"github.com/jsamuelsen11/taskflow/internal/domain"
	"github.com/jsamuelsen11/taskflow/internal/domain/aggregate"
	"github.com/jsamuelsen11/taskflow/internal/domain/command"
	"github.com/jsamuelsen11/taskflow/internal/domain/event"
	"github.com/jsamuelsen11/taskflow/internal/ports"
)

// Compile-time check that EntityDispatcher implements ports.CommandDispatcher.
var _ ports.CommandDispatcher = (*EntityDispatcher)(nil)

// EntityDispatcher delivers downstream commands to the task and label
// entities held in this process. Commands for one entity are serialized;
// the entity is loaded, handled, saved and its events are published before
// the next command for it starts.
type EntityDispatcher struct {
	tasks     ports.TaskStore
	labels    ports.LabelStore
	publisher ports.EventPublisher
	logger    *slog.Logger
	locks     *keyed.Locker
	now       func() time.Time
}

// NewEntityDispatcher creates an EntityDispatcher.
func NewEntityDispatcher(tasks ports.TaskStore, labels ports.LabelStore, publisher ports.EventPublisher, logger *slog.Logger) *EntityDispatcher {
	return &EntityDispatcher{
		tasks:     tasks,
		labels:    labels,
		publisher: publisher,
		logger:    logger,
		locks:     keyed.NewLocker(),
		now:       time.Now,
	}
}

// Dispatch handles cmd on its target entity.
func (d *EntityDispatcher) Dispatch(ctx context.Context, cmd command.Downstream, meta command.Metadata) error {
	typ, id := cmd.Target()

	unlock := d.locks.Lock(string(typ) + "/" + id)
	defer unlock()

	var (
		envs []event.Envelope
		err  error
	)
	switch typ {
	case command.EntityTask:
		envs, err = d.dispatchTask(ctx, id, cmd, meta)
	case command.EntityLabel:
		envs, err = d.dispatchLabel(ctx, id, cmd, meta)
	default:
		err = fmt.Errorf("unknown entity type %q: %w", typ, domain.ErrValidation)
	}
	if err != nil {
		return err
	}
	if len(envs) == 0 {
		d.logger.DebugContext(ctx, "command changed nothing",
			slog.String("command", cmd.Kind().String()),
			slog.String("entity_id", id),
		)
		return nil
	}

	if err := d.publisher.Publish(ctx, envs...); err != nil {
		d.logger.ErrorContext(ctx, "failed to publish entity events",
			slog.String("operation", "EntityDispatcher.Dispatch"),
			slog.String("entity_id", id),
			slog.Int("events", len(envs)),
			slog.Any("error", err),
		)
		return fmt.Errorf("publishing %s events: %w", cmd.Kind(), err)
	}
	return nil
}

func (d *EntityDispatcher) dispatchTask(ctx context.Context, id string, cmd command.Downstream, meta command.Metadata) ([]event.Envelope, error) {
	t, err := d.tasks.Load(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loading task %s: %w", id, err)
	}
	if t == nil {
		t = aggregate.NewTask(id)
	}

	payloads, err := t.Handle(cmd)
	if err != nil || len(payloads) == 0 {
		return nil, err
	}

	at := d.now().UTC()
	envs := make([]event.Envelope, 0, len(payloads))
	for _, p := range payloads {
		t.Apply(p)
		envs = append(envs, newEnvelope(p, id, meta.ProcessID, t.Version, at))
	}

	if err := d.tasks.Save(ctx, t); err != nil {
		return nil, fmt.Errorf("saving task %s: %w", id, err)
	}
	return envs, nil
}

func (d *EntityDispatcher) dispatchLabel(ctx context.Context, id string, cmd command.Downstream, meta command.Metadata) ([]event.Envelope, error) {
	l, err := d.labels.Load(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loading label %s: %w", id, err)
	}
	if l == nil {
		l = aggregate.NewLabel(id)
	}

	payloads, err := l.Handle(cmd)
	if err != nil || len(payloads) == 0 {
		return nil, err
	}

	at := d.now().UTC()
	envs := make([]event.Envelope, 0, len(payloads))
	for _, p := range payloads {
		l.Apply(p)
		envs = append(envs, newEnvelope(p, id, meta.ProcessID, l.Version, at))
	}

	if err := d.labels.Save(ctx, l); err != nil {
		return nil, fmt.Errorf("saving label %s: %w", id, err)
	}
	return envs, nil
}
