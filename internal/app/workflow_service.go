package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/metric"

	"github.com/jsamuelsen11/taskflow/internal/app/keyed"
	"github.com/jsamuelsen11/taskflow/internal/domain"
	"github.com/jsamuelsen11/taskflow/internal/domain/command"
	"github.com/jsamuelsen11/taskflow/internal/domain/event"
	"github.com/jsamuelsen11/taskflow/internal/domain/workflow"
	"github.com/jsamuelsen11/taskflow/internal/platform/telemetry"
	"github.com/jsamuelsen11/taskflow/internal/ports"
)

// Compile-time check that WorkflowService implements ports.WorkflowService.
var _ ports.WorkflowService = (*WorkflowService)(nil)

// Outcome values recorded on the workflow.commands counter.
const (
	outcomeAccepted       = "accepted"
	outcomeRejected       = "rejected"
	outcomeDispatchFailed = "dispatch_failed"
	outcomeError          = "error"
)

// WorkflowService runs the task creation coordinator. Each command is
// handled in two phases: the transition is decided and saved while the
// process is locked, then the emitted commands are dispatched and the
// workflow events published without the lock. The phases share no
// transaction; a crash between them leaves a stalled workflow. Because
// dispatch runs unlocked, the downstream commands of two commands handled
// concurrently for one process may interleave: a finalize-draft can reach
// the task before the update-description of an earlier UpdateDetails.
type WorkflowService struct {
	store      ports.WorkflowStore
	dispatcher ports.CommandDispatcher
	publisher  ports.EventPublisher
	metrics    *telemetry.Metrics
	logger     *slog.Logger
	locks      *keyed.Locker
	now        func() time.Time
}

// NewWorkflowService creates a WorkflowService.
func NewWorkflowService(
	store ports.WorkflowStore,
	dispatcher ports.CommandDispatcher,
	publisher ports.EventPublisher,
	metrics *telemetry.Metrics,
	logger *slog.Logger,
) *WorkflowService {
	return &WorkflowService{
		store:      store,
		dispatcher: dispatcher,
		publisher:  publisher,
		metrics:    metrics,
		logger:     logger,
		locks:      keyed.NewLocker(),
		now:        time.Now,
	}
}

// Handle applies a driving command. See ports.WorkflowService.
func (s *WorkflowService) Handle(ctx context.Context, cmd command.Driving) (*workflow.State, error) {
	pid := cmd.Process()
	s.logger.InfoContext(ctx, "handling workflow command",
		slog.String("command", cmd.Kind().String()),
		slog.String("process_id", pid),
	)

	d, err := s.decide(ctx, cmd)
	if err != nil {
		var rerr *domain.RejectionError
		switch {
		case errors.As(err, &rerr), errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrNotFound):
			s.logger.WarnContext(ctx, "workflow command rejected",
				slog.String("command", cmd.Kind().String()),
				slog.String("process_id", pid),
				slog.Any("error", err),
			)
			s.record(ctx, cmd, outcomeRejected)
		default:
			s.logger.ErrorContext(ctx, "failed to handle workflow command",
				slog.String("operation", "WorkflowService.Handle"),
				slog.String("process_id", pid),
				slog.Any("error", err),
			)
			s.record(ctx, cmd, outcomeError)
		}
		return nil, err
	}

	meta := command.Metadata{ProcessID: pid}
	if err := dispatchAll(ctx, s.dispatcher, d.Commands, meta, s.logger); err != nil {
		s.record(ctx, cmd, outcomeDispatchFailed)
		return nil, err
	}

	if err := s.publish(ctx, d); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish workflow events",
			slog.String("operation", "WorkflowService.Handle"),
			slog.String("process_id", pid),
			slog.Any("error", err),
		)
		s.record(ctx, cmd, outcomeError)
		return nil, err
	}

	s.record(ctx, cmd, outcomeAccepted)
	state := d.State
	return &state, nil
}

// decide runs the transition and saves it under the process lock.
func (s *WorkflowService) decide(ctx context.Context, cmd command.Driving) (workflow.Decision, error) {
	unlock := s.locks.Lock(cmd.Process())
	defer unlock()

	prior, err := s.store.Load(ctx, cmd.Process())
	if err != nil {
		return workflow.Decision{}, fmt.Errorf("loading workflow %s: %w", cmd.Process(), err)
	}

	d, err := workflow.Decide(prior, cmd, s.now().UTC())
	if err != nil {
		return workflow.Decision{}, err
	}

	if err := s.store.Save(ctx, d.State); err != nil {
		return workflow.Decision{}, fmt.Errorf("saving workflow %s: %w", cmd.Process(), err)
	}
	return d, nil
}

func (s *WorkflowService) publish(ctx context.Context, d workflow.Decision) error {
	if len(d.Events) == 0 {
		return nil
	}
	envs := make([]event.Envelope, 0, len(d.Events))
	for _, p := range d.Events {
		envs = append(envs, newEnvelope(p, d.State.ProcessID, d.State.ProcessID, d.State.Version, d.State.UpdatedAt))
	}
	return s.publisher.Publish(ctx, envs...)
}

// Get returns the current state of a workflow.
func (s *WorkflowService) Get(ctx context.Context, processID string) (*workflow.State, error) {
	state, err := s.store.Load(ctx, processID)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to load workflow",
			slog.String("operation", "WorkflowService.Get"),
			slog.String("process_id", processID),
			slog.Any("error", err),
		)
		return nil, err
	}
	if state == nil {
		return nil, fmt.Errorf("workflow %s: %w", processID, domain.ErrNotFound)
	}
	return state, nil
}

// Observe folds a routed entity event into the workflow processID. Events
// for workflows this service never started are ignored.
func (s *WorkflowService) Observe(ctx context.Context, processID string, env event.Envelope) error {
	unlock := s.locks.Lock(processID)
	defer unlock()

	state, err := s.store.Load(ctx, processID)
	if err != nil {
		return fmt.Errorf("loading workflow %s: %w", processID, err)
	}
	if state == nil {
		s.logger.DebugContext(ctx, "event for unknown workflow ignored",
			slog.String("process_id", processID),
			slog.String("event_id", env.ID),
		)
		return nil
	}

	next, changed := workflow.Observe(*state, env)
	if !changed {
		return nil
	}
	if next.SubjectDeleted && !state.SubjectDeleted {
		s.logger.InfoContext(ctx, "workflow canceled by subject deletion",
			slog.String("process_id", processID),
			slog.String("subject_id", next.SubjectID),
		)
	}
	if err := s.store.Save(ctx, next); err != nil {
		return fmt.Errorf("saving workflow %s: %w", processID, err)
	}
	return nil
}

func (s *WorkflowService) record(ctx context.Context, cmd command.Driving, outcome string) {
	s.metrics.WorkflowCommands.Add(ctx, 1, metric.WithAttributes(
		telemetry.AttrCommand.String(cmd.Kind().String()),
		telemetry.AttrResult.String(outcome),
	))
}
