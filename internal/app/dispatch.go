package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/jsamuelsen11/taskflow/internal/domain/command"
	"github.com/jsamuelsen11/taskflow/internal/domain/event"
	"github.com/jsamuelsen11/taskflow/internal/ports"
)

// DispatchError reports the downstream command an entity refused. Steps
// before Step were accepted and stay applied.
type DispatchError struct {
	Step  int
	Total int
	Kind  command.Kind
	Err   error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("dispatching step %d/%d (%s): %v", e.Step, e.Total, e.Kind, e.Err)
}

func (e *DispatchError) Unwrap() error {
	return e.Err
}

// dispatchAll delivers cmds in order and stops at the first refusal.
// Nothing is rolled back.
func dispatchAll(ctx context.Context, d ports.CommandDispatcher, cmds []command.Downstream, meta command.Metadata, logger *slog.Logger) error {
	for i, cmd := range cmds {
		_, target := cmd.Target()
		logger.DebugContext(ctx, "dispatching command",
			slog.String("operation", "dispatchAll"),
			slog.Int("step", i+1),
			slog.Int("total", len(cmds)),
			slog.String("command", cmd.Kind().String()),
			slog.String("target", target),
		)

		if err := d.Dispatch(ctx, cmd, meta); err != nil {
			logger.ErrorContext(ctx, "command refused, stopping dispatch",
				slog.String("operation", "dispatchAll"),
				slog.Int("failed_step", i+1),
				slog.String("command", cmd.Kind().String()),
				slog.String("target", target),
				slog.Any("error", err),
			)
			return &DispatchError{Step: i + 1, Total: len(cmds), Kind: cmd.Kind(), Err: err}
		}
	}
	return nil
}

// newEnvelope wraps a payload for publication with a fresh event id.
func newEnvelope(p event.Payload, entityID, processID string, seq uint64, at time.Time) event.Envelope {
	return event.Envelope{
		ID:         uuid.NewString(),
		Kind:       p.Kind(),
		EntityID:   entityID,
		ProcessID:  processID,
		Sequence:   seq,
		OccurredAt: at,
		Payload:    p,
	}
}
