package app

import (
	"context"
	"log/slog"
	"strings"

	"github.com/jsamuelsen11/taskflow/internal/domain"
	"github.com/jsamuelsen11/taskflow/internal/ports"
	"github.com/jsamuelsen11/taskflow/internal/projection"
)

// Compile-time check that ViewService implements ports.ViewService.
var _ ports.ViewService = (*ViewService)(nil)

// ViewService serves read model snapshots.
type ViewService struct {
	store  ports.ViewStore
	logger *slog.Logger
}

// NewViewService creates a ViewService.
func NewViewService(store ports.ViewStore, logger *slog.Logger) *ViewService {
	return &ViewService{store: store, logger: logger}
}

func (s *ViewService) AllTasks(ctx context.Context) (projection.Snapshot, error) {
	return s.load(ctx, projection.AllTasks, projection.AllTasksID)
}

func (s *ViewService) DeletedTasks(ctx context.Context) (projection.Snapshot, error) {
	return s.load(ctx, projection.DeletedTasks, projection.DeletedTasksID)
}

func (s *ViewService) Task(ctx context.Context, taskID string) (projection.Snapshot, error) {
	if strings.TrimSpace(taskID) == "" {
		return projection.Snapshot{}, &domain.ValidationError{Fields: map[string]string{"task_id": domain.MsgRequired}}
	}
	return s.load(ctx, projection.TaskDetails, taskID)
}

func (s *ViewService) LabelTasks(ctx context.Context, labelID string) (projection.Snapshot, error) {
	if strings.TrimSpace(labelID) == "" {
		return projection.Snapshot{}, &domain.ValidationError{Fields: map[string]string{"label_id": domain.MsgRequired}}
	}
	return s.load(ctx, projection.LabelTasks, labelID)
}

func (s *ViewService) load(ctx context.Context, view, id string) (projection.Snapshot, error) {
	snap, err := s.store.Load(ctx, view, id)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to load view",
			slog.String("operation", "ViewService.load"),
			slog.String("view", view),
			slog.String("id", id),
			slog.Any("error", err),
		)
		return projection.Snapshot{}, err
	}
	if snap.View == "" {
		return projection.Empty(view, id), nil
	}
	return snap, nil
}
