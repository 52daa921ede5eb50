package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen11/taskflow/internal/adapters/store"
	"github.com/jsamuelsen11/taskflow/internal/adapters/store/memory"
	"github.com/jsamuelsen11/taskflow/internal/domain/aggregate"
	"github.com/jsamuelsen11/taskflow/internal/domain/label"
	"github.com/jsamuelsen11/taskflow/internal/domain/task"
	"github.com/jsamuelsen11/taskflow/internal/domain/workflow"
	"github.com/jsamuelsen11/taskflow/internal/projection"
)

var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestWorkflowStore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := store.NewWorkflowStore(memory.New())

	got, err := s.Load(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, got)

	want := workflow.State{
		ProcessID:      "p1",
		SubjectID:      "t1",
		Stage:          workflow.StageLabeling,
		DescriptionSet: true,
		LabelsCreated:  2,
		Version:        3,
		StartedAt:      now,
		UpdatedAt:      now.Add(time.Minute),
	}
	require.NoError(t, s.Save(ctx, want))

	got, err = s.Load(ctx, "p1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want.SubjectID, got.SubjectID)
	assert.Equal(t, want.Stage, got.Stage)
	assert.True(t, got.DescriptionSet)
	assert.Equal(t, 2, got.LabelsCreated)
	assert.Equal(t, uint64(3), got.Version)
	assert.True(t, want.UpdatedAt.Equal(got.UpdatedAt))
}

func TestViewStore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := store.NewViewStore(memory.New())

	t.Run("absent view is zero", func(t *testing.T) {
		t.Parallel()
		got, err := s.Load(ctx, projection.AllTasks, "nope")
		require.NoError(t, err)
		assert.Equal(t, uint64(0), got.Version)
		assert.Empty(t, got.Items)
	})

	t.Run("blank identity is rejected", func(t *testing.T) {
		t.Parallel()
		err := s.Save(ctx, projection.Snapshot{View: projection.TaskDetails})
		assert.Error(t, err)
	})

	t.Run("loaded snapshots are private copies", func(t *testing.T) {
		t.Parallel()
		snap := projection.Snapshot{
			View:    projection.LabelTasks,
			ID:      "l1",
			Version: 2,
			Items: []projection.Item{{
				SubjectID:  "t1",
				Status:     task.StatusDraft,
				LabelID:    "l1",
				LabelColor: label.ColorBlue,
			}},
			Applied:   []string{"e1", "e2"},
			UpdatedAt: now,
		}
		require.NoError(t, s.Save(ctx, snap))

		first, err := s.Load(ctx, projection.LabelTasks, "l1")
		require.NoError(t, err)
		first.Items[0].Description = "mutated"

		second, err := s.Load(ctx, projection.LabelTasks, "l1")
		require.NoError(t, err)
		assert.Empty(t, second.Items[0].Description)
		assert.Equal(t, []string{"e1", "e2"}, second.Applied)
		assert.Equal(t, label.ColorBlue, second.Items[0].LabelColor)
	})
}

func TestEntityStores(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	backend := memory.New()
	tasks := store.NewTaskStore(backend)
	labels := store.NewLabelStore(backend)

	due := now.Add(48 * time.Hour)
	tk := &aggregate.Task{
		ID:          "t1",
		Description: "write tests",
		Priority:    task.PriorityHigh,
		DueDate:     &due,
		Status:      task.StatusDraft,
		LabelIDs:    []string{"l1"},
		Version:     4,
	}
	require.NoError(t, tasks.Save(ctx, tk))
	require.NoError(t, labels.Save(ctx, &aggregate.Label{ID: "t1", Title: "same id", Color: label.ColorRed, Version: 1}))

	gotTask, err := tasks.Load(ctx, "t1")
	require.NoError(t, err)
	require.NotNil(t, gotTask)
	assert.Equal(t, "write tests", gotTask.Description)
	assert.Equal(t, []string{"l1"}, gotTask.LabelIDs)
	require.NotNil(t, gotTask.DueDate)
	assert.True(t, due.Equal(*gotTask.DueDate))

	gotLabel, err := labels.Load(ctx, "t1")
	require.NoError(t, err)
	require.NotNil(t, gotLabel)
	assert.Equal(t, "same id", gotLabel.Title)

	missing, err := labels.Load(ctx, "l404")
	require.NoError(t, err)
	assert.Nil(t, missing)

	assert.Equal(t, 2, backend.Len())
}

func TestStore_CanceledContext(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := store.NewTaskStore(memory.New())
	_, err := s.Load(ctx, "t1")
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, s.Save(ctx, aggregate.NewTask("t1")), context.Canceled)
}
