package enrichment

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen11/taskflow/internal/adapters/store"
	"github.com/jsamuelsen11/taskflow/internal/adapters/store/memory"
	"github.com/jsamuelsen11/taskflow/internal/domain/event"
	"github.com/jsamuelsen11/taskflow/internal/domain/label"
	"github.com/jsamuelsen11/taskflow/internal/domain/task"
)

type feed struct {
	t   *testing.T
	s   *Supplier
	seq int
}

func newFeed(t *testing.T) *feed {
	t.Helper()
	return &feed{t: t, s: New(memory.New())}
}

func (f *feed) envelope(entityID, processID string, p event.Payload) event.Envelope {
	f.seq++
	return event.Envelope{
		ID:        "e" + strconv.Itoa(f.seq),
		Kind:      p.Kind(),
		EntityID:  entityID,
		ProcessID: processID,
		Payload:   p,
	}
}

func (f *feed) enrich(env event.Envelope) *event.Enrichment {
	f.t.Helper()
	aux, err := f.s.Enrich(context.Background(), env)
	require.NoError(f.t, err)
	require.NotNil(f.t, aux)
	return aux
}

func (f *feed) send(entityID, processID string, p event.Payload) *event.Enrichment {
	f.t.Helper()
	return f.enrich(f.envelope(entityID, processID, p))
}

func TestSupplier_LabelsBeforeAndAfter(t *testing.T) {
	t.Parallel()
	f := newFeed(t)

	f.send("l1", "", event.LabelCreated{LabelID: "l1", Title: "home", Color: label.ColorGreen})
	f.send("t1", "", event.DraftCreated{TaskID: "t1"})

	aux := f.send("t1", "", event.LabelAssigned{TaskID: "t1", LabelID: "l1"})
	assert.Equal(t, []string{"l1"}, aux.LabelIDs)
	info, ok := aux.Label("l1")
	require.True(t, ok)
	assert.Equal(t, "home", info.Title)
	require.NotNil(t, aux.Subject)
	assert.Equal(t, task.StatusDraft, aux.Subject.Status)
	assert.Empty(t, aux.Subject.LabelIDs)

	aux = f.send("t1", "", event.DescriptionUpdated{TaskID: "t1", Description: "d"})
	assert.Equal(t, []string{"l1"}, aux.LabelIDs)

	aux = f.send("t1", "", event.LabelRemoved{TaskID: "t1", LabelID: "l1"})
	assert.Equal(t, []string{"l1"}, aux.LabelIDs, "removal still reaches the old label")

	aux = f.send("t1", "", event.DescriptionUpdated{TaskID: "t1", Description: "e"})
	assert.Empty(t, aux.LabelIDs)
	require.NotNil(t, aux.Subject)
	assert.Equal(t, "d", aux.Subject.Description, "subject is the task before the event")
}

func TestSupplier_LabelDetailsTracked(t *testing.T) {
	t.Parallel()
	f := newFeed(t)

	f.send("l1", "", event.LabelCreated{LabelID: "l1", Title: "", Color: label.DefaultColor})
	title := "errands"
	aux := f.send("l1", "", event.LabelDetailsUpdated{LabelID: "l1", Title: &title})
	assert.Equal(t, []string{"l1"}, aux.LabelIDs)

	f.send("t1", "", event.DraftCreated{TaskID: "t1"})
	aux = f.send("t1", "", event.LabelAssigned{TaskID: "t1", LabelID: "l1"})
	info, ok := aux.Label("l1")
	require.True(t, ok)
	assert.Equal(t, "errands", info.Title)
	assert.Equal(t, label.DefaultColor, info.Color)
}

func TestSupplier_ProcessesInFlight(t *testing.T) {
	t.Parallel()
	f := newFeed(t)

	f.send("p1", "", event.CreationStarted{ProcessID: "p1", SubjectID: "t1"})
	aux := f.send("t1", "p1", event.DraftCreated{TaskID: "t1"})
	assert.Equal(t, []string{"p1"}, aux.ProcessIDs)

	aux = f.send("t1", "", event.PriorityUpdated{TaskID: "t1", Priority: task.PriorityLow})
	assert.Equal(t, []string{"p1"}, aux.ProcessIDs)

	f.send("p1", "", event.CreationCompleted{ProcessID: "p1", SubjectID: "t1"})
	aux = f.send("t1", "", event.TaskDeleted{Task: task.Snapshot{ID: "t1"}})
	assert.Empty(t, aux.ProcessIDs)
}

func TestSupplier_DeletionReachesOpenWorkflowsOnce(t *testing.T) {
	t.Parallel()
	f := newFeed(t)

	aux := f.send("t1", "p1", event.DraftCreated{TaskID: "t1"})
	assert.Equal(t, []string{"p1"}, aux.ProcessIDs, "learned from the envelope before creation-started arrives")
	f.send("p1", "", event.CreationStarted{ProcessID: "p1", SubjectID: "t1"})

	aux = f.send("t1", "", event.TaskDeleted{Task: task.Snapshot{ID: "t1"}})
	assert.Equal(t, []string{"p1"}, aux.ProcessIDs)

	aux = f.send("t1", "", event.TaskRestored{Task: task.Snapshot{ID: "t1"}})
	assert.Empty(t, aux.ProcessIDs)
}

func TestSupplier_LateEventDoesNotReopenFinishedWorkflow(t *testing.T) {
	t.Parallel()
	f := newFeed(t)

	f.send("p1", "", event.CreationCanceled{ProcessID: "p1", SubjectID: "t1"})
	aux := f.send("t1", "p1", event.DraftCreated{TaskID: "t1"})
	assert.Empty(t, aux.ProcessIDs)
}

func TestSupplier_RedeliveryIsDeterministic(t *testing.T) {
	t.Parallel()
	f := newFeed(t)

	f.send("l1", "", event.LabelCreated{LabelID: "l1", Color: label.ColorRed})
	f.send("t1", "", event.DraftCreated{TaskID: "t1"})
	assign := f.envelope("t1", "", event.LabelAssigned{TaskID: "t1", LabelID: "l1"})

	first := f.enrich(assign)
	f.send("t1", "", event.DescriptionUpdated{TaskID: "t1", Description: "later"})
	again := f.enrich(assign)

	assert.Equal(t, first, again)
	require.NotNil(t, again.Subject)
	assert.Empty(t, again.Subject.Description)
}

func TestSupplier_WorkflowOnlyEvents(t *testing.T) {
	t.Parallel()
	f := newFeed(t)

	aux := f.send("p1", "", event.LabelsSkipped{ProcessID: "p1", SubjectID: "t1"})
	assert.Empty(t, aux.LabelIDs)
	assert.Empty(t, aux.ProcessIDs)
	assert.Nil(t, aux.Subject)
}

func TestSupplier_MemoExpires(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	backend := memory.New(memory.WithClock(func() time.Time { return now }))
	s := New(backend, WithMemoTTL(time.Hour))

	env := event.Envelope{ID: "e1", Kind: event.KindDraftCreated, EntityID: "t1", Payload: event.DraftCreated{TaskID: "t1"}}
	_, err := s.Enrich(ctx, env)
	require.NoError(t, err)

	_, err = backend.Get(ctx, memoKey("e1"))
	require.NoError(t, err, "memo stored after first enrichment")

	now = now.Add(time.Hour)

	_, err = backend.Get(ctx, memoKey("e1"))
	require.ErrorIs(t, err, store.ErrNotFound)
	_, err = backend.Get(ctx, taskKey("t1"))
	assert.NoError(t, err, "the task index does not expire")
}
