// Package store implements the persistence ports on top of a key/value
// Backend. Values are stored as JSON documents encoded with sonic, so every
// Load returns a private copy regardless of the backend.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bytedance/sonic"

	"github.com/jsamuelsen11/taskflow/internal/domain/aggregate"
	"github.com/jsamuelsen11/taskflow/internal/domain/workflow"
	"github.com/jsamuelsen11/taskflow/internal/ports"
	"github.com/jsamuelsen11/taskflow/internal/projection"
)

// ErrNotFound is returned by a Backend when no value is stored under a key.
var ErrNotFound = errors.New("store: key not found")

// Backend is a byte-oriented key/value store.
type Backend interface {
	// Get returns ErrNotFound when key is absent or expired.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// SetWithTTL stores value until ttl has passed.
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Key layout shared by all backends.
func workflowKey(processID string) string { return "workflow:" + processID }
func viewKey(view, id string) string      { return "view:" + view + ":" + id }
func taskKey(id string) string            { return "task:" + id }
func labelKey(id string) string           { return "label:" + id }

// Get decodes the document under key into a new T. The boolean is false
// when the key is absent.
func Get[T any](ctx context.Context, b Backend, key string) (*T, bool, error) {
	data, err := b.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("loading %s: %w", key, err)
	}

	v := new(T)
	if err := sonic.Unmarshal(data, v); err != nil {
		return nil, false, fmt.Errorf("decoding %s: %w", key, err)
	}
	return v, true, nil
}

// Put encodes v and stores it under key.
func Put(ctx context.Context, b Backend, key string, v any) error {
	data, err := sonic.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	if err := b.Set(ctx, key, data); err != nil {
		return fmt.Errorf("saving %s: %w", key, err)
	}
	return nil
}

// PutWithTTL is Put for a document that expires after ttl.
func PutWithTTL(ctx context.Context, b Backend, key string, v any, ttl time.Duration) error {
	data, err := sonic.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	if err := b.SetWithTTL(ctx, key, data, ttl); err != nil {
		return fmt.Errorf("saving %s: %w", key, err)
	}
	return nil
}

// WorkflowStore persists workflow state documents.
type WorkflowStore struct {
	backend Backend
}

var _ ports.WorkflowStore = (*WorkflowStore)(nil)

// NewWorkflowStore returns a WorkflowStore over b.
func NewWorkflowStore(b Backend) *WorkflowStore {
	return &WorkflowStore{backend: b}
}

// Load implements ports.WorkflowStore.
func (s *WorkflowStore) Load(ctx context.Context, processID string) (*workflow.State, error) {
	st, _, err := Get[workflow.State](ctx, s.backend, workflowKey(processID))
	return st, err
}

// Save implements ports.WorkflowStore.
func (s *WorkflowStore) Save(ctx context.Context, state workflow.State) error {
	return Put(ctx, s.backend, workflowKey(state.ProcessID), state)
}

// ViewStore persists view snapshots.
type ViewStore struct {
	backend Backend
}

var _ ports.ViewStore = (*ViewStore)(nil)

// NewViewStore returns a ViewStore over b.
func NewViewStore(b Backend) *ViewStore {
	return &ViewStore{backend: b}
}

// Load implements ports.ViewStore.
func (s *ViewStore) Load(ctx context.Context, view, id string) (projection.Snapshot, error) {
	snap, ok, err := Get[projection.Snapshot](ctx, s.backend, viewKey(view, id))
	if err != nil || !ok {
		return projection.Snapshot{}, err
	}
	return *snap, nil
}

// Save implements ports.ViewStore.
func (s *ViewStore) Save(ctx context.Context, snap projection.Snapshot) error {
	if snap.View == "" || snap.ID == "" {
		return fmt.Errorf("saving snapshot: view %q id %q must not be empty", snap.View, snap.ID)
	}
	return Put(ctx, s.backend, viewKey(snap.View, snap.ID), snap)
}

// TaskStore persists task entities.
type TaskStore struct {
	backend Backend
}

var _ ports.TaskStore = (*TaskStore)(nil)

func NewTaskStore(b Backend) *TaskStore {
	return &TaskStore{backend: b}
}

func (s *TaskStore) Load(ctx context.Context, id string) (*aggregate.Task, error) {
	t, _, err := Get[aggregate.Task](ctx, s.backend, taskKey(id))
	return t, err
}

func (s *TaskStore) Save(ctx context.Context, t *aggregate.Task) error {
	return Put(ctx, s.backend, taskKey(t.ID), t)
}

// LabelStore persists label entities.
type LabelStore struct {
	backend Backend
}

var _ ports.LabelStore = (*LabelStore)(nil)

func NewLabelStore(b Backend) *LabelStore {
	return &LabelStore{backend: b}
}

func (s *LabelStore) Load(ctx context.Context, id string) (*aggregate.Label, error) {
	l, _, err := Get[aggregate.Label](ctx, s.backend, labelKey(id))
	return l, err
}

func (s *LabelStore) Save(ctx context.Context, l *aggregate.Label) error {
	return Put(ctx, s.backend, labelKey(l.ID), l)
}
