// Package enrichment implements the correlation supplier. It keeps an index
// built from the event stream itself (task state, label display data and
// the creation workflows in flight per task) and attaches the slice of that
// index an event needs before it is routed.
package enrichment

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/jsamuelsen11/taskflow/internal/adapters/store"
	"github.com/jsamuelsen11/taskflow/internal/domain/aggregate"
	"github.com/jsamuelsen11/taskflow/internal/domain/event"
	"github.com/jsamuelsen11/taskflow/internal/domain/label"
	"github.com/jsamuelsen11/taskflow/internal/platform/logging"
	"github.com/jsamuelsen11/taskflow/internal/ports"
)

// taskEntry is the indexed view of one task.
type taskEntry struct {
	Task *aggregate.Task `json:"task"`

	// Processes are the creation workflows in flight for the task.
	Processes []string `json:"processes,omitempty"`

	// Closed are workflows that already finished; a late event naming one
	// of them must not resurrect it.
	Closed []string `json:"closed,omitempty"`
}

func (e *taskEntry) open(processID string) {
	if processID == "" || slices.Contains(e.Closed, processID) || slices.Contains(e.Processes, processID) {
		return
	}
	e.Processes = append(e.Processes, processID)
}

func (e *taskEntry) close(processID string) {
	e.Processes = slices.DeleteFunc(e.Processes, func(id string) bool { return id == processID })
	if !slices.Contains(e.Closed, processID) {
		e.Closed = append(e.Closed, processID)
	}
}

// DefaultMemoTTL is how long the enrichment of an event is remembered.
const DefaultMemoTTL = 24 * time.Hour

// Option configures a Supplier.
type Option func(*Supplier)

// WithMemoTTL sets how long the enrichment of an event is remembered. It
// must outlast the redelivery window of the event channel.
func WithMemoTTL(ttl time.Duration) Option {
	return func(s *Supplier) {
		if ttl > 0 {
			s.memoTTL = ttl
		}
	}
}

// Supplier implements ports.EnrichmentSupplier. Every event is enriched
// once; the result is memoized by event id for the memo TTL, so a
// redelivered event receives exactly the enrichment of its first delivery.
// An event delivered again after the memo expired is enriched afresh.
type Supplier struct {
	mu      sync.Mutex
	backend store.Backend
	memoTTL time.Duration
}

var _ ports.EnrichmentSupplier = (*Supplier)(nil)

// New returns a Supplier keeping its index in backend.
func New(backend store.Backend, opts ...Option) *Supplier {
	s := &Supplier{backend: backend, memoTTL: DefaultMemoTTL}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Enrich implements ports.EnrichmentSupplier. The result is never nil.
func (s *Supplier) Enrich(ctx context.Context, env event.Envelope) (*event.Enrichment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if env.ID != "" {
		memo, ok, err := store.Get[event.Enrichment](ctx, s.backend, memoKey(env.ID))
		if err != nil {
			return nil, err
		}
		if ok {
			return memo, nil
		}
	}

	aux, err := s.enrich(ctx, env)
	if err != nil {
		return nil, fmt.Errorf("enriching %s %s: %w", env.Kind, env.ID, err)
	}

	if env.ID != "" {
		if err := store.PutWithTTL(ctx, s.backend, memoKey(env.ID), aux, s.memoTTL); err != nil {
			return nil, err
		}
	}

	logging.FromContext(ctx).DebugContext(ctx, "event enriched",
		slog.String("event_id", env.ID),
		slog.String("kind", env.Kind.String()),
		slog.Int("labels", len(aux.LabelIDs)),
		slog.Int("processes", len(aux.ProcessIDs)),
	)
	return aux, nil
}

func (s *Supplier) enrich(ctx context.Context, env event.Envelope) (*event.Enrichment, error) {
	switch p := env.Payload.(type) {
	case event.LabelCreated:
		info := label.Info{ID: p.LabelID, Title: p.Title, Color: p.Color}
		return labelEnrichment(info), store.Put(ctx, s.backend, labelKey(p.LabelID), info)

	case event.LabelDetailsUpdated:
		info, _, err := store.Get[label.Info](ctx, s.backend, labelKey(p.LabelID))
		if err != nil {
			return nil, err
		}
		if info == nil {
			info = &label.Info{ID: p.LabelID, Color: label.DefaultColor}
		}
		if p.Title != nil {
			info.Title = *p.Title
		}
		if p.Color != nil {
			info.Color = *p.Color
		}
		return labelEnrichment(*info), store.Put(ctx, s.backend, labelKey(p.LabelID), info)

	case event.CreationStarted:
		return &event.Enrichment{}, s.updateTask(ctx, p.SubjectID, func(e *taskEntry) { e.open(p.ProcessID) })

	case event.CreationCompleted:
		return &event.Enrichment{}, s.updateTask(ctx, p.SubjectID, func(e *taskEntry) { e.close(p.ProcessID) })

	case event.CreationCanceled:
		return &event.Enrichment{}, s.updateTask(ctx, p.SubjectID, func(e *taskEntry) { e.close(p.ProcessID) })

	case event.LabelsSkipped, nil:
		return &event.Enrichment{}, nil

	default:
		return s.enrichTask(ctx, env)
	}
}

// enrichTask handles every event whose entity is a task.
func (s *Supplier) enrichTask(ctx context.Context, env event.Envelope) (*event.Enrichment, error) {
	entry, err := s.loadTask(ctx, env.EntityID)
	if err != nil {
		return nil, err
	}

	aux := &event.Enrichment{ProcessIDs: slices.Clone(entry.Processes)}
	if entry.Task.Exists() {
		subject := entry.Task.Snapshot()
		aux.Subject = &subject
	}

	before := slices.Clone(entry.Task.LabelIDs)
	entry.Task.Apply(env.Payload)

	switch p := env.Payload.(type) {
	case event.DraftCreated:
		entry.open(env.ProcessID)
		if env.ProcessID != "" && !slices.Contains(aux.ProcessIDs, env.ProcessID) && slices.Contains(entry.Processes, env.ProcessID) {
			aux.ProcessIDs = append(aux.ProcessIDs, env.ProcessID)
		}
	case event.LabelAssigned:
		before = append(before, p.LabelID)
	case event.LabelRemoved:
		before = append(before, p.LabelID)
	case event.TaskDeleted:
		for _, pid := range slices.Clone(entry.Processes) {
			entry.close(pid)
		}
	}

	aux.LabelIDs = union(before, entry.Task.LabelIDs)
	if err := s.attachLabels(ctx, aux); err != nil {
		return nil, err
	}

	if err := store.Put(ctx, s.backend, taskKey(env.EntityID), entry); err != nil {
		return nil, err
	}
	return aux, nil
}

func (s *Supplier) attachLabels(ctx context.Context, aux *event.Enrichment) error {
	for _, id := range aux.LabelIDs {
		info, ok, err := store.Get[label.Info](ctx, s.backend, labelKey(id))
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		if aux.Labels == nil {
			aux.Labels = make(map[string]label.Info, len(aux.LabelIDs))
		}
		aux.Labels[id] = *info
	}
	return nil
}

func (s *Supplier) updateTask(ctx context.Context, taskID string, fn func(*taskEntry)) error {
	if taskID == "" {
		return nil
	}
	entry, err := s.loadTask(ctx, taskID)
	if err != nil {
		return err
	}
	fn(entry)
	return store.Put(ctx, s.backend, taskKey(taskID), entry)
}

func (s *Supplier) loadTask(ctx context.Context, taskID string) (*taskEntry, error) {
	entry, ok, err := store.Get[taskEntry](ctx, s.backend, taskKey(taskID))
	if err != nil {
		return nil, err
	}
	if !ok || entry.Task == nil {
		return &taskEntry{Task: aggregate.NewTask(taskID)}, nil
	}
	return entry, nil
}

func labelEnrichment(info label.Info) *event.Enrichment {
	return &event.Enrichment{
		LabelIDs: []string{info.ID},
		Labels:   map[string]label.Info{info.ID: info},
	}
}

// union returns the distinct ids of a followed by those of b, in order.
func union(a, b []string) []string {
	out := make([]string, 0, len(a)+len(b))
	for _, id := range slices.Concat(a, b) {
		if id != "" && !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}

func memoKey(eventID string) string  { return "enrichment:event:" + eventID }
func taskKey(taskID string) string   { return "enrichment:task:" + taskID }
func labelKey(labelID string) string { return "enrichment:label:" + labelID }
