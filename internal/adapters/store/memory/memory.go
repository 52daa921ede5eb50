// Package memory provides an in-process store.Backend.
package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/jsamuelsen11/taskflow/internal/adapters/store"
)

// sweepEvery is the number of writes between purges of expired keys.
const sweepEvery = 1024

type entry struct {
	value   []byte
	expires time.Time // zero for no expiry
}

func (e entry) expired(now time.Time) bool {
	return !e.expires.IsZero() && !now.Before(e.expires)
}

// Option configures a Backend.
type Option func(*Backend)

// WithClock replaces time.Now for expiry decisions.
func WithClock(now func() time.Time) Option {
	return func(b *Backend) { b.now = now }
}

// Backend keeps documents in a map. It is safe for concurrent use.
type Backend struct {
	mu     sync.RWMutex
	data   map[string]entry
	now    func() time.Time
	writes int
}

var _ store.Backend = (*Backend)(nil)

// New returns an empty Backend.
func New(opts ...Option) *Backend {
	b := &Backend{data: make(map[string]entry), now: time.Now}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Get implements store.Backend.
func (b *Backend) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	e, ok := b.data[key]
	if !ok || e.expired(b.now()) {
		return nil, store.ErrNotFound
	}
	return slices.Clone(e.value), nil
}

// Set implements store.Backend.
func (b *Backend) Set(ctx context.Context, key string, value []byte) error {
	return b.set(ctx, key, entry{value: slices.Clone(value)})
}

// SetWithTTL implements store.Backend.
func (b *Backend) SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return b.set(ctx, key, entry{value: slices.Clone(value), expires: b.now().Add(ttl)})
}

func (b *Backend) set(ctx context.Context, key string, e entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.data[key] = e
	if b.writes++; b.writes >= sweepEvery {
		b.writes = 0
		b.sweep()
	}
	return nil
}

// sweep drops expired keys. b.mu must be held.
func (b *Backend) sweep() {
	now := b.now()
	for k, e := range b.data {
		if e.expired(now) {
			delete(b.data, k)
		}
	}
}

// Len returns the number of keys that have not expired.
func (b *Backend) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sweep()
	return len(b.data)
}
