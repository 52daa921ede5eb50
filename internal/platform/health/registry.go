// Package health runs the readiness checks of the service's dependencies.
package health

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jsamuelsen11/taskflow/internal/ports"
)

var _ ports.HealthRegistry = (*Registry)(nil)

// DefaultCheckTimeout bounds a single check when New is given zero.
const DefaultCheckTimeout = 2 * time.Second

type entry struct {
	checker     ports.HealthChecker
	criticality ports.Criticality
}

// Registry runs its checks concurrently, each under its own timeout.
type Registry struct {
	timeout time.Duration

	mu      sync.RWMutex
	entries []entry
}

// New returns an empty registry bounding each check by timeout.
func New(timeout time.Duration) *Registry {
	if timeout <= 0 {
		timeout = DefaultCheckTimeout
	}
	return &Registry{timeout: timeout}
}

// Register adds checker. Registering a name twice replaces the earlier one.
func (r *Registry) Register(checker ports.HealthChecker, criticality ports.Criticality) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, e := range r.entries {
		if e.checker.Name() == checker.Name() {
			r.entries[i] = entry{checker, criticality}
			return
		}
	}
	r.entries = append(r.entries, entry{checker, criticality})
}

// CheckAll implements ports.HealthRegistry.
func (r *Registry) CheckAll(ctx context.Context) map[string]ports.CheckResult {
	r.mu.RLock()
	entries := append([]entry(nil), r.entries...)
	r.mu.RUnlock()

	results := make([]ports.CheckResult, len(entries))
	var g errgroup.Group
	for i, e := range entries {
		g.Go(func() error {
			results[i] = r.check(ctx, e)
			return nil
		})
	}
	_ = g.Wait()

	out := make(map[string]ports.CheckResult, len(entries))
	for i, e := range entries {
		out[e.checker.Name()] = results[i]
	}
	return out
}

func (r *Registry) check(ctx context.Context, e entry) ports.CheckResult {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	start := time.Now()
	err := e.checker.HealthCheck(ctx)
	if err == nil && ctx.Err() != nil {
		err = ctx.Err()
	}
	return ports.CheckResult{
		Err:         err,
		Criticality: e.criticality,
		Latency:     time.Since(start),
	}
}
