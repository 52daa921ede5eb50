package keyed

import (
	"context"
	"sync"
)

// Result holds the outcome of processing a single item.
// Either Value is populated (on success) or Err is non-nil (on failure).
type Result[R any] struct {
	Value R
	Err   error
}

// Run executes fn for each item using at most maxWorkers goroutines.
// Items that share a key run one after another in input order on the same
// goroutine; distinct keys run concurrently. Results are returned in input
// order.
//
// If ctx is canceled while a key group waits for a worker slot, every item
// of that group records ctx.Err() and fn is not called for them. Once a
// group holds a slot it runs to completion; fn is responsible for checking
// ctx.
//
// Run blocks until all groups complete. maxWorkers < 1 is treated as 1.
func Run[T, R any](ctx context.Context, maxWorkers int, items []T, key func(T) string, fn func(context.Context, T) (R, error)) []Result[R] {
	if len(items) == 0 {
		return []Result[R]{}
	}
	if maxWorkers < 1 {
		maxWorkers = 1
	}

	var order []string
	groups := make(map[string][]int)
	for i, it := range items {
		k := key(it)
		if _, ok := groups[k]; !ok {
			order = append(order, k)
		}
		groups[k] = append(groups[k], i)
	}

	results := make([]Result[R], len(items))
	sem := make(chan struct{}, maxWorkers)
	var wg sync.WaitGroup

	for _, k := range order {
		idxs := groups[k]
		wg.Add(1)
		go func() {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				for _, i := range idxs {
					results[i] = Result[R]{Err: ctx.Err()}
				}
				return
			}

			for _, i := range idxs {
				val, err := fn(ctx, items[i])
				results[i] = Result[R]{Value: val, Err: err}
			}
		}()
	}

	wg.Wait()
	return results
}

// FirstError returns the first non-nil error in input order.
func FirstError[R any](results []Result[R]) error {
	for _, r := range results {
		if r.Err != nil {
			return r.Err
		}
	}
	return nil
}
