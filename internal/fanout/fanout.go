// Package fanout runs independent outbound calls concurrently and joins
// whichever finish. One goroutine per item: the group is bounded by the
// caller's input, not by a worker pool.
package fanout

import (
	"context"
	"sync"
)

// Map calls fn once per item, all concurrently, and returns results and
// errors positionally (results[i] and errs[i] belong to items[i]). It always
// waits for every call; each call carries its own failure in isolation.
func Map[T any, R any](ctx context.Context, items []T, fn func(ctx context.Context, item T) (R, error)) ([]R, []error) {
	results := make([]R, len(items))
	errs := make([]error, len(items))
	if len(items) == 0 {
		return results, errs
	}

	var wg sync.WaitGroup
	for i := range items {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = fn(ctx, items[i])
		}(i)
	}
	wg.Wait()
	return results, errs
}
