package dynamo

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// ForEach runs fn(ctx, i) for i in [0, n) on at most workers goroutines and
// returns the first error to occur. Remaining calls see a canceled context
// once any call fails, and their errors are dropped.
func ForEach(ctx context.Context, n, workers int, fn func(ctx context.Context, i int) error) error {
	if n <= 0 {
		return nil
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, min(workers, n)))
	for i := 0; i < n; i++ {
		g.Go(func() error {
			return fn(ctx, i)
		})
	}
	return g.Wait()
}
