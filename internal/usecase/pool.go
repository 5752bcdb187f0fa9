package usecase

import (
	"context"

	"golang.org/x/sync/errgroup"
)

const defaultWorkers = 5

// forEach runs fn for every item on at most limit goroutines and waits for all
// of them. fn reports failures through its own results; a failing item never
// cancels its siblings.
func forEach[T any](ctx context.Context, limit int, items []T, fn func(ctx context.Context, i int, item T)) {
	if limit <= 0 {
		limit = defaultWorkers
	}

	var g errgroup.Group
	g.SetLimit(limit)
	for i, item := range items {
		g.Go(func() error {
			fn(ctx, i, item)
			return nil
		})
	}
	_ = g.Wait()
}
