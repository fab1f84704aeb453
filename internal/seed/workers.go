package seed

import (
	"context"
	"sync"
)

// process feeds every item produced by each to fn on a pool of workers.
// each must stop and return when its callback returns an error; the
// callback only fails once ctx is cancelled.
func process[T any](
	ctx context.Context,
	workers int,
	each func(context.Context, func(T) error) error,
	fn func(context.Context, T),
) error {
	if workers < 1 {
		workers = 1
	}

	ch := make(chan T, workers*2)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for item := range ch {
				fn(ctx, item)
			}
		}()
	}

	err := each(ctx, func(item T) error {
		select {
		case ch <- item:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})
	close(ch)
	wg.Wait()
	return err
}

// fromSlice adapts a slice to the callback iteration process expects.
func fromSlice[T any](items []T) func(context.Context, func(T) error) error {
	return func(_ context.Context, fn func(T) error) error {
		for _, item := range items {
			if err := fn(item); err != nil {
				return err
			}
		}
		return nil
	}
}
