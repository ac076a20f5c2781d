package app

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// PartialResult is one fan-out outcome: a value or the error that replaced it.
type PartialResult[T any] struct {
	Value T
	Err   error
}

// ParallelPartial runs fns with at most limit in flight (limit <= 0 means
// unbounded) and returns every outcome in argument order. A failing fn does
// not cancel the others, and a panicking fn is reported as its error.
//
//	results := ParallelPartial(ctx, 4, postsSource.FetchQuotes, mirrorSource.FetchQuotes)
func ParallelPartial[T any](
	ctx context.Context,
	limit int,
	fns ...func(context.Context) (T, error),
) []PartialResult[T] {
	results := make([]PartialResult[T], len(fns))

	var g errgroup.Group
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i, fn := range fns {
		g.Go(func() error {
			results[i] = callRecovered(ctx, fn)
			return nil
		})
	}

	_ = g.Wait()

	return results
}

func callRecovered[T any](ctx context.Context, fn func(context.Context) (T, error)) (r PartialResult[T]) {
	defer func() {
		if p := recover(); p != nil {
			r = PartialResult[T]{Err: fmt.Errorf("panic: %v", p)}
		}
	}()

	value, err := fn(ctx)

	return PartialResult[T]{Value: value, Err: err}
}
