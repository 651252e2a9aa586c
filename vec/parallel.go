package vec

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Partition splits [0, Len()) into up to workers contiguous ranges and runs
// fn for each range on its own goroutine with a detached cursor positioned
// at lo. It returns the first error; the context passed to fn is cancelled
// once any call fails.
//
// fn may read and write elements in [lo, hi) only, and must not call
// anything that changes length or capacity: a resize replaces the buffer
// under every other worker.
func (v *Vec) Partition(ctx context.Context, workers int, fn func(ctx context.Context, c *Cursor, lo, hi int) error) error {
	length := v.Len()
	if length == 0 {
		return nil
	}
	workers = min(max(workers, 1), length)
	chunk := (length + workers - 1) / workers

	g, gctx := errgroup.WithContext(ctx)
	for lo := 0; lo < length; lo += chunk {
		hi := min(lo+chunk, length)
		c := &Cursor{vec: v, offset: lo * v.typ.layout.ElementSize()}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return fn(gctx, c, lo, hi)
		})
	}
	return g.Wait()
}
