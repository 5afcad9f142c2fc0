// Package fanout partitions a contiguous index range across a fixed number
// of worker goroutines, shared by the hypercube index and the brute-force
// oracle's batch query entry points, which otherwise fan out queries the
// same way.
package fanout

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Run partitions [0,q) into workers contiguous batches (the last absorbs
// the remainder) and calls process once per index concurrently, stopping
// early if the context is canceled.
func Run(ctx context.Context, q, workers int, process func(i int)) error {
	if workers < 1 {
		workers = 1
	}
	if workers > q {
		workers = q
	}
	if workers == 0 {
		return nil
	}

	batch := q / workers
	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		start := w * batch
		end := start + batch
		if w == workers-1 {
			end = q
		}
		g.Go(func() error {
			for i := start; i < end; i++ {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}
				process(i)
			}
			return nil
		})
	}
	return g.Wait()
}
