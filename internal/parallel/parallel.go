// Package parallel drives the data-parallel per-compile-unit phases of
// spec.md §5 (collection, binding, block building): a work-stealing pool
// bounded by GOMAXPROCS, with a sequential fallback for deterministic
// tests (Options.Sequential).
package parallel

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Run executes fn(i) for every i in [0, n), data-parallel unless
// sequential is true, bounded to GOMAXPROCS concurrent units (spec.md §5:
// "Phases H, I, J, and L are data-parallel per compile-unit using a
// work-stealing thread pool"). It returns the first error encountered;
// other in-flight units are allowed to finish rather than abandoned, since
// arenas are append-only and safe to leave partially visited.
func Run(ctx context.Context, n int, sequential bool, fn func(ctx context.Context, i int) error) error {
	if n == 0 {
		return nil
	}
	if sequential {
		for i := 0; i < n; i++ {
			if err := fn(ctx, i); err != nil {
				return err
			}
		}
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(runtime.GOMAXPROCS(0), n))
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			return fn(gctx, i)
		})
	}
	return g.Wait()
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
