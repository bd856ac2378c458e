// Package parallel provides worker partitioning utilities for Lattice kernels.
package parallel

import (
	"sync"

	"golang.org/x/sync/errgroup"
)

// Config controls parallel execution behavior. Kernels derive it from
// the execution environment they were constructed with.
type Config struct {
	Workers  int // Number of worker goroutines to use.
	MinChunk int // Minimum items per goroutine to avoid overhead.
}

// For executes f(i) for i in [0, n), partitioned across workers in
// contiguous chunks. Each invocation must own a disjoint region of any
// shared output. Falls back to sequential execution when n is small or
// only one worker is configured.
func For(n int, f func(i int), cfg Config) {
	if cfg.Workers <= 1 || n < cfg.MinChunk {
		for i := 0; i < n; i++ {
			f(i)
		}
		return
	}

	var wg sync.WaitGroup
	chunkSize := max((n+cfg.Workers-1)/cfg.Workers, cfg.MinChunk)

	for start := 0; start < n; start += chunkSize {
		end := min(start+chunkSize, n)
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			for i := s; i < e; i++ {
				f(i)
			}
		}(start, end)
	}
	wg.Wait()
}

// ForError is For with error propagation: the first non-nil error stops
// no other worker (kernels do not support mid-flight cancellation) but
// is returned once all chunks finish.
func ForError(n int, f func(i int) error, cfg Config) error {
	if cfg.Workers <= 1 || n < cfg.MinChunk {
		for i := 0; i < n; i++ {
			if err := f(i); err != nil {
				return err
			}
		}
		return nil
	}

	var g errgroup.Group
	chunkSize := max((n+cfg.Workers-1)/cfg.Workers, cfg.MinChunk)

	for start := 0; start < n; start += chunkSize {
		s, e := start, min(start+chunkSize, n)
		g.Go(func() error {
			for i := s; i < e; i++ {
				if err := f(i); err != nil {
					return err
				}
			}
			return nil
		})
	}
	return g.Wait()
}
