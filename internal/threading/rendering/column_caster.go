package rendering

import (
	"hellgrid/internal/collision"
	"hellgrid/internal/threading/core"
)

const inlineThreshold = 8

// ColumnCaster spreads per-column wall rays over a worker pool.
type ColumnCaster struct {
	workerPool *core.WorkerPool
}

// NewColumnCaster starts a caster with the given number of workers
// (<= 0 uses the CPU count).
func NewColumnCaster(workers int) *ColumnCaster {
	pool := core.NewWorkerPool(workers)
	pool.Start()
	return &ColumnCaster{workerPool: pool}
}

// CastColumns calls cast for every column in [0, n) and returns the hits
// in column order. cast must be safe to call concurrently.
func (cc *ColumnCaster) CastColumns(n int, cast func(i int) collision.RayHit) []collision.RayHit {
	hits := make([]collision.RayHit, n)

	// Not worth the synchronisation for a handful of rays.
	if n <= inlineThreshold {
		for i := range hits {
			hits[i] = cast(i)
		}
		return hits
	}

	cc.workerPool.ParallelFor(0, n, func(i int) {
		hits[i] = cast(i)
	})
	return hits
}

// Stop shuts the worker pool down.
func (cc *ColumnCaster) Stop() {
	cc.workerPool.Stop()
}
