// Package core holds the goroutine pool the renderer fans ray casting out
// to.
package core

import (
	"runtime"
	"sync"
)

type job struct {
	fn   func()
	done *sync.WaitGroup
}

// WorkerPool runs jobs on a fixed set of goroutines. Each ParallelFor call
// waits only for its own jobs, so concurrent callers share the pool.
type WorkerPool struct {
	numWorkers int
	jobs       chan job

	mu      sync.RWMutex // guards stopped against in-flight sends
	stopped bool
	quit    chan struct{}
	workers sync.WaitGroup
}

// NewWorkerPool creates a pool. numWorkers <= 0 uses the CPU count.
func NewWorkerPool(numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &WorkerPool{
		numWorkers: numWorkers,
		jobs:       make(chan job, numWorkers*2),
		quit:       make(chan struct{}),
	}
}

// Start launches the workers.
func (wp *WorkerPool) Start() {
	wp.workers.Add(wp.numWorkers)
	for i := 0; i < wp.numWorkers; i++ {
		go wp.run()
	}
}

func (wp *WorkerPool) run() {
	defer wp.workers.Done()
	for {
		select {
		case j := <-wp.jobs:
			j.exec()
		case <-wp.quit:
			wp.drain()
			return
		}
	}
}

// drain runs whatever is still queued.
func (wp *WorkerPool) drain() {
	for {
		select {
		case j := <-wp.jobs:
			j.exec()
		default:
			return
		}
	}
}

func (j job) exec() {
	defer j.done.Done()
	j.fn()
}

// enqueue hands a job to the workers. Once the pool is stopped the job runs
// on the caller.
func (wp *WorkerPool) enqueue(j job) {
	wp.mu.RLock()
	if wp.stopped {
		wp.mu.RUnlock()
		j.exec()
		return
	}
	wp.jobs <- j
	wp.mu.RUnlock()
}

// Stop shuts the workers down after the queue empties and waits for them to
// exit. Safe to call more than once.
func (wp *WorkerPool) Stop() {
	wp.mu.Lock()
	if wp.stopped {
		wp.mu.Unlock()
		return
	}
	wp.stopped = true
	close(wp.quit)
	wp.mu.Unlock()

	wp.workers.Wait()
	// Jobs queued on a pool that was never started.
	wp.drain()
}

// NumWorkers returns the number of workers in the pool.
func (wp *WorkerPool) NumWorkers() int {
	return wp.numWorkers
}

// ParallelFor runs fn for every value in [start, end), split into one
// contiguous chunk per worker, and returns once all chunks are done.
func (wp *WorkerPool) ParallelFor(start, end int, fn func(int)) {
	if start >= end {
		return
	}

	var done sync.WaitGroup
	chunk := max(1, (end-start+wp.numWorkers-1)/wp.numWorkers)
	for from := start; from < end; from += chunk {
		lo, hi := from, min(from+chunk, end)
		done.Add(1)
		wp.enqueue(job{done: &done, fn: func() {
			for i := lo; i < hi; i++ {
				fn(i)
			}
		}})
	}
	done.Wait()
}
