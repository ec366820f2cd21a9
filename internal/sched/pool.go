// Package sched provides the persistent worker pool behind the bulk-
// parallel dispatch wrapper. A Pool is created once and reused across many
// operator applications; workers are spawned at creation and fed chunked
// index ranges, so the per-application overhead is one channel send per
// worker.
package sched

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool is a persistent worker pool.
type Pool struct {
	numWorkers int
	workC      chan workItem
	closeOnce  sync.Once
	closed     atomic.Bool
}

type workItem struct {
	fn      func()
	barrier *sync.WaitGroup
}

// New creates a pool with the given number of workers, or GOMAXPROCS when
// numWorkers <= 0. Workers persist until Close.
func New(numWorkers int) *Pool {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	p := &Pool{
		numWorkers: numWorkers,
		workC:      make(chan workItem, numWorkers*2),
	}

	for i := 0; i < numWorkers; i++ {
		go p.worker()
	}

	return p
}

func (p *Pool) worker() {
	for item := range p.workC {
		item.fn()
		item.barrier.Done()
	}
}

// NumWorkers returns the pool size.
func (p *Pool) NumWorkers() int { return p.numWorkers }

// Close shuts the pool down. Pending work completes; calling Close more
// than once is safe.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		p.closed.Store(true)
		close(p.workC)
	})
}

// ParallelFor splits [0, n) into contiguous chunks across up to the pool's
// worker count and blocks until every chunk has run. Each chunk is handed
// to fn as a half-open [start, end) range; fn instances for different
// chunks run concurrently and must not share mutable state. A closed pool
// degrades to a sequential call.
func (p *Pool) ParallelFor(n int, fn func(start, end int)) {
	p.ParallelForWorkers(n, p.numWorkers, fn)
}

// ParallelForWorkers is ParallelFor with an explicit worker bound, used by
// the launch tuner to trade parallelism against per-chunk overhead.
func (p *Pool) ParallelForWorkers(n, workers int, fn func(start, end int)) {
	if n <= 0 {
		return
	}

	if p.closed.Load() {
		fn(0, n)
		return
	}

	if workers > p.numWorkers {
		workers = p.numWorkers
	}
	if workers > n {
		workers = n
	}

	if workers <= 1 {
		fn(0, n)
		return
	}

	chunk := (n + workers - 1) / workers

	var wg sync.WaitGroup

	for start := 0; start < n; start += chunk {
		end := start + chunk
		if end > n {
			end = n
		}

		s, e := start, end
		wg.Add(1)
		p.workC <- workItem{fn: func() { fn(s, e) }, barrier: &wg}
	}

	wg.Wait()
}
