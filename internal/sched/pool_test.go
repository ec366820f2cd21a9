package sched

import (
	"sync/atomic"
	"testing"
)

func TestParallelForCoversRange(t *testing.T) {
	t.Parallel()

	p := New(4)
	defer p.Close()

	const n = 1013
	var hits [n]int32

	p.ParallelFor(n, func(start, end int) {
		for i := start; i < end; i++ {
			atomic.AddInt32(&hits[i], 1)
		}
	})

	for i, h := range hits {
		if h != 1 {
			t.Fatalf("index %d visited %d times", i, h)
		}
	}
}

func TestParallelForSmallN(t *testing.T) {
	t.Parallel()

	p := New(8)
	defer p.Close()

	var count atomic.Int64

	p.ParallelFor(1, func(start, end int) {
		count.Add(int64(end - start))
	})

	if count.Load() != 1 {
		t.Fatalf("covered %d indices, want 1", count.Load())
	}

	p.ParallelFor(0, func(start, end int) {
		t.Error("fn called for n=0")
	})
}

func TestParallelForWorkersBound(t *testing.T) {
	t.Parallel()

	p := New(8)
	defer p.Close()

	var calls atomic.Int64

	p.ParallelForWorkers(100, 2, func(start, end int) {
		calls.Add(1)
	})

	if got := calls.Load(); got != 2 {
		t.Fatalf("chunk count = %d, want 2", got)
	}
}

func TestClosedPoolFallsBackToSequential(t *testing.T) {
	t.Parallel()

	p := New(4)
	p.Close()

	var covered int

	p.ParallelFor(10, func(start, end int) {
		covered += end - start
	})

	if covered != 10 {
		t.Fatalf("covered %d indices, want 10", covered)
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	t.Parallel()

	p := New(2)
	p.Close()
	p.Close()
}

func TestDefaultWorkerCount(t *testing.T) {
	t.Parallel()

	p := New(0)
	defer p.Close()

	if p.NumWorkers() < 1 {
		t.Fatalf("NumWorkers = %d", p.NumWorkers())
	}
}
