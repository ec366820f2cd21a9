// Package reduce implements the batched transform-reduce primitive: a
// map-reduce over one or more arrays sharing one transformer and reducer,
// with a sequential driver and a worker-pool driver. It is a general
// utility; the operator tests and the bench tool use it for field norms.
package reduce

import (
	"errors"
	"math"

	"github.com/sunwayihep/quda/internal/sched"
	"github.com/sunwayihep/quda/internal/spinor"
)

// MaxBatch is the largest number of arrays one call may reduce.
const MaxBatch = 8

// ErrBatchTooLarge is returned when more than MaxBatch arrays are passed.
var ErrBatchTooLarge = errors.New("reduce: batch count exceeds maximum")

// Ordered constrains the reduction value types the stock reducers accept.
type Ordered interface {
	~int | ~int32 | ~int64 | ~uint32 | ~uint64 | ~float32 | ~float64
}

// Plus is the summing reducer.
func Plus[R Ordered](a, b R) R { return a + b }

// Maximum is the max reducer.
func Maximum[R Ordered](a, b R) R {
	if a > b {
		return a
	}
	return b
}

// Minimum is the min reducer.
func Minimum[R Ordered](a, b R) R {
	if a < b {
		return a
	}
	return b
}

// TransformReduce maps h over every element of each array in vs and folds
// the results with r, starting from init, one result per array. Fully
// sequential and deterministic; the reference the pooled driver is checked
// against.
func TransformReduce[R, T any](vs [][]T, h func(T) R, init R, r func(R, R) R) ([]R, error) {
	if len(vs) > MaxBatch {
		return nil, ErrBatchTooLarge
	}

	out := make([]R, len(vs))

	for j, v := range vs {
		acc := init
		for _, x := range v {
			acc = r(acc, h(x))
		}
		out[j] = acc
	}

	return out, nil
}

// TransformReducePool is TransformReduce driven by a worker pool. Each
// chunk folds from its own first element, so init enters the fold exactly
// once and the result agrees with the sequential driver for any init;
// chunk partials are combined in chunk order, so the result is
// deterministic for a fixed pool size (though grouped differently than the
// sequential driver, which matters only up to floating-point
// associativity). A closed pool runs the whole range as one chunk and only
// that chunk's partial is folded.
func TransformReducePool[R, T any](p *sched.Pool, vs [][]T, h func(T) R, init R, r func(R, R) R) ([]R, error) {
	if len(vs) > MaxBatch {
		return nil, ErrBatchTooLarge
	}

	out := make([]R, len(vs))

	for j, v := range vs {
		n := len(v)

		workers := p.NumWorkers()
		if workers > n {
			workers = n
		}

		if workers <= 1 {
			acc := init
			for _, x := range v {
				acc = r(acc, h(x))
			}
			out[j] = acc
			continue
		}

		// Mirrors the pool's chunking so start/chunk indexes the partial.
		// The pool may hand the whole range to fewer chunks than planned
		// (a closed pool degrades to one sequential call), so only chunks
		// that actually ran contribute to the combine.
		chunk := (n + workers - 1) / workers
		numChunks := (n + chunk - 1) / chunk
		partials := make([]R, numChunks)
		ran := make([]bool, numChunks)

		p.ParallelForWorkers(n, workers, func(start, end int) {
			acc := h(v[start])
			for _, x := range v[start+1 : end] {
				acc = r(acc, h(x))
			}

			partials[start/chunk] = acc
			ran[start/chunk] = true
		})

		acc := init
		for k, partial := range partials {
			if ran[k] {
				acc = r(acc, partial)
			}
		}
		out[j] = acc
	}

	return out, nil
}

// Reduce folds each array with r alone, without a transform step.
func Reduce[R Ordered](vs [][]R, init R, r func(R, R) R) ([]R, error) {
	return TransformReduce(vs, func(x R) R { return x }, init, r)
}

// Norm2 returns the squared 2-norm of a complex array, accumulated in
// float64 regardless of the storage precision.
func Norm2[T spinor.Complex](v []T) float64 {
	out, _ := TransformReduce([][]T{v}, func(x T) float64 {
		c := complex128(x)
		return real(c)*real(c) + imag(c)*imag(c)
	}, 0, Plus[float64])

	return out[0]
}

// AbsMax returns the largest element magnitude of a complex array.
func AbsMax[T spinor.Complex](v []T) float64 {
	out, _ := TransformReduce([][]T{v}, func(x T) float64 {
		return math.Hypot(real(complex128(x)), imag(complex128(x)))
	}, 0, Maximum[float64])

	return out[0]
}
