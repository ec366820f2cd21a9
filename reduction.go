package quda

import (
	"github.com/sunwayihep/quda/internal/reduce"
)

// MaxReduceBatch is the largest number of arrays one reduction may fold.
const MaxReduceBatch = reduce.MaxBatch

// Ordered constrains the value types the stock reducers accept.
type Ordered = reduce.Ordered

// Plus is the summing reducer.
func Plus[R Ordered](a, b R) R { return reduce.Plus(a, b) }

// Maximum is the max reducer.
func Maximum[R Ordered](a, b R) R { return reduce.Maximum(a, b) }

// Minimum is the min reducer.
func Minimum[R Ordered](a, b R) R { return reduce.Minimum(a, b) }

// TransformReduce maps h over every element of each array in vs and folds
// the results with r, one result per array. At most MaxReduceBatch arrays.
func TransformReduce[R, T any](vs [][]T, h func(T) R, init R, r func(R, R) R) ([]R, error) {
	return reduce.TransformReduce(vs, h, init, r)
}

// TransformReducePool is TransformReduce driven by a worker pool.
func TransformReducePool[R, T any](p *Pool, vs [][]T, h func(T) R, init R, r func(R, R) R) ([]R, error) {
	return reduce.TransformReducePool(p, vs, h, init, r)
}

// Norm2 returns the squared 2-norm of a complex array, accumulated in
// float64 regardless of the storage precision.
func Norm2[T Complex](v []T) float64 { return reduce.Norm2(v) }

// AbsMax returns the largest element magnitude of a complex array.
func AbsMax[T Complex](v []T) float64 { return reduce.AbsMax(v) }

// FieldNorm2 returns the squared 2-norm of a field over both parities.
func FieldNorm2[T Complex](f *Field[T]) float64 {
	return reduce.Norm2(f.Raw(EvenParity)) + reduce.Norm2(f.Raw(OddParity))
}
