// Package field provides dense per-parity spinor field storage. A Field
// satisfies the stencil's site accessor directly; sites with remote
// neighbors additionally need the halo-bound wrapper from the halo package.
package field

import (
	"math/rand"

	"github.com/sunwayihep/quda/internal/lat"
	"github.com/sunwayihep/quda/internal/spinor"
)

// Field stores a full spinor per (parity, site).
type Field[T spinor.Complex] struct {
	geo  *lat.Geometry
	nc   int
	data [2][]T
}

// New allocates a zeroed field with nc colors.
func New[T spinor.Complex](geo *lat.Geometry, nc int) *Field[T] {
	f := &Field[T]{geo: geo, nc: nc}
	n := geo.VolumeCB() * spinor.NSpin * nc
	f.data[0] = make([]T, n)
	f.data[1] = make([]T, n)

	return f
}

// Ncolor returns the number of color components.
func (f *Field[T]) Ncolor() int { return f.nc }

// Geometry returns the lattice the field is defined on.
func (f *Field[T]) Geometry() *lat.Geometry { return f.geo }

// Site returns a view of the spinor at (cb, parity). The view aliases
// storage: reads see the current value and writes through it update the
// field, which is how the output accumulator is stored.
func (f *Field[T]) Site(cb int, parity lat.Parity) spinor.Spinor[T] {
	sz := spinor.NSpin * f.nc
	return spinor.Spinor[T](f.data[parity][cb*sz : (cb+1)*sz])
}

// Halo satisfies the stencil field accessor. A plain dense field has no
// halo storage; reaching this is a pass-sequencing bug in the caller.
func (f *Field[T]) Halo(int, lat.Dir, int) spinor.HalfSpinor[T] {
	panic("field: halo access on a field with no bound halo buffers")
}

// Zero clears both parities.
func (f *Field[T]) Zero() {
	for p := 0; p < 2; p++ {
		for i := range f.data[p] {
			f.data[p][i] = 0
		}
	}
}

// Copy overwrites f with the contents of src.
func (f *Field[T]) Copy(src *Field[T]) {
	copy(f.data[0], src.data[0])
	copy(f.data[1], src.data[1])
}

// Randomize fills both parities with entries drawn uniformly from the unit
// square.
func (f *Field[T]) Randomize(rng *rand.Rand) {
	for p := 0; p < 2; p++ {
		for i := range f.data[p] {
			f.data[p][i] = T(complex(rng.Float64()*2-1, rng.Float64()*2-1))
		}
	}
}

// Raw returns the backing slice for one parity. The reduction utility
// consumes it to compute norms without caring about site structure.
func (f *Field[T]) Raw(parity lat.Parity) []T {
	return f.data[parity]
}
