package gauge

import (
	"math/rand"

	"github.com/sunwayihep/quda/internal/lat"
	"github.com/sunwayihep/quda/internal/spinor"
)

// Field stores one forward link per (parity, dimension, site), dense and
// uncompressed. Link returns a view into storage; callers must treat it as
// read-only and must not retain it across calls.
type Field[T spinor.Complex] struct {
	geo  *lat.Geometry
	nc   int
	data [2][lat.Ndim][]T
}

// NewField allocates a zeroed gauge field with nc colors.
func NewField[T spinor.Complex](geo *lat.Geometry, nc int) *Field[T] {
	f := &Field[T]{geo: geo, nc: nc}
	n := geo.VolumeCB() * nc * nc

	for p := 0; p < 2; p++ {
		for d := 0; d < lat.Ndim; d++ {
			f.data[p][d] = make([]T, n)
		}
	}

	return f
}

// Ncolor returns the number of color components.
func (f *Field[T]) Ncolor() int { return f.nc }

// Geometry returns the lattice the field is defined on.
func (f *Field[T]) Geometry() *lat.Geometry { return f.geo }

// Link returns the forward link of (dim, cb, parity). The scratch argument
// is unused by the dense accessor.
func (f *Field[T]) Link(dim, cb int, parity lat.Parity, _ Matrix[T]) Matrix[T] {
	sz := f.nc * f.nc
	return Matrix[T](f.data[parity][dim][cb*sz : (cb+1)*sz])
}

// HaloLink satisfies the stencil gauge accessor. A plain dense field has no
// halo storage; reaching this is a pass-sequencing bug in the caller.
func (f *Field[T]) HaloLink(int, int, Matrix[T]) Matrix[T] {
	panic("gauge: halo access on a field with no bound halo buffers")
}

// SetLink overwrites the link of (dim, cb, parity).
func (f *Field[T]) SetLink(dim, cb int, parity lat.Parity, m Matrix[T]) {
	sz := f.nc * f.nc
	copy(f.data[parity][dim][cb*sz:(cb+1)*sz], m)
}

// SetIdentity sets every link to the identity matrix.
func (f *Field[T]) SetIdentity() {
	m := NewMatrix[T](f.nc)
	m.SetIdentity(f.nc)

	for p := 0; p < 2; p++ {
		for d := 0; d < lat.Ndim; d++ {
			for cb := 0; cb < f.geo.VolumeCB(); cb++ {
				f.SetLink(d, cb, lat.Parity(p), m)
			}
		}
	}
}

// Randomize fills every link with complex entries drawn uniformly from the
// unit square. The operator contract holds for arbitrary link matrices, so
// tests do not need unitary links.
func (f *Field[T]) Randomize(rng *rand.Rand) {
	for p := 0; p < 2; p++ {
		for d := 0; d < lat.Ndim; d++ {
			for i := range f.data[p][d] {
				f.data[p][d][i] = T(complex(rng.Float64()*2-1, rng.Float64()*2-1))
			}
		}
	}
}
