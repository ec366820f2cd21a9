package gauge

import (
	"errors"
	"math"
	"math/rand"

	"github.com/sunwayihep/quda/internal/lat"
	"github.com/sunwayihep/quda/internal/spinor"
)

// ErrReconstructNcolor is returned when 12-real compression is requested
// for a color count other than 3.
var ErrReconstructNcolor = errors.New("gauge: reconstruct-12 requires 3 colors")

// Twelve stores only the first two rows of each 3x3 link and rebuilds the
// third as the conjugate cross product of the first two on every access.
// Valid only for special-unitary links, where that identity holds.
type Twelve[T spinor.Complex] struct {
	geo  *lat.Geometry
	data [2][lat.Ndim][]T
}

// Compress builds a 12-real compressed copy of a dense field.
func Compress[T spinor.Complex](f *Field[T]) (*Twelve[T], error) {
	if f.nc != 3 {
		return nil, ErrReconstructNcolor
	}

	t := &Twelve[T]{geo: f.geo}
	n := f.geo.VolumeCB() * 6

	for p := 0; p < 2; p++ {
		for d := 0; d < lat.Ndim; d++ {
			t.data[p][d] = make([]T, n)
			for cb := 0; cb < f.geo.VolumeCB(); cb++ {
				m := f.Link(d, cb, lat.Parity(p), nil)
				copy(t.data[p][d][cb*6:(cb+1)*6], m[:6])
			}
		}
	}

	return t, nil
}

// Ncolor returns the number of color components.
func (t *Twelve[T]) Ncolor() int { return 3 }

// Link decompresses the link of (dim, cb, parity) into scratch and returns
// it. scratch must hold at least 9 elements.
func (t *Twelve[T]) Link(dim, cb int, parity lat.Parity, scratch Matrix[T]) Matrix[T] {
	row := t.data[parity][dim][cb*6 : (cb+1)*6]
	copy(scratch[:6], row)

	// Third row: conj(row0 x row1).
	scratch[6] = conj(row[1]*row[5] - row[2]*row[4])
	scratch[7] = conj(row[2]*row[3] - row[0]*row[5])
	scratch[8] = conj(row[0]*row[4] - row[1]*row[3])

	return scratch[:9]
}

// HaloLink satisfies the stencil gauge accessor. Compressed storage carries
// no halo links; the halo package binds them separately.
func (t *Twelve[T]) HaloLink(int, int, Matrix[T]) Matrix[T] {
	panic("gauge: halo access on a field with no bound halo buffers")
}

// RandomizeUnitary fills a dense 3-color field with special-unitary links:
// two random rows are orthonormalized and the third is their conjugate
// cross product. Such links survive the 12-real compression round trip.
func (f *Field[T]) RandomizeUnitary(rng *rand.Rand) error {
	if f.nc != 3 {
		return ErrReconstructNcolor
	}

	m := NewMatrix[T](3)

	for p := 0; p < 2; p++ {
		for d := 0; d < lat.Ndim; d++ {
			for cb := 0; cb < f.geo.VolumeCB(); cb++ {
				randomSU3(m, rng)
				f.SetLink(d, cb, lat.Parity(p), m)
			}
		}
	}

	return nil
}

func randomSU3[T spinor.Complex](m Matrix[T], rng *rand.Rand) {
	for i := 0; i < 6; i++ {
		m[i] = T(complex(rng.Float64()*2-1, rng.Float64()*2-1))
	}

	// Gram-Schmidt on the first two rows.
	normalizeRow(m, 0)

	var dot complex128
	for c := 0; c < 3; c++ {
		dot += complex128(conj(m[c])) * complex128(m[3+c])
	}
	for c := 0; c < 3; c++ {
		m[3+c] -= T(dot) * m[c]
	}
	normalizeRow(m, 1)

	m[6] = conj(m[1]*m[5] - m[2]*m[4])
	m[7] = conj(m[2]*m[3] - m[0]*m[5])
	m[8] = conj(m[0]*m[4] - m[1]*m[3])
}

func normalizeRow[T spinor.Complex](m Matrix[T], r int) {
	var n2 float64
	for c := 0; c < 3; c++ {
		v := complex128(m[r*3+c])
		n2 += real(v)*real(v) + imag(v)*imag(v)
	}

	inv := T(complex(1/math.Sqrt(n2), 0))
	for c := 0; c < 3; c++ {
		m[r*3+c] *= inv
	}
}
