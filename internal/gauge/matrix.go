// Package gauge provides the link-matrix type and the accessors the stencil
// gathers links through: dense per-site storage, a 12-real compressed
// variant that reconstructs the third row on the fly, and (via the halo
// package) boundary-face buffers. All accessors present the same read
// interface so the hopping term is identical regardless of storage layout.
package gauge

import "github.com/sunwayihep/quda/internal/spinor"

// Matrix is an nc x nc complex link matrix, row-major.
type Matrix[T spinor.Complex] []T

// NewMatrix returns a zeroed nc x nc matrix.
func NewMatrix[T spinor.Complex](nc int) Matrix[T] {
	return make(Matrix[T], nc*nc)
}

func conj[T spinor.Complex](v T) T {
	c := complex128(v)
	return T(complex(real(c), -imag(c)))
}

// SetIdentity overwrites m with the identity matrix.
func (m Matrix[T]) SetIdentity(nc int) {
	for i := range m {
		m[i] = 0
	}
	for c := 0; c < nc; c++ {
		m[c*nc+c] = 1
	}
}

// MulVec computes dst = m * h for each spin component of the half spinor.
// dst and h must not alias.
func (m Matrix[T]) MulVec(dst, h spinor.HalfSpinor[T], nc int) {
	for s := 0; s < spinor.NSpinHalf; s++ {
		row := h[s*nc : (s+1)*nc]
		out := dst[s*nc : (s+1)*nc]

		for ci := 0; ci < nc; ci++ {
			var acc T
			for cj := 0; cj < nc; cj++ {
				acc += m[ci*nc+cj] * row[cj]
			}
			out[ci] = acc
		}
	}
}

// MulVecConj computes dst = conj(transpose(m)) * h for each spin component
// of the half spinor; the backward gather applies the link this way rather
// than materializing the adjoint.
func (m Matrix[T]) MulVecConj(dst, h spinor.HalfSpinor[T], nc int) {
	for s := 0; s < spinor.NSpinHalf; s++ {
		row := h[s*nc : (s+1)*nc]
		out := dst[s*nc : (s+1)*nc]

		for ci := 0; ci < nc; ci++ {
			var acc T
			for cj := 0; cj < nc; cj++ {
				acc += conj(m[cj*nc+ci]) * row[cj]
			}
			out[ci] = acc
		}
	}
}
