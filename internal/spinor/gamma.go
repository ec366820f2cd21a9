package spinor

// Spin algebra in the DeGrand-Rossi basis. In this basis gamma5 is diagonal
// (+1, +1, -1, -1), so the twisted-mass rotation reduces to one complex
// scale per chirality, and every projector (1 -+ gamma_mu) has lower spin
// rows that are unit multiples of the upper two. Projection therefore keeps
// only spins 0 and 1; reconstruction rebuilds spins 2 and 3 from them.

// Project applies (1 + sign*gamma_dim) to src and stores the two surviving
// spin components in dst. sign must be +1 or -1. dst and src must not alias.
func Project[T Complex](dst HalfSpinor[T], src Spinor[T], dim, sign int) {
	nc := src.Ncolor()
	i := scalar[T](0, 1)

	for c := 0; c < nc; c++ {
		a0 := src[0*nc+c]
		a1 := src[1*nc+c]
		a2 := src[2*nc+c]
		a3 := src[3*nc+c]

		var h0, h1 T

		switch dim {
		case 0:
			if sign < 0 {
				h0, h1 = a0-i*a3, a1-i*a2
			} else {
				h0, h1 = a0+i*a3, a1+i*a2
			}
		case 1:
			if sign < 0 {
				h0, h1 = a0+a3, a1-a2
			} else {
				h0, h1 = a0-a3, a1+a2
			}
		case 2:
			if sign < 0 {
				h0, h1 = a0-i*a2, a1+i*a3
			} else {
				h0, h1 = a0+i*a2, a1-i*a3
			}
		default:
			if sign < 0 {
				h0, h1 = a0-a2, a1-a3
			} else {
				h0, h1 = a0+a2, a1+a3
			}
		}

		dst[0*nc+c] = h0
		dst[1*nc+c] = h1
	}
}

// AddReconstruct expands the projected half spinor h back to four spin
// components and accumulates the result into acc. dim and sign must match
// the Project call that produced h.
func AddReconstruct[T Complex](acc Spinor[T], h HalfSpinor[T], dim, sign int) {
	nc := acc.Ncolor()
	i := scalar[T](0, 1)

	for c := 0; c < nc; c++ {
		h0 := h[0*nc+c]
		h1 := h[1*nc+c]

		acc[0*nc+c] += h0
		acc[1*nc+c] += h1

		var b2, b3 T

		switch dim {
		case 0:
			if sign < 0 {
				b2, b3 = i*h1, i*h0
			} else {
				b2, b3 = -i*h1, -i*h0
			}
		case 1:
			if sign < 0 {
				b2, b3 = -h1, h0
			} else {
				b2, b3 = h1, -h0
			}
		case 2:
			if sign < 0 {
				b2, b3 = i*h0, -i*h1
			} else {
				b2, b3 = -i*h0, i*h1
			}
		default:
			if sign < 0 {
				b2, b3 = -h0, -h1
			} else {
				b2, b3 = h0, h1
			}
		}

		acc[2*nc+c] += b2
		acc[3*nc+c] += b3
	}
}

// Gamma5 applies the gamma5 involution to src, writing into dst. dst may
// alias src. Gamma5(Gamma5(v)) == v holds bit-exactly: the operation only
// negates the lower-chirality components.
func Gamma5[T Complex](dst, src Spinor[T]) {
	nc := src.Ncolor()
	half := NSpinHalf * nc

	copy(dst[:half], src[:half])

	for k := half; k < len(src); k++ {
		dst[k] = -src[k]
	}
}

// Twist applies the twisted-mass rotation a*(v + i*b*gamma5(v)) to src,
// writing into dst. dst may alias src. With a=1, b=0 this is the identity.
func Twist[T Complex](dst, src Spinor[T], a, b float64) {
	nc := src.Ncolor()
	half := NSpinHalf * nc

	up := scalar[T](a, 0) * scalar[T](1, b)
	dn := scalar[T](a, 0) * scalar[T](1, -b)

	for k := 0; k < half; k++ {
		dst[k] = up * src[k]
	}

	for k := half; k < len(src); k++ {
		dst[k] = dn * src[k]
	}
}

// ScaleHalf multiplies a half spinor by the real factor f in place. Used for
// the time-boundary rescale on halo-received projections.
func ScaleHalf[T Complex](h HalfSpinor[T], f float64) {
	s := scalar[T](f, 0)
	for k := range h {
		h[k] *= s
	}
}
