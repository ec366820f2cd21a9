package spinor

// Complex is the type constraint for the complex element types a field may
// carry. Operator kernels are instantiated once per precision.
type Complex interface {
	~complex64 | ~complex128
}

// Float is the type constraint for real scalar coefficients.
type Float interface {
	~float32 | ~float64
}

// NSpin is the number of spin components of a full spinor.
const NSpin = 4

// NSpinHalf is the number of spin components after projection.
const NSpinHalf = 2

// Spinor is the field value at one lattice site: NSpin spin components times
// nc color components, spin-major (element (s, c) lives at index s*nc+c).
// It is a value type; functions that combine spinors write into a
// caller-supplied destination and never alias storage.
type Spinor[T Complex] []T

// HalfSpinor holds the two surviving spin components of a projected spinor,
// same spin-major layout.
type HalfSpinor[T Complex] []T

// New returns a zeroed spinor with nc color components.
func New[T Complex](nc int) Spinor[T] {
	return make(Spinor[T], NSpin*nc)
}

// NewHalf returns a zeroed half spinor with nc color components.
func NewHalf[T Complex](nc int) HalfSpinor[T] {
	return make(HalfSpinor[T], NSpinHalf*nc)
}

// Ncolor returns the number of color components.
func (s Spinor[T]) Ncolor() int { return len(s) / NSpin }

// Ncolor returns the number of color components.
func (h HalfSpinor[T]) Ncolor() int { return len(h) / NSpinHalf }

// scalar builds a T from real and imaginary parts. The intermediate
// complex128 conversion is exact for both supported precisions.
func scalar[T Complex](re, im float64) T {
	return T(complex(re, im))
}

// Zero clears the spinor in place.
func (s Spinor[T]) Zero() {
	for i := range s {
		s[i] = 0
	}
}

// Copy copies src into s. Lengths must match.
func (s Spinor[T]) Copy(src Spinor[T]) {
	copy(s, src)
}

// Add accumulates v into s element-wise.
func (s Spinor[T]) Add(v Spinor[T]) {
	for i := range s {
		s[i] += v[i]
	}
}

// Sub subtracts v from s element-wise.
func (s Spinor[T]) Sub(v Spinor[T]) {
	for i := range s {
		s[i] -= v[i]
	}
}

// Scale multiplies s by the real scalar a in place.
func (s Spinor[T]) Scale(a float64) {
	f := scalar[T](a, 0)
	for i := range s {
		s[i] *= f
	}
}
