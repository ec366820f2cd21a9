package quda_test

import (
	"math/cmplx"
	"math/rand"
	"testing"

	"github.com/sunwayihep/quda"
)

// Shared test helpers: a dense-gamma reference rendition of the operator,
// independent of the production projection tables, plus field comparison
// utilities.

// DeGrand-Rossi gamma matrices, dims x, y, z, t.
var gammas = [4][4][4]complex128{
	{
		{0, 0, 0, 1i},
		{0, 0, 1i, 0},
		{0, -1i, 0, 0},
		{-1i, 0, 0, 0},
	},
	{
		{0, 0, 0, -1},
		{0, 0, 1, 0},
		{0, 1, 0, 0},
		{-1, 0, 0, 0},
	},
	{
		{0, 0, 1i, 0},
		{0, 0, 0, -1i},
		{-1i, 0, 0, 0},
		{0, 1i, 0, 0},
	},
	{
		{0, 0, 1, 0},
		{0, 0, 0, 1},
		{1, 0, 0, 0},
		{0, 1, 0, 0},
	},
}

// refTwist applies a*(1 + i*b*gamma5). gamma5 is diagonal in this basis:
// +1 on spins 0,1 and -1 on spins 2,3.
func refTwist(v []complex128, a, b float64, nc int) []complex128 {
	out := make([]complex128, len(v))

	for s := 0; s < 4; s++ {
		g5 := 1.0
		if s >= 2 {
			g5 = -1
		}

		f := complex(a, 0) * complex(1, b*g5)
		for c := 0; c < nc; c++ {
			out[s*nc+c] = f * v[s*nc+c]
		}
	}

	return out
}

// refProject computes (1 + sign*gamma_dim) * v on the full spinor.
func refProject(v []complex128, dim int, sign float64, nc int) []complex128 {
	out := make([]complex128, len(v))

	for c := 0; c < nc; c++ {
		for row := 0; row < 4; row++ {
			acc := v[row*nc+c]
			for col := 0; col < 4; col++ {
				acc += complex(sign, 0) * gammas[dim][row][col] * v[col*nc+c]
			}
			out[row*nc+c] = acc
		}
	}

	return out
}

// refMatVec applies the link, or its conjugate transpose, color-wise on all
// four spin components.
func refMatVec(m quda.LinkMatrix[complex128], v []complex128, nc int, dagger bool) []complex128 {
	out := make([]complex128, len(v))

	for s := 0; s < 4; s++ {
		for ci := 0; ci < nc; ci++ {
			var acc complex128
			for cj := 0; cj < nc; cj++ {
				if dagger {
					acc += cmplx.Conj(m[cj*nc+ci]) * v[s*nc+cj]
				} else {
					acc += m[ci*nc+cj] * v[s*nc+cj]
				}
			}
			out[s*nc+ci] = acc
		}
	}

	return out
}

func refParities(p quda.Parity) []quda.Parity {
	if p == quda.ParityBoth {
		return []quda.Parity{quda.EvenParity, quda.OddParity}
	}
	return []quda.Parity{p}
}

// refApply computes the operator on an unpartitioned lattice from the dense
// matrices above. Deliberately naive; the production path must agree with it
// for every variant.
func refApply(geo *quda.Geometry, u *quda.GaugeField[complex128], in, x *quda.Field[complex128], p quda.Params) *quda.Field[complex128] {
	nc := in.Ncolor()
	out := quda.NewField[complex128](geo, nc)

	b := p.B
	if p.Dagger {
		b = -b
	}

	fs := -1.0
	if p.Dagger {
		fs = 1
	}

	twistInputs := p.Dagger && !p.Asymmetric

	for _, parity := range refParities(p.Parity) {
		for cb := 0; cb < geo.VolumeCB(); cb++ {
			c := geo.Coords(cb, parity)
			acc := make([]complex128, 4*nc)

			for d := 0; d < 4; d++ {
				fcb, fp := geo.Neighbor(c, d, quda.ForwardDir)
				v := append([]complex128(nil), in.Site(fcb, fp)...)
				if twistInputs {
					v = refTwist(v, p.A, b, nc)
				}

				contrib := refMatVec(u.Link(d, cb, parity, nil), refProject(v, d, fs, nc), nc, false)
				for i := range acc {
					acc[i] += contrib[i]
				}

				bcb, bp := geo.Neighbor(c, d, quda.BackwardDir)
				v = append([]complex128(nil), in.Site(bcb, bp)...)
				if twistInputs {
					v = refTwist(v, p.A, b, nc)
				}

				contrib = refMatVec(u.Link(d, bcb, bp, nil), refProject(v, d, -fs, nc), nc, true)
				for i := range acc {
					acc[i] += contrib[i]
				}
			}

			if !twistInputs {
				acc = refTwist(acc, p.A, b, nc)
			}

			if p.Xpay {
				xv := x.Site(cb, parity)
				for i := range acc {
					acc[i] += xv[i]
				}
			}

			copy(out.Site(cb, parity), acc)
		}
	}

	return out
}

func newTestGeometry(t *testing.T, extents [4]int) *quda.Geometry {
	t.Helper()

	geo, err := quda.NewGeometry(extents, [4]bool{})
	if err != nil {
		t.Fatalf("NewGeometry(%v) failed: %v", extents, err)
	}
	return geo
}

func assertFieldsCloseTolf(t *testing.T, got, want *quda.Field[complex128], tol float64, format string, args ...any) {
	t.Helper()

	for _, parity := range []quda.Parity{quda.EvenParity, quda.OddParity} {
		g := got.Raw(parity)
		w := want.Raw(parity)

		for i := range w {
			if cmplx.Abs(g[i]-w[i]) > tol {
				t.Fatalf(format+": parity %d element %d got %v want %v (diff=%v)",
					append(args, parity, i, g[i], w[i], cmplx.Abs(g[i]-w[i]))...)
			}
		}
	}
}

func assertFieldsEqual(t *testing.T, got, want *quda.Field[complex128], format string, args ...any) {
	t.Helper()
	assertFieldsCloseTolf(t, got, want, 0, format, args...)
}

// randomOperatorInputs builds a gauge field, input field and accumulator
// field with deterministic pseudorandom contents.
func randomOperatorInputs(t *testing.T, geo *quda.Geometry, nc int, seed int64) (*quda.GaugeField[complex128], *quda.Field[complex128], *quda.Field[complex128]) {
	t.Helper()

	rng := rand.New(rand.NewSource(seed))

	u := quda.NewGaugeField[complex128](geo, nc)
	u.Randomize(rng)

	in := quda.NewField[complex128](geo, nc)
	quda.RandomizeField(in, rng)

	x := quda.NewField[complex128](geo, nc)
	quda.RandomizeField(x, rng)

	return u, in, x
}
