package halo_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunwayihep/quda/internal/dslash"
	"github.com/sunwayihep/quda/internal/field"
	"github.com/sunwayihep/quda/internal/gauge"
	"github.com/sunwayihep/quda/internal/halo"
	"github.com/sunwayihep/quda/internal/lat"
	"github.com/sunwayihep/quda/internal/spinor"
)

func TestBuffersAllocatePartitionedDimsOnly(t *testing.T) {
	t.Parallel()

	geo, err := lat.NewGeometry([4]int{4, 4, 4, 4}, [4]bool{3: true})
	require.NoError(t, err)

	b := halo.NewBuffers[complex128](geo, 3)

	h := b.Field(lat.Tdim, lat.Forward, geo.FaceVolume(lat.Tdim)-1)
	assert.Len(t, []complex128(h), spinor.NSpinHalf*3)

	m := b.Link(lat.Tdim, 0)
	assert.Len(t, []complex128(m), 9)
}

// Packing from the partition's own field must land each face site's
// projection at its own face index, with the sender's high-face links
// alongside the backward slab.
func TestPackPlacesFacesAndLinks(t *testing.T) {
	t.Parallel()

	const (
		nc  = 2
		dim = 3
	)

	geo, err := lat.NewGeometry([4]int{2, 2, 2, 4}, [4]bool{dim: true})
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(3))

	f := field.New[complex128](geo, nc)
	f.Randomize(rng)

	g := gauge.NewField[complex128](geo, nc)
	g.Randomize(rng)

	b := halo.NewBuffers[complex128](geo, nc)
	halo.Pack(b, dim, f, g, halo.PackParams{})

	h := spinor.NewHalf[complex128](nc)

	for _, parity := range []lat.Parity{lat.Even, lat.Odd} {
		for cb := 0; cb < geo.VolumeCB(); cb++ {
			c := geo.Coords(cb, parity)

			if c[dim] == 0 {
				spinor.Project(h, f.Site(cb, parity), dim, dslash.ProjSign(lat.Forward, false))
				assert.Equal(t, []complex128(h), []complex128(b.Field(dim, lat.Forward, geo.FaceIndex(c, dim))),
					"forward slab at %v", c)
			}

			if c[dim] == geo.X[dim]-1 {
				faceIdx := geo.FaceIndex(c, dim)

				spinor.Project(h, f.Site(cb, parity), dim, dslash.ProjSign(lat.Backward, false))
				assert.Equal(t, []complex128(h), []complex128(b.Field(dim, lat.Backward, faceIdx)),
					"backward slab at %v", c)

				assert.Equal(t, []complex128(g.Link(dim, cb, parity, nil)), []complex128(b.Link(dim, faceIdx)),
					"ghost link at %v", c)
			}
		}
	}
}

// The twisted pack variant rotates before projecting, so a packed slab must
// equal project(twist(v)).
func TestPackTwistsBeforeProjection(t *testing.T) {
	t.Parallel()

	const (
		nc  = 1
		dim = 0
	)

	geo, err := lat.NewGeometry([4]int{2, 2, 2, 2}, [4]bool{dim: true})
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(5))

	f := field.New[complex128](geo, nc)
	f.Randomize(rng)

	g := gauge.NewField[complex128](geo, nc)
	g.SetIdentity()

	p := halo.PackParams{Twist: true, A: 0.7, B: -0.4, Dagger: true}

	b := halo.NewBuffers[complex128](geo, nc)
	halo.Pack(b, dim, f, g, p)

	tmp := spinor.New[complex128](nc)
	h := spinor.NewHalf[complex128](nc)

	for _, parity := range []lat.Parity{lat.Even, lat.Odd} {
		for cb := 0; cb < geo.VolumeCB(); cb++ {
			c := geo.Coords(cb, parity)
			if c[dim] != 0 {
				continue
			}

			spinor.Twist(tmp, f.Site(cb, parity), p.A, p.B)
			spinor.Project(h, tmp, dim, dslash.ProjSign(lat.Forward, p.Dagger))

			assert.Equal(t, []complex128(h), []complex128(b.Field(dim, lat.Forward, geo.FaceIndex(c, dim))),
				"twisted forward slab at %v", c)
		}
	}
}

func TestBoundAccessorsServeGhosts(t *testing.T) {
	t.Parallel()

	geo, err := lat.NewGeometry([4]int{2, 2, 2, 4}, [4]bool{3: true})
	require.NoError(t, err)

	f := field.New[complex128](geo, 1)
	g := gauge.NewField[complex128](geo, 1)

	b := halo.NewBuffers[complex128](geo, 1)
	b.Field(3, lat.Backward, 2)[0] = 42
	b.Link(3, 2)[0] = -7i

	bf := halo.Bound[complex128]{Field: f, Ghost: b}
	assert.Equal(t, complex128(42), bf.Halo(3, lat.Backward, 2)[0])

	bg := halo.BoundGauge[complex128]{LinkSource: g, Ghost: b}
	assert.Equal(t, complex128(-7i), bg.HaloLink(3, 2, nil)[0])
}
