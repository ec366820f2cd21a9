// Package dslash implements the preconditioned twisted-mass stencil
// operator: the per-site neighbor gather (hopping term), the twist
// rotation, and the per-site apply state machine that the dispatch
// wrappers drive. Kernels perform no validation and no allocation; all
// checks happen when the argument bundle is built.
package dslash

import (
	"errors"

	"github.com/sunwayihep/quda/internal/gauge"
	"github.com/sunwayihep/quda/internal/lat"
	"github.com/sunwayihep/quda/internal/spinor"
)

// Sentinel errors reported by argument construction.
var (
	// ErrNilField is returned when a required field accessor is missing.
	ErrNilField = errors.New("dslash: nil field accessor")

	// ErrMissingX is returned when pass-through accumulation is requested
	// without a pass-through field.
	ErrMissingX = errors.New("dslash: xpay requested without pass-through field")

	// ErrRegionUnavailable is returned when an exterior region is requested
	// on a geometry that is not partitioned in that dimension.
	ErrRegionUnavailable = errors.New("dslash: exterior region on unpartitioned dimension")
)

// FieldReader is the accessor the gather reads input spinors through. Site
// serves local neighbors; Halo serves neighbors that live on a remote
// partition, as half-projected values indexed by face.
type FieldReader[T spinor.Complex] interface {
	Site(cb int, parity lat.Parity) spinor.Spinor[T]
	Halo(dim int, dir lat.Dir, faceIdx int) spinor.HalfSpinor[T]
}

// FieldWriter is the output accessor. Site returns a mutable view that the
// write-back step stores the accumulator through.
type FieldWriter[T spinor.Complex] interface {
	Site(cb int, parity lat.Parity) spinor.Spinor[T]
}

// GaugeReader is the accessor the gather reads link matrices through.
// Implementations may serve dense, compressed, or halo-backed storage; the
// hopping term is identical across them. Link may return a view or fill
// scratch; either way the result is only valid until the next call.
type GaugeReader[T spinor.Complex] interface {
	Ncolor() int
	Link(dim, cb int, parity lat.Parity, scratch gauge.Matrix[T]) gauge.Matrix[T]
	HaloLink(dim, faceIdx int, scratch gauge.Matrix[T]) gauge.Matrix[T]
}

// Args is the read-only argument bundle for one operator invocation.
// B already carries the sign flip of the adjoint variant.
type Args[T spinor.Complex] struct {
	Geo *lat.Geometry
	Nc  int

	In  FieldReader[T]
	Out FieldWriter[T]
	X   FieldReader[T]

	Gauge GaugeReader[T]

	A float64
	B float64

	Dagger bool
	Asym   bool
	Xpay   bool

	// TProjScale rescales halo-received projections on the time axis;
	// antiperiodic-type boundaries are encoded through it by the caller.
	TProjScale float64

	Region lat.Region
}

// NewArgs validates and builds the argument bundle. Configuration errors
// are reported here, before any site is processed.
func NewArgs[T spinor.Complex](geo *lat.Geometry, in FieldReader[T], out FieldWriter[T], x FieldReader[T],
	g GaugeReader[T], a, b float64, dagger, asym, xpay bool, tProjScale float64, region lat.Region,
) (*Args[T], error) {
	if in == nil || out == nil || g == nil {
		return nil, ErrNilField
	}

	if xpay && x == nil {
		return nil, ErrMissingX
	}

	if d := region.Dim(); d >= 0 && !geo.Partitioned[d] {
		return nil, ErrRegionUnavailable
	}

	if dagger {
		b = -b
	}

	if tProjScale == 0 {
		tProjScale = 1
	}

	return &Args[T]{
		Geo:        geo,
		Nc:         g.Ncolor(),
		In:         in,
		Out:        out,
		X:          x,
		Gauge:      g,
		A:          a,
		B:          b,
		Dagger:     dagger,
		Asym:       asym,
		Xpay:       xpay,
		TProjScale: tProjScale,
		Region:     region,
	}, nil
}

// ProjSign returns the spin-projection sign for a gather direction: -1 for
// the forward gather and +1 for the backward one, swapped under the adjoint
// variant. Halo packing uses the same convention so that received
// projections reconstruct with the receiver's sign.
func ProjSign(dir lat.Dir, dagger bool) int {
	s := -1
	if dir == lat.Backward {
		s = 1
	}
	if dagger {
		s = -s
	}
	return s
}

// Scratch holds the per-worker temporaries of the site kernel. One Scratch
// must not be shared between concurrent workers.
type Scratch[T spinor.Complex] struct {
	acc  spinor.Spinor[T]
	tmp  spinor.Spinor[T]
	h    spinor.HalfSpinor[T]
	hOut spinor.HalfSpinor[T]
	m    gauge.Matrix[T]
}

// NewScratch allocates kernel temporaries for nc colors.
func NewScratch[T spinor.Complex](nc int) *Scratch[T] {
	return &Scratch[T]{
		acc:  spinor.New[T](nc),
		tmp:  spinor.New[T](nc),
		h:    spinor.NewHalf[T](nc),
		hOut: spinor.NewHalf[T](nc),
		m:    gauge.NewMatrix[T](nc),
	}
}
