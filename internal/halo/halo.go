// Package halo implements the boundary-face buffers that feed the exterior
// stencil passes: per-dimension ghost storage for spin-projected field
// values and for the backward-gather links, accessors that bind those
// buffers to a local field, and the pack/exchange step that fills a
// partition's buffers from its neighbor's data.
package halo

import (
	"github.com/sunwayihep/quda/internal/dslash"
	"github.com/sunwayihep/quda/internal/field"
	"github.com/sunwayihep/quda/internal/gauge"
	"github.com/sunwayihep/quda/internal/lat"
	"github.com/sunwayihep/quda/internal/spinor"
)

// Buffers holds the ghost storage of one partition: for every partitioned
// dimension, a half-spinor slab per gather direction, and one link slab for
// the backward gather (the forward-gather link is always local). Slabs are
// indexed by face index.
type Buffers[T spinor.Complex] struct {
	geo   *lat.Geometry
	nc    int
	field [lat.Ndim][2][]T
	link  [lat.Ndim][]T
}

// NewBuffers allocates ghost storage for every partitioned dimension.
func NewBuffers[T spinor.Complex](geo *lat.Geometry, nc int) *Buffers[T] {
	b := &Buffers[T]{geo: geo, nc: nc}

	for d := 0; d < lat.Ndim; d++ {
		if !geo.Partitioned[d] {
			continue
		}

		fv := geo.FaceVolume(d)
		b.field[d][lat.Backward] = make([]T, fv*spinor.NSpinHalf*nc)
		b.field[d][lat.Forward] = make([]T, fv*spinor.NSpinHalf*nc)
		b.link[d] = make([]T, fv*nc*nc)
	}

	return b
}

// Field returns a view of the ghost half spinor at (dim, dir, faceIdx).
func (b *Buffers[T]) Field(dim int, dir lat.Dir, faceIdx int) spinor.HalfSpinor[T] {
	sz := spinor.NSpinHalf * b.nc
	return spinor.HalfSpinor[T](b.field[dim][dir][faceIdx*sz : (faceIdx+1)*sz])
}

// Link returns a view of the ghost link at (dim, faceIdx).
func (b *Buffers[T]) Link(dim, faceIdx int) gauge.Matrix[T] {
	sz := b.nc * b.nc
	return gauge.Matrix[T](b.link[dim][faceIdx*sz : (faceIdx+1)*sz])
}

// Bound combines a local field with ghost buffers into the full accessor
// the exterior passes read through.
type Bound[T spinor.Complex] struct {
	*field.Field[T]
	Ghost *Buffers[T]
}

// Halo serves the ghost half spinor for a remote neighbor.
func (b Bound[T]) Halo(dim int, dir lat.Dir, faceIdx int) spinor.HalfSpinor[T] {
	return b.Ghost.Field(dim, dir, faceIdx)
}

// LinkSource is the local-link side of a gauge accessor, satisfied by both
// the dense and the compressed storage.
type LinkSource[T spinor.Complex] interface {
	Ncolor() int
	Link(dim, cb int, parity lat.Parity, scratch gauge.Matrix[T]) gauge.Matrix[T]
}

// BoundGauge combines local link storage with ghost link buffers.
type BoundGauge[T spinor.Complex] struct {
	LinkSource[T]
	Ghost *Buffers[T]
}

// HaloLink serves the ghost link for a remote backward gather.
func (b BoundGauge[T]) HaloLink(dim, faceIdx int, _ gauge.Matrix[T]) gauge.Matrix[T] {
	return b.Ghost.Link(dim, faceIdx)
}

// PackParams mirrors the operator variant the receiver will run, so that
// packed projections carry the right rotation and sign convention.
// A and B are the effective rotation coefficients: the adjoint sign flip of
// B must already be applied by the caller, exactly as in the operator
// arguments.
type PackParams struct {
	Twist  bool
	A, B   float64
	Dagger bool
}

// Pack fills dst, the ghost buffers of a partition, for one dimension,
// reading from the field and links of the partition adjacent in that
// dimension. The sender's low face feeds the receiver's forward gathers
// and its high face feeds the backward gathers together with the links
// that live there. When the receiver runs the twisted hopping variant the
// projections are twist-rotated here, since the receiver cannot rotate a
// half spinor after the fact.
func Pack[T spinor.Complex](dst *Buffers[T], dim int, srcF *field.Field[T], srcG LinkSource[T], p PackParams) {
	geo := srcF.Geometry()
	nc := srcF.Ncolor()

	tmp := spinor.New[T](nc)
	h := spinor.NewHalf[T](nc)

	fwdSign := dslash.ProjSign(lat.Forward, p.Dagger)
	bwdSign := dslash.ProjSign(lat.Backward, p.Dagger)

	for parity := lat.Even; parity <= lat.Odd; parity++ {
		for cb := 0; cb < geo.VolumeCB(); cb++ {
			c := geo.Coords(cb, parity)

			if c[dim] == 0 {
				v := srcF.Site(cb, parity)
				if p.Twist {
					spinor.Twist(tmp, v, p.A, p.B)
					v = tmp
				}

				spinor.Project(h, v, dim, fwdSign)
				copy(dst.Field(dim, lat.Forward, geo.FaceIndex(c, dim)), h)
			}

			if c[dim] == geo.X[dim]-1 {
				v := srcF.Site(cb, parity)
				if p.Twist {
					spinor.Twist(tmp, v, p.A, p.B)
					v = tmp
				}

				faceIdx := geo.FaceIndex(c, dim)
				spinor.Project(h, v, dim, bwdSign)
				copy(dst.Field(dim, lat.Backward, faceIdx), h)

				link := srcG.Link(dim, cb, parity, dst.Link(dim, faceIdx))
				copy(dst.Link(dim, faceIdx), link)
			}
		}
	}
}

// ExchangePair fills both partitions' ghost buffers for a two-partition
// split along dim, where each partition neighbors the other in both
// directions.
func ExchangePair[T spinor.Complex](aBuf, bBuf *Buffers[T], aF, bF *field.Field[T], aG, bG LinkSource[T], dim int, p PackParams) {
	Pack(aBuf, dim, bF, bG, p)
	Pack(bBuf, dim, aF, aG, p)
}
