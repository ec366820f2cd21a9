// Package lat implements the even/odd checkerboarded 4-dimensional lattice
// geometry used by the stencil kernels: site index <-> coordinate mapping,
// neighbor indices with periodic wrap, boundary-face indexing, and the
// region classification that splits a stencil application into interior and
// halo passes.
package lat

import "errors"

// Ndim is the number of lattice dimensions.
const Ndim = 4

// Tdim is the designated time dimension, the axis the halo rescale factor
// applies to.
const Tdim = 3

// Sentinel errors reported by geometry construction.
var (
	// ErrBadExtent is returned when a lattice extent is not positive.
	ErrBadExtent = errors.New("lat: lattice extent must be positive")

	// ErrOddVolume is returned when no extent is even, so the lattice
	// cannot be split into two equal checkerboards.
	ErrOddVolume = errors.New("lat: at least one extent must be even")
)

// Parity selects one checkerboard of the lattice.
type Parity int

const (
	Even Parity = 0
	Odd  Parity = 1

	// Both iterates the two checkerboards as a second dispatch axis.
	Both Parity = 2
)

// Dir is a gather direction along one dimension.
type Dir int

const (
	Backward Dir = iota
	Forward
)

// Region classifies which subset of neighbor contributions a pass computes.
type Region int

const (
	// Interior computes every contribution whose neighbor is on the local
	// partition. On an unpartitioned lattice this is the whole stencil.
	Interior Region = iota

	// ExteriorX..ExteriorT compute only the halo contributions across one
	// dimension's partition boundary.
	ExteriorX
	ExteriorY
	ExteriorZ
	ExteriorT

	// ExteriorAll fuses the four exterior passes into one dispatch.
	ExteriorAll
)

// String returns a short name for the region, used as a tuning-cache key.
func (r Region) String() string {
	switch r {
	case Interior:
		return "interior"
	case ExteriorX:
		return "exterior_x"
	case ExteriorY:
		return "exterior_y"
	case ExteriorZ:
		return "exterior_z"
	case ExteriorT:
		return "exterior_t"
	case ExteriorAll:
		return "exterior_all"
	default:
		return "unknown"
	}
}

// Dim returns the dimension an exterior region covers, or -1 for Interior
// and ExteriorAll.
func (r Region) Dim() int {
	if r >= ExteriorX && r <= ExteriorT {
		return int(r - ExteriorX)
	}
	return -1
}

// Exterior returns the single-dimension exterior region for dim.
func Exterior(dim int) Region { return ExteriorX + Region(dim) }

// Geometry describes one local partition of the lattice. X holds the local
// extents. Partitioned marks the dimensions along which the global lattice
// is split, so that crossing that face leaves the partition and the
// neighbor value must come from a halo buffer; unpartitioned dimensions
// wrap periodically within local storage.
//
// Index maps are precomputed at construction. This keeps the site loops
// pure table lookups and supports odd extents, where the usual half-extent
// coordinate arithmetic breaks down.
type Geometry struct {
	X           [Ndim]int
	Partitioned [Ndim]bool

	volume   int
	volumeCB int

	coords []([Ndim]int) // full index -> coordinate
	cbOf   []int         // full index -> checkerboard index
	fullOf [2][]int      // parity, checkerboard index -> full index
}

// NewGeometry validates the extents and builds the index maps.
func NewGeometry(x [Ndim]int, partitioned [Ndim]bool) (*Geometry, error) {
	anyEven := false

	for d := 0; d < Ndim; d++ {
		if x[d] < 1 {
			return nil, ErrBadExtent
		}
		if x[d]%2 == 0 {
			anyEven = true
		}
	}

	if !anyEven {
		return nil, ErrOddVolume
	}

	g := &Geometry{X: x, Partitioned: partitioned}
	g.volume = x[0] * x[1] * x[2] * x[3]
	g.volumeCB = g.volume / 2

	g.coords = make([]([Ndim]int), g.volume)
	g.cbOf = make([]int, g.volume)
	g.fullOf[Even] = make([]int, 0, g.volumeCB)
	g.fullOf[Odd] = make([]int, 0, g.volumeCB)

	full := 0
	var c [Ndim]int

	for c[3] = 0; c[3] < x[3]; c[3]++ {
		for c[2] = 0; c[2] < x[2]; c[2]++ {
			for c[1] = 0; c[1] < x[1]; c[1]++ {
				for c[0] = 0; c[0] < x[0]; c[0]++ {
					p := Parity((c[0] + c[1] + c[2] + c[3]) & 1)
					g.coords[full] = c
					g.cbOf[full] = len(g.fullOf[p])
					g.fullOf[p] = append(g.fullOf[p], full)
					full++
				}
			}
		}
	}

	return g, nil
}

// Volume returns the number of sites of the local partition.
func (g *Geometry) Volume() int { return g.volume }

// VolumeCB returns the sites per checkerboard.
func (g *Geometry) VolumeCB() int { return g.volumeCB }

// FaceVolume returns the number of sites on one face orthogonal to dim,
// counting both parities.
func (g *Geometry) FaceVolume(dim int) int {
	return g.volume / g.X[dim]
}

// SiteParity returns the parity of a coordinate.
func SiteParity(c [Ndim]int) Parity {
	return Parity((c[0] + c[1] + c[2] + c[3]) & 1)
}

// Coords recovers the 4D coordinate of a checkerboard site index.
func (g *Geometry) Coords(cb int, parity Parity) [Ndim]int {
	return g.coords[g.fullOf[parity][cb]]
}

// IndexCB returns the checkerboard site index of a coordinate. The
// coordinate's parity is implied; callers track it separately.
func (g *Geometry) IndexCB(c [Ndim]int) int {
	full := ((c[3]*g.X[2]+c[2])*g.X[1]+c[1])*g.X[0] + c[0]
	return g.cbOf[full]
}

// Neighbor returns the checkerboard index and parity of the site one step
// from c along dim in the given direction, wrapping periodically at the
// local extent. On even extents the neighbor parity is always the opposite
// of c's; an extent-1 dimension wraps a site onto itself, which is why the
// parity is resolved from the wrapped coordinate rather than assumed.
func (g *Geometry) Neighbor(c [Ndim]int, dim int, dir Dir) (int, Parity) {
	n := c

	if dir == Forward {
		n[dim] = c[dim] + 1
		if n[dim] == g.X[dim] {
			n[dim] = 0
		}
	} else {
		n[dim] = c[dim] - 1
		if n[dim] < 0 {
			n[dim] = g.X[dim] - 1
		}
	}

	return g.IndexCB(n), SiteParity(n)
}

// Ghost reports whether the step from c along (dim, dir) crosses a
// partitioned boundary, so the neighbor value lives on a remote partition
// and must come through a halo buffer.
func (g *Geometry) Ghost(c [Ndim]int, dim int, dir Dir) bool {
	if !g.Partitioned[dim] {
		return false
	}
	if dir == Forward {
		return c[dim] == g.X[dim]-1
	}
	return c[dim] == 0
}

// OnBoundary reports whether the site touches the partition boundary of dim
// on either face.
func (g *Geometry) OnBoundary(c [Ndim]int, dim int) bool {
	return g.Partitioned[dim] && (c[dim] == 0 || c[dim] == g.X[dim]-1)
}

// OnAnyBoundary reports whether the site touches any partition boundary.
func (g *Geometry) OnAnyBoundary(c [Ndim]int) bool {
	for d := 0; d < Ndim; d++ {
		if g.OnBoundary(c, d) {
			return true
		}
	}
	return false
}

// FaceIndex maps a site to its index within the face orthogonal to dim,
// enumerating the remaining coordinates in site-index order. Both exchange
// partners compute the same index for matching sites, which is what makes
// halo buffers addressable from either side.
func (g *Geometry) FaceIndex(c [Ndim]int, dim int) int {
	idx := 0
	for d := Ndim - 1; d >= 0; d-- {
		if d == dim {
			continue
		}
		idx = idx*g.X[d] + c[d]
	}
	return idx
}

// Active reports whether the pass classified by region has work to do at
// this site. Interior passes visit every site; exterior passes only sites
// on the relevant partition boundary.
func (g *Geometry) Active(region Region, c [Ndim]int) bool {
	switch region {
	case Interior:
		return true
	case ExteriorAll:
		return g.OnAnyBoundary(c)
	default:
		return g.OnBoundary(c, region.Dim())
	}
}

// Complete is the finalize-readiness predicate: it reports whether, once
// the pass classified by region has run for this site, every neighbor
// contribution has been accumulated and the twist/xpay finalize may be
// applied. Interior completes sites with no remote neighbors; a per-
// dimension exterior pass completes a boundary site once no higher-
// numbered partitioned dimension still owes it a contribution; the fused
// pass gathers every remaining contribution itself and always completes.
func (g *Geometry) Complete(region Region, c [Ndim]int) bool {
	switch region {
	case Interior:
		return !g.OnAnyBoundary(c)
	case ExteriorAll:
		return true
	default:
		for d := region.Dim() + 1; d < Ndim; d++ {
			if g.OnBoundary(c, d) {
				return false
			}
		}
		return true
	}
}
