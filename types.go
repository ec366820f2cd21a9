package quda

import (
	"math/rand"

	"github.com/sunwayihep/quda/internal/field"
	"github.com/sunwayihep/quda/internal/gauge"
	"github.com/sunwayihep/quda/internal/halo"
	"github.com/sunwayihep/quda/internal/lat"
	"github.com/sunwayihep/quda/internal/sched"
	"github.com/sunwayihep/quda/internal/spinor"
)

// Complex is the type constraint for field element types. The canonical
// definition is in internal/spinor.
type Complex = spinor.Complex

// Float is the type constraint for real scalar types.
type Float = spinor.Float

// Parity selects one checkerboard of the lattice, or both.
type Parity = lat.Parity

const (
	EvenParity = lat.Even
	OddParity  = lat.Odd

	// ParityBoth iterates the two checkerboards as a second dispatch axis.
	ParityBoth = lat.Both
)

// Dir is a gather direction along one dimension.
type Dir = lat.Dir

const (
	BackwardDir = lat.Backward
	ForwardDir  = lat.Forward
)

// Region classifies which subset of neighbor contributions a pass
// computes. The caller sequences Interior before exterior passes.
type Region = lat.Region

const (
	Interior    = lat.Interior
	ExteriorX   = lat.ExteriorX
	ExteriorY   = lat.ExteriorY
	ExteriorZ   = lat.ExteriorZ
	ExteriorT   = lat.ExteriorT
	ExteriorAll = lat.ExteriorAll
)

// Geometry describes one local lattice partition.
type Geometry = lat.Geometry

// NewGeometry validates the extents and builds a geometry. At least one
// extent must be even so the lattice splits into two equal checkerboards.
func NewGeometry(extents [4]int, partitioned [4]bool) (*Geometry, error) {
	return lat.NewGeometry(extents, partitioned)
}

// Spinor is the field value at one site.
type Spinor[T Complex] = spinor.Spinor[T]

// HalfSpinor is a spin-projected field value, the form halo buffers carry.
type HalfSpinor[T Complex] = spinor.HalfSpinor[T]

// Field is dense per-parity spinor storage.
type Field[T Complex] = field.Field[T]

// NewField allocates a zeroed spinor field with nc colors.
func NewField[T Complex](geo *Geometry, nc int) *Field[T] {
	return field.New[T](geo, nc)
}

// LinkMatrix is an nc x nc complex gauge link.
type LinkMatrix[T Complex] = gauge.Matrix[T]

// GaugeField is dense per-parity link storage.
type GaugeField[T Complex] = gauge.Field[T]

// NewGaugeField allocates a zeroed gauge field with nc colors.
func NewGaugeField[T Complex](geo *Geometry, nc int) *GaugeField[T] {
	return gauge.NewField[T](geo, nc)
}

// CompressedGaugeField stores 3-color links 12-real compressed and
// reconstructs the third row on access.
type CompressedGaugeField[T Complex] = gauge.Twelve[T]

// CompressGauge builds a 12-real compressed copy of a dense 3-color field.
func CompressGauge[T Complex](f *GaugeField[T]) (*CompressedGaugeField[T], error) {
	return gauge.Compress(f)
}

// HaloBuffers holds a partition's ghost storage.
type HaloBuffers[T Complex] = halo.Buffers[T]

// NewHaloBuffers allocates ghost storage for every partitioned dimension.
func NewHaloBuffers[T Complex](geo *Geometry, nc int) *HaloBuffers[T] {
	return halo.NewBuffers[T](geo, nc)
}

// BoundField is a field with ghost buffers bound, readable by exterior
// passes.
type BoundField[T Complex] = halo.Bound[T]

// BindField attaches ghost buffers to a field.
func BindField[T Complex](f *Field[T], b *HaloBuffers[T]) BoundField[T] {
	return halo.Bound[T]{Field: f, Ghost: b}
}

// LinkSource is the local-link side of a gauge accessor, satisfied by both
// dense and compressed storage.
type LinkSource[T Complex] = halo.LinkSource[T]

// BoundGauge is link storage with ghost link buffers bound.
type BoundGauge[T Complex] = halo.BoundGauge[T]

// BindGauge attaches ghost link buffers to local link storage.
func BindGauge[T Complex](g LinkSource[T], b *HaloBuffers[T]) BoundGauge[T] {
	return halo.BoundGauge[T]{LinkSource: g, Ghost: b}
}

// PackParams mirrors the operator variant when packing halo data.
type PackParams = halo.PackParams

// PackHalo fills dst, the ghost buffers of a partition, for one dimension,
// from the adjacent partition's field and link data.
func PackHalo[T Complex](dst *HaloBuffers[T], dim int, srcField *Field[T], srcGauge LinkSource[T], p PackParams) {
	halo.Pack(dst, dim, srcField, srcGauge, p)
}

// ExchangeHalos fills both partitions' ghost buffers for a two-partition
// split along dim.
func ExchangeHalos[T Complex](aBuf, bBuf *HaloBuffers[T], aField, bField *Field[T], aGauge, bGauge LinkSource[T], dim int, p PackParams) {
	halo.ExchangePair(aBuf, bBuf, aField, bField, aGauge, bGauge, dim, p)
}

// Pool is the persistent worker pool behind ApplyParallel.
type Pool = sched.Pool

// NewPool creates a worker pool; numWorkers <= 0 uses GOMAXPROCS.
func NewPool(numWorkers int) *Pool {
	return sched.New(numWorkers)
}

// RandomizeField fills a field with uniform entries, for tests and
// benchmarks.
func RandomizeField[T Complex](f *Field[T], rng *rand.Rand) {
	f.Randomize(rng)
}
