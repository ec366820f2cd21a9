package quda

import (
	"github.com/sunwayihep/quda/internal/dslash"
	"github.com/sunwayihep/quda/internal/gauge"
	"github.com/sunwayihep/quda/internal/lat"
	"github.com/sunwayihep/quda/internal/reduce"
)

// Sentinel errors returned by operator construction and the utilities.
// All are detected before any site processing begins; the hot path itself
// has no error surface.
var (
	// ErrBadExtent is returned when a lattice extent is not positive.
	ErrBadExtent = lat.ErrBadExtent

	// ErrOddVolume is returned when no extent is even, so the lattice
	// cannot be split into two equal checkerboards.
	ErrOddVolume = lat.ErrOddVolume

	// ErrNilField is returned when a required field accessor is missing.
	ErrNilField = dslash.ErrNilField

	// ErrMissingX is returned when pass-through accumulation is requested
	// without a pass-through field.
	ErrMissingX = dslash.ErrMissingX

	// ErrRegionUnavailable is returned when an exterior region is requested
	// on a geometry that is not partitioned in that dimension.
	ErrRegionUnavailable = dslash.ErrRegionUnavailable

	// ErrReconstructNcolor is returned when 12-real gauge compression is
	// requested for a color count other than 3.
	ErrReconstructNcolor = gauge.ErrReconstructNcolor

	// ErrBatchTooLarge is returned when a reduction batch exceeds MaxBatch.
	ErrBatchTooLarge = reduce.ErrBatchTooLarge
)
