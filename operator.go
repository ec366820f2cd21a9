package quda

import (
	"github.com/sunwayihep/quda/internal/dslash"
)

// FieldReader is the accessor the gather reads input spinors through.
type FieldReader[T Complex] = dslash.FieldReader[T]

// FieldWriter is the output accessor.
type FieldWriter[T Complex] = dslash.FieldWriter[T]

// GaugeReader is the accessor the gather reads link matrices through.
type GaugeReader[T Complex] = dslash.GaugeReader[T]

// Params configures a twisted-mass operator.
type Params struct {
	// A is the overall scale of the hopping and twist terms.
	A float64

	// B is the twist coefficient. The adjoint variant negates it
	// internally; callers always pass the configured value.
	B float64

	// Dagger selects the adjoint variant.
	Dagger bool

	// Asymmetric selects asymmetric preconditioning, which moves the twist
	// rotation of the adjoint variant to the finalize step.
	Asymmetric bool

	// Xpay enables pass-through accumulation of a third field at finalize.
	Xpay bool

	// TProjScale rescales halo-received projections on the time axis.
	// Zero means 1. Antiperiodic-type boundaries are encoded through it.
	TProjScale float64

	// Parity selects the checkerboard(s) to update.
	Parity Parity
}

// TwistedMass is a fully resolved operator application. All variant
// dispatch is bound when the operator is built; the per-site path contains
// no flag branching and no validation.
//
// One application is one or more passes: Interior always, then — on
// partitioned geometries, after the halo exchange — either ExteriorAll or
// the per-dimension exterior regions in ascending dimension order. The
// output field doubles as partial-sum storage between those passes.
type TwistedMass[T Complex] struct {
	geo    *Geometry
	nc     int
	params Params

	in  FieldReader[T]
	out FieldWriter[T]
	x   FieldReader[T]
	g   GaugeReader[T]

	site dslash.SiteFunc[T]
}

// NewTwistedMass validates the configuration and builds an operator bound
// to its fields. in must be halo-bound when exterior passes will run; out
// gathers into parity op.Params.Parity while in serves the opposite
// parity.
func NewTwistedMass[T Complex](geo *Geometry, out FieldWriter[T], in FieldReader[T], x FieldReader[T], g GaugeReader[T], p Params) (*TwistedMass[T], error) {
	if in == nil || out == nil || g == nil {
		return nil, ErrNilField
	}

	if p.Xpay && x == nil {
		return nil, ErrMissingX
	}

	return &TwistedMass[T]{
		geo:    geo,
		nc:     g.Ncolor(),
		params: p,
		in:     in,
		out:    out,
		x:      x,
		g:      g,
		site:   dslash.Resolve[T](p.Dagger, p.Asymmetric, p.Xpay),
	}, nil
}

// Geometry returns the lattice the operator is bound to.
func (op *TwistedMass[T]) Geometry() *Geometry { return op.geo }

// PackParams returns the halo packing parameters matching this operator's
// variant, for use with PackHalo / ExchangeHalos before exterior passes.
func (op *TwistedMass[T]) PackParams() PackParams {
	b := op.params.B
	if op.params.Dagger {
		b = -b
	}

	return PackParams{
		Twist:  op.params.Dagger && !op.params.Asymmetric,
		A:      op.params.A,
		B:      b,
		Dagger: op.params.Dagger,
	}
}

func (op *TwistedMass[T]) args(region Region) (*dslash.Args[T], error) {
	return dslash.NewArgs(op.geo, op.in, op.out, op.x, op.g,
		op.params.A, op.params.B,
		op.params.Dagger, op.params.Asymmetric, op.params.Xpay,
		op.params.TProjScale, region)
}

func (op *TwistedMass[T]) parities() []Parity {
	if op.params.Parity == ParityBoth {
		return []Parity{EvenParity, OddParity}
	}
	return []Parity{op.params.Parity}
}
