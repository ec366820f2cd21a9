// Package quda implements the even/odd preconditioned twisted-mass stencil
// operator on a 4-dimensional lattice: for every site it gathers the eight
// nearest-neighbor hopping contributions through gauge links, applies the
// chiral twist rotation, optionally accumulates a pass-through field, and
// writes the result.
//
// The operator is generic over the field precision (complex64 or
// complex128) and runs identically on a sequential driver and on a
// worker-pool driver. Lattices may be partitioned along any dimension;
// contributions whose neighbor lives on a remote partition are gathered
// from halo buffers by exterior passes, which the caller schedules after
// the interior pass and the halo exchange.
//
// Typical single-partition use:
//
//	geo, _ := quda.NewGeometry([4]int{8, 8, 8, 8}, [4]bool{})
//	u := quda.NewGaugeField[complex128](geo, 3)
//	u.SetIdentity()
//	in, out := quda.NewField[complex128](geo, 3), quda.NewField[complex128](geo, 3)
//	op, _ := quda.NewTwistedMass(geo, out, in, nil, u, quda.Params{A: 1, B: 0.1, Parity: quda.ParityBoth})
//	_ = op.Apply(quda.Interior)
package quda
