package dslash

import (
	"github.com/sunwayihep/quda/internal/lat"
	"github.com/sunwayihep/quda/internal/spinor"
)

// handlesHalo reports whether the active region gathers halo data for dim.
func handlesHalo(region lat.Region, dim int) bool {
	return region == lat.ExteriorAll || region.Dim() == dim
}

// ApplyWilson accumulates the eight nearest-neighbor hopping contributions
// for one site into acc: for every dimension, link times spin-projected
// forward neighbor plus adjoint link times spin-projected backward
// neighbor, each reconstructed to four spin components. Which of the local
// and halo paths runs is decided per (dimension, direction) by the ghost
// test and the active region; a contribution is computed by exactly one
// pass.
func ApplyWilson[T spinor.Complex](acc spinor.Spinor[T], arg *Args[T], c [lat.Ndim]int, cb int, parity lat.Parity, sc *Scratch[T]) {
	gather(acc, arg, c, cb, parity, false, sc)
}

// ApplyWilsonTM is the twisted-mass hopping term: identical to ApplyWilson
// except that every locally gathered neighbor spinor is twist-rotated by
// a*(v + i*b*gamma5(v)) before projection. Halo-received projections are
// already rotated by the sender's pack step.
func ApplyWilsonTM[T spinor.Complex](acc spinor.Spinor[T], arg *Args[T], c [lat.Ndim]int, cb int, parity lat.Parity, sc *Scratch[T]) {
	gather(acc, arg, c, cb, parity, true, sc)
}

func gather[T spinor.Complex](acc spinor.Spinor[T], arg *Args[T], c [lat.Ndim]int, cb int, parity lat.Parity, twist bool, sc *Scratch[T]) {
	nc := arg.Nc

	for dim := 0; dim < lat.Ndim; dim++ {
		// Forward gather: local link, neighbor at +1.
		fs := ProjSign(lat.Forward, arg.Dagger)

		if arg.Geo.Ghost(c, dim, lat.Forward) {
			if handlesHalo(arg.Region, dim) {
				faceIdx := arg.Geo.FaceIndex(c, dim)
				copy(sc.h, arg.In.Halo(dim, lat.Forward, faceIdx))

				if dim == lat.Tdim {
					spinor.ScaleHalf(sc.h, arg.TProjScale)
				}

				link := arg.Gauge.Link(dim, cb, parity, sc.m)
				link.MulVec(sc.hOut, sc.h, nc)
				spinor.AddReconstruct(acc, sc.hOut, dim, fs)
			}
		} else if arg.Region == lat.Interior {
			ncb, np := arg.Geo.Neighbor(c, dim, lat.Forward)
			v := arg.In.Site(ncb, np)

			if twist {
				spinor.Twist(sc.tmp, v, arg.A, arg.B)
				v = sc.tmp
			}

			spinor.Project(sc.h, v, dim, fs)
			link := arg.Gauge.Link(dim, cb, parity, sc.m)
			link.MulVec(sc.hOut, sc.h, nc)
			spinor.AddReconstruct(acc, sc.hOut, dim, fs)
		}

		// Backward gather: the link lives on the backward-shifted site and
		// is applied as its conjugate transpose.
		bs := ProjSign(lat.Backward, arg.Dagger)

		if arg.Geo.Ghost(c, dim, lat.Backward) {
			if handlesHalo(arg.Region, dim) {
				faceIdx := arg.Geo.FaceIndex(c, dim)
				copy(sc.h, arg.In.Halo(dim, lat.Backward, faceIdx))

				if dim == lat.Tdim {
					spinor.ScaleHalf(sc.h, arg.TProjScale)
				}

				link := arg.Gauge.HaloLink(dim, faceIdx, sc.m)
				link.MulVecConj(sc.hOut, sc.h, nc)
				spinor.AddReconstruct(acc, sc.hOut, dim, bs)
			}
		} else if arg.Region == lat.Interior {
			ncb, np := arg.Geo.Neighbor(c, dim, lat.Backward)
			v := arg.In.Site(ncb, np)

			if twist {
				spinor.Twist(sc.tmp, v, arg.A, arg.B)
				v = sc.tmp
			}

			spinor.Project(sc.h, v, dim, bs)
			link := arg.Gauge.Link(dim, ncb, np, sc.m)
			link.MulVecConj(sc.hOut, sc.h, nc)
			spinor.AddReconstruct(acc, sc.hOut, dim, bs)
		}
	}
}
