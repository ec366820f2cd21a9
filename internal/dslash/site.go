package dslash

import (
	"github.com/sunwayihep/quda/internal/lat"
	"github.com/sunwayihep/quda/internal/spinor"
)

// SiteFunc is a resolved per-site kernel. The caller guarantees cb is in
// range and sc is private to the calling worker; the kernel performs no
// checks.
type SiteFunc[T spinor.Complex] func(arg *Args[T], sc *Scratch[T], cb int, parity lat.Parity)

type gatherFunc[T spinor.Complex] func(acc spinor.Spinor[T], arg *Args[T], c [lat.Ndim]int, cb int, parity lat.Parity, sc *Scratch[T])

// Resolve maps the variant flags to a concrete site kernel, once per
// operator construction, so the per-site path never re-derives them: the
// adjoint non-asymmetric variant gathers through the twisted hopping term
// and skips the post-rotation, every other combination gathers through the
// plain Wilson term and rotates at finalize.
func Resolve[T spinor.Complex](dagger, asym, xpay bool) SiteFunc[T] {
	if dagger && !asym {
		return siteKernel[T](ApplyWilsonTM[T], false, xpay)
	}
	return siteKernel[T](ApplyWilson[T], true, xpay)
}

// siteKernel builds the per-site state machine for one variant:
//
//  1. resolve the coordinate and whether this pass has work here;
//  2. gather the neighbor contributions;
//  3. on non-interior passes, merge the partial sum a prior pass stored at
//     this site;
//  4. once every contribution is known to be present, apply the twist
//     rotation and the optional pass-through addition;
//  5. store the accumulator.
//
// Exterior passes idle on sites off their boundary and leave the stored
// value untouched. The output slot is read once and overwritten once per
// non-interior pass; sequencing interior before exterior passes is the
// caller's contract.
func siteKernel[T spinor.Complex](gather gatherFunc[T], postTwist, xpay bool) SiteFunc[T] {
	return func(arg *Args[T], sc *Scratch[T], cb int, parity lat.Parity) {
		c := arg.Geo.Coords(cb, parity)

		if !arg.Geo.Active(arg.Region, c) {
			return
		}

		sc.acc.Zero()
		gather(sc.acc, arg, c, cb, parity, sc)

		if arg.Region != lat.Interior {
			sc.acc.Add(arg.Out.Site(cb, parity))
		}

		if arg.Geo.Complete(arg.Region, c) {
			if postTwist {
				spinor.Twist(sc.acc, sc.acc, arg.A, arg.B)
			}

			if xpay {
				sc.acc.Add(arg.X.Site(cb, parity))
			}
		}

		arg.Out.Site(cb, parity).Copy(sc.acc)
	}
}
