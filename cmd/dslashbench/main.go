// Command dslashbench benchmarks the twisted-mass stencil operator across
// lattice sizes and drivers and reports per-application timings.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/sunwayihep/quda"
	"github.com/sunwayihep/quda/internal/cpu"
)

type benchResult struct {
	label   string
	volume  int
	nsPerOp float64
	gflops  float64
}

func main() {
	var (
		sizeList = flag.String("sizes", "4,8,16", "comma-separated cubic extents (lattice is L^3 x 2L)")
		nc       = flag.Int("nc", 3, "color components")
		iters    = flag.Int("iters", 50, "benchmark iterations")
		warmup   = flag.Int("warmup", 5, "warmup iterations")
		workers  = flag.Int("workers", 0, "pool workers (0 = GOMAXPROCS)")
		double   = flag.Bool("double", true, "double precision (complex128); false for complex64")
		seed     = flag.Int64("seed", 1, "rng seed")
	)
	flag.Parse()

	sizes := parseSizes(*sizeList)
	if len(sizes) == 0 {
		fmt.Println("no sizes specified")
		return
	}

	features := cpu.DetectFeatures()
	fmt.Printf("arch=%s simd=%s cpus=%d iters=%d warmup=%d\n",
		features.Architecture, features.SIMDName(), features.NumCPU, *iters, *warmup)
	fmt.Printf("%8s  %10s  %12s  %12s  %10s\n", "volume", "driver", "ns/op", "gflops", "norm2")

	pool := quda.NewPool(*workers)
	defer pool.Close()

	for _, l := range sizes {
		if *double {
			run[complex128](l, *nc, *iters, *warmup, *seed, pool)
		} else {
			run[complex64](l, *nc, *iters, *warmup, *seed, pool)
		}
	}
}

func run[T quda.Complex](l, nc, iters, warmup int, seed int64, pool *quda.Pool) {
	geo, err := quda.NewGeometry([4]int{l, l, l, 2 * l}, [4]bool{})
	if err != nil {
		fmt.Printf("geometry %d: %v\n", l, err)
		return
	}

	rng := rand.New(rand.NewSource(seed))

	u := quda.NewGaugeField[T](geo, nc)
	u.Randomize(rng)

	in := quda.NewField[T](geo, nc)
	out := quda.NewField[T](geo, nc)
	quda.RandomizeField(in, rng)

	op, err := quda.NewTwistedMass(geo, out, in, nil, u,
		quda.Params{A: 1, B: 0.1, Parity: quda.ParityBoth})
	if err != nil {
		fmt.Printf("operator: %v\n", err)
		return
	}

	seq := bench(geo.Volume(), nc, iters, warmup, func() { _ = op.Apply(quda.Interior) })
	seq.label = "sequential"
	report(seq, out)

	par := bench(geo.Volume(), nc, iters, warmup, func() { _ = op.ApplyParallel(quda.Interior, pool) })
	par.label = "parallel"
	report(par, out)
}

func bench(volume, nc, iters, warmup int, fn func()) benchResult {
	for i := 0; i < warmup; i++ {
		fn()
	}

	start := time.Now()
	for i := 0; i < iters; i++ {
		fn()
	}
	elapsed := time.Since(start)

	nsPerOp := float64(elapsed.Nanoseconds()) / float64(iters)

	// Per site: 8 gathers of (project, mat-vec, reconstruct) plus the twist.
	flopsPerSite := 8.0 * float64(8*nc+2*nc*nc*8+8*nc)
	gflops := flopsPerSite * float64(volume) / nsPerOp

	return benchResult{volume: volume, nsPerOp: nsPerOp, gflops: gflops}
}

func report[T quda.Complex](r benchResult, out *quda.Field[T]) {
	fmt.Printf("%8d  %10s  %12.1f  %12.2f  %10.4g\n",
		r.volume, r.label, r.nsPerOp, r.gflops, quda.FieldNorm2(out))
}

func parseSizes(s string) []int {
	var sizes []int

	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		n, err := strconv.Atoi(part)
		if err != nil || n < 2 {
			continue
		}
		sizes = append(sizes, n)
	}

	return sizes
}
