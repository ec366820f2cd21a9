package quda_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sunwayihep/quda"
)

func TestApplyParallelMatchesSequential(t *testing.T) {
	t.Parallel()

	geo := newTestGeometry(t, [4]int{4, 4, 4, 4})
	u, in, x := randomOperatorInputs(t, geo, 3, 61)

	pool := quda.NewPool(4)
	defer pool.Close()

	for _, dagger := range []bool{false, true} {
		for _, xpay := range []bool{false, true} {
			p := quda.Params{
				A:      0.8,
				B:      0.3,
				Dagger: dagger,
				Xpay:   xpay,
				Parity: quda.ParityBoth,
			}

			seq := quda.NewField[complex128](geo, 3)
			par := quda.NewField[complex128](geo, 3)

			opSeq, err := quda.NewTwistedMass[complex128](geo, seq, in, x, u, p)
			require.NoError(t, err)
			opPar, err := quda.NewTwistedMass[complex128](geo, par, in, x, u, p)
			require.NoError(t, err)

			require.NoError(t, opSeq.Apply(quda.Interior))
			require.NoError(t, opPar.ApplyParallel(quda.Interior, pool))

			// Sites never share accumulators, so the parallel driver is bit
			// identical to the sequential one.
			assertFieldsEqual(t, par, seq, "dagger=%v xpay=%v", dagger, xpay)
		}
	}
}

func TestApplyParallelSingleParity(t *testing.T) {
	t.Parallel()

	geo := newTestGeometry(t, [4]int{4, 4, 2, 4})
	u, in, _ := randomOperatorInputs(t, geo, 2, 67)

	pool := quda.NewPool(3)
	defer pool.Close()

	p := quda.Params{A: 1.0, B: -0.1, Parity: quda.OddParity}

	seq := quda.NewField[complex128](geo, 2)
	par := quda.NewField[complex128](geo, 2)

	opSeq, err := quda.NewTwistedMass[complex128](geo, seq, in, nil, u, p)
	require.NoError(t, err)
	opPar, err := quda.NewTwistedMass[complex128](geo, par, in, nil, u, p)
	require.NoError(t, err)

	require.NoError(t, opSeq.Apply(quda.Interior))
	require.NoError(t, opPar.ApplyParallel(quda.Interior, pool))

	assertFieldsEqual(t, par, seq, "odd-parity parallel apply")
}

func TestApplyParallelOnClosedPool(t *testing.T) {
	t.Parallel()

	geo := newTestGeometry(t, [4]int{2, 2, 2, 2})
	u, in, _ := randomOperatorInputs(t, geo, 1, 71)

	pool := quda.NewPool(2)
	pool.Close()

	p := quda.Params{A: 0.5, B: 0.5, Parity: quda.ParityBoth}

	seq := quda.NewField[complex128](geo, 1)
	par := quda.NewField[complex128](geo, 1)

	opSeq, err := quda.NewTwistedMass[complex128](geo, seq, in, nil, u, p)
	require.NoError(t, err)
	opPar, err := quda.NewTwistedMass[complex128](geo, par, in, nil, u, p)
	require.NoError(t, err)

	require.NoError(t, opSeq.Apply(quda.Interior))
	require.NoError(t, opPar.ApplyParallel(quda.Interior, pool))

	assertFieldsEqual(t, par, seq, "closed-pool fallback apply")
}
