package weights_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/mariaalice-souza/spreg/weights"
)

// asymW is a fixed asymmetric test matrix shared by the lag tests.
var asymW = [][]float64{
	{0, 0.5, 0, 1.5},
	{2, 0, 0.25, 0},
	{0, 1, 0, 0},
	{0.5, 0, 3, 0},
}

func TestLag_AgainstDense(t *testing.T) {
	t.Parallel()

	w, err := weights.NewFromDense(asymW)
	require.NoError(t, err)

	v := []float64{1, -2, 3, 0.5}
	got, err := w.Lag(v)
	require.NoError(t, err)

	n := len(asymW)
	want := make([]float64, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			want[i] += asymW[i][j] * v[j]
		}
	}
	for i := range want {
		require.InDelta(t, want[i], got[i], epsTight, "row %d", i)
	}
}

func TestLagTranspose_AgainstDense(t *testing.T) {
	t.Parallel()

	w, err := weights.NewFromDense(asymW)
	require.NoError(t, err)

	v := []float64{1, -2, 3, 0.5}
	got, err := w.LagTranspose(v)
	require.NoError(t, err)

	n := len(asymW)
	want := make([]float64, n)
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			want[j] += asymW[i][j] * v[i]
		}
	}
	for j := range want {
		require.InDelta(t, want[j], got[j], epsTight, "col %d", j)
	}
}

func TestLagDense_AgainstDense(t *testing.T) {
	t.Parallel()

	w, err := weights.NewFromDense(asymW)
	require.NoError(t, err)

	n := len(asymW)
	x := mat.NewDense(n, 2, []float64{
		1, 10,
		2, -1,
		3, 0,
		4, 2,
	})

	b, err := w.LagDense(x)
	require.NoError(t, err)
	a, err := w.LagTransposeDense(x)
	require.NoError(t, err)

	wd := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			wd.Set(i, j, asymW[i][j])
		}
	}
	var wantB, wantA mat.Dense
	wantB.Mul(wd, x)
	wantA.Mul(wd.T(), x)

	for i := 0; i < n; i++ {
		for c := 0; c < 2; c++ {
			require.InDelta(t, wantB.At(i, c), b.At(i, c), epsTight)
			require.InDelta(t, wantA.At(i, c), a.At(i, c), epsTight)
		}
	}
}

func TestLag_DimensionMismatch(t *testing.T) {
	t.Parallel()

	w, err := weights.NewFromDense(asymW)
	require.NoError(t, err)

	_, err = w.Lag([]float64{1, 2})
	require.ErrorIs(t, err, weights.ErrDimensionMismatch)
	_, err = w.LagTranspose([]float64{1, 2})
	require.ErrorIs(t, err, weights.ErrDimensionMismatch)
	_, err = w.LagDense(mat.NewDense(2, 1, []float64{1, 2}))
	require.ErrorIs(t, err, weights.ErrDimensionMismatch)
	_, err = w.LagTransposeDense(mat.NewDense(2, 1, []float64{1, 2}))
	require.ErrorIs(t, err, weights.ErrDimensionMismatch)
}
