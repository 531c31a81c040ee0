package diagnostics_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/mariaalice-souza/spreg/diagnostics"
	"github.com/mariaalice-souza/spreg/weights"
)

// Shared tolerances: epsIdentity for the derived-robust identity law,
// epsCross for sparse-vs-dense brute-force comparisons.
const (
	epsIdentity = 1e-9
	epsCross    = 1e-9
)

// fixtureN is the sample size of the shared OLS fixture.
const fixtureN = 12

// olsFixture fits a genuine OLS regression on fixed synthetic data (constant
// plus two regressors) and pairs it with a row-standardized ring-contiguity
// weights matrix (every unit neighbors its two ring neighbors, no isolates).
func olsFixture(t *testing.T) (*diagnostics.RegressionContext, *weights.Matrix) {
	t.Helper()

	x, y := fixtureData()
	beta, e := fitOLS(t, x, y)
	reg, err := diagnostics.NewOLSContext(y, x, e, beta)
	require.NoError(t, err)

	return reg, ringW(t)
}

func fixtureData() (*mat.Dense, []float64) {
	x := mat.NewDense(fixtureN, 3, []float64{
		1, 2.0, 1.5,
		1, 3.5, -0.5,
		1, 1.0, 2.5,
		1, 4.0, 0.5,
		1, 2.5, 3.0,
		1, 5.0, 1.0,
		1, 3.0, -1.0,
		1, 1.5, 2.0,
		1, 4.5, 0.8,
		1, 2.0, 1.2,
		1, 3.8, -0.3,
		1, 1.2, 2.2,
	})
	y := []float64{5, 7, 3, 9, 6, 11, 7, 4, 10, 5, 8, 3.5}

	return x, y
}

// fitOLS solves the least-squares problem for the fixture and returns β and
// the residual vector, so every engine sees a genuine OLS snapshot.
func fitOLS(t *testing.T, x *mat.Dense, y []float64) (beta, residuals []float64) {
	t.Helper()

	n, k := x.Dims()
	var sol mat.Dense
	require.NoError(t, sol.Solve(x, mat.NewDense(n, 1, y)))

	beta = make([]float64, k)
	for j := 0; j < k; j++ {
		beta[j] = sol.At(j, 0)
	}

	var fit mat.VecDense
	fit.MulVec(x, mat.NewVecDense(k, beta))
	residuals = make([]float64, n)
	for i := 0; i < n; i++ {
		residuals[i] = y[i] - fit.AtVec(i)
	}

	return beta, residuals
}

// ringW builds the row-standardized ring: unit i neighbors i−1 and i+1 mod n.
func ringW(t *testing.T) *weights.Matrix {
	t.Helper()

	neighbors := make([][]int, fixtureN)
	for i := 0; i < fixtureN; i++ {
		neighbors[i] = []int{(i + fixtureN - 1) % fixtureN, (i + 1) % fixtureN}
	}
	w, err := weights.NewBinaryFromNeighbors(neighbors)
	require.NoError(t, err)
	require.NoError(t, w.RowStandardize())

	return w
}

// zeroW builds the degenerate all-zero weights matrix of fixture order.
func zeroW(t *testing.T) *weights.Matrix {
	t.Helper()

	neighbors := make([][]int, fixtureN)
	wts := make([][]float64, fixtureN)
	for i := range neighbors {
		neighbors[i] = []int{}
		wts[i] = []float64{}
	}
	w, err := weights.NewFromNeighbors(neighbors, wts)
	require.NoError(t, err)

	return w
}

// denseM materializes M = I − X(X'X)⁻¹X' for brute-force cross-checks.
func denseM(t *testing.T, x *mat.Dense) *mat.Dense {
	t.Helper()

	n, _ := x.Dims()
	var xtx, inv, xc, p mat.Dense
	xtx.Mul(x.T(), x)
	require.NoError(t, inv.Inverse(&xtx))
	xc.Mul(x, &inv)
	p.Mul(&xc, x.T())

	m := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			id := 0.0
			if i == j {
				id = 1.0
			}
			m.Set(i, j, id-p.At(i, j))
		}
	}

	return m
}

// denseOf expands a weights.Matrix into a gonum Dense.
func denseOf(w *weights.Matrix) *mat.Dense {
	d := w.Dense()
	n := len(d)
	out := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			out.Set(i, j, d[i][j])
		}
	}

	return out
}

// quadForm evaluates u'·A·v densely.
func quadForm(u []float64, a *mat.Dense, v []float64) float64 {
	var av mat.VecDense
	av.MulVec(a, mat.NewVecDense(len(v), v))

	return mat.Dot(mat.NewVecDense(len(u), u), &av)
}

// traceOf sums the diagonal of a dense product.
func traceOf(m mat.Matrix) float64 {
	r, _ := m.Dims()
	var s float64
	for i := 0; i < r; i++ {
		s += m.At(i, i)
	}

	return s
}
