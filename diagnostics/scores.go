// Package diagnostics: score terms shared by the LM and Durbin engines.

package diagnostics

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/mariaalice-souza/spreg/projection"
	"github.com/mariaalice-souza/spreg/weights"
)

// lagScores bundles the first-order score terms of the spatial-lag and
// spatial-error alternatives. Computed once, read by both the LM and Durbin
// engines (they recompute independently when run in parallel — the cost is a
// handful of O(nnz) passes).
type lagScores struct {
	dRho float64   // d_ρ = e'Wy / σ̂²
	dLam float64   // d_λ = e'We / σ̂²
	gMg  float64   // (WXβ)'M(WXβ)
	d    float64   // D = gMg/σ̂² + T
	t    float64   // T = tr(WW + W'W)
	g    []float64 // g = WXβ (n)
}

func computeLagScores(reg *RegressionContext, w *weights.Matrix, alg *projection.Algebra) (*lagScores, error) {
	t := alg.TraceTerm()
	if t == 0 {
		return nil, ErrDegenerateWeights
	}

	wy, err := w.Lag(reg.Y)
	if err != nil {
		return nil, err
	}
	we, err := w.Lag(reg.Residuals)
	if err != nil {
		return nil, err
	}

	// g = W·X·β = B·β with B = WX already held by the algebra.
	var gv mat.VecDense
	gv.MulVec(alg.LagX(), mat.NewVecDense(reg.K, reg.Beta))
	g := make([]float64, reg.N)
	for i := 0; i < reg.N; i++ {
		g[i] = gv.AtVec(i)
	}

	gMg, err := alg.QuadFormM(g, g)
	if err != nil {
		return nil, fmt.Errorf("lag scores: %w", err)
	}

	return &lagScores{
		dRho: floats.Dot(reg.Residuals, wy) / reg.Sigma2,
		dLam: floats.Dot(reg.Residuals, we) / reg.Sigma2,
		gMg:  gMg,
		d:    gMg/reg.Sigma2 + t,
		t:    t,
		g:    g,
	}, nil
}
