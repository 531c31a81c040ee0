package diagnostics_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/mariaalice-souza/spreg/diagnostics"
	"github.com/mariaalice-souza/spreg/projection"
)

func TestDurbinLMTests_AgainstBruteForce(t *testing.T) {
	t.Parallel()

	reg, w := olsFixture(t)
	alg, err := projection.New(reg.X, w)
	require.NoError(t, err)

	stats, warns, err := diagnostics.DurbinLMTests(reg, w, alg)
	require.NoError(t, err)
	require.Len(t, stats, 4)
	for _, warn := range warns {
		require.NotEqual(t, diagnostics.WarnNumericalInstability, warn.Code)
	}

	byName := map[string]diagnostics.DiagnosticStatistic{}
	for _, s := range stats {
		byName[s.Name] = s
	}
	h := reg.K - 1

	// Dense recomputation of LM_γ and the joint statistic.
	wd := denseOf(w)
	md := denseM(t, reg.X)
	n := reg.N

	x0 := reg.X.Slice(0, n, 1, reg.K).(*mat.Dense)
	var b0 mat.Dense
	b0.Mul(wd, x0)

	var v mat.VecDense
	v.MulVec(b0.T(), mat.NewVecDense(n, reg.Residuals))

	var mb0, b0mb0, inv mat.Dense
	mb0.Mul(md, &b0)
	b0mb0.Mul(b0.T(), &mb0)
	require.NoError(t, inv.Inverse(&b0mb0))

	var iv mat.VecDense
	iv.MulVec(&inv, &v)
	lmGamma := mat.Dot(&v, &iv) / reg.Sigma2
	require.InDelta(t, lmGamma, byName[diagnostics.StatLMWX].Value, epsCross)
	require.Equal(t, h, byName[diagnostics.StatLMWX].DF)

	// Joint: s'J⁻¹s with the blocked information matrix.
	var fit mat.VecDense
	fit.MulVec(reg.X, mat.NewVecDense(reg.K, reg.Beta))
	var g mat.VecDense
	g.MulVec(wd, &fit)
	gs := make([]float64, n)
	for i := 0; i < n; i++ {
		gs[i] = g.AtVec(i)
	}

	var ww, wtw mat.Dense
	ww.Mul(wd, wd)
	wtw.Mul(wd.T(), wd)
	tTerm := traceOf(&ww) + traceOf(&wtw)
	d := quadForm(gs, md, gs)/reg.Sigma2 + tTerm

	var mg mat.VecDense
	mg.MulVec(md, &g)
	var gMb0 mat.VecDense
	gMb0.MulVec(b0.T(), &mg)

	j := mat.NewDense(reg.K, reg.K, nil)
	j.Set(0, 0, d)
	for c := 0; c < h; c++ {
		j.Set(0, c+1, gMb0.AtVec(c)/reg.Sigma2)
		j.Set(c+1, 0, gMb0.AtVec(c)/reg.Sigma2)
	}
	for r := 0; r < h; r++ {
		for c := 0; c < h; c++ {
			j.Set(r+1, c+1, b0mb0.At(r, c)/reg.Sigma2)
		}
	}

	dRho := quadForm(reg.Residuals, wd, reg.Y) / reg.Sigma2
	s := mat.NewVecDense(reg.K, nil)
	s.SetVec(0, dRho)
	for r := 0; r < h; r++ {
		s.SetVec(r+1, v.AtVec(r)/reg.Sigma2)
	}

	var jinv mat.Dense
	require.NoError(t, jinv.Inverse(j))
	var js mat.VecDense
	js.MulVec(&jinv, s)
	lmJoint := mat.Dot(s, &js)
	require.InDelta(t, lmJoint, byName[diagnostics.StatJointLMLagWX].Value, epsCross)
	require.Equal(t, reg.K, byName[diagnostics.StatJointLMLagWX].DF)
}

// The robust forms are derived by subtraction, so the decomposition of the
// joint statistic must hold exactly against the lag test reported by LMTests.
func TestDurbinLMTests_IdentityLaw(t *testing.T) {
	t.Parallel()

	reg, w := olsFixture(t)
	alg, err := projection.New(reg.X, w)
	require.NoError(t, err)

	lmStats, _, err := diagnostics.LMTests(reg, w, alg)
	require.NoError(t, err)
	var lmRho float64
	for _, s := range lmStats {
		if s.Name == diagnostics.StatLMLag {
			lmRho = s.Value
		}
	}
	require.NotZero(t, lmRho)

	durbin, _, err := diagnostics.DurbinLMTests(reg, w, alg)
	require.NoError(t, err)
	byName := map[string]float64{}
	for _, s := range durbin {
		byName[s.Name] = s.Value
	}

	joint := byName[diagnostics.StatJointLMLagWX]
	require.InDelta(t, joint,
		lmRho+byName[diagnostics.StatRobustLMWX], epsIdentity)
	require.InDelta(t, joint,
		byName[diagnostics.StatLMWX]+byName[diagnostics.StatRobustDurbinLag], epsIdentity)
}

func TestDurbinLMTests_NoRegressors(t *testing.T) {
	t.Parallel()

	_, w := olsFixture(t)
	x := mat.NewDense(fixtureN, 1, nil)
	y := make([]float64, fixtureN)
	e := make([]float64, fixtureN)
	for i := 0; i < fixtureN; i++ {
		x.Set(i, 0, 1)
		y[i] = float64(i%4) + 1
		e[i] = y[i] - 2.5
	}
	reg, err := diagnostics.NewOLSContext(y, x, e, []float64{2.5})
	require.NoError(t, err)

	alg, err := projection.New(x, w)
	require.NoError(t, err)

	_, _, err = diagnostics.DurbinLMTests(reg, w, alg)
	require.ErrorIs(t, err, diagnostics.ErrDegreesOfFreedom)
}

func TestDurbinLMTests_WrongProvenance(t *testing.T) {
	t.Parallel()

	reg, w := olsFixture(t)
	tsls, err := diagnostics.NewTwoSLSContext(reg.Y, reg.X, reg.Residuals, reg.Beta, 1, 2)
	require.NoError(t, err)
	alg, err := projection.New(reg.X, w)
	require.NoError(t, err)

	_, _, err = diagnostics.DurbinLMTests(tsls, w, alg)
	require.ErrorIs(t, err, diagnostics.ErrProvenance)
}
