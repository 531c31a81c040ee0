package diagnostics

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/mariaalice-souza/spreg/projection"
	"github.com/mariaalice-souza/spreg/weights"
)

// derivedClampEps bounds the floating-point noise tolerated when a derived
// robust statistic comes out slightly negative; anything within [−eps, 0) is
// clamped to zero silently, larger negatives are clamped with a warning.
const derivedClampEps = 1e-9

// DurbinLMTests — Koley–Bera Lagrange Multiplier tests for the Spatial Durbin
// specification, on OLS residuals.
//
// With X₀ = X minus the constant column, B₀ = WX₀, h = k−1, and the score
// terms of the lag alternative (d_ρ, D as in the LM engine):
//
//	LM_γ  = [e'B₀] [B₀'MB₀]⁻¹ [B₀'e] / σ̂²          χ²(h)
//	LM_ργ = s'J⁻¹s                                  χ²(k)
//
// where s = [e'Wy/σ̂², e'B₀/σ̂²] and J is the block information matrix with
// blocks (WXβ)'M(WXβ)/σ̂² + T, (WXβ)'MB₀/σ̂², B₀'MB₀/σ̂².
//
// The robust forms are DERIVED, never recomputed:
//
//	LM_γ* = LM_ργ − LM_ρ                            χ²(h)
//	LM_ρ* = LM_ργ − LM_γ                            χ²(1)  (Durbin-context form)
//
// so the exact identity LM_ργ = LM_ρ + LM_γ* = LM_ρ* + LM_γ holds to floating
// tolerance by construction, and the redundant matrix work of independent
// recomputation is eliminated. LM_ρ itself is the same value the LM engine
// reports and is not duplicated in the output.
//
// Interpretation guidance (metadata only): compare the joint test first, then
// the robust one-directional forms. A robust value exceeding its non-robust
// counterpart raises WarnRobustExceedsClassic.
//
// Errors: ErrDegreesOfFreedom when h = 0; ErrSingular when B₀'MB₀ or J is
// not invertible.
func DurbinLMTests(reg *RegressionContext, w *weights.Matrix, alg *projection.Algebra) ([]DiagnosticStatistic, []Warning, error) {
	if reg == nil || w == nil || alg == nil {
		return nil, nil, fmt.Errorf("DurbinLMTests: %w", ErrNilOperand)
	}
	if reg.Provenance != ProvenanceOLS {
		return nil, nil, fmt.Errorf("DurbinLMTests: %w", ErrProvenance)
	}
	h := reg.K - 1
	if h < 1 {
		return nil, nil, fmt.Errorf("DurbinLMTests: %w", ErrDegreesOfFreedom)
	}

	sc, err := computeLagScores(reg, w, alg)
	if err != nil {
		return nil, nil, fmt.Errorf("DurbinLMTests: %w", err)
	}

	// B₀ = WX₀ is the non-constant column block of B = WX.
	b0 := alg.LagX().Slice(0, reg.N, 1, reg.K).(*mat.Dense)

	// v = B₀'e.
	v := mat.NewVecDense(h, nil)
	v.MulVec(b0.T(), mat.NewVecDense(reg.N, reg.Residuals))

	// B₀'MB₀, symmetrized before factorization.
	mb0b0, err := alg.CrossM(b0, b0)
	if err != nil {
		return nil, nil, fmt.Errorf("DurbinLMTests: %w", err)
	}

	// LM_γ = v'(B₀'MB₀)⁻¹v / σ̂².
	sol, err := solveSPD(mb0b0, v)
	if err != nil {
		return nil, nil, fmt.Errorf("DurbinLMTests %s: %w", StatLMWX, err)
	}
	lmGamma := mat.Dot(v, sol) / reg.Sigma2

	// LM_ρ, same value as the LM engine's lag test.
	lmRho := sc.dRho * sc.dRho / sc.d

	// Joint information matrix J (k×k) and score s (k), both in 1/σ̂² units.
	gDense := mat.NewDense(reg.N, 1, sc.g)
	gMb0, err := alg.CrossM(gDense, b0) // 1×h
	if err != nil {
		return nil, nil, fmt.Errorf("DurbinLMTests: %w", err)
	}
	j := mat.NewDense(reg.K, reg.K, nil)
	j.Set(0, 0, sc.d) // gMg/σ̂² + T
	var r, c int
	for c = 0; c < h; c++ {
		cross := gMb0.At(0, c) / reg.Sigma2
		j.Set(0, c+1, cross)
		j.Set(c+1, 0, cross)
	}
	for r = 0; r < h; r++ {
		for c = 0; c < h; c++ {
			j.Set(r+1, c+1, mb0b0.At(r, c)/reg.Sigma2)
		}
	}
	s := mat.NewVecDense(reg.K, nil)
	s.SetVec(0, sc.dRho)
	for r = 0; r < h; r++ {
		s.SetVec(r+1, v.AtVec(r)/reg.Sigma2)
	}

	js, err := solveSPD(j, s)
	if err != nil {
		return nil, nil, fmt.Errorf("DurbinLMTests %s: %w", StatJointLMLagWX, err)
	}
	lmJoint := mat.Dot(s, js)

	// Derived robust forms; the identity holds by construction.
	var warns []Warning
	gammaStar, warns := clampDerived(lmJoint-lmRho, StatRobustLMWX, warns)
	rhoStar, warns := clampDerived(lmJoint-lmGamma, StatRobustDurbinLag, warns)

	if gammaStar > lmGamma {
		warns = append(warns, Warning{
			Code:      WarnRobustExceedsClassic,
			Statistic: StatRobustLMWX,
			Detail:    fmt.Sprintf("robust %g > classic %g", gammaStar, lmGamma),
		})
	}
	if rhoStar > lmRho {
		warns = append(warns, Warning{
			Code:      WarnRobustExceedsClassic,
			Statistic: StatRobustDurbinLag,
			Detail:    fmt.Sprintf("robust %g > classic %g", rhoStar, lmRho),
		})
	}

	chi := func(name string, value float64, df int) DiagnosticStatistic {
		return DiagnosticStatistic{
			Name:   name,
			Value:  value,
			DF:     df,
			Dist:   DistChiSquared,
			PValue: chiSquaredPValue(value, df),
			Tag:    TagFocused,
		}
	}
	stats := []DiagnosticStatistic{
		chi(StatLMWX, lmGamma, h),
		chi(StatJointLMLagWX, lmJoint, reg.K),
		chi(StatRobustLMWX, gammaStar, h),
		chi(StatRobustDurbinLag, rhoStar, 1),
	}

	return stats, warns, nil
}

// clampDerived floors a derived robust statistic at zero. Mathematically the
// subtraction is a quadratic form in a Schur complement and cannot be
// negative; a large negative therefore signals cancellation worth flagging.
func clampDerived(value float64, name string, warns []Warning) (float64, []Warning) {
	if value >= 0 {
		return value, warns
	}
	if value < -derivedClampEps {
		warns = append(warns, Warning{
			Code:      WarnNumericalInstability,
			Statistic: name,
			Detail:    fmt.Sprintf("derived value %g clamped to 0", value),
		})
	}

	return 0, warns
}

// solveSPD solves A·x = b for a symmetric positive-definite A given as a
// dense matrix, symmetrizing (A+A')/2 first to absorb round-off asymmetry.
// Returns ErrSingular when the Cholesky factorization fails.
func solveSPD(a *mat.Dense, b *mat.VecDense) (*mat.VecDense, error) {
	n, _ := a.Dims()
	sym := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			sym.SetSym(i, j, 0.5*(a.At(i, j)+a.At(j, i)))
		}
	}
	var chol mat.Cholesky
	if ok := chol.Factorize(sym); !ok {
		return nil, ErrSingular
	}
	x := mat.NewVecDense(n, nil)
	if err := chol.SolveVecTo(x, b); err != nil {
		return nil, ErrSingular
	}

	return x, nil
}
