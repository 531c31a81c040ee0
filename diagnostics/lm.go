package diagnostics

import (
	"fmt"

	"github.com/mariaalice-souza/spreg/projection"
	"github.com/mariaalice-souza/spreg/weights"
)

// robustDenomEps is the relative tolerance that decides when a robust-test
// denominator counts as non-positive. The exact value D − T is a projected
// quadratic form and cannot be negative, but when WXβ lies in the span of X
// (a constant-only design with a row-standardized, isolate-free W has
// W·Xβ = Xβ) cancellation leaves a tiny positive residue instead of zero, and
// dividing by it would report astronomically large statistics as valid.
const robustDenomEps = 1e-9

// LMTests — classic and robust Lagrange Multiplier tests for spatial lag and
// spatial error, on OLS residuals.
//
// With d_ρ = e'Wy/σ̂², d_λ = e'We/σ̂², T = tr(WW+W'W) and
// D = (WXβ)'M(WXβ)/σ̂² + T:
//
//	LM_ρ  = d_ρ² / D                                χ²(1)
//	LM_λ  = d_λ² / T                                χ²(1)
//	LM_ρ* = (d_ρ − d_λ)² / (D − T)                  χ²(1)  robust to error
//	LM_λ* = (d_λ − (T/D)·d_ρ)² / [T(1 − T/D)]       χ²(1)  robust to lag
//	SARMA = LM_ρ* + LM_λ                            χ²(2)  joint
//
// A non-positive robust denominator omits that statistic (and SARMA, which
// depends on LM_ρ*) and raises WarnNonPositiveDenominator — a diagnostic
// warning, not a hard error. Non-positivity is judged under robustDenomEps
// relative to D, because an exactly-zero denominator survives floating-point
// evaluation only as a cancellation residue. A robust value exceeding its classic
// counterpart raises WarnRobustExceedsClassic: the correction is expected to
// shrink the statistic, so the reverse signals deeper misspecification.
//
// All five are tagged focused: each targets one specific alternative.
func LMTests(reg *RegressionContext, w *weights.Matrix, alg *projection.Algebra) ([]DiagnosticStatistic, []Warning, error) {
	if reg == nil || w == nil || alg == nil {
		return nil, nil, fmt.Errorf("LMTests: %w", ErrNilOperand)
	}
	if reg.Provenance != ProvenanceOLS {
		return nil, nil, fmt.Errorf("LMTests: %w", ErrProvenance)
	}
	sc, err := computeLagScores(reg, w, alg)
	if err != nil {
		return nil, nil, fmt.Errorf("LMTests: %w", err)
	}

	var stats []DiagnosticStatistic
	var warns []Warning
	emit := func(name string, value float64, df int) {
		stats = append(stats, DiagnosticStatistic{
			Name:   name,
			Value:  value,
			DF:     df,
			Dist:   DistChiSquared,
			PValue: chiSquaredPValue(value, df),
			Tag:    TagFocused,
		})
	}

	lmLag := sc.dRho * sc.dRho / sc.d
	emit(StatLMLag, lmLag, 1)

	// Robust lag: denominator D − T = (WXβ)'M(WXβ)/σ̂².
	robustLagOK := sc.d-sc.t > robustDenomEps*sc.d
	var robustLag float64
	if robustLagOK {
		diff := sc.dRho - sc.dLam
		robustLag = diff * diff / (sc.d - sc.t)
		emit(StatRobustLMLag, robustLag, 1)
		if robustLag > lmLag {
			warns = append(warns, Warning{
				Code:      WarnRobustExceedsClassic,
				Statistic: StatRobustLMLag,
				Detail:    fmt.Sprintf("robust %g > classic %g", robustLag, lmLag),
			})
		}
	} else {
		warns = append(warns, Warning{
			Code:      WarnNonPositiveDenominator,
			Statistic: StatRobustLMLag,
			Detail:    fmt.Sprintf("D − T = %g", sc.d-sc.t),
		})
	}

	lmErr := sc.dLam * sc.dLam / sc.t
	emit(StatLMError, lmErr, 1)

	// Robust error: denominator T(1 − T/D) = T(D − T)/D, so the same relative
	// guard applies.
	if denom := sc.t * (1 - sc.t/sc.d); denom > robustDenomEps*sc.t {
		diff := sc.dLam - (sc.t/sc.d)*sc.dRho
		robustErr := diff * diff / denom
		emit(StatRobustLMError, robustErr, 1)
		if robustErr > lmErr {
			warns = append(warns, Warning{
				Code:      WarnRobustExceedsClassic,
				Statistic: StatRobustLMError,
				Detail:    fmt.Sprintf("robust %g > classic %g", robustErr, lmErr),
			})
		}
	} else {
		warns = append(warns, Warning{
			Code:      WarnNonPositiveDenominator,
			Statistic: StatRobustLMError,
			Detail:    fmt.Sprintf("T(1 − T/D) = %g", denom),
		})
	}

	// Joint SARMA form; equals LM_λ* + LM_ρ by the score-test identity.
	if robustLagOK {
		emit(StatLMSARMA, robustLag+lmErr, 2)
	}

	return stats, warns, nil
}
