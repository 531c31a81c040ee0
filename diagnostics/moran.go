package diagnostics

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/mariaalice-souza/spreg/projection"
	"github.com/mariaalice-souza/spreg/weights"
)

// MoranTest — Moran's I for OLS regression residuals.
//
// Statistic:
//
//	I = (e'We / S0) / (e'e / n)
//
// Moments under the null (k = columns of X, M the OLS projection):
//
//	E[I]   = tr(MW) / (n−k)
//	Var[I] = [tr(MWMW') + tr(MWMW) + tr(MW)²] / [(n−k)(n−k+2)] − E[I]²
//	z      = (I − E[I]) / √Var[I], two-sided p from the standard normal.
//
// Edge cases:
//   - S0 = 0 (all-zero W): ErrDegenerateWeights, never NaN.
//   - Var[I] < 0 from floating-point cancellation: clamped to zero, the
//     statistic is reported without z/p, and WarnNumericalInstability is
//     raised.
//
// The test is tagged diffuse: it has power against several misspecifications,
// not just spatial error.
func MoranTest(reg *RegressionContext, w *weights.Matrix, alg *projection.Algebra) ([]DiagnosticStatistic, []Warning, error) {
	if reg == nil || w == nil || alg == nil {
		return nil, nil, fmt.Errorf("%s: %w", StatMoranI, ErrNilOperand)
	}
	if reg.Provenance != ProvenanceOLS {
		return nil, nil, fmt.Errorf("%s: %w", StatMoranI, ErrProvenance)
	}
	s0 := w.S0()
	if s0 == 0 {
		return nil, nil, fmt.Errorf("%s: %w", StatMoranI, ErrDegenerateWeights)
	}

	we, err := w.Lag(reg.Residuals)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", StatMoranI, err)
	}
	moranI := (floats.Dot(reg.Residuals, we) / s0) / reg.Sigma2

	nk := float64(reg.N - reg.K)
	expected := alg.TraceMW() / nk
	variance := (alg.TraceMWMWT()+alg.TraceMWMW()+alg.TraceMW()*alg.TraceMW())/
		(nk*(nk+2)) - expected*expected

	if variance <= 0 {
		// Clamped, not propagated as NaN; z and p are withheld.
		warn := Warning{
			Code:      WarnNumericalInstability,
			Statistic: StatMoranI,
			Detail:    fmt.Sprintf("non-positive variance %g clamped to 0", variance),
		}
		stat := DiagnosticStatistic{
			Name:   StatMoranI,
			Value:  moranI,
			Dist:   DistStdNormal,
			Z:      math.NaN(),
			PValue: math.NaN(),
			Tag:    TagDiffuse,
		}

		return []DiagnosticStatistic{stat}, []Warning{warn}, nil
	}

	z := (moranI - expected) / math.Sqrt(variance)
	stat := DiagnosticStatistic{
		Name:   StatMoranI,
		Value:  moranI,
		Dist:   DistStdNormal,
		Z:      z,
		PValue: normalTwoSidedPValue(z),
		Tag:    TagDiffuse,
	}

	return []DiagnosticStatistic{stat}, nil, nil
}
