package diagnostics

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/mariaalice-souza/spreg/projection"
	"github.com/mariaalice-souza/spreg/weights"
)

// AKTest — Anselin–Kelejian diagnostic for spatial error autocorrelation in
// 2SLS residuals.
//
//	AK = [e'We / (e'e/n)]² / T       χ²(1)
//
// The formula is numerically identical to the LM-error statistic, but it is
// evaluated on 2SLS residuals and tagged diffuse: there is no likelihood
// basis, the chi-square reference is a Moran's-I-style asymptotic
// generalization, not a true Lagrange Multiplier.
//
// Errors: ErrProvenance on non-2SLS residuals; ErrDegenerateWeights when
// T = 0 (all-zero W).
func AKTest(reg *RegressionContext, w *weights.Matrix, alg *projection.Algebra) ([]DiagnosticStatistic, []Warning, error) {
	if reg == nil || w == nil || alg == nil {
		return nil, nil, fmt.Errorf("%s: %w", StatAK, ErrNilOperand)
	}
	if reg.Provenance != ProvenanceTwoSLS {
		return nil, nil, fmt.Errorf("%s: %w", StatAK, ErrProvenance)
	}
	t := alg.TraceTerm()
	if t == 0 {
		return nil, nil, fmt.Errorf("%s: %w", StatAK, ErrDegenerateWeights)
	}

	we, err := w.Lag(reg.Residuals)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", StatAK, err)
	}
	dLam := floats.Dot(reg.Residuals, we) / reg.Sigma2
	ak := dLam * dLam / t

	stat := DiagnosticStatistic{
		Name:   StatAK,
		Value:  ak,
		DF:     1,
		Dist:   DistChiSquared,
		PValue: chiSquaredPValue(ak, 1),
		Tag:    TagDiffuse,
	}

	return []DiagnosticStatistic{stat}, nil, nil
}
