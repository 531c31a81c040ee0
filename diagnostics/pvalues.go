package diagnostics

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// chiSquaredPValue returns P[χ²_df ≥ x], the upper-tail probability.
func chiSquaredPValue(x float64, df int) float64 {
	return distuv.ChiSquared{K: float64(df)}.Survival(x)
}

// normalTwoSidedPValue returns 2·P[Z ≥ |z|] for a standard normal Z.
func normalTwoSidedPValue(z float64) float64 {
	return 2 * distuv.Normal{Mu: 0, Sigma: 1}.Survival(math.Abs(z))
}
