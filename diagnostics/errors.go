// Package diagnostics: sentinel error set. Matched via errors.Is; numeric
// edge cases that only invalidate one statistic are NOT errors — they surface
// as Warning values in the report (see warnings in types.go).

package diagnostics

import "errors"

var (
	// ErrNilOperand indicates a nil RegressionContext or weights matrix.
	ErrNilOperand = errors.New("diagnostics: nil operand")

	// ErrDimensionMismatch indicates that y, X, e, β or W disagree on their
	// shared dimensions. Structural: aborts the whole diagnostic call.
	ErrDimensionMismatch = errors.New("diagnostics: dimension mismatch")

	// ErrDegreesOfFreedom indicates k ≥ n, or a Durbin test invoked with no
	// non-constant regressors (h = 0).
	ErrDegreesOfFreedom = errors.New("diagnostics: insufficient degrees of freedom")

	// ErrSingular indicates a non-invertible (WX₀)'M(WX₀) block or joint
	// information matrix in the Durbin tests.
	ErrSingular = errors.New("diagnostics: singular information matrix")

	// ErrDegenerateWeights indicates an all-zero weights structure
	// (S0 = 0 or T = 0); the statistics are undefined, never NaN.
	ErrDegenerateWeights = errors.New("diagnostics: degenerate weights matrix")

	// ErrProvenance indicates an engine invoked on residuals of the wrong
	// estimator (e.g. the AK test on OLS residuals).
	ErrProvenance = errors.New("diagnostics: wrong estimator provenance")
)
