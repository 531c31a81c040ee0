// Package diagnostics: data model.
//
// RegressionContext is the immutable snapshot handed over by an external
// estimator; DiagnosticStatistic / DiagnosticReport are the only outputs.
// None of these survive beyond one diagnostic call.

package diagnostics

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Provenance identifies which estimator produced a RegressionContext.
// Engines select their path via provenance, not type inspection.
type Provenance int

const (
	// ProvenanceOLS marks residuals from an ordinary least squares fit.
	ProvenanceOLS Provenance = iota
	// ProvenanceTwoSLS marks residuals from a two-stage least squares fit.
	ProvenanceTwoSLS
)

// String returns the provenance label used in statistic metadata.
func (p Provenance) String() string {
	if p == ProvenanceTwoSLS {
		return "2SLS"
	}

	return "OLS"
}

// RegressionContext is the immutable snapshot from an external OLS or 2SLS
// estimator. Construct it with NewOLSContext or NewTwoSLSContext; both
// validate the shape invariant n = len(y) = rows(X) = len(e) and k < n and
// derive σ̂² = e'e/n from the supplied residuals.
type RegressionContext struct {
	Y         []float64  // dependent variable (n)
	X         *mat.Dense // design matrix (n×k, first column constant)
	Residuals []float64  // residual vector e (n)
	Beta      []float64  // coefficient vector β (k)

	Sigma2 float64 // σ̂² = e'e/n
	N, K   int

	Provenance Provenance
	// Endogenous and Instruments record the 2SLS column structure; they mark
	// provenance only and take no part in any computation.
	Endogenous, Instruments int
}

// NewOLSContext builds the snapshot for OLS residuals.
//
// Errors: ErrNilOperand (nil X), ErrDimensionMismatch (y/X/e/β disagree),
// ErrDegreesOfFreedom (k ≥ n).
func NewOLSContext(y []float64, x *mat.Dense, residuals, beta []float64) (*RegressionContext, error) {
	return newContext(y, x, residuals, beta, ProvenanceOLS, 0, 0)
}

// NewTwoSLSContext builds the snapshot for 2SLS residuals. endogenous and
// instruments describe the column structure of the first stage; they are
// recorded as provenance metadata only.
func NewTwoSLSContext(y []float64, x *mat.Dense, residuals, beta []float64, endogenous, instruments int) (*RegressionContext, error) {
	return newContext(y, x, residuals, beta, ProvenanceTwoSLS, endogenous, instruments)
}

func newContext(y []float64, x *mat.Dense, e, beta []float64, prov Provenance, endog, instr int) (*RegressionContext, error) {
	if x == nil {
		return nil, fmt.Errorf("NewRegressionContext: %w", ErrNilOperand)
	}
	n, k := x.Dims()
	if len(y) != n || len(e) != n || len(beta) != k {
		return nil, fmt.Errorf("NewRegressionContext: %w", ErrDimensionMismatch)
	}
	if k >= n {
		return nil, fmt.Errorf("NewRegressionContext: %w", ErrDegreesOfFreedom)
	}

	return &RegressionContext{
		Y:           y,
		X:           x,
		Residuals:   e,
		Beta:        beta,
		Sigma2:      floats.Dot(e, e) / float64(n),
		N:           n,
		K:           k,
		Provenance:  prov,
		Endogenous:  endog,
		Instruments: instr,
	}, nil
}

// Distribution is the reference distribution of a statistic.
type Distribution int

const (
	// DistChiSquared references the chi-square distribution with DF degrees
	// of freedom.
	DistChiSquared Distribution = iota
	// DistStdNormal references the standard normal distribution (DF unused).
	DistStdNormal
)

// Tag classifies a test's interpretation: focused tests target one specific
// alternative, diffuse tests have power against many misspecifications.
type Tag string

const (
	// TagFocused marks tests against one specific spatial alternative.
	TagFocused Tag = "focused"
	// TagDiffuse marks omnibus tests without a single targeted alternative.
	TagDiffuse Tag = "diffuse"
)

// Statistic names, in the order the report emits them.
const (
	StatMoranI          = "Moran's I (error)"
	StatLMLag           = "Lagrange Multiplier (lag)"
	StatRobustLMLag     = "Robust LM (lag)"
	StatLMError         = "Lagrange Multiplier (error)"
	StatRobustLMError   = "Robust LM (error)"
	StatLMSARMA         = "Lagrange Multiplier (SARMA)"
	StatLMWX            = "LM test for WX"
	StatRobustLMWX      = "Robust LM WX test"
	StatJointLMLagWX    = "Joint LM (lag + WX)"
	StatRobustDurbinLag = "Robust LM (lag, Durbin)"
	StatAK              = "Anselin-Kelejian Test"
)

// DiagnosticStatistic is one named test result.
//
// Value is the test statistic itself: a chi-square-referenced quadratic form,
// or Moran's I. For normal-referenced statistics Z carries the standardized
// value the p-value was computed from. A statistic whose value could not be
// computed at all is omitted from the report and replaced by a Warning; when
// only the standardization is unavailable (clamped variance) the value is
// kept and Z/PValue are NaN.
type DiagnosticStatistic struct {
	Name   string
	Value  float64
	DF     int // 0 for normal-referenced statistics
	Dist   Distribution
	Z      float64 // standardized value; only set when Dist == DistStdNormal
	PValue float64
	Tag    Tag
}

// Warning codes carried in Warning.Code.
const (
	// WarnNonPositiveDenominator: a robust-test denominator was ≤ 0; the
	// statistic is omitted, not NaN.
	WarnNonPositiveDenominator = "non-positive-denominator"
	// WarnNumericalInstability: a variance or derived robust value came out
	// negative from floating-point cancellation and was clamped to zero.
	WarnNumericalInstability = "numerical-instability"
	// WarnRobustExceedsClassic: a robust statistic exceeds its non-robust
	// counterpart, contradicting the expected correction direction.
	WarnRobustExceedsClassic = "robust-exceeds-classic"
	// WarnIsolates: the weights matrix contains zero-degree rows; tolerated.
	WarnIsolates = "isolates"
	// WarnEngineFailed: one statistic engine failed; the others still report.
	WarnEngineFailed = "engine-failed"
)

// Warning is a non-fatal condition raised during computation. Warnings are
// data: the library never logs.
type Warning struct {
	Code      string // one of the Warn* constants
	Statistic string // affected statistic name, empty when call-wide
	Detail    string
}

// DiagnosticReport is the ordered collection of statistics plus any warnings
// raised along the way. A fresh report is created per invocation and never
// persisted.
type DiagnosticReport struct {
	Statistics []DiagnosticStatistic
	Warnings   []Warning
}

// Lookup returns the first statistic with the given name, if present.
func (r *DiagnosticReport) Lookup(name string) (DiagnosticStatistic, bool) {
	for _, s := range r.Statistics {
		if s.Name == name {
			return s, true
		}
	}

	return DiagnosticStatistic{}, false
}

// HasWarning reports whether any warning with the given code was raised.
func (r *DiagnosticReport) HasWarning(code string) bool {
	for _, w := range r.Warnings {
		if w.Code == code {
			return true
		}
	}

	return false
}
