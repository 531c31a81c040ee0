// Package diagnostics: functional configuration for Run.
//
// The suite toggles (diagnostics on/off, Moran's I opt-in, SLX lag count,
// row-standardization) resolve into an explicit options value per call — no
// process-wide state with a separate lifecycle. Constructors panic only on
// nonsensical programmer input, matching the package-wide convention.

package diagnostics

// Documented defaults - single source of truth for zero-value behavior.
const (
	// DefaultSpatDiag enables the diagnostic suite; WithoutSpatDiag turns the
	// whole call into a validated no-op returning an empty report.
	DefaultSpatDiag = true

	// DefaultMoran excludes Moran's I; it is opt-in because its moments cost
	// the second-order traces.
	DefaultMoran = false

	// DefaultSLXLags is 0: X carries no pre-built spatial lags, so the
	// Durbin test set applies.
	DefaultSLXLags = 0

	// DefaultRowStandardize leaves the weights matrix as supplied; callers
	// whose weights source expects standardization opt in via
	// WithRowStandardize.
	DefaultRowStandardize = false
)

const panicSLXLagsNegative = "diagnostics: WithSLXLags: lags must be ≥ 0"

// Option mutates internal options. Safe to apply repeatedly (idempotent).
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
// Public entry points accept ...Option and resolve them via gatherOptions.
type Options struct {
	spatDiag       bool
	moran          bool
	slxLags        int
	rowStandardize bool
}

// WithMoran includes Moran's I and its asymptotic moments (extra cost: the
// second-order projection traces are already shared, so the increment is the
// statistic itself).
func WithMoran() Option {
	return func(o *Options) { o.moran = true }
}

// WithoutSpatDiag disables the diagnostic suite entirely; Run still validates
// its inputs and returns an empty report.
func WithoutSpatDiag() Option {
	return func(o *Options) { o.spatDiag = false }
}

// WithSLXLags declares that X already contains lags blocks of spatially
// lagged regressors. When lags > 0 the Durbin test set is suppressed: the
// SLX terms have absorbed that alternative. Panics if lags < 0.
func WithSLXLags(lags int) Option {
	if lags < 0 {
		panic(panicSLXLagsNegative)
	}

	return func(o *Options) { o.slxLags = lags }
}

// WithRowStandardize row-standardizes the weights matrix (idempotently)
// before any engine reads it.
func WithRowStandardize() Option {
	return func(o *Options) { o.rowStandardize = true }
}

// gatherOptions applies user setters on top of the documented defaults;
// last-writer-wins semantics.
func gatherOptions(user ...Option) Options {
	o := Options{
		spatDiag:       DefaultSpatDiag,
		moran:          DefaultMoran,
		slxLags:        DefaultSLXLags,
		rowStandardize: DefaultRowStandardize,
	}
	for _, set := range user {
		set(&o)
	}

	return o
}
