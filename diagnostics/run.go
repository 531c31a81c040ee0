// Package diagnostics: orchestration.
//
// Run is the single entry point collaborators call. It validates structure
// once, builds the shared projection.Algebra once, then fans the statistic
// engines out as parallel tasks over that read-only state. Engines have no
// ordering dependencies among themselves; each writes a pre-assigned slot so
// the report order stays deterministic regardless of scheduling. A failed
// engine contributes a WarnEngineFailed entry while the others still report —
// the call aggregates partial results instead of aborting wholesale.

package diagnostics

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/mariaalice-souza/spreg/projection"
	"github.com/mariaalice-souza/spreg/weights"
)

// engineFn is the common shape of the four statistic engines.
type engineFn func(*RegressionContext, *weights.Matrix, *projection.Algebra) ([]DiagnosticStatistic, []Warning, error)

// engineTask pairs an engine with the name reported on failure.
type engineTask struct {
	name string
	fn   engineFn
}

// engineResult is one pre-assigned output slot of the parallel fan-out.
type engineResult struct {
	stats []DiagnosticStatistic
	warns []Warning
}

// Run computes the spatial diagnostic suite for one fitted regression.
//
// Path selection (provenance, not type inspection):
//   - OLS residuals  → Moran's I (opt-in via WithMoran), the LM lag/error
//     family, and the Durbin (Koley–Bera) set unless WithSLXLags(n>0)
//     declares that X already absorbs the WX alternative or X has no
//     non-constant column.
//   - 2SLS residuals → the AK test.
//
// Structural failures — nil operands, dimension mismatch between reg and W,
// insufficient degrees of freedom, singular X'X — abort the whole call with
// an error. Everything else (robust denominators, variance clamps, isolates,
// a single failed engine) is reported as warnings next to the statistics that
// did succeed.
//
// ctx cancels the fan-out between engines; an already-cancelled context
// returns ctx.Err() with a partial (possibly empty) set of statistics
// discarded.
func Run(ctx context.Context, reg *RegressionContext, w *weights.Matrix, opts ...Option) (*DiagnosticReport, error) {
	if reg == nil || w == nil {
		return nil, fmt.Errorf("Run: %w", ErrNilOperand)
	}
	o := gatherOptions(opts...)

	// Validate even when the suite is disabled: the no-op path still promises
	// a shape-checked call.
	if reg.N != w.N() {
		return nil, fmt.Errorf("Run: %w", ErrDimensionMismatch)
	}

	report := &DiagnosticReport{}
	if !o.spatDiag {
		return report, nil
	}

	// Standardize before anything reads W.
	if o.rowStandardize {
		if err := w.RowStandardize(); err != nil {
			return nil, fmt.Errorf("Run: %w", err)
		}
	}
	if iso := w.Isolates(); len(iso) > 0 {
		report.Warnings = append(report.Warnings, Warning{
			Code:   WarnIsolates,
			Detail: fmt.Sprintf("%d zero-degree rows", len(iso)),
		})
	}

	// Shared trace terms, computed once; read-only afterwards.
	alg, err := projection.New(reg.X, w)
	if err != nil {
		return nil, fmt.Errorf("Run: %w", err)
	}

	var tasks []engineTask
	if reg.Provenance == ProvenanceTwoSLS {
		tasks = append(tasks, engineTask{name: StatAK, fn: AKTest})
	} else {
		if o.moran {
			tasks = append(tasks, engineTask{name: StatMoranI, fn: MoranTest})
		}
		tasks = append(tasks, engineTask{name: "LM tests", fn: LMTests})
		if o.slxLags == 0 && reg.K > 1 {
			tasks = append(tasks, engineTask{name: "Durbin LM tests", fn: DurbinLMTests})
		}
	}

	// Parallel fan-out over the immutable algebra; one slot per engine keeps
	// the final order independent of scheduling.
	slots := make([]engineResult, len(tasks))
	g, gctx := errgroup.WithContext(ctx)
	for idx, task := range tasks {
		idx, task := idx, task
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			stats, warns, engineErr := task.fn(reg, w, alg)
			if engineErr != nil {
				// Engine-local failure: the others still complete and report.
				slots[idx] = engineResult{warns: []Warning{{
					Code:      WarnEngineFailed,
					Statistic: task.name,
					Detail:    engineErr.Error(),
				}}}

				return nil
			}
			slots[idx] = engineResult{stats: stats, warns: warns}

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("Run: %w", err)
	}

	for _, slot := range slots {
		report.Statistics = append(report.Statistics, slot.stats...)
		report.Warnings = append(report.Warnings, slot.warns...)
	}

	return report, nil
}
