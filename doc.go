// Package spreg provides spatial-autocorrelation diagnostics for regression
// residuals: Moran's I, the classic and robust Lagrange Multiplier tests for
// spatial lag and spatial error, the Koley–Bera LM tests for the Spatial
// Durbin specification, and the Anselin–Kelejian test for 2SLS residuals.
//
// 🚀 What is spreg?
//
//	A deterministic, pure-computation library that takes a fitted
//	regression's inputs/outputs plus a sparse spatial weights structure and
//	returns a diagnostic report — no estimation, no file I/O, no rendering:
//		• weights/     — sparse CSR spatial weights: row-standardization,
//		  S0, trace terms, O(nnz) spatial lags
//		• projection/  — trace identities over M = I − X(X'X)⁻¹X' without
//		  ever materializing an n×n matrix
//		• diagnostics/ — the statistic engines and the Run orchestrator
//
// ✨ Why these pieces?
//
//   - Closed-form traces — tr(MW), tr(MWMW), tr(MWMW') reduce to k×k products
//     via cyclic permutation; everything stays O(n·density·k)
//   - Strict validation — dimension mismatches and singular designs fail
//     fast with sentinel errors; numeric edge cases become report warnings,
//     never silent NaNs
//   - Pure calls — every report is a fresh value; nothing is cached or
//     shared between invocations
//
// Quick example:
//
//	W, _ := weights.NewBinaryFromNeighbors(neighbors)
//	reg, _ := diagnostics.NewOLSContext(y, X, residuals, beta)
//	report, err := diagnostics.Run(ctx, reg, W,
//		diagnostics.WithRowStandardize(), diagnostics.WithMoran())
//
// Interpretation of the resulting statistics is left to the caller; the
// report tags each test focused or diffuse to guide that reading.
package spreg
