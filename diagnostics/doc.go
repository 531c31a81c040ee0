// Package diagnostics computes spatial-autocorrelation diagnostic tests for
// regression residuals.
//
// Given an immutable RegressionContext (the snapshot of an external OLS or
// 2SLS estimator) and a weights.Matrix, Run assembles a DiagnosticReport
// containing, depending on provenance and options:
//
//   - Moran's I for OLS residuals with its asymptotic moments (opt-in);
//   - the classic and robust Lagrange Multiplier tests for spatial lag and
//     spatial error, plus the joint SARMA form;
//   - the Koley–Bera LM tests for the Spatial Durbin specification: the WX
//     test, the joint lag+WX test, and both robust forms derived from the
//     exact identity LM_ργ = LM_ρ + LM_γ* = LM_ρ* + LM_γ;
//   - the Anselin–Kelejian test for 2SLS residuals.
//
// Every shared trace quantity comes from a projection.Algebra computed once
// per call; the four engines then run as parallel tasks over that read-only
// state. Structural failures (dimension mismatch, singular design) abort the
// whole call; numeric edge cases abort only the affected statistic and are
// reported as typed Warning values alongside the remaining statistics —
// nothing is ever silently converted to NaN.
//
// Each call is a pure function of its inputs; no state survives between
// calls.
package diagnostics
