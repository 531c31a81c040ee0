// SPDX-License-Identifier: MIT

// Package weights provides the sparse spatial-weights matrix used by the
// diagnostic engines.
//
// A weights.Matrix is an n×n sparse nonnegative matrix W with a zero diagonal
// (no unit neighbors itself), stored in compressed sparse row (CSR) layout.
// The package exposes exactly the primitives spatial diagnostics need:
//
//   - RowStandardize — in-place, idempotent rescaling so every nonzero row
//     sums to 1; zero-degree rows (isolates) are left untouched and flagged.
//   - S0            — the total weight sum Σ_i Σ_j w_ij.
//   - TraceTerm     — T = tr(WW + W'W), evaluated directly from the sparse
//     structure in O(n·avg-degree), never O(n²).
//   - Lag / LagDense and their transposed variants — sparse-dense products
//     W·v, W'·v, W·X, W'·X in O(nnz) / O(nnz·k).
//
// All operations are deterministic with fixed traversal orders. The matrix is
// immutable after construction except for the one explicit RowStandardize
// transform.
//
// Sentinel errors live in errors.go and are matched via errors.Is.
package weights
