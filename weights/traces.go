// SPDX-License-Identifier: MIT
// Package weights: trace primitives.
//
// Purpose:
//   - Supply the scalar weight summaries the diagnostic engines consume:
//     S0 = Σ_ij w_ij, tr(WW), tr(WW'), and T = tr(WW + W'W).
//   - Evaluate every trace directly from the CSR structure in
//     O(n·avg-degree·log avg-degree); no dense intermediate is ever formed.
//
// Identities used:
//   - tr(WW)  = Σ_i Σ_j w_ij·w_ji   (needs the mirrored entry, via At)
//   - tr(WW') = Σ_i Σ_j w_ij²       (pure pass over stored entries)
//   - tr(W'W) = tr(WW')             (cyclic permutation)
//   - T = tr(WW + W'W) = Σ_i Σ_j (w_ij·w_ji + w_ij²)

package weights

// S0 returns the sum of all weights Σ_i Σ_j w_ij.
// Complexity: O(nnz).
func (m *Matrix) S0() float64 {
	var s float64
	for _, w := range m.data {
		s += w
	}

	return s
}

// TraceWWT returns tr(WW') = Σ_ij w_ij².
// Complexity: O(nnz).
func (m *Matrix) TraceWWT() float64 {
	var s float64
	for _, w := range m.data {
		s += w * w
	}

	return s
}

// TraceWW returns tr(WW) = Σ_ij w_ij·w_ji.
// Each stored entry looks up its mirror with a binary search in row j.
// Complexity: O(nnz·log avg-degree).
func (m *Matrix) TraceWW() float64 {
	var s float64
	var i, p int
	for i = 0; i < m.n; i++ {
		for p = m.indptr[i]; p < m.indptr[i+1]; p++ {
			s += m.data[p] * m.At(m.indices[p], i)
		}
	}

	return s
}

// TraceTerm returns T = tr(WW + W'W) = Σ_i Σ_j (w_ij·w_ji + w_ij²),
// the shared denominator term of the LM-error family of tests.
// Complexity: O(nnz·log avg-degree); never O(n²).
func (m *Matrix) TraceTerm() float64 {
	return m.TraceWW() + m.TraceWWT()
}
