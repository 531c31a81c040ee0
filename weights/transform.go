// SPDX-License-Identifier: MIT
// Package weights: the one mutating transform.

package weights

// RowStandardize divides every nonzero row by its row sum so that it sums to
// exactly 1. Rows with a zero sum (isolates) are left unchanged and recorded;
// they are never silently divided. The transform mutates in place and is
// idempotent: a second call is a no-op.
//
// It fails with ErrNonSquare if the stored structure violates the square
// contract (a column index ≥ n), and with ErrNilMatrix on a nil receiver.
// Neither can occur for a Matrix produced by this package's constructors; the
// guard protects hand-constructed or corrupted values.
//
// Complexity: O(nnz). Determinism: fixed row-major traversal.
func (m *Matrix) RowStandardize() error {
	if m == nil {
		return weightsErrorf(opRowStandardize, ErrNilMatrix)
	}
	if m.standardized {
		return nil // idempotent
	}
	for _, j := range m.indices {
		if j < 0 || j >= m.n {
			return weightsErrorf(opRowStandardize, ErrNonSquare)
		}
	}

	m.isolates = m.isolates[:0]
	var i, p int
	var sum float64
	for i = 0; i < m.n; i++ {
		sum = 0
		for p = m.indptr[i]; p < m.indptr[i+1]; p++ {
			sum += m.data[p]
		}
		if sum == 0 {
			// Zero-degree row: flag, never divide.
			m.isolates = append(m.isolates, i)

			continue
		}
		inv := 1.0 / sum
		for p = m.indptr[i]; p < m.indptr[i+1]; p++ {
			m.data[p] *= inv
		}
	}
	m.standardized = true

	return nil
}

// Isolates returns the zero-degree row indices discovered by RowStandardize,
// in ascending order. Before RowStandardize it scans the structure directly,
// so the answer is valid either way. The returned slice is a fresh copy.
func (m *Matrix) Isolates() []int {
	if m.standardized {
		out := make([]int, len(m.isolates))
		copy(out, m.isolates)

		return out
	}
	var out []int
	for i := 0; i < m.n; i++ {
		if m.indptr[i] == m.indptr[i+1] {
			out = append(out, i)
		}
	}

	return out
}
