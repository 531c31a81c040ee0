// SPDX-License-Identifier: MIT
// Package weights: CSR storage and constructors.
//
// Purpose:
//   - Define the Matrix type (compressed sparse row) and its strict builders.
//   - Enforce the structural contract at ingestion: square shape, zero
//     diagonal, nonnegative finite entries, in-range neighbor indices.
//
// Determinism & Performance:
//   - Row neighbor lists are sorted by column id at construction, so every
//     later traversal has a fixed order and At can binary-search in O(log deg).
//   - No allocation happens after construction except in methods that return
//     fresh slices by documented contract.

package weights

import (
	"fmt"
	"math"
	"sort"
)

// Operation name constants for unified error wrapping and reducing magic strings.
const (
	opNew            = "NewFromNeighbors"
	opNewDense       = "NewFromDense"
	opRowStandardize = "RowStandardize"
	opLag            = "Lag"
	opLagT           = "LagTranspose"
	opLagDense       = "LagDense"
	opLagTDense      = "LagTransposeDense"
)

// weightsErrorf wraps err with an operation tag, preserving the original
// sentinel via %w so callers can still match with errors.Is.
func weightsErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// Matrix is an n×n sparse nonnegative spatial weights matrix in CSR layout.
//
// Invariants (enforced by the constructors):
//   - square n×n shape; all column indices in [0, n);
//   - zero diagonal (no self-neighbors stored);
//   - all stored entries finite and ≥ 0;
//   - within each row, column indices strictly increasing.
//
// A Matrix is immutable after construction except for RowStandardize, which
// mutates in place exactly once (it is idempotent).
type Matrix struct {
	n       int       // number of rows and columns
	indptr  []int     // row pointers, len n+1; row i occupies [indptr[i], indptr[i+1])
	indices []int     // column ids, row-major, sorted within each row
	data    []float64 // entries aligned with indices

	standardized bool  // set once by RowStandardize
	isolates     []int // zero-degree rows discovered by RowStandardize (sorted)
}

// NewFromNeighbors builds a weights matrix from per-row neighbor and weight
// lists: row i has entries w[i][k] at column neighbors[i][k].
//
// Validation (fail-fast, in this order per entry):
//   - len(neighbors) == len(wts)            → ErrDimensionMismatch
//   - len(neighbors[i]) == len(wts[i])      → ErrDimensionMismatch
//   - neighbor index in [0, n)              → ErrOutOfRange
//   - neighbor index != i                   → ErrSelfNeighbor
//   - weight finite                         → ErrNaNInf
//   - weight ≥ 0                            → ErrNegativeWeight
//
// Zero weights are dropped (they carry no structure). Duplicate neighbor ids
// within a row are summed, then rows are sorted by column id.
//
// Complexity: O(nnz · log avg-degree) for the per-row sorts.
func NewFromNeighbors(neighbors [][]int, wts [][]float64) (*Matrix, error) {
	n := len(neighbors)
	if len(wts) != n {
		return nil, weightsErrorf(opNew, ErrDimensionMismatch)
	}

	m := &Matrix{
		n:      n,
		indptr: make([]int, n+1),
	}

	// Ingest row by row with strict validation and per-row dedup.
	type cell struct {
		col int
		w   float64
	}
	row := make([]cell, 0, 8) // reused scratch per row
	var i, k int
	for i = 0; i < n; i++ {
		if len(neighbors[i]) != len(wts[i]) {
			return nil, weightsErrorf(opNew, fmt.Errorf("row %d: %w", i, ErrDimensionMismatch))
		}
		row = row[:0]
		for k = 0; k < len(neighbors[i]); k++ {
			j, w := neighbors[i][k], wts[i][k]
			if j < 0 || j >= n {
				return nil, weightsErrorf(opNew, fmt.Errorf("row %d col %d: %w", i, j, ErrOutOfRange))
			}
			if j == i {
				return nil, weightsErrorf(opNew, fmt.Errorf("row %d: %w", i, ErrSelfNeighbor))
			}
			if math.IsNaN(w) || math.IsInf(w, 0) {
				return nil, weightsErrorf(opNew, fmt.Errorf("row %d col %d: %w", i, j, ErrNaNInf))
			}
			if w < 0 {
				return nil, weightsErrorf(opNew, fmt.Errorf("row %d col %d: %w", i, j, ErrNegativeWeight))
			}
			if w == 0 {
				continue // structural zeros are not stored
			}
			row = append(row, cell{col: j, w: w})
		}

		// Sort by column id, then merge duplicates by summation.
		sort.Slice(row, func(a, b int) bool { return row[a].col < row[b].col })
		for k = 0; k < len(row); k++ {
			if k > 0 && row[k].col == row[k-1].col {
				m.data[len(m.data)-1] += row[k].w

				continue
			}
			m.indices = append(m.indices, row[k].col)
			m.data = append(m.data, row[k].w)
		}
		m.indptr[i+1] = len(m.indices)
	}

	return m, nil
}

// NewBinaryFromNeighbors builds a binary (0/1) contiguity matrix from neighbor
// lists alone; each listed neighbor gets weight 1.
func NewBinaryFromNeighbors(neighbors [][]int) (*Matrix, error) {
	wts := make([][]float64, len(neighbors))
	for i := range neighbors {
		wts[i] = make([]float64, len(neighbors[i]))
		for k := range wts[i] {
			wts[i][k] = 1
		}
	}

	return NewFromNeighbors(neighbors, wts)
}

// NewFromDense builds a weights matrix from a dense row-major [][]float64.
// The input must be square (ErrNonSquare otherwise), with a zero diagonal
// (ErrSelfNeighbor), finite nonnegative entries (ErrNaNInf, ErrNegativeWeight).
// Intended for tests and for small matrices handed over by external weight
// providers; production paths should prefer NewFromNeighbors.
func NewFromDense(d [][]float64) (*Matrix, error) {
	n := len(d)
	for i := 0; i < n; i++ {
		if len(d[i]) != n {
			return nil, weightsErrorf(opNewDense, ErrNonSquare)
		}
	}

	m := &Matrix{
		n:      n,
		indptr: make([]int, n+1),
	}
	var i, j int
	var w float64
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			w = d[i][j]
			if w == 0 {
				continue
			}
			if i == j {
				return nil, weightsErrorf(opNewDense, fmt.Errorf("row %d: %w", i, ErrSelfNeighbor))
			}
			if math.IsNaN(w) || math.IsInf(w, 0) {
				return nil, weightsErrorf(opNewDense, fmt.Errorf("row %d col %d: %w", i, j, ErrNaNInf))
			}
			if w < 0 {
				return nil, weightsErrorf(opNewDense, fmt.Errorf("row %d col %d: %w", i, j, ErrNegativeWeight))
			}
			m.indices = append(m.indices, j)
			m.data = append(m.data, w)
		}
		m.indptr[i+1] = len(m.indices)
	}

	return m, nil
}

// N returns the matrix order n.
func (m *Matrix) N() int { return m.n }

// NNZ returns the number of stored (nonzero) entries.
func (m *Matrix) NNZ() int { return len(m.data) }

// IsRowStandardized reports whether RowStandardize has been applied.
func (m *Matrix) IsRowStandardized() bool { return m.standardized }

// At returns w_ij, binary-searching row i's sorted column list.
// Out-of-range indices return 0 (a weights matrix is total on [0,n)²; the
// structural builders already guarantee indices are in range).
// Complexity: O(log degree(i)).
func (m *Matrix) At(i, j int) float64 {
	if i < 0 || i >= m.n || j < 0 || j >= m.n {
		return 0
	}
	lo, hi := m.indptr[i], m.indptr[i+1]
	cols := m.indices[lo:hi]
	k := sort.SearchInts(cols, j)
	if k < len(cols) && cols[k] == j {
		return m.data[lo+k]
	}

	return 0
}

// Dense expands the matrix into a fresh dense [][]float64. Intended for tests
// and cross-checks on small n; O(n²) memory by definition.
func (m *Matrix) Dense() [][]float64 {
	out := make([][]float64, m.n)
	var i, p int
	for i = 0; i < m.n; i++ {
		out[i] = make([]float64, m.n)
		for p = m.indptr[i]; p < m.indptr[i+1]; p++ {
			out[i][m.indices[p]] = m.data[p]
		}
	}

	return out
}
