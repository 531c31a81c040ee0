// SPDX-License-Identifier: MIT
// Package weights: sparse-dense products (spatial lags).
//
// Purpose:
//   - W·v, W'·v, W·X and W'·X are the only ways the rest of the library ever
//     touches W; keeping them here keeps the O(nnz) complexity contract in one
//     place.
//
// Determinism & Performance:
//   - Fixed row-major traversal of the CSR structure.
//   - Dense operands use gonum's raw row views; no per-element interface calls.

package weights

import "gonum.org/v1/gonum/mat"

// Lag computes the spatial lag W·v of a vector.
// Fails with ErrDimensionMismatch when len(v) != n.
// Complexity: O(nnz), Space O(n) for the result.
func (m *Matrix) Lag(v []float64) ([]float64, error) {
	if len(v) != m.n {
		return nil, weightsErrorf(opLag, ErrDimensionMismatch)
	}
	out := make([]float64, m.n)
	var i, p int
	var acc float64
	for i = 0; i < m.n; i++ {
		acc = 0
		for p = m.indptr[i]; p < m.indptr[i+1]; p++ {
			acc += m.data[p] * v[m.indices[p]]
		}
		out[i] = acc
	}

	return out, nil
}

// LagTranspose computes W'·v, scattering each stored w_ij into slot j.
// Fails with ErrDimensionMismatch when len(v) != n.
// Complexity: O(nnz), Space O(n).
func (m *Matrix) LagTranspose(v []float64) ([]float64, error) {
	if len(v) != m.n {
		return nil, weightsErrorf(opLagT, ErrDimensionMismatch)
	}
	out := make([]float64, m.n)
	var i, p int
	for i = 0; i < m.n; i++ {
		vi := v[i]
		if vi == 0 {
			continue // skip zero rows of the operand
		}
		for p = m.indptr[i]; p < m.indptr[i+1]; p++ {
			out[m.indices[p]] += m.data[p] * vi
		}
	}

	return out, nil
}

// LagDense computes B = W·X for a dense n×k operand.
// Fails with ErrDimensionMismatch when rows(X) != n.
// Complexity: O(nnz·k), Space O(n·k).
func (m *Matrix) LagDense(x *mat.Dense) (*mat.Dense, error) {
	r, c := x.Dims()
	if r != m.n {
		return nil, weightsErrorf(opLagDense, ErrDimensionMismatch)
	}
	out := mat.NewDense(m.n, c, nil)
	var i, p, j int
	for i = 0; i < m.n; i++ {
		dst := out.RawRowView(i)
		for p = m.indptr[i]; p < m.indptr[i+1]; p++ {
			w := m.data[p]
			src := x.RawRowView(m.indices[p])
			for j = 0; j < c; j++ {
				dst[j] += w * src[j]
			}
		}
	}

	return out, nil
}

// LagTransposeDense computes A = W'·X for a dense n×k operand.
// Fails with ErrDimensionMismatch when rows(X) != n.
// Complexity: O(nnz·k), Space O(n·k).
func (m *Matrix) LagTransposeDense(x *mat.Dense) (*mat.Dense, error) {
	r, c := x.Dims()
	if r != m.n {
		return nil, weightsErrorf(opLagTDense, ErrDimensionMismatch)
	}
	out := mat.NewDense(m.n, c, nil)
	var i, p, j int
	for i = 0; i < m.n; i++ {
		src := x.RawRowView(i)
		for p = m.indptr[i]; p < m.indptr[i+1]; p++ {
			w := m.data[p]
			dst := out.RawRowView(m.indices[p])
			for j = 0; j < c; j++ {
				dst[j] += w * src[j]
			}
		}
	}

	return out, nil
}
