// SPDX-License-Identifier: MIT
// Package weights: sentinel error set.
// This file defines ONLY package-level sentinel errors used across the weights
// package. All operations MUST return these sentinels and tests MUST check them
// via errors.Is. No operation panics on user-triggered error conditions.

package weights

import "errors"

var (
	// ErrNonSquare signals that a square weights matrix was required but the
	// input wasn't (ragged dense input, or a column index beyond n).
	ErrNonSquare = errors.New("weights: matrix is not square")

	// ErrDimensionMismatch indicates incompatible dimensions between operands,
	// e.g., neighbor and weight lists of different lengths, or a lag vector
	// whose length differs from n.
	ErrDimensionMismatch = errors.New("weights: dimension mismatch")

	// ErrOutOfRange indicates a neighbor index outside [0, n).
	ErrOutOfRange = errors.New("weights: neighbor index out of range")

	// ErrSelfNeighbor indicates an attempt to register w_ii ≠ 0; the diagonal
	// of a spatial weights matrix is zero by contract.
	ErrSelfNeighbor = errors.New("weights: self-neighbor not allowed")

	// ErrNegativeWeight indicates a negative entry; spatial weights are
	// nonnegative by contract.
	ErrNegativeWeight = errors.New("weights: negative weight")

	// ErrNaNInf signals a NaN or ±Inf weight at ingestion.
	ErrNaNInf = errors.New("weights: NaN or Inf weight")

	// ErrNilMatrix indicates that a nil *Matrix receiver or argument was used.
	ErrNilMatrix = errors.New("weights: nil matrix")
)
