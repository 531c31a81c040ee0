// SPDX-License-Identifier: MIT
// Package projection: sentinel error set. Matched via errors.Is; no panics on
// user-triggered conditions.

package projection

import "errors"

var (
	// ErrSingular is returned when X'X fails the rank/conditioning check and
	// cannot be inverted.
	ErrSingular = errors.New("projection: singular design matrix")

	// ErrDegreesOfFreedom is returned when n−k ≤ 0 or n−k+2 ≤ 0; the Moran
	// variance formula divides by both quantities.
	ErrDegreesOfFreedom = errors.New("projection: insufficient degrees of freedom")

	// ErrDimensionMismatch indicates that X, W or a vector operand disagree on n.
	ErrDimensionMismatch = errors.New("projection: dimension mismatch")

	// ErrNilOperand indicates a nil X or W handed to New, or a nil Algebra
	// receiver.
	ErrNilOperand = errors.New("projection: nil operand")
)
