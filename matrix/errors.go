// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// Every failure returned by this package is a *status.Error whose chain
// contains one of the sentinels below; tests and callers match them via
// errors.Is. No exported function panics on user-triggered conditions,
// except the documented unchecked accessors (RawAt/RawSet).

package matrix

import "github.com/katalvlaran/numcore/status"

var (
	// ErrInvalidArgument: zero-sized construction, empty input sequence,
	// unregistered element type, or an operand Multiply cannot handle.
	ErrInvalidArgument = status.ErrInvalidArgument

	// ErrLengthMismatch: pairwise vector operands (or a right-hand side)
	// with different lengths.
	ErrLengthMismatch = status.ErrLengthMismatch

	// ErrDimensionMismatch: matrix operands with incompatible shapes.
	// It also matches ErrLengthMismatch (both are EBADLEN).
	ErrDimensionMismatch = status.ErrDimensionMismatch

	// ErrIndexOutOfRange: checked accessors given an index outside the container.
	ErrIndexOutOfRange = status.ErrIndexOutOfRange

	// ErrAllocationFailure: the arena could not provide storage.
	ErrAllocationFailure = status.ErrAllocationFailure

	// ErrNotSquare: a square-only operation given a rectangular matrix.
	ErrNotSquare = status.ErrNotSquare

	// ErrSingularity: LU could not obtain a non-zero pivot.
	ErrSingularity = status.ErrSingularity

	// ErrUnsupported: the element kind has no kernel for the operation
	// (BLAS on integers, ordering on complex values).
	ErrUnsupported = status.ErrUnsupported

	// ErrInvalidState: released containers, factored matrices used for
	// arithmetic, or a second decomposition.
	ErrInvalidState = status.ErrInvalidState

	// ErrZeroDivision: integer elementwise division by zero.
	ErrZeroDivision = status.ErrZeroDivision
)
