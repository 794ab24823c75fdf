// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//  - Provide a single source of truth for argument and state checks.
//  - Raise status errors at the detection point with the operation tag and
//    the offending sizes, so call sites only forward them.
//
// Note:
//  - Composite checks follow a fixed order: receiver alive -> state -> shape -> index.

package matrix

import (
	"math"

	"github.com/katalvlaran/numcore/scalar"
	"github.com/katalvlaran/numcore/status"
)

// validateKind rejects element types outside the scalar registry.
func validateKind[T scalar.Scalar](op string) (scalar.Kind, error) {
	k := scalar.KindOf[T]()
	if !k.Valid() {
		var zero T
		return k, status.New(op, status.EINVAL, "unregistered element type %T", zero)
	}

	return k, nil
}

// validateLength rejects empty vectors.
func validateLength(op string, n int) error {
	if n <= 0 {
		return status.New(op, status.EINVAL, "vector length must be > 0, got %d", n)
	}

	return nil
}

// validateShape rejects matrices with a zero (or negative) dimension.
// A shape whose element count overflows int is ErrAllocationFailure: no
// buffer can hold it.
func validateShape(op string, rows, cols int) error {
	if rows <= 0 || cols <= 0 {
		return status.New(op, status.EINVAL, "matrix dimensions must be > 0, got %dx%d", rows, cols)
	}
	if rows > math.MaxInt/cols {
		return status.New(op, status.ENOMEM, "%dx%d elements overflow int", rows, cols)
	}

	return nil
}

// validateIndex checks 0 <= i < n.
func validateIndex(op string, i, n int) error {
	if i < 0 || i >= n {
		return status.NewKind(op, status.ErrIndexOutOfRange, "index %d outside [0,%d)", i, n)
	}

	return nil
}

// validateCell checks (r, c) against rows x cols.
func validateCell(op string, r, c, rows, cols int) error {
	if r < 0 || r >= rows || c < 0 || c >= cols {
		return status.NewKind(op, status.ErrIndexOutOfRange, "cell (%d,%d) outside %dx%d", r, c, rows, cols)
	}

	return nil
}

// validateSameLength is the pairwise guard for vector operands.
func validateSameLength(op string, a, b int) error {
	if a != b {
		return status.New(op, status.EBADLEN, "vector lengths %d and %d differ", a, b)
	}

	return nil
}

// validateSameShape is the pairwise guard for matrix operands.
func validateSameShape(op string, ar, ac, br, bc int) error {
	if ar != br || ac != bc {
		return status.NewKind(op, status.ErrDimensionMismatch, "shapes %dx%d and %dx%d differ", ar, ac, br, bc)
	}

	return nil
}

// requireFloat guards BLAS-backed operations.
func requireFloat(op string, k scalar.Kind) error {
	if !k.IsFloat() {
		return status.New(op, status.EUNSUP, "%s is not a floating kind", k)
	}

	return nil
}

// requireReal guards ordered reductions.
func requireReal(op string, k scalar.Kind) error {
	if !k.IsReal() {
		return status.New(op, status.EUNSUP, "%s values are not ordered", k)
	}

	return nil
}
