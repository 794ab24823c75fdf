// SPDX-License-Identifier: MIT

// Package matrix - one-call facades over the container and LU surface.
//
// Purpose:
//   - Cover the common "build, factor, solve, release" sequence in one call
//     without touching the caller's operands.
//   - Provide the comparison helper used by tests and the CLI.

package matrix

import (
	"errors"
	"math"
	"math/cmplx"

	"github.com/katalvlaran/numcore/scalar"
)

const opAllClose = "AllClose"

// Identity returns a fresh n×n identity matrix.
func Identity[T scalar.Scalar](n int, opts ...Option) (*Matrix[T], error) {
	m, err := NewMatrix[T](n, n, opts...)
	if err != nil {
		return nil, err
	}
	if _, err = m.SetIdentity(); err != nil {
		_ = m.Release()
		return nil, err
	}

	return m, nil
}

// Zeros returns a fresh rows×cols zero matrix regardless of WithZeroed.
func Zeros[T scalar.Scalar](rows, cols int, opts ...Option) (*Matrix[T], error) {
	return NewMatrix[T](rows, cols, append(opts, WithZeroed(true))...)
}

// Solve returns x with a·x = b. a and b are left untouched: a is cloned
// before factoring and the clone is released before returning.
// Time: O(n³). Space: O(n²).
func Solve(a *Matrix[float64], b *Vector[float64]) (*Vector[float64], error) {
	lu, err := factorCopy(a)
	if err != nil {
		return nil, err
	}
	x, err := lu.Solve(b)

	return x, errors.Join(err, lu.Release())
}

// Inverse returns a⁻¹ without modifying a.
// Time: O(n³). Space: O(n²).
func Inverse(a *Matrix[float64]) (*Matrix[float64], error) {
	lu, err := factorCopy(a)
	if err != nil {
		return nil, err
	}
	inv, err := lu.Invert()

	return inv, errors.Join(err, lu.Release())
}

// Det returns det(a) without modifying a. Singular matrices give 0.
func Det(a *Matrix[float64]) (float64, error) {
	lu, err := factorCopy(a)
	if errors.Is(err, ErrSingularity) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	det := lu.Det()

	return det, lu.Release()
}

func factorCopy(a *Matrix[float64]) (*LU, error) {
	work, err := a.Clone()
	if err != nil {
		return nil, err
	}
	lu, err := DecomposeLU(work)
	if err != nil {
		_ = work.Release()
		return nil, err
	}

	return lu, nil
}

// AllClose checks element-wise |a-b| <= atol + rtol*|b| for identical shapes.
// Returns (true,nil) if all elements satisfy the relation; (false,nil) otherwise.
// NaN != anything; +Inf equals +Inf; -Inf equals -Inf. Deterministic.
// Time: O(r*c). Space: O(1).
//
// Policy:
//   - a and b must be live and have identical shapes (ErrDimensionMismatch).
//   - rtol, atol are treated as |rtol|, |atol|.
//   - Complex elements compare by modulus of the difference.
func AllClose[T scalar.Scalar](a, b *Matrix[T], rtol, atol float64) (bool, error) {
	ag, err := a.general(opAllClose)
	if err != nil {
		return false, err
	}
	bg, err := b.general(opAllClose)
	if err != nil {
		return false, err
	}
	if err = validateSameShape(opAllClose, ag.Rows, ag.Cols, bg.Rows, bg.Cols); err != nil {
		return false, err
	}
	rtol, atol = math.Abs(rtol), math.Abs(atol)
	for r := 0; r < ag.Rows; r++ {
		for c := 0; c < ag.Cols; c++ {
			if !close128(toComplex(ag.At(r, c)), toComplex(bg.At(r, c)), rtol, atol) {
				return false, nil
			}
		}
	}

	return true, nil
}

// VecAllClose is AllClose for vectors; lengths must match (ErrLengthMismatch).
func VecAllClose[T scalar.Scalar](a, b *Vector[T], rtol, atol float64) (bool, error) {
	x, y, err := a.pair(opAllClose, b)
	if err != nil {
		return false, err
	}
	rtol, atol = math.Abs(rtol), math.Abs(atol)
	for i := 0; i < x.N; i++ {
		if !close128(toComplex(x.At(i)), toComplex(y.At(i)), rtol, atol) {
			return false, nil
		}
	}

	return true, nil
}

func close128(x, y complex128, rtol, atol float64) bool {
	if x == y {
		return true
	}
	if cmplx.IsNaN(x) || cmplx.IsNaN(y) || cmplx.IsInf(x) || cmplx.IsInf(y) {
		return false
	}

	return cmplx.Abs(x-y) <= atol+rtol*cmplx.Abs(y)
}

// toComplex widens any scalar to complex128.
func toComplex[T scalar.Scalar](v T) complex128 {
	switch x := any(v).(type) {
	case int8:
		return complex(float64(x), 0)
	case uint8:
		return complex(float64(x), 0)
	case int16:
		return complex(float64(x), 0)
	case uint16:
		return complex(float64(x), 0)
	case int32:
		return complex(float64(x), 0)
	case uint32:
		return complex(float64(x), 0)
	case int64:
		return complex(float64(x), 0)
	case uint64:
		return complex(float64(x), 0)
	case float32:
		return complex(float64(x), 0)
	case float64:
		return complex(x, 0)
	case complex64:
		return complex128(x)
	case complex128:
		return x
	}
	panic("matrix: unregistered scalar kind")
}
