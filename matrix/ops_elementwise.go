// SPDX-License-Identifier: MIT

// Package matrix - elementwise matrix arithmetic, reductions and predicates.
//
// Contract:
//   - Pairwise operations require identical shapes (ErrDimensionMismatch).
//   - Every operation here requires a Fresh matrix (ErrInvalidState otherwise).
//   - Copying variants allocate in the receiver's arena and release their
//     result on failure.

package matrix

import (
	"github.com/katalvlaran/numcore/backend"
)

const (
	opMatAdd         = "Matrix.Add"
	opMatSub         = "Matrix.Sub"
	opMatMulElements = "Matrix.MulElements"
	opMatDivElements = "Matrix.DivElements"
	opMatScale       = "Matrix.Scale"
	opMatAddConstant = "Matrix.AddConstant"
	opMatMinMax      = "Matrix.MinMax"
	opMatTest        = "Matrix.Test"
	opMatSwapRows    = "Matrix.SwapRows"
)

// pair borrows both operands and checks their shapes.
func (m *Matrix[T]) pair(op string, other *Matrix[T]) (a, b backend.General[T], err error) {
	if a, err = m.fresh(op); err != nil {
		return a, b, err
	}
	if b, err = other.fresh(op); err != nil {
		return a, b, err
	}
	err = validateSameShape(op, a.Rows, a.Cols, b.Rows, b.Cols)

	return a, b, err
}

func (m *Matrix[T]) inPlace(op string, other *Matrix[T], kernel func(dst, src backend.General[T]) error) (*Matrix[T], error) {
	a, b, err := m.pair(op, other)
	if err != nil {
		return nil, err
	}
	if err = kernel(a, b); err != nil {
		return nil, err
	}

	return m, nil
}

// derive clones m and applies f to the clone.
func (m *Matrix[T]) derive(op string, f func(*Matrix[T]) (*Matrix[T], error)) (*Matrix[T], error) {
	if _, err := m.fresh(op); err != nil {
		return nil, err
	}
	out, err := m.Clone()
	if err != nil {
		return nil, err
	}
	if _, err = f(out); err != nil {
		_ = out.Release()
		return nil, err
	}

	return out, nil
}

// AddInPlace computes m += other.
func (m *Matrix[T]) AddInPlace(other *Matrix[T]) (*Matrix[T], error) {
	return m.inPlace(opMatAdd, other, backend.AddMatrix[T])
}

// SubInPlace computes m -= other.
func (m *Matrix[T]) SubInPlace(other *Matrix[T]) (*Matrix[T], error) {
	return m.inPlace(opMatSub, other, backend.SubMatrix[T])
}

// MulElementsInPlace computes the Hadamard product into m.
func (m *Matrix[T]) MulElementsInPlace(other *Matrix[T]) (*Matrix[T], error) {
	return m.inPlace(opMatMulElements, other, backend.MulElements[T])
}

// DivElementsInPlace computes m[r][c] /= other[r][c]. Integer zero divisors
// fail with ErrZeroDivision before any element is written.
func (m *Matrix[T]) DivElementsInPlace(other *Matrix[T]) (*Matrix[T], error) {
	return m.inPlace(opMatDivElements, other, backend.DivElements[T])
}

// ScaleInPlace computes m *= a.
func (m *Matrix[T]) ScaleInPlace(a T) (*Matrix[T], error) {
	g, err := m.fresh(opMatScale)
	if err != nil {
		return nil, err
	}
	if err = backend.ScaleMatrix(g, a); err != nil {
		return nil, err
	}

	return m, nil
}

// AddConstantInPlace computes m += a elementwise.
func (m *Matrix[T]) AddConstantInPlace(a T) (*Matrix[T], error) {
	g, err := m.fresh(opMatAddConstant)
	if err != nil {
		return nil, err
	}
	if err = backend.AddConstantMatrix(g, a); err != nil {
		return nil, err
	}

	return m, nil
}

// Add returns a fresh m + other.
func (m *Matrix[T]) Add(other *Matrix[T]) (*Matrix[T], error) {
	if _, _, err := m.pair(opMatAdd, other); err != nil {
		return nil, err
	}

	return m.derive(opMatAdd, func(out *Matrix[T]) (*Matrix[T], error) { return out.AddInPlace(other) })
}

// Sub returns a fresh m - other.
func (m *Matrix[T]) Sub(other *Matrix[T]) (*Matrix[T], error) {
	if _, _, err := m.pair(opMatSub, other); err != nil {
		return nil, err
	}

	return m.derive(opMatSub, func(out *Matrix[T]) (*Matrix[T], error) { return out.SubInPlace(other) })
}

// MulElements returns a fresh Hadamard product.
func (m *Matrix[T]) MulElements(other *Matrix[T]) (*Matrix[T], error) {
	if _, _, err := m.pair(opMatMulElements, other); err != nil {
		return nil, err
	}

	return m.derive(opMatMulElements, func(out *Matrix[T]) (*Matrix[T], error) { return out.MulElementsInPlace(other) })
}

// DivElements returns a fresh elementwise quotient.
func (m *Matrix[T]) DivElements(other *Matrix[T]) (*Matrix[T], error) {
	if _, _, err := m.pair(opMatDivElements, other); err != nil {
		return nil, err
	}

	return m.derive(opMatDivElements, func(out *Matrix[T]) (*Matrix[T], error) { return out.DivElementsInPlace(other) })
}

// Scale returns a fresh a*m.
func (m *Matrix[T]) Scale(a T) (*Matrix[T], error) {
	return m.derive(opMatScale, func(out *Matrix[T]) (*Matrix[T], error) { return out.ScaleInPlace(a) })
}

// AddConstant returns a fresh m + a.
func (m *Matrix[T]) AddConstant(a T) (*Matrix[T], error) {
	return m.derive(opMatAddConstant, func(out *Matrix[T]) (*Matrix[T], error) { return out.AddConstantInPlace(a) })
}

// MinMaxIndex returns the cells of the smallest and largest elements.
// Ties resolve to the first cell in row-major order; complex kinds fail
// with ErrUnsupported.
func (m *Matrix[T]) MinMaxIndex() (minR, minC, maxR, maxC int, err error) {
	g, err := m.fresh(opMatMinMax)
	if err != nil {
		return 0, 0, 0, 0, err
	}
	if err = requireReal(opMatMinMax, m.kind); err != nil {
		return 0, 0, 0, 0, err
	}

	return backend.MinMaxIndexMatrix(g)
}

// MinIndex returns the cell of the smallest element.
func (m *Matrix[T]) MinIndex() (r, c int, err error) {
	r, c, _, _, err = m.MinMaxIndex()
	return r, c, err
}

// MaxIndex returns the cell of the largest element.
func (m *Matrix[T]) MaxIndex() (r, c int, err error) {
	_, _, r, c, err = m.MinMaxIndex()
	return r, c, err
}

// MinMax returns the smallest and largest elements.
func (m *Matrix[T]) MinMax() (lo, hi T, err error) {
	minR, minC, maxR, maxC, err := m.MinMaxIndex()
	if err != nil {
		return lo, hi, err
	}

	return m.RawAt(minR, minC), m.RawAt(maxR, maxC), nil
}

// Min returns the smallest element.
func (m *Matrix[T]) Min() (T, error) {
	lo, _, err := m.MinMax()
	return lo, err
}

// Max returns the largest element.
func (m *Matrix[T]) Max() (T, error) {
	_, hi, err := m.MinMax()
	return hi, err
}

func (m *Matrix[T]) test(p backend.Predicate) (bool, error) {
	g, err := m.fresh(opMatTest)
	if err != nil {
		return false, err
	}

	return backend.TestMatrix(g, p), nil
}

// IsNull reports whether every element is zero.
func (m *Matrix[T]) IsNull() (bool, error) { return m.test(backend.IsNull) }

// IsPos reports whether every element is strictly positive.
func (m *Matrix[T]) IsPos() (bool, error) { return m.test(backend.IsPos) }

// IsNeg reports whether every element is strictly negative.
func (m *Matrix[T]) IsNeg() (bool, error) { return m.test(backend.IsNeg) }

// IsNonNeg reports whether every element is >= 0.
func (m *Matrix[T]) IsNonNeg() (bool, error) { return m.test(backend.IsNonNeg) }

// SwapRows exchanges rows i and j.
func (m *Matrix[T]) SwapRows(i, j int) (*Matrix[T], error) {
	g, err := m.fresh(opMatSwapRows)
	if err != nil {
		return nil, err
	}
	if err = backend.SwapRows(g, i, j); err != nil {
		return nil, err
	}

	return m, nil
}
