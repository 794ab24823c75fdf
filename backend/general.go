// SPDX-License-Identifier: MIT

package backend

import (
	"github.com/katalvlaran/numcore/scalar"
	"github.com/katalvlaran/numcore/status"
)

// rows applies f to every row of g, or once to the packed storage when
// rows are contiguous.
func rows[T scalar.Scalar](g General[T], f func(Vec[T]) error) error {
	if flat, ok := g.Flat(); ok {
		return f(flat)
	}
	for r := 0; r < g.Rows; r++ {
		if err := f(g.Row(r)); err != nil {
			return err
		}
	}

	return nil
}

// rowPairs applies f to matching rows of two same-shape matrices.
func rowPairs[T scalar.Scalar](a, b General[T], f func(x, y Vec[T]) error) error {
	if fa, ok := a.Flat(); ok {
		if fb, ok := b.Flat(); ok {
			return f(fa, fb)
		}
	}
	for r := 0; r < a.Rows; r++ {
		if err := f(a.Row(r), b.Row(r)); err != nil {
			return err
		}
	}

	return nil
}

// FillMatrix sets every element of g to v.
func FillMatrix[T scalar.Scalar](g General[T], v T) error {
	if err := g.check(opFill); err != nil {
		return err
	}

	return rows(g, func(x Vec[T]) error { return Fill(x, v) })
}

// CopyMatrix copies src into dst; shapes must match.
func CopyMatrix[T scalar.Scalar](dst, src General[T]) error {
	if err := sameShape(opCopy, dst, src); err != nil {
		return err
	}

	return rowPairs(dst, src, Copy[T])
}

// AddMatrix computes dst += src.
func AddMatrix[T scalar.Scalar](dst, src General[T]) error {
	return binaryMatrix(kindAdd, dst, src)
}

// SubMatrix computes dst -= src.
func SubMatrix[T scalar.Scalar](dst, src General[T]) error {
	return binaryMatrix(kindSub, dst, src)
}

// MulElements computes dst *= src elementwise (Hadamard product).
func MulElements[T scalar.Scalar](dst, src General[T]) error {
	return binaryMatrix(kindMul, dst, src)
}

// DivElements computes dst /= src elementwise; integer zero divisors fail
// before dst is touched.
func DivElements[T scalar.Scalar](dst, src General[T]) error {
	return binaryMatrix(kindDiv, dst, src)
}

func binaryMatrix[T scalar.Scalar](k binaryKind, dst, src General[T]) error {
	op := binaryOps[k]
	if err := sameShape(op, dst, src); err != nil {
		return err
	}
	if k == kindDiv {
		if err := rows(src, func(x Vec[T]) error { return checkDivisor(op, x) }); err != nil {
			return err
		}
	}

	return rowPairs(dst, src, func(x, y Vec[T]) error {
		if !vekBinary(k, x, y) {
			applyBinary(k, x, y)
		}
		return nil
	})
}

// ScaleMatrix computes g *= a.
func ScaleMatrix[T scalar.Scalar](g General[T], a T) error {
	if err := g.check(opScale); err != nil {
		return err
	}

	return rows(g, func(x Vec[T]) error { return Scale(x, a) })
}

// AddConstantMatrix computes g += a.
func AddConstantMatrix[T scalar.Scalar](g General[T], a T) error {
	if err := g.check(opAddConstant); err != nil {
		return err
	}

	return rows(g, func(x Vec[T]) error { return AddConstant(x, a) })
}

// SetIdentity writes ones on the leading diagonal and zeros elsewhere.
// Rectangular matrices are accepted.
func SetIdentity[T scalar.Scalar](g General[T]) error {
	if err := g.check(opIdentity); err != nil {
		return err
	}
	for r := 0; r < g.Rows; r++ {
		row := g.Row(r)
		for c := 0; c < g.Cols; c++ {
			if r == c {
				row.Data[c] = 1
			} else {
				row.Data[c] = 0
			}
		}
	}

	return nil
}

// TransposeInto writes srcᵀ into dst, which must be src.Cols x src.Rows.
//
// Errors:
//   - ErrInvalidState for a descriptor without storage.
//   - ErrDimensionMismatch when dst is not src.Cols x src.Rows.
//
// Complexity: O(rows*cols) time, O(1) extra space.
func TransposeInto[T scalar.Scalar](dst, src General[T]) error {
	if err := src.check(opTranspose); err != nil {
		return err
	}
	if err := dst.check(opTranspose); err != nil {
		return err
	}
	if dst.Rows != src.Cols || dst.Cols != src.Rows {
		return status.NewKind(opTranspose, status.ErrDimensionMismatch,
			"destination %s cannot hold transpose of %s", dst.shape(), src.shape())
	}
	for r := 0; r < src.Rows; r++ {
		row := src.Row(r)
		for c := 0; c < src.Cols; c++ {
			dst.Data[c*dst.Stride+r] = row.Data[c]
		}
	}

	return nil
}

// TransposeInPlace transposes a square matrix in place.
// Non-square input fails with ErrNotSquare.
func TransposeInPlace[T scalar.Scalar](g General[T]) error {
	if err := g.check(opTranspose); err != nil {
		return err
	}
	if g.Rows != g.Cols {
		return status.New(opTranspose, status.ENOTSQR, "in-place transpose needs a square matrix, got %s", g.shape())
	}
	for r := 0; r < g.Rows; r++ {
		for c := r + 1; c < g.Cols; c++ {
			i, j := r*g.Stride+c, c*g.Stride+r
			g.Data[i], g.Data[j] = g.Data[j], g.Data[i]
		}
	}

	return nil
}

// SwapRows exchanges rows i and j of g.
func SwapRows[T scalar.Scalar](g General[T], i, j int) error {
	if err := g.check(opSwap); err != nil {
		return err
	}
	if i < 0 || i >= g.Rows || j < 0 || j >= g.Rows {
		return status.NewKind(opSwap, status.ErrIndexOutOfRange, "rows (%d,%d) outside [0,%d)", i, j, g.Rows)
	}
	if i == j {
		return nil
	}

	return Swap(g.Row(i), g.Row(j))
}

// TestMatrix evaluates p over every element of g.
func TestMatrix[T scalar.Scalar](g General[T], p Predicate) bool {
	ok := true
	_ = rows(g, func(x Vec[T]) error {
		ok = ok && Test(x, p)
		return nil
	})

	return ok
}
