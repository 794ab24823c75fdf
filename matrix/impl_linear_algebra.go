// SPDX-License-Identifier: MIT

// Package matrix - BLAS-backed products and transposition.
//
// Purpose:
//   - Dispatch Multiply on the runtime type of its operand (matrix or vector).
//   - Expose the four op(A)*op(B) variants of Gemm under readable names.
//   - Keep results fresh: every product allocates its output in the
//     receiver's arena; operands are never modified.
//
// Determinism:
//   - The backend kernels use fixed loop orders; identical inputs give
//     bit-identical outputs on the same platform.
//
// Complexity:
//   - MulVec O(r*c); Gemm O(m*n*k); Transpose O(r*c).

package matrix

import (
	"github.com/katalvlaran/numcore/backend"
	"github.com/katalvlaran/numcore/scalar"
	"github.com/katalvlaran/numcore/status"
)

const (
	opMultiply         = "Matrix.Multiply"
	opMulVec           = "Matrix.MulVec"
	opGemm             = "Matrix.Gemm"
	opTranspose        = "Matrix.Transpose"
	opTransposeInPlace = "Matrix.TransposeInPlace"
)

// Transpose selects how Gemm reads an operand.
type Transpose = backend.Transpose

const (
	NoTrans   = backend.NoTrans   // op(X) = X
	Trans     = backend.Trans     // op(X) = Xᵀ
	ConjTrans = backend.ConjTrans // op(X) = Xᴴ; equal to Trans for real kinds
)

// Operand is anything a Multiply call accepts or returns:
// *Matrix[T] or *Vector[T].
type Operand interface {
	Kind() scalar.Kind
	Release() error
}

var (
	_ Operand = (*Matrix[float64])(nil)
	_ Operand = (*Vector[float64])(nil)
)

// Multiply returns m*other.
// MAIN DESCRIPTION:
//   - *Matrix[T] operands give a fresh rows×other.Cols() matrix (MulMatrix).
//   - *Vector[T] operands give a fresh vector of length rows (MulVec).
//
// Errors:
//   - ErrInvalidArgument for any other operand, including a container of a
//     different element type.
//   - Whatever MulMatrix/MulVec report. The returned Operand is a nil
//     interface whenever err != nil.
func (m *Matrix[T]) Multiply(other Operand) (Operand, error) {
	switch o := other.(type) {
	case *Matrix[T]:
		res, err := m.MulMatrix(o)
		if err != nil {
			return nil, err
		}
		return res, nil
	case *Vector[T]:
		res, err := m.MulVec(o)
		if err != nil {
			return nil, err
		}
		return res, nil
	}

	return nil, status.New(opMultiply, status.EINVAL, "don't know how to multiply by %T", other)
}

// MulVec returns m*x.
//
// Errors:
//   - ErrLengthMismatch unless x.Len() == Cols().
//   - ErrUnsupported for integer kinds.
//   - ErrInvalidState for factored or released operands.
func (m *Matrix[T]) MulVec(x *Vector[T]) (*Vector[T], error) {
	a, err := m.fresh(opMulVec)
	if err != nil {
		return nil, err
	}
	xv, err := x.view(opMulVec)
	if err != nil {
		return nil, err
	}
	if err = requireFloat(opMulVec, m.kind); err != nil {
		return nil, err
	}
	if xv.N != m.cols {
		return nil, status.New(opMulVec, status.EBADLEN, "vector length %d, matrix is %dx%d", xv.N, m.rows, m.cols)
	}
	y, err := newVector[T](opMulVec, m.rows, options{arena: m.arena(), zeroed: true})
	if err != nil {
		return nil, err
	}
	yv, _ := y.view(opMulVec)
	if err = backend.Gemv(NoTrans, 1, a, xv, 0, yv); err != nil {
		_ = y.Release()
		return nil, err
	}

	return y, nil
}

// MulMatrix returns m*b.
func (m *Matrix[T]) MulMatrix(b *Matrix[T]) (*Matrix[T], error) {
	return m.Gemm(NoTrans, NoTrans, b)
}

// TransMul returns mᵀ*b.
func (m *Matrix[T]) TransMul(b *Matrix[T]) (*Matrix[T], error) {
	return m.Gemm(Trans, NoTrans, b)
}

// MulTrans returns m*bᵀ.
func (m *Matrix[T]) MulTrans(b *Matrix[T]) (*Matrix[T], error) {
	return m.Gemm(NoTrans, Trans, b)
}

// TransMulTrans returns mᵀ*bᵀ.
func (m *Matrix[T]) TransMulTrans(b *Matrix[T]) (*Matrix[T], error) {
	return m.Gemm(Trans, Trans, b)
}

// Gemm returns op(m)*op(b) as a fresh matrix.
//
// Implementation:
//   - Stage 1: both operands must be Fresh and of a floating kind.
//   - Stage 2: derive the result shape; inner mismatch is ErrDimensionMismatch.
//   - Stage 3: allocate a zeroed result and run C = 1*op(A)*op(B) + 0*C.
func (m *Matrix[T]) Gemm(tA, tB Transpose, b *Matrix[T]) (*Matrix[T], error) {
	a, err := m.fresh(opGemm)
	if err != nil {
		return nil, err
	}
	bg, err := b.fresh(opGemm)
	if err != nil {
		return nil, err
	}
	if err = requireFloat(opGemm, m.kind); err != nil {
		return nil, err
	}
	rows, cols, err := backend.GemmShape(tA, tB, a, bg)
	if err != nil {
		return nil, err
	}
	out, err := newMatrix[T](opGemm, rows, cols, options{arena: m.arena(), zeroed: true})
	if err != nil {
		return nil, err
	}
	c, _ := out.general(opGemm)
	if err = backend.Gemm(tA, tB, 1, a, bg, 0, c); err != nil {
		_ = out.Release()
		return nil, err
	}

	return out, nil
}

// Transpose returns a fresh cols×rows transpose.
func (m *Matrix[T]) Transpose() (*Matrix[T], error) {
	src, err := m.fresh(opTranspose)
	if err != nil {
		return nil, err
	}
	out, err := newMatrix[T](opTranspose, m.cols, m.rows, options{arena: m.arena()})
	if err != nil {
		return nil, err
	}
	dst, _ := out.general(opTranspose)
	if err = backend.TransposeInto(dst, src); err != nil {
		_ = out.Release()
		return nil, err
	}

	return out, nil
}

// TransposeInPlace transposes a square matrix in place.
// Rectangular matrices fail with ErrNotSquare and are left untouched.
func (m *Matrix[T]) TransposeInPlace() (*Matrix[T], error) {
	g, err := m.fresh(opTransposeInPlace)
	if err != nil {
		return nil, err
	}
	if err = backend.TransposeInPlace(g); err != nil {
		return nil, err
	}

	return m, nil
}
