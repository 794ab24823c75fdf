// SPDX-License-Identifier: MIT

// Package backend is the numeric backend behind numcore containers: the
// per-kind primitive kernels (elementwise, reductions, BLAS, LU) that
// vectors and matrices delegate to.
//
// Purpose:
//   - Take strided descriptors (Vec, General) that borrow container storage
//     for the duration of one call.
//   - Dispatch by element type: gonum BLAS for float32/float64/complex64/
//     complex128, vek SIMD loops for contiguous float64/float32 elementwise
//     work, portable generic loops for everything else.
//   - Report every failure as a status error raised at the detection point.
//
// Kernels validate shapes before touching memory. A kernel that fails leaves
// its outputs untouched, except the LU factorization which works in place.
package backend

import (
	"fmt"

	"github.com/katalvlaran/numcore/scalar"
	"github.com/katalvlaran/numcore/status"
)

// Vec is a strided 1D view: element i lives at Data[i*Inc].
type Vec[T scalar.Scalar] struct {
	N    int
	Inc  int
	Data []T
}

// General is a row-major 2D view: element (r, c) lives at Data[r*Stride+c].
type General[T scalar.Scalar] struct {
	Rows   int
	Cols   int
	Stride int
	Data   []T
}

// Contiguous wraps a plain slice as a unit-stride Vec.
func Contiguous[T scalar.Scalar](data []T) Vec[T] {
	return Vec[T]{N: len(data), Inc: 1, Data: data}
}

// At returns element i without bounds checking beyond the slice's own.
func (v Vec[T]) At(i int) T { return v.Data[i*v.Inc] }

// Set stores element i.
func (v Vec[T]) Set(i int, x T) { v.Data[i*v.Inc] = x }

// dense reports whether the view is unit-stride, returning the exact window.
func (v Vec[T]) dense() ([]T, bool) {
	if v.Inc != 1 {
		return nil, false
	}

	return v.Data[:v.N], true
}

func (v Vec[T]) check(op string) error {
	if v.N < 0 || v.Inc < 1 {
		return status.New(op, status.EINVAL, "vector N=%d Inc=%d", v.N, v.Inc)
	}
	if v.N > 0 && len(v.Data) < 1+(v.N-1)*v.Inc {
		return status.New(op, status.EFAULT, "vector storage %d < required %d", len(v.Data), 1+(v.N-1)*v.Inc)
	}

	return nil
}

// At returns element (r, c).
func (g General[T]) At(r, c int) T { return g.Data[r*g.Stride+c] }

// Set stores element (r, c).
func (g General[T]) Set(r, c int, x T) { g.Data[r*g.Stride+c] = x }

// Row views row r as a unit-stride Vec.
func (g General[T]) Row(r int) Vec[T] {
	off := r * g.Stride
	return Vec[T]{N: g.Cols, Inc: 1, Data: g.Data[off : off+g.Cols]}
}

// Col views column c as a Vec with Inc = Stride.
func (g General[T]) Col(c int) Vec[T] {
	return Vec[T]{N: g.Rows, Inc: g.Stride, Data: g.Data[c:]}
}

// Flat views the whole matrix as one Vec when rows are packed (Stride == Cols).
func (g General[T]) Flat() (Vec[T], bool) {
	if g.Stride != g.Cols {
		return Vec[T]{}, false
	}

	return Vec[T]{N: g.Rows * g.Cols, Inc: 1, Data: g.Data[:g.Rows*g.Cols]}, true
}

func (g General[T]) check(op string) error {
	if g.Rows < 1 || g.Cols < 1 || g.Stride < g.Cols {
		return status.New(op, status.EINVAL, "matrix %dx%d stride=%d", g.Rows, g.Cols, g.Stride)
	}
	if need := (g.Rows-1)*g.Stride + g.Cols; len(g.Data) < need {
		return status.New(op, status.EFAULT, "matrix storage %d < required %d", len(g.Data), need)
	}

	return nil
}

func (g General[T]) shape() string { return fmt.Sprintf("%dx%d", g.Rows, g.Cols) }

// sameLen validates two vectors as operands of a pairwise kernel.
func sameLen[T scalar.Scalar](op string, x, y Vec[T]) error {
	if err := x.check(op); err != nil {
		return err
	}
	if err := y.check(op); err != nil {
		return err
	}
	if x.N != y.N {
		return status.New(op, status.EBADLEN, "vector lengths %d and %d differ", x.N, y.N)
	}

	return nil
}

// sameShape validates two matrices as operands of a pairwise kernel.
func sameShape[T scalar.Scalar](op string, a, b General[T]) error {
	if err := a.check(op); err != nil {
		return err
	}
	if err := b.check(op); err != nil {
		return err
	}
	if a.Rows != b.Rows || a.Cols != b.Cols {
		return status.NewKind(op, status.ErrDimensionMismatch, "matrix shapes %s and %s differ", a.shape(), b.shape())
	}

	return nil
}
