// SPDX-License-Identifier: MIT

package backend

import (
	"fmt"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas32"
	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/blas/cblas128"
	"gonum.org/v1/gonum/blas/cblas64"

	"github.com/katalvlaran/numcore/internal/metrics"
	"github.com/katalvlaran/numcore/scalar"
	"github.com/katalvlaran/numcore/status"
)

const (
	opDot     = "backend.Dot"
	opDotConj = "backend.DotConj"
	opNrm2    = "backend.Nrm2"
	opAsum    = "backend.Asum"
	opGemv    = "backend.Gemv"
	opGemm    = "backend.Gemm"
)

// Transpose selects how a BLAS kernel reads a matrix operand. It aliases
// gonum's blas.Transpose so flags pass straight through to the kernels.
type Transpose = blas.Transpose

// Transpose flags accepted by Gemv and Gemm. Any other value fails with
// EINVAL.
const (
	// NoTrans reads the operand as stored: op(A) = A.
	NoTrans = blas.NoTrans
	// Trans reads the operand transposed: op(A) = Aᵀ.
	Trans = blas.Trans
	// ConjTrans reads the conjugate transpose: op(A) = Aᴴ. For real kinds
	// it is the same as Trans.
	ConjTrans = blas.ConjTrans
)

// guard converts a panic inside a gonum kernel into ESANITY. Shapes are
// validated up front, so reaching it means a broken invariant.
func guard(op string, err *error) {
	if r := recover(); r != nil {
		*err = status.New(op, status.ESANITY, "kernel panic: %v", r)
	}
}

func unsupported[T scalar.Scalar](op string) error {
	return status.New(op, status.EUNSUP, "no BLAS kernel for %s", scalar.KindOf[T]())
}

func b64v(v Vec[float64]) blas64.Vector { return blas64.Vector{N: v.N, Inc: v.Inc, Data: v.Data} }
func b32v(v Vec[float32]) blas32.Vector { return blas32.Vector{N: v.N, Inc: v.Inc, Data: v.Data} }
func c128v(v Vec[complex128]) cblas128.Vector {
	return cblas128.Vector{N: v.N, Inc: v.Inc, Data: v.Data}
}
func c64v(v Vec[complex64]) cblas64.Vector { return cblas64.Vector{N: v.N, Inc: v.Inc, Data: v.Data} }

func b64g(g General[float64]) blas64.General {
	return blas64.General{Rows: g.Rows, Cols: g.Cols, Stride: g.Stride, Data: g.Data}
}
func b32g(g General[float32]) blas32.General {
	return blas32.General{Rows: g.Rows, Cols: g.Cols, Stride: g.Stride, Data: g.Data}
}
func c128g(g General[complex128]) cblas128.General {
	return cblas128.General{Rows: g.Rows, Cols: g.Cols, Stride: g.Stride, Data: g.Data}
}
func c64g(g General[complex64]) cblas64.General {
	return cblas64.General{Rows: g.Rows, Cols: g.Cols, Stride: g.Stride, Data: g.Data}
}

// Dot returns Σ x[i]*y[i].
// MAIN DESCRIPTION:
//   - Complex kinds are not conjugated; use DotConj for Σ conj(x[i])*y[i].
//   - float32 accumulates in float64 (blas32.DDot) before rounding back.
//
// Implementation:
//   - Stage 1: Validate both descriptors and their lengths.
//   - Stage 2: Dispatch on T to the gonum blas64/blas32/cblas128/cblas64 kernel.
//
// Errors:
//   - EINVAL / EFAULT for a malformed descriptor, EBADLEN when x.N != y.N.
//   - EUNSUP for integer kinds: BLAS has no integer dot product.
//   - ESANITY if the kernel panics despite validation.
//
// Complexity: O(n) time, O(1) space.
func Dot[T scalar.Scalar](x, y Vec[T]) (r T, err error) {
	if err = sameLen(opDot, x, y); err != nil {
		return r, err
	}
	defer guard(opDot, &err)

	switch xv := any(x).(type) {
	case Vec[float64]:
		return any(blas64.Dot(b64v(xv), b64v(any(y).(Vec[float64])))).(T), nil
	case Vec[float32]:
		return any(float32(blas32.DDot(b32v(xv), b32v(any(y).(Vec[float32]))))).(T), nil
	case Vec[complex128]:
		return any(cblas128.Dotu(c128v(xv), c128v(any(y).(Vec[complex128])))).(T), nil
	case Vec[complex64]:
		return any(cblas64.Dotu(c64v(xv), c64v(any(y).(Vec[complex64])))).(T), nil
	}

	return r, unsupported[T](opDot)
}

// DotConj returns Σ conj(x[i])*y[i]. For real kinds it equals Dot.
func DotConj[T scalar.Scalar](x, y Vec[T]) (r T, err error) {
	if err = sameLen(opDotConj, x, y); err != nil {
		return r, err
	}
	defer guard(opDotConj, &err)

	switch xv := any(x).(type) {
	case Vec[complex128]:
		return any(cblas128.Dotc(c128v(xv), c128v(any(y).(Vec[complex128])))).(T), nil
	case Vec[complex64]:
		return any(cblas64.Dotc(c64v(xv), c64v(any(y).(Vec[complex64])))).(T), nil
	}

	return Dot(x, y)
}

// Nrm2 returns the Euclidean norm ‖x‖₂, computed with scaling so that
// intermediate squares neither overflow nor underflow. Integer kinds fail
// with EUNSUP.
//
// Complexity: O(n) time, O(1) space.
func Nrm2[T scalar.Scalar](x Vec[T]) (r float64, err error) {
	if err = x.check(opNrm2); err != nil {
		return 0, err
	}
	defer guard(opNrm2, &err)

	switch xv := any(x).(type) {
	case Vec[float64]:
		return blas64.Nrm2(b64v(xv)), nil
	case Vec[float32]:
		return float64(blas32.Nrm2(b32v(xv))), nil
	case Vec[complex128]:
		return cblas128.Nrm2(c128v(xv)), nil
	case Vec[complex64]:
		return float64(cblas64.Nrm2(c64v(xv))), nil
	}

	return 0, unsupported[T](opNrm2)
}

// Asum returns Σ|x[i]|. For complex kinds this is Σ(|re|+|im|), the BLAS
// definition, not the sum of moduli.
func Asum[T scalar.Scalar](x Vec[T]) (r float64, err error) {
	if err = x.check(opAsum); err != nil {
		return 0, err
	}
	defer guard(opAsum, &err)

	switch xv := any(x).(type) {
	case Vec[float64]:
		return blas64.Asum(b64v(xv)), nil
	case Vec[float32]:
		return float64(blas32.Asum(b32v(xv))), nil
	case Vec[complex128]:
		return cblas128.Asum(c128v(xv)), nil
	case Vec[complex64]:
		return float64(cblas64.Asum(c64v(xv))), nil
	}

	return 0, unsupported[T](opAsum)
}

func checkTranspose(op string, t Transpose) error {
	switch t {
	case NoTrans, Trans, ConjTrans:
		return nil
	}

	return status.New(op, status.EINVAL, "unknown transpose flag %q", rune(t))
}

// opShape returns the shape of op(A).
func opShape[T scalar.Scalar](t Transpose, a General[T]) (rows, cols int) {
	if t == NoTrans {
		return a.Rows, a.Cols
	}

	return a.Cols, a.Rows
}

// Gemv computes y = alpha*op(A)*x + beta*y.
// MAIN DESCRIPTION:
//   - op(A) is A, Aᵀ or Aᴴ per tA; x must have len(cols(op(A))) and y
//     len(rows(op(A))).
//   - y is updated in place. With beta == 0 its prior contents are ignored.
//
// Implementation:
//   - Stage 1: Validate the transpose flag and every descriptor.
//   - Stage 2: Check x and y lengths against the shape of op(A).
//   - Stage 3: Time the call under the "gemv" kernel metric and dispatch to gonum.
//
// Errors:
//   - EINVAL for an unknown tA or a malformed descriptor; EFAULT for short storage.
//   - EBADLEN when x or y does not fit op(A).
//   - EUNSUP for integer kinds.
//
// Complexity: O(rows*cols) time, O(1) extra space.
func Gemv[T scalar.Scalar](tA Transpose, alpha T, a General[T], x Vec[T], beta T, y Vec[T]) (err error) {
	if err = checkTranspose(opGemv, tA); err != nil {
		return err
	}
	if err = a.check(opGemv); err != nil {
		return err
	}
	if err = x.check(opGemv); err != nil {
		return err
	}
	if err = y.check(opGemv); err != nil {
		return err
	}
	m, n := opShape(tA, a)
	if x.N != n {
		return status.New(opGemv, status.EBADLEN, "x length %d, op(A) is %dx%d", x.N, m, n)
	}
	if y.N != m {
		return status.New(opGemv, status.EBADLEN, "y length %d, op(A) is %dx%d", y.N, m, n)
	}
	defer metrics.TimeKernel("gemv")()
	defer guard(opGemv, &err)

	switch av := any(a).(type) {
	case General[float64]:
		blas64.Gemv(tA, any(alpha).(float64), b64g(av), b64v(any(x).(Vec[float64])), any(beta).(float64), b64v(any(y).(Vec[float64])))
	case General[float32]:
		blas32.Gemv(tA, any(alpha).(float32), b32g(av), b32v(any(x).(Vec[float32])), any(beta).(float32), b32v(any(y).(Vec[float32])))
	case General[complex128]:
		cblas128.Gemv(tA, any(alpha).(complex128), c128g(av), c128v(any(x).(Vec[complex128])), any(beta).(complex128), c128v(any(y).(Vec[complex128])))
	case General[complex64]:
		cblas64.Gemv(tA, any(alpha).(complex64), c64g(av), c64v(any(x).(Vec[complex64])), any(beta).(complex64), c64v(any(y).(Vec[complex64])))
	default:
		return unsupported[T](opGemv)
	}

	return nil
}

// GemmShape returns the shape of op(A)*op(B), or ErrDimensionMismatch when
// the inner dimensions disagree.
func GemmShape[T scalar.Scalar](tA, tB Transpose, a, b General[T]) (rows, cols int, err error) {
	m, k := opShape(tA, a)
	kb, n := opShape(tB, b)
	if k != kb {
		return 0, 0, status.NewKind(opGemm, status.ErrDimensionMismatch,
			"inner dimensions differ: op(A) is %dx%d, op(B) is %dx%d", m, k, kb, n)
	}

	return m, n, nil
}

// Gemm computes C = alpha*op(A)*op(B) + beta*C.
// MAIN DESCRIPTION:
//   - op(X) is X, Xᵀ or Xᴴ per the matching flag.
//   - C must already have the shape reported by GemmShape; it is updated
//     in place. C must not share storage with A or B.
//
// Implementation:
//   - Stage 1: Validate both flags and all three descriptors.
//   - Stage 2: Resolve the product shape (GemmShape) and match it against C.
//   - Stage 3: Time the call under the "gemm" kernel metric and dispatch to gonum.
//
// Errors:
//   - EINVAL for an unknown flag or a malformed descriptor; EFAULT for short storage.
//   - ErrDimensionMismatch (EBADLEN) when inner dimensions disagree or C
//     has the wrong shape.
//   - EUNSUP for integer kinds.
//
// Determinism:
//   - Results are bit-identical across runs on the same machine; they may
//     differ in the last ulp across CPUs with different SIMD paths.
//
// Complexity: O(m*n*k) time, O(1) extra space.
func Gemm[T scalar.Scalar](tA, tB Transpose, alpha T, a, b General[T], beta T, c General[T]) (err error) {
	if err = checkTranspose(opGemm, tA); err != nil {
		return err
	}
	if err = checkTranspose(opGemm, tB); err != nil {
		return err
	}
	for _, g := range []General[T]{a, b, c} {
		if err = g.check(opGemm); err != nil {
			return err
		}
	}
	m, n, err := GemmShape(tA, tB, a, b)
	if err != nil {
		return err
	}
	if c.Rows != m || c.Cols != n {
		return status.NewKind(opGemm, status.ErrDimensionMismatch,
			"destination is %s, product is %s", c.shape(), fmt.Sprintf("%dx%d", m, n))
	}
	defer metrics.TimeKernel("gemm")()
	defer guard(opGemm, &err)

	switch av := any(a).(type) {
	case General[float64]:
		blas64.Gemm(tA, tB, any(alpha).(float64), b64g(av), b64g(any(b).(General[float64])), any(beta).(float64), b64g(any(c).(General[float64])))
	case General[float32]:
		blas32.Gemm(tA, tB, any(alpha).(float32), b32g(av), b32g(any(b).(General[float32])), any(beta).(float32), b32g(any(c).(General[float32])))
	case General[complex128]:
		cblas128.Gemm(tA, tB, any(alpha).(complex128), c128g(av), c128g(any(b).(General[complex128])), any(beta).(complex128), c128g(any(c).(General[complex128])))
	case General[complex64]:
		cblas64.Gemm(tA, tB, any(alpha).(complex64), c64g(av), c64g(any(b).(General[complex64])), any(beta).(complex64), c64g(any(c).(General[complex64])))
	default:
		return unsupported[T](opGemm)
	}

	return nil
}
