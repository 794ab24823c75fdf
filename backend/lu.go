// SPDX-License-Identifier: MIT

package backend

import (
	"math"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas64"

	"github.com/katalvlaran/numcore/internal/metrics"
	"github.com/katalvlaran/numcore/status"
)

const (
	opLUDecomp = "backend.LUDecomp"
	opLUSolve  = "backend.LUSolve"
	opLUInvert = "backend.LUInvert"
)

// LUDecomp factors the square matrix a in place as P·A = L·U with partial
// pivoting: at step j the row with the largest |a[i][j]|, i >= j, is swapped
// into the pivot position (first such row on ties).
//
// On return a holds U on and above the diagonal and the unit-lower L below
// it, perm[i] is the original row now at position i, and the returned sign
// is (-1)^swaps.
//
// Errors:
//   - ENOTSQR for non-square a; EBADLEN when len(perm) != a.Rows.
//   - ESING when a column has no non-zero pivot candidate. a is left
//     partially factored and must be discarded.
//
// Complexity: O(n³) time, O(1) extra space.
func LUDecomp(a General[float64], perm []int) (sign int, err error) {
	if err = a.check(opLUDecomp); err != nil {
		return 0, err
	}
	if a.Rows != a.Cols {
		return 0, status.New(opLUDecomp, status.ENOTSQR, "LU needs a square matrix, got %s", a.shape())
	}
	n := a.Rows
	if len(perm) != n {
		return 0, status.New(opLUDecomp, status.EBADLEN, "permutation size %d, matrix size %d", len(perm), n)
	}
	defer metrics.TimeKernel("lu_decomp")()

	for i := range perm {
		perm[i] = i
	}
	sign = 1

	for j := 0; j < n-1; j++ {
		// pivot search over column j
		pivot, best := j, math.Abs(a.At(j, j))
		for i := j + 1; i < n; i++ {
			if v := math.Abs(a.At(i, j)); v > best {
				pivot, best = i, v
			}
		}
		if best == 0 {
			return sign, status.New(opLUDecomp, status.ESING, "no non-zero pivot in column %d", j)
		}
		if pivot != j {
			_ = Swap(a.Row(j), a.Row(pivot))
			perm[j], perm[pivot] = perm[pivot], perm[j]
			sign = -sign
		}

		ajj := a.At(j, j)
		rowJ := a.Row(j).Data
		for i := j + 1; i < n; i++ {
			rowI := a.Row(i).Data
			l := rowI[j] / ajj
			rowI[j] = l
			if l == 0 {
				continue
			}
			for k := j + 1; k < n; k++ {
				rowI[k] -= l * rowJ[k]
			}
		}
	}
	if a.At(n-1, n-1) == 0 {
		return sign, status.New(opLUDecomp, status.ESING, "no non-zero pivot in column %d", n-1)
	}

	return sign, nil
}

// luTriangles returns the unit-lower and upper views of a packed LU.
func luTriangles(lu General[float64]) (lower, upper blas64.Triangular) {
	lower = blas64.Triangular{Uplo: blas.Lower, Diag: blas.Unit, N: lu.Rows, Stride: lu.Stride, Data: lu.Data}
	upper = blas64.Triangular{Uplo: blas.Upper, Diag: blas.NonUnit, N: lu.Rows, Stride: lu.Stride, Data: lu.Data}

	return lower, upper
}

func checkLU(op string, lu General[float64], perm []int) error {
	if err := lu.check(op); err != nil {
		return err
	}
	if lu.Rows != lu.Cols {
		return status.New(op, status.ENOTSQR, "LU factor is %s", lu.shape())
	}
	if len(perm) != lu.Rows {
		return status.New(op, status.EBADLEN, "permutation size %d, matrix size %d", len(perm), lu.Rows)
	}
	for i := 0; i < lu.Rows; i++ {
		if lu.At(i, i) == 0 {
			return status.New(op, status.ESING, "matrix is singular: U[%d][%d] = 0", i, i)
		}
	}

	return nil
}

// LUSolve solves A·x = b from a factorization produced by LUDecomp.
// MAIN DESCRIPTION:
//   - b is read only; x receives the solution. Both must have length n.
//   - x may alias b: the permuted right-hand side is staged in a scratch slice.
//
// Implementation:
//   - Stage 1: x = P·b.
//   - Stage 2: Forward substitution with the unit-lower L (blas64.Trsv).
//   - Stage 3: Back substitution with U (blas64.Trsv).
//
// Errors:
//   - ENOTSQR / EBADLEN when lu and perm do not describe an n×n factorization.
//   - EBADLEN when b or x is not of length n.
//
// Complexity: O(n²) time, O(n) extra space.
func LUSolve(lu General[float64], perm []int, b, x Vec[float64]) (err error) {
	if err = checkLU(opLUSolve, lu, perm); err != nil {
		return err
	}
	if err = sameLen(opLUSolve, b, x); err != nil {
		return err
	}
	if b.N != lu.Rows {
		return status.New(opLUSolve, status.EBADLEN, "right-hand side length %d, matrix size %d", b.N, lu.Rows)
	}
	defer metrics.TimeKernel("lu_solve")()
	defer guard(opLUSolve, &err)

	solvePermuted(lu, perm, b, x)

	return nil
}

// solvePermuted writes P·b into x then runs the two triangular solves.
// Inputs are already validated.
func solvePermuted(lu General[float64], perm []int, b, x Vec[float64]) {
	tmp := make([]float64, len(perm))
	for i, p := range perm {
		tmp[i] = b.At(p)
	}
	for i := range tmp {
		x.Set(i, tmp[i])
	}
	lower, upper := luTriangles(lu)
	xv := blas64.Vector{N: x.N, Inc: x.Inc, Data: x.Data}
	blas64.Trsv(blas.NoTrans, lower, xv)
	blas64.Trsv(blas.NoTrans, upper, xv)
}

// LUInvert writes A⁻¹ into inv by solving against each column of the identity.
// inv must be n×n and must not share storage with lu.
//
// Errors:
//   - ENOTSQR / EBADLEN for an inconsistent factorization.
//   - ErrDimensionMismatch when inv is not n×n.
//
// Complexity: O(n³) time, O(n) extra space.
func LUInvert(lu General[float64], perm []int, inv General[float64]) (err error) {
	if err = checkLU(opLUInvert, lu, perm); err != nil {
		return err
	}
	if err = inv.check(opLUInvert); err != nil {
		return err
	}
	if inv.Rows != lu.Rows || inv.Cols != lu.Cols {
		return status.NewKind(opLUInvert, status.ErrDimensionMismatch, "inverse is %s, factor is %s", inv.shape(), lu.shape())
	}
	defer metrics.TimeKernel("lu_invert")()
	defer guard(opLUInvert, &err)

	n := lu.Rows
	e := make([]float64, n)
	for j := 0; j < n; j++ {
		for i := range e {
			e[i] = 0
		}
		e[j] = 1
		solvePermuted(lu, perm, Contiguous(e), inv.Col(j))
	}

	return nil
}

// LUDet returns det(A) = sign·Π U[i][i]. The product may overflow to ±Inf
// for large n; LULogDet does not.
func LUDet(lu General[float64], sign int) float64 {
	det := float64(sign)
	for i := 0; i < lu.Rows; i++ {
		det *= lu.At(i, i)
	}

	return det
}

// LULogDet returns ln|det(A)| and the sign of det(A) (0 when singular).
func LULogDet(lu General[float64], sign int) (float64, int) {
	logdet := 0.0
	for i := 0; i < lu.Rows; i++ {
		u := lu.At(i, i)
		if u == 0 {
			return math.Inf(-1), 0
		}
		if u < 0 {
			sign = -sign
		}
		logdet += math.Log(math.Abs(u))
	}

	return logdet, sign
}
