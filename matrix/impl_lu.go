// SPDX-License-Identifier: MIT

// Package matrix - LU decomposition with partial pivoting (P·A = L·U).
//
// Purpose:
//   - Turn a Fresh Matrix[float64] into an LU value that owns the factors
//     and the row permutation.
//   - Solve linear systems and invert without refactoring.
//
// Lifecycle:
//   - DecomposeLU marks the matrix Factored and factors it in place. From
//     then on the matrix is owned by the LU; LU.Release frees both.
//   - On a decomposition failure no LU is returned and the matrix stays
//     Factored with partial factors: the caller releases it.
//
// Complexity:
//   - DecomposeLU O(n³); Solve O(n²); Invert O(n³); Det O(n).

package matrix

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/numcore/backend"
	"github.com/katalvlaran/numcore/buffer"
	"github.com/katalvlaran/numcore/status"
)

const (
	opDecomposeLU = "DecomposeLU"
	opLUSolve     = "LU.Solve"
	opLUSolveInto = "LU.SolveInto"
	opLUInvert    = "LU.Invert"
	opLUDet       = "LU.Det"
	opLURelease   = "LU.Release"
	opPermGet     = "Permutation.Get"
	opPermApply   = "Permutation.Apply"
)

// Permutation is the row permutation of an LU factorization: row i of the
// factors came from row Get(i) of the original matrix.
type Permutation struct {
	size int
	idx  *buffer.Buffer[int]
}

func newPermutation(op string, n int, a *buffer.Arena) (*Permutation, error) {
	idx, err := buffer.New[int](a, n, false)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Permutation{size: n, idx: idx}, nil
}

func (p *Permutation) slice(op string) ([]int, error) {
	if p == nil || p.idx == nil {
		return nil, status.NewKind(op, status.ErrInvalidState, "nil permutation")
	}
	s, err := p.idx.Slice()
	if err != nil {
		return nil, status.NewKind(op, status.ErrInvalidState, "permutation used after Release")
	}

	return s, nil
}

// Len is the permutation size.
func (p *Permutation) Len() int { return p.size }

// Get returns the original row index now at position i.
func (p *Permutation) Get(i int) (int, error) {
	s, err := p.slice(opPermGet)
	if err != nil {
		return 0, err
	}
	if err = validateIndex(opPermGet, i, p.size); err != nil {
		return 0, err
	}

	return s[i], nil
}

// ToSlice returns a copy of the indices.
func (p *Permutation) ToSlice() ([]int, error) {
	s, err := p.slice(opPermGet)
	if err != nil {
		return nil, err
	}

	return append([]int(nil), s...), nil
}

// Apply returns a fresh vector out with out[i] = v[Get(i)], i.e. P·v.
func (p *Permutation) Apply(v *Vector[float64]) (*Vector[float64], error) {
	s, err := p.slice(opPermApply)
	if err != nil {
		return nil, err
	}
	x, err := v.view(opPermApply)
	if err != nil {
		return nil, err
	}
	if err = validateSameLength(opPermApply, x.N, p.size); err != nil {
		return nil, err
	}
	out, err := newVector[float64](opPermApply, p.size, options{arena: v.arena()})
	if err != nil {
		return nil, err
	}
	y, _ := out.view(opPermApply)
	for i, src := range s {
		y.Set(i, x.At(src))
	}

	return out, nil
}

func (p *Permutation) release() error {
	if p == nil || p.idx == nil {
		return nil
	}

	return p.idx.Release()
}

// LU is a factored Matrix[float64] with its permutation and sign.
type LU struct {
	m    *Matrix[float64]
	perm *Permutation
	sign int
}

// DecomposeLU factors the square matrix m in place with partial pivoting.
// MAIN DESCRIPTION:
//   - At step j the row with the largest |a[i][j]| (i >= j) becomes the
//     pivot row; ties keep the first such row.
//   - The returned LU owns m; do not Release m separately.
//
// Implementation:
//   - Stage 1: Validate that m is square and still Fresh.
//   - Stage 2: Allocate the permutation from m's arena and mark m Factored.
//   - Stage 3: Run backend.LUDecomp on m's storage; on failure free the
//     permutation and return no LU.
//
// Errors:
//   - ErrNotSquare for rectangular input (m stays Fresh).
//   - ErrInvalidState when m is already factored or released.
//   - ErrSingularity when a column has no non-zero pivot. m is left
//     Factored with partial factors and must be released by the caller.
//
// Complexity: O(n³) time, O(n) extra space for the permutation.
func DecomposeLU(m *Matrix[float64]) (*LU, error) {
	g, err := m.fresh(opDecomposeLU)
	if err != nil {
		return nil, err
	}
	if m.rows != m.cols {
		return nil, status.New(opDecomposeLU, status.ENOTSQR, "LU needs a square matrix, got %dx%d", m.rows, m.cols)
	}
	perm, err := newPermutation(opDecomposeLU, m.rows, m.arena())
	if err != nil {
		return nil, err
	}
	idx, _ := perm.slice(opDecomposeLU)

	m.state = Factored
	sign, err := backend.LUDecomp(g, idx)
	if err != nil {
		_ = perm.release()
		return nil, err
	}

	return &LU{m: m, perm: perm, sign: sign}, nil
}

func (lu *LU) parts(op string) (backend.General[float64], []int, error) {
	if lu == nil || lu.m == nil {
		return backend.General[float64]{}, nil, status.NewKind(op, status.ErrInvalidState, "nil LU")
	}
	g, err := lu.m.general(op)
	if err != nil {
		return g, nil, err
	}
	idx, err := lu.perm.slice(op)

	return g, idx, err
}

// Size is the order n of the factored n×n matrix.
func (lu *LU) Size() int { return lu.m.rows }

// Sign is (-1)^(row swaps): +1 or -1.
func (lu *LU) Sign() int { return lu.sign }

// Permutation exposes the row permutation (read only).
func (lu *LU) Permutation() *Permutation { return lu.perm }

// Matrix exposes the packed factors: U on and above the diagonal, the
// unit-lower L below it. The matrix is Factored; arithmetic on it fails.
func (lu *LU) Matrix() *Matrix[float64] { return lu.m }

// Solve returns a fresh x with A·x = b. b is not modified.
//
// Errors:
//   - ErrLengthMismatch when b.Len() != Size().
//   - ErrInvalidState after Release, or when b has been released.
//
// Complexity: O(n²) time, O(n) space for the result.
func (lu *LU) Solve(b *Vector[float64]) (*Vector[float64], error) {
	bv, err := b.view(opLUSolve)
	if err != nil {
		return nil, err
	}
	if _, _, err = lu.parts(opLUSolve); err != nil {
		return nil, err
	}
	if err = validateSameLength(opLUSolve, bv.N, lu.Size()); err != nil {
		return nil, err
	}
	x, err := newVector[float64](opLUSolve, bv.N, options{arena: lu.m.arena()})
	if err != nil {
		return nil, err
	}
	if err = lu.SolveInto(b, x); err != nil {
		_ = x.Release()
		return nil, err
	}

	return x, nil
}

// SolveInto writes the solution of A·x = b into x, which may be b itself.
// Neither vector is resized: both must already have length Size(), else
// ErrLengthMismatch. x is untouched on any error.
func (lu *LU) SolveInto(b, x *Vector[float64]) error {
	g, idx, err := lu.parts(opLUSolveInto)
	if err != nil {
		return err
	}
	bv, err := b.view(opLUSolveInto)
	if err != nil {
		return err
	}
	xv, err := x.view(opLUSolveInto)
	if err != nil {
		return err
	}

	return backend.LUSolve(g, idx, bv, xv)
}

// Invert returns a fresh A⁻¹, built by solving against each column of the
// identity. Prefer Solve when only A⁻¹·b is needed: it is cheaper and more
// accurate.
//
// Errors:
//   - ErrInvalidState after Release.
//   - ErrAllocationFailure when the arena cannot hold the n×n result.
//
// Complexity: O(n³) time, O(n²) space for the result.
func (lu *LU) Invert() (*Matrix[float64], error) {
	g, idx, err := lu.parts(opLUInvert)
	if err != nil {
		return nil, err
	}
	n := lu.Size()
	out, err := newMatrix[float64](opLUInvert, n, n, options{arena: lu.m.arena()})
	if err != nil {
		return nil, err
	}
	inv, _ := out.general(opLUInvert)
	if err = backend.LUInvert(g, idx, inv); err != nil {
		_ = out.Release()
		return nil, err
	}

	return out, nil
}

// Det returns det(A) = sign·Π U[i][i]; 0 after Release.
func (lu *LU) Det() float64 {
	g, _, err := lu.parts(opLUDet)
	if err != nil {
		return 0
	}

	return backend.LUDet(g, lu.sign)
}

// LogDet returns ln|det(A)| and the sign of det(A). Use it when Det would
// overflow. After Release it returns (0, 0).
func (lu *LU) LogDet() (float64, int) {
	g, _, err := lu.parts(opLUDet)
	if err != nil {
		return 0, 0
	}

	return backend.LULogDet(g, lu.sign)
}

// Release frees the factors and the permutation. Only the first call
// succeeds; later calls return ErrInvalidState.
func (lu *LU) Release() error {
	if lu == nil || lu.m == nil {
		return status.NewKind(opLURelease, status.ErrInvalidState, "nil LU")
	}

	return errors.Join(lu.m.Release(), lu.perm.release())
}
