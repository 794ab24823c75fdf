// SPDX-License-Identifier: MIT

package matrix_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/numcore/matrix"
)

func TestMultiply_MatrixByMatrix(t *testing.T) {
	t.Parallel()
	opt := arenaOpt(t)
	a := MustMatrix(t, opt, row(1.0, 2, 3), row(4.0, 5, 6), row(7.0, 8, 9), row(10.0, 11, 12))
	b := MustMatrix(t, opt, row(-2.0), row(1.0), row(0.0))

	res, err := a.Multiply(b)
	require.NoError(t, err)
	prod, ok := res.(*matrix.Matrix[float64])
	require.True(t, ok)
	release(t, prod)
	require.Equal(t, [][]float64{{0}, {-3}, {-6}, {-9}}, rowsOf(t, prod))
}

func TestMultiply_MatrixByVector(t *testing.T) {
	t.Parallel()
	opt := arenaOpt(t)
	a := MustMatrix(t, opt, row(1.0, 2, 3), row(4.0, 5, 6))
	x := MustVector(t, opt, 1.0, 0, -1)

	res, err := a.Multiply(x)
	require.NoError(t, err)
	y, ok := res.(*matrix.Vector[float64])
	require.True(t, ok)
	release(t, y)
	require.Equal(t, []float64{-2, -2}, values(t, y))

	_, err = a.MulVec(MustVector(t, opt, 1.0, 2))
	require.ErrorIs(t, err, matrix.ErrLengthMismatch)
}

func TestMultiply_ErrorYieldsNilOperand(t *testing.T) {
	t.Parallel()
	opt := arenaOpt(t)
	a := MustMatrix(t, opt, row(1.0, 2, 3), row(4.0, 5, 6))

	res, err := a.Multiply(MustMatrix(t, opt, row(1.0, 2, 3), row(4.0, 5, 6)))
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	require.True(t, res == nil, "a failed product must be a nil Operand, got %#v", res)

	res, err = a.Multiply(MustVector(t, opt, 1.0, 2))
	require.ErrorIs(t, err, matrix.ErrLengthMismatch)
	require.True(t, res == nil, "a failed product must be a nil Operand, got %#v", res)
}

func TestMultiply_UnknownOperand(t *testing.T) {
	t.Parallel()
	opt := arenaOpt(t)
	a := MustMatrix(t, opt, row(1.0))

	tests := []struct {
		name  string
		other matrix.Operand
	}{
		{"nil", nil},
		{"other kind", MustVector[float32](t, opt, 1)},
		{"other matrix kind", MustMatrix(t, opt, row[int8](1))},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := a.Multiply(tc.other)
			require.ErrorIs(t, err, matrix.ErrInvalidArgument)
			require.ErrorContains(t, err, "don't know how to multiply by")
		})
	}
}

func TestGemm_TransposeVariants(t *testing.T) {
	t.Parallel()
	opt := arenaOpt(t)
	a := MustMatrix(t, opt, row(1.0, 2, 3), row(4.0, 5, 6)) // 2x3
	b := MustMatrix(t, opt, row(7.0, 8), row(9.0, 10), row(11.0, 12))
	aT := owned(a.Transpose())(t) // 3x2
	bT := owned(b.Transpose())(t) // 2x3
	want := [][]float64{{58, 64}, {139, 154}}

	tests := []struct {
		name string
		op   func() (*matrix.Matrix[float64], error)
	}{
		{"MulMatrix", func() (*matrix.Matrix[float64], error) { return a.MulMatrix(b) }},
		{"TransMul", func() (*matrix.Matrix[float64], error) { return aT.TransMul(b) }},
		{"MulTrans", func() (*matrix.Matrix[float64], error) { return a.MulTrans(bT) }},
		{"TransMulTrans", func() (*matrix.Matrix[float64], error) { return aT.TransMulTrans(bT) }},
		{"Gemm", func() (*matrix.Matrix[float64], error) { return aT.Gemm(matrix.Trans, matrix.Trans, bT) }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := owned(tc.op())(t)
			require.Equal(t, want, rowsOf(t, got))
		})
	}
}

func TestGemm_ShapeRules(t *testing.T) {
	t.Parallel()
	opt := arenaOpt(t)
	a := MustMatrix(t, opt, row(1.0, 2, 3), row(4.0, 5, 6)) // 2x3

	// aᵀ·a is 3x3, a·aᵀ is 2x2
	ata := owned(a.TransMul(a))(t)
	r, c := ata.Size()
	require.Equal(t, [2]int{3, 3}, [2]int{r, c})
	aat := owned(a.MulTrans(a))(t)
	r, c = aat.Size()
	require.Equal(t, [2]int{2, 2}, [2]int{r, c})
	require.Equal(t, [][]float64{{14, 32}, {32, 77}}, rowsOf(t, aat))

	_, err := a.MulMatrix(a)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = a.TransMulTrans(a)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
}

func TestGemm_ComplexConjTrans(t *testing.T) {
	t.Parallel()
	opt := arenaOpt(t)
	a := MustMatrix(t, opt, row(1i, 2), row(0, 1-1i))

	// aᴴ·a is Hermitian with the squared column norms on the diagonal
	got := owned(a.Gemm(matrix.ConjTrans, matrix.NoTrans, a))(t)
	require.Equal(t, [][]complex128{{1, -2i}, {2i, 6}}, rowsOf(t, got))
}

func TestProducts_UnsupportedForIntegers(t *testing.T) {
	t.Parallel()
	opt := arenaOpt(t)
	a := MustMatrix(t, opt, row[int32](1, 2), row[int32](3, 4))

	_, err := a.MulMatrix(a)
	require.ErrorIs(t, err, matrix.ErrUnsupported)
	_, err = a.MulVec(MustVector[int32](t, opt, 1, 1))
	require.ErrorIs(t, err, matrix.ErrUnsupported)
}
