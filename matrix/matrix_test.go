// SPDX-License-Identifier: MIT

package matrix_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/numcore/matrix"
	"github.com/katalvlaran/numcore/scalar"
)

func TestNewMatrix_Shapes(t *testing.T) {
	t.Parallel()
	opt := arenaOpt(t)

	m := owned(matrix.NewMatrix[float32](2, 3, opt))(t)
	r, c := m.Size()
	require.Equal(t, 2, r)
	require.Equal(t, 3, c)
	require.Equal(t, 2, m.Rows())
	require.Equal(t, 3, m.Cols())
	require.Equal(t, 3, m.TDA())
	require.Equal(t, scalar.Float32, m.Kind())
	require.Equal(t, matrix.Fresh, m.State())
	require.False(t, m.Factored())
	require.Equal(t, [][]float32{{0, 0, 0}, {0, 0, 0}}, rowsOf(t, m))

	for _, shape := range [][2]int{{0, 3}, {3, 0}, {0, 0}, {-1, 2}} {
		_, err := matrix.NewMatrix[float64](shape[0], shape[1], opt)
		require.ErrorIs(t, err, matrix.ErrInvalidArgument, "shape %v", shape)
	}
}

func TestNewMatrix_ElementCountOverflow(t *testing.T) {
	t.Parallel()
	opt := arenaOpt(t)

	tests := []struct {
		name  string
		build func() (*matrix.Matrix[float64], error)
	}{
		{"NewMatrix", func() (*matrix.Matrix[float64], error) { return matrix.NewMatrix[float64](1<<62+1, 4, opt) }},
		{"NewMatrix square", func() (*matrix.Matrix[float64], error) { return matrix.NewMatrix[float64](1<<32, 1<<32, opt) }},
		{"Zeros", func() (*matrix.Matrix[float64], error) { return matrix.Zeros[float64](math.MaxInt, 2, opt) }},
		// 4 values would match the wrapped product (1<<62+1)*4
		{"NewMatrixFrom", func() (*matrix.Matrix[float64], error) {
			return matrix.NewMatrixFrom([]float64{1, 2, 3, 4}, 1<<62+1, 4, opt)
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m, err := tc.build()
			require.ErrorIs(t, err, matrix.ErrAllocationFailure)
			require.Nil(t, m)
		})
	}
}

func TestNewMatrixFrom_RoundTrip(t *testing.T) {
	t.Parallel()
	opt := arenaOpt(t)

	flat := []int64{1, 2, 3, 4, 5, 6}
	m := owned(matrix.NewMatrixFrom(flat, 2, 3, opt))(t)
	got, err := m.ToSlice()
	require.NoError(t, err)
	require.Equal(t, flat, got)
	require.Equal(t, [][]int64{{1, 2, 3}, {4, 5, 6}}, rowsOf(t, m))
	cols, err := m.ToCols()
	require.NoError(t, err)
	require.Equal(t, [][]int64{{1, 4}, {2, 5}, {3, 6}}, cols)

	_, err = matrix.NewMatrixFrom(flat, 4, 2, opt)
	require.ErrorIs(t, err, matrix.ErrLengthMismatch)
	_, err = matrix.NewMatrixFrom(flat, 0, 6, opt)
	require.ErrorIs(t, err, matrix.ErrInvalidArgument)
}

func TestNewMatrixFromRows_Validation(t *testing.T) {
	t.Parallel()
	opt := arenaOpt(t)

	_, err := matrix.NewMatrixFromRows([][]float64{}, opt)
	require.ErrorIs(t, err, matrix.ErrInvalidArgument)
	_, err = matrix.NewMatrixFromRows([][]float64{{}}, opt)
	require.ErrorIs(t, err, matrix.ErrInvalidArgument)
	_, err = matrix.NewMatrixFromRows([][]float64{{1, 2}, {3}}, opt)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	in := [][]complex64{{1 + 1i, 2}, {3, 4 - 1i}}
	require.Equal(t, in, rowsOf(t, MustMatrix(t, opt, in...)))
}

func TestMatrix_CheckedAccess(t *testing.T) {
	t.Parallel()
	m := MustMatrix(t, arenaOpt(t), row(1.0, 2), row(3.0, 4))

	v, err := m.At(1, 0)
	require.NoError(t, err)
	require.Equal(t, 3.0, v)
	require.NoError(t, m.Set(1, 0, 30))
	require.Equal(t, 30.0, m.RawAt(1, 0))

	for _, rc := range [][2]int{{-1, 0}, {0, -1}, {2, 0}, {0, 2}} {
		_, err = m.At(rc[0], rc[1])
		require.ErrorIs(t, err, matrix.ErrIndexOutOfRange, "At%v", rc)
		require.ErrorIs(t, m.Set(rc[0], rc[1], 0), matrix.ErrIndexOutOfRange, "Set%v", rc)
	}
}

func TestMatrix_SetIdentity(t *testing.T) {
	t.Parallel()
	opt := arenaOpt(t)

	m := owned(matrix.NewMatrix[float64](3, 3, opt))(t)
	_, err := m.SetIdentity()
	require.NoError(t, err)
	require.Equal(t, [][]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}, rowsOf(t, m))

	rect := owned(matrix.NewMatrix[int8](2, 3, opt))(t)
	_, err = rect.SetAll(9)
	require.NoError(t, err)
	_, err = rect.SetIdentity()
	require.NoError(t, err)
	require.Equal(t, [][]int8{{1, 0, 0}, {0, 1, 0}}, rowsOf(t, rect))

	_, err = rect.SetZero()
	require.NoError(t, err)
	null, err := rect.IsNull()
	require.NoError(t, err)
	require.True(t, null)

	id := owned(matrix.Identity[complex128](2, opt))(t)
	require.Equal(t, [][]complex128{{1, 0}, {0, 1}}, rowsOf(t, id))
}

func TestMatrix_ElementwiseIdentity(t *testing.T) {
	t.Parallel()
	opt := arenaOpt(t)

	t.Run("float64", func(t *testing.T) {
		a := MustMatrix(t, opt, row(0.3, -1.5), row(2.0, 1e-7))
		b := MustMatrix(t, opt, row(1.1, 2.2), row(-3.3, 4.4))
		back := owned(owned(a.Add(b))(t).Sub(b))(t)
		ok, err := matrix.AllClose(a, back, 0, tol)
		require.NoError(t, err)
		require.True(t, ok)
	})
	t.Run("uint32", func(t *testing.T) {
		a := MustMatrix(t, opt, row[uint32](1, 2), row[uint32](3, 4))
		b := MustMatrix(t, opt, row[uint32](10, 20), row[uint32](30, 40))
		back := owned(owned(a.Add(b))(t).Sub(b))(t)
		require.True(t, a.Equal(back))
	})
}

func TestMatrix_ElementwiseOps(t *testing.T) {
	t.Parallel()
	opt := arenaOpt(t)
	a := MustMatrix(t, opt, row(2.0, 4), row(6.0, 8))
	b := MustMatrix(t, opt, row(1.0, 2), row(3.0, 4))

	require.Equal(t, [][]float64{{2, 8}, {18, 32}}, rowsOf(t, owned(a.MulElements(b))(t)))
	require.Equal(t, [][]float64{{2, 2}, {2, 2}}, rowsOf(t, owned(a.DivElements(b))(t)))
	require.Equal(t, [][]float64{{1, 2}, {3, 4}}, rowsOf(t, owned(a.Scale(0.5))(t)))
	require.Equal(t, [][]float64{{3, 5}, {7, 9}}, rowsOf(t, owned(a.AddConstant(1))(t)))
	require.Equal(t, [][]float64{{2, 4}, {6, 8}}, rowsOf(t, a), "copying ops leave the receiver untouched")

	_, err := a.SubInPlace(b)
	require.NoError(t, err)
	_, err = a.MulElementsInPlace(b)
	require.NoError(t, err)
	require.Equal(t, [][]float64{{1, 4}, {9, 16}}, rowsOf(t, a))
	_, err = a.DivElementsInPlace(b)
	require.NoError(t, err)
	_, err = a.AddInPlace(b)
	require.NoError(t, err)
	_, err = a.ScaleInPlace(2)
	require.NoError(t, err)
	_, err = a.AddConstantInPlace(-1)
	require.NoError(t, err)
	require.Equal(t, [][]float64{{3, 7}, {11, 15}}, rowsOf(t, a))
}

func TestMatrix_ShapeMismatch(t *testing.T) {
	t.Parallel()
	opt := arenaOpt(t)
	a := MustMatrix(t, opt, row(1.0, 2), row(3.0, 4))
	b := MustMatrix(t, opt, row(1.0, 2, 3))

	tests := []struct {
		name string
		op   func() error
	}{
		{"Add", func() error { _, err := a.Add(b); return err }},
		{"Sub", func() error { _, err := a.Sub(b); return err }},
		{"MulElements", func() error { _, err := a.MulElements(b); return err }},
		{"DivElements", func() error { _, err := a.DivElements(b); return err }},
		{"AddInPlace", func() error { _, err := a.AddInPlace(b); return err }},
		{"SubInPlace", func() error { _, err := a.SubInPlace(b); return err }},
		{"MulElementsInPlace", func() error { _, err := a.MulElementsInPlace(b); return err }},
		{"DivElementsInPlace", func() error { _, err := a.DivElementsInPlace(b); return err }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.op()
			require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
			require.ErrorIs(t, err, matrix.ErrLengthMismatch)
		})
	}
	require.Equal(t, [][]float64{{1, 2}, {3, 4}}, rowsOf(t, a))
}

func TestMatrix_IntegerZeroDivision(t *testing.T) {
	t.Parallel()
	opt := arenaOpt(t)
	a := MustMatrix(t, opt, row[int16](4, 8), row[int16](12, 16))
	b := MustMatrix(t, opt, row[int16](2, 2), row[int16](0, 2))

	_, err := a.DivElementsInPlace(b)
	require.ErrorIs(t, err, matrix.ErrZeroDivision)
	require.Equal(t, [][]int16{{4, 8}, {12, 16}}, rowsOf(t, a))
}

func TestMatrix_TransposeInvolution(t *testing.T) {
	t.Parallel()
	opt := arenaOpt(t)
	m := MustMatrix(t, opt, row(1.0, 2, 3), row(4.0, 5, 6))

	tr := owned(m.Transpose())(t)
	require.Equal(t, [][]float64{{1, 4}, {2, 5}, {3, 6}}, rowsOf(t, tr))
	back := owned(tr.Transpose())(t)
	require.True(t, m.Equal(back))

	_, err := m.TransposeInPlace()
	require.ErrorIs(t, err, matrix.ErrNotSquare)
	require.Equal(t, [][]float64{{1, 2, 3}, {4, 5, 6}}, rowsOf(t, m))

	sq := MustMatrix(t, opt, row[int32](1, 2), row[int32](3, 4))
	_, err = sq.TransposeInPlace()
	require.NoError(t, err)
	require.Equal(t, [][]int32{{1, 3}, {2, 4}}, rowsOf(t, sq))
}

func TestMatrix_MinMax(t *testing.T) {
	t.Parallel()
	opt := arenaOpt(t)
	m := MustMatrix(t, opt, row(5.0, -2, 9), row(-2.0, 9, 0))

	lo, hi, err := m.MinMax()
	require.NoError(t, err)
	require.Equal(t, -2.0, lo)
	require.Equal(t, 9.0, hi)

	minR, minC, maxR, maxC, err := m.MinMaxIndex()
	require.NoError(t, err)
	require.Equal(t, [4]int{0, 1, 0, 2}, [4]int{minR, minC, maxR, maxC}, "ties resolve row-major first")

	r, c, err := m.MinIndex()
	require.NoError(t, err)
	require.Equal(t, [2]int{0, 1}, [2]int{r, c})
	r, c, err = m.MaxIndex()
	require.NoError(t, err)
	require.Equal(t, [2]int{0, 2}, [2]int{r, c})

	mn, err := m.Min()
	require.NoError(t, err)
	require.Equal(t, -2.0, mn)
	mx, err := m.Max()
	require.NoError(t, err)
	require.Equal(t, 9.0, mx)

	_, _, err = MustMatrix(t, opt, row(1i)).MinMax()
	require.ErrorIs(t, err, matrix.ErrUnsupported)
}

func TestMatrix_Predicates(t *testing.T) {
	t.Parallel()
	opt := arenaOpt(t)
	m := MustMatrix(t, opt, row(1.0, 2), row(0.0, 3))

	pos, err := m.IsPos()
	require.NoError(t, err)
	assert.False(t, pos)
	nonneg, err := m.IsNonNeg()
	require.NoError(t, err)
	assert.True(t, nonneg)
	neg, err := m.IsNeg()
	require.NoError(t, err)
	assert.False(t, neg)
}

func TestMatrix_RowsAndCols(t *testing.T) {
	t.Parallel()
	opt := arenaOpt(t)
	m := MustMatrix(t, opt, row(1.0, 2, 3), row(4.0, 5, 6))

	r1 := owned(m.Row(1))(t)
	require.Equal(t, []float64{4, 5, 6}, values(t, r1))
	c2 := owned(m.Col(2))(t)
	require.Equal(t, []float64{3, 6}, values(t, c2))

	require.NoError(t, r1.Set(0, 40))
	require.Equal(t, 4.0, m.RawAt(1, 0), "Row returns a copy")

	_, err := m.SetRow(0, MustVector(t, opt, 7.0, 8, 9))
	require.NoError(t, err)
	_, err = m.SetCol(0, MustVector(t, opt, -1.0, -2))
	require.NoError(t, err)
	require.Equal(t, [][]float64{{-1, 8, 9}, {-2, 5, 6}}, rowsOf(t, m))

	_, err = m.SetRow(0, MustVector(t, opt, 1.0))
	require.ErrorIs(t, err, matrix.ErrLengthMismatch)
	_, err = m.Row(2)
	require.ErrorIs(t, err, matrix.ErrIndexOutOfRange)
	_, err = m.Col(-1)
	require.ErrorIs(t, err, matrix.ErrIndexOutOfRange)

	_, err = m.SwapRows(0, 1)
	require.NoError(t, err)
	require.Equal(t, [][]float64{{-2, 5, 6}, {-1, 8, 9}}, rowsOf(t, m))
}

func TestMatrix_CloneAndString(t *testing.T) {
	t.Parallel()
	opt := arenaOpt(t)
	m := MustMatrix(t, opt, row(1.0, 2), row(3.0, 4))

	c := owned(m.Clone())(t)
	require.True(t, m.Equal(c))
	require.NoError(t, c.Set(0, 0, 100))
	require.Equal(t, 1.0, m.RawAt(0, 0), "clone never aliases the source")

	require.Equal(t, "[1, 2]\n[3, 4]\n", m.String())
}

func TestMatrix_ReleaseExactlyOnce(t *testing.T) {
	t.Parallel()
	m, err := matrix.NewMatrix[float64](2, 2, arenaOpt(t))
	require.NoError(t, err)

	require.NoError(t, m.Release())
	require.True(t, m.Released())
	require.ErrorIs(t, m.Release(), matrix.ErrInvalidState)
	_, err = m.At(0, 0)
	require.ErrorIs(t, err, matrix.ErrInvalidState)
	_, err = m.Transpose()
	require.ErrorIs(t, err, matrix.ErrInvalidState)
	require.Equal(t, "[released]\n", m.String())
}
