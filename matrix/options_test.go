// SPDX-License-Identifier: MIT

package matrix_test

import (
	"testing"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/numcore/buffer"
	"github.com/katalvlaran/numcore/matrix"
)

// dirtyAllocator hands out memory pre-filled with 0xFF so that skipped
// zeroing is observable.
type dirtyAllocator struct {
	memory.Allocator
}

func (d dirtyAllocator) Allocate(size int) []byte {
	b := d.Allocator.Allocate(size)
	for i := range b {
		b[i] = 0xFF
	}

	return b
}

func dirtyArena(t *testing.T) matrix.Option {
	t.Helper()
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	a := buffer.NewArena(buffer.WithAllocator(dirtyAllocator{mem}))
	t.Cleanup(func() { mem.AssertSize(t, 0) })

	return matrix.WithArena(a)
}

func TestDefaultZeroed_Documented(t *testing.T) {
	t.Parallel()
	require.True(t, matrix.DefaultZeroed)

	opt := dirtyArena(t)
	v := owned(matrix.NewVector[uint8](3, opt))(t)
	require.Equal(t, []uint8{0, 0, 0}, values(t, v))
}

func TestWithZeroed(t *testing.T) {
	t.Parallel()
	opt := dirtyArena(t)

	tests := []struct {
		name string
		zero bool
		want []uint8
	}{
		{"cleared", true, []uint8{0, 0, 0, 0}},
		{"left as allocated", false, []uint8{0xFF, 0xFF, 0xFF, 0xFF}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v := owned(matrix.NewVector[uint8](4, opt, matrix.WithZeroed(tc.zero)))(t)
			require.Equal(t, tc.want, values(t, v))

			m := owned(matrix.NewMatrix[uint8](2, 2, opt, matrix.WithZeroed(tc.zero)))(t)
			flat, err := m.ToSlice()
			require.NoError(t, err)
			require.Equal(t, tc.want, flat)
		})
	}
}

func TestZeros_IgnoresWithZeroed(t *testing.T) {
	t.Parallel()
	opt := dirtyArena(t)

	z := owned(matrix.Zeros[float64](2, 3, opt, matrix.WithZeroed(false)))(t)
	require.Equal(t, [][]float64{{0, 0, 0}, {0, 0, 0}}, rowsOf(t, z))
	null, err := z.IsNull()
	require.NoError(t, err)
	require.True(t, null)

	_, err = matrix.Zeros[float64](0, 3, opt)
	require.ErrorIs(t, err, matrix.ErrInvalidArgument)
}

func TestWithArena_NilPanics(t *testing.T) {
	t.Parallel()
	require.Panics(t, func() { matrix.WithArena(nil) })
}
