// SPDX-License-Identifier: MIT
// Package matrix_test contains test helpers
//
// Purpose:
//   - Provide small, deterministic fixtures for containers and kernels.
//   - Run every test against its own leak-checked arena so a missing
//     Release fails the test that caused it.

package matrix_test

import (
	"testing"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/numcore/buffer"
	"github.com/katalvlaran/numcore/matrix"
	"github.com/katalvlaran/numcore/scalar"
)

// Tolerance used for float64 comparisons throughout the package tests.
const tol = 1e-9

// arenaOpt returns a WithArena option over a CheckedAllocator and registers
// a cleanup asserting that every byte went back to the allocator.
func arenaOpt(t *testing.T) matrix.Option {
	t.Helper()
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	a := buffer.NewArena(buffer.WithAllocator(mem))
	t.Cleanup(func() { mem.AssertSize(t, 0) })

	return matrix.WithArena(a)
}

// release registers Release for c as a test cleanup. Cleanups run LIFO, so
// containers are released before the arena leak check fires.
func release(t *testing.T, c matrix.Operand) {
	t.Helper()
	t.Cleanup(func() { require.NoError(t, c.Release()) })
}

// MustVector ALLOCATES a vector holding values or fails the test.
// The vector is released at cleanup.
func MustVector[T scalar.Scalar](t *testing.T, opt matrix.Option, values ...T) *matrix.Vector[T] {
	t.Helper()
	v, err := matrix.NewVectorFrom(values, opt)
	require.NoError(t, err)
	release(t, v)

	return v
}

// MustMatrix ALLOCATES a matrix from nested rows or fails the test.
// The matrix is released at cleanup.
func MustMatrix[T scalar.Scalar](t *testing.T, opt matrix.Option, rows ...[]T) *matrix.Matrix[T] {
	t.Helper()
	m, err := matrix.NewMatrixFromRows(rows, opt)
	require.NoError(t, err)
	release(t, m)

	return m
}

// owned takes the (container, error) pair of an operation and returns a
// func that asserts success and registers the container for cleanup.
//
//	sum := owned(a.Add(b))(t)
func owned[C matrix.Operand](c C, err error) func(t *testing.T) C {
	return func(t *testing.T) C {
		t.Helper()
		require.NoError(t, err)
		release(t, c)

		return c
	}
}

// values snapshots a vector.
func values[T scalar.Scalar](t *testing.T, v *matrix.Vector[T]) []T {
	t.Helper()
	out, err := v.ToSlice()
	require.NoError(t, err)

	return out
}

// rowsOf snapshots a matrix.
func rowsOf[T scalar.Scalar](t *testing.T, m *matrix.Matrix[T]) [][]T {
	t.Helper()
	out, err := m.ToRows()
	require.NoError(t, err)

	return out
}

// row is a literal helper for nested-row fixtures.
func row[T scalar.Scalar](xs ...T) []T { return xs }
