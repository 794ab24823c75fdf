// SPDX-License-Identifier: MIT

package matrix_test

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/numcore/matrix"
)

// ExampleVector_Dot shows the level-1 BLAS reductions on a float64 vector.
func ExampleVector_Dot() {
	a, _ := matrix.NewVectorFrom([]float64{1, 2, 3})
	defer a.Release()
	b, _ := matrix.NewVectorFrom([]float64{4, 5, 6})
	defer b.Release()

	dot, _ := a.Dot(b)
	asum, _ := a.Asum()
	fmt.Println("dot:", dot)
	fmt.Println("asum:", asum)

	// Output:
	// dot: 32
	// asum: 6
}

// ExampleMatrix_Multiply dispatches on the operand: matrix or vector.
func ExampleMatrix_Multiply() {
	a, _ := matrix.NewMatrixFromRows([][]float64{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}, {10, 11, 12}})
	defer a.Release()
	b, _ := matrix.NewMatrixFromRows([][]float64{{-2}, {1}, {0}})
	defer b.Release()
	x, _ := matrix.NewVectorFrom([]float64{1, 1, 1})
	defer x.Release()

	ab, _ := a.Multiply(b)
	defer ab.Release()
	fmt.Print(ab)

	ax, _ := a.Multiply(x)
	defer ax.Release()
	fmt.Println(ax)

	_, err := a.Multiply(nil)
	fmt.Println(errors.Is(err, matrix.ErrInvalidArgument))

	// Output:
	// [0]
	// [-3]
	// [-6]
	// [-9]
	// [6, 15, 24, 33]
	// true
}

// ExampleDecomposeLU factors once and solves against a right-hand side.
func ExampleDecomposeLU() {
	m, _ := matrix.NewMatrixFromRows([][]float64{
		{0.18, 0.60, 0.57, 0.96},
		{0.41, 0.24, 0.99, 0.58},
		{0.14, 0.30, 0.97, 0.66},
		{0.51, 0.13, 0.19, 0.85},
	})
	lu, err := matrix.DecomposeLU(m) // lu now owns m
	if err != nil {
		fmt.Println(err)
		return
	}
	defer lu.Release()

	b, _ := matrix.NewVectorFrom([]float64{1, 2, 3, 4})
	defer b.Release()
	x, _ := lu.Solve(b)
	defer x.Release()

	xs, _ := x.ToSlice()
	fmt.Printf("x = [%.3f %.3f %.3f %.3f]\n", xs[0], xs[1], xs[2], xs[3])
	fmt.Println("factored:", m.Factored())

	// Output:
	// x = [-4.052 -12.606 1.661 8.694]
	// factored: true
}

// ExampleNewMatrix shows that zero-sized construction is rejected.
func ExampleNewMatrix() {
	_, err := matrix.NewMatrix[float64](0, 3)
	fmt.Println(errors.Is(err, matrix.ErrInvalidArgument))

	m, _ := matrix.NewMatrix[int32](2, 3)
	defer m.Release()
	_, _ = m.SetIdentity()
	fmt.Print(m)

	// Output:
	// true
	// [1, 0, 0]
	// [0, 1, 0]
}
