// Package numcore is a typed, dense linear-algebra core: vectors and
// row-major matrices over twelve scalar kinds, BLAS products and LU solving,
// with explicit buffer ownership and a numeric error taxonomy.
//
// 🚀 What is numcore?
//
//	A small stack of packages, leaf first:
//		• scalar/  – the twelve element kinds (int8…uint64, float32/64, complex64/128)
//		• status/  – status codes, sentinel errors and the error handler hook
//		• buffer/  – arenas handing out owned, exactly-once-released buffers
//		• backend/ – strided kernels: elementwise, reductions, BLAS, LU
//		• matrix/  – Vector[T], Matrix[T], LU and the Solve/Inverse/Det helpers
//		• config/  – YAML + environment configuration for the CLI
//		• cmd/numcore – solve, invert, multiply, info, serve-metrics
//
// ✨ Guarantees
//
//   - Every container owns exactly one buffer; Release frees it once and any
//     later use fails with status.ErrInvalidState.
//   - Operations validate before they mutate; only LU decomposition consumes
//     its input.
//   - Errors carry the operation, a status code and the offending sizes.
//
// Quick example:
//
//	a, _ := matrix.NewMatrixFromRows([][]float64{{4, 3}, {6, 3}})
//	defer a.Release()
//	b, _ := matrix.NewVectorFrom([]float64{10, 12})
//	defer b.Release()
//	x, _ := matrix.Solve(a, b) // [1, 2]
//	defer x.Release()
//
//	go get github.com/katalvlaran/numcore/matrix
package numcore
