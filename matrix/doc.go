// SPDX-License-Identifier: MIT

// Package matrix provides dense, typed vectors and row-major matrices over
// every numcore scalar kind, with BLAS-backed products and LU-based solving.
//
// The package provides:
//
//   - Vector[T] and Matrix[T]: single-owner containers over arena buffers,
//     with checked At/Set, fluent fills, elementwise arithmetic (in place
//     and copying), ordered reductions and sign predicates.
//   - Products: Dot/Magnitude/Asum on vectors and Multiply/MulVec/Gemm
//     (with the four transpose variants) on matrices, for float and
//     complex kinds.
//   - DecomposeLU: partial-pivoting LU on Matrix[float64], returning an LU
//     value that can Solve, Invert and report the determinant.
//
// Ownership:
//
//   - Every constructor allocates from an arena (buffer.Default unless
//     WithArena is given); the caller releases with Release, usually deferred.
//   - Clone and every copying operation return an independent container the
//     caller must also release.
//   - Using a container after Release fails with status.ErrInvalidState.
//
// Errors are status errors; match them with errors.Is against the sentinels
// re-exported in errors.go.
//
// See the examples in this package for usage patterns.
package matrix
