// SPDX-License-Identifier: MIT

// Package matrix - Vector arithmetic, products and reductions.
//
// Contract:
//   - ...InPlace methods mutate the receiver and return it for chaining.
//   - Copying methods (Add, Sub, ...) clone the receiver, apply the in-place
//     operation and return the clone; on failure the clone is released.
//   - Pairwise operations require equal lengths (ErrLengthMismatch); the
//     receiver is untouched when validation fails.

package matrix

import (
	"github.com/katalvlaran/numcore/backend"
)

const (
	opVecAdd         = "Vector.Add"
	opVecSub         = "Vector.Sub"
	opVecMul         = "Vector.Mul"
	opVecDiv         = "Vector.Div"
	opVecScale       = "Vector.Scale"
	opVecAddConstant = "Vector.AddConstant"
	opVecDot         = "Vector.Dot"
	opVecDotConj     = "Vector.DotConj"
	opVecMagnitude   = "Vector.Magnitude"
	opVecAsum        = "Vector.Asum"
	opVecMinMax      = "Vector.MinMax"
	opVecTest        = "Vector.Test"
	opVecSwap        = "Vector.SwapElements"
	opVecReverse     = "Vector.Reverse"
)

// pair borrows both operands and checks their lengths.
func (v *Vector[T]) pair(op string, other *Vector[T]) (x, y backend.Vec[T], err error) {
	if x, err = v.view(op); err != nil {
		return x, y, err
	}
	if y, err = other.view(op); err != nil {
		return x, y, err
	}
	err = validateSameLength(op, x.N, y.N)

	return x, y, err
}

// inPlace applies a pairwise kernel to v with other as the source operand.
func (v *Vector[T]) inPlace(op string, other *Vector[T], kernel func(dst, src backend.Vec[T]) error) (*Vector[T], error) {
	x, y, err := v.pair(op, other)
	if err != nil {
		return nil, err
	}
	if err = kernel(x, y); err != nil {
		return nil, err
	}

	return v, nil
}

// derive clones v and applies f to the clone.
func (v *Vector[T]) derive(f func(*Vector[T]) (*Vector[T], error)) (*Vector[T], error) {
	out, err := v.Clone()
	if err != nil {
		return nil, err
	}
	if _, err = f(out); err != nil {
		_ = out.Release()
		return nil, err
	}

	return out, nil
}

// AddInPlace computes v[i] += other[i].
func (v *Vector[T]) AddInPlace(other *Vector[T]) (*Vector[T], error) {
	return v.inPlace(opVecAdd, other, backend.Add[T])
}

// SubInPlace computes v[i] -= other[i].
func (v *Vector[T]) SubInPlace(other *Vector[T]) (*Vector[T], error) {
	return v.inPlace(opVecSub, other, backend.Sub[T])
}

// MulInPlace computes v[i] *= other[i].
func (v *Vector[T]) MulInPlace(other *Vector[T]) (*Vector[T], error) {
	return v.inPlace(opVecMul, other, backend.Mul[T])
}

// DivInPlace computes v[i] /= other[i].
// For integer kinds a zero divisor fails with ErrZeroDivision before any
// element is written. Float kinds follow IEEE-754.
func (v *Vector[T]) DivInPlace(other *Vector[T]) (*Vector[T], error) {
	return v.inPlace(opVecDiv, other, backend.Div[T])
}

// ScaleInPlace computes v[i] *= a.
func (v *Vector[T]) ScaleInPlace(a T) (*Vector[T], error) {
	x, err := v.view(opVecScale)
	if err != nil {
		return nil, err
	}
	if err = backend.Scale(x, a); err != nil {
		return nil, err
	}

	return v, nil
}

// AddConstantInPlace computes v[i] += a.
func (v *Vector[T]) AddConstantInPlace(a T) (*Vector[T], error) {
	x, err := v.view(opVecAddConstant)
	if err != nil {
		return nil, err
	}
	if err = backend.AddConstant(x, a); err != nil {
		return nil, err
	}

	return v, nil
}

// Add returns a fresh v + other.
func (v *Vector[T]) Add(other *Vector[T]) (*Vector[T], error) {
	if _, _, err := v.pair(opVecAdd, other); err != nil {
		return nil, err
	}

	return v.derive(func(out *Vector[T]) (*Vector[T], error) { return out.AddInPlace(other) })
}

// Sub returns a fresh v - other.
func (v *Vector[T]) Sub(other *Vector[T]) (*Vector[T], error) {
	if _, _, err := v.pair(opVecSub, other); err != nil {
		return nil, err
	}

	return v.derive(func(out *Vector[T]) (*Vector[T], error) { return out.SubInPlace(other) })
}

// Mul returns a fresh elementwise product.
func (v *Vector[T]) Mul(other *Vector[T]) (*Vector[T], error) {
	if _, _, err := v.pair(opVecMul, other); err != nil {
		return nil, err
	}

	return v.derive(func(out *Vector[T]) (*Vector[T], error) { return out.MulInPlace(other) })
}

// Div returns a fresh elementwise quotient.
func (v *Vector[T]) Div(other *Vector[T]) (*Vector[T], error) {
	if _, _, err := v.pair(opVecDiv, other); err != nil {
		return nil, err
	}

	return v.derive(func(out *Vector[T]) (*Vector[T], error) { return out.DivInPlace(other) })
}

// Scale returns a fresh a*v.
func (v *Vector[T]) Scale(a T) (*Vector[T], error) {
	return v.derive(func(out *Vector[T]) (*Vector[T], error) { return out.ScaleInPlace(a) })
}

// AddConstant returns a fresh v + a.
func (v *Vector[T]) AddConstant(a T) (*Vector[T], error) {
	return v.derive(func(out *Vector[T]) (*Vector[T], error) { return out.AddConstantInPlace(a) })
}

// Dot returns Σ v[i]*other[i]. Complex kinds are not conjugated; see DotConj.
//
// Errors:
//   - ErrLengthMismatch for different lengths.
//   - ErrUnsupported for integer kinds.
func (v *Vector[T]) Dot(other *Vector[T]) (T, error) {
	var zero T
	x, y, err := v.pair(opVecDot, other)
	if err != nil {
		return zero, err
	}

	return backend.Dot(x, y)
}

// DotConj returns Σ conj(v[i])*other[i]; equal to Dot for real kinds.
func (v *Vector[T]) DotConj(other *Vector[T]) (T, error) {
	var zero T
	x, y, err := v.pair(opVecDotConj, other)
	if err != nil {
		return zero, err
	}

	return backend.DotConj(x, y)
}

// Magnitude is the Euclidean norm. Floating kinds only.
func (v *Vector[T]) Magnitude() (float64, error) {
	x, err := v.view(opVecMagnitude)
	if err != nil {
		return 0, err
	}

	return backend.Nrm2(x)
}

// Asum is Σ|v[i]| (Σ|re|+|im| for complex kinds). Floating kinds only.
func (v *Vector[T]) Asum() (float64, error) {
	x, err := v.view(opVecAsum)
	if err != nil {
		return 0, err
	}

	return backend.Asum(x)
}

// MinMaxIndex returns the positions of the smallest and largest elements.
// Ties resolve to the first position; complex kinds fail with ErrUnsupported.
func (v *Vector[T]) MinMaxIndex() (imin, imax int, err error) {
	x, err := v.view(opVecMinMax)
	if err != nil {
		return 0, 0, err
	}
	if err = requireReal(opVecMinMax, v.kind); err != nil {
		return 0, 0, err
	}

	return backend.MinMaxIndex(x)
}

// MinIndex returns the position of the smallest element.
func (v *Vector[T]) MinIndex() (int, error) {
	imin, _, err := v.MinMaxIndex()
	return imin, err
}

// MaxIndex returns the position of the largest element.
func (v *Vector[T]) MaxIndex() (int, error) {
	_, imax, err := v.MinMaxIndex()
	return imax, err
}

// MinMax returns the smallest and largest elements.
func (v *Vector[T]) MinMax() (lo, hi T, err error) {
	imin, imax, err := v.MinMaxIndex()
	if err != nil {
		return lo, hi, err
	}

	return v.RawAt(imin), v.RawAt(imax), nil
}

// Min returns the smallest element.
func (v *Vector[T]) Min() (T, error) {
	lo, _, err := v.MinMax()
	return lo, err
}

// Max returns the largest element.
func (v *Vector[T]) Max() (T, error) {
	_, hi, err := v.MinMax()
	return hi, err
}

func (v *Vector[T]) test(p backend.Predicate) (bool, error) {
	x, err := v.view(opVecTest)
	if err != nil {
		return false, err
	}

	return backend.Test(x, p), nil
}

// IsNull reports whether every element is zero.
func (v *Vector[T]) IsNull() (bool, error) { return v.test(backend.IsNull) }

// IsPos reports whether every element is strictly positive.
func (v *Vector[T]) IsPos() (bool, error) { return v.test(backend.IsPos) }

// IsNeg reports whether every element is strictly negative.
func (v *Vector[T]) IsNeg() (bool, error) { return v.test(backend.IsNeg) }

// IsNonNeg reports whether every element is >= 0.
func (v *Vector[T]) IsNonNeg() (bool, error) { return v.test(backend.IsNonNeg) }

// SwapElements exchanges elements i and j.
func (v *Vector[T]) SwapElements(i, j int) (*Vector[T], error) {
	x, err := v.view(opVecSwap)
	if err != nil {
		return nil, err
	}
	if err = backend.SwapElements(x, i, j); err != nil {
		return nil, err
	}

	return v, nil
}

// Reverse reverses the element order in place.
func (v *Vector[T]) Reverse() (*Vector[T], error) {
	x, err := v.view(opVecReverse)
	if err != nil {
		return nil, err
	}
	backend.Reverse(x)

	return v, nil
}
