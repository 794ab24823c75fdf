// SPDX-License-Identifier: MIT

package backend

import (
	"github.com/viterin/vek"
	"github.com/viterin/vek/vek32"

	"github.com/katalvlaran/numcore/scalar"
	"github.com/katalvlaran/numcore/status"
)

// operation tags.
const (
	opFill        = "backend.Fill"
	opCopy        = "backend.Copy"
	opSwap        = "backend.Swap"
	opAdd         = "backend.Add"
	opSub         = "backend.Sub"
	opMul         = "backend.Mul"
	opDiv         = "backend.Div"
	opScale       = "backend.Scale"
	opAddConstant = "backend.AddConstant"
	opSwapElem    = "backend.SwapElements"
	opIdentity    = "backend.SetIdentity"
	opTranspose   = "backend.Transpose"
)

// binaryKind selects one of the four pairwise operations.
type binaryKind uint8

const (
	kindAdd binaryKind = iota
	kindSub
	kindMul
	kindDiv
)

var binaryOps = [...]string{kindAdd: opAdd, kindSub: opSub, kindMul: opMul, kindDiv: opDiv}

// Fill sets every element of x to v.
func Fill[T scalar.Scalar](x Vec[T], v T) error {
	if err := x.check(opFill); err != nil {
		return err
	}
	if d, ok := x.dense(); ok {
		for i := range d {
			d[i] = v
		}
		return nil
	}
	for i := 0; i < x.N; i++ {
		x.Set(i, v)
	}

	return nil
}

// Copy copies src into dst; lengths must match.
func Copy[T scalar.Scalar](dst, src Vec[T]) error {
	if err := sameLen(opCopy, dst, src); err != nil {
		return err
	}
	if d, ok := dst.dense(); ok {
		if s, ok := src.dense(); ok {
			copy(d, s)
			return nil
		}
	}
	for i := 0; i < dst.N; i++ {
		dst.Set(i, src.At(i))
	}

	return nil
}

// Swap exchanges the contents of x and y.
func Swap[T scalar.Scalar](x, y Vec[T]) error {
	if err := sameLen(opSwap, x, y); err != nil {
		return err
	}
	for i := 0; i < x.N; i++ {
		a, b := x.At(i), y.At(i)
		x.Set(i, b)
		y.Set(i, a)
	}

	return nil
}

// Add computes dst += src.
func Add[T scalar.Scalar](dst, src Vec[T]) error { return binary(kindAdd, dst, src) }

// Sub computes dst -= src.
func Sub[T scalar.Scalar](dst, src Vec[T]) error { return binary(kindSub, dst, src) }

// Mul computes dst *= src elementwise.
func Mul[T scalar.Scalar](dst, src Vec[T]) error { return binary(kindMul, dst, src) }

// Div computes dst /= src elementwise. For integer kinds a zero anywhere in
// src fails with ErrZeroDivision before dst is touched; float kinds follow IEEE-754.
func Div[T scalar.Scalar](dst, src Vec[T]) error { return binary(kindDiv, dst, src) }

func binary[T scalar.Scalar](k binaryKind, dst, src Vec[T]) error {
	op := binaryOps[k]
	if err := sameLen(op, dst, src); err != nil {
		return err
	}
	if k == kindDiv {
		if err := checkDivisor(op, src); err != nil {
			return err
		}
	}
	if vekBinary(k, dst, src) {
		return nil
	}
	applyBinary(k, dst, src)

	return nil
}

func applyBinary[T scalar.Scalar](k binaryKind, dst, src Vec[T]) {
	switch k {
	case kindAdd:
		for i := 0; i < dst.N; i++ {
			dst.Set(i, dst.At(i)+src.At(i))
		}
	case kindSub:
		for i := 0; i < dst.N; i++ {
			dst.Set(i, dst.At(i)-src.At(i))
		}
	case kindMul:
		for i := 0; i < dst.N; i++ {
			dst.Set(i, dst.At(i)*src.At(i))
		}
	case kindDiv:
		for i := 0; i < dst.N; i++ {
			dst.Set(i, dst.At(i)/src.At(i))
		}
	}
}

// checkDivisor rejects integer zero divisors up front so a failed Div
// leaves dst untouched.
func checkDivisor[T scalar.Scalar](op string, src Vec[T]) error {
	if !scalar.KindOf[T]().IsInteger() {
		return nil
	}
	for i := 0; i < src.N; i++ {
		if src.At(i) == 0 {
			return status.New(op, status.EZERODIV, "divisor element %d is zero", i)
		}
	}

	return nil
}

// vekBinary runs the SIMD kernels for unit-stride float operands.
func vekBinary[T scalar.Scalar](k binaryKind, dst, src Vec[T]) bool {
	d, ok := dst.dense()
	if !ok {
		return false
	}
	s, ok := src.dense()
	if !ok {
		return false
	}
	switch dd := any(d).(type) {
	case []float64:
		ss := any(s).([]float64)
		switch k {
		case kindAdd:
			vek.Add_Inplace(dd, ss)
		case kindSub:
			vek.Sub_Inplace(dd, ss)
		case kindMul:
			vek.Mul_Inplace(dd, ss)
		case kindDiv:
			vek.Div_Inplace(dd, ss)
		}
		return true
	case []float32:
		ss := any(s).([]float32)
		switch k {
		case kindAdd:
			vek32.Add_Inplace(dd, ss)
		case kindSub:
			vek32.Sub_Inplace(dd, ss)
		case kindMul:
			vek32.Mul_Inplace(dd, ss)
		case kindDiv:
			vek32.Div_Inplace(dd, ss)
		}
		return true
	}

	return false
}

// Scale computes x *= a.
func Scale[T scalar.Scalar](x Vec[T], a T) error {
	if err := x.check(opScale); err != nil {
		return err
	}
	if d, ok := x.dense(); ok {
		switch dd := any(d).(type) {
		case []float64:
			vek.MulNumber_Inplace(dd, any(a).(float64))
			return nil
		case []float32:
			vek32.MulNumber_Inplace(dd, any(a).(float32))
			return nil
		}
	}
	for i := 0; i < x.N; i++ {
		x.Set(i, x.At(i)*a)
	}

	return nil
}

// AddConstant computes x += a.
func AddConstant[T scalar.Scalar](x Vec[T], a T) error {
	if err := x.check(opAddConstant); err != nil {
		return err
	}
	if d, ok := x.dense(); ok {
		switch dd := any(d).(type) {
		case []float64:
			vek.AddNumber_Inplace(dd, any(a).(float64))
			return nil
		case []float32:
			vek32.AddNumber_Inplace(dd, any(a).(float32))
			return nil
		}
	}
	for i := 0; i < x.N; i++ {
		x.Set(i, x.At(i)+a)
	}

	return nil
}

// SwapElements exchanges elements i and j of x.
func SwapElements[T scalar.Scalar](x Vec[T], i, j int) error {
	if err := x.check(opSwapElem); err != nil {
		return err
	}
	if i < 0 || i >= x.N || j < 0 || j >= x.N {
		return status.NewKind(opSwapElem, status.ErrIndexOutOfRange, "indices (%d,%d) outside [0,%d)", i, j, x.N)
	}
	if i != j {
		a := x.At(i)
		x.Set(i, x.At(j))
		x.Set(j, a)
	}

	return nil
}

// Reverse reverses x in place.
func Reverse[T scalar.Scalar](x Vec[T]) {
	for i, j := 0, x.N-1; i < j; i, j = i+1, j-1 {
		a := x.At(i)
		x.Set(i, x.At(j))
		x.Set(j, a)
	}
}

// Predicate classifies a vector or matrix by the sign of its elements.
type Predicate uint8

const (
	IsNull   Predicate = iota // every element is zero
	IsPos                     // every element is > 0
	IsNeg                     // every element is < 0
	IsNonNeg                  // every element is >= 0
)

// Test evaluates p over x. Complex elements are tested component-wise:
// both the real and the imaginary part must satisfy the condition.
func Test[T scalar.Scalar](x Vec[T], p Predicate) bool {
	for i := 0; i < x.N; i++ {
		re, im := parts(x.At(i))
		if !holds(p, re) {
			return false
		}
		if scalar.KindOf[T]().IsComplex() && !holds(p, im) {
			return false
		}
	}

	return true
}

func holds(p Predicate, v float64) bool {
	switch p {
	case IsNull:
		return v == 0
	case IsPos:
		return v > 0
	case IsNeg:
		return v < 0
	default:
		return v >= 0
	}
}

// parts returns the real and imaginary parts of v as float64.
// Sign is preserved for every integer kind.
func parts[T scalar.Scalar](v T) (float64, float64) {
	switch x := any(v).(type) {
	case int8:
		return float64(x), 0
	case uint8:
		return float64(x), 0
	case int16:
		return float64(x), 0
	case uint16:
		return float64(x), 0
	case int32:
		return float64(x), 0
	case uint32:
		return float64(x), 0
	case int64:
		return float64(x), 0
	case uint64:
		return float64(x), 0
	case float32:
		return float64(x), 0
	case float64:
		return x, 0
	case complex64:
		return float64(real(x)), float64(imag(x))
	case complex128:
		return real(x), imag(x)
	}

	return 0, 0
}
