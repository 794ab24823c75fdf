// SPDX-License-Identifier: MIT

package scalar

// Integer matches the eight fixed-width integer kinds.
type Integer interface {
	~int8 | ~uint8 | ~int16 | ~uint16 | ~int32 | ~uint32 | ~int64 | ~uint64
}

// Float matches the real floating kinds.
type Float interface {
	~float32 | ~float64
}

// Complex matches the complex kinds.
type Complex interface {
	~complex64 | ~complex128
}

// Real matches every ordered kind.
type Real interface {
	Integer | Float
}

// Scalar matches every kind a container can hold.
type Scalar interface {
	Real | Complex
}

// KindOf returns the tag for the type parameter T.
// Named types (type Celsius float64) are not registered and yield Invalid.
func KindOf[T Scalar]() Kind {
	var zero T
	switch any(zero).(type) {
	case int8:
		return Int8
	case uint8:
		return Uint8
	case int16:
		return Int16
	case uint16:
		return Uint16
	case int32:
		return Int32
	case uint32:
		return Uint32
	case int64:
		return Int64
	case uint64:
		return Uint64
	case float32:
		return Float32
	case float64:
		return Float64
	case complex64:
		return Complex64
	case complex128:
		return Complex128
	}

	return Invalid
}
