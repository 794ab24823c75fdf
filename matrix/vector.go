// SPDX-License-Identifier: MIT

// Package matrix - Vector[T]: typed, strided 1D container over an arena buffer.
//
// Purpose:
//   - Own exactly one buffer.Buffer[T]; element i lives at offset i*stride.
//   - Guarantee safety at the public surface: At/Set return errors instead of panicking.
//   - Delegate every numeric loop to the backend kernels via a borrowed backend.Vec.
//
// Complexity quicksheet:
//   - NewVector: O(n) when zeroed; At/Set: O(1); Clone/ToSlice: O(n).

package matrix

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/numcore/backend"
	"github.com/katalvlaran/numcore/buffer"
	"github.com/katalvlaran/numcore/scalar"
	"github.com/katalvlaran/numcore/status"
)

// ---------- error context tags ----------

const (
	opNewVector     = "NewVector"
	opNewVectorFrom = "NewVectorFrom"
	opVecAt         = "Vector.At"
	opVecSet        = "Vector.Set"
	opVecSetAll     = "Vector.SetAll"
	opVecSetBasis   = "Vector.SetBasis"
	opVecToSlice    = "Vector.ToSlice"
	opVecEach       = "Vector.Each"
	opVecClone      = "Vector.Clone"
	opVecRelease    = "Vector.Release"
)

// ---------- Formatting literals ----------

const (
	_fmtRowOpen  = "["
	_fmtRowClose = "]"
	_fmtSep      = ", "
)

// Vector is a dense, strided vector of T.
//   - length is the element count (> 0).
//   - stride is the distance between consecutive elements (>= 1; 1 for fresh vectors).
//   - buf owns the storage; the Vector is its single owner.
type Vector[T scalar.Scalar] struct {
	length int
	stride int
	buf    *buffer.Buffer[T]
	kind   scalar.Kind
}

var _ fmt.Stringer = (*Vector[float64])(nil)

// NewVector allocates a vector of n elements, zeroed unless WithZeroed(false).
//
// Errors:
//   - ErrInvalidArgument for n <= 0 or an unregistered element type.
//   - ErrAllocationFailure when the arena cannot provide storage.
func NewVector[T scalar.Scalar](n int, opts ...Option) (*Vector[T], error) {
	return newVector[T](opNewVector, n, gatherOptions(opts...))
}

// NewVectorFrom allocates a vector holding a copy of values.
// An empty input is ErrInvalidArgument.
func NewVectorFrom[T scalar.Scalar](values []T, opts ...Option) (*Vector[T], error) {
	o := gatherOptions(opts...)
	o.zeroed = false
	v, err := newVector[T](opNewVectorFrom, len(values), o)
	if err != nil {
		return nil, err
	}
	data, _ := v.buf.Slice()
	copy(data, values)

	return v, nil
}

func newVector[T scalar.Scalar](op string, n int, o options) (*Vector[T], error) {
	k, err := validateKind[T](op)
	if err != nil {
		return nil, err
	}
	if err = validateLength(op, n); err != nil {
		return nil, err
	}
	buf, err := buffer.New[T](o.arena, n, o.zeroed)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Vector[T]{length: n, stride: 1, buf: buf, kind: k}, nil
}

// view borrows the storage as a backend descriptor for one call.
// A nil or released vector fails with ErrInvalidState.
func (v *Vector[T]) view(op string) (backend.Vec[T], error) {
	if v == nil || v.buf == nil {
		return backend.Vec[T]{}, status.NewKind(op, status.ErrInvalidState, "nil vector")
	}
	data, err := v.buf.Slice()
	if err != nil {
		return backend.Vec[T]{}, fmt.Errorf("%s: %w", op, err)
	}

	return backend.Vec[T]{N: v.length, Inc: v.stride, Data: data}, nil
}

// arena returns the arena results derived from v are allocated in.
func (v *Vector[T]) arena() *buffer.Arena { return v.buf.Arena() }

// Len is the element count.
func (v *Vector[T]) Len() int { return v.length }

// Stride is the storage distance between consecutive elements.
func (v *Vector[T]) Stride() int { return v.stride }

// Kind is the scalar tag of T.
func (v *Vector[T]) Kind() scalar.Kind { return v.kind }

// At returns element i. ErrIndexOutOfRange unless 0 <= i < Len().
func (v *Vector[T]) At(i int) (T, error) {
	var zero T
	x, err := v.view(opVecAt)
	if err != nil {
		return zero, err
	}
	if err = validateIndex(opVecAt, i, v.length); err != nil {
		return zero, err
	}

	return x.At(i), nil
}

// Set stores val at i. ErrIndexOutOfRange unless 0 <= i < Len().
func (v *Vector[T]) Set(i int, val T) error {
	x, err := v.view(opVecSet)
	if err != nil {
		return err
	}
	if err = validateIndex(opVecSet, i, v.length); err != nil {
		return err
	}
	x.Set(i, val)

	return nil
}

// RawAt is the unchecked accessor for hot loops.
// It panics when i is out of range or the vector was released.
func (v *Vector[T]) RawAt(i int) T {
	data, _ := v.buf.Slice()
	return data[i*v.stride]
}

// RawSet is the unchecked counterpart of Set; it panics like RawAt.
func (v *Vector[T]) RawSet(i int, val T) {
	data, _ := v.buf.Slice()
	data[i*v.stride] = val
}

// SetAll stores val in every element and returns v for chaining.
func (v *Vector[T]) SetAll(val T) (*Vector[T], error) {
	x, err := v.view(opVecSetAll)
	if err != nil {
		return nil, err
	}
	if err = backend.Fill(x, val); err != nil {
		return nil, err
	}

	return v, nil
}

// SetZero clears every element.
func (v *Vector[T]) SetZero() (*Vector[T], error) {
	var zero T
	return v.SetAll(zero)
}

// SetBasis makes v the i-th unit basis vector: 1 at i, 0 elsewhere.
func (v *Vector[T]) SetBasis(i int) (*Vector[T], error) {
	x, err := v.view(opVecSetBasis)
	if err != nil {
		return nil, err
	}
	if err = validateIndex(opVecSetBasis, i, v.length); err != nil {
		return nil, err
	}
	var zero T
	if err = backend.Fill(x, zero); err != nil {
		return nil, err
	}
	x.Set(i, 1)

	return v, nil
}

// ToSlice returns a snapshot copy of the elements.
func (v *Vector[T]) ToSlice() ([]T, error) {
	x, err := v.view(opVecToSlice)
	if err != nil {
		return nil, err
	}
	out := make([]T, v.length)
	for i := range out {
		out[i] = x.At(i)
	}

	return out, nil
}

// Each calls fn for every element in index order.
func (v *Vector[T]) Each(fn func(i int, val T)) error {
	x, err := v.view(opVecEach)
	if err != nil {
		return err
	}
	for i := 0; i < v.length; i++ {
		fn(i, x.At(i))
	}

	return nil
}

// Clone returns an independent copy in the same arena.
func (v *Vector[T]) Clone() (*Vector[T], error) {
	x, err := v.view(opVecClone)
	if err != nil {
		return nil, err
	}
	out, err := newVector[T](opVecClone, v.length, options{arena: v.arena()})
	if err != nil {
		return nil, err
	}
	dst, _ := out.view(opVecClone)
	if err = backend.Copy(dst, x); err != nil {
		_ = out.Release()
		return nil, err
	}

	return out, nil
}

// Equal reports whether other has the same length and elements.
// Released vectors are never equal.
func (v *Vector[T]) Equal(other *Vector[T]) bool {
	x, err := v.view(opVecToSlice)
	if err != nil {
		return false
	}
	y, err := other.view(opVecToSlice)
	if err != nil || x.N != y.N {
		return false
	}
	for i := 0; i < x.N; i++ {
		if x.At(i) != y.At(i) {
			return false
		}
	}

	return true
}

// String renders the elements as "[a, b, c]".
func (v *Vector[T]) String() string {
	x, err := v.view(opVecToSlice)
	if err != nil {
		return "[released]"
	}
	var sb strings.Builder
	sb.WriteString(_fmtRowOpen)
	for i := 0; i < x.N; i++ {
		if i > 0 {
			sb.WriteString(_fmtSep)
		}
		fmt.Fprint(&sb, x.At(i))
	}
	sb.WriteString(_fmtRowClose)

	return sb.String()
}

// Released reports whether the storage has been returned to the arena.
func (v *Vector[T]) Released() bool { return v == nil || v.buf.Released() }

// Release returns the storage to its arena. Only the first call succeeds.
func (v *Vector[T]) Release() error {
	if v == nil || v.buf == nil {
		return status.NewKind(opVecRelease, status.ErrInvalidState, "nil vector")
	}

	return v.buf.Release()
}
