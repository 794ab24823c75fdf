// SPDX-License-Identifier: MIT

package buffer

import (
	"unsafe"

	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/katalvlaran/numcore/scalar"
	"github.com/katalvlaran/numcore/status"
)

// Element is any type a Buffer can hold: container scalars plus the machine
// ints used by permutations.
type Element interface {
	scalar.Scalar | ~int | ~uint
}

// Buffer is a typed, single-owner block of count elements.
// Copying the Buffer value does not copy ownership: exactly one holder calls Release.
type Buffer[T Element] struct {
	arena *Arena
	h     Handle
	n     int
}

// New allocates count elements of T from a (Default() when nil).
// With zero set, the block is cleared before it is returned.
func New[T Element](a *Arena, count int, zero bool) (*Buffer[T], error) {
	if a == nil {
		a = Default()
	}
	var t T
	h, err := a.Alloc(count, int(unsafe.Sizeof(t)))
	if err != nil {
		return nil, err
	}
	b := &Buffer[T]{arena: a, h: h, n: count}
	if zero {
		raw, err := a.Bytes(h)
		if err != nil {
			_ = a.Release(h)
			return nil, err
		}
		memory.Set(raw, 0)
	}

	return b, nil
}

// Len is the element count.
func (b *Buffer[T]) Len() int { return b.n }

// Handle is the arena handle of the block.
func (b *Buffer[T]) Handle() Handle { return b.h }

// Arena is the arena the block belongs to.
func (b *Buffer[T]) Arena() *Arena { return b.arena }

// Slice borrows the elements for the duration of one operation.
// It fails with ErrInvalidState once the buffer has been released.
func (b *Buffer[T]) Slice() ([]T, error) {
	if b == nil || b.arena == nil {
		return nil, status.NewKind("Buffer.Slice", status.ErrInvalidState, "nil buffer")
	}
	raw, err := b.arena.Bytes(b.h)
	if err != nil {
		return nil, err
	}

	return unsafe.Slice((*T)(unsafe.Pointer(unsafe.SliceData(raw))), b.n), nil
}

// Released reports whether Release has already succeeded.
func (b *Buffer[T]) Released() bool {
	return b == nil || b.arena == nil || !b.arena.Valid(b.h)
}

// Release returns the block to its arena. Only the first call succeeds;
// later calls fail with ErrInvalidState.
func (b *Buffer[T]) Release() error {
	if b == nil || b.arena == nil {
		return status.NewKind("Buffer.Release", status.ErrInvalidState, "nil buffer")
	}

	return b.arena.Release(b.h)
}

// Clone allocates an independent copy in the same arena.
func (b *Buffer[T]) Clone() (*Buffer[T], error) {
	src, err := b.Slice()
	if err != nil {
		return nil, err
	}
	out, err := New[T](b.arena, b.n, false)
	if err != nil {
		return nil, err
	}
	dst, err := out.Slice()
	if err != nil {
		_ = out.Release()
		return nil, err
	}
	copy(dst, src)

	return out, nil
}
