// SPDX-License-Identifier: MIT

package buffer

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/apache/arrow-go/v18/arrow/memory"
)

// Allocator names accepted by NewAllocator.
const (
	AllocatorGo     = "go"
	AllocatorNative = "native"
)

// NewAllocator resolves a configured allocator name.
func NewAllocator(name string) (memory.Allocator, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", AllocatorGo:
		return memory.NewGoAllocator(), nil
	case AllocatorNative:
		return NewNativeAllocator(), nil
	}

	return nil, fmt.Errorf("buffer: unknown allocator %q", name)
}

// LimitedAllocator fails allocations that would push the outstanding total
// past a fixed budget. A failed Allocate returns nil.
type LimitedAllocator struct {
	mem   memory.Allocator
	limit int64
	used  atomic.Int64
}

// NewLimitedAllocator wraps mem with a byte budget.
func NewLimitedAllocator(mem memory.Allocator, limit int) *LimitedAllocator {
	return &LimitedAllocator{mem: mem, limit: int64(limit)}
}

// Allocate implements memory.Allocator.
func (l *LimitedAllocator) Allocate(size int) []byte {
	if l.used.Add(int64(size)) > l.limit {
		l.used.Add(-int64(size))
		return nil
	}

	return l.mem.Allocate(size)
}

// Reallocate implements memory.Allocator.
func (l *LimitedAllocator) Reallocate(size int, b []byte) []byte {
	delta := int64(size - len(b))
	if l.used.Add(delta) > l.limit {
		l.used.Add(-delta)
		return nil
	}

	return l.mem.Reallocate(size, b)
}

// Free implements memory.Allocator.
func (l *LimitedAllocator) Free(b []byte) {
	l.used.Add(-int64(len(b)))
	l.mem.Free(b)
}

// Used is the number of outstanding bytes.
func (l *LimitedAllocator) Used() int { return int(l.used.Load()) }

var _ memory.Allocator = (*LimitedAllocator)(nil)
