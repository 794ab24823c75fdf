// SPDX-License-Identifier: MIT

package buffer

import "github.com/apache/arrow-go/v18/arrow/memory"

// Option configures an Arena.
type Option func(*options)

type options struct {
	allocator memory.Allocator
}

// WithAllocator sets the allocator backing the arena.
// It panics on nil, which is a programmer error.
func WithAllocator(mem memory.Allocator) Option {
	if mem == nil {
		panic("buffer: WithAllocator(nil)")
	}

	return func(o *options) { o.allocator = mem }
}

// WithLimit caps the bytes the arena may hold at once. Requests beyond the
// cap fail with ErrNoMemory. It wraps whatever allocator is configured,
// so order it after WithAllocator.
func WithLimit(maxBytes int) Option {
	if maxBytes <= 0 {
		panic("buffer: WithLimit requires a positive byte count")
	}

	return func(o *options) { o.allocator = NewLimitedAllocator(o.allocator, maxBytes) }
}

func gatherOptions(opts ...Option) options {
	o := options{allocator: memory.NewGoAllocator()}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}
