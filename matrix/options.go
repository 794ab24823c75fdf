// SPDX-License-Identifier: MIT

// Package matrix: functional configuration for container constructors.
//
// Design goals:
//   - No dead switches: each option changes allocation behaviour and is
//     covered by tests.
//   - Safe by construction: panic only on nonsensical values (programmer error).

package matrix

import "github.com/katalvlaran/numcore/buffer"

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultZeroed clears fresh storage. Disable it only when every element
	// is about to be overwritten.
	DefaultZeroed = true
)

// Option customises a constructor.
type Option func(*options)

type options struct {
	arena  *buffer.Arena
	zeroed bool
}

// WithArena allocates from a instead of buffer.Default().
// Panics on nil.
func WithArena(a *buffer.Arena) Option {
	if a == nil {
		panic("matrix: WithArena(nil)")
	}

	return func(o *options) { o.arena = a }
}

// WithZeroed controls whether fresh storage is cleared.
func WithZeroed(zero bool) Option {
	return func(o *options) { o.zeroed = zero }
}

func gatherOptions(opts ...Option) options {
	o := options{zeroed: DefaultZeroed}
	for _, opt := range opts {
		opt(&o)
	}
	if o.arena == nil {
		o.arena = buffer.Default()
	}

	return o
}
