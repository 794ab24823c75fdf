// SPDX-License-Identifier: MIT

// Package buffer owns the storage behind numcore vectors and matrices.
//
// Purpose:
//   - Hand out contiguous blocks from a pluggable arrow memory.Allocator
//     (Go heap, anonymous mmap, or a checked/limited wrapper in tests).
//   - Track every block in an Arena slot addressed by a generation-checked
//     Handle, so a block is released exactly once and stale handles are
//     rejected instead of touching recycled memory.
//   - Expose typed, borrow-only views (Buffer[T].Slice) for the duration of
//     a single operation.
//
// Release is explicit. Callers pair every successful allocation with a
// Release, typically via defer; nothing relies on finalizers.
//
// Complexity quicksheet:
//   - Alloc/Release/Bytes: O(1) amortised (slot reuse is FIFO).
//   - Close: O(slots).
package buffer

import (
	"fmt"
	"math"
	"sync"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/eapache/queue"
	"github.com/google/uuid"

	"github.com/katalvlaran/numcore/internal/logger"
	"github.com/katalvlaran/numcore/internal/metrics"
	"github.com/katalvlaran/numcore/status"
)

// operation tags used in raised errors.
const (
	opAlloc   = "Arena.Alloc"
	opRelease = "Arena.Release"
	opBytes   = "Arena.Bytes"
)

// Handle addresses one allocation inside an Arena. The zero Handle is never valid.
type Handle struct {
	index uint32
	gen   uint32
}

// IsZero reports whether h is the zero Handle.
func (h Handle) IsZero() bool { return h.gen == 0 }

func (h Handle) String() string { return fmt.Sprintf("#%d@%d", h.index, h.gen) }

type slot struct {
	data []byte
	gen  uint32 // generation of the current (or next) occupant; starts at 1
	live bool
}

// Arena tracks allocations made through one allocator.
// An Arena is safe for concurrent use; the blocks it hands out are not.
type Arena struct {
	mu    sync.Mutex
	id    uuid.UUID
	mem   memory.Allocator
	slots []slot
	free  *queue.Queue // of uint32 slot indices
	live  int
	bytes int
	done  bool
	log   *logger.Logger
}

// NewArena creates an empty arena. Without options it allocates from the Go heap.
func NewArena(opts ...Option) *Arena {
	o := gatherOptions(opts...)
	a := &Arena{
		id:   uuid.New(),
		mem:  o.allocator,
		free: queue.New(),
	}
	a.log = logger.Log.With("arena", a.id.String())
	a.log.Debug("arena created", "allocator", fmt.Sprintf("%T", a.mem))

	return a
}

// ID identifies the arena in logs.
func (a *Arena) ID() uuid.UUID { return a.id }

// Allocator returns the allocator backing the arena.
func (a *Arena) Allocator() memory.Allocator { return a.mem }

// Alloc reserves count*elemSize bytes.
//
// Errors:
//   - ErrInvalid when count or elemSize is not positive.
//   - ErrNoMemory when the size overflows or the allocator cannot satisfy it.
//   - ErrInvalidState when the arena is closed.
func (a *Arena) Alloc(count, elemSize int) (Handle, error) {
	if count <= 0 || elemSize <= 0 {
		return Handle{}, status.New(opAlloc, status.EINVAL, "count=%d elemSize=%d must be positive", count, elemSize)
	}
	if count > math.MaxInt/elemSize {
		metrics.RecordAllocFailure()
		return Handle{}, status.New(opAlloc, status.ENOMEM, "count=%d elemSize=%d overflows", count, elemSize)
	}
	n := count * elemSize

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.done {
		return Handle{}, status.NewKind(opAlloc, status.ErrInvalidState, "arena %s is closed", a.id)
	}

	data := a.allocate(n)
	if len(data) < n {
		metrics.RecordAllocFailure()
		return Handle{}, status.New(opAlloc, status.ENOMEM, "allocator could not provide %d bytes", n)
	}
	data = data[:n:n]

	var idx uint32
	if a.free.Length() > 0 {
		idx = a.free.Remove().(uint32)
	} else {
		a.slots = append(a.slots, slot{gen: 1})
		idx = uint32(len(a.slots) - 1)
	}
	s := &a.slots[idx]
	s.data = data
	s.live = true
	a.live++
	a.bytes += n
	metrics.RecordAlloc(n)

	return Handle{index: idx, gen: s.gen}, nil
}

// allocate calls the allocator, converting a panic (Go heap exhaustion,
// checked allocator receiving nil) into an empty result.
func (a *Arena) allocate(n int) (out []byte) {
	defer func() {
		if r := recover(); r != nil {
			a.log.Warn("allocator panicked", "bytes", n, "panic", fmt.Sprint(r))
			out = nil
		}
	}()

	return a.mem.Allocate(n)
}

// lookup resolves h under a.mu.
func (a *Arena) lookup(op string, h Handle) (*slot, error) {
	if h.IsZero() || int(h.index) >= len(a.slots) {
		return nil, status.NewKind(op, status.ErrInvalidState, "handle %s does not belong to arena", h)
	}
	s := &a.slots[h.index]
	if !s.live || s.gen != h.gen {
		return nil, status.NewKind(op, status.ErrInvalidState, "handle %s already released", h)
	}

	return s, nil
}

// Release frees the block behind h. A second Release of the same handle
// fails with ErrInvalidState and has no effect.
func (a *Arena) Release(h Handle) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	s, err := a.lookup(opRelease, h)
	if err != nil {
		return err
	}
	n := len(s.data)
	a.mem.Free(s.data)
	s.data = nil
	s.live = false
	s.gen++
	if s.gen == 0 {
		s.gen = 1
	}
	a.free.Add(h.index)
	a.live--
	a.bytes -= n
	metrics.RecordRelease(n)

	return nil
}

// Bytes borrows the block behind h. The slice must not outlive the caller's
// operation and must not be retained past Release.
func (a *Arena) Bytes(h Handle) ([]byte, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	s, err := a.lookup(opBytes, h)
	if err != nil {
		return nil, err
	}

	return s.data, nil
}

// Valid reports whether h addresses a live block.
func (a *Arena) Valid(h Handle) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if h.IsZero() || int(h.index) >= len(a.slots) {
		return false
	}
	s := a.slots[h.index]

	return s.live && s.gen == h.gen
}

// Live is the number of unreleased blocks.
func (a *Arena) Live() int {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.live
}

// BytesInUse is the total size of unreleased blocks.
func (a *Arena) BytesInUse() int {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.bytes
}

// Close releases every block still live and refuses further allocations.
// It returns the number of blocks that had not been released by their owners.
func (a *Arena) Close() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.done {
		return 0
	}

	leaked := 0
	for i := range a.slots {
		s := &a.slots[i]
		if !s.live {
			continue
		}
		leaked++
		metrics.RecordRelease(len(s.data))
		a.mem.Free(s.data)
		s.data = nil
		s.live = false
		s.gen++
	}
	a.live = 0
	a.bytes = 0
	a.done = true

	if leaked > 0 {
		a.log.Warn("arena closed with live buffers", "leaked", leaked)
	} else {
		a.log.Debug("arena closed")
	}

	return leaked
}

var (
	defaultMu    sync.RWMutex
	defaultArena *Arena
)

// Default returns the process-wide arena, creating it on first use.
func Default() *Arena {
	defaultMu.RLock()
	a := defaultArena
	defaultMu.RUnlock()
	if a != nil {
		return a
	}

	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultArena == nil {
		defaultArena = NewArena()
	}

	return defaultArena
}

// SetDefault replaces the process-wide arena and returns the previous one
// (nil if none was created yet). The previous arena is not closed.
func SetDefault(a *Arena) *Arena {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	prev := defaultArena
	defaultArena = a

	return prev
}
