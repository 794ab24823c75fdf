// SPDX-License-Identifier: MIT

//go:build linux

package buffer

import (
	"github.com/apache/arrow-go/v18/arrow/memory"
	"golang.org/x/sys/unix"

	"github.com/katalvlaran/numcore/internal/logger"
)

// mmapAllocator maps anonymous private pages for every block, keeping large
// containers outside the Go heap. Blocks are returned to the kernel on Free.
type mmapAllocator struct{}

// NewNativeAllocator returns an allocator backed by anonymous mmap.
func NewNativeAllocator() memory.Allocator { return mmapAllocator{} }

func (mmapAllocator) Allocate(size int) []byte {
	if size <= 0 {
		return nil
	}
	b, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		logger.Log.Warn("mmap failed", "bytes", size, "err", err)
		return nil
	}

	return b
}

func (m mmapAllocator) Reallocate(size int, b []byte) []byte {
	if size <= len(b) {
		return b[:size]
	}
	nb := m.Allocate(size)
	if nb == nil {
		return nil
	}
	copy(nb, b)
	m.Free(b)

	return nb
}

func (mmapAllocator) Free(b []byte) {
	if cap(b) == 0 {
		return
	}
	if err := unix.Munmap(b[:cap(b)]); err != nil {
		logger.Log.Warn("munmap failed", "bytes", cap(b), "err", err)
	}
}
