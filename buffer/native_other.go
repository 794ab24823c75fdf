// SPDX-License-Identifier: MIT

//go:build !linux

package buffer

import "github.com/apache/arrow-go/v18/arrow/memory"

// NewNativeAllocator falls back to the Go heap where anonymous mmap is not wired.
func NewNativeAllocator() memory.Allocator { return memory.NewGoAllocator() }
