// SPDX-License-Identifier: MIT

package backend

import (
	"runtime"

	"github.com/viterin/vek"
	"golang.org/x/sys/cpu"

	"github.com/katalvlaran/numcore/scalar"
)

// Implementation names reported by Info.
const (
	ImplGeneric = "generic"
	ImplSIMD    = "simd"
)

// RuntimeInfo describes the kernels active in this process.
type RuntimeInfo struct {
	Arch           string
	Implementation string   // ImplSIMD when vek reports hardware acceleration
	Features       []string // vek's view of the CPU
	HasAVX2        bool
	HasFMA         bool
	HasNEON        bool // ASIMD on arm64
	BLASKinds      []scalar.Kind
	OrderedKinds   []scalar.Kind
}

// Info reports CPU features and which kinds each kernel family supports.
func Info() RuntimeInfo {
	vi := vek.Info()
	impl := ImplGeneric
	if vi.Acceleration {
		impl = ImplSIMD
	}
	ri := RuntimeInfo{
		Arch:           runtime.GOARCH,
		Implementation: impl,
		Features:       vi.CPUFeatures,
		HasAVX2:        cpu.X86.HasAVX2,
		HasFMA:         cpu.X86.HasFMA,
		HasNEON:        cpu.ARM64.HasASIMD,
	}
	for _, k := range scalar.Kinds() {
		if k.IsFloat() {
			ri.BLASKinds = append(ri.BLASKinds, k)
		}
		if k.IsReal() {
			ri.OrderedKinds = append(ri.OrderedKinds, k)
		}
	}

	return ri
}
