// Package cpu reports the host capabilities the launch tuner keys its
// decisions on.
package cpu

import (
	"runtime"

	"golang.org/x/sys/cpu"
)

// Features describes the capabilities relevant to dispatch selection.
type Features struct {
	HasAVX2      bool
	HasAVX512    bool
	HasSSE2      bool
	HasNEON      bool
	NumCPU       int
	Architecture string
}

// DetectFeatures reports the available CPU features for the current
// process.
func DetectFeatures() Features {
	return Features{
		HasAVX2:      cpu.X86.HasAVX2,
		HasAVX512:    cpu.X86.HasAVX512,
		HasSSE2:      cpu.X86.HasSSE2,
		HasNEON:      cpu.ARM64.HasASIMD,
		NumCPU:       runtime.GOMAXPROCS(0),
		Architecture: runtime.GOARCH,
	}
}

// SIMDName returns a short label for the best available vector extension,
// for bench output.
func (f Features) SIMDName() string {
	switch {
	case f.HasAVX512:
		return "avx512"
	case f.HasAVX2:
		return "avx2"
	case f.HasSSE2:
		return "sse2"
	case f.HasNEON:
		return "neon"
	default:
		return "generic"
	}
}
