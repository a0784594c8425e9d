package kernel

import (
	"runtime"
	"sync"

	"github.com/shirou/gopsutil/cpu"
	xcpu "golang.org/x/sys/cpu"
)

// Capabilities is what the host offers the pricing strategies.
type Capabilities struct {
	VectorWidth  int      // float64 lanes, 0 when no usable vector unit
	Features     []string // detected vector extensions
	LogicalCores int
}

var (
	detectOnce sync.Once
	detected   Capabilities
)

// Detect inspects the CPU once per process.
func Detect() Capabilities {
	detectOnce.Do(func() {
		detected = detect()
	})
	return detected
}

func detect() Capabilities {
	c := Capabilities{LogicalCores: runtime.NumCPU()}
	if n, err := cpu.Counts(true); err == nil && n > 0 {
		c.LogicalCores = n
	}

	switch {
	case xcpu.X86.HasAVX512F:
		c.VectorWidth = 8
	case xcpu.X86.HasAVX2:
		c.VectorWidth = 4
	case xcpu.X86.HasSSE2, xcpu.ARM64.HasASIMD:
		c.VectorWidth = 2
	}

	if xcpu.X86.HasSSE2 {
		c.Features = append(c.Features, "sse2")
	}
	if xcpu.X86.HasAVX2 {
		c.Features = append(c.Features, "avx2")
	}
	if xcpu.X86.HasAVX512F {
		c.Features = append(c.Features, "avx512f")
	}
	if xcpu.ARM64.HasASIMD {
		c.Features = append(c.Features, "asimd")
	}
	return c
}

// CPUModel reports the processor model name, empty when unavailable.
func CPUModel() string {
	infos, err := cpu.Info()
	if err != nil || len(infos) == 0 {
		return ""
	}
	return infos[0].ModelName
}
