package compute

import "runtime"

// Env is the execution environment shared by all Container instances
// created within it. It is read-only from a kernel's perspective, so no
// locking is required for concurrent reads.
type Env struct {
	Workers  int    // Number of worker goroutines kernels may use.
	MinChunk int    // Minimum work items per goroutine to avoid overhead.
	Arch     string // Target architecture the kernels run on.
}

// DefaultEnv returns sensible defaults based on CPU count.
func DefaultEnv() Env {
	return Env{
		Workers:  runtime.NumCPU(),
		MinChunk: 64,
		Arch:     runtime.GOARCH,
	}
}
