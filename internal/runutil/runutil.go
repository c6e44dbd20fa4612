// internal/runutil/runutil.go
package runutil

import "runtime"

// EffectiveThreads resolves a --threads value: n > 0 is used as-is, anything
// else means one worker per CPU.
func EffectiveThreads(n int) int {
	if n > 0 {
		return n
	}
	return runtime.NumCPU()
}

// WindowFor returns the reorder window used by ordered fan-out for a worker
// count: enough reads in flight to keep every worker busy.
func WindowFor(threads int) int {
	if threads < 1 {
		threads = 1
	}
	return threads * 4
}
