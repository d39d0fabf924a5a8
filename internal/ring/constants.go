package ring

import (
	"os"
	"strconv"
)

// Worker-count bounds and spin tuning, per SPEC_FULL §3 (concretizing
// spec.md §5/§6's named constants).
const (
	SpinLoopCount  = 2000
	MinWorkThreads = 1
	MaxNumThreads  = 128
)

// WorkerCountFromEnv reads SWR_WORKER_THREADS if set, clamping to
// [MinWorkThreads, MaxNumThreads]; otherwise returns fallback unchanged.
func WorkerCountFromEnv(fallback int) int {
	v, ok := os.LookupEnv("SWR_WORKER_THREADS")
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return clampWorkers(n)
}

func clampWorkers(n int) int {
	if n < MinWorkThreads {
		return MinWorkThreads
	}
	if n > MaxNumThreads {
		return MaxNumThreads
	}
	return n
}
