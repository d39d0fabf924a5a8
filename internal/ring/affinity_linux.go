//go:build linux

package ring

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// pinToCore locks the calling goroutine to its OS thread and restricts
// that thread to a single CPU core, matching spec.md §5: "threads are
// pinned to specific cores; the API thread holds core 0".
func pinToCore(core int) error {
	runtime.LockOSThread()

	var set unix.CPUSet
	set.Zero()
	set.Set(core)
	return unix.SchedSetaffinity(0, &set)
}
