//go:build !linux

package ring

import "runtime"

// pinToCore locks the calling goroutine to its OS thread but cannot
// restrict it to a single core outside Linux (no portable syscall);
// the worker still gets a dedicated OS thread, just not pinned.
func pinToCore(core int) error {
	runtime.LockOSThread()
	return nil
}
