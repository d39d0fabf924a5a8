package ring

import "runtime"

// spinPause yields the current OS thread's timeslice, standing in for
// the `_mm_pause` busy-wait hint spec.md's pseudocode uses: Go has no
// portable pause intrinsic, and runtime.Gosched is the idiomatic
// substitute for "let another goroutine run without blocking".
func spinPause() {
	runtime.Gosched()
}
