package swr

import (
	"fmt"
	"sync/atomic"
)

// lastError holds the most recent programming-error Context.Draw*
// methods recorded, best-effort and non-propagating (spec.md §7:
// programming errors "assert in debug, drop in release").
//
// Stored per-process rather than per-Context: the rasterizer core's own
// goroutines never call back through a Context value, so a package-level
// slot is equivalent to a per-Context one here and avoids plumbing it
// through every internal package.
var lastError atomic.Pointer[error]

// LastError returns the most recently recorded programming error, or nil
// if none has occurred since the last call to ClearLastError (or process
// start). It does not block and never panics.
func (c *Context) LastError() error {
	p := lastError.Load()
	if p == nil {
		return nil
	}
	return *p
}

// ClearLastError resets the recorded error to nil.
func (c *Context) ClearLastError() {
	lastError.Store(nil)
}

// recordError stashes err as the most recent programming error and, in
// debug builds (-tags swrdebug), also panics via assert.
func recordError(err error) {
	lastError.Store(&err)
	assert(false, err.Error())
}

// Fatalf logs a message at error level and panics, for the resource
// exhaustion class of failure spec.md §7 requires never be represented
// as a returned error (e.g. the arena's block allocator being asked for
// a request no block size could ever satisfy).
func Fatalf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	Logger().Error(msg)
	panic(msg)
}
