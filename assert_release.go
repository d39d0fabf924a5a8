//go:build !swrdebug

package swr

// assert is a no-op in release builds; see assert_debug.go.
func assert(cond bool, msg string) {}
