package swr

import "github.com/gogpu/swr/internal/frontend"

// ContextOption configures a Context during creation with CreateContext.
//
// Example:
//
//	// Default: one worker per GOMAXPROCS core, minus the API thread.
//	ctx := swr.CreateContext()
//
//	// Pin to a fixed worker count and a wider guardband.
//	ctx := swr.CreateContext(
//		swr.WithWorkerCount(4),
//		swr.WithGuardbandRatio(4),
//	)
type ContextOption func(*contextOptions)

// contextOptions holds optional configuration for Context creation.
type contextOptions struct {
	workerCount    int
	singleThreaded bool
	guardbandRatio float32
	macroTile      frontend.MacroTileDim
	numaNodeCount  int
}

// defaultOptions returns the default context options: one worker per
// available core (spec.md §5 reserves core 0 for the API thread), the
// default guardband ratio and macro tile size.
func defaultOptions() contextOptions {
	return contextOptions{
		workerCount:    0, // resolved against GOMAXPROCS in CreateContext
		guardbandRatio: 2,
		macroTile:      frontend.DefaultMacroTileDim,
		numaNodeCount:  1,
	}
}

// WithWorkerCount overrides the number of backend worker goroutines.
// n <= 0 means "use GOMAXPROCS-1, minimum 1" (the default).
func WithWorkerCount(n int) ContextOption {
	return func(o *contextOptions) {
		o.workerCount = n
	}
}

// WithSingleThreaded runs every draw's frontend and backend work inline
// on the calling goroutine, bypassing the ring and its synchronization
// entirely (spec.md §9's "single-threaded mode"). Useful for
// deterministic tests and for profiling the rasterizer in isolation from
// the worker pool.
func WithSingleThreaded() ContextOption {
	return func(o *contextOptions) {
		o.singleThreaded = true
	}
}

// WithGuardbandRatio sets the guardband clip ratio applied to every draw
// issued on this Context (spec.md §4.C5's guardband clipping). Values
// greater than 1 admit triangles whose vertices lie outside the viewport
// but within ratio*viewport, trading some near-plane-only clipping for
// fewer full Sutherland-Hodgman passes.
func WithGuardbandRatio(ratio float32) ContextOption {
	return func(o *contextOptions) {
		o.guardbandRatio = ratio
	}
}

// WithMacroTileDim overrides the macro tile size, in pixel tiles, that
// draws on this Context bin into (spec.md §3's default is 4x4 pixel
// tiles, i.e. 32x32 pixels with TX=TY=8).
func WithMacroTileDim(w, h int) ContextOption {
	return func(o *contextOptions) {
		o.macroTile = frontend.MacroTileDim{W: w, H: h}
	}
}

// WithNUMANodeCount tells the worker pool how many NUMA nodes to spread
// workers across (spec.md §5); pass 1 (the default) if the topology is
// unknown or irrelevant.
func WithNUMANodeCount(n int) ContextOption {
	return func(o *contextOptions) {
		if n < 1 {
			n = 1
		}
		o.numaNodeCount = n
	}
}
