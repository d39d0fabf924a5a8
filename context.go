package swr

import (
	"io"
	"os"
	"runtime"
	"strconv"

	"github.com/gogpu/swr/internal/backend"
	"github.com/gogpu/swr/internal/ring"
)

// MinWorkThreads and MaxNumThreads bound SWR_WORKER_THREADS and
// WithWorkerCount (spec.md §5/§6, from
// _examples/original_source/core/threads.h's equivalent constants).
const (
	MinWorkThreads = 1
	MaxNumThreads  = 128
)

// Context owns one draw-context ring, its worker pool, and the
// cross-draw dependency tracker every Draw call consults.
type Context struct {
	ring *ring.Ring
	pool *ring.WorkerPool
	rast *backend.Rasterizer
	deps *depTracker

	opts contextOptions

	closed bool
}

var _ io.Closer = (*Context)(nil)

// CreateContext creates a Context and starts its worker pool. Workers
// run until Destroy (or Close) is called.
//
//	ctx := swr.CreateContext()
//	defer ctx.Destroy()
func CreateContext(opts ...ContextOption) *Context {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	r := ring.New()
	installArenaExhaustedHandlers(r)
	rast := &backend.Rasterizer{}

	c := &Context{
		ring: r,
		rast: rast,
		deps: newDepTracker(),
		opts: o,
	}

	if o.singleThreaded {
		c.pool = ring.NewSingleThreaded(r, rast)
		return c
	}

	n := resolveWorkerCount(o.workerCount)
	c.pool = ring.NewWorkerPool(r, rast, n, 1, o.numaNodeCount)
	Logger().Info("swr: context created", "workers", n)
	return c
}

// installArenaExhaustedHandlers wires every ring slot's arena to abort
// via Fatalf when asked for an allocation no block size could ever
// satisfy (spec.md §7: resource exhaustion is fatal, never a returned
// error). internal/arena can't call Fatalf itself without importing
// this package, which would cycle, so the handler is installed here
// instead, once per Context.
func installArenaExhaustedHandlers(r *ring.Ring) {
	for i := int64(0); i < ring.MaxDrawsInFlight; i++ {
		dc := r.Slot(i)
		dc.Arena.SetExhaustedHandler(func(requested int) {
			Fatalf("swr: arena exhausted: requested %d bytes exceeds the maximum block size", requested)
		})
	}
}

// resolveWorkerCount applies, in priority order: an explicit
// WithWorkerCount override, the SWR_WORKER_THREADS environment variable,
// or GOMAXPROCS-1 (reserving core 0 for the API thread, spec.md §5) —
// each clamped to [MinWorkThreads, MaxNumThreads].
func resolveWorkerCount(override int) int {
	if override > 0 {
		return clampWorkerCount(override)
	}
	if v := os.Getenv("SWR_WORKER_THREADS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return clampWorkerCount(n)
		}
	}
	return clampWorkerCount(runtime.GOMAXPROCS(0) - 1)
}

func clampWorkerCount(n int) int {
	if n < MinWorkThreads {
		return MinWorkThreads
	}
	if n > MaxNumThreads {
		return MaxNumThreads
	}
	return n
}

// Destroy shuts down the Context's worker pool, blocking until every
// worker goroutine has exited. It is safe to call more than once.
func (c *Context) Destroy() {
	if c.closed {
		return
	}
	c.pool.Shutdown()
	c.closed = true
}

// Close implements io.Closer as an alias for Destroy.
func (c *Context) Close() error {
	c.Destroy()
	return nil
}

// WaitForIdle blocks until every draw enqueued so far has fully
// retired. Used by tests and callers that need a synchronization point
// without tearing the Context down.
func (c *Context) WaitForIdle() {
	for c.ring.LastRetiredID() < c.ring.DrawEnqueued()-1 {
		c.ring.WakeAllThreads()
		runtime.Gosched()
	}
}
