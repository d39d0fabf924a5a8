package ring

import (
	"sync"
	"sync/atomic"
)

// workerState holds one worker's cursors into the ring and its
// per-call used-tiles set (spec.md §9: "a small stack-allocated set ...
// rehash each call").
type workerState struct {
	id int

	cursorFE atomic.Int64
	cursorBE atomic.Int64

	numaNode int

	usedTiles map[uint32]bool
}

// WorkerPool runs N workers draining the ring's frontend and backend
// work, or (in single-threaded mode) runs both phases inline on
// whichever goroutine calls RunInline — normally the API thread.
type WorkerPool struct {
	ring *Ring
	be   BERunner

	workers        []*workerState
	singleThreaded bool
	numaNodeCount  int

	shutdown atomic.Bool
	wg       sync.WaitGroup
}

// NewWorkerPool creates a pool of n workers over ring, each dispatching
// backend work through be. coreOffset is the first core index workers
// are pinned to (the caller, typically the API thread, is expected to
// hold core 0 itself per spec.md §5). numaNodeCount assigns worker i to
// NUMA node i mod numaNodeCount (spec.md §5); pass 1 if unknown.
func NewWorkerPool(r *Ring, be BERunner, n int, coreOffset int, numaNodeCount int) *WorkerPool {
	if numaNodeCount < 1 {
		numaNodeCount = 1
	}
	p := &WorkerPool{ring: r, be: be, numaNodeCount: numaNodeCount}
	p.workers = make([]*workerState, n)
	for i := 0; i < n; i++ {
		p.workers[i] = &workerState{
			id:        i,
			numaNode:  i % numaNodeCount,
			usedTiles: make(map[uint32]bool),
		}
	}

	p.wg.Add(n)
	for i := 0; i < n; i++ {
		core := coreOffset + i
		go p.run(p.workers[i], core)
	}
	return p
}

// NewSingleThreaded returns a pool with no background goroutines; all
// FE/BE work is run inline by RunInline, bypassing synchronization
// entirely (spec.md §9's "single-threaded mode").
func NewSingleThreaded(r *Ring, be BERunner) *WorkerPool {
	return &WorkerPool{
		ring:           r,
		be:             be,
		singleThreaded: true,
		workers:        []*workerState{{id: 0, usedTiles: make(map[uint32]bool)}},
	}
}

// RunInline executes a draw context's frontend and then all of its
// backend work synchronously. Valid only in single-threaded mode.
func (p *WorkerPool) RunInline(dc *DrawContext) {
	if dc.FEWork != nil {
		dc.FEWork.Run(dc)
		dc.MarkFEDone()
	}
	w := p.workers[0]
	for _, id := range dc.TileMgr.UsedTiles() {
		p.drainTile(w, dc, id)
	}
	if dc.TileMgr.IsWorkComplete() {
		p.ring.NotifyRetired(dc)
		if dc.OnComplete != nil {
			dc.OnComplete()
		}
	}
}

// run is one worker's main loop: spin for SpinLoopCount iterations
// looking for backend work, then block on the ring's condition
// variable; on each wake attempt, drain backend work first, then try to
// claim a frontend work item, matching spec.md §4.C4's cooperative
// split.
func (p *WorkerPool) run(w *workerState, core int) {
	defer p.wg.Done()
	_ = pinToCore(core)

	for !p.shutdown.Load() {
		found := false
		for i := 0; i < SpinLoopCount; i++ {
			if w.cursorBE.Load() < p.ring.DrawEnqueued() {
				found = true
				break
			}
			spinPause()
		}
		if !found && !p.shutdown.Load() {
			p.ring.Wait()
		}
		if p.shutdown.Load() {
			return
		}

		p.workOnFifoBE(w)
		p.workOnFifoFE(w)
	}
}

// Shutdown signals every worker to exit after its current iteration and
// waits for them to join. No mid-draw cancellation occurs; workers only
// check the shutdown flag between loop iterations.
func (p *WorkerPool) Shutdown() {
	if p.singleThreaded {
		return
	}
	p.shutdown.Store(true)
	p.ring.WakeAllThreads()
	p.wg.Wait()
}

// Workers returns the number of active workers (1 in single-threaded
// mode, where the "worker" is inline).
func (p *WorkerPool) Workers() int { return len(p.workers) }
