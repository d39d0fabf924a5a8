// Package ring implements the draw-context ring and worker pool (C4): a
// fixed-size ring of draw contexts with a single API-thread producer and
// N worker-thread consumers, each tracking independent FE/BE cursors and
// draining frontend/backend work under the ordering rules spec.md §4.C4
// describes.
package ring

import (
	"sync"
	"sync/atomic"

	"github.com/gogpu/swr/internal/arena"
	"github.com/gogpu/swr/internal/tiledrt"
	"github.com/gogpu/swr/internal/tilemgr"
)

// MaxDrawsInFlight is K, the ring's slot count (spec.md §4.C4: "typical
// K = 64").
const MaxDrawsInFlight = 64

// FEWork is the frontend binner's entry point for one draw context. The
// worker pool calls MarkFEDone on the draw context once Run returns.
// Modeled as an interface rather than a raw function pointer, per
// spec.md §9's design note.
type FEWork interface {
	Run(dc *DrawContext)
}

// BERunner dispatches one backend work item for one macro tile. The
// backend package implements this once and it is shared by every draw
// context in the ring.
type BERunner interface {
	RunTile(dc *DrawContext, tileID uint32, item tilemgr.WorkItem)
}

// ScissorTiles is a draw's scissor rectangle in macro-tile coordinates;
// two draws with different ScissorTiles force a per-worker cross-DC
// barrier (spec.md §4.C4 BE ordering rule 2).
type ScissorTiles struct {
	X0, Y0, X1, Y1 int
}

// Equal reports whether two scissor-in-tiles rectangles match exactly.
func (s ScissorTiles) Equal(o ScissorTiles) bool { return s == o }

// DrawContext is one submitted draw chunk's self-contained record
// (spec.md §3's DC).
type DrawContext struct {
	DrawID int64

	FEWork FEWork
	State  any // opaque DrawState snapshot, owned by the root package

	TileMgr *tilemgr.Manager
	Arena   *arena.Arena

	// ColorRT and DepthRT are this draw's bound render targets (spec.md
	// §6's pRenderTargets[0] and [1]); DepthRT is nil when no depth target
	// is bound.
	ColorRT *tiledrt.RenderTarget
	DepthRT *tiledrt.RenderTarget

	Scissor ScissorTiles

	doneFE atomic.Bool
	feLock atomic.Uint32 // CAS 0->1 claim; never released (claimed sentinel)

	// Dependency, if DependencyValid, names a draw_id this DC's backend
	// work must not start before, per spec.md §4.C4 "Dependencies".
	Dependency      int64
	DependencyValid bool
	// DepCompleteDraw selects the retirement criterion for Dependency:
	// false = "FE done" is sufficient, true = "fully retired" required.
	DepCompleteDraw bool

	// NumaNode mirrors the draw's primary vertex buffer's NUMA tag, used
	// only as an FE-claim scheduling preference (spec.md §5).
	NumaNode int

	OnComplete func()

	inUse atomic.Bool
}

// DoneFE reports whether this draw's frontend has finished binning.
func (dc *DrawContext) DoneFE() bool { return dc.doneFE.Load() }

// MarkFEDone is called by the FE worker once binning for this draw
// context has fully completed.
func (dc *DrawContext) MarkFEDone() { dc.doneFE.Store(true) }

// tryClaimFE attempts the CAS 0->1 FE claim; true on success.
func (dc *DrawContext) tryClaimFE() bool {
	return dc.feLock.CompareAndSwap(0, 1)
}

// StillDrawing reports whether this ring slot's previous occupant has
// not yet fully retired (FE done and every macro tile drained).
func (dc *DrawContext) StillDrawing() bool {
	if !dc.inUse.Load() {
		return false
	}
	return !dc.DoneFE() || !dc.TileMgr.IsWorkComplete()
}

// Ring is the fixed-size array of in-flight draw contexts plus the
// shared counters workers and the API thread coordinate through.
type Ring struct {
	slots [MaxDrawsInFlight]*DrawContext

	// drawEnqueued is the single API-thread-write, worker-read counter
	// of how many draws have been handed off so far.
	drawEnqueued atomic.Int64

	// lastRetiredID is non-decreasing; testable property #2.
	lastRetiredID atomic.Int64

	mu   sync.Mutex
	cond *sync.Cond
}

// New allocates an empty ring with every slot pre-populated (so workers
// never observe a nil slot pointer).
func New() *Ring {
	r := &Ring{}
	r.cond = sync.NewCond(&r.mu)
	r.lastRetiredID.Store(-1)
	for i := range r.slots {
		r.slots[i] = &DrawContext{
			TileMgr: tilemgr.New(),
			Arena:   arena.New(),
		}
	}
	return r
}

// DrawEnqueued returns the number of draws handed off so far.
func (r *Ring) DrawEnqueued() int64 { return r.drawEnqueued.Load() }

// LastRetiredID returns the highest draw_id known to have fully
// retired, or -1 if none yet have.
func (r *Ring) LastRetiredID() int64 { return r.lastRetiredID.Load() }

// Slot returns the draw context occupying ring slot i mod
// MaxDrawsInFlight, so callers may pass a draw id directly.
func (r *Ring) Slot(i int64) *DrawContext {
	return r.slots[i%MaxDrawsInFlight]
}

// GetDrawContext implements spec.md §4.C4's API-thread back-pressure
// path: select the next slot, spin (waking workers each iteration)
// until its previous occupant has retired, then reset it for reuse with
// a fresh draw_id.
func (r *Ring) GetDrawContext() *DrawContext {
	drawID := r.drawEnqueued.Load()
	slot := r.Slot(drawID)

	for slot.StillDrawing() {
		r.WakeAllThreads()
		spinPause()
	}

	if slot.inUse.Load() {
		r.retire(slot)
	}

	slot.DrawID = drawID
	slot.Arena.Reset()
	slot.TileMgr.Reset()
	slot.doneFE.Store(false)
	slot.feLock.Store(0)
	slot.Dependency = 0
	slot.DependencyValid = false
	slot.DepCompleteDraw = false
	slot.OnComplete = nil
	slot.inUse.Store(true)

	return slot
}

// Enqueue hands a populated draw context off to the worker pool: bumps
// DrawEnqueued and wakes every worker, per spec.md "WakeAllThreads ...
// is called by the API thread on every DrawEnqueued++".
func (r *Ring) Enqueue() {
	r.drawEnqueued.Add(1)
	r.WakeAllThreads()
}

// retire is called when a slot's previous draw has fully drained and is
// about to be overwritten; it advances LastRetiredID monotonically.
func (r *Ring) retire(dc *DrawContext) {
	for {
		cur := r.lastRetiredID.Load()
		if dc.DrawID <= cur {
			return
		}
		if r.lastRetiredID.CompareAndSwap(cur, dc.DrawID) {
			return
		}
	}
}

// NotifyRetired lets a BE worker report that it just drained a draw
// context's final tile, so LastRetiredID can advance without waiting
// for the slot to be recycled by GetDrawContext.
func (r *Ring) NotifyRetired(dc *DrawContext) {
	r.retire(dc)
}

// WakeAllThreads signals the condition variable every worker blocks on.
func (r *Ring) WakeAllThreads() {
	r.cond.Broadcast()
}

// Wait blocks the calling worker on the ring's condition variable, to be
// woken by WakeAllThreads. Callers must have already spun for
// SPIN_LOOP_COUNT iterations first (spec.md §4.C4).
func (r *Ring) Wait() {
	r.mu.Lock()
	r.cond.Wait()
	r.mu.Unlock()
}
