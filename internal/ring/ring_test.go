package ring

import (
	"testing"
	"time"

	"github.com/gogpu/swr/internal/tilemgr"
)

type countingFE struct{ n *int }

func (f countingFE) Run(dc *DrawContext) { *f.n++ }

type countingBE struct{ n *int }

func (b countingBE) RunTile(dc *DrawContext, tileID uint32, item tilemgr.WorkItem) { *b.n++ }

func TestGetDrawContextAssignsIncreasingDrawIDs(t *testing.T) {
	r := New()

	dc0 := r.GetDrawContext()
	r.Enqueue()
	dc0.MarkFEDone()

	dc1 := r.GetDrawContext()

	if dc0.DrawID != 0 || dc1.DrawID != 1 {
		t.Errorf("DrawIDs = %d, %d, want 0, 1", dc0.DrawID, dc1.DrawID)
	}
}

func TestSingleThreadedRunInlineDrainsAllTiles(t *testing.T) {
	r := New()
	var feRuns, beRuns int

	dc := r.GetDrawContext()
	dc.FEWork = countingFE{&feRuns}
	dc.TileMgr.Enqueue(tilemgr.TileID(0, 0), tilemgr.WorkItem{})
	dc.TileMgr.Enqueue(tilemgr.TileID(1, 0), tilemgr.WorkItem{})
	r.Enqueue()

	pool := NewSingleThreaded(r, countingBE{&beRuns})
	pool.RunInline(dc)

	if feRuns != 1 {
		t.Errorf("feRuns = %d, want 1", feRuns)
	}
	if beRuns != 2 {
		t.Errorf("beRuns = %d, want 2", beRuns)
	}
	if !dc.DoneFE() {
		t.Error("expected DoneFE after RunInline")
	}
	if !dc.TileMgr.IsWorkComplete() {
		t.Error("expected all tile work complete after RunInline")
	}
}

func TestLastRetiredIDMonotonic(t *testing.T) {
	r := New()

	dc := r.GetDrawContext()
	r.Enqueue()
	dc.MarkFEDone()

	if got := r.LastRetiredID(); got != -1 {
		t.Fatalf("LastRetiredID before any retirement = %d, want -1", got)
	}

	r.NotifyRetired(dc)
	if got := r.LastRetiredID(); got != 0 {
		t.Errorf("LastRetiredID = %d, want 0", got)
	}

	// Retiring an already-retired (or older) id must not regress it.
	r.NotifyRetired(dc)
	if got := r.LastRetiredID(); got != 0 {
		t.Errorf("LastRetiredID regressed to %d", got)
	}
}

func TestWorkerPoolDrainsEnqueuedDrawAcrossGoroutines(t *testing.T) {
	r := New()
	var beRuns int
	pool := NewWorkerPool(r, countingBE{&beRuns}, 2, 0, 1)
	defer pool.Shutdown()

	dc := r.GetDrawContext()
	dc.TileMgr.Enqueue(tilemgr.TileID(0, 0), tilemgr.WorkItem{})
	dc.MarkFEDone()
	r.Enqueue()

	deadline := time.Now().Add(2 * time.Second)
	for !dc.TileMgr.IsWorkComplete() && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}

	if !dc.TileMgr.IsWorkComplete() {
		t.Fatal("worker pool did not drain the enqueued tile in time")
	}
}

func TestScissorTilesEqual(t *testing.T) {
	a := ScissorTiles{X0: 0, Y0: 0, X1: 4, Y1: 4}
	b := ScissorTiles{X0: 0, Y0: 0, X1: 4, Y1: 4}
	c := ScissorTiles{X0: 0, Y0: 0, X1: 5, Y1: 4}

	if !a.Equal(b) {
		t.Error("identical scissor rects should compare equal")
	}
	if a.Equal(c) {
		t.Error("different scissor rects should not compare equal")
	}
}

func TestWorkerCountFromEnvClamps(t *testing.T) {
	t.Setenv("SWR_WORKER_THREADS", "99999")
	if got := WorkerCountFromEnv(4); got != MaxNumThreads {
		t.Errorf("WorkerCountFromEnv = %d, want clamped to %d", got, MaxNumThreads)
	}

	t.Setenv("SWR_WORKER_THREADS", "0")
	if got := WorkerCountFromEnv(4); got != MinWorkThreads {
		t.Errorf("WorkerCountFromEnv = %d, want clamped to %d", got, MinWorkThreads)
	}

	t.Setenv("SWR_WORKER_THREADS", "")
	if got := WorkerCountFromEnv(4); got != 4 {
		t.Errorf("WorkerCountFromEnv with unset env = %d, want fallback 4", got)
	}
}
