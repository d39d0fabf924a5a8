package ring

import "github.com/gogpu/swr/internal/tilemgr"

// workOnFifoFE implements spec.md §4.C4's FE claim protocol: scan every
// draw context from this worker's FE cursor up to DrawEnqueued, skipping
// ones already done or already claimed, preferring a NUMA-matched draw
// once a small backoff has elapsed, then CAS-claiming and running one.
func (p *WorkerPool) workOnFifoFE(w *workerState) {
	enqueued := p.ring.DrawEnqueued()
	start := w.cursorFE.Load()

	const numaBackoff = 4
	attempts := 0
	var fallback *DrawContext

	for id := start; id < enqueued; id++ {
		dc := p.ring.Slot(id)
		if dc.DrawID != id || dc.DoneFE() || dc.feLock.Load() != 0 {
			continue
		}

		attempts++
		if dc.NumaNode == w.numaNode || attempts > numaBackoff {
			if p.claimAndRunFE(dc) {
				w.cursorFE.Store(id + 1)
				return
			}
			continue
		}
		if fallback == nil {
			fallback = dc
		}
	}

	if fallback != nil && fallback.tryClaimFE() {
		p.runFE(fallback)
	}
}

func (p *WorkerPool) claimAndRunFE(dc *DrawContext) bool {
	if !dc.tryClaimFE() {
		return false
	}
	p.runFE(dc)
	return true
}

func (p *WorkerPool) runFE(dc *DrawContext) {
	if dc.FEWork != nil {
		dc.FEWork.Run(dc)
	}
	dc.MarkFEDone()
	p.ring.WakeAllThreads()
}

// dependencyRetired reports whether dc's Dependency (if any) has
// satisfied its retirement criterion: FE-done, or fully-retired,
// selected by DepCompleteDraw (spec.md §4.C4 "Dependencies").
func (p *WorkerPool) dependencyRetired(dc *DrawContext) bool {
	if !dc.DependencyValid {
		return true
	}
	if !dc.DepCompleteDraw {
		dep := p.ring.Slot(dc.Dependency)
		return dep.DrawID == dc.Dependency && dep.DoneFE()
	}
	return p.ring.LastRetiredID() >= dc.Dependency
}

// workOnFifoBE implements spec.md §4.C4's BE ordering rules: advance
// past fully-retired draws, then walk forward draining whatever tiles
// are ordered-safe for this worker to touch, respecting the
// same-scissor / used-tiles / oldest-DC barrier rules.
func (p *WorkerPool) workOnFifoBE(w *workerState) {
	cur := w.cursorBE.Load()
	enqueued := p.ring.DrawEnqueued()

	// Rule 1: advance past any DC whose FE is done and whose tile work
	// is already fully complete (nothing left for anyone to drain).
	for cur < enqueued {
		dc := p.ring.Slot(cur)
		if dc.DrawID != cur || !dc.DoneFE() || !dc.TileMgr.IsWorkComplete() {
			break
		}
		p.ring.NotifyRetired(dc)
		if dc.OnComplete != nil {
			dc.OnComplete()
		}
		cur++
	}
	w.cursorBE.Store(cur)

	clear(w.usedTiles)
	var prevScissor ScissorTiles
	havePrevScissor := false

	for id := cur; id < enqueued; id++ {
		dc := p.ring.Slot(id)
		if dc.DrawID != id || !dc.DoneFE() || !p.dependencyRetired(dc) {
			continue
		}

		if havePrevScissor && !dc.Scissor.Equal(prevScissor) {
			break
		}
		prevScissor = dc.Scissor
		havePrevScissor = true

		isOldest := id == cur
		allTilesDone := true

		for _, tileID := range dc.TileMgr.UsedTiles() {
			mt := dc.TileMgr.Tile(tileID)
			if mt.IsComplete() {
				w.usedTiles[tileID] = true
				continue
			}
			allTilesDone = false

			if !isOldest && !w.usedTiles[tileID] {
				continue // ordering barrier: not yet safe for this worker
			}

			if !mt.FIFO.TryLock() {
				delete(w.usedTiles, tileID)
				continue
			}

			p.drainLockedTile(w, dc, tileID, mt)
		}

		if isOldest && allTilesDone {
			w.cursorBE.Store(id + 1)
		}
	}
}

// drainLockedTile consumes every pending item in a tile's FIFO (the
// caller must already hold its lock), dispatches each through the
// backend runner, then marks the tile complete and releases the lock.
func (p *WorkerPool) drainLockedTile(w *workerState, dc *DrawContext, tileID uint32, mt *tilemgr.MacroTile) {
	for {
		item, ok := mt.FIFO.Peek()
		if !ok {
			break
		}
		if p.be != nil {
			p.be.RunTile(dc, tileID, item)
		}
		mt.WorkItemsBE++
		mt.FIFO.DequeueNoInc()
	}
	mt.FIFO.Unlock()

	drawRetired := dc.TileMgr.MarkTileComplete(tileID)
	w.usedTiles[tileID] = true
	if drawRetired {
		p.ring.NotifyRetired(dc)
		if dc.OnComplete != nil {
			dc.OnComplete()
		}
	}
}

// drainTile is the single-threaded-mode equivalent of
// workOnFifoBE's inner loop for one already-known-used tile id: no
// locking is needed since there is only one worker.
func (p *WorkerPool) drainTile(w *workerState, dc *DrawContext, tileID uint32) {
	mt := dc.TileMgr.Tile(tileID)
	if mt.IsComplete() {
		return
	}
	for {
		item, ok := mt.FIFO.Peek()
		if !ok {
			break
		}
		if p.be != nil {
			p.be.RunTile(dc, tileID, item)
		}
		mt.WorkItemsBE++
		mt.FIFO.DequeueNoInc()
	}
	dc.TileMgr.MarkTileComplete(tileID)
}
