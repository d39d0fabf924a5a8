// Package tilemgr implements the per-draw macro-tile manager (C3): a
// dense id->MacroTile map, each holding a block-list FIFO of backend
// work items, production/consumption counters, and try-lock semantics
// for single-consumer-at-a-time draining.
package tilemgr

import "sync/atomic"

// blockSize is the FIFO block size, per spec.md §4.C3.1.
const blockSize = 64

// WorkItem is one backend dispatch descriptor bound into a macro tile's
// FIFO by the frontend. Kind selects which of the three C6 entry points
// handles it; CoverageMask is only meaningful for KindOneTile.
type WorkItem struct {
	Kind         WorkKind
	TriIndex     int32 // index into the draw's triangle/interp arena records
	CoverageMask uint64
}

// WorkKind selects rast_large / rast_small / rast_one_tile (spec.md §4.C6).
type WorkKind int

const (
	KindLarge WorkKind = iota
	KindSmall
	KindOneTile
)

// fifoBlock is one fixed-size chunk of the tile's work-item queue.
type fifoBlock struct {
	items [blockSize]WorkItem
	next  *fifoBlock
}

// TileFIFO is a single-producer, single-consumer-at-a-time block-list
// queue. Enqueue is only ever called by the one FE worker that owns the
// draw context (enforced by the ring's FE lock, not by this type).
// Consumers must hold the lock (TryLock) before Peek/DequeueNoInc.
type TileFIFO struct {
	head      *fifoBlock // block currently being drained
	headIdx   int        // next item to dequeue within head
	tail      *fifoBlock // block currently being written
	tailIdx   int        // next free slot within tail
	spareHead *fifoBlock // retired blocks kept for reuse, chained via next

	lock atomic.Uint32 // try-mutex: CAS 0->1 acquires, store 0 releases
}

// NewTileFIFO returns an empty FIFO with one pre-allocated block.
func NewTileFIFO() *TileFIFO {
	b := &fifoBlock{}
	return &TileFIFO{head: b, tail: b}
}

// Enqueue appends item to the tail, allocating (or reusing from the
// spare chain) a new block when the current tail fills. Single-writer;
// callers must not call Enqueue concurrently on the same FIFO.
func (f *TileFIFO) Enqueue(item WorkItem) {
	if f.tailIdx == blockSize {
		var next *fifoBlock
		if f.spareHead != nil {
			next = f.spareHead
			f.spareHead = next.next
			next.next = nil
		} else {
			next = &fifoBlock{}
		}
		f.tail.next = next
		f.tail = next
		f.tailIdx = 0
	}
	f.tail.items[f.tailIdx] = item
	f.tailIdx++
}

// TryLock attempts to acquire the FIFO's drain lock via CAS 0->1.
// Returns true on success; the caller must call Unlock when done.
func (f *TileFIFO) TryLock() bool {
	return f.lock.CompareAndSwap(0, 1)
}

// Unlock releases the drain lock.
func (f *TileFIFO) Unlock() {
	f.lock.Store(0)
}

// Peek returns the next item to dequeue without advancing, and false if
// the FIFO is empty (head == tail at the same index).
func (f *TileFIFO) Peek() (WorkItem, bool) {
	if f.head == f.tail && f.headIdx == f.tailIdx {
		return WorkItem{}, false
	}
	item := f.head.items[f.headIdx]
	return item, true
}

// DequeueNoInc advances past the item last returned by Peek, crossing
// into the next block when a block is exhausted. The drained block is
// kept on the spare chain for reuse by a future Enqueue rather than
// freed, avoiding per-draw allocation churn.
func (f *TileFIFO) DequeueNoInc() {
	f.headIdx++
	if f.headIdx == blockSize && f.head != f.tail {
		drained := f.head
		f.head = f.head.next
		f.headIdx = 0
		drained.next = f.spareHead
		f.spareHead = drained
	}
}

// reset clears the FIFO back to a single empty block, chaining every
// other block onto the spare list for reuse. Called by
// Manager.MarkTileComplete once a tile fully drains.
func (f *TileFIFO) reset() {
	// Collect every block (head chain plus any already-spare) onto the
	// spare list, then start fresh with one block as both head and tail.
	for b := f.head; b != nil; {
		next := b.next
		b.next = f.spareHead
		f.spareHead = b
		b = next
	}

	var fresh *fifoBlock
	if f.spareHead != nil {
		fresh = f.spareHead
		f.spareHead = fresh.next
		fresh.next = nil
		fresh.items = [blockSize]WorkItem{}
	} else {
		fresh = &fifoBlock{}
	}

	f.head = fresh
	f.tail = fresh
	f.headIdx = 0
	f.tailIdx = 0
}
