package tilemgr

import "sync/atomic"

// MacroTile is one macro tile's FIFO plus its producer/consumer counts.
// WorkItemsFE is written only by the FE worker that owns this draw;
// WorkItemsBE is written by whichever BE worker currently holds the
// FIFO's drain lock.
type MacroTile struct {
	FIFO        *TileFIFO
	WorkItemsFE int32
	WorkItemsBE int32
}

// IsComplete reports whether every item the FE produced for this tile
// has been consumed by the backend.
func (mt *MacroTile) IsComplete() bool {
	return mt.WorkItemsFE == mt.WorkItemsBE
}

// Manager owns one draw context's macro-tile set: a dense id->MacroTile
// map, the list of tile ids touched since the last reset, and the
// shared produced/consumed counters spec.md §4.C3 describes.
//
// Not safe for concurrent Enqueue (single FE writer per draw); BE
// draining is safe for concurrent use across different tiles, and
// per-tile FIFO locks serialize same-tile access.
type Manager struct {
	tiles     map[uint32]*MacroTile
	usedTiles []uint32
	produced  atomic.Int64
	consumed  atomic.Int64
}

// TileID packs macro-tile coordinates into the 32-bit id spec.md §3
// defines: (macroX << 16) | macroY.
func TileID(macroX, macroY int) uint32 {
	return uint32(macroX)<<16 | uint32(macroY&0xFFFF)
}

// New returns an empty tile manager, ready for a fresh draw.
func New() *Manager {
	return &Manager{tiles: make(map[uint32]*MacroTile)}
}

// Reset clears the manager back to empty, for reuse by a new draw
// context occupying the same ring slot (spec.md: "the target format" is
// zeroed on DC acquisition).
func (m *Manager) Reset() {
	m.tiles = make(map[uint32]*MacroTile, len(m.tiles))
	m.usedTiles = m.usedTiles[:0]
	m.produced.Store(0)
	m.consumed.Store(0)
}

// UsedTiles returns the ids of every macro tile that has received at
// least one work item since the last Reset.
func (m *Manager) UsedTiles() []uint32 {
	return m.usedTiles
}

// Tile returns the macro tile for id, creating it (and recording it in
// UsedTiles) on first access.
func (m *Manager) Tile(id uint32) *MacroTile {
	mt, ok := m.tiles[id]
	if !ok {
		mt = &MacroTile{FIFO: NewTileFIFO()}
		m.tiles[id] = mt
		m.usedTiles = append(m.usedTiles, id)
	}
	return mt
}

// Enqueue adds item to the given macro tile's FIFO and increments both
// the tile's and the manager's producer counters. Single-writer, called
// only by the FE worker executing this draw's binner.
func (m *Manager) Enqueue(id uint32, item WorkItem) {
	mt := m.Tile(id)
	mt.FIFO.Enqueue(item)
	mt.WorkItemsFE++
	m.produced.Add(1)
}

// IsWorkComplete reports whether every macro tile touched by this draw
// has fully drained (produced == consumed globally). Used by
// work_on_fifo_be to decide whether a draw can be skipped entirely when
// advancing curDrawBE (spec.md §4.C4 step 1).
func (m *Manager) IsWorkComplete() bool {
	return m.consumed.Load() == m.produced.Load()
}

// MarkTileComplete implements spec.md §4.C3.2: atomically folds the
// tile's FE-produced count into the manager's global consumed counter,
// then resets the tile's FIFO and per-tile counters. Returns true iff
// this was the draw's last outstanding tile (consumed == produced).
func (m *Manager) MarkTileComplete(id uint32) bool {
	mt, ok := m.tiles[id]
	if !ok {
		return false
	}
	m.consumed.Add(int64(mt.WorkItemsFE))
	mt.FIFO.reset()
	mt.WorkItemsFE = 0
	mt.WorkItemsBE = 0
	return m.consumed.Load() == m.produced.Load()
}
