package tilemgr

import "testing"

func TestTileIDPacksCoordinates(t *testing.T) {
	id := TileID(3, 5)
	if id != uint32(3)<<16|5 {
		t.Errorf("TileID(3,5) = %#x, want %#x", id, uint32(3)<<16|5)
	}
}

func TestEnqueueThenMarkTileCompleteRetiresDraw(t *testing.T) {
	m := New()
	id := TileID(0, 0)

	m.Enqueue(id, WorkItem{Kind: KindLarge})
	m.Enqueue(id, WorkItem{Kind: KindSmall})

	if m.IsWorkComplete() {
		t.Fatal("work should not be complete before any tile drains")
	}

	mt := m.Tile(id)
	mt.WorkItemsBE = mt.WorkItemsFE // simulate the backend having drained both items

	retired := m.MarkTileComplete(id)
	if !retired {
		t.Error("MarkTileComplete should report the draw fully retired (only tile, fully drained)")
	}
	if !m.IsWorkComplete() {
		t.Error("IsWorkComplete should be true after the only tile retires")
	}
}

func TestMarkTileCompleteOnlyTrueWhenAllTilesDrain(t *testing.T) {
	m := New()
	a := TileID(0, 0)
	b := TileID(1, 0)

	m.Enqueue(a, WorkItem{})
	m.Enqueue(b, WorkItem{})

	mtA := m.Tile(a)
	mtA.WorkItemsBE = mtA.WorkItemsFE
	if retired := m.MarkTileComplete(a); retired {
		t.Error("MarkTileComplete(a) should not report full retirement while b is outstanding")
	}

	mtB := m.Tile(b)
	mtB.WorkItemsBE = mtB.WorkItemsFE
	if retired := m.MarkTileComplete(b); !retired {
		t.Error("MarkTileComplete(b) should report full retirement once both tiles drained")
	}
}

func TestUsedTilesTracksDistinctIDs(t *testing.T) {
	m := New()
	m.Enqueue(TileID(0, 0), WorkItem{})
	m.Enqueue(TileID(0, 0), WorkItem{})
	m.Enqueue(TileID(1, 1), WorkItem{})

	used := m.UsedTiles()
	if len(used) != 2 {
		t.Errorf("UsedTiles() has %d entries, want 2", len(used))
	}
}

func TestResetClearsManagerState(t *testing.T) {
	m := New()
	m.Enqueue(TileID(0, 0), WorkItem{})
	m.Reset()

	if len(m.UsedTiles()) != 0 {
		t.Error("UsedTiles should be empty after Reset")
	}
	if !m.IsWorkComplete() {
		t.Error("a freshly reset manager should report work complete (0 == 0)")
	}
}

func TestMacroTileIsComplete(t *testing.T) {
	mt := &MacroTile{WorkItemsFE: 3, WorkItemsBE: 2}
	if mt.IsComplete() {
		t.Error("tile with unconsumed items should not be complete")
	}
	mt.WorkItemsBE = 3
	if !mt.IsComplete() {
		t.Error("tile with FE==BE should be complete")
	}
}
