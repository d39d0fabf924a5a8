package frontend

import (
	"github.com/gogpu/swr/internal/fixed"
	"github.com/gogpu/swr/internal/tiledrt"
	"github.com/gogpu/swr/internal/tilemgr"
)

// binTriangle implements spec.md §4.C5 step 10: for each macro tile
// overlapping the triangle's bbox, enqueue a work item of the kind
// selected by classification.
func binTriangle(tr *TriRecord, triIndex int32, cfg *Config, mgr *tilemgr.Manager) {
	kind := tilemgr.KindLarge
	switch {
	case tr.OneTile:
		kind = tilemgr.KindOneTile
	case tr.Small:
		kind = tilemgr.KindSmall
	}

	tileX0 := int(tr.Bbox.MinX>>fixed.Width) / tiledrt.TX
	tileX1 := int(tr.Bbox.MaxX>>fixed.Width) / tiledrt.TX
	tileY0 := int(tr.Bbox.MinY>>fixed.Width) / tiledrt.TY
	tileY1 := int(tr.Bbox.MaxY>>fixed.Width) / tiledrt.TY

	mw, mh := cfg.MacroTile.W, cfg.MacroTile.H
	if mw <= 0 {
		mw = DefaultMacroTileDim.W
	}
	if mh <= 0 {
		mh = DefaultMacroTileDim.H
	}

	macroX0 := tileX0 / mw
	macroX1 := tileX1 / mw
	macroY0 := tileY0 / mh
	macroY1 := tileY1 / mh

	item := tilemgr.WorkItem{Kind: kind, TriIndex: triIndex, CoverageMask: tr.CoverageMask}

	for my := macroY0; my <= macroY1; my++ {
		for mx := macroX0; mx <= macroX1; mx++ {
			mgr.Enqueue(tilemgr.TileID(mx, my), item)
		}
	}
}
