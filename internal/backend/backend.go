// Package backend implements the rasterizer and pixel dispatch (C6):
// three macro-tile work-item entry points sharing coverage-classification
// code, quad-granularity partial-tile coverage testing, pixel shader
// invocation, depth test/write, and tile-swizzled render target writeback.
package backend

import (
	"github.com/gogpu/swr/internal/fixed"
	"github.com/gogpu/swr/internal/frontend"
	"github.com/gogpu/swr/internal/ring"
	"github.com/gogpu/swr/internal/shader"
	"github.com/gogpu/swr/internal/tiledrt"
	"github.com/gogpu/swr/internal/tilemgr"
)

// Rasterizer implements ring.BERunner, dispatching one macro-tile work
// item at a time to the pixel shader bound on the draw's Job
// (frontend.Config.PixelShader). Shader is a fallback used only when a
// Job leaves PixelShader nil.
type Rasterizer struct {
	Shader shader.PixelShader
}

var _ ring.BERunner = (*Rasterizer)(nil)

// RunTile implements ring.BERunner. item.Kind selects rast_large,
// rast_small or rast_one_tile; all three share classifyTile and
// rasterizePartialTile, differing only in which tiles they visit and
// whether edge math stays in 32 bits.
func (r *Rasterizer) RunTile(dc *ring.DrawContext, tileID uint32, item tilemgr.WorkItem) {
	job, ok := dc.State.(*frontend.Job)
	if !ok || job == nil {
		return
	}
	tr := job.Triangle(item.TriIndex)

	switch item.Kind {
	case tilemgr.KindOneTile:
		r.rastOneTile(dc, job, tr, item)
	case tilemgr.KindSmall:
		r.rasterizeCoarse(dc, job, tr, tileID, false)
	default:
		r.rasterizeCoarse(dc, job, tr, tileID, true)
	}
}

// rastOneTile uses the frontend's precomputed early-rast coverage mask
// directly, with a single pixel-shader call (spec.md §4.C6).
func (r *Rasterizer) rastOneTile(dc *ring.DrawContext, job *frontend.Job, tr *frontend.TriRecord, item tilemgr.WorkItem) {
	if item.CoverageMask == 0 {
		return
	}
	r.shadeTile(dc, job, tr, tr.TileX*tiledrt.TX, tr.TileY*tiledrt.TY, item.CoverageMask)
}

// rasterizeCoarse implements rast_large (use64 == true) and rast_small
// (use64 == false): visit every whole pixel tile in the triangle's
// bbox restricted to the macro tile tileID names, classifying each as
// trivial-reject, trivial-accept or partial.
func (r *Rasterizer) rasterizeCoarse(dc *ring.DrawContext, job *frontend.Job, tr *frontend.TriRecord, tileID uint32, use64 bool) {
	scissor := job.EffectiveScissor()

	bboxX0 := int(tr.Bbox.MinX>>fixed.Width) / tiledrt.TX
	bboxX1 := int(tr.Bbox.MaxX>>fixed.Width) / tiledrt.TX
	bboxY0 := int(tr.Bbox.MinY>>fixed.Width) / tiledrt.TY
	bboxY1 := int(tr.Bbox.MaxY>>fixed.Width) / tiledrt.TY

	mx, my := decodeTileID(tileID)
	mw, mh := job.MacroTile.W, job.MacroTile.H
	if mw <= 0 {
		mw = frontend.DefaultMacroTileDim.W
	}
	if mh <= 0 {
		mh = frontend.DefaultMacroTileDim.H
	}

	tileX0 := maxInt(bboxX0, mx*mw)
	tileX1 := minInt(bboxX1, mx*mw+mw-1)
	tileY0 := maxInt(bboxY0, my*mh)
	tileY1 := minInt(bboxY1, my*mh+mh-1)

	for ty := tileY0; ty <= tileY1; ty++ {
		for tx := tileX0; tx <= tileX1; tx++ {
			ox, oy := int32(tx*tiledrt.TX), int32(ty*tiledrt.TY)

			reject, accept := classifyTile(tr.Edges, ox, oy, use64)
			if reject {
				continue
			}

			needScissor := tileNeedsScissor(tx, ty, scissor)

			var mask uint64
			if accept && !needScissor {
				mask = ^uint64(0)
			} else {
				mask = rasterizePartialTile(tr.Edges, ox, oy, scissor, needScissor)
			}
			if mask == 0 {
				continue
			}
			r.shadeTile(dc, job, tr, tx*tiledrt.TX, ty*tiledrt.TY, mask)
		}
	}
}

// decodeTileID reverses tilemgr.TileID's packing.
func decodeTileID(id uint32) (macroX, macroY int) {
	return int(id >> 16), int(id & 0xFFFF)
}

// tileNeedsScissor reports whether the pixel tile at (tx,ty) (in pixel-
// tile coordinates) is not fully contained within scissor, i.e. whether
// a per-pixel scissor test is required for it.
func tileNeedsScissor(tx, ty int, scissor tiledrt.Rect) bool {
	x0, y0 := tx*tiledrt.TX, ty*tiledrt.TY
	x1, y1 := x0+tiledrt.TX, y0+tiledrt.TY
	return x0 < scissor.X0 || y0 < scissor.Y0 || x1 > scissor.X1 || y1 > scissor.Y1
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
