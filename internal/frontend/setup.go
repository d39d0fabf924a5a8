package frontend

import (
	"github.com/gogpu/swr/internal/fixed"
	"github.com/gogpu/swr/internal/shader"
	"github.com/gogpu/swr/internal/tiledrt"
	"github.com/gogpu/swr/internal/wide"
)

// TriRecord is one triangle's fully set-up state, as produced by
// Job.Run and looked up by the backend via WorkItem.TriIndex.
type TriRecord struct {
	Edges [3]fixed.Edge
	Bbox  fixed.Bbox
	Det   int64

	OneOverW [3]float32
	Z        [3]float32

	Attrs     [3]shader.Vertex
	Link      shader.LinkMask
	Provoking int

	// Interp holds one InterpAttr per (slot, component) pair, indexed as
	// Interp[slot*4+component]; only entries for Link.Active slots are
	// meaningful (spec.md §4.C5 step 9's interp_buffer).
	Interp [wide.SlotMax * 4]shader.InterpAttr

	Small   bool
	OneTile bool

	// TileX, TileY are the pixel-tile coordinates of the single covering
	// tile when OneTile is true.
	TileX, TileY int
	CoverageMask uint64
}

// floatVertex is one triangle corner after perspective divide and
// viewport transform, still in float screen coordinates — the stage at
// which line/point bloat offsets a source vertex into synthetic corners
// (spec.md §4.C5 "Line/point bloat") before fixed-point conversion.
type floatVertex struct {
	X, Y     float32
	OneOverW float32
	Z        float32
	V        shader.Vertex
}

// screenVertex is one triangle corner in 24.8 fixed-point screen space,
// ready for edge setup.
type screenVertex struct {
	P        fixed.Point
	OneOverW float32
	Z        float32
	V        shader.Vertex
}

// toScreen performs spec.md §4.C5 step 5's perspective divide and
// viewport transform, converting a clip-space vertex into float screen
// space.
func toScreen(pos shader.Attribute, v shader.Vertex, vp Viewport, driver tiledrt.Driver) floatVertex {
	rw := 1 / pos.W
	ndcX := pos.X * rw
	ndcY := pos.Y * rw
	ndcZ := pos.Z * rw

	x := vp.HalfW*ndcX + vp.HalfW + vp.X
	var y float32
	if driver == tiledrt.GL {
		y = vp.HalfH*ndcY + vp.HalfH + vp.Y
	} else {
		y = vp.HalfH - vp.HalfH*ndcY + vp.Y
	}
	z := 0.5*(ndcZ+1)*(vp.ZFar-vp.ZNear) + vp.ZNear

	return floatVertex{X: x, Y: y, OneOverW: rw, Z: z, V: v}
}

// toFixedVertex converts a float screen-space corner to 24.8 fixed
// point, the final step before edge setup.
func toFixedVertex(fv floatVertex) screenVertex {
	return screenVertex{
		P:        fixed.PointFromFloat(fv.X, fv.Y),
		OneOverW: fv.OneOverW,
		Z:        fv.Z,
		V:        fv.V,
	}
}

// setupTriangle performs spec.md §4.C5 steps 6-9 on three already
// screen-transformed vertices, returning the triangle record and
// whether the triangle survived culling.
func setupTriangle(verts [3]screenVertex, link shader.LinkMask, provoking int, driver tiledrt.Driver, cull CullMode, scissor tiledrt.Rect) (TriRecord, bool) {
	e0 := fixed.NewEdge(verts[0].P, verts[1].P)
	e1 := fixed.NewEdge(verts[1].P, verts[2].P)
	e2 := fixed.NewEdge(verts[2].P, verts[0].P)
	det := fixed.Determinant(e0, e1)

	if driver == tiledrt.GL {
		e0, e1, e2 = e0.Negate(), e1.Negate(), e2.Negate()
		det = -det
	}

	if det == 0 {
		return TriRecord{}, false
	}
	if cull == CullCCW && det > 0 {
		return TriRecord{}, false
	}
	if cull == CullCW && det < 0 {
		return TriRecord{}, false
	}
	// Coverage tests treat non-negative edge values as inside, so a
	// surviving triangle with negative det has its edges (and det) flipped.
	if det < 0 {
		e0, e1, e2 = e0.Negate(), e1.Negate(), e2.Negate()
		det = -det
	}

	bbox := fixed.BboxOf(verts[0].P, verts[1].P, verts[2].P)
	if bbox.SubPixel() {
		return TriRecord{}, false
	}
	// Snap the bbox to the first and last pixel centers inside it, so the
	// tile ranges derived from it count only tiles it can cover.
	const half = fixed.Size / 2
	bbox.MinX = (bbox.MinX+half-1)&^(fixed.Size-1) + half
	bbox.MinY = (bbox.MinY+half-1)&^(fixed.Size-1) + half
	bbox.MaxX = (bbox.MaxX-half)&^(fixed.Size-1) + half
	bbox.MaxY = (bbox.MaxY-half)&^(fixed.Size-1) + half

	scissorFixed := fixed.Bbox{
		MinX: int32(scissor.X0) << fixed.Width,
		MinY: int32(scissor.Y0) << fixed.Width,
		MaxX: int32(scissor.X1)<<fixed.Width - 1,
		MaxY: int32(scissor.Y1)<<fixed.Width - 1,
	}
	bbox = intersectBbox(bbox, scissorFixed)
	if bbox.MaxX < bbox.MinX || bbox.MaxY < bbox.MinY {
		return TriRecord{}, false
	}

	tr := TriRecord{
		Edges:    [3]fixed.Edge{e0, e1, e2},
		Bbox:     bbox,
		Det:      det,
		OneOverW: [3]float32{verts[0].OneOverW, verts[1].OneOverW, verts[2].OneOverW},
		Z:        [3]float32{verts[0].Z, verts[1].Z, verts[2].Z},
		Attrs:     [3]shader.Vertex{verts[0].V, verts[1].V, verts[2].V},
		Link:      link,
		Provoking: provoking,
		Small:     bbox.IsSmall(),
	}

	tileX0 := int(bbox.MinX>>fixed.Width) / tiledrt.TX
	tileX1 := int(bbox.MaxX>>fixed.Width) / tiledrt.TX
	tileY0 := int(bbox.MinY>>fixed.Width) / tiledrt.TY
	tileY1 := int(bbox.MaxY>>fixed.Width) / tiledrt.TY

	if tileX0 == tileX1 && tileY0 == tileY1 {
		mask := earlyRastMask(tr.Edges, int32(tileX0*tiledrt.TX), int32(tileY0*tiledrt.TY))
		if mask == 0 {
			return TriRecord{}, false
		}
		tr.OneTile = true
		tr.TileX = tileX0
		tr.TileY = tileY0
		tr.CoverageMask = mask
	}

	return tr, true
}

func intersectBbox(a, b fixed.Bbox) fixed.Bbox {
	out := a
	if b.MinX > out.MinX {
		out.MinX = b.MinX
	}
	if b.MinY > out.MinY {
		out.MinY = b.MinY
	}
	if b.MaxX < out.MaxX {
		out.MaxX = b.MaxX
	}
	if b.MaxY < out.MaxY {
		out.MaxY = b.MaxY
	}
	return out
}

// earlyRastMask implements spec.md §4.C5 step 8's one-tile early-rast
// test: evaluate the three edge equations at the pixel centers of every
// row in the TX x TY tile, wide.Lanes (matching TX) pixels at a time,
// top-left rule already folded in via fixed.Edge.Bias, and pack the
// result into a 64-bit coverage mask, row-major.
func earlyRastMask(edges [3]fixed.Edge, tileX, tileY int32) uint64 {
	var mask uint64
	for row := 0; row < tiledrt.TY; row++ {
		py := tileY*fixed.Size + int32(row)*fixed.Size + fixed.Size/2
		rowMask := [wide.Lanes]bool{}
		for lane := range rowMask {
			rowMask[lane] = true
		}
		for _, e := range edges {
			vals := evalEdgeRow(e, tileX, py)
			rowMask = wide.AndMask(rowMask, vals.GreaterEqualZero())
		}
		mask |= wide.PackBits(rowMask) << uint(row*tiledrt.TX)
	}
	return mask
}

// evalEdgeRow evaluates one edge equation at wide.Lanes consecutive
// pixel centers starting at tileX, for fixed y.
func evalEdgeRow(e fixed.Edge, tileX, y int32) wide.I32x8 {
	dy := y - e.RefY
	byTerm := e.B * dy
	bias := e.Bias()

	var out wide.I32x8
	for i := range out {
		x := tileX + int32(i)*fixed.Size + fixed.Size/2
		dx := x - e.RefX
		out[i] = (e.A*dx+byTerm)>>fixed.Width + bias
	}
	return out
}
