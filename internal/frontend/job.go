package frontend

import (
	"github.com/gogpu/swr/internal/ring"
	"github.com/gogpu/swr/internal/shader"
	"github.com/gogpu/swr/internal/tiledrt"
	"github.com/gogpu/swr/internal/wide"
)

// EffectiveScissor returns the configured scissor rectangle, or the full
// render-target bounds if none was set — the same default Run applies,
// exposed so the backend can recompute the identical rectangle without
// duplicating the fallback rule.
func (c *Config) EffectiveScissor() tiledrt.Rect {
	if c.ScissorPx.Empty() {
		return tiledrt.Rect{X0: 0, Y0: 0, X1: c.RTWidth, Y1: c.RTHeight}
	}
	return c.ScissorPx
}

// Run implements ring.FEWork: binning one FE work item's full vertex
// range into dc's macro tiles, per spec.md §4.C5's ten-step pipeline.
// MarkFEDone is left to the caller (internal/ring's runFE), matching
// the other FEWork implementations' contract.
func (j *Job) Run(dc *ring.DrawContext) {
	j.arena = dc.Arena
	j.tris = j.tris[:0]
	j.vertCache = make(map[int]*shader.Vertex, j.PrimCount*2)

	scissor := j.EffectiveScissor()

	if j.Topology.IsBloat() {
		j.runBloat(dc, scissor)
		return
	}
	j.runTriangles(dc, scissor)
}

func (j *Job) resolveIndex(pos int) int {
	slot := j.StartVertex + pos
	if j.Indices != nil {
		return int(j.Indices[slot])
	}
	return slot
}

func (j *Job) fetchAndShade(idx int) *shader.Vertex {
	if v, ok := j.vertCache[idx]; ok {
		return v
	}
	var in shader.Vertex
	j.Fetcher.Fetch(shader.FetchInfo{VertexIndex: idx}, &in)
	out := &shader.Vertex{}
	j.VertexProcessor.ProcessVertex(&in, out)
	j.vertCache[idx] = out
	return out
}

func (j *Job) runTriangles(dc *ring.DrawContext, scissor tiledrt.Rect) {
	specs := assembleTriangles(j.Topology, j.PrimCount)

	for _, spec := range specs {
		var verts [3]*shader.Vertex
		var codes [3]ClipCode
		for i, pos := range spec.Pos {
			idx := j.resolveIndex(pos)
			verts[i] = j.fetchAndShade(idx)
			p := verts[i].Slots[clipPositionSlot]
			codes[i] = computeClipCode(p.X, p.Y, p.Z, p.W, j.GuardbandRatio)
		}

		if codes[0]&codes[1]&codes[2]&frustumMask != 0 {
			continue // trivially outside the view frustum
		}

		needsClip := (codes[0]|codes[1]|codes[2])&guardMask != 0
		if !needsClip {
			j.emitTriangle(dc, verts, spec.Provoking, scissor)
			continue
		}

		var tri [3]clipVertex
		for i, v := range verts {
			p := v.Slots[clipPositionSlot]
			tri[i] = clipVertex{X: p.X, Y: p.Y, Z: p.Z, W: p.W, V: *v}
		}
		poly := clipTriangle(tri, j.GuardbandRatio)
		j.binClippedFan(dc, poly, scissor)
	}
}

// binClippedFan triangulates a clipped polygon as a fan from vertex 0
// and runs each resulting triangle through perspective divide onward.
func (j *Job) binClippedFan(dc *ring.DrawContext, poly []clipVertex, scissor tiledrt.Rect) {
	for i := 1; i+1 < len(poly); i++ {
		v0 := polyToVertex(poly[0])
		v1 := polyToVertex(poly[i])
		v2 := polyToVertex(poly[i+1])
		j.emitTriangle(dc, [3]*shader.Vertex{&v0, &v1, &v2}, 2, scissor)
	}
}

func polyToVertex(cv clipVertex) shader.Vertex {
	v := cv.V
	v.Slots[clipPositionSlot] = shader.Attribute{X: cv.X, Y: cv.Y, Z: cv.Z, W: cv.W}
	return v
}

// emitTriangle runs steps 5-10 on three clip-space-culled vertices.
func (j *Job) emitTriangle(dc *ring.DrawContext, verts [3]*shader.Vertex, provoking int, scissor tiledrt.Rect) {
	var screen [3]screenVertex
	for i, v := range verts {
		fv := toScreen(v.Slots[clipPositionSlot], *v, j.Viewport, j.Driver)
		screen[i] = toFixedVertex(fv)
	}

	tr, ok := setupTriangle(screen, j.Link, provoking, j.Driver, j.CullMode, scissor)
	if !ok {
		return
	}
	buildInterp(&tr)

	idx := j.appendTri(tr)
	binTriangle(&j.tris[idx], idx, &j.Config, dc.TileMgr)
}

func (j *Job) runBloat(dc *ring.DrawContext, scissor tiledrt.Rect) {
	specs := assembleBloats(j.Topology, j.PrimCount)

	for _, spec := range specs {
		aIdx := j.resolveIndex(spec.Pos[0])
		a := j.fetchAndShade(aIdx)
		ap := a.Slots[clipPositionSlot]
		if computeClipCode(ap.X, ap.Y, ap.Z, ap.W, j.GuardbandRatio)&frustumMask != 0 {
			continue
		}
		af := toScreen(ap, *a, j.Viewport, j.Driver)

		var tris [2][3]floatVertex
		if spec.IsPoint {
			tris = bloatPoint(af)
		} else {
			bIdx := j.resolveIndex(spec.Pos[1])
			b := j.fetchAndShade(bIdx)
			bp := b.Slots[clipPositionSlot]
			if computeClipCode(bp.X, bp.Y, bp.Z, bp.W, j.GuardbandRatio)&frustumMask != 0 {
				continue
			}
			bf := toScreen(bp, *b, j.Viewport, j.Driver)
			tris = bloatLine(af, bf)
		}

		for _, t := range tris {
			var screen [3]screenVertex
			for i, fv := range t {
				screen[i] = toFixedVertex(fv)
			}
			tr, ok := setupTriangle(screen, j.Link, 2, j.Driver, CullNone, scissor)
			if !ok {
				continue
			}
			buildInterp(&tr)

			idx := j.appendTri(tr)
			binTriangle(&j.tris[idx], idx, &j.Config, dc.TileMgr)
		}
	}
}

// clipPositionSlot is the attribute slot carrying the vertex shader's
// clip-space position output.
const clipPositionSlot = wide.SlotPosition
