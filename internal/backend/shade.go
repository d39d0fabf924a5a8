package backend

import (
	"math"

	"github.com/gogpu/swr/internal/fixed"
	"github.com/gogpu/swr/internal/frontend"
	"github.com/gogpu/swr/internal/ring"
	"github.com/gogpu/swr/internal/shader"
	"github.com/gogpu/swr/internal/tiledrt"
)

// shadeTile invokes the pixel shader once for the tile at pixel origin
// (originX, originY) with the given coverage mask, then applies the
// depth test/write and tile-swizzled writeback for every covered pixel
// (spec.md §4.C6 steps 3 and 5).
func (r *Rasterizer) shadeTile(dc *ring.DrawContext, job *frontend.Job, tr *frontend.TriRecord, originX, originY int, mask uint64) {
	sh := job.PixelShader
	if sh == nil {
		sh = r.Shader
	}
	if sh == nil || mask == 0 {
		return
	}

	desc := shader.TriangleDesc{
		I:            buildBaryPlane(tr.Edges[1], tr.Det),
		J:            buildBaryPlane(tr.Edges[2], tr.Det),
		OneOverW:     tr.OneOverW,
		Z:            tr.Z,
		Interp:       tr.Interp,
		Attrs:        tr.Attrs,
		Link:         tr.Link,
		TileX:        originX,
		TileY:        originY,
		CoverageMask: mask,
	}

	var out shader.PixelOutput
	sh.Shade(&desc, &out)

	writeTile(dc, job, originX, originY, mask, &out)
}

// buildBaryPlane turns an edge equation into the screen-space plane
// giving the barycentric weight of the vertex it is opposite to:
// w = rawEdgeEval(x,y) / det, expressed directly as A*x + B*y + C so the
// pixel shader can evaluate it without repeating the fixed-point math.
func buildBaryPlane(e fixed.Edge, det int64) shader.BaryPlane {
	detF := float32(det)
	if detF == 0 {
		return shader.BaryPlane{}
	}
	half := float32(fixed.Size) / 2
	size := float32(fixed.Size)
	return shader.BaryPlane{
		A: float32(e.A) * size / detF,
		B: float32(e.B) * size / detF,
		C: (float32(e.A)*(half-float32(e.RefX)) + float32(e.B)*(half-float32(e.RefY))) / detF,
	}
}

// writeTile writes every covered pixel's shaded color (and, if a depth
// target is bound, its depth) into the draw's render targets, applying
// the depth test and write mask per pixel before the color write.
func writeTile(dc *ring.DrawContext, job *frontend.Job, originX, originY int, mask uint64, out *shader.PixelOutput) {
	for row := 0; row < tiledrt.TY; row++ {
		y := originY + row
		if y < 0 || y >= job.RTHeight {
			continue
		}
		for col := 0; col < tiledrt.TX; col++ {
			bit := uint(row*tiledrt.TX + col)
			if mask&(1<<bit) == 0 {
				continue
			}
			x := originX + col
			if x < 0 || x >= job.RTWidth {
				continue
			}

			newZ := out.Depth[bit]
			if dc.DepthRT != nil && job.DepthFunc != nil {
				if !job.DepthFunc(newZ, readDepth(dc.DepthRT, x, y)) {
					continue
				}
			}

			if dc.ColorRT != nil {
				writePacked(dc.ColorRT, x, y, out.Color[bit])
			}
			if dc.DepthRT != nil && job.DepthWriteEnabled {
				writePacked(dc.DepthRT, x, y, math.Float32bits(newZ))
			}
		}
	}
}

func readDepth(rt *tiledrt.RenderTarget, x, y int) float32 {
	off := rt.PixelOffset(x, y)
	data := rt.Data()
	bits := uint32(data[off]) | uint32(data[off+1])<<8 | uint32(data[off+2])<<16 | uint32(data[off+3])<<24
	return math.Float32frombits(bits)
}

func writePacked(rt *tiledrt.RenderTarget, x, y int, v uint32) {
	off := rt.PixelOffset(x, y)
	data := rt.Data()
	data[off+0] = byte(v)
	data[off+1] = byte(v >> 8)
	data[off+2] = byte(v >> 16)
	data[off+3] = byte(v >> 24)
}
