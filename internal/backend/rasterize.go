package backend

import (
	"github.com/gogpu/swr/internal/fixed"
	"github.com/gogpu/swr/internal/tiledrt"
)

// classifyTile evaluates all three edges at a pixel tile's four corner
// pixel centers (spec.md §4.C6): trivialReject is true if any edge has
// all four corners negative; trivialAccept is true if every edge has all
// four corners non-negative. ox, oy are the tile's pixel-space origin.
func classifyTile(edges [3]fixed.Edge, ox, oy int32, use64 bool) (trivialReject, trivialAccept bool) {
	trivialAccept = true
	for i := range edges {
		vals := cornerValues(edges[i], ox, oy, use64)

		allNeg, allNonNeg := true, true
		for _, v := range vals {
			if v >= 0 {
				allNeg = false
			} else {
				allNonNeg = false
			}
		}
		if allNeg {
			return true, false
		}
		if !allNonNeg {
			trivialAccept = false
		}
	}
	return false, trivialAccept
}

// cornerValues evaluates one edge at the tile's four corner pixel
// centers: (left,top), (right,top), (left,bottom), (right,bottom).
func cornerValues(e fixed.Edge, ox, oy int32, use64 bool) [4]int64 {
	half := int32(fixed.Size / 2)
	x0 := ox*fixed.Size + half
	x1 := (ox+tiledrt.TX-1)*fixed.Size + half
	y0 := oy*fixed.Size + half
	y1 := (oy+tiledrt.TY-1)*fixed.Size + half

	eval := e.Eval64
	if !use64 {
		eval = func(x, y int32) int64 { return int64(e.Eval32(x, y)) }
	}

	return [4]int64{eval(x0, y0), eval(x1, y0), eval(x0, y1), eval(x1, y1)}
}

// rasterizePartialTile evaluates the three edges at every pixel center
// in the TX x TY tile, grouped into TX/2 x TY/2 2x2 quads (spec.md §4.C6:
// "unrolled 16 quads for TX=TY=8"), building a 64-bit row-major coverage
// mask. When needScissor is set, each pixel is additionally tested
// against the scissor rectangle.
func rasterizePartialTile(edges [3]fixed.Edge, ox, oy int32, scissor tiledrt.Rect, needScissor bool) uint64 {
	var mask uint64

	for qy := 0; qy < tiledrt.TY/2; qy++ {
		for qx := 0; qx < tiledrt.TX/2; qx++ {
			for dy := 0; dy < 2; dy++ {
				row := qy*2 + dy
				absY := int(oy) + row
				py := (oy+int32(row))*fixed.Size + fixed.Size/2

				for dx := 0; dx < 2; dx++ {
					col := qx*2 + dx
					absX := int(ox) + col
					px := (ox+int32(col))*fixed.Size + fixed.Size/2

					if !pixelInside(edges, px, py) {
						continue
					}
					if needScissor && !scissorContains(scissor, absX, absY) {
						continue
					}
					mask |= 1 << uint(row*tiledrt.TX+col)
				}
			}
		}
	}
	return mask
}

func pixelInside(edges [3]fixed.Edge, px, py int32) bool {
	for i := range edges {
		if edges[i].Eval64(px, py) < 0 {
			return false
		}
	}
	return true
}

func scissorContains(r tiledrt.Rect, x, y int) bool {
	return x >= r.X0 && x < r.X1 && y >= r.Y0 && y < r.Y1
}
