// Package tiledrt implements the tile-swizzled render target (C2): a
// BGRA8/R32F pixel store laid out so each pixel tile's sub-tiles are
// contiguous in memory, plus clear/store primitives that operate at
// tile granularity.
package tiledrt

import "math"

// Format enumerates the two pixel formats the core supports.
type Format int

const (
	BGRA8Unorm Format = iota
	R32Float
)

// Bpp returns the bytes-per-pixel for a format; both supported formats
// are 4 bytes, matching spec.md's "all operations require bpp == 4".
func (f Format) Bpp() int { return 4 }

// Tile geometry defaults (spec.md §3: "typical: 8x8"; SPEC_FULL §3
// concretizes TX=TY=8).
const (
	TX = 8
	TY = 8

	log2TX = 3
	log2TY = 3
)

// Driver selects the y-origin convention: DX keeps y increasing downward
// in the viewport transform and tile store; GL inverts it (bottom-left
// origin), per spec.md §6.
type Driver int

const (
	DX Driver = iota
	GL
)

// RenderTarget owns one tile-swizzled pixel plane.
type RenderTarget struct {
	Format Format
	Width  int
	Height int

	widthInTiles  int
	heightInTiles int
	data          []byte
}

// New allocates a render target for width x height pixels, rounding up
// to a whole number of TX x TY tiles.
func New(width, height int, format Format) *RenderTarget {
	wt := (width + TX - 1) / TX
	ht := (height + TY - 1) / TY
	rt := &RenderTarget{
		Format:        format,
		Width:         width,
		Height:        height,
		widthInTiles:  wt,
		heightInTiles: ht,
	}
	rt.data = make([]byte, wt*ht*TX*TY*format.Bpp())
	return rt
}

// WidthInTiles and HeightInTiles expose the tile grid dimensions, used by
// the root package's clear and present loops to visit every tile.
func (rt *RenderTarget) WidthInTiles() int  { return rt.widthInTiles }
func (rt *RenderTarget) HeightInTiles() int { return rt.heightInTiles }

// swizzleOffset computes the byte offset of pixel (x,y) within the
// tile-swizzled buffer, per spec.md §3's formula: each 4x2 sub-tile is
// contiguous, and pairs of sub-tiles interleave along x.
func (rt *RenderTarget) swizzleOffset(x, y int) int {
	bpp := rt.Format.Bpp()
	tileX := x >> log2TX
	tileY := y >> log2TY
	ox := x & (TX - 1)
	oy := y & (TY - 1)

	intra := ((ox*bpp)<<1)&0x30 | (ox*bpp)&0x07 |
		(oy<<5)&0xC0 | (oy<<3)&0x08

	base := tileY*(rt.widthInTiles*TX*TY*bpp) + tileX*(TX*TY*bpp)
	return base + intra
}

// PixelOffset exposes the swizzle formula for callers (the backend's
// pixel shader invocation and tests) that need the byte offset of a
// single pixel without going through a tile-store path.
func (rt *RenderTarget) PixelOffset(x, y int) int {
	return rt.swizzleOffset(x, y)
}

// Data returns the raw swizzled byte storage, for tests and the
// rasterizer's quad-write fast path.
func (rt *RenderTarget) Data() []byte { return rt.data }

// ClearTile stores the broadcast value across every pixel of the pixel
// tile at tile coordinates (tileX, tileY). For BGRA8Unorm, value is a
// packed BGRA8 u32; for R32Float, the bit pattern of a float32.
func (rt *RenderTarget) ClearTile(tileX, tileY int, value uint32) {
	x0, y0 := tileX*TX, tileY*TY
	for y := y0; y < y0+TY; y++ {
		for x := x0; x < x0+TX; x++ {
			rt.writePixel(x, y, value)
		}
	}
}

// ClearMacroTile loops over the pixel tiles contained in a macro tile,
// intersected with the scissor rectangle (in pixels), clearing each.
func (rt *RenderTarget) ClearMacroTile(mtX, mtY, macroTilesW, macroTilesH int, scissor Rect, value uint32) {
	x0 := mtX * macroTilesW * TX
	y0 := mtY * macroTilesH * TY
	for ty := 0; ty < macroTilesH; ty++ {
		for tx := 0; tx < macroTilesW; tx++ {
			tileX := x0/TX + tx
			tileY := y0/TY + ty
			tileRect := Rect{X0: tileX * TX, Y0: tileY * TY, X1: tileX*TX + TX, Y1: tileY*TY + TY}
			if !scissor.Intersects(tileRect) {
				continue
			}
			rt.clearTileScissored(tileX, tileY, scissor, value)
		}
	}
}

func (rt *RenderTarget) clearTileScissored(tileX, tileY int, scissor Rect, value uint32) {
	x0, y0 := tileX*TX, tileY*TY
	for y := y0; y < y0+TY; y++ {
		if y < scissor.Y0 || y >= scissor.Y1 {
			continue
		}
		for x := x0; x < x0+TX; x++ {
			if x < scissor.X0 || x >= scissor.X1 {
				continue
			}
			rt.writePixel(x, y, value)
		}
	}
}

func (rt *RenderTarget) writePixel(x, y int, value uint32) {
	if x < 0 || x >= rt.Width || y < 0 || y >= rt.Height {
		return
	}
	off := rt.swizzleOffset(x, y)
	rt.data[off+0] = byte(value)
	rt.data[off+1] = byte(value >> 8)
	rt.data[off+2] = byte(value >> 16)
	rt.data[off+3] = byte(value >> 24)
}

// Rect is an inclusive-exclusive pixel rectangle [X0,X1) x [Y0,Y1).
type Rect struct {
	X0, Y0, X1, Y1 int
}

// Intersects reports whether r and o overlap.
func (r Rect) Intersects(o Rect) bool {
	return r.X0 < o.X1 && o.X0 < r.X1 && r.Y0 < o.Y1 && o.Y0 < r.Y1
}

// Empty reports whether the rect has zero or negative area.
func (r Rect) Empty() bool { return r.X1 <= r.X0 || r.Y1 <= r.Y0 }

// StoreTile deswizzles one full pixel tile into a linear destination
// buffer at the given row pitch (bytes). If driver == GL, rows are
// written bottom-to-top (origin at bottom-left).
func (rt *RenderTarget) StoreTile(tileX, tileY int, driver Driver, dst []byte, pitch int) {
	rt.storeTileRect(tileX, tileY, 0, 0, TX, TY, driver, dst, pitch)
}

// StoreTilePartial deswizzles only the (w,h) valid portion of an edge
// tile smaller than a full TX x TY tile.
func (rt *RenderTarget) StoreTilePartial(tileX, tileY, w, h int, driver Driver, dst []byte, pitch int) {
	rt.storeTileRect(tileX, tileY, 0, 0, w, h, driver, dst, pitch)
}

func (rt *RenderTarget) storeTileRect(tileX, tileY, ox, oy, w, h int, driver Driver, dst []byte, pitch int) {
	bpp := rt.Format.Bpp()
	baseX := tileX*TX + ox
	baseY := tileY*TY + oy

	for row := 0; row < h; row++ {
		srcY := baseY + row
		dstRow := row
		if driver == GL {
			dstRow = h - 1 - row
		}
		dstOff := dstRow * pitch
		for col := 0; col < w; col++ {
			srcX := baseX + col
			so := rt.swizzleOffset(srcX, srcY)
			do := dstOff + col*bpp
			if do+bpp > len(dst) || so+bpp > len(rt.data) {
				continue
			}
			copy(dst[do:do+bpp], rt.data[so:so+bpp])
		}
	}
}

// PackBGRA packs four 8-bit channels into a BGRA8Unorm u32.
func PackBGRA(r, g, b, a uint8) uint32 {
	return uint32(b) | uint32(g)<<8 | uint32(r)<<16 | uint32(a)<<24
}

// PackFloat returns the bit pattern of f, for R32Float clears/writes.
func PackFloat(f float32) uint32 {
	return math.Float32bits(f)
}
