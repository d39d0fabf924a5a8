package swr

import (
	"testing"

	"github.com/gogpu/swr/internal/shader"
	"github.com/gogpu/swr/internal/tiledrt"
)

// ndcFromPixel inverts internal/frontend's toScreen viewport transform
// (DX driver, vp.X == vp.Y == 0) so a scenario can be specified directly
// in target pixel coordinates, matching spec.md §8's literal scenarios.
func ndcFromPixel(px, py, halfW, halfH float32) (float32, float32) {
	return (px - halfW) / halfW, (halfH - py) / halfH
}

func solidColorDrawState(rt *RenderTarget, pos []shader.Attribute, color uint32, cull CullMode, halfW, halfH float32) DrawState {
	return DrawState{
		Fetcher:         fakeFetcher{pos: pos},
		VertexProcessor: identityVS{},
		PixelShader:     solidShader{color: color},
		Viewport:        Viewport{HalfW: halfW, HalfH: halfH, ZNear: 0, ZFar: 1},
		Driver:          DX,
		CullMode:        cull,
		GuardbandRatio:  2,
		MacroTileDim:    DefaultMacroTileDim,
		RenderTargets:   [2]*RenderTarget{rt, nil},
	}
}

// Scenario 1 (spec.md §8): an 8x8 render target cleared to zero, one
// triangle with corners at pixel centers (0.5,0.5), (7.5,0.5),
// (0.5,7.5), shaded solid white. Every pixel whose center satisfies
// x+y <= 7 must end up white; every other pixel must remain cleared.
func TestScenarioSingleTileTriangle(t *testing.T) {
	ctx := CreateContext(WithSingleThreaded())
	defer ctx.Destroy()

	rt := ctx.CreateRenderTarget(8, 8, tiledrt.BGRA8Unorm)

	x0, y0 := ndcFromPixel(0.5, 0.5, 4, 4)
	x1, y1 := ndcFromPixel(7.5, 0.5, 4, 4)
	x2, y2 := ndcFromPixel(0.5, 7.5, 4, 4)
	pos := []shader.Attribute{
		{X: x0, Y: y0, Z: 0, W: 1},
		{X: x1, Y: y1, Z: 0, W: 1},
		{X: x2, Y: y2, Z: 0, W: 1},
	}

	ds := solidColorDrawState(rt, pos, 0xFFFFFFFF, CullNone, 4, 4)
	ctx.Draw(ds, TriangleList, 0, 1)
	ctx.WaitForIdle()

	want := 0
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			off := rt.PixelOffset(x, y)
			data := rt.Data()
			isSet := data[off] != 0 || data[off+1] != 0 || data[off+2] != 0 || data[off+3] != 0
			shouldBeSet := x+y <= 7
			if shouldBeSet {
				want++
			}
			if isSet != shouldBeSet {
				t.Fatalf("pixel (%d,%d) set=%v, want %v", x, y, isSet, shouldBeSet)
			}
		}
	}
	if want != 36 {
		t.Fatalf("internal test error: expected-set count = %d, want 36", want)
	}
}

// Scenario 2 (spec.md §8): the same triangle, but with a cull mode that
// discards its winding — the render target must come out unchanged
// from a zero clear.
func TestScenarioBackfaceCulled(t *testing.T) {
	ctx := CreateContext(WithSingleThreaded())
	defer ctx.Destroy()

	rt := ctx.CreateRenderTarget(8, 8, tiledrt.BGRA8Unorm)

	x0, y0 := ndcFromPixel(0.5, 0.5, 4, 4)
	x1, y1 := ndcFromPixel(7.5, 0.5, 4, 4)
	x2, y2 := ndcFromPixel(0.5, 7.5, 4, 4)
	pos := []shader.Attribute{
		{X: x0, Y: y0, Z: 0, W: 1},
		{X: x1, Y: y1, Z: 0, W: 1},
		{X: x2, Y: y2, Z: 0, W: 1},
	}

	// This exact vertex order renders under CullNone (previous test);
	// culling its own winding must discard it entirely.
	ds := solidColorDrawState(rt, pos, 0xFFFFFFFF, CullCCW, 4, 4)
	ctx.Draw(ds, TriangleList, 0, 1)
	ctx.WaitForIdle()

	if n := countNonZero(rt, 8, 8); n != 0 {
		t.Fatalf("expected a backface-culled triangle to leave the target unchanged, got %d set pixels", n)
	}
}

// Scenario 3 (spec.md §8): a 32x32 render target with a triangle whose
// bounding box is exactly 16x16 at the tile origin. No pixel outside
// that bbox may ever be shaded.
func TestScenarioMultiTileTriangleStaysWithinBbox(t *testing.T) {
	ctx := CreateContext(WithSingleThreaded())
	defer ctx.Destroy()

	rt := ctx.CreateRenderTarget(32, 32, tiledrt.BGRA8Unorm)

	x0, y0 := ndcFromPixel(0, 0, 16, 16)
	x1, y1 := ndcFromPixel(16, 0, 16, 16)
	x2, y2 := ndcFromPixel(0, 16, 16, 16)
	pos := []shader.Attribute{
		{X: x0, Y: y0, Z: 0, W: 1},
		{X: x1, Y: y1, Z: 0, W: 1},
		{X: x2, Y: y2, Z: 0, W: 1},
	}

	ds := solidColorDrawState(rt, pos, 0xFFFFFFFF, CullNone, 16, 16)
	ctx.Draw(ds, TriangleList, 0, 1)
	ctx.WaitForIdle()

	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			if x < 16 && y < 16 {
				continue
			}
			off := rt.PixelOffset(x, y)
			data := rt.Data()
			if data[off] != 0 || data[off+1] != 0 || data[off+2] != 0 || data[off+3] != 0 {
				t.Fatalf("pixel (%d,%d) outside the triangle's 16x16 bbox was shaded", x, y)
			}
		}
	}
}

// Scenario 4 (spec.md §8): draw #1 writes green at depth 0.5 with no
// depth test; draw #2 writes blue at depth 0.3 with depth_func = LESS.
// Every pixel must end up blue.
func TestScenarioCrossDrawDepthOrdering(t *testing.T) {
	ctx := CreateContext(WithSingleThreaded())
	defer ctx.Destroy()

	const w, h = 16, 16
	color := ctx.CreateRenderTarget(w, h, tiledrt.BGRA8Unorm)
	depth := ctx.CreateRenderTarget(w, h, tiledrt.R32Float)

	ctx.ClearRT(color, tiledrt.PackBGRA(255, 0, 0, 255))

	// A quad (two triangles) covering the full viewport and then some,
	// safely inside the default guardband (ratio 2, so |x|,|y| <= 2).
	quad := []shader.Attribute{
		{X: -2, Y: -2, Z: 0, W: 1},
		{X: 2, Y: -2, Z: 0, W: 1},
		{X: 2, Y: 2, Z: 0, W: 1},
		{X: -2, Y: 2, Z: 0, W: 1},
	}
	idx := ctx.CreateBufferUp([]byte{
		0, 0, 1, 0, 2, 0,
		0, 0, 2, 0, 3, 0,
	}, -1)

	depthShade := func(col uint32, z float32) PixelShader {
		return depthWriteShader{color: col, depth: z}
	}

	ds1 := DrawState{
		Fetcher:           fakeFetcher{pos: quad},
		VertexProcessor:   identityVS{},
		PixelShader:       depthShade(tiledrt.PackBGRA(0, 255, 0, 255), 0.5),
		Viewport:          Viewport{HalfW: w / 2, HalfH: h / 2, ZNear: 0, ZFar: 1},
		Driver:            DX,
		CullMode:          CullNone,
		GuardbandRatio:    2,
		MacroTileDim:      DefaultMacroTileDim,
		RenderTargets:     [2]*RenderTarget{color, depth},
		DepthWriteEnabled: true,
	}
	ctx.DrawIndexed(ds1, TriangleList, idx, IndexU16, 0, 6)
	ctx.WaitForIdle()

	ds2 := ds1
	ds2.PixelShader = depthShade(tiledrt.PackBGRA(0, 0, 255, 255), 0.3)
	ds2.DepthFunc = func(newZ, oldZ float32) bool { return newZ < oldZ }
	ctx.DrawIndexed(ds2, TriangleList, idx, IndexU16, 0, 6)
	ctx.WaitForIdle()

	want := tiledrt.PackBGRA(0, 0, 255, 255)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			off := color.PixelOffset(x, y)
			data := color.Data()
			got := uint32(data[off]) | uint32(data[off+1])<<8 | uint32(data[off+2])<<16 | uint32(data[off+3])<<24
			if got != want {
				t.Fatalf("pixel (%d,%d) = %#x, want %#x (blue)", x, y, got, want)
			}
		}
	}
}

// depthWriteShader paints every covered pixel a fixed color and depth.
type depthWriteShader struct {
	color uint32
	depth float32
}

func (s depthWriteShader) Shade(desc *shader.TriangleDesc, out *shader.PixelOutput) {
	for i := 0; i < 64; i++ {
		if desc.CoverageMask&(1<<uint(i)) == 0 {
			continue
		}
		out.Color[i] = s.color
		out.Depth[i] = s.depth
	}
}

// Scenario 5 (spec.md §8): a triangle with one vertex near the
// guardband boundary must still rasterize without error, shading only
// part of the target rather than the whole or none of it.
func TestScenarioGuardbandEdgeTriangleRastersPartially(t *testing.T) {
	ctx := CreateContext(WithSingleThreaded())
	defer ctx.Destroy()

	rt := ctx.CreateRenderTarget(16, 16, tiledrt.BGRA8Unorm)

	pos := []shader.Attribute{
		{X: -0.5, Y: -0.5, Z: 0, W: 1},
		{X: -0.5, Y: 0.5, Z: 0, W: 1},
		// Near the right guardband plane (gw = GuardbandRatio * w = 1.8).
		{X: 1.8, Y: 0, Z: 0, W: 1},
	}
	ds := solidColorDrawState(rt, pos, 0xFFFFFFFF, CullNone, 8, 8)
	ds.GuardbandRatio = 1.8

	ctx.Draw(ds, TriangleList, 0, 1)
	ctx.WaitForIdle()

	n := countNonZero(rt, 16, 16)
	if n == 0 {
		t.Fatal("expected the guardband-crossing triangle to shade at least one pixel")
	}
	if n >= 16*16 {
		t.Fatal("expected the guardband-crossing triangle to shade fewer than the full target")
	}
}

// Scenario 6 (spec.md §8): clearing a 16x16 target with a scissor of
// (4,4)-(12,12) must touch only the 64 pixels inside that rectangle,
// leaving every other pixel at its prior value.
func TestScenarioScissoredClear(t *testing.T) {
	ctx := CreateContext(WithSingleThreaded())
	defer ctx.Destroy()

	rt := ctx.CreateRenderTarget(16, 16, tiledrt.BGRA8Unorm)
	prior := tiledrt.PackBGRA(1, 2, 3, 4)
	ctx.ClearRT(rt, prior)

	next := tiledrt.PackBGRA(10, 20, 30, 40)
	ctx.ClearRTScissored(rt, Rect{X0: 4, Y0: 4, X1: 12, Y1: 12}, next)

	insideCount := 0
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			off := rt.PixelOffset(x, y)
			data := rt.Data()
			got := uint32(data[off]) | uint32(data[off+1])<<8 | uint32(data[off+2])<<16 | uint32(data[off+3])<<24

			inside := x >= 4 && x < 12 && y >= 4 && y < 12
			if inside {
				insideCount++
				if got != next {
					t.Fatalf("pixel (%d,%d) inside scissor = %#x, want %#x", x, y, got, next)
				}
			} else if got != prior {
				t.Fatalf("pixel (%d,%d) outside scissor = %#x, want unchanged %#x", x, y, got, prior)
			}
		}
	}
	if insideCount != 64 {
		t.Fatalf("scissor covered %d pixels, want 64", insideCount)
	}
}
