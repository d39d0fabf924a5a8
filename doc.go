// Package swr is a parallel, tile-based software triangle rasterizer
// core, modeled on Intel's OpenSWR architecture.
//
// # Overview
//
// A Context owns a worker pool and a ring of in-flight draws. Each draw
// binds vertex/index buffers, a vertex processor and a pixel shader, and
// a small set of render targets, then runs through two cooperating
// stages:
//
//   - the frontend fetches, transforms, clips, culls and bins each
//     triangle into the macro tiles it overlaps, classifying small
//     triangles that fit within one pixel tile as a fast one-tile path;
//   - the backend drains per-macro-tile work items, rasterizes coverage
//     at pixel or quad granularity, invokes the bound pixel shader once
//     per visited pixel tile, and writes the result through the depth
//     test into the bound render targets.
//
// # Quick Start
//
//	ctx := swr.CreateContext()
//	defer ctx.Destroy()
//
//	color := ctx.CreateRenderTarget(800, 600, tiledrt.BGRA8Unorm)
//
//	ds := swr.DrawState{
//		Fetcher:         myFetcher,
//		VertexProcessor: myVertexShader,
//		PixelShader:     myPixelShader,
//		RenderTargets:   [2]*swr.RenderTarget{color, nil},
//	}
//	ctx.Draw(ds, swr.TriangleList, 0, triCount)
//	ctx.WaitForIdle()
//
// # Threading model
//
// A Context's worker pool follows spec.md §5's split: the thread that
// calls Draw binds state and enqueues frontend work, then returns
// immediately; background workers drain frontend and backend work from
// the ring cooperatively, spinning briefly before parking on a condition
// variable. WithSingleThreaded collapses both stages onto the caller for
// deterministic single-goroutine use.
//
// # Coordinate system
//
// Clip space follows the common DirectX/Vulkan convention unless
// DrawState.Driver selects GL: NDC x/y in [-1,1] map to the viewport via
// the driver's chosen Y flip; NDC z in [-1,1] maps to [ZNear, ZFar] for
// both drivers. Screen space has its origin at the top-left pixel.
//
// # Performance
//
// The rasterizer prioritizes throughput on wide triangle batches: work is
// binned at triangle granularity and rasterized at pixel-tile
// granularity, with guardband clipping and one-tile fast paths chosen to
// keep full Sutherland-Hodgman clipping and sub-tile coverage loops off
// the common case.
package swr
