package swr

import (
	"github.com/gogpu/swr/internal/frontend"
	"github.com/gogpu/swr/internal/tiledrt"
)

// Re-exported rasterizer-state types, so callers only ever import the
// root package.
type (
	Topology     = frontend.Topology
	CullMode     = frontend.CullMode
	Viewport     = frontend.Viewport
	MacroTileDim = frontend.MacroTileDim
	Driver       = tiledrt.Driver
	Rect         = tiledrt.Rect
)

const (
	PointList     = frontend.PointList
	LineList      = frontend.LineList
	LineStrip     = frontend.LineStrip
	TriangleList  = frontend.TriangleList
	TriangleStrip = frontend.TriangleStrip
	TriangleFan   = frontend.TriangleFan
	QuadList      = frontend.QuadList
	QuadStrip     = frontend.QuadStrip

	CullNone = frontend.CullNone
	CullCW   = frontend.CullCW
	CullCCW  = frontend.CullCCW

	DX = tiledrt.DX
	GL = tiledrt.GL
)

// DefaultMacroTileDim matches SPEC_FULL §3's concretization (4x4 pixel
// tiles, 32x32 px with TX=TY=8).
var DefaultMacroTileDim = frontend.DefaultMacroTileDim

// IndexType selects the index buffer's element width for DrawIndexed
// and DrawIndexedInstanced (spec.md §6: "index_type ∈ {U16, U32}").
type IndexType int

const (
	IndexU16 IndexType = iota
	IndexU32
)

// DrawState is the complete per-draw rasterizer state (spec.md §6's
// DrawState): shader stage bindings, the viewport/cull/scissor/guardband
// transform state, attribute linkage, depth state, and the bound render
// targets. Context.Draw and its indexed variants translate this into an
// internal/frontend.Config for one or more chunked draw contexts.
type DrawState struct {
	Fetcher         Fetcher
	VertexProcessor VertexProcessor
	PixelShader     PixelShader

	Viewport Viewport
	Driver   Driver
	CullMode CullMode

	// GuardbandRatio overrides the Context's default guardband ratio for
	// this draw; zero means "use the Context's configured ratio".
	GuardbandRatio float32
	// MacroTileDim overrides the Context's default macro tile size for
	// this draw; a zero value means "use the Context's configured size".
	MacroTileDim MacroTileDim

	ScissorPx Rect
	Link      LinkMask

	// RenderTargets holds the bound color ([0]) and depth ([1]) targets
	// (spec.md §6's pRenderTargets[0]/[1]); either may be nil.
	RenderTargets [2]*RenderTarget

	DepthFunc         func(newZ, oldZ float32) bool
	DepthWriteEnabled bool

	// ReadResources lists every Buffer/Texture this draw reads from,
	// beyond RenderTargets, so Context.Draw can compute a cross-draw
	// dependency against whichever prior draw last wrote one of them.
	ReadResources []any
}
