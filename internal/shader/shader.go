// Package shader defines the three function-pointer contracts spec.md
// §6 specifies for fetch, vertex and pixel stages — modeled as
// interfaces (spec.md §9's design note: "a safer implementation models
// shader stages as trait objects... boxed per-DC") rather than raw
// function pointers.
//
// Per SPEC_FULL's resolution of spec.md's open question to ship only the
// scalar-per-triangle binner, these contracts operate on one vertex (or
// one triangle) at a time; internal/wide's W-wide lane types are used
// only in the frontend's one-tile-triangle early-rast coverage test (the
// backend's partial-tile sweep is scalar), not in this contract layer,
// which takes only wide's slot constants and SlotMask.
package shader

import "github.com/gogpu/swr/internal/wide"

// Attribute is one vertex attribute slot's four components.
type Attribute struct {
	X, Y, Z, W float32
}

// Vertex is a single vertex's full set of attribute slots, indexed by
// wide.SlotPosition.. wide.SlotNormal. ActiveMask marks which slots
// hold meaningful data; callers must not read an inactive slot.
type Vertex struct {
	Slots      [wide.SlotMax]Attribute
	ActiveMask wide.SlotMask
}

// FetchInfo describes one vertex fetch request: which logical vertex
// index to read (post-index-buffer-resolution) from the bound streams.
type FetchInfo struct {
	VertexIndex int
}

// Fetcher reads one vertex's attributes from bound vertex buffers.
type Fetcher interface {
	Fetch(info FetchInfo, out *Vertex)
}

// VertexProcessor runs the vertex shader: reads fetched attributes,
// writes clip-space position (slot wide.SlotPosition) plus any linked
// output attributes.
type VertexProcessor interface {
	ProcessVertex(in *Vertex, out *Vertex)
}

// LinkMask marks, per attribute slot, whether that slot is interpolated
// across the triangle (the common case) or supplied flat from the
// provoking vertex — the per-attribute "Flat" bit SPEC_FULL §4.C5
// recovers from original_source/core/frontend.cpp's provoking-vertex
// handling.
type LinkMask struct {
	Active wide.SlotMask
	Flat   wide.SlotMask
}

// BaryPlane is a barycentric coordinate's plane equation over screen
// space: Eval(x,y) = A*x + B*y + C. TriangleDesc carries one for each of
// the two independent barycentrics i, j (the third is 1-i-j); both are
// already normalized by the triangle's determinant, per spec.md §4.C6
// step 2.
type BaryPlane struct {
	A, B, C float32
}

// Eval evaluates the plane at screen-space point (x,y).
func (p BaryPlane) Eval(x, y float32) float32 { return p.A*x + p.B*y + p.C }

// TriangleDesc is what the pixel shader receives for one covered quad:
// barycentric coefficients, 1/w and depth at the three vertices, the
// interpolation buffer built by the frontend, and the coverage mask for
// the tile currently being shaded.
type TriangleDesc struct {
	I, J BaryPlane

	OneOverW [3]float32
	Z        [3]float32

	// Interp holds one three-term plane per (slot, component) pair,
	// indexed as Interp[slot*4+component] — the frontend's precomputed
	// interpolation buffer (spec.md §4.C6 step 4: "interpolate each
	// linked attribute from pInterpBuffer"), already folding in flat
	// shading's provoking-vertex constant per slot.
	Interp [wide.SlotMax * 4]InterpAttr

	// Attrs holds the three triangle vertices' raw attributes, kept
	// alongside Interp for shaders that need a value Interp doesn't
	// cover (e.g. a non-interpolated per-vertex lookup).
	Attrs [3]Vertex
	Link  LinkMask

	// TileX, TileY are the pixel tile's origin in screen space.
	TileX, TileY int

	// CoverageMask is the 64-bit per-pixel mask for the tile currently
	// being shaded (spec.md glossary: "Coverage mask").
	CoverageMask uint64
}

// PixelOutput is one tile's shaded result: BGRA8 color and R32F depth
// planes, matching the two render-target formats tiledrt supports.
type PixelOutput struct {
	Color [64]uint32  // one packed BGRA8 value per pixel in the tile, row-major
	Depth [64]float32 // one depth value per pixel in the tile, row-major
}

// PixelShader computes the final color (and depth) for every covered
// pixel in one tile.
type PixelShader interface {
	Shade(desc *TriangleDesc, out *PixelOutput)
}

// InterpAttr holds one linked attribute's three-term plane equation
// (a0/w0 - a2/w2, a1/w1 - a2/w2, a2/w2), as spec.md §4.C5 step 9
// describes, for one component (x, y, z or w) of one slot.
type InterpAttr struct {
	DA, DB, C float32
}

// Eval evaluates the interpolated attribute at barycentric (i, j).
func (ia InterpAttr) Eval(i, j float32) float32 {
	return ia.DA*i + ia.DB*j + ia.C
}
