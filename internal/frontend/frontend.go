// Package frontend implements the binner (C5): primitive assembly from a
// topology, clip-space culling and polygon clipping, perspective divide
// and viewport transform, fixed-point triangle setup, culling and
// classification, attribute interpolation setup, and per-macro-tile
// binning.
//
// Per SPEC_FULL's resolution of spec.md's binner open question, this
// pipeline is scalar-per-triangle rather than SIMD-across-triangles: one
// triangle is fetched, shaded, clipped, set up, classified and binned at
// a time. internal/wide is used only for the one-tile early-rast
// coverage test (§4.C5 step 8), which genuinely evaluates one row of
// wide.Lanes pixel centers at once.
package frontend

import (
	"github.com/gogpu/swr/internal/arena"
	"github.com/gogpu/swr/internal/ring"
	"github.com/gogpu/swr/internal/shader"
	"github.com/gogpu/swr/internal/tiledrt"
)

// CullMode selects which winding direction is discarded (spec.md §4.C5
// step 7).
type CullMode int

const (
	CullNone CullMode = iota
	CullCW
	CullCCW
)

// Viewport holds the transform from NDC to screen space (spec.md §4.C5
// step 5).
type Viewport struct {
	X, Y         float32
	HalfW, HalfH float32
	ZNear, ZFar  float32
}

// MacroTileDim is the macro tile's size in pixel tiles (SPEC_FULL §3
// default 4x4, i.e. 32x32 px with TX=TY=8).
type MacroTileDim struct {
	W, H int
}

// DefaultMacroTileDim matches SPEC_FULL §3's concretization.
var DefaultMacroTileDim = MacroTileDim{W: 4, H: 4}

// Config is everything the binner needs for one FE work item: the
// topology/vertex range to assemble, the shader stage contracts to
// invoke, and the rasterizer state snapshot (viewport, cull, scissor,
// guardband, attribute linkage) spec.md §6's DrawState carries. It is
// built by the root package from a DrawState snapshot so this package
// never has to import it (which would cycle).
type Config struct {
	Topology    Topology
	StartVertex int
	PrimCount   int
	// Indices, if non-nil, resolves a relative vertex slot position
	// (StartVertex + offset) to a logical vertex index; nil means the
	// draw is non-indexed and slot positions are used directly.
	Indices []uint32

	Fetcher         shader.Fetcher
	VertexProcessor shader.VertexProcessor

	// PixelShader is invoked once per visited pixel tile by the backend
	// (spec.md §4.C6). It travels through Config rather than being bound
	// once on the backend's Rasterizer so that different draws sharing
	// one Context's worker pool can bind different pixel shaders.
	PixelShader shader.PixelShader

	Viewport       Viewport
	Driver         tiledrt.Driver
	CullMode       CullMode
	GuardbandRatio float32

	// ScissorPx is the scissor rectangle in screen pixels; a zero-value
	// Rect with X1/Y1 both 0 means "no scissor" (EffectiveScissor then
	// substitutes the full render target bounds).
	ScissorPx tiledrt.Rect

	Link shader.LinkMask

	MacroTile MacroTileDim

	RTWidth, RTHeight int

	// DepthFunc selects the comparison the backend's pixel dispatch
	// applies against the bound depth target (spec.md §4.C6 step 3's
	// "z-function table"); nil means the test always passes. newZ is the
	// incoming fragment's depth, oldZ the value already stored.
	DepthFunc func(newZ, oldZ float32) bool
	// DepthWriteEnabled gates whether a passing fragment's depth is
	// stored back (the "write mask" spec.md §4.C6 step 3 mentions).
	DepthWriteEnabled bool
}

// Job runs one Config's binner pipeline against a draw context, and
// retains the resulting per-triangle records so the backend (via
// DrawContext.State) can look them up by WorkItem.TriIndex.
type Job struct {
	Config

	tris      []TriRecord
	vertCache map[int]*shader.Vertex

	// arena services tris' backing-array growth (spec.md §3/§4.C1's
	// arena-allocated per-triangle interp/tri scratch). Set once per Run
	// from the owning draw context, so the records' lifetime follows the
	// arena's reset-on-retire cycle rather than the Go heap/GC.
	arena *arena.Arena
}

// NewJob builds a binner job from a configuration. The job is normally
// assigned directly to DrawContext.FEWork (Job implements ring.FEWork).
func NewJob(cfg Config) *Job {
	return &Job{Config: cfg}
}

var _ ring.FEWork = (*Job)(nil)

// Triangle returns the triangle record at idx, as produced by this job's
// Run. Valid only after Run has completed (i.e. once DoneFE is true).
func (j *Job) Triangle(idx int32) *TriRecord {
	return &j.tris[idx]
}

// appendTri appends tr to the job's triangle-record scratch and returns
// its index, growing the backing array from j.arena (doubling, like
// Go's own append) instead of the Go heap whenever the current capacity
// is exhausted.
func (j *Job) appendTri(tr TriRecord) int32 {
	if len(j.tris) == cap(j.tris) {
		newCap := cap(j.tris) * 2
		if newCap == 0 {
			newCap = 64
		}
		grown := arena.AllocSlice[TriRecord](j.arena, newCap)
		copy(grown, j.tris)
		j.tris = grown[:len(j.tris)]
	}
	idx := int32(len(j.tris))
	j.tris = append(j.tris, tr)
	return idx
}
