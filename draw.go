package swr

import (
	"fmt"

	"github.com/gogpu/swr/internal/frontend"
	"github.com/gogpu/swr/internal/tiledrt"
)

// MaxPrimsPerDraw is MAX_PRIMS_PER_DRAW (spec.md §3): every draw call is
// chunked internally to at most this many primitives per draw context.
const MaxPrimsPerDraw = 2048

// Draw submits a non-indexed draw call: primCount primitives of
// topology, fetched through ds.Fetcher/ds.VertexProcessor starting at
// startVertex, per spec.md §6's draw(topology, start_vertex, prim_count).
func (c *Context) Draw(ds DrawState, topology Topology, startVertex, primCount int) {
	resolver := func(pos int) uint32 { return uint32(startVertex + pos) }
	c.submit(ds, topology, startVertex, nil, primCount, resolver)
}

// DrawIndexed submits an indexed draw call: numIndices indices read from
// indices starting at indexOffset (element, not byte, offset), per
// spec.md §6's draw_indexed(topology, index_type, num_indices,
// index_offset).
func (c *Context) DrawIndexed(ds DrawState, topology Topology, indices *Buffer, indexType IndexType, indexOffset, numIndices int) {
	if indices == nil {
		recordError(fmt.Errorf("swr: DrawIndexed called with a nil index buffer"))
		return
	}
	if indexOffset < 0 || numIndices <= 0 {
		recordError(fmt.Errorf("swr: DrawIndexed called with an invalid range (index_offset=%d, num_indices=%d)", indexOffset, numIndices))
		return
	}

	decoded := decodeIndices(indices.Bytes(), indexType)
	if indexOffset+numIndices > len(decoded) {
		recordError(fmt.Errorf("swr: DrawIndexed range [%d:%d) exceeds index buffer length %d", indexOffset, indexOffset+numIndices, len(decoded)))
		return
	}

	primCount := numIndices / topoVertsPerPrim(topology)
	resolver := func(pos int) uint32 { return decoded[indexOffset+pos] }
	c.submit(ds, topology, indexOffset, decoded, primCount, resolver)
}

// DrawIndexedInstanced repeats an indexed draw instanceCount times.
// Per-instance attribute steps (a separate vertex-rate-vs-instance-rate
// linkage) are out of scope (spec.md §1's shader-generation Non-goal);
// each instance simply reissues the same indexed geometry, letting the
// bound Fetcher vary its output per call via closed-over state if it
// needs instance-dependent attributes.
func (c *Context) DrawIndexedInstanced(ds DrawState, topology Topology, indices *Buffer, indexType IndexType, indexOffset, numIndices, instanceCount int) {
	for i := 0; i < instanceCount; i++ {
		c.DrawIndexed(ds, topology, indices, indexType, indexOffset, numIndices)
	}
}

// decodeIndices expands a raw index buffer into []uint32, regardless of
// its on-disk element width.
func decodeIndices(raw []byte, typ IndexType) []uint32 {
	switch typ {
	case IndexU16:
		out := make([]uint32, len(raw)/2)
		for i := range out {
			out[i] = uint32(raw[i*2]) | uint32(raw[i*2+1])<<8
		}
		return out
	default:
		out := make([]uint32, len(raw)/4)
		for i := range out {
			out[i] = uint32(raw[i*4]) | uint32(raw[i*4+1])<<8 | uint32(raw[i*4+2])<<16 | uint32(raw[i*4+3])<<24
		}
		return out
	}
}

// topoVertsPerPrim reports how many index-stream elements one primitive
// of topo consumes directly (used only to turn an index count into a
// primitive count for DrawIndexed; the binner itself reasons in
// primitives via frontend.assembleTriangles/assembleBloats).
func topoVertsPerPrim(t Topology) int {
	switch t {
	case TriangleList:
		return 3
	case QuadList:
		return 4
	case PointList:
		return 1
	case LineList:
		return 2
	default: // strips/fans: one new vertex per additional primitive
		return 1
	}
}

// chunkRange is one chunk's [start, start+len) primitive range within a
// draw's full primitive count.
type chunkRange struct {
	start, len int
}

// planChunks splits total primitives into chunks of at most
// MaxPrimsPerDraw, keeping TriangleStrip chunk boundaries on an even
// primitive index so the i%2 winding alternation in
// frontend.assembleTriangles continues correctly across chunks.
func planChunks(topology Topology, total int) []chunkRange {
	if total <= MaxPrimsPerDraw {
		return []chunkRange{{0, total}}
	}
	var out []chunkRange
	start := 0
	for start < total {
		n := total - start
		if n > MaxPrimsPerDraw {
			n = MaxPrimsPerDraw
		}
		if topology == TriangleStrip && start+n < total && n%2 != 0 {
			n--
		}
		out = append(out, chunkRange{start, n})
		start += n
	}
	return out
}

// topoVertexStride is the per-primitive vertex-slot advance for
// topologies whose relative addressing is a uniform stride from the
// primitive index (every topology except TriangleFan, whose first
// corner always anchors to relative position 0 regardless of which
// primitive is being assembled).
func topoVertexStride(t Topology) int {
	switch t {
	case TriangleList:
		return 3
	case QuadList:
		return 4
	case QuadStrip:
		return 2
	case LineList:
		return 2
	default: // TriangleStrip, PointList, LineStrip: one new vertex per primitive
		return 1
	}
}

// submit chunks primCount primitives of topology into one or more draw
// contexts. resolve maps a relative vertex-slot position (0-based from
// this draw's own start) to an absolute fetch index, matching both the
// indexed and non-indexed call sites.
func (c *Context) submit(ds DrawState, topology Topology, origStart int, origIndices []uint32, primCount int, resolve func(pos int) uint32) {
	if primCount <= 0 {
		recordError(fmt.Errorf("swr: draw call produced a non-positive primitive count (%d)", primCount))
		return
	}

	for _, ch := range planChunks(topology, primCount) {
		var cfg frontend.Config
		cfg.Topology = topology
		cfg.PrimCount = ch.len

		if topology == TriangleFan {
			// The fan's anchor vertex (relative position 0) never moves;
			// only the sweeping edge advances with the chunk. Build a
			// synthetic index buffer so the chunk-local binner, which
			// always reads position 0 as the anchor, still resolves to
			// the draw's true anchor vertex.
			synth := make([]uint32, ch.len+2)
			synth[0] = resolve(0)
			for k := 1; k <= ch.len+1; k++ {
				synth[k] = resolve(ch.start + k)
			}
			cfg.StartVertex = 0
			cfg.Indices = synth
		} else {
			stride := topoVertexStride(topology)
			cfg.StartVertex = origStart + ch.start*stride
			cfg.Indices = origIndices
		}

		c.submitConfig(ds, cfg)
	}
}

// submitConfig fills in the shared (non-topology/vertex-range) part of
// cfg from ds and the Context's defaults, then enqueues one draw
// context.
func (c *Context) submitConfig(ds DrawState, cfg frontend.Config) {
	cfg.Fetcher = ds.Fetcher
	cfg.VertexProcessor = ds.VertexProcessor
	cfg.PixelShader = ds.PixelShader
	cfg.Viewport = ds.Viewport
	cfg.Driver = ds.Driver
	cfg.CullMode = ds.CullMode
	cfg.ScissorPx = ds.ScissorPx
	cfg.Link = ds.Link
	cfg.DepthFunc = ds.DepthFunc
	cfg.DepthWriteEnabled = ds.DepthWriteEnabled

	cfg.GuardbandRatio = ds.GuardbandRatio
	if cfg.GuardbandRatio == 0 {
		cfg.GuardbandRatio = c.opts.guardbandRatio
	}
	cfg.MacroTile = ds.MacroTileDim
	if cfg.MacroTile == (frontend.MacroTileDim{}) {
		cfg.MacroTile = c.opts.macroTile
	}

	color, depth := ds.RenderTargets[0], ds.RenderTargets[1]
	switch {
	case color != nil:
		cfg.RTWidth, cfg.RTHeight = color.Width, color.Height
	case depth != nil:
		cfg.RTWidth, cfg.RTHeight = depth.Width, depth.Height
	}

	job := frontend.NewJob(cfg)

	dc := c.ring.GetDrawContext()
	dc.FEWork = job
	dc.State = job
	dc.ColorRT = color
	dc.DepthRT = depth
	dc.NumaNode = resourceNumaNode(ds.ReadResources)

	reads := make([]any, 0, len(ds.ReadResources)+2)
	reads = append(reads, ds.ReadResources...)
	if color != nil {
		reads = append(reads, color)
	}
	if depth != nil {
		reads = append(reads, depth)
	}
	if depID, ok := c.deps.dependencyFor(reads); ok {
		dc.Dependency = depID
		dc.DependencyValid = true
		dc.DepCompleteDraw = true
	}

	drawID := dc.DrawID
	if color != nil {
		c.deps.recordWrite(color, drawID)
	}
	if depth != nil {
		c.deps.recordWrite(depth, drawID)
	}

	c.ring.Enqueue()

	if c.opts.singleThreaded {
		c.pool.RunInline(dc)
	}
}

// resourceNumaNode picks the first explicit NUMA tag among a draw's read
// resources, or -1 if none carry one (spec.md §4.C4's FE claim
// scheduling preference).
func resourceNumaNode(resources []any) int {
	for _, r := range resources {
		if b, ok := r.(*Buffer); ok && b.NumaNode >= 0 {
			return b.NumaNode
		}
	}
	return -1
}

// ClearRT fills every pixel of rt with value (a packed BGRA8 u32 for
// BGRA8Unorm targets, or a float32 bit pattern via tiledrt.PackFloat for
// R32Float depth targets).
func (c *Context) ClearRT(rt *RenderTarget, value uint32) {
	for ty := 0; ty < rt.HeightInTiles(); ty++ {
		for tx := 0; tx < rt.WidthInTiles(); tx++ {
			rt.ClearTile(tx, ty, value)
		}
	}
}

// ClearRTScissored fills only the portion of rt within scissor.
func (c *Context) ClearRTScissored(rt *RenderTarget, scissor Rect, value uint32) {
	rt.ClearMacroTile(0, 0, rt.WidthInTiles(), rt.HeightInTiles(), scissor, value)
}

// CopyRT copies src's entire swizzled byte storage into dst. Both must
// share the same dimensions and format.
func (c *Context) CopyRT(dst, src *RenderTarget) {
	copy(dst.Data(), src.Data())
}

// PresentLinear deswizzles rt's color plane into dst, a linear
// (non-tiled) buffer with the given row pitch in bytes, matching
// spec.md §6's present_linear external interface.
func (c *Context) PresentLinear(rt *RenderTarget, driver Driver, dst []byte, pitch int) {
	for ty := 0; ty < rt.HeightInTiles(); ty++ {
		for tx := 0; tx < rt.WidthInTiles(); tx++ {
			x0, y0 := tx*tiledrt.TX, ty*tiledrt.TY
			w, h := tiledrt.TX, tiledrt.TY
			if x0+w > rt.Width {
				w = rt.Width - x0
			}
			if y0+h > rt.Height {
				h = rt.Height - y0
			}

			rowOff := y0 * pitch
			colOff := x0 * rt.Format.Bpp()
			dstOff := dst[rowOff+colOff:]

			if w == tiledrt.TX && h == tiledrt.TY {
				rt.StoreTile(tx, ty, driver, dstOff, pitch)
			} else {
				rt.StoreTilePartial(tx, ty, w, h, driver, dstOff, pitch)
			}
		}
	}
}
