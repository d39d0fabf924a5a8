package swr

import "github.com/gogpu/swr/internal/shader"

// The three shader-stage contracts spec.md §6 names, modeled as
// interfaces (spec.md §9's design note) rather than raw function
// pointers, and re-exported here so callers never need to import
// internal/shader directly.
type (
	Fetcher         = shader.Fetcher
	VertexProcessor = shader.VertexProcessor
	PixelShader     = shader.PixelShader

	FetchInfo    = shader.FetchInfo
	Vertex       = shader.Vertex
	Attribute    = shader.Attribute
	LinkMask     = shader.LinkMask
	BaryPlane    = shader.BaryPlane
	InterpAttr   = shader.InterpAttr
	TriangleDesc = shader.TriangleDesc
	PixelOutput  = shader.PixelOutput
)
