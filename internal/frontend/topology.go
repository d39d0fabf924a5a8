package frontend

// Topology selects how the vertex/index stream is grouped into
// primitives before triangle assembly (spec.md §3, §4.C5 step 3).
type Topology int

const (
	PointList Topology = iota
	LineList
	LineStrip
	TriangleList
	TriangleStrip
	TriangleFan
	QuadList
	QuadStrip
)

// IsBloat reports whether a topology produces triangles by offsetting
// synthesized screen-space corners from one or two source vertices
// (points and lines), rather than by grouping existing vertices
// directly.
func (t Topology) IsBloat() bool {
	return t == PointList || t == LineList || t == LineStrip
}

// TriSpec names the three relative vertex-slot positions (offsets from
// Config.StartVertex, resolved through Config.Indices when indexed)
// making up one triangle, plus which element of Pos is the provoking
// vertex for flat-shaded attributes (original_source/core/frontend.cpp's
// provoking-vertex rule, recovered per SPEC_FULL §4.C5).
type TriSpec struct {
	Pos       [3]int
	Provoking int
}

// assembleTriangles decomposes primCount primitives of a non-bloat
// topology into TriSpecs, per spec.md §4.C5 step 3's per-topology rules.
func assembleTriangles(topo Topology, primCount int) []TriSpec {
	switch topo {
	case TriangleList:
		specs := make([]TriSpec, primCount)
		for i := range specs {
			b := i * 3
			specs[i] = TriSpec{Pos: [3]int{b, b + 1, b + 2}, Provoking: 2}
		}
		return specs

	case TriangleStrip:
		specs := make([]TriSpec, primCount)
		for i := range specs {
			if i%2 == 0 {
				specs[i] = TriSpec{Pos: [3]int{i, i + 1, i + 2}, Provoking: 2}
			} else {
				specs[i] = TriSpec{Pos: [3]int{i + 1, i, i + 2}, Provoking: 2}
			}
		}
		return specs

	case TriangleFan:
		specs := make([]TriSpec, primCount)
		for i := range specs {
			specs[i] = TriSpec{Pos: [3]int{0, i + 1, i + 2}, Provoking: 2}
		}
		return specs

	case QuadList:
		specs := make([]TriSpec, 0, primCount*2)
		for i := 0; i < primCount; i++ {
			b := i * 4
			specs = append(specs,
				TriSpec{Pos: [3]int{b, b + 1, b + 3}, Provoking: 2},
				TriSpec{Pos: [3]int{b + 1, b + 2, b + 3}, Provoking: 2},
			)
		}
		return specs

	case QuadStrip:
		specs := make([]TriSpec, 0, primCount*2)
		for i := 0; i < primCount; i++ {
			b := i * 2
			specs = append(specs,
				TriSpec{Pos: [3]int{b, b + 1, b + 3}, Provoking: 2},
				TriSpec{Pos: [3]int{b + 1, b + 2, b + 3}, Provoking: 2},
			)
		}
		return specs

	default:
		return nil
	}
}

// BloatSpec names the one (point) or two (line) source vertex slot
// positions a bloat topology's primitive synthesizes a screen-space quad
// from.
type BloatSpec struct {
	Pos     [2]int
	IsPoint bool
}

// assembleBloats decomposes primCount primitives of a point or line
// topology into BloatSpecs (spec.md §4.C5 "Line/point bloat").
func assembleBloats(topo Topology, primCount int) []BloatSpec {
	switch topo {
	case PointList:
		specs := make([]BloatSpec, primCount)
		for i := range specs {
			specs[i] = BloatSpec{Pos: [2]int{i, i}, IsPoint: true}
		}
		return specs

	case LineList:
		specs := make([]BloatSpec, primCount)
		for i := range specs {
			b := i * 2
			specs[i] = BloatSpec{Pos: [2]int{b, b + 1}}
		}
		return specs

	case LineStrip:
		specs := make([]BloatSpec, primCount)
		for i := range specs {
			specs[i] = BloatSpec{Pos: [2]int{i, i + 1}}
		}
		return specs

	default:
		return nil
	}
}
