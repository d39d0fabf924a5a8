// Package fixed implements the 24.8 fixed-point screen-coordinate
// representation the frontend and backend share: triangle setup converts
// perspective-divided, viewport-transformed float coordinates into this
// format, and all edge-equation evaluation happens here.
package fixed

// Width is the number of fractional bits in the 24.8 representation.
const Width = 8

// Size is 2^Width, the number of fixed-point subpixel units per pixel.
const Size = 1 << Width

// SmallTriTilesX and SmallTriTilesY bound the bbox (in 8x8 pixel tiles) a
// triangle may have and still qualify for 32-bit-only edge math. 16 tiles
// of 8px each is 128px, matching spec's "bbox <= 128 px per side".
const (
	SmallTriTilesX = 16
	SmallTriTilesY = 16
	SmallTriMaxPx  = SmallTriTilesX * 8
)

// Point is a screen-space coordinate in 24.8 fixed point.
type Point struct {
	X, Y int32
}

// FromFloat converts a float32 screen coordinate to 24.8 fixed point.
func FromFloat(v float32) int32 {
	return int32(v * Size)
}

// ToFloat converts a 24.8 fixed-point value back to float32.
func ToFloat(v int32) float32 {
	return float32(v) / Size
}

// PointFromFloat converts a (x,y) float32 pair to a fixed Point.
func PointFromFloat(x, y float32) Point {
	return Point{X: FromFloat(x), Y: FromFloat(y)}
}

// Edge holds one triangle edge's equation coefficients in screen space,
// evaluated relative to its own leading vertex (RefX, RefY): for the
// directed segment p0->p1, A = y0 - y1, B = x1 - x0, and the line passes
// through (RefX, RefY) = p0. Evaluating at (X,Y) computes
// A*(X-RefX) + B*(Y-RefY), which is zero on the line and shares sign
// with twice the signed area swept from the edge to the query point.
//
// Small triangles (bbox within SmallTriMaxPx) evaluate this product in
// pure 32-bit arithmetic; larger triangles must use Eval64 to avoid
// overflow, since A, B and the coordinate deltas can each approach 2^23
// in 24.8 format.
type Edge struct {
	A, B       int32
	RefX, RefY int32
}

// NewEdge builds the edge equation for the directed segment p0->p1, per
// spec: A = y0 - y1, B = x1 - x0, anchored at p0.
func NewEdge(p0, p1 Point) Edge {
	return Edge{A: p0.Y - p1.Y, B: p1.X - p0.X, RefX: p0.X, RefY: p0.Y}
}

// Negate returns the edge with A and B negated, keeping the same anchor
// (used during setup under GL's inverted-y convention, and to flip a
// triangle with negative determinant so its interior evaluates
// non-negative).
func (e Edge) Negate() Edge {
	return Edge{A: -e.A, B: -e.B, RefX: e.RefX, RefY: e.RefY}
}

// Bias implements the top-left fill rule tie-breaker (spec §4.C6): after
// shifting the evaluated edge value down by Width, subtract 1 for edges
// that IsTopLeft selects (A < 0, or A == 0 && B < 0), so a point exactly
// on such an edge evaluates to -1 and is excluded, while a point exactly
// on any other edge evaluates to 0 and is included.
func (e Edge) Bias() int32 {
	if IsTopLeft(e.A, e.B) {
		return -1
	}
	return 0
}

// IsTopLeft reports whether the edge (A,B) is a top or left edge per the
// standard rasterization tie-break: A < 0, or (A == 0 && B < 0).
func IsTopLeft(a, b int32) bool {
	return a < 0 || (a == 0 && b < 0)
}

// Eval32 evaluates the edge equation at fixed-point point (x,y), applying
// the top-left bias, using pure 32-bit arithmetic. Only valid for small
// triangles (bbox within SmallTriMaxPx) where A*dx and B*dy cannot
// overflow int32.
func (e Edge) Eval32(x, y int32) int32 {
	dx := x - e.RefX
	dy := y - e.RefY
	return (e.A*dx+e.B*dy)>>Width + e.Bias()
}

// Eval64 evaluates the edge equation at fixed-point point (x,y), applying
// the top-left bias, using 64-bit intermediate products — safe for any
// triangle size.
func (e Edge) Eval64(x, y int32) int64 {
	dx := int64(x - e.RefX)
	dy := int64(y - e.RefY)
	return (int64(e.A)*dx+int64(e.B)*dy)>>Width + int64(e.Bias())
}

// StepX returns the change in the edge's evaluated value when x advances
// by dPixels pixels (used to step tile-to-tile within a row).
func (e Edge) StepX(dPixels int32) int32 {
	return e.A * dPixels
}

// StepY returns the change in the edge's evaluated value when y advances
// by dPixels pixels.
func (e Edge) StepY(dPixels int32) int32 {
	return e.B * dPixels
}

// Determinant returns twice the signed area of the triangle (p0,p1,p2) in
// fixed-point units, using the two edges leading into p2: A1*B2 - A2*B1.
// Its sign gives winding (CCW/CW); magnitude normalizes barycentrics.
func Determinant(e0, e1 Edge) int64 {
	return int64(e0.A)*int64(e1.B) - int64(e1.A)*int64(e0.B)
}

// Bbox is a triangle's fixed-point bounding box, inclusive.
type Bbox struct {
	MinX, MinY, MaxX, MaxY int32
}

// BboxOf computes the bounding box of three fixed-point points.
func BboxOf(p0, p1, p2 Point) Bbox {
	b := Bbox{MinX: p0.X, MaxX: p0.X, MinY: p0.Y, MaxY: p0.Y}
	for _, p := range [2]Point{p1, p2} {
		if p.X < b.MinX {
			b.MinX = p.X
		}
		if p.X > b.MaxX {
			b.MaxX = p.X
		}
		if p.Y < b.MinY {
			b.MinY = p.Y
		}
		if p.Y > b.MaxY {
			b.MaxY = p.Y
		}
	}
	return b
}

// WidthPx returns the bbox width rounded up to whole pixels.
func (b Bbox) WidthPx() int32 {
	return (b.MaxX >> Width) - (b.MinX >> Width) + 1
}

// HeightPx returns the bbox height rounded up to whole pixels.
func (b Bbox) HeightPx() int32 {
	return (b.MaxY >> Width) - (b.MinY >> Width) + 1
}

// IsSmall reports whether the bbox is small enough for 32-bit-only edge
// math (spec: "small triangles (bbox <= 128 px per side)").
func (b Bbox) IsSmall() bool {
	return b.WidthPx() <= SmallTriMaxPx && b.HeightPx() <= SmallTriMaxPx
}

// SubPixel reports whether the bbox lies entirely between two pixel
// centers on an axis, i.e. the triangle is too thin to ever cover a
// pixel center — the sub-pixel cull. Tests the formula from spec §4.C5
// step 7: (left+127)&~255 == (right+128)&~255, and the vertical analog.
func (b Bbox) SubPixel() bool {
	const half = Size / 2
	xDead := (b.MinX+half-1)&^(Size-1) == (b.MaxX+half)&^(Size-1)
	yDead := (b.MinY+half-1)&^(Size-1) == (b.MaxY+half)&^(Size-1)
	return xDead || yDead
}
