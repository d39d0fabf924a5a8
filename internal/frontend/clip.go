package frontend

import "github.com/gogpu/swr/internal/shader"

// ClipCode is the per-vertex clip-space classification mask spec.md
// §4.C5 step 4 describes: six bits against the view frustum
// (-w <= {x,y,z} <= w), plus four bits against the lateral guardband
// (-g*w <= {x,y} <= g*w, g > 1). Spec.md calls this "a 12-bit mask ...
// six frustum planes ... and six guardband planes"; z has no meaningful
// guardband extension for a screen-space binning guardband (it only
// widens the x/y bin test), so this implementation uses the 6+4=10 bits
// that have a real plane behind them and leaves the mask's width at 12
// for headroom, per the Open Question resolution recorded in DESIGN.md.
type ClipCode uint32

const (
	clipNegX ClipCode = 1 << iota
	clipPosX
	clipNegY
	clipPosY
	clipNegZ
	clipPosZ
	guardNegX
	guardPosX
	guardNegY
	guardPosY

	frustumMask = clipNegX | clipPosX | clipNegY | clipPosY | clipNegZ | clipPosZ
	guardMask   = guardNegX | guardPosX | guardNegY | guardPosY
)

// computeClipCode classifies a clip-space vertex (x,y,z,w) against the
// frustum and guardband planes.
func computeClipCode(x, y, z, w, guardband float32) ClipCode {
	var c ClipCode
	if x < -w {
		c |= clipNegX
	}
	if x > w {
		c |= clipPosX
	}
	if y < -w {
		c |= clipNegY
	}
	if y > w {
		c |= clipPosY
	}
	if z < -w {
		c |= clipNegZ
	}
	if z > w {
		c |= clipPosZ
	}
	gw := guardband * w
	if x < -gw {
		c |= guardNegX
	}
	if x > gw {
		c |= guardPosX
	}
	if y < -gw {
		c |= guardNegY
	}
	if y > gw {
		c |= guardPosY
	}
	return c
}

// clipVertex is one polygon-clipper vertex: its clip-space position plus
// the full shaded vertex record, so attributes can be linearly
// interpolated alongside position at each new clip intersection.
type clipVertex struct {
	X, Y, Z, W float32
	V          shader.Vertex
}

// lerpClipVertex linearly interpolates position and every active
// attribute slot between a and b at parameter t.
func lerpClipVertex(a, b clipVertex, t float32) clipVertex {
	out := clipVertex{
		X: a.X + (b.X-a.X)*t,
		Y: a.Y + (b.Y-a.Y)*t,
		Z: a.Z + (b.Z-a.Z)*t,
		W: a.W + (b.W-a.W)*t,
	}
	out.V.ActiveMask = a.V.ActiveMask
	for i := 0; i < len(a.V.Slots); i++ {
		if !a.V.ActiveMask.Has(i) {
			continue
		}
		sa, sb := a.V.Slots[i], b.V.Slots[i]
		out.V.Slots[i] = shader.Attribute{
			X: sa.X + (sb.X-sa.X)*t,
			Y: sa.Y + (sb.Y-sa.Y)*t,
			Z: sa.Z + (sb.Z-sa.Z)*t,
			W: sa.W + (sb.W-sa.W)*t,
		}
	}
	return out
}

// clipPlane names one of the six planes the Sutherland-Hodgman clipper
// runs against in sequence.
type clipPlane int

const (
	planeGuardNegX clipPlane = iota
	planeGuardPosX
	planeGuardNegY
	planeGuardPosY
	planeNegZ
	planePosZ
)

func (p clipPlane) inside(v clipVertex, guardband float32) bool {
	gw := guardband * v.W
	switch p {
	case planeGuardNegX:
		return v.X >= -gw
	case planeGuardPosX:
		return v.X <= gw
	case planeGuardNegY:
		return v.Y >= -gw
	case planeGuardPosY:
		return v.Y <= gw
	case planeNegZ:
		return v.Z >= -v.W
	case planePosZ:
		return v.Z <= v.W
	}
	return true
}

// planeIntersect finds the parameter t in (0,1) at which the segment
// a->b crosses plane p, using a linear signed-distance interpolation
// (exact for these axis-aligned homogeneous half-spaces).
func planeIntersect(p clipPlane, a, b clipVertex, guardband float32) float32 {
	da := signedDistance(p, a, guardband)
	db := signedDistance(p, b, guardband)
	denom := da - db
	if denom == 0 {
		return 0.5
	}
	return da / denom
}

func signedDistance(p clipPlane, v clipVertex, guardband float32) float32 {
	gw := guardband * v.W
	switch p {
	case planeGuardNegX:
		return v.X + gw
	case planeGuardPosX:
		return gw - v.X
	case planeGuardNegY:
		return v.Y + gw
	case planeGuardPosY:
		return gw - v.Y
	case planeNegZ:
		return v.Z + v.W
	case planePosZ:
		return v.W - v.Z
	}
	return 0
}

// clipAgainstPlane runs one Sutherland-Hodgman pass of poly against p.
func clipAgainstPlane(poly []clipVertex, p clipPlane, guardband float32) []clipVertex {
	if len(poly) == 0 {
		return nil
	}
	out := make([]clipVertex, 0, len(poly)+1)
	prev := poly[len(poly)-1]
	prevIn := p.inside(prev, guardband)

	for _, cur := range poly {
		curIn := p.inside(cur, guardband)
		switch {
		case curIn && prevIn:
			out = append(out, cur)
		case curIn && !prevIn:
			t := planeIntersect(p, prev, cur, guardband)
			out = append(out, lerpClipVertex(prev, cur, t), cur)
		case !curIn && prevIn:
			t := planeIntersect(p, prev, cur, guardband)
			out = append(out, lerpClipVertex(prev, cur, t))
		}
		prev, prevIn = cur, curIn
	}
	return out
}

// clipTriangle runs the full six-plane Sutherland-Hodgman clip on a
// triangle that intersects the guardband, returning the resulting
// (possibly degenerate) polygon fan of up to 9 vertices — spec.md
// documents "≤ 6" against the stricter view frustum alone; each of the
// six passes used here (guardband x/y plus the two z planes) can add at
// most one vertex to a convex polygon, giving at most 3 + 6 = 9.
func clipTriangle(tri [3]clipVertex, guardband float32) []clipVertex {
	poly := tri[:]
	planes := [6]clipPlane{planeGuardNegX, planeGuardPosX, planeGuardNegY, planeGuardPosY, planeNegZ, planePosZ}
	for _, pl := range planes {
		poly = clipAgainstPlane(poly, pl, guardband)
		if len(poly) == 0 {
			return nil
		}
	}
	return poly
}
