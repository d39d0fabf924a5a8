package frontend

import (
	"github.com/gogpu/swr/internal/shader"
	"github.com/gogpu/swr/internal/wide"
)

// componentAt reads component i (0=X,1=Y,2=Z,3=W) out of an attribute.
func componentAt(a shader.Attribute, i int) float32 {
	switch i {
	case 0:
		return a.X
	case 1:
		return a.Y
	case 2:
		return a.Z
	default:
		return a.W
	}
}

// buildInterp fills tr.Interp per spec.md §4.C5 step 9: for each linked,
// non-flat attribute slot, a_interp = a/w is computed at all three
// vertices and stored as the 3-term plane (a0/w0 - a2/w2, a1/w1 - a2/w2,
// a2/w2) so the pixel shader can recover it via
// DA*i + DB*j + C at barycentric (i,j). Flat attributes instead store
// the provoking vertex's raw (non-perspective-divided) value as a
// constant (DA = DB = 0), per the provoking-vertex supplement recovered
// from original_source/core/frontend.cpp.
func buildInterp(tr *TriRecord) {
	for slot := 0; slot < wide.SlotMax; slot++ {
		if !tr.Link.Active.Has(slot) {
			continue
		}
		flat := tr.Link.Flat.Has(slot)

		for comp := 0; comp < 4; comp++ {
			idx := slot*4 + comp

			if flat {
				v := componentAt(tr.Attrs[tr.Provoking].Slots[slot], comp)
				tr.Interp[idx] = shader.InterpAttr{C: v}
				continue
			}

			a0 := componentAt(tr.Attrs[0].Slots[slot], comp) * tr.OneOverW[0]
			a1 := componentAt(tr.Attrs[1].Slots[slot], comp) * tr.OneOverW[1]
			a2 := componentAt(tr.Attrs[2].Slots[slot], comp) * tr.OneOverW[2]

			tr.Interp[idx] = shader.InterpAttr{DA: a0 - a2, DB: a1 - a2, C: a2}
		}
	}
}
