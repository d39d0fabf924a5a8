package wide

// SlotMax is the number of attribute slots a vertex record can carry:
// 1 position + 2 colors + 8 texcoords + 1 normal.
const SlotMax = 12

// Slot indices into VertexRecord.Slots, matching the attribute slots
// enumerated in the data model: position, two colors, eight texcoords,
// and a normal.
const (
	SlotPosition = 0
	SlotColor0   = 1
	SlotColor1   = 2
	SlotTexCoord = 3 // SlotTexCoord..SlotTexCoord+7 are the eight texcoord slots
	SlotNormal   = 11
)

// SlotMask is a bitmask over VS_SLOT_MAX slots marking which attribute
// slots are populated for the current draw.
type SlotMask uint32

// Has reports whether slot i is active in the mask.
func (m SlotMask) Has(i int) bool { return m&(1<<uint(i)) != 0 }

// WithSlot returns a mask with slot i set.
func (m SlotMask) WithSlot(i int) SlotMask { return m | 1<<uint(i) }

// VertexRecord holds one SIMD batch (Lanes vertices) of SoA attribute data.
// Each active slot carries up to four components (X, Y, Z, W); inactive
// slots are zero-valued and must not be read (callers gate on SlotMask).
type VertexRecord struct {
	Slots [SlotMax]Vec4Lane
}

// Vec4Lane is one attribute slot's four components, each Lanes-wide.
type Vec4Lane struct {
	X, Y, Z, W F32x8
}

// Lane extracts the scalar (x,y,z,w) for a single lane index out of a
// Vec4Lane, used when a pipeline stage needs to operate on one vertex at a
// time (primitive assembly reads three lanes out of up to three batches).
func (v Vec4Lane) Lane(i int) (x, y, z, w float32) {
	return v.X[i], v.Y[i], v.Z[i], v.W[i]
}

// SetLane writes the scalar (x,y,z,w) into lane i of a Vec4Lane.
func (v *Vec4Lane) SetLane(i int, x, y, z, w float32) {
	v.X[i] = x
	v.Y[i] = y
	v.Z[i] = z
	v.W[i] = w
}
