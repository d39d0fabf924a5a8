package wide

import "testing"

func TestSlotMask_HasAndWithSlot(t *testing.T) {
	var m SlotMask
	m = m.WithSlot(SlotPosition)
	m = m.WithSlot(SlotColor0)

	if !m.Has(SlotPosition) {
		t.Error("expected SlotPosition to be set")
	}
	if !m.Has(SlotColor0) {
		t.Error("expected SlotColor0 to be set")
	}
	if m.Has(SlotNormal) {
		t.Error("expected SlotNormal to be unset")
	}
}

func TestVec4Lane_SetLaneAndLane(t *testing.T) {
	var v Vec4Lane
	v.SetLane(3, 1, 2, 3, 4)

	x, y, z, w := v.Lane(3)
	if x != 1 || y != 2 || z != 3 || w != 4 {
		t.Errorf("Lane(3) = (%f,%f,%f,%f), want (1,2,3,4)", x, y, z, w)
	}

	// Other lanes remain zero.
	x, y, z, w = v.Lane(0)
	if x != 0 || y != 0 || z != 0 || w != 0 {
		t.Errorf("Lane(0) = (%f,%f,%f,%f), want all zero", x, y, z, w)
	}
}
