package wide

import "testing"

func TestSplatI32(t *testing.T) {
	v := SplatI32(-7)
	for i, x := range v {
		if x != -7 {
			t.Errorf("element %d = %d, want -7", i, x)
		}
	}
}

func TestI32x8_Add(t *testing.T) {
	a := SplatI32(10)
	b := I32x8{0, 1, 2, 3, 4, 5, 6, 7}
	got := a.Add(b)
	for i := range got {
		want := int32(10 + i)
		if got[i] != want {
			t.Errorf("element %d = %d, want %d", i, got[i], want)
		}
	}
}

func TestI32x8_MulAdd(t *testing.T) {
	base := SplatI32(100)
	offsets := I32x8{0, 1, 2, 3, 0, 1, 2, 3}
	got := base.MulAdd(5, offsets)
	for i := range got {
		want := int32(100)*5 + offsets[i]
		if got[i] != want {
			t.Errorf("element %d = %d, want %d", i, got[i], want)
		}
	}
}

func TestI32x8_GreaterEqualZero(t *testing.T) {
	v := I32x8{-1, 0, 1, -100, 100, 0, -1, 1}
	mask := v.GreaterEqualZero()
	want := [Lanes]bool{false, true, true, false, true, true, false, true}
	if mask != want {
		t.Errorf("mask = %v, want %v", mask, want)
	}
}

func TestAndMask(t *testing.T) {
	a := [Lanes]bool{true, true, false, false, true, true, false, false}
	b := [Lanes]bool{true, false, true, false, true, false, true, false}
	got := AndMask(a, b)
	want := [Lanes]bool{true, false, false, false, true, false, false, false}
	if got != want {
		t.Errorf("AndMask = %v, want %v", got, want)
	}
}

func TestPackBits(t *testing.T) {
	mask := [Lanes]bool{true, false, true, false, false, false, false, true}
	got := PackBits(mask)
	want := uint64(1<<0 | 1<<2 | 1<<7)
	if got != want {
		t.Errorf("PackBits = %#x, want %#x", got, want)
	}
}

func TestPackBits_AllSet(t *testing.T) {
	var mask [Lanes]bool
	for i := range mask {
		mask[i] = true
	}
	got := PackBits(mask)
	want := uint64(1<<Lanes) - 1
	if got != want {
		t.Errorf("PackBits = %#x, want %#x", got, want)
	}
}
