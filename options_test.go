package swr

import (
	"testing"

	"github.com/gogpu/swr/internal/frontend"
)

func TestDefaultOptions(t *testing.T) {
	o := defaultOptions()
	if o.workerCount != 0 {
		t.Errorf("workerCount = %d, want 0 (resolved later against GOMAXPROCS)", o.workerCount)
	}
	if o.singleThreaded {
		t.Error("singleThreaded = true, want false by default")
	}
	if o.guardbandRatio != 2 {
		t.Errorf("guardbandRatio = %v, want 2", o.guardbandRatio)
	}
	if o.macroTile != frontend.DefaultMacroTileDim {
		t.Errorf("macroTile = %v, want %v", o.macroTile, frontend.DefaultMacroTileDim)
	}
	if o.numaNodeCount != 1 {
		t.Errorf("numaNodeCount = %d, want 1", o.numaNodeCount)
	}
}

func TestWithWorkerCount(t *testing.T) {
	o := defaultOptions()
	WithWorkerCount(8)(&o)
	if o.workerCount != 8 {
		t.Errorf("workerCount = %d, want 8", o.workerCount)
	}
}

func TestWithSingleThreaded(t *testing.T) {
	o := defaultOptions()
	WithSingleThreaded()(&o)
	if !o.singleThreaded {
		t.Error("singleThreaded = false, want true")
	}
}

func TestWithGuardbandRatio(t *testing.T) {
	o := defaultOptions()
	WithGuardbandRatio(4)(&o)
	if o.guardbandRatio != 4 {
		t.Errorf("guardbandRatio = %v, want 4", o.guardbandRatio)
	}
}

func TestWithMacroTileDim(t *testing.T) {
	o := defaultOptions()
	WithMacroTileDim(8, 2)(&o)
	want := frontend.MacroTileDim{W: 8, H: 2}
	if o.macroTile != want {
		t.Errorf("macroTile = %v, want %v", o.macroTile, want)
	}
}

func TestWithNUMANodeCount(t *testing.T) {
	o := defaultOptions()
	WithNUMANodeCount(4)(&o)
	if o.numaNodeCount != 4 {
		t.Errorf("numaNodeCount = %d, want 4", o.numaNodeCount)
	}

	// Clamped to a minimum of 1.
	WithNUMANodeCount(0)(&o)
	if o.numaNodeCount != 1 {
		t.Errorf("numaNodeCount = %d, want 1 after clamping", o.numaNodeCount)
	}
}

func TestMultipleOptionsCompose(t *testing.T) {
	o := defaultOptions()
	for _, opt := range []ContextOption{
		WithWorkerCount(2),
		WithSingleThreaded(),
		WithGuardbandRatio(3),
		WithMacroTileDim(2, 2),
	} {
		opt(&o)
	}

	if o.workerCount != 2 || !o.singleThreaded || o.guardbandRatio != 3 {
		t.Errorf("options did not compose: %+v", o)
	}
	if o.macroTile != (frontend.MacroTileDim{W: 2, H: 2}) {
		t.Errorf("macroTile = %v, want {2 2}", o.macroTile)
	}
}
