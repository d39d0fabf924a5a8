package swr

import (
	"bytes"
	"testing"

	"github.com/gogpu/swr/internal/tiledrt"
)

func TestCreateBufferIsZeroed(t *testing.T) {
	ctx := CreateContext(WithSingleThreaded())
	defer ctx.Destroy()

	b := ctx.CreateBuffer(16, -1)
	if b.Len() != 16 {
		t.Fatalf("Len() = %d, want 16", b.Len())
	}
	if !bytes.Equal(b.Bytes(), make([]byte, 16)) {
		t.Fatal("expected a freshly created buffer to be zeroed")
	}
}

func TestCreateBufferUpWrapsCallerMemory(t *testing.T) {
	ctx := CreateContext(WithSingleThreaded())
	defer ctx.Destroy()

	data := []byte{1, 2, 3, 4}
	b := ctx.CreateBufferUp(data, 0)
	if &b.Bytes()[0] != &data[0] {
		t.Fatal("expected CreateBufferUp to wrap the caller's slice without copying")
	}
}

func TestBufferLockNoOverwriteWritesInPlace(t *testing.T) {
	ctx := CreateContext(WithSingleThreaded())
	defer ctx.Destroy()

	b := ctx.CreateBuffer(8, -1)
	view := b.Lock(0, 8, LockNoOverwrite)
	copy(view, []byte{9, 9, 9, 9, 9, 9, 9, 9})
	b.Unlock()

	if !bytes.Equal(b.Bytes(), []byte{9, 9, 9, 9, 9, 9, 9, 9}) {
		t.Fatal("expected LockNoOverwrite to write directly into the buffer")
	}
}

func TestBufferLockDiscardLeavesOldDataUntouchedUntilUnlock(t *testing.T) {
	ctx := CreateContext(WithSingleThreaded())
	defer ctx.Destroy()

	b := ctx.CreateBuffer(4, -1)
	copy(b.Bytes(), []byte{1, 2, 3, 4})

	view := b.Lock(0, 4, LockDiscard)
	copy(view, []byte{5, 6, 7, 8})

	// Old data must still be intact until Unlock commits the discard.
	if !bytes.Equal(b.Bytes(), []byte{1, 2, 3, 4}) {
		t.Fatal("expected old contents to survive until Unlock")
	}

	b.Unlock()
	if !bytes.Equal(b.Bytes(), []byte{5, 6, 7, 8}) {
		t.Fatal("expected Unlock to commit the discarded region")
	}
}

func TestCreateTextureSizedByFormat(t *testing.T) {
	ctx := CreateContext(WithSingleThreaded())
	defer ctx.Destroy()

	tex := ctx.CreateTexture(4, 4, tiledrt.BGRA8Unorm)
	if len(tex.Bytes()) != 4*4*4 {
		t.Fatalf("texture byte length = %d, want %d", len(tex.Bytes()), 4*4*4)
	}
}

func TestCreateRenderTargetRoundsUpToWholeTiles(t *testing.T) {
	ctx := CreateContext(WithSingleThreaded())
	defer ctx.Destroy()

	rt := ctx.CreateRenderTarget(10, 10, tiledrt.BGRA8Unorm)
	if rt.WidthInTiles() < 2 || rt.HeightInTiles() < 2 {
		t.Fatalf("expected a 10x10 target to span at least 2x2 pixel tiles, got %dx%d",
			rt.WidthInTiles(), rt.HeightInTiles())
	}
}
