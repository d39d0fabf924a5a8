package swr

import "github.com/gogpu/swr/internal/tiledrt"

// LockFlag selects the synchronization contract for Buffer.Lock, mirroring
// the D3D/GL "UP buffer" locking conventions spec.md §6 names.
type LockFlag int

const (
	// LockNone is the default: the caller may be handed a view onto data
	// still referenced by in-flight draws and must not write to it.
	LockNone LockFlag = iota
	// LockNoOverwrite promises the caller will only append past data no
	// in-flight draw still reads, so no synchronization is required.
	LockNoOverwrite
	// LockDiscard asks for a fresh, zeroed buffer, detaching the
	// previous contents so in-flight draws keep reading the old data
	// undisturbed.
	LockDiscard
)

// Buffer is a CPU-resident vertex/index/constant buffer. NumaNode mirrors
// spec.md §5's NUMA affinity tag; -1 means no preference.
type Buffer struct {
	data     []byte
	NumaNode int

	discarded []byte // set by a DISCARD lock, swapped in on Unlock
}

// Bytes returns the buffer's current backing storage. Callers must not
// retain the slice across a LockDiscard lock/unlock cycle.
func (b *Buffer) Bytes() []byte { return b.data }

// Len returns the buffer's size in bytes.
func (b *Buffer) Len() int { return len(b.data) }

// Lock returns a writable view of [offset, offset+size) for flag ==
// LockNoOverwrite or LockNone, or a fresh zeroed region for LockDiscard
// (Unlock then swaps the fresh storage in; the previous slice is left
// untouched for any draw already reading it).
func (b *Buffer) Lock(offset, size int, flag LockFlag) []byte {
	if flag == LockDiscard {
		b.discarded = make([]byte, len(b.data))
		return b.discarded[offset : offset+size]
	}
	return b.data[offset : offset+size]
}

// Unlock commits a LockDiscard region as the buffer's contents; a no-op
// for LockNone/LockNoOverwrite, which wrote directly into b.data.
func (b *Buffer) Unlock() {
	if b.discarded != nil {
		b.data = b.discarded
		b.discarded = nil
	}
}

// CreateBuffer allocates a zeroed, driver-owned buffer of size bytes.
func (c *Context) CreateBuffer(size int, numaNode int) *Buffer {
	return &Buffer{data: make([]byte, size), NumaNode: numaNode}
}

// CreateBufferUp wraps caller-owned memory directly, without a copy
// ("UP" buffers in D3D/GL terminology: user pointer). The caller must
// keep data alive and not mutate it while a draw referencing it is
// in flight.
func (c *Context) CreateBufferUp(data []byte, numaNode int) *Buffer {
	return &Buffer{data: data, NumaNode: numaNode}
}

// Texture is a CPU-resident sampled image. Sampling itself is out of
// scope (spec.md §1's Non-goals); Texture exists only as a resource
// handle a Fetcher/PixelShader implementation can close over.
type Texture struct {
	Width, Height int
	Format        tiledrt.Format
	data          []byte
}

// Bytes returns the texture's raw pixel storage.
func (t *Texture) Bytes() []byte { return t.data }

// CreateTexture allocates a zeroed texture resource.
func (c *Context) CreateTexture(width, height int, format tiledrt.Format) *Texture {
	return &Texture{
		Width: width, Height: height, Format: format,
		data: make([]byte, width*height*format.Bpp()),
	}
}

// RenderTarget is the public handle to a tile-swizzled color or depth
// plane (internal/tiledrt.RenderTarget).
type RenderTarget = tiledrt.RenderTarget

// CreateRenderTarget allocates a render target of the given format,
// rounded up to a whole number of pixel tiles.
func (c *Context) CreateRenderTarget(width, height int, format tiledrt.Format) *RenderTarget {
	return tiledrt.New(width, height, format)
}
