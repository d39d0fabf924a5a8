// Package arena implements the per-draw bump allocator (C1): short-lived
// interpolation tables and triangle-vertex records are carved out of
// large blocks and freed only in bulk, on draw retirement.
package arena

import "unsafe"

// minBlockSize is the smallest block the arena will allocate, matching
// spec.md's "max(size, previous_peak_usage, 1 MiB)".
const minBlockSize = 1 << 20

// align is the alignment every allocation is rounded up to: W*4 bytes
// for a lane width of 8 float32s.
const align = 32

// block is one contiguous allocation. offset marks the next free byte.
type block struct {
	data   []byte
	offset int
}

func newBlock(size int) *block {
	if size < minBlockSize {
		size = minBlockSize
	}
	size = alignUp(size, align)
	return &block{data: make([]byte, size)}
}

func alignUp(n, a int) int {
	return (n + a - 1) &^ (a - 1)
}

func (b *block) allocAligned(size, alignment int) ([]byte, bool) {
	off := alignUp(b.offset, alignment)
	end := off + size
	if end > len(b.data) {
		return nil, false
	}
	b.offset = end
	return b.data[off:end:end], true
}

// Arena owns exactly one live block at a time plus a used list of full
// blocks retained until Reset. Not safe for concurrent use: a DC's arena
// is written by the single worker running its frontend and read-only
// afterward, as spec.md's concurrency model requires.
type Arena struct {
	current   *block
	used      []*block
	peakUsage int

	// onExhausted is invoked (instead of silently growing without bound)
	// when a single allocation request exceeds everything the arena is
	// willing to carve from one block; nil means "never called" because
	// growth always succeeds by allocating a big-enough new block. This
	// hook exists purely so callers can wire in swr.Fatalf without this
	// package importing the root package (which would cycle).
	onExhausted func(requested int)
}

// New creates an empty arena. The first AllocAligned call lazily
// allocates the first block.
func New() *Arena {
	return &Arena{}
}

// SetExhaustedHandler installs a callback invoked if size is so large no
// single block could ever satisfy it (a degenerate/corrupt request —
// this is the "resource exhaustion" path from spec.md §7, fatal).
func (a *Arena) SetExhaustedHandler(fn func(requested int)) {
	a.onExhausted = fn
}

// AllocAligned returns a zeroed byte slice of the given size, aligned to
// alignment (which must be a power of two). If the current block lacks
// room, it is retired to the used list and a fresh block is allocated
// sized to max(size, previous peak usage, 1 MiB).
func (a *Arena) AllocAligned(size, alignment int) []byte {
	if alignment <= 0 {
		alignment = align
	}
	if size <= 0 {
		return nil
	}

	if a.current != nil {
		if buf, ok := a.current.allocAligned(size, alignment); ok {
			return buf
		}
	}

	needed := size + alignment
	if needed < a.peakUsage {
		needed = a.peakUsage
	}
	if needed > 1<<30 {
		if a.onExhausted != nil {
			a.onExhausted(size)
		}
		return nil
	}

	if a.current != nil {
		a.used = append(a.used, a.current)
	}
	a.current = newBlock(needed)

	buf, ok := a.current.allocAligned(size, alignment)
	if !ok {
		// A freshly sized block must satisfy its own request; failure
		// here means the caller asked for something larger than any
		// reasonable block, which is the fatal path.
		if a.onExhausted != nil {
			a.onExhausted(size)
		}
		return nil
	}
	return buf
}

// Reset frees every used block and truncates the current block's offset
// to zero, recording the total bytes consumed since the last reset as
// the new peak usage hint for the next block allocation. This is the
// only path that releases arena memory, matching spec.md's "reset()" op.
func (a *Arena) Reset() {
	total := 0
	for _, b := range a.used {
		total += len(b.data)
	}
	if a.current != nil {
		total += a.current.offset
	}
	if total > a.peakUsage {
		a.peakUsage = total
	}

	a.used = a.used[:0]
	if a.current != nil {
		a.current.offset = 0
	}
}

// AllocSlice carves a slice of n zeroed T values out of the arena,
// growing it like AllocAligned. T must be a plain-data type (no
// pointers, slices or maps) since the returned slice aliases raw arena
// bytes reinterpreted via unsafe.Slice; this is how the binner's
// per-triangle TriRecord scratch (spec.md §3's interp/tri buffers) gets
// arena-backed growth without the arena package depending on
// internal/frontend's types.
func AllocSlice[T any](a *Arena, n int) []T {
	if n <= 0 {
		return nil
	}
	var zero T
	elemSize := int(unsafe.Sizeof(zero))
	buf := a.AllocAligned(elemSize*n, int(unsafe.Alignof(zero)))
	if buf == nil {
		return nil
	}
	return unsafe.Slice((*T)(unsafe.Pointer(&buf[0])), n)
}

// Used reports total bytes allocated since the last Reset, for
// diagnostics and tests. Arena block growth is not logged.
func (a *Arena) Used() int {
	total := 0
	for _, b := range a.used {
		total += b.offset
	}
	if a.current != nil {
		total += a.current.offset
	}
	return total
}
