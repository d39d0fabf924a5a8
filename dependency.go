package swr

import "sync"

// depTracker maps a resource (identified by its pointer value — a
// *Buffer, *Texture or *RenderTarget) to the draw_id of the most recent
// draw that wrote it, implementing spec.md §4.C4's "Dependencies":
// "names a draw_id this DC's backend work must not start before".
type depTracker struct {
	mu         sync.Mutex
	lastWriter map[any]int64
}

func newDepTracker() *depTracker {
	return &depTracker{lastWriter: make(map[any]int64)}
}

// recordWrite notes that drawID wrote res, superseding any earlier
// writer.
func (d *depTracker) recordWrite(res any, drawID int64) {
	if res == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.lastWriter[res] = drawID
}

// dependencyFor returns the highest draw_id among resources' last
// writers, and whether any writer was found at all. A draw that reads
// resources written by several prior draws need only wait on the most
// recent of them: earlier draws are necessarily retired by the time a
// later one sharing the same ring slot generation has.
func (d *depTracker) dependencyFor(resources []any) (int64, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	found := false
	var max int64 = -1
	for _, res := range resources {
		if res == nil {
			continue
		}
		if id, ok := d.lastWriter[res]; ok {
			found = true
			if id > max {
				max = id
			}
		}
	}
	return max, found
}
