package forme

import "github.com/kungfusheep/glyphframe/obs"

// DegradationLevel describes how much of the rendering pipeline a Screen
// is allowed to use this frame, so a slow terminal or an overloaded
// render loop can shed work gracefully instead of falling further and
// further behind.
type DegradationLevel uint8

const (
	// DegradeNone renders at full fidelity: every dirty cell, full color.
	DegradeNone DegradationLevel = iota
	// DegradeReduced skips cosmetic-only redraws (e.g. spinner frames,
	// cursor blink) when the render queue is backed up, but still flushes
	// every content change.
	DegradeReduced
	// DegradeMinimal coalesces all pending dirty rows into a single full
	// repaint and drops non-essential animation entirely, the last resort
	// before a frame is skipped outright.
	DegradeMinimal
)

// HashBuffer computes a stable FNV-1a/64 digest over buf's visible cells in
// row-major order. Two buffers with identical content hash identically
// regardless of how they were produced, which is what lets the
// observability harness detect "did this frame actually change" without
// keeping the previous frame's full cell grid around for comparison.
func HashBuffer(buf *Buffer) uint64 {
	h := obs.NewFrameHasher()
	w, ht := buf.Size()
	for y := 0; y < ht; y++ {
		for x := 0; x < w; x++ {
			c := buf.Get(x, y)
			h.WriteRune(c.Rune)
			h.WriteUint8(uint8(c.Style.Attr))
			h.WriteUint8(uint8(c.Style.FG.Mode))
			h.WriteUint8(c.Style.FG.R)
			h.WriteUint8(c.Style.FG.G)
			h.WriteUint8(c.Style.FG.B)
			h.WriteUint8(c.Style.FG.Index)
			h.WriteUint8(uint8(c.Style.BG.Mode))
			h.WriteUint8(c.Style.BG.R)
			h.WriteUint8(c.Style.BG.G)
			h.WriteUint8(c.Style.BG.B)
			h.WriteUint8(c.Style.BG.Index)
		}
	}
	return h.Sum64()
}

// HashBufferRow hashes a single row, for the observability harness's
// per-row dirty/golden accounting.
func HashBufferRow(buf *Buffer, y int) uint64 {
	h := obs.NewFrameHasher()
	w := buf.Width()
	for x := 0; x < w; x++ {
		c := buf.Get(x, y)
		h.WriteRune(c.Rune)
		h.WriteUint8(uint8(c.Style.Attr))
	}
	return h.Sum64()
}

// ToGoldenGrid converts buf into the row-text/row-hash shape
// obs.CompareGolden operates on, without obs needing to know about Buffer
// or Cell directly.
func ToGoldenGrid(buf *Buffer) obs.FrameGrid {
	w, h := buf.Size()
	grid := obs.FrameGrid{Rows: make([]string, h), RowHash: make([]uint64, h)}
	for y := 0; y < h; y++ {
		row := make([]rune, w)
		for x := 0; x < w; x++ {
			row[x] = buf.Get(x, y).Rune
		}
		grid.Rows[y] = string(row)
		grid.RowHash[y] = HashBufferRow(buf, y)
	}
	return grid
}

// DirtyRowCount reports how many rows in buf are currently marked dirty,
// for trace records that track render-cost-avoided-by-diffing.
func DirtyRowCount(buf *Buffer) int {
	_, h := buf.Size()
	n := 0
	for y := 0; y < h; y++ {
		if buf.RowDirty(y) {
			n++
		}
	}
	return n
}
