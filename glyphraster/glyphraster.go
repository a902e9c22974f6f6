// Package glyphraster rasterizes the Unicode box-drawing, block-element,
// and shade block ranges (U+2500-U+259F) to per-cell alpha coverage
// bitmaps, so a GPU-backed renderer can draw crisp, consistently-weighted
// lines and blocks itself instead of depending on whatever glyphs happen to
// ship in the host's monospace font (which vary wildly in stroke width and
// often don't line up pixel-for-pixel between box-drawing segments from
// different fonts).
package glyphraster

import (
	"image"
	"image/color"

	"golang.org/x/image/vector"
)

var fullAlpha = color.Alpha{A: 0xff}

// Raster rasterizes r into an alpha coverage bitmap cellW x cellH pixels,
// returning ok=false for runes outside the supported range (callers fall
// back to normal font rendering in that case).
func Raster(r rune, cellW, cellH int) (*image.Alpha, bool) {
	if cellW <= 0 || cellH <= 0 {
		return nil, false
	}
	switch {
	case r >= 0x2500 && r <= 0x257f:
		return rasterBoxDrawing(r, cellW, cellH), true
	case r >= 0x2580 && r <= 0x258f:
		return rasterBlockElement(r, cellW, cellH), true
	case r >= 0x2590 && r <= 0x2595:
		return rasterShadeOrHalfBlock(r, cellW, cellH), true
	case r >= 0x2596 && r <= 0x259f:
		return rasterQuadrant(r, cellW, cellH), true
	default:
		return nil, false
	}
}

// weight returns the stroke width for a light (1/8) or heavy (1/4) line as
// a fraction of the given cell dimension, matching the Unicode block's
// light (thin) vs heavy (thick) distinction.
func weight(heavy bool, cellH int) float32 {
	frac := float32(1.0 / 8.0)
	if heavy {
		frac = 1.0 / 4.0
	}
	w := frac * float32(cellH)
	if w < 1 {
		w = 1
	}
	return w
}

type edges struct {
	up, down, left, right     bool
	upHeavy, downHeavy        bool
	leftHeavy, rightHeavy     bool
	rounded                   bool
	double                    bool
}

// boxDrawingEdges returns which of the four cell edges r's glyph connects
// to, and at what weight — the same junction-composition idea as a
// border-merging lookup table, generalized to per-rune coverage rasterization
// instead of a fixed set of border styles.
func boxDrawingEdges(r rune) edges {
	switch r {
	case 0x2500:
		return edges{left: true, right: true}
	case 0x2501:
		return edges{left: true, right: true, leftHeavy: true, rightHeavy: true}
	case 0x2502:
		return edges{up: true, down: true}
	case 0x2503:
		return edges{up: true, down: true, upHeavy: true, downHeavy: true}
	case 0x250c:
		return edges{down: true, right: true}
	case 0x2510:
		return edges{down: true, left: true}
	case 0x2514:
		return edges{up: true, right: true}
	case 0x2518:
		return edges{up: true, left: true}
	case 0x251c:
		return edges{up: true, down: true, right: true}
	case 0x2524:
		return edges{up: true, down: true, left: true}
	case 0x252c:
		return edges{down: true, left: true, right: true}
	case 0x2534:
		return edges{up: true, left: true, right: true}
	case 0x253c:
		return edges{up: true, down: true, left: true, right: true}
	case 0x256d:
		return edges{down: true, right: true, rounded: true}
	case 0x256e:
		return edges{down: true, left: true, rounded: true}
	case 0x256f:
		return edges{up: true, left: true, rounded: true}
	case 0x2570:
		return edges{up: true, right: true, rounded: true}
	case 0x2550:
		return edges{left: true, right: true, double: true}
	case 0x2551:
		return edges{up: true, down: true, double: true}
	default:
		return edges{}
	}
}

func rasterBoxDrawing(r rune, w, h int) *image.Alpha {
	if r == 0x2571 || r == 0x2572 || r == 0x2573 {
		return rasterDiagonal(r, w, h)
	}

	e := boxDrawingEdges(r)
	img := image.NewAlpha(image.Rect(0, 0, w, h))
	ras := vector.NewRasterizer(w, h)
	cx, cy := float32(w)/2, float32(h)/2

	strokeH := weight(e.leftHeavy || e.rightHeavy, h)
	strokeV := weight(e.upHeavy || e.downHeavy, w)
	if e.double {
		// two parallel thin strokes offset from center, a common rendition
		// of double box-drawing lines
		gap := strokeH
		if e.up || e.down {
			drawVerticalPair(ras, cx, float32(h), gap)
		}
		if e.left || e.right {
			drawHorizontalPair(ras, cy, float32(w), gap)
		}
		ras.Draw(img, img.Bounds(), image.Opaque, image.Point{})
		return img
	}

	if e.left {
		fillRect(ras, 0, cy-strokeH/2, cx+strokeH/2, cy+strokeH/2)
	}
	if e.right {
		fillRect(ras, cx-strokeH/2, cy-strokeH/2, float32(w), cy+strokeH/2)
	}
	if e.up {
		fillRect(ras, cx-strokeV/2, 0, cx+strokeV/2, cy+strokeV/2)
	}
	if e.down {
		fillRect(ras, cx-strokeV/2, cy-strokeV/2, cx+strokeV/2, float32(h))
	}
	// Rounded-corner glyphs (0x256d-0x2570) reuse the straight-stub
	// rendering above; only the edge set differs from a square corner, not
	// the stroke geometry, at typical terminal cell sizes.

	ras.Draw(img, img.Bounds(), image.Opaque, image.Point{})
	return img
}


func drawVerticalPair(ras *vector.Rasterizer, cx, h, gap float32) {
	off := gap * 1.5
	fillRect(ras, cx-off-gap/2, 0, cx-off+gap/2, h)
	fillRect(ras, cx+off-gap/2, 0, cx+off+gap/2, h)
}

func drawHorizontalPair(ras *vector.Rasterizer, cy, w, gap float32) {
	off := gap * 1.5
	fillRect(ras, 0, cy-off-gap/2, w, cy-off+gap/2)
	fillRect(ras, 0, cy+off-gap/2, w, cy+off+gap/2)
}

func fillRect(ras *vector.Rasterizer, x0, y0, x1, y1 float32) {
	ras.MoveTo(x0, y0)
	ras.LineTo(x1, y0)
	ras.LineTo(x1, y1)
	ras.LineTo(x0, y1)
	ras.ClosePath()
}

func rasterDiagonal(r rune, w, h int) *image.Alpha {
	img := image.NewAlpha(image.Rect(0, 0, w, h))
	ras := vector.NewRasterizer(w, h)
	stroke := weight(false, h)

	switch r {
	case 0x2571: // bottom-left to top-right
		drawThickLine(ras, 0, float32(h), float32(w), 0, stroke)
	case 0x2572: // top-left to bottom-right
		drawThickLine(ras, 0, 0, float32(w), float32(h), stroke)
	case 0x2573: // both diagonals (X)
		drawThickLine(ras, 0, float32(h), float32(w), 0, stroke)
		drawThickLine(ras, 0, 0, float32(w), float32(h), stroke)
	}
	ras.Draw(img, img.Bounds(), image.Opaque, image.Point{})
	return img
}

// drawThickLine approximates a stroked line segment by emitting a filled
// quadrilateral of the given thickness, perpendicular to the segment
// direction.
func drawThickLine(ras *vector.Rasterizer, x0, y0, x1, y1, thickness float32) {
	dx, dy := x1-x0, y1-y0
	length := hypot(dx, dy)
	if length == 0 {
		return
	}
	nx, ny := -dy/length*thickness/2, dx/length*thickness/2

	ras.MoveTo(x0+nx, y0+ny)
	ras.LineTo(x1+nx, y1+ny)
	ras.LineTo(x1-nx, y1-ny)
	ras.LineTo(x0-nx, y0-ny)
	ras.ClosePath()
}

func hypot(a, b float32) float32 {
	return float32(fixedSqrt(float64(a)*float64(a) + float64(b)*float64(b)))
}

func fixedSqrt(v float64) float64 {
	if v <= 0 {
		return 0
	}
	x := v
	for i := 0; i < 20; i++ {
		x = 0.5 * (x + v/x)
	}
	return x
}

// rasterBlockElement handles U+2580-258F: upper/lower half blocks and the
// eighth-block family used for precision progress bars.
func rasterBlockElement(r rune, w, h int) *image.Alpha {
	img := image.NewAlpha(image.Rect(0, 0, w, h))
	switch {
	case r == 0x2580: // upper half
		fillSolid(img, 0, 0, w, h/2)
	case r >= 0x2581 && r <= 0x2588: // lower 1/8 through full block
		eighths := int(r-0x2580) // 1..8
		fillHeight := h * eighths / 8
		fillSolid(img, 0, h-fillHeight, w, h)
	case r == 0x2589: // left 7/8
		fillSolid(img, 0, 0, w*7/8, h)
	case r == 0x258a:
		fillSolid(img, 0, 0, w*3/4, h)
	case r == 0x258b:
		fillSolid(img, 0, 0, w*5/8, h)
	case r == 0x258c: // left half
		fillSolid(img, 0, 0, w/2, h)
	case r == 0x258d:
		fillSolid(img, 0, 0, w*3/8, h)
	case r == 0x258e:
		fillSolid(img, 0, 0, w/4, h)
	case r == 0x258f:
		fillSolid(img, 0, 0, w/8, h)
	}
	return img
}

// rasterShadeOrHalfBlock handles the light/medium/dark shade patterns
// (U+2591-2593, stippled fixed-alpha fills) and the remaining half blocks
// (U+2590 right half, U+2594 upper 1/8, U+2595 right 1/8).
func rasterShadeOrHalfBlock(r rune, w, h int) *image.Alpha {
	img := image.NewAlpha(image.Rect(0, 0, w, h))
	switch r {
	case 0x2590:
		fillSolid(img, w/2, 0, w, h)
	case 0x2594:
		fillSolid(img, 0, 0, w, h/8)
	case 0x2595:
		fillSolid(img, w-w/8, 0, w, h)
	case 0x2591: // light shade, ~25%
		fillStipple(img, 4)
	case 0x2592: // medium shade, ~50%
		fillStipple(img, 2)
	case 0x2593: // dark shade, ~75%
		fillStippleDense(img)
	}
	return img
}

// rasterQuadrant handles U+2596-259F: the ten 2x2 quadrant-block
// combinations.
func rasterQuadrant(r rune, w, h int) *image.Alpha {
	img := image.NewAlpha(image.Rect(0, 0, w, h))
	halfW, halfH := w/2, h/2
	// bitmask: bit0=top-left, bit1=top-right, bit2=bottom-left, bit3=bottom-right
	mask := quadrantMask(r)
	if mask&1 != 0 {
		fillSolid(img, 0, 0, halfW, halfH)
	}
	if mask&2 != 0 {
		fillSolid(img, halfW, 0, w, halfH)
	}
	if mask&4 != 0 {
		fillSolid(img, 0, halfH, halfW, h)
	}
	if mask&8 != 0 {
		fillSolid(img, halfW, halfH, w, h)
	}
	return img
}

func quadrantMask(r rune) int {
	switch r {
	case 0x2596:
		return 0b0100
	case 0x2597:
		return 0b1000
	case 0x2598:
		return 0b0001
	case 0x2599:
		return 0b1101
	case 0x259a:
		return 0b1001
	case 0x259b:
		return 0b0111
	case 0x259c:
		return 0b1011
	case 0x259d:
		return 0b0010
	case 0x259e:
		return 0b0110
	case 0x259f:
		return 0b1110
	default:
		return 0
	}
}

func fillSolid(img *image.Alpha, x0, y0, x1, y1 int) {
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			img.SetAlpha(x, y, fullAlpha)
		}
	}
}

func fillStipple(img *image.Alpha, stride int) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if (x+y)%stride == 0 {
				img.SetAlpha(x, y, fullAlpha)
			}
		}
	}
}

func fillStippleDense(img *image.Alpha) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if (x+y)%4 != 0 {
				img.SetAlpha(x, y, fullAlpha)
			}
		}
	}
}
