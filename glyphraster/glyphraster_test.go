package glyphraster

import (
	"image"
	"testing"
)

func TestRasterUnsupportedRuneFails(t *testing.T) {
	if _, ok := Raster('a', 10, 20); ok {
		t.Fatal("expected ok=false for a non-box-drawing rune")
	}
}

func TestRasterHorizontalLineProducesCenterCoverage(t *testing.T) {
	img, ok := Raster(0x2500, 16, 24)
	if !ok {
		t.Fatal("expected ok=true")
	}
	cy := 24 / 2
	if img.AlphaAt(8, cy).A == 0 {
		t.Fatal("expected coverage at vertical center of a horizontal line glyph")
	}
	if img.AlphaAt(8, 2).A != 0 {
		t.Fatal("expected no coverage far from the line")
	}
}

func TestRasterFullBlockFillsEntireCell(t *testing.T) {
	img, ok := Raster(0x2588, 10, 10)
	if !ok {
		t.Fatal("expected ok=true")
	}
	if img.AlphaAt(0, 0).A == 0 || img.AlphaAt(9, 9).A == 0 {
		t.Fatal("expected full block to cover all corners")
	}
}

func TestRasterEighthBlockCoversPartialHeight(t *testing.T) {
	img, ok := Raster(0x2581, 10, 8) // lower 1/8
	if !ok {
		t.Fatal("expected ok=true")
	}
	if img.AlphaAt(5, 0).A != 0 {
		t.Fatal("expected top of cell empty for lower-1/8 block")
	}
	if img.AlphaAt(5, 7).A == 0 {
		t.Fatal("expected bottom row covered for lower-1/8 block")
	}
}

func TestRasterQuadrantTopLeft(t *testing.T) {
	img, ok := Raster(0x2598, 10, 10)
	if !ok {
		t.Fatal("expected ok=true")
	}
	if img.AlphaAt(2, 2).A == 0 {
		t.Fatal("expected top-left quadrant covered")
	}
	if img.AlphaAt(8, 8).A != 0 {
		t.Fatal("expected bottom-right quadrant empty")
	}
}

func TestRasterDiagonal(t *testing.T) {
	img, ok := Raster(0x2572, 20, 20)
	if !ok {
		t.Fatal("expected ok=true")
	}
	if img.AlphaAt(2, 2).A == 0 {
		t.Fatal("expected coverage near top-left for a top-left-to-bottom-right diagonal")
	}
}

func TestRasterShadeIsPartialCoverage(t *testing.T) {
	light, _ := Raster(0x2591, 16, 16)
	dark, _ := Raster(0x2593, 16, 16)
	lightCount := countCovered(light)
	darkCount := countCovered(dark)
	if lightCount == 0 || darkCount == 0 {
		t.Fatal("expected some coverage for both shade levels")
	}
	if lightCount >= darkCount {
		t.Fatalf("expected light shade (%d) to cover fewer pixels than dark shade (%d)", lightCount, darkCount)
	}
}

func countCovered(img *image.Alpha) int {
	n := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.AlphaAt(x, y).A != 0 {
				n++
			}
		}
	}
	return n
}
