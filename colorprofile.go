package forme

import (
	"image/color"
	"io"
	"os"

	"github.com/charmbracelet/colorprofile"
)

// DetectColorProfile probes w (and the process environment) for terminal
// color capability, the same way any charmbracelet-based renderer decides
// whether to emit truecolor, 256-color, 16-color or no color at all.
func DetectColorProfile(w io.Writer) colorprofile.Profile {
	return colorprofile.Detect(w, os.Environ())
}

// Downgrade clamps c to what profile can actually display, degrading
// ColorRGB/Color256/Color16 downward as needed. ColorDefault always passes
// through unchanged.
func (c Color) Downgrade(profile colorprofile.Profile) Color {
	switch profile {
	case colorprofile.TrueColor:
		return c
	case colorprofile.ANSI256:
		if c.Mode == ColorRGB {
			return PaletteColor(rgbTo256(c.R, c.G, c.B))
		}
		return c
	case colorprofile.ANSI:
		switch c.Mode {
		case ColorRGB:
			return BasicColor(rgbTo16(c.R, c.G, c.B))
		case Color256:
			return BasicColor(index256To16(c.Index))
		}
		return c
	case colorprofile.Ascii, colorprofile.NoTTY:
		if c.Mode == ColorDefault {
			return c
		}
		return Color{Mode: ColorDefault}
	default:
		return c
	}
}

// rgbTo256 maps a truecolor value onto the xterm 256-color cube (indices
// 16-231) or the grayscale ramp (232-255), whichever is closer.
func rgbTo256(r, g, b uint8) uint8 {
	toCube := func(v uint8) int {
		if v < 48 {
			return 0
		} else if v < 115 {
			return 1
		}
		return int(v-35) / 40
	}
	ri, gi, bi := toCube(r), toCube(g), toCube(b)
	cube := 16 + 36*ri + 6*gi + bi

	gray := (int(r) + int(g) + int(b)) / 3
	grayIdx := 232 + (gray-8)/10
	if grayIdx < 232 {
		grayIdx = 232
	} else if grayIdx > 255 {
		grayIdx = 255
	}

	cubeColor := cubeToRGB(ri, gi, bi)
	grayColor := uint8(8 + (grayIdx-232)*10)
	if colorDist(r, g, b, cubeColor[0], cubeColor[1], cubeColor[2]) <=
		colorDist(r, g, b, grayColor, grayColor, grayColor) {
		return uint8(cube)
	}
	return uint8(grayIdx)
}

func cubeToRGB(ri, gi, bi int) [3]uint8 {
	levels := [6]uint8{0, 95, 135, 175, 215, 255}
	return [3]uint8{levels[ri], levels[gi], levels[bi]}
}

func colorDist(r1, g1, b1, r2, g2, b2 uint8) int {
	dr := int(r1) - int(r2)
	dg := int(g1) - int(g2)
	db := int(b1) - int(b2)
	return dr*dr + dg*dg + db*db
}

// ansiPalette16 holds the standard 16-color ANSI palette in RGB, used to
// find the nearest basic color when downgrading truecolor or 256-color.
var ansiPalette16 = [16][3]uint8{
	{0, 0, 0}, {205, 0, 0}, {0, 205, 0}, {205, 205, 0},
	{0, 0, 238}, {205, 0, 205}, {0, 205, 205}, {229, 229, 229},
	{127, 127, 127}, {255, 0, 0}, {0, 255, 0}, {255, 255, 0},
	{92, 92, 255}, {255, 0, 255}, {0, 255, 255}, {255, 255, 255},
}

func rgbTo16(r, g, b uint8) uint8 {
	best, bestDist := uint8(0), -1
	for i, p := range ansiPalette16 {
		d := colorDist(r, g, b, p[0], p[1], p[2])
		if bestDist == -1 || d < bestDist {
			best, bestDist = uint8(i), d
		}
	}
	return best
}

func index256To16(idx uint8) uint8 {
	r, g, b := color256ToRGB(idx)
	return rgbTo16(r, g, b)
}

func color256ToRGB(idx uint8) (uint8, uint8, uint8) {
	switch {
	case idx < 16:
		p := ansiPalette16[idx]
		return p[0], p[1], p[2]
	case idx < 232:
		idx -= 16
		levels := [6]uint8{0, 95, 135, 175, 215, 255}
		r := levels[(idx/36)%6]
		g := levels[(idx/6)%6]
		b := levels[idx%6]
		return r, g, b
	default:
		v := uint8(8 + (int(idx)-232)*10)
		return v, v, v
	}
}

// toNRGBA exposes a Color through the standard color.Color interface,
// useful when a component wants to composite it with image/draw.
func (c Color) toNRGBA() color.NRGBA {
	switch c.Mode {
	case ColorRGB:
		return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
	case Color256:
		r, g, b := color256ToRGB(c.Index)
		return color.NRGBA{R: r, G: g, B: b, A: 0xff}
	case Color16:
		p := ansiPalette16[c.Index]
		return color.NRGBA{R: p[0], G: p[1], B: p[2], A: 0xff}
	default:
		return color.NRGBA{}
	}
}
