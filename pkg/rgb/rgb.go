// Package rgb implements the small colour model shared by the compositor and
// the frame writers: 8-bit RGB triples, HSV conversion and wraparound addition.
package rgb

import (
	"fmt"
	"math"
)

// Color is an opaque 8-bit RGB triple.
type Color struct {
	R, G, B uint8
}

// Black is the zero colour every derived grid is reset to.
var Black = Color{}

// RGBA implements image/color.Color. Colors are always fully opaque.
func (c Color) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R)
	r |= r << 8
	g = uint32(c.G)
	g |= g << 8
	b = uint32(c.B)
	b |= b << 8
	return r, g, b, 0xffff
}

// String returns the colour in #rrggbb form.
func (c Color) String() string { return Hex(c) }

// IsBlack reports whether every channel is zero.
func (c Color) IsBlack() bool { return c == Black }

// Gray returns a colour with all three channels set to v.
func Gray(v uint8) Color { return Color{R: v, G: v, B: v} }

// FromHSV converts a hue in [0,360) and saturation/value in [0,1] to RGB.
// Channels are scaled to [0,255] and truncated. Hue normalisation is the
// caller's job.
func FromHSV(h, s, v float64) Color {
	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	return Color{
		R: uint8((r + m) * 255),
		G: uint8((g + m) * 255),
		B: uint8((b + m) * 255),
	}
}

// Add sums two colours channel by channel modulo 256. Overflow wraps rather
// than saturating, so heavily overlapped cells cycle through colours.
func Add(a, b Color) Color {
	return Color{R: a.R + b.R, G: a.G + b.G, B: a.B + b.B}
}

// Hex formats c as a 7-character #rrggbb string.
func Hex(c Color) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// LayerHue spaces count layers evenly around the hue wheel in index order.
func LayerHue(index, count int) float64 {
	if count <= 0 {
		return 0
	}
	return 360 * float64(index) / float64(count)
}

// LayerColor returns the fully saturated display colour for a layer.
func LayerColor(index, count int) Color {
	return FromHSV(LayerHue(index, count), 1, 1)
}
