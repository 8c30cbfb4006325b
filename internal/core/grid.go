package core

import "ml-gol/pkg/rgb"

// ColorGrid stores one RGB value per logical cell in row-major order. It has
// no halo; it is the shape of the combined and dependent images.
type ColorGrid struct {
	W, H int
	data []rgb.Color
}

// NewColorGrid allocates a black grid with the given dimensions.
func NewColorGrid(w, h int) *ColorGrid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &ColorGrid{W: w, H: h, data: make([]rgb.Color, w*h)}
}

// Cells exposes the backing slice so callers can read/write values directly.
func (g *ColorGrid) Cells() []rgb.Color { return g.data }

// Index returns the linear slice index for coordinates (x, y).
func (g *ColorGrid) Index(x, y int) int { return y*g.W + x }

// At returns the colour at (x, y).
func (g *ColorGrid) At(x, y int) rgb.Color { return g.data[g.Index(x, y)] }

// Clear resets every cell to black.
func (g *ColorGrid) Clear() {
	clear(g.data)
}

// IsBlack reports whether every cell is black.
func (g *ColorGrid) IsBlack() bool {
	for _, c := range g.data {
		if !c.IsBlack() {
			return false
		}
	}
	return true
}
