// Package life implements a single Conway's Game of Life layer on a toroidal
// grid. The grid carries a one-cell halo so neighbour counting never has to
// wrap coordinates.
package life

import (
	"errors"

	"ml-gol/pkg/core"
)

// ErrInvalidSize is returned when a grid is requested with a non-positive side.
var ErrInvalidSize = errors.New("life: grid size must be positive")

// Index maps (row, col) to a flat buffer index for a grid of the given stride.
func Index(stride, row, col int) int { return row*stride + col }

// Grid is one Life layer. Rows and columns 0 and size+1 are halo cells that
// mirror the opposite edge after RefreshHalo.
type Grid struct {
	size   int
	stride int
	cur    []uint8
	nxt    []uint8
}

// New returns an empty grid with the given logical side length.
func New(size int) (*Grid, error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}
	stride := size + 2
	return &Grid{
		size:   size,
		stride: stride,
		cur:    make([]uint8, stride*stride),
		nxt:    make([]uint8, stride*stride),
	}, nil
}

// NewSeeded returns a grid whose logical cells are alive with probability
// density, drawn from the stream keyed by seed.
func NewSeeded(size int, seed uint64, density float64) (*Grid, error) {
	g, err := New(size)
	if err != nil {
		return nil, err
	}
	g.Seed(seed, density)
	return g, nil
}

// Size returns the logical side length, excluding the halo.
func (g *Grid) Size() int { return g.size }

// Stride returns the side length of the halo-extended buffers.
func (g *Grid) Stride() int { return g.stride }

// Cells exposes the current generation including halo cells.
func (g *Grid) Cells() []uint8 { return g.cur }

// Alive reports whether the cell at (row, col) is alive in the current
// generation. Halo coordinates are valid.
func (g *Grid) Alive(row, col int) bool {
	return g.cur[Index(g.stride, row, col)] != 0
}

// Set writes a cell of the current generation.
func (g *Grid) Set(row, col int, alive bool) {
	var v uint8
	if alive {
		v = 1
	}
	g.cur[Index(g.stride, row, col)] = v
}

// Clear kills every cell, halo included.
func (g *Grid) Clear() {
	clear(g.cur)
}

// Seed repopulates the logical cells row by row. Halo cells are not touched.
func (g *Grid) Seed(seed uint64, density float64) {
	rng := core.NewRNG(seed).Source()
	for row := 1; row <= g.size; row++ {
		start := Index(g.stride, row, 1)
		core.FillDensity(rng, g.cur[start:start+g.size], density)
	}
}

// Population counts the alive logical cells.
func (g *Grid) Population() int {
	n := 0
	for row := 1; row <= g.size; row++ {
		start := Index(g.stride, row, 1)
		for _, c := range g.cur[start : start+g.size] {
			n += int(c)
		}
	}
	return n
}

// RefreshHalo copies each logical edge into the opposite halo row or column
// and each logical corner into the diagonally opposite halo corner.
func (g *Grid) RefreshHalo() {
	n, s, c := g.size, g.stride, g.cur

	for row := 1; row <= n; row++ {
		c[Index(s, row, 0)] = c[Index(s, row, n)]
		c[Index(s, row, n+1)] = c[Index(s, row, 1)]
	}
	copy(c[Index(s, 0, 1):Index(s, 0, n+1)], c[Index(s, n, 1):Index(s, n, n+1)])
	copy(c[Index(s, n+1, 1):Index(s, n+1, n+1)], c[Index(s, 1, 1):Index(s, 1, n+1)])

	c[Index(s, 0, 0)] = c[Index(s, n, n)]
	c[Index(s, 0, n+1)] = c[Index(s, n, 1)]
	c[Index(s, n+1, 0)] = c[Index(s, 1, n)]
	c[Index(s, n+1, n+1)] = c[Index(s, 1, 1)]
}

// CountAliveNeighbors sums the Moore neighbourhood of a logical cell,
// reading halo cells on the border. Valid for 1 <= row, col <= Size().
func (g *Grid) CountAliveNeighbors(row, col int) int {
	s, c := g.stride, g.cur
	up := Index(s, row-1, col)
	mid := Index(s, row, col)
	down := Index(s, row+1, col)
	return int(c[up-1]) + int(c[up]) + int(c[up+1]) +
		int(c[mid-1]) + int(c[mid+1]) +
		int(c[down-1]) + int(c[down]) + int(c[down+1])
}

// Step evaluates B3/S23 for every logical cell, reading only the current
// generation and writing only the scratch buffer. Call Swap to publish it.
func (g *Grid) Step() {
	s := g.stride
	for row := 1; row <= g.size; row++ {
		for col := 1; col <= g.size; col++ {
			idx := Index(s, row, col)
			neighbors := g.CountAliveNeighbors(row, col)
			alive := g.cur[idx] == 1
			g.nxt[idx] = 0
			if (alive && (neighbors == 2 || neighbors == 3)) || (!alive && neighbors == 3) {
				g.nxt[idx] = 1
			}
		}
	}
}

// Swap exchanges the current and scratch buffers without copying.
func (g *Grid) Swap() {
	g.cur, g.nxt = g.nxt, g.cur
}

// Advance runs one full generation: halo refresh, step, swap.
func (g *Grid) Advance() {
	g.RefreshHalo()
	g.Step()
	g.Swap()
}

// PlaceGlider draws a south-east travelling glider whose bounding box has
// its top-left corner at (row, col).
func (g *Grid) PlaceGlider(row, col int) {
	g.Set(row, col+1, true)
	g.Set(row+1, col+2, true)
	g.Set(row+2, col, true)
	g.Set(row+2, col+1, true)
	g.Set(row+2, col+2, true)
}
