package mlgol

import (
	"sync"

	"ml-gol/internal/core"
	"ml-gol/pkg/rgb"
)

// Compositor reduces a LayerSet into the combined colour grid and the
// dependent density grid. Rows are split into bands so every output cell has
// exactly one writer; within a cell layers are always visited in index order.
type Compositor struct {
	divisor int
	workers int
}

// NewCompositor returns a compositor using divisor as the per-layer
// neighbourhood weight of the dependent field and up to workers goroutines.
func NewCompositor(divisor, workers int) *Compositor {
	if divisor < 1 {
		divisor = DefaultDensityDivisor
	}
	if workers < 1 {
		workers = 1
	}
	return &Compositor{divisor: divisor, workers: workers}
}

// Combine adds each layer's colour into every logical cell where that layer
// is alive.
func (c *Compositor) Combine(layers *LayerSet, combined *core.ColorGrid) {
	n := layers.Size()
	cells := combined.Cells()
	c.rows(n, func(lo, hi int) {
		for y := lo; y < hi; y++ {
			for x := 0; x < n; x++ {
				idx := combined.Index(x, y)
				acc := cells[idx]
				for k := 0; k < layers.Len(); k++ {
					if layers.Layer(k).Alive(y+1, x+1) {
						acc = rgb.Add(acc, layers.Color(k))
					}
				}
				cells[idx] = acc
			}
		}
	})
}

// DeriveDependent writes, for every logical cell, a gray level proportional
// to the number of alive (layer, neighbour) pairs around it. Each layer's
// halo must be current for the generation being read.
func (c *Compositor) DeriveDependent(layers *LayerSet, dependent *core.ColorGrid) {
	n := layers.Size()
	cells := dependent.Cells()
	scale := float64(c.divisor * layers.Len())
	c.rows(n, func(lo, hi int) {
		for y := lo; y < hi; y++ {
			for x := 0; x < n; x++ {
				count := 0
				for k := 0; k < layers.Len(); k++ {
					count += layers.Layer(k).CountAliveNeighbors(y+1, x+1)
				}
				cells[dependent.Index(x, y)] = rgb.Gray(grayLevel(count, scale))
			}
		}
	})
}

// grayLevel maps count/scale onto [0,255], truncating. Divisors below
// MinDensityDivisor saturate at 255 instead of wrapping.
func grayLevel(count int, scale float64) uint8 {
	v := float64(count) / scale * 255
	if v >= 255 {
		return 255
	}
	return uint8(v)
}

// Reset paints both derived grids black.
func (c *Compositor) Reset(combined, dependent *core.ColorGrid) {
	combined.Clear()
	dependent.Clear()
}

// rows calls fn over [0,n) split into at most c.workers contiguous bands and
// returns once every band is done.
func (c *Compositor) rows(n int, fn func(lo, hi int)) {
	workers := c.workers
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		fn(0, n)
		return
	}
	band := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for lo := 0; lo < n; lo += band {
		hi := min(lo+band, n)
		wg.Add(1)
		go func(lo, hi int) {
			defer wg.Done()
			fn(lo, hi)
		}(lo, hi)
	}
	wg.Wait()
}
