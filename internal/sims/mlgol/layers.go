package mlgol

import (
	"ml-gol/pkg/core"
	"ml-gol/pkg/rgb"
	"ml-gol/pkg/sims/life"
)

// LayerSet is the ordered collection of independent Life layers in a run.
// Layer order fixes hue assignment for the lifetime of the set.
type LayerSet struct {
	size   int
	layers []*life.Grid
	colors []rgb.Color
	seeds  []uint64
}

// NewLayerSet builds numLayers grids seeded from streams derived from seed.
func NewLayerSet(gridSize, numLayers int, density float64, seed uint64) (*LayerSet, error) {
	ls := &LayerSet{
		size:   gridSize,
		layers: make([]*life.Grid, numLayers),
		colors: make([]rgb.Color, numLayers),
		seeds:  make([]uint64, numLayers),
	}
	for i := range numLayers {
		ls.seeds[i] = core.DeriveSeed(seed, i)
		g, err := life.NewSeeded(gridSize, ls.seeds[i], density)
		if err != nil {
			return nil, err
		}
		ls.layers[i] = g
		ls.colors[i] = rgb.LayerColor(i, numLayers)
	}
	return ls, nil
}

// Len returns the number of layers.
func (ls *LayerSet) Len() int { return len(ls.layers) }

// Size returns the logical side length shared by every layer.
func (ls *LayerSet) Size() int { return ls.size }

// Layer returns layer i.
func (ls *LayerSet) Layer(i int) *life.Grid { return ls.layers[i] }

// Color returns the display colour of layer i.
func (ls *LayerSet) Color(i int) rgb.Color { return ls.colors[i] }

// Colors returns the per-layer display colours in layer order.
func (ls *LayerSet) Colors() []rgb.Color { return ls.colors }

// LayerSeed returns the derived seed layer i was populated from.
func (ls *LayerSet) LayerSeed(i int) uint64 { return ls.seeds[i] }

// Advance runs one generation of layer i and refreshes the halo of the newly
// published buffer so compositing sees wrapped neighbours. Distinct layers
// share no state, so calls for different indices may run concurrently.
func (ls *LayerSet) Advance(i int) {
	g := ls.layers[i]
	g.Advance()
	g.RefreshHalo()
}

// Reseed clears every layer and repopulates it from a new top-level seed.
func (ls *LayerSet) Reseed(seed uint64, density float64) {
	for i, g := range ls.layers {
		ls.seeds[i] = core.DeriveSeed(seed, i)
		g.Clear()
		g.Seed(ls.seeds[i], density)
	}
}

// Populations returns the alive cell count of every layer.
func (ls *LayerSet) Populations() []int {
	out := make([]int, len(ls.layers))
	for i, g := range ls.layers {
		out[i] = g.Population()
	}
	return out
}
