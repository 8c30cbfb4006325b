package mlgol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ml-gol/internal/core"
	"ml-gol/pkg/rgb"
)

func emptyLayers(t *testing.T, size, n int) *LayerSet {
	t.Helper()
	ls, err := NewLayerSet(size, n, 0, 1)
	require.NoError(t, err)
	return ls
}

func TestCombineAddsLayerColors(t *testing.T) {
	ls := emptyLayers(t, 4, 3)
	ls.Layer(0).Set(1, 1, true)
	ls.Layer(1).Set(1, 1, true)
	ls.Layer(2).Set(2, 3, true)

	combined := core.NewColorGrid(4, 4)
	NewCompositor(DefaultDensityDivisor, 1).Combine(ls, combined)

	assert.Equal(t, rgb.Color{R: 255, G: 255}, combined.At(0, 0))
	assert.Equal(t, rgb.Color{B: 255}, combined.At(2, 1))
	assert.Equal(t, rgb.Black, combined.At(3, 3))
}

func TestCombineWrapsOverlappingColors(t *testing.T) {
	ls := emptyLayers(t, 2, 2)
	// Two layers with the same colour wrap 255+255 to 254.
	ls.colors[1] = ls.colors[0]
	ls.Layer(0).Set(1, 1, true)
	ls.Layer(1).Set(1, 1, true)

	combined := core.NewColorGrid(2, 2)
	NewCompositor(DefaultDensityDivisor, 1).Combine(ls, combined)
	assert.Equal(t, rgb.Color{R: 254}, combined.At(0, 0))
}

func TestCombineIsOrderIndependent(t *testing.T) {
	ls, err := NewLayerSet(24, 5, 0.5, 11)
	require.NoError(t, err)

	forward := core.NewColorGrid(24, 24)
	NewCompositor(DefaultDensityDivisor, 1).Combine(ls, forward)

	reversed := &LayerSet{size: ls.size}
	for i := ls.Len() - 1; i >= 0; i-- {
		reversed.layers = append(reversed.layers, ls.layers[i])
		reversed.colors = append(reversed.colors, ls.colors[i])
	}
	backward := core.NewColorGrid(24, 24)
	NewCompositor(DefaultDensityDivisor, 1).Combine(reversed, backward)

	assert.Equal(t, forward.Cells(), backward.Cells())
}

func TestCombineParallelMatchesSequential(t *testing.T) {
	ls, err := NewLayerSet(33, 4, 0.45, 5)
	require.NoError(t, err)

	seq := core.NewColorGrid(33, 33)
	par := core.NewColorGrid(33, 33)
	NewCompositor(DefaultDensityDivisor, 1).Combine(ls, seq)
	NewCompositor(DefaultDensityDivisor, 8).Combine(ls, par)
	assert.Equal(t, seq.Cells(), par.Cells())
}

func TestDeriveDependentCountsAcrossLayers(t *testing.T) {
	ls := emptyLayers(t, 6, 2)
	// Cell (3,3) gets 3 neighbours from layer 0 and 2 from layer 1.
	ls.Layer(0).Set(2, 2, true)
	ls.Layer(0).Set(2, 3, true)
	ls.Layer(0).Set(2, 4, true)
	ls.Layer(1).Set(4, 2, true)
	ls.Layer(1).Set(4, 4, true)
	for i := range ls.Len() {
		ls.Layer(i).RefreshHalo()
	}

	dependent := core.NewColorGrid(6, 6)
	NewCompositor(DefaultDensityDivisor, 1).DeriveDependent(ls, dependent)

	// 5 / (9*2) * 255 = 70.8, truncated.
	assert.Equal(t, rgb.Gray(70), dependent.At(2, 2))
	assert.Equal(t, rgb.Black, dependent.At(5, 5))
}

func TestDeriveDependentSeesWrappedNeighbours(t *testing.T) {
	ls := emptyLayers(t, 5, 1)
	// A live cell in the bottom-right corner neighbours the top-left corner.
	ls.Layer(0).Set(5, 5, true)
	ls.Layer(0).RefreshHalo()

	dependent := core.NewColorGrid(5, 5)
	NewCompositor(1, 1).DeriveDependent(ls, dependent)
	assert.Equal(t, rgb.Gray(255), dependent.At(0, 0))
}

func TestDeriveDependentDivisor(t *testing.T) {
	ls := emptyLayers(t, 4, 1)
	ls.Layer(0).Set(1, 1, true)
	ls.Layer(0).RefreshHalo()

	for _, divisor := range []int{1, 8, 9} {
		dependent := core.NewColorGrid(4, 4)
		NewCompositor(divisor, 1).DeriveDependent(ls, dependent)
		assert.Equal(t, rgb.Gray(uint8(255/float64(divisor))), dependent.At(1, 1), "divisor %d", divisor)
	}
}

func TestDeriveDependentFullySurroundedCell(t *testing.T) {
	// Every cell of a fully alive torus has 8 alive neighbours per layer.
	ls := emptyLayers(t, 4, 2)
	for i := range ls.Len() {
		ls.Layer(i).Seed(1, 1)
		ls.Layer(i).RefreshHalo()
	}

	tests := []struct {
		divisor int
		want    uint8
	}{
		{1, 255},
		{7, 255},
		{MinDensityDivisor, 255},
		{DefaultDensityDivisor, 226},
		{16, 127},
	}
	for _, tt := range tests {
		dependent := core.NewColorGrid(4, 4)
		NewCompositor(tt.divisor, 1).DeriveDependent(ls, dependent)
		for _, c := range dependent.Cells() {
			require.Equal(t, rgb.Gray(tt.want), c, "divisor %d", tt.divisor)
		}
	}
}

func TestDeriveDependentParallelMatchesSequential(t *testing.T) {
	ls, err := NewLayerSet(31, 3, 0.5, 8)
	require.NoError(t, err)
	for i := range ls.Len() {
		ls.Layer(i).RefreshHalo()
	}

	seq := core.NewColorGrid(31, 31)
	par := core.NewColorGrid(31, 31)
	NewCompositor(DefaultDensityDivisor, 1).DeriveDependent(ls, seq)
	NewCompositor(DefaultDensityDivisor, 6).DeriveDependent(ls, par)
	assert.Equal(t, seq.Cells(), par.Cells())
}

func TestResetIsIdempotent(t *testing.T) {
	ls, err := NewLayerSet(8, 2, 0.6, 2)
	require.NoError(t, err)
	combined := core.NewColorGrid(8, 8)
	dependent := core.NewColorGrid(8, 8)
	c := NewCompositor(DefaultDensityDivisor, 2)
	c.Combine(ls, combined)
	c.DeriveDependent(ls, dependent)
	require.False(t, combined.IsBlack())

	for range 2 {
		c.Reset(combined, dependent)
		assert.True(t, combined.IsBlack())
		assert.True(t, dependent.IsBlack())
	}
}
