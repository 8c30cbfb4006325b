package core

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ml-gol/pkg/rgb"
)

func TestColorGridClear(t *testing.T) {
	g := NewColorGrid(4, 3)
	assert.Len(t, g.Cells(), 12)
	assert.True(t, g.IsBlack())

	g.Cells()[g.Index(3, 2)] = rgb.Color{R: 9}
	assert.Equal(t, rgb.Color{R: 9}, g.At(3, 2))
	assert.False(t, g.IsBlack())

	g.Clear()
	assert.True(t, g.IsBlack())
	g.Clear()
	assert.True(t, g.IsBlack())
}

func TestNewColorGridClampsDimensions(t *testing.T) {
	g := NewColorGrid(0, -1)
	assert.Equal(t, 1, g.W)
	assert.Equal(t, 1, g.H)
}

func TestLookup(t *testing.T) {
	Register("test-sim", func(map[string]string) (Sim, error) { return nil, nil })
	_, err := Lookup("test-sim")
	assert.NoError(t, err)
	_, err = Lookup("missing")
	assert.ErrorContains(t, err, `unknown sim "missing"`)
}
