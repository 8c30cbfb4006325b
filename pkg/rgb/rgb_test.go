package rgb

import (
	"image/color"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromHSV(t *testing.T) {
	tests := []struct {
		name    string
		h, s, v float64
		want    Color
	}{
		{"red", 0, 1, 1, Color{255, 0, 0}},
		{"orange truncates", 30, 1, 1, Color{255, 127, 0}},
		{"yellow", 60, 1, 1, Color{255, 255, 0}},
		{"green", 120, 1, 1, Color{0, 255, 0}},
		{"cyan", 180, 1, 1, Color{0, 255, 255}},
		{"blue", 240, 1, 1, Color{0, 0, 255}},
		{"magenta", 300, 1, 1, Color{255, 0, 255}},
		{"gray has no chroma", 200, 0, 0.5, Color{127, 127, 127}},
		{"black", 90, 1, 0, Color{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FromHSV(tt.h, tt.s, tt.v))
		})
	}
}

func TestAddWraps(t *testing.T) {
	got := Add(Color{200, 10, 255}, Color{100, 20, 1})
	assert.Equal(t, Color{44, 30, 0}, got)
}

func TestAddIsOrderIndependent(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 11))
	random := func() Color {
		return Color{uint8(r.IntN(256)), uint8(r.IntN(256)), uint8(r.IntN(256))}
	}

	for range 500 {
		a, b, c := random(), random(), random()
		require.Equal(t, Add(Add(a, b), c), Add(Add(a, c), b))
		require.Equal(t, Add(a, Add(b, c)), Add(Add(a, b), c))
	}
}

func TestHex(t *testing.T) {
	assert.Equal(t, "#ff0000", Hex(Color{255, 0, 0}))
	assert.Equal(t, "#0a0b0c", Color{10, 11, 12}.String())
	assert.Len(t, Hex(Color{}), 7)
}

func TestRGBAIsOpaque(t *testing.T) {
	c := color.NRGBAModel.Convert(Color{1, 2, 3}).(color.NRGBA)
	assert.Equal(t, color.NRGBA{R: 1, G: 2, B: 3, A: 255}, c)
}

// hueOf recovers the hue of a fully saturated colour.
func hueOf(c Color) float64 {
	r, g, b := float64(c.R)/255, float64(c.G)/255, float64(c.B)/255
	maxC := math.Max(r, math.Max(g, b))
	minC := math.Min(r, math.Min(g, b))
	d := maxC - minC
	if d == 0 {
		return 0
	}
	var h float64
	switch maxC {
	case r:
		h = math.Mod((g-b)/d, 6)
	case g:
		h = (b-r)/d + 2
	default:
		h = (r-g)/d + 4
	}
	h *= 60
	if h < 0 {
		h += 360
	}
	return h
}

func TestLayerColorsAreEvenlySpaced(t *testing.T) {
	want := []float64{0, 120, 240}
	for i, h := range want {
		c := LayerColor(i, 3)
		assert.InDelta(t, h, hueOf(c), 1.0, "layer %d colour %s", i, c)
	}
	assert.Equal(t, Color{255, 0, 0}, LayerColor(0, 3))
	assert.Equal(t, Color{0, 255, 0}, LayerColor(1, 3))
	assert.Equal(t, Color{0, 0, 255}, LayerColor(2, 3))
}
