package app

import (
	"flag"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ml-gol/internal/core"
	"ml-gol/internal/sims/mlgol"
)

func TestConfigBind(t *testing.T) {
	cfg := NewConfig()
	fs := flag.NewFlagSet("view", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	cfg.Bind(fs)

	require.NoError(t, fs.Parse([]string{"-size", "64", "-layers", "5", "-seed", "18446744073709551615", "-density", "0.25", "-hud", "0"}))
	assert.Equal(t, 64, cfg.Size)
	assert.Equal(t, 5, cfg.Layers)
	assert.Equal(t, uint64(18446744073709551615), cfg.Seed)
	assert.Equal(t, 0.25, cfg.Density)
	assert.Equal(t, 0, cfg.HUDWidth)
	assert.Equal(t, "mlgol", cfg.Sim)
}

func TestSimParamsBuildEngine(t *testing.T) {
	cfg := NewConfig()
	cfg.Size = 24
	cfg.Layers = 4
	cfg.Density = 0.45
	cfg.Divisor = 12
	cfg.Seed = 99

	factory, err := core.Lookup(cfg.Sim)
	require.NoError(t, err)
	sim, err := factory(cfg.SimParams())
	require.NoError(t, err)

	e, ok := sim.(*mlgol.Engine)
	require.True(t, ok)
	got := e.Config()
	assert.Equal(t, 24, got.GridSize)
	assert.Equal(t, 4, got.NumLayers)
	assert.Equal(t, 0.45, got.Density)
	assert.Equal(t, 12, got.DensityDivisor)
	assert.Equal(t, uint64(99), got.Seed)
	assert.False(t, got.EmitFrames)
}
