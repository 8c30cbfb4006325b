package app

import (
	"flag"
	"strconv"
)

// Config represents the command-line parameters of the viewer.
type Config struct {
	Sim   string
	Scale int
	TPS   int
	// Rate is the number of generations advanced per second.
	Rate int
	Seed uint64

	Size    int
	Layers  int
	Density float64
	Divisor int

	// HUDWidth is the width in pixels of the side panel; 0 hides it.
	HUDWidth int
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Sim:      "mlgol",
		Scale:    4,
		TPS:      60,
		Rate:     15,
		Seed:     42,
		Size:     128,
		Layers:   3,
		Density:  0.3,
		Divisor:  9,
		HUDWidth: 240,
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Sim, "sim", c.Sim, "simulation to run")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.IntVar(&c.Rate, "rate", c.Rate, "generations per second")
	fs.Uint64Var(&c.Seed, "seed", c.Seed, "seed for simulation reset")
	fs.IntVar(&c.Size, "size", c.Size, "grid side length in cells")
	fs.IntVar(&c.Layers, "layers", c.Layers, "number of layers")
	fs.Float64Var(&c.Density, "density", c.Density, "initial alive probability")
	fs.IntVar(&c.Divisor, "divisor", c.Divisor, "dependent density divisor")
	fs.IntVar(&c.HUDWidth, "hud", c.HUDWidth, "side panel width in pixels (0 hides it)")
}

// SimParams converts the viewer flags into the sim factory's key/value form.
// Frame emission is always off in the viewer.
func (c *Config) SimParams() map[string]string {
	return map[string]string{
		"size":    strconv.Itoa(c.Size),
		"layers":  strconv.Itoa(c.Layers),
		"density": strconv.FormatFloat(c.Density, 'g', -1, 64),
		"divisor": strconv.Itoa(c.Divisor),
		"seed":    strconv.FormatUint(c.Seed, 10),
		"frames":  "false",
	}
}
