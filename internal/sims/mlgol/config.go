package mlgol

import (
	"errors"
	"fmt"
	"runtime"
	"strconv"
)

// DefaultDensityDivisor is the per-layer neighbourhood weight used to
// normalise the dependent field: gray = count / (divisor*layers) * 255.
const DefaultDensityDivisor = 9

// MinDensityDivisor is the smallest divisor that keeps the dependent field
// within [0,255]: a cell has at most 8 alive neighbours per layer.
const MinDensityDivisor = 8

// ErrInvalidConfig is wrapped by every configuration validation error.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config controls a multilayer run.
type Config struct {
	GridSize  int
	NumLayers int
	NumSteps  int
	Density   float64
	Seed      uint64

	// EmitFrames hands each step's grids to the frame sink when set.
	EmitFrames bool

	DensityDivisor int

	// Workers bounds the goroutines used per phase; 1 runs sequentially.
	Workers int
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		GridSize:       128,
		NumLayers:      3,
		NumSteps:       64,
		Density:        0.3,
		Seed:           42,
		EmitFrames:     true,
		DensityDivisor: DefaultDensityDivisor,
		Workers:        runtime.NumCPU(),
	}
}

// Validate rejects configurations the engine refuses to run with.
func (c Config) Validate() error {
	switch {
	case c.GridSize <= 0:
		return fmt.Errorf("%w: grid size must be positive, got %d", ErrInvalidConfig, c.GridSize)
	case c.NumLayers <= 0:
		return fmt.Errorf("%w: layer count must be positive, got %d", ErrInvalidConfig, c.NumLayers)
	case c.NumSteps <= 0:
		return fmt.Errorf("%w: step count must be positive, got %d", ErrInvalidConfig, c.NumSteps)
	case !(c.Density >= 0 && c.Density <= 1):
		return fmt.Errorf("%w: density must be between 0 and 1, got %g", ErrInvalidConfig, c.Density)
	case c.DensityDivisor < MinDensityDivisor:
		return fmt.Errorf("%w: density divisor must be at least %d, got %d", ErrInvalidConfig, MinDensityDivisor, c.DensityDivisor)
	}
	return nil
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["size"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.GridSize = parsed
		}
	}
	if v, ok := cfg["layers"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.NumLayers = parsed
		}
	}
	if v, ok := cfg["steps"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.NumSteps = parsed
		}
	}
	if v, ok := cfg["density"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed <= 1 {
			c.Density = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseUint(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["frames"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.EmitFrames = parsed
		}
	}
	if v, ok := cfg["divisor"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= MinDensityDivisor {
			c.DensityDivisor = parsed
		}
	}
	if v, ok := cfg["workers"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Workers = parsed
		}
	}
	return c
}
