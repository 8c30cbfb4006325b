// Package config loads ml-gol run configuration from YAML files and
// environment variables.
package config

import (
	"fmt"
	"os"
	"slices"
	"strconv"

	"gopkg.in/yaml.v3"

	"ml-gol/internal/frames"
	"ml-gol/internal/logger"
	"ml-gol/internal/sims/mlgol"
)

// Config contains every setting of a headless run.
type Config struct {
	// Simulation holds the engine parameters.
	Simulation SimulationConfig `yaml:"simulation"`

	// Output controls where and how frames are written.
	Output OutputConfig `yaml:"output"`

	// Stats configures the optional population database.
	Stats StatsConfig `yaml:"stats"`

	// Logging configures the zap logger.
	Logging LoggingConfig `yaml:"logging"`
}

// SimulationConfig mirrors mlgol.Config.
type SimulationConfig struct {
	GridSize  int     `yaml:"grid_size"`
	NumLayers int     `yaml:"num_layers"`
	NumSteps  int     `yaml:"num_steps"`
	Density   float64 `yaml:"density"`
	Seed      uint64  `yaml:"seed"`

	// DensityDivisor is the per-layer neighbourhood weight of the dependent
	// field normalisation.
	DensityDivisor int `yaml:"density_divisor"`

	// Workers bounds parallelism; 1 runs single-threaded.
	Workers int `yaml:"workers"`
}

// OutputConfig controls frame emission.
type OutputConfig struct {
	EmitFrames bool   `yaml:"emit_frames"`
	Dir        string `yaml:"dir"`
	// Format is one of png, bmp, tiff.
	Format string `yaml:"format"`
}

// StatsConfig configures population recording. An empty DB disables it.
type StatsConfig struct {
	DB string `yaml:"db"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`
	// Development switches to the human-readable console encoder.
	Development bool `yaml:"development"`
}

// Default returns a Config with the standard run parameters.
func Default() *Config {
	sim := mlgol.DefaultConfig()
	return &Config{
		Simulation: SimulationConfig{
			GridSize:       sim.GridSize,
			NumLayers:      sim.NumLayers,
			NumSteps:       sim.NumSteps,
			Density:        sim.Density,
			Seed:           sim.Seed,
			DensityDivisor: sim.DensityDivisor,
			Workers:        sim.Workers,
		},
		Output: OutputConfig{
			EmitFrames: sim.EmitFrames,
			Dir:        "output",
			Format:     "png",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load returns defaults, overlaid with the YAML file at path (when path is
// not empty) and then with MLGOL_* environment variables.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		fileCfg, err := LoadFromFile(path)
		if err != nil {
			return nil, fmt.Errorf("loading config file: %w", err)
		}
		cfg = fileCfg
	}
	applyEnvOverrides(cfg)
	return cfg, nil
}

// LoadFromFile loads configuration from a specific YAML file. Keys missing
// from the file keep their default values.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}

// Validate checks that the configuration is runnable.
func (c *Config) Validate() error {
	if err := c.Engine().Validate(); err != nil {
		return err
	}
	if c.Output.EmitFrames {
		if c.Output.Dir == "" {
			return fmt.Errorf("output dir must be set when frames are emitted")
		}
		if !slices.Contains(frames.Formats(), c.Output.Format) {
			return fmt.Errorf("invalid frame format: %s (valid: %v)", c.Output.Format, frames.Formats())
		}
	}
	if _, err := logger.ParseLevel(c.Logging.Level); err != nil {
		return err
	}
	return nil
}

// Engine converts the file-level settings into an engine configuration.
func (c *Config) Engine() mlgol.Config {
	s := c.Simulation
	return mlgol.Config{
		GridSize:       s.GridSize,
		NumLayers:      s.NumLayers,
		NumSteps:       s.NumSteps,
		Density:        s.Density,
		Seed:           s.Seed,
		EmitFrames:     c.Output.EmitFrames,
		DensityDivisor: s.DensityDivisor,
		Workers:        s.Workers,
	}
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("MLGOL_GRID_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Simulation.GridSize = n
		}
	}
	if v := os.Getenv("MLGOL_NUM_LAYERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Simulation.NumLayers = n
		}
	}
	if v := os.Getenv("MLGOL_NUM_STEPS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Simulation.NumSteps = n
		}
	}
	if v := os.Getenv("MLGOL_DENSITY"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Simulation.Density = f
		}
	}
	if v := os.Getenv("MLGOL_SEED"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			cfg.Simulation.Seed = n
		}
	}
	if v := os.Getenv("MLGOL_DENSITY_DIVISOR"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Simulation.DensityDivisor = n
		}
	}
	if v := os.Getenv("MLGOL_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Simulation.Workers = n
		}
	}
	if v := os.Getenv("MLGOL_EMIT_FRAMES"); v != "" {
		cfg.Output.EmitFrames = v == "true" || v == "1"
	}
	if v := os.Getenv("MLGOL_OUTPUT_DIR"); v != "" {
		cfg.Output.Dir = v
	}
	if v := os.Getenv("MLGOL_FORMAT"); v != "" {
		cfg.Output.Format = v
	}
	if v := os.Getenv("MLGOL_STATS_DB"); v != "" {
		cfg.Stats.DB = v
	}
	if v := os.Getenv("MLGOL_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("MLGOL_LOG_DEV"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Logging.Development = b
		}
	}
}
