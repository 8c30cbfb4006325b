package main

import (
	"context"
	"fmt"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ml-gol/internal/config"
	"ml-gol/internal/frames"
	"ml-gol/internal/logger"
	"ml-gol/internal/sims/mlgol"
	"ml-gol/internal/stats"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the simulation and write frames",
		Long: `Run steps every layer for the configured number of generations.

Each step writes <out>/combined/combinedNNNN.<format> and
<out>/dependent/dependentNNNN.<format> unless --frames=false.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cfg, cleanup, err := prepareRun(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			_, err = runSimulation(ctx, cfg)
			return err
		},
	}
	addRunFlags(cmd)
	return cmd
}

// prepareRun resolves the configuration of a run-like command and returns a
// signal-aware context carrying the logger.
func prepareRun(cmd *cobra.Command) (context.Context, *config.Config, func(), error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, nil, err
	}
	applyRunFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, nil, nil, err
	}

	log, err := newLogger(cfg)
	if err != nil {
		return nil, nil, nil, err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), shutdownSignals...)
	cleanup := func() {
		stop()
		log.Sync() //nolint:errcheck
	}
	return logger.NewContext(ctx, log), cfg, cleanup, nil
}

func addRunFlags(cmd *cobra.Command) {
	def := config.Default()
	flags := cmd.Flags()
	flags.Int("size", def.Simulation.GridSize, "Grid side length in cells")
	flags.Int("layers", def.Simulation.NumLayers, "Number of independent layers")
	flags.Int("steps", def.Simulation.NumSteps, "Generations to run")
	flags.Float64("density", def.Simulation.Density, "Initial alive probability per cell")
	flags.Uint64("seed", def.Simulation.Seed, "Master seed")
	flags.Int("divisor", def.Simulation.DensityDivisor, "Per-layer weight of the dependent density normalisation (>= 8)")
	flags.Int("workers", def.Simulation.Workers, "Goroutines per phase (1 = sequential)")
	flags.Bool("frames", def.Output.EmitFrames, "Write frames to disk")
	flags.String("out", def.Output.Dir, "Output directory")
	flags.String("format", def.Output.Format, "Frame format (png, bmp, tiff)")
	flags.String("stats-db", "", "Record per-layer populations into this sqlite file")
}

// applyRunFlags overrides file and environment values with flags the user set
// explicitly.
func applyRunFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("size") {
		cfg.Simulation.GridSize, _ = flags.GetInt("size")
	}
	if flags.Changed("layers") {
		cfg.Simulation.NumLayers, _ = flags.GetInt("layers")
	}
	if flags.Changed("steps") {
		cfg.Simulation.NumSteps, _ = flags.GetInt("steps")
	}
	if flags.Changed("density") {
		cfg.Simulation.Density, _ = flags.GetFloat64("density")
	}
	if flags.Changed("seed") {
		cfg.Simulation.Seed, _ = flags.GetUint64("seed")
	}
	if flags.Changed("divisor") {
		cfg.Simulation.DensityDivisor, _ = flags.GetInt("divisor")
	}
	if flags.Changed("workers") {
		cfg.Simulation.Workers, _ = flags.GetInt("workers")
	}
	if flags.Changed("frames") {
		cfg.Output.EmitFrames, _ = flags.GetBool("frames")
	}
	if flags.Changed("out") {
		cfg.Output.Dir, _ = flags.GetString("out")
	}
	if flags.Changed("format") {
		cfg.Output.Format, _ = flags.GetString("format")
	}
	if flags.Changed("stats-db") {
		cfg.Stats.DB, _ = flags.GetString("stats-db")
	}
}

// runSimulation runs one full simulation and returns its wall-clock time.
func runSimulation(ctx context.Context, cfg *config.Config) (time.Duration, error) {
	log := logger.L(ctx)
	engCfg := cfg.Engine()
	opts := []mlgol.Option{mlgol.WithLogger(log)}

	if cfg.Output.EmitFrames {
		sink, err := frames.NewDirSink(cfg.Output.Dir, cfg.Output.Format, log)
		if err != nil {
			return 0, err
		}
		opts = append(opts, mlgol.WithSink(sink))
	}

	if cfg.Stats.DB != "" {
		rec, err := stats.Open(cfg.Stats.DB)
		if err != nil {
			return 0, err
		}
		defer rec.Close()
		runID, err := rec.BeginRun(engCfg)
		if err != nil {
			return 0, err
		}
		log.Info("recording populations", zap.String("db", cfg.Stats.DB), zap.String("run", runID))
		opts = append(opts, mlgol.WithObserver(rec))
	}

	engine, err := mlgol.NewEngine(engCfg, opts...)
	if err != nil {
		return 0, err
	}

	start := time.Now()
	if err := engine.Run(ctx); err != nil {
		return 0, fmt.Errorf("run: %w", err)
	}
	elapsed := time.Since(start)
	log.Info("simulation complete",
		zap.Int("steps", engine.Generation()),
		zap.Duration("elapsed", elapsed))
	return elapsed, nil
}
