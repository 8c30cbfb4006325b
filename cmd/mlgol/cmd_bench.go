package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ml-gol/internal/logger"
)

func newBenchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Time repeated runs and report the mean",
		Long: `Bench runs the simulation --repeat times with the same configuration
and prints each run's wall-clock time followed by the mean. Frames are
off unless --frames is set explicitly.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			repeat, _ := cmd.Flags().GetInt("repeat")
			if repeat < 1 {
				return fmt.Errorf("repeat must be positive, got %d", repeat)
			}

			ctx, cfg, cleanup, err := prepareRun(cmd)
			if err != nil {
				return err
			}
			defer cleanup()
			if !cmd.Flags().Changed("frames") {
				cfg.Output.EmitFrames = false
			}

			out := cmd.OutOrStdout()
			times := make([]time.Duration, 0, repeat)
			for i := range repeat {
				elapsed, err := runSimulation(ctx, cfg)
				if err != nil {
					return fmt.Errorf("repetition %d: %w", i, err)
				}
				times = append(times, elapsed)
				fmt.Fprintf(out, "Run %d: %.3f seconds\n", i, elapsed.Seconds())
			}
			avg := meanDuration(times)
			fmt.Fprintf(out, "Mean execution time: %.3f seconds\n", avg.Seconds())
			logger.L(ctx).Info("benchmark complete", zap.Int("repeat", repeat), zap.Duration("mean", avg))
			return nil
		},
	}
	addRunFlags(cmd)
	cmd.Flags().Int("repeat", 10, "Number of timed runs")
	return cmd
}

func meanDuration(ds []time.Duration) time.Duration {
	if len(ds) == 0 {
		return 0
	}
	var total time.Duration
	for _, d := range ds {
		total += d
	}
	return total / time.Duration(len(ds))
}
