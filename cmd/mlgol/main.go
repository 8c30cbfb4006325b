// Command mlgol runs the multilayer Game of Life headlessly and writes the
// combined and dependent frames of every step to disk.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ml-gol/internal/config"
	"ml-gol/internal/logger"
)

var version = "0.1.0-dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "mlgol",
		Short: "Multilayer Game of Life",
		Long: `mlgol steps several independent Game of Life layers on a shared
toroidal grid, blends them into a hue-coded colour image and derives a
grayscale neighbourhood-density image every generation.`,
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("dev", false, "Human-readable console logging")

	rootCmd.AddCommand(
		newRunCmd(),
		newBenchCmd(),
		newColorsCmd(),
		newVersionCmd(),
	)
	return rootCmd
}

// loadConfig resolves the file/env configuration and applies the global
// logging flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Logging.Level, _ = cmd.Flags().GetString("log-level")
	}
	if cmd.Flags().Changed("dev") {
		cfg.Logging.Development, _ = cmd.Flags().GetBool("dev")
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	return logger.New(cfg.Logging.Level, cfg.Logging.Development)
}
