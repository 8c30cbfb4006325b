package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ml-gol/pkg/rgb"
)

func newColorsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "colors",
		Short: "Print the colour assigned to each layer",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("layers") {
				cfg.Simulation.NumLayers, _ = cmd.Flags().GetInt("layers")
			}
			n := cfg.Simulation.NumLayers
			if n <= 0 {
				return fmt.Errorf("layer count must be positive, got %d", n)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Colors for the layers:")
			for i := range n {
				fmt.Fprintf(out, "Layer %d: %s\n", i, rgb.Hex(rgb.LayerColor(i, n)))
			}
			return nil
		},
	}
	cmd.Flags().Int("layers", 0, "Number of layers (default from config)")
	return cmd
}
