//go:build !ebiten

package app

import (
	"errors"

	"go.uber.org/zap"

	"ml-gol/internal/core"
)

var errNoGUI = errors.New("the viewer requires building with the 'ebiten' tag")

// Game is a placeholder that satisfies the API expected by the GUI build.
type Game struct{}

// New reports that the ebiten build tag is required for GUI support.
func New(core.Sim, *Config, *zap.Logger) (*Game, error) {
	return nil, errNoGUI
}

// Reset is a no-op placeholder.
func (g *Game) Reset(uint64) error { return errNoGUI }

// Update always reports that the GUI build tag is missing.
func (g *Game) Update() error { return errNoGUI }

// Draw is a no-op placeholder to satisfy the interface shape.
func (g *Game) Draw(any) {}

// Layout returns zeros in the headless build.
func (g *Game) Layout(int, int) (int, int) { return 0, 0 }
