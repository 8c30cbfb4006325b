//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"ml-gol/internal/app"
	"ml-gol/internal/core"
	"ml-gol/internal/logger"
	_ "ml-gol/internal/sims/mlgol"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	level := flag.String("log-level", "info", "log level")
	flag.Parse()

	l, err := logger.New(*level, true)
	if err != nil {
		log.Fatal(err)
	}
	defer l.Sync() //nolint:errcheck

	factory, err := core.Lookup(cfg.Sim)
	if err != nil {
		l.Fatal("lookup sim", zap.Error(err))
	}
	sim, err := factory(cfg.SimParams())
	if err != nil {
		l.Fatal("build sim", zap.Error(err))
	}

	game, err := app.New(sim, cfg, l)
	if err != nil {
		l.Fatal("build viewer", zap.Error(err))
	}
	size := sim.Size()

	ebiten.SetWindowTitle("ml-gol - " + sim.Name())
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(size.W*cfg.Scale+cfg.HUDWidth, size.H*cfg.Scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		l.Fatal("viewer stopped", zap.Error(err))
	}
}
