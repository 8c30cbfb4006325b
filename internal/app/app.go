//go:build ebiten

package app

import (
	"fmt"
	"time"

	"ml-gol/internal/core"
	"ml-gol/internal/render"
	"ml-gol/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"
)

// Game adapts a layered simulation to the ebiten.Game interface.
type Game struct {
	sim     core.Sim
	frames  core.FrameSource
	overlay *ui.Overlay
	hud     *ui.HUD
	stepper *core.FixedStep
	log     *zap.Logger

	img    *ebiten.Image
	pixels []byte

	scale         int
	hudWidth      int
	paused        bool
	tickOnce      bool
	showDependent bool
	seed          uint64
}

// New constructs a Game for the provided simulation. The sim must render
// combined and dependent frames.
func New(sim core.Sim, cfg *Config, log *zap.Logger) (*Game, error) {
	frames, ok := sim.(core.FrameSource)
	if !ok {
		return nil, fmt.Errorf("sim %q does not produce frames", sim.Name())
	}
	if log == nil {
		log = zap.NewNop()
	}
	size := sim.Size()
	return &Game{
		sim:      sim,
		frames:   frames,
		overlay:  ui.NewOverlay(),
		hud:      ui.NewHUD(sim, cfg.HUDWidth),
		stepper:  core.NewFixedStep(cfg.Rate),
		log:      log,
		img:      ebiten.NewImage(size.W, size.H),
		pixels:   make([]byte, 4*size.W*size.H),
		scale:    cfg.Scale,
		hudWidth: cfg.HUDWidth,
		seed:     cfg.Seed,
	}, nil
}

// Reset reinitializes the simulation state with the provided seed.
func (g *Game) Reset(seed uint64) error {
	g.seed = seed
	g.tickOnce = false
	if err := g.sim.Reset(seed); err != nil {
		return err
	}
	g.log.Info("reset", zap.Uint64("seed", seed))
	return nil
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		g.showDependent = !g.showDependent
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) {
		g.stepper.SetRate(g.stepper.Rate() * 2)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) && g.stepper.Rate() > 1 {
		g.stepper.SetRate(g.stepper.Rate() / 2)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := g.Reset(g.seed); err != nil {
			return err
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		if err := g.Reset(uint64(time.Now().UnixNano())); err != nil {
			return err
		}
	}

	g.overlay.Update()
	g.hud.Update(g.sim.Size().W * g.scale)

	due := g.stepper.ShouldStep()
	if (!g.paused && due) || g.tickOnce {
		if err := g.sim.Step(); err != nil {
			return err
		}
		g.tickOnce = false
	}
	return nil
}

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	grid, view := g.frames.Combined(), "combined"
	if g.showDependent {
		grid, view = g.frames.Dependent(), "dependent"
	}
	render.FillRGBA(g.pixels, grid.Cells())
	g.img.WritePixels(g.pixels)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(g.scale), float64(g.scale))
	screen.DrawImage(g.img, op)

	g.overlay.Draw(screen, ui.Status{
		View:   view,
		Paused: g.paused,
		Rate:   g.stepper.Rate(),
		Seed:   g.seed,
	})
	g.hud.Draw(screen, g.sim.Size().W*g.scale, g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.sim.Size()
	return s.W*g.scale + g.hudWidth, s.H * g.scale
}
