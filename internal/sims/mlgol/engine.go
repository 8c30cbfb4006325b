// Package mlgol runs several independent Game of Life layers in lockstep and
// composites them into a hue-coded colour image and a grayscale
// neighbourhood-density image every generation.
package mlgol

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"ml-gol/internal/core"
	"ml-gol/pkg/rgb"
)

// FrameSink consumes the derived grids of one step. The grids are reset once
// EmitFrame returns, so implementations must not retain them.
type FrameSink interface {
	EmitFrame(step int, combined, dependent *core.ColorGrid) error
}

// FrameSinkFunc adapts a function to FrameSink.
type FrameSinkFunc func(step int, combined, dependent *core.ColorGrid) error

// EmitFrame calls f.
func (f FrameSinkFunc) EmitFrame(step int, combined, dependent *core.ColorGrid) error {
	return f(step, combined, dependent)
}

// StepObserver is notified after each generation has been composited.
type StepObserver interface {
	ObserveStep(step int, layers *LayerSet) error
}

// Option customises an Engine.
type Option func(*Engine)

// WithSink sets the frame sink used when Config.EmitFrames is set.
func WithSink(s FrameSink) Option {
	return func(e *Engine) { e.sink = s }
}

// WithObserver appends a step observer.
func WithObserver(o StepObserver) Option {
	return func(e *Engine) { e.observers = append(e.observers, o) }
}

// WithLogger sets the engine logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// Engine drives a multilayer run.
type Engine struct {
	cfg        Config
	layers     *LayerSet
	compositor *Compositor
	combined   *core.ColorGrid
	dependent  *core.ColorGrid

	sink      FrameSink
	observers []StepObserver
	log       *zap.Logger

	step int
}

// NewEngine validates cfg and allocates every layer and derived grid.
func NewEngine(cfg Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}

	layers, err := NewLayerSet(cfg.GridSize, cfg.NumLayers, cfg.Density, cfg.Seed)
	if err != nil {
		return nil, fmt.Errorf("build layers: %w", err)
	}

	e := &Engine{
		cfg:        cfg,
		layers:     layers,
		compositor: NewCompositor(cfg.DensityDivisor, cfg.Workers),
		combined:   core.NewColorGrid(cfg.GridSize, cfg.GridSize),
		dependent:  core.NewColorGrid(cfg.GridSize, cfg.GridSize),
		log:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}

	e.log.Info("initialized multilayer game of life",
		zap.Int("layers", cfg.NumLayers),
		zap.Int("gridSize", cfg.GridSize),
		zap.Float64("density", cfg.Density),
		zap.Uint64("seed", cfg.Seed),
		zap.Int("workers", cfg.Workers))
	for i, c := range layers.Colors() {
		e.log.Info("layer color", zap.Int("layer", i), zap.String("hex", rgb.Hex(c)))
	}
	return e, nil
}

// Config returns the validated configuration.
func (e *Engine) Config() Config { return e.cfg }

// Layers exposes the layer set for read-only inspection.
func (e *Engine) Layers() *LayerSet { return e.layers }

// Combined returns the colour grid of the last composited step.
func (e *Engine) Combined() *core.ColorGrid { return e.combined }

// Dependent returns the density grid of the last composited step.
func (e *Engine) Dependent() *core.ColorGrid { return e.dependent }

// Generation returns the number of generations advanced so far.
func (e *Engine) Generation() int { return e.step }

// Advance steps every layer once, waits for all of them, then composites the
// new generation into the derived grids. The derived grids must be black on
// entry.
func (e *Engine) Advance(ctx context.Context) error {
	if err := e.stepLayers(ctx); err != nil {
		return err
	}

	e.compositor.Combine(e.layers, e.combined)
	e.compositor.DeriveDependent(e.layers, e.dependent)

	step := e.step
	e.step++
	for _, o := range e.observers {
		if err := o.ObserveStep(step, e.layers); err != nil {
			return fmt.Errorf("step %d: observe: %w", step, err)
		}
	}
	return nil
}

func (e *Engine) stepLayers(ctx context.Context) error {
	if e.cfg.Workers <= 1 {
		for i := range e.layers.Len() {
			if err := ctx.Err(); err != nil {
				return err
			}
			e.layers.Advance(i)
		}
		return nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.Workers)
	for i := range e.layers.Len() {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			e.layers.Advance(i)
			return nil
		})
	}
	return g.Wait()
}

// Run executes Config.NumSteps generations, handing each step's grids to the
// sink when frame emission is enabled and clearing them afterwards.
func (e *Engine) Run(ctx context.Context) error {
	for s := 0; s < e.cfg.NumSteps; s++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		step := e.step
		if err := e.Advance(ctx); err != nil {
			return err
		}
		if e.cfg.EmitFrames && e.sink != nil {
			if err := e.sink.EmitFrame(step, e.combined, e.dependent); err != nil {
				return fmt.Errorf("step %d: emit frame: %w", step, err)
			}
		}
		e.log.Debug("step complete", zap.Int("step", step))
		e.compositor.Reset(e.combined, e.dependent)
	}
	return nil
}

// Run builds an engine for cfg and runs it to completion.
func Run(ctx context.Context, cfg Config, sink FrameSink, opts ...Option) error {
	e, err := NewEngine(cfg, append([]Option{WithSink(sink)}, opts...)...)
	if err != nil {
		return err
	}
	return e.Run(ctx)
}

// Name identifies the simulation in the sim registry.
func (e *Engine) Name() string { return "mlgol" }

// Size reports the logical grid dimensions.
func (e *Engine) Size() core.Size {
	return core.Size{W: e.cfg.GridSize, H: e.cfg.GridSize}
}

// Reset reseeds every layer and clears the derived grids.
func (e *Engine) Reset(seed uint64) error {
	e.cfg.Seed = seed
	e.layers.Reseed(seed, e.cfg.Density)
	e.compositor.Reset(e.combined, e.dependent)
	e.step = 0
	return nil
}

// Step clears the previous frame and advances one generation, leaving the
// new frame in Combined and Dependent for display.
func (e *Engine) Step() error {
	e.compositor.Reset(e.combined, e.dependent)
	return e.Advance(context.Background())
}

func init() {
	core.Register("mlgol", func(cfg map[string]string) (core.Sim, error) {
		e, err := NewEngine(FromMap(cfg))
		if err != nil {
			return nil, err
		}
		return e, nil
	})
}
