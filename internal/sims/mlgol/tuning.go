package mlgol

import (
	"math"

	"go.uber.org/zap"

	"ml-gol/internal/core"
)

const maxDensityDivisor = 64

// Params lists the settings the viewer may change while the engine runs.
func (e *Engine) Params() []core.Param {
	return []core.Param{
		{Key: "density", Label: "Seed density", Type: core.ParamTypeFloat, Value: e.cfg.Density, Step: 0.05, Min: 0, Max: 1},
		{Key: "divisor", Label: "Density divisor", Type: core.ParamTypeInt, Value: float64(e.cfg.DensityDivisor), Step: 1, Min: MinDensityDivisor, Max: maxDensityDivisor},
		{Key: "workers", Label: "Workers", Type: core.ParamTypeInt, Value: float64(e.cfg.Workers), Step: 1, Min: 1, Max: 256},
	}
}

// SetParam applies a tunable. Density only affects the next Reset; divisor
// and workers apply from the next generation.
func (e *Engine) SetParam(key string, value float64) bool {
	switch key {
	case "density":
		if value < 0 || value > 1 || math.IsNaN(value) {
			return false
		}
		e.cfg.Density = value
	case "divisor":
		d := int(math.Round(value))
		if d < MinDensityDivisor || d > maxDensityDivisor {
			return false
		}
		e.cfg.DensityDivisor = d
		e.compositor.divisor = d
	case "workers":
		w := int(math.Round(value))
		if w < 1 {
			return false
		}
		e.cfg.Workers = w
		e.compositor.workers = w
	default:
		return false
	}
	e.log.Debug("parameter changed", zap.String("key", key), zap.Float64("value", value))
	return true
}

// LayerInfo reports each layer's colour and current population.
func (e *Engine) LayerInfo() []core.LayerInfo {
	pops := e.layers.Populations()
	info := make([]core.LayerInfo, e.layers.Len())
	for i := range info {
		info[i] = core.LayerInfo{Color: e.layers.Color(i), Alive: pops[i]}
	}
	return info
}
