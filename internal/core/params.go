package core

import (
	"math"
	"strconv"

	"ml-gol/pkg/rgb"
)

// ParamType enumerates supported parameter value kinds.
type ParamType string

const (
	// ParamTypeInt denotes integer-valued parameters.
	ParamTypeInt ParamType = "int"
	// ParamTypeFloat denotes floating-point parameters.
	ParamTypeFloat ParamType = "float"
)

// Param describes a tunable value exposed by a simulation, together with the
// step and bounds the HUD uses to adjust it.
type Param struct {
	Key   string
	Label string
	Type  ParamType
	Value float64

	Step float64
	Min  float64
	Max  float64
}

// Format renders the value with a precision that matches the step size.
func (p Param) Format() string {
	if p.Type == ParamTypeInt {
		return strconv.Itoa(int(math.Round(p.Value)))
	}
	precision := 1
	switch {
	case p.Step < 0.001:
		precision = 4
	case p.Step < 0.01:
		precision = 3
	case p.Step < 0.1:
		precision = 2
	}
	return strconv.FormatFloat(p.Value, 'f', precision, 64)
}

// Adjust returns the value one step in direction (negative for down),
// clamped to the bounds. ok is false when the value would not change.
func (p Param) Adjust(direction int) (target float64, ok bool) {
	if direction == 0 {
		return p.Value, false
	}
	step := p.Step
	if step <= 0 {
		step = 1
		if p.Type == ParamTypeFloat {
			step = 0.05
		}
	}
	if direction < 0 {
		step = -step
	}
	target = p.Value + step
	if p.Type == ParamTypeInt {
		target = math.Round(target)
	}
	target = math.Max(p.Min, math.Min(p.Max, target))
	if math.Abs(target-p.Value) < 1e-9 {
		return p.Value, false
	}
	return target, true
}

// Tunable is implemented by sims whose parameters can be changed while
// running.
type Tunable interface {
	Params() []Param
	// SetParam reports whether the key was recognised and the value applied.
	SetParam(key string, value float64) bool
}

// LayerInfo summarises one layer for display.
type LayerInfo struct {
	Color rgb.Color
	Alive int
}

// LayerReporter is implemented by sims made of coloured layers.
type LayerReporter interface {
	LayerInfo() []LayerInfo
}
