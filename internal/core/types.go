package core

import (
	"fmt"
	"sort"
)

// Size describes the dimensions of a simulation grid.
type Size struct {
	W int
	H int
}

// Sim defines the minimal contract a simulation must implement to be driven
// interactively.
type Sim interface {
	Name() string
	Size() Size
	Reset(seed uint64) error
	Step() error
}

// FrameSource is implemented by sims that render into the combined and
// dependent colour grids.
type FrameSource interface {
	Combined() *ColorGrid
	Dependent() *ColorGrid
}

// Factory constructs a Sim using an optional configuration map.
type Factory func(cfg map[string]string) (Sim, error)

var sims = map[string]Factory{}

// Register adds a simulation factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	sims[name] = f
}

// Sims exposes the registry of available simulation factories.
func Sims() map[string]Factory {
	return sims
}

// Lookup returns the factory registered under name.
func Lookup(name string) (Factory, error) {
	f, ok := sims[name]
	if !ok {
		names := make([]string, 0, len(sims))
		for n := range sims {
			names = append(names, n)
		}
		sort.Strings(names)
		return nil, fmt.Errorf("unknown sim %q (available: %v)", name, names)
	}
	return f, nil
}
