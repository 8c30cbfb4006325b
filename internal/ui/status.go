package ui

import (
	"fmt"
	"strings"
)

// Status is the viewer state shown in the overlay.
type Status struct {
	View   string
	Paused bool
	Rate   int
	Seed   uint64
}

// Line renders the status as a single overlay line.
func (s Status) Line() string {
	parts := []string{s.View}
	if s.Paused {
		parts = append(parts, "paused")
	} else {
		parts = append(parts, fmt.Sprintf("%d gen/s", s.Rate))
	}
	parts = append(parts, fmt.Sprintf("seed %d", s.Seed))
	return strings.Join(parts, " | ")
}

// KeyHelp lists the viewer key bindings.
const KeyHelp = "tab view  space pause  n step  r reset  s reseed  +/- speed  h hide  q quit"
