package core

import "time"

// FixedStep paces simulation generations at a steady rate independent of the
// display refresh rate.
type FixedStep struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time
}

// NewFixedStep returns a controller targeting rate generations per second.
// The first call to ShouldStep is always due.
func NewFixedStep(rate int) *FixedStep {
	fs := &FixedStep{}
	fs.SetRate(rate)
	fs.accumulator = fs.step
	return fs
}

// SetRate changes the generation rate. Non-positive rates fall back to 60.
func (f *FixedStep) SetRate(rate int) {
	if rate <= 0 {
		rate = 60
	}
	f.step = time.Second / time.Duration(rate)
}

// Rate reports the current generations per second.
func (f *FixedStep) Rate() int { return int(time.Second / f.step) }

// ShouldStep reports whether a generation is due now.
func (f *FixedStep) ShouldStep() bool { return f.Due(time.Now()) }

// Due reports whether a generation is due at now. At most one generation is
// released per call; a backlog drains over subsequent calls.
func (f *FixedStep) Due(now time.Time) bool {
	if f.last.IsZero() {
		f.last = now
	}
	f.accumulator += now.Sub(f.last)
	f.last = now
	if f.accumulator >= f.step {
		f.accumulator -= f.step
		return true
	}
	return false
}
