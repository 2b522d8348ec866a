// Scale state machine over a discrete tick grid
package core

import "fmt"

// The scale factor lives on a discrete grid: one tick is 0.05x, so the valid
// range [MinTick, MaxTick] spans 0.05x..3.00x and DefaultTick is 1.00x.
// Tracking integer ticks instead of accumulating floats keeps the bounds
// exact and the factor reproducible across any number of steps.
const (
	MinTick     = 1
	MaxTick     = 60
	DefaultTick = 20

	// ticks per 1.00x of scale
	ticksPerUnit = 20
)

// TickFactor returns the scale factor for a tick count.
func TickFactor(tick int) float64 {
	return float64(tick) * 0.05
}

// scaleDim maps a source dimension to the target dimension for a tick,
// rounding half up with exact integer arithmetic and clamping to a minimum
// of one pixel so tiny sources never round to zero.
func scaleDim(dim, tick int) int {
	scaled := (dim*tick + ticksPerUnit/2) / ticksPerUnit
	if scaled < 1 {
		return 1
	}
	return scaled
}

// ScaleState is the engine's state machine: NoImage until the first load,
// then Loaded with a tick in [MinTick, MaxTick]. Steps outside the bounds
// clamp, never wrap.
type ScaleState struct {
	tick   int
	loaded bool
}

// Load transitions to Loaded at the natural 1.00x starting point. Valid from
// any state; a reload resets the tick.
func (s *ScaleState) Load() {
	s.tick = DefaultTick
	s.loaded = true
}

// Increase steps the scale up one tick, clamped at MaxTick.
func (s *ScaleState) Increase() (int, error) {
	if !s.loaded {
		return 0, fmt.Errorf("increase: %w", ErrNoImageLoaded)
	}
	if s.tick < MaxTick {
		s.tick++
	}
	return s.tick, nil
}

// Decrease steps the scale down one tick, clamped at MinTick.
func (s *ScaleState) Decrease() (int, error) {
	if !s.loaded {
		return 0, fmt.Errorf("decrease: %w", ErrNoImageLoaded)
	}
	if s.tick > MinTick {
		s.tick--
	}
	return s.tick, nil
}

// Reset returns the scale to 1.00x.
func (s *ScaleState) Reset() (int, error) {
	if !s.loaded {
		return 0, fmt.Errorf("reset: %w", ErrNoImageLoaded)
	}
	s.tick = DefaultTick
	return s.tick, nil
}

func (s *ScaleState) Loaded() bool { return s.loaded }

func (s *ScaleState) Tick() int { return s.tick }

func (s *ScaleState) Factor() float64 { return TickFactor(s.tick) }

// AtMin reports whether Decrease would be a no-op. Drives the disabled state
// of the decrease control.
func (s *ScaleState) AtMin() bool { return s.loaded && s.tick == MinTick }

// AtMax reports whether Increase would be a no-op.
func (s *ScaleState) AtMax() bool { return s.loaded && s.tick == MaxTick }
