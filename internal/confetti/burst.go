// Package confetti simulates a multi-shot particle burst on a terminal grid.
//
// The physics follow the usual canvas confetti model: each particle leaves the
// origin at an angle inside the shot's spread, moves by its velocity plus a
// constant gravity every tick, and its velocity decays geometrically. The
// simulation runs in a notional pixel space and is projected onto cells.
package confetti

import "math"

// BaseParticles is the particle count of a shot with Ratio 1.
const BaseParticles = 200

// Defaults applied when a Shot leaves a field zero.
const (
	DefaultSpread        = 45
	DefaultStartVelocity = 45
	DefaultDecay         = 0.9
	DefaultScalar        = 1
	DefaultTicks         = 200
	gravity              = 3
)

// Origin of every shot, as a fraction of the field size.
const (
	OriginX = 0.5
	OriginY = 0.7
)

// Shot is one parameterized burst.
type Shot struct {
	Ratio         float64 // share of BaseParticles
	Spread        float64 // degrees
	StartVelocity float64
	Decay         float64
	Scalar        float64
}

// Count is the number of particles the shot emits.
func (s Shot) Count() int {
	return int(math.Floor(BaseParticles * s.Ratio))
}

// withDefaults fills zero fields.
func (s Shot) withDefaults() Shot {
	if s.Spread == 0 {
		s.Spread = DefaultSpread
	}
	if s.StartVelocity == 0 {
		s.StartVelocity = DefaultStartVelocity
	}
	if s.Decay == 0 {
		s.Decay = DefaultDecay
	}
	if s.Scalar == 0 {
		s.Scalar = DefaultScalar
	}
	return s
}

// DefaultBurst is the five-shot sequence fired on every finish.
func DefaultBurst() []Shot {
	return []Shot{
		{Ratio: 0.25, Spread: 26, StartVelocity: 55},
		{Ratio: 0.2, Spread: 60},
		{Ratio: 0.35, Spread: 100, Decay: 0.91, Scalar: 0.8},
		{Ratio: 0.1, Spread: 120, StartVelocity: 25, Decay: 0.92, Scalar: 1.2},
		{Ratio: 0.1, Spread: 120, StartVelocity: 45},
	}
}

// Burst fires every shot into f at once. Nothing waits for the animation.
func Burst(f *Field, shots []Shot) {
	for _, s := range shots {
		f.Fire(s)
	}
}
