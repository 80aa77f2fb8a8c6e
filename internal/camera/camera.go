// Package camera integrates the first-person camera from per-tick key state.
package camera

import (
	"math"

	"seehuhn.de/go/geom/vec"
)

// Input is the state of the steering keys sampled once per tick.
type Input struct {
	TurnLeft  bool
	TurnRight bool
	Forward   bool
	Backward  bool
	Quit      bool
}

// Idle reports whether no steering key is held.
func (in Input) Idle() bool {
	return !in.TurnLeft && !in.TurnRight && !in.Forward && !in.Backward
}

// Params are the motion constants.
type Params struct {
	Acceleration float64 // velocity added per tick while moving
	MaxVelocity  float64 // speed cap, in cells per tick
	TurnRate     float64 // radians per tick
	Damping      float64 // velocity multiplier applied every tick, in (0, 1)
}

// DefaultParams returns the stock handling.
func DefaultParams() Params {
	return Params{
		Acceleration: 0.005,
		MaxVelocity:  0.5,
		TurnRate:     0.01,
		Damping:      0.9,
	}
}

// State is the full motion state.
type State struct {
	Position vec.Vec2
	Velocity vec.Vec2
	Heading  float64
}

// Pose is the part of the state a renderer needs.
type Pose struct {
	Position vec.Vec2
	Heading  float64
}

// Pose drops the velocity.
func (s State) Pose() Pose {
	return Pose{Position: s.Position, Heading: s.Heading}
}

// Speed returns the velocity magnitude.
func (s State) Speed() float64 {
	return s.Velocity.Length()
}

// Step advances s by one tick. Turning applies first (left wins over right),
// then thrust along the new heading (forward wins over backward), then the
// speed cap, then integration, then damping.
func Step(s State, in Input, p Params) State {
	if in.TurnLeft {
		s.Heading -= p.TurnRate
	} else if in.TurnRight {
		s.Heading += p.TurnRate
	}

	thrust := vec.Vec2{X: p.Acceleration * math.Cos(s.Heading), Y: p.Acceleration * math.Sin(s.Heading)}
	if in.Forward {
		s.Velocity = s.Velocity.Add(thrust)
	} else if in.Backward {
		s.Velocity = s.Velocity.Sub(thrust)
	}

	if speed := s.Velocity.Length(); speed > p.MaxVelocity {
		s.Velocity = s.Velocity.Mul(p.MaxVelocity / speed)
	}

	s.Position = s.Position.Add(s.Velocity)
	s.Velocity = s.Velocity.Mul(p.Damping)
	return s
}

// Camera owns a State and is its only writer.
type Camera struct {
	state  State
	params Params
}

// New returns a camera at start.
func New(start State, p Params) *Camera {
	return &Camera{state: start, params: p}
}

// Update advances the camera by one tick.
func (c *Camera) Update(in Input) {
	c.state = Step(c.state, in, c.params)
}

// State returns a copy of the current state.
func (c *Camera) State() State { return c.state }

// Pose returns the current position and heading.
func (c *Camera) Pose() Pose { return c.state.Pose() }

// Params returns the motion constants.
func (c *Camera) Params() Params { return c.params }
