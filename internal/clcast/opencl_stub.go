//go:build !opencl

package clcast

import (
	"GridCaster/internal/camera"
	"GridCaster/internal/grid"
	"GridCaster/internal/raycast"
)

type Caster struct{}

func New(m *grid.Map, opts raycast.Options) (*Caster, error) {
	return nil, ErrUnavailable
}

func (c *Caster) Cast(pose camera.Pose, out []raycast.Sample) error {
	return ErrUnavailable
}

func (c *Caster) Close() {}

func (c *Caster) DeviceName() string { return "" }
