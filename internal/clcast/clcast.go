// Package clcast computes per-column ray samples on an OpenCL device. The
// CPU workers still paint the frame; only the marching runs on the device.
// Builds without the opencl tag get a stub whose constructor always fails.
package clcast

import (
	"errors"
	"fmt"

	"GridCaster/internal/camera"
	"GridCaster/internal/raycast"
)

// ErrUnavailable is returned by New when the binary was built without
// OpenCL support.
var ErrUnavailable = errors.New("OpenCL support is not enabled; rebuild with -tags opencl")

// Render casts every column on the device and paints the result through
// the scheduler. samples is reused between frames when it has the right
// length.
func Render(c *Caster, s *raycast.Scheduler, f *raycast.Frame, pose camera.Pose, samples []raycast.Sample) ([]raycast.Sample, error) {
	if len(samples) != f.Width {
		samples = make([]raycast.Sample, f.Width)
	}
	if err := c.Cast(pose, samples); err != nil {
		return samples, fmt.Errorf("opencl cast: %w", err)
	}
	s.PaintFrame(f, samples)
	return samples, nil
}
