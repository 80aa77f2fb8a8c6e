//go:build !opencl

package clcast

import (
	"errors"
	"testing"

	"seehuhn.de/go/geom/vec"

	"GridCaster/internal/camera"
	"GridCaster/internal/grid"
	"GridCaster/internal/raycast"
)

func TestNewWithoutOpenCL(t *testing.T) {
	m, _ := grid.Bordered(4, 4)
	c, err := New(m, raycast.Options{Width: 8, Height: 8, FOV: 0.5})
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("Expected ErrUnavailable, got %v", err)
	}
	if c != nil {
		t.Errorf("Expected no caster, got %+v", c)
	}
}

func TestRenderReportsCastFailure(t *testing.T) {
	m, _ := grid.Bordered(6, 6)
	k, err := raycast.NewKernel(m, raycast.Options{Width: 12, Height: 8, FOV: 0.5}, nil)
	if err != nil {
		t.Fatal(err)
	}
	s := raycast.NewScheduler(k, 2)
	defer s.Close()
	f := k.NewFrame()
	pose := camera.Pose{Position: vec.Vec2{X: 3, Y: 3}}

	samples, err := Render(&Caster{}, s, f, pose, nil)
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("Expected ErrUnavailable, got %v", err)
	}
	if len(samples) != f.Width {
		t.Errorf("Expected samples resized to %d, got %d", f.Width, len(samples))
	}
}
