package minimap

import (
	"testing"

	"seehuhn.de/go/geom/vec"

	"GridCaster/internal/camera"
	"GridCaster/internal/grid"
)

func TestRenderSize(t *testing.T) {
	m, _ := grid.Bordered(6, 4)
	mm := New(m, 5, 0.5)
	w, h := mm.Size()
	if w != 30 || h != 20 {
		t.Fatalf("Expected 30x20, got %dx%d", w, h)
	}
	img, err := mm.Render(camera.Pose{Position: vec.Vec2{X: 2, Y: 2}})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 30 || b.Dy() != 20 {
		t.Errorf("Expected a 30x20 image, got %v", b)
	}
}

func TestRenderMarksWallsAndCamera(t *testing.T) {
	m, _ := grid.Bordered(5, 5)
	mm := New(m, 8, 0.5)
	pose := camera.Pose{Position: vec.Vec2{X: 1.5, Y: 1.5}}
	img, err := mm.Render(pose)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	wall := img.RGBAAt(4, 4)    // centre of border cell (0, 0)
	floor := img.RGBAAt(20, 28) // centre of interior cell (2, 3), away from the rays
	cam := img.RGBAAt(12, 12)   // camera position
	if int(wall.R) < int(floor.R)+60 {
		t.Errorf("Expected wall pixel %v to be brighter than floor pixel %v", wall, floor)
	}
	if int(cam.R) < int(cam.G)+60 {
		t.Errorf("Expected a red camera marker, got %v", cam)
	}
}
