// Package minimap draws a top-down view of the map with the camera and the
// edges of its field of view.
package minimap

import (
	"fmt"
	"image"
	"math"

	"github.com/gogpu/gg"

	"GridCaster/internal/camera"
	"GridCaster/internal/grid"
	"GridCaster/internal/raycast"
)

var (
	backgroundColor = gg.RGB(0.06, 0.06, 0.09)
	wallColor       = gg.RGB(0.62, 0.62, 0.66)
	cameraColor     = gg.RGB(0.95, 0.25, 0.2)
	rayColor        = gg.RGB(0.95, 0.85, 0.3)
)

// Minimap renders one map at a fixed cell size.
type Minimap struct {
	grid   *grid.Map
	cellPx float64
	fov    float64
	step   float64
	dc     *gg.Context
}

// New returns a minimap drawing each cell as cellPx pixels square. fov is
// the half-angle used for the two edge rays.
func New(m *grid.Map, cellPx int, fov float64) *Minimap {
	if cellPx < 1 {
		cellPx = 1
	}
	return &Minimap{grid: m, cellPx: float64(cellPx), fov: fov, step: raycast.DefaultStep}
}

// Size returns the minimap's pixel dimensions.
func (mm *Minimap) Size() (int, int) {
	return int(float64(mm.grid.Width()) * mm.cellPx), int(float64(mm.grid.Height()) * mm.cellPx)
}

// Draw paints the minimap onto dc with its top-left corner at (ox, oy).
func (mm *Minimap) Draw(dc *gg.Context, pose camera.Pose, ox, oy float64) error {
	w, h := mm.Size()
	s := mm.cellPx

	dc.SetColor(backgroundColor.Color())
	dc.DrawRectangle(ox, oy, float64(w), float64(h))
	if err := dc.Fill(); err != nil {
		return fmt.Errorf("minimap background: %w", err)
	}

	dc.SetColor(wallColor.Color())
	for y := 0; y < mm.grid.Height(); y++ {
		for x := 0; x < mm.grid.Width(); x++ {
			if mm.grid.Occupied(x, y) {
				dc.DrawRectangle(ox+float64(x)*s, oy+float64(y)*s, s, s)
			}
		}
	}
	if err := dc.Fill(); err != nil {
		return fmt.Errorf("minimap walls: %w", err)
	}

	cx, cy := ox+pose.Position.X*s, oy+pose.Position.Y*s
	dc.SetColor(rayColor.Color())
	dc.SetLineWidth(math.Max(1, s/6))
	for _, angle := range []float64{pose.Heading - mm.fov, pose.Heading + mm.fov} {
		hit := raycast.March(mm.grid, pose.Position, angle, mm.step)
		dc.DrawLine(cx, cy, cx+math.Cos(angle)*hit.Distance*s, cy+math.Sin(angle)*hit.Distance*s)
	}
	if err := dc.Stroke(); err != nil {
		return fmt.Errorf("minimap rays: %w", err)
	}

	dc.SetColor(cameraColor.Color())
	dc.DrawCircle(cx, cy, math.Max(1.5, s*0.3))
	if err := dc.Fill(); err != nil {
		return fmt.Errorf("minimap camera: %w", err)
	}
	return nil
}

// Render draws the minimap into its own buffer and returns a copy of it.
func (mm *Minimap) Render(pose camera.Pose) (*image.RGBA, error) {
	w, h := mm.Size()
	if mm.dc == nil {
		mm.dc = gg.NewContext(w, h)
	}
	mm.dc.ClearWithColor(backgroundColor)
	if err := mm.Draw(mm.dc, pose, 0, 0); err != nil {
		return nil, err
	}
	img, ok := mm.dc.Image().(*image.RGBA)
	if !ok {
		return nil, fmt.Errorf("minimap: unexpected image type %T", mm.dc.Image())
	}
	return img, nil
}
