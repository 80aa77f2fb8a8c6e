package grid

import (
	"fmt"
	"math/rand"
)

// GenerateOptions controls procedural wall placement.
type GenerateOptions struct {
	Segments          int
	MinLen            int
	MaxLen            int
	ThicknessVariance int

	// ClearX, ClearY and ClearRadius describe a disc kept free of walls,
	// normally around the camera start.
	ClearX, ClearY float64
	ClearRadius    float64
}

// DefaultGenerateOptions returns settings that suit maps of a few dozen cells.
func DefaultGenerateOptions() GenerateOptions {
	return GenerateOptions{
		Segments:          12,
		MinLen:            3,
		MaxLen:            10,
		ThicknessVariance: 1,
		ClearX:            2,
		ClearY:            2,
		ClearRadius:       2,
	}
}

// Generate builds a bordered map with random horizontal and vertical wall
// segments.
func Generate(width, height int, opts GenerateOptions, rng *rand.Rand) (*Map, error) {
	if width < 3 || height < 3 {
		return nil, fmt.Errorf("%w: generated maps need at least 3x3, got %dx%d", ErrDimensions, width, height)
	}
	base, err := Bordered(width, height)
	if err != nil {
		return nil, err
	}
	cells := base.cells
	trySetWall := func(x, y int) {
		if x <= 0 || x >= width-1 || y <= 0 || y >= height-1 {
			return
		}
		dx := float64(x) + 0.5 - opts.ClearX
		dy := float64(y) + 0.5 - opts.ClearY
		if dx*dx+dy*dy < opts.ClearRadius*opts.ClearRadius {
			return
		}
		cells[y*width+x] = true
	}

	for s := 0; s < opts.Segments; s++ {
		lengthRange := opts.MaxLen - opts.MinLen + 1
		if lengthRange <= 0 {
			lengthRange = 1
		}
		length := opts.MinLen + rng.Intn(lengthRange)
		thickness := 0
		if opts.ThicknessVariance > 0 {
			thickness = rng.Intn(opts.ThicknessVariance + 1)
		}
		horizontal := rng.Intn(2) == 0
		x := rng.Intn(width-2) + 1
		y := rng.Intn(height-2) + 1
		dx, dy := 0, 1
		if horizontal {
			dx, dy = 1, 0
		}
		perpX, perpY := dy, dx
		cx, cy := x, y
		for l := 0; l < length; l++ {
			if cx <= 0 || cx >= width-1 || cy <= 0 || cy >= height-1 {
				break
			}
			for t := -thickness; t <= thickness; t++ {
				trySetWall(cx+perpX*t, cy+perpY*t)
			}
			cx += dx
			cy += dy
		}
	}
	return base, nil
}
