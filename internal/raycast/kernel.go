// Package raycast turns a camera pose and an occupancy map into a shaded
// column image, one ray per screen column, spread over a fixed worker pool.
package raycast

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"seehuhn.de/go/geom/vec"

	"GridCaster/internal/camera"
	"GridCaster/internal/grid"
	"GridCaster/internal/raycache"
)

// Default kernel settings.
const (
	DefaultStep    = 0.01
	DefaultFalloff = 0.1
)

// MinStep is the finest marching step NewKernel accepts.
const MinStep = 1e-4

var (
	black     = color.RGBA{A: 255}
	whiteWall = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// ErrOptions is returned by NewKernel for unusable settings.
var ErrOptions = errors.New("raycast: invalid kernel options")

// Sample is the outcome of one cast. Hit is false when the ray left the map
// before reaching an occupied cell; Distance is then the distance to the
// point where it left.
type Sample struct {
	Distance float64
	Hit      bool
}

// Cache memoizes samples by exact ray angle and origin.
type Cache = raycache.Cache[raycache.RayKey, Sample]

// NewCache returns a sample cache holding at most capacity entries.
func NewCache(capacity int) *Cache {
	return raycache.New[raycache.RayKey, Sample](capacity)
}

// Options configure a Kernel.
type Options struct {
	Width, Height int        // frame size in pixels
	FOV           float64    // radians; column offsets span [-FOV, +FOV]
	Step          float64    // marching step in cells
	Falloff       float64    // brightness = 1 / (1 + Falloff*distance)
	Wall          color.RGBA // colour of a wall at distance zero
}

// Kernel casts and paints single columns. It only reads shared state, so
// columns may be processed concurrently as long as each goroutine writes
// its own columns.
type Kernel struct {
	grid  *grid.Map
	opts  Options
	cache *Cache
}

// NewKernel validates opts, filling zero Step, Falloff and Wall with
// defaults, so a zero Falloff means DefaultFalloff. cache may be nil to
// disable memoization.
func NewKernel(m *grid.Map, opts Options, cache *Cache) (*Kernel, error) {
	if m == nil {
		return nil, fmt.Errorf("%w: nil map", ErrOptions)
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("%w: frame %dx%d", ErrOptions, opts.Width, opts.Height)
	}
	if !(opts.FOV > 0) || math.IsInf(opts.FOV, 0) {
		return nil, fmt.Errorf("%w: field of view %v", ErrOptions, opts.FOV)
	}
	if opts.Step == 0 {
		opts.Step = DefaultStep
	}
	if !(opts.Step >= MinStep) {
		return nil, fmt.Errorf("%w: march step %v below %v", ErrOptions, opts.Step, MinStep)
	}
	if opts.Falloff == 0 {
		opts.Falloff = DefaultFalloff
	}
	if opts.Falloff < 0 {
		return nil, fmt.Errorf("%w: falloff %v", ErrOptions, opts.Falloff)
	}
	if opts.Wall == (color.RGBA{}) {
		opts.Wall = whiteWall
	}
	return &Kernel{grid: m, opts: opts, cache: cache}, nil
}

// Options returns the effective settings.
func (k *Kernel) Options() Options { return k.opts }

// Map returns the map being cast against.
func (k *Kernel) Map() *grid.Map { return k.grid }

// Cache returns the sample cache, or nil.
func (k *Kernel) Cache() *Cache { return k.cache }

// NewFrame allocates a frame of the kernel's size.
func (k *Kernel) NewFrame() *Frame { return NewFrame(k.opts.Width, k.opts.Height) }

// RayAngle maps a screen column to a ray angle: column 0 is heading-FOV,
// the last column approaches heading+FOV.
func (k *Kernel) RayAngle(heading float64, column int) float64 {
	return heading + (2*float64(column)/float64(k.opts.Width)-1)*k.opts.FOV
}

// March walks from origin in fixed steps along angle until the point leaves
// the map or lands in an occupied cell.
func March(m *grid.Map, origin vec.Vec2, angle, step float64) Sample {
	dx, dy := step*math.Cos(angle), step*math.Sin(angle)
	x, y := origin.X, origin.Y
	hit := false
	for n := 1; m.InBounds(x, y); n++ {
		x = origin.X + float64(n)*dx
		y = origin.Y + float64(n)*dy
		if !m.InBounds(x, y) {
			break
		}
		if m.OccupiedAt(x, y) {
			hit = true
			break
		}
	}
	return Sample{Distance: math.Hypot(x-origin.X, y-origin.Y), Hit: hit}
}

// Cast returns the sample for a ray, consulting the cache first.
func (k *Kernel) Cast(origin vec.Vec2, angle float64) Sample {
	if k.cache == nil {
		return March(k.grid, origin, angle, k.opts.Step)
	}
	key := raycache.RayKey{Angle: angle, Position: origin}
	if s, ok := k.cache.Get(key); ok {
		return s
	}
	s := March(k.grid, origin, angle, k.opts.Step)
	k.cache.Put(key, s)
	return s
}

// Span returns the rows [start, end) covered by a wall at distance d: a
// strip of height Height/d centred on the middle row, clipped to the frame.
func (k *Kernel) Span(d float64) (int, int) {
	h := float64(k.opts.Height)
	if d <= 0 {
		return 0, k.opts.Height
	}
	lineHeight := h / d
	start := int(math.Max(0, h/2-lineHeight/2))
	end := int(math.Min(h, h/2+lineHeight/2))
	return start, end
}

// Brightness is the light factor in (0, 1] for a wall at distance d.
func (k *Kernel) Brightness(d float64) float64 {
	return 1 / (1 + k.opts.Falloff*math.Max(d, 0))
}

// Shade is the wall colour scaled by Brightness.
func (k *Kernel) Shade(d float64) color.RGBA {
	b := k.Brightness(d)
	w := k.opts.Wall
	return color.RGBA{
		R: uint8(float64(w.R) * b),
		G: uint8(float64(w.G) * b),
		B: uint8(float64(w.B) * b),
		A: 255,
	}
}

// PaintColumn overwrites every row of column x. Rays that left the map
// without a hit leave the column black.
func (k *Kernel) PaintColumn(f *Frame, x int, s Sample) {
	if !s.Hit {
		f.fillColumn(x, 0, f.Height, black)
		return
	}
	start, end := k.Span(s.Distance)
	f.fillColumn(x, 0, start, black)
	f.fillColumn(x, start, end, k.Shade(s.Distance))
	f.fillColumn(x, end, f.Height, black)
}

// RenderColumns casts and paints every column of span.
func (k *Kernel) RenderColumns(f *Frame, pose camera.Pose, span ColumnSpan) {
	for x := span.Start; x < span.End; x++ {
		k.PaintColumn(f, x, k.Cast(pose.Position, k.RayAngle(pose.Heading, x)))
	}
}

// PaintSamples paints precomputed samples for every column of span.
func (k *Kernel) PaintSamples(f *Frame, samples []Sample, span ColumnSpan) {
	for x := span.Start; x < span.End; x++ {
		k.PaintColumn(f, x, samples[x])
	}
}
