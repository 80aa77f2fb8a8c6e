// Package config loads the YAML scene description: window size, field of
// view, camera tuning and the occupancy map.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"math/rand"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
	"seehuhn.de/go/geom/vec"

	"GridCaster/internal/camera"
	"GridCaster/internal/grid"
	"GridCaster/internal/raycache"
	"GridCaster/internal/raycast"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// Start is the camera's initial pose.
type Start struct {
	X       float64 `yaml:"x"`
	Y       float64 `yaml:"y"`
	Heading float64 `yaml:"heading"`
}

// Generate describes the procedural map used when the file has no map.
type Generate struct {
	Width     int   `yaml:"width"`
	Height    int   `yaml:"height"`
	Seed      int64 `yaml:"seed"`
	Segments  int   `yaml:"segments"`
	MinLen    int   `yaml:"min_len"`
	MaxLen    int   `yaml:"max_len"`
	Thickness int   `yaml:"thickness"`
}

// Config is the decoded scene file. Zero-valued keys missing from the file
// keep the values from Default.
type Config struct {
	WindowWidth  int     `yaml:"window_width"`
	WindowHeight int     `yaml:"window_height"`
	FieldOfView  float64 `yaml:"field_of_view"`
	Acceleration float64 `yaml:"acceleration"`
	MaxVelocity  float64 `yaml:"max_velocity"`
	TurnRate     float64 `yaml:"turn_rate"`
	Damping      float64 `yaml:"damping"`

	Map      [][]bool `yaml:"map"`
	MapRows  []string `yaml:"map_rows"`
	Generate Generate `yaml:"generate"`
	Start    Start    `yaml:"start"`

	MarchStep     float64 `yaml:"march_step"`
	Falloff       float64 `yaml:"falloff"`
	WallColor     string  `yaml:"wall_color"`
	CacheCapacity int     `yaml:"cache_capacity"`
}

// Default returns a 640x480 view of a generated 24x24 map.
func Default() Config {
	p := camera.DefaultParams()
	gen := grid.DefaultGenerateOptions()
	return Config{
		WindowWidth:  640,
		WindowHeight: 480,
		FieldOfView:  0.5,
		Acceleration: p.Acceleration,
		MaxVelocity:  p.MaxVelocity,
		TurnRate:     p.TurnRate,
		Damping:      p.Damping,
		Generate: Generate{
			Width:     24,
			Height:    24,
			Seed:      1,
			Segments:  gen.Segments,
			MinLen:    gen.MinLen,
			MaxLen:    gen.MaxLen,
			Thickness: gen.ThicknessVariance,
		},
		Start:         Start{X: 2, Y: 2},
		MarchStep:     raycast.DefaultStep,
		Falloff:       raycast.DefaultFalloff,
		WallColor:     "#ffffff",
		CacheCapacity: raycache.DefaultCapacity,
	}
}

// Load reads and validates the file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// fovKeys picks up the historical "feild_of_view" spelling. The correctly
// spelled key wins when both are present.
type fovKeys struct {
	FieldOfView *float64 `yaml:"field_of_view"`
	Legacy      *float64 `yaml:"feild_of_view"`
}

// Parse decodes YAML on top of Default and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	var fov fovKeys
	if err := yaml.Unmarshal(data, &fov); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if fov.FieldOfView == nil && fov.Legacy != nil {
		cfg.FieldOfView = *fov.Legacy
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every setting, including that the start position lies in
// an empty cell of the resolved map.
func (c Config) Validate() error {
	var problems []string
	if c.WindowWidth <= 0 || c.WindowHeight <= 0 {
		problems = append(problems, fmt.Sprintf("window size %dx%d must be positive", c.WindowWidth, c.WindowHeight))
	}
	if !(c.FieldOfView > 0 && c.FieldOfView < math.Pi) {
		problems = append(problems, fmt.Sprintf("field of view %v must be in (0, pi)", c.FieldOfView))
	}
	if c.Acceleration < 0 {
		problems = append(problems, fmt.Sprintf("acceleration %v must not be negative", c.Acceleration))
	}
	if !(c.MaxVelocity > 0) {
		problems = append(problems, fmt.Sprintf("max_velocity %v must be positive", c.MaxVelocity))
	}
	if c.TurnRate < 0 {
		problems = append(problems, fmt.Sprintf("turn_rate %v must not be negative", c.TurnRate))
	}
	if c.Damping < 0 || c.Damping >= 1 {
		problems = append(problems, fmt.Sprintf("damping %v must be in [0, 1)", c.Damping))
	}
	if !(c.MarchStep >= raycast.MinStep) {
		problems = append(problems, fmt.Sprintf("march_step %v must be at least %v", c.MarchStep, raycast.MinStep))
	}
	if !(c.Falloff > 0) {
		problems = append(problems, fmt.Sprintf("falloff %v must be positive", c.Falloff))
	}
	if c.CacheCapacity < 0 {
		problems = append(problems, fmt.Sprintf("cache_capacity %d must not be negative", c.CacheCapacity))
	}
	if _, err := ParseColor(c.WallColor); err != nil {
		problems = append(problems, err.Error())
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, "; "))
	}

	m, err := c.Grid()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if !m.InBounds(c.Start.X, c.Start.Y) {
		return fmt.Errorf("%w: start (%v, %v) is outside the %dx%d map", ErrInvalid, c.Start.X, c.Start.Y, m.Width(), m.Height())
	}
	if m.OccupiedAt(c.Start.X, c.Start.Y) {
		return fmt.Errorf("%w: start (%v, %v) is inside a wall", ErrInvalid, c.Start.X, c.Start.Y)
	}
	return nil
}

// Grid resolves the occupancy map: an explicit map wins over map_rows,
// which wins over the generator.
func (c Config) Grid() (*grid.Map, error) {
	switch {
	case len(c.Map) > 0:
		m, err := grid.FromRows(c.Map)
		if err != nil {
			return nil, fmt.Errorf("map: %w", err)
		}
		return m, nil
	case len(c.MapRows) > 0:
		m, err := grid.Parse(c.MapRows)
		if err != nil {
			return nil, fmt.Errorf("map_rows: %w", err)
		}
		return m, nil
	}
	g := c.Generate
	opts := grid.GenerateOptions{
		Segments:          g.Segments,
		MinLen:            g.MinLen,
		MaxLen:            g.MaxLen,
		ThicknessVariance: g.Thickness,
		ClearX:            c.Start.X,
		ClearY:            c.Start.Y,
		ClearRadius:       grid.DefaultGenerateOptions().ClearRadius,
	}
	m, err := grid.Generate(g.Width, g.Height, opts, rand.New(rand.NewSource(g.Seed)))
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}
	return m, nil
}

// CameraParams returns the motion tuning.
func (c Config) CameraParams() camera.Params {
	return camera.Params{
		Acceleration: c.Acceleration,
		MaxVelocity:  c.MaxVelocity,
		TurnRate:     c.TurnRate,
		Damping:      c.Damping,
	}
}

// StartState returns the camera at rest at the configured start pose.
func (c Config) StartState() camera.State {
	return camera.State{
		Position: vec.Vec2{X: c.Start.X, Y: c.Start.Y},
		Heading:  c.Start.Heading,
	}
}

// KernelOptions returns the raycast settings. An unparsable wall colour
// falls back to the kernel default; Validate reports it.
func (c Config) KernelOptions() raycast.Options {
	wall, _ := ParseColor(c.WallColor)
	return raycast.Options{
		Width:   c.WindowWidth,
		Height:  c.WindowHeight,
		FOV:     c.FieldOfView,
		Step:    c.MarchStep,
		Falloff: c.Falloff,
		Wall:    wall,
	}
}

// ParseColor reads "#rrggbb" (the leading # is optional). The empty string
// is the zero colour.
func ParseColor(s string) (color.RGBA, error) {
	if s == "" {
		return color.RGBA{}, nil
	}
	hex := strings.TrimPrefix(s, "#")
	var r, g, b uint8
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("wall_color %q must be #rrggbb", s)
	}
	if _, err := fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b); err != nil {
		return color.RGBA{}, fmt.Errorf("wall_color %q must be #rrggbb", s)
	}
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}
