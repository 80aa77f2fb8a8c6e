package main

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gomono"

	"GridCaster/internal/camera"
	"GridCaster/internal/clcast"
	"GridCaster/internal/config"
	"GridCaster/internal/grid"
	"GridCaster/internal/minimap"
	"GridCaster/internal/raycast"
)

// Game holds the scene and the render pipeline shared by every frontend.
// The ebiten methods (Update, Draw, Layout) live in movement.go and
// render.go; the terminal and snapshot frontends drive step directly.
type Game struct {
	cfg    config.Config
	world  *grid.Map
	cam    *camera.Camera
	cache  *raycast.Cache
	kernel *raycast.Kernel
	sched  *raycast.Scheduler
	gpu    *clcast.Caster

	frame   *raycast.Frame
	samples []raycast.Sample
	mini    *minimap.Minimap

	ticks             int
	lastFrameDuration time.Duration

	autoWalk           bool
	autoWalkDeadline   time.Time
	autoWalkRand       *rand.Rand
	autoWalkTurn       int
	autoWalkFrameCount int

	showHUD      bool
	showMinimap  bool
	minimapImage *ebiten.Image
	hudFace      *text.GoTextFace
}

// gameOptions are the flag-level settings newGame needs.
type gameOptions struct {
	workers int
	noCache bool
	backend string
}

// newGame builds the map, cache, kernel and worker pool for cfg.
func newGame(cfg config.Config, opts gameOptions) (*Game, error) {
	world, err := cfg.Grid()
	if err != nil {
		return nil, fmt.Errorf("building map: %w", err)
	}
	g := &Game{
		cfg:          cfg,
		world:        world,
		cam:          camera.New(cfg.StartState(), cfg.CameraParams()),
		autoWalkRand: rand.New(rand.NewSource(time.Now().UnixNano() + 3)),
		showHUD:      *debugFlag,
		showMinimap:  *minimapFlag,
	}
	if !opts.noCache {
		g.cache = raycast.NewCache(cfg.CacheCapacity)
	}
	g.kernel, err = raycast.NewKernel(world, cfg.KernelOptions(), g.cache)
	if err != nil {
		return nil, fmt.Errorf("creating kernel: %w", err)
	}
	g.sched = raycast.NewScheduler(g.kernel, opts.workers)
	g.frame = g.kernel.NewFrame()
	g.mini = minimap.New(world, minimapCellPx, cfg.FieldOfView)

	switch opts.backend {
	case "", "cpu":
	case "opencl":
		caster, err := clcast.New(world, g.kernel.Options())
		if err != nil {
			if errors.Is(err, clcast.ErrUnavailable) {
				slog.Warn("OpenCL backend unavailable, using CPU marcher", "err", err)
			} else {
				slog.Warn("OpenCL initialization failed, using CPU marcher", "err", err)
			}
			break
		}
		g.gpu = caster
		slog.Info("OpenCL marcher enabled", "device", caster.DeviceName())
	default:
		g.Close()
		return nil, fmt.Errorf("unknown backend %q", opts.backend)
	}

	slog.Info("scene ready",
		"map", fmt.Sprintf("%dx%d", world.Width(), world.Height()),
		"walls", world.Count(),
		"frame", fmt.Sprintf("%dx%d", g.frame.Width, g.frame.Height),
		"workers", g.sched.Workers(),
		"cache", g.cache != nil,
	)
	return g, nil
}

// loadHUDFont prepares the overlay face for the window frontend.
func (g *Game) loadHUDFont() error {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(gomono.TTF))
	if err != nil {
		return fmt.Errorf("loading HUD font: %w", err)
	}
	g.hudFace = &text.GoTextFace{Source: src, Size: hudFontSize}
	return nil
}

// Close stops the render workers and releases the OpenCL device.
func (g *Game) Close() {
	if g.sched != nil {
		g.sched.Close()
	}
	if g.gpu != nil {
		g.gpu.Close()
		g.gpu = nil
	}
}
