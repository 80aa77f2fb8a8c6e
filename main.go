package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"

	"GridCaster/internal/config"
	"GridCaster/internal/raycast"
)

func main() {
	flag.Parse()
	if err := setupLogging(*logLevelFlag); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	cfg, err := loadConfig(*configPathFlag)
	if err != nil {
		slog.Error("config rejected", "err", err)
		os.Exit(1)
	}
	opts := gameOptions{
		workers: *workersFlag,
		noCache: *noCacheFlag,
		backend: *backendFlag,
	}

	switch *frontendFlag {
	case "window":
		err = runWindow(cfg, opts)
	case "terminal":
		err = runTerminal(cfg, opts)
	case "snapshot":
		err = runSnapshot(cfg, opts, *snapshotTicksFlag, *snapshotOutFlag)
	default:
		err = fmt.Errorf("unknown frontend %q", *frontendFlag)
	}
	if err != nil {
		slog.Error("exiting", "err", err)
		os.Exit(1)
	}
}

// setupLogging installs a text handler on stderr at the given level and
// shares it with the render packages.
func setupLogging(level string) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		return fmt.Errorf("invalid -log-level %q: %w", level, err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)
	raycast.SetLogger(logger)
	return nil
}

// loadConfig reads path and applies flag overrides. A missing file at the
// default path falls back to the built-in scene.
func loadConfig(path string) (config.Config, error) {
	cfg, err := config.Load(path)
	switch {
	case err == nil:
		slog.Info("config loaded", "path", path)
	case errors.Is(err, fs.ErrNotExist) && path == defaultConfigPath:
		slog.Info("no config file, using built-in scene", "path", path)
		cfg = config.Default()
	default:
		return config.Config{}, err
	}
	if *cacheCapacityFlag > 0 {
		cfg.CacheCapacity = *cacheCapacityFlag
	}
	return cfg, nil
}

// runWindow opens the ebiten window and blocks until it closes.
func runWindow(cfg config.Config, opts gameOptions) error {
	g, err := newGame(cfg, opts)
	if err != nil {
		return err
	}
	defer g.Close()
	defer g.startScripts()()
	if err := g.loadHUDFont(); err != nil {
		return err
	}

	scale := *windowScaleFlag
	if scale < 1 {
		scale = 1
	}
	ebiten.SetWindowSize(cfg.WindowWidth*scale, cfg.WindowHeight*scale)
	ebiten.SetWindowTitle(windowTitle)
	ebiten.SetTPS(defaultTPS)
	ebiten.SetVsyncEnabled(true)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("running game: %w", err)
	}
	slog.Info("window closed", "ticks", g.ticks)
	return nil
}
