package main

import (
	"fmt"
	"log/slog"

	"github.com/gogpu/gg"

	"GridCaster/internal/camera"
	"GridCaster/internal/config"
)

// runSnapshot renders headlessly for a number of ticks and writes the last
// frame as a PNG. Without -auto-walk the camera stays at its start pose.
func runSnapshot(cfg config.Config, opts gameOptions, ticks int, path string) error {
	g, err := newGame(cfg, opts)
	if err != nil {
		return err
	}
	defer g.Close()
	defer g.startScripts()()
	if ticks < 1 {
		ticks = 1
	}
	for i := 0; i < ticks; i++ {
		if err := g.step(g.input(camera.Input{})); err != nil {
			return err
		}
	}
	return g.writeSnapshot(path)
}

// writeSnapshot saves the current frame, with the minimap when enabled.
func (g *Game) writeSnapshot(path string) error {
	dc := gg.NewContextForImage(g.frame.Image())
	defer dc.Close()
	if g.showMinimap {
		w, _ := g.mini.Size()
		ox := float64(g.frame.Width - w - minimapMargin)
		if err := g.mini.Draw(dc, g.cam.Pose(), ox, minimapMargin); err != nil {
			return fmt.Errorf("drawing minimap: %w", err)
		}
	}
	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	slog.Info("snapshot written", "path", path, "ticks", g.ticks, "status", g.statusLine())
	return nil
}
