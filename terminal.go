package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"

	"GridCaster/internal/config"
	"GridCaster/internal/termview"
)

// runTerminal renders into the terminal with half-block cells. The frame
// size follows the terminal, not window_width/window_height.
func runTerminal(cfg config.Config, opts gameOptions) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating terminal screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing terminal screen: %w", err)
	}
	defer screen.Fini()
	screen.HideCursor()

	sink := termview.NewSink(screen)
	cfg.WindowWidth, cfg.WindowHeight = sink.FrameSize()
	g, err := newGame(cfg, opts)
	if err != nil {
		return err
	}
	defer g.Close()
	defer g.startScripts()()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	keys := termview.NewKeys(termview.DefaultHold)
	go keys.Listen(ctx, screen)

	ticker := time.NewTicker(terminalTick)
	defer ticker.Stop()
	status := g.statusLine()
	for range ticker.C {
		in := g.input(keys.Input())
		if in.Quit {
			slog.Info("terminal frontend quit", "ticks", g.ticks)
			return nil
		}
		if keys.TakeResize() {
			screen.Sync()
		}
		if err := g.step(in); err != nil {
			return err
		}
		if g.ticks%terminalStatusEvery == 0 {
			status = g.statusLine()
		}
		sink.Draw(g.frame, status)
	}
	return nil
}
