package main

import (
	"fmt"
	"time"

	"GridCaster/internal/camera"
	"GridCaster/internal/clcast"
)

// step applies one tick of input to the camera and renders the frame for the
// resulting pose. The pose is frozen before the workers are woken.
func (g *Game) step(in camera.Input) error {
	g.cam.Update(in)
	start := time.Now()
	err := g.renderFrame()
	g.lastFrameDuration = time.Since(start)
	g.ticks++
	return err
}

// renderFrame fills g.frame for the current pose on the selected backend.
func (g *Game) renderFrame() error {
	pose := g.cam.Pose()
	if g.gpu != nil {
		samples, err := clcast.Render(g.gpu, g.sched, g.frame, pose, g.samples)
		g.samples = samples
		if err != nil {
			return fmt.Errorf("rendering frame %d: %w", g.ticks, err)
		}
		return nil
	}
	g.sched.RenderFrame(g.frame, pose)
	return nil
}

// statusLine summarizes the pose, frame time and cache for overlays.
func (g *Game) statusLine() string {
	s := g.cam.State()
	line := fmt.Sprintf("pos %.2f,%.2f  heading %.2f  speed %.3f  frame %.2fms",
		s.Position.X, s.Position.Y, s.Heading, s.Speed(), g.lastFrameDuration.Seconds()*1000)
	if g.cache != nil {
		st := g.cache.Stats()
		line += fmt.Sprintf("  cache %d/%d hit %.0f%%", g.cache.Len(), g.cache.Cap(), st.HitRate()*100)
	}
	return line
}
