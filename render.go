package main

import (
	"fmt"
	"image/color"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// Draw presents the last rendered frame and the optional overlays.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.WritePixels(g.frame.Pix)

	if g.showMinimap {
		g.drawMinimap(screen)
	}

	if g.showHUD && g.hudFace != nil {
		tps := ebiten.ActualTPS()
		if tps < 0 {
			tps = 0
		}
		msg := fmt.Sprintf("FPS: %.1f  TPS: %.1f  workers: %d\n%s",
			ebiten.ActualFPS(), tps, g.sched.Workers(), g.statusLine())
		op := &text.DrawOptions{}
		op.GeoM.Translate(4, 4)
		op.LineSpacing = hudLineSpacing
		op.ColorScale.ScaleWithColor(color.RGBA{R: 240, G: 240, B: 120, A: 255})
		text.Draw(screen, msg, g.hudFace, op)
	}
}

// drawMinimap renders the top-down view into a cached image and places it in
// the top-right corner.
func (g *Game) drawMinimap(screen *ebiten.Image) {
	img, err := g.mini.Render(g.cam.Pose())
	if err != nil {
		slog.Warn("minimap render failed, hiding it", "err", err)
		g.showMinimap = false
		return
	}
	b := img.Bounds()
	if g.minimapImage == nil {
		g.minimapImage = ebiten.NewImage(b.Dx(), b.Dy())
	}
	g.minimapImage.WritePixels(img.Pix)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(g.frame.Width-b.Dx()-minimapMargin), minimapMargin)
	screen.DrawImage(g.minimapImage, op)
}

// Layout reports the logical screen size used by Ebiten: one pixel per
// frame pixel.
func (g *Game) Layout(_, _ int) (int, int) { return g.frame.Width, g.frame.Height }
