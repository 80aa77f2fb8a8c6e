package main

import (
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"GridCaster/internal/camera"
	"GridCaster/internal/raycast"
)

// Update samples the keyboard, advances the camera and renders the next
// frame. Quitting ends the loop between frames.
func (g *Game) Update() error {
	in := g.input(keyboardInput())
	if in.Quit {
		return ebiten.Termination
	}
	g.handleDebugControls()
	return g.step(in)
}

// keyboardInput reads the held movement keys from ebiten.
func keyboardInput() camera.Input {
	pressed := func(keys ...ebiten.Key) bool {
		for _, k := range keys {
			if ebiten.IsKeyPressed(k) {
				return true
			}
		}
		return false
	}
	return camera.Input{
		TurnLeft:  pressed(ebiten.KeyA, ebiten.KeyArrowLeft),
		TurnRight: pressed(ebiten.KeyD, ebiten.KeyArrowRight),
		Forward:   pressed(ebiten.KeyW, ebiten.KeyArrowUp),
		Backward:  pressed(ebiten.KeyS, ebiten.KeyArrowDown),
		Quit:      pressed(ebiten.KeyEscape, ebiten.KeyQ),
	}
}

// input substitutes scripted movement while auto-walk is active. Quit
// always comes from the real source.
func (g *Game) input(real camera.Input) camera.Input {
	if !g.autoWalk {
		return real
	}
	if time.Now().After(g.autoWalkDeadline) {
		g.autoWalk = false
		return real
	}
	in := g.autoWalkInput()
	in.Quit = real.Quit
	return in
}

// enableAutoWalk schedules scripted movement for a limited duration.
func (g *Game) enableAutoWalk(duration time.Duration) {
	g.autoWalk = true
	g.autoWalkDeadline = time.Now().Add(duration)
	if g.autoWalkRand == nil {
		g.autoWalkRand = rand.New(rand.NewSource(time.Now().UnixNano() + 4))
	}
	g.autoWalkFrameCount = 0
}

// autoWalkInput walks forward while steering on a random bias, and turns in
// place while a wall is closer than autoWalkClearance.
func (g *Game) autoWalkInput() camera.Input {
	if g.autoWalkFrameCount <= 0 {
		g.randomizeAutoWalkTurn()
	}
	g.autoWalkFrameCount--

	pose := g.cam.Pose()
	ahead := raycast.March(g.world, pose.Position, pose.Heading, g.kernel.Options().Step)
	if ahead.Hit && ahead.Distance < autoWalkClearance {
		if g.autoWalkTurn == 0 {
			g.autoWalkTurn = 1
		}
		return camera.Input{TurnLeft: g.autoWalkTurn < 0, TurnRight: g.autoWalkTurn > 0}
	}
	return camera.Input{
		Forward:   true,
		TurnLeft:  g.autoWalkTurn < 0,
		TurnRight: g.autoWalkTurn > 0,
	}
}

// randomizeAutoWalkTurn picks a new steering bias for the next stretch.
func (g *Game) randomizeAutoWalkTurn() {
	g.autoWalkTurn = g.autoWalkRand.Intn(3) - 1
	g.autoWalkFrameCount = autoWalkMinTicks + g.autoWalkRand.Intn(autoWalkMaxTicks-autoWalkMinTicks+1)
}

// handleDebugControls processes overlay hotkeys.
func (g *Game) handleDebugControls() {
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) || inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.showHUD = !g.showHUD
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		g.showMinimap = !g.showMinimap
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) && g.cache != nil {
		g.cache.Reset()
	}
}
