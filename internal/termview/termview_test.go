package termview

import (
	"context"
	"image/color"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"GridCaster/internal/camera"
	"GridCaster/internal/raycast"
)

func newScreen(t *testing.T, cols, rows int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	screen.SetSize(cols, rows)
	t.Cleanup(screen.Fini)
	return screen
}

func setPixel(f *raycast.Frame, x, y int, c color.RGBA) {
	i := (y*f.Width + x) * 4
	f.Pix[i], f.Pix[i+1], f.Pix[i+2], f.Pix[i+3] = c.R, c.G, c.B, c.A
}

func TestSinkFrameSize(t *testing.T) {
	sink := NewSink(newScreen(t, 80, 25))
	w, h := sink.FrameSize()
	if w != 80 || h != 48 {
		t.Errorf("Expected 80x48, got %dx%d", w, h)
	}
}

func TestSinkDrawsHalfBlocks(t *testing.T) {
	screen := newScreen(t, 2, 3)
	sink := NewSink(screen)
	f := raycast.NewFrame(2, 4)
	upper := color.RGBA{R: 200, G: 10, B: 20, A: 255}
	lower := color.RGBA{R: 5, G: 150, B: 60, A: 255}
	setPixel(f, 1, 2, upper)
	setPixel(f, 1, 3, lower)

	sink.Draw(f, "hi")

	r, _, style, _ := screen.GetContent(1, 1)
	if r != halfBlock {
		t.Fatalf("Expected %q, got %q", halfBlock, r)
	}
	fg, bg, _ := style.Decompose()
	if fg != tcell.NewRGBColor(200, 10, 20) {
		t.Errorf("Expected upper pixel as foreground, got %v", fg)
	}
	if bg != tcell.NewRGBColor(5, 150, 60) {
		t.Errorf("Expected lower pixel as background, got %v", bg)
	}

	if r, _, _, _ := screen.GetContent(0, 2); r != 'h' {
		t.Errorf("Expected status text on the last row, got %q", r)
	}
	if r, _, _, _ := screen.GetContent(1, 2); r != 'i' {
		t.Errorf("Expected status text on the last row, got %q", r)
	}
}

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func TestKeysHoldWindow(t *testing.T) {
	clock := &fakeClock{t: time.Unix(100, 0)}
	k := NewKeys(100 * time.Millisecond)
	k.now = clock.now

	k.Handle(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone))
	k.Handle(tcell.NewEventKey(tcell.KeyRune, 'w', tcell.ModNone))
	in := k.Input()
	if !in.TurnLeft || !in.Forward || in.TurnRight || in.Backward {
		t.Fatalf("Expected left+forward held, got %+v", in)
	}

	clock.t = clock.t.Add(80 * time.Millisecond)
	if in := k.Input(); !in.TurnLeft {
		t.Errorf("Expected key still held inside the window, got %+v", in)
	}

	clock.t = clock.t.Add(50 * time.Millisecond)
	if in := k.Input(); !in.Idle() {
		t.Errorf("Expected keys released after the window, got %+v", in)
	}
}

func TestKeysBindings(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want func(in camera.Input) bool
	}{
		{"d turns right", tcell.NewEventKey(tcell.KeyRune, 'd', tcell.ModNone), func(in camera.Input) bool { return in.TurnRight }},
		{"right arrow", tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone), func(in camera.Input) bool { return in.TurnRight }},
		{"s backs up", tcell.NewEventKey(tcell.KeyRune, 's', tcell.ModNone), func(in camera.Input) bool { return in.Backward }},
		{"down arrow", tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone), func(in camera.Input) bool { return in.Backward }},
		{"up arrow", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), func(in camera.Input) bool { return in.Forward }},
		{"a turns left", tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone), func(in camera.Input) bool { return in.TurnLeft }},
		{"q quits", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), func(in camera.Input) bool { return in.Quit }},
		{"escape quits", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), func(in camera.Input) bool { return in.Quit }},
		{"ctrl-c quits", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), func(in camera.Input) bool { return in.Quit }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k := NewKeys(0)
			k.Handle(tt.ev)
			if !tt.want(k.Input()) {
				t.Errorf("Unexpected input %+v", k.Input())
			}
		})
	}
}

func TestKeysResize(t *testing.T) {
	k := NewKeys(0)
	if k.TakeResize() {
		t.Fatal("Expected no resize before any event")
	}
	k.Handle(tcell.NewEventResize(10, 10))
	if !k.TakeResize() {
		t.Error("Expected a resize after the event")
	}
	if k.TakeResize() {
		t.Error("Expected the resize flag to clear")
	}
}

func TestListenStopsOnCancel(t *testing.T) {
	screen := newScreen(t, 10, 5)
	k := NewKeys(0)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		k.Listen(ctx, screen)
		close(done)
	}()

	screen.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)
	deadline := time.Now().Add(2 * time.Second)
	for !k.Input().Quit {
		if time.Now().After(deadline) {
			t.Fatal("Expected the injected key to reach the tracker")
		}
		time.Sleep(5 * time.Millisecond)
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Expected Listen to return after cancel")
	}
}
