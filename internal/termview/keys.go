package termview

import (
	"context"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"GridCaster/internal/camera"
)

// DefaultHold is how long a key counts as held after its last event.
// Terminals report key presses and auto-repeat but never releases.
const DefaultHold = 150 * time.Millisecond

type action int

const (
	actTurnLeft action = iota
	actTurnRight
	actForward
	actBackward
	actCount
)

// Keys tracks the most recent press of each movement key.
type Keys struct {
	hold time.Duration
	now  func() time.Time

	mu      sync.Mutex
	last    [actCount]time.Time
	quit    bool
	resized bool
}

// NewKeys returns a key tracker; hold <= 0 selects DefaultHold.
func NewKeys(hold time.Duration) *Keys {
	if hold <= 0 {
		hold = DefaultHold
	}
	return &Keys{hold: hold, now: time.Now}
}

// Handle records one terminal event.
func (k *Keys) Handle(ev tcell.Event) {
	k.mu.Lock()
	defer k.mu.Unlock()
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			k.quit = true
			return
		}
		act, ok := keyAction(ev)
		if ok {
			k.last[act] = k.now()
			return
		}
		if ev.Key() == tcell.KeyRune && (ev.Rune() == 'q' || ev.Rune() == 'Q') {
			k.quit = true
		}
	case *tcell.EventResize:
		k.resized = true
	}
}

func keyAction(ev *tcell.EventKey) (action, bool) {
	switch ev.Key() {
	case tcell.KeyLeft:
		return actTurnLeft, true
	case tcell.KeyRight:
		return actTurnRight, true
	case tcell.KeyUp:
		return actForward, true
	case tcell.KeyDown:
		return actBackward, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'a', 'A':
			return actTurnLeft, true
		case 'd', 'D':
			return actTurnRight, true
		case 'w', 'W':
			return actForward, true
		case 's', 'S':
			return actBackward, true
		}
	}
	return 0, false
}

// Input returns the keys held right now.
func (k *Keys) Input() camera.Input {
	k.mu.Lock()
	defer k.mu.Unlock()
	now := k.now()
	held := func(a action) bool {
		t := k.last[a]
		return !t.IsZero() && now.Sub(t) <= k.hold
	}
	return camera.Input{
		TurnLeft:  held(actTurnLeft),
		TurnRight: held(actTurnRight),
		Forward:   held(actForward),
		Backward:  held(actBackward),
		Quit:      k.quit,
	}
}

// TakeResize reports whether the screen was resized since the last call.
func (k *Keys) TakeResize() bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	r := k.resized
	k.resized = false
	return r
}

// Listen feeds screen events into k until ctx is done or the screen is
// finalized.
func (k *Keys) Listen(ctx context.Context, screen tcell.Screen) {
	events := make(chan tcell.Event, 64)
	go func() {
		defer close(events)
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			k.Handle(ev)
		}
	}
}
