// Package termview presents frames in a terminal through tcell and turns
// terminal key events into camera input.
package termview

import (
	"github.com/gdamore/tcell/v2"

	"GridCaster/internal/raycast"
)

// halfBlock fills the upper half of a cell: the foreground colour is the
// upper pixel and the background colour the lower one.
const halfBlock = '▀'

// Sink draws frames at two pixels per terminal cell. The bottom row is kept
// for a status line.
type Sink struct {
	screen tcell.Screen
}

func NewSink(screen tcell.Screen) *Sink {
	return &Sink{screen: screen}
}

// FrameSize returns the pixel size that maps one to one onto the screen.
func (s *Sink) FrameSize() (int, int) {
	cols, rows := s.screen.Size()
	rows--
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return cols, rows * 2
}

// Draw paints f scaled to the current screen with nearest-neighbour
// sampling, writes status on the last row and shows the result.
func (s *Sink) Draw(f *raycast.Frame, status string) {
	cols, rows := s.screen.Size()
	viewRows := rows - 1
	if cols <= 0 || viewRows <= 0 {
		s.screen.Show()
		return
	}
	pixRows := viewRows * 2
	for cy := 0; cy < viewRows; cy++ {
		top := (2 * cy) * f.Height / pixRows
		bottom := (2*cy + 1) * f.Height / pixRows
		for cx := 0; cx < cols; cx++ {
			fx := cx * f.Width / cols
			style := tcell.StyleDefault.
				Foreground(pixelColor(f, fx, top)).
				Background(pixelColor(f, fx, bottom))
			s.screen.SetContent(cx, cy, halfBlock, nil, style)
		}
	}

	statusStyle := tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	runes := []rune(status)
	for cx := 0; cx < cols; cx++ {
		r := ' '
		if cx < len(runes) {
			r = runes[cx]
		}
		s.screen.SetContent(cx, rows-1, r, nil, statusStyle)
	}
	s.screen.Show()
}

func pixelColor(f *raycast.Frame, x, y int) tcell.Color {
	c := f.At(x, y)
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
