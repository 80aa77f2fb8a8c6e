// Package grid holds the immutable occupancy map the raycaster walks through.
package grid

import (
	"errors"
	"fmt"
)

// ErrDimensions is returned when a map would have no cells or its cell data
// does not match the declared size.
var ErrDimensions = errors.New("grid: invalid map dimensions")

// Map is a rectangular, row-major grid of occupied cells. A Map never changes
// after construction, so any number of goroutines may read it without locks.
type Map struct {
	width, height int
	cells         []bool
}

// New copies cells into a width×height map.
func New(width, height int, cells []bool) (*Map, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrDimensions, width, height)
	}
	if len(cells) != width*height {
		return nil, fmt.Errorf("%w: %d cells for %dx%d", ErrDimensions, len(cells), width, height)
	}
	m := &Map{width: width, height: height, cells: make([]bool, len(cells))}
	copy(m.cells, cells)
	return m, nil
}

// FromRows builds a map from equally sized rows; rows[y][x] is cell (x, y).
func FromRows(rows [][]bool) (*Map, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%w: empty map", ErrDimensions)
	}
	width := len(rows[0])
	cells := make([]bool, 0, width*len(rows))
	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrDimensions, y, len(row), width)
		}
		cells = append(cells, row...)
	}
	return New(width, len(rows), cells)
}

// Parse builds a map from text rows. '#', 'X' and '1' mark occupied cells;
// '.', ' ' and '0' mark empty ones.
func Parse(rows []string) (*Map, error) {
	bools := make([][]bool, len(rows))
	for y, row := range rows {
		line := make([]bool, 0, len(row))
		for _, r := range row {
			switch r {
			case '#', 'X', '1':
				line = append(line, true)
			case '.', ' ', '0':
				line = append(line, false)
			default:
				return nil, fmt.Errorf("grid: unexpected %q at row %d column %d", r, y, len(line))
			}
		}
		bools[y] = line
	}
	return FromRows(bools)
}

// Bordered returns a map whose outer ring is occupied and whose interior is empty.
func Bordered(width, height int) (*Map, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrDimensions, width, height)
	}
	cells := make([]bool, width*height)
	for x := 0; x < width; x++ {
		cells[x] = true
		cells[(height-1)*width+x] = true
	}
	for y := 0; y < height; y++ {
		cells[y*width] = true
		cells[y*width+width-1] = true
	}
	return New(width, height, cells)
}

// Width reports the number of columns.
func (m *Map) Width() int { return m.width }

// Height reports the number of rows.
func (m *Map) Height() int { return m.height }

// Occupied reports whether cell (x, y) is solid. Coordinates outside the map
// read as solid.
func (m *Map) Occupied(x, y int) bool {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return true
	}
	return m.cells[y*m.width+x]
}

// InBounds reports whether the point lies inside [0, width) × [0, height).
func (m *Map) InBounds(x, y float64) bool {
	return x >= 0 && y >= 0 && x < float64(m.width) && y < float64(m.height)
}

// Cell converts an in-bounds point to the cell containing it. Coordinates are
// truncated toward zero; the same rule is used by every marcher so hit
// distances agree at cell boundaries.
func (m *Map) Cell(x, y float64) (int, int) {
	return int(x), int(y)
}

// OccupiedAt reports whether the in-bounds point lies in a solid cell.
func (m *Map) OccupiedAt(x, y float64) bool {
	cx, cy := m.Cell(x, y)
	return m.cells[cy*m.width+cx]
}

// Count returns the number of occupied cells.
func (m *Map) Count() int {
	n := 0
	for _, c := range m.cells {
		if c {
			n++
		}
	}
	return n
}

// Cells returns a copy of the row-major cell data.
func (m *Map) Cells() []bool {
	out := make([]bool, len(m.cells))
	copy(out, m.cells)
	return out
}
