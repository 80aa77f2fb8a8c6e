package grid

import (
	"errors"
	"math/rand"
	"strings"
	"testing"
)

func TestNewValidatesDimensions(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		cells         int
	}{
		{"Zero width", 0, 3, 0},
		{"Negative height", 3, -1, 0},
		{"Short cell data", 3, 3, 8},
		{"Long cell data", 2, 2, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.width, tt.height, make([]bool, tt.cells))
			if !errors.Is(err, ErrDimensions) {
				t.Errorf("Expected ErrDimensions, got %v", err)
			}
		})
	}
}

func TestNewCopiesCells(t *testing.T) {
	cells := []bool{true, false, false, true}
	m, err := New(2, 2, cells)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	cells[1] = true
	if m.Occupied(1, 0) {
		t.Errorf("Expected map to be unaffected by caller mutation")
	}
}

func TestParse(t *testing.T) {
	m, err := Parse([]string{
		"####",
		"#..#",
		"#.X#",
		"####",
	})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if m.Width() != 4 || m.Height() != 4 {
		t.Fatalf("Expected 4x4, got %dx%d", m.Width(), m.Height())
	}
	if m.Occupied(1, 1) {
		t.Errorf("Expected (1,1) empty")
	}
	if !m.Occupied(2, 2) {
		t.Errorf("Expected (2,2) occupied")
	}
	if m.Count() != 13 {
		t.Errorf("Expected 13 occupied cells, got %d", m.Count())
	}

	if _, err := Parse([]string{"#?#"}); err == nil {
		t.Errorf("Expected error for unknown rune")
	}
	if _, err := Parse([]string{"###", "##"}); !errors.Is(err, ErrDimensions) {
		t.Errorf("Expected ErrDimensions for ragged rows, got %v", err)
	}
}

func TestParseReportsRuneColumn(t *testing.T) {
	_, err := Parse([]string{"####", "#éé?"})
	if err == nil {
		t.Fatal("Expected error for unknown rune")
	}
	if !strings.Contains(err.Error(), "row 1 column 1") {
		t.Errorf("Expected the first bad rune at row 1 column 1, got %v", err)
	}

	_, err = Parse([]string{".é"})
	if err == nil || !strings.Contains(err.Error(), "column 1") {
		t.Errorf("Expected column 1 after one ASCII cell, got %v", err)
	}
}

func TestOccupiedOutsideIsSolid(t *testing.T) {
	m, _ := New(2, 2, make([]bool, 4))
	for _, p := range [][2]int{{-1, 0}, {0, -1}, {2, 0}, {0, 2}} {
		if !m.Occupied(p[0], p[1]) {
			t.Errorf("Expected (%d,%d) to read as solid", p[0], p[1])
		}
	}
}

func TestCellTruncates(t *testing.T) {
	m, _ := Bordered(10, 10)
	tests := []struct {
		x, y   float64
		cx, cy int
	}{
		{2.0, 2.0, 2, 2},
		{2.99, 2.5, 2, 2},
		{8.999, 0.001, 8, 0},
		{0.5, 9.5, 0, 9},
	}
	for _, tt := range tests {
		cx, cy := m.Cell(tt.x, tt.y)
		if cx != tt.cx || cy != tt.cy {
			t.Errorf("Cell(%v, %v) = (%d, %d), want (%d, %d)", tt.x, tt.y, cx, cy, tt.cx, tt.cy)
		}
	}
	if m.InBounds(-0.001, 1) || m.InBounds(10, 1) || !m.InBounds(9.999, 0) {
		t.Errorf("InBounds disagrees with [0, w) x [0, h)")
	}
}

func TestBordered(t *testing.T) {
	m, err := Bordered(10, 10)
	if err != nil {
		t.Fatalf("Bordered: %v", err)
	}
	for i := 0; i < 10; i++ {
		if !m.Occupied(i, 0) || !m.Occupied(i, 9) || !m.Occupied(0, i) || !m.Occupied(9, i) {
			t.Fatalf("Expected border cell at index %d to be occupied", i)
		}
	}
	if m.Count() != 36 {
		t.Errorf("Expected 36 border cells, got %d", m.Count())
	}
}

func TestGenerateKeepsBorderAndClearing(t *testing.T) {
	opts := DefaultGenerateOptions()
	opts.Segments = 40
	opts.ClearX, opts.ClearY, opts.ClearRadius = 5, 5, 2
	for seed := int64(0); seed < 20; seed++ {
		m, err := Generate(24, 16, opts, rand.New(rand.NewSource(seed)))
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		for x := 0; x < m.Width(); x++ {
			if !m.Occupied(x, 0) || !m.Occupied(x, m.Height()-1) {
				t.Fatalf("seed %d: border missing at column %d", seed, x)
			}
		}
		if m.OccupiedAt(5, 5) || m.OccupiedAt(4.5, 5.5) {
			t.Fatalf("seed %d: clearing around start was walled in", seed)
		}
	}
}

func TestGenerateIsDeterministicPerSeed(t *testing.T) {
	opts := DefaultGenerateOptions()
	a, _ := Generate(20, 20, opts, rand.New(rand.NewSource(7)))
	b, _ := Generate(20, 20, opts, rand.New(rand.NewSource(7)))
	ac, bc := a.Cells(), b.Cells()
	for i := range ac {
		if ac[i] != bc[i] {
			t.Fatalf("Expected identical maps for identical seeds, differ at %d", i)
		}
	}
}
