package sand

import (
	"errors"
	"fmt"

	"sandsim/internal/core"
)

var (
	// ErrOutOfBounds is returned for coordinates outside the grid.
	ErrOutOfBounds = errors.New("coordinate out of bounds")
	// ErrInvalidMaterial is returned when a write carries an undefined material.
	ErrInvalidMaterial = errors.New("invalid material")
)

// Grid is a fixed-size row-major array of cells. It is never resized.
type Grid struct {
	w, h  int
	cells []Cell
}

// NewGrid allocates an all-empty grid. Non-positive dimensions become 1.
func NewGrid(w, h int) *Grid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &Grid{w: w, h: h, cells: make([]Cell, w*h)}
}

// Dimensions returns the grid width and height.
func (g *Grid) Dimensions() (int, int) { return g.w, g.h }

// Size returns the dimensions as a core.Size.
func (g *Grid) Size() core.Size { return core.Size{W: g.w, H: g.h} }

// InBounds reports whether (x, y) addresses a cell.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.w && y >= 0 && y < g.h
}

// At returns the cell at column x, row y.
func (g *Grid) At(x, y int) (Cell, error) {
	if !g.InBounds(x, y) {
		return Cell{}, fmt.Errorf("read (%d,%d) in %dx%d grid: %w", x, y, g.w, g.h, ErrOutOfBounds)
	}
	return g.cells[y*g.w+x], nil
}

// Set overwrites the cell at column x, row y. No rule logic runs.
func (g *Grid) Set(x, y int, c Cell) error {
	if !g.InBounds(x, y) {
		return fmt.Errorf("write (%d,%d) in %dx%d grid: %w", x, y, g.w, g.h, ErrOutOfBounds)
	}
	if !c.Material.Valid() {
		return fmt.Errorf("write (%d,%d): %w: %d", x, y, ErrInvalidMaterial, uint8(c.Material))
	}
	g.cells[y*g.w+x] = c
	return nil
}

// Reset fills every cell with Empty.
func (g *Grid) Reset() {
	for i := range g.cells {
		g.cells[i] = Cell{}
	}
}

// Census tallies cells per material.
type Census [materialCount]int

// Of returns the count for m.
func (c Census) Of(m Material) int {
	if !m.Valid() {
		return 0
	}
	return c[m]
}

// Mobile returns the number of granular and liquid cells.
func (c Census) Mobile() int { return c[MaterialGranular] + c[MaterialLiquid] }

// Total returns the number of cells counted.
func (c Census) Total() int {
	n := 0
	for _, v := range c {
		n += v
	}
	return n
}

// Census counts the cells of each material.
func (g *Grid) Census() Census {
	var c Census
	for _, cell := range g.cells {
		c[cell.Material]++
	}
	return c
}

// at and set skip validation; callers have checked the coordinates.
func (g *Grid) at(x, y int) Cell { return g.cells[y*g.w+x] }

func (g *Grid) set(x, y int, c Cell) { g.cells[y*g.w+x] = c }

func (g *Grid) clearSettled() {
	for i := range g.cells {
		g.cells[i].Settled = false
	}
}
