package sand

import (
	"image/color"
	"strings"
)

var sandPalette = []color.RGBA{
	MaterialEmpty:    {R: 0, G: 0, B: 0, A: 255},
	MaterialObstacle: {R: 165, G: 42, B: 42, A: 255},
	MaterialGranular: {R: 194, G: 178, B: 128, A: 255},
	MaterialLiquid:   {R: 0, G: 0, B: 255, A: 255},
}

// Palette exposes the color palette used for rendering, indexed by material.
func (w *World) Palette() []color.RGBA {
	return sandPalette
}

var glyphs = [materialCount]byte{
	MaterialEmpty:    '.',
	MaterialObstacle: '#',
	MaterialGranular: 'o',
	MaterialLiquid:   '~',
}

// Glyph returns the text symbol for m.
func Glyph(m Material) byte {
	if !m.Valid() {
		return '?'
	}
	return glyphs[m]
}

// Glyphs lists the text symbol of each material, indexed by value.
func (w *World) Glyphs() []rune {
	out := make([]rune, len(glyphs))
	for i, g := range glyphs {
		out[i] = rune(g)
	}
	return out
}

// Format renders g row by row using Glyph, each row terminated by a newline.
func Format(g *Grid) string {
	var b strings.Builder
	b.Grow((g.w + 1) * g.h)
	for y := 0; y < g.h; y++ {
		for x := 0; x < g.w; x++ {
			b.WriteByte(Glyph(g.at(x, y).Material))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Parse builds a grid from rows of glyphs as produced by Format. Unknown
// symbols are treated as empty; short rows are padded with empty cells.
func Parse(rows ...string) *Grid {
	h := len(rows)
	w := 0
	for _, r := range rows {
		if len(r) > w {
			w = len(r)
		}
	}
	g := NewGrid(w, h)
	for y, r := range rows {
		for x := 0; x < len(r); x++ {
			g.set(x, y, Cell{Material: materialForGlyph(r[x])})
		}
	}
	return g
}

func materialForGlyph(b byte) Material {
	for m, gl := range glyphs {
		if gl == b {
			return Material(m)
		}
	}
	return MaterialEmpty
}

func (w *World) rebuildDisplay() {
	cells := w.display.Cells()
	for i, c := range w.grid.cells {
		cells[i] = uint8(c.Material)
	}
}
