package sand

type offset struct{ dx, dy int }

// rule lists candidate destinations in priority order and the materials a
// mover may trade places with.
type rule struct {
	moves     []offset
	displaces []Material
}

// Granular falls, then slides diagonally, sinking through liquid.
var granularRule = rule{
	moves:     []offset{{0, 1}, {-1, 1}, {1, 1}},
	displaces: []Material{MaterialEmpty, MaterialLiquid},
}

// Liquid falls, then slides diagonally, then spreads left before right. It
// only ever moves into empty cells.
var liquidRule = rule{
	moves:     []offset{{0, 1}, {-1, 1}, {1, 1}, {-1, 0}, {1, 0}},
	displaces: []Material{MaterialEmpty},
}

// apply runs r for the cell at (x, y). The first open candidate wins: the mover
// takes the destination and the displaced content takes the source. Both end
// up settled, as does a cell that stays put.
func (r rule) apply(g *Grid, x, y int) bool {
	self := g.at(x, y)
	n := Neighbors(g, x, y)
	for _, m := range r.moves {
		if !n.Open(m.dx, m.dy, r.displaces...) {
			continue
		}
		nx, ny := x+m.dx, y+m.dy
		if !g.InBounds(nx, ny) {
			continue
		}
		displaced := g.at(nx, ny)
		g.set(nx, ny, Cell{Material: self.Material, Settled: true})
		g.set(x, y, Cell{Material: displaced.Material, Settled: true})
		return true
	}
	g.set(x, y, Cell{Material: self.Material, Settled: true})
	return false
}
