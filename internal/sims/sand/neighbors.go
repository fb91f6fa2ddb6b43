package sand

// Slot is one position of a Neighborhood. A slot outside the grid carries no
// cell at all, so no material predicate can match it.
type Slot struct {
	cell Cell
	ok   bool
}

// Cell returns the slot contents and whether the position exists.
func (s Slot) Cell() (Cell, bool) { return s.cell, s.ok }

// Neighborhood is a read-only 3x3 window indexed [dy+1][dx+1].
type Neighborhood [3][3]Slot

// Neighbors captures the window centred on (x, y). It never mutates g.
func Neighbors(g *Grid, x, y int) Neighborhood {
	var n Neighborhood
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			nx, ny := x+dx, y+dy
			if !g.InBounds(nx, ny) {
				continue
			}
			n[dy+1][dx+1] = Slot{cell: g.at(nx, ny), ok: true}
		}
	}
	return n
}

// At returns the slot at offset (dx, dy); offsets outside [-1,1] report absent.
func (n *Neighborhood) At(dx, dy int) Slot {
	if dx < -1 || dx > 1 || dy < -1 || dy > 1 {
		return Slot{}
	}
	return n[dy+1][dx+1]
}

// Open reports whether the neighbor at (dx, dy) exists, has not been settled
// this tick and holds one of the accepted materials.
func (n *Neighborhood) Open(dx, dy int, accept ...Material) bool {
	c, ok := n.At(dx, dy).Cell()
	if !ok || c.Settled {
		return false
	}
	for _, m := range accept {
		if c.Material == m {
			return true
		}
	}
	return false
}
