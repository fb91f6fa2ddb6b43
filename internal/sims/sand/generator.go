package sand

import "sandsim/internal/core"

// Spawn controls what generators emit and how long they wait between cells.
type Spawn struct {
	GranularChance float64
	DelayMin       int
	DelayMax       int
}

// Generator periodically drops a fresh cell at a fixed coordinate.
type Generator struct {
	X, Y    int
	Delay   int
	Elapsed int
}

// NewGenerator returns a generator at (x, y) that fires after delay ticks.
func NewGenerator(x, y, delay int) Generator {
	return Generator{X: x, Y: y, Delay: delay}
}

// Tick advances the generator by one tick. When the delay is reached it
// returns a new cell, resets the counter and draws the next delay. The cell
// is meant to overwrite whatever occupies the spawn point.
func (g *Generator) Tick(rng *core.RNG, s Spawn) (Cell, bool) {
	g.Elapsed++
	if g.Elapsed < g.Delay {
		return Cell{}, false
	}
	g.Elapsed = 0
	g.Delay = rng.IntRange(s.DelayMin, s.DelayMax)
	if rng.Chance(s.GranularChance) {
		return Cell{Material: MaterialGranular}, true
	}
	return Cell{Material: MaterialLiquid}, true
}
