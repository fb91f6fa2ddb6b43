package sand

import "sandsim/internal/core"

// TickStats summarises one engine tick.
type TickStats struct {
	Spawned    int
	Dispatched int
	Moved      int
}

// Engine advances a grid one tick at a time: generators first, then a single
// top-to-bottom, left-to-right scan, then the settled flags are cleared.
type Engine struct {
	grid       *Grid
	generators []Generator
	rng        *core.RNG
	spawn      Spawn

	// onDispatch, when set, observes every rule invocation.
	onDispatch func(x, y int)
}

// NewEngine binds an engine to grid. Generators may be attached later.
func NewEngine(grid *Grid, rng *core.RNG, spawn Spawn) *Engine {
	if rng == nil {
		rng = core.NewRNG(0)
	}
	return &Engine{grid: grid, rng: rng, spawn: spawn}
}

// Grid returns the grid the engine mutates.
func (e *Engine) Grid() *Grid { return e.grid }

// SetGenerators replaces the generator set.
func (e *Engine) SetGenerators(gens []Generator) {
	e.generators = append(e.generators[:0], gens...)
}

// Generators exposes the live generator state.
func (e *Engine) Generators() []Generator { return e.generators }

// Spawn returns the current spawn settings.
func (e *Engine) Spawn() Spawn { return e.spawn }

// SetSpawn changes the spawn settings used from the next generator firing on.
func (e *Engine) SetSpawn(s Spawn) { e.spawn = s }

// Tick performs one full simulation step.
func (e *Engine) Tick() TickStats {
	var stats TickStats
	g := e.grid

	for i := range e.generators {
		gen := &e.generators[i]
		c, ok := gen.Tick(e.rng, e.spawn)
		if !ok || !g.InBounds(gen.X, gen.Y) {
			continue
		}
		g.set(gen.X, gen.Y, c)
		stats.Spawned++
	}

	for y := 0; y < g.h; y++ {
		for x := 0; x < g.w; x++ {
			c := g.at(x, y)
			if c.Settled {
				continue
			}
			var r rule
			switch c.Material {
			case MaterialGranular:
				r = granularRule
			case MaterialLiquid:
				r = liquidRule
			default:
				continue
			}
			if e.onDispatch != nil {
				e.onDispatch(x, y)
			}
			stats.Dispatched++
			if r.apply(g, x, y) {
				stats.Moved++
			}
		}
	}

	g.clearSettled()
	return stats
}
