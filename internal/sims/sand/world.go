package sand

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"sandsim/internal/core"
)

// World owns the grid, its generators and the engine. A single mutex
// serialises ticks against brush writes; Cells must be read from the goroutine
// that steps the world.
type World struct {
	cfg Config

	mu      sync.Mutex
	grid    *Grid
	engine  *Engine
	display *core.ByteGrid
	rng     *core.RNG

	ticks uint64
	last  TickStats
}

// New returns a sand world with the provided dimensions using defaults.
func New(w, h int) *World {
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	return NewWithConfig(cfg)
}

// NewWithConfig builds a world and runs the initial Reset with the config seed.
func NewWithConfig(cfg Config) *World {
	cfg.normalize()
	grid := NewGrid(cfg.Width, cfg.Height)
	rng := core.NewRNG(cfg.Seed)
	w := &World{
		cfg:     cfg,
		grid:    grid,
		engine:  NewEngine(grid, rng, cfg.Params.Spawn()),
		display: core.NewByteGrid(cfg.Width, cfg.Height),
		rng:     rng,
	}
	w.Reset(0)
	return w
}

// Name returns the simulation identifier.
func (w *World) Name() string { return "sand" }

// Size reports the grid dimensions.
func (w *World) Size() core.Size { return w.grid.Size() }

// Cells exposes the display buffer: one material value per cell, row-major.
func (w *World) Cells() []uint8 { return w.display.Cells() }

// Grid exposes the underlying grid for read access.
func (w *World) Grid() *Grid { return w.grid }

// Engine exposes the tick driver.
func (w *World) Engine() *Engine { return w.engine }

// Config returns the active configuration.
func (w *World) Config() Config {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.cfg
}

// Ticks returns the number of completed ticks since the last Reset.
func (w *World) Ticks() uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.ticks
}

// LastStats returns the statistics of the most recent tick.
func (w *World) LastStats() TickStats {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.last
}

// Reset rebuilds the initial world: empty grid, scattered obstacles in the
// lower part of the grid and one generator per column on the top row. A zero
// seed reuses the configured seed.
func (w *World) Reset(seed int64) {
	w.mu.Lock()
	defer w.mu.Unlock()

	effective := seed
	if effective == 0 {
		effective = w.cfg.Seed
	}
	w.rng.Seed(effective)
	w.grid.Reset()
	w.ticks = 0
	w.last = TickStats{}

	width, height := w.grid.Dimensions()
	p := w.cfg.Params
	start := int(float64(height) * p.ObstacleStart)
	obstacles := 0
	for y := start; y < height; y++ {
		for x := 0; x < width; x++ {
			if w.rng.Chance(p.ObstacleChance) {
				w.grid.set(x, y, Cell{Material: MaterialObstacle})
				obstacles++
			}
		}
	}

	var gens []Generator
	if p.Generators {
		gens = make([]Generator, 0, width)
		for x := 0; x < width; x++ {
			gens = append(gens, NewGenerator(x, 0, w.rng.IntRange(p.InitialDelayMin, p.InitialDelayMax)))
		}
	}
	w.engine.SetGenerators(gens)
	w.engine.SetSpawn(p.Spawn())
	w.rebuildDisplay()

	logrus.WithFields(logrus.Fields{
		"seed":       effective,
		"size":       fmt.Sprintf("%dx%d", width, height),
		"obstacles":  obstacles,
		"generators": len(gens),
	}).Debug("sand world reset")
}

// Step advances the world by one tick.
func (w *World) Step() {
	w.mu.Lock()
	defer w.mu.Unlock()

	stats := w.engine.Tick()
	w.ticks++
	w.last = stats
	w.rebuildDisplay()

	if stats.Spawned > 0 && logrus.IsLevelEnabled(logrus.TraceLevel) {
		logrus.Tracef("tick %d: %d generators fired", w.ticks, stats.Spawned)
	}
	if logrus.IsLevelEnabled(logrus.DebugLevel) {
		logrus.WithFields(logrus.Fields{
			"tick":       w.ticks,
			"spawned":    stats.Spawned,
			"dispatched": stats.Dispatched,
			"moved":      stats.Moved,
		}).Debug("sand tick")
	}
}

// Paint writes a single cell, bypassing the movement rules. It implements the
// brush contract of core.Painter.
func (w *World) Paint(x, y int, value uint8) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.grid.Set(x, y, Cell{Material: Material(value)}); err != nil {
		return fmt.Errorf("paint: %w", err)
	}
	w.display.Set(x, y, value)
	return nil
}

// Clear empties the grid. Generators keep their state.
func (w *World) Clear() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.grid.Reset()
	w.display.Clear()
	logrus.Debug("sand world cleared")
}

// Census counts the cells of each material.
func (w *World) Census() Census {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.grid.Census()
}

// Sources reports each generator's position and its progress toward firing.
func (w *World) Sources() []core.Mark {
	w.mu.Lock()
	defer w.mu.Unlock()

	gens := w.engine.Generators()
	marks := make([]core.Mark, len(gens))
	for i, g := range gens {
		progress := 1.0
		if g.Delay > 0 {
			progress = float64(g.Elapsed) / float64(g.Delay)
		}
		marks[i] = core.Mark{X: g.X, Y: g.Y, Progress: progress}
	}
	return marks
}

// Brushes lists the paintable materials.
func (w *World) Brushes() []core.Brush {
	brushes := make([]core.Brush, 0, materialCount)
	for m := MaterialEmpty; m < materialCount; m++ {
		brushes = append(brushes, core.Brush{Value: uint8(m), Label: brushLabels[m]})
	}
	return brushes
}

var brushLabels = [materialCount]string{
	MaterialEmpty:    "Empty",
	MaterialObstacle: "Brick",
	MaterialGranular: "Sand",
	MaterialLiquid:   "Water",
}

// String renders the grid as text, one line per row.
func (w *World) String() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return Format(w.grid)
}

func init() {
	core.Register("sand", func(cfg map[string]string) core.Sim {
		c := FromMap(cfg)
		return NewWithConfig(c)
	})
}
