package sand

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sandsim/internal/core"
)

func newTestEngine(rows ...string) (*Grid, *Engine) {
	g := Parse(rows...)
	return g, NewEngine(g, core.NewRNG(1), DefaultConfig().Params.Spawn())
}

func expectGrid(t *testing.T, g *Grid, rows ...string) {
	t.Helper()
	want := strings.Join(rows, "\n") + "\n"
	require.Equal(t, want, Format(g))
}

func TestGranularFallsIntoEmpty(t *testing.T) {
	g, e := newTestEngine(
		".o.",
		"...",
		"...",
	)
	stats := e.Tick()
	expectGrid(t, g,
		"...",
		".o.",
		"...",
	)
	assert.Equal(t, 1, stats.Dispatched, "a falling cell must not be dispatched again in the row below")
	assert.Equal(t, 1, stats.Moved)
}

func TestGranularSlidesLeftBeforeRight(t *testing.T) {
	g, e := newTestEngine(
		".o.",
		".#.",
	)
	e.Tick()
	expectGrid(t, g,
		"...",
		"o#.",
	)

	g, e = newTestEngine(
		".o.",
		"##.",
	)
	e.Tick()
	expectGrid(t, g,
		"...",
		"##o",
	)
}

func TestGranularStaysWhenSupported(t *testing.T) {
	g, e := newTestEngine(
		".o.",
		"###",
	)
	stats := e.Tick()
	expectGrid(t, g,
		".o.",
		"###",
	)
	assert.Zero(t, stats.Moved)
}

func TestGranularDisplacesLiquidDiagonally(t *testing.T) {
	g, e := newTestEngine(
		"#o#",
		"~#.",
	)
	e.Tick()
	expectGrid(t, g,
		"#~#",
		"o#.",
	)
}

func TestGranularSinksThroughLiquidColumn(t *testing.T) {
	g, e := newTestEngine("o", "~", "~", "~", "~")
	for tick := 1; tick <= 4; tick++ {
		e.Tick()
		want := []string{"~", "~", "~", "~", "~"}
		want[tick] = "o"
		expectGrid(t, g, want...)
	}

	e.Tick()
	expectGrid(t, g, "~", "~", "~", "~", "o")
}

func TestLiquidDoesNotDisplaceGranular(t *testing.T) {
	g, e := newTestEngine("~", "o")
	stats := e.Tick()
	expectGrid(t, g, "~", "o")
	assert.Zero(t, stats.Moved)
	assert.Equal(t, 2, stats.Dispatched)
}

func TestLiquidDoesNotMergeWithLiquid(t *testing.T) {
	g, e := newTestEngine(
		"#~#",
		"#~#",
	)
	stats := e.Tick()
	expectGrid(t, g,
		"#~#",
		"#~#",
	)
	assert.Zero(t, stats.Moved)
}

func TestLiquidFallsThenSpreadsLeft(t *testing.T) {
	g, e := newTestEngine(
		".~.",
		"...",
		"...",
	)
	e.Tick()
	expectGrid(t, g,
		"...",
		".~.",
		"...",
	)
	e.Tick()
	expectGrid(t, g,
		"...",
		"...",
		".~.",
	)
	e.Tick()
	expectGrid(t, g,
		"...",
		"...",
		"~..",
	)
}

func TestLiquidPriorityOrder(t *testing.T) {
	cases := []struct {
		name string
		in   []string
		out  []string
	}{
		{"diagonal left", []string{".~.", ".#."}, []string{"...", "~#."}},
		{"diagonal right", []string{".~.", "##."}, []string{"...", "##~"}},
		{"left", []string{".~.", "###"}, []string{"~..", "###"}},
		{"right", []string{"#~.", "###"}, []string{"#.~", "###"}},
		{"blocked", []string{"#~#", "###"}, []string{"#~#", "###"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g, e := newTestEngine(tc.in...)
			e.Tick()
			expectGrid(t, g, tc.out...)
		})
	}
}

func TestLiquidMovedRightIsNotRevisited(t *testing.T) {
	g, e := newTestEngine(
		"~...",
		"####",
	)
	stats := e.Tick()
	expectGrid(t, g,
		".~..",
		"####",
	)
	assert.Equal(t, 1, stats.Dispatched)
}

func TestObstacleAndEmptyNeverDispatched(t *testing.T) {
	_, e := newTestEngine(
		"#.#",
		".#.",
	)
	calls := 0
	e.onDispatch = func(int, int) { calls++ }
	stats := e.Tick()
	assert.Zero(t, calls)
	assert.Zero(t, stats.Dispatched)
}

func TestBoundaryCellsStayInGrid(t *testing.T) {
	grids := [][]string{
		{"o", "o"},
		{"~", "~"},
		{"o.", "#."},
		{"~#", "##"},
		{"o~o~", "~o~o"},
	}
	for _, rows := range grids {
		g, e := newTestEngine(rows...)
		before := g.Census()
		require.NotPanics(t, func() {
			for i := 0; i < 8; i++ {
				e.Tick()
			}
		}, "rows %v", rows)
		assert.Equal(t, before, g.Census(), "rows %v", rows)
	}
}

func randomGrid(seed int64, w, h int) *Grid {
	rng := core.NewRNG(seed)
	g := NewGrid(w, h)
	for i := range g.cells {
		g.cells[i] = Cell{Material: Material(rng.IntRange(0, int(materialCount)-1))}
	}
	return g
}

func TestTickInvariants(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		g := randomGrid(seed, 17, 13)
		e := NewEngine(g, core.NewRNG(seed), Spawn{GranularChance: 0.2, DelayMin: 1, DelayMax: 4})
		gens := make([]Generator, 0, 17)
		for x := 0; x < 17; x++ {
			gens = append(gens, NewGenerator(x, 0, x%5))
		}
		e.SetGenerators(gens)

		for tick := 0; tick < 40; tick++ {
			for i, c := range g.cells {
				require.False(t, c.Settled, "seed %d tick %d: cell %d settled before tick", seed, tick, i)
			}

			before := g.Census()
			counts := map[[2]int]int{}
			e.onDispatch = func(x, y int) { counts[[2]int{x, y}]++ }

			stats := e.Tick()
			after := g.Census()

			for pos, n := range counts {
				require.Equal(t, 1, n, "seed %d tick %d: position %v dispatched %d times", seed, tick, pos, n)
			}
			require.LessOrEqual(t, stats.Dispatched, after.Mobile(),
				"seed %d tick %d: more dispatches than mobile cells", seed, tick)
			require.Equal(t, stats.Dispatched, len(counts))

			if stats.Spawned == 0 {
				require.Equal(t, before, after, "seed %d tick %d: census changed without a generator firing", seed, tick)
			}
			require.GreaterOrEqual(t, before.Of(MaterialObstacle), after.Of(MaterialObstacle),
				"obstacles can only be overwritten by generators")
		}
		for i, c := range g.cells {
			require.False(t, c.Settled, "seed %d: cell %d left settled", seed, i)
		}
	}
}
