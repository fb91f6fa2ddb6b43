package sand

import (
	"errors"
	"slices"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sandsim/internal/core"
)

func TestResetDeterministic(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width = 32
	cfg.Height = 24
	cfg.Seed = 99

	world := NewWithConfig(cfg)
	initial := slices.Clone(world.Cells())
	initialGens := slices.Clone(world.Engine().Generators())

	// Mutate state to ensure Reset rebuilds from scratch.
	require.NoError(t, world.Paint(0, 0, uint8(MaterialGranular)))
	for i := 0; i < 5; i++ {
		world.Step()
	}

	world.Reset(0)
	assert.Equal(t, initial, world.Cells(), "Reset with config seed not deterministic")
	assert.Equal(t, initialGens, world.Engine().Generators())
	assert.Zero(t, world.Ticks())

	world.Reset(777)
	seeded := slices.Clone(world.Cells())
	world.Reset(777)
	assert.Equal(t, seeded, world.Cells(), "Reset with explicit seed not deterministic")
	assert.NotEqual(t, initial, seeded, "different seeds should produce different obstacle layouts")
}

func TestResetLayout(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width = 40
	cfg.Height = 20
	cfg.Params.ObstacleChance = 0.5
	cfg.Params.ObstacleStart = 0.25

	world := NewWithConfig(cfg)
	g := world.Grid()
	for y := 0; y < 5; y++ {
		for x := 0; x < 40; x++ {
			c, err := g.At(x, y)
			require.NoError(t, err)
			require.Equal(t, MaterialEmpty, c.Material, "obstacle above start row at (%d,%d)", x, y)
		}
	}
	assert.Positive(t, g.Census().Of(MaterialObstacle))
	assert.Zero(t, g.Census().Mobile())

	gens := world.Engine().Generators()
	require.Len(t, gens, 40)
	for x, gen := range gens {
		assert.Equal(t, x, gen.X)
		assert.Zero(t, gen.Y)
		assert.GreaterOrEqual(t, gen.Delay, cfg.Params.InitialDelayMin)
		assert.LessOrEqual(t, gen.Delay, cfg.Params.InitialDelayMax)
	}
}

func TestGeneratorsDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Params.Generators = false
	world := NewWithConfig(cfg)
	assert.Empty(t, world.Engine().Generators())

	for i := 0; i < 30; i++ {
		world.Step()
	}
	assert.Zero(t, world.Census().Mobile())
}

func TestStepConservesMobileCellsWithoutSpawns(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width = 24
	cfg.Height = 16
	world := NewWithConfig(cfg)

	for tick := 0; tick < 120; tick++ {
		before := world.Census()
		world.Step()
		after := world.Census()
		if world.LastStats().Spawned == 0 {
			require.Equal(t, before, after, "tick %d", tick)
		}
	}
	assert.Positive(t, world.Census().Mobile(), "generators should have added material")
	assert.EqualValues(t, 120, world.Ticks())
}

func TestPaintContract(t *testing.T) {
	world := New(8, 6)

	require.NoError(t, world.Paint(2, 3, uint8(MaterialObstacle)))
	c, err := world.Grid().At(2, 3)
	require.NoError(t, err)
	assert.Equal(t, MaterialObstacle, c.Material)
	assert.Equal(t, uint8(MaterialObstacle), world.Cells()[3*8+2], "display must follow brush writes")

	err = world.Paint(8, 0, uint8(MaterialLiquid))
	assert.True(t, errors.Is(err, ErrOutOfBounds), "got %v", err)

	err = world.Paint(0, 0, 42)
	assert.True(t, errors.Is(err, ErrInvalidMaterial), "got %v", err)
}

func TestClearEmptiesGrid(t *testing.T) {
	world := New(8, 6)
	require.NoError(t, world.Paint(1, 1, uint8(MaterialLiquid)))
	gens := slices.Clone(world.Engine().Generators())

	world.Clear()
	census := world.Census()
	assert.Equal(t, 48, census.Of(MaterialEmpty))
	for _, v := range world.Cells() {
		require.Zero(t, v)
	}
	assert.Equal(t, gens, world.Engine().Generators(), "clear leaves generators alone")
}

func TestWorldString(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width = 3
	cfg.Height = 2
	cfg.Params.Generators = false
	cfg.Params.ObstacleChance = 0
	world := NewWithConfig(cfg)
	require.NoError(t, world.Paint(1, 0, uint8(MaterialGranular)))
	world.Step()
	assert.Equal(t, "...\n.o.\n", world.String())
}

func TestParameterSetters(t *testing.T) {
	world := New(8, 8)

	assert.True(t, world.SetFloatParameter("granular_chance", 1.5))
	assert.Equal(t, 1.0, world.Engine().Spawn().GranularChance)
	assert.False(t, world.SetFloatParameter("nope", 1))

	assert.True(t, world.SetIntParameter("delay_min", 12))
	spawn := world.Engine().Spawn()
	assert.Equal(t, 12, spawn.DelayMin)
	assert.Equal(t, 12, spawn.DelayMax, "max follows min upwards")

	assert.True(t, world.SetIntParameter("delay_max", 3))
	spawn = world.Engine().Spawn()
	assert.Equal(t, 3, spawn.DelayMin, "min follows max downwards")
	assert.Equal(t, 3, spawn.DelayMax)
	assert.False(t, world.SetIntParameter("w", 3))

	snap := world.Parameters()
	p, ok := snap.Lookup("delay_max")
	require.True(t, ok)
	assert.Equal(t, "3", p.Value)
	p, ok = snap.Lookup("granular_chance")
	require.True(t, ok)
	assert.Equal(t, "1", p.Value)

	for _, ctrl := range world.ParameterControls() {
		_, ok := snap.Lookup(ctrl.Key)
		assert.True(t, ok, "control %q missing from snapshot", ctrl.Key)
	}
}

func TestRegisteredFactory(t *testing.T) {
	sim, err := core.New("sand", map[string]string{"w": "10", "h": "7", "generators": "false"})
	require.NoError(t, err)
	assert.Equal(t, "sand", sim.Name())
	assert.Equal(t, core.Size{W: 10, H: 7}, sim.Size())
	assert.Len(t, sim.Cells(), 70)

	_, ok := sim.(core.Painter)
	assert.True(t, ok)
	provider, ok := sim.(core.BrushProvider)
	require.True(t, ok)
	labels := []string{}
	for _, b := range provider.Brushes() {
		labels = append(labels, b.Label)
	}
	assert.Equal(t, []string{"Empty", "Brick", "Sand", "Water"}, labels)
	palette, ok := sim.(core.PaletteProvider)
	require.True(t, ok)
	assert.Len(t, palette.Palette(), 4)
}

func TestSourcesTrackGenerators(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width = 5
	cfg.Height = 5
	cfg.Params.InitialDelayMin = 4
	cfg.Params.InitialDelayMax = 4
	world := NewWithConfig(cfg)

	marks := world.Sources()
	require.Len(t, marks, 5)
	for x, m := range marks {
		assert.Equal(t, x, m.X)
		assert.Zero(t, m.Progress)
	}

	world.Step()
	world.Step()
	for _, m := range world.Sources() {
		assert.InDelta(t, 0.5, m.Progress, 1e-9)
	}
}

func TestConfigReadsAreSerialisedWithSetters(t *testing.T) {
	world := New(8, 8)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			world.SetIntParameter("delay_min", i%20)
			world.SetFloatParameter("granular_chance", float64(i%10)/10)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			p := world.Config().Params
			require.LessOrEqual(t, p.DelayMin, p.DelayMax)
		}
	}()
	wg.Wait()

	assert.Equal(t, 19, world.Config().Params.DelayMin)
}
