package sand

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeasureFillDeterministic(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width = 32
	cfg.Height = 20

	a := MeasureFill(cfg, 150)
	b := MeasureFill(cfg, 150)
	assert.Equal(t, a, b)

	require.Equal(t, 150, a.StepsSimulated)
	assert.Equal(t, 32*20, a.Final.Total())
	assert.LessOrEqual(t, a.Final.Mobile(), a.Spawned, "spawns may overwrite, never create extra cells")
	assert.Greater(t, a.Fill, 0.0)
	assert.LessOrEqual(t, a.Fill, 1.0)
	assert.Positive(t, a.PeakMoved)
	assert.InDelta(t, cfg.Params.GranularChance, a.GranularShare(), 0.15)
}

func TestMeasureFillWithoutGenerators(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width = 16
	cfg.Height = 16
	cfg.Params.Generators = false

	res := MeasureFill(cfg, 40)
	assert.Zero(t, res.Spawned)
	assert.Zero(t, res.Moved)
	assert.Zero(t, res.LastMoveStep)
	assert.Zero(t, res.Fill)
	assert.Zero(t, res.GranularShare())

	assert.Equal(t, FillResult{}, MeasureFill(cfg, 0))
}
