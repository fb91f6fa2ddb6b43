package sand

import (
	"strconv"

	"sandsim/internal/core"
)

// Parameters reports the current configuration grouped for display.
func (w *World) Parameters() core.ParameterSnapshot {
	w.mu.Lock()
	defer w.mu.Unlock()

	params := w.cfg.Params
	groups := []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				intParam("w", "Width", w.cfg.Width),
				intParam("h", "Height", w.cfg.Height),
				int64Param("seed", "Seed", w.cfg.Seed),
			},
		},
		{
			Name:    "Generators",
			Summary: "One source per column on the top row.",
			Params: []core.Parameter{
				boolParam("generators", "Generators enabled", params.Generators),
				floatParam("granular_chance", "Sand chance", params.GranularChance),
				intParam("delay_min", "Delay min", params.DelayMin),
				intParam("delay_max", "Delay max", params.DelayMax),
				intParam("initial_delay_min", "Initial delay min", params.InitialDelayMin),
				intParam("initial_delay_max", "Initial delay max", params.InitialDelayMax),
			},
		},
		{
			Name: "Terrain Seeding",
			Params: []core.Parameter{
				floatParam("obstacle_chance", "Brick chance", params.ObstacleChance),
				floatParam("obstacle_start", "Brick start depth", params.ObstacleStart),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

// ParameterControls lists the values adjustable while the world runs.
func (w *World) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "granular_chance", Label: "Sand chance", Type: core.ParamTypeFloat, Step: 0.05, Min: 0, Max: 1, HasMin: true, HasMax: true},
		{Key: "delay_min", Label: "Delay min", Type: core.ParamTypeInt, Step: 1, Min: 0, HasMin: true},
		{Key: "delay_max", Label: "Delay max", Type: core.ParamTypeInt, Step: 1, Min: 0, HasMin: true},
	}
}

// SetIntParameter updates the generator delay range. The range stays ordered:
// raising the minimum above the maximum drags the maximum along and vice versa.
func (w *World) SetIntParameter(key string, value int) bool {
	if value < 0 {
		value = 0
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	p := &w.cfg.Params
	switch key {
	case "delay_min":
		p.DelayMin = value
		if p.DelayMax < value {
			p.DelayMax = value
		}
	case "delay_max":
		p.DelayMax = value
		if p.DelayMin > value {
			p.DelayMin = value
		}
	default:
		return false
	}
	w.engine.SetSpawn(p.Spawn())
	return true
}

// SetFloatParameter updates the granular spawn probability, clamped to [0,1].
func (w *World) SetFloatParameter(key string, value float64) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	switch key {
	case "granular_chance":
		w.cfg.Params.GranularChance = clamp01(value)
	default:
		return false
	}
	w.engine.SetSpawn(w.cfg.Params.Spawn())
	return true
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.FormatInt(value, 10),
	}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: strconv.FormatFloat(value, 'f', -1, 64),
	}
}

func boolParam(key, label string, value bool) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeBool,
		Value: strconv.FormatBool(value),
	}
}
