package sand

// FillResult captures telemetry from a deterministic run used for tuning the
// spawn parameters.
type FillResult struct {
	// StepsSimulated reports how many ticks ran.
	StepsSimulated int
	// Spawned and Moved total the per-tick statistics.
	Spawned int
	Moved   int
	// PeakMoved is the largest number of moves seen in a single tick.
	PeakMoved int
	// LastMoveStep is the final tick (1-based) in which any cell moved.
	LastMoveStep int
	// Final holds the census after the last tick.
	Final Census
	// Fill is the share of non-obstacle cells holding sand or water at the end.
	Fill float64
}

// GranularShare returns the fraction of mobile cells that are sand.
func (r FillResult) GranularShare() float64 {
	mobile := r.Final.Mobile()
	if mobile == 0 {
		return 0
	}
	return float64(r.Final.Of(MaterialGranular)) / float64(mobile)
}

// MeasureFill builds a world from cfg, runs it for steps ticks and reports how
// quickly it fills.
func MeasureFill(cfg Config, steps int) FillResult {
	if steps <= 0 {
		return FillResult{}
	}
	world := NewWithConfig(cfg)
	var res FillResult
	for step := 1; step <= steps; step++ {
		world.Step()
		stats := world.LastStats()
		res.Spawned += stats.Spawned
		res.Moved += stats.Moved
		if stats.Moved > res.PeakMoved {
			res.PeakMoved = stats.Moved
		}
		if stats.Moved > 0 {
			res.LastMoveStep = step
		}
	}
	res.StepsSimulated = steps
	res.Final = world.Census()
	open := res.Final.Total() - res.Final.Of(MaterialObstacle)
	if open > 0 {
		res.Fill = float64(res.Final.Mobile()) / float64(open)
	}
	return res
}
