package cli

import (
	"fmt"
	"io"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"sandsim/internal/sims/sand"
)

type spawnSet struct {
	granular float64
	delayMin int
	delayMax int
}

func (s spawnSet) String() string {
	return fmt.Sprintf("granular=%.2f delay=%d..%d", s.granular, s.delayMin, s.delayMax)
}

type sweepResult struct {
	params spawnSet
	fill   sand.FillResult
}

type sweepOptions struct {
	steps    int
	workers  int
	top      int
	granular []float64
	delays   []int
}

func newSweepCmd(opts *options) *cobra.Command {
	so := sweepOptions{}
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Evaluate spawn settings in parallel and rank them by how full the grid gets",
		RunE: func(cmd *cobra.Command, args []string) error {
			sim, err := buildSim(cmd, opts)
			if err != nil {
				return err
			}
			world, ok := sim.(*sand.World)
			if !ok {
				return fmt.Errorf("sweep only supports the sand sim, got %s", sim.Name())
			}
			sets, err := spawnSets(so.granular, so.delays)
			if err != nil {
				return err
			}
			results := runSweep(world.Config(), sets, so.steps, so.workers)
			printSweep(cmd.OutOrStdout(), results, so.top)
			return nil
		},
	}
	cmd.Flags().IntVar(&so.steps, "steps", 400, "Ticks to simulate per candidate")
	cmd.Flags().IntVar(&so.workers, "workers", runtime.NumCPU(), "Parallel candidate evaluations")
	cmd.Flags().IntVar(&so.top, "top", 5, "Number of results to print")
	cmd.Flags().Float64SliceVar(&so.granular, "granular", []float64{0.1, 0.2, 0.35, 0.5}, "Comma-separated sand chances to try")
	cmd.Flags().IntSliceVar(&so.delays, "delays", []int{2, 4, 5, 10, 10, 20}, "Comma-separated min,max delay pairs to try")
	return cmd
}

// spawnSets builds the cross product of sand chances and delay ranges. delays
// holds min,max pairs.
func spawnSets(granular []float64, delays []int) ([]spawnSet, error) {
	if len(delays)%2 != 0 {
		return nil, fmt.Errorf("--delays needs min,max pairs, got %d values", len(delays))
	}
	var sets []spawnSet
	for _, g := range granular {
		for i := 0; i < len(delays); i += 2 {
			lo, hi := delays[i], delays[i+1]
			if lo < 0 || hi < lo {
				return nil, fmt.Errorf("invalid delay range %d..%d", lo, hi)
			}
			sets = append(sets, spawnSet{granular: g, delayMin: lo, delayMax: hi})
		}
	}
	return sets, nil
}

// runSweep evaluates every set on its own world and returns the results
// ordered by fill, fullest first. Ties keep the input order.
func runSweep(base sand.Config, sets []spawnSet, steps, workers int) []sweepResult {
	if workers <= 0 {
		workers = 1
	}
	logrus.Infof("sweeping %d parameter sets (%d workers, %d steps)", len(sets), workers, steps)

	type job struct {
		idx    int
		params spawnSet
	}
	jobs := make(chan job)
	results := make([]sweepResult, len(sets))
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				cfg := base
				cfg.Params.GranularChance = j.params.granular
				cfg.Params.DelayMin = j.params.delayMin
				cfg.Params.DelayMax = j.params.delayMax
				results[j.idx] = sweepResult{params: j.params, fill: sand.MeasureFill(cfg, steps)}
			}
		}()
	}

	start := time.Now()
	for i, params := range sets {
		jobs <- job{idx: i, params: params}
	}
	close(jobs)
	wg.Wait()
	logrus.Debugf("sweep finished in %s", time.Since(start).Round(time.Millisecond))

	sort.SliceStable(results, func(i, j int) bool { return results[i].fill.Fill > results[j].fill.Fill })
	return results
}

func printSweep(w io.Writer, results []sweepResult, top int) {
	if top <= 0 || top > len(results) {
		top = len(results)
	}
	fmt.Fprintf(w, "Top %d of %d results:\n", top, len(results))
	for i := 0; i < top; i++ {
		res := results[i]
		fmt.Fprintf(w, "%2d) fill=%.3f sand=%.2f spawned=%d moved=%d peak=%d lastMove=%d %s\n",
			i+1, res.fill.Fill, res.fill.GranularShare(), res.fill.Spawned, res.fill.Moved,
			res.fill.PeakMoved, res.fill.LastMoveStep, res.params)
	}
}
