package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sandsim/internal/core"
	"sandsim/internal/sims/sand"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

var quietWorld = []string{"--set", "w=4", "--set", "h=3", "--set", "generators=false", "--set", "obstacle_chance=0"}

func TestRunDumpsGrid(t *testing.T) {
	args := append([]string{"run", "--ticks", "3", "--dump", "--log", "error"}, quietWorld...)
	out, err := execute(t, args...)
	require.NoError(t, err)
	assert.Equal(t, "ticks=3 empty=12 obstacle=0 granular=0 liquid=0\n....\n....\n....\n", out)
}

func TestRunRejectsNegativeTicks(t *testing.T) {
	_, err := execute(t, "run", "--ticks", "-1", "--log", "error")
	require.Error(t, err)
}

func TestInvalidLogLevel(t *testing.T) {
	_, err := execute(t, "run", "--ticks", "0", "--log", "loud")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log level")
}

func TestUnknownSim(t *testing.T) {
	_, err := execute(t, "run", "--sim", "nope", "--log", "error")
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrUnknownSim), "got %v", err)
	assert.Contains(t, err.Error(), "sand")
}

func TestConfigFileAndOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "world.yaml")
	yaml := "width: 6\nheight: 5\nseed: 9\nparams:\n  granular_chance: 0.4\n  generators: false\n"
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	out, err := execute(t, "params", "--config", path, "--set", "delay_max=30", "--log", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "[World]")
	assert.Contains(t, out, "[Generators]")
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		switch fields[0] {
		case "granular_chance":
			assert.Equal(t, "0.4", fields[1])
		case "delay_max":
			assert.Equal(t, "30", fields[1])
		}
	}
}

func TestConfigFileMissing(t *testing.T) {
	_, err := execute(t, "run", "--config", filepath.Join(t.TempDir(), "absent.yaml"), "--log", "error")
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist), "got %v", err)
}

func TestSweepRanksCandidates(t *testing.T) {
	args := append([]string{"sweep", "--steps", "30", "--workers", "2", "--granular", "0.2",
		"--delays", "1,2,8,12", "--log", "error"}, "--set", "w=8", "--set", "h=8")
	out, err := execute(t, args...)
	require.NoError(t, err)
	assert.Contains(t, out, "Top 2 of 2 results:")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[1], "delay=1..2", "the faster generators fill more")
}

func TestSpawnSets(t *testing.T) {
	sets, err := spawnSets([]float64{0.1, 0.5}, []int{1, 2, 3, 4})
	require.NoError(t, err)
	assert.Len(t, sets, 4)
	assert.Equal(t, spawnSet{granular: 0.5, delayMin: 3, delayMax: 4}, sets[3])

	_, err = spawnSets([]float64{0.1}, []int{1, 2, 3})
	assert.Error(t, err)
	_, err = spawnSets([]float64{0.1}, []int{5, 2})
	assert.Error(t, err)
}

func TestRunSweepKeepsOrderOnTies(t *testing.T) {
	cfg := sand.DefaultConfig()
	cfg.Width = 4
	cfg.Height = 4
	cfg.Params.Generators = false
	sets := []spawnSet{{granular: 0.1, delayMin: 1, delayMax: 1}, {granular: 0.9, delayMin: 1, delayMax: 1}}

	results := runSweep(cfg, sets, 5, 3)
	require.Len(t, results, 2)
	assert.Equal(t, sets[0], results[0].params)
	assert.Equal(t, sets[1], results[1].params)
}
