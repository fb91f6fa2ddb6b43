package sand

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Params holds the tunables for spawning and world setup.
type Params struct {
	GranularChance  float64 `yaml:"granular_chance"`
	DelayMin        int     `yaml:"delay_min"`
	DelayMax        int     `yaml:"delay_max"`
	InitialDelayMin int     `yaml:"initial_delay_min"`
	InitialDelayMax int     `yaml:"initial_delay_max"`
	Generators      bool    `yaml:"generators"`

	ObstacleChance float64 `yaml:"obstacle_chance"`
	ObstacleStart  float64 `yaml:"obstacle_start"`
}

// Config controls the sand world dimensions and parameters.
type Config struct {
	Width  int   `yaml:"width"`
	Height int   `yaml:"height"`
	Seed   int64 `yaml:"seed"`

	Params Params `yaml:"params"`
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Width:  128,
		Height: 72,
		Seed:   1,
		Params: Params{
			GranularChance:  0.2,
			DelayMin:        5,
			DelayMax:        10,
			InitialDelayMin: 6,
			InitialDelayMax: 10,
			Generators:      true,
			ObstacleChance:  0.2,
			ObstacleStart:   0.25,
		},
	}
}

// Spawn returns the generator settings derived from the params.
func (p Params) Spawn() Spawn {
	return Spawn{GranularChance: p.GranularChance, DelayMin: p.DelayMin, DelayMax: p.DelayMax}
}

// normalize clamps values into usable ranges.
func (c *Config) normalize() {
	d := DefaultConfig()
	if c.Width <= 0 {
		c.Width = d.Width
	}
	if c.Height <= 0 {
		c.Height = d.Height
	}
	p := &c.Params
	p.GranularChance = clamp01(p.GranularChance)
	p.ObstacleChance = clamp01(p.ObstacleChance)
	p.ObstacleStart = clamp01(p.ObstacleStart)
	if p.DelayMin < 0 {
		p.DelayMin = 0
	}
	if p.DelayMax < p.DelayMin {
		p.DelayMax = p.DelayMin
	}
	if p.InitialDelayMin < 0 {
		p.InitialDelayMin = 0
	}
	if p.InitialDelayMax < p.InitialDelayMin {
		p.InitialDelayMax = p.InitialDelayMin
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
// Unparseable values are ignored.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	c.applyMap(cfg)
	return c
}

func (c *Config) applyMap(cfg map[string]string) {
	if cfg == nil {
		return
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["granular_chance"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.Params.GranularChance = parsed
		}
	}
	if v, ok := cfg["delay_min"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Params.DelayMin = parsed
		}
	}
	if v, ok := cfg["delay_max"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Params.DelayMax = parsed
		}
	}
	if v, ok := cfg["initial_delay_min"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Params.InitialDelayMin = parsed
		}
	}
	if v, ok := cfg["initial_delay_max"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Params.InitialDelayMax = parsed
		}
	}
	if v, ok := cfg["generators"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.Params.Generators = parsed
		}
	}
	if v, ok := cfg["obstacle_chance"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.Params.ObstacleChance = parsed
		}
	}
	if v, ok := cfg["obstacle_start"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.Params.ObstacleStart = parsed
		}
	}
	c.normalize()
}

// LoadConfig reads a YAML config file on top of the defaults. Unknown keys are
// rejected so typos surface as errors.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes YAML config data on top of the defaults.
func ParseConfig(data []byte) (Config, error) {
	c := DefaultConfig()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	c.normalize()
	return c, nil
}

// Apply layers flag-style overrides onto c. Keys that are not recognised are
// returned so callers can report them.
func (c Config) Apply(overrides map[string]string) (Config, []string) {
	c.applyMap(overrides)
	var unknown []string
	for k := range overrides {
		if _, ok := knownKeys[k]; !ok {
			unknown = append(unknown, k)
		}
	}
	sort.Strings(unknown)
	return c, unknown
}

var knownKeys = map[string]struct{}{
	"w": {}, "h": {}, "seed": {},
	"granular_chance": {}, "delay_min": {}, "delay_max": {},
	"initial_delay_min": {}, "initial_delay_max": {}, "generators": {},
	"obstacle_chance": {}, "obstacle_start": {},
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
