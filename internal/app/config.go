package app

import "github.com/spf13/pflag"

// Config represents the command-line parameters shared by the hosts.
type Config struct {
	Sim        string
	Scale      int
	TPS        int
	Seed       int64
	Paused     bool
	ConfigFile string
	Overrides  map[string]string
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{Sim: "sand", Scale: 6, TPS: 24, Seed: 1, Overrides: map[string]string{}}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *pflag.FlagSet) {
	fs.StringVar(&c.Sim, "sim", c.Sim, "simulation to run")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for simulation reset")
	fs.BoolVar(&c.Paused, "paused", c.Paused, "start with the simulation paused")
	fs.StringVar(&c.ConfigFile, "config", c.ConfigFile, "YAML file with world settings")
	fs.StringToStringVar(&c.Overrides, "set", c.Overrides, "parameter override in key=value form (repeatable)")
}
