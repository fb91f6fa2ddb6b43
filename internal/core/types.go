package core

import (
	"errors"
	"fmt"
	"image/color"
	"sort"
)

// ErrUnknownSim is returned when a simulation name has no registered factory.
var ErrUnknownSim = errors.New("unknown sim")

// Size describes the dimensions of a simulation grid.
type Size struct {
	W int
	H int
}

// Sim defines the minimal contract a simulation must implement.
type Sim interface {
	Name() string
	Size() Size
	Reset(seed int64)
	Step()
	Cells() []uint8
}

// Painter is implemented by sims that accept direct single-cell writes from a
// brush tool. Writes bypass the simulation rules.
type Painter interface {
	Paint(x, y int, value uint8) error
	Clear()
}

// Brush names a cell value a host may paint with.
type Brush struct {
	Value uint8
	Label string
}

// BrushProvider lists the values a Painter accepts, in presentation order.
type BrushProvider interface {
	Brushes() []Brush
}

// PaletteProvider maps cell values to colors for rendering.
type PaletteProvider interface {
	Palette() []color.RGBA
}

// GlyphProvider maps cell values to runes for text hosts.
type GlyphProvider interface {
	Glyphs() []rune
}

// Mark locates a periodic source on the grid. Progress runs from 0 right after
// firing to 1 when the source is about to fire.
type Mark struct {
	X, Y     int
	Progress float64
}

// SourceProvider is implemented by sims with periodic sources.
type SourceProvider interface {
	Sources() []Mark
}

// Factory constructs a Sim using an optional configuration map.
type Factory func(cfg map[string]string) Sim

var sims = map[string]Factory{}

// Register adds a simulation factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	sims[name] = f
}

// Sims exposes the registry of available simulation factories.
func Sims() map[string]Factory {
	return sims
}

// Names returns the registered simulation names in sorted order.
func Names() []string {
	names := make([]string, 0, len(sims))
	for name := range sims {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New builds the named simulation with the given overrides.
func New(name string, cfg map[string]string) (Sim, error) {
	factory, ok := sims[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownSim, name)
	}
	return factory(cfg), nil
}
