package app

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"sandsim/internal/core"
)

// ErrNotPaintable is returned when the simulation has no brush support.
var ErrNotPaintable = errors.New("simulation does not accept brush writes")

// Session holds the host-side state shared by the GUI and terminal front
// ends: play/pause, single stepping and the selected brush. It is not safe for
// concurrent use; hosts drive it from their main loop.
type Session struct {
	sim     core.Sim
	painter core.Painter
	brushes []core.Brush
	brush   int

	paused   bool
	tickOnce bool
	seed     int64
}

// NewSession wraps sim. Brush support is discovered through core.Painter and
// core.BrushProvider.
func NewSession(sim core.Sim, seed int64, paused bool) *Session {
	s := &Session{sim: sim, seed: seed, paused: paused}
	if p, ok := sim.(core.Painter); ok {
		s.painter = p
	}
	if bp, ok := sim.(core.BrushProvider); ok {
		s.brushes = bp.Brushes()
	}
	return s
}

// Sim returns the wrapped simulation.
func (s *Session) Sim() core.Sim { return s.sim }

// Paused reports whether continuous stepping is suspended.
func (s *Session) Paused() bool { return s.paused }

// Seed returns the seed used by the last reset.
func (s *Session) Seed() int64 { return s.seed }

// TogglePause flips between running and paused.
func (s *Session) TogglePause() { s.paused = !s.paused }

// Play resumes continuous stepping.
func (s *Session) Play() { s.paused = false }

// StepOnce requests a single tick on the next Advance, even while paused.
func (s *Session) StepOnce() { s.tickOnce = true }

// Reset reinitializes the simulation with seed.
func (s *Session) Reset(seed int64) {
	s.seed = seed
	s.sim.Reset(seed)
	s.tickOnce = false
	logrus.WithField("seed", seed).Info("simulation reset")
}

// Clear empties the grid if the simulation supports it.
func (s *Session) Clear() {
	if s.painter == nil {
		return
	}
	s.painter.Clear()
}

// Advance steps the simulation when due and not paused, or when a single step
// was requested. It reports whether a tick ran.
func (s *Session) Advance(due bool) bool {
	if (!s.paused && due) || s.tickOnce {
		s.sim.Step()
		s.tickOnce = false
		return true
	}
	return false
}

// Brushes returns the available brushes.
func (s *Session) Brushes() []core.Brush { return s.brushes }

// Brush returns the selected brush.
func (s *Session) Brush() (core.Brush, bool) {
	if len(s.brushes) == 0 {
		return core.Brush{}, false
	}
	return s.brushes[s.brush], true
}

// SelectBrush picks the brush at index i. Out of range indices are ignored.
func (s *Session) SelectBrush(i int) bool {
	if i < 0 || i >= len(s.brushes) {
		return false
	}
	s.brush = i
	return true
}

// CycleBrush advances to the next brush, wrapping around.
func (s *Session) CycleBrush() {
	if len(s.brushes) == 0 {
		return
	}
	s.brush = (s.brush + 1) % len(s.brushes)
}

// PaintAt writes the selected brush at grid coordinates (x, y).
func (s *Session) PaintAt(x, y int) error {
	b, ok := s.Brush()
	if s.painter == nil || !ok {
		return ErrNotPaintable
	}
	if err := s.painter.Paint(x, y, b.Value); err != nil {
		return fmt.Errorf("brush %s: %w", b.Label, err)
	}
	return nil
}

// Status summarises the session for a status line.
func (s *Session) Status() string {
	state := "running"
	if s.paused {
		state = "paused"
	}
	label := "-"
	if b, ok := s.Brush(); ok {
		label = b.Label
	}
	return fmt.Sprintf("%s | %s | brush: %s | seed %d", s.sim.Name(), state, label, s.seed)
}
