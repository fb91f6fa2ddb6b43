package ui

import (
	"math"
	"strconv"

	"sandsim/internal/core"
)

// controlState tracks the displayed value of one adjustable parameter.
type controlState struct {
	control core.ParameterControl
	value   string

	number   float64
	hasValue bool
}

// refresh loads the control value from a parameter snapshot.
func (s *controlState) refresh(snap core.ParameterSnapshot) {
	s.hasValue = false
	s.value = "--"
	param, ok := snap.Lookup(s.control.Key)
	if !ok {
		return
	}
	switch s.control.Type {
	case core.ParamTypeInt:
		parsed, err := strconv.Atoi(param.Value)
		if err != nil {
			return
		}
		s.number = float64(parsed)
	case core.ParamTypeFloat:
		parsed, err := strconv.ParseFloat(param.Value, 64)
		if err != nil {
			return
		}
		s.number = parsed
	default:
		return
	}
	s.hasValue = true
	s.value = formatValue(s.control, s.number)
}

// target computes the value one step in direction dir (-1 or +1). ok is false
// when the step would not change the value.
func (s *controlState) target(dir int) (float64, bool) {
	if !s.hasValue || dir == 0 {
		return s.number, false
	}
	step := s.control.Step
	if s.control.Type == core.ParamTypeInt {
		step = math.Round(step)
		if step <= 0 {
			step = 1
		}
	} else if step <= 0 {
		step = 0.05
	}
	next := s.control.Clamp(s.number + float64(dir)*step)
	if math.Abs(next-s.number) < 1e-9 {
		return s.number, false
	}
	return next, true
}

// apply pushes a new value through whichever setter matches the control type.
func (s *controlState) apply(v float64, ints core.IntParameterSetter, floats core.FloatParameterSetter) bool {
	switch s.control.Type {
	case core.ParamTypeInt:
		if ints == nil || !ints.SetIntParameter(s.control.Key, int(math.Round(v))) {
			return false
		}
	case core.ParamTypeFloat:
		if floats == nil || !floats.SetFloatParameter(s.control.Key, v) {
			return false
		}
	default:
		return false
	}
	s.number = v
	s.value = formatValue(s.control, v)
	return true
}

func formatValue(ctrl core.ParameterControl, v float64) string {
	if ctrl.Type == core.ParamTypeInt {
		return strconv.Itoa(int(math.Round(v)))
	}
	step := ctrl.Step
	if step <= 0 {
		step = 0.05
	}
	precision := 1
	switch {
	case step < 0.001:
		precision = 4
	case step < 0.01:
		precision = 3
	case step < 0.1:
		precision = 2
	}
	return strconv.FormatFloat(v, 'f', precision, 64)
}
