// Package waveform evaluates the instantaneous value of a source at a
// given time. Evaluation is pure: it depends only on the waveform's own
// parameters, the query time, and (for PULSE) the current step size — it
// never reads or writes component history.
package waveform

import (
	"fmt"
	"math"
)

// Kind selects which waveform formula Eval applies.
type Kind int

const (
	DC Kind = iota
	SIN
	PULSE
)

// Waveform is the closed parameter union a V or I source carries. Only the
// fields relevant to Kind are meaningful.
type Waveform struct {
	Kind Kind

	// DC
	Level float64

	// SIN
	Offset    float64
	Amplitude float64
	Freq      float64
	Delay     float64
	Damping   float64
	PhaseDeg  float64
	Cycles    float64

	// PULSE
	V1     float64
	V2     float64
	TRise  float64
	TFall  float64
	TOn    float64
	Period float64
	// Delay, Cycles shared with SIN fields above.
}

// Eval returns the waveform's value at time t. dtCurrent is the
// simulator's current step size, used by PULSE when t_rise or t_fall is
// non-positive (open-ended rise/fall default to the current step).
func (w Waveform) Eval(t, dtCurrent float64) float64 {
	switch w.Kind {
	case DC:
		return w.Level
	case SIN:
		return w.evalSin(t)
	case PULSE:
		return w.evalPulse(t, dtCurrent)
	default:
		return 0
	}
}

func (w Waveform) evalSin(t float64) float64 {
	phase := math.Pi * w.PhaseDeg / 180.0

	if t < w.Delay {
		return w.Offset + w.Amplitude*math.Sin(phase)
	}

	tEnd := w.Delay
	if w.Freq > 0 {
		tEnd = w.Delay + w.Cycles/w.Freq
	}

	tt := t
	if t >= tEnd {
		tt = tEnd
	}

	elapsed := tt - w.Delay
	return w.Offset + w.Amplitude*math.Exp(-w.Damping*elapsed)*math.Sin(2*math.Pi*w.Freq*elapsed+phase)
}

// String renders the waveform spec in netlist form, matching the order
// it would be parsed from.
func (w Waveform) String() string {
	switch w.Kind {
	case DC:
		return fmt.Sprintf("DC %g", w.Level)
	case SIN:
		return fmt.Sprintf("SIN %g %g %g %g %g %g %g",
			w.Offset, w.Amplitude, w.Freq, w.Delay, w.Damping, w.PhaseDeg, w.Cycles)
	case PULSE:
		return fmt.Sprintf("PULSE %g %g %g %g %g %g %g %g",
			w.V1, w.V2, w.Delay, w.TRise, w.TFall, w.TOn, w.Period, w.Cycles)
	default:
		return ""
	}
}

func (w Waveform) evalPulse(t, dtCurrent float64) float64 {
	tRise := w.TRise
	if tRise <= 0 {
		tRise = dtCurrent
	}
	tFall := w.TFall
	if tFall <= 0 {
		tFall = dtCurrent
	}

	if t < w.Delay {
		return w.V1
	}
	if w.Cycles > 0 && t >= w.Delay+w.Cycles*w.Period {
		return w.V1
	}

	tau := math.Mod(t-w.Delay, w.Period)

	switch {
	case tau < tRise:
		if tRise == 0 {
			return w.V2
		}
		return w.V1 + (w.V2-w.V1)*(tau/tRise)
	case tau < tRise+w.TOn:
		return w.V2
	case tau < tRise+w.TOn+tFall:
		if tFall == 0 {
			return w.V1
		}
		frac := (tau - tRise - w.TOn) / tFall
		return w.V2 + (w.V1-w.V2)*frac
	default:
		return w.V1
	}
}
