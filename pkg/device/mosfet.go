package device

import (
	"fmt"

	"github.com/lassenlab/spicetran/pkg/mna"
)

// MosfetType distinguishes the two MOSFET polarities.
type MosfetType int

const (
	NMOS MosfetType = iota
	PMOS
)

// Mosfet is the nonlinear M variant: a single-level square-law model with
// three terminals (drain, gate, source), channel-length modulation, and
// cutoff/triode/saturation regions.
type Mosfet struct {
	BaseDevice
	Type   MosfetType
	W, L   float64 // channel width, length (m)
	Lambda float64 // channel-length modulation (1/V)
	K      float64 // process transconductance (A/V²)
	Vth    float64 // threshold voltage (V)

	seeded bool // true once this device has stamped; firstIter seeds again at each run's start
}

func NewMosfet(name string, nodeNames []string, typ MosfetType, w, l, lambda, k, vth float64) *Mosfet {
	return &Mosfet{
		BaseDevice: newBase(name, nodeNames),
		Type:       typ, W: w, L: l, Lambda: lambda, K: k, Vth: vth,
	}
}

func (dev *Mosfet) AuxCount() int { return 0 }
func (dev *Mosfet) Linear() bool  { return false }

func (dev *Mosfet) Stamp(m *mna.Matrix, x []float64, dt, t float64, firstIter bool) {
	d, g, s := dev.Nodes[0], dev.Nodes[1], dev.Nodes[2]
	beta := dev.K * dev.W / dev.L

	vd, vg, vs := x[d], x[g], x[s]

	sign := 1.0
	if dev.Type == PMOS {
		sign = -1.0
	}

	var vgs float64
	if firstIter || !dev.seeded {
		vgs = 2.0 * sign
		dev.seeded = true
	} else {
		vgs = sign * (vg - vs)
	}

	// Virtually swap drain/source if the polarity is reversed, so Vds is
	// always measured in the direction the channel actually conducts.
	drainIdx, sourceIdx := d, s
	reversed := (dev.Type == NMOS && vd < vs) || (dev.Type == PMOS && vd > vs)
	if reversed {
		drainIdx, sourceIdx = s, d
	}

	vds := sign * (x[drainIdx] - x[sourceIdx])
	vov := vgs - dev.Vth
	klambda := 1 + dev.Lambda*vds

	var id, gm, gds float64
	switch {
	case vgs <= dev.Vth:
		// cutoff
	case vds > vov:
		id = beta * vov * vov * klambda
		gm = 2 * beta * vov * klambda
		gds = beta * vov * vov * dev.Lambda
	default:
		id = beta * (2*vov*vds - vds*vds) * klambda
		gm = 2 * beta * vds * klambda
		gds = beta * (2*vov - 2*vds + 4*dev.Lambda*vov*vds - 3*dev.Lambda*vds*vds)
	}

	if dev.Type == PMOS {
		id = -id
	}

	// Transconductance from gate/source into drain/source, conductance
	// between drain and source, and the current-source term that makes
	// the linearization pass through the operating point exactly.
	stampVCCS(m, drainIdx, sourceIdx, g, sourceIdx, gm)
	stampConductance(m, drainIdx, sourceIdx, gds)
	stampCurrentSource(m, drainIdx, sourceIdx, id-gm*vgs-gds*vds)
}

func (dev *Mosfet) Update(x []float64) {}

func (dev *Mosfet) String() string {
	typ := "N"
	if dev.Type == PMOS {
		typ = "P"
	}
	return fmt.Sprintf("%s %s %s %g %g %g %g %g",
		dev.Name, nodeFields(dev.NodeNames), typ, dev.W, dev.L, dev.Lambda, dev.K, dev.Vth)
}
