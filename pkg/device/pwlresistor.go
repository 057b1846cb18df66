package device

import (
	"fmt"

	"github.com/lassenlab/spicetran/pkg/mna"
)

// PWLResistor is the nonlinear N variant: a piecewise-linear two-terminal
// resistor described by four breakpoints. Each Newton iteration picks the
// segment containing the current guess's terminal voltage, linearizes it
// as a conductance in parallel with a current source, and stamps both —
// the companion resistor and companion source this owns are not separate
// Device values, just the (g, i0) pair recomputed every Stamp call.
type PWLResistor struct {
	BaseDevice
	V1, I1 float64
	V2, I2 float64
	V3, I3 float64
	V4, I4 float64
}

func NewPWLResistor(name string, nodeNames []string, v1, i1, v2, i2, v3, i3, v4, i4 float64) *PWLResistor {
	return &PWLResistor{
		BaseDevice: newBase(name, nodeNames),
		V1: v1, I1: i1,
		V2: v2, I2: i2,
		V3: v3, I3: i3,
		V4: v4, I4: i4,
	}
}

func (n *PWLResistor) AuxCount() int { return 0 }
func (n *PWLResistor) Linear() bool  { return false }

func (n *PWLResistor) Stamp(m *mna.Matrix, x []float64, dt, t float64, firstIter bool) {
	a, b := n.Nodes[0], n.Nodes[1]
	vab := x[a] - x[b]

	var vLo, iLo, vHi, iHi float64
	switch {
	case vab > n.V3:
		vLo, iLo, vHi, iHi = n.V3, n.I3, n.V4, n.I4
	case vab > n.V2:
		vLo, iLo, vHi, iHi = n.V2, n.I2, n.V3, n.I3
	default:
		vLo, iLo, vHi, iHi = n.V1, n.I1, n.V2, n.I2
	}

	g := (iHi - iLo) / (vHi - vLo)
	i0 := iHi - g*vHi

	stampConductance(m, a, b, g)
	stampCurrentSource(m, a, b, i0)
}

func (n *PWLResistor) Update(x []float64) {}

func (n *PWLResistor) String() string {
	return fmt.Sprintf("%s %s %g %g %g %g %g %g %g %g",
		n.Name, nodeFields(n.NodeNames), n.V1, n.I1, n.V2, n.I2, n.V3, n.I3, n.V4, n.I4)
}
