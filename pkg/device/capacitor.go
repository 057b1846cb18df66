package device

import (
	"fmt"

	"github.com/lassenlab/spicetran/pkg/mna"
)

// Capacitor is the linear, stateful C stamp. It carries no auxiliary
// variable; its history is the terminal voltage from the previous
// accepted step.
type Capacitor struct {
	BaseDevice
	Value float64 // farads
	IC    float64 // initial v_ab, consumed once at t=0

	vPrev float64 // v_ab_prev, written by Update
}

func NewCapacitor(name string, nodeNames []string, value, ic float64) *Capacitor {
	return &Capacitor{BaseDevice: newBase(name, nodeNames), Value: value, IC: ic}
}

func (c *Capacitor) AuxCount() int { return 0 }
func (c *Capacitor) Linear() bool  { return true }

func (c *Capacitor) Stamp(m *mna.Matrix, x []float64, dt, t float64, firstIter bool) {
	a, b := c.Nodes[0], c.Nodes[1]
	g := c.Value / dt
	stampConductance(m, a, b, g)

	vPrev := c.vPrev
	if t == 0 {
		vPrev = c.IC
	}

	m.AddI(a, g*vPrev)
	m.AddI(b, -g*vPrev)
}

func (c *Capacitor) Update(x []float64) {
	a, b := c.Nodes[0], c.Nodes[1]
	c.vPrev = x[a] - x[b]
}

func (c *Capacitor) String() string {
	if c.IC != 0 {
		return fmt.Sprintf("%s %s %g IC=%g", c.Name, nodeFields(c.NodeNames), c.Value, c.IC)
	}
	return fmt.Sprintf("%s %s %g", c.Name, nodeFields(c.NodeNames), c.Value)
}
