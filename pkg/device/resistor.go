package device

import (
	"fmt"

	"github.com/lassenlab/spicetran/pkg/mna"
)

// Resistor is the linear two-terminal R stamp.
type Resistor struct {
	BaseDevice
	Value float64 // ohms
}

func NewResistor(name string, nodeNames []string, value float64) *Resistor {
	return &Resistor{BaseDevice: newBase(name, nodeNames), Value: value}
}

func (r *Resistor) AuxCount() int { return 0 }
func (r *Resistor) Linear() bool  { return true }

func (r *Resistor) Stamp(m *mna.Matrix, x []float64, dt, t float64, firstIter bool) {
	stampConductance(m, r.Nodes[0], r.Nodes[1], 1.0/r.Value)
}

func (r *Resistor) Update(x []float64) {}

func (r *Resistor) String() string {
	return fmt.Sprintf("%s %s %g", r.Name, nodeFields(r.NodeNames), r.Value)
}

// stampConductance deposits the standard four-term parallel-conductance
// pattern shared by the resistor, capacitor companion model, and the
// linearized companion models of the nonlinear devices.
func stampConductance(m *mna.Matrix, a, b int, g float64) {
	m.AddG(a, a, g)
	m.AddG(a, b, -g)
	m.AddG(b, a, -g)
	m.AddG(b, b, g)
}
