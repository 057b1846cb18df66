package device

import (
	"fmt"

	"github.com/lassenlab/spicetran/pkg/mna"
)

// VoltageSource is the independent V variant: one auxiliary branch
// current enforces the terminal voltage at every step.
type VoltageSource struct {
	BaseDevice
	Source Waveform
}

func NewVoltageSource(name string, nodeNames []string, src Waveform) *VoltageSource {
	return &VoltageSource{BaseDevice: newBase(name, nodeNames), Source: src}
}

func (v *VoltageSource) AuxCount() int { return 1 }
func (v *VoltageSource) Linear() bool  { return true }

func (v *VoltageSource) Stamp(m *mna.Matrix, x []float64, dt, t float64, firstIter bool) {
	a, b, jx := v.Nodes[0], v.Nodes[1], v.Aux[0]

	m.AddG(a, jx, 1)
	m.AddG(b, jx, -1)
	m.AddG(jx, a, -1)
	m.AddG(jx, b, 1)
	m.AddI(jx, -v.Source.Eval(t, dt))
}

func (v *VoltageSource) Update(x []float64) {}

func (v *VoltageSource) String() string {
	return fmt.Sprintf("%s %s %s", v.Name, nodeFields(v.NodeNames), v.Source.String())
}
