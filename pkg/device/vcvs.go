package device

import (
	"fmt"

	"github.com/lassenlab/spicetran/pkg/mna"
)

// VCVS is the E variant: a voltage-controlled voltage source, one
// auxiliary branch current.
type VCVS struct {
	BaseDevice // nodes: [0]=a, [1]=b, [2]=c (control+), [3]=d (control-)
	Gain float64
}

func NewVCVS(name string, nodeNames []string, gain float64) *VCVS {
	return &VCVS{BaseDevice: newBase(name, nodeNames), Gain: gain}
}

func (e *VCVS) AuxCount() int { return 1 }
func (e *VCVS) Linear() bool  { return true }

func (e *VCVS) Stamp(m *mna.Matrix, x []float64, dt, t float64, firstIter bool) {
	a, b, c, d, jx := e.Nodes[0], e.Nodes[1], e.Nodes[2], e.Nodes[3], e.Aux[0]

	m.AddG(a, jx, -1)
	m.AddG(b, jx, 1)
	m.AddG(jx, c, e.Gain)
	m.AddG(jx, d, -e.Gain)
	m.AddG(jx, a, -1)
	m.AddG(jx, b, 1)
}

func (e *VCVS) Update(x []float64) {}

func (e *VCVS) String() string {
	return fmt.Sprintf("%s %s %g", e.Name, nodeFields(e.NodeNames), e.Gain)
}
