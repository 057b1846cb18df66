package device

import (
	"fmt"

	"github.com/lassenlab/spicetran/pkg/mna"
)

// CCCS is the F variant: a current-controlled current source. The
// controlling current is sensed through an internal short between nodes
// c and d, carried by the auxiliary variable jx.
type CCCS struct {
	BaseDevice // nodes: [0]=a, [1]=b, [2]=c, [3]=d (internal short c->d)
	Gain float64
}

func NewCCCS(name string, nodeNames []string, gain float64) *CCCS {
	return &CCCS{BaseDevice: newBase(name, nodeNames), Gain: gain}
}

func (f *CCCS) AuxCount() int { return 1 }
func (f *CCCS) Linear() bool  { return true }

func (f *CCCS) Stamp(m *mna.Matrix, x []float64, dt, t float64, firstIter bool) {
	a, b, c, d, jx := f.Nodes[0], f.Nodes[1], f.Nodes[2], f.Nodes[3], f.Aux[0]

	m.AddG(a, jx, -f.Gain)
	m.AddG(b, jx, f.Gain)
	m.AddG(c, jx, 1)
	m.AddG(d, jx, -1)
	m.AddG(jx, c, -1)
	m.AddG(jx, d, 1)
}

func (f *CCCS) Update(x []float64) {}

func (f *CCCS) String() string {
	return fmt.Sprintf("%s %s %g", f.Name, nodeFields(f.NodeNames), f.Gain)
}
