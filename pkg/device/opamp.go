package device

import (
	"fmt"

	"github.com/lassenlab/spicetran/pkg/mna"
)

// OpAmp is the ideal O variant: ground-referenced infinite-gain op-amp,
// enforcing V+ = V- through one auxiliary output-current variable.
type OpAmp struct {
	BaseDevice // nodes: [0]=V+, [1]=V-, [2]=out
}

func NewOpAmp(name string, nodeNames []string) *OpAmp {
	return &OpAmp{BaseDevice: newBase(name, nodeNames)}
}

func (o *OpAmp) AuxCount() int { return 1 }
func (o *OpAmp) Linear() bool  { return true }

func (o *OpAmp) Stamp(m *mna.Matrix, x []float64, dt, t float64, firstIter bool) {
	a, b, out, jx := o.Nodes[0], o.Nodes[1], o.Nodes[2], o.Aux[0]

	m.AddG(out, jx, 1)
	m.AddG(jx, a, -1)
	m.AddG(jx, b, 1)
}

func (o *OpAmp) Update(x []float64) {}

func (o *OpAmp) String() string {
	return fmt.Sprintf("%s %s", o.Name, nodeFields(o.NodeNames))
}
