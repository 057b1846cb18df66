package device

import (
	"fmt"

	"github.com/lassenlab/spicetran/pkg/mna"
)

// VCCS is the G variant: a voltage-controlled current source, no
// auxiliary variable.
type VCCS struct {
	BaseDevice // nodes: [0]=a, [1]=b, [2]=c (control+), [3]=d (control-)
	Gm float64
}

func NewVCCS(name string, nodeNames []string, gm float64) *VCCS {
	return &VCCS{BaseDevice: newBase(name, nodeNames), Gm: gm}
}

func (g *VCCS) AuxCount() int { return 0 }
func (g *VCCS) Linear() bool  { return true }

func (g *VCCS) Stamp(m *mna.Matrix, x []float64, dt, t float64, firstIter bool) {
	a, b, c, d := g.Nodes[0], g.Nodes[1], g.Nodes[2], g.Nodes[3]
	stampVCCS(m, a, b, c, d, g.Gm)
}

func (g *VCCS) Update(x []float64) {}

func (g *VCCS) String() string {
	return fmt.Sprintf("%s %s %g", g.Name, nodeFields(g.NodeNames), g.Gm)
}
