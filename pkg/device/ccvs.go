package device

import (
	"fmt"

	"github.com/lassenlab/spicetran/pkg/mna"
)

// CCVS is the H variant: a current-controlled voltage source. jx carries
// the output branch current, jy the current through the controlling
// short between c and d.
type CCVS struct {
	BaseDevice // nodes: [0]=a, [1]=b, [2]=c, [3]=d (internal short c->d)
	Rm float64 // transresistance
}

func NewCCVS(name string, nodeNames []string, rm float64) *CCVS {
	return &CCVS{BaseDevice: newBase(name, nodeNames), Rm: rm}
}

func (h *CCVS) AuxCount() int { return 2 }
func (h *CCVS) Linear() bool  { return true }

func (h *CCVS) Stamp(m *mna.Matrix, x []float64, dt, t float64, firstIter bool) {
	a, b, c, d := h.Nodes[0], h.Nodes[1], h.Nodes[2], h.Nodes[3]
	jx, jy := h.Aux[0], h.Aux[1]

	m.AddG(a, jx, 1)
	m.AddG(b, jx, -1)
	m.AddG(jx, a, -1)
	m.AddG(jx, b, 1)

	m.AddG(c, jy, 1)
	m.AddG(d, jy, -1)
	m.AddG(jy, c, -1)
	m.AddG(jy, d, 1)

	m.AddG(jy, jx, h.Rm)
}

func (h *CCVS) Update(x []float64) {}

func (h *CCVS) String() string {
	return fmt.Sprintf("%s %s %g", h.Name, nodeFields(h.NodeNames), h.Rm)
}
