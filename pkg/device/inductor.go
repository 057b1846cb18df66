package device

import (
	"fmt"

	"github.com/lassenlab/spicetran/pkg/mna"
)

// Inductor is the linear, stateful L stamp. It introduces one auxiliary
// variable: the branch current through the inductor.
type Inductor struct {
	BaseDevice
	Value float64 // henries
	IC    float64 // initial branch current, consumed once at t=0

	iPrev float64 // i_prev, written by Update
}

func NewInductor(name string, nodeNames []string, value, ic float64) *Inductor {
	return &Inductor{BaseDevice: newBase(name, nodeNames), Value: value, IC: ic}
}

func (l *Inductor) AuxCount() int { return 1 }
func (l *Inductor) Linear() bool  { return true }

func (l *Inductor) Stamp(m *mna.Matrix, x []float64, dt, t float64, firstIter bool) {
	a, b, jx := l.Nodes[0], l.Nodes[1], l.Aux[0]

	m.AddG(a, jx, 1)
	m.AddG(b, jx, -1)
	m.AddG(jx, a, -1)
	m.AddG(jx, b, 1)
	m.AddG(jx, jx, l.Value/dt)

	iPrev := l.iPrev
	if t == 0 {
		iPrev = l.IC
	}
	m.AddI(jx, (l.Value/dt)*iPrev)
}

func (l *Inductor) Update(x []float64) {
	l.iPrev = x[l.Aux[0]]
}

func (l *Inductor) String() string {
	if l.IC != 0 {
		return fmt.Sprintf("%s %s %g IC=%g", l.Name, nodeFields(l.NodeNames), l.Value, l.IC)
	}
	return fmt.Sprintf("%s %s %g", l.Name, nodeFields(l.NodeNames), l.Value)
}
