package device

import (
	"fmt"
	"math"

	"github.com/lassenlab/spicetran/internal/consts"
	"github.com/lassenlab/spicetran/pkg/mna"
)

// Diode is the nonlinear D variant: a fixed-parameter exponential
// junction, linearized every Newton iteration into a conductance in
// parallel with a current source.
type Diode struct {
	BaseDevice
}

func NewDiode(name string, nodeNames []string) *Diode {
	return &Diode{BaseDevice: newBase(name, nodeNames)}
}

func (d *Diode) AuxCount() int { return 0 }
func (d *Diode) Linear() bool  { return false }

func (d *Diode) Stamp(m *mna.Matrix, x []float64, dt, t float64, firstIter bool) {
	a, b := d.Nodes[0], d.Nodes[1]
	vab := x[a] - x[b]
	if vab > consts.DiodeVClamp {
		vab = consts.DiodeVClamp
	}

	expTerm := consts.DiodeIs * math.Exp(vab/consts.DiodeVt)
	g0 := expTerm / consts.DiodeVt
	id := expTerm - consts.DiodeIs - g0*vab

	if g0 != 0 {
		stampConductance(m, a, b, g0)
	}
	stampCurrentSource(m, a, b, id)
}

func (d *Diode) Update(x []float64) {}

func (d *Diode) String() string {
	return fmt.Sprintf("%s %s", d.Name, nodeFields(d.NodeNames))
}
