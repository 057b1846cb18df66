package device

import (
	"fmt"

	"github.com/lassenlab/spicetran/pkg/mna"
	"github.com/lassenlab/spicetran/pkg/waveform"
)

// Waveform is the source-evaluator parameter union, re-exported here so
// device constructors don't force callers to import pkg/waveform
// directly for the common case.
type Waveform = waveform.Waveform

// CurrentSource is the independent I variant: no auxiliary variable, the
// waveform value is injected directly into the RHS.
type CurrentSource struct {
	BaseDevice
	Source Waveform
}

func NewCurrentSource(name string, nodeNames []string, src Waveform) *CurrentSource {
	return &CurrentSource{BaseDevice: newBase(name, nodeNames), Source: src}
}

func (i *CurrentSource) AuxCount() int { return 0 }
func (i *CurrentSource) Linear() bool  { return true }

func (i *CurrentSource) Stamp(m *mna.Matrix, x []float64, dt, t float64, firstIter bool) {
	a, b := i.Nodes[0], i.Nodes[1]
	stampCurrentSource(m, a, b, i.Source.Eval(t, dt))
}

func (i *CurrentSource) Update(x []float64) {}

func (i *CurrentSource) String() string {
	return fmt.Sprintf("%s %s %s", i.Name, nodeFields(i.NodeNames), i.Source.String())
}
