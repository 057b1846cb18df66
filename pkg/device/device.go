// Package device implements the closed set of MNA component stamps:
// resistor, capacitor, inductor, piecewise-linear resistor, diode,
// MOSFET, ideal op-amp, the four controlled sources, and the independent
// voltage/current sources.
package device

import "github.com/lassenlab/spicetran/pkg/mna"

// Device is the closed interface every component variant implements.
// Node and auxiliary index binding happens once, at the start of
// Circuit.Run; after that, Stamp is the only method called on the hot
// path, and Update only between accepted steps.
type Device interface {
	GetName() string
	GetNodeNames() []string
	GetNodes() []int
	SetNodes(nodes []int)
	AuxCount() int
	SetAux(aux []int)

	// Linear reports whether the component ever needs re-linearization
	// around the current guess. A circuit containing only linear
	// components accepts the first Newton solve unconditionally.
	Linear() bool

	// Stamp deposits this component's contribution into m. x is the
	// current Newton guess (x[0] is always 0, ground); dt is the current
	// step size; t is the absolute simulated time of the step being
	// solved; firstIter reports whether this is the very first Newton
	// iteration of the whole run (used only by the MOSFET Vgs seed).
	Stamp(m *mna.Matrix, x []float64, dt, t float64, firstIter bool)

	// Update commits x into any history buffers. Called once per
	// accepted step, never during Newton iteration.
	Update(x []float64)

	// String renders the component in netlist line form, matching the
	// format it was (or would be) parsed from.
	String() string
}

// BaseDevice carries the identity and index-binding state shared by
// every variant. Variant structs embed it.
type BaseDevice struct {
	Name      string
	NodeNames []string
	Nodes     []int
	Aux       []int
}

func newBase(name string, nodeNames []string) BaseDevice {
	return BaseDevice{Name: name, NodeNames: nodeNames}
}

func (d *BaseDevice) GetName() string        { return d.Name }
func (d *BaseDevice) GetNodeNames() []string { return d.NodeNames }
func (d *BaseDevice) GetNodes() []int        { return d.Nodes }
func (d *BaseDevice) SetNodes(nodes []int)   { d.Nodes = nodes }
func (d *BaseDevice) SetAux(aux []int)       { d.Aux = aux }
