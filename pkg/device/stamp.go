package device

import (
	"strings"

	"github.com/lassenlab/spicetran/pkg/mna"
)

// nodeFields joins node labels for netlist export.
func nodeFields(nodes []string) string { return strings.Join(nodes, " ") }

// stampCurrentSource adds a DC current source of value amps between a and
// b, using the same sign convention as the independent current source:
// i[a] -= amps; i[b] += amps.
func stampCurrentSource(m *mna.Matrix, a, b int, amps float64) {
	m.AddI(a, -amps)
	m.AddI(b, amps)
}

// stampVCCS adds a voltage-controlled current source of transconductance
// gm injecting current into the (a,b) pair, controlled by the voltage
// across (c,d): G[a,c]+=gm; G[a,d]-=gm; G[b,c]-=gm; G[b,d]+=gm.
func stampVCCS(m *mna.Matrix, a, b, c, d int, gm float64) {
	m.AddG(a, c, gm)
	m.AddG(a, d, -gm)
	m.AddG(b, c, -gm)
	m.AddG(b, d, gm)
}
