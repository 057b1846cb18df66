// Package circuit is the facade: it owns an ordered component list plus
// the transient stepper parameters, binds node/auxiliary indices once,
// and exposes Run as a pure function from (components, stepper params,
// seed) to a trajectory. This is where the Newton-Raphson driver and the
// transient stepper live.
package circuit

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/lassenlab/spicetran/internal/consts"
	"github.com/lassenlab/spicetran/pkg/device"
	"github.com/lassenlab/spicetran/pkg/mna"
	"github.com/lassenlab/spicetran/pkg/netlist"
	"github.com/lassenlab/spicetran/pkg/result"
)

// defaultSeed matches the historical fixed seed so reference netlists
// reproduce the same trajectory unless a caller overrides it.
const defaultSeed = 512

// Circuit is an ordered sequence of components plus integration
// parameters. Method is one of BE, FE, TRAP; only BE is implemented.
type Circuit struct {
	Components []device.Device
	Method     string
	TTotal     float64
	DtNominal  float64
	InnerSteps int

	// Seed drives the Newton driver's guess re-roll RNG. Zero means "use
	// the default", since a caller-supplied zero seed is indistinguishable
	// from an unset field and 512 is the value every reference fixture
	// expects.
	Seed uint64
}

// FromNetlist builds a Circuit from a parsed netlist.
func FromNetlist(nl *netlist.Netlist) *Circuit {
	return &Circuit{
		Components: nl.Components,
		Method:     nl.Stepper.Type,
		TTotal:     nl.Stepper.TTotal,
		DtNominal:  nl.Stepper.Step,
		InnerSteps: nl.Stepper.InnerSteps,
	}
}

// Run executes the transient stepper to completion and returns the
// accepted trajectory. Any error aborts the run; no partial trajectory
// is returned.
func (c *Circuit) Run() (*result.Trajectory, error) {
	if c.Method != "BE" {
		return nil, fmt.Errorf("%w: transient method %q", netlist.ErrUnsupportedComponent, c.Method)
	}

	nTotal, names, err := c.bind()
	if err != nil {
		return nil, err
	}

	m, err := mna.New(nTotal - 1)
	if err != nil {
		return nil, err
	}
	defer m.Destroy()

	seed := c.Seed
	if seed == 0 {
		seed = defaultSeed
	}
	rng := rand.New(rand.NewSource(int64(seed)))

	guess := make([]float64, nTotal)
	firstIter := true

	tr := &result.Trajectory{Names: names}
	t := 0.0

	for {
		dtCurrent := c.DtNominal
		innerSteps := c.InnerSteps
		if t == 0 {
			dtCurrent = c.DtNominal / consts.StepFactor
			innerSteps = 1
		}

		var x []float64
		for s := 0; s < innerSteps; s++ {
			x, err = c.newtonSolve(m, guess, dtCurrent, t, rng, &firstIter)
			if err != nil {
				return nil, err
			}
			for _, dev := range c.Components {
				dev.Update(x)
			}
			guess = x
		}

		tr.Append(t, x[1:])

		t += c.DtNominal
		if t >= c.TTotal {
			break
		}
	}

	return tr, nil
}

// bind assigns node indices and auxiliary-variable blocks: ground at 0,
// node labels in first-appearance order, then one contiguous aux block
// per component in component order. It returns N_total (the solved
// system's full size including ground) and the ordered name of every
// index 1..N_total-1: real node labels first, then one synthesized name
// per auxiliary/branch-current variable, mirroring how the original
// simulator's node list grows (real nodes, then one "Jk<component>" per
// auxiliary unknown).
func (c *Circuit) bind() (int, []string, error) {
	nodeIndex := map[string]int{"0": 0}
	sawGround := false
	next := 1
	names := []string{}

	for _, dev := range c.Components {
		nodeNames := dev.GetNodeNames()
		nodes := make([]int, len(nodeNames))
		for i, name := range nodeNames {
			if name == "0" {
				sawGround = true
			}
			idx, ok := nodeIndex[name]
			if !ok {
				idx = next
				nodeIndex[name] = idx
				next++
				names = append(names, name)
			}
			nodes[i] = idx
		}
		dev.SetNodes(nodes)
	}

	if !sawGround {
		return 0, nil, ErrMissingGround
	}

	aux := next
	for _, dev := range c.Components {
		n := dev.AuxCount()
		if n == 0 {
			continue
		}
		idxs := make([]int, n)
		for i := range idxs {
			idxs[i] = aux
			names = append(names, fmt.Sprintf("J%d%s", aux, dev.GetName()))
			aux++
		}
		dev.SetAux(idxs)
	}

	return aux, names, nil
}

// newtonSolve runs one inner step's Newton iteration to convergence (or
// failure), starting from guess. dt is the current step size, t the
// absolute simulated time of the step being solved.
func (c *Circuit) newtonSolve(m *mna.Matrix, guess []float64, dt, t float64, rng *rand.Rand, firstIter *bool) ([]float64, error) {
	linear := true
	for _, dev := range c.Components {
		if !dev.Linear() {
			linear = false
			break
		}
	}

	iterCount := 0
	guessCount := 0

	for {
		m.Clear()
		stampedFirst := *firstIter
		for _, dev := range c.Components {
			dev.Stamp(m, guess, dt, t, stampedFirst)
		}
		if stampedFirst {
			*firstIter = false
		}

		x, err := m.Solve()
		if err != nil {
			return nil, err
		}

		if linear {
			return x, nil
		}

		delta := 0.0
		for k := 1; k < len(x); k++ {
			if d := math.Abs(x[k] - guess[k]); d > delta {
				delta = d
			}
		}
		if delta <= consts.Tolerance {
			return x, nil
		}

		guess = x
		iterCount++
		if iterCount >= consts.NMax {
			guessCount++
			if guessCount > consts.MMax {
				return nil, ErrNewtonDiverged
			}
			iterCount = 0
			guess = randomGuess(rng, len(x))
		}
	}
}

// randomGuess draws a uniform [0,1) vector of length n, ground (index 0)
// fixed at zero.
func randomGuess(rng *rand.Rand, n int) []float64 {
	g := make([]float64, n)
	for k := 1; k < n; k++ {
		g[k] = rng.Float64()
	}
	return g
}
