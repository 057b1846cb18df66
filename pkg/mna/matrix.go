// Package mna assembles and solves the Modified Nodal Analysis linear
// system: a conductance matrix G and current vector i, rebuilt from
// scratch on every Newton iteration and solved for the node voltages and
// auxiliary branch currents.
package mna

import (
	"fmt"

	"github.com/edp1096/sparse"
)

// Matrix wraps github.com/edp1096/sparse as the direct solver for
// G[1:,1:] y = i[1:]. Index 0 (ground) is never part of the solved
// system: AddG/AddI silently drop any contribution touching it, the same
// way ground is grounded by construction rather than by an explicit
// equation.
type Matrix struct {
	Size int // N_total - 1
	mat  *sparse.Matrix
	rhs  []float64
}

// New allocates a matrix sized for a system with N_total unknowns
// (ground included). size must be N_total-1, i.e. the reduced block.
func New(size int) (*Matrix, error) {
	if size <= 0 {
		return nil, fmt.Errorf("mna: non-positive matrix size %d", size)
	}

	config := &sparse.Configuration{
		Real:           true,
		Expandable:     true,
		ModifiedNodal:  true,
		TiesMultiplier: 5,
		PrinterWidth:   140,
	}

	mat, err := sparse.Create(int64(size), config)
	if err != nil {
		return nil, fmt.Errorf("mna: create matrix: %w", err)
	}

	return &Matrix{
		Size: size,
		mat:  mat,
		rhs:  make([]float64, size+1),
	}, nil
}

// AddG adds value to G[i,j] where i, j are system indices including
// ground (0). Contributions touching ground are dropped.
func (m *Matrix) AddG(i, j int, value float64) {
	if i == 0 || j == 0 {
		return
	}
	m.mat.GetElement(int64(i), int64(j)).Real += value
}

// AddI adds value to i[k] where k is a system index including ground.
func (m *Matrix) AddI(k int, value float64) {
	if k == 0 {
		return
	}
	m.rhs[k] += value
}

// Clear zeroes G and i for the next Newton iteration.
func (m *Matrix) Clear() {
	m.mat.Clear()
	for k := range m.rhs {
		m.rhs[k] = 0
	}
}

// Solve factors G and solves for y = G^-1 i, returning the full system
// vector with x[0] = 0 prepended for ground.
func (m *Matrix) Solve() ([]float64, error) {
	if err := m.mat.Factor(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSingularSystem, err)
	}

	sol, err := m.mat.Solve(m.rhs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSingularSystem, err)
	}

	x := make([]float64, m.Size+1)
	copy(x[1:], sol[1:m.Size+1])
	return x, nil
}

// Destroy releases the underlying sparse matrix's native resources.
func (m *Matrix) Destroy() {
	if m.mat != nil {
		m.mat.Destroy()
	}
}
