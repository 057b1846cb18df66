// Package consts holds the physical and numerical constants shared across
// the simulation engine.
package consts

const (
	CHARGE    = 1.6021918e-19 // elementary charge (C)
	BOLTZMANN = 1.3806226e-23 // Boltzmann constant (J/K)
	KELVIN    = 273.15        // 0C in kelvin
)

// Newton-Raphson driver bounds.
const (
	Tolerance = 1e-5 // max |x[k]-guess[k]| to accept a guess
	NMax      = 20   // iterations per guess before re-seeding
	MMax      = 100  // guesses per step before NewtonDiverged
)

// StepFactor shortens the first transient step so that reactive
// components' initial conditions settle within one sub-step instead of
// producing a discontinuity in the trajectory.
const StepFactor = 1e9

// Diode companion-model constants.
const (
	DiodeIs     = 3.7751345e-14
	DiodeVt     = 25e-3
	DiodeVClamp = 0.9
)
