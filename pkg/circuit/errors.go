package circuit

import "errors"

var (
	// ErrMissingGround is returned when no component references node "0".
	ErrMissingGround = errors.New("circuit: missing ground node")

	// ErrNewtonDiverged is returned when the Newton driver exhausts
	// N_MAX*M_MAX attempts at some step without converging.
	ErrNewtonDiverged = errors.New("circuit: newton driver diverged")
)
