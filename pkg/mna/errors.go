package mna

import "errors"

// ErrSingularSystem is returned when the reduced conductance matrix
// cannot be factored at some step. The driver does not attempt
// regularization.
var ErrSingularSystem = errors.New("mna: singular system")
