package netlist

import "errors"

var (
	// ErrMalformedNetlist covers unknown line tags, field arity
	// mismatches, and non-numeric values.
	ErrMalformedNetlist = errors.New("netlist: malformed netlist")

	// ErrUnsupportedComponent is returned for a variant the parser
	// recognizes but the target build does not implement (e.g. a
	// .TRAN type other than BE).
	ErrUnsupportedComponent = errors.New("netlist: unsupported component")

	// ErrIO covers read/write failure on netlist or results files.
	ErrIO = errors.New("netlist: io error")
)
