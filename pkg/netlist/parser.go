// Package netlist parses and exports the simulator's line-oriented text
// format (spec §6): a reserved title line, one line per component keyed
// by a leading type character, and a terminating `.TRAN` line carrying
// the transient stepper parameters.
package netlist

import (
	"bufio"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/lassenlab/spicetran/pkg/device"
	"github.com/lassenlab/spicetran/pkg/waveform"
)

// Stepper carries the transient-analysis parameters parsed from the
// terminator line.
type Stepper struct {
	Method     string // "TRAN"
	TTotal     float64
	Step       float64
	Type       string // BE, FE, TRAP
	InnerSteps int
}

// String renders the stepper spec without its leading dot, matching the
// export format.
func (s Stepper) String() string {
	return fmt.Sprintf("%s %g %g %s %d", s.Method, s.TTotal, s.Step, s.Type, s.InnerSteps)
}

// Netlist is a parsed circuit: its title line, its ordered components,
// and its stepper parameters.
type Netlist struct {
	Title      string
	Components []device.Device
	Stepper    Stepper
}

var unitMap = map[string]float64{
	"T":   1e12,
	"G":   1e9,
	"meg": 1e6,
	"K":   1e3,
	"k":   1e3,
	"m":   1e-3,
	"u":   1e-6,
	"n":   1e-9,
	"p":   1e-12,
	"f":   1e-15,
}

var valueRe = regexp.MustCompile(`^([-+]?\d*\.?\d+(?:[eE][-+]?\d+)?)(meg|[TGKkmunpf])?s?$`)

// ParseValue parses a SPICE-style numeric literal with an optional unit
// suffix (T, G, meg, K/k, m, u, n, p, f) and an optional trailing "s".
func ParseValue(s string) (float64, error) {
	m := valueRe.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("%w: malformed value %q", ErrMalformedNetlist, s)
	}

	base, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrMalformedNetlist, err)
	}

	if m[2] != "" {
		base *= unitMap[m[2]]
	}
	return base, nil
}

// Parse reads a netlist in the format of spec §6.
func Parse(input string) (*Netlist, error) {
	scanner := bufio.NewScanner(strings.NewReader(input))
	nl := &Netlist{}

	if scanner.Scan() {
		nl.Title = scanner.Text()
	}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, ".") {
			stepper, err := parseStepper(line)
			if err != nil {
				return nil, err
			}
			nl.Stepper = stepper
			return nl, nil
		}

		dev, err := parseComponent(line)
		if err != nil {
			return nil, err
		}
		nl.Components = append(nl.Components, dev)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIO, err)
	}

	return nil, fmt.Errorf("%w: missing .TRAN terminator line", ErrMalformedNetlist)
}

func parseStepper(line string) (Stepper, error) {
	fields := strings.Fields(strings.TrimPrefix(line, "."))
	if len(fields) != 5 {
		return Stepper{}, fmt.Errorf("%w: stepper line wants 5 fields, got %d", ErrMalformedNetlist, len(fields))
	}

	method := strings.ToUpper(fields[0])
	if method != "TRAN" {
		return Stepper{}, fmt.Errorf("%w: unsupported analysis %q", ErrUnsupportedComponent, method)
	}

	tTotal, err := ParseValue(fields[1])
	if err != nil {
		return Stepper{}, err
	}
	step, err := ParseValue(fields[2])
	if err != nil {
		return Stepper{}, err
	}
	typ := strings.ToUpper(fields[3])
	inner, err := strconv.Atoi(fields[4])
	if err != nil {
		return Stepper{}, fmt.Errorf("%w: bad inner_steps %q", ErrMalformedNetlist, fields[4])
	}

	return Stepper{Method: method, TTotal: tTotal, Step: step, Type: typ, InnerSteps: inner}, nil
}

func parseComponent(line string) (device.Device, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: empty component line", ErrMalformedNetlist)
	}

	name := fields[0]
	args := fields[1:]
	kind := name[0]

	switch kind {
	case 'R':
		return parseRLC(name, args, kind)
	case 'L':
		return parseRLC(name, args, kind)
	case 'C':
		return parseRLC(name, args, kind)
	case 'N':
		return parsePWL(name, args)
	case 'E', 'F', 'G', 'H':
		return parseControlled(name, args, kind)
	case 'O':
		return parseOpAmp(name, args)
	case 'D':
		return parseDiode(name, args)
	case 'M':
		return parseMosfet(name, args)
	case 'I':
		return parseCurrentSource(name, args)
	case 'V':
		return parseVoltageSource(name, args)
	default:
		return nil, fmt.Errorf("%w: unknown component tag %q", ErrMalformedNetlist, string(kind))
	}
}

func parseRLC(name string, args []string, kind byte) (device.Device, error) {
	if len(args) < 3 {
		return nil, fmt.Errorf("%w: %s: expected 2 nodes + value", ErrMalformedNetlist, name)
	}
	nodes := []string{args[0], args[1]}
	value, err := ParseValue(args[2])
	if err != nil {
		return nil, err
	}

	ic := 0.0
	for _, f := range args[3:] {
		if strings.HasPrefix(strings.ToUpper(f), "IC=") {
			ic, err = ParseValue(f[3:])
			if err != nil {
				return nil, err
			}
		}
	}

	switch kind {
	case 'R':
		return device.NewResistor(name, nodes, value), nil
	case 'L':
		return device.NewInductor(name, nodes, value, ic), nil
	case 'C':
		return device.NewCapacitor(name, nodes, value, ic), nil
	}
	return nil, fmt.Errorf("%w: unreachable RLC kind %q", ErrMalformedNetlist, string(kind))
}

func parsePWL(name string, args []string) (device.Device, error) {
	if len(args) != 10 {
		return nil, fmt.Errorf("%w: %s: expected 2 nodes + 8 breakpoint values", ErrMalformedNetlist, name)
	}
	nodes := []string{args[0], args[1]}
	vals := make([]float64, 8)
	for i := 0; i < 8; i++ {
		v, err := ParseValue(args[2+i])
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	return device.NewPWLResistor(name, nodes, vals[0], vals[1], vals[2], vals[3], vals[4], vals[5], vals[6], vals[7]), nil
}

func parseControlled(name string, args []string, kind byte) (device.Device, error) {
	if len(args) != 5 {
		return nil, fmt.Errorf("%w: %s: expected 4 nodes + gain", ErrMalformedNetlist, name)
	}
	nodes := args[0:4]
	gain, err := ParseValue(args[4])
	if err != nil {
		return nil, err
	}

	switch kind {
	case 'E':
		return device.NewVCVS(name, nodes, gain), nil
	case 'F':
		return device.NewCCCS(name, nodes, gain), nil
	case 'G':
		return device.NewVCCS(name, nodes, gain), nil
	case 'H':
		return device.NewCCVS(name, nodes, gain), nil
	}
	return nil, fmt.Errorf("%w: unreachable controlled-source kind %q", ErrMalformedNetlist, string(kind))
}

func parseOpAmp(name string, args []string) (device.Device, error) {
	if len(args) != 3 {
		return nil, fmt.Errorf("%w: %s: expected 3 nodes", ErrMalformedNetlist, name)
	}
	return device.NewOpAmp(name, args), nil
}

func parseDiode(name string, args []string) (device.Device, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("%w: %s: expected 2 nodes", ErrMalformedNetlist, name)
	}
	return device.NewDiode(name, args), nil
}

func parseMosfet(name string, args []string) (device.Device, error) {
	if len(args) != 9 {
		return nil, fmt.Errorf("%w: %s: expected d g s type W L lambda K Vth", ErrMalformedNetlist, name)
	}
	nodes := args[0:3]

	var typ device.MosfetType
	switch strings.ToUpper(args[3]) {
	case "N":
		typ = device.NMOS
	case "P":
		typ = device.PMOS
	default:
		return nil, fmt.Errorf("%w: %s: unknown mosfet type %q", ErrMalformedNetlist, name, args[3])
	}

	nums, err := parseFloats(args[4:9])
	if err != nil {
		return nil, err
	}
	w, l, lambda, k, vth := nums[0], nums[1], nums[2], nums[3], nums[4]
	return device.NewMosfet(name, nodes, typ, w, l, lambda, k, vth), nil
}

// parseWaveformTagged parses a `DC|SIN|PULSE ...` waveform spec and
// returns the number of fields it consumed, so callers can detect
// trailing garbage.
func parseWaveformTagged(args []string) (device.Waveform, int, error) {
	if len(args) == 0 {
		return device.Waveform{}, 0, fmt.Errorf("%w: missing waveform spec", ErrMalformedNetlist)
	}

	switch strings.ToUpper(args[0]) {
	case "DC":
		if len(args) < 2 {
			return device.Waveform{}, 0, fmt.Errorf("%w: DC expects level", ErrMalformedNetlist)
		}
		level, err := ParseValue(args[1])
		if err != nil {
			return device.Waveform{}, 0, err
		}
		return device.Waveform{Kind: waveform.DC, Level: level}, 2, nil
	case "SIN":
		if len(args) < 8 {
			return device.Waveform{}, 0, fmt.Errorf("%w: SIN expects 7 parameters", ErrMalformedNetlist)
		}
		vals, err := parseFloats(args[1:8])
		if err != nil {
			return device.Waveform{}, 0, err
		}
		return device.Waveform{
			Kind:      waveform.SIN,
			Offset:    vals[0], Amplitude: vals[1], Freq: vals[2], Delay: vals[3],
			Damping: vals[4], PhaseDeg: vals[5], Cycles: vals[6],
		}, 8, nil
	case "PULSE":
		if len(args) < 9 {
			return device.Waveform{}, 0, fmt.Errorf("%w: PULSE expects 8 parameters", ErrMalformedNetlist)
		}
		vals, err := parseFloats(args[1:9])
		if err != nil {
			return device.Waveform{}, 0, err
		}
		return device.Waveform{
			Kind:   waveform.PULSE,
			V1:     vals[0], V2: vals[1], Delay: vals[2], TRise: vals[3],
			TFall: vals[4], TOn: vals[5], Period: vals[6], Cycles: vals[7],
		}, 9, nil
	default:
		return device.Waveform{}, 0, fmt.Errorf("%w: unknown waveform tag %q", ErrMalformedNetlist, strings.ToUpper(args[0]))
	}
}

func parseFloats(fields []string) ([]float64, error) {
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := ParseValue(f)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func parseVoltageSource(name string, args []string) (device.Device, error) {
	if len(args) < 3 {
		return nil, fmt.Errorf("%w: %s: expected 2 nodes + waveform", ErrMalformedNetlist, name)
	}
	nodes := []string{args[0], args[1]}
	src, _, err := parseWaveformTagged(args[2:])
	if err != nil {
		return nil, err
	}
	return device.NewVoltageSource(name, nodes, src), nil
}

func parseCurrentSource(name string, args []string) (device.Device, error) {
	if len(args) < 3 {
		return nil, fmt.Errorf("%w: %s: expected 2 nodes + waveform", ErrMalformedNetlist, name)
	}
	nodes := []string{args[0], args[1]}
	src, _, err := parseWaveformTagged(args[2:])
	if err != nil {
		return nil, err
	}
	return device.NewCurrentSource(name, nodes, src), nil
}

// Export renders nl in the output netlist format: node count excluding
// ground, then one line per component, then the stepper spec with no
// leading dot.
func Export(nl *Netlist) string {
	seen := map[string]bool{"0": true}
	count := 0
	for _, c := range nl.Components {
		for _, n := range c.GetNodeNames() {
			if !seen[n] {
				seen[n] = true
				count++
			}
		}
	}

	var b strings.Builder
	fmt.Fprintln(&b, count)
	for _, c := range nl.Components {
		fmt.Fprintln(&b, c.String())
	}
	fmt.Fprint(&b, nl.Stepper.String())
	return b.String()
}
