// Package result holds the simulator's trajectory — the ordered list of
// accepted time samples — and its text import/export, matching the
// simulator's results file format.
package result

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
)

// Sample is one accepted step: the simulated time and the node voltages
// / auxiliary currents at that time, ground excluded (index 0 of the
// system vector is never stored here).
type Sample struct {
	T float64
	V []float64
}

// Trajectory is the ordered output of Circuit.Run. Names labels every
// entry of each Sample's V in order: real node labels first, then one
// synthesized name per auxiliary/branch-current variable, matching the
// order Circuit.bind assigned indices. Ground is never included.
type Trajectory struct {
	Samples []Sample
	Names   []string
}

// Append adds one accepted sample. v must already have ground excluded.
func (tr *Trajectory) Append(t float64, v []float64) {
	cp := make([]float64, len(v))
	copy(cp, v)
	tr.Samples = append(tr.Samples, Sample{T: t, V: cp})
}

// Export renders the trajectory as space-separated text: a header line
// `t <node1> <node2> ...` naming every node and auxiliary variable,
// followed by one row per sample, values rounded to 6 decimals.
func Export(tr *Trajectory) string {
	var b strings.Builder

	b.WriteString("t")
	for _, name := range tr.Names {
		b.WriteString(" ")
		b.WriteString(name)
	}
	b.WriteString("\n")

	for _, s := range tr.Samples {
		fmt.Fprintf(&b, "%.6f", s.T)
		for _, v := range s.V {
			fmt.Fprintf(&b, " %.6f", round6(v))
		}
		b.WriteString("\n")
	}

	return b.String()
}

func round6(v float64) float64 {
	const scale = 1e6
	if v >= 0 {
		return float64(int64(v*scale+0.5)) / scale
	}
	return float64(int64(v*scale-0.5)) / scale
}

// Import reads back a trajectory written by Export.
func Import(text string) (*Trajectory, error) {
	scanner := bufio.NewScanner(strings.NewReader(text))
	tr := &Trajectory{}

	if !scanner.Scan() {
		return nil, fmt.Errorf("%w: empty results file", ErrIO)
	}
	header := strings.Fields(scanner.Text())
	if len(header) > 0 {
		tr.Names = header[1:]
	}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		t, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: bad time field %q", ErrIO, fields[0])
		}
		v := make([]float64, len(fields)-1)
		for i, f := range fields[1:] {
			v[i], err = strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: bad value field %q", ErrIO, f)
			}
		}
		tr.Samples = append(tr.Samples, Sample{T: t, V: v})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIO, err)
	}
	return tr, nil
}
