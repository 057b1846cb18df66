package netlist

import (
	"errors"
	"strings"
	"testing"
)

const sampleNetlist = `title line, ignored
R1 1 2 1k
C1 2 0 1u IC=0.5
L1 2 3 10m
V1 1 0 SIN 1 5 1000 0.002 80 90 5
.TRAN 5e-3 1e-5 BE 1
`

func TestParseComponentLines(t *testing.T) {
	nl, err := Parse(sampleNetlist)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(nl.Components) != 4 {
		t.Fatalf("got %d components, want 4", len(nl.Components))
	}
	if nl.Stepper.Method != "TRAN" || nl.Stepper.Type != "BE" || nl.Stepper.InnerSteps != 1 {
		t.Errorf("stepper = %+v", nl.Stepper)
	}
}

func TestParseValueUnits(t *testing.T) {
	cases := map[string]float64{
		"1k":   1e3,
		"1K":   1e3,
		"1meg": 1e6,
		"1u":   1e-6,
		"1n":   1e-9,
		"2.5m": 2.5e-3,
		"100":  100,
	}
	for in, want := range cases {
		got, err := ParseValue(in)
		if err != nil {
			t.Errorf("ParseValue(%q): %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("ParseValue(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestParseMalformedValue(t *testing.T) {
	_, err := ParseValue("not-a-number")
	if !errors.Is(err, ErrMalformedNetlist) {
		t.Errorf("err = %v, want ErrMalformedNetlist", err)
	}
}

func TestParseMissingTerminator(t *testing.T) {
	_, err := Parse("title\nR1 1 2 1k\n")
	if !errors.Is(err, ErrMalformedNetlist) {
		t.Errorf("err = %v, want ErrMalformedNetlist", err)
	}
}

func TestParseUnknownTag(t *testing.T) {
	_, err := Parse("title\nZ1 1 2 1k\n.TRAN 1 1 BE 1\n")
	if !errors.Is(err, ErrMalformedNetlist) {
		t.Errorf("err = %v, want ErrMalformedNetlist", err)
	}
}

func TestExportRoundTrip(t *testing.T) {
	nl, err := Parse(sampleNetlist)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	exported := Export(nl)

	lines := strings.Split(strings.TrimSpace(exported), "\n")
	// node count, 4 components, stepper line
	if len(lines) != 6 {
		t.Fatalf("exported has %d lines, want 6:\n%s", len(lines), exported)
	}
	if lines[0] != "3" {
		t.Errorf("node count = %q, want 3 (nodes 1,2,3 excluding ground)", lines[0])
	}
	if strings.HasPrefix(lines[len(lines)-1], ".") {
		t.Errorf("stepper line %q should not have a leading dot", lines[len(lines)-1])
	}
}

func TestParseMosfetLine(t *testing.T) {
	text := "title\nM1 1 2 0 N 2e-5 1e-6 0.01 1e-4 0.5\n.TRAN 1 1 BE 1\n"
	nl, err := Parse(text)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(nl.Components) != 1 {
		t.Fatalf("got %d components, want 1", len(nl.Components))
	}
}

func TestParsePulseWaveform(t *testing.T) {
	text := "title\nI1 1 0 PULSE 0 5 1e-3 1e-9 1e-9 0.01 0.02 1\n.TRAN 1 1 BE 1\n"
	nl, err := Parse(text)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(nl.Components) != 1 {
		t.Fatalf("got %d components, want 1", len(nl.Components))
	}
}
