package circuit

import (
	"errors"
	"math"
	"testing"

	"github.com/lassenlab/spicetran/pkg/device"
	"github.com/lassenlab/spicetran/pkg/waveform"
)

func sinDivider() *Circuit {
	src := device.Waveform{Kind: waveform.SIN, Offset: 1, Amplitude: 5, Freq: 1000, Delay: 0.002, Damping: 80, PhaseDeg: 90, Cycles: 5}
	v1 := device.NewVoltageSource("V1", []string{"1", "0"}, src)
	r1 := device.NewResistor("R1", []string{"1", "2"}, 1000)
	r2 := device.NewResistor("R2", []string{"2", "0"}, 1000)

	return &Circuit{
		Components: []device.Device{v1, r1, r2},
		Method:     "BE",
		TTotal:     5e-3,
		DtNominal:  1e-5,
		InnerSteps: 1,
	}
}

func TestSinusoidalDividerHalves(t *testing.T) {
	c := sinDivider()
	tr, err := c.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	checked := 0
	for _, s := range tr.Samples {
		if s.T < 0.002+1.0/1000 {
			continue
		}
		v1, v2 := s.V[0], s.V[1]
		if v1 == 0 {
			continue
		}
		rel := math.Abs(v2-0.5*v1) / math.Abs(v1)
		if rel > 0.01 {
			t.Errorf("t=%v: v2=%v, v1=%v, relative error %v exceeds 1%%", s.T, v2, v1, rel)
		}
		checked++
	}
	if checked == 0 {
		t.Fatal("no samples checked after the settling window")
	}
}

func invertingAmp() *Circuit {
	src := device.Waveform{Kind: waveform.SIN, Offset: 0, Amplitude: 1, Freq: 100, Cycles: 5}
	vin := device.NewVoltageSource("Vin", []string{"in", "0"}, src)
	r1 := device.NewResistor("R1", []string{"in", "neg"}, 1000)
	r2 := device.NewResistor("R2", []string{"neg", "out"}, 2000)
	op := device.NewOpAmp("O1", []string{"0", "neg", "out"})

	return &Circuit{
		Components: []device.Device{vin, r1, r2, op},
		Method:     "BE",
		TTotal:     0.02,
		DtNominal:  1e-5,
		InnerSteps: 1,
	}
}

func TestInvertingAmplifierGain(t *testing.T) {
	c := invertingAmp()
	tr, err := c.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	checked := 0
	for _, s := range tr.Samples {
		if s.T < 1.0/100 {
			continue
		}
		vin, vout := s.V[0], s.V[2]
		if math.Abs(vin) < 0.05 {
			continue
		}
		rel := math.Abs(vout-(-2*vin)) / math.Abs(2*vin)
		if rel > 0.01 {
			t.Errorf("t=%v: vout=%v, vin=%v, relative error %v exceeds 1%%", s.T, vout, vin, rel)
		}
		checked++
	}
	if checked == 0 {
		t.Fatal("no samples checked after the first period")
	}
}

func rlcStep() *Circuit {
	src := device.Waveform{Kind: waveform.PULSE, V1: 0, V2: 5, Delay: 1e-3, TRise: 1e-9, TFall: 1e-9, TOn: 0.01, Period: 0.02, Cycles: 1}
	v1 := device.NewVoltageSource("V1", []string{"1", "0"}, src)
	r := device.NewResistor("R1", []string{"1", "2"}, 200)
	l := device.NewInductor("L1", []string{"2", "3"}, 10e-3, 0)
	c := device.NewCapacitor("C1", []string{"3", "0"}, 1e-6, 0)

	return &Circuit{
		Components: []device.Device{v1, r, l, c},
		Method:     "BE",
		TTotal:     5e-3,
		DtNominal:  1e-6,
		InnerSteps: 1,
	}
}

// TestRLCStepResponseBounded drives a series RLC with a PULSE source and
// checks the step response settles without diverging or overshooting
// wildly, per the damped-oscillation-toward-5V expectation.
func TestRLCStepResponseBounded(t *testing.T) {
	c := rlcStep()
	tr, err := c.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(tr.Samples) == 0 {
		t.Fatal("no samples produced")
	}
	for _, s := range tr.Samples {
		v3 := s.V[2]
		if math.IsNaN(v3) || math.IsInf(v3, 0) {
			t.Fatalf("t=%v: v3=%v is non-finite", s.T, v3)
		}
		if math.Abs(v3) > 1.5*5 {
			t.Errorf("t=%v: v3=%v exceeds 1.5x the 5V step (overshoot bound)", s.T, v3)
		}
	}
}

func halfWaveRectifier() *Circuit {
	src := device.Waveform{Kind: waveform.SIN, Offset: 0, Amplitude: 12, Freq: 60, Cycles: 6}
	v1 := device.NewVoltageSource("V1", []string{"1", "0"}, src)
	d := device.NewDiode("D1", []string{"1", "2"})
	r := device.NewResistor("R1", []string{"2", "0"}, 1000)
	c := device.NewCapacitor("C1", []string{"2", "0"}, 50e-6, 0)

	return &Circuit{
		Components: []device.Device{v1, d, r, c},
		Method:     "BE",
		TTotal:     0.1,
		DtNominal:  1e-5,
		InnerSteps: 1,
	}
}

// TestHalfWaveRectifierBounded checks the rectified/smoothed output never
// exceeds the source peak and never goes non-finite, after the first two
// cycles have settled.
func TestHalfWaveRectifierBounded(t *testing.T) {
	c := halfWaveRectifier()
	tr, err := c.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	settleT := 2.0 / 60
	checked := 0
	for _, s := range tr.Samples {
		v2 := s.V[1]
		if math.IsNaN(v2) || math.IsInf(v2, 0) {
			t.Fatalf("t=%v: v2=%v is non-finite", s.T, v2)
		}
		if s.T < settleT {
			continue
		}
		if v2 > 12.0+1e-3 {
			t.Errorf("t=%v: v2=%v exceeds the 12V source peak", s.T, v2)
		}
		checked++
	}
	if checked == 0 {
		t.Fatal("no samples checked after the settling window")
	}
}

func chuaLikeOscillator() *Circuit {
	r := device.NewResistor("R1", []string{"1", "2"}, 1.9)
	l := device.NewInductor("L1", []string{"1", "0"}, 1, 1)
	c1 := device.NewCapacitor("C1", []string{"1", "0"}, 1, 1)
	c2 := device.NewCapacitor("C2", []string{"2", "0"}, 0.31, 1)
	n := device.NewPWLResistor("N1", []string{"2", "0"}, -2, 1.1, -1, 0.7, 1, -0.7, 2, -1.1)

	return &Circuit{
		Components: []device.Device{r, l, c1, c2, n},
		Method:     "BE",
		TTotal:     1000,
		DtNominal:  0.1,
		InnerSteps: 1,
	}
}

// TestChuaLikeOscillatorBounded checks the nonlinear oscillator's node
// voltages stay bounded over a long run instead of diverging to ±Inf/NaN,
// per the "sustained bounded trajectory" expectation.
func TestChuaLikeOscillatorBounded(t *testing.T) {
	c := chuaLikeOscillator()
	tr, err := c.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(tr.Samples) == 0 {
		t.Fatal("no samples produced")
	}
	for _, s := range tr.Samples {
		for i, v := range s.V[:2] {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				t.Fatalf("t=%v: v%d=%v diverged", s.T, i+1, v)
			}
			if math.Abs(v) > 1e3 {
				t.Errorf("t=%v: v%d=%v exceeds the bounded-trajectory envelope", s.T, i+1, v)
			}
		}
	}
}

func mosfetIdVdsSweep() *Circuit {
	drain := device.Waveform{Kind: waveform.PULSE, V1: 0, V2: 15, Delay: 0, TRise: 0.01, TFall: 1e-9, TOn: 0.05, Period: 0.1, Cycles: 1}
	vd := device.NewVoltageSource("Vd", []string{"1", "0"}, drain)
	r := device.NewResistor("R1", []string{"1", "2"}, 1)
	vg := device.NewVoltageSource("Vg", []string{"3", "0"}, device.Waveform{Kind: waveform.DC, Level: 7})
	m := device.NewMosfet("M1", []string{"2", "3", "0"}, device.NMOS, 2e-5, 1e-6, 0.01, 1e-4, 0.5)

	return &Circuit{
		Components: []device.Device{vd, r, vg, m},
		Method:     "BE",
		TTotal:     0.1,
		DtNominal:  1e-5,
		InnerSteps: 1,
	}
}

// TestMosfetIdVdsSweepBounded drives the drain with a ramping PULSE and a
// fixed gate bias and checks the drain-node voltage (and thus the implied
// load current) stays finite and within the supply rail as Id rises into
// saturation.
func TestMosfetIdVdsSweepBounded(t *testing.T) {
	c := mosfetIdVdsSweep()
	tr, err := c.Run()
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(tr.Samples) == 0 {
		t.Fatal("no samples produced")
	}
	for _, s := range tr.Samples {
		vdrain := s.V[1]
		if math.IsNaN(vdrain) || math.IsInf(vdrain, 0) {
			t.Fatalf("t=%v: drain node=%v is non-finite", s.T, vdrain)
		}
		if vdrain < -1e-6 || vdrain > 15.0+1e-6 {
			t.Errorf("t=%v: drain node=%v outside the [0,15V] supply rail", s.T, vdrain)
		}
	}
}

func TestMissingGround(t *testing.T) {
	r := device.NewResistor("R1", []string{"1", "2"}, 1000)
	c := &Circuit{
		Components: []device.Device{r},
		Method:     "BE",
		TTotal:     1e-3,
		DtNominal:  1e-5,
		InnerSteps: 1,
	}
	_, err := c.Run()
	if !errors.Is(err, ErrMissingGround) {
		t.Errorf("err = %v, want ErrMissingGround", err)
	}
}

func TestUnsupportedIntegrationMethod(t *testing.T) {
	r := device.NewResistor("R1", []string{"1", "0"}, 1000)
	c := &Circuit{
		Components: []device.Device{r},
		Method:     "FE",
		TTotal:     1e-3,
		DtNominal:  1e-5,
		InnerSteps: 1,
	}
	if _, err := c.Run(); err == nil {
		t.Error("FE method: expected an error, got nil")
	}
}

func TestDeterminism(t *testing.T) {
	// A circuit with a nonlinear device so the re-roll RNG is exercised,
	// but simple enough to converge well within M_MAX. Each call builds
	// fresh device instances so the two runs don't share mutable history.
	build := func() *Circuit {
		src := device.Waveform{Kind: waveform.SIN, Offset: 0, Amplitude: 12, Freq: 60, Cycles: 6}
		v := device.NewVoltageSource("V1", []string{"1", "0"}, src)
		d := device.NewDiode("D1", []string{"1", "2"})
		r := device.NewResistor("R1", []string{"2", "0"}, 1000)
		cap := device.NewCapacitor("C1", []string{"2", "0"}, 50e-6, 0)
		return &Circuit{
			Components: []device.Device{v, r, cap, d},
			Method:     "BE",
			TTotal:     2e-3,
			DtNominal:  1e-5,
			InnerSteps: 1,
		}
	}

	a, err := build().Run()
	if err != nil {
		t.Fatalf("first Run: %v", err)
	}
	b, err := build().Run()
	if err != nil {
		t.Fatalf("second Run: %v", err)
	}

	if len(a.Samples) != len(b.Samples) {
		t.Fatalf("sample counts differ: %d vs %d", len(a.Samples), len(b.Samples))
	}
	for i := range a.Samples {
		if a.Samples[i].T != b.Samples[i].T {
			t.Fatalf("sample %d: t differs: %v vs %v", i, a.Samples[i].T, b.Samples[i].T)
		}
		for j := range a.Samples[i].V {
			if a.Samples[i].V[j] != b.Samples[i].V[j] {
				t.Fatalf("sample %d: v[%d] differs: %v vs %v", i, j, a.Samples[i].V[j], b.Samples[i].V[j])
			}
		}
	}
}
