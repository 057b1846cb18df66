package result

import (
	"errors"
	"strings"
	"testing"
)

func TestAppendCopiesSlice(t *testing.T) {
	var tr Trajectory
	v := []float64{1, 2, 3}
	tr.Append(0, v)
	v[0] = 99 // mutating the caller's slice must not affect the stored sample

	if tr.Samples[0].V[0] != 1 {
		t.Errorf("Samples[0].V[0] = %v, want 1 (independent copy)", tr.Samples[0].V[0])
	}
}

func TestExportHeaderAndRounding(t *testing.T) {
	tr := Trajectory{Names: []string{"1", "2"}}
	tr.Append(0, []float64{1.23456789, -0.0000001})
	tr.Append(1e-5, []float64{2.0, 0.0})

	out := Export(&tr)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if lines[0] != "t 1 2" {
		t.Errorf("header = %q, want %q", lines[0], "t 1 2")
	}
	if !strings.Contains(lines[1], "1.234568") {
		t.Errorf("row 1 = %q, want value rounded to 6 decimals", lines[1])
	}
}

func TestImportExportRoundTrip(t *testing.T) {
	var tr Trajectory
	tr.Append(0, []float64{1, 2})
	tr.Append(1e-5, []float64{1.5, 2.5})

	out := Export(&tr)
	got, err := Import(out)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if len(got.Samples) != len(tr.Samples) {
		t.Fatalf("got %d samples, want %d", len(got.Samples), len(tr.Samples))
	}
	for i, s := range got.Samples {
		if s.T != tr.Samples[i].T {
			t.Errorf("sample %d: t = %v, want %v", i, s.T, tr.Samples[i].T)
		}
		for j, v := range s.V {
			if v != tr.Samples[i].V[j] {
				t.Errorf("sample %d: v[%d] = %v, want %v", i, j, v, tr.Samples[i].V[j])
			}
		}
	}
}

func TestImportRejectsEmptyFile(t *testing.T) {
	_, err := Import("")
	if !errors.Is(err, ErrIO) {
		t.Errorf("err = %v, want ErrIO", err)
	}
}

func TestImportRejectsBadField(t *testing.T) {
	_, err := Import("t v1\nnot-a-number 1.0\n")
	if !errors.Is(err, ErrIO) {
		t.Errorf("err = %v, want ErrIO", err)
	}
}
