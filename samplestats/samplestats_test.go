package samplestats

import (
	"errors"
	"math"
	"testing"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestSingleMeasurement(t *testing.T) {
	g, err := NewGroup("Sample_1", []Measurement{{Intensity: 42, Concentration: 580}})
	if err != nil {
		t.Fatalf("NewGroup: %v", err)
	}

	if g.N != 1 {
		t.Fatalf("N: got %d, want 1", g.N)
	}

	for name, s := range map[string]Summary{"intensity": g.Intensity, "concentration": g.Concentration} {
		if s.SD != 0 {
			t.Errorf("%s SD: got %g, want 0", name, s.SD)
		}
		if s.RSD != 0 {
			t.Errorf("%s RSD: got %g, want 0", name, s.RSD)
		}
		if s.SEM != 0 {
			t.Errorf("%s SEM: got %g, want 0", name, s.SEM)
		}
	}

	if g.Intensity.Mean != 42 {
		t.Errorf("mean intensity: got %g, want 42", g.Intensity.Mean)
	}
}

func TestAllEqualMeasurements(t *testing.T) {
	ms := []Measurement{
		{Intensity: 7, Concentration: 100},
		{Intensity: 7, Concentration: 100},
		{Intensity: 7, Concentration: 100},
	}

	g, err := NewGroup("Sample_1", ms)
	if err != nil {
		t.Fatalf("NewGroup: %v", err)
	}

	if g.Intensity.SD != 0 || g.Intensity.RSD != 0 {
		t.Errorf("intensity: SD %g RSD %g, want 0", g.Intensity.SD, g.Intensity.RSD)
	}
}

func TestZeroMeanRSD(t *testing.T) {
	ms := []Measurement{
		{Intensity: -1, Concentration: 0},
		{Intensity: 1, Concentration: 0},
	}

	g, err := NewGroup("Sample_1", ms)
	if err != nil {
		t.Fatalf("NewGroup: %v", err)
	}

	if g.Intensity.RSD != 0 {
		t.Errorf("RSD at zero mean: got %g, want 0", g.Intensity.RSD)
	}
}

func TestSEMEqualsSDOverSqrtN(t *testing.T) {
	ms := []Measurement{
		{Intensity: 1, Concentration: 2},
		{Intensity: 2, Concentration: 4},
		{Intensity: 3, Concentration: 6},
		{Intensity: 4, Concentration: 8},
	}

	g, err := NewGroup("Sample_1", ms)
	if err != nil {
		t.Fatalf("NewGroup: %v", err)
	}

	want := g.Intensity.SD / math.Sqrt(4)
	if !almostEqual(g.Intensity.SEM, want, 1e-12) {
		t.Errorf("SEM: got %g, want %g", g.Intensity.SEM, want)
	}
}

func TestReferenceScenario(t *testing.T) {
	// Two spectra of one sample with concentrations 10.0 and 10.4.
	ms := []Measurement{
		{Intensity: 0.72, Concentration: 10.0},
		{Intensity: 0.75, Concentration: 10.4},
	}

	g, err := NewGroup("Sample_1", ms)
	if err != nil {
		t.Fatalf("NewGroup: %v", err)
	}

	c := g.Concentration

	if !almostEqual(c.Mean, 10.2, 1e-12) {
		t.Errorf("mean: got %g, want 10.2", c.Mean)
	}
	if !almostEqual(c.SD, 0.283, 5e-4) {
		t.Errorf("SD: got %g, want ~0.283", c.SD)
	}
	if !almostEqual(c.RSD, 2.77, 5e-3) {
		t.Errorf("RSD: got %g, want ~2.77", c.RSD)
	}
	if !almostEqual(c.SEM, 0.2, 1e-12) {
		t.Errorf("SEM: got %g, want 0.2", c.SEM)
	}
}

func TestEmptyGroup(t *testing.T) {
	if _, err := NewGroup("Sample_1", nil); !errors.Is(err, ErrEmptyGroup) {
		t.Fatalf("got %v, want ErrEmptyGroup", err)
	}
}

func TestPartition(t *testing.T) {
	ms := make([]Measurement, 7)
	for i := range ms {
		ms[i] = Measurement{Intensity: float64(i)}
	}

	groups, err := Partition(ms, 3)
	if err != nil {
		t.Fatalf("Partition: %v", err)
	}

	if len(groups) != 3 {
		t.Fatalf("groups: got %d, want 3", len(groups))
	}

	wantN := []int{3, 3, 1}
	wantName := []string{"Sample_1", "Sample_2", "Sample_3"}

	for i, g := range groups {
		if g.N != wantN[i] {
			t.Errorf("group %d: N %d, want %d", i, g.N, wantN[i])
		}
		if g.Name != wantName[i] {
			t.Errorf("group %d: name %q, want %q", i, g.Name, wantName[i])
		}
	}
}

func TestPartitionInvalidSize(t *testing.T) {
	if _, err := Partition([]Measurement{{}}, 0); !errors.Is(err, ErrInvalidGroupSize) {
		t.Fatalf("got %v, want ErrInvalidGroupSize", err)
	}
}
