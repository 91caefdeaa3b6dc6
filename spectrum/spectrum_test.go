package spectrum

import (
	"errors"
	"math"
	"testing"
)

func mustNew(t *testing.T, energy, counts []float64) *Spectrum {
	t.Helper()

	s, err := New(energy, counts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	return s
}

func TestNewValidation(t *testing.T) {
	cases := []struct {
		name   string
		energy []float64
		counts []float64
		want   error
	}{
		{"length mismatch", []float64{1, 2}, []float64{1}, ErrLengthMismatch},
		{"empty", nil, nil, ErrEmpty},
		{"unordered", []float64{1, 1}, []float64{0, 0}, ErrEnergyOrder},
		{"decreasing", []float64{2, 1}, []float64{0, 0}, ErrEnergyOrder},
		{"negative counts", []float64{1, 2}, []float64{0, -1}, ErrNegativeCounts},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := New(tc.energy, tc.counts); !errors.Is(err, tc.want) {
				t.Errorf("got %v, want %v", err, tc.want)
			}
		})
	}
}

func TestSlice(t *testing.T) {
	s := mustNew(t,
		[]float64{1, 2, 3, 4, 5},
		[]float64{10, 20, 30, 40, 50})

	x, y := s.Slice(Window{Min: 2, Max: 4})

	if len(x) != 3 || x[0] != 2 || x[2] != 4 {
		t.Errorf("energies: got %v, want [2 3 4]", x)
	}
	if len(y) != 3 || y[0] != 20 || y[2] != 40 {
		t.Errorf("counts: got %v, want [20 30 40]", y)
	}
}

func TestSliceEmptyWindow(t *testing.T) {
	s := mustNew(t, []float64{1, 2, 3}, []float64{1, 1, 1})

	x, _ := s.Slice(Window{Min: 10, Max: 20})
	if len(x) != 0 {
		t.Errorf("got %d points, want 0", len(x))
	}
}

func TestOutside(t *testing.T) {
	s := mustNew(t,
		[]float64{1, 2, 3, 4, 5},
		[]float64{10, 20, 30, 40, 50})

	x, y := s.Outside(Window{Min: 2, Max: 4})

	if len(x) != 2 || x[0] != 1 || x[1] != 5 {
		t.Errorf("energies: got %v, want [1 5]", x)
	}
	if y[0] != 10 || y[1] != 50 {
		t.Errorf("counts: got %v, want [10 50]", y)
	}
}

func TestWindowValidate(t *testing.T) {
	if err := (Window{Min: 1, Max: 2}).Validate(); err != nil {
		t.Errorf("valid window: %v", err)
	}

	if err := (Window{Min: 2, Max: 2}).Validate(); !errors.Is(err, ErrWindowBounds) {
		t.Errorf("degenerate window: got %v, want ErrWindowBounds", err)
	}
}

func TestEstimateBaselineLine(t *testing.T) {
	// Counts follow 2x+3 outside the window; the peak region is excluded.
	energy := make([]float64, 100)
	counts := make([]float64, 100)

	for i := range energy {
		energy[i] = float64(i) * 0.1
		counts[i] = 2*energy[i] + 3
	}

	counts[50] += 100 // spike inside the excluded window

	s := mustNew(t, energy, counts)
	slope, intercept := EstimateBaseline(s, Window{Min: 4.9, Max: 5.1})

	if math.Abs(slope-2) > 1e-9 {
		t.Errorf("slope: got %g, want 2", slope)
	}
	if math.Abs(intercept-3) > 1e-9 {
		t.Errorf("intercept: got %g, want 3", intercept)
	}
}

func TestEstimateBaselineFallback(t *testing.T) {
	// Window covers everything: fall back to a flat mean baseline.
	s := mustNew(t, []float64{1, 2, 3}, []float64{4, 5, 6})

	slope, intercept := EstimateBaseline(s, Window{Min: 0, Max: 10})

	if slope != 0 {
		t.Errorf("slope: got %g, want 0", slope)
	}
	if math.Abs(intercept-5) > 1e-12 {
		t.Errorf("intercept: got %g, want 5", intercept)
	}
}
