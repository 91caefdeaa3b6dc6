package lm

import (
	"math"
	"testing"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestSolveRecoversExponentialDecay(t *testing.T) {
	// y = A * exp(-k*x), A=3, k=0.7, zero noise.
	n := 50
	x := make([]float64, n)
	y := make([]float64, n)

	for i := range x {
		x[i] = float64(i) * 0.1
		y[i] = 3 * math.Exp(-0.7*x[i])
	}

	prob := Problem{
		NumResiduals: n,
		F: func(p, out []float64) {
			for i := range x {
				out[i] = p[0]*math.Exp(-p[1]*x[i]) - y[i]
			}
		},
	}

	res, err := Solve(prob,
		[]float64{1, 0.1},
		[]float64{0, 0},
		[]float64{math.Inf(1), math.Inf(1)},
		Settings{})
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}

	if !almostEqual(res.Params[0], 3, 1e-6) {
		t.Errorf("A: got %g, want 3", res.Params[0])
	}
	if !almostEqual(res.Params[1], 0.7, 1e-6) {
		t.Errorf("k: got %g, want 0.7", res.Params[1])
	}
	if res.SSR > 1e-12 {
		t.Errorf("SSR: got %g, want ~0", res.SSR)
	}
}

func TestSolveRespectsBounds(t *testing.T) {
	// Unconstrained optimum is p=2; bound forces p<=1.5.
	x := []float64{0, 1, 2, 3, 4}

	prob := Problem{
		NumResiduals: len(x),
		F: func(p, out []float64) {
			for i := range x {
				out[i] = p[0]*x[i] - 2*x[i]
			}
		},
	}

	res, err := Solve(prob, []float64{0.5}, []float64{0}, []float64{1.5}, Settings{})
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}

	if res.Params[0] > 1.5+1e-12 {
		t.Errorf("param exceeds bound: %g", res.Params[0])
	}

	if !almostEqual(res.Params[0], 1.5, 1e-6) {
		t.Errorf("param: got %g, want 1.5 (active bound)", res.Params[0])
	}
}

func TestSolveStddev(t *testing.T) {
	// Noisy line: the covariance diagonal must be positive and finite.
	x := make([]float64, 20)
	y := make([]float64, 20)

	for i := range x {
		x[i] = float64(i)
		y[i] = 2*x[i] + 1
		if i%2 == 0 {
			y[i] += 0.1
		} else {
			y[i] -= 0.1
		}
	}

	prob := Problem{
		NumResiduals: len(x),
		F: func(p, out []float64) {
			for i := range x {
				out[i] = p[0]*x[i] + p[1] - y[i]
			}
		},
	}

	res, err := Solve(prob,
		[]float64{0, 0},
		[]float64{math.Inf(-1), math.Inf(-1)},
		[]float64{math.Inf(1), math.Inf(1)},
		Settings{})
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}

	for i := 0; i < 2; i++ {
		sd := res.Stddev(i)
		if sd <= 0 || math.IsNaN(sd) || math.IsInf(sd, 0) {
			t.Errorf("Stddev(%d): got %g", i, sd)
		}
	}
}

func TestSolveDimensionMismatch(t *testing.T) {
	prob := Problem{NumResiduals: 1, F: func(p, out []float64) { out[0] = p[0] }}

	_, err := Solve(prob, []float64{0}, []float64{0, 0}, []float64{1}, Settings{})
	if err != ErrDimension {
		t.Fatalf("err: got %v, want ErrDimension", err)
	}
}

func TestMinimizeBoundedQuadratic(t *testing.T) {
	f := func(x []float64) float64 {
		return (x[0]-0.3)*(x[0]-0.3) + (x[1]-0.6)*(x[1]-0.6)
	}

	res := MinimizeBounded(f, []float64{0.5, 0.5}, []float64{0, 0}, []float64{1, 1}, MinConfig{})

	if !res.Converged {
		t.Fatalf("expected convergence after %d iterations", res.Iterations)
	}

	if !almostEqual(res.X[0], 0.3, 1e-5) || !almostEqual(res.X[1], 0.6, 1e-5) {
		t.Errorf("minimum: got %v, want [0.3 0.6]", res.X)
	}
}

func TestMinimizeBoundedActiveBound(t *testing.T) {
	// Unconstrained minimum at -1 lies outside [0,1].
	f := func(x []float64) float64 {
		return (x[0] + 1) * (x[0] + 1)
	}

	res := MinimizeBounded(f, []float64{0.5}, []float64{0}, []float64{1}, MinConfig{})

	if !almostEqual(res.X[0], 0, 1e-6) {
		t.Errorf("minimum: got %g, want 0 (active bound)", res.X[0])
	}
}
