package lm

import (
	"math"
	"sort"
)

// MinConfig controls the bounded Nelder-Mead search.
type MinConfig struct {
	MaxIterations int     // 0 means 400*n
	Tolerance     float64 // function-value spread, 0 means 1e-12
}

// MinResult is the outcome of a bounded scalar minimization. Convergence
// is reported as a flag rather than an error: the best point found is
// always meaningful to the caller.
type MinResult struct {
	X          []float64
	F          float64
	Iterations int
	Converged  bool
}

// MinimizeBounded minimizes f over the box lower <= x <= upper using a
// Nelder-Mead simplex whose candidate points are clamped to the box.
func MinimizeBounded(f func([]float64) float64, x0, lower, upper []float64, cfg MinConfig) MinResult {
	n := len(x0)

	maxIter := cfg.MaxIterations
	if maxIter <= 0 {
		maxIter = 400 * n
	}

	tol := cfg.Tolerance
	if tol <= 0 {
		tol = 1e-12
	}

	clamp := func(x []float64) {
		project(x, lower, upper)
	}

	// Initial simplex around x0.
	simplex := make([][]float64, n+1)
	fvals := make([]float64, n+1)

	for i := range simplex {
		pt := make([]float64, n)
		copy(pt, x0)

		if i > 0 {
			j := i - 1

			h := 0.05 * (upper[j] - lower[j])
			if math.IsInf(h, 0) || h == 0 {
				h = 0.1 * math.Max(math.Abs(pt[j]), 1)
			}

			pt[j] += h
		}

		clamp(pt)
		simplex[i] = pt
		fvals[i] = f(pt)
	}

	order := func() {
		idx := make([]int, n+1)
		for i := range idx {
			idx[i] = i
		}

		sort.Slice(idx, func(a, b int) bool { return fvals[idx[a]] < fvals[idx[b]] })

		ns := make([][]float64, n+1)
		nf := make([]float64, n+1)

		for i, k := range idx {
			ns[i] = simplex[k]
			nf[i] = fvals[k]
		}

		copy(simplex, ns)
		copy(fvals, nf)
	}

	centroid := make([]float64, n)
	point := func(scale float64) ([]float64, float64) {
		pt := make([]float64, n)
		for j := 0; j < n; j++ {
			pt[j] = centroid[j] + scale*(centroid[j]-simplex[n][j])
		}

		clamp(pt)

		return pt, f(pt)
	}

	var iter int

	for iter = 0; iter < maxIter; iter++ {
		order()

		if math.Abs(fvals[n]-fvals[0]) <= tol*(math.Abs(fvals[0])+tol) {
			return MinResult{X: simplex[0], F: fvals[0], Iterations: iter, Converged: true}
		}

		for j := 0; j < n; j++ {
			centroid[j] = 0
			for i := 0; i < n; i++ {
				centroid[j] += simplex[i][j]
			}

			centroid[j] /= float64(n)
		}

		// Reflect.
		xr, fr := point(1)

		switch {
		case fr < fvals[0]:
			// Expand.
			xe, fe := point(2)
			if fe < fr {
				simplex[n], fvals[n] = xe, fe
			} else {
				simplex[n], fvals[n] = xr, fr
			}

		case fr < fvals[n-1]:
			simplex[n], fvals[n] = xr, fr

		default:
			// Contract.
			xc, fc := point(-0.5)
			if fc < fvals[n] {
				simplex[n], fvals[n] = xc, fc
			} else {
				// Shrink toward the best vertex.
				for i := 1; i <= n; i++ {
					for j := 0; j < n; j++ {
						simplex[i][j] = simplex[0][j] + 0.5*(simplex[i][j]-simplex[0][j])
					}

					clamp(simplex[i])
					fvals[i] = f(simplex[i])
				}
			}
		}
	}

	order()

	return MinResult{X: simplex[0], F: fvals[0], Iterations: iter, Converged: false}
}
