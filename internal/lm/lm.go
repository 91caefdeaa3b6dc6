// Package lm provides the bounded nonlinear least-squares and
// derivative-free minimization cores shared by the fitting packages.
package lm

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Errors returned by Solve.
var (
	ErrNoConvergence = errors.New("lm: no convergence within iteration limit")
	ErrSingular      = errors.New("lm: singular normal matrix")
	ErrDimension     = errors.New("lm: dimension mismatch")
)

// Problem describes a residual vector to be minimized in the least-squares
// sense. F must write the residuals for the given parameters into out,
// which has length NumResiduals.
type Problem struct {
	F            func(params, out []float64)
	NumResiduals int
}

// Settings controls the Levenberg-Marquardt iteration.
type Settings struct {
	MaxIterations int     // 0 means 200
	Tolerance     float64 // relative SSR reduction, 0 means 1e-12
	InitialLambda float64 // 0 means 1e-3
}

// Result holds the solution of a bounded least-squares fit.
type Result struct {
	Params     []float64
	Covariance *mat.Dense // scaled by residual variance
	SSR        float64
	Iterations int
}

// Stddev returns the 1-sigma standard error of parameter i, derived from
// the covariance diagonal. NaN entries are reported as 0.
func (r *Result) Stddev(i int) float64 {
	v := r.Covariance.At(i, i)
	if v <= 0 || math.IsNaN(v) {
		return 0
	}

	return math.Sqrt(v)
}

// Solve minimizes the sum of squared residuals of p subject to box
// constraints lower[i] <= params[i] <= upper[i], starting from x0.
// It uses damped Gauss-Newton steps with a forward-difference Jacobian,
// projecting each candidate onto the feasible box.
func Solve(p Problem, x0, lower, upper []float64, s Settings) (*Result, error) {
	n := len(x0)
	m := p.NumResiduals

	if n == 0 || len(lower) != n || len(upper) != n {
		return nil, ErrDimension
	}

	if s.MaxIterations <= 0 {
		s.MaxIterations = 200
	}

	if s.Tolerance <= 0 {
		s.Tolerance = 1e-12
	}

	lambda := s.InitialLambda
	if lambda <= 0 {
		lambda = 1e-3
	}

	x := make([]float64, n)
	copy(x, x0)
	project(x, lower, upper)

	res := make([]float64, m)
	p.F(x, res)
	ssr := sumSquares(res)

	jac := mat.NewDense(m, n, nil)
	trial := make([]float64, n)
	trialRes := make([]float64, m)

	var iter int

	for iter = 0; iter < s.MaxIterations; iter++ {
		numJacobian(p, x, res, lower, upper, jac)

		// Normal equations with Marquardt damping on the diagonal.
		var jtj mat.Dense
		jtj.Mul(jac.T(), jac)

		g := mat.NewVecDense(n, nil)
		g.MulVec(jac.T(), mat.NewVecDense(m, res))

		improved := false

		for attempt := 0; attempt < 20; attempt++ {
			a := mat.NewDense(n, n, nil)
			a.Copy(&jtj)

			for i := 0; i < n; i++ {
				d := jtj.At(i, i)
				if d == 0 {
					d = 1
				}

				a.Set(i, i, jtj.At(i, i)+lambda*d)
			}

			var step mat.VecDense
			if err := step.SolveVec(a, g); err != nil {
				return nil, ErrSingular
			}

			for i := 0; i < n; i++ {
				trial[i] = x[i] - step.AtVec(i)
			}

			project(trial, lower, upper)

			p.F(trial, trialRes)
			trialSSR := sumSquares(trialRes)

			if trialSSR < ssr {
				relDrop := (ssr - trialSSR) / math.Max(ssr, 1e-300)
				copy(x, trial)
				copy(res, trialRes)
				ssr = trialSSR
				lambda = math.Max(lambda/10, 1e-12)
				improved = true

				if relDrop < s.Tolerance {
					return finish(p, x, ssr, iter+1, m, n, lower, upper)
				}

				break
			}

			lambda *= 10
			if lambda > 1e12 {
				break
			}
		}

		if !improved {
			// No damped step improves the fit: the iteration has reached
			// a (possibly constrained) numerical minimum.
			return finish(p, x, ssr, iter+1, m, n, lower, upper)
		}
	}

	return nil, ErrNoConvergence
}

func finish(p Problem, x []float64, ssr float64, iters, m, n int, lower, upper []float64) (*Result, error) {
	res := make([]float64, m)
	p.F(x, res)

	jac := mat.NewDense(m, n, nil)
	numJacobian(p, x, res, lower, upper, jac)

	var jtj mat.Dense
	jtj.Mul(jac.T(), jac)

	cov := mat.NewDense(n, n, nil)
	if err := cov.Inverse(&jtj); err != nil {
		return nil, ErrSingular
	}

	// Scale by the residual variance estimate.
	dof := m - n
	if dof < 1 {
		dof = 1
	}

	cov.Scale(ssr/float64(dof), cov)

	out := make([]float64, n)
	copy(out, x)

	return &Result{
		Params:     out,
		Covariance: cov,
		SSR:        ssr,
		Iterations: iters,
	}, nil
}

// numJacobian fills jac with a forward-difference Jacobian at x, flipping
// to a backward difference when a step would leave the feasible box.
func numJacobian(p Problem, x, res []float64, lower, upper []float64, jac *mat.Dense) {
	n := len(x)
	m := p.NumResiduals

	pert := make([]float64, n)
	copy(pert, x)

	tmp := make([]float64, m)

	for j := 0; j < n; j++ {
		h := math.Sqrt(machEps) * math.Max(math.Abs(x[j]), 1e-4)

		sign := 1.0
		if x[j]+h > upper[j] && x[j]-h >= lower[j] {
			sign = -1
		}

		pert[j] = x[j] + sign*h
		p.F(pert, tmp)
		pert[j] = x[j]

		for i := 0; i < m; i++ {
			jac.Set(i, j, (tmp[i]-res[i])/(sign*h))
		}
	}
}

const machEps = 2.220446049250313e-16

func project(x, lower, upper []float64) {
	for i := range x {
		if x[i] < lower[i] {
			x[i] = lower[i]
		}

		if x[i] > upper[i] {
			x[i] = upper[i]
		}
	}
}

func sumSquares(v []float64) float64 {
	var s float64
	for _, r := range v {
		s += r * r
	}

	return s
}
