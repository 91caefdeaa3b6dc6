package peakfit

import "math"

// Peak evaluates the Gaussian-A line shape at x. The parameter a is
// area-like: the analytic integral of the shape over all x equals a.
func Peak(x, a, x0, dx float64) float64 {
	d := (x - x0) / dx
	return math.Sqrt(math.Ln2/math.Pi) * (a / dx) * math.Exp(-math.Ln2*d*d)
}

// Background evaluates the linear background m·x + b.
func Background(x, m, b float64) float64 {
	return m*x + b
}

// Combined evaluates peak plus background.
func Combined(x, a, x0, dx, m, b float64) float64 {
	return Peak(x, a, x0, dx) + Background(x, m, b)
}

// Area returns the conventional peak area a·dx·sqrt(π/ln2) derived from
// the fitted amplitude and FWHM.
func Area(a, dx float64) float64 {
	return a * dx * math.Sqrt(math.Pi/math.Ln2)
}
