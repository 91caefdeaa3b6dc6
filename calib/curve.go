// Package calib converts integrated peak intensities into concentrations
// through per-element linear calibration curves, and builds those curves
// from measurements of reference standards.
package calib

import (
	"errors"

	"gonum.org/v1/gonum/stat"
)

// Errors returned by curve construction.
var (
	ErrTooFewStandards = errors.New("calib: at least two standards are required")
	ErrLengthMismatch  = errors.New("calib: intensities and concentrations must have equal length")
)

// Curve is a linear intensity-to-concentration map for one element.
type Curve struct {
	Name      string
	Slope     float64
	Intercept float64
	RSquared  float64
	Standards []string // identifiers of the reference standards used
}

// Apply converts an integrated intensity into a concentration in ppm.
func (c Curve) Apply(intensity float64) float64 {
	return c.Slope*intensity + c.Intercept
}

// FitCurve builds a calibration curve by ordinary least squares over
// measured intensities and the known concentrations of the standards.
func FitCurve(name string, intensities, concentrations []float64, standards []string) (Curve, error) {
	if len(intensities) != len(concentrations) {
		return Curve{}, ErrLengthMismatch
	}

	if len(intensities) < 2 {
		return Curve{}, ErrTooFewStandards
	}

	intercept, slope := stat.LinearRegression(intensities, concentrations, nil, false)
	r2 := stat.RSquared(intensities, concentrations, nil, intercept, slope)

	ids := make([]string, len(standards))
	copy(ids, standards)

	return Curve{
		Name:      name,
		Slope:     slope,
		Intercept: intercept,
		RSquared:  r2,
		Standards: ids,
	}, nil
}
