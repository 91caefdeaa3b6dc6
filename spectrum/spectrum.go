// Package spectrum defines the energy spectrum type consumed by the
// quantification pipeline, along with energy windows and baseline
// estimation helpers.
package spectrum

import (
	"errors"

	"gonum.org/v1/gonum/stat"
)

// Errors returned by spectrum constructors and window operations.
var (
	ErrLengthMismatch = errors.New("spectrum: energy and counts must have equal length")
	ErrEmpty          = errors.New("spectrum: at least one sample is required")
	ErrEnergyOrder    = errors.New("spectrum: energies must be strictly increasing")
	ErrNegativeCounts = errors.New("spectrum: counts must be non-negative")
	ErrWindowBounds   = errors.New("spectrum: window min must be less than max")
)

// Spectrum is an immutable digitized energy spectrum: ordered
// (energy keV, count-rate) pairs with strictly increasing energy.
type Spectrum struct {
	energy []float64
	counts []float64
}

// New validates and wraps the given energy/counts arrays. The slices are
// retained by reference; the caller must not mutate them afterwards.
func New(energy, counts []float64) (*Spectrum, error) {
	if len(energy) != len(counts) {
		return nil, ErrLengthMismatch
	}

	if len(energy) == 0 {
		return nil, ErrEmpty
	}

	for i := range energy {
		if i > 0 && energy[i] <= energy[i-1] {
			return nil, ErrEnergyOrder
		}

		if counts[i] < 0 {
			return nil, ErrNegativeCounts
		}
	}

	return &Spectrum{energy: energy, counts: counts}, nil
}

// Len returns the number of samples.
func (s *Spectrum) Len() int {
	return len(s.energy)
}

// Energies returns the underlying energy axis in keV. Read-only.
func (s *Spectrum) Energies() []float64 {
	return s.energy
}

// Counts returns the underlying count-rate values. Read-only.
func (s *Spectrum) Counts() []float64 {
	return s.counts
}

// Slice returns the contiguous in-window samples as sub-slice views.
func (s *Spectrum) Slice(w Window) (energy, counts []float64) {
	lo := 0
	for lo < len(s.energy) && s.energy[lo] < w.Min {
		lo++
	}

	hi := lo
	for hi < len(s.energy) && s.energy[hi] <= w.Max {
		hi++
	}

	return s.energy[lo:hi], s.counts[lo:hi]
}

// Outside returns copies of the samples falling outside the window.
func (s *Spectrum) Outside(w Window) (energy, counts []float64) {
	for i, e := range s.energy {
		if !w.Contains(e) {
			energy = append(energy, e)
			counts = append(counts, s.counts[i])
		}
	}

	return energy, counts
}

// Window is a closed energy interval [Min, Max] in keV.
type Window struct {
	Min float64
	Max float64
}

// Validate checks that the window bounds are ordered.
func (w Window) Validate() error {
	if w.Min >= w.Max {
		return ErrWindowBounds
	}

	return nil
}

// Contains reports whether e lies within the closed interval.
func (w Window) Contains(e float64) bool {
	return e >= w.Min && e <= w.Max
}

// IsZero reports whether the window is the zero value.
func (w Window) IsZero() bool {
	return w.Min == 0 && w.Max == 0
}

// EstimateBaseline fits a least-squares line to the samples outside the
// excluded window. When fewer than two such samples exist it falls back to
// a flat baseline at the mean of all counts, so the result is always usable
// as a background model.
func EstimateBaseline(s *Spectrum, excluded Window) (slope, intercept float64) {
	x, y := s.Outside(excluded)
	if len(x) < 2 {
		return 0, stat.Mean(s.counts, nil)
	}

	intercept, slope = stat.LinearRegression(x, y, nil, false)

	return slope, intercept
}
