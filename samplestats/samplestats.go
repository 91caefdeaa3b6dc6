// Package samplestats aggregates per-spectrum quantification results into
// per-sample descriptive statistics.
package samplestats

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// Errors returned by group construction.
var (
	ErrEmptyGroup       = errors.New("samplestats: a group requires at least one measurement")
	ErrInvalidGroupSize = errors.New("samplestats: group size must be at least 1")
)

// Measurement is one spectrum's quantification result.
type Measurement struct {
	Intensity     float64
	Concentration float64
}

// Summary holds the descriptive statistics of one quantity across a
// sample's spectra. SD is the Bessel-corrected sample estimator and is 0
// for a single measurement; RSD is SD as a percentage of the mean, 0 when
// the mean is 0; SEM is SD/√n.
type Summary struct {
	Mean float64
	SD   float64
	RSD  float64
	SEM  float64
}

func summarize(values []float64) Summary {
	mean := stat.Mean(values, nil)

	var sd float64
	if len(values) > 1 {
		sd = stat.StdDev(values, nil)
	}

	var rsd float64
	if mean != 0 {
		rsd = sd / mean * 100
	}

	return Summary{
		Mean: mean,
		SD:   sd,
		RSD:  rsd,
		SEM:  sd / math.Sqrt(float64(len(values))),
	}
}

// Group holds the statistics of one sample's repeated measurements.
// All fields are computed on construction and never mutated; re-grouping
// builds new Groups.
type Group struct {
	Name string
	N    int

	Intensity     Summary
	Concentration Summary

	Measurements []Measurement
}

// NewGroup computes the group statistics for the measurements.
func NewGroup(name string, ms []Measurement) (*Group, error) {
	if len(ms) == 0 {
		return nil, ErrEmptyGroup
	}

	intensities := make([]float64, len(ms))
	concentrations := make([]float64, len(ms))

	for i, m := range ms {
		intensities[i] = m.Intensity
		concentrations[i] = m.Concentration
	}

	kept := make([]Measurement, len(ms))
	copy(kept, ms)

	return &Group{
		Name:          name,
		N:             len(ms),
		Intensity:     summarize(intensities),
		Concentration: summarize(concentrations),
		Measurements:  kept,
	}, nil
}

// Partition splits consecutive measurements into fixed-size sample groups
// named Sample_1, Sample_2, ... The final group may hold fewer than size
// measurements. The grouping policy is the caller's: size spectra per
// physical sample, in acquisition order.
func Partition(ms []Measurement, size int) ([]*Group, error) {
	if size < 1 {
		return nil, ErrInvalidGroupSize
	}

	var groups []*Group

	for start := 0; start < len(ms); start += size {
		end := start + size
		if end > len(ms) {
			end = len(ms)
		}

		g, err := NewGroup(fmt.Sprintf("Sample_%d", len(groups)+1), ms[start:end])
		if err != nil {
			return nil, err
		}

		groups = append(groups, g)
	}

	return groups, nil
}
