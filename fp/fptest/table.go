// Package fptest provides a deterministic, table-backed AtomicData
// implementation for tests and offline use. Line and edge energies,
// fluorescence yields and jump ratios come from standard tabulations;
// cross-sections use a smooth Z^3.8/E³ photoelectric approximation, which
// preserves the magnitudes and monotonic trends the Sherman model relies
// on without carrying a full physics database.
package fptest

import (
	"math"

	"github.com/aaroncelestian/Pb-XRF-sub000/fp"
)

type record struct {
	z     int
	lines map[fp.Line]float64  // keV
	edges map[fp.Shell]float64 // keV
	yield map[fp.Shell]float64
	jump  map[fp.Shell]float64
}

var records = map[string]record{
	"Rh": {
		z:     45,
		lines: map[fp.Line]float64{fp.KA1: 20.216, fp.KA2: 20.074, fp.KB1: 22.724},
		edges: map[fp.Shell]float64{fp.ShellK: 23.220},
		yield: map[fp.Shell]float64{fp.ShellK: 0.77},
		jump:  map[fp.Shell]float64{fp.ShellK: 6.5},
	},
	"Pb": {
		z:     82,
		lines: map[fp.Line]float64{fp.LA1: 10.552, fp.LB1: 12.614},
		edges: map[fp.Shell]float64{fp.ShellL: 13.035},
		yield: map[fp.Shell]float64{fp.ShellL: 0.36},
		jump:  map[fp.Shell]float64{fp.ShellL: 2.37},
	},
	"Fe": {
		z:     26,
		lines: map[fp.Line]float64{fp.KA1: 6.404, fp.KA2: 6.391, fp.KB1: 7.058},
		edges: map[fp.Shell]float64{fp.ShellK: 7.112},
		yield: map[fp.Shell]float64{fp.ShellK: 0.34},
		jump:  map[fp.Shell]float64{fp.ShellK: 8.0},
	},
	"Cu": {
		z:     29,
		lines: map[fp.Line]float64{fp.KA1: 8.048, fp.KA2: 8.028, fp.KB1: 8.905},
		edges: map[fp.Shell]float64{fp.ShellK: 8.979},
		yield: map[fp.Shell]float64{fp.ShellK: 0.44},
		jump:  map[fp.Shell]float64{fp.ShellK: 7.9},
	},
	"Zn": {
		z:     30,
		lines: map[fp.Line]float64{fp.KA1: 8.639, fp.KA2: 8.616, fp.KB1: 9.572},
		edges: map[fp.Shell]float64{fp.ShellK: 9.659},
		yield: map[fp.Shell]float64{fp.ShellK: 0.47},
		jump:  map[fp.Shell]float64{fp.ShellK: 7.8},
	},
	"As": {
		z:     33,
		lines: map[fp.Line]float64{fp.KA1: 10.544, fp.KA2: 10.508, fp.KB1: 11.726},
		edges: map[fp.Shell]float64{fp.ShellK: 11.867},
		yield: map[fp.Shell]float64{fp.ShellK: 0.56},
		jump:  map[fp.Shell]float64{fp.ShellK: 7.4},
	},
	"Si": {
		z:     14,
		lines: map[fp.Line]float64{fp.KA1: 1.740},
		edges: map[fp.Shell]float64{fp.ShellK: 1.839},
		yield: map[fp.Shell]float64{fp.ShellK: 0.050},
		jump:  map[fp.Shell]float64{fp.ShellK: 10.9},
	},
	"O": {
		z:     8,
		lines: map[fp.Line]float64{fp.KA1: 0.525},
		edges: map[fp.Shell]float64{fp.ShellK: 0.543},
		yield: map[fp.Shell]float64{fp.ShellK: 0.0083},
		jump:  map[fp.Shell]float64{fp.ShellK: 12.0},
	},
}

// Table is a static fp.AtomicData backed by in-package tables. The zero
// value is ready to use.
type Table struct{}

var _ fp.AtomicData = Table{}

// AtomicNumber implements fp.AtomicData.
func (Table) AtomicNumber(symbol string) (int, bool) {
	rec, ok := records[symbol]
	return rec.z, ok
}

// LineEnergy implements fp.AtomicData.
func (Table) LineEnergy(symbol string, line fp.Line) float64 {
	return records[symbol].lines[line]
}

// EdgeEnergy implements fp.AtomicData.
func (Table) EdgeEnergy(symbol string, shell fp.Shell) float64 {
	return records[symbol].edges[shell]
}

// PhotoCS implements fp.AtomicData with the smooth Z^3.8/E³ law.
func (Table) PhotoCS(symbol string, energy float64) float64 {
	rec, ok := records[symbol]
	if !ok || energy <= 0 {
		return 0
	}

	return 2.5e-2 * math.Pow(float64(rec.z), 3.8) / (energy * energy * energy)
}

// TotalCS implements fp.AtomicData: photoelectric plus a flat scatter term.
func (t Table) TotalCS(symbol string, energy float64) float64 {
	cs := t.PhotoCS(symbol, energy)
	if cs == 0 {
		return 0
	}

	return cs + 0.18
}

// FluorYield implements fp.AtomicData.
func (Table) FluorYield(symbol string, shell fp.Shell) float64 {
	return records[symbol].yield[shell]
}

// JumpRatio implements fp.AtomicData.
func (Table) JumpRatio(symbol string, shell fp.Shell) float64 {
	return records[symbol].jump[shell]
}

// Symbols returns the element symbols present in the table.
func Symbols() []string {
	out := make([]string, 0, len(records))
	for s := range records {
		out = append(out, s)
	}

	return out
}
