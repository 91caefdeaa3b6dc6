// Package element provides the static reference data for the elements the
// analyzer quantifies: characteristic line energies, default fit and
// integration windows, and default empirical calibration coefficients.
package element

import "github.com/aaroncelestian/Pb-XRF-sub000/spectrum"

// Definition is the static per-element reference record. Read-only at
// runtime; calibration updates happen in calib.Registry, not here.
type Definition struct {
	Symbol string
	Name   string

	// PrimaryEnergy is the analytical line energy in keV (Kα1, or Lα1 for
	// heavy elements). SecondaryEnergy is 0 when no secondary line is used.
	PrimaryEnergy   float64
	SecondaryEnergy float64

	FitWindow         spectrum.Window
	IntegrationWindow spectrum.Window

	DefaultSlope     float64
	DefaultIntercept float64
	CalibrationName  string
}

// Half-width of the default fit and integration windows in keV.
const defaultWindowHalfWidth = 0.5

func def(symbol, name string, primary, secondary, slope float64, calName string) Definition {
	w := spectrum.Window{Min: primary - defaultWindowHalfWidth, Max: primary + defaultWindowHalfWidth}

	return Definition{
		Symbol:            symbol,
		Name:              name,
		PrimaryEnergy:     primary,
		SecondaryEnergy:   secondary,
		FitWindow:         w,
		IntegrationWindow: w,
		DefaultSlope:      slope,
		DefaultIntercept:  0,
		CalibrationName:   calName,
	}
}

var definitions = map[string]Definition{
	"Pb": def("Pb", "Lead", 10.55, 12.61, 13.8913, "NIST Calibration"),
	"As": def("As", "Arsenic", 10.54, 11.73, 1, "Uncalibrated"),
	"Cd": def("Cd", "Cadmium", 23.17, 26.10, 1, "Uncalibrated"),
	"Cr": def("Cr", "Chromium", 5.41, 5.95, 1, "Uncalibrated"),
	"Zn": def("Zn", "Zinc", 8.64, 9.57, 1, "Uncalibrated"),
	"Ni": def("Ni", "Nickel", 7.48, 8.26, 1, "Uncalibrated"),
	"Cu": def("Cu", "Copper", 8.05, 8.90, 1, "Uncalibrated"),
	"Fe": def("Fe", "Iron", 6.40, 7.06, 1, "Uncalibrated"),
	"Se": def("Se", "Selenium", 11.22, 12.50, 1, "Uncalibrated"),
	"S":  def("S", "Sulfur", 2.31, 2.46, 1, "Uncalibrated"),
}

// Get returns the definition for the given element symbol.
func Get(symbol string) (Definition, bool) {
	d, ok := definitions[symbol]
	return d, ok
}

// Symbols returns all defined element symbols in unspecified order.
func Symbols() []string {
	out := make([]string, 0, len(definitions))
	for s := range definitions {
		out = append(out, s)
	}

	return out
}
