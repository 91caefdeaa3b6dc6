package peakfit_test

import (
	"fmt"
	"math"

	"github.com/aaroncelestian/Pb-XRF-sub000/peakfit"
	"github.com/aaroncelestian/Pb-XRF-sub000/spectrum"
)

func ExampleFitter_Analyze() {
	// Synthetic Pb L-alpha peak (a=50, center 10.52 keV, FWHM 0.15 keV)
	// on a flat 20-count background.
	var energy, counts []float64
	for e := 9.0; e <= 12.0; e += 0.01 {
		energy = append(energy, e)
		counts = append(counts, peakfit.Combined(e, 50, 10.52, 0.15, 0, 20))
	}

	s, _ := spectrum.New(energy, counts)

	f, _ := peakfit.NewFitter(peakfit.Config{
		Window:            spectrum.Window{Min: 10.0, Max: 11.0},
		IntegrationWindow: spectrum.Window{Min: 9.8, Max: 11.2},
		IncludeBackground: true,
	})

	res, intensity, _ := f.Analyze(s)

	fmt.Printf("center=%.2f keV\n", res.Center)
	fmt.Printf("intensity within 2%% of 50: %t\n", math.Abs(intensity-50)/50 < 0.02)

	// Output:
	// center=10.52 keV
	// intensity within 2% of 50: true
}
