// Package peakfit extracts background-corrected peak intensities from
// XRF energy spectra.
//
// The line shape is the Gaussian-A parameterization
//
//	peak(x) = sqrt(ln2/π) · (a/dx) · exp(−ln2·(x−x0)²/dx²)
//
// whose closed-form integral over (−∞,∞) is exactly a, with x0 the peak
// center and dx the full width at half maximum. An optional linear
// background m·x + b can be fitted jointly with the peak or estimated
// from the samples outside the fit window and subtracted beforehand.
//
// # Usage
//
// Fit a peak and integrate it over a (possibly wider) window:
//
//	f, _ := peakfit.NewFitter(peakfit.Config{
//	    Window:            spectrum.Window{Min: 10.0, Max: 11.0},
//	    IntegrationWindow: spectrum.Window{Min: 9.8, Max: 11.2},
//	    IncludeBackground: true,
//	})
//	res, intensity, err := f.Analyze(s)
//
// Fit failures are hard errors: the solver never silently returns a
// zero or NaN result.
package peakfit
