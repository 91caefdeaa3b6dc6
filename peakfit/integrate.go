package peakfit

import (
	"fmt"

	"gonum.org/v1/gonum/integrate"

	"github.com/aaroncelestian/Pb-XRF-sub000/spectrum"
)

// Minimum number of samples required for trapezoidal integration.
const minIntegrationPoints = 2

// IntegratedIntensity computes the background-corrected integrated peak
// intensity: the trapezoidal integral of counts minus the fitted linear
// background over the integration window. The window may be wider than
// the fit window; the background line is simply evaluated across it.
func IntegratedIntensity(s *spectrum.Spectrum, bgSlope, bgIntercept float64, w spectrum.Window) (float64, error) {
	if err := w.Validate(); err != nil {
		return 0, err
	}

	x, y := s.Slice(w)
	if len(x) < minIntegrationPoints {
		return 0, fmt.Errorf("%w: %d points in [%g, %g] keV, need %d",
			ErrInsufficientData, len(x), w.Min, w.Max, minIntegrationPoints)
	}

	corrected := make([]float64, len(x))
	for i := range x {
		corrected[i] = y[i] - Background(x[i], bgSlope, bgIntercept)
	}

	return integrate.Trapezoidal(x, corrected), nil
}
