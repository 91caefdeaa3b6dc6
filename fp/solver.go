package fp

import (
	"errors"
	"fmt"
	"sort"

	"github.com/aaroncelestian/Pb-XRF-sub000/internal/lm"
)

// ErrUnknownElement is returned by ConcentrationFromIntensity for a
// symbol the atomic data source cannot resolve.
var ErrUnknownElement = errors.New("fp: unknown element symbol")

// Default mass fraction for elements missing from a caller-supplied
// initial composition.
const defaultInitialFraction = 0.1

// FitReport describes the optimizer outcome of a composition fit. A
// non-converged fit still carries the best composition found.
type FitReport struct {
	Converged  bool
	Iterations int
	Residual   float64 // final sum of squared relative residuals
}

// FitComposition finds the composition minimizing the sum of squared
// relative intensity residuals across the measured elements, with every
// fraction constrained to [0,1]. When normalize is true, candidate and
// final compositions are rescaled to sum to 1.
//
// Non-convergence is reported through the FitReport and logged at
// warning level, never returned as an error; see the package comment for
// why this contract differs from peakfit.
func (m *Model) FitComposition(measured map[string]float64, initial Composition, normalize bool) (Composition, *FitReport) {
	symbols := make([]string, 0, len(measured))
	for s := range measured {
		symbols = append(symbols, s)
	}

	sort.Strings(symbols)

	n := len(symbols)
	if n == 0 {
		return Composition{}, &FitReport{Converged: true}
	}

	x0 := make([]float64, n)

	if initial == nil {
		for i := range x0 {
			x0[i] = 1 / float64(n)
		}
	} else {
		for i, s := range symbols {
			if v, ok := initial[s]; ok {
				x0[i] = v
			} else {
				x0[i] = defaultInitialFraction
			}
		}
	}

	if normalize {
		rescale(x0)
	}

	lower := make([]float64, n)
	upper := make([]float64, n)

	for i := range upper {
		upper[i] = 1
	}

	objective := func(x []float64) float64 {
		frac := make([]float64, n)
		copy(frac, x)

		if normalize {
			rescale(frac)
		}

		comp := make(Composition, n)
		for i, s := range symbols {
			comp[s] = frac[i]
		}

		var sum float64

		for i, s := range symbols {
			calc := m.PrimaryIntensity(s, frac[i], comp, KA1)
			meas := measured[s]

			r := calc
			if meas > 0 {
				r = (calc - meas) / meas
			}

			sum += r * r
		}

		return sum
	}

	res := lm.MinimizeBounded(objective, x0, lower, upper, lm.MinConfig{})

	if !res.Converged {
		m.cfg.Logger.Warnf("fp: composition fit did not converge after %d iterations (residual %.6g); returning best-effort result",
			res.Iterations, res.F)
	}

	fitted := make(Composition, n)
	for i, s := range symbols {
		fitted[s] = res.X[i]
	}

	if normalize {
		fitted = fitted.Normalize()
	}

	return fitted, &FitReport{
		Converged:  res.Converged,
		Iterations: res.Iterations,
		Residual:   res.F,
	}
}

// ConcentrationFromIntensity solves for a single unknown mass fraction:
// all matrix elements stay fixed at the supplied (or uniform-default)
// composition while the element's fraction is adjusted over [0,1] until
// the predicted intensity matches the measurement.
func (m *Model) ConcentrationFromIntensity(symbol string, intensity float64, matrixElements []string, matrixConc Composition) (float64, error) {
	if _, ok := m.data.AtomicNumber(symbol); !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownElement, symbol)
	}

	if matrixConc == nil {
		matrixConc = Uniform(append(append([]string{}, matrixElements...), symbol))
	}

	objective := func(x []float64) float64 {
		comp := matrixConc.Clone()
		comp[symbol] = x[0]
		comp = comp.Normalize()

		calc := m.PrimaryIntensity(symbol, comp[symbol], comp, KA1)
		d := calc - intensity

		return d * d
	}

	res := lm.MinimizeBounded(objective, []float64{defaultInitialFraction}, []float64{0}, []float64{1}, lm.MinConfig{})

	if !res.Converged {
		m.cfg.Logger.Warnf("fp: concentration solve for %s did not converge after %d iterations; returning best-effort result",
			symbol, res.Iterations)
	}

	return res.X[0], nil
}

// rescale normalizes x in place to sum to 1 when its sum is positive.
func rescale(x []float64) {
	var total float64
	for _, v := range x {
		total += v
	}

	if total <= 0 {
		return
	}

	for i := range x {
		x[i] /= total
	}
}
