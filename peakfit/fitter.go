package peakfit

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/aaroncelestian/Pb-XRF-sub000/internal/lm"
	"github.com/aaroncelestian/Pb-XRF-sub000/spectrum"
)

// Minimum number of in-window samples required for a fit.
const minFitPoints = 5

// Default initial FWHM guess in keV.
const defaultFWHM = 0.1

// FWHM bounds in keV.
const (
	minFWHM = 0.01
	maxFWHM = 1.0
)

// Errors returned by the fitter.
var (
	ErrInsufficientData = errors.New("peakfit: insufficient data points in window")
	ErrNotConverged     = errors.New("peakfit: fit did not converge")
)

// ConvergenceError reports a solver failure together with the fit window
// it occurred in. It unwraps to ErrNotConverged.
type ConvergenceError struct {
	Window spectrum.Window
	Err    error
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("peakfit: fit in window [%g, %g] keV: %v", e.Window.Min, e.Window.Max, e.Err)
}

func (e *ConvergenceError) Unwrap() error {
	return ErrNotConverged
}

// Config holds peak fitting parameters.
type Config struct {
	// Window is the energy interval used for fitting.
	Window spectrum.Window
	// IntegrationWindow is the interval used for intensity integration.
	// The zero value means the fit window is reused.
	IntegrationWindow spectrum.Window
	// IncludeBackground fits the linear background jointly with the peak.
	// When false the background is estimated first and subtracted, and the
	// bare peak is fitted to the residual.
	IncludeBackground bool
}

// Validate checks the configured windows.
func (c Config) Validate() error {
	if err := c.Window.Validate(); err != nil {
		return err
	}

	if !c.IntegrationWindow.IsZero() {
		return c.IntegrationWindow.Validate()
	}

	return nil
}

// Result holds the outcome of a single peak fit.
type Result struct {
	Amplitude float64 // area-like amplitude a
	Center    float64 // peak center x0 in keV
	FWHM      float64 // full width at half maximum dx in keV

	AmplitudeErr float64 // 1-sigma standard errors from the fit covariance
	CenterErr    float64
	FWHMErr      float64

	BackgroundSlope     float64
	BackgroundIntercept float64

	PeakArea float64 // a·dx·sqrt(π/ln2)
	RSquared float64

	// FitEnergies and FitCurve hold the evaluated model over the
	// in-window energy axis, for display and export.
	FitEnergies []float64
	FitCurve    []float64
}

// Fitter fits the Gaussian-A peak model to windowed spectrum data.
// A Fitter is stateless apart from its configuration and is safe for
// concurrent use.
type Fitter struct {
	cfg Config
}

// NewFitter validates cfg and returns a Fitter.
func NewFitter(cfg Config) (*Fitter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.IntegrationWindow.IsZero() {
		cfg.IntegrationWindow = cfg.Window
	}

	return &Fitter{cfg: cfg}, nil
}

// Config returns the fitter configuration with defaults applied.
func (f *Fitter) Config() Config {
	return f.cfg
}

// Fit fits the peak model to the in-window samples of s.
func (f *Fitter) Fit(s *spectrum.Spectrum) (*Result, error) {
	x, y := s.Slice(f.cfg.Window)
	if len(x) < minFitPoints {
		return nil, fmt.Errorf("%w: %d points in [%g, %g] keV, need %d",
			ErrInsufficientData, len(x), f.cfg.Window.Min, f.cfg.Window.Max, minFitPoints)
	}

	// Initial guesses from the in-window maximum.
	peakIdx := 0
	for i := range y {
		if y[i] > y[peakIdx] {
			peakIdx = i
		}
	}

	a0 := y[peakIdx]
	x0 := x[peakIdx]

	bgSlope, bgIntercept := estimateBackground(s, x, y, f.cfg.Window)

	var (
		res *lm.Result
		err error
	)

	if f.cfg.IncludeBackground {
		res, err = f.fitCombined(x, y, a0, x0, bgSlope, bgIntercept)
	} else {
		res, err = f.fitPeakOnly(x, y, a0, x0, bgSlope, bgIntercept)
	}

	if err != nil {
		return nil, &ConvergenceError{Window: f.cfg.Window, Err: err}
	}

	out := &Result{
		Amplitude:    res.Params[0],
		Center:       res.Params[1],
		FWHM:         res.Params[2],
		AmplitudeErr: res.Stddev(0),
		CenterErr:    res.Stddev(1),
		FWHMErr:      res.Stddev(2),
	}

	if f.cfg.IncludeBackground {
		out.BackgroundSlope = res.Params[3]
		out.BackgroundIntercept = res.Params[4]
	} else {
		out.BackgroundSlope = bgSlope
		out.BackgroundIntercept = bgIntercept
	}

	out.PeakArea = Area(out.Amplitude, out.FWHM)

	out.FitEnergies = x
	out.FitCurve = make([]float64, len(x))

	for i, xi := range x {
		out.FitCurve[i] = Combined(xi, out.Amplitude, out.Center, out.FWHM,
			out.BackgroundSlope, out.BackgroundIntercept)
	}

	out.RSquared = rSquared(y, out.FitCurve)

	return out, nil
}

// Analyze fits the peak and integrates the background-corrected intensity
// over the configured integration window.
func (f *Fitter) Analyze(s *spectrum.Spectrum) (*Result, float64, error) {
	res, err := f.Fit(s)
	if err != nil {
		return nil, 0, err
	}

	intensity, err := IntegratedIntensity(s, res.BackgroundSlope, res.BackgroundIntercept, f.cfg.IntegrationWindow)
	if err != nil {
		return nil, 0, err
	}

	return res, intensity, nil
}

func (f *Fitter) fitCombined(x, y []float64, a0, x0, m0, b0 float64) (*lm.Result, error) {
	prob := lm.Problem{
		NumResiduals: len(x),
		F: func(p, out []float64) {
			for i := range x {
				out[i] = Combined(x[i], p[0], p[1], p[2], p[3], p[4]) - y[i]
			}
		},
	}

	p0 := []float64{a0, x0, defaultFWHM, m0, b0}
	lower := []float64{0, f.cfg.Window.Min, minFWHM, math.Inf(-1), 0}
	upper := []float64{math.Inf(1), f.cfg.Window.Max, maxFWHM, math.Inf(1), math.Inf(1)}

	return lm.Solve(prob, p0, lower, upper, lm.Settings{})
}

func (f *Fitter) fitPeakOnly(x, y []float64, a0, x0, m0, b0 float64) (*lm.Result, error) {
	residual := make([]float64, len(x))
	for i := range x {
		residual[i] = y[i] - Background(x[i], m0, b0)
	}

	prob := lm.Problem{
		NumResiduals: len(x),
		F: func(p, out []float64) {
			for i := range x {
				out[i] = Peak(x[i], p[0], p[1], p[2]) - residual[i]
			}
		},
	}

	p0 := []float64{a0, x0, defaultFWHM}
	lower := []float64{0, f.cfg.Window.Min, minFWHM}
	upper := []float64{math.Inf(1), f.cfg.Window.Max, maxFWHM}

	return lm.Solve(prob, p0, lower, upper, lm.Settings{})
}

// estimateBackground derives the initial background line from the samples
// outside the fit window, falling back to a flat line at the mean of the
// in-window counts when the spectrum has no outside samples.
func estimateBackground(s *spectrum.Spectrum, x, y []float64, w spectrum.Window) (slope, intercept float64) {
	if s.Len() > len(x) {
		return spectrum.EstimateBaseline(s, w)
	}

	return 0, stat.Mean(y, nil)
}

// rSquared computes the coefficient of determination of the fitted curve
// over the in-window samples.
func rSquared(y, fit []float64) float64 {
	mean := stat.Mean(y, nil)

	var ssRes, ssTot float64

	for i := range y {
		r := y[i] - fit[i]
		ssRes += r * r

		d := y[i] - mean
		ssTot += d * d
	}

	if ssTot == 0 {
		return 0
	}

	return 1 - ssRes/ssTot
}
