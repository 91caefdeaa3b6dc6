package fp

import (
	"errors"
	"io"
	"math"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
)

// ErrNoAtomicData is returned by New when no atomic data source is given.
var ErrNoAtomicData = errors.New("fp: atomic data source is required")

// Number of excitation energies used for the Sherman integral.
const excitationGridPoints = 100

// Relative intensities of the anode characteristic lines, scaled by the
// anode atomic number when added to the synthesized tube spectrum.
const (
	ka1Weight = 100
	ka2Weight = 50
	kb1Weight = 20
)

// Config holds the excitation geometry of the model.
type Config struct {
	TubeVoltage   float64 // kV
	TubeAnode     string  // anode element symbol
	TakeoffAngle  float64 // radians
	DetectorAngle float64 // radians
	Logger        logrus.FieldLogger
}

// DefaultConfig returns a 50 kV rhodium tube with 45° geometry and a
// discarding logger.
func DefaultConfig() Config {
	return Config{
		TubeVoltage:   50,
		TubeAnode:     "Rh",
		TakeoffAngle:  math.Pi / 4,
		DetectorAngle: math.Pi / 4,
		Logger:        discardLogger(),
	}
}

// Option mutates a Config.
type Option func(*Config)

// WithTubeVoltage sets the tube voltage in kV.
func WithTubeVoltage(kv float64) Option {
	return func(cfg *Config) {
		if kv > 0 {
			cfg.TubeVoltage = kv
		}
	}
}

// WithTubeAnode sets the anode element symbol.
func WithTubeAnode(symbol string) Option {
	return func(cfg *Config) {
		if symbol != "" {
			cfg.TubeAnode = symbol
		}
	}
}

// WithTakeoffAngle sets the X-ray takeoff angle in degrees.
func WithTakeoffAngle(degrees float64) Option {
	return func(cfg *Config) {
		if degrees > 0 {
			cfg.TakeoffAngle = degrees * math.Pi / 180
		}
	}
}

// WithDetectorAngle sets the detector angle in degrees.
func WithDetectorAngle(degrees float64) Option {
	return func(cfg *Config) {
		if degrees > 0 {
			cfg.DetectorAngle = degrees * math.Pi / 180
		}
	}
}

// WithLogger sets the diagnostics logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(cfg *Config) {
		if l != nil {
			cfg.Logger = l
		}
	}
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)

	return l
}

// Model is the fundamental-parameters forward model.
type Model struct {
	data AtomicData
	cfg  Config
}

// New builds a Model around the given atomic data source.
func New(data AtomicData, opts ...Option) (*Model, error) {
	if data == nil {
		return nil, ErrNoAtomicData
	}

	cfg := DefaultConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return &Model{data: data, cfg: cfg}, nil
}

// Config returns the model configuration.
func (m *Model) Config() Config {
	return m.cfg
}

// TubeSpectrum synthesizes the relative excitation spectrum of the tube
// over the given energy grid: a Kramers continuum Z·(V−E)/E below the
// tube voltage, plus the anode Kα1/Kα2/Kβ1 lines added at the nearest
// grid points. The result is normalized to a peak intensity of 1.
func (m *Model) TubeSpectrum(grid []float64) []float64 {
	out := make([]float64, len(grid))

	z, ok := m.data.AtomicNumber(m.cfg.TubeAnode)
	if !ok {
		return out
	}

	zf := float64(z)

	for i, e := range grid {
		if e > 0 && e < m.cfg.TubeVoltage {
			out[i] = zf * (m.cfg.TubeVoltage - e) / e
		}
	}

	ka1 := m.data.LineEnergy(m.cfg.TubeAnode, KA1)
	if ka1 > 0 && ka1 < m.cfg.TubeVoltage {
		out[nearestIndex(grid, ka1)] += ka1Weight * zf

		if ka2 := m.data.LineEnergy(m.cfg.TubeAnode, KA2); ka2 > 0 {
			out[nearestIndex(grid, ka2)] += ka2Weight * zf
		}
	}

	if kb1 := m.data.LineEnergy(m.cfg.TubeAnode, KB1); kb1 > 0 && kb1 < m.cfg.TubeVoltage {
		out[nearestIndex(grid, kb1)] += kb1Weight * zf
	}

	if max := floats.Max(out); max > 0 {
		floats.Scale(1/max, out)
	}

	return out
}

// PrimaryIntensity evaluates the Sherman equation for the element's line
// at the given target mass fraction within the matrix composition. It
// returns 0 when the line or its absorption edge is undefined for the
// element: absence of a line is a valid physical outcome, not an error.
func (m *Model) PrimaryIntensity(symbol string, concentration float64, matrix Composition, line Line) float64 {
	if _, ok := m.data.AtomicNumber(symbol); !ok {
		return 0
	}

	lineEnergy := m.data.LineEnergy(symbol, line)
	if lineEnergy == 0 {
		return 0
	}

	edge := m.data.EdgeEnergy(symbol, line.Shell())
	if edge == 0 || edge >= m.cfg.TubeVoltage {
		return 0
	}

	grid := linspace(edge, m.cfg.TubeVoltage, excitationGridPoints)
	tube := m.TubeSpectrum(grid)

	sinTakeoff := math.Sin(m.cfg.TakeoffAngle)
	sinDetector := math.Sin(m.cfg.DetectorAngle)

	// Matrix attenuation at the emitted line energy is excitation
	// independent; hoist it out of the sum.
	var muOut float64
	for elem, frac := range matrix {
		muOut += frac * m.data.TotalCS(elem, lineEnergy)
	}

	var intensity float64

	for i, energy := range grid {
		tau := m.data.PhotoCS(symbol, energy)

		var muIn float64
		for elem, frac := range matrix {
			muIn += frac * m.data.TotalCS(elem, energy)
		}

		denom := muIn/sinTakeoff + muOut/sinDetector
		if denom > 0 {
			intensity += tube[i] * tau * concentration / denom
		}
	}

	omega := m.data.FluorYield(symbol, line.Shell())

	r := m.data.JumpRatio(symbol, line.Shell())
	if r <= 0 {
		return 0
	}

	return intensity * omega * (r - 1) / r
}

// linspace returns n evenly spaced values from lo to hi inclusive.
func linspace(lo, hi float64, n int) []float64 {
	out := make([]float64, n)
	if n == 1 {
		out[0] = lo
		return out
	}

	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}

	return out
}

// nearestIndex returns the index of the grid value closest to e.
func nearestIndex(grid []float64, e float64) int {
	best := 0
	bestDist := math.Abs(grid[0] - e)

	for i, g := range grid[1:] {
		if d := math.Abs(g - e); d < bestDist {
			best = i + 1
			bestDist = d
		}
	}

	return best
}
