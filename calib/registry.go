package calib

import (
	"sync"

	"github.com/aaroncelestian/Pb-XRF-sub000/element"
)

// Registry holds the mutable per-element calibration state. It replaces
// the implicit global calibration of earlier designs: callers hold a
// Registry and pass curves by value into fitting code, so concurrent
// batch runs never observe a curve mid-update.
type Registry struct {
	mu     sync.RWMutex
	curves map[string]Curve
}

// NewRegistry returns a registry seeded with the default calibration of
// every defined element.
func NewRegistry() *Registry {
	curves := make(map[string]Curve)

	for _, symbol := range element.Symbols() {
		d, _ := element.Get(symbol)
		curves[symbol] = Curve{
			Name:      d.CalibrationName,
			Slope:     d.DefaultSlope,
			Intercept: d.DefaultIntercept,
		}
	}

	return &Registry{curves: curves}
}

// Get returns the current curve for the element, by value.
func (r *Registry) Get(symbol string) (Curve, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.curves[symbol]

	return c, ok
}

// Set replaces the curve for the element.
func (r *Registry) Set(symbol string, c Curve) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.curves[symbol] = c
}

// Symbols returns the symbols with a registered curve.
func (r *Registry) Symbols() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.curves))
	for s := range r.curves {
		out = append(out, s)
	}

	return out
}
