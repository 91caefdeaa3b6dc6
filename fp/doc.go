// Package fp implements fundamental-parameters quantification: a
// Sherman-equation forward model that predicts primary fluorescence
// intensities from a sample composition, and an inverse solver that fits
// a composition to measured intensities.
//
// Atomic data (cross-sections, fluorescence yields, line and edge
// energies) is an injected capability behind the AtomicData interface, so
// the model is usable and testable without a live physics database. When
// no atomic data source is available the fundamental-parameters method is
// simply unavailable; empirical calibration in package calib does not
// depend on this package.
//
// The inverse solver is deliberately best-effort: a non-converged fit is
// logged and reported through FitReport, but the best composition found is
// still returned, unlike the hard-fail contract of package peakfit.
// Composition fitting is approximate by nature and a partial result still
// carries information.
package fp
