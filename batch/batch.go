// Package batch runs the fit, integrate, calibrate and aggregate pipeline
// over many spectra concurrently.
//
// Each spectrum is processed independently: a failed fit is recorded
// against that spectrum's identity and never cancels or corrupts its
// siblings. Sample grouping is positional over the submitted job order,
// with aggregation running only after every job of the batch has
// finished. Samples whose spectra all failed are reported, not silently
// dropped.
package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/aaroncelestian/Pb-XRF-sub000/calib"
	"github.com/aaroncelestian/Pb-XRF-sub000/peakfit"
	"github.com/aaroncelestian/Pb-XRF-sub000/samplestats"
	"github.com/aaroncelestian/Pb-XRF-sub000/spectrum"
)

// ErrNoJobs is returned when Run is invoked with an empty batch.
var ErrNoJobs = errors.New("batch: no jobs submitted")

// Job is one spectrum to quantify, identified for failure reporting.
type Job struct {
	ID       string
	Spectrum *spectrum.Spectrum
}

// Config holds the batch pipeline parameters.
type Config struct {
	Fit peakfit.Config
	// Curve converts integrated intensity to concentration. Taken by
	// value: a registry update during the run cannot affect in-flight
	// spectra.
	Curve calib.Curve
	// SpectraPerSample is the fixed grouping size; 0 means 1.
	SpectraPerSample int
	// Workers bounds fit concurrency; 0 means GOMAXPROCS.
	Workers int
	Logger  logrus.FieldLogger
}

// Result is one successfully quantified spectrum.
type Result struct {
	ID                  string
	Fit                 *peakfit.Result
	IntegratedIntensity float64
	Concentration       float64
}

// Failure records a per-spectrum error.
type Failure struct {
	ID  string
	Err error
}

// Outcome is the collected output of a batch run.
type Outcome struct {
	// Results holds the successful spectra in job order.
	Results []Result
	// Failures holds the failed spectra in job order.
	Failures []Failure
	// Groups holds per-sample statistics over the successful spectra.
	Groups []*samplestats.Group
	// EmptySamples names samples none of whose spectra succeeded.
	EmptySamples []string
}

// Run processes all jobs and aggregates per-sample statistics. The
// returned error covers only invalid configuration; per-spectrum failures
// live in the Outcome. Cancelling ctx stops dispatching further jobs;
// spectra already in flight finish and are reported normally.
func Run(ctx context.Context, cfg Config, jobs []Job) (*Outcome, error) {
	if len(jobs) == 0 {
		return nil, ErrNoJobs
	}

	fitter, err := peakfit.NewFitter(cfg.Fit)
	if err != nil {
		return nil, err
	}

	groupSize := cfg.SpectraPerSample
	if groupSize < 1 {
		groupSize = 1
	}

	workers := cfg.Workers
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}

	logger := cfg.Logger
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = l
	}

	results := make([]*Result, len(jobs))
	failures := make([]error, len(jobs))

	var g errgroup.Group
	g.SetLimit(workers)

	for i := range jobs {
		if ctxErr := ctx.Err(); ctxErr != nil {
			failures[i] = fmt.Errorf("batch: job not dispatched: %w", ctxErr)
			continue
		}

		i := i
		job := jobs[i]

		g.Go(func() error {
			fit, intensity, fitErr := fitter.Analyze(job.Spectrum)
			if fitErr != nil {
				failures[i] = fitErr
				logger.WithField("spectrum", job.ID).Warnf("batch: %v", fitErr)

				return nil
			}

			results[i] = &Result{
				ID:                  job.ID,
				Fit:                 fit,
				IntegratedIntensity: intensity,
				Concentration:       cfg.Curve.Apply(intensity),
			}

			return nil
		})
	}

	// Workers never return errors; Wait is the aggregation barrier.
	_ = g.Wait()

	out := &Outcome{}

	for i, job := range jobs {
		if failures[i] != nil {
			out.Failures = append(out.Failures, Failure{ID: job.ID, Err: failures[i]})
			continue
		}

		out.Results = append(out.Results, *results[i])
	}

	out.Groups, out.EmptySamples = group(results, groupSize, logger)

	return out, nil
}

// group partitions the per-job results positionally into samples of the
// given size and aggregates the successes within each sample.
func group(results []*Result, size int, logger logrus.FieldLogger) ([]*samplestats.Group, []string) {
	var (
		groups []*samplestats.Group
		empty  []string
	)

	sample := 0

	for start := 0; start < len(results); start += size {
		end := start + size
		if end > len(results) {
			end = len(results)
		}

		sample++
		name := fmt.Sprintf("Sample_%d", sample)

		var ms []samplestats.Measurement

		for _, r := range results[start:end] {
			if r == nil {
				continue
			}

			ms = append(ms, samplestats.Measurement{
				Intensity:     r.IntegratedIntensity,
				Concentration: r.Concentration,
			})
		}

		if len(ms) == 0 {
			logger.WithField("sample", name).Warn("batch: no successful spectra in sample; excluded from aggregates")
			empty = append(empty, name)

			continue
		}

		g, err := samplestats.NewGroup(name, ms)
		if err != nil {
			// Unreachable: ms is non-empty.
			continue
		}

		groups = append(groups, g)
	}

	return groups, empty
}
