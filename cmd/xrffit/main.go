// Command xrffit quantifies elemental concentration from XRF spectra.
//
// Usage:
//
//	xrffit [flags] spectrum.csv [spectrum.csv ...]
//
// Each input file is a two-column CSV of energy (keV) and counts. Files
// are processed in argument order; consecutive files are grouped into
// samples of -group spectra each.
//
// Examples:
//
//	xrffit -element Pb sample_01.csv sample_02.csv
//	xrffit -element Pb -group 3 -fit-min 10.0 -fit-max 11.0 *.csv
//	xrffit -slope 13.8913 -intercept 0 -int-min 9.8 -int-max 11.2 run/*.csv
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/sirupsen/logrus"

	"github.com/aaroncelestian/Pb-XRF-sub000/batch"
	"github.com/aaroncelestian/Pb-XRF-sub000/calib"
	"github.com/aaroncelestian/Pb-XRF-sub000/element"
	"github.com/aaroncelestian/Pb-XRF-sub000/peakfit"
	"github.com/aaroncelestian/Pb-XRF-sub000/spectrum"
)

func main() {
	symbol := flag.String("element", "Pb", "element symbol to quantify")
	fitMin := flag.Float64("fit-min", 0, "fit window lower bound in keV (default: element window)")
	fitMax := flag.Float64("fit-max", 0, "fit window upper bound in keV")
	intMin := flag.Float64("int-min", 0, "integration window lower bound in keV (default: fit window)")
	intMax := flag.Float64("int-max", 0, "integration window upper bound in keV")
	noBackground := flag.Bool("no-background", false, "subtract the estimated background instead of fitting it jointly")
	slope := flag.Float64("slope", 0, "calibration slope override")
	intercept := flag.Float64("intercept", 0, "calibration intercept override")
	group := flag.Int("group", 1, "spectra per sample")
	workers := flag.Int("workers", 0, "concurrent fits (default: number of CPUs)")
	verbose := flag.Bool("v", false, "log per-spectrum failures as they happen")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: xrffit [flags] spectrum.csv [spectrum.csv ...]\n\n")
		fmt.Fprintf(os.Stderr, "Quantifies elemental concentration from two-column (keV, counts) CSV spectra.\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	def, ok := element.Get(*symbol)
	if !ok {
		fmt.Fprintf(os.Stderr, "xrffit: unknown element %q\n", *symbol)
		os.Exit(2)
	}

	fitWindow := def.FitWindow
	if *fitMin != 0 || *fitMax != 0 {
		fitWindow = spectrum.Window{Min: *fitMin, Max: *fitMax}
	}

	intWindow := fitWindow
	if *intMin != 0 || *intMax != 0 {
		intWindow = spectrum.Window{Min: *intMin, Max: *intMax}
	}

	curve := calib.Curve{Name: def.CalibrationName, Slope: def.DefaultSlope, Intercept: def.DefaultIntercept}
	if *slope != 0 {
		curve = calib.Curve{Name: "custom", Slope: *slope, Intercept: *intercept}
	}

	logger := logrus.New()
	logger.SetOutput(os.Stderr)

	if !*verbose {
		logger.SetLevel(logrus.ErrorLevel)
	}

	var jobs []batch.Job

	for _, path := range flag.Args() {
		s, err := readSpectrum(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "xrffit: %s: %v\n", path, err)
			os.Exit(1)
		}

		jobs = append(jobs, batch.Job{ID: path, Spectrum: s})
	}

	cfg := batch.Config{
		Fit: peakfit.Config{
			Window:            fitWindow,
			IntegrationWindow: intWindow,
			IncludeBackground: !*noBackground,
		},
		Curve:            curve,
		SpectraPerSample: *group,
		Workers:          *workers,
		Logger:           logger,
	}

	outcome, err := batch.Run(context.Background(), cfg, jobs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "xrffit: %v\n", err)
		os.Exit(1)
	}

	printOutcome(outcome, *symbol)

	if len(outcome.Failures) > 0 {
		os.Exit(1)
	}
}

// readSpectrum parses a two-column CSV of energy and counts, skipping a
// header row when the first field is not numeric.
func readSpectrum(path string) (*spectrum.Spectrum, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	var energy, counts []float64

	for i, row := range rows {
		if len(row) < 2 {
			continue
		}

		e, errE := strconv.ParseFloat(row[0], 64)
		c, errC := strconv.ParseFloat(row[1], 64)

		if errE != nil || errC != nil {
			if i == 0 {
				continue // header
			}

			return nil, fmt.Errorf("line %d: non-numeric data", i+1)
		}

		energy = append(energy, e)
		counts = append(counts, c)
	}

	return spectrum.New(energy, counts)
}

func printOutcome(out *batch.Outcome, symbol string) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)

	fmt.Fprintf(w, "spectrum\tcenter (keV)\tFWHM (keV)\tR²\tintensity\t%s (ppm)\n", symbol)

	for _, res := range out.Results {
		fmt.Fprintf(w, "%s\t%.4f\t%.4f\t%.5f\t%.3f\t%.2f\n",
			res.ID, res.Fit.Center, res.Fit.FWHM, res.Fit.RSquared,
			res.IntegratedIntensity, res.Concentration)
	}

	w.Flush()

	for _, f := range out.Failures {
		fmt.Fprintf(os.Stderr, "xrffit: %s: %v\n", f.ID, f.Err)
	}

	if len(out.Groups) == 0 {
		return
	}

	fmt.Println()
	fmt.Fprintf(w, "sample\tn\tmean (ppm)\tSD\tRSD %%\tSEM\n")

	for _, g := range out.Groups {
		c := g.Concentration
		fmt.Fprintf(w, "%s\t%d\t%.2f\t%.3f\t%.2f\t%.3f\n", g.Name, g.N, c.Mean, c.SD, c.RSD, c.SEM)
	}

	w.Flush()

	for _, name := range out.EmptySamples {
		fmt.Fprintf(os.Stderr, "xrffit: %s: no successful spectra\n", name)
	}
}
