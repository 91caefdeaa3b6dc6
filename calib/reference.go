package calib

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Errors returned by the reference-value parser.
var (
	ErrNotAvailable = errors.New("calib: reference value not available")
	ErrBadReference = errors.New("calib: malformed reference value")
)

// ReferenceKind tags a parsed reference-concentration value.
type ReferenceKind int

const (
	// Value is a usable concentration in ppm.
	Value ReferenceKind = iota
	// BelowDetectionLimit marks a "<"-prefixed entry; PPM holds the limit.
	BelowDetectionLimit
)

// Reference is the typed result of parsing a certificate value.
type Reference struct {
	Kind ReferenceKind
	PPM  float64
}

// Conversion factor from mass percent to ppm.
const percentToPPM = 10000

// ParseReference parses a certificate concentration string. Plain numbers
// are ppm; a "%" suffix converts from mass percent; a "<" prefix tags the
// entry as below the detection limit, with PPM holding the limit itself.
// "N/A" and empty strings return ErrNotAvailable; anything else that fails
// to parse returns ErrBadReference. Values are never silently skipped.
func ParseReference(raw string) (Reference, error) {
	s := strings.TrimSpace(raw)
	if s == "" || strings.EqualFold(s, "N/A") {
		return Reference{}, ErrNotAvailable
	}

	kind := Value
	if strings.HasPrefix(s, "<") {
		kind = BelowDetectionLimit
		s = strings.TrimSpace(s[1:])
	}

	factor := 1.0
	if strings.HasSuffix(s, "%") {
		factor = percentToPPM
		s = strings.TrimSpace(strings.TrimSuffix(s, "%"))
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Reference{}, fmt.Errorf("%w: %q", ErrBadReference, raw)
	}

	return Reference{Kind: kind, PPM: v * factor}, nil
}

// ReferenceMaterials maps standard reference material names to their
// certified per-element concentration values, as printed on the
// certificates: ppm numbers, percent strings, "<" detection limits,
// or "N/A" where no value is certified.
var ReferenceMaterials = map[string]map[string]string{
	"NIST 2586": {
		"Pb": "432", "Zn": "352", "Cu": "81.1", "Cr": "301",
		"Ni": "75", "As": "8.7", "Cd": "2.71", "Fe": "5.16%", "S": "N/A",
	},
	"NIST 2587": {
		"Pb": "3242", "Zn": "335", "Cu": "163", "Cr": "92",
		"Ni": "37", "As": "13.7", "Cd": "1.92", "Fe": "2.83%",
	},
	"NIST 2709a": {
		"Pb": "17.3", "Zn": "103", "Cu": "33.9", "Cr": "130",
		"Ni": "85", "As": "10.5", "Cd": "0.371", "Fe": "3.36%", "Se": "1.5",
	},
	"NIST 2710a": {
		"Pb": "0.552%", "Zn": "0.418%", "Cu": "3420", "Cr": "23",
		"As": "1540", "Cd": "12.3", "Fe": "4.32%", "Se": "<1",
	},
	"NIST 2711a": {
		"Pb": "1400", "Zn": "414", "Cu": "140", "Cr": "52.3",
		"Ni": "21.7", "As": "107", "Cd": "54.1", "Fe": "2.82%", "Se": "2",
	},
}

// StandardsFor returns the names and certified ppm values of the reference
// materials carrying a usable (above detection limit) value for the
// element, in deterministic name order.
func StandardsFor(symbol string) (names []string, ppm []float64) {
	for name, values := range ReferenceMaterials {
		raw, ok := values[symbol]
		if !ok {
			continue
		}

		ref, err := ParseReference(raw)
		if err != nil || ref.Kind != Value {
			continue
		}

		names = append(names, name)
		ppm = append(ppm, ref.PPM)
	}

	sort.Sort(&byName{names: names, ppm: ppm})

	return names, ppm
}

type byName struct {
	names []string
	ppm   []float64
}

func (s *byName) Len() int           { return len(s.names) }
func (s *byName) Less(i, j int) bool { return s.names[i] < s.names[j] }
func (s *byName) Swap(i, j int) {
	s.names[i], s.names[j] = s.names[j], s.names[i]
	s.ppm[i], s.ppm[j] = s.ppm[j], s.ppm[i]
}
