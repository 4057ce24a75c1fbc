package filter

import (
	"sort"

	"github.com/eraptis/eustat-cli/internal/apperr"
	"github.com/eraptis/eustat-cli/internal/catalogue"
)

// All is the literal filter value meaning "no restriction", equivalent to
// omitting the filter entirely.
const All = "all"

// Options enumerates the recognized filter parameters. Zero values mean
// "not supplied". Dataset-specific dimensions go into Dims.
type Options struct {
	Geo      []string // geo codes, or the literal "all"
	GeoLevel string   // country|nuts1|nuts2|nuts3|city|aggregate

	Time            []string // exact period codes
	LastTimePeriod  int      // N most recent periods
	SinceTimePeriod string   // inclusive lower bound
	UntilTimePeriod string   // inclusive upper bound

	Dims map[string][]string // dimension code -> accepted codes
}

// reserved are parameter names that must not appear in Options.Dims because
// they have dedicated fields or belong to the transport layer.
var reserved = map[string]bool{
	"format":          true,
	"lang":            true,
	"language":        true,
	"geoLevel":        true,
	GeoDimension:      true,
	TimeDimension:     true,
	"sinceTimePeriod": true,
	"untilTimePeriod": true,
	"lastTimePeriod":  true,
}

// Build validates the supplied options against the dataset's dimension
// metadata and returns a normalized Set. Every supplied dimension must exist
// in the metadata (case-sensitive exact match on dimension code); time filter
// forms are mutually validated. Build performs no I/O.
func Build(datasetCode string, meta *catalogue.DimensionMetadata, opts Options) (*Set, error) {
	if meta == nil {
		return nil, apperr.InvalidParameterf("no dimension metadata for dataset %q", datasetCode)
	}

	s := &Set{dataset: datasetCode, dims: map[string]map[string]bool{}}

	tp, err := buildTimePredicate(opts)
	if err != nil {
		return nil, err
	}
	if tp.Kind != TimeNone {
		if _, ok := meta.Dimension(TimeDimension); !ok {
			return nil, apperr.InvalidParameterf("dataset %q has no %q dimension", datasetCode, TimeDimension)
		}
	}
	s.time = tp

	geoSet, restricted, err := buildGeoSet(datasetCode, meta, opts)
	if err != nil {
		return nil, err
	}
	if restricted {
		s.dims[GeoDimension] = geoSet
	}

	// Arbitrary dataset-specific dimensions.
	dimCodes := make([]string, 0, len(opts.Dims))
	for d := range opts.Dims {
		dimCodes = append(dimCodes, d)
	}
	sort.Strings(dimCodes)
	for _, dim := range dimCodes {
		if reserved[dim] {
			return nil, apperr.InvalidParameterf("dimension %q has a dedicated filter field, use it instead", dim)
		}
		if _, ok := meta.Dimension(dim); !ok {
			return nil, apperr.InvalidParameterf("unknown dimension %q for dataset %q", dim, datasetCode)
		}
		codes, unrestricted := normalizeCodes(opts.Dims[dim])
		if unrestricted || len(codes) == 0 {
			continue
		}
		s.dims[dim] = codes
	}

	return s, nil
}

// buildTimePredicate normalizes and cross-validates the time filter forms.
// Only sinceTimePeriod and untilTimePeriod may be combined.
func buildTimePredicate(opts Options) (TimePredicate, error) {
	exact, unrestricted := normalizeCodes(opts.Time)
	hasExact := !unrestricted && len(exact) > 0
	hasLast := opts.LastTimePeriod != 0
	hasSince := opts.SinceTimePeriod != ""
	hasUntil := opts.UntilTimePeriod != ""

	if opts.LastTimePeriod < 0 {
		return TimePredicate{}, apperr.InvalidParameterf("lastTimePeriod must be positive, got %d", opts.LastTimePeriod)
	}
	if hasLast && (hasSince || hasUntil || hasExact) {
		return TimePredicate{}, apperr.InvalidParameter(
			"lastTimePeriod cannot be combined with time, sinceTimePeriod or untilTimePeriod")
	}
	if hasExact && (hasSince || hasUntil) {
		return TimePredicate{}, apperr.InvalidParameter(
			"time cannot be combined with sinceTimePeriod or untilTimePeriod")
	}

	switch {
	case hasExact:
		codes := make([]string, 0, len(exact))
		for c := range exact {
			codes = append(codes, c)
		}
		sort.Strings(codes)
		return TimePredicate{Kind: TimeExact, Codes: codes}, nil
	case hasLast:
		return TimePredicate{Kind: TimeLastN, N: opts.LastTimePeriod}, nil
	case hasSince && hasUntil:
		if opts.SinceTimePeriod > opts.UntilTimePeriod {
			return TimePredicate{}, apperr.InvalidParameterf(
				"sinceTimePeriod %q is after untilTimePeriod %q", opts.SinceTimePeriod, opts.UntilTimePeriod)
		}
		return TimePredicate{Kind: TimeRange, Since: opts.SinceTimePeriod, Until: opts.UntilTimePeriod}, nil
	case hasSince:
		return TimePredicate{Kind: TimeSince, Since: opts.SinceTimePeriod}, nil
	case hasUntil:
		return TimePredicate{Kind: TimeUntil, Until: opts.UntilTimePeriod}, nil
	}
	return TimePredicate{Kind: TimeNone}, nil
}

// buildGeoSet combines explicit geo codes and a geoLevel expansion into one
// accepted-code set. The second return value reports whether geo is
// restricted at all.
func buildGeoSet(datasetCode string, meta *catalogue.DimensionMetadata, opts Options) (map[string]bool, bool, error) {
	codes, unrestricted := normalizeCodes(opts.Geo)
	hasGeo := !unrestricted && len(codes) > 0
	hasLevel := opts.GeoLevel != ""

	if !hasGeo && !hasLevel {
		return nil, false, nil
	}

	geoDim, ok := meta.Dimension(GeoDimension)
	if !ok {
		return nil, false, apperr.InvalidParameterf("dataset %q has no %q dimension", datasetCode, GeoDimension)
	}

	accepted := map[string]bool{}
	if hasGeo {
		for c := range codes {
			accepted[c] = true
		}
	}
	if hasLevel {
		expanded, err := ExpandGeoLevel(opts.GeoLevel, geoDim.Codes)
		if err != nil {
			return nil, false, err
		}
		for _, c := range expanded {
			accepted[c] = true
		}
	}
	return accepted, true, nil
}

// normalizeCodes deduplicates a code list. The literal "all" anywhere in the
// list means no restriction.
func normalizeCodes(codes []string) (map[string]bool, bool) {
	out := map[string]bool{}
	for _, c := range codes {
		if c == All {
			return nil, true
		}
		if c == "" {
			continue
		}
		out[c] = true
	}
	return out, false
}
