package jsonstat

import (
	"sort"

	"github.com/eraptis/eustat-cli/internal/apperr"
	"github.com/eraptis/eustat-cli/internal/filter"
)

// Row is one decoded observation: per-dimension vocabulary codes and labels,
// the numeric value (nil when the source published null) and the status flag.
// Rows own their data; nothing aliases the payload after Decode returns.
type Row struct {
	Dims   map[string]string
	Labels map[string]string
	Value  *float64
	Status string
}

// Coords decomposes a flat index into per-dimension coordinates using the
/// mixed-radix convention of the source format: the LAST dimension varies
// fastest. Swapping this convention would silently transpose every result.
func Coords(idx int, sizes []int) []int {
	coords := make([]int, len(sizes))
	for i := len(sizes) - 1; i >= 0; i-- {
		coords[i] = idx % sizes[i]
		idx /= sizes[i]
	}
	return coords
}

// FlatIndex is the inverse of Coords.
func FlatIndex(coords []int, sizes []int) int {
	idx := 0
	for i := range sizes {
		idx = idx*sizes[i] + coords[i]
	}
	return idx
}

// Decode converts a payload into tabular rows, applying the filter set during
// decode. Rows are produced in ascending flat-index order. A nil filter set
// emits every present observation.
//
// Filters referencing dimensions absent from the payload fail fast with an
// InvalidParameterError before any decoding. Malformed payloads (size list
// not matching the dimension list, vocabulary sizes disagreeing with declared
// sizes, flat index out of range) are DecodeErrors.
func Decode(p *Payload, fs *filter.Set) ([]Row, error) {
	if err := validate(p); err != nil {
		return nil, err
	}
	if err := checkFilterDims(p, fs); err != nil {
		return nil, err
	}

	vocabs := make([][]string, len(p.ID))
	for i, dim := range p.ID {
		vocabs[i] = p.vocabulary(dim, p.Size[i])
	}

	// The time predicate is resolved once against the full time vocabulary,
	// not against the observations that survive other filters.
	timeDim := -1
	var timeAccept map[string]bool
	if fs != nil && fs.Time().Kind != filter.TimeNone {
		for i, dim := range p.ID {
			if dim == filter.TimeDimension {
				timeDim = i
				timeAccept = resolveTime(fs.Time(), vocabs[i])
				break
			}
		}
	}

	total := 1
	for _, s := range p.Size {
		total *= s
	}

	indices := make([]int, 0, len(p.Value))
	for idx := range p.Value {
		if idx < 0 || idx >= total {
			return nil, apperr.Decodef("flat index %d out of range [0,%d)", idx, total)
		}
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	rows := make([]Row, 0, len(indices))
observations:
	for _, idx := range indices {
		coords := Coords(idx, p.Size)
		dims := make(map[string]string, len(p.ID))
		labels := make(map[string]string, len(p.ID))
		for i, dim := range p.ID {
			code := vocabs[i][coords[i]]
			if i == timeDim {
				if timeAccept != nil && !timeAccept[code] {
					continue observations
				}
			} else if fs != nil && !fs.Accepts(dim, code) {
				continue observations
			}
			dims[dim] = code
			labels[dim] = p.labelFor(dim, code)
		}
		rows = append(rows, Row{
			Dims:   dims,
			Labels: labels,
			Value:  p.Value[idx],
			Status: p.Status[idx],
		})
	}
	return rows, nil
}

func validate(p *Payload) error {
	if p == nil {
		return apperr.Decode("nil payload")
	}
	if len(p.ID) != len(p.Size) {
		return apperr.Decodef("dimension list has %d entries but size list has %d", len(p.ID), len(p.Size))
	}
	for i, s := range p.Size {
		if s < 1 {
			return apperr.Decodef("dimension %q has invalid size %d", p.ID[i], s)
		}
		if n := len(p.Dimensions[p.ID[i]].Category.Index); n > 0 && n != s {
			return apperr.Decodef("dimension %q declares size %d but its vocabulary has %d codes",
				p.ID[i], s, n)
		}
	}
	return nil
}

// checkFilterDims fails fast when the filter references a dimension the
// payload does not carry.
func checkFilterDims(p *Payload, fs *filter.Set) error {
	if fs == nil {
		return nil
	}
	present := make(map[string]bool, len(p.ID))
	for _, dim := range p.ID {
		present[dim] = true
	}
	for _, dim := range fs.Restricted() {
		if !present[dim] {
			return apperr.InvalidParameterf("unknown dimension %q for dataset %q", dim, fs.DatasetCode())
		}
	}
	if fs.Time().Kind != filter.TimeNone && !present[filter.TimeDimension] {
		return apperr.InvalidParameterf("dataset %q has no %q dimension", fs.DatasetCode(), filter.TimeDimension)
	}
	return nil
}

// resolveTime turns a time predicate into an accepted-code set over the full
// time vocabulary. Period codes sort lexicographically, which matches the
// chronological order of ISO-like period labels.
func resolveTime(tp filter.TimePredicate, vocabulary []string) map[string]bool {
	accept := map[string]bool{}
	switch tp.Kind {
	case filter.TimeExact:
		for _, c := range tp.Codes {
			accept[c] = true
		}
	case filter.TimeLastN:
		sorted := make([]string, len(vocabulary))
		copy(sorted, vocabulary)
		sort.Strings(sorted)
		n := tp.N
		if n > len(sorted) {
			n = len(sorted)
		}
		for _, c := range sorted[len(sorted)-n:] {
			accept[c] = true
		}
	case filter.TimeSince:
		for _, c := range vocabulary {
			if c >= tp.Since {
				accept[c] = true
			}
		}
	case filter.TimeUntil:
		for _, c := range vocabulary {
			if c <= tp.Until {
				accept[c] = true
			}
		}
	case filter.TimeRange:
		for _, c := range vocabulary {
			if c >= tp.Since && c <= tp.Until {
				accept[c] = true
			}
		}
	}
	return accept
}
