// Package filter translates user-facing filter parameters into a normalized,
// immutable Set consumed by the jsonstat decoder and by the transport layer.
// Building a Set performs no I/O; it is a pure function of the options and
// the already-fetched dimension metadata.
package filter

import (
	"sort"
	"strconv"
)

// Dimension codes with dedicated handling.
const (
	GeoDimension  = "geo"
	TimeDimension = "time"
)

// TimeKind enumerates the supported time predicate forms.
type TimeKind int

const (
	// TimeNone means no time restriction.
	TimeNone TimeKind = iota
	// TimeExact restricts to an explicit set of period codes.
	TimeExact
	// TimeLastN restricts to the N most recent periods of the vocabulary.
	TimeLastN
	// TimeSince restricts to periods >= Since (inclusive).
	TimeSince
	// TimeUntil restricts to periods <= Until (inclusive).
	TimeUntil
	// TimeRange restricts to Since <= period <= Until (both inclusive).
	TimeRange
)

// TimePredicate is the normalized time restriction of a Set. Period codes are
// compared lexicographically, which orders ISO-like periods (2020, 2020-Q1,
// 2020-01) correctly.
type TimePredicate struct {
	Kind  TimeKind
	Codes []string // TimeExact only, sorted and deduplicated
	N     int      // TimeLastN only
	Since string   // TimeSince, TimeRange
	Until string   // TimeUntil, TimeRange
}

// Set is a validated, normalized filter for one dataset. It is immutable
// after Build and safe for concurrent reads.
type Set struct {
	dataset string
	dims    map[string]map[string]bool // accepted codes per dimension; absent key = unrestricted
	time    TimePredicate
}

// DatasetCode returns the dataset the Set was built for.
func (s *Set) DatasetCode() string { return s.dataset }

// Time returns the normalized time predicate.
func (s *Set) Time() TimePredicate { return s.time }

// Restricted returns the sorted codes of dimensions carrying an explicit
// code-set restriction. The time predicate is reported separately.
func (s *Set) Restricted() []string {
	out := make([]string, 0, len(s.dims))
	for d := range s.dims {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

// Accepts reports whether a vocabulary code passes the restriction of the
// given dimension. Unrestricted dimensions accept every code. The time
// dimension is not handled here; callers resolve the TimePredicate against
// the time vocabulary instead.
func (s *Set) Accepts(dim, code string) bool {
	if s == nil {
		return true
	}
	accepted, ok := s.dims[dim]
	if !ok {
		return true
	}
	return accepted[code]
}

// Param is one request parameter.
type Param struct {
	Key   string
	Value string
}

// Params returns the normalized request parameters for the Set, sorted by key
// then value. Equivalent filter sets built from differently ordered inputs
// always produce identical parameter lists, which keeps cache fingerprints
// stable.
func (s *Set) Params() []Param {
	params := []Param{
		{Key: "format", Value: "JSON"},
		{Key: "lang", Value: "EN"},
	}
	for dim, accepted := range s.dims {
		for code := range accepted {
			params = append(params, Param{Key: dim, Value: code})
		}
	}
	switch s.time.Kind {
	case TimeExact:
		for _, c := range s.time.Codes {
			params = append(params, Param{Key: TimeDimension, Value: c})
		}
	case TimeLastN:
		params = append(params, Param{Key: "lastTimePeriod", Value: strconv.Itoa(s.time.N)})
	case TimeSince:
		params = append(params, Param{Key: "sinceTimePeriod", Value: s.time.Since})
	case TimeUntil:
		params = append(params, Param{Key: "untilTimePeriod", Value: s.time.Until})
	case TimeRange:
		params = append(params, Param{Key: "sinceTimePeriod", Value: s.time.Since})
		params = append(params, Param{Key: "untilTimePeriod", Value: s.time.Until})
	}
	sort.Slice(params, func(i, j int) bool {
		if params[i].Key != params[j].Key {
			return params[i].Key < params[j].Key
		}
		return params[i].Value < params[j].Value
	})
	return params
}
