package filter

import (
	"reflect"
	"testing"

	"github.com/eraptis/eustat-cli/internal/apperr"
	"github.com/eraptis/eustat-cli/internal/catalogue"
)

func testMeta() *catalogue.DimensionMetadata {
	return &catalogue.DimensionMetadata{
		DatasetCode: "tps00001",
		Dimensions: []catalogue.Dimension{
			{Code: "freq", Codes: []string{"A"}},
			{Code: "indic_de", Codes: []string{"JAN", "AVG"}},
			{Code: "geo", Codes: []string{"EU27_2020", "DE", "SE", "DE1", "SE001C"}},
			{Code: "time", Codes: []string{"2019", "2020", "2021", "2022"}},
		},
	}
}

func TestBuild_TimeExclusivity(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"last with since", Options{LastTimePeriod: 3, SinceTimePeriod: "2020"}},
		{"last with until", Options{LastTimePeriod: 3, UntilTimePeriod: "2021"}},
		{"last with exact", Options{LastTimePeriod: 3, Time: []string{"2020"}}},
		{"exact with since", Options{Time: []string{"2020"}, SinceTimePeriod: "2019"}},
		{"exact with until", Options{Time: []string{"2020"}, UntilTimePeriod: "2021"}},
		{"negative last", Options{LastTimePeriod: -1}},
		{"since after until", Options{SinceTimePeriod: "2022", UntilTimePeriod: "2020"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build("tps00001", testMeta(), tt.opts)
			if !apperr.IsInvalidParameter(err) {
				t.Fatalf("expected InvalidParameterError, got %v", err)
			}
		})
	}
}

func TestBuild_SinceAndUntilCombine(t *testing.T) {
	s, err := Build("tps00001", testMeta(), Options{SinceTimePeriod: "2020", UntilTimePeriod: "2021"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tp := s.Time()
	if tp.Kind != TimeRange || tp.Since != "2020" || tp.Until != "2021" {
		t.Fatalf("unexpected predicate: %+v", tp)
	}
}

func TestBuild_UnknownDimension(t *testing.T) {
	_, err := Build("tps00001", testMeta(), Options{Dims: map[string][]string{"foo": {"X"}}})
	if !apperr.IsInvalidParameter(err) {
		t.Fatalf("expected InvalidParameterError, got %v", err)
	}
}

func TestBuild_DimensionMatchIsCaseSensitive(t *testing.T) {
	_, err := Build("tps00001", testMeta(), Options{Dims: map[string][]string{"INDIC_DE": {"JAN"}}})
	if !apperr.IsInvalidParameter(err) {
		t.Fatalf("expected InvalidParameterError, got %v", err)
	}
}

func TestBuild_ReservedDimensionNames(t *testing.T) {
	for _, dim := range []string{"format", "lang", "geoLevel", "geo", "time", "lastTimePeriod"} {
		t.Run(dim, func(t *testing.T) {
			_, err := Build("tps00001", testMeta(), Options{Dims: map[string][]string{dim: {"X"}}})
			if !apperr.IsInvalidParameter(err) {
				t.Fatalf("expected InvalidParameterError, got %v", err)
			}
		})
	}
}

func TestBuild_AllMeansUnrestricted(t *testing.T) {
	s, err := Build("tps00001", testMeta(), Options{
		Geo:  []string{"all"},
		Dims: map[string][]string{"indic_de": {"JAN", "all"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := s.Restricted(); len(got) != 0 {
		t.Fatalf("expected no restrictions, got %v", got)
	}
	if !s.Accepts("geo", "anything") || !s.Accepts("indic_de", "AVG") {
		t.Fatalf("expected unrestricted dimensions to accept every code")
	}
}

func TestBuild_GeoLevelExpansion(t *testing.T) {
	s, err := Build("tps00001", testMeta(), Options{GeoLevel: "country"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !s.Accepts("geo", "DE") || !s.Accepts("geo", "SE") {
		t.Fatalf("expected country codes accepted")
	}
	if s.Accepts("geo", "EU27_2020") || s.Accepts("geo", "DE1") {
		t.Fatalf("expected non-country codes rejected")
	}
}

func TestBuild_GeoCodesAndLevelUnion(t *testing.T) {
	s, err := Build("tps00001", testMeta(), Options{Geo: []string{"EU27_2020"}, GeoLevel: "nuts1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !s.Accepts("geo", "EU27_2020") || !s.Accepts("geo", "DE1") {
		t.Fatalf("expected union of explicit codes and level expansion")
	}
	if s.Accepts("geo", "DE") {
		t.Fatalf("expected country codes rejected")
	}
}

func TestBuild_GeoWithoutGeoDimension(t *testing.T) {
	meta := &catalogue.DimensionMetadata{
		DatasetCode: "nogeo",
		Dimensions:  []catalogue.Dimension{{Code: "time", Codes: []string{"2020"}}},
	}
	_, err := Build("nogeo", meta, Options{Geo: []string{"DE"}})
	if !apperr.IsInvalidParameter(err) {
		t.Fatalf("expected InvalidParameterError, got %v", err)
	}
}

func TestBuild_TimeWithoutTimeDimension(t *testing.T) {
	meta := &catalogue.DimensionMetadata{
		DatasetCode: "notime",
		Dimensions:  []catalogue.Dimension{{Code: "geo", Codes: []string{"DE"}}},
	}
	_, err := Build("notime", meta, Options{LastTimePeriod: 2})
	if !apperr.IsInvalidParameter(err) {
		t.Fatalf("expected InvalidParameterError, got %v", err)
	}
}

func TestBuild_ExactTimeCodesSortedDeduplicated(t *testing.T) {
	s, err := Build("tps00001", testMeta(), Options{Time: []string{"2021", "2020", "2021"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tp := s.Time()
	if tp.Kind != TimeExact || !reflect.DeepEqual(tp.Codes, []string{"2020", "2021"}) {
		t.Fatalf("unexpected predicate: %+v", tp)
	}
}

func TestBuild_NilMetadata(t *testing.T) {
	_, err := Build("tps00001", nil, Options{})
	if !apperr.IsInvalidParameter(err) {
		t.Fatalf("expected InvalidParameterError, got %v", err)
	}
}
