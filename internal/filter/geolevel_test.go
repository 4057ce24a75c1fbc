package filter

import (
	"reflect"
	"testing"

	"github.com/eraptis/eustat-cli/internal/apperr"
)

func TestClassifyGeo(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"DE", LevelCountry},
		{"SE", LevelCountry},
		{"DE1", LevelNUTS1},
		{"DE11", LevelNUTS2},
		{"DE111", LevelNUTS3},
		{"SE001C", LevelCity},
		{"AT001C1", LevelCity},
		{"EU27_2020", LevelAggregate},
		{"EA19", LevelAggregate},
		{"EEA30", LevelAggregate},
		{"EFTA", LevelAggregate},
		{"DE_TOT", LevelAggregate},
		{"", ""},
		{"X", ""},
		{"ABCDEF", ""}, // six letters, no digit: not a city code
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			if got := ClassifyGeo(tt.code); got != tt.want {
				t.Fatalf("ClassifyGeo(%q) = %q, want %q", tt.code, got, tt.want)
			}
		})
	}
}

func TestExpandGeoLevel(t *testing.T) {
	vocabulary := []string{"EU27_2020", "DE", "SE", "DE1", "DE11", "DE111", "SE001C"}

	tests := []struct {
		level string
		want  []string
	}{
		{LevelAggregate, []string{"EU27_2020"}},
		{LevelCountry, []string{"DE", "SE"}},
		{LevelNUTS1, []string{"DE1"}},
		{LevelNUTS2, []string{"DE11"}},
		{LevelNUTS3, []string{"DE111"}},
		{LevelCity, []string{"SE001C"}},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			got, err := ExpandGeoLevel(tt.level, vocabulary)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("ExpandGeoLevel(%q) = %v, want %v", tt.level, got, tt.want)
			}
		})
	}
}

func TestExpandGeoLevel_InvalidLevel(t *testing.T) {
	_, err := ExpandGeoLevel("region", []string{"DE"})
	if !apperr.IsInvalidParameter(err) {
		t.Fatalf("expected InvalidParameterError, got %v", err)
	}
}

func TestExpandGeoLevel_NoMatches_IsEmptyNotError(t *testing.T) {
	got, err := ExpandGeoLevel(LevelCity, []string{"DE", "SE"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty expansion, got %v", got)
	}
}
