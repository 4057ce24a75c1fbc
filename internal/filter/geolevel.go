package filter

import (
	"strings"

	"github.com/eraptis/eustat-cli/internal/apperr"
)

// Geo level names accepted by ExpandGeoLevel.
const (
	LevelAggregate = "aggregate"
	LevelCountry   = "country"
	LevelNUTS1     = "nuts1"
	LevelNUTS2     = "nuts2"
	LevelNUTS3     = "nuts3"
	LevelCity      = "city"
)

var validGeoLevels = map[string]bool{
	LevelAggregate: true,
	LevelCountry:   true,
	LevelNUTS1:     true,
	LevelNUTS2:     true,
	LevelNUTS3:     true,
	LevelCity:      true,
}

// aggregatePrefixes are the leading letter runs of Eurostat aggregate codes
// (EU27_2020, EA19, EEA30, EFTA, ...).
var aggregatePrefixes = map[string]bool{
	"EU":   true,
	"EA":   true,
	"EEA":  true,
	"EFTA": true,
}

// ExpandGeoLevel selects the codes of a geo vocabulary matching the given
// level's code-shape convention. Codes that cannot be classified are left
// out silently; not every dataset carries every level.
func ExpandGeoLevel(level string, vocabulary []string) ([]string, error) {
	if !validGeoLevels[level] {
		return nil, apperr.InvalidParameterf(
			"invalid geo level %q (expected aggregate|country|nuts1|nuts2|nuts3|city)", level)
	}
	var out []string
	for _, code := range vocabulary {
		if ClassifyGeo(code) == level {
			out = append(out, code)
		}
	}
	return out, nil
}

// ClassifyGeo maps a geo code to its level by shape:
//
//	country   2 letters                  DE, SE
//	nuts1–3   country prefix + 1–3      DE1, DE11, DE111
//	city      country prefix + digits   SE001C, AT001C1
//	aggregate EU/EA/EEA/EFTA prefix or  EU27_2020, EA19
//	          an underscore anywhere
//
// The empty string is returned for codes matching no convention.
func ClassifyGeo(code string) string {
	if code == "" {
		return ""
	}
	if strings.Contains(code, "_") {
		return LevelAggregate
	}
	letters := leadingLetters(code)
	if aggregatePrefixes[letters] && len(code) > 2 {
		return LevelAggregate
	}
	if len(letters) < 2 {
		return ""
	}
	switch n := len(code); {
	case n == 2 && letters == code:
		return LevelCountry
	case n == 3:
		return LevelNUTS1
	case n == 4:
		return LevelNUTS2
	case n == 5:
		return LevelNUTS3
	case n >= 6 && containsDigit(code):
		return LevelCity
	}
	return ""
}

func leadingLetters(s string) string {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < 'A' || c > 'Z' {
			return s[:i]
		}
	}
	return s
}

func containsDigit(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			return true
		}
	}
	return false
}
