package catalogue

import (
	"reflect"
	"strings"
	"testing"
)

const metabaseFixture = "tps00001\tfreq\tA\n" +
	"tps00001\tgeo\tDE\n" +
	"tps00001\tgeo\tSE\n" +
	"tps00001\ttime\t2020\n" +
	"tps00001\ttime\t2021\n" +
	"nama_10_gdp\tunit\tCP_MEUR\n" +
	"\n" +
	"broken line without tabs\n"

func TestParseMetabase_DimensionsInFirstAppearanceOrder(t *testing.T) {
	mb, err := ParseMetabase(strings.NewReader(metabaseFixture))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(mb) != 2 {
		t.Fatalf("expected 2 datasets, got %d", len(mb))
	}

	meta := mb["tps00001"]
	if meta == nil {
		t.Fatalf("expected tps00001 present")
	}
	if got := meta.Codes(); !reflect.DeepEqual(got, []string{"freq", "geo", "time"}) {
		t.Fatalf("unexpected dimension order: %v", got)
	}

	geo, ok := meta.Dimension("geo")
	if !ok {
		t.Fatalf("expected geo dimension")
	}
	if !reflect.DeepEqual(geo.Codes, []string{"DE", "SE"}) {
		t.Fatalf("unexpected geo codes: %v", geo.Codes)
	}
}

func TestParseMetabase_SkipsMalformedLines(t *testing.T) {
	mb, err := ParseMetabase(strings.NewReader(metabaseFixture))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := mb["broken line without tabs"]; ok {
		t.Fatalf("expected malformed line to be skipped")
	}
}

func TestDimensionMetadata_CaseSensitiveLookup(t *testing.T) {
	mb, err := ParseMetabase(strings.NewReader(metabaseFixture))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	meta := mb["tps00001"]
	if _, ok := meta.Dimension("GEO"); ok {
		t.Fatalf("expected case-sensitive dimension lookup to miss")
	}
}
