package catalogue

import (
	"strings"
	"testing"
	"time"
)

const tocFixture = "title\tcode\ttype\tlast update of data\tlast table structure change\tdata start\tdata end\tvalues\n" +
	"Database by themes\tdata\tfolder\t\t\t\t\t\n" +
	"    General and regional statistics\tgeneral\tfolder\t\t\t\t\t\n" +
	"        Population on 1 January\ttps00001\ttable\t2024-01-15\t2024-01-10\t2012\t2023\t396\n" +
	"        GDP and main components\tnama_10_gdp\tdataset\t15.02.2024\t2024-02-01\t1975\t2023\t869040\n" +
	"    Economy and finance\teconomy\tfolder\t\t\t\t\t\n" +
	"        GDP and main components\tnama_10_gdp\tdataset\t15.02.2024\t2024-02-01\t1975\t2023\t869040\n"

func TestParseTOC_EntriesAndFields(t *testing.T) {
	toc, err := ParseTOC(strings.NewReader(tocFixture))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// The repeated nama_10_gdp row collapses to its first occurrence.
	if len(toc.Datasets) != 5 {
		t.Fatalf("expected 5 entries, got %d", len(toc.Datasets))
	}

	info, ok := toc.Lookup("tps00001")
	if !ok {
		t.Fatalf("expected tps00001 present")
	}
	if info.Title != "Population on 1 January" || info.Type != "table" {
		t.Fatalf("unexpected entry: %+v", info)
	}
	if info.DataStart != "2012" || info.DataEnd != "2023" || info.ValuesCount != 396 {
		t.Fatalf("unexpected data fields: %+v", info)
	}
	want := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	if !info.LastUpdate.Equal(want) {
		t.Fatalf("LastUpdate = %v, want %v", info.LastUpdate, want)
	}
}

func TestParseTOC_DottedDateLayout(t *testing.T) {
	toc, err := ParseTOC(strings.NewReader(tocFixture))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	info, _ := toc.Lookup("nama_10_gdp")
	want := time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC)
	if !info.LastUpdate.Equal(want) {
		t.Fatalf("LastUpdate = %v, want %v", info.LastUpdate, want)
	}
}

func TestParseTOC_Hierarchy(t *testing.T) {
	toc, err := ParseTOC(strings.NewReader(tocFixture))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	root := toc.Children("data")
	if len(root) != 2 || root[0] != "general" || root[1] != "economy" {
		t.Fatalf("unexpected root children: %v", root)
	}
	general := toc.Children("general")
	if len(general) != 2 || general[0] != "tps00001" || general[1] != "nama_10_gdp" {
		t.Fatalf("unexpected folder children: %v", general)
	}
	// A dataset repeated under a second folder still appears there.
	economy := toc.Children("economy")
	if len(economy) != 1 || economy[0] != "nama_10_gdp" {
		t.Fatalf("unexpected folder children: %v", economy)
	}
	if got := toc.Children("tps00001"); len(got) != 0 {
		t.Fatalf("expected leaf to have no children, got %v", got)
	}
}

func TestParseTOC_SkipsShortAndEmptyRows(t *testing.T) {
	fixture := "title\tcode\ttype\n" +
		"short row\tx\tfolder\n" + // fewer than 8 columns
		"Database by themes\tdata\tfolder\t\t\t\t\t\n"
	toc, err := ParseTOC(strings.NewReader(fixture))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(toc.Datasets) != 1 || toc.Datasets[0].Code != "data" {
		t.Fatalf("unexpected entries: %+v", toc.Datasets)
	}
}

func TestParseTOCTime_UnknownLayoutIsZero(t *testing.T) {
	if got := parseTOCTime("15/02/2024"); !got.IsZero() {
		t.Fatalf("expected zero time, got %v", got)
	}
	if got := parseTOCTime(""); !got.IsZero() {
		t.Fatalf("expected zero time for empty input, got %v", got)
	}
}
