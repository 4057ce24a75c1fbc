package ui

import (
	"bytes"
	"strings"
	"testing"
)

func TestListUI_PrintDatasets(t *testing.T) {
	rows := []DatasetRow{
		{Code: "tps00001", Title: "Population on 1 January", Type: "table",
			LastUpdate: "2024-01-15", DataStart: "2020", DataEnd: "2022", Values: 396},
		{Code: "economy", Title: "Economy and finance", Type: "folder"},
	}

	tests := []struct {
		name  string
		quiet bool
		want  []string
	}{
		{
			name:  "normal mode shows titles and metadata",
			quiet: false,
			want: []string{
				"Search results",
				"tps00001", "Population on 1 January",
				"updated 2024-01-15", "period 2020 to 2022", "396 values",
				"economy", "Economy and finance",
			},
		},
		{
			name:  "quiet mode emits codes only",
			quiet: true,
			want:  []string{"tps00001\neconomy\n"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			ui := NewListUI(&buf, tt.quiet)
			ui.PrintDatasets("Search results", rows)

			output := buf.String()
			for _, want := range tt.want {
				if !strings.Contains(output, want) {
					t.Errorf("Output missing expected string %q.\nGot:\n%s", want, output)
				}
			}
			if tt.quiet && strings.Contains(output, "Population") {
				t.Errorf("Quiet output should not contain titles.\nGot:\n%s", output)
			}
		})
	}
}

func TestListUI_PrintDatasets_Empty(t *testing.T) {
	var buf bytes.Buffer
	ui := NewListUI(&buf, false)
	ui.PrintDatasets("Search results", nil)

	if !strings.Contains(buf.String(), "(no datasets)") {
		t.Errorf("Expected empty-list placeholder.\nGot:\n%s", buf.String())
	}
}

func TestListUI_PrintDimensions(t *testing.T) {
	dims := []DimensionRow{
		{Code: "geo", Label: "Geopolitical entity", NCodes: 42},
		{Code: "time", NCodes: 12},
	}

	var buf bytes.Buffer
	ui := NewListUI(&buf, false)
	ui.PrintDimensions("tps00001", dims)

	output := buf.String()
	want := []string{
		"Dimensions of tps00001",
		"geo", "Geopolitical entity", "(42 codes)",
		"time", "(12 codes)",
	}
	for _, w := range want {
		if !strings.Contains(output, w) {
			t.Errorf("Output missing expected string %q.\nGot:\n%s", w, output)
		}
	}
}

func TestListUI_PrintCodes(t *testing.T) {
	var buf bytes.Buffer
	ui := NewListUI(&buf, false)
	ui.PrintCodes("geo", []string{"DE", "SE"}, map[string]string{"DE": "Germany"})

	output := buf.String()
	for _, w := range []string{"Codes of geo", "DE", "Germany", "SE"} {
		if !strings.Contains(output, w) {
			t.Errorf("Output missing expected string %q.\nGot:\n%s", w, output)
		}
	}
}

func TestRenderTable(t *testing.T) {
	out := RenderTable(
		[]string{"geo", "time", "value"},
		[][]string{
			{"SE", "2022", "10.5"},
			{"DE", "2020", "83.1"},
		},
	)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("Expected header, rule and 2 rows, got %d lines:\n%s", len(lines), out)
	}
	for _, w := range []string{"geo", "time", "value", "─", "SE", "2022", "10.5", "83.1"} {
		if !strings.Contains(out, w) {
			t.Errorf("Output missing expected string %q.\nGot:\n%s", w, out)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{396000, "396,000"},
		{1234567, "1,234,567"},
	}

	for _, tt := range tests {
		if got := formatNumber(tt.in); got != tt.want {
			t.Errorf("formatNumber(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
