package ui

import (
	"fmt"
	"io"
	"strings"

	"charm.land/lipgloss/v2"
)

// DatasetRow mirrors the catalogue entry structure
// to avoid circular imports
type DatasetRow struct {
	Code       string
	Title      string
	Type       string
	LastUpdate string
	DataStart  string
	DataEnd    string
	Values     int
}

// DimensionRow mirrors one dataset dimension with its code count
type DimensionRow struct {
	Code   string
	Label  string
	NCodes int
}

// ListUI renders catalogue listings for the search and browse commands
type ListUI struct {
	writer io.Writer
	quiet  bool
}

// NewListUI creates a new UI handler for catalogue listings
func NewListUI(w io.Writer, quiet bool) *ListUI {
	return &ListUI{
		writer: w,
		quiet:  quiet,
	}
}

// PrintDatasets renders a dataset listing under a section header
func (l *ListUI) PrintDatasets(header string, rows []DatasetRow) {
	if l.quiet {
		for _, r := range rows {
			fmt.Fprintln(l.writer, r.Code)
		}
		return
	}

	var output strings.Builder
	output.WriteString(SectionHeader.Render(header))
	output.WriteString("\n")

	if len(rows) == 0 {
		output.WriteString(Dim.Render("  (no datasets)"))
		output.WriteString("\n")
		fmt.Fprint(l.writer, output.String())
		return
	}

	for _, r := range rows {
		mark := GetBullet()
		if r.Type == "folder" {
			mark = GetFolderMark()
		}
		output.WriteString(fmt.Sprintf("  %s %s  %s\n",
			mark,
			Highlight.Render(r.Code),
			r.Title))

		var meta []string
		if r.LastUpdate != "" {
			meta = append(meta, "updated "+r.LastUpdate)
		}
		if r.DataStart != "" || r.DataEnd != "" {
			meta = append(meta, fmt.Sprintf("period %s to %s", r.DataStart, r.DataEnd))
		}
		if r.Values > 0 {
			meta = append(meta, fmt.Sprintf("%d values", r.Values))
		}
		if len(meta) > 0 {
			output.WriteString("      " + Dim.Render(strings.Join(meta, " · ")) + "\n")
		}
	}

	fmt.Fprint(l.writer, output.String())
}

// PrintDatasetInfo renders a single catalogue entry as a key/value block
func (l *ListUI) PrintDatasetInfo(row DatasetRow) {
	if l.quiet {
		fmt.Fprintln(l.writer, row.Code)
		return
	}

	var output strings.Builder
	output.WriteString(Title.Render(row.Code))
	output.WriteString("\n")
	output.WriteString(FormatKeyValue("Title", row.Title))
	output.WriteString("\n")
	output.WriteString(FormatKeyValue("Type", row.Type))
	output.WriteString("\n")
	if row.LastUpdate != "" {
		output.WriteString(FormatKeyValue("Last update", row.LastUpdate))
		output.WriteString("\n")
	}
	if row.DataStart != "" || row.DataEnd != "" {
		output.WriteString(FormatKeyValue("Data period", row.DataStart+" to "+row.DataEnd))
		output.WriteString("\n")
	}
	if row.Values > 0 {
		output.WriteString(FormatKeyValue("Values", fmt.Sprintf("%d", row.Values)))
		output.WriteString("\n")
	}
	fmt.Fprint(l.writer, output.String())
}

// PrintDimensions renders the dimension list of a dataset
func (l *ListUI) PrintDimensions(datasetCode string, dims []DimensionRow) {
	if l.quiet {
		for _, d := range dims {
			fmt.Fprintln(l.writer, d.Code)
		}
		return
	}

	var output strings.Builder
	output.WriteString(SectionHeader.Render(fmt.Sprintf("Dimensions of %s", datasetCode)))
	output.WriteString("\n")
	for _, d := range dims {
		label := d.Label
		if label == "" {
			label = d.Code
		}
		output.WriteString(fmt.Sprintf("  %s %s  %s %s\n",
			GetBullet(),
			Highlight.Render(d.Code),
			label,
			Dim.Render(fmt.Sprintf("(%d codes)", d.NCodes))))
	}
	fmt.Fprint(l.writer, output.String())
}

// PrintCodes renders the code vocabulary of one dimension, with labels when
// available
func (l *ListUI) PrintCodes(dimensionCode string, codes []string, labels map[string]string) {
	if l.quiet {
		for _, c := range codes {
			fmt.Fprintln(l.writer, c)
		}
		return
	}

	var output strings.Builder
	output.WriteString(SectionHeader.Render(fmt.Sprintf("Codes of %s", dimensionCode)))
	output.WriteString("\n")
	for _, c := range codes {
		line := "  " + Highlight.Render(c)
		if label, ok := labels[c]; ok && label != c {
			line += "  " + Dim.Render(label)
		}
		output.WriteString(line + "\n")
	}
	fmt.Fprint(l.writer, output.String())
}

// RenderTable renders headers and rows as an aligned text table. Used for
// the terminal view of decoded observations.
func RenderTable(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}

	var b strings.Builder
	for i, h := range headers {
		b.WriteString(Bold.Render(pad(h, widths[i])))
		if i < len(headers)-1 {
			b.WriteString("  ")
		}
	}
	b.WriteString("\n")
	for i := range headers {
		b.WriteString(Dim.Render(strings.Repeat("─", widths[i])))
		if i < len(headers)-1 {
			b.WriteString("  ")
		}
	}
	b.WriteString("\n")
	for _, row := range rows {
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			b.WriteString(pad(cell, widths[i]))
			if i < len(row)-1 {
				b.WriteString("  ")
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

func pad(s string, width int) string {
	gap := width - lipgloss.Width(s)
	if gap <= 0 {
		return s
	}
	return s + strings.Repeat(" ", gap)
}
