package catalogue

import "time"

// DatasetInfo describes one entry of the Eurostat table of contents.
// Instances are created during TOC parsing and never mutated afterwards.
type DatasetInfo struct {
	Code         string
	Title        string
	Type         string // "dataset", "table" or "folder"
	LastUpdate   time.Time
	LastModified time.Time
	DataStart    string
	DataEnd      string
	ValuesCount  int
}

// IsFolder reports whether the entry is a navigable folder rather than a
// dataset or table.
func (d DatasetInfo) IsFolder() bool { return d.Type == "folder" }

// TableOfContents is the full dataset directory. It is replaced wholesale on
// refresh, never partially mutated.
type TableOfContents struct {
	// Datasets preserves the order of the TOC file.
	Datasets []DatasetInfo

	byCode    map[string]int
	hierarchy map[string][]string // parent code -> ordered child codes
}

// Lookup returns the entry for a dataset code.
func (t *TableOfContents) Lookup(code string) (DatasetInfo, bool) {
	if t == nil || t.byCode == nil {
		return DatasetInfo{}, false
	}
	i, ok := t.byCode[code]
	if !ok {
		return DatasetInfo{}, false
	}
	return t.Datasets[i], true
}

// Children returns the ordered direct children of a folder code.
func (t *TableOfContents) Children(code string) []string {
	if t == nil || t.hierarchy == nil {
		return nil
	}
	return t.hierarchy[code]
}

// Dimension is one axis of a dataset: a code, an optional label and the
// ordered vocabulary of accepted codes. The vocabulary order matches the
// order used for mixed-radix index decoding.
type Dimension struct {
	Code   string
	Label  string
	Codes  []string
	Labels map[string]string // code -> label, may be nil (metabase has none)
}

// LabelFor returns the label for a vocabulary code, falling back to the code
// itself when no label is known.
func (d Dimension) LabelFor(code string) string {
	if d.Labels != nil {
		if l, ok := d.Labels[code]; ok && l != "" {
			return l
		}
	}
	return code
}

// DimensionMetadata is the ordered dimension list of one dataset.
type DimensionMetadata struct {
	DatasetCode string
	Dimensions  []Dimension
}

// Dimension returns the dimension with the given code, matched case-sensitively.
func (m *DimensionMetadata) Dimension(code string) (Dimension, bool) {
	if m == nil {
		return Dimension{}, false
	}
	for _, d := range m.Dimensions {
		if d.Code == code {
			return d, true
		}
	}
	return Dimension{}, false
}

// Codes returns the dimension codes in declared order.
func (m *DimensionMetadata) Codes() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.Dimensions))
	for i, d := range m.Dimensions {
		out[i] = d.Code
	}
	return out
}
