package catalogue

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// datetime layouts seen in the TOC export.
var tocTimeLayouts = []string{
	"2006-01-02T15:04:05-0700",
	"2006-01-02",
	"02.01.2006",
}

func parseTOCTime(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range tocTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// ParseTOC parses the tab-separated table-of-contents export. Columns:
// title, code, type, last update, last modified, data start, data end,
// values count. The title's leading indentation (4 spaces per level) encodes
// the folder hierarchy.
func ParseTOC(r io.Reader) (*TableOfContents, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	// Header row.
	if _, err := cr.Read(); err != nil {
		return nil, fmt.Errorf("read toc header: %w", err)
	}

	toc := &TableOfContents{
		byCode:    map[string]int{},
		hierarchy: map[string][]string{},
	}

	var path []string
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read toc row: %w", err)
		}
		if len(row) < 8 {
			continue
		}

		title, code := row[0], strings.TrimSpace(row[1])
		if strings.TrimSpace(title) == "" || code == "" {
			continue
		}

		level := (len(title) - len(strings.TrimLeft(title, " "))) / 4
		if level > len(path) {
			level = len(path)
		}
		path = append(path[:level], code)

		info := DatasetInfo{
			Code:         code,
			Title:        strings.TrimSpace(title),
			Type:         strings.TrimSpace(row[2]),
			LastUpdate:   parseTOCTime(row[3]),
			LastModified: parseTOCTime(row[4]),
			DataStart:    strings.TrimSpace(row[5]),
			DataEnd:      strings.TrimSpace(row[6]),
		}
		if n, err := strconv.Atoi(strings.TrimSpace(row[7])); err == nil {
			info.ValuesCount = n
		}

		// First occurrence wins; some codes repeat under several folders.
		if _, seen := toc.byCode[code]; !seen {
			toc.byCode[code] = len(toc.Datasets)
			toc.Datasets = append(toc.Datasets, info)
		}

		if level > 0 {
			parent := path[level-1]
			if !containsCode(toc.hierarchy[parent], code) {
				toc.hierarchy[parent] = append(toc.hierarchy[parent], code)
			}
		}
	}
	return toc, nil
}

func containsCode(codes []string, code string) bool {
	for _, c := range codes {
		if c == code {
			return true
		}
	}
	return false
}
