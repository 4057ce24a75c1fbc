package catalogue

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ParseMetabase parses the decompressed metabase export: one
// dataset<TAB>dimension<TAB>code line per vocabulary entry. Dimension order
// within a dataset follows first appearance, which matches the order used
// for mixed-radix decoding of that dataset's payloads.
func ParseMetabase(r io.Reader) (map[string]*DimensionMetadata, error) {
	out := map[string]*DimensionMetadata{}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		parts := strings.Split(line, "\t")
		if len(parts) < 3 {
			continue
		}
		dataset, dimension, code := parts[0], parts[1], parts[2]

		meta, ok := out[dataset]
		if !ok {
			meta = &DimensionMetadata{DatasetCode: dataset}
			out[dataset] = meta
		}

		var dim *Dimension
		for i := range meta.Dimensions {
			if meta.Dimensions[i].Code == dimension {
				dim = &meta.Dimensions[i]
				break
			}
		}
		if dim == nil {
			meta.Dimensions = append(meta.Dimensions, Dimension{Code: dimension})
			dim = &meta.Dimensions[len(meta.Dimensions)-1]
		}
		dim.Codes = append(dim.Codes, code)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan metabase: %w", err)
	}
	return out, nil
}
