// Package jsonstat parses Eurostat JSON-stat 2.0 payloads and converts them
// into flat tabular rows. The value space is a sparse mapping from flat
// integer indices to observations; decoding reconstructs per-dimension
// coordinates by mixed-radix decomposition and never materializes the dense
// cross-product.
package jsonstat

import (
	"encoding/json"
	"sort"
	"strconv"

	"github.com/eraptis/eustat-cli/internal/apperr"
)

// Category holds a dimension's vocabulary: a code -> position index map and
// an optional code -> label map.
type Category struct {
	Index map[string]int    `json:"index"`
	Label map[string]string `json:"label"`
}

// Dimension is one axis of the payload.
type Dimension struct {
	Label    string   `json:"label"`
	Category Category `json:"category"`
}

// Payload is a decoded JSON-stat response. It is transient: consumed by one
// Decode call and then discarded. Decoded rows never alias the payload's
// backing storage.
type Payload struct {
	Version string
	Label   string
	Updated string

	// ID and Size are the ordered dimension list; the last dimension varies
	// fastest in the flat index space.
	ID   []string
	Size []int

	Dimensions map[string]Dimension

	// Value is the sparse observation map keyed by flat index. A present key
	// with a nil value is an observation published as null (e.g.
	// confidential); an absent key is no observation at all.
	Value map[int]*float64

	// Status carries per-observation flags keyed by flat index.
	Status map[int]string
}

// envelope mirrors the raw JSON-stat wire format. Value and status admit
// both sparse-object and dense-array encodings.
type envelope struct {
	Version string          `json:"version"`
	Class   string          `json:"class"`
	Label   string          `json:"label"`
	Updated string          `json:"updated"`
	ID      []string        `json:"id"`
	Size    []int           `json:"size"`
	Dim     map[string]Dimension `json:"dimension"`
	Value   json.RawMessage `json:"value"`
	Status  json.RawMessage `json:"status"`
	Warning *struct {
		Status int    `json:"status"`
		Label  string `json:"label"`
	} `json:"warning"`
}

// Parse decodes a raw JSON-stat body. A Eurostat async warning (status 413)
// is surfaced as an APIError; structural problems are DecodeErrors.
func Parse(body []byte) (*Payload, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, apperr.Decodef("invalid JSON-stat body: %v", err)
	}
	if env.Warning != nil && env.Warning.Status == 413 {
		return nil, apperr.API(413,
			"request too large, data will be processed asynchronously; retry later or use more specific filters")
	}
	if len(env.ID) == 0 || len(env.Size) == 0 {
		return nil, apperr.Decode("missing dimension information")
	}
	if env.Value == nil {
		return nil, apperr.Decode("no value data in response")
	}

	p := &Payload{
		Version:    env.Version,
		Label:      env.Label,
		Updated:    env.Updated,
		ID:         env.ID,
		Size:       env.Size,
		Dimensions: env.Dim,
	}

	var err error
	if p.Value, err = parseValues(env.Value); err != nil {
		return nil, err
	}
	if len(env.Status) > 0 {
		if p.Status, err = parseStatus(env.Status); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// parseValues accepts the sparse object form {"0": 1.2, "3": null} and the
// dense array form [1.2, null, ...]. Dense nulls are dropped: a null cell in
// an array is indistinguishable from "no observation".
func parseValues(raw json.RawMessage) (map[int]*float64, error) {
	if len(raw) > 0 && raw[0] == '[' {
		var arr []*float64
		if err := json.Unmarshal(raw, &arr); err != nil {
			return nil, apperr.Decodef("invalid value array: %v", err)
		}
		out := make(map[int]*float64, len(arr))
		for i, v := range arr {
			if v != nil {
				out[i] = v
			}
		}
		return out, nil
	}

	var obj map[string]*float64
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, apperr.Decodef("invalid value object: %v", err)
	}
	out := make(map[int]*float64, len(obj))
	for k, v := range obj {
		idx, err := strconv.Atoi(k)
		if err != nil {
			continue // non-numeric keys are ignored, matching the source format's leniency
		}
		out[idx] = v
	}
	return out, nil
}

func parseStatus(raw json.RawMessage) (map[int]string, error) {
	if len(raw) > 0 && raw[0] == '[' {
		var arr []string
		if err := json.Unmarshal(raw, &arr); err != nil {
			return nil, apperr.Decodef("invalid status array: %v", err)
		}
		out := make(map[int]string, len(arr))
		for i, s := range arr {
			if s != "" {
				out[i] = s
			}
		}
		return out, nil
	}

	var obj map[string]string
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, apperr.Decodef("invalid status object: %v", err)
	}
	out := make(map[int]string, len(obj))
	for k, s := range obj {
		idx, err := strconv.Atoi(k)
		if err != nil {
			continue
		}
		out[idx] = s
	}
	return out, nil
}

// vocabulary returns a dimension's codes ordered by their category index
// positions. When no index map is present, positional string codes
// ("0".."n-1") are synthesized.
func (p *Payload) vocabulary(dim string, size int) []string {
	cat := p.Dimensions[dim].Category
	if len(cat.Index) == 0 {
		codes := make([]string, size)
		for i := range codes {
			codes[i] = strconv.Itoa(i)
		}
		return codes
	}
	type pos struct {
		code string
		idx  int
	}
	ordered := make([]pos, 0, len(cat.Index))
	for code, i := range cat.Index {
		ordered = append(ordered, pos{code, i})
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].idx < ordered[j].idx })
	codes := make([]string, len(ordered))
	for i, p := range ordered {
		codes[i] = p.code
	}
	return codes
}

// labelFor returns the label of a vocabulary code, falling back to the code.
func (p *Payload) labelFor(dim, code string) string {
	if l, ok := p.Dimensions[dim].Category.Label[code]; ok && l != "" {
		return l
	}
	return code
}
