// Package catalogue holds the in-memory dataset directory: the table of
// contents and the per-dataset dimension metabase. State is lazily populated
// from the injected sources, or eagerly via Preload; after that, browse,
// search and describe operate against memory only.
package catalogue

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sahilm/fuzzy"

	"github.com/eraptis/eustat-cli/internal/apperr"
)

// RootCode is the top of the dataset hierarchy.
const RootCode = "data"

// Sources supplies the raw catalogue documents. Both calls block and return
// either the full body or a transport error; retry policy lives with the
// caller-provided implementations.
type Sources struct {
	TOC      func(ctx context.Context) ([]byte, error)
	Metabase func(ctx context.Context) ([]byte, error)
}

// Catalogue owns the TOC and metabase with an explicit lifecycle:
// lazily populated, eagerly via Preload, dropped via Reset.
type Catalogue struct {
	sources Sources

	mu       sync.RWMutex
	toc      *TableOfContents
	metabase map[string]*DimensionMetadata
}

// New creates an unloaded Catalogue over the given sources.
func New(sources Sources) *Catalogue {
	return &Catalogue{sources: sources}
}

// Preload eagerly populates both the TOC and the metabase so that subsequent
// calls are synchronous against memory.
func (c *Catalogue) Preload(ctx context.Context) error {
	if _, err := c.TableOfContents(ctx); err != nil {
		return err
	}
	_, err := c.loadMetabase(ctx)
	return err
}

// IsLoaded reports whether the metabase is resident in memory.
func (c *Catalogue) IsLoaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.metabase != nil
}

// Reset drops all in-memory state; the next call repopulates it.
func (c *Catalogue) Reset() {
	c.mu.Lock()
	c.toc = nil
	c.metabase = nil
	c.mu.Unlock()
}

// TableOfContents returns the dataset directory, fetching and parsing it on
// first use. The directory is replaced wholesale on Reset, never mutated.
func (c *Catalogue) TableOfContents(ctx context.Context) (*TableOfContents, error) {
	c.mu.RLock()
	toc := c.toc
	c.mu.RUnlock()
	if toc != nil {
		return toc, nil
	}

	if c.sources.TOC == nil {
		return nil, fmt.Errorf("catalogue: no toc source configured")
	}
	body, err := c.sources.TOC(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch table of contents: %w", err)
	}
	toc, err = ParseTOC(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse table of contents: %w", err)
	}
	logf("table of contents loaded: %d entries", len(toc.Datasets))

	c.mu.Lock()
	c.toc = toc
	c.mu.Unlock()
	return toc, nil
}

func (c *Catalogue) loadMetabase(ctx context.Context) (map[string]*DimensionMetadata, error) {
	c.mu.RLock()
	mb := c.metabase
	c.mu.RUnlock()
	if mb != nil {
		return mb, nil
	}

	if c.sources.Metabase == nil {
		return nil, fmt.Errorf("catalogue: no metabase source configured")
	}
	body, err := c.sources.Metabase(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch metabase: %w", err)
	}
	mb, err = ParseMetabase(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse metabase: %w", err)
	}
	logf("metabase loaded: %d datasets", len(mb))

	c.mu.Lock()
	c.metabase = mb
	c.mu.Unlock()
	return mb, nil
}

// DimensionMetadata returns the ordered dimension list of a dataset from the
// metabase, loading it on demand.
func (c *Catalogue) DimensionMetadata(ctx context.Context, datasetCode string) (*DimensionMetadata, error) {
	mb, err := c.loadMetabase(ctx)
	if err != nil {
		return nil, err
	}
	meta, ok := mb[datasetCode]
	if !ok {
		return nil, apperr.NotFound(datasetCode)
	}
	return meta, nil
}

// DatasetInfo returns the TOC entry for a dataset code.
func (c *Catalogue) DatasetInfo(ctx context.Context, datasetCode string) (DatasetInfo, error) {
	toc, err := c.TableOfContents(ctx)
	if err != nil {
		return DatasetInfo{}, err
	}
	info, ok := toc.Lookup(datasetCode)
	if !ok {
		return DatasetInfo{}, apperr.NotFound(datasetCode)
	}
	return info, nil
}

// Child is one entry of a browse listing.
type Child struct {
	DatasetInfo
	HasChildren bool
	ChildCount  int
}

// Browse lists one level of the dataset hierarchy. An empty code starts at
// the root folder.
func (c *Catalogue) Browse(ctx context.Context, folderCode string) (DatasetInfo, []Child, error) {
	toc, err := c.TableOfContents(ctx)
	if err != nil {
		return DatasetInfo{}, nil, err
	}
	if folderCode == "" {
		folderCode = RootCode
	}
	parent, ok := toc.Lookup(folderCode)
	if !ok {
		return DatasetInfo{}, nil, apperr.NotFound(folderCode)
	}

	var children []Child
	for _, code := range toc.Children(folderCode) {
		info, ok := toc.Lookup(code)
		if !ok {
			continue
		}
		sub := toc.Children(code)
		children = append(children, Child{
			DatasetInfo: info,
			HasChildren: len(sub) > 0,
			ChildCount:  len(sub),
		})
	}
	return parent, children, nil
}

// SearchOptions bound and refine a Search call.
type SearchOptions struct {
	// UpdatedSince keeps only datasets updated on or after this date
	// (YYYY-MM-DD, inclusive). Empty means no bound.
	UpdatedSince string
	// MaxResults caps the result list; non-positive falls back to 50.
	MaxResults int
}

// Search finds datasets whose title or code contains the query
// (case-insensitive). Results are ranked by match relevance, then by last
// update (most recent first), with catalogue order as the tie-break. An
// empty query matches every dataset in catalogue order.
func (c *Catalogue) Search(ctx context.Context, query string, opts SearchOptions) ([]DatasetInfo, error) {
	var since time.Time
	if opts.UpdatedSince != "" {
		t, err := time.Parse("2006-01-02", opts.UpdatedSince)
		if err != nil {
			return nil, apperr.InvalidParameterf("invalid date %q, use YYYY-MM-DD", opts.UpdatedSince)
		}
		since = t
	}
	max := opts.MaxResults
	if max <= 0 {
		max = 50
	}

	toc, err := c.TableOfContents(ctx)
	if err != nil {
		return nil, err
	}

	type candidate struct {
		info  DatasetInfo
		order int
		score int
	}
	q := strings.ToLower(query)
	var candidates []candidate
	for i, ds := range toc.Datasets {
		if q != "" &&
			!strings.Contains(strings.ToLower(ds.Title), q) &&
			!strings.Contains(strings.ToLower(ds.Code), q) {
			continue
		}
		if !since.IsZero() {
			// Datasets without an update date are skipped when a bound is set.
			if ds.LastUpdate.IsZero() || ds.LastUpdate.Before(since) {
				continue
			}
		}
		candidates = append(candidates, candidate{info: ds, order: i})
	}

	if q != "" {
		// A substring match is always a fuzzy subsequence match, so every
		// candidate gets a score; the score grades how tight the match is.
		targets := make([]string, len(candidates))
		for i, cand := range candidates {
			targets[i] = cand.info.Code + " " + cand.info.Title
		}
		for _, m := range fuzzy.Find(query, targets) {
			candidates[m.Index].score = m.Score
		}
		sort.SliceStable(candidates, func(i, j int) bool {
			if candidates[i].score != candidates[j].score {
				return candidates[i].score > candidates[j].score
			}
			if !candidates[i].info.LastUpdate.Equal(candidates[j].info.LastUpdate) {
				return candidates[i].info.LastUpdate.After(candidates[j].info.LastUpdate)
			}
			return candidates[i].order < candidates[j].order
		})
	}

	if len(candidates) > max {
		candidates = candidates[:max]
	}
	out := make([]DatasetInfo, len(candidates))
	for i, cand := range candidates {
		out[i] = cand.info
	}
	return out, nil
}
