// Package eustat is the public client for the Eurostat dissemination API:
// catalogue browsing and search, dataset metadata, and filtered retrieval of
// statistical data as flat tabular rows. Raw responses are cached by request
// fingerprint; decoding always happens on the caller's side of the cache.
package eustat

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/eraptis/eustat-cli/internal/cache"
	"github.com/eraptis/eustat-cli/internal/catalogue"
	"github.com/eraptis/eustat-cli/internal/fetcher"
	"github.com/eraptis/eustat-cli/internal/filter"
	"github.com/eraptis/eustat-cli/internal/jsonstat"
)

// Client composes the cache, catalogue, transport and decoder. It is safe
// for concurrent use; the cache store is the only shared mutable state.
type Client struct {
	baseURL  string
	store    cache.Store // nil when caching is disabled
	cacheTTL time.Duration

	data *fetcher.DataFetcher
	cat  *catalogue.Catalogue
}

type config struct {
	baseURL  string
	timeout  time.Duration
	cacheDir string
	cacheTTL time.Duration
	store    cache.Store
}

// Option configures a Client.
type Option func(*config)

// WithBaseURL overrides the dissemination API root.
func WithBaseURL(u string) Option { return func(c *config) { c.baseURL = u } }

// WithTimeout sets the per-request HTTP deadline.
func WithTimeout(d time.Duration) Option { return func(c *config) { c.timeout = d } }

// WithCacheDir enables the file-based response cache under dir.
func WithCacheDir(dir string) Option { return func(c *config) { c.cacheDir = dir } }

// WithCacheTTL sets the default time-to-live for cached responses.
// The default is 24 hours.
func WithCacheTTL(d time.Duration) Option { return func(c *config) { c.cacheTTL = d } }

// WithStore supplies a custom cache store, overriding WithCacheDir.
func WithStore(s cache.Store) Option { return func(c *config) { c.store = s } }

// New creates a Client. Caching is off unless WithCacheDir or WithStore is
// given.
func New(opts ...Option) (*Client, error) {
	cfg := config{
		baseURL:  fetcher.DefaultBaseURL,
		timeout:  30 * time.Second,
		cacheTTL: 24 * time.Hour,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	store := cfg.store
	if store == nil && cfg.cacheDir != "" {
		fs, err := cache.NewFileStore(cfg.cacheDir, cfg.cacheTTL)
		if err != nil {
			return nil, err
		}
		store = fs
	}

	httpClient := fetcher.NewAPIClient(cfg.timeout)
	c := &Client{
		baseURL:  cfg.baseURL,
		store:    store,
		cacheTTL: cfg.cacheTTL,
		data:     &fetcher.DataFetcher{Client: httpClient, BaseURL: cfg.baseURL},
	}

	tocFetcher := &fetcher.TOCFetcher{Client: httpClient, BaseURL: cfg.baseURL}
	metabaseFetcher := &fetcher.MetabaseFetcher{Client: httpClient, BaseURL: cfg.baseURL}
	c.cat = catalogue.New(catalogue.Sources{
		TOC: func(ctx context.Context) ([]byte, error) {
			return c.cached(ctx, c.baseURL+"/catalogue/toc/txt", []string{"lang=en"}, tocFetcher.Fetch)
		},
		Metabase: func(ctx context.Context) ([]byte, error) {
			return c.cached(ctx, c.baseURL+"/catalogue/metabase.txt.gz", nil, metabaseFetcher.Fetch)
		},
	})
	return c, nil
}

// cached wraps a catalogue fetch with the response cache. Cache problems
// degrade to a forced miss.
func (c *Client) cached(ctx context.Context, endpoint string, params []string,
	fetch func(context.Context) ([]byte, error)) ([]byte, error) {

	if c.store == nil {
		return fetch(ctx)
	}
	fp := cache.Fingerprint(endpoint, params)
	if body, ok := c.store.Get(fp); ok {
		return body, nil
	}
	body, err := fetch(ctx)
	if err != nil {
		return nil, err
	}
	c.store.Put(fp, body, c.cacheTTL)
	return body, nil
}

// TableOfContents returns the full dataset directory.
func (c *Client) TableOfContents(ctx context.Context) (*catalogue.TableOfContents, error) {
	return c.cat.TableOfContents(ctx)
}

// Search finds datasets by title or code.
func (c *Client) Search(ctx context.Context, query string, opts catalogue.SearchOptions) ([]catalogue.DatasetInfo, error) {
	return c.cat.Search(ctx, query, opts)
}

// Browse lists one level of the dataset hierarchy.
func (c *Client) Browse(ctx context.Context, folderCode string) (catalogue.DatasetInfo, []catalogue.Child, error) {
	return c.cat.Browse(ctx, folderCode)
}

// DatasetInfo returns the catalogue entry for a dataset code.
func (c *Client) DatasetInfo(ctx context.Context, datasetCode string) (catalogue.DatasetInfo, error) {
	return c.cat.DatasetInfo(ctx, datasetCode)
}

// DimensionMetadata returns the ordered dimension list of a dataset.
func (c *Client) DimensionMetadata(ctx context.Context, datasetCode string) (*catalogue.DimensionMetadata, error) {
	return c.cat.DimensionMetadata(ctx, datasetCode)
}

// AvailableFilters maps each dimension of a dataset to its accepted codes.
func (c *Client) AvailableFilters(ctx context.Context, datasetCode string) (map[string][]string, error) {
	meta, err := c.cat.DimensionMetadata(ctx, datasetCode)
	if err != nil {
		return nil, err
	}
	out := make(map[string][]string, len(meta.Dimensions))
	for _, d := range meta.Dimensions {
		codes := make([]string, len(d.Codes))
		copy(codes, d.Codes)
		out[d.Code] = codes
	}
	return out, nil
}

// PreloadMetabase eagerly loads the TOC and metabase so later catalogue
// calls are memory-only.
func (c *Client) PreloadMetabase(ctx context.Context) error {
	return c.cat.Preload(ctx)
}

// IsMetabaseLoaded reports whether the metabase is resident in memory.
func (c *Client) IsMetabaseLoaded() bool { return c.cat.IsLoaded() }

// ClearCache drops the response cache and all in-memory catalogue state.
func (c *Client) ClearCache() error {
	c.cat.Reset()
	if c.store == nil {
		return nil
	}
	if err := c.store.Clear(); err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}
	return nil
}

// Table is a decoded dataset: the ordered dimension codes and one row per
// observation that survived filtering.
type Table struct {
	DatasetCode string
	Label       string
	Updated     string
	Dimensions  []string
	Rows        []jsonstat.Row
}

// Rows fetches a dataset and decodes it into tabular rows, applying the
// given filters during decode. Only payloads that decode successfully are
// written to the cache.
func (c *Client) Rows(ctx context.Context, datasetCode string, opts filter.Options) (*Table, error) {
	meta, err := c.cat.DimensionMetadata(ctx, datasetCode)
	if err != nil {
		return nil, err
	}
	set, err := filter.Build(datasetCode, meta, opts)
	if err != nil {
		return nil, err
	}

	payload, _, err := c.fetchPayload(ctx, datasetCode, set)
	if err != nil {
		return nil, err
	}
	rows, err := jsonstat.Decode(payload, set)
	if err != nil {
		return nil, err
	}
	return &Table{
		DatasetCode: datasetCode,
		Label:       payload.Label,
		Updated:     payload.Updated,
		Dimensions:  payload.ID,
		Rows:        rows,
	}, nil
}

// RawData fetches (and caches) the raw JSON-stat body for a dataset without
// tabular conversion. The body is still validated; malformed payloads are
// never cached.
func (c *Client) RawData(ctx context.Context, datasetCode string, opts filter.Options) ([]byte, error) {
	meta, err := c.cat.DimensionMetadata(ctx, datasetCode)
	if err != nil {
		return nil, err
	}
	set, err := filter.Build(datasetCode, meta, opts)
	if err != nil {
		return nil, err
	}
	_, body, err := c.fetchPayload(ctx, datasetCode, set)
	return body, err
}

// fetchPayload resolves a request through the cache: hit returns the stored
// body, miss fetches, parses and (only on success) stores it. A cached body
// that no longer parses is invalidated and refetched once.
func (c *Client) fetchPayload(ctx context.Context, datasetCode string, set *filter.Set) (*jsonstat.Payload, []byte, error) {
	endpoint := c.baseURL + "/statistics/1.0/data/" + datasetCode

	params := set.Params()
	flat := make([]string, len(params))
	values := url.Values{}
	for i, p := range params {
		flat[i] = p.Key + "=" + p.Value
		values.Add(p.Key, p.Value)
	}
	fp := cache.Fingerprint(endpoint, flat)

	if c.store != nil {
		if body, ok := c.store.Get(fp); ok {
			payload, err := jsonstat.Parse(body)
			if err == nil {
				return payload, body, nil
			}
			c.store.Invalidate(fp)
		}
	}

	body, err := c.data.Fetch(ctx, datasetCode, values)
	if err != nil {
		return nil, nil, err
	}
	payload, err := jsonstat.Parse(body)
	if err != nil {
		return nil, nil, err
	}
	if c.store != nil {
		c.store.Put(fp, body, c.cacheTTL)
	}
	return payload, body, nil
}
