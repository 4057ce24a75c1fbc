package fetcher

import (
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
)

// TOCFetcher fetches the tab-separated table-of-contents export.
type TOCFetcher struct {
	Client  *http.Client
	BaseURL string
}

// Fetch returns the raw TOC text.
func (f *TOCFetcher) Fetch(ctx context.Context) ([]byte, error) {
	body, err := get(ctx, f.Client, baseURL(f.BaseURL)+"/catalogue/toc/txt?lang=en")
	if err != nil {
		return nil, err
	}
	logf("", "toc fetched (%d bytes)", len(body))
	return body, nil
}

// MetabaseFetcher fetches and decompresses the gzipped metabase export.
type MetabaseFetcher struct {
	Client  *http.Client
	BaseURL string
}

// Fetch returns the metabase text, already gunzipped.
func (f *MetabaseFetcher) Fetch(ctx context.Context) ([]byte, error) {
	body, err := get(ctx, f.Client, baseURL(f.BaseURL)+"/catalogue/metabase.txt.gz")
	if err != nil {
		return nil, err
	}
	gr, err := gzip.NewReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("open metabase gzip: %w", err)
	}
	defer gr.Close()
	text, err := io.ReadAll(gr)
	if err != nil {
		return nil, fmt.Errorf("decompress metabase: %w", err)
	}
	logf("", "metabase fetched (%d bytes compressed, %d decompressed)", len(body), len(text))
	return text, nil
}

func get(ctx context.Context, client *http.Client, u string) ([]byte, error) {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, responseError("", resp.StatusCode, body)
	}
	return body, nil
}
