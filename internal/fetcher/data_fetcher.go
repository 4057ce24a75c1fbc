package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// DataFetcher fetches raw JSON-stat bodies from the statistics endpoint.
type DataFetcher struct {
	Client  *http.Client
	BaseURL string // optional; defaults to DefaultBaseURL
}

// Fetch fetches the statistics payload for a dataset. params carries the
// normalized filter parameters; format=JSON and lang=EN are forced when
// absent. The raw body is returned undecoded so that the caller can cache it
// before decoding.
func (f *DataFetcher) Fetch(ctx context.Context, datasetCode string, params url.Values) ([]byte, error) {
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	code := strings.TrimSpace(datasetCode)
	logf(code, "GET /statistics/1.0/data/%s", code)

	q := url.Values{}
	for k, vs := range params {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	if q.Get("format") == "" {
		q.Set("format", "JSON")
	}
	if q.Get("lang") == "" {
		q.Set("lang", "EN")
	}

	u := fmt.Sprintf("%s/statistics/1.0/data/%s?%s", baseURL(f.BaseURL), url.PathEscape(code), q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		logf(code, "request error (%v)", err)
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		logf(code, "non-200 status=%d", resp.StatusCode)
		return nil, responseError(code, resp.StatusCode, body)
	}
	logf(code, "ok (%d bytes)", len(body))
	return body, nil
}

func baseURL(configured string) string {
	b := strings.TrimRight(strings.TrimSpace(configured), "/")
	if b == "" {
		return DefaultBaseURL
	}
	return b
}
