// Package fetcher is the HTTP transport collaborator: thin, blocking
// fetchers for the dissemination API endpoints. No retries happen here; a
// call returns either the full body or an error.
package fetcher

import (
	"net/http"
	"time"
)

// DefaultBaseURL is the Eurostat dissemination API root.
const DefaultBaseURL = "https://ec.europa.eu/eurostat/api/dissemination"

// NewAPIClient creates an *http.Client configured for dissemination API
// calls. timeout is the per-request deadline (0 = no timeout).
func NewAPIClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}
