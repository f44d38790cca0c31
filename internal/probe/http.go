package probe

import (
	"context"
	"crypto/tls"
	"io"
	"net/http"
	"time"
)

// DefaultMaxBodyBytes caps how much response body a fetch will read.
const DefaultMaxBodyBytes = 5 << 20

// HTTPFetcher retrieves page content for hashing and deduplication.
// Certificate validation is disabled so content is still observable at
// sites serving expired or mismatched certificates.
type HTTPFetcher struct {
	client   *http.Client
	maxBytes int64
}

// NewHTTPFetcher builds a fetcher with a bounded timeout and body size cap.
// maxBytes <= 0 selects DefaultMaxBodyBytes.
func NewHTTPFetcher(timeout time.Duration, maxBytes int64) *HTTPFetcher {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBodyBytes
	}

	return &HTTPFetcher{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				TLSClientConfig:     &tls.Config{InsecureSkipVerify: true},
				MaxIdleConnsPerHost: 2,
				IdleConnTimeout:     30 * time.Second,
			},
		},
		maxBytes: maxBytes,
	}
}

// Fetch returns the response body for a URL regardless of status code.
// Any failure (connection refused, timeout, bad TLS handshake beyond what
// InsecureSkipVerify tolerates) degrades to ("", false), never an error.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (string, bool) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", false
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", false
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return "", false
	}

	return string(body), true
}
