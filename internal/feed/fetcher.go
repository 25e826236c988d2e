package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/vitrinelabs/storefront_api/internal/metrics"
	"github.com/vitrinelabs/storefront_api/internal/utils"
)

// Fetch outcome labels for metrics.
const (
	fetchOK       = "success"
	fetchHTTPErr  = "http_error"
	fetchNetErr   = "network_error"
	fetchInFlight = "in_flight"
)

// Fetcher performs the single HTTP GET against the configured feed URL.
// At most one request is outstanding at a time; a concurrent call is
// rejected with ErrFetchInFlight instead of issuing a duplicate fetch.
// There is no retry: a failed fetch surfaces one error and the catalog
// stays empty.
type Fetcher struct {
	url      string
	client   *http.Client
	metrics  *metrics.Metrics
	inFlight atomic.Bool
}

// NewFetcher constructs a Fetcher. The metrics argument may be nil.
func NewFetcher(url string, timeout time.Duration, m *metrics.Metrics) *Fetcher {
	return &Fetcher{
		url: url,
		client: &http.Client{
			Timeout: timeout,
		},
		metrics: m,
	}
}

// Fetch retrieves the raw feed text.
func (f *Fetcher) Fetch(ctx context.Context) (string, error) {
	if !f.inFlight.CompareAndSwap(false, true) {
		f.metrics.IncFeedFetch(fetchInFlight)
		return "", utils.ErrFetchInFlight
	}
	defer f.inFlight.Store(false)

	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return "", fmt.Errorf("build feed request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		f.metrics.IncFeedFetch(fetchNetErr)
		return "", fmt.Errorf("fetch feed: %w", err)
	}
	defer resp.Body.Close()

	f.metrics.ObserveFetchDuration(time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		f.metrics.IncFeedFetch(fetchHTTPErr)
		return "", fmt.Errorf("fetch feed: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		f.metrics.IncFeedFetch(fetchNetErr)
		return "", fmt.Errorf("read feed body: %w", err)
	}

	f.metrics.IncFeedFetch(fetchOK)
	return string(body), nil
}
