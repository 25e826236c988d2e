package feed

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"

	"github.com/vitrinelabs/storefront_api/internal/utils"
)

const testFeedURL = "http://feed.test/products.csv"

func newTestFetcher() *Fetcher {
	f := NewFetcher(testFeedURL, 5*time.Second, nil)
	httpmock.ActivateNonDefault(f.client)
	return f
}

func TestFetchReturnsFeedBody(t *testing.T) {
	f := newTestFetcher()
	defer httpmock.DeactivateAndReset()

	body := "Name,Desc,Price,Stock,Images\nWidget,nice,10,5,"
	httpmock.RegisterResponder("GET", testFeedURL, httpmock.NewStringResponder(200, body))

	got, err := f.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if got != body {
		t.Errorf("Fetch() = %q, want %q", got, body)
	}
}

func TestFetchHTTPError(t *testing.T) {
	tests := []struct {
		name   string
		status int
	}{
		{name: "server error", status: 500},
		{name: "not found", status: 404},
		{name: "forbidden", status: 403},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTestFetcher()
			defer httpmock.DeactivateAndReset()

			httpmock.RegisterResponder("GET", testFeedURL, httpmock.NewStringResponder(tt.status, ""))

			if _, err := f.Fetch(context.Background()); err == nil {
				t.Fatalf("Fetch() with status %d should fail", tt.status)
			}
		})
	}
}

func TestFetchNetworkError(t *testing.T) {
	f := newTestFetcher()
	defer httpmock.DeactivateAndReset()

	httpmock.RegisterResponder("GET", testFeedURL, httpmock.NewErrorResponder(errors.New("connection refused")))

	if _, err := f.Fetch(context.Background()); err == nil {
		t.Fatal("Fetch() should surface the network error")
	}
}

func TestFetchRejectsConcurrentRequest(t *testing.T) {
	f := newTestFetcher()
	defer httpmock.DeactivateAndReset()

	// Simulate an outstanding request.
	f.inFlight.Store(true)

	_, err := f.Fetch(context.Background())
	if !errors.Is(err, utils.ErrFetchInFlight) {
		t.Fatalf("Fetch() error = %v, want ErrFetchInFlight", err)
	}

	// Once the outstanding request finishes, fetching works again.
	f.inFlight.Store(false)
	httpmock.RegisterResponder("GET", testFeedURL, httpmock.NewStringResponder(200, "Name\n"))
	if _, err := f.Fetch(context.Background()); err != nil {
		t.Fatalf("Fetch() after release error = %v", err)
	}
}
