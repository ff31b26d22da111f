// Package update compares a document with the canonical podded template
// published at a URL and rewrites it onto a newer template.
package update

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/podded/podded/engine/core"
	"github.com/podded/podded/pkg/logger"
)

// Fetcher retrieves the update payload.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// HTTPFetcher fetches over HTTPS with a single attempt.
type HTTPFetcher struct {
	client *resty.Client
}

func NewHTTPFetcher(timeout time.Duration, userAgent string) *HTTPFetcher {
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("Accept", "text/plain").
		SetHeader("User-Agent", userAgent).
		SetRetryCount(0)
	return &HTTPFetcher{client: client}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (string, error) {
	log := logger.FromContext(ctx)
	log.Debug("Fetching update payload", "url", url)
	resp, err := f.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return "", &core.FetchError{URL: url, Cause: err}
	}
	if resp.IsError() {
		return "", &core.FetchError{URL: url, Status: resp.StatusCode()}
	}
	log.Debug("Fetched update payload", "url", url, "bytes", len(resp.Body()))
	return resp.String(), nil
}
