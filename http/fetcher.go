// Package http provides HTTP-based implementations of the newsprint
// fetching interfaces: a page fetcher and a feed-based article discoverer.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pkarbownik/newsprint"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 10 * time.Second

// DefaultMaxBodySize caps how much of a response body is read. Pages
// larger than this are truncated; the extraction engine tolerates
// truncated markup.
const DefaultMaxBodySize = 10 << 20 // 10 MiB

const defaultUserAgent = "newsprint/1.0"

// Ensure Fetcher implements newsprint.Fetcher at compile time.
var _ newsprint.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves raw HTML from URLs over plain HTTP. It does not
// execute scripts or render pages; the extraction engine consumes the
// markup as served.
type Fetcher struct {
	client      *http.Client
	timeout     time.Duration
	maxBodySize int64
	userAgent   string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithMaxBodySize caps the number of response bytes read per page.
func WithMaxBodySize(n int64) Option {
	return func(f *Fetcher) {
		f.maxBodySize = n
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:     DefaultFetchTimeout,
		maxBodySize: DefaultMaxBodySize,
		userAgent:   defaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the HTML content from the given URL.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodySize))
	if err != nil {
		return "", err
	}

	return string(body), nil
}

// Close releases resources. For the HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}
