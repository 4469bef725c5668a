// Package http provides an HTTP-based implementation of shopinsight.Fetcher
// for storefront pages and product feeds that don't require JavaScript rendering.
package http

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/fwojciec/shopinsight"
	"golang.org/x/net/html/charset"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
// Kept consistent with rod.DefaultFetchTimeout (10s).
const DefaultFetchTimeout = 10 * time.Second

// DefaultMaxBytes caps the size of a response body.
const DefaultMaxBytes = 10 << 20

// DefaultUserAgent is sent with every request. Many storefronts reject
// requests without a browser-like user agent.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Ensure Fetcher implements shopinsight.Fetcher at compile time.
var _ shopinsight.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves content from URLs using HTTP requests.
// Unlike rod.Fetcher, this does not execute JavaScript.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
	maxBytes  int64
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent overrides DefaultUserAgent.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithMaxBytes overrides DefaultMaxBytes. Longer bodies are truncated.
func WithMaxBytes(n int64) Option {
	return func(f *Fetcher) {
		f.maxBytes = n
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
		maxBytes:  DefaultMaxBytes,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the content at url. Any status outside 2xx is an error.
// HTML bodies are decoded to UTF-8 using the declared or sniffed charset;
// other bodies are returned as is.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/json;q=0.9,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}

	var body io.Reader = io.LimitReader(resp.Body, f.maxBytes)
	contentType := resp.Header.Get("Content-Type")
	if isHTML(contentType) {
		body, err = charset.NewReader(body, contentType)
		if err != nil {
			return "", fmt.Errorf("decode %s: %w", url, err)
		}
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}

	return string(data), nil
}

// Close releases resources. For HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}

func isHTML(contentType string) bool {
	if contentType == "" {
		return true
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return strings.HasPrefix(mediaType, "text/html") || mediaType == "application/xhtml+xml"
}
