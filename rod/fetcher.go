// Package rod provides a browser-rendering implementation of
// shopinsight.Fetcher for storefronts that build their pages with JavaScript.
package rod

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/fwojciec/shopinsight"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultFetchTimeout bounds a single page render.
const DefaultFetchTimeout = 10 * time.Second

// Ensure Fetcher implements shopinsight.Fetcher at compile time.
var _ shopinsight.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML using a headless Chrome browser.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	browser   *Browser
	timeout   time.Duration
	userAgent string
	closed    atomic.Bool
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout sets the per-page render timeout.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent overrides the browser's user agent for every page.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// NewFetcher launches a headless browser and returns a Fetcher using it.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	browser, err := NewBrowser()
	if err != nil {
		return nil, err
	}
	return NewFetcherWithBrowser(browser, opts...), nil
}

// NewFetcherWithBrowser returns a Fetcher rendering with browser.
// The Fetcher takes ownership of browser and closes it on Close.
func NewFetcherWithBrowser(browser *Browser, opts ...Option) *Fetcher {
	f := &Fetcher{browser: browser, timeout: DefaultFetchTimeout}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch navigates to url, waits for the load event and returns the rendered
// HTML. A document answered with a 4xx or 5xx status is an error.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if f.closed.Load() {
		return "", shopinsight.Errorf(shopinsight.EINVALID, "fetcher is closed")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	page, release, err := f.browser.OpenPage()
	if err != nil {
		return "", err
	}
	defer release()
	page = page.Context(ctx)

	if f.userAgent != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: f.userAgent}); err != nil {
			return "", fmt.Errorf("setting user agent: %w", err)
		}
	}

	if err := page.Navigate(url); err != nil {
		return "", err
	}
	if err := page.WaitLoad(); err != nil {
		return "", err
	}

	if status := responseStatus(page); status >= 400 {
		return "", fmt.Errorf("HTTP %d for %s", status, url)
	}

	return page.HTML()
}

// Close releases browser resources. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	if !f.closed.CompareAndSwap(false, true) {
		return nil
	}
	return f.browser.Close()
}

// LauncherPID returns the process ID of the browser launcher.
func (f *Fetcher) LauncherPID() int {
	return f.browser.PID()
}
