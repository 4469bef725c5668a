package shopinsight

import "context"

// Fetcher retrieves the body of a URL as text.
// Implementations return an error for network failures, timeouts and
// non-2xx responses.
type Fetcher interface {
	// Fetch retrieves the content at url.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (body string, err error)

	// Close releases resources held by the fetcher.
	Close() error
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}

// URLSet records URLs that have been seen.
// Implementations may report false positives but never false negatives.
type URLSet interface {
	Add(url string)
	Test(url string) bool
}
