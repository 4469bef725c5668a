// Package scrape orchestrates brand insight extraction: fetching a store's
// main page and product feed, running the page heuristics and assembling
// the result. It also runs batches of extractions and the insights query.
package scrape

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/shopinsight"
)

// DefaultTimeout bounds each fetch made by a Scraper.
const DefaultTimeout = 10 * time.Second

// ProductFeedPath is the conventional storefront product feed.
const ProductFeedPath = "/products.json"

var _ shopinsight.Scraper = (*Scraper)(nil)

// Scraper extracts insights for one store at a time. An extraction is
// sequential: main page, then product feed, then page heuristics.
type Scraper struct {
	// Fetcher retrieves the main page.
	Fetcher shopinsight.Fetcher

	// FeedFetcher retrieves the product feed. Defaults to Fetcher.
	FeedFetcher shopinsight.Fetcher

	Extractor shopinsight.PageExtractor

	// Timeout bounds each fetch. Defaults to DefaultTimeout.
	Timeout time.Duration

	// FetcherName is recorded in the insights metadata when set.
	FetcherName string

	Logger *slog.Logger

	// Now returns the extraction time. Defaults to time.Now.
	Now func() time.Time
}

// Scrape extracts insights from the store at storeURL.
//
// An invalid URL returns EINVALID. A main page that cannot be fetched
// returns EUNREACHABLE and the product feed is never requested. A failed
// product feed only empties the catalog. Any other failure, including a
// panic, returns EEXTRACTION.
func (s *Scraper) Scrape(ctx context.Context, storeURL string) (insights *shopinsight.BrandInsights, err error) {
	storeURL, err = shopinsight.NormalizeStoreURL(storeURL)
	if err != nil {
		return nil, err
	}

	html, err := s.fetch(ctx, s.Fetcher, storeURL)
	if err != nil {
		return nil, shopinsight.WrapError(shopinsight.EUNREACHABLE, err, "website %s is unreachable", storeURL)
	}

	defer func() {
		if r := recover(); r != nil {
			insights = nil
			err = shopinsight.WrapError(shopinsight.EEXTRACTION, fmt.Errorf("panic: %v", r), "extraction failed for %s", storeURL)
		}
	}()

	catalog := s.catalog(ctx, storeURL)

	page, err := s.Extractor.Extract(html, storeURL)
	if err != nil {
		return nil, shopinsight.WrapError(shopinsight.EEXTRACTION, err, "extraction failed for %s", storeURL)
	}

	insights = &shopinsight.BrandInsights{
		StoreURL:       storeURL,
		ProductCatalog: catalog,
		HeroProducts:   orEmpty(page.HeroProducts),
		FAQs:           orEmpty(page.FAQs),
		SocialHandles:  orEmpty(page.SocialHandles),
		ContactInfo: shopinsight.ContactInfo{
			Emails:       orEmpty(page.ContactInfo.Emails),
			PhoneNumbers: orEmpty(page.ContactInfo.PhoneNumbers),
			Addresses:    orEmpty(page.ContactInfo.Addresses),
		},
		AboutBrand:     page.AboutBrand,
		ImportantLinks: orEmpty(page.ImportantLinks),
		ExtractedAt:    s.now(),
		Metadata: map[string]any{
			shopinsight.MetadataPageHash: fmt.Sprintf("%x", xxhash.Sum64String(html)),
			shopinsight.MetadataPageSize: len(html),
		},
	}
	if s.FetcherName != "" {
		insights.Metadata[shopinsight.MetadataFetcher] = s.FetcherName
	}
	if len(page.FailedSections) > 0 {
		insights.Metadata[shopinsight.MetadataFailed] = page.FailedSections
		s.logger().Debug("page sections failed", "url", storeURL, "sections", page.FailedSections)
	}

	return insights, nil
}

// catalog fetches and maps the product feed. Every failure yields an empty
// catalog.
func (s *Scraper) catalog(ctx context.Context, storeURL string) []shopinsight.Product {
	feedURL, err := FeedURL(storeURL)
	if err != nil {
		return []shopinsight.Product{}
	}

	fetcher := s.FeedFetcher
	if fetcher == nil {
		fetcher = s.Fetcher
	}
	body, err := s.fetch(ctx, fetcher, feedURL)
	if err != nil {
		s.logger().Debug("product feed unavailable", "url", feedURL, "error", err)
		return []shopinsight.Product{}
	}

	raw, err := shopinsight.DecodeProductFeed([]byte(body))
	if err != nil {
		s.logger().Debug("product feed invalid", "url", feedURL, "error", err)
		return []shopinsight.Product{}
	}
	return shopinsight.MapProducts(raw, storeURL)
}

func (s *Scraper) fetch(ctx context.Context, fetcher shopinsight.Fetcher, url string) (string, error) {
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return fetcher.Fetch(ctx, url)
}

func (s *Scraper) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Scraper) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.New(slog.DiscardHandler)
}

// FeedURL returns the product feed URL for a store. The store URL's path
// is ignored.
func FeedURL(storeURL string) (string, error) {
	base, err := url.Parse(storeURL)
	if err != nil {
		return "", err
	}
	return base.ResolveReference(&url.URL{Path: ProductFeedPath}).String(), nil
}

func orEmpty[S ~[]E, E any](s S) S {
	if s == nil {
		return S{}
	}
	return s
}
