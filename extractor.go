package shopinsight

import "context"

// PageExtractor derives insights from a store's main page.
type PageExtractor interface {
	// Extract parses html and runs every page heuristic against it.
	// Relative URLs are resolved against baseURL. Sections that find
	// nothing are left empty; an error means the page could not be
	// processed at all.
	Extract(html string, baseURL string) (*PageInsights, error)
}

// Scraper runs the full extraction pipeline for one store.
type Scraper interface {
	// Scrape extracts insights from the store at storeURL.
	// Returns EUNREACHABLE if the main page cannot be fetched and
	// EEXTRACTION if processing it fails.
	Scrape(ctx context.Context, storeURL string) (*BrandInsights, error)
}

// InsightResult is the outcome of the insights query.
type InsightResult struct {
	// BrandID is the stored brand's ID, empty when storage is disabled.
	BrandID string

	// Insights is the raw extracted aggregate.
	Insights *BrandInsights

	// Structured is the aggregate as normalized by a Structurer, or the
	// aggregate itself when no Structurer is configured.
	Structured map[string]any
}

// InsightService answers the insights query for a store.
type InsightService interface {
	// Insights extracts, stores and structures insights for storeURL.
	Insights(ctx context.Context, storeURL string) (*InsightResult, error)
}

// ResultWriter persists insight results outside the database.
type ResultWriter interface {
	WriteResult(ctx context.Context, result *InsightResult) error
}
