package mock

import (
	"context"

	"github.com/fwojciec/shopinsight"
)

var _ shopinsight.PageExtractor = (*PageExtractor)(nil)

// PageExtractor is a mock implementation of shopinsight.PageExtractor.
type PageExtractor struct {
	ExtractFn func(html, baseURL string) (*shopinsight.PageInsights, error)
}

func (e *PageExtractor) Extract(html, baseURL string) (*shopinsight.PageInsights, error) {
	return e.ExtractFn(html, baseURL)
}

var _ shopinsight.Scraper = (*Scraper)(nil)

// Scraper is a mock implementation of shopinsight.Scraper.
type Scraper struct {
	ScrapeFn func(ctx context.Context, storeURL string) (*shopinsight.BrandInsights, error)
}

func (s *Scraper) Scrape(ctx context.Context, storeURL string) (*shopinsight.BrandInsights, error) {
	return s.ScrapeFn(ctx, storeURL)
}

var _ shopinsight.InsightService = (*InsightService)(nil)

// InsightService is a mock implementation of shopinsight.InsightService.
type InsightService struct {
	InsightsFn func(ctx context.Context, storeURL string) (*shopinsight.InsightResult, error)
}

func (s *InsightService) Insights(ctx context.Context, storeURL string) (*shopinsight.InsightResult, error) {
	return s.InsightsFn(ctx, storeURL)
}
