package scrape

import (
	"context"
	"encoding/json"

	"github.com/fwojciec/shopinsight"
)

var _ shopinsight.InsightService = (*Service)(nil)

// Service answers the insights query: extract, store, then structure.
type Service struct {
	Scraper shopinsight.Scraper

	// Brands stores the extracted insights. Optional.
	Brands shopinsight.BrandService

	// Structurer normalizes the insights through a language model.
	// When nil the insights themselves are returned as the structured result.
	Structurer shopinsight.Structurer
}

// Insights runs the query for storeURL. Extraction errors are returned as
// classified by the Scraper; storage and structuring failures are internal.
func (s *Service) Insights(ctx context.Context, storeURL string) (*shopinsight.InsightResult, error) {
	insights, err := s.Scraper.Scrape(ctx, storeURL)
	if err != nil {
		return nil, err
	}

	result := &shopinsight.InsightResult{Insights: insights}

	if s.Brands != nil {
		brand, err := s.Brands.SaveInsights(ctx, insights)
		if err != nil {
			return nil, shopinsight.WrapError(shopinsight.EINTERNAL, err, "failed to save insights")
		}
		result.BrandID = brand.ID
	}

	if s.Structurer == nil {
		structured, err := shopinsight.InsightsToMap(insights)
		if err != nil {
			return nil, shopinsight.WrapError(shopinsight.EINTERNAL, err, "failed to encode insights")
		}
		result.Structured = structured
		return result, nil
	}

	raw, err := json.Marshal(insights)
	if err != nil {
		return nil, shopinsight.WrapError(shopinsight.EINTERNAL, err, "failed to encode insights")
	}
	structured, err := s.Structurer.Structure(ctx, string(raw))
	if err != nil {
		return nil, shopinsight.WrapError(shopinsight.EINTERNAL, err, "failed to structure insights")
	}
	result.Structured = structured
	return result, nil
}
