package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/shopinsight"
)

// Ensure LoggingBrandService implements shopinsight.BrandService.
var _ shopinsight.BrandService = (*LoggingBrandService)(nil)

// LoggingBrandService wraps a BrandService with debug logging of writes.
// Reads are delegated without logging.
type LoggingBrandService struct {
	next   shopinsight.BrandService
	logger *slog.Logger
}

// NewLoggingBrandService creates a new LoggingBrandService.
func NewLoggingBrandService(next shopinsight.BrandService, logger *slog.Logger) *LoggingBrandService {
	return &LoggingBrandService{next: next, logger: logger}
}

// SaveInsights delegates to the wrapped service and logs the stored counts.
func (s *LoggingBrandService) SaveInsights(ctx context.Context, insights *shopinsight.BrandInsights) (brand *shopinsight.Brand, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"url", insights.StoreURL,
			"products", len(insights.ProductCatalog),
			"hero_products", len(insights.HeroProducts),
			"faqs", len(insights.FAQs),
			"duration", time.Since(begin),
			"err", err,
		}
		if brand != nil {
			attrs = append(attrs, "id", brand.ID)
		}
		s.logger.Debug("save insights", attrs...)
	}(time.Now())
	return s.next.SaveInsights(ctx, insights)
}

func (s *LoggingBrandService) FindBrandByID(ctx context.Context, id string) (*shopinsight.Brand, error) {
	return s.next.FindBrandByID(ctx, id)
}

func (s *LoggingBrandService) FindBrandByStoreURL(ctx context.Context, storeURL string) (*shopinsight.Brand, error) {
	return s.next.FindBrandByStoreURL(ctx, storeURL)
}

func (s *LoggingBrandService) FindBrands(ctx context.Context, filter shopinsight.BrandFilter) ([]*shopinsight.Brand, error) {
	return s.next.FindBrands(ctx, filter)
}

// DeleteBrand delegates to the wrapped service and logs the operation.
func (s *LoggingBrandService) DeleteBrand(ctx context.Context, id string) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("delete brand",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DeleteBrand(ctx, id)
}
