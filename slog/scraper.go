package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/shopinsight"
)

// Ensure LoggingScraper implements shopinsight.Scraper.
var _ shopinsight.Scraper = (*LoggingScraper)(nil)

// LoggingScraper wraps a Scraper with logging of each extraction outcome.
type LoggingScraper struct {
	next   shopinsight.Scraper
	logger *slog.Logger
}

// NewLoggingScraper creates a new LoggingScraper.
func NewLoggingScraper(next shopinsight.Scraper, logger *slog.Logger) *LoggingScraper {
	return &LoggingScraper{next: next, logger: logger}
}

// Scrape delegates to the wrapped scraper and logs the outcome with the
// error code so unreachable stores and extraction failures are told apart.
func (s *LoggingScraper) Scrape(ctx context.Context, storeURL string) (insights *shopinsight.BrandInsights, err error) {
	defer func(begin time.Time) {
		if err != nil {
			s.logger.Warn("scrape",
				"url", storeURL,
				"code", shopinsight.ErrorCode(err),
				"duration", time.Since(begin),
				"err", err,
			)
			return
		}
		s.logger.Info("scrape",
			"url", storeURL,
			"products", len(insights.ProductCatalog),
			"hero_products", len(insights.HeroProducts),
			"faqs", len(insights.FAQs),
			"social_handles", len(insights.SocialHandles),
			"links", len(insights.ImportantLinks),
			"duration", time.Since(begin),
		)
	}(time.Now())
	return s.next.Scrape(ctx, storeURL)
}
