package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/fwojciec/shopinsight"
	"github.com/fwojciec/shopinsight/mock"
	shopslog "github.com/fwojciec/shopinsight/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingScraper_Scrape(t *testing.T) {
	t.Parallel()

	t.Run("logs section counts on success", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Scraper{
			ScrapeFn: func(_ context.Context, storeURL string) (*shopinsight.BrandInsights, error) {
				return &shopinsight.BrandInsights{
					StoreURL:     storeURL,
					HeroProducts: []shopinsight.Product{{ID: "hero-a"}},
					FAQs:         []shopinsight.FAQItem{{Question: "Q", Answer: "A"}},
				}, nil
			},
		}

		insights, err := shopslog.NewLoggingScraper(inner, logger).Scrape(context.Background(), "https://shop.example.com")

		require.NoError(t, err)
		assert.Equal(t, "https://shop.example.com", insights.StoreURL)
		output := buf.String()
		assert.Contains(t, output, "level=INFO")
		assert.Contains(t, output, "hero_products=1")
		assert.Contains(t, output, "faqs=1")
	})

	t.Run("logs error code on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Scraper{
			ScrapeFn: func(_ context.Context, _ string) (*shopinsight.BrandInsights, error) {
				return nil, shopinsight.Errorf(shopinsight.EUNREACHABLE, "website unreachable")
			},
		}

		_, err := shopslog.NewLoggingScraper(inner, logger).Scrape(context.Background(), "https://dead.example.com")

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "level=WARN")
		assert.Contains(t, output, "code=unreachable")
	})
}
