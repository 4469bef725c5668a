package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fwojciec/shopinsight"
	main "github.com/fwojciec/shopinsight/cmd/shopinsight"
	"github.com/fwojciec/shopinsight/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleInsights(storeURL string) *shopinsight.BrandInsights {
	return &shopinsight.BrandInsights{
		StoreURL:       storeURL,
		ProductCatalog: []shopinsight.Product{{ID: "1", Title: "Mug", Price: "12.00 USD"}},
		HeroProducts:   []shopinsight.Product{},
		FAQs:           []shopinsight.FAQItem{{Question: "Do you ship?", Answer: "Yes."}},
		SocialHandles:  []shopinsight.SocialHandle{},
		ContactInfo: shopinsight.ContactInfo{
			Emails:       []string{"hi@shop.example.com"},
			PhoneNumbers: []string{},
			Addresses:    []string{},
		},
		AboutBrand:     "We make mugs.",
		ImportantLinks: shopinsight.Links{{Label: "contact", URL: storeURL + "/pages/contact"}},
		ExtractedAt:    time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestMain_Run(t *testing.T) {
	t.Parallel()

	t.Run("no arguments prints help and fails", func(t *testing.T) {
		t.Parallel()

		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		m := main.NewMain()

		err := m.Run(context.Background(), nil, stdout, stderr)

		require.Error(t, err)
		assert.Contains(t, stdout.String(), "fetch")
	})

	t.Run("help succeeds", func(t *testing.T) {
		t.Parallel()

		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		m := main.NewMain()

		err := m.Run(context.Background(), []string{"--help"}, stdout, stderr)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "serve")
	})

	t.Run("fetch prints the structured result", func(t *testing.T) {
		t.Parallel()

		ctx := context.Background()
		m := main.NewMain()
		m.DBPath = filepath.Join(t.TempDir(), "test.db")
		m.Insights = &mock.InsightService{
			InsightsFn: func(_ context.Context, storeURL string) (*shopinsight.InsightResult, error) {
				insights := sampleInsights(storeURL)
				return &shopinsight.InsightResult{Insights: insights, Structured: map[string]any{"brand": "Shop"}}, nil
			},
		}

		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		err := m.Run(ctx, []string{"fetch", "https://shop.example.com"}, stdout, stderr)
		require.NoError(t, err, stderr.String())

		var got map[string]any
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &got))
		assert.Equal(t, map[string]any{"brand": "Shop"}, got)
	})

	t.Run("fetch --no-store skips the database", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		m.DBPath = "/nonexistent/path/db.sqlite"
		m.Insights = &mock.InsightService{
			InsightsFn: func(_ context.Context, storeURL string) (*shopinsight.InsightResult, error) {
				return &shopinsight.InsightResult{Insights: sampleInsights(storeURL)}, nil
			},
		}

		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		err := m.Run(context.Background(), []string{"fetch", "--no-store", "--no-structure", "-f", "text", "https://shop.example.com"}, stdout, stderr)

		require.NoError(t, err, stderr.String())
		assert.Contains(t, stdout.String(), "Store:      https://shop.example.com")
	})

	t.Run("reports unopenable database", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		m.DBPath = "/nonexistent/path/db.sqlite"

		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		err := m.Run(context.Background(), []string{"list"}, stdout, stderr)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "SHOPINSIGHT_DB")
	})

	t.Run("list on empty database", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		m.DBPath = filepath.Join(t.TempDir(), "test.db")

		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		err := m.Run(context.Background(), []string{"list"}, stdout, stderr)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "No brands found")
	})

	t.Run("config file supplies database path", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		dbPath := filepath.Join(dir, "from-config.db")
		cfgPath := filepath.Join(dir, "config.yaml")
		require.NoError(t, os.WriteFile(cfgPath, []byte("db: "+dbPath+"\n"), 0644))

		m := main.NewMain()
		m.DBPath = filepath.Join(dir, "default.db")

		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		err := m.Run(context.Background(), []string{"list", "--config", cfgPath}, stdout, stderr)

		require.NoError(t, err, stderr.String())
		_, err = os.Stat(dbPath)
		assert.NoError(t, err)
		_, err = os.Stat(filepath.Join(dir, "default.db"))
		assert.True(t, os.IsNotExist(err))
	})
}
