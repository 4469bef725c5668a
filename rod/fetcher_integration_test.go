//go:build integration

package rod_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/shopinsight/goquery"
	"github.com/fwojciec/shopinsight/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_Integration_LiveStorefront(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	fetcher, err := rod.NewFetcher(rod.WithFetchTimeout(25 * time.Second))
	require.NoError(t, err)
	defer fetcher.Close()

	html, err := fetcher.Fetch(ctx, "https://www.allbirds.com/")
	require.NoError(t, err)

	lower := strings.ToLower(html)
	assert.Contains(t, lower, "<body")
	assert.Contains(t, lower, "</html>")

	page, err := goquery.NewExtractor().Extract(html, "https://www.allbirds.com/")
	require.NoError(t, err)
	assert.Empty(t, page.FailedSections)
	assert.NotEmpty(t, page.SocialHandles, "expected rendered footer social links")

	t.Logf("Fetched %d bytes, %d social handles, %d footer links",
		len(html), len(page.SocialHandles), len(page.ImportantLinks))
}
