package shopinsight_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/fwojciec/shopinsight"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStructured(t *testing.T) {
	t.Parallel()

	t.Run("decodes a JSON object", func(t *testing.T) {
		t.Parallel()

		got := shopinsight.ParseStructured(" {\"brand\": \"Acme\", \"products\": 3}\n")

		assert.Equal(t, map[string]any{"brand": "Acme", "products": float64(3)}, got)
	})

	t.Run("wraps malformed output as raw", func(t *testing.T) {
		t.Parallel()

		got := shopinsight.ParseStructured("Sure! Here is your JSON: {")

		assert.Equal(t, map[string]any{"raw": "Sure! Here is your JSON: {"}, got)
	})

	t.Run("wraps non-object JSON as raw", func(t *testing.T) {
		t.Parallel()

		got := shopinsight.ParseStructured(`["a", "b"]`)

		assert.Equal(t, map[string]any{"raw": `["a", "b"]`}, got)
	})

	t.Run("wraps null as raw", func(t *testing.T) {
		t.Parallel()

		got := shopinsight.ParseStructured("null")

		assert.Equal(t, map[string]any{"raw": "null"}, got)
	})
}

func TestInsightsToMap(t *testing.T) {
	t.Parallel()

	insights := &shopinsight.BrandInsights{
		StoreURL:    "https://store.com",
		AboutBrand:  "We make things.",
		ExtractedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	insights.ImportantLinks.Set("returns", "https://store.com/returns")

	got, err := shopinsight.InsightsToMap(insights)

	require.NoError(t, err)
	assert.Equal(t, "https://store.com", got["store_url"])
	assert.Equal(t, "We make things.", got["about_brand"])
	assert.Equal(t, "2026-03-01T12:00:00Z", got["extracted_at"])
	assert.Equal(t, map[string]any{"returns": "https://store.com/returns"}, got["important_links"])
	_, hasMetadata := got["metadata"]
	assert.False(t, hasMetadata)
}

func TestLinks(t *testing.T) {
	t.Parallel()

	t.Run("later duplicate label overwrites in place", func(t *testing.T) {
		t.Parallel()

		var links shopinsight.Links
		links.Set("shipping", "https://store.com/shipping")
		links.Set("returns", "https://store.com/returns-old")
		links.Set("returns", "https://store.com/returns")

		require.Len(t, links, 2)
		url, ok := links.Get("returns")
		assert.True(t, ok)
		assert.Equal(t, "https://store.com/returns", url)
		assert.Equal(t, "shipping", links[0].Label)
	})

	t.Run("marshals as ordered object", func(t *testing.T) {
		t.Parallel()

		var links shopinsight.Links
		links.Set("zeta", "https://store.com/z")
		links.Set("alpha", "https://store.com/a")

		data, err := json.Marshal(links)

		require.NoError(t, err)
		assert.JSONEq(t, `{"zeta":"https://store.com/z","alpha":"https://store.com/a"}`, string(data))
		assert.Equal(t, `{"zeta":"https://store.com/z","alpha":"https://store.com/a"}`, string(data))
	})

	t.Run("nil links marshal as empty object", func(t *testing.T) {
		t.Parallel()

		var links shopinsight.Links

		data, err := json.Marshal(links)

		require.NoError(t, err)
		assert.Equal(t, `{}`, string(data))
	})

	t.Run("unmarshal preserves key order", func(t *testing.T) {
		t.Parallel()

		var links shopinsight.Links
		err := json.Unmarshal([]byte(`{"b":"https://x/b","a":"https://x/a"}`), &links)

		require.NoError(t, err)
		assert.Equal(t, shopinsight.Links{
			{Label: "b", URL: "https://x/b"},
			{Label: "a", URL: "https://x/a"},
		}, links)
	})

	t.Run("unmarshal rejects non-object", func(t *testing.T) {
		t.Parallel()

		var links shopinsight.Links
		err := json.Unmarshal([]byte(`["a"]`), &links)

		require.Error(t, err)
	})
}

func TestBrandInsights_Validate(t *testing.T) {
	t.Parallel()

	t.Run("requires store URL", func(t *testing.T) {
		t.Parallel()

		err := (&shopinsight.BrandInsights{ExtractedAt: time.Now()}).Validate()

		require.Error(t, err)
		assert.Equal(t, shopinsight.EINVALID, shopinsight.ErrorCode(err))
	})

	t.Run("requires extraction time", func(t *testing.T) {
		t.Parallel()

		err := (&shopinsight.BrandInsights{StoreURL: "https://store.com"}).Validate()

		require.Error(t, err)
	})

	t.Run("accepts complete insights", func(t *testing.T) {
		t.Parallel()

		err := (&shopinsight.BrandInsights{StoreURL: "https://store.com", ExtractedAt: time.Now()}).Validate()

		assert.NoError(t, err)
	})
}
