package shopinsight_test

import (
	"testing"

	"github.com/fwojciec/shopinsight"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeStoreURL(t *testing.T) {
	t.Parallel()

	t.Run("keeps valid URLs", func(t *testing.T) {
		t.Parallel()

		got, err := shopinsight.NormalizeStoreURL("https://store.com")

		require.NoError(t, err)
		assert.Equal(t, "https://store.com", got)
	})

	t.Run("adds https scheme when missing", func(t *testing.T) {
		t.Parallel()

		got, err := shopinsight.NormalizeStoreURL("  store.com/ ")

		require.NoError(t, err)
		assert.Equal(t, "https://store.com/", got)
	})

	t.Run("drops fragment", func(t *testing.T) {
		t.Parallel()

		got, err := shopinsight.NormalizeStoreURL("http://store.com/#top")

		require.NoError(t, err)
		assert.Equal(t, "http://store.com/", got)
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		t.Parallel()

		for _, in := range []string{"", "   ", "ftp://store.com", "https://", "mailto:hi@store.com"} {
			_, err := shopinsight.NormalizeStoreURL(in)
			require.Error(t, err, "input %q", in)
			assert.Equal(t, shopinsight.EINVALID, shopinsight.ErrorCode(err))
		}
	})
}

func TestStoreHost(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "store.com", shopinsight.StoreHost("https://store.com/collections"))
	assert.Empty(t, shopinsight.StoreHost("::"))
}

func TestStoreKey(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "https://shop.com", shopinsight.StoreKey("https://Shop.com/"))
	assert.Equal(t, "https://shop.com", shopinsight.StoreKey("shop.com"))
	assert.NotEqual(t, shopinsight.StoreKey("https://a.shop.com"), shopinsight.StoreKey("https://b.shop.com"))
	assert.Equal(t, "ftp://x", shopinsight.StoreKey("  ftp://x "))
}
