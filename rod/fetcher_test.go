//go:build integration

package rod_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fwojciec/shopinsight"
	"github.com/fwojciec/shopinsight/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ shopinsight.Fetcher = (*rod.Fetcher)(nil)

func TestFetcher_Fetch_ContextCancellation(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	fetcher, err := rod.NewFetcher()
	require.NoError(t, err)
	defer fetcher.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = fetcher.Fetch(ctx, srv.URL)

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFetcher_Fetch_ReturnsRenderedStorefront(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<!DOCTYPE html>
<html>
<body>
<div id="hero">Loading...</div>
<script>
document.getElementById('hero').innerHTML =
  '<div class="hero__product"><span class="product-title">Rendered Tote</span></div>';
</script>
</body>
</html>`))
	}))
	defer srv.Close()

	fetcher, err := rod.NewFetcher()
	require.NoError(t, err)
	defer fetcher.Close()

	html, err := fetcher.Fetch(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.Contains(t, html, `<span class="product-title">Rendered Tote</span>`)
	assert.NotContains(t, html, "Loading...")
}

func TestFetcher_Fetch_ErrorStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`<html><body>gone</body></html>`))
	}))
	defer srv.Close()

	fetcher, err := rod.NewFetcher()
	require.NoError(t, err)
	defer fetcher.Close()

	_, err = fetcher.Fetch(context.Background(), srv.URL)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestFetcher_Fetch_TimeoutTriggersOnSlowPage(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body>delayed</body></html>`))
	}))
	defer srv.Close()

	fetcher, err := rod.NewFetcher(rod.WithFetchTimeout(100 * time.Millisecond))
	require.NoError(t, err)
	defer fetcher.Close()

	_, err = fetcher.Fetch(context.Background(), srv.URL)

	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestFetcher_Fetch_UserAgent(t *testing.T) {
	t.Parallel()

	agents := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case agents <- r.UserAgent():
		default:
		}
		_, _ = w.Write([]byte(`<html></html>`))
	}))
	defer srv.Close()

	fetcher, err := rod.NewFetcher(rod.WithUserAgent("shopinsight-test"))
	require.NoError(t, err)
	defer fetcher.Close()

	_, err = fetcher.Fetch(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.Equal(t, "shopinsight-test", <-agents)
}

func TestFetcher_Close_Idempotent(t *testing.T) {
	t.Parallel()

	fetcher, err := rod.NewFetcher()
	require.NoError(t, err)

	require.NoError(t, fetcher.Close())
	require.NoError(t, fetcher.Close())
}

func TestFetcher_Fetch_AfterClose_ReturnsError(t *testing.T) {
	t.Parallel()

	fetcher, err := rod.NewFetcher()
	require.NoError(t, err)
	require.NoError(t, fetcher.Close())

	_, err = fetcher.Fetch(context.Background(), "http://example.com")

	require.Error(t, err)
	assert.Equal(t, shopinsight.EINVALID, shopinsight.ErrorCode(err))
	assert.Contains(t, shopinsight.ErrorMessage(err), "closed")
}
