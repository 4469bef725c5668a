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

func TestLoggingFetcher_Fetch(t *testing.T) {
	t.Parallel()

	newLogger := func(buf *bytes.Buffer, level slog.Level) *slog.Logger {
		return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: level}))
	}

	t.Run("logs successful fetch at debug level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return `{"products":[]}`, nil
			},
		}

		fetcher := shopslog.NewLoggingFetcher(inner, "http", newLogger(&buf, slog.LevelDebug))
		body, err := fetcher.Fetch(context.Background(), "https://shop.example.com/products.json")

		require.NoError(t, err)
		assert.Equal(t, `{"products":[]}`, body)
		output := buf.String()
		assert.Contains(t, output, "level=DEBUG")
		assert.Contains(t, output, "msg=fetched")
		assert.Contains(t, output, "fetcher=http")
		assert.Contains(t, output, "url=https://shop.example.com/products.json")
		assert.Contains(t, output, "bytes=15")
	})

	t.Run("successful fetch is silent at info level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "<html></html>", nil
			},
		}

		fetcher := shopslog.NewLoggingFetcher(inner, "rod", newLogger(&buf, slog.LevelInfo))
		_, err := fetcher.Fetch(context.Background(), "https://shop.example.com")

		require.NoError(t, err)
		assert.Empty(t, buf.String())
	})

	t.Run("logs failure at warn level with error code", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "", shopinsight.Errorf(shopinsight.EUNREACHABLE, "connection refused")
			},
		}

		fetcher := shopslog.NewLoggingFetcher(inner, "rod", newLogger(&buf, slog.LevelInfo))
		_, err := fetcher.Fetch(context.Background(), "https://dead.example.com")

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "level=WARN")
		assert.Contains(t, output, `msg="fetch failed"`)
		assert.Contains(t, output, "fetcher=rod")
		assert.Contains(t, output, "code=unreachable")
	})
}

func TestLoggingFetcher_Close(t *testing.T) {
	t.Parallel()

	closeCalled := false
	inner := &mock.Fetcher{
		CloseFn: func() error {
			closeCalled = true
			return nil
		},
	}

	fetcher := shopslog.NewLoggingFetcher(inner, "http", slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))

	require.NoError(t, fetcher.Close())
	assert.True(t, closeCalled)
}
