// Package slog provides log/slog decorators for the shopinsight services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/shopinsight"
)

// Ensure LoggingFetcher implements shopinsight.Fetcher.
var _ shopinsight.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher logs every storefront request made through a Fetcher.
// Successful fetches are logged at debug level since a single store makes
// several of them. Failures are logged at warn level with their error code.
type LoggingFetcher struct {
	next   shopinsight.Fetcher
	name   string
	logger *slog.Logger
}

// NewLoggingFetcher wraps next. name identifies the transport ("http",
// "rod") in every record.
func NewLoggingFetcher(next shopinsight.Fetcher, name string, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, name: name, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the outcome.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (body string, err error) {
	defer func(begin time.Time) {
		if err != nil {
			f.logger.Warn("fetch failed",
				"fetcher", f.name,
				"url", url,
				"code", shopinsight.ErrorCode(err),
				"duration", time.Since(begin),
				"err", err,
			)
			return
		}
		f.logger.Debug("fetched",
			"fetcher", f.name,
			"url", url,
			"bytes", len(body),
			"duration", time.Since(begin),
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
