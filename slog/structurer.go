package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/shopinsight"
)

// Ensure LoggingStructurer implements shopinsight.Structurer.
var _ shopinsight.Structurer = (*LoggingStructurer)(nil)

// LoggingStructurer wraps a Structurer with logging.
type LoggingStructurer struct {
	next   shopinsight.Structurer
	logger *slog.Logger
}

// NewLoggingStructurer creates a new LoggingStructurer.
func NewLoggingStructurer(next shopinsight.Structurer, logger *slog.Logger) *LoggingStructurer {
	return &LoggingStructurer{next: next, logger: logger}
}

// Structure delegates to the wrapped structurer and logs the request size,
// the number of top-level keys returned and whether the model output had
// to be wrapped as raw text.
func (s *LoggingStructurer) Structure(ctx context.Context, raw string) (obj map[string]any, err error) {
	defer func(begin time.Time) {
		_, wrapped := obj["raw"]
		s.logger.Info("structure",
			"bytes", len(raw),
			"keys", len(obj),
			"raw", wrapped && len(obj) == 1,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Structure(ctx, raw)
}
