package mock

import (
	"context"

	"github.com/fwojciec/shopinsight"
)

var _ shopinsight.ResultWriter = (*ResultWriter)(nil)

// ResultWriter is a mock implementation of shopinsight.ResultWriter.
type ResultWriter struct {
	WriteResultFn func(ctx context.Context, result *shopinsight.InsightResult) error
}

func (w *ResultWriter) WriteResult(ctx context.Context, result *shopinsight.InsightResult) error {
	return w.WriteResultFn(ctx, result)
}
