package mock

import (
	"context"

	"github.com/fwojciec/shopinsight"
)

var _ shopinsight.Structurer = (*Structurer)(nil)

// Structurer is a mock implementation of shopinsight.Structurer.
type Structurer struct {
	StructureFn func(ctx context.Context, raw string) (map[string]any, error)
}

func (s *Structurer) Structure(ctx context.Context, raw string) (map[string]any, error) {
	return s.StructureFn(ctx, raw)
}
