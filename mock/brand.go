package mock

import (
	"context"

	"github.com/fwojciec/shopinsight"
)

var _ shopinsight.BrandService = (*BrandService)(nil)

// BrandService is a mock implementation of shopinsight.BrandService.
type BrandService struct {
	SaveInsightsFn        func(ctx context.Context, insights *shopinsight.BrandInsights) (*shopinsight.Brand, error)
	FindBrandByIDFn       func(ctx context.Context, id string) (*shopinsight.Brand, error)
	FindBrandByStoreURLFn func(ctx context.Context, storeURL string) (*shopinsight.Brand, error)
	FindBrandsFn          func(ctx context.Context, filter shopinsight.BrandFilter) ([]*shopinsight.Brand, error)
	DeleteBrandFn         func(ctx context.Context, id string) error
}

func (s *BrandService) SaveInsights(ctx context.Context, insights *shopinsight.BrandInsights) (*shopinsight.Brand, error) {
	return s.SaveInsightsFn(ctx, insights)
}

func (s *BrandService) FindBrandByID(ctx context.Context, id string) (*shopinsight.Brand, error) {
	return s.FindBrandByIDFn(ctx, id)
}

func (s *BrandService) FindBrandByStoreURL(ctx context.Context, storeURL string) (*shopinsight.Brand, error) {
	return s.FindBrandByStoreURLFn(ctx, storeURL)
}

func (s *BrandService) FindBrands(ctx context.Context, filter shopinsight.BrandFilter) ([]*shopinsight.Brand, error) {
	return s.FindBrandsFn(ctx, filter)
}

func (s *BrandService) DeleteBrand(ctx context.Context, id string) error {
	return s.DeleteBrandFn(ctx, id)
}
