package shopinsight

import (
	"context"
	"time"
)

// Brand is a stored store and its most recent insights.
type Brand struct {
	ID        string         `json:"id"`
	StoreURL  string         `json:"storeUrl"`
	Insights  *BrandInsights `json:"insights"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// BrandService represents a service for managing stored brands.
type BrandService interface {
	// SaveInsights upserts the brand keyed by insights.StoreURL and fully
	// replaces every child collection with the given insights.
	SaveInsights(ctx context.Context, insights *BrandInsights) (*Brand, error)

	// FindBrandByID retrieves a brand by ID.
	// Returns ENOTFOUND if brand does not exist.
	FindBrandByID(ctx context.Context, id string) (*Brand, error)

	// FindBrandByStoreURL retrieves a brand by its store URL.
	// Returns ENOTFOUND if brand does not exist.
	FindBrandByStoreURL(ctx context.Context, storeURL string) (*Brand, error)

	// FindBrands retrieves brands matching the filter.
	FindBrands(ctx context.Context, filter BrandFilter) ([]*Brand, error)

	// DeleteBrand permanently removes a brand and all associated records.
	// Returns ENOTFOUND if brand does not exist.
	DeleteBrand(ctx context.Context, id string) error
}

// BrandFilter represents a filter for FindBrands.
type BrandFilter struct {
	ID       *string `json:"id"`
	StoreURL *string `json:"storeUrl"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
