package main

import (
	"fmt"

	"github.com/fwojciec/shopinsight"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	brands, err := deps.Brands.FindBrands(deps.Ctx, shopinsight.BrandFilter{Limit: c.Limit, Offset: c.Offset})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", shopinsight.ErrorMessage(err))
		return err
	}

	if len(brands) == 0 {
		fmt.Fprintln(deps.Stdout, "No brands found. Use 'shopinsight fetch' to extract one.")
		return nil
	}

	for _, b := range brands {
		fmt.Fprintf(deps.Stdout, "%s  %s  %d products  %s\n",
			b.ID, b.StoreURL, len(b.Insights.ProductCatalog), b.UpdatedAt.Format("2006-01-02 15:04"))
	}

	return nil
}

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	brand, err := findBrand(deps, c.URL)
	if err != nil {
		return err
	}
	return writeInsights(deps.Stdout, c.Format, brand.Insights)
}

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return shopinsight.Errorf(shopinsight.EINVALID, "use --force to confirm deletion")
	}

	brand, err := findBrand(deps, c.URL)
	if err != nil {
		return err
	}

	if err := deps.Brands.DeleteBrand(deps.Ctx, brand.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", shopinsight.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted brand %q\n", brand.StoreURL)
	return nil
}

// findBrand looks up a stored brand by store URL in the same normalized
// form used when it was saved.
func findBrand(deps *Dependencies, rawURL string) (*shopinsight.Brand, error) {
	storeURL, err := shopinsight.NormalizeStoreURL(rawURL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", shopinsight.ErrorMessage(err))
		return nil, err
	}

	brand, err := deps.Brands.FindBrandByStoreURL(deps.Ctx, storeURL)
	if shopinsight.ErrorCode(err) == shopinsight.ENOTFOUND {
		fmt.Fprintf(deps.Stderr, "error: brand %q not found. Use 'shopinsight list' to see stored brands.\n", storeURL)
		return nil, err
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", shopinsight.ErrorMessage(err))
		return nil, err
	}
	return brand, nil
}
