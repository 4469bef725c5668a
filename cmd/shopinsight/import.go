package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/shopinsight"
	"github.com/fwojciec/shopinsight/etree"
)

// Run executes the import command.
func (c *ImportCmd) Run(deps *Dependencies) error {
	f, err := os.Open(c.File)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}
	defer f.Close()

	insights, err := readInsights(f, filepath.Ext(c.File))
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", shopinsight.ErrorMessage(err))
		return err
	}

	if insights.StoreURL, err = shopinsight.NormalizeStoreURL(insights.StoreURL); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", shopinsight.ErrorMessage(err))
		return err
	}

	brand, err := deps.Brands.SaveInsights(deps.Ctx, insights)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", shopinsight.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Imported brand %q (%s)\n", brand.StoreURL, brand.ID)
	return nil
}

// readInsights decodes insights exported as XML or JSON, chosen by file
// extension.
func readInsights(r io.Reader, ext string) (*shopinsight.BrandInsights, error) {
	if strings.EqualFold(ext, ".xml") {
		return etree.DecodeInsights(r)
	}

	var insights shopinsight.BrandInsights
	if err := json.NewDecoder(r).Decode(&insights); err != nil {
		return nil, shopinsight.WrapError(shopinsight.EINVALID, err, "failed to parse JSON insights")
	}
	return &insights, nil
}
