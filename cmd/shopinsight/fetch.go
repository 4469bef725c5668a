package main

import (
	"fmt"

	"github.com/fwojciec/shopinsight"
	"github.com/fwojciec/shopinsight/fs"
)

// Run executes the fetch command.
func (c *FetchCmd) Run(deps *Dependencies) error {
	result, err := deps.Insights.Insights(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", describeError(err))
		return err
	}

	if c.OutDir != "" {
		if err := fs.NewWriter(c.OutDir).WriteResult(deps.Ctx, result); err != nil {
			fmt.Fprintf(deps.Stderr, "error: failed to write result: %v\n", err)
			return err
		}
	}

	if c.NoStructure {
		return writeInsights(deps.Stdout, c.Format, result.Insights)
	}
	return writeStructured(deps.Stdout, c.Format, result)
}

// describeError returns a user-facing message for err.
func describeError(err error) string {
	switch shopinsight.ErrorCode(err) {
	case shopinsight.EUNREACHABLE:
		return "website not found or inaccessible: " + shopinsight.ErrorMessage(err)
	case shopinsight.EINTERNAL:
		return err.Error()
	default:
		return shopinsight.ErrorMessage(err)
	}
}
