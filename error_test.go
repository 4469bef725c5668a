package shopinsight_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/shopinsight"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := shopinsight.Errorf(shopinsight.ENOTFOUND, "brand %q not found", "test")

	assert.Equal(t, shopinsight.ENOTFOUND, shopinsight.ErrorCode(err))
	assert.Equal(t, "brand \"test\" not found", shopinsight.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, shopinsight.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, shopinsight.ErrorMessage(nil))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	err := errors.New("boom")

	assert.Equal(t, shopinsight.EINTERNAL, shopinsight.ErrorCode(err))
	assert.Equal(t, "Internal error.", shopinsight.ErrorMessage(err))
}

func TestWrapError(t *testing.T) {
	t.Parallel()

	t.Run("keeps cause reachable through errors.Is", func(t *testing.T) {
		t.Parallel()

		err := shopinsight.WrapError(shopinsight.EUNREACHABLE, context.DeadlineExceeded, "failed to fetch website")

		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Equal(t, shopinsight.EUNREACHABLE, shopinsight.ErrorCode(err))
		assert.Equal(t, "failed to fetch website", shopinsight.ErrorMessage(err))
		assert.Contains(t, err.Error(), "deadline exceeded")
	})

	t.Run("code survives fmt wrapping", func(t *testing.T) {
		t.Parallel()

		inner := shopinsight.WrapError(shopinsight.EEXTRACTION, errors.New("parse"), "error while scraping website")
		err := fmt.Errorf("fetch command: %w", inner)

		assert.Equal(t, shopinsight.EEXTRACTION, shopinsight.ErrorCode(err))
	})
}
