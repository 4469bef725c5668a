// Package bloom provides store URL deduplication using Bloom filters.
package bloom

import (
	"github.com/bits-and-blooms/bloom/v3"
	"github.com/fwojciec/shopinsight"
)

var _ shopinsight.URLSet = (*Filter)(nil)

// Filter tracks store URLs in a Bloom filter. URLs are keyed by store so
// "https://Shop.com/" and "shop.com" count as the same store.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected stores
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	if n == 0 {
		n = 1
	}
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add records a store URL.
func (f *Filter) Add(url string) {
	f.f.AddString(shopinsight.StoreKey(url))
}

// Test returns true if the store might have been added.
// False positives are possible; false negatives are not.
func (f *Filter) Test(url string) bool {
	return f.f.TestString(shopinsight.StoreKey(url))
}

// TestAndAdd reports whether the store might have been added and records it.
func (f *Filter) TestAndAdd(url string) bool {
	return f.f.TestAndAddString(shopinsight.StoreKey(url))
}

// EstimatedCount returns the approximate number of stores in the filter.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}
