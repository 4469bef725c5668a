package goquery

import (
	"net/url"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/shopinsight"
)

// Test exports for internal functions.

// NewExtractorWithPanic returns an Extractor whose section called name
// panics instead of running.
func NewExtractorWithPanic(name string) *Extractor {
	sections := make([]section, len(defaultSections))
	copy(sections, defaultSections)
	for i := range sections {
		if sections[i].name == name {
			sections[i].run = func(*goquery.Document, *url.URL, *shopinsight.PageInsights) {
				panic("selector blew up")
			}
		}
	}
	return &Extractor{sections: sections}
}
