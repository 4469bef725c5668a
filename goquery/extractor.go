package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/shopinsight"
)

// Ensure Extractor implements shopinsight.PageExtractor at compile time.
var _ shopinsight.PageExtractor = (*Extractor)(nil)

// section is one isolated page heuristic. run stores its result in the
// insights only after the heuristic returns.
type section struct {
	name string
	run  func(doc *goquery.Document, base *url.URL, insights *shopinsight.PageInsights)
}

var defaultSections = []section{
	{"hero_products", func(doc *goquery.Document, base *url.URL, in *shopinsight.PageInsights) {
		in.HeroProducts = ExtractHeroProducts(doc, base)
	}},
	{"contact_info", func(doc *goquery.Document, _ *url.URL, in *shopinsight.PageInsights) {
		in.ContactInfo = ExtractContactInfo(doc)
	}},
	{"social_handles", func(doc *goquery.Document, base *url.URL, in *shopinsight.PageInsights) {
		in.SocialHandles = ExtractSocialHandles(doc, base)
	}},
	{"faqs", func(doc *goquery.Document, _ *url.URL, in *shopinsight.PageInsights) {
		in.FAQs = ExtractFAQs(doc)
	}},
	{"about_brand", func(doc *goquery.Document, _ *url.URL, in *shopinsight.PageInsights) {
		in.AboutBrand = ExtractAboutBrand(doc)
	}},
	{"important_links", func(doc *goquery.Document, _ *url.URL, in *shopinsight.PageInsights) {
		in.ImportantLinks = ExtractImportantLinks(doc)
	}},
}

// Extractor runs every page heuristic against one parsed document.
type Extractor struct {
	sections []section
}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{sections: defaultSections}
}

// Extract parses html once and derives hero products, contact info, social
// handles, FAQs, the about text and footer links from it. Each section is
// isolated: a panic in one leaves that section empty, records it in
// FailedSections and does not affect the others.
func (e *Extractor) Extract(html string, baseURL string) (*shopinsight.PageInsights, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, shopinsight.Errorf(shopinsight.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, shopinsight.Errorf(shopinsight.EINVALID, "failed to parse HTML: %v", err)
	}

	insights := &shopinsight.PageInsights{
		HeroProducts: []shopinsight.Product{},
		ContactInfo: shopinsight.ContactInfo{
			Emails:       []string{},
			PhoneNumbers: []string{},
			Addresses:    []string{},
		},
		SocialHandles:  []shopinsight.SocialHandle{},
		FAQs:           []shopinsight.FAQItem{},
		ImportantLinks: shopinsight.Links{},
	}

	sections := e.sections
	if sections == nil {
		sections = defaultSections
	}
	for _, sec := range sections {
		if !runSection(func() { sec.run(doc, base, insights) }) {
			insights.FailedSections = append(insights.FailedSections, sec.name)
		}
	}

	return insights, nil
}

// runSection reports whether run completed without panicking.
func runSection(run func()) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	run()
	return true
}
