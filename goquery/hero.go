package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/shopinsight"
)

// HeroSelectors are the featured-product conventions scanned by
// ExtractHeroProducts, in order.
var HeroSelectors = []string{
	".hero__product",
	".featured-product",
	".product-slider__slide",
	`section[data-section-type="featured-product"]`,
}

const (
	heroTitleSelector = ".product-title, .product__title"
	heroPriceSelector = ".product-price, .price__regular"
)

// HeroProductID derives a hero product's ID from its title.
func HeroProductID(title string) string {
	return "hero-" + shopinsight.Slugify(title)
}

// ExtractHeroProducts finds featured products on the page. Every selector in
// HeroSelectors contributes; no deduplication is done across selectors.
// Candidates without a title, price or link are skipped.
func ExtractHeroProducts(doc *goquery.Document, base *url.URL) []shopinsight.Product {
	if doc == nil {
		return []shopinsight.Product{}
	}

	rules := make([]Rule[shopinsight.Product], 0, len(HeroSelectors))
	for _, selector := range HeroSelectors {
		rules = append(rules, Rule[shopinsight.Product]{
			Selector: selector,
			Extract: func(sel *goquery.Selection) (shopinsight.Product, bool) {
				return heroProduct(sel, base)
			},
		})
	}
	return collectAll(doc.Selection, rules)
}

func heroProduct(sel *goquery.Selection, base *url.URL) (shopinsight.Product, bool) {
	title := shopinsight.CleanText(sel.Find(heroTitleSelector).First().Text())
	if title == "" {
		return shopinsight.Product{}, false
	}
	price := shopinsight.CleanText(sel.Find(heroPriceSelector).First().Text())
	if price == "" {
		return shopinsight.Product{}, false
	}
	href, ok := sel.Find("a[href]").First().Attr("href")
	if !ok || strings.TrimSpace(href) == "" {
		return shopinsight.Product{}, false
	}
	link := absoluteURL(base, href)
	if link == "" {
		return shopinsight.Product{}, false
	}

	return shopinsight.Product{
		ID:        HeroProductID(title),
		Title:     title,
		Price:     price,
		Available: true,
		URL:       link,
		ImageURL:  heroImage(sel, base),
	}, true
}

// heroImage returns the first image source in sel. Protocol-relative
// sources get an https: prefix.
func heroImage(sel *goquery.Selection, base *url.URL) string {
	src, ok := sel.Find("img[src]").First().Attr("src")
	src = strings.TrimSpace(src)
	if !ok || src == "" {
		return ""
	}
	if strings.HasPrefix(src, "//") {
		return "https:" + src
	}
	return absoluteURL(base, src)
}
