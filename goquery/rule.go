// Package goquery implements the storefront page heuristics on top of
// github.com/PuerkitoBio/goquery.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Rule pairs a CSS selector with the function that turns each matching
// element into a value. The function reports false to skip an element.
type Rule[T any] struct {
	Selector string
	Extract  func(sel *goquery.Selection) (T, bool)
}

// collectAll evaluates every rule in order and accumulates every value.
// Elements matched by several rules contribute once per rule.
func collectAll[T any](root *goquery.Selection, rules []Rule[T]) []T {
	out := []T{}
	for _, rule := range rules {
		root.Find(rule.Selector).Each(func(_ int, sel *goquery.Selection) {
			if v, ok := rule.Extract(sel); ok {
				out = append(out, v)
			}
		})
	}
	return out
}

// firstMatch evaluates rules in order and returns the first value produced.
func firstMatch[T any](root *goquery.Selection, rules []Rule[T]) (T, bool) {
	var (
		found T
		ok    bool
	)
	for _, rule := range rules {
		root.Find(rule.Selector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			found, ok = rule.Extract(sel)
			return !ok
		})
		if ok {
			return found, true
		}
	}
	return found, false
}

// absoluteURL resolves href against base. Hrefs that already start with
// "http" are returned unchanged.
func absoluteURL(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if strings.HasPrefix(href, "http") {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if base == nil {
		return ref.String()
	}
	return base.ResolveReference(ref).String()
}

// isWebURL reports whether href is an absolute http or https URL.
// mailto:, tel:, javascript: and relative links are rejected.
func isWebURL(href string) bool {
	u, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return false
	}
	scheme := strings.ToLower(u.Scheme)
	return (scheme == "http" || scheme == "https") && u.Host != ""
}
