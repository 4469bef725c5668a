package shopinsight

import (
	"bytes"
	"encoding/json"
	"net/url"
	"strconv"
	"strings"
)

// RawProduct is one record of a store's /products.json feed.
// Decoding is lenient: fields with unexpected types or shapes fall back to
// their zero values instead of failing the record.
type RawProduct struct {
	ID        string
	Title     string
	BodyHTML  string
	Variants  []RawVariant
	Images    []RawImage
	Available bool
	Handle    string
}

// RawVariant is a product variant from the feed.
type RawVariant struct {
	Price    string
	Currency string
}

// RawImage is a product image from the feed.
type RawImage struct {
	Src string
}

// UnmarshalJSON decodes a feed record field by field.
// It only fails when data is not a JSON object.
func (p *RawProduct) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	*p = RawProduct{
		ID:        looseString(fields["id"]),
		Title:     looseString(fields["title"]),
		BodyHTML:  looseString(fields["body_html"]),
		Available: looseBool(fields["available"]),
		Handle:    looseString(fields["handle"]),
	}

	for _, v := range looseObjects(fields["variants"]) {
		p.Variants = append(p.Variants, RawVariant{
			Price:    looseString(v["price"]),
			Currency: looseString(v["currency"]),
		})
	}
	for _, img := range looseObjects(fields["images"]) {
		p.Images = append(p.Images, RawImage{Src: looseString(img["src"])})
	}

	return nil
}

// DecodeProductFeed decodes a /products.json payload.
// Records that are not JSON objects are skipped. An error is returned only
// when the payload itself is not a valid feed.
func DecodeProductFeed(data []byte) ([]RawProduct, error) {
	var feed struct {
		Products []json.RawMessage `json:"products"`
	}
	if err := json.Unmarshal(data, &feed); err != nil {
		return nil, Errorf(EINVALID, "invalid product feed: %v", err)
	}

	products := make([]RawProduct, 0, len(feed.Products))
	for _, raw := range feed.Products {
		var p RawProduct
		if err := json.Unmarshal(raw, &p); err != nil {
			continue
		}
		products = append(products, p)
	}
	return products, nil
}

// MapProducts converts feed records into catalog products.
// Product URLs are resolved against baseURL. The mapping is deterministic.
func MapProducts(raw []RawProduct, baseURL string) []Product {
	base, _ := url.Parse(baseURL)

	products := make([]Product, 0, len(raw))
	for _, p := range raw {
		products = append(products, Product{
			ID:          p.ID,
			Title:       p.Title,
			Description: CleanText(StripHTML(p.BodyHTML)),
			Price:       productPrice(p),
			Available:   p.Available,
			URL:         productURL(base, p.Handle),
			ImageURL:    productImage(p),
		})
	}
	return products
}

// productPrice formats the first variant as "<price> <currency>".
func productPrice(p RawProduct) string {
	if len(p.Variants) == 0 {
		return "0"
	}
	v := p.Variants[0]
	price := v.Price
	if price == "" {
		price = "0"
	}
	return strings.TrimSpace(price + " " + v.Currency)
}

func productImage(p RawProduct) string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0].Src
}

func productURL(base *url.URL, handle string) string {
	ref, err := url.Parse("/products/" + url.PathEscape(handle))
	if err != nil || base == nil {
		return "/products/" + handle
	}
	return base.ResolveReference(ref).String()
}

// looseString renders a JSON scalar as a string. Numbers keep their
// literal form so large ids never pass through a float.
func looseString(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return ""
		}
		return s
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(raw, &b); err != nil {
			return ""
		}
		return strconv.FormatBool(b)
	case '{', '[', 'n':
		return ""
	default:
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return ""
		}
		return n.String()
	}
}

func looseBool(raw json.RawMessage) bool {
	var b bool
	if err := json.Unmarshal(raw, &b); err != nil {
		return false
	}
	return b
}

func looseObjects(raw json.RawMessage) []map[string]json.RawMessage {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	objects := make([]map[string]json.RawMessage, 0, len(items))
	for _, item := range items {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(item, &obj); err != nil || obj == nil {
			continue
		}
		objects = append(objects, obj)
	}
	return objects
}
