// Package etree reads and writes brand insights as XML.
package etree

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/beevik/etree"
	"github.com/fwojciec/shopinsight"
)

// Encoder writes XML documents to an io.Writer.
type Encoder struct {
	w      io.Writer
	indent int
}

// NewEncoder creates an Encoder that indents nested elements by two spaces.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w, indent: 2}
}

// EncodeInsights writes insights as a <brand_insights> document.
func (e *Encoder) EncodeInsights(insights *shopinsight.BrandInsights) error {
	if insights == nil {
		return shopinsight.Errorf(shopinsight.EINVALID, "insights required")
	}
	doc := newDocument()
	InsightsElement(doc.CreateElement("brand_insights"), insights)
	return e.write(doc)
}

// EncodeMap writes an arbitrary JSON-like value tree under a root element.
// Keys are sorted; list entries become <item> elements.
func (e *Encoder) EncodeMap(root string, m map[string]any) error {
	doc := newDocument()
	appendValue(doc.CreateElement(elementName(root)), m)
	return e.write(doc)
}

func (e *Encoder) write(doc *etree.Document) error {
	doc.Indent(e.indent)
	_, err := doc.WriteTo(e.w)
	return err
}

func newDocument() *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	return doc
}

// InsightsElement fills el with the insights' attributes and children.
func InsightsElement(el *etree.Element, insights *shopinsight.BrandInsights) {
	el.CreateAttr("store_url", insights.StoreURL)
	el.CreateAttr("extracted_at", insights.ExtractedAt.UTC().Format(time.RFC3339Nano))

	appendProducts(el.CreateElement("product_catalog"), insights.ProductCatalog)
	appendProducts(el.CreateElement("hero_products"), insights.HeroProducts)
	el.CreateElement("privacy_policy").SetText(insights.PrivacyPolicy)
	el.CreateElement("return_refund_policy").SetText(insights.ReturnRefundPolicy)

	faqs := el.CreateElement("faqs")
	for _, faq := range insights.FAQs {
		item := faqs.CreateElement("faq")
		item.CreateElement("question").SetText(faq.Question)
		item.CreateElement("answer").SetText(faq.Answer)
	}

	social := el.CreateElement("social_handles")
	for _, h := range insights.SocialHandles {
		item := social.CreateElement("social_handle")
		item.CreateAttr("platform", string(h.Platform))
		if h.Handle != nil {
			item.CreateAttr("handle", *h.Handle)
		}
		item.SetText(h.URL)
	}

	contact := el.CreateElement("contact_info")
	for _, v := range insights.ContactInfo.Emails {
		contact.CreateElement("email").SetText(v)
	}
	for _, v := range insights.ContactInfo.PhoneNumbers {
		contact.CreateElement("phone_number").SetText(v)
	}
	for _, v := range insights.ContactInfo.Addresses {
		contact.CreateElement("address").SetText(v)
	}

	el.CreateElement("about_brand").SetText(insights.AboutBrand)

	links := el.CreateElement("important_links")
	for _, link := range insights.ImportantLinks {
		item := links.CreateElement("link")
		item.CreateAttr("label", link.Label)
		item.SetText(link.URL)
	}

	if len(insights.Metadata) > 0 {
		appendValue(el.CreateElement("metadata"), insights.Metadata)
	}
}

func appendProducts(el *etree.Element, products []shopinsight.Product) {
	for _, p := range products {
		item := el.CreateElement("product")
		item.CreateAttr("id", p.ID)
		item.CreateAttr("available", strconv.FormatBool(p.Available))
		item.CreateElement("title").SetText(p.Title)
		item.CreateElement("description").SetText(p.Description)
		item.CreateElement("price").SetText(p.Price)
		item.CreateElement("url").SetText(p.URL)
		item.CreateElement("image_url").SetText(p.ImageURL)
	}
}

func appendValue(el *etree.Element, v any) {
	switch v := v.(type) {
	case nil:
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			appendValue(el.CreateElement(elementName(k)), v[k])
		}
	case []any:
		for _, item := range v {
			appendValue(el.CreateElement("item"), item)
		}
	case []string:
		for _, item := range v {
			el.CreateElement("item").SetText(item)
		}
	case string:
		el.SetText(v)
	default:
		el.SetText(fmt.Sprint(v))
	}
}

// elementName turns an arbitrary key into a valid XML element name.
func elementName(key string) string {
	var b strings.Builder
	for i, r := range key {
		switch {
		case unicode.IsLetter(r) || r == '_':
			b.WriteRune(r)
		case i > 0 && (unicode.IsDigit(r) || r == '-' || r == '.'):
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "_"
	}
	return b.String()
}
