package etree

import (
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/fwojciec/shopinsight"
)

// DecodeInsights reads a document written by EncodeInsights.
// Metadata is not restored.
func DecodeInsights(r io.Reader) (*shopinsight.BrandInsights, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, shopinsight.WrapError(shopinsight.EINVALID, err, "failed to parse XML")
	}

	root := doc.Root()
	if root == nil || root.Tag != "brand_insights" {
		return nil, shopinsight.Errorf(shopinsight.EINVALID, "missing brand_insights root element")
	}

	insights := &shopinsight.BrandInsights{
		StoreURL:           root.SelectAttrValue("store_url", ""),
		ProductCatalog:     parseProducts(root.SelectElement("product_catalog")),
		HeroProducts:       parseProducts(root.SelectElement("hero_products")),
		PrivacyPolicy:      childText(root, "privacy_policy"),
		ReturnRefundPolicy: childText(root, "return_refund_policy"),
		FAQs:               []shopinsight.FAQItem{},
		SocialHandles:      []shopinsight.SocialHandle{},
		ContactInfo: shopinsight.ContactInfo{
			Emails:       []string{},
			PhoneNumbers: []string{},
			Addresses:    []string{},
		},
		AboutBrand:     childText(root, "about_brand"),
		ImportantLinks: shopinsight.Links{},
	}

	if v := root.SelectAttrValue("extracted_at", ""); v != "" {
		t, err := time.Parse(time.RFC3339Nano, v)
		if err != nil {
			return nil, shopinsight.WrapError(shopinsight.EINVALID, err, "invalid extracted_at")
		}
		insights.ExtractedAt = t
	}

	if faqs := root.SelectElement("faqs"); faqs != nil {
		for _, item := range faqs.SelectElements("faq") {
			insights.FAQs = append(insights.FAQs, shopinsight.FAQItem{
				Question: childText(item, "question"),
				Answer:   childText(item, "answer"),
			})
		}
	}

	if social := root.SelectElement("social_handles"); social != nil {
		for _, item := range social.SelectElements("social_handle") {
			h := shopinsight.SocialHandle{
				Platform: shopinsight.Platform(item.SelectAttrValue("platform", "")),
				URL:      strings.TrimSpace(item.Text()),
			}
			if attr := item.SelectAttr("handle"); attr != nil {
				handle := attr.Value
				h.Handle = &handle
			}
			insights.SocialHandles = append(insights.SocialHandles, h)
		}
	}

	if contact := root.SelectElement("contact_info"); contact != nil {
		for _, el := range contact.SelectElements("email") {
			insights.ContactInfo.Emails = append(insights.ContactInfo.Emails, el.Text())
		}
		for _, el := range contact.SelectElements("phone_number") {
			insights.ContactInfo.PhoneNumbers = append(insights.ContactInfo.PhoneNumbers, el.Text())
		}
		for _, el := range contact.SelectElements("address") {
			insights.ContactInfo.Addresses = append(insights.ContactInfo.Addresses, el.Text())
		}
	}

	if links := root.SelectElement("important_links"); links != nil {
		for _, item := range links.SelectElements("link") {
			insights.ImportantLinks.Set(item.SelectAttrValue("label", ""), item.Text())
		}
	}

	return insights, nil
}

func parseProducts(el *etree.Element) []shopinsight.Product {
	products := []shopinsight.Product{}
	if el == nil {
		return products
	}
	for _, item := range el.SelectElements("product") {
		available, _ := strconv.ParseBool(item.SelectAttrValue("available", "false"))
		products = append(products, shopinsight.Product{
			ID:          item.SelectAttrValue("id", ""),
			Title:       childText(item, "title"),
			Description: childText(item, "description"),
			Price:       childText(item, "price"),
			Available:   available,
			URL:         childText(item, "url"),
			ImageURL:    childText(item, "image_url"),
		})
	}
	return products
}

func childText(el *etree.Element, tag string) string {
	child := el.SelectElement(tag)
	if child == nil {
		return ""
	}
	return child.Text()
}
