package shopinsight

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Product represents a product found in the catalog feed or in a featured
// placement on the store's main page.
type Product struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Available   bool   `json:"available"`
	URL         string `json:"url"`
	ImageURL    string `json:"image_url"`
}

// FAQItem is a question/answer pair. Both fields are non-empty.
type FAQItem struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Platform identifies a social network.
type Platform string

// Supported social platforms.
const (
	PlatformFacebook  Platform = "facebook"
	PlatformTwitter   Platform = "twitter"
	PlatformInstagram Platform = "instagram"
	PlatformPinterest Platform = "pinterest"
	PlatformTikTok    Platform = "tiktok"
	PlatformYouTube   Platform = "youtube"
)

// SocialHandle is a link to one of the store's social profiles.
// Handle is not derived from markup and is always nil when extracted.
type SocialHandle struct {
	Platform Platform `json:"platform"`
	URL      string   `json:"url"`
	Handle   *string  `json:"handle"`
}

// ContactInfo holds contact details mined from page text.
// Emails and PhoneNumbers are deduplicated; Addresses keep document order.
type ContactInfo struct {
	Emails       []string `json:"emails"`
	PhoneNumbers []string `json:"phone_numbers"`
	Addresses    []string `json:"addresses"`
}

// Link is a labeled URL.
type Link struct {
	Label string
	URL   string
}

// Links is an insertion-ordered label to URL mapping.
// Setting an existing label replaces its URL but keeps its position.
// It encodes as a JSON object whose keys appear in insertion order.
type Links []Link

// Set records url under label.
func (l *Links) Set(label, url string) {
	for i := range *l {
		if (*l)[i].Label == label {
			(*l)[i].URL = url
			return
		}
	}
	*l = append(*l, Link{Label: label, URL: url})
}

// Get returns the URL recorded under label.
func (l Links) Get(label string) (string, bool) {
	for _, link := range l {
		if link.Label == label {
			return link.URL, true
		}
	}
	return "", false
}

// MarshalJSON encodes the links as an ordered JSON object.
func (l Links) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, link := range l {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(link.Label)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(link.URL)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object, preserving key order.
func (l *Links) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*l = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("links: expected object, got %v", tok)
	}

	var links Links
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		label, _ := tok.(string)
		var url string
		if err := dec.Decode(&url); err != nil {
			return fmt.Errorf("links: value for %q: %w", label, err)
		}
		links.Set(label, url)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*l = links
	return nil
}

// BrandInsights is the aggregate produced by one extraction.
type BrandInsights struct {
	StoreURL           string         `json:"store_url"`
	ProductCatalog     []Product      `json:"product_catalog"`
	HeroProducts       []Product      `json:"hero_products"`
	PrivacyPolicy      string         `json:"privacy_policy"`
	ReturnRefundPolicy string         `json:"return_refund_policy"`
	FAQs               []FAQItem      `json:"faqs"`
	SocialHandles      []SocialHandle `json:"social_handles"`
	ContactInfo        ContactInfo    `json:"contact_info"`
	AboutBrand         string         `json:"about_brand"`
	ImportantLinks     Links          `json:"important_links"`
	ExtractedAt        time.Time      `json:"extracted_at"`
	Metadata           map[string]any `json:"metadata,omitempty"`
}

// Metadata keys set by the extraction pipeline.
const (
	MetadataPageHash = "page_hash"
	MetadataPageSize = "page_bytes"
	MetadataFailed   = "failed_sections"
	MetadataFetcher  = "fetcher"
)

// Validate returns an error if the insights contain invalid fields.
func (b *BrandInsights) Validate() error {
	if b.StoreURL == "" {
		return Errorf(EINVALID, "store URL required")
	}
	if b.ExtractedAt.IsZero() {
		return Errorf(EINVALID, "extraction time required")
	}
	return nil
}

// PageInsights is everything derived from a store's main page.
type PageInsights struct {
	HeroProducts   []Product
	ContactInfo    ContactInfo
	SocialHandles  []SocialHandle
	FAQs           []FAQItem
	AboutBrand     string
	ImportantLinks Links

	// FailedSections names the sections that could not be extracted and
	// were left empty.
	FailedSections []string
}
