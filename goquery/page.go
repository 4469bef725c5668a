package goquery

import (
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/shopinsight"
)

const addressSelector = ".footer-address, .contact-address, address"

// ExtractContactInfo mines emails and phone numbers from the page text and
// collects address blocks longer than three words.
func ExtractContactInfo(doc *goquery.Document) shopinsight.ContactInfo {
	text := doc.Text()
	info := shopinsight.ContactInfo{
		Emails:       shopinsight.Dedupe(shopinsight.ExtractEmails(text)),
		PhoneNumbers: shopinsight.Dedupe(shopinsight.ExtractPhoneNumbers(text)),
		Addresses:    []string{},
	}

	doc.Find(addressSelector).Each(func(_ int, sel *goquery.Selection) {
		address := shopinsight.CleanText(sel.Text())
		if len(strings.Fields(address)) > 3 {
			info.Addresses = append(info.Addresses, address)
		}
	})
	return info
}

// socialDomains maps link domains to platforms. The first match wins.
var socialDomains = []struct {
	domain   string
	platform shopinsight.Platform
}{
	{"facebook.com", shopinsight.PlatformFacebook},
	{"twitter.com", shopinsight.PlatformTwitter},
	{"instagram.com", shopinsight.PlatformInstagram},
	{"pinterest.com", shopinsight.PlatformPinterest},
	{"tiktok.com", shopinsight.PlatformTikTok},
	{"youtube.com", shopinsight.PlatformYouTube},
}

// ExtractSocialHandles returns one handle per anchor whose href mentions a
// known social domain.
func ExtractSocialHandles(doc *goquery.Document, base *url.URL) []shopinsight.SocialHandle {
	handles := []shopinsight.SocialHandle{}
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		lower := strings.ToLower(href)
		for _, s := range socialDomains {
			if strings.Contains(lower, s.domain) {
				handles = append(handles, shopinsight.SocialHandle{
					Platform: s.platform,
					URL:      absoluteURL(base, href),
				})
				break
			}
		}
	})
	return handles
}

const (
	faqItemSelector     = ".faq-item, .accordion__item"
	faqQuestionSelector = ".faq-question, .accordion__title"
	faqAnswerSelector   = ".faq-answer, .accordion__content"
	faqHeadingSelector  = "h3, h4"
)

// faqRules are the two FAQ strategies. Their results are appended in order
// and not deduplicated against each other.
var faqRules = []Rule[shopinsight.FAQItem]{
	{Selector: faqItemSelector, Extract: structuredFAQ},
	{Selector: faqHeadingSelector, Extract: headingFAQ},
}

// ExtractFAQs collects FAQ items from accordion-style markup and from
// headings followed by paragraphs.
func ExtractFAQs(doc *goquery.Document) []shopinsight.FAQItem {
	return collectAll(doc.Selection, faqRules)
}

func structuredFAQ(sel *goquery.Selection) (shopinsight.FAQItem, bool) {
	question := sel.Find(faqQuestionSelector).First()
	answer := sel.Find(faqAnswerSelector).First()
	if question.Length() == 0 || answer.Length() == 0 {
		return shopinsight.FAQItem{}, false
	}
	item := shopinsight.FAQItem{
		Question: shopinsight.CleanText(question.Text()),
		Answer:   shopinsight.CleanText(answer.Text()),
	}
	return item, item.Question != "" && item.Answer != ""
}

// headingFAQ treats a heading as a question and the paragraphs between it
// and the next h3/h4 sibling as the answer.
func headingFAQ(sel *goquery.Selection) (shopinsight.FAQItem, bool) {
	question := shopinsight.CleanText(sel.Text())
	if question == "" {
		return shopinsight.FAQItem{}, false
	}

	var parts []string
	for next := sel.Next(); next.Length() > 0; next = next.Next() {
		if next.Is(faqHeadingSelector) {
			break
		}
		if next.Is("p") {
			if text := shopinsight.CleanText(next.Text()); text != "" {
				parts = append(parts, text)
			}
		}
	}
	if len(parts) == 0 {
		return shopinsight.FAQItem{}, false
	}
	return shopinsight.FAQItem{Question: question, Answer: strings.Join(parts, " ")}, true
}

// AboutSelectors are the about-brand content blocks, highest priority first.
var AboutSelectors = []string{
	".about-content",
	".about",
	".about-us",
	".rte",
	".page-content",
}

// ExtractAboutBrand returns the text of the first about block with more
// than ten words, or "" if none qualifies.
func ExtractAboutBrand(doc *goquery.Document) string {
	rules := make([]Rule[string], 0, len(AboutSelectors))
	for _, selector := range AboutSelectors {
		rules = append(rules, Rule[string]{Selector: selector, Extract: aboutBlock})
	}
	text, _ := firstMatch(doc.Selection, rules)
	return text
}

func aboutBlock(sel *goquery.Selection) (string, bool) {
	text := shopinsight.CleanText(sel.Text())
	return text, len(strings.Fields(text)) > 10
}

// ExtractImportantLinks maps footer link labels to their URLs. Only
// absolute http(s) links with more than two characters of text count.
// Labels are lowercased with spaces replaced by underscores; a later
// duplicate label overwrites an earlier one.
func ExtractImportantLinks(doc *goquery.Document) shopinsight.Links {
	links := shopinsight.Links{}
	footer := doc.Find("footer").First()
	if footer.Length() == 0 {
		return links
	}

	footer.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		text := shopinsight.CleanText(sel.Text())
		if utf8.RuneCountInString(text) <= 2 {
			return
		}
		href, _ := sel.Attr("href")
		href = strings.TrimSpace(href)
		if !isWebURL(href) {
			return
		}
		links.Set(strings.ReplaceAll(strings.ToLower(text), " ", "_"), href)
	})
	return links
}
