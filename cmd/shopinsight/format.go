package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fwojciec/shopinsight"
	"github.com/fwojciec/shopinsight/etree"
)

// writeInsights prints the extracted insights in format.
func writeInsights(w io.Writer, format string, insights *shopinsight.BrandInsights) error {
	switch format {
	case "xml":
		return etree.NewEncoder(w).EncodeInsights(insights)
	case "text":
		writeText(w, insights)
		return nil
	default:
		return writeJSON(w, insights)
	}
}

// writeStructured prints a structured result in format. Text output falls
// back to the extracted insights.
func writeStructured(w io.Writer, format string, result *shopinsight.InsightResult) error {
	switch format {
	case "xml":
		return etree.NewEncoder(w).EncodeMap("insights", result.Structured)
	case "text":
		writeText(w, result.Insights)
		return nil
	default:
		return writeJSON(w, result.Structured)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeText(w io.Writer, insights *shopinsight.BrandInsights) {
	fmt.Fprintf(w, "Store:      %s\n", insights.StoreURL)
	fmt.Fprintf(w, "Extracted:  %s\n", insights.ExtractedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(w, "Products:   %d\n", len(insights.ProductCatalog))
	fmt.Fprintf(w, "Hero:       %d\n", len(insights.HeroProducts))
	fmt.Fprintf(w, "FAQs:       %d\n", len(insights.FAQs))

	if insights.AboutBrand != "" {
		fmt.Fprintf(w, "\nAbout\n  %s\n", insights.AboutBrand)
	}

	if len(insights.HeroProducts) > 0 {
		fmt.Fprintln(w, "\nHero products")
		for _, p := range insights.HeroProducts {
			fmt.Fprintf(w, "  %s  %s  %s\n", p.Title, p.Price, p.URL)
		}
	}

	contact := insights.ContactInfo
	if len(contact.Emails)+len(contact.PhoneNumbers)+len(contact.Addresses) > 0 {
		fmt.Fprintln(w, "\nContact")
		for _, v := range contact.Emails {
			fmt.Fprintf(w, "  email    %s\n", v)
		}
		for _, v := range contact.PhoneNumbers {
			fmt.Fprintf(w, "  phone    %s\n", v)
		}
		for _, v := range contact.Addresses {
			fmt.Fprintf(w, "  address  %s\n", v)
		}
	}

	if len(insights.SocialHandles) > 0 {
		fmt.Fprintln(w, "\nSocial")
		for _, h := range insights.SocialHandles {
			fmt.Fprintf(w, "  %-10s %s\n", h.Platform, h.URL)
		}
	}

	if len(insights.FAQs) > 0 {
		fmt.Fprintln(w, "\nFAQs")
		for _, faq := range insights.FAQs {
			fmt.Fprintf(w, "  Q: %s\n  A: %s\n", faq.Question, faq.Answer)
		}
	}

	if len(insights.ImportantLinks) > 0 {
		fmt.Fprintln(w, "\nLinks")
		for _, link := range insights.ImportantLinks {
			fmt.Fprintf(w, "  %-20s %s\n", strings.ReplaceAll(link.Label, "_", " "), link.URL)
		}
	}
}
