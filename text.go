package shopinsight

import (
	"regexp"
	"strings"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	htmlTagRe    = regexp.MustCompile(`<[^>]+>`)
	nonWordRe    = regexp.MustCompile(`\W+`)

	// The character class keeps the literal pipe of the classic pattern
	// so existing matches stay identical.
	emailRe = regexp.MustCompile(`(?i)\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Z|a-z]{2,}\b`)

	// Optional country code, optional parenthesized area code, then 3-3-4
	// digits with space, dot or hyphen separators.
	phoneRe = regexp.MustCompile(`(\+?\d{1,3}[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}\b`)
)

// CleanText collapses every run of whitespace into a single space and trims
// both ends.
func CleanText(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}

// ExtractEmails returns every email address found in s, in document order.
// Duplicates are kept.
func ExtractEmails(s string) []string {
	return emailRe.FindAllString(s, -1)
}

// ExtractPhoneNumbers returns every phone-like substring of s, in document
// order. Matches are not validated and long digit runs can produce false
// positives.
func ExtractPhoneNumbers(s string) []string {
	return phoneRe.FindAllString(s, -1)
}

// StripHTML removes anything that looks like a tag. Entities are left as is.
func StripHTML(s string) string {
	return htmlTagRe.ReplaceAllString(s, "")
}

// Slugify lowercases s and replaces each run of non-word characters with a
// single hyphen. Leading and trailing hyphens are dropped.
func Slugify(s string) string {
	return strings.Trim(nonWordRe.ReplaceAllString(strings.ToLower(s), "-"), "-")
}

// Dedupe returns values with duplicates removed, keeping first occurrences.
// The result is never nil.
func Dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
