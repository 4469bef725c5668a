package scrape

import "fmt"

// TruncateURL shortens a URL for display, keeping the end which is more informative.
func TruncateURL(url string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if maxLen < 4 {
		return url[:min(len(url), maxLen)]
	}
	if len(url) <= maxLen {
		return url
	}
	return "..." + url[len(url)-maxLen+3:]
}

// Summary describes the batch outcome in one line.
func (r *BatchResult) Summary() string {
	s := fmt.Sprintf("%d succeeded, %d failed", r.Succeeded, r.Failed)
	if r.Skipped > 0 {
		s += fmt.Sprintf(", %d duplicate", r.Skipped)
	}
	return s
}
