package rod

import "github.com/go-rod/rod"

// navigationStatusJS reads the HTTP status of the main document from the
// Navigation Timing API. It yields 0 when the browser does not report it.
const navigationStatusJS = `() => {
	const [nav] = performance.getEntriesByType("navigation");
	return nav && nav.responseStatus ? nav.responseStatus : 0;
}`

// responseStatus returns the main document's HTTP status, or 0 if unknown.
func responseStatus(page *rod.Page) int {
	res, err := page.Eval(navigationStatusJS)
	if err != nil || res == nil {
		return 0
	}
	return res.Value.Int()
}
