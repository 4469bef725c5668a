package shopinsight

import (
	"net/url"
	"strings"
)

// NormalizeStoreURL validates a store URL. A missing scheme defaults to
// https. Returns EINVALID for anything that is not an http(s) URL with a host.
func NormalizeStoreURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", Errorf(EINVALID, "store URL required")
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", Errorf(EINVALID, "invalid store URL %q", raw)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", Errorf(EINVALID, "unsupported URL scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return "", Errorf(EINVALID, "store URL %q has no host", raw)
	}
	if u.User != nil {
		return "", Errorf(EINVALID, "store URL %q must not contain credentials", raw)
	}
	u.Fragment = ""
	return u.String(), nil
}

// StoreHost returns the host of a store URL, or "" if it cannot be parsed.
func StoreHost(storeURL string) string {
	u, err := url.Parse(storeURL)
	if err != nil {
		return ""
	}
	return u.Host
}

// StoreKey identifies a store regardless of how its URL is spelled:
// "https://Shop.com/" and "shop.com" share a key. Input that is not a
// valid store URL is keyed by its trimmed text.
func StoreKey(raw string) string {
	normalized, err := NormalizeStoreURL(raw)
	if err != nil {
		return strings.TrimSpace(raw)
	}
	return strings.TrimRight(strings.ToLower(normalized), "/")
}
