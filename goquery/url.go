package goquery

import (
	"net/url"
	"strings"
)

// parseBase parses the page base URL for relative-reference resolution.
// Returns nil when the base is malformed or not absolute; resolution then
// fails per-item and only absolute item URLs survive.
func parseBase(baseURL string) *url.URL {
	base, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil || !base.IsAbs() {
		return nil
	}
	return base
}

// resolveURL resolves a possibly-relative reference against the base URL.
// Returns empty string when the reference cannot be parsed, cannot be made
// absolute, or is not http(s).
func resolveURL(base *url.URL, ref string) string {
	u, err := url.Parse(strings.TrimSpace(ref))
	if err != nil {
		return ""
	}
	if base != nil {
		u = base.ResolveReference(u)
	}
	if !u.IsAbs() {
		return ""
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ""
	}
	return u.String()
}

// isSameHost checks if the resolved URL has the same host as the base URL.
// This uses exact host matching - subdomains are considered different hosts.
func isSameHost(base *url.URL, resolved string) bool {
	if base == nil {
		return false
	}
	u, err := url.Parse(resolved)
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Host, base.Host)
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
