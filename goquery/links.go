package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pkarbownik/newsprint"
)

// extractLinks enumerates anchors with a resolvable http(s) href over the
// whole tree, in document order, deduplicated by resolved URL. Anchors
// with non-http schemes (mailto:, javascript:, ...) are dropped silently.
func extractLinks(doc *goquery.Document, base *url.URL) []newsprint.Link {
	var out []newsprint.Link
	seen := make(map[string]bool)

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if href == "" || isNonHTTPLink(href) {
			return
		}
		resolved := resolveURL(base, href)
		if resolved == "" || seen[resolved] {
			return
		}
		seen[resolved] = true

		out = append(out, newsprint.Link{
			URL:         resolved,
			Title:       normalizeSpace(sel.Text()),
			Description: strings.TrimSpace(sel.AttrOr("title", "")),
			IsExternal:  !isSameHost(base, resolved),
		})
	})

	return out
}
