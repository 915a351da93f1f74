package goquery

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// noiseTags are removed structurally, whole subtree included.
var noiseTags = map[atom.Atom]bool{
	atom.Script:   true,
	atom.Style:    true,
	atom.Noscript: true,
	atom.Nav:      true,
	atom.Header:   true,
	atom.Footer:   true,
	atom.Aside:    true,
	atom.Form:     true,
	atom.Template: true,
}

// DefaultNoisePatterns are matched case-insensitively as substrings of an
// element's class and id attributes. Bare "ad" is handled separately as an
// exact class/id token so that "breadcrumb" or "readmore" don't match.
var DefaultNoisePatterns = []string{
	"nav",
	"menu",
	"footer",
	"header",
	"sidebar",
	"ads",
	"ad-",
	"advert",
	"banner",
	"comment",
	"share",
	"social",
	"cookie",
	"popup",
	"promo",
	"sponsor",
	"related",
	"widget",
}

// noiseTokens are matched against whole class/id tokens only.
var noiseTokens = map[string]bool{
	"ad": true,
}

// noiseFilter decides which elements are boilerplate rather than content.
// It never mutates the tree; callers prune matching subtrees during
// traversal.
type noiseFilter struct {
	patterns []string
}

func newNoiseFilter(patterns []string) *noiseFilter {
	lowered := make([]string, len(patterns))
	for i, p := range patterns {
		lowered[i] = strings.ToLower(p)
	}
	return &noiseFilter{patterns: lowered}
}

// IsNoise reports whether the element and its entire subtree should be
// excluded from content selection.
func (f *noiseFilter) IsNoise(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	if noiseTags[n.DataAtom] {
		return true
	}
	for _, attr := range n.Attr {
		if attr.Key != "class" && attr.Key != "id" {
			continue
		}
		if f.matches(attr.Val) {
			return true
		}
	}
	return false
}

func (f *noiseFilter) matches(val string) bool {
	val = strings.ToLower(val)
	for _, p := range f.patterns {
		if strings.Contains(val, p) {
			return true
		}
	}
	for _, tok := range strings.FieldsFunc(val, isTokenSep) {
		if noiseTokens[tok] {
			return true
		}
	}
	return false
}

func isTokenSep(r rune) bool {
	return r == ' ' || r == '-' || r == '_' || r == ':'
}
