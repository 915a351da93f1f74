package goquery

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// candidateTags are the container elements scored as possible article
// bodies. Body is included so pages whose paragraphs sit directly under
// <body> still select something.
var candidateTags = map[atom.Atom]bool{
	atom.Article: true,
	atom.Main:    true,
	atom.Section: true,
	atom.Div:     true,
	atom.Td:      true,
	atom.Body:    true,
}

// subtreeStats accumulates the density inputs for one subtree, with noise
// subtrees pruned out.
type subtreeStats struct {
	textLen     int
	tagCount    int
	linkTextLen int
}

type candidate struct {
	node  *html.Node
	order int
	score float64
}

// locateMainContent scores candidate containers by text density, penalized
// by link density, and returns the best one. Returns nil when nothing
// scores above the minimum text length, in which case the caller reports
// empty main text rather than guessing.
func locateMainContent(root *html.Node, noise *noiseFilter, minTextLen int) *html.Node {
	var candidates []candidate
	order := 0

	var walk func(n *html.Node, inLink bool) subtreeStats
	walk = func(n *html.Node, inLink bool) subtreeStats {
		var s subtreeStats
		switch n.Type {
		case html.TextNode:
			l := len(normalizeSpace(n.Data))
			s.textLen = l
			if inLink {
				s.linkTextLen = l
			}
			return s
		case html.ElementNode:
			if noise.IsNoise(n) {
				return s
			}
			s.tagCount = 1
			if n.DataAtom == atom.A {
				inLink = true
			}
		case html.DocumentNode:
		default:
			return s
		}

		myOrder := order
		order++

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			cs := walk(c, inLink)
			s.textLen += cs.textLen
			s.tagCount += cs.tagCount
			s.linkTextLen += cs.linkTextLen
		}

		if n.Type == html.ElementNode && candidateTags[n.DataAtom] && s.textLen >= minTextLen {
			linkDensity := float64(s.linkTextLen) / float64(s.textLen)
			if linkDensity <= maxLinkDensity {
				score := float64(s.textLen) / float64(1+s.tagCount) * (1 - linkDensity)
				candidates = append(candidates, candidate{node: n, order: myOrder, score: score})
			}
		}
		return s
	}
	walk(root, false)

	var best *candidate
	for i := range candidates {
		c := &candidates[i]
		// Candidates arrive in post-order, so ties must be broken on the
		// preorder index to keep the earlier node in document order.
		if best == nil || c.score > best.score ||
			(c.score == best.score && c.order < best.order) {
			best = c
		}
	}
	if best == nil {
		return nil
	}
	return best.node
}

// inlineTags are elements whose boundaries do not separate words, so a
// word split by one of them is rejoined instead of broken in two.
var inlineTags = map[atom.Atom]bool{
	atom.A:      true,
	atom.Abbr:   true,
	atom.B:      true,
	atom.Cite:   true,
	atom.Code:   true,
	atom.Em:     true,
	atom.I:      true,
	atom.Mark:   true,
	atom.Q:      true,
	atom.Small:  true,
	atom.Span:   true,
	atom.Strong: true,
	atom.Sub:    true,
	atom.Sup:    true,
	atom.Time:   true,
	atom.U:      true,
}

// flattenText returns the whitespace-normalized visible text of the
// subtree, with noise subtrees pruned. Block element boundaries separate
// words; inline element boundaries do not.
func flattenText(n *html.Node, noise *noiseFilter) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		block := false
		if n.Type == html.ElementNode {
			if noise.IsNoise(n) {
				return
			}
			block = !inlineTags[n.DataAtom]
		}
		if block {
			sb.WriteByte(' ')
		}
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if block {
			sb.WriteByte(' ')
		}
	}
	walk(n)
	return normalizeSpace(sb.String())
}

// normalizeSpace collapses all runs of whitespace to single spaces and
// trims the ends.
func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// containsNode reports whether ancestor contains n (or is n itself).
func containsNode(ancestor, n *html.Node) bool {
	for ; n != nil; n = n.Parent {
		if n == ancestor {
			return true
		}
	}
	return false
}
