package goquery

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/pkarbownik/newsprint"
)

// mainImageMinSize is the minimum declared width or height for an
// in-content image to qualify as the main image. Images declaring no size
// qualify by virtue of sitting inside the main-content container.
const mainImageMinSize = 200

// imageCandidate pairs an extracted image with its DOM node so the main
// image can later be chosen by containment in the main-content container.
type imageCandidate struct {
	image newsprint.Image
	node  *html.Node
}

// extractImages enumerates img and picture source elements over the whole
// tree. A featured image may legitimately sit in a header or figure
// region, so no noise filtering applies here. Unresolvable URLs drop the
// single image, not the call.
func extractImages(doc *goquery.Document, base *url.URL) []imageCandidate {
	var out []imageCandidate
	seen := make(map[string]bool)

	doc.Find("img, picture source").Each(func(_ int, sel *goquery.Selection) {
		src, _ := sel.Attr("src")
		if strings.TrimSpace(src) == "" {
			src = firstSrcsetCandidate(sel.AttrOr("srcset", ""))
		}
		resolved := resolveURL(base, src)
		if resolved == "" || seen[resolved] {
			return
		}
		seen[resolved] = true

		img := newsprint.Image{
			URL:     resolved,
			Alt:     strings.TrimSpace(sel.AttrOr("alt", "")),
			Caption: normalizeSpace(sel.Closest("figure").Find("figcaption").First().Text()),
			Width:   attrInt(sel, "width"),
			Height:  attrInt(sel, "height"),
		}
		out = append(out, imageCandidate{image: img, node: sel.Get(0)})
	})

	return out
}

// firstSrcsetCandidate returns the URL of the first srcset entry.
func firstSrcsetCandidate(srcset string) string {
	first, _, _ := strings.Cut(srcset, ",")
	fields := strings.Fields(first)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// attrInt parses an integer attribute, dropping malformed values
// individually rather than failing.
func attrInt(sel *goquery.Selection, name string) *int {
	val, ok := sel.Attr(name)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSuffix(strings.TrimSpace(val), "px"))
	if err != nil || n < 0 {
		return nil
	}
	return &n
}

// markMainImage flags at most one image as the main image: the og:image
// when resolvable, otherwise the first qualifying image inside the
// main-content container. An og:image not present among the enumerated
// images is added so the flag has a carrier.
func markMainImage(candidates []imageCandidate, ogImage string, base *url.URL, content *html.Node) []newsprint.Image {
	images := make([]newsprint.Image, 0, len(candidates))
	for _, c := range candidates {
		images = append(images, c.image)
	}

	if resolved := resolveURL(base, ogImage); resolved != "" {
		for i := range images {
			if images[i].URL == resolved {
				images[i].IsMainImage = true
				return images
			}
		}
		og := newsprint.Image{URL: resolved, IsMainImage: true}
		return append([]newsprint.Image{og}, images...)
	}

	if content != nil {
		for i, c := range candidates {
			if containsNode(content, c.node) && qualifiesAsMain(c.image) {
				images[i].IsMainImage = true
				break
			}
		}
	}
	return images
}

func qualifiesAsMain(img newsprint.Image) bool {
	if img.Width == nil && img.Height == nil {
		return true
	}
	if img.Width != nil && *img.Width >= mainImageMinSize {
		return true
	}
	return img.Height != nil && *img.Height >= mainImageMinSize
}
