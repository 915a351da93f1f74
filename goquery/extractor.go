// Package goquery implements the newsprint content extraction engine on
// top of goquery's tolerant HTML parsing. Given raw HTML and the page's
// base URL it separates article text from boilerplate with a text-density
// heuristic, harvests metadata, and enumerates images, videos, and links
// with URLs resolved to absolute form.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/sync/errgroup"

	"github.com/pkarbownik/newsprint"
)

// DefaultMinTextLength is the minimum visible text length for a container
// to be considered as the article body. Containers below it never win;
// when nothing qualifies, main text is reported empty rather than guessed.
const DefaultMinTextLength = 25

// maxLinkDensity discards candidates whose text is mostly anchor text.
// Such blocks are navigation, not content.
const maxLinkDensity = 0.75

// Ensure Extractor implements newsprint.Extractor at compile time.
var _ newsprint.Extractor = (*Extractor)(nil)

// Extractor is the extraction engine. It holds tuning parameters only and
// no mutable state, so a single Extractor may be shared by concurrent
// callers.
type Extractor struct {
	minTextLen int
	noise      *noiseFilter
	detector   newsprint.LanguageDetector
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithMinTextLength overrides DefaultMinTextLength.
func WithMinTextLength(n int) Option {
	return func(e *Extractor) {
		e.minTextLen = n
	}
}

// WithNoisePatterns replaces the default class/id noise patterns.
func WithNoisePatterns(patterns []string) Option {
	return func(e *Extractor) {
		e.noise = newNoiseFilter(patterns)
	}
}

// WithLanguageDetector sets a statistical fallback for the language field,
// used only when the page declares no language.
func WithLanguageDetector(d newsprint.LanguageDetector) Option {
	return func(e *Extractor) {
		e.detector = d
	}
}

// NewExtractor creates an Extractor with default tuning.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{
		minTextLen: DefaultMinTextLength,
		noise:      newNoiseFilter(DefaultNoisePatterns),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract processes raw HTML against the page's base URL and returns a
// complete Extraction. Malformed markup never fails: the parser auto-closes
// tags and drops bad attributes, unresolvable URLs drop the affected item
// only, and absent metadata stays unset. The error return exists for the
// interface contract; tolerant parsing of an in-memory string does not
// produce one in practice.
func (e *Extractor) Extract(rawHTML string, baseURL string) (*newsprint.Extraction, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, newsprint.Errorf(newsprint.EINTERNAL, "parse HTML: %v", err)
	}

	base := parseBase(baseURL)
	contentRoot := findContentRoot(doc)

	// The parsed tree is read-only from here on; the independent
	// sub-extractions share it without synchronization.
	var (
		meta    pageMeta
		imgs    []imageCandidate
		videos  []newsprint.Video
		links   []newsprint.Link
		content *html.Node
	)
	var g errgroup.Group
	g.Go(func() error {
		meta = extractMetadata(doc)
		return nil
	})
	g.Go(func() error {
		imgs = extractImages(doc, base)
		return nil
	})
	g.Go(func() error {
		videos = extractVideos(doc, base)
		return nil
	})
	g.Go(func() error {
		links = extractLinks(doc, base)
		return nil
	})
	g.Go(func() error {
		if contentRoot != nil {
			content = locateMainContent(contentRoot, e.noise, e.minTextLen)
		}
		return nil
	})
	_ = g.Wait()

	var mainText string
	if content != nil {
		mainText = flattenText(content, e.noise)
	}
	wordCount := countWords(mainText)
	minutes := readingTime(wordCount)

	if meta.language == nil && e.detector != nil && mainText != "" {
		if code, ok := e.detector.Detect(mainText); ok {
			meta.language = &code
		}
	}

	images := markMainImage(imgs, meta.ogImage, base, content)
	if videos == nil {
		videos = []newsprint.Video{}
	}
	if links == nil {
		links = []newsprint.Link{}
	}

	return &newsprint.Extraction{
		MainText:    mainText,
		Description: meta.description,
		Metadata: newsprint.Metadata{
			Title:       meta.title,
			Author:      meta.author,
			PublishDate: meta.publishDate,
			Language:    meta.language,
			Category:    meta.category,
			Tags:        meta.tags,
			WordCount:   wordCount,
			ReadingTime: minutes,
		},
		Images:      images,
		Videos:      videos,
		Links:       links,
		WordCount:   wordCount,
		ReadingTime: minutes,
	}, nil
}

// findContentRoot returns the body element, or the document root for
// fragments where the parser produced no body.
func findContentRoot(doc *goquery.Document) *html.Node {
	if nodes := doc.Find("body").Nodes; len(nodes) > 0 {
		return nodes[0]
	}
	if nodes := doc.Selection.Nodes; len(nodes) > 0 {
		return nodes[0]
	}
	return nil
}
