package goquery

import (
	"encoding/json"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/araddon/dateparse"
)

// pageMeta is the raw metadata harvest before assembly into
// newsprint.Metadata. ogImage is kept for main-image selection.
type pageMeta struct {
	title       string
	description string
	author      *string
	publishDate *time.Time
	language    *string
	category    *string
	tags        []string
	ogImage     string
}

// extractMetadata reads page metadata in priority order: structured tags
// (Open Graph, Twitter Card, JSON-LD article schema), then standard head
// meta tags, then body heuristics. Each field is independently optional;
// a missing source leaves the field unset.
func extractMetadata(doc *goquery.Document) pageMeta {
	metaTags := make(map[string]string)
	var articleTags []string

	doc.Find("meta").Each(func(_ int, sel *goquery.Selection) {
		content, _ := sel.Attr("content")
		content = strings.TrimSpace(content)
		if content == "" {
			return
		}
		key, exists := sel.Attr("property")
		if !exists {
			key, exists = sel.Attr("name")
		}
		if !exists {
			if key, exists = sel.Attr("http-equiv"); !exists {
				return
			}
		}
		key = strings.ToLower(strings.TrimSpace(key))
		if key == "article:tag" {
			articleTags = append(articleTags, content)
			return
		}
		if _, ok := metaTags[key]; !ok {
			metaTags[key] = content
		}
	})

	ld := extractJSONLD(doc)

	var m pageMeta

	m.title = firstNonEmpty(
		metaTags["og:title"],
		metaTags["twitter:title"],
		ld.headline,
		normalizeSpace(doc.Find("title").First().Text()),
	)

	m.description = firstNonEmpty(
		metaTags["og:description"],
		metaTags["twitter:description"],
		ld.description,
		metaTags["description"],
	)

	if author := firstNonEmpty(
		metaTags["article:author"],
		ld.author,
		metaTags["author"],
		bodyAuthor(doc),
	); author != "" {
		m.author = &author
	}

	m.publishDate = firstDate(
		metaTags["article:published_time"],
		ld.datePublished,
		metaTags["date"],
		metaTags["pubdate"],
		metaTags["publish-date"],
		metaTags["dc.date"],
	)
	if m.publishDate == nil {
		m.publishDate = bodyDate(doc)
	}

	if lang := normalizeLang(firstNonEmpty(
		metaTags["og:locale"],
		docLang(doc),
		metaTags["content-language"],
	)); lang != "" {
		m.language = &lang
	}

	if category := firstNonEmpty(
		metaTags["article:section"],
		ld.section,
		metaTags["category"],
	); category != "" {
		m.category = &category
	}

	m.tags = collectTags(articleTags, ld.keywords, metaTags["keywords"])

	m.ogImage = firstNonEmpty(metaTags["og:image"], metaTags["twitter:image"])

	return m
}

// ldMeta holds fields harvested from JSON-LD article objects.
type ldMeta struct {
	headline      string
	description   string
	author        string
	datePublished string
	section       string
	keywords      []string
}

// extractJSONLD walks every ld+json script on the page and harvests the
// first article-typed object (Article, NewsArticle, BlogPosting, ...).
// Malformed JSON is skipped.
func extractJSONLD(doc *goquery.Document) ldMeta {
	var m ldMeta
	found := false

	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		var payload any
		if err := json.Unmarshal([]byte(sel.Text()), &payload); err != nil {
			return true
		}
		if obj := findArticleObject(payload); obj != nil {
			m = harvestArticleObject(obj)
			found = true
		}
		return !found
	})

	return m
}

// findArticleObject recursively searches a decoded JSON-LD payload for an
// object whose @type contains "Article".
func findArticleObject(v any) map[string]any {
	switch t := v.(type) {
	case map[string]any:
		if isArticleType(t["@type"]) {
			return t
		}
		if graph, ok := t["@graph"]; ok {
			return findArticleObject(graph)
		}
	case []any:
		for _, item := range t {
			if obj := findArticleObject(item); obj != nil {
				return obj
			}
		}
	}
	return nil
}

func isArticleType(v any) bool {
	switch t := v.(type) {
	case string:
		return strings.Contains(t, "Article") || t == "BlogPosting"
	case []any:
		for _, item := range t {
			if isArticleType(item) {
				return true
			}
		}
	}
	return false
}

func harvestArticleObject(obj map[string]any) ldMeta {
	var m ldMeta
	m.headline = jsonString(obj["headline"])
	m.description = jsonString(obj["description"])
	m.datePublished = jsonString(obj["datePublished"])
	m.section = jsonString(obj["articleSection"])
	m.author = jsonName(obj["author"])

	switch kw := obj["keywords"].(type) {
	case string:
		for _, k := range strings.Split(kw, ",") {
			if k = strings.TrimSpace(k); k != "" {
				m.keywords = append(m.keywords, k)
			}
		}
	case []any:
		for _, k := range kw {
			if s := jsonString(k); s != "" {
				m.keywords = append(m.keywords, s)
			}
		}
	}
	return m
}

func jsonString(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

// jsonName extracts a person or organization name from the shapes JSON-LD
// uses for authors: a plain string, an object with "name", or an array of
// either.
func jsonName(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case map[string]any:
		return jsonString(t["name"])
	case []any:
		for _, item := range t {
			if name := jsonName(item); name != "" {
				return name
			}
		}
	}
	return ""
}

// bylineSelectors match common author markup, tried in order.
var bylineSelectors = []string{
	`[rel="author"]`,
	`[itemprop="author"]`,
	".byline",
	".author",
	`[class*="byline"]`,
	`[class*="author"]`,
}

// bodyAuthor is the last-resort author heuristic: the first short
// byline-looking element in the body.
func bodyAuthor(doc *goquery.Document) string {
	for _, selector := range bylineSelectors {
		text := normalizeSpace(doc.Find("body").Find(selector).First().Text())
		text = strings.TrimSpace(strings.TrimPrefix(text, "By "))
		text = strings.TrimSpace(strings.TrimPrefix(text, "by "))
		if text != "" && len(text) <= 100 {
			return text
		}
	}
	return ""
}

var bodyDatePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`),
	regexp.MustCompile(`\b(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]* \d{1,2},? \d{4}\b`),
}

// bodyDate is the last-resort publish-date heuristic: a <time> element's
// datetime attribute, then a date-looking pattern near the top of the body
// text.
func bodyDate(doc *goquery.Document) *time.Time {
	if dt, ok := doc.Find("time[datetime]").First().Attr("datetime"); ok {
		if d := parseDate(dt); d != nil {
			return d
		}
	}
	if d := parseDate(normalizeSpace(doc.Find("time").First().Text())); d != nil {
		return d
	}

	head := normalizeSpace(doc.Find("body").Text())
	if len(head) > 500 {
		head = head[:500]
	}
	for _, re := range bodyDatePatterns {
		if match := re.FindString(head); match != "" {
			if d := parseDate(match); d != nil {
				return d
			}
		}
	}
	return nil
}

// firstDate returns the first candidate that parses as a date.
func firstDate(candidates ...string) *time.Time {
	for _, c := range candidates {
		if d := parseDate(c); d != nil {
			return d
		}
	}
	return nil
}

// parseDate parses a date against the common formats dateparse knows.
// Unparseable input yields nil, never an error.
func parseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	t, err := dateparse.ParseAny(s)
	if err != nil {
		return nil
	}
	return &t
}

// docLang reads the lang attribute of the root html element.
func docLang(doc *goquery.Document) string {
	lang, _ := doc.Find("html").First().Attr("lang")
	return lang
}

// normalizeLang reduces locale forms like "en-US" or "pt_BR" to a bare
// ISO-639-like code.
func normalizeLang(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if i := strings.IndexAny(lang, "-_"); i > 0 {
		lang = lang[:i]
	}
	if len(lang) < 2 || len(lang) > 3 {
		return ""
	}
	return lang
}

// collectTags merges tag sources in priority order, deduplicating
// case-insensitively while preserving first-seen order and casing.
func collectTags(articleTags, ldKeywords []string, keywords string) []string {
	var out []string
	seen := make(map[string]bool)
	add := func(tag string) {
		tag = strings.TrimSpace(tag)
		key := strings.ToLower(tag)
		if tag == "" || seen[key] {
			return
		}
		seen[key] = true
		out = append(out, tag)
	}

	for _, t := range articleTags {
		add(t)
	}
	for _, t := range ldKeywords {
		add(t)
	}
	for _, t := range strings.Split(keywords, ",") {
		add(t)
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
