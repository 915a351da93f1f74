package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/beevik/etree"

	"github.com/pkarbownik/newsprint"
)

// Ensure FeedService implements newsprint.FeedService at compile time.
var _ newsprint.FeedService = (*FeedService)(nil)

// FeedService discovers article URLs from RSS and Atom feeds.
type FeedService struct {
	client *http.Client
}

// NewFeedService creates a new FeedService with the given HTTP client.
// If client is nil, http.DefaultClient is used.
func NewFeedService(client *http.Client) *FeedService {
	if client == nil {
		client = http.DefaultClient
	}
	return &FeedService{client: client}
}

// DiscoverArticles fetches and parses the feed at feedURL, returning items
// in feed order. Entries without a usable link are skipped; an unreachable
// or unparseable feed returns an error.
func (s *FeedService) DiscoverArticles(ctx context.Context, feedURL string) ([]newsprint.FeedItem, error) {
	base, err := url.Parse(feedURL)
	if err != nil || !base.IsAbs() {
		return nil, newsprint.Errorf(newsprint.EINVALID, "invalid feed URL %q", feedURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/rss+xml, application/atom+xml, application/xml, text/xml")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, feedURL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(body); err != nil {
		return nil, newsprint.Errorf(newsprint.EINVALID, "parse feed: %v", err)
	}

	root := doc.Root()
	if root == nil {
		return nil, newsprint.Errorf(newsprint.EINVALID, "empty feed document")
	}

	switch root.Tag {
	case "rss":
		return rssItems(root, base), nil
	case "feed":
		return atomItems(root, base), nil
	default:
		return nil, newsprint.Errorf(newsprint.EINVALID, "unrecognized feed root element %q", root.Tag)
	}
}

// rssItems walks rss/channel/item elements. Items missing a link are
// skipped.
func rssItems(root *etree.Element, base *url.URL) []newsprint.FeedItem {
	var items []newsprint.FeedItem
	for _, channel := range root.SelectElements("channel") {
		for _, item := range channel.SelectElements("item") {
			link := elementText(item, "link")
			resolved := resolveFeedLink(base, link)
			if resolved == "" {
				continue
			}
			items = append(items, newsprint.FeedItem{
				URL:       resolved,
				Title:     elementText(item, "title"),
				Published: parseFeedDate(elementText(item, "pubDate")),
			})
		}
	}
	return items
}

// atomItems walks feed/entry elements, preferring the alternate link.
func atomItems(root *etree.Element, base *url.URL) []newsprint.FeedItem {
	var items []newsprint.FeedItem
	for _, entry := range root.SelectElements("entry") {
		resolved := resolveFeedLink(base, atomLink(entry))
		if resolved == "" {
			continue
		}
		published := elementText(entry, "published")
		if published == "" {
			published = elementText(entry, "updated")
		}
		items = append(items, newsprint.FeedItem{
			URL:       resolved,
			Title:     elementText(entry, "title"),
			Published: parseFeedDate(published),
		})
	}
	return items
}

// atomLink picks the entry's alternate link, falling back to the first
// link element with an href.
func atomLink(entry *etree.Element) string {
	var fallback string
	for _, link := range entry.SelectElements("link") {
		href := strings.TrimSpace(link.SelectAttrValue("href", ""))
		if href == "" {
			continue
		}
		rel := link.SelectAttrValue("rel", "")
		if rel == "" || rel == "alternate" {
			return href
		}
		if fallback == "" {
			fallback = href
		}
	}
	return fallback
}

func elementText(parent *etree.Element, tag string) string {
	if el := parent.SelectElement(tag); el != nil {
		return strings.TrimSpace(el.Text())
	}
	return ""
}

// resolveFeedLink resolves a feed link against the feed URL and requires
// an http(s) result.
func resolveFeedLink(base *url.URL, link string) string {
	link = strings.TrimSpace(link)
	if link == "" {
		return ""
	}
	u, err := url.Parse(link)
	if err != nil {
		return ""
	}
	u = base.ResolveReference(u)
	if u.Scheme != "http" && u.Scheme != "https" {
		return ""
	}
	return u.String()
}

// parseFeedDate parses the assorted date formats feeds use. Unparseable
// dates leave the item's Published unset rather than dropping the item.
func parseFeedDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := dateparse.ParseAny(s)
	if err != nil {
		return nil
	}
	return &t
}
