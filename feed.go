package newsprint

import (
	"context"
	"time"
)

// FeedItem is a single entry discovered in a feed.
type FeedItem struct {
	URL   string
	Title string

	// Published is nil when the feed entry declares no usable date.
	Published *time.Time
}

// FeedService discovers article URLs from RSS or Atom feeds.
type FeedService interface {
	// DiscoverArticles fetches the feed at feedURL and returns its items
	// in feed order. Malformed entries are skipped, not fatal; an
	// unreachable or unparseable feed returns an error.
	DiscoverArticles(ctx context.Context, feedURL string) ([]FeedItem, error)
}
