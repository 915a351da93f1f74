// Package mock provides mock implementations of newsprint interfaces
// for testing.
package mock

import (
	"context"

	"github.com/pkarbownik/newsprint"
)

var _ newsprint.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of newsprint.Extractor.
type Extractor struct {
	ExtractFn func(html string, baseURL string) (*newsprint.Extraction, error)
}

func (m *Extractor) Extract(html string, baseURL string) (*newsprint.Extraction, error) {
	return m.ExtractFn(html, baseURL)
}

var _ newsprint.LanguageDetector = (*LanguageDetector)(nil)

// LanguageDetector is a mock implementation of newsprint.LanguageDetector.
type LanguageDetector struct {
	DetectFn func(text string) (string, bool)
}

func (m *LanguageDetector) Detect(text string) (string, bool) {
	return m.DetectFn(text)
}

var _ newsprint.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of newsprint.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (m *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return m.FetchFn(ctx, url)
}

func (m *Fetcher) Close() error {
	if m.CloseFn == nil {
		return nil
	}
	return m.CloseFn()
}

var _ newsprint.FeedService = (*FeedService)(nil)

// FeedService is a mock implementation of newsprint.FeedService.
type FeedService struct {
	DiscoverArticlesFn func(ctx context.Context, feedURL string) ([]newsprint.FeedItem, error)
}

func (m *FeedService) DiscoverArticles(ctx context.Context, feedURL string) ([]newsprint.FeedItem, error) {
	return m.DiscoverArticlesFn(ctx, feedURL)
}

var _ newsprint.ArticleService = (*ArticleService)(nil)

// ArticleService is a mock implementation of newsprint.ArticleService.
type ArticleService struct {
	CreateArticleFn   func(ctx context.Context, article *newsprint.Article) error
	FindArticleByIDFn func(ctx context.Context, id string) (*newsprint.Article, error)
	FindArticlesFn    func(ctx context.Context, filter newsprint.ArticleFilter) ([]*newsprint.Article, error)
	DeleteArticleFn   func(ctx context.Context, id string) error
}

func (m *ArticleService) CreateArticle(ctx context.Context, article *newsprint.Article) error {
	return m.CreateArticleFn(ctx, article)
}

func (m *ArticleService) FindArticleByID(ctx context.Context, id string) (*newsprint.Article, error) {
	return m.FindArticleByIDFn(ctx, id)
}

func (m *ArticleService) FindArticles(ctx context.Context, filter newsprint.ArticleFilter) ([]*newsprint.Article, error) {
	return m.FindArticlesFn(ctx, filter)
}

func (m *ArticleService) DeleteArticle(ctx context.Context, id string) error {
	return m.DeleteArticleFn(ctx, id)
}

var _ newsprint.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of newsprint.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (m *DomainLimiter) Wait(ctx context.Context, domain string) error {
	if m.WaitFn == nil {
		return nil
	}
	return m.WaitFn(ctx, domain)
}
