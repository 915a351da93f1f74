package newsprint

import (
	"context"
	"time"
)

// Article is a stored article: a source URL joined with the extraction
// produced from its downloaded HTML.
type Article struct {
	ID          string    `json:"id"`
	URL         string    `json:"url"`
	Title       string    `json:"title"`
	ContentHash string    `json:"contentHash"`
	FetchedAt   time.Time `json:"fetchedAt"`

	Extraction Extraction `json:"extraction"`
}

// Validate returns an error if the article contains invalid fields.
func (a *Article) Validate() error {
	if a.URL == "" {
		return Errorf(EINVALID, "article URL required")
	}
	return nil
}

// SortOrder represents the sort order for article queries.
type SortOrder string

// SortOrder constants for ArticleFilter.
const (
	SortByFetchedAt SortOrder = "fetched_at"
	SortByURL       SortOrder = "url"
)

// ArticleFilter represents a filter for FindArticles.
type ArticleFilter struct {
	ID  *string `json:"id"`
	URL *string `json:"url"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`

	SortBy SortOrder `json:"sortBy"`
}

// ArticleService represents a service for managing stored articles.
type ArticleService interface {
	// CreateArticle stores a new article with its extraction.
	CreateArticle(ctx context.Context, article *Article) error

	// FindArticleByID retrieves an article by ID, including its images,
	// videos, and links. Returns ENOTFOUND if the article does not exist.
	FindArticleByID(ctx context.Context, id string) (*Article, error)

	// FindArticles retrieves articles matching the filter. Media and link
	// collections are loaded for each returned article.
	FindArticles(ctx context.Context, filter ArticleFilter) ([]*Article, error)

	// DeleteArticle permanently removes an article and its media records.
	// Returns ENOTFOUND if the article does not exist.
	DeleteArticle(ctx context.Context, id string) error
}
