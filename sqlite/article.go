package sqlite

import (
	"context"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"

	"github.com/pkarbownik/newsprint"
)

// Compile-time interface verification.
var _ newsprint.ArticleService = (*ArticleService)(nil)

// ArticleService implements newsprint.ArticleService using SQLite.
// An article row holds the extraction scalars; images, videos, and links
// live in child tables keyed by position to preserve document order.
type ArticleService struct {
	db *DB
}

// NewArticleService creates a new ArticleService.
func NewArticleService(db *DB) *ArticleService {
	return &ArticleService{db: db}
}

// hashContent computes xxHash of content and returns a hex string.
func hashContent(content string) string {
	h := xxhash.Sum64String(content)
	b := make([]byte, 8)
	for i := range b {
		b[i] = byte(h >> (56 - 8*i))
	}
	return hex.EncodeToString(b)
}

// CreateArticle stores an article and its extraction in one transaction.
func (s *ArticleService) CreateArticle(ctx context.Context, article *newsprint.Article) error {
	if err := article.Validate(); err != nil {
		return err
	}

	article.ID = uuid.New().String()
	article.FetchedAt = time.Now().UTC()
	article.ContentHash = hashContent(article.Extraction.MainText)
	if article.Title == "" {
		article.Title = article.Extraction.Metadata.Title
	}

	tags, err := json.Marshal(tagsOrEmpty(article.Extraction.Metadata.Tags))
	if err != nil {
		return fmt.Errorf("marshal tags: %w", err)
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	ext := &article.Extraction
	meta := &ext.Metadata
	_, err = tx.ExecContext(ctx, `
		INSERT INTO articles (id, url, title, main_text, description, author, publish_date,
		                      language, category, tags, word_count, reading_time, content_hash, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, article.ID, article.URL, article.Title, ext.MainText, ext.Description,
		meta.Author, formatTime(meta.PublishDate), meta.Language, meta.Category, string(tags),
		ext.WordCount, ext.ReadingTime, article.ContentHash, article.FetchedAt.Format(time.RFC3339))
	if err != nil {
		return err
	}

	for i, img := range ext.Images {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO article_images (article_id, position, url, alt, caption, width, height, is_main)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`, article.ID, i, img.URL, img.Alt, img.Caption, img.Width, img.Height, img.IsMainImage)
		if err != nil {
			return err
		}
	}

	for i, v := range ext.Videos {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO article_videos (article_id, position, url, title, duration, platform, platform_host)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, article.ID, i, v.URL, v.Title, v.Duration, string(v.Platform.Kind), v.Platform.Host)
		if err != nil {
			return err
		}
	}

	for i, l := range ext.Links {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO article_links (article_id, position, url, title, description, is_external)
			VALUES (?, ?, ?, ?, ?, ?)
		`, article.ID, i, l.URL, l.Title, l.Description, l.IsExternal)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// FindArticleByID retrieves an article by ID with its media collections.
func (s *ArticleService) FindArticleByID(ctx context.Context, id string) (*newsprint.Article, error) {
	article, err := s.scanArticle(s.db.QueryRowContext(ctx, `
		SELECT id, url, title, main_text, description, author, publish_date,
		       language, category, tags, word_count, reading_time, content_hash, fetched_at
		FROM articles
		WHERE id = ?
	`, id))
	if err == sql.ErrNoRows {
		return nil, newsprint.Errorf(newsprint.ENOTFOUND, "article not found")
	}
	if err != nil {
		return nil, err
	}

	if err := s.loadCollections(ctx, article); err != nil {
		return nil, err
	}
	return article, nil
}

// FindArticles retrieves articles matching the filter, media included.
func (s *ArticleService) FindArticles(ctx context.Context, filter newsprint.ArticleFilter) ([]*newsprint.Article, error) {
	where, args := []string{"1 = 1"}, []any{}
	if filter.ID != nil {
		where, args = append(where, "id = ?"), append(args, *filter.ID)
	}
	if filter.URL != nil {
		where, args = append(where, "url = ?"), append(args, *filter.URL)
	}

	orderBy := "fetched_at DESC"
	if filter.SortBy == newsprint.SortByURL {
		orderBy = "url ASC"
	}

	query := `
		SELECT id, url, title, main_text, description, author, publish_date,
		       language, category, tags, word_count, reading_time, content_hash, fetched_at
		FROM articles
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY ` + orderBy + formatLimitOffset(filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	articles := []*newsprint.Article{}
	for rows.Next() {
		article, err := s.scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, article)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, article := range articles {
		if err := s.loadCollections(ctx, article); err != nil {
			return nil, err
		}
	}
	return articles, nil
}

// DeleteArticle permanently removes an article; media rows cascade.
func (s *ArticleService) DeleteArticle(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM articles WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return newsprint.Errorf(newsprint.ENOTFOUND, "article not found")
	}
	return nil
}

// scanner covers both sql.Row and sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func (s *ArticleService) scanArticle(row scanner) (*newsprint.Article, error) {
	var (
		article     newsprint.Article
		publishDate sql.NullString
		tags        string
		fetchedAt   string
	)
	ext := &article.Extraction
	meta := &ext.Metadata

	err := row.Scan(&article.ID, &article.URL, &article.Title, &ext.MainText, &ext.Description,
		&meta.Author, &publishDate, &meta.Language, &meta.Category, &tags,
		&ext.WordCount, &ext.ReadingTime, &article.ContentHash, &fetchedAt)
	if err != nil {
		return nil, err
	}

	meta.Title = article.Title
	meta.WordCount = ext.WordCount
	meta.ReadingTime = ext.ReadingTime

	if publishDate.Valid {
		t, err := time.Parse(time.RFC3339, publishDate.String)
		if err != nil {
			return nil, fmt.Errorf("failed to parse publish_date: %w", err)
		}
		meta.PublishDate = &t
	}
	if err := json.Unmarshal([]byte(tags), &meta.Tags); err != nil {
		return nil, fmt.Errorf("failed to parse tags: %w", err)
	}
	article.FetchedAt, err = time.Parse(time.RFC3339, fetchedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse fetched_at: %w", err)
	}
	return &article, nil
}

// loadCollections fills the article's images, videos, and links in stored
// order.
func (s *ArticleService) loadCollections(ctx context.Context, article *newsprint.Article) error {
	ext := &article.Extraction
	ext.Images = []newsprint.Image{}
	ext.Videos = []newsprint.Video{}
	ext.Links = []newsprint.Link{}

	rows, err := s.db.QueryContext(ctx, `
		SELECT url, alt, caption, width, height, is_main
		FROM article_images WHERE article_id = ? ORDER BY position
	`, article.ID)
	if err != nil {
		return err
	}
	for rows.Next() {
		var img newsprint.Image
		if err := rows.Scan(&img.URL, &img.Alt, &img.Caption, &img.Width, &img.Height, &img.IsMainImage); err != nil {
			rows.Close()
			return err
		}
		ext.Images = append(ext.Images, img)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	rows, err = s.db.QueryContext(ctx, `
		SELECT url, title, duration, platform, platform_host
		FROM article_videos WHERE article_id = ? ORDER BY position
	`, article.ID)
	if err != nil {
		return err
	}
	for rows.Next() {
		var (
			v    newsprint.Video
			kind string
		)
		if err := rows.Scan(&v.URL, &v.Title, &v.Duration, &kind, &v.Platform.Host); err != nil {
			rows.Close()
			return err
		}
		v.Platform.Kind = newsprint.PlatformKind(kind)
		ext.Videos = append(ext.Videos, v)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	rows, err = s.db.QueryContext(ctx, `
		SELECT url, title, description, is_external
		FROM article_links WHERE article_id = ? ORDER BY position
	`, article.ID)
	if err != nil {
		return err
	}
	for rows.Next() {
		var l newsprint.Link
		if err := rows.Scan(&l.URL, &l.Title, &l.Description, &l.IsExternal); err != nil {
			rows.Close()
			return err
		}
		ext.Links = append(ext.Links, l)
	}
	rows.Close()
	return rows.Err()
}

// formatTime renders an optional time as RFC3339 or NULL.
func formatTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}

// tagsOrEmpty keeps stored tags a JSON array, never null.
func tagsOrEmpty(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}

// formatLimitOffset renders a LIMIT/OFFSET clause, empty when unset.
func formatLimitOffset(limit, offset int) string {
	if limit > 0 && offset > 0 {
		return fmt.Sprintf(" LIMIT %d OFFSET %d", limit, offset)
	} else if limit > 0 {
		return fmt.Sprintf(" LIMIT %d", limit)
	} else if offset > 0 {
		return fmt.Sprintf(" LIMIT -1 OFFSET %d", offset)
	}
	return ""
}
