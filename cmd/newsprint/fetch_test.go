package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkarbownik/newsprint"
	main "github.com/pkarbownik/newsprint/cmd/newsprint"
	"github.com/pkarbownik/newsprint/mock"
	"github.com/pkarbownik/newsprint/pipeline"
)

func testPipeline(saved *[]string) *pipeline.Pipeline {
	return &pipeline.Pipeline{
		Feeds: &mock.FeedService{
			DiscoverArticlesFn: func(ctx context.Context, feedURL string) ([]newsprint.FeedItem, error) {
				return []newsprint.FeedItem{
					{URL: "https://example.com/from-feed"},
				}, nil
			},
		},
		Fetcher: &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "<html><body>content</body></html>", nil
			},
		},
		Extractor: &mock.Extractor{
			ExtractFn: func(html, baseURL string) (*newsprint.Extraction, error) {
				return &newsprint.Extraction{MainText: "content", WordCount: 1}, nil
			},
		},
		Articles: &mock.ArticleService{
			CreateArticleFn: func(ctx context.Context, article *newsprint.Article) error {
				*saved = append(*saved, article.URL)
				return nil
			},
		},
		Concurrency: 1,
	}
}

func TestFetchCmd(t *testing.T) {
	t.Parallel()

	t.Run("processes URLs and prints a summary", func(t *testing.T) {
		t.Parallel()

		var saved []string
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   stdout,
			Stderr:   &bytes.Buffer{},
			Pipeline: testPipeline(&saved),
		}

		cmd := &main.FetchCmd{URLs: []string{"https://example.com/a"}}
		require.NoError(t, cmd.Run(deps))

		assert.Equal(t, []string{"https://example.com/a"}, saved)
		assert.Contains(t, stdout.String(), "Saved 1 articles")
	})

	t.Run("treats URLs as feeds with --feed", func(t *testing.T) {
		t.Parallel()

		var saved []string
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   stdout,
			Stderr:   &bytes.Buffer{},
			Pipeline: testPipeline(&saved),
		}

		cmd := &main.FetchCmd{URLs: []string{"https://example.com/feed.xml"}, Feed: true}
		require.NoError(t, cmd.Run(deps))

		assert.Equal(t, []string{"https://example.com/from-feed"}, saved)
		assert.Contains(t, stdout.String(), "Saved 1 articles")
	})
}
