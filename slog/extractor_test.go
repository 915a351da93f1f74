package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkarbownik/newsprint"
	"github.com/pkarbownik/newsprint/mock"
	npslog "github.com/pkarbownik/newsprint/slog"
)

func TestLoggingExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("logs extraction outcome with duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Extractor{
			ExtractFn: func(html, baseURL string) (*newsprint.Extraction, error) {
				return &newsprint.Extraction{
					MainText:  "one two three",
					WordCount: 3,
					Images:    []newsprint.Image{{URL: "https://example.com/a.jpg"}},
				}, nil
			},
		}

		extractor := npslog.NewLoggingExtractor(inner, logger)
		extraction, err := extractor.Extract("<html></html>", "https://example.com/page")
		require.NoError(t, err)

		assert.Equal(t, 3, extraction.WordCount)
		output := buf.String()
		assert.Contains(t, output, "content extraction")
		assert.Contains(t, output, "url=https://example.com/page")
		assert.Contains(t, output, "words=3")
		assert.Contains(t, output, "images=1")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs and propagates errors", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Extractor{
			ExtractFn: func(html, baseURL string) (*newsprint.Extraction, error) {
				return nil, errors.New("parse failure")
			},
		}

		extractor := npslog.NewLoggingExtractor(inner, logger)
		_, err := extractor.Extract("<html></html>", "https://example.com/page")
		require.Error(t, err)

		output := buf.String()
		assert.Contains(t, output, "content extraction failed")
		assert.Contains(t, output, "parse failure")
	})
}

func TestLoggingFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("delegates and logs failures", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "", errors.New("timeout")
			},
		}

		fetcher := npslog.NewLoggingFetcher(inner, logger)
		_, err := fetcher.Fetch(context.Background(), "https://example.com")
		require.Error(t, err)

		output := buf.String()
		assert.Contains(t, output, "page fetch failed")
		assert.Contains(t, output, "timeout")
	})

	t.Run("returns the fetched body", func(t *testing.T) {
		t.Parallel()

		logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
		inner := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "<html>body</html>", nil
			},
		}

		fetcher := npslog.NewLoggingFetcher(inner, logger)
		html, err := fetcher.Fetch(context.Background(), "https://example.com")
		require.NoError(t, err)
		assert.Equal(t, "<html>body</html>", html)
	})
}
