package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkarbownik/newsprint"
	main "github.com/pkarbownik/newsprint/cmd/newsprint"
	"github.com/pkarbownik/newsprint/mock"
)

func TestExtractCmd(t *testing.T) {
	t.Parallel()

	t.Run("prints the extraction as JSON without storing", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Fetcher: &mock.Fetcher{
				FetchFn: func(ctx context.Context, url string) (string, error) {
					assert.Equal(t, "https://example.com/a", url)
					return "<html><body>content</body></html>", nil
				},
			},
			Extractor: &mock.Extractor{
				ExtractFn: func(html, baseURL string) (*newsprint.Extraction, error) {
					assert.Equal(t, "https://example.com/a", baseURL)
					return &newsprint.Extraction{
						MainText:    "content",
						WordCount:   1,
						ReadingTime: 1,
					}, nil
				},
			},
		}

		cmd := &main.ExtractCmd{Source: "https://example.com/a"}
		require.NoError(t, cmd.Run(deps))

		var got newsprint.Extraction
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &got))
		assert.Equal(t, "content", got.MainText)
		assert.Equal(t, 1, got.WordCount)
	})

	t.Run("reads a local file with --base for link resolution", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "page.html")
		require.NoError(t, os.WriteFile(path, []byte("<html><body>from disk</body></html>"), 0644))

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Extractor: &mock.Extractor{
				ExtractFn: func(html, baseURL string) (*newsprint.Extraction, error) {
					assert.Contains(t, html, "from disk")
					assert.Equal(t, "https://example.com/page", baseURL)
					return &newsprint.Extraction{MainText: "from disk"}, nil
				},
			},
		}

		cmd := &main.ExtractCmd{Source: path, Base: "https://example.com/page"}
		require.NoError(t, cmd.Run(deps))

		var got newsprint.Extraction
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &got))
		assert.Equal(t, "from disk", got.MainText)
	})

	t.Run("reports a missing file on stderr", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
		}

		cmd := &main.ExtractCmd{Source: filepath.Join(t.TempDir(), "absent.html")}
		require.Error(t, cmd.Run(deps))
		assert.Contains(t, stderr.String(), "error:")
	})

	t.Run("reports fetch failures on stderr", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
			Fetcher: &mock.Fetcher{
				FetchFn: func(ctx context.Context, url string) (string, error) {
					return "", errors.New("connection refused")
				},
			},
		}

		cmd := &main.ExtractCmd{Source: "https://example.com/a"}
		require.Error(t, cmd.Run(deps))
		assert.Contains(t, stderr.String(), "connection refused")
	})
}
