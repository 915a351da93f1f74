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
)

func TestDeleteCmd(t *testing.T) {
	t.Parallel()

	t.Run("requires force flag", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deleteCalled := false
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
			Articles: &mock.ArticleService{
				DeleteArticleFn: func(ctx context.Context, id string) error {
					deleteCalled = true
					return nil
				},
			},
		}

		cmd := &main.DeleteCmd{ID: "id-1"}
		err := cmd.Run(deps)
		require.Error(t, err)
		assert.Equal(t, newsprint.EINVALID, newsprint.ErrorCode(err))
		assert.False(t, deleteCalled)
		assert.Contains(t, stderr.String(), "--force")
	})

	t.Run("deletes with force flag", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		var deletedID string
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Articles: &mock.ArticleService{
				DeleteArticleFn: func(ctx context.Context, id string) error {
					deletedID = id
					return nil
				},
			},
		}

		cmd := &main.DeleteCmd{ID: "id-1", Force: true}
		require.NoError(t, cmd.Run(deps))
		assert.Equal(t, "id-1", deletedID)
		assert.Contains(t, stdout.String(), "Deleted article")
	})

	t.Run("reports missing article", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
			Articles: &mock.ArticleService{
				DeleteArticleFn: func(ctx context.Context, id string) error {
					return newsprint.Errorf(newsprint.ENOTFOUND, "article not found")
				},
			},
		}

		cmd := &main.DeleteCmd{ID: "missing", Force: true}
		require.Error(t, cmd.Run(deps))
		assert.Contains(t, stderr.String(), "not found")
	})
}
