package newsprint_test

import (
	"errors"
	"testing"

	"github.com/pkarbownik/newsprint"
	"github.com/stretchr/testify/assert"
)

func TestErrorCode(t *testing.T) {
	t.Parallel()

	t.Run("returns code for application error", func(t *testing.T) {
		t.Parallel()
		err := newsprint.Errorf(newsprint.ENOTFOUND, "article not found")
		assert.Equal(t, newsprint.ENOTFOUND, newsprint.ErrorCode(err))
	})

	t.Run("returns EINTERNAL for non-application error", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, newsprint.EINTERNAL, newsprint.ErrorCode(errors.New("boom")))
	})

	t.Run("returns empty string for nil", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, newsprint.ErrorCode(nil))
	})
}

func TestErrorMessage(t *testing.T) {
	t.Parallel()

	t.Run("returns message for application error", func(t *testing.T) {
		t.Parallel()
		err := newsprint.Errorf(newsprint.EINVALID, "article URL required")
		assert.Equal(t, "article URL required", newsprint.ErrorMessage(err))
	})

	t.Run("returns generic message for non-application error", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Internal error.", newsprint.ErrorMessage(errors.New("boom")))
	})
}

func TestArticle_Validate(t *testing.T) {
	t.Parallel()

	t.Run("requires URL", func(t *testing.T) {
		t.Parallel()
		a := &newsprint.Article{}
		err := a.Validate()
		assert.Equal(t, newsprint.EINVALID, newsprint.ErrorCode(err))
	})

	t.Run("accepts article with URL", func(t *testing.T) {
		t.Parallel()
		a := &newsprint.Article{URL: "https://example.com/post"}
		assert.NoError(t, a.Validate())
	})
}
