package main

import (
	"fmt"
	"time"

	"github.com/pkarbownik/newsprint"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	filter := newsprint.ArticleFilter{
		Limit:  c.Limit,
		Offset: c.Offset,
	}
	if c.URL != "" {
		filter.URL = &c.URL
	}
	if c.ByURL {
		filter.SortBy = newsprint.SortByURL
	}

	articles, err := deps.Articles.FindArticles(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", newsprint.ErrorMessage(err))
		return err
	}

	if len(articles) == 0 {
		fmt.Fprintln(deps.Stdout, "No articles found. Use 'newsprint fetch' to add some.")
		return nil
	}

	for _, a := range articles {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  %s\n",
			a.ID, a.FetchedAt.Format(time.DateOnly), a.Title, a.URL)
	}

	return nil
}
