package main

import (
	"fmt"

	"github.com/pkarbownik/newsprint"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return newsprint.Errorf(newsprint.EINVALID, "use --force to confirm deletion")
	}

	if err := deps.Articles.DeleteArticle(deps.Ctx, c.ID); err != nil {
		if newsprint.ErrorCode(err) == newsprint.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: article %q not found. Use 'newsprint list' to see stored articles.\n", c.ID)
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", newsprint.ErrorMessage(err))
		}
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted article %q\n", c.ID)
	return nil
}
