package main

import (
	"encoding/json"
	"fmt"

	"github.com/pkarbownik/newsprint"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	article, err := deps.Articles.FindArticleByID(deps.Ctx, c.ID)
	if err != nil {
		if newsprint.ErrorCode(err) == newsprint.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: article %q not found. Use 'newsprint list' to see stored articles.\n", c.ID)
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", newsprint.ErrorMessage(err))
		}
		return err
	}

	out, err := json.MarshalIndent(article, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(deps.Stdout, string(out))
	return nil
}
