package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/pkarbownik/newsprint"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	html, base, err := c.load(deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	extraction, err := deps.Extractor.Extract(html, base)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", newsprint.ErrorMessage(err))
		return err
	}

	out, err := json.MarshalIndent(extraction, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(deps.Stdout, string(out))
	return nil
}

// load returns the HTML and the base URL for link resolution. URLs are
// fetched; anything else is read as a local file, with --base supplying
// the base URL since a file path has none.
func (c *ExtractCmd) load(deps *Dependencies) (html, base string, err error) {
	if strings.HasPrefix(c.Source, "http://") || strings.HasPrefix(c.Source, "https://") {
		html, err := deps.Fetcher.Fetch(deps.Ctx, c.Source)
		return html, c.Source, err
	}

	b, err := os.ReadFile(c.Source)
	if err != nil {
		return "", "", err
	}
	return string(b), c.Base, nil
}
