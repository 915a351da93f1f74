package main

import (
	"fmt"

	"github.com/pkarbownik/newsprint/pipeline"
)

// Run executes the fetch command.
func (c *FetchCmd) Run(deps *Dependencies) error {
	progress := func(event pipeline.ProgressEvent) {
		switch event.Type {
		case pipeline.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "  Processing %d URLs\n", event.Total)
		case pipeline.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", event.URL, event.Error)
		case pipeline.ProgressFinished:
			// Summary printed after the run completes
		}
	}

	total := pipeline.Result{}
	if c.Feed {
		for _, feedURL := range c.URLs {
			result, err := deps.Pipeline.RunFeed(deps.Ctx, feedURL, progress)
			if err != nil {
				fmt.Fprintf(deps.Stderr, "error fetching feed %s: %v\n", feedURL, err)
				return err
			}
			total.Saved += result.Saved
			total.Failed += result.Failed
			total.Skipped += result.Skipped
			total.Words += result.Words
		}
	} else {
		result, err := deps.Pipeline.Run(deps.Ctx, c.URLs, progress)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error fetching: %v\n", err)
			return err
		}
		total = *result
	}

	fmt.Fprintf(deps.Stdout, "  Saved %d articles (%d words, %d failed, %d duplicates skipped)\n",
		total.Saved, total.Words, total.Failed, total.Skipped)
	return nil
}
