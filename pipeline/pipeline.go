// Package pipeline coordinates article processing end to end.
// It discovers article URLs from feeds, fetches pages concurrently under
// per-domain rate limits, runs extraction, and stores the results.
package pipeline

import (
	"context"
	"fmt"
	"net/url"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/pkarbownik/newsprint"
	"github.com/pkarbownik/newsprint/bloom"
)

// dedupFalsePositiveRate is the acceptable false positive rate for the
// batch URL deduplication filter.
const dedupFalsePositiveRate = 0.01

// Pipeline orchestrates fetching, extraction, and storage of articles.
type Pipeline struct {
	Feeds       newsprint.FeedService
	Fetcher     newsprint.Fetcher
	Extractor   newsprint.Extractor
	Articles    newsprint.ArticleService
	RateLimiter newsprint.DomainLimiter
	Concurrency int
}

// Result holds the outcome of a pipeline run.
type Result struct {
	Saved   int
	Failed  int
	Skipped int
	Words   int
}

// ProgressEvent reports progress during a pipeline run.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting pipeline progress.
type ProgressFunc func(event ProgressEvent)

// pipeResult holds the outcome of processing a single URL.
type pipeResult struct {
	position int
	url      string
	article  *newsprint.Article
	err      error
}

// RunFeed discovers article URLs from a feed and processes them.
func (p *Pipeline) RunFeed(ctx context.Context, feedURL string, progress ProgressFunc) (*Result, error) {
	items, err := p.Feeds.DiscoverArticles(ctx, feedURL)
	if err != nil {
		return nil, fmt.Errorf("feed discovery: %w", err)
	}

	urls := make([]string, 0, len(items))
	for _, item := range items {
		urls = append(urls, item.URL)
	}
	return p.Run(ctx, urls, progress)
}

// Run fetches, extracts, and stores the given article URLs. Duplicate URLs
// within the batch are skipped. Individual URL failures are counted in the
// result but do not abort the run.
func (p *Pipeline) Run(ctx context.Context, urls []string, progress ProgressFunc) (*Result, error) {
	seen := bloom.NewFilter(uint(len(urls))+1, dedupFalsePositiveRate)
	unique := make([]string, 0, len(urls))
	var skipped int
	for _, u := range urls {
		if seen.TestAndAdd(u) {
			skipped++
			continue
		}
		unique = append(unique, u)
	}

	concurrency := p.Concurrency
	if concurrency <= 0 {
		concurrency = 10
	}

	total := len(unique)
	if progress != nil {
		progress(ProgressEvent{
			Type:  ProgressStarted,
			Total: total,
		})
	}

	resultCh := make(chan pipeResult, total)

	var completed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, u := range unique {
			i, u := i, u
			g.Go(func() error {
				resultCh <- p.processURL(gctx, i, u)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	// Collect in arrival order, index by position for deterministic saves.
	results := make([]pipeResult, total)
	var failed int
	for result := range resultCh {
		completed.Add(1)
		results[result.position] = result

		if progress == nil {
			if result.err != nil {
				failed++
			}
			continue
		}
		if result.err != nil {
			failed++
			progress(ProgressEvent{
				Type:      ProgressFailed,
				Completed: int(completed.Load()),
				Total:     total,
				URL:       result.url,
				Error:     result.err,
			})
		} else {
			progress(ProgressEvent{
				Type:      ProgressCompleted,
				Completed: int(completed.Load()),
				Total:     total,
				URL:       result.url,
			})
		}
	}

	var saved, words int
	for _, result := range results {
		if result.err != nil {
			continue
		}
		if err := p.Articles.CreateArticle(ctx, result.article); err != nil {
			failed++
			if progress != nil {
				progress(ProgressEvent{
					Type:      ProgressFailed,
					Completed: total,
					Total:     total,
					URL:       result.url,
					Error:     err,
				})
			}
			continue
		}
		saved++
		words += result.article.Extraction.WordCount
	}

	if progress != nil {
		progress(ProgressEvent{
			Type:      ProgressFinished,
			Completed: total,
			Total:     total,
		})
	}

	return &Result{
		Saved:   saved,
		Failed:  failed,
		Skipped: skipped,
		Words:   words,
	}, nil
}

// processURL fetches a single URL and runs extraction on it.
func (p *Pipeline) processURL(ctx context.Context, position int, articleURL string) pipeResult {
	result := pipeResult{
		position: position,
		url:      articleURL,
	}

	if p.RateLimiter != nil {
		parsed, err := url.Parse(articleURL)
		if err != nil {
			result.err = fmt.Errorf("invalid URL: %w", err)
			return result
		}
		if err := p.RateLimiter.Wait(ctx, parsed.Host); err != nil {
			result.err = err
			return result
		}
	}

	html, err := p.Fetcher.Fetch(ctx, articleURL)
	if err != nil {
		result.err = err
		return result
	}

	extraction, err := p.Extractor.Extract(html, articleURL)
	if err != nil {
		result.err = err
		return result
	}

	result.article = &newsprint.Article{
		URL:        articleURL,
		Title:      extraction.Metadata.Title,
		Extraction: *extraction,
	}
	return result
}
