package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/pkarbownik/newsprint"
)

// Ensure LoggingFetcher implements newsprint.Fetcher.
var _ newsprint.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with structured logging of each fetch.
type LoggingFetcher struct {
	next   newsprint.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next newsprint.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the result.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (string, error) {
	begin := time.Now()
	html, err := f.next.Fetch(ctx, url)
	if err != nil {
		f.logger.Error("page fetch failed",
			"url", url,
			"error", err,
			"duration", time.Since(begin),
		)
		return "", err
	}
	f.logger.Debug("page fetch",
		"url", url,
		"bytes", len(html),
		"duration", time.Since(begin),
	)
	return html, nil
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
