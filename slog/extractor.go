// Package slog provides logging decorators for newsprint services.
package slog

import (
	"log/slog"
	"time"

	"github.com/pkarbownik/newsprint"
)

// Ensure LoggingExtractor implements newsprint.Extractor.
var _ newsprint.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with structured logging of each
// extraction's outcome and duration.
type LoggingExtractor struct {
	next   newsprint.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next newsprint.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the result.
func (e *LoggingExtractor) Extract(html string, baseURL string) (*newsprint.Extraction, error) {
	begin := time.Now()
	extraction, err := e.next.Extract(html, baseURL)
	if err != nil {
		e.logger.Error("content extraction failed",
			"url", baseURL,
			"error", err,
			"duration", time.Since(begin),
		)
		return nil, err
	}
	e.logger.Info("content extraction",
		"url", baseURL,
		"words", extraction.WordCount,
		"images", len(extraction.Images),
		"videos", len(extraction.Videos),
		"links", len(extraction.Links),
		"duration", time.Since(begin),
	)
	return extraction, nil
}
